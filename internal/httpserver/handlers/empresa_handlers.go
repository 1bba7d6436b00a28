package handlers

import (
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"erpsaas/internal/models"
)

type createEmpresaReq struct {
	IDEmpresa       string `json:"id_empresa"`
	NombreComercial string `json:"nombre_comercial"`
	RazonSocial     string `json:"razon_social"`
	NitRuc          string `json:"nit_ruc"`
	Telefono        string `json:"telefono"`
	Email           string `json:"email"`
	Direccion       string `json:"direccion"`
	LogoURL         string `json:"logo_url"`
	HorarioAtencion string `json:"horario_atencion"`
	Activo          *bool  `json:"activo"`
}

// CreateEmpresa registers a tenant manually and seeds its default
// configuration in the same transaction.
func CreateEmpresa(db *gorm.DB, lg *zap.SugaredLogger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req createEmpresaReq
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			respondError(w, http.StatusBadRequest, err.Error())
			return
		}
		if req.IDEmpresa == "" {
			respondError(w, http.StatusBadRequest, "El campo 'id_empresa' es obligatorio")
			return
		}
		var n int64
		db.Model(&models.Empresa{}).Where("id_empresa = ?", req.IDEmpresa).Count(&n)
		if n > 0 {
			respondError(w, http.StatusBadRequest, "Ya existe una empresa con ese ID")
			return
		}
		e := models.Empresa{
			IDEmpresa:       req.IDEmpresa,
			NombreComercial: req.NombreComercial,
			RazonSocial:     req.RazonSocial,
			NitRuc:          req.NitRuc,
			Telefono:        req.Telefono,
			Email:           req.Email,
			Direccion:       req.Direccion,
			LogoURL:         req.LogoURL,
			HorarioAtencion: req.HorarioAtencion,
			Activo:          true,
		}
		if req.Activo != nil {
			e.Activo = *req.Activo
		}
		err := db.Transaction(func(tx *gorm.DB) error {
			if err := tx.Create(&e).Error; err != nil {
				return err
			}
			return tx.Create(&models.ConfiguracionEmpresa{
				IDConfig:         uuid.NewString(),
				IDEmpresa:        e.IDEmpresa,
				MonedaDefault:    "BOB",
				ImpuestoIva:      13.00,
				FormatoFactura:   "carta",
				NotifStockMinimo: true,
				NotifVentas:      true,
				ZonaHoraria:      "America/La_Paz",
			}).Error
		})
		if err != nil {
			lg.Errorw("create empresa failed", "error", err)
			respondError(w, http.StatusInternalServerError, err.Error())
			return
		}
		respondJSON(w, http.StatusCreated, map[string]any{"message": "Empresa creada exitosamente", "empresa": e})
	}
}

func ListEmpresas(db *gorm.DB, lg *zap.SugaredLogger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var es []models.Empresa
		if err := db.Find(&es).Error; err != nil {
			respondError(w, http.StatusInternalServerError, err.Error())
			return
		}
		respondJSON(w, http.StatusOK, es)
	}
}

func GetEmpresa(db *gorm.DB, lg *zap.SugaredLogger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var e models.Empresa
		if err := db.First(&e, "id_empresa = ?", chi.URLParam(r, "id")).Error; err != nil {
			respondError(w, http.StatusNotFound, "Empresa no encontrada")
			return
		}
		respondJSON(w, http.StatusOK, e)
	}
}

func UpdateEmpresa(db *gorm.DB, lg *zap.SugaredLogger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var e models.Empresa
		if err := db.First(&e, "id_empresa = ?", chi.URLParam(r, "id")).Error; err != nil {
			respondError(w, http.StatusNotFound, "Empresa no encontrada")
			return
		}
		var req struct {
			NombreComercial *string `json:"nombre_comercial"`
			RazonSocial     *string `json:"razon_social"`
			NitRuc          *string `json:"nit_ruc"`
			Telefono        *string `json:"telefono"`
			Email           *string `json:"email"`
			Direccion       *string `json:"direccion"`
			LogoURL         *string `json:"logo_url"`
			HorarioAtencion *string `json:"horario_atencion"`
			Activo          *bool   `json:"activo"`
		}
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			respondError(w, http.StatusBadRequest, err.Error())
			return
		}
		if req.NombreComercial != nil {
			e.NombreComercial = *req.NombreComercial
		}
		if req.RazonSocial != nil {
			e.RazonSocial = *req.RazonSocial
		}
		if req.NitRuc != nil {
			e.NitRuc = *req.NitRuc
		}
		if req.Telefono != nil {
			e.Telefono = *req.Telefono
		}
		if req.Email != nil {
			e.Email = *req.Email
		}
		if req.Direccion != nil {
			e.Direccion = *req.Direccion
		}
		if req.LogoURL != nil {
			e.LogoURL = *req.LogoURL
		}
		if req.HorarioAtencion != nil {
			e.HorarioAtencion = *req.HorarioAtencion
		}
		if req.Activo != nil {
			e.Activo = *req.Activo
		}
		if err := db.Save(&e).Error; err != nil {
			respondError(w, http.StatusInternalServerError, err.Error())
			return
		}
		respondJSON(w, http.StatusOK, map[string]any{"message": "Empresa actualizada", "empresa": e})
	}
}

// DeleteEmpresa removes the tenant; the declared FK cascades take its users,
// products, sales and everything else with it.
func DeleteEmpresa(db *gorm.DB, lg *zap.SugaredLogger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id := chi.URLParam(r, "id")
		var e models.Empresa
		if err := db.First(&e, "id_empresa = ?", id).Error; err != nil {
			respondError(w, http.StatusNotFound, "Empresa no encontrada")
			return
		}
		if err := db.Delete(&e).Error; err != nil {
			lg.Errorw("delete empresa failed", "id_empresa", id, "error", err)
			respondError(w, http.StatusInternalServerError, err.Error())
			return
		}
		respondJSON(w, http.StatusOK, map[string]string{"message": "Empresa eliminada correctamente"})
	}
}
