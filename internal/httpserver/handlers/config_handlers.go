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

func CreateConfig(db *gorm.DB, lg *zap.SugaredLogger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req struct {
			IDConfig         string   `json:"id_config"`
			IDEmpresa        string   `json:"id_empresa"`
			MonedaDefault    string   `json:"moneda_default"`
			ImpuestoIva      float64  `json:"impuesto_iva"`
			FormatoFactura   string   `json:"formato_factura"`
			NotifStockMinimo *bool    `json:"notif_stock_minimo"`
			NotifVentas      *bool    `json:"notif_ventas"`
			ZonaHoraria      string   `json:"zona_horaria"`
		}
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			respondError(w, http.StatusBadRequest, err.Error())
			return
		}
		if req.IDEmpresa == "" {
			respondError(w, http.StatusBadRequest, "Falta id_empresa")
			return
		}
		if req.IDConfig == "" {
			req.IDConfig = uuid.NewString()
		}
		c := models.ConfiguracionEmpresa{
			IDConfig:         req.IDConfig,
			IDEmpresa:        req.IDEmpresa,
			MonedaDefault:    req.MonedaDefault,
			ImpuestoIva:      req.ImpuestoIva,
			FormatoFactura:   req.FormatoFactura,
			NotifStockMinimo: true,
			NotifVentas:      true,
			ZonaHoraria:      req.ZonaHoraria,
		}
		if req.NotifStockMinimo != nil {
			c.NotifStockMinimo = *req.NotifStockMinimo
		}
		if req.NotifVentas != nil {
			c.NotifVentas = *req.NotifVentas
		}
		if err := db.Create(&c).Error; err != nil {
			respondError(w, http.StatusInternalServerError, err.Error())
			return
		}
		respondJSON(w, http.StatusCreated, map[string]any{"message": "Configuración creada", "configuracion": c})
	}
}

func ListConfigs(db *gorm.DB, lg *zap.SugaredLogger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var cs []models.ConfiguracionEmpresa
		if err := db.Find(&cs).Error; err != nil {
			respondError(w, http.StatusInternalServerError, err.Error())
			return
		}
		respondJSON(w, http.StatusOK, cs)
	}
}

func GetConfig(db *gorm.DB, lg *zap.SugaredLogger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var c models.ConfiguracionEmpresa
		if err := db.First(&c, "id_config = ?", chi.URLParam(r, "id")).Error; err != nil {
			respondError(w, http.StatusNotFound, "Configuración no encontrada")
			return
		}
		respondJSON(w, http.StatusOK, c)
	}
}

func UpdateConfig(db *gorm.DB, lg *zap.SugaredLogger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var c models.ConfiguracionEmpresa
		if err := db.First(&c, "id_config = ?", chi.URLParam(r, "id")).Error; err != nil {
			respondError(w, http.StatusNotFound, "Configuración no encontrada")
			return
		}
		var req struct {
			MonedaDefault    *string  `json:"moneda_default"`
			ImpuestoIva      *float64 `json:"impuesto_iva"`
			FormatoFactura   *string  `json:"formato_factura"`
			NotifStockMinimo *bool    `json:"notif_stock_minimo"`
			NotifVentas      *bool    `json:"notif_ventas"`
			ZonaHoraria      *string  `json:"zona_horaria"`
		}
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			respondError(w, http.StatusBadRequest, err.Error())
			return
		}
		if req.MonedaDefault != nil {
			c.MonedaDefault = *req.MonedaDefault
		}
		if req.ImpuestoIva != nil {
			c.ImpuestoIva = *req.ImpuestoIva
		}
		if req.FormatoFactura != nil {
			c.FormatoFactura = *req.FormatoFactura
		}
		if req.NotifStockMinimo != nil {
			c.NotifStockMinimo = *req.NotifStockMinimo
		}
		if req.NotifVentas != nil {
			c.NotifVentas = *req.NotifVentas
		}
		if req.ZonaHoraria != nil {
			c.ZonaHoraria = *req.ZonaHoraria
		}
		if err := db.Save(&c).Error; err != nil {
			respondError(w, http.StatusInternalServerError, err.Error())
			return
		}
		respondJSON(w, http.StatusOK, map[string]any{"message": "Configuración actualizada", "configuracion": c})
	}
}

func DeleteConfig(db *gorm.DB, lg *zap.SugaredLogger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		res := db.Delete(&models.ConfiguracionEmpresa{}, "id_config = ?", chi.URLParam(r, "id"))
		if res.Error != nil {
			respondError(w, http.StatusInternalServerError, res.Error.Error())
			return
		}
		if res.RowsAffected == 0 {
			respondError(w, http.StatusNotFound, "Configuración no encontrada")
			return
		}
		respondJSON(w, http.StatusOK, map[string]string{"message": "Configuración eliminada"})
	}
}
