package handlers

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"erpsaas/internal/models"
)

func CreateCompra(db *gorm.DB, lg *zap.SugaredLogger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req struct {
			IDCompra             string     `json:"id_compra"`
			IDEmpresa            string     `json:"id_empresa"`
			IDProveedor          string     `json:"id_proveedor"`
			IDUsuario            string     `json:"id_usuario"`
			NumeroCompra         string     `json:"numero_compra"`
			Subtotal             float64    `json:"subtotal"`
			Impuesto             float64    `json:"impuesto"`
			Total                float64    `json:"total"`
			FechaEntregaEstimada *time.Time `json:"fecha_entrega_estimada"`
			Estado               string     `json:"estado"`
			Observaciones        string     `json:"observaciones"`
		}
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			respondError(w, http.StatusBadRequest, err.Error())
			return
		}
		for campo, missing := range map[string]bool{
			"id_empresa":   req.IDEmpresa == "",
			"id_proveedor": req.IDProveedor == "",
			"id_usuario":   req.IDUsuario == "",
		} {
			if missing {
				respondError(w, http.StatusBadRequest, "Falta el campo obligatorio: "+campo)
				return
			}
		}
		if req.IDCompra == "" {
			req.IDCompra = uuid.NewString()
		}
		if req.Estado == "" {
			req.Estado = "SOLICITADA"
		}
		c := models.Compra{
			IDCompra:             req.IDCompra,
			IDEmpresa:            req.IDEmpresa,
			IDProveedor:          req.IDProveedor,
			IDUsuario:            req.IDUsuario,
			NumeroCompra:         req.NumeroCompra,
			Subtotal:             req.Subtotal,
			Impuesto:             req.Impuesto,
			Total:                req.Total,
			FechaEntregaEstimada: req.FechaEntregaEstimada,
			Estado:               req.Estado,
			Observaciones:        req.Observaciones,
		}
		if err := db.Create(&c).Error; err != nil {
			respondError(w, http.StatusInternalServerError, err.Error())
			return
		}
		respondJSON(w, http.StatusCreated, map[string]any{"message": "Compra registrada", "compra": c})
	}
}

func ListCompras(db *gorm.DB, lg *zap.SugaredLogger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var cs []models.Compra
		if err := db.Preload("Proveedor").Preload("Usuario").Order("fecha_compra desc").Find(&cs).Error; err != nil {
			respondError(w, http.StatusInternalServerError, err.Error())
			return
		}
		respondJSON(w, http.StatusOK, cs)
	}
}

func GetCompra(db *gorm.DB, lg *zap.SugaredLogger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var c models.Compra
		if err := db.Preload("Proveedor").Preload("Usuario").First(&c, "id_compra = ?", chi.URLParam(r, "id")).Error; err != nil {
			respondError(w, http.StatusNotFound, "Compra no encontrada")
			return
		}
		respondJSON(w, http.StatusOK, c)
	}
}

func UpdateCompra(db *gorm.DB, lg *zap.SugaredLogger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var c models.Compra
		if err := db.First(&c, "id_compra = ?", chi.URLParam(r, "id")).Error; err != nil {
			respondError(w, http.StatusNotFound, "Compra no encontrada")
			return
		}
		var req struct {
			NumeroCompra         *string    `json:"numero_compra"`
			Subtotal             *float64   `json:"subtotal"`
			Impuesto             *float64   `json:"impuesto"`
			Total                *float64   `json:"total"`
			FechaEntregaEstimada *time.Time `json:"fecha_entrega_estimada"`
			Estado               *string    `json:"estado"`
			Observaciones        *string    `json:"observaciones"`
		}
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			respondError(w, http.StatusBadRequest, err.Error())
			return
		}
		if req.NumeroCompra != nil {
			c.NumeroCompra = *req.NumeroCompra
		}
		if req.Subtotal != nil {
			c.Subtotal = *req.Subtotal
		}
		if req.Impuesto != nil {
			c.Impuesto = *req.Impuesto
		}
		if req.Total != nil {
			c.Total = *req.Total
		}
		if req.FechaEntregaEstimada != nil {
			c.FechaEntregaEstimada = req.FechaEntregaEstimada
		}
		if req.Estado != nil {
			c.Estado = *req.Estado
		}
		if req.Observaciones != nil {
			c.Observaciones = *req.Observaciones
		}
		if err := db.Save(&c).Error; err != nil {
			respondError(w, http.StatusInternalServerError, err.Error())
			return
		}
		respondJSON(w, http.StatusOK, map[string]any{"message": "Compra actualizada", "compra": c})
	}
}

func DeleteCompra(db *gorm.DB, lg *zap.SugaredLogger) http.HandlerFunc {
	return deleteByID(db, &models.Compra{}, "id_compra", "Compra no encontrada", "Compra eliminada")
}

func CreateDetalleCompra(db *gorm.DB, lg *zap.SugaredLogger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req struct {
			IDDetalleCompra string  `json:"id_detalle_compra"`
			IDCompra        string  `json:"id_compra"`
			IDProducto      string  `json:"id_producto"`
			Cantidad        int     `json:"cantidad"`
			PrecioUnitario  float64 `json:"precio_unitario"`
			Subtotal        float64 `json:"subtotal"`
		}
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			respondError(w, http.StatusBadRequest, err.Error())
			return
		}
		if req.IDCompra == "" || req.IDProducto == "" {
			respondError(w, http.StatusBadRequest, "id_compra e id_producto son obligatorios")
			return
		}
		if req.IDDetalleCompra == "" {
			req.IDDetalleCompra = uuid.NewString()
		}
		d := models.DetalleCompra{
			IDDetalleCompra: req.IDDetalleCompra,
			IDCompra:        req.IDCompra,
			IDProducto:      req.IDProducto,
			Cantidad:        req.Cantidad,
			PrecioUnitario:  req.PrecioUnitario,
			Subtotal:        req.Subtotal,
		}
		if err := db.Create(&d).Error; err != nil {
			respondError(w, http.StatusInternalServerError, err.Error())
			return
		}
		respondJSON(w, http.StatusCreated, map[string]any{"message": "Detalle registrado", "detalle": d})
	}
}

func ListDetallesCompra(db *gorm.DB, lg *zap.SugaredLogger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var ds []models.DetalleCompra
		err := db.Preload("Producto").Where("id_compra = ?", chi.URLParam(r, "id")).Find(&ds).Error
		if err != nil {
			respondError(w, http.StatusInternalServerError, err.Error())
			return
		}
		respondJSON(w, http.StatusOK, ds)
	}
}

func DeleteDetalleCompra(db *gorm.DB, lg *zap.SugaredLogger) http.HandlerFunc {
	return deleteByID(db, &models.DetalleCompra{}, "id_detalle_compra", "Detalle no encontrado", "Detalle eliminado")
}
