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

// ==================== CLIENTES ====================

func CreateCliente(db *gorm.DB, lg *zap.SugaredLogger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req struct {
			IDCliente      string `json:"id_cliente"`
			IDEmpresa      string `json:"id_empresa"`
			NombreCompleto string `json:"nombre_completo"`
			NitCi          string `json:"nit_ci"`
			Telefono       string `json:"telefono"`
			Email          string `json:"email"`
			Direccion      string `json:"direccion"`
			EsGenerico     bool   `json:"es_generico"`
		}
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			respondError(w, http.StatusBadRequest, err.Error())
			return
		}
		if req.IDEmpresa == "" {
			respondError(w, http.StatusBadRequest, "id_empresa es obligatorio")
			return
		}
		if req.IDCliente == "" {
			req.IDCliente = uuid.NewString()
		}
		c := models.Cliente{
			IDCliente:      req.IDCliente,
			IDEmpresa:      req.IDEmpresa,
			NombreCompleto: req.NombreCompleto,
			NitCi:          req.NitCi,
			Telefono:       req.Telefono,
			Email:          req.Email,
			Direccion:      req.Direccion,
			EsGenerico:     req.EsGenerico,
		}
		if err := db.Create(&c).Error; err != nil {
			respondError(w, http.StatusInternalServerError, err.Error())
			return
		}
		respondJSON(w, http.StatusCreated, map[string]any{"message": "Cliente registrado", "cliente": c})
	}
}

func ListClientes(db *gorm.DB, lg *zap.SugaredLogger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var cs []models.Cliente
		if err := db.Find(&cs).Error; err != nil {
			respondError(w, http.StatusInternalServerError, err.Error())
			return
		}
		respondJSON(w, http.StatusOK, cs)
	}
}

func GetCliente(db *gorm.DB, lg *zap.SugaredLogger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var c models.Cliente
		if err := db.First(&c, "id_cliente = ?", chi.URLParam(r, "id")).Error; err != nil {
			respondError(w, http.StatusNotFound, "Cliente no encontrado")
			return
		}
		respondJSON(w, http.StatusOK, c)
	}
}

func UpdateCliente(db *gorm.DB, lg *zap.SugaredLogger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var c models.Cliente
		if err := db.First(&c, "id_cliente = ?", chi.URLParam(r, "id")).Error; err != nil {
			respondError(w, http.StatusNotFound, "Cliente no encontrado")
			return
		}
		var req struct {
			NombreCompleto *string `json:"nombre_completo"`
			NitCi          *string `json:"nit_ci"`
			Telefono       *string `json:"telefono"`
			Email          *string `json:"email"`
			Direccion      *string `json:"direccion"`
			EsGenerico     *bool   `json:"es_generico"`
		}
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			respondError(w, http.StatusBadRequest, err.Error())
			return
		}
		if req.NombreCompleto != nil {
			c.NombreCompleto = *req.NombreCompleto
		}
		if req.NitCi != nil {
			c.NitCi = *req.NitCi
		}
		if req.Telefono != nil {
			c.Telefono = *req.Telefono
		}
		if req.Email != nil {
			c.Email = *req.Email
		}
		if req.Direccion != nil {
			c.Direccion = *req.Direccion
		}
		if req.EsGenerico != nil {
			c.EsGenerico = *req.EsGenerico
		}
		if err := db.Save(&c).Error; err != nil {
			respondError(w, http.StatusInternalServerError, err.Error())
			return
		}
		respondJSON(w, http.StatusOK, map[string]any{"message": "Cliente actualizado", "cliente": c})
	}
}

func DeleteCliente(db *gorm.DB, lg *zap.SugaredLogger) http.HandlerFunc {
	return deleteByID(db, &models.Cliente{}, "id_cliente", "Cliente no encontrado", "Cliente eliminado")
}

// ==================== VENTAS ====================

// CreateVenta records a sale. Totals come from the caller; estado starts
// true (valid).
func CreateVenta(db *gorm.DB, lg *zap.SugaredLogger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req struct {
			IDVenta       string   `json:"id_venta"`
			IDEmpresa     string   `json:"id_empresa"`
			IDCliente     string   `json:"id_cliente"`
			IDUsuario     string   `json:"id_usuario"`
			NumeroFactura string   `json:"numero_factura"`
			Subtotal      float64  `json:"subtotal"`
			Impuesto      float64  `json:"impuesto"`
			Descuento     float64  `json:"descuento"`
			Total         *float64 `json:"total"`
			TipoVenta     string   `json:"tipo_venta"`
			Observaciones string   `json:"observaciones"`
		}
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			respondError(w, http.StatusBadRequest, err.Error())
			return
		}
		for campo, v := range map[string]bool{
			"id_empresa": req.IDEmpresa == "",
			"id_cliente": req.IDCliente == "",
			"id_usuario": req.IDUsuario == "",
			"total":      req.Total == nil,
		} {
			if v {
				respondError(w, http.StatusBadRequest, "Falta el campo obligatorio: "+campo)
				return
			}
		}
		if req.IDVenta == "" {
			req.IDVenta = uuid.NewString()
		}
		if req.TipoVenta == "" {
			req.TipoVenta = "CONTADO"
		}
		v := models.Venta{
			IDVenta:       req.IDVenta,
			IDEmpresa:     req.IDEmpresa,
			IDCliente:     req.IDCliente,
			IDUsuario:     req.IDUsuario,
			NumeroFactura: req.NumeroFactura,
			Subtotal:      req.Subtotal,
			Impuesto:      req.Impuesto,
			Descuento:     req.Descuento,
			Total:         *req.Total,
			TipoVenta:     req.TipoVenta,
			Observaciones: req.Observaciones,
			Estado:        true,
		}
		if err := db.Create(&v).Error; err != nil {
			respondError(w, http.StatusInternalServerError, err.Error())
			return
		}
		respondJSON(w, http.StatusCreated, map[string]any{"message": "Venta registrada", "venta": v})
	}
}

func ListVentas(db *gorm.DB, lg *zap.SugaredLogger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var vs []models.Venta
		if err := db.Preload("Cliente").Preload("Usuario").Order("fecha_venta desc").Find(&vs).Error; err != nil {
			respondError(w, http.StatusInternalServerError, err.Error())
			return
		}
		respondJSON(w, http.StatusOK, vs)
	}
}

func GetVenta(db *gorm.DB, lg *zap.SugaredLogger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var v models.Venta
		if err := db.Preload("Cliente").Preload("Usuario").First(&v, "id_venta = ?", chi.URLParam(r, "id")).Error; err != nil {
			respondError(w, http.StatusNotFound, "Venta no encontrada")
			return
		}
		respondJSON(w, http.StatusOK, v)
	}
}

func DeleteVenta(db *gorm.DB, lg *zap.SugaredLogger) http.HandlerFunc {
	return deleteByID(db, &models.Venta{}, "id_venta", "Venta no encontrada", "Venta eliminada")
}

// ==================== DETALLES DE VENTA ====================

func CreateDetalleVenta(db *gorm.DB, lg *zap.SugaredLogger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req struct {
			IDDetalleVenta string  `json:"id_detalle_venta"`
			IDVenta        string  `json:"id_venta"`
			IDProducto     string  `json:"id_producto"`
			Cantidad       int     `json:"cantidad"`
			PrecioUnitario float64 `json:"precio_unitario"`
			Subtotal       float64 `json:"subtotal"`
			DescuentoLinea float64 `json:"descuento_linea"`
		}
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			respondError(w, http.StatusBadRequest, err.Error())
			return
		}
		if req.IDVenta == "" || req.IDProducto == "" {
			respondError(w, http.StatusBadRequest, "id_venta e id_producto son obligatorios")
			return
		}
		if req.IDDetalleVenta == "" {
			req.IDDetalleVenta = uuid.NewString()
		}
		d := models.DetalleVenta{
			IDDetalleVenta: req.IDDetalleVenta,
			IDVenta:        req.IDVenta,
			IDProducto:     req.IDProducto,
			Cantidad:       req.Cantidad,
			PrecioUnitario: req.PrecioUnitario,
			Subtotal:       req.Subtotal,
			DescuentoLinea: req.DescuentoLinea,
		}
		if err := db.Create(&d).Error; err != nil {
			respondError(w, http.StatusInternalServerError, err.Error())
			return
		}
		respondJSON(w, http.StatusCreated, map[string]any{"message": "Detalle registrado", "detalle": d})
	}
}

func ListDetallesVenta(db *gorm.DB, lg *zap.SugaredLogger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var ds []models.DetalleVenta
		err := db.Preload("Producto").Where("id_venta = ?", chi.URLParam(r, "id")).Find(&ds).Error
		if err != nil {
			respondError(w, http.StatusInternalServerError, err.Error())
			return
		}
		respondJSON(w, http.StatusOK, ds)
	}
}

func DeleteDetalleVenta(db *gorm.DB, lg *zap.SugaredLogger) http.HandlerFunc {
	return deleteByID(db, &models.DetalleVenta{}, "id_detalle_venta", "Detalle no encontrado", "Detalle eliminado")
}

// ==================== PAGOS ====================

func CreatePago(db *gorm.DB, lg *zap.SugaredLogger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req struct {
			IDPago            string  `json:"id_pago"`
			IDVenta           string  `json:"id_venta"`
			MetodoPago        string  `json:"metodo_pago"`
			MontoPagado       float64 `json:"monto_pagado"`
			ComprobanteURL    string  `json:"comprobante_url"`
			NumeroTransaccion string  `json:"numero_transaccion"`
			Estado            string  `json:"estado"`
		}
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			respondError(w, http.StatusBadRequest, err.Error())
			return
		}
		if req.IDVenta == "" {
			respondError(w, http.StatusBadRequest, "id_venta es obligatorio")
			return
		}
		if req.IDPago == "" {
			req.IDPago = uuid.NewString()
		}
		p := models.Pago{
			IDPago:            req.IDPago,
			IDVenta:           req.IDVenta,
			MetodoPago:        req.MetodoPago,
			MontoPagado:       req.MontoPagado,
			ComprobanteURL:    req.ComprobanteURL,
			NumeroTransaccion: req.NumeroTransaccion,
			Estado:            req.Estado,
		}
		if err := db.Create(&p).Error; err != nil {
			respondError(w, http.StatusInternalServerError, err.Error())
			return
		}
		respondJSON(w, http.StatusCreated, map[string]any{"message": "Pago registrado", "pago": p})
	}
}

func ListPagos(db *gorm.DB, lg *zap.SugaredLogger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var ps []models.Pago
		if err := db.Order("fecha_pago desc").Find(&ps).Error; err != nil {
			respondError(w, http.StatusInternalServerError, err.Error())
			return
		}
		respondJSON(w, http.StatusOK, ps)
	}
}

func GetPago(db *gorm.DB, lg *zap.SugaredLogger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var p models.Pago
		if err := db.First(&p, "id_pago = ?", chi.URLParam(r, "id")).Error; err != nil {
			respondError(w, http.StatusNotFound, "Pago no encontrado")
			return
		}
		respondJSON(w, http.StatusOK, p)
	}
}

func DeletePago(db *gorm.DB, lg *zap.SugaredLogger) http.HandlerFunc {
	return deleteByID(db, &models.Pago{}, "id_pago", "Pago no encontrado", "Pago eliminado")
}
