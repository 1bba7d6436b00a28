package models

import "time"

type Cliente struct {
	IDCliente            string    `gorm:"primaryKey;size:50" json:"id_cliente"`
	IDEmpresa            string    `gorm:"size:50;index" json:"id_empresa"`
	Empresa              Empresa   `gorm:"foreignKey:IDEmpresa;references:IDEmpresa;constraint:OnDelete:CASCADE" json:"-"`
	NombreCompleto       string    `gorm:"size:255" json:"nombre_completo"`
	NitCi                string    `gorm:"size:50" json:"nit_ci"`
	Telefono             string    `gorm:"size:50" json:"telefono"`
	Email                string    `gorm:"size:100" json:"email"`
	Direccion            string    `json:"direccion"`
	EsGenerico           bool      `gorm:"default:false" json:"es_generico"`
	FechaRegistro        time.Time `gorm:"autoCreateTime" json:"fecha_registro"`
	TotalCompras         int       `gorm:"default:0" json:"total_compras"`
	MontoTotalHistorico  float64   `gorm:"type:numeric(15,2);default:0" json:"monto_total_historico"`
}

// Venta: estado true means valid, false means voided. Totals come from the
// caller; nothing is recomputed here.
type Venta struct {
	IDVenta       string    `gorm:"primaryKey;size:50" json:"id_venta"`
	IDEmpresa     string    `gorm:"size:50;index:,composite:uk_factura_empresa,unique" json:"id_empresa"`
	Empresa       Empresa   `gorm:"foreignKey:IDEmpresa;references:IDEmpresa;constraint:OnDelete:CASCADE" json:"-"`
	IDCliente     string    `gorm:"size:50;index" json:"id_cliente"`
	Cliente       *Cliente  `gorm:"foreignKey:IDCliente;references:IDCliente;constraint:OnDelete:CASCADE" json:"cliente,omitempty"`
	IDUsuario     string    `gorm:"size:50;index" json:"id_usuario"`
	Usuario       *Usuario  `gorm:"foreignKey:IDUsuario;references:IDUsuario;constraint:OnDelete:CASCADE" json:"usuario,omitempty"`
	NumeroFactura string    `gorm:"size:100;index:,composite:uk_factura_empresa,unique" json:"numero_factura"`
	Subtotal      float64   `gorm:"type:numeric(12,2)" json:"subtotal"`
	Impuesto      float64   `gorm:"type:numeric(12,2)" json:"impuesto"`
	Descuento     float64   `gorm:"type:numeric(12,2)" json:"descuento"`
	Total         float64   `gorm:"type:numeric(12,2)" json:"total"`
	FechaVenta    time.Time `gorm:"autoCreateTime" json:"fecha_venta"`
	Estado        bool      `gorm:"not null;default:true" json:"estado"`
	TipoVenta     string    `gorm:"size:50" json:"tipo_venta"`
	Observaciones string    `json:"observaciones"`
}

type DetalleVenta struct {
	IDDetalleVenta string    `gorm:"primaryKey;size:50" json:"id_detalle_venta"`
	IDVenta        string    `gorm:"size:50;index" json:"id_venta"`
	Venta          *Venta    `gorm:"foreignKey:IDVenta;references:IDVenta;constraint:OnDelete:CASCADE" json:"-"`
	IDProducto     string    `gorm:"size:50;index" json:"id_producto"`
	Producto       *Producto `gorm:"foreignKey:IDProducto;references:IDProducto;constraint:OnDelete:CASCADE" json:"producto,omitempty"`
	Cantidad       int       `json:"cantidad"`
	PrecioUnitario float64   `gorm:"type:numeric(12,2)" json:"precio_unitario"`
	Subtotal       float64   `gorm:"type:numeric(12,2)" json:"subtotal"`
	DescuentoLinea float64   `gorm:"type:numeric(12,2);default:0" json:"descuento_linea"`
}

type Pago struct {
	IDPago            string    `gorm:"primaryKey;size:50" json:"id_pago"`
	IDVenta           string    `gorm:"size:50;index" json:"id_venta"`
	Venta             *Venta    `gorm:"foreignKey:IDVenta;references:IDVenta;constraint:OnDelete:CASCADE" json:"-"`
	MetodoPago        string    `gorm:"size:50" json:"metodo_pago"`
	MontoPagado       float64   `gorm:"type:numeric(12,2)" json:"monto_pagado"`
	FechaPago         time.Time `gorm:"autoCreateTime" json:"fecha_pago"`
	ComprobanteURL    string    `gorm:"size:255" json:"comprobante_url"`
	NumeroTransaccion string    `gorm:"size:100" json:"numero_transaccion"`
	Estado            string    `gorm:"size:50" json:"estado"`
}
