package models

import "time"

type Compra struct {
	IDCompra             string     `gorm:"primaryKey;size:50" json:"id_compra"`
	IDEmpresa            string     `gorm:"size:50;index:,composite:uk_compra_empresa,unique" json:"id_empresa"`
	Empresa              Empresa    `gorm:"foreignKey:IDEmpresa;references:IDEmpresa;constraint:OnDelete:CASCADE" json:"-"`
	IDProveedor          string     `gorm:"size:50;index" json:"id_proveedor"`
	Proveedor            *Proveedor `gorm:"foreignKey:IDProveedor;references:IDProveedor;constraint:OnDelete:CASCADE" json:"proveedor,omitempty"`
	IDUsuario            string     `gorm:"size:50;index" json:"id_usuario"`
	Usuario              *Usuario   `gorm:"foreignKey:IDUsuario;references:IDUsuario;constraint:OnDelete:CASCADE" json:"usuario,omitempty"`
	NumeroCompra         string     `gorm:"size:100;index:,composite:uk_compra_empresa,unique" json:"numero_compra"`
	Subtotal             float64    `gorm:"type:numeric(12,2)" json:"subtotal"`
	Impuesto             float64    `gorm:"type:numeric(12,2)" json:"impuesto"`
	Total                float64    `gorm:"type:numeric(12,2)" json:"total"`
	FechaCompra          time.Time  `gorm:"autoCreateTime" json:"fecha_compra"`
	FechaEntregaEstimada *time.Time `json:"fecha_entrega_estimada"`
	Estado               string     `gorm:"size:50" json:"estado"`
	Observaciones        string     `json:"observaciones"`
}

type DetalleCompra struct {
	IDDetalleCompra string    `gorm:"primaryKey;size:50" json:"id_detalle_compra"`
	IDCompra        string    `gorm:"size:50;index" json:"id_compra"`
	Compra          *Compra   `gorm:"foreignKey:IDCompra;references:IDCompra;constraint:OnDelete:CASCADE" json:"-"`
	IDProducto      string    `gorm:"size:50;index" json:"id_producto"`
	Producto        *Producto `gorm:"foreignKey:IDProducto;references:IDProducto;constraint:OnDelete:CASCADE" json:"producto,omitempty"`
	Cantidad        int       `json:"cantidad"`
	PrecioUnitario  float64   `gorm:"type:numeric(12,2)" json:"precio_unitario"`
	Subtotal        float64   `gorm:"type:numeric(12,2)" json:"subtotal"`
}
