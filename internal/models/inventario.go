package models

import "time"

type Categoria struct {
	IDCategoria         string  `gorm:"primaryKey;size:50" json:"id_categoria"`
	IDEmpresa           string  `gorm:"size:50;not null;index" json:"id_empresa"`
	Empresa             Empresa `gorm:"foreignKey:IDEmpresa;references:IDEmpresa;constraint:OnDelete:CASCADE" json:"-"`
	Nombre              string  `gorm:"size:100" json:"nombre"`
	Descripcion         string  `json:"descripcion"`
	Activo              bool    `gorm:"not null;default:true" json:"activo"`
	OrdenVisualizacion  int     `gorm:"default:0" json:"orden_visualizacion"`
}

type Proveedor struct {
	IDProveedor string  `gorm:"primaryKey;size:50" json:"id_proveedor"`
	IDEmpresa   string  `gorm:"size:50;not null;index" json:"id_empresa"`
	Empresa     Empresa `gorm:"foreignKey:IDEmpresa;references:IDEmpresa;constraint:OnDelete:CASCADE" json:"-"`
	Nombre      string  `gorm:"size:255" json:"nombre"`
	Telefono    string  `gorm:"size:50" json:"telefono"`
	Email       string  `gorm:"size:100" json:"email"`
	Direccion   string  `json:"direccion"`
	NitRuc      string  `gorm:"size:50" json:"nit_ruc"`
	FormaPago   string  `json:"forma_pago"`
	Activo      bool    `gorm:"not null;default:true" json:"activo"`
}

// Producto: codigo_producto is unique per empresa, not globally.
type Producto struct {
	IDProducto     string     `gorm:"primaryKey;size:50" json:"id_producto"`
	IDEmpresa      string     `gorm:"size:50;not null;index:,composite:uk_codigo_empresa,unique" json:"id_empresa"`
	Empresa        Empresa    `gorm:"foreignKey:IDEmpresa;references:IDEmpresa;constraint:OnDelete:CASCADE" json:"-"`
	IDCategoria    string     `gorm:"size:50;index" json:"id_categoria"`
	Categoria      *Categoria `gorm:"foreignKey:IDCategoria;references:IDCategoria;constraint:OnDelete:CASCADE" json:"-"`
	CodigoProducto string     `gorm:"size:100;index:,composite:uk_codigo_empresa,unique" json:"codigo_producto"`
	Nombre         string     `gorm:"size:255" json:"nombre"`
	Descripcion    string     `json:"descripcion"`
	PrecioVenta    float64    `gorm:"type:numeric(12,2)" json:"precio_venta"`
	PrecioCompra   float64    `gorm:"type:numeric(12,2)" json:"precio_compra"`
	UnidadMedida   string     `gorm:"size:50" json:"unidad_medida"`
	ImagenURL      string     `gorm:"size:255" json:"imagen_url"`
	Activo         bool       `gorm:"not null;default:true" json:"activo"`
	FechaCreacion  time.Time  `gorm:"autoCreateTime" json:"fecha_creacion"`
}

// ProductoProveedor links a product to a supplier with the negotiated price.
type ProductoProveedor struct {
	IDProducto         string     `gorm:"primaryKey;size:50" json:"id_producto"`
	Producto           *Producto  `gorm:"foreignKey:IDProducto;references:IDProducto;constraint:OnDelete:CASCADE" json:"producto,omitempty"`
	IDProveedor        string     `gorm:"primaryKey;size:50" json:"id_proveedor"`
	Proveedor          *Proveedor `gorm:"foreignKey:IDProveedor;references:IDProveedor;constraint:OnDelete:CASCADE" json:"proveedor,omitempty"`
	PrecioCompra       float64    `gorm:"type:numeric(12,2)" json:"precio_compra"`
	TiempoEntregaDias  int        `json:"tiempo_entrega_dias"`
	ProveedorPreferido bool       `gorm:"default:false" json:"proveedor_preferido"`
}

type Inventario struct {
	IDInventario        string    `gorm:"primaryKey;size:50" json:"id_inventario"`
	IDProducto          string    `gorm:"size:50;index" json:"id_producto"`
	Producto            *Producto `gorm:"foreignKey:IDProducto;references:IDProducto;constraint:OnDelete:CASCADE" json:"producto,omitempty"`
	CantidadActual      int       `gorm:"default:0" json:"cantidad_actual"`
	StockMinimo         int       `gorm:"default:0" json:"stock_minimo"`
	StockMaximo         int       `json:"stock_maximo"`
	UbicacionFisica     string    `gorm:"size:100" json:"ubicacion_fisica"`
	UltimaActualizacion time.Time `gorm:"autoUpdateTime" json:"ultima_actualizacion"`
}
