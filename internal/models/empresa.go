package models

import "time"

// Empresa is a tenant. Every tenant-owned row carries its IDEmpresa as a
// foreign key; deleting the empresa cascades to everything it owns.
type Empresa struct {
	IDEmpresa       string    `gorm:"primaryKey;size:50" json:"id_empresa"`
	TenantID        string    `gorm:"type:uuid;uniqueIndex;default:gen_random_uuid()" json:"tenant_id"`
	NombreComercial string    `gorm:"size:255" json:"nombre_comercial"`
	RazonSocial     string    `gorm:"size:255" json:"razon_social"`
	NitRuc          string    `gorm:"size:50" json:"nit_ruc"`
	Telefono        string    `gorm:"size:50" json:"telefono"`
	Email           string    `gorm:"size:100" json:"email"`
	Direccion       string    `json:"direccion"`
	LogoURL         string    `gorm:"size:255" json:"logo_url"`
	HorarioAtencion string    `gorm:"size:100" json:"horario_atencion"`
	FechaRegistro   time.Time `gorm:"autoCreateTime" json:"fecha_registro"`
	Activo          bool      `gorm:"not null;default:true" json:"activo"`
}

type ConfiguracionEmpresa struct {
	IDConfig         string  `gorm:"primaryKey;size:50" json:"id_config"`
	IDEmpresa        string  `gorm:"size:50;not null;index" json:"id_empresa"`
	Empresa          Empresa `gorm:"foreignKey:IDEmpresa;references:IDEmpresa;constraint:OnDelete:CASCADE" json:"-"`
	MonedaDefault    string  `gorm:"size:10" json:"moneda_default"`
	ImpuestoIva      float64 `gorm:"type:numeric(5,2)" json:"impuesto_iva"`
	FormatoFactura   string  `gorm:"size:50" json:"formato_factura"`
	NotifStockMinimo bool    `gorm:"default:true" json:"notif_stock_minimo"`
	NotifVentas      bool    `gorm:"default:true" json:"notif_ventas"`
	ZonaHoraria      string  `gorm:"size:50" json:"zona_horaria"`
}
