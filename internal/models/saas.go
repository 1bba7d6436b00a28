package models

import "time"

// AdminSaas is a platform-level administrator, not bound to any tenant.
// Its tokens carry rol SUPER_ADMIN and no id_empresa claim.
type AdminSaas struct {
	IDAdmin       string    `gorm:"primaryKey;type:uuid;default:gen_random_uuid()" json:"id_admin"`
	Nombre        string    `gorm:"size:255" json:"nombre"`
	Email         string    `gorm:"size:255;uniqueIndex" json:"email"`
	PasswordHash  string    `gorm:"size:255" json:"-"`
	Rol           string    `gorm:"size:50" json:"rol"`
	Activo        bool      `gorm:"not null;default:true" json:"activo"`
	FechaCreacion time.Time `gorm:"autoCreateTime" json:"fecha_creacion"`
}

// Plan is the global subscription catalog. Deleting the admin that created a
// plan leaves the plan in place with id_admin set to null.
type Plan struct {
	IDPlan                  string  `gorm:"primaryKey;size:50" json:"id_plan"`
	IDAdmin                 *string `gorm:"type:uuid" json:"id_admin"`
	Admin                   *AdminSaas `gorm:"foreignKey:IDAdmin;references:IDAdmin;constraint:OnDelete:SET NULL" json:"-"`
	Nombre                  string  `gorm:"size:255" json:"nombre"`
	PrecioMensual           float64 `gorm:"type:numeric(12,2)" json:"precio_mensual"`
	MaxUsuarios             int     `json:"max_usuarios"`
	MaxProductos            int     `json:"max_productos"`
	AccesoReportesAvanzados bool    `json:"acceso_reportes_avanzados"`
	Activo                  bool    `gorm:"not null;default:true" json:"activo"`
}

type Suscripcion struct {
	IDSuscripcion string     `gorm:"primaryKey;size:50" json:"id_suscripcion"`
	IDEmpresa     string     `gorm:"size:50;not null;index" json:"id_empresa"`
	Empresa       Empresa    `gorm:"foreignKey:IDEmpresa;references:IDEmpresa;constraint:OnDelete:CASCADE" json:"-"`
	IDPlan        *string    `gorm:"size:50" json:"id_plan"`
	Plan          *Plan      `gorm:"foreignKey:IDPlan;references:IDPlan" json:"-"`
	FechaInicio   *time.Time `json:"fecha_inicio"`
	FechaFin      *time.Time `json:"fecha_fin"`
	Estado        bool       `gorm:"not null;default:true" json:"estado"`
}
