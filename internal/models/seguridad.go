package models

import "time"

// Rol is a tenant-facing role definition. The label carried in token claims
// is the rol id, not a row lookup; the gate trusts the claim until expiry
// or revocation.
type Rol struct {
	IDRol        string `gorm:"primaryKey;size:50" json:"id_rol"`
	Nombre       string `gorm:"size:100" json:"nombre"`
	PermisosJSON JSONB  `gorm:"type:jsonb;default:'{}'::jsonb" json:"permisos_json"`
	Descripcion  string `json:"descripcion"`
}

type Usuario struct {
	IDUsuario       string     `gorm:"primaryKey;size:50" json:"id_usuario"`
	IDEmpresa       string     `gorm:"size:50;not null;index" json:"id_empresa"`
	Empresa         Empresa    `gorm:"foreignKey:IDEmpresa;references:IDEmpresa;constraint:OnDelete:CASCADE" json:"-"`
	IDRol           *string    `gorm:"size:50;index" json:"id_rol"`
	Rol             *Rol       `gorm:"foreignKey:IDRol;references:IDRol;constraint:OnDelete:SET NULL" json:"-"`
	Nombres         string     `gorm:"size:255" json:"nombres"`
	ApellidoPaterno string     `gorm:"size:100" json:"apellido_paterno"`
	ApellidoMaterno string     `gorm:"size:100" json:"apellido_materno"`
	Email           string     `gorm:"size:100;uniqueIndex" json:"email"`
	PasswordHash    string     `gorm:"size:255" json:"-"`
	Telefono        string     `gorm:"size:50" json:"telefono"`
	Activo          bool       `gorm:"not null;default:true" json:"activo"`
	UltimoAcceso    *time.Time `json:"ultimo_acceso,omitempty"`
	FechaCreacion   time.Time  `gorm:"autoCreateTime" json:"fecha_creacion"`
}

// NombreVisual is the display name shown after login.
func (u Usuario) NombreVisual() string {
	if u.ApellidoPaterno == "" {
		return u.Nombres
	}
	return u.Nombres + " " + u.ApellidoPaterno
}
