package models

import "time"

type Notificacion struct {
	IDNotificacion       string     `gorm:"primaryKey;size:50" json:"id_notificacion"`
	IDEmpresa            string     `gorm:"size:50;index" json:"id_empresa"`
	Empresa              Empresa    `gorm:"foreignKey:IDEmpresa;references:IDEmpresa;constraint:OnDelete:CASCADE" json:"-"`
	IDUsuario            string     `gorm:"size:50;index" json:"id_usuario"`
	Usuario              *Usuario   `gorm:"foreignKey:IDUsuario;references:IDUsuario;constraint:OnDelete:CASCADE" json:"-"`
	Tipo                 string     `gorm:"size:50" json:"tipo"`
	Categoria            string     `gorm:"size:50" json:"categoria"`
	Titulo               string     `gorm:"size:255" json:"titulo"`
	Mensaje              string     `json:"mensaje"`
	Leida                bool       `gorm:"default:false" json:"leida"`
	FechaCreacion        time.Time  `gorm:"autoCreateTime" json:"fecha_creacion"`
	FechaLectura         *time.Time `json:"fecha_lectura,omitempty"`
	DatosAdicionalesJSON JSONB      `gorm:"type:jsonb" json:"datos_adicionales_json"`
}

type Auditoria struct {
	IDAuditoria         string   `gorm:"primaryKey;size:50" json:"id_auditoria"`
	IDEmpresa           string   `gorm:"size:50;index" json:"id_empresa"`
	Empresa             Empresa  `gorm:"foreignKey:IDEmpresa;references:IDEmpresa;constraint:OnDelete:CASCADE" json:"-"`
	IDUsuario           string   `gorm:"size:50;index" json:"id_usuario"`
	Usuario             *Usuario `gorm:"foreignKey:IDUsuario;references:IDUsuario;constraint:OnDelete:CASCADE" json:"-"`
	TablaAfectada       string   `gorm:"size:100" json:"tabla_afectada"`
	Accion              string   `gorm:"size:50" json:"accion"`
	DatosAnterioresJSON JSONB    `gorm:"type:jsonb" json:"datos_anteriores_json"`
	DatosNuevosJSON     JSONB    `gorm:"type:jsonb" json:"datos_nuevos_json"`
	FechaHora           time.Time `gorm:"autoCreateTime" json:"fecha_hora"`
}
