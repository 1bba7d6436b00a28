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

// ==================== NOTIFICACIONES ====================

func CreateNotificacion(db *gorm.DB, lg *zap.SugaredLogger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req struct {
			IDNotificacion       string          `json:"id_notificacion"`
			IDEmpresa            string          `json:"id_empresa"`
			IDUsuario            string          `json:"id_usuario"`
			Tipo                 string          `json:"tipo"`
			Categoria            string          `json:"categoria"`
			Titulo               string          `json:"titulo"`
			Mensaje              string          `json:"mensaje"`
			DatosAdicionalesJSON json.RawMessage `json:"datos_adicionales_json"`
		}
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			respondError(w, http.StatusBadRequest, err.Error())
			return
		}
		if req.IDEmpresa == "" || req.IDUsuario == "" {
			respondError(w, http.StatusBadRequest, "Faltan datos obligatorios (id_empresa, id_usuario)")
			return
		}
		if req.IDNotificacion == "" {
			req.IDNotificacion = uuid.NewString()
		}
		n := models.Notificacion{
			IDNotificacion:       req.IDNotificacion,
			IDEmpresa:            req.IDEmpresa,
			IDUsuario:            req.IDUsuario,
			Tipo:                 req.Tipo,
			Categoria:            req.Categoria,
			Titulo:               req.Titulo,
			Mensaje:              req.Mensaje,
			DatosAdicionalesJSON: models.JSONB(req.DatosAdicionalesJSON),
		}
		if err := db.Create(&n).Error; err != nil {
			respondError(w, http.StatusInternalServerError, err.Error())
			return
		}
		respondJSON(w, http.StatusCreated, map[string]any{"message": "Notificación creada", "notificacion": n})
	}
}

func ListNotificaciones(db *gorm.DB, lg *zap.SugaredLogger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var ns []models.Notificacion
		if err := db.Order("fecha_creacion desc").Find(&ns).Error; err != nil {
			respondError(w, http.StatusInternalServerError, err.Error())
			return
		}
		respondJSON(w, http.StatusOK, ns)
	}
}

func GetNotificacion(db *gorm.DB, lg *zap.SugaredLogger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var n models.Notificacion
		if err := db.First(&n, "id_notificacion = ?", chi.URLParam(r, "id")).Error; err != nil {
			respondError(w, http.StatusNotFound, "Notificación no encontrada")
			return
		}
		respondJSON(w, http.StatusOK, n)
	}
}

// UpdateNotificacion mostly flips leida; fecha_lectura is stamped the first
// time it turns true.
func UpdateNotificacion(db *gorm.DB, lg *zap.SugaredLogger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var n models.Notificacion
		if err := db.First(&n, "id_notificacion = ?", chi.URLParam(r, "id")).Error; err != nil {
			respondError(w, http.StatusNotFound, "Notificación no encontrada")
			return
		}
		var req struct {
			Titulo  *string `json:"titulo"`
			Mensaje *string `json:"mensaje"`
			Leida   *bool   `json:"leida"`
		}
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			respondError(w, http.StatusBadRequest, err.Error())
			return
		}
		if req.Titulo != nil {
			n.Titulo = *req.Titulo
		}
		if req.Mensaje != nil {
			n.Mensaje = *req.Mensaje
		}
		if req.Leida != nil {
			n.Leida = *req.Leida
			if *req.Leida && n.FechaLectura == nil {
				now := time.Now()
				n.FechaLectura = &now
			}
		}
		if err := db.Save(&n).Error; err != nil {
			respondError(w, http.StatusInternalServerError, err.Error())
			return
		}
		respondJSON(w, http.StatusOK, map[string]any{"message": "Notificación actualizada", "notificacion": n})
	}
}

func DeleteNotificacion(db *gorm.DB, lg *zap.SugaredLogger) http.HandlerFunc {
	return deleteByID(db, &models.Notificacion{}, "id_notificacion", "Notificación no encontrada", "Notificación eliminada")
}

// ==================== AUDITORIA ====================

func CreateAuditoria(db *gorm.DB, lg *zap.SugaredLogger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req struct {
			IDAuditoria         string          `json:"id_auditoria"`
			IDEmpresa           string          `json:"id_empresa"`
			IDUsuario           string          `json:"id_usuario"`
			TablaAfectada       string          `json:"tabla_afectada"`
			Accion              string          `json:"accion"`
			DatosAnterioresJSON json.RawMessage `json:"datos_anteriores_json"`
			DatosNuevosJSON     json.RawMessage `json:"datos_nuevos_json"`
		}
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			respondError(w, http.StatusBadRequest, err.Error())
			return
		}
		for campo, missing := range map[string]bool{
			"id_empresa":     req.IDEmpresa == "",
			"id_usuario":     req.IDUsuario == "",
			"tabla_afectada": req.TablaAfectada == "",
			"accion":         req.Accion == "",
		} {
			if missing {
				respondError(w, http.StatusBadRequest, "Falta el campo obligatorio: "+campo)
				return
			}
		}
		if req.IDAuditoria == "" {
			req.IDAuditoria = uuid.NewString()
		}
		a := models.Auditoria{
			IDAuditoria:         req.IDAuditoria,
			IDEmpresa:           req.IDEmpresa,
			IDUsuario:           req.IDUsuario,
			TablaAfectada:       req.TablaAfectada,
			Accion:              req.Accion,
			DatosAnterioresJSON: models.JSONB(req.DatosAnterioresJSON),
			DatosNuevosJSON:     models.JSONB(req.DatosNuevosJSON),
		}
		if err := db.Create(&a).Error; err != nil {
			respondError(w, http.StatusInternalServerError, err.Error())
			return
		}
		respondJSON(w, http.StatusCreated, map[string]any{"message": "Registro de auditoría creado", "auditoria": a})
	}
}

func ListAuditoria(db *gorm.DB, lg *zap.SugaredLogger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var as []models.Auditoria
		if err := db.Order("fecha_hora desc").Limit(200).Find(&as).Error; err != nil {
			respondError(w, http.StatusInternalServerError, err.Error())
			return
		}
		respondJSON(w, http.StatusOK, as)
	}
}

func GetAuditoria(db *gorm.DB, lg *zap.SugaredLogger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var a models.Auditoria
		if err := db.First(&a, "id_auditoria = ?", chi.URLParam(r, "id")).Error; err != nil {
			respondError(w, http.StatusNotFound, "Registro no encontrado")
			return
		}
		respondJSON(w, http.StatusOK, a)
	}
}

func DeleteAuditoria(db *gorm.DB, lg *zap.SugaredLogger) http.HandlerFunc {
	return deleteByID(db, &models.Auditoria{}, "id_auditoria", "Registro no encontrado", "Registro eliminado")
}
