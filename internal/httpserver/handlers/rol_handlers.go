package handlers

import (
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"erpsaas/internal/models"
)

func CreateRol(db *gorm.DB, lg *zap.SugaredLogger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req struct {
			IDRol        string          `json:"id_rol"`
			Nombre       string          `json:"nombre"`
			PermisosJSON json.RawMessage `json:"permisos_json"`
			Descripcion  string          `json:"descripcion"`
		}
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			respondError(w, http.StatusBadRequest, err.Error())
			return
		}
		if req.IDRol == "" {
			req.IDRol = uuid.NewString()
		}
		var n int64
		db.Model(&models.Rol{}).Where("id_rol = ?", req.IDRol).Count(&n)
		if n > 0 {
			respondError(w, http.StatusBadRequest, fmt.Sprintf("El rol %s ya existe", req.IDRol))
			return
		}
		rol := models.Rol{
			IDRol:        req.IDRol,
			Nombre:       req.Nombre,
			PermisosJSON: models.JSONB(req.PermisosJSON),
			Descripcion:  req.Descripcion,
		}
		if err := db.Create(&rol).Error; err != nil {
			respondError(w, http.StatusInternalServerError, err.Error())
			return
		}
		respondJSON(w, http.StatusCreated, map[string]any{"message": "Rol creado exitosamente", "rol": rol})
	}
}

func ListRoles(db *gorm.DB, lg *zap.SugaredLogger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var roles []models.Rol
		if err := db.Find(&roles).Error; err != nil {
			respondError(w, http.StatusInternalServerError, err.Error())
			return
		}
		respondJSON(w, http.StatusOK, roles)
	}
}

func GetRol(db *gorm.DB, lg *zap.SugaredLogger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var rol models.Rol
		if err := db.First(&rol, "id_rol = ?", chi.URLParam(r, "id")).Error; err != nil {
			respondError(w, http.StatusNotFound, "Rol no encontrado")
			return
		}
		respondJSON(w, http.StatusOK, rol)
	}
}

func UpdateRol(db *gorm.DB, lg *zap.SugaredLogger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var rol models.Rol
		if err := db.First(&rol, "id_rol = ?", chi.URLParam(r, "id")).Error; err != nil {
			respondError(w, http.StatusNotFound, "Rol no encontrado")
			return
		}
		var req struct {
			Nombre       *string         `json:"nombre"`
			PermisosJSON json.RawMessage `json:"permisos_json"`
			Descripcion  *string         `json:"descripcion"`
		}
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			respondError(w, http.StatusBadRequest, err.Error())
			return
		}
		if req.Nombre != nil {
			rol.Nombre = *req.Nombre
		}
		if req.PermisosJSON != nil {
			rol.PermisosJSON = models.JSONB(req.PermisosJSON)
		}
		if req.Descripcion != nil {
			rol.Descripcion = *req.Descripcion
		}
		if err := db.Save(&rol).Error; err != nil {
			respondError(w, http.StatusInternalServerError, err.Error())
			return
		}
		respondJSON(w, http.StatusOK, map[string]any{"message": "Rol actualizado", "rol": rol})
	}
}

// DeleteRol removes a role. Users referencing it keep working: the FK sets
// their id_rol to null and they simply lose the role until reassigned.
func DeleteRol(db *gorm.DB, lg *zap.SugaredLogger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var rol models.Rol
		if err := db.First(&rol, "id_rol = ?", chi.URLParam(r, "id")).Error; err != nil {
			respondError(w, http.StatusNotFound, "Rol no encontrado")
			return
		}
		if err := db.Delete(&rol).Error; err != nil {
			respondError(w, http.StatusInternalServerError, "Error al eliminar el rol: "+err.Error())
			return
		}
		respondJSON(w, http.StatusOK, map[string]string{"message": "Rol eliminado correctamente"})
	}
}
