package handlers

import (
	"encoding/json"
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"erpsaas/internal/auth"
	"erpsaas/internal/models"
)

type createUsuarioReq struct {
	IDUsuario       string `json:"id_usuario"`
	IDEmpresa       string `json:"id_empresa"`
	IDRol           string `json:"id_rol"`
	Nombres         string `json:"nombres"`
	ApellidoPaterno string `json:"apellido_paterno"`
	ApellidoMaterno string `json:"apellido_materno"`
	Email           string `json:"email"`
	Password        string `json:"password"`
	Telefono        string `json:"telefono"`
}

func CreateUsuario(db *gorm.DB, lg *zap.SugaredLogger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req createUsuarioReq
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			respondError(w, http.StatusBadRequest, err.Error())
			return
		}
		if req.Password == "" {
			respondError(w, http.StatusBadRequest, "La contraseña es obligatoria")
			return
		}
		if req.Email == "" {
			respondError(w, http.StatusBadRequest, "El email es obligatorio")
			return
		}
		req.Email = strings.TrimSpace(strings.ToLower(req.Email))
		var n int64
		db.Model(&models.Usuario{}).Where("email = ?", req.Email).Count(&n)
		if n > 0 {
			respondError(w, http.StatusBadRequest, "El email ya está registrado")
			return
		}
		if req.IDUsuario == "" {
			req.IDUsuario = uuid.NewString()
		}
		hash, err := auth.HashPassword(req.Password)
		if err != nil {
			respondError(w, http.StatusInternalServerError, err.Error())
			return
		}
		var idRol *string
		if req.IDRol != "" {
			idRol = &req.IDRol
		}
		u := models.Usuario{
			IDUsuario:       req.IDUsuario,
			IDEmpresa:       req.IDEmpresa,
			IDRol:           idRol,
			Nombres:         req.Nombres,
			ApellidoPaterno: req.ApellidoPaterno,
			ApellidoMaterno: req.ApellidoMaterno,
			Email:           req.Email,
			PasswordHash:    hash,
			Telefono:        req.Telefono,
			Activo:          true,
		}
		if err := db.Create(&u).Error; err != nil {
			respondError(w, http.StatusInternalServerError, err.Error())
			return
		}
		respondJSON(w, http.StatusCreated, map[string]any{"message": "Usuario registrado", "usuario": u})
	}
}

// ListUsuarios returns active users of the caller's tenant. SUPER_ADMIN sees
// every tenant.
func ListUsuarios(db *gorm.DB, lg *zap.SugaredLogger) http.HandlerFunc {
	return listUsuariosByEstado(db, true)
}

func ListUsuariosInactivos(db *gorm.DB, lg *zap.SugaredLogger) http.HandlerFunc {
	return listUsuariosByEstado(db, false)
}

func listUsuariosByEstado(db *gorm.DB, activo bool) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		claims := auth.FromContext(r.Context())
		q := db.Where("activo = ?", activo)
		if claims.Rol != auth.RolSuperAdmin {
			q = q.Where("id_empresa = ?", claims.IDEmpresa)
		}
		var us []models.Usuario
		if err := q.Find(&us).Error; err != nil {
			respondError(w, http.StatusInternalServerError, err.Error())
			return
		}
		respondJSON(w, http.StatusOK, us)
	}
}

func GetUsuario(db *gorm.DB, lg *zap.SugaredLogger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var u models.Usuario
		if err := db.First(&u, "id_usuario = ?", chi.URLParam(r, "id")).Error; err != nil {
			respondError(w, http.StatusNotFound, "Usuario no encontrado")
			return
		}
		respondJSON(w, http.StatusOK, u)
	}
}

func UpdateUsuario(db *gorm.DB, lg *zap.SugaredLogger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var u models.Usuario
		if err := db.First(&u, "id_usuario = ?", chi.URLParam(r, "id")).Error; err != nil {
			respondError(w, http.StatusNotFound, "Usuario no encontrado")
			return
		}
		var req struct {
			Nombres         *string `json:"nombres"`
			ApellidoPaterno *string `json:"apellido_paterno"`
			ApellidoMaterno *string `json:"apellido_materno"`
			Email           *string `json:"email"`
			IDRol           *string `json:"id_rol"`
			Telefono        *string `json:"telefono"`
			Activo          *bool   `json:"activo"`
			Password        *string `json:"password"`
		}
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			respondError(w, http.StatusBadRequest, err.Error())
			return
		}
		if req.Nombres != nil {
			u.Nombres = *req.Nombres
		}
		if req.ApellidoPaterno != nil {
			u.ApellidoPaterno = *req.ApellidoPaterno
		}
		if req.ApellidoMaterno != nil {
			u.ApellidoMaterno = *req.ApellidoMaterno
		}
		if req.Email != nil {
			u.Email = strings.TrimSpace(strings.ToLower(*req.Email))
		}
		if req.IDRol != nil {
			u.IDRol = req.IDRol
		}
		if req.Telefono != nil {
			u.Telefono = *req.Telefono
		}
		if req.Activo != nil {
			u.Activo = *req.Activo
		}
		if req.Password != nil && *req.Password != "" {
			hash, err := auth.HashPassword(*req.Password)
			if err != nil {
				respondError(w, http.StatusInternalServerError, err.Error())
				return
			}
			u.PasswordHash = hash
		}
		if err := db.Save(&u).Error; err != nil {
			respondError(w, http.StatusInternalServerError, err.Error())
			return
		}
		respondJSON(w, http.StatusOK, map[string]any{"message": "Usuario actualizado", "usuario": u})
	}
}

// DesactivarUsuario is the soft delete. The PROPIETARIO cannot be deactivated;
// the tenant would lock itself out.
func DesactivarUsuario(db *gorm.DB, lg *zap.SugaredLogger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var u models.Usuario
		if err := db.First(&u, "id_usuario = ?", chi.URLParam(r, "id")).Error; err != nil {
			respondError(w, http.StatusNotFound, "Usuario no encontrado")
			return
		}
		if u.IDRol != nil && *u.IDRol == auth.RolPropietario {
			respondError(w, http.StatusBadRequest, "No se puede desactivar al propietario de la empresa")
			return
		}
		if err := db.Model(&u).Update("activo", false).Error; err != nil {
			respondError(w, http.StatusInternalServerError, err.Error())
			return
		}
		respondJSON(w, http.StatusOK, map[string]string{"message": "Usuario desactivado correctamente"})
	}
}

func ActivarUsuario(db *gorm.DB, lg *zap.SugaredLogger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var u models.Usuario
		if err := db.First(&u, "id_usuario = ?", chi.URLParam(r, "id")).Error; err != nil {
			respondError(w, http.StatusNotFound, "Usuario no encontrado")
			return
		}
		if err := db.Model(&u).Update("activo", true).Error; err != nil {
			respondError(w, http.StatusInternalServerError, err.Error())
			return
		}
		respondJSON(w, http.StatusOK, map[string]string{"message": "Usuario activado correctamente"})
	}
}

// DeleteUsuario is the hard delete, reserved for SUPER_ADMIN.
func DeleteUsuario(db *gorm.DB, lg *zap.SugaredLogger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var u models.Usuario
		if err := db.First(&u, "id_usuario = ?", chi.URLParam(r, "id")).Error; err != nil {
			respondError(w, http.StatusNotFound, "Usuario no encontrado")
			return
		}
		if err := db.Delete(&u).Error; err != nil {
			respondError(w, http.StatusInternalServerError, err.Error())
			return
		}
		respondJSON(w, http.StatusOK, map[string]string{"message": "Usuario eliminado correctamente"})
	}
}
