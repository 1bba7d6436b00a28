package handlers

import (
	"encoding/json"
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"erpsaas/internal/auth"
	"erpsaas/internal/models"
)

type loginReq struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// Login authenticates a tenant user. Unknown email and wrong password share
// one generic message; an inactive account gets its own, which leaks account
// existence but matches the product's support flow.
func Login(db *gorm.DB, lg *zap.SugaredLogger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req loginReq
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			respondError(w, http.StatusBadRequest, err.Error())
			return
		}
		if req.Email == "" || req.Password == "" {
			respondError(w, http.StatusBadRequest, "Email y contraseña requeridos")
			return
		}
		var u models.Usuario
		if err := db.First(&u, "email = ?", strings.ToLower(req.Email)).Error; err != nil {
			respondError(w, http.StatusUnauthorized, "Credenciales inválidas")
			return
		}
		if err := auth.CheckPassword(u.PasswordHash, req.Password); err != nil {
			respondError(w, http.StatusUnauthorized, "Credenciales inválidas")
			return
		}
		if !u.Activo {
			respondError(w, http.StatusUnauthorized, "Usuario inactivo. Contacte al administrador.")
			return
		}
		rol := ""
		if u.IDRol != nil {
			rol = *u.IDRol
		}
		tok, _, err := auth.Sign(u.IDUsuario, rol, u.IDEmpresa)
		if err != nil {
			lg.Errorw("token sign failed", "error", err)
			respondError(w, http.StatusInternalServerError, "No se pudo generar el token")
			return
		}
		now := time.Now()
		if err := db.Model(&u).Update("ultimo_acceso", now).Error; err != nil {
			lg.Warnw("ultimo_acceso update failed", "usuario", u.IDUsuario, "error", err)
		}
		respondJSON(w, http.StatusOK, map[string]any{
			"message": "Login exitoso",
			"token":   tok,
			"usuario": map[string]any{
				"id_usuario":          u.IDUsuario,
				"nombres":             u.Nombres,
				"apellido_paterno":    u.ApellidoPaterno,
				"apellido_materno":    u.ApellidoMaterno,
				"nombre_completo_str": u.NombreVisual(),
				"email":               u.Email,
				"rol":                 rol,
				"id_empresa":          u.IDEmpresa,
			},
		})
	}
}

// Logout appends the token's jti to the revocation ledger. Calling it twice
// with the same token just adds another row; the token stays revoked either
// way.
func Logout(db *gorm.DB) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		claims := auth.FromContext(r.Context())
		if err := auth.Revoke(db, claims.ID); err != nil {
			respondError(w, http.StatusInternalServerError, "Error al cerrar sesión")
			return
		}
		respondJSON(w, http.StatusOK, map[string]string{"message": "Sesión cerrada exitosamente. Token invalidado."})
	}
}

type registroEmpresaReq struct {
	NombreEmpresa string `json:"nombre_empresa"`
	Email         string `json:"email"`
	Password      string `json:"password"`
	Nombres       string `json:"nombres"`
	Paterno       string `json:"paterno"`
	Materno       string `json:"materno"`
	Telefono      string `json:"telefono"`
}

var errEmailRegistrado = errors.New("email ya registrado")

// RegistroEmpresa is the public onboarding endpoint: one transaction creates
// the tenant, its default configuration, the PROPIETARIO user and a FREE
// subscription, then auto-issues a token. Either every row lands or none do.
func RegistroEmpresa(db *gorm.DB, lg *zap.SugaredLogger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req registroEmpresaReq
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			respondError(w, http.StatusBadRequest, err.Error())
			return
		}
		req.Email = strings.TrimSpace(strings.ToLower(req.Email))
		switch {
		case req.NombreEmpresa == "":
			respondError(w, http.StatusBadRequest, "Falta nombre empresa")
			return
		case req.Email == "":
			respondError(w, http.StatusBadRequest, "Falta email")
			return
		case req.Password == "":
			respondError(w, http.StatusBadRequest, "Falta password")
			return
		case req.Nombres == "":
			respondError(w, http.StatusBadRequest, "Falta nombres")
			return
		case req.Paterno == "":
			respondError(w, http.StatusBadRequest, "Falta apellido paterno")
			return
		}

		hash, err := auth.HashPassword(req.Password)
		if err != nil {
			respondError(w, http.StatusInternalServerError, "Error en el registro")
			return
		}

		idEmpresa := uuid.NewString()
		idUsuario := uuid.NewString()
		idSuscripcion := uuid.NewString()
		planFree := "FREE"
		rolPropietario := auth.RolPropietario

		err = db.Transaction(func(tx *gorm.DB) error {
			var n int64
			if err := tx.Model(&models.Usuario{}).Where("email = ?", req.Email).Count(&n).Error; err != nil {
				return err
			}
			if n > 0 {
				return errEmailRegistrado
			}
			if err := tx.Create(&models.Empresa{
				IDEmpresa:       idEmpresa,
				NombreComercial: req.NombreEmpresa,
				Email:           req.Email,
				Activo:          true,
			}).Error; err != nil {
				return err
			}
			if err := tx.Create(&models.ConfiguracionEmpresa{
				IDConfig:         uuid.NewString(),
				IDEmpresa:        idEmpresa,
				MonedaDefault:    "BOB",
				ImpuestoIva:      13.00,
				NotifStockMinimo: true,
				NotifVentas:      true,
				ZonaHoraria:      "America/La_Paz",
			}).Error; err != nil {
				return err
			}
			if err := tx.Create(&models.Usuario{
				IDUsuario:       idUsuario,
				IDEmpresa:       idEmpresa,
				IDRol:           &rolPropietario,
				Nombres:         req.Nombres,
				ApellidoPaterno: req.Paterno,
				ApellidoMaterno: req.Materno,
				Email:           req.Email,
				PasswordHash:    hash,
				Telefono:        req.Telefono,
				Activo:          true,
			}).Error; err != nil {
				return err
			}
			inicio := time.Now()
			return tx.Create(&models.Suscripcion{
				IDSuscripcion: idSuscripcion,
				IDEmpresa:     idEmpresa,
				IDPlan:        &planFree,
				FechaInicio:   &inicio,
				Estado:        true,
			}).Error
		})
		if errors.Is(err, errEmailRegistrado) {
			respondError(w, http.StatusBadRequest, "El email ya está registrado")
			return
		}
		if err != nil {
			lg.Errorw("registro empresa failed", "error", err)
			respondError(w, http.StatusInternalServerError, "Error en el registro: "+err.Error())
			return
		}

		tok, _, err := auth.Sign(idUsuario, auth.RolPropietario, idEmpresa)
		if err != nil {
			respondError(w, http.StatusInternalServerError, "No se pudo generar el token")
			return
		}
		respondJSON(w, http.StatusCreated, map[string]any{
			"message": "Registro exitoso. ¡Bienvenido!",
			"token":   tok,
			"empresa": map[string]any{"id": idEmpresa, "nombre": req.NombreEmpresa},
			"usuario": map[string]any{
				"id":         idUsuario,
				"nombre":     strings.TrimSpace(req.Nombres + " " + req.Paterno),
				"rol":        auth.RolPropietario,
				"id_empresa": idEmpresa,
			},
			"suscripcion": map[string]any{"id": idSuscripcion, "plan": planFree},
		})
	}
}
