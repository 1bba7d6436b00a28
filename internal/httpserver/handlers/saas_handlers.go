package handlers

import (
	"encoding/json"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"erpsaas/internal/auth"
	"erpsaas/internal/models"
)

// ==================== ADMINS SAAS ====================

func CreateAdminSaas(db *gorm.DB, lg *zap.SugaredLogger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req struct {
			Nombre   string `json:"nombre"`
			Email    string `json:"email"`
			Password string `json:"password"`
			Rol      string `json:"rol"`
		}
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			respondError(w, http.StatusBadRequest, err.Error())
			return
		}
		if req.Email == "" || req.Password == "" {
			respondError(w, http.StatusBadRequest, "Email y contraseña son obligatorios")
			return
		}
		req.Email = strings.TrimSpace(strings.ToLower(req.Email))
		var n int64
		db.Model(&models.AdminSaas{}).Where("email = ?", req.Email).Count(&n)
		if n > 0 {
			respondError(w, http.StatusBadRequest, "El email ya está registrado como administrador")
			return
		}
		if req.Rol == "" {
			req.Rol = auth.RolSuperAdmin
		}
		hash, err := auth.HashPassword(req.Password)
		if err != nil {
			respondError(w, http.StatusInternalServerError, err.Error())
			return
		}
		a := models.AdminSaas{
			IDAdmin:      uuid.NewString(),
			Nombre:       req.Nombre,
			Email:        req.Email,
			PasswordHash: hash,
			Rol:          req.Rol,
			Activo:       true,
		}
		if err := db.Create(&a).Error; err != nil {
			respondError(w, http.StatusInternalServerError, err.Error())
			return
		}
		respondJSON(w, http.StatusCreated, map[string]any{"message": "Administrador SaaS creado", "admin": a})
	}
}

// LoginSaas issues a platform token. Same credential error collapsing as the
// tenant login.
func LoginSaas(db *gorm.DB, lg *zap.SugaredLogger) http.HandlerFunc {
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
		var a models.AdminSaas
		if err := db.First(&a, "email = ?", strings.ToLower(req.Email)).Error; err != nil {
			respondError(w, http.StatusUnauthorized, "Credenciales inválidas")
			return
		}
		if err := auth.CheckPassword(a.PasswordHash, req.Password); err != nil {
			respondError(w, http.StatusUnauthorized, "Credenciales inválidas")
			return
		}
		if !a.Activo {
			respondError(w, http.StatusUnauthorized, "Cuenta desactivada")
			return
		}
		tok, _, err := auth.SignSaas(a.IDAdmin)
		if err != nil {
			lg.Errorw("token sign failed", "error", err)
			respondError(w, http.StatusInternalServerError, "No se pudo generar el token")
			return
		}
		respondJSON(w, http.StatusOK, map[string]any{
			"message": "Login exitoso",
			"token":   tok,
			"admin":   map[string]any{"id": a.IDAdmin, "nombre": a.Nombre, "email": a.Email},
		})
	}
}

func LogoutSaas(db *gorm.DB) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		claims := auth.FromContext(r.Context())
		if err := auth.Revoke(db, claims.ID); err != nil {
			respondError(w, http.StatusInternalServerError, "Error al cerrar sesión: "+err.Error())
			return
		}
		respondJSON(w, http.StatusOK, map[string]string{"message": "Admin SaaS: Sesión cerrada correctamente"})
	}
}

func ListAdminsSaas(db *gorm.DB, lg *zap.SugaredLogger) http.HandlerFunc {
	return listAdminsByEstado(db, true)
}

func ListAdminsSaasInactivos(db *gorm.DB, lg *zap.SugaredLogger) http.HandlerFunc {
	return listAdminsByEstado(db, false)
}

func listAdminsByEstado(db *gorm.DB, activo bool) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var as []models.AdminSaas
		if err := db.Where("activo = ?", activo).Find(&as).Error; err != nil {
			respondError(w, http.StatusInternalServerError, err.Error())
			return
		}
		respondJSON(w, http.StatusOK, as)
	}
}

func GetAdminSaas(db *gorm.DB, lg *zap.SugaredLogger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var a models.AdminSaas
		if err := db.First(&a, "id_admin = ?", chi.URLParam(r, "id")).Error; err != nil {
			respondError(w, http.StatusNotFound, "Administrador no encontrado")
			return
		}
		respondJSON(w, http.StatusOK, a)
	}
}

func UpdateAdminSaas(db *gorm.DB, lg *zap.SugaredLogger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id := chi.URLParam(r, "id")
		var a models.AdminSaas
		if err := db.First(&a, "id_admin = ?", id).Error; err != nil {
			respondError(w, http.StatusNotFound, "Administrador no encontrado")
			return
		}
		var req struct {
			Nombre   *string `json:"nombre"`
			Email    *string `json:"email"`
			Password *string `json:"password"`
		}
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			respondError(w, http.StatusBadRequest, err.Error())
			return
		}
		if req.Nombre != nil {
			a.Nombre = *req.Nombre
		}
		if req.Email != nil {
			email := strings.TrimSpace(strings.ToLower(*req.Email))
			var other models.AdminSaas
			if err := db.First(&other, "email = ?", email).Error; err == nil && other.IDAdmin != id {
				respondError(w, http.StatusBadRequest, "El email ya está en uso")
				return
			}
			a.Email = email
		}
		if req.Password != nil && *req.Password != "" {
			hash, err := auth.HashPassword(*req.Password)
			if err != nil {
				respondError(w, http.StatusInternalServerError, err.Error())
				return
			}
			a.PasswordHash = hash
		}
		if err := db.Save(&a).Error; err != nil {
			respondError(w, http.StatusInternalServerError, err.Error())
			return
		}
		respondJSON(w, http.StatusOK, map[string]any{"message": "Administrador actualizado", "admin": a})
	}
}

func DesactivarAdminSaas(db *gorm.DB, lg *zap.SugaredLogger) http.HandlerFunc {
	return setAdminEstado(db, false, "Administrador desactivado correctamente")
}

func ActivarAdminSaas(db *gorm.DB, lg *zap.SugaredLogger) http.HandlerFunc {
	return setAdminEstado(db, true, "Administrador activado correctamente")
}

func setAdminEstado(db *gorm.DB, activo bool, msg string) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var a models.AdminSaas
		if err := db.First(&a, "id_admin = ?", chi.URLParam(r, "id")).Error; err != nil {
			respondError(w, http.StatusNotFound, "Administrador no encontrado")
			return
		}
		if err := db.Model(&a).Update("activo", activo).Error; err != nil {
			respondError(w, http.StatusInternalServerError, err.Error())
			return
		}
		respondJSON(w, http.StatusOK, map[string]string{"message": msg})
	}
}

// ==================== PLANES ====================

func CreatePlan(db *gorm.DB, lg *zap.SugaredLogger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req struct {
			IDPlan                  string  `json:"id_plan"`
			IDAdmin                 *string `json:"id_admin"`
			Nombre                  string  `json:"nombre"`
			PrecioMensual           float64 `json:"precio_mensual"`
			MaxUsuarios             int     `json:"max_usuarios"`
			MaxProductos            int     `json:"max_productos"`
			AccesoReportesAvanzados bool    `json:"acceso_reportes_avanzados"`
			Activo                  *bool   `json:"activo"`
		}
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			respondError(w, http.StatusBadRequest, err.Error())
			return
		}
		if req.IDPlan == "" {
			respondError(w, http.StatusBadRequest, "El id_plan (código único) es obligatorio")
			return
		}
		var n int64
		db.Model(&models.Plan{}).Where("id_plan = ?", req.IDPlan).Count(&n)
		if n > 0 {
			respondError(w, http.StatusBadRequest, "Ya existe un plan con ese ID")
			return
		}
		p := models.Plan{
			IDPlan:                  req.IDPlan,
			IDAdmin:                 req.IDAdmin,
			Nombre:                  req.Nombre,
			PrecioMensual:           req.PrecioMensual,
			MaxUsuarios:             req.MaxUsuarios,
			MaxProductos:            req.MaxProductos,
			AccesoReportesAvanzados: req.AccesoReportesAvanzados,
			Activo:                  true,
		}
		if req.Activo != nil {
			p.Activo = *req.Activo
		}
		if err := db.Create(&p).Error; err != nil {
			respondError(w, http.StatusInternalServerError, err.Error())
			return
		}
		respondJSON(w, http.StatusCreated, map[string]any{"message": "Plan creado correctamente", "plan": p})
	}
}

func ListPlanes(db *gorm.DB, lg *zap.SugaredLogger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var ps []models.Plan
		if err := db.Find(&ps).Error; err != nil {
			respondError(w, http.StatusInternalServerError, err.Error())
			return
		}
		respondJSON(w, http.StatusOK, ps)
	}
}

func GetPlan(db *gorm.DB, lg *zap.SugaredLogger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var p models.Plan
		if err := db.First(&p, "id_plan = ?", chi.URLParam(r, "id")).Error; err != nil {
			respondError(w, http.StatusNotFound, "Plan no encontrado")
			return
		}
		respondJSON(w, http.StatusOK, p)
	}
}

func UpdatePlan(db *gorm.DB, lg *zap.SugaredLogger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var p models.Plan
		if err := db.First(&p, "id_plan = ?", chi.URLParam(r, "id")).Error; err != nil {
			respondError(w, http.StatusNotFound, "Plan no encontrado")
			return
		}
		var req struct {
			Nombre                  *string  `json:"nombre"`
			PrecioMensual           *float64 `json:"precio_mensual"`
			MaxUsuarios             *int     `json:"max_usuarios"`
			MaxProductos            *int     `json:"max_productos"`
			AccesoReportesAvanzados *bool    `json:"acceso_reportes_avanzados"`
			Activo                  *bool    `json:"activo"`
		}
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			respondError(w, http.StatusBadRequest, err.Error())
			return
		}
		if req.Nombre != nil {
			p.Nombre = *req.Nombre
		}
		if req.PrecioMensual != nil {
			p.PrecioMensual = *req.PrecioMensual
		}
		if req.MaxUsuarios != nil {
			p.MaxUsuarios = *req.MaxUsuarios
		}
		if req.MaxProductos != nil {
			p.MaxProductos = *req.MaxProductos
		}
		if req.AccesoReportesAvanzados != nil {
			p.AccesoReportesAvanzados = *req.AccesoReportesAvanzados
		}
		if req.Activo != nil {
			p.Activo = *req.Activo
		}
		if err := db.Save(&p).Error; err != nil {
			respondError(w, http.StatusInternalServerError, err.Error())
			return
		}
		respondJSON(w, http.StatusOK, map[string]any{"message": "Plan actualizado", "plan": p})
	}
}

func DeletePlan(db *gorm.DB, lg *zap.SugaredLogger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var p models.Plan
		if err := db.First(&p, "id_plan = ?", chi.URLParam(r, "id")).Error; err != nil {
			respondError(w, http.StatusNotFound, "Plan no encontrado")
			return
		}
		if err := db.Delete(&p).Error; err != nil {
			respondError(w, http.StatusInternalServerError, "No se puede eliminar el plan (posiblemente en uso): "+err.Error())
			return
		}
		respondJSON(w, http.StatusOK, map[string]string{"message": "Plan eliminado"})
	}
}

// ==================== SUSCRIPCIONES ====================

func CreateSuscripcion(db *gorm.DB, lg *zap.SugaredLogger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req struct {
			IDSuscripcion string     `json:"id_suscripcion"`
			IDEmpresa     string     `json:"id_empresa"`
			IDPlan        string     `json:"id_plan"`
			FechaInicio   *time.Time `json:"fecha_inicio"`
			FechaFin      *time.Time `json:"fecha_fin"`
			Estado        *bool      `json:"estado"`
		}
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			respondError(w, http.StatusBadRequest, err.Error())
			return
		}
		if req.IDEmpresa == "" || req.IDPlan == "" {
			respondError(w, http.StatusBadRequest, "id_empresa e id_plan son obligatorios")
			return
		}
		if req.IDSuscripcion == "" {
			req.IDSuscripcion = uuid.NewString()
		}
		s := models.Suscripcion{
			IDSuscripcion: req.IDSuscripcion,
			IDEmpresa:     req.IDEmpresa,
			IDPlan:        &req.IDPlan,
			FechaInicio:   req.FechaInicio,
			FechaFin:      req.FechaFin,
			Estado:        true,
		}
		if req.Estado != nil {
			s.Estado = *req.Estado
		}
		if err := db.Create(&s).Error; err != nil {
			respondError(w, http.StatusInternalServerError, err.Error())
			return
		}
		respondJSON(w, http.StatusCreated, map[string]any{"message": "Suscripción registrada", "suscripcion": s})
	}
}

func ListSuscripciones(db *gorm.DB, lg *zap.SugaredLogger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var subs []models.Suscripcion
		if err := db.Preload("Empresa").Preload("Plan").Find(&subs).Error; err != nil {
			respondError(w, http.StatusInternalServerError, err.Error())
			return
		}
		out := make([]map[string]any, 0, len(subs))
		for _, s := range subs {
			item := map[string]any{
				"id_suscripcion": s.IDSuscripcion,
				"id_empresa":     s.IDEmpresa,
				"id_plan":        s.IDPlan,
				"fecha_inicio":   s.FechaInicio,
				"fecha_fin":      s.FechaFin,
				"estado":         s.Estado,
				"empresa": map[string]any{
					"nombre_comercial": s.Empresa.NombreComercial,
					"razon_social":     s.Empresa.RazonSocial,
					"email":            s.Empresa.Email,
				},
			}
			if s.Plan != nil {
				item["plan"] = map[string]any{
					"nombre":         s.Plan.Nombre,
					"precio_mensual": s.Plan.PrecioMensual,
				}
			}
			out = append(out, item)
		}
		respondJSON(w, http.StatusOK, out)
	}
}

func GetSuscripcionesEmpresa(db *gorm.DB, lg *zap.SugaredLogger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var subs []models.Suscripcion
		err := db.Where("id_empresa = ?", chi.URLParam(r, "id")).Find(&subs).Error
		if err != nil {
			respondError(w, http.StatusInternalServerError, err.Error())
			return
		}
		respondJSON(w, http.StatusOK, subs)
	}
}

func UpdateSuscripcion(db *gorm.DB, lg *zap.SugaredLogger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var s models.Suscripcion
		if err := db.First(&s, "id_suscripcion = ?", chi.URLParam(r, "id")).Error; err != nil {
			respondError(w, http.StatusNotFound, "Suscripción no encontrada")
			return
		}
		var req struct {
			IDPlan      *string    `json:"id_plan"`
			Estado      *bool      `json:"estado"`
			FechaInicio *time.Time `json:"fecha_inicio"`
			FechaFin    *time.Time `json:"fecha_fin"`
		}
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			respondError(w, http.StatusBadRequest, err.Error())
			return
		}
		if req.IDPlan != nil {
			s.IDPlan = req.IDPlan
		}
		if req.Estado != nil {
			s.Estado = *req.Estado
		}
		if req.FechaInicio != nil {
			s.FechaInicio = req.FechaInicio
		}
		if req.FechaFin != nil {
			s.FechaFin = req.FechaFin
		}
		if err := db.Save(&s).Error; err != nil {
			respondError(w, http.StatusInternalServerError, err.Error())
			return
		}
		respondJSON(w, http.StatusOK, map[string]any{"message": "Suscripción actualizada", "suscripcion": s})
	}
}

// ==================== DASHBOARD ====================

// DashboardEstadisticas aggregates the SaaS panel counters. Revenue is the
// sum of plan prices over active subscriptions.
func DashboardEstadisticas(db *gorm.DB, lg *zap.SugaredLogger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var totalEmpresas, empresasActivas int64
		db.Model(&models.Empresa{}).Count(&totalEmpresas)
		db.Model(&models.Empresa{}).Where("activo = ?", true).Count(&empresasActivas)

		var free, basic, premium, pendientes int64
		db.Model(&models.Suscripcion{}).Where("id_plan = ? AND estado = ?", "FREE", true).Count(&free)
		db.Model(&models.Suscripcion{}).Where("id_plan = ? AND estado = ?", "BASIC", true).Count(&basic)
		db.Model(&models.Suscripcion{}).Where("id_plan = ? AND estado = ?", "PREMIUM", true).Count(&premium)
		db.Model(&models.Suscripcion{}).Where("estado = ?", false).Count(&pendientes)

		var ingresos float64
		db.Model(&models.Suscripcion{}).
			Joins("JOIN plans ON plans.id_plan = suscripcions.id_plan").
			Where("suscripcions.estado = ?", true).
			Select("COALESCE(SUM(plans.precio_mensual), 0)").
			Scan(&ingresos)

		respondJSON(w, http.StatusOK, map[string]any{
			"empresas": map[string]int64{
				"total":     totalEmpresas,
				"activas":   empresasActivas,
				"inactivas": totalEmpresas - empresasActivas,
			},
			"suscripciones": map[string]int64{
				"free":    free,
				"basic":   basic,
				"premium": premium,
			},
			"ingresos":        ingresos,
			"pagosPendientes": pendientes,
		})
	}
}

func EmpresasRecientes(db *gorm.DB, lg *zap.SugaredLogger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		limit := 10
		if s := r.URL.Query().Get("limit"); s != "" {
			if n, err := strconv.Atoi(s); err == nil && n > 0 {
				limit = n
			}
		}
		var empresas []models.Empresa
		if err := db.Order("fecha_registro desc").Limit(limit).Find(&empresas).Error; err != nil {
			respondError(w, http.StatusInternalServerError, err.Error())
			return
		}
		out := make([]map[string]any, 0, len(empresas))
		for _, e := range empresas {
			plan := "Sin plan"
			var sub models.Suscripcion
			if err := db.Preload("Plan").First(&sub, "id_empresa = ? AND estado = ?", e.IDEmpresa, true).Error; err == nil {
				if sub.Plan != nil {
					plan = sub.Plan.Nombre
				} else {
					plan = "N/A"
				}
			}
			out = append(out, map[string]any{
				"id_empresa":       e.IDEmpresa,
				"nombre_comercial": e.NombreComercial,
				"email":            e.Email,
				"fecha_registro":   e.FechaRegistro,
				"activo":           e.Activo,
				"plan":             plan,
			})
		}
		respondJSON(w, http.StatusOK, out)
	}
}

// PagosPendientes lists subscriptions awaiting payment validation
// (estado false).
func PagosPendientes(db *gorm.DB, lg *zap.SugaredLogger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var subs []models.Suscripcion
		if err := db.Preload("Empresa").Preload("Plan").Where("estado = ?", false).Find(&subs).Error; err != nil {
			respondError(w, http.StatusInternalServerError, err.Error())
			return
		}
		out := make([]map[string]any, 0, len(subs))
		for _, s := range subs {
			item := map[string]any{
				"id_suscripcion":   s.IDSuscripcion,
				"id_empresa":       s.IDEmpresa,
				"nombre_comercial": s.Empresa.NombreComercial,
				"fecha_inicio":     s.FechaInicio,
				"fecha_fin":        s.FechaFin,
			}
			if s.Plan != nil {
				item["plan"] = s.Plan.Nombre
				item["precio_mensual"] = s.Plan.PrecioMensual
			}
			out = append(out, item)
		}
		respondJSON(w, http.StatusOK, out)
	}
}

// EmpresasConPropietarios joins every tenant with its PROPIETARIO account for
// the SaaS panel listing.
func EmpresasConPropietarios(db *gorm.DB, lg *zap.SugaredLogger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var empresas []models.Empresa
		if err := db.Find(&empresas).Error; err != nil {
			respondError(w, http.StatusInternalServerError, err.Error())
			return
		}
		out := make([]map[string]any, 0, len(empresas))
		for _, e := range empresas {
			item := map[string]any{
				"id_empresa":       e.IDEmpresa,
				"nombre_comercial": e.NombreComercial,
				"email":            e.Email,
				"telefono":         e.Telefono,
				"fecha_registro":   e.FechaRegistro,
				"activo":           e.Activo,
			}
			var owner models.Usuario
			if err := db.First(&owner, "id_empresa = ? AND id_rol = ?", e.IDEmpresa, auth.RolPropietario).Error; err == nil {
				item["propietario"] = map[string]any{
					"id_usuario": owner.IDUsuario,
					"nombre":     owner.NombreVisual(),
					"email":      owner.Email,
					"telefono":   owner.Telefono,
				}
			}
			out = append(out, item)
		}
		respondJSON(w, http.StatusOK, out)
	}
}
