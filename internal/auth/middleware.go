package auth

import (
	"encoding/json"
	"net/http"
	"strings"

	"gorm.io/gorm"
)

func writeError(w http.ResponseWriter, status int, msg string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(map[string]string{"error": msg})
}

// JWTAuth verifies the bearer token and consults the revocation ledger.
// The revocation check runs before any role logic so that a revoked
// SUPER_ADMIN token is still rejected.
func JWTAuth(db *gorm.DB) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			h := r.Header.Get("Authorization")
			if !strings.HasPrefix(h, "Bearer ") {
				writeError(w, http.StatusUnauthorized, "Falta el token de acceso")
				return
			}
			claims, err := Verify(strings.TrimPrefix(h, "Bearer "))
			if err != nil {
				writeError(w, http.StatusUnauthorized, "Token inválido o expirado")
				return
			}
			revoked, err := IsRevoked(db, claims.ID)
			if err != nil {
				writeError(w, http.StatusInternalServerError, "Error al validar la sesión")
				return
			}
			if claims.ID == "" || revoked {
				writeError(w, http.StatusUnauthorized, "Token revocado")
				return
			}
			next.ServeHTTP(w, r.WithContext(WithClaims(r.Context(), claims)))
		})
	}
}

// RequireRoles guards a route with a static allow-list.
func RequireRoles(roles ...string) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if !IsAuthorized(FromContext(r.Context()).Rol, roles) {
				writeError(w, http.StatusForbidden, "Acceso denegado: No tienes permisos suficientes")
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}
