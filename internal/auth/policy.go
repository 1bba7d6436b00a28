package auth

// Role labels carried as token claims. The original deployment mixed
// SUPERADMIN and SUPER_ADMIN spellings; here there is exactly one.
const (
	RolSuperAdmin  = "SUPER_ADMIN"
	RolPropietario = "PROPIETARIO"
	RolAdmin       = "ADMIN"
	RolVendedor    = "VENDEDOR"
)

// IsAuthorized decides whether rol may pass a route guarded by allowed.
// SUPER_ADMIN passes unconditionally, including routes that do not list it;
// that is the platform master key, not an accident.
func IsAuthorized(rol string, allowed []string) bool {
	if rol == RolSuperAdmin {
		return true
	}
	for _, a := range allowed {
		if a == rol {
			return true
		}
	}
	return false
}
