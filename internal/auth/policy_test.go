package auth

import "testing"

func TestIsAuthorized(t *testing.T) {
	cases := []struct {
		name    string
		rol     string
		allowed []string
		want    bool
	}{
		{"listed role passes", RolAdmin, []string{RolPropietario, RolAdmin}, true},
		{"unlisted role fails", RolVendedor, []string{RolPropietario, RolAdmin}, false},
		{"super admin passes listed", RolSuperAdmin, []string{RolSuperAdmin}, true},
		{"super admin passes unlisted", RolSuperAdmin, []string{RolVendedor}, true},
		{"super admin passes empty list", RolSuperAdmin, nil, true},
		{"empty role fails", "", []string{RolPropietario}, false},
		{"unknown role fails", "INVITADO", []string{RolPropietario, RolAdmin, RolVendedor}, false},
		{"case sensitive", "admin", []string{RolAdmin}, false},
		{"empty list denies everyone else", RolPropietario, nil, false},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if got := IsAuthorized(tc.rol, tc.allowed); got != tc.want {
				t.Fatalf("IsAuthorized(%q, %v) = %v, want %v", tc.rol, tc.allowed, got, tc.want)
			}
		})
	}
}
