package auth

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"gorm.io/gorm"
)

func protectedRoute(db *gorm.DB, allowed ...string) http.Handler {
	final := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	})
	var h http.Handler = final
	if len(allowed) > 0 {
		h = RequireRoles(allowed...)(h)
	}
	return JWTAuth(db)(h)
}

func errorBody(t *testing.T, rec *httptest.ResponseRecorder) string {
	t.Helper()
	var body map[string]string
	if err := json.NewDecoder(rec.Body).Decode(&body); err != nil {
		t.Fatalf("decode body: %v", err)
	}
	return body["error"]
}

func TestJWTAuthMissingToken(t *testing.T) {
	db, _ := newTestDB(t)
	rec := httptest.NewRecorder()
	protectedRoute(db).ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/", nil))
	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("status = %d, want 401", rec.Code)
	}
	if msg := errorBody(t, rec); msg != "Falta el token de acceso" {
		t.Fatalf("unexpected error: %q", msg)
	}
}

func TestJWTAuthExpiredToken(t *testing.T) {
	t.Setenv("JWT_SECRET", "test-secret")
	t.Setenv("JWT_EXPIRES_IN", "-1m")
	db, _ := newTestDB(t)

	tok, _, err := Sign("usr-1", RolSuperAdmin, "emp-1")
	if err != nil {
		t.Fatalf("Sign: %v", err)
	}
	// Expiry is checked before the ledger, so no query is expected.
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set("Authorization", "Bearer "+tok)
	rec := httptest.NewRecorder()
	protectedRoute(db).ServeHTTP(rec, req)
	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("status = %d, want 401", rec.Code)
	}
	if msg := errorBody(t, rec); msg != "Token inválido o expirado" {
		t.Fatalf("unexpected error: %q", msg)
	}
}

func TestJWTAuthRevokedSuperAdmin(t *testing.T) {
	t.Setenv("JWT_SECRET", "test-secret")
	db, mock := newTestDB(t)

	tok, _, err := Sign("usr-root", RolSuperAdmin, "")
	if err != nil {
		t.Fatalf("Sign: %v", err)
	}
	mock.ExpectQuery(`SELECT count\(\*\) FROM "token_revocados"`).
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(1))

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set("Authorization", "Bearer "+tok)
	rec := httptest.NewRecorder()
	protectedRoute(db, RolSuperAdmin).ServeHTTP(rec, req)
	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("status = %d, want 401: revocation outranks SUPER_ADMIN", rec.Code)
	}
	if msg := errorBody(t, rec); msg != "Token revocado" {
		t.Fatalf("unexpected error: %q", msg)
	}
}

func TestRequireRolesForbidden(t *testing.T) {
	t.Setenv("JWT_SECRET", "test-secret")
	db, mock := newTestDB(t)

	tok, _, err := Sign("usr-2", RolVendedor, "emp-1")
	if err != nil {
		t.Fatalf("Sign: %v", err)
	}
	mock.ExpectQuery(`SELECT count\(\*\) FROM "token_revocados"`).
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(0))

	req := httptest.NewRequest(http.MethodDelete, "/", nil)
	req.Header.Set("Authorization", "Bearer "+tok)
	rec := httptest.NewRecorder()
	protectedRoute(db, RolPropietario, RolAdmin).ServeHTTP(rec, req)
	if rec.Code != http.StatusForbidden {
		t.Fatalf("status = %d, want 403", rec.Code)
	}
	if msg := errorBody(t, rec); msg != "Acceso denegado: No tienes permisos suficientes" {
		t.Fatalf("unexpected error: %q", msg)
	}
}

func TestRequireRolesAllowed(t *testing.T) {
	t.Setenv("JWT_SECRET", "test-secret")
	db, mock := newTestDB(t)

	tok, _, err := Sign("usr-2", RolAdmin, "emp-1")
	if err != nil {
		t.Fatalf("Sign: %v", err)
	}
	mock.ExpectQuery(`SELECT count\(\*\) FROM "token_revocados"`).
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(0))

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set("Authorization", "Bearer "+tok)
	rec := httptest.NewRecorder()
	protectedRoute(db, RolPropietario, RolAdmin).ServeHTTP(rec, req)
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", rec.Code)
	}
}

func TestRequireRolesSuperAdminOverride(t *testing.T) {
	t.Setenv("JWT_SECRET", "test-secret")
	db, mock := newTestDB(t)

	tok, _, err := Sign("usr-root", RolSuperAdmin, "")
	if err != nil {
		t.Fatalf("Sign: %v", err)
	}
	mock.ExpectQuery(`SELECT count\(\*\) FROM "token_revocados"`).
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(0))

	// SUPER_ADMIN is not on the list and still passes.
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set("Authorization", "Bearer "+tok)
	rec := httptest.NewRecorder()
	protectedRoute(db, RolVendedor).ServeHTTP(rec, req)
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", rec.Code)
	}
}
