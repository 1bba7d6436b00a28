package httpserver

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"go.uber.org/zap"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"

	"erpsaas/internal/auth"
)

func newTestRouter(t *testing.T) (http.Handler, sqlmock.Sqlmock) {
	t.Helper()
	conn, mock, err := sqlmock.New(sqlmock.QueryMatcherOption(sqlmock.QueryMatcherRegexp))
	if err != nil {
		t.Fatalf("sqlmock.New: %v", err)
	}
	t.Cleanup(func() { conn.Close() })
	db, err := gorm.Open(postgres.New(postgres.Config{Conn: conn, PreferSimpleProtocol: true}), &gorm.Config{
		SkipDefaultTransaction: true,
		DisableAutomaticPing:   true,
		Logger:                 gormlogger.Default.LogMode(gormlogger.Silent),
	})
	if err != nil {
		t.Fatalf("gorm.Open: %v", err)
	}
	return NewRouter(db, zap.NewNop().Sugar()), mock
}

func TestHealthz(t *testing.T) {
	r, _ := newTestRouter(t)
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/healthz", nil))
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", rec.Code)
	}
}

func TestProtectedRouteWithoutToken(t *testing.T) {
	r, _ := newTestRouter(t)
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/usuarios", nil))
	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("status = %d, want 401", rec.Code)
	}
}

func TestVendedorCannotTouchCompras(t *testing.T) {
	t.Setenv("JWT_SECRET", "test-secret")
	r, mock := newTestRouter(t)

	tok, _, err := auth.Sign("usr-2", auth.RolVendedor, "emp-1")
	if err != nil {
		t.Fatalf("Sign: %v", err)
	}
	mock.ExpectQuery(`SELECT count\(\*\) FROM "token_revocados"`).
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(0))

	req := httptest.NewRequest(http.MethodGet, "/api/compras", nil)
	req.Header.Set("Authorization", "Bearer "+tok)
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, req)

	if rec.Code != http.StatusForbidden {
		t.Fatalf("status = %d, want 403", rec.Code)
	}
	var body map[string]string
	if err := json.NewDecoder(rec.Body).Decode(&body); err != nil {
		t.Fatalf("decode body: %v", err)
	}
	if body["error"] != "Acceso denegado: No tienes permisos suficientes" {
		t.Fatalf("unexpected error: %q", body["error"])
	}
}

func TestPropietarioReadsOwnSuscripcion(t *testing.T) {
	t.Setenv("JWT_SECRET", "test-secret")
	r, mock := newTestRouter(t)

	tok, _, err := auth.Sign("usr-1", auth.RolPropietario, "emp-1")
	if err != nil {
		t.Fatalf("Sign: %v", err)
	}
	mock.ExpectQuery(`SELECT count\(\*\) FROM "token_revocados"`).
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(0))
	mock.ExpectQuery(`SELECT \* FROM "suscripcions" WHERE id_empresa = \$1`).
		WillReturnRows(sqlmock.NewRows([]string{"id_suscripcion", "id_empresa", "id_plan", "estado"}).
			AddRow("sub-1", "emp-1", "FREE", true))

	req := httptest.NewRequest(http.MethodGet, "/api/empresas/emp-1/suscripcion", nil)
	req.Header.Set("Authorization", "Bearer "+tok)
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", rec.Code)
	}
}

func TestPlanCatalogIsPublic(t *testing.T) {
	r, mock := newTestRouter(t)

	mock.ExpectQuery(`SELECT \* FROM "plans"`).
		WillReturnRows(sqlmock.NewRows([]string{"id_plan", "nombre", "precio_mensual"}).
			AddRow("FREE", "Gratuito", 0.0))

	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/planes", nil))
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", rec.Code)
	}
}
