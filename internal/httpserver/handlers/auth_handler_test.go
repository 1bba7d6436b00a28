package handlers

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"

	"erpsaas/internal/auth"
)

func newTestDB(t *testing.T) (*gorm.DB, sqlmock.Sqlmock) {
	t.Helper()
	conn, mock, err := sqlmock.New(sqlmock.QueryMatcherOption(sqlmock.QueryMatcherRegexp))
	require.NoError(t, err)
	t.Cleanup(func() { conn.Close() })
	gdb, err := gorm.Open(postgres.New(postgres.Config{Conn: conn, PreferSimpleProtocol: true}), &gorm.Config{
		SkipDefaultTransaction: true,
		DisableAutomaticPing:   true,
		Logger:                 gormlogger.Default.LogMode(gormlogger.Silent),
	})
	require.NoError(t, err)
	return gdb, mock
}

func postJSON(t *testing.T, h http.HandlerFunc, target string, payload any) *httptest.ResponseRecorder {
	t.Helper()
	body, err := json.Marshal(payload)
	require.NoError(t, err)
	req := httptest.NewRequest(http.MethodPost, target, bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	return rec
}

func decodeBody(t *testing.T, rec *httptest.ResponseRecorder) map[string]any {
	t.Helper()
	var out map[string]any
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&out))
	return out
}

func usuarioRow(t *testing.T, password string, activo bool) *sqlmock.Rows {
	t.Helper()
	hash, err := auth.HashPassword(password)
	require.NoError(t, err)
	return sqlmock.NewRows([]string{
		"id_usuario", "id_empresa", "id_rol", "nombres", "apellido_paterno",
		"apellido_materno", "email", "password_hash", "telefono", "activo",
	}).AddRow("usr-1", "emp-1", auth.RolVendedor, "Ana", "Quispe", "", "ana@acme.test", hash, "", activo)
}

func TestLoginUnknownEmail(t *testing.T) {
	t.Setenv("JWT_SECRET", "test-secret")
	db, mock := newTestDB(t)
	lg := zap.NewNop().Sugar()

	mock.ExpectQuery(`SELECT \* FROM "usuarios" WHERE email = \$1`).
		WillReturnError(gorm.ErrRecordNotFound)

	rec := postJSON(t, Login(db, lg), "/api/auth/login", map[string]string{
		"email": "nadie@acme.test", "password": "whatever",
	})
	require.Equal(t, http.StatusUnauthorized, rec.Code)
	require.Equal(t, "Credenciales inválidas", decodeBody(t, rec)["error"])
}

func TestLoginWrongPassword(t *testing.T) {
	t.Setenv("JWT_SECRET", "test-secret")
	db, mock := newTestDB(t)
	lg := zap.NewNop().Sugar()

	mock.ExpectQuery(`SELECT \* FROM "usuarios" WHERE email = \$1`).
		WillReturnRows(usuarioRow(t, "correcta", true))

	rec := postJSON(t, Login(db, lg), "/api/auth/login", map[string]string{
		"email": "ana@acme.test", "password": "incorrecta",
	})
	require.Equal(t, http.StatusUnauthorized, rec.Code)
	// Same message as unknown email: the endpoint does not reveal which part
	// failed.
	require.Equal(t, "Credenciales inválidas", decodeBody(t, rec)["error"])
}

func TestLoginInactiveUser(t *testing.T) {
	t.Setenv("JWT_SECRET", "test-secret")
	db, mock := newTestDB(t)
	lg := zap.NewNop().Sugar()

	mock.ExpectQuery(`SELECT \* FROM "usuarios" WHERE email = \$1`).
		WillReturnRows(usuarioRow(t, "secreta", false))

	rec := postJSON(t, Login(db, lg), "/api/auth/login", map[string]string{
		"email": "ana@acme.test", "password": "secreta",
	})
	require.Equal(t, http.StatusUnauthorized, rec.Code)
	require.Equal(t, "Usuario inactivo. Contacte al administrador.", decodeBody(t, rec)["error"])
}

func TestLoginSuccess(t *testing.T) {
	t.Setenv("JWT_SECRET", "test-secret")
	db, mock := newTestDB(t)
	lg := zap.NewNop().Sugar()

	mock.ExpectQuery(`SELECT \* FROM "usuarios" WHERE email = \$1`).
		WillReturnRows(usuarioRow(t, "secreta", true))
	mock.ExpectExec(`UPDATE "usuarios" SET`).
		WillReturnResult(sqlmock.NewResult(0, 1))

	rec := postJSON(t, Login(db, lg), "/api/auth/login", map[string]string{
		"email": "Ana@Acme.Test", "password": "secreta",
	})
	require.Equal(t, http.StatusOK, rec.Code)

	body := decodeBody(t, rec)
	require.Equal(t, "Login exitoso", body["message"])
	require.NotEmpty(t, body["token"])

	tok, _ := body["token"].(string)
	claims, err := auth.Verify(tok)
	require.NoError(t, err)
	require.Equal(t, "usr-1", claims.Subject)
	require.Equal(t, auth.RolVendedor, claims.Rol)
	require.Equal(t, "emp-1", claims.IDEmpresa)
	require.NotEmpty(t, claims.ID)

	usuario, _ := body["usuario"].(map[string]any)
	require.Equal(t, "Ana Quispe", usuario["nombre_completo_str"])
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestLoginMissingFields(t *testing.T) {
	db, _ := newTestDB(t)
	lg := zap.NewNop().Sugar()

	rec := postJSON(t, Login(db, lg), "/api/auth/login", map[string]string{"email": "ana@acme.test"})
	require.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestLogoutRevokesToken(t *testing.T) {
	t.Setenv("JWT_SECRET", "test-secret")
	db, mock := newTestDB(t)

	mock.ExpectQuery(`INSERT INTO "token_revocados"`).
		WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow(1))

	req := httptest.NewRequest(http.MethodPost, "/api/auth/logout", nil)
	req = req.WithContext(auth.WithClaims(req.Context(), auth.Claims{Rol: auth.RolVendedor}))
	rec := httptest.NewRecorder()
	Logout(db).ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	require.Equal(t, "Sesión cerrada exitosamente. Token invalidado.", decodeBody(t, rec)["message"])
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestRegistroEmpresaMissingFields(t *testing.T) {
	db, _ := newTestDB(t)
	lg := zap.NewNop().Sugar()

	cases := []struct {
		payload map[string]string
		wantMsg string
	}{
		{map[string]string{"email": "a@b.c", "password": "x", "nombres": "A", "paterno": "B"}, "Falta nombre empresa"},
		{map[string]string{"nombre_empresa": "Acme", "password": "x", "nombres": "A", "paterno": "B"}, "Falta email"},
		{map[string]string{"nombre_empresa": "Acme", "email": "a@b.c", "nombres": "A", "paterno": "B"}, "Falta password"},
		{map[string]string{"nombre_empresa": "Acme", "email": "a@b.c", "password": "x", "paterno": "B"}, "Falta nombres"},
		{map[string]string{"nombre_empresa": "Acme", "email": "a@b.c", "password": "x", "nombres": "A"}, "Falta apellido paterno"},
	}
	for _, tc := range cases {
		rec := postJSON(t, RegistroEmpresa(db, lg), "/api/auth/registro-empresa", tc.payload)
		require.Equal(t, http.StatusBadRequest, rec.Code)
		require.Equal(t, tc.wantMsg, decodeBody(t, rec)["error"])
	}
}

func TestRegistroEmpresaDuplicateEmail(t *testing.T) {
	t.Setenv("JWT_SECRET", "test-secret")
	db, mock := newTestDB(t)
	lg := zap.NewNop().Sugar()

	// The duplicate check fires inside the transaction and everything rolls
	// back; no insert ever reaches the database.
	mock.ExpectBegin()
	mock.ExpectQuery(`SELECT count\(\*\) FROM "usuarios" WHERE email = \$1`).
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(1))
	mock.ExpectRollback()

	rec := postJSON(t, RegistroEmpresa(db, lg), "/api/auth/registro-empresa", map[string]string{
		"nombre_empresa": "Acme SRL",
		"email":          "ana@acme.test",
		"password":       "secreta",
		"nombres":        "Ana",
		"paterno":        "Quispe",
	})
	require.Equal(t, http.StatusBadRequest, rec.Code)
	require.Equal(t, "El email ya está registrado", decodeBody(t, rec)["error"])
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestRegistroEmpresaSuccess(t *testing.T) {
	t.Setenv("JWT_SECRET", "test-secret")
	db, mock := newTestDB(t)
	lg := zap.NewNop().Sugar()

	mock.ExpectBegin()
	mock.ExpectQuery(`SELECT count\(\*\) FROM "usuarios" WHERE email = \$1`).
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(0))
	// tenant_id has a database-side default, so gorm runs this insert as a
	// query with RETURNING.
	mock.ExpectQuery(`INSERT INTO "empresas"`).
		WillReturnRows(sqlmock.NewRows([]string{"tenant_id"}).AddRow("c5f9f3a2-3b1d-4d0e-9a7e-1f2a3b4c5d6e"))
	mock.ExpectExec(`INSERT INTO "configuracion_empresas"`).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectExec(`INSERT INTO "usuarios"`).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectExec(`INSERT INTO "suscripcions"`).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectCommit()

	rec := postJSON(t, RegistroEmpresa(db, lg), "/api/auth/registro-empresa", map[string]string{
		"nombre_empresa": "Acme SRL",
		"email":          "Ana@Acme.Test",
		"password":       "secreta",
		"nombres":        "Ana",
		"paterno":        "Quispe",
	})
	require.Equal(t, http.StatusCreated, rec.Code)

	body := decodeBody(t, rec)
	require.NotEmpty(t, body["token"])
	usuario, _ := body["usuario"].(map[string]any)
	require.Equal(t, auth.RolPropietario, usuario["rol"])
	suscripcion, _ := body["suscripcion"].(map[string]any)
	require.Equal(t, "FREE", suscripcion["plan"])
	require.NoError(t, mock.ExpectationsWereMet())
}
