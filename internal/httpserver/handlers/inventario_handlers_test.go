package handlers

import (
	"errors"
	"net/http"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func TestCreateProductoDuplicateCodigo(t *testing.T) {
	db, mock := newTestDB(t)
	lg := zap.NewNop().Sugar()

	mock.ExpectQuery(`SELECT count\(\*\) FROM "productos"`).
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(1))

	rec := postJSON(t, CreateProducto(db, lg), "/api/productos", map[string]any{
		"id_empresa":      "emp-1",
		"codigo_producto": "CAFE-250",
		"nombre":          "Café molido 250g",
	})
	require.Equal(t, http.StatusBadRequest, rec.Code)
	require.Equal(t, "Ya existe un producto con ese código en la empresa", decodeBody(t, rec)["error"])
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestCreateProductoPersistenceError(t *testing.T) {
	db, mock := newTestDB(t)
	lg := zap.NewNop().Sugar()

	mock.ExpectQuery(`SELECT count\(\*\) FROM "productos"`).
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(0))
	mock.ExpectExec(`INSERT INTO "productos"`).
		WillReturnError(errors.New("connection reset by peer"))

	rec := postJSON(t, CreateProducto(db, lg), "/api/productos", map[string]any{
		"id_empresa":      "emp-1",
		"codigo_producto": "CAFE-250",
		"nombre":          "Café molido 250g",
	})
	require.Equal(t, http.StatusInternalServerError, rec.Code)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestCreateProductoSuccess(t *testing.T) {
	db, mock := newTestDB(t)
	lg := zap.NewNop().Sugar()

	mock.ExpectQuery(`SELECT count\(\*\) FROM "productos"`).
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(0))
	mock.ExpectExec(`INSERT INTO "productos"`).
		WillReturnResult(sqlmock.NewResult(0, 1))

	rec := postJSON(t, CreateProducto(db, lg), "/api/productos", map[string]any{
		"id_empresa":      "emp-1",
		"codigo_producto": "CAFE-250",
		"nombre":          "Café molido 250g",
		"precio_venta":    18.5,
	})
	require.Equal(t, http.StatusCreated, rec.Code)
	require.NoError(t, mock.ExpectationsWereMet())
}
