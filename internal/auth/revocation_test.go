package auth

import (
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"
)

func newTestDB(t *testing.T) (*gorm.DB, sqlmock.Sqlmock) {
	t.Helper()
	conn, mock, err := sqlmock.New(sqlmock.QueryMatcherOption(sqlmock.QueryMatcherRegexp))
	if err != nil {
		t.Fatalf("sqlmock.New: %v", err)
	}
	t.Cleanup(func() { conn.Close() })
	gdb, err := gorm.Open(postgres.New(postgres.Config{Conn: conn, PreferSimpleProtocol: true}), &gorm.Config{
		SkipDefaultTransaction: true,
		DisableAutomaticPing:   true,
		Logger:                 gormlogger.Default.LogMode(gormlogger.Silent),
	})
	if err != nil {
		t.Fatalf("gorm.Open: %v", err)
	}
	return gdb, mock
}

func TestRevokeAppends(t *testing.T) {
	db, mock := newTestDB(t)

	mock.ExpectQuery(`INSERT INTO "token_revocados"`).
		WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow(1))

	if err := Revoke(db, "jti-1"); err != nil {
		t.Fatalf("Revoke: %v", err)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("expectations: %v", err)
	}
}

func TestRevokeTwiceKeepsMembership(t *testing.T) {
	db, mock := newTestDB(t)

	// No uniqueness on jti: a second revocation inserts another row and the
	// token stays revoked.
	mock.ExpectQuery(`INSERT INTO "token_revocados"`).
		WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow(1))
	mock.ExpectQuery(`INSERT INTO "token_revocados"`).
		WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow(2))
	mock.ExpectQuery(`SELECT count\(\*\) FROM "token_revocados"`).
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(2))

	if err := Revoke(db, "jti-1"); err != nil {
		t.Fatalf("first Revoke: %v", err)
	}
	if err := Revoke(db, "jti-1"); err != nil {
		t.Fatalf("second Revoke: %v", err)
	}
	revoked, err := IsRevoked(db, "jti-1")
	if err != nil {
		t.Fatalf("IsRevoked: %v", err)
	}
	if !revoked {
		t.Fatal("token should stay revoked after double logout")
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("expectations: %v", err)
	}
}

func TestIsRevoked(t *testing.T) {
	db, mock := newTestDB(t)

	mock.ExpectQuery(`SELECT count\(\*\) FROM "token_revocados"`).
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(0))
	revoked, err := IsRevoked(db, "jti-live")
	if err != nil {
		t.Fatalf("IsRevoked: %v", err)
	}
	if revoked {
		t.Fatal("unrevoked jti reported as revoked")
	}

	mock.ExpectQuery(`SELECT count\(\*\) FROM "token_revocados"`).
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(1))
	revoked, err = IsRevoked(db, "jti-dead")
	if err != nil {
		t.Fatalf("IsRevoked: %v", err)
	}
	if !revoked {
		t.Fatal("revoked jti reported as live")
	}
}

func TestSweepRevoked(t *testing.T) {
	db, mock := newTestDB(t)

	mock.ExpectExec(`DELETE FROM "token_revocados" WHERE created_at <`).
		WithArgs(sqlmock.AnyArg()).
		WillReturnResult(sqlmock.NewResult(0, 3))

	n, err := SweepRevoked(db, 24*time.Hour)
	if err != nil {
		t.Fatalf("SweepRevoked: %v", err)
	}
	if n != 3 {
		t.Fatalf("deleted = %d, want 3", n)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("expectations: %v", err)
	}
}
