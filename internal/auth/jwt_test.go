package auth

import (
	"strings"
	"testing"
	"time"

	"github.com/google/uuid"
)

func TestSignAndVerify(t *testing.T) {
	t.Setenv("JWT_SECRET", "test-secret")

	tok, jti, err := Sign("usr-1", RolVendedor, "emp-1")
	if err != nil {
		t.Fatalf("Sign: %v", err)
	}
	if _, err := uuid.Parse(jti); err != nil {
		t.Fatalf("jti is not a uuid: %q", jti)
	}

	claims, err := Verify(tok)
	if err != nil {
		t.Fatalf("Verify: %v", err)
	}
	if claims.Subject != "usr-1" {
		t.Fatalf("unexpected subject: %s", claims.Subject)
	}
	if claims.Rol != RolVendedor {
		t.Fatalf("unexpected rol: %s", claims.Rol)
	}
	if claims.IDEmpresa != "emp-1" {
		t.Fatalf("unexpected id_empresa: %s", claims.IDEmpresa)
	}
	if claims.ID != jti {
		t.Fatalf("claims jti %q does not match issued jti %q", claims.ID, jti)
	}
	if time.Until(claims.ExpiresAt.Time) <= 0 {
		t.Fatalf("expected future expiry, got %v", claims.ExpiresAt.Time)
	}
}

func TestSignDistinctJti(t *testing.T) {
	t.Setenv("JWT_SECRET", "test-secret")
	_, a, err := Sign("usr-1", RolAdmin, "emp-1")
	if err != nil {
		t.Fatalf("Sign: %v", err)
	}
	_, b, err := Sign("usr-1", RolAdmin, "emp-1")
	if err != nil {
		t.Fatalf("Sign: %v", err)
	}
	if a == b {
		t.Fatalf("two tokens share a jti: %s", a)
	}
}

func TestSignRequiresSecret(t *testing.T) {
	t.Setenv("JWT_SECRET", "")
	if _, _, err := Sign("usr-1", RolAdmin, "emp-1"); err == nil {
		t.Fatal("expected error with empty JWT_SECRET")
	}
}

func TestVerifyExpired(t *testing.T) {
	t.Setenv("JWT_SECRET", "test-secret")
	t.Setenv("JWT_EXPIRES_IN", "-1m")
	tok, _, err := Sign("usr-1", RolSuperAdmin, "")
	if err != nil {
		t.Fatalf("Sign: %v", err)
	}
	if _, err := Verify(tok); err == nil {
		t.Fatal("expected expired token to be rejected")
	}
}

func TestVerifyTampered(t *testing.T) {
	t.Setenv("JWT_SECRET", "test-secret")
	tok, _, err := Sign("usr-1", RolVendedor, "emp-1")
	if err != nil {
		t.Fatalf("Sign: %v", err)
	}
	parts := strings.Split(tok, ".")
	if len(parts) != 3 {
		t.Fatalf("unexpected token shape: %s", tok)
	}
	forged := parts[0] + "." + parts[1] + "." + strings.Repeat("A", len(parts[2]))
	if _, err := Verify(forged); err == nil {
		t.Fatal("expected forged signature to be rejected")
	}
}

func TestVerifyWrongSecret(t *testing.T) {
	t.Setenv("JWT_SECRET", "test-secret")
	tok, _, err := Sign("usr-1", RolVendedor, "emp-1")
	if err != nil {
		t.Fatalf("Sign: %v", err)
	}
	t.Setenv("JWT_SECRET", "other-secret")
	if _, err := Verify(tok); err == nil {
		t.Fatal("expected wrong-key token to be rejected")
	}
}

func TestSignSaasClaims(t *testing.T) {
	t.Setenv("JWT_SECRET", "test-secret")
	tok, _, err := SignSaas("adm-1")
	if err != nil {
		t.Fatalf("SignSaas: %v", err)
	}
	claims, err := Verify(tok)
	if err != nil {
		t.Fatalf("Verify: %v", err)
	}
	if claims.Rol != RolSuperAdmin {
		t.Fatalf("unexpected rol: %s", claims.Rol)
	}
	if claims.Tipo != "SAAS" {
		t.Fatalf("unexpected tipo: %s", claims.Tipo)
	}
	if claims.IDEmpresa != "" {
		t.Fatalf("platform token carries a tenant claim: %s", claims.IDEmpresa)
	}
}

func TestTokenTTL(t *testing.T) {
	t.Setenv("JWT_EXPIRES_IN", "")
	if got := TokenTTL(); got != 24*time.Hour {
		t.Fatalf("default TTL = %v, want 24h", got)
	}
	t.Setenv("JWT_EXPIRES_IN", "45m")
	if got := TokenTTL(); got != 45*time.Minute {
		t.Fatalf("TTL = %v, want 45m", got)
	}
	t.Setenv("JWT_EXPIRES_IN", "garbage")
	if got := TokenTTL(); got != 24*time.Hour {
		t.Fatalf("TTL with bad value = %v, want 24h fallback", got)
	}
}
