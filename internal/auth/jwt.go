package auth

import (
	"errors"
	"os"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

// Claims is the typed claim set carried by every issued token. Rol and
// IDEmpresa are fixed at issuance; the gate never re-reads the principal row,
// so a role change only takes effect after re-login.
type Claims struct {
	Rol       string `json:"rol"`
	IDEmpresa string `json:"id_empresa,omitempty"`
	Tipo      string `json:"tipo,omitempty"`
	jwt.RegisteredClaims
}

// TokenTTL reads JWT_EXPIRES_IN (Go duration syntax) and falls back to the
// 24h default. Expiry is terminal; there is no refresh flow.
func TokenTTL() time.Duration {
	if s := os.Getenv("JWT_EXPIRES_IN"); s != "" {
		if d, err := time.ParseDuration(s); err == nil {
			return d
		}
	}
	return 24 * time.Hour
}

// Sign mints an HS256 token for the principal. The jti doubles as the
// revocation key consulted by the gate on every request.
func Sign(subject, rol, idEmpresa string) (token string, jti string, err error) {
	return sign(Claims{Rol: rol, IDEmpresa: idEmpresa}, subject)
}

// SignSaas mints a platform-admin token: rol SUPER_ADMIN, tipo SAAS, no
// tenant claim.
func SignSaas(subject string) (token string, jti string, err error) {
	return sign(Claims{Rol: RolSuperAdmin, Tipo: "SAAS"}, subject)
}

func sign(claims Claims, subject string) (string, string, error) {
	key := []byte(os.Getenv("JWT_SECRET"))
	if len(key) == 0 {
		return "", "", errors.New("JWT_SECRET is empty")
	}
	now := time.Now()
	jti := uuid.NewString()
	claims.RegisteredClaims = jwt.RegisteredClaims{
		Subject:   subject,
		ID:        jti,
		IssuedAt:  jwt.NewNumericDate(now),
		ExpiresAt: jwt.NewNumericDate(now.Add(TokenTTL())),
	}
	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(key)
	return token, jti, err
}

// Verify checks signature and expiry and returns the typed claims.
func Verify(tokenStr string) (Claims, error) {
	key := []byte(os.Getenv("JWT_SECRET"))
	var claims Claims
	tok, err := jwt.ParseWithClaims(tokenStr, &claims, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, errors.New("unexpected signing method")
		}
		return key, nil
	}, jwt.WithValidMethods([]string{"HS256"}))
	if err != nil || !tok.Valid {
		return Claims{}, errors.New("invalid token")
	}
	return claims, nil
}
