package service

import (
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"elstore/internal/config"
)

func newTestAuth(ttl time.Duration) *AuthService {
	return NewAuthService(&config.Config{
		AdminName: "Admin, M.Sadri",
		AdminPIN:  "200112",
		JWTSecret: "test-secret",
		TokenTTL:  ttl,
	})
}

func TestLoginAndVerify(t *testing.T) {
	svc := newTestAuth(time.Hour)

	token, err := svc.Login("Admin, M.Sadri", "200112")
	require.NoError(t, err)
	require.NotEmpty(t, token)

	claims, err := svc.VerifyToken(token)
	require.NoError(t, err)
	assert.Equal(t, RoleAdmin, claims.Role)
	assert.Equal(t, "Admin, M.Sadri", claims.Subject)
}

func TestLogin_TrimsWhitespace(t *testing.T) {
	svc := newTestAuth(time.Hour)

	_, err := svc.Login("  Admin, M.Sadri  ", " 200112 ")
	assert.NoError(t, err)
}

func TestLogin_BadCredentials(t *testing.T) {
	svc := newTestAuth(time.Hour)

	_, err := svc.Login("Admin, M.Sadri", "000000")
	assert.ErrorIs(t, err, ErrBadCredentials)

	_, err = svc.Login("somebody", "200112")
	assert.ErrorIs(t, err, ErrBadCredentials)
}

func TestVerifyToken_Missing(t *testing.T) {
	svc := newTestAuth(time.Hour)

	_, err := svc.VerifyToken("")
	assert.ErrorIs(t, err, ErrNoToken)
}

func TestVerifyToken_Expired(t *testing.T) {
	svc := newTestAuth(-time.Minute)

	token, err := svc.Login("Admin, M.Sadri", "200112")
	require.NoError(t, err)

	_, err = svc.VerifyToken(token)
	assert.ErrorIs(t, err, ErrTokenExpired)
}

func TestVerifyToken_Malformed(t *testing.T) {
	svc := newTestAuth(time.Hour)

	_, err := svc.VerifyToken("not.a.token")
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestVerifyToken_WrongSecret(t *testing.T) {
	svc := newTestAuth(time.Hour)

	forged := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"sub":  "Admin, M.Sadri",
		"role": RoleAdmin,
		"exp":  jwt.NewNumericDate(time.Now().Add(time.Hour)),
	})
	signed, err := forged.SignedString([]byte("other-secret"))
	require.NoError(t, err)

	_, err = svc.VerifyToken(signed)
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestVerifyToken_WrongRole(t *testing.T) {
	svc := newTestAuth(time.Hour)

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"sub":  "buyer",
		"role": "user",
		"exp":  jwt.NewNumericDate(time.Now().Add(time.Hour)),
	})
	signed, err := token.SignedString([]byte("test-secret"))
	require.NoError(t, err)

	_, err = svc.VerifyToken(signed)
	assert.ErrorIs(t, err, ErrForbidden)
}
