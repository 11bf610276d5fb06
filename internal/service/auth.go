package service

import (
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"golang.org/x/crypto/bcrypt"

	"elstore/internal/config"
)

var (
	ErrBadCredentials = errors.New("invalid name or pin")
	ErrNoToken        = errors.New("missing credential")
	ErrTokenExpired   = errors.New("token expired")
	ErrInvalidToken   = errors.New("invalid token")
	ErrForbidden      = errors.New("admin role required")
)

const RoleAdmin = "admin"

// AdminClaims are the verified claims the authorization gate hands back to
// the caller.
type AdminClaims struct {
	Subject string
	Role    string
}

// AuthService issues and verifies the administrator bearer token. Stateless.
type AuthService struct {
	adminName string
	pinHash   []byte
	secret    []byte
	tokenTTL  time.Duration
}

func NewAuthService(cfg *config.Config) *AuthService {
	pinHash, err := bcrypt.GenerateFromPassword([]byte(cfg.AdminPIN), bcrypt.DefaultCost)
	if err != nil {
		slog.Error("failed to hash admin pin", "error", err)
	}

	return &AuthService{
		adminName: cfg.AdminName,
		pinHash:   pinHash,
		secret:    []byte(cfg.JWTSecret),
		tokenTTL:  cfg.TokenTTL,
	}
}

// Login compares the presented credentials against the configured admin
// account and mints a time-bounded admin token.
func (s *AuthService) Login(name, pin string) (string, error) {
	if strings.TrimSpace(name) != s.adminName {
		return "", ErrBadCredentials
	}
	if err := bcrypt.CompareHashAndPassword(s.pinHash, []byte(strings.TrimSpace(pin))); err != nil {
		return "", ErrBadCredentials
	}

	now := time.Now()
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"sub":  s.adminName,
		"role": RoleAdmin,
		"iat":  jwt.NewNumericDate(now),
		"exp":  jwt.NewNumericDate(now.Add(s.tokenTTL)),
	})

	signed, err := token.SignedString(s.secret)
	if err != nil {
		return "", fmt.Errorf("sign token: %w", err)
	}

	return signed, nil
}

// VerifyToken validates signature, expiry and role of a presented token.
func (s *AuthService) VerifyToken(tokenString string) (*AdminClaims, error) {
	if tokenString == "" {
		return nil, ErrNoToken
	}

	token, err := jwt.Parse(tokenString, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, errors.New("unexpected signing method")
		}
		return s.secret, nil
	})
	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return nil, ErrTokenExpired
		}
		return nil, ErrInvalidToken
	}
	if !token.Valid {
		return nil, ErrInvalidToken
	}

	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok {
		return nil, ErrInvalidToken
	}

	role, _ := claims["role"].(string)
	if role != RoleAdmin {
		return nil, ErrForbidden
	}

	sub, _ := claims["sub"].(string)

	return &AdminClaims{Subject: sub, Role: role}, nil
}
