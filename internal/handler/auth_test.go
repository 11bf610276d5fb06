package handler

import (
	"encoding/json"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"elstore/internal/service"
)

func TestLogin(t *testing.T) {
	authSvc := service.NewAuthService(testConfig())

	rec := postJSON(LoginHandler(authSvc), "/api/auth/login", map[string]string{
		"name": "Admin, M.Sadri",
		"pin":  "200112",
	}, nil)

	require.Equal(t, http.StatusOK, rec.Code)

	var resp tokenResponse
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&resp))
	assert.NotEmpty(t, resp.AccessToken)
	assert.Equal(t, "bearer", resp.TokenType)
}

func TestLogin_BadPin(t *testing.T) {
	authSvc := service.NewAuthService(testConfig())

	rec := postJSON(LoginHandler(authSvc), "/api/auth/login", map[string]string{
		"name": "Admin, M.Sadri",
		"pin":  "999999",
	}, nil)

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}
