package handler

import (
	"encoding/json"
	"errors"
	"net/http"

	"elstore/internal/service"
)

type loginRequest struct {
	Name string `json:"name"`
	Pin  string `json:"pin"`
}

type tokenResponse struct {
	AccessToken string `json:"access_token"`
	TokenType   string `json:"token_type"`
}

func LoginHandler(authSvc *service.AuthService) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req loginRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			http.Error(w, "invalid json", http.StatusBadRequest)
			return
		}

		token, err := authSvc.Login(req.Name, req.Pin)
		if err != nil {
			if errors.Is(err, service.ErrBadCredentials) {
				http.Error(w, "invalid credentials", http.StatusUnauthorized)
				return
			}
			http.Error(w, "internal error", http.StatusInternalServerError)
			return
		}

		writeJSON(w, http.StatusOK, tokenResponse{AccessToken: token, TokenType: "bearer"})
	}
}
