package handler

import (
	"context"
	"net/http"
	"time"

	"elstore/internal/store"
)

type healthResponse struct {
	OK       bool   `json:"ok"`
	Database string `json:"database"`
}

func HealthHandler(st store.OrderStore) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
		defer cancel()

		if err := st.Ping(ctx); err != nil {
			writeJSON(w, http.StatusServiceUnavailable, healthResponse{OK: false, Database: err.Error()})
			return
		}

		writeJSON(w, http.StatusOK, healthResponse{OK: true, Database: "connected"})
	}
}
