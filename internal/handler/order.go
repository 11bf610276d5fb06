package handler

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"strconv"

	"elstore/internal/model"
	"elstore/internal/service"
	"elstore/internal/store"
)

type createOrderRequest struct {
	Email         string `json:"email"`
	Plan          string `json:"plan"`
	PaymentMethod string `json:"payment_method"`
	ProofImage    string `json:"proof_image,omitempty"`
}

type orderStatusResponse struct {
	ID     string `json:"id"`
	Status string `json:"status"`
}

func CreateOrderHandler(orderSvc *service.OrderService) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req createOrderRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			http.Error(w, "invalid json", http.StatusBadRequest)
			return
		}

		order, err := orderSvc.Create(r.Context(), req.Email, req.Plan, req.PaymentMethod, req.ProofImage)
		if err != nil {
			switch {
			case errors.Is(err, service.ErrInvalidEmail),
				errors.Is(err, service.ErrInvalidPlan),
				errors.Is(err, service.ErrInvalidPaymentMethod):
				http.Error(w, err.Error(), http.StatusUnprocessableEntity)
			default:
				slog.Error("order create failed", "error", err)
				http.Error(w, "internal error", http.StatusInternalServerError)
			}
			return
		}

		writeJSON(w, http.StatusOK, orderStatusResponse{ID: order.ID, Status: order.Status.String()})
	}
}

type listOrdersResponse struct {
	Items []model.OrderView `json:"items"`
}

func ListOrdersHandler(orderSvc *service.OrderService) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		email := r.URL.Query().Get("email")

		limit := 0
		if raw := r.URL.Query().Get("limit"); raw != "" {
			n, err := strconv.Atoi(raw)
			if err != nil {
				http.Error(w, "invalid limit", http.StatusBadRequest)
				return
			}
			limit = n
		}

		orders, err := orderSvc.List(r.Context(), email, limit)
		if err != nil {
			slog.Error("order list failed", "error", err)
			http.Error(w, "internal error", http.StatusInternalServerError)
			return
		}

		items := make([]model.OrderView, 0, len(orders))
		for _, o := range orders {
			items = append(items, o.View())
		}

		writeJSON(w, http.StatusOK, listOrdersResponse{Items: items})
	}
}

type verifyRequest struct {
	OrderID string `json:"order_id"`
	Action  string `json:"action"` // verify | reject
	Note    string `json:"note,omitempty"`
}

func VerifyOrderHandler(orderSvc *service.OrderService) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req verifyRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			http.Error(w, "invalid json", http.StatusBadRequest)
			return
		}

		if req.OrderID == "" {
			http.Error(w, "order_id required", http.StatusBadRequest)
			return
		}

		order, err := orderSvc.ApplyDecision(r.Context(), req.OrderID, req.Action, req.Note)
		if err != nil {
			writeSettleError(w, req.OrderID, err)
			return
		}

		writeJSON(w, http.StatusOK, orderStatusResponse{ID: order.ID, Status: order.Status.String()})
	}
}

type webhookRequest struct {
	OrderID string `json:"order_id"`
	Paid    bool   `json:"paid"`
	Status  string `json:"status"`
}

type webhookResponse struct {
	OK     bool   `json:"ok"`
	ID     string `json:"id"`
	Status string `json:"status"`
}

// settledStatuses are the gateway status strings treated as a successful
// payment, per the gateway callback contracts (Midtrans/Xendit).
var settledStatuses = map[string]bool{
	"PAID":     true,
	"SETTLED":  true,
	"CAPTURED": true,
	"SUCCESS":  true,
}

// PaymentWebhookHandler settles an order from a gateway callback. The route
// is unauthenticated: signature verification belongs to the gateway-specific
// ingress in front of it.
func PaymentWebhookHandler(orderSvc *service.OrderService) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req webhookRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			http.Error(w, "invalid json", http.StatusBadRequest)
			return
		}

		if req.OrderID == "" {
			http.Error(w, "order_id missing", http.StatusBadRequest)
			return
		}

		paid := req.Paid || settledStatuses[req.Status]

		order, err := orderSvc.ApplyWebhook(r.Context(), req.OrderID, paid)
		if err != nil {
			if errors.Is(err, service.ErrConflict) {
				slog.Warn("webhook contradicts settled order", "order", req.OrderID, "paid", paid)
			}
			writeSettleError(w, req.OrderID, err)
			return
		}

		writeJSON(w, http.StatusOK, webhookResponse{OK: true, ID: order.ID, Status: order.Status.String()})
	}
}

func writeSettleError(w http.ResponseWriter, orderID string, err error) {
	switch {
	case errors.Is(err, service.ErrInvalidAction), errors.Is(err, store.ErrInvalidID):
		http.Error(w, err.Error(), http.StatusBadRequest)
	case errors.Is(err, store.ErrNotFound):
		http.Error(w, "order not found", http.StatusNotFound)
	case errors.Is(err, service.ErrConflict):
		http.Error(w, err.Error(), http.StatusConflict)
	default:
		slog.Error("order settle failed", "order", orderID, "error", err)
		http.Error(w, "internal error", http.StatusInternalServerError)
	}
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		slog.Error("response encode failed", "error", err)
	}
}
