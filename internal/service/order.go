package service

import (
	"context"
	"errors"
	"fmt"
	"net/mail"
	"time"

	"elstore/internal/model"
	"elstore/internal/store"
)

var (
	ErrInvalidPlan          = errors.New("unknown plan")
	ErrInvalidPaymentMethod = errors.New("unknown payment method")
	ErrInvalidEmail         = errors.New("invalid email address")
	ErrInvalidAction        = errors.New("action must be verify or reject")
	ErrConflict             = errors.New("order already decided")
)

const DefaultListLimit = 50

// Notifier receives an order that just reached a terminal status. Dispatch
// must not block and must never fail the transition.
type Notifier interface {
	Dispatch(order model.Order)
}

// OrderService owns the order state machine.
type OrderService struct {
	store    store.OrderStore
	notifier Notifier
}

func NewOrderService(st store.OrderStore, notifier Notifier) *OrderService {
	return &OrderService{store: st, notifier: notifier}
}

// Create validates the request and persists a new order. The initial status
// is derived from the presence of a payment proof.
func (s *OrderService) Create(ctx context.Context, email, plan, paymentMethod, proofImage string) (*model.Order, error) {
	if _, err := mail.ParseAddress(email); err != nil {
		return nil, ErrInvalidEmail
	}
	if !model.ValidPlan(plan) {
		return nil, fmt.Errorf("%w: %q", ErrInvalidPlan, plan)
	}
	if !model.ValidPaymentMethod(paymentMethod) {
		return nil, fmt.Errorf("%w: %q", ErrInvalidPaymentMethod, paymentMethod)
	}

	status := model.StatusPending
	if proofImage != "" {
		status = model.StatusSubmitted
	}

	now := time.Now().UTC()
	order := &model.Order{
		Email:         email,
		Plan:          plan,
		PaymentMethod: paymentMethod,
		ProofImage:    proofImage,
		Status:        status,
		CreatedAt:     now,
		UpdatedAt:     now,
	}

	if _, err := s.store.Insert(ctx, order); err != nil {
		return nil, fmt.Errorf("create order: %w", err)
	}

	return order, nil
}

// ApplyDecision applies an administrator verify/reject decision. Repeating a
// decision that already took effect is a no-op success; contradicting a
// terminal status is ErrConflict.
func (s *OrderService) ApplyDecision(ctx context.Context, orderID, action, note string) (*model.Order, error) {
	var target model.Status
	switch action {
	case "verify":
		target = model.StatusVerified
	case "reject":
		target = model.StatusRejected
	default:
		return nil, fmt.Errorf("%w: %q", ErrInvalidAction, action)
	}

	return s.settle(ctx, orderID, target, note)
}

// ApplyWebhook settles an order from a payment-gateway callback. Gateways
// retry deliveries, so redelivering the same outcome must succeed without
// side effects.
func (s *OrderService) ApplyWebhook(ctx context.Context, orderID string, paid bool) (*model.Order, error) {
	target := model.StatusRejected
	if paid {
		target = model.StatusVerified
	}

	return s.settle(ctx, orderID, target, "")
}

func (s *OrderService) settle(ctx context.Context, orderID string, target model.Status, note string) (*model.Order, error) {
	updated, err := s.store.UpdateStatus(ctx, orderID, target, note)
	if errors.Is(err, store.ErrTerminal) {
		current, ferr := s.store.FindByID(ctx, orderID)
		if ferr != nil {
			return nil, ferr
		}
		if current.Status == target {
			// Idempotent replay: no transition happened, so no
			// notification either.
			return current, nil
		}
		return nil, fmt.Errorf("%w: order is %s, refusing %s", ErrConflict, current.Status, target)
	}
	if err != nil {
		return nil, err
	}

	s.notifier.Dispatch(*updated)

	return updated, nil
}

// List returns up to limit orders, optionally filtered by buyer email.
func (s *OrderService) List(ctx context.Context, email string, limit int) ([]model.Order, error) {
	if limit <= 0 {
		limit = DefaultListLimit
	}

	orders, err := s.store.List(ctx, email, limit)
	if err != nil {
		return nil, fmt.Errorf("list orders: %w", err)
	}

	return orders, nil
}
