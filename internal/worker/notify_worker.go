package worker

import (
	"context"
	"log/slog"

	"elstore/internal/model"
	"elstore/internal/notify"
)

// NotifyWorker delivers status emails off the request path. Transitions hand
// orders to Dispatch and never wait on SMTP latency; delivery failures are
// logged and swallowed.
type NotifyWorker struct {
	mailer notify.Mailer // nil when email is not configured
	queue  chan model.Order
}

func NewNotifyWorker(mailer notify.Mailer, buffer int) *NotifyWorker {
	return &NotifyWorker{
		mailer: mailer,
		queue:  make(chan model.Order, buffer),
	}
}

// Dispatch enqueues an order for delivery without blocking. When the queue is
// full the attempt is dropped; notification is best effort by contract.
func (w *NotifyWorker) Dispatch(order model.Order) {
	select {
	case w.queue <- order:
	default:
		slog.Warn("notification queue full, dropping", "order", order.ID, "status", order.Status)
	}
}

func (w *NotifyWorker) Start(ctx context.Context) {
	slog.Info("starting notification worker", "email_enabled", w.mailer != nil)

	for {
		select {
		case <-ctx.Done():
			slog.Info("notification worker stopped")
			return
		case order := <-w.queue:
			w.deliver(order)
		}
	}
}

func (w *NotifyWorker) deliver(order model.Order) bool {
	if w.mailer == nil || order.Email == "" {
		return false
	}

	msg := notify.StatusMessage(order)
	if err := w.mailer.Send(order.Email, msg.Subject, msg.HTML, msg.Text); err != nil {
		slog.Error("failed to send status email", "order", order.ID, "error", err)
		return false
	}

	slog.Info("status email sent", "order", order.ID, "status", order.Status)
	return true
}
