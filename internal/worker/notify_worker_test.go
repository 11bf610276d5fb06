package worker

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"elstore/internal/model"
)

type fakeMailer struct {
	mu   sync.Mutex
	err  error
	sent []string
}

func (m *fakeMailer) Send(to, _, _, _ string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.err != nil {
		return m.err
	}
	m.sent = append(m.sent, to)
	return nil
}

func (m *fakeMailer) sentCount() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.sent)
}

func TestDispatchDelivers(t *testing.T) {
	mailer := &fakeMailer{}
	w := NewNotifyWorker(mailer, 8)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	go w.Start(ctx)

	w.Dispatch(model.Order{ID: "order-1", Email: "a@b.com", Plan: "ebook", Status: model.StatusVerified})

	require.Eventually(t, func() bool {
		return mailer.sentCount() == 1
	}, time.Second, 10*time.Millisecond)
	assert.Equal(t, []string{"a@b.com"}, mailer.sent)
}

func TestDeliver_MailerError(t *testing.T) {
	mailer := &fakeMailer{err: errors.New("smtp unreachable")}
	w := NewNotifyWorker(mailer, 8)

	delivered := w.deliver(model.Order{ID: "order-1", Email: "a@b.com", Status: model.StatusRejected})
	assert.False(t, delivered)
}

func TestDeliver_NoMailerConfigured(t *testing.T) {
	w := NewNotifyWorker(nil, 8)

	delivered := w.deliver(model.Order{ID: "order-1", Email: "a@b.com", Status: model.StatusVerified})
	assert.False(t, delivered)
}

func TestDeliver_NoRecipient(t *testing.T) {
	mailer := &fakeMailer{}
	w := NewNotifyWorker(mailer, 8)

	delivered := w.deliver(model.Order{ID: "order-1", Status: model.StatusVerified})
	assert.False(t, delivered)
	assert.Zero(t, mailer.sentCount())
}

// A full queue must never block the caller.
func TestDispatch_QueueFullDoesNotBlock(t *testing.T) {
	w := NewNotifyWorker(&fakeMailer{}, 1)

	done := make(chan struct{})
	go func() {
		for i := 0; i < 10; i++ {
			w.Dispatch(model.Order{ID: "order-1", Email: "a@b.com"})
		}
		close(done)
	}()

	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("Dispatch blocked on a full queue")
	}
}
