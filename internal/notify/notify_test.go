package notify

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"elstore/internal/model"
)

func TestStatusMessage_Verified(t *testing.T) {
	msg := StatusMessage(model.Order{Plan: "ebook", Status: model.StatusVerified})

	assert.Equal(t, "Pesanan Terverifikasi — Akses Anda Siap", msg.Subject)
	assert.Contains(t, msg.HTML, "<b>ebook</b>")
	assert.Contains(t, msg.Text, "paket ebook")
}

func TestStatusMessage_Rejected(t *testing.T) {
	msg := StatusMessage(model.Order{Plan: "kelas", Status: model.StatusRejected})

	assert.Equal(t, "Verifikasi Gagal — Perlu Tindakan", msg.Subject)
	assert.Contains(t, msg.HTML, "<b>kelas</b>")
}

func TestStatusMessage_Fallback(t *testing.T) {
	msg := StatusMessage(model.Order{Plan: "template", Status: model.StatusPending})

	assert.Equal(t, "Status Pesanan Anda", msg.Subject)
	assert.Contains(t, msg.Text, "pending")
}

func TestStatusMessage_EmptyPlan(t *testing.T) {
	msg := StatusMessage(model.Order{Status: model.StatusVerified})

	assert.Contains(t, msg.HTML, "<b>produk</b>")
}
