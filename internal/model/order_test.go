package model

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestStatusIsTerminal(t *testing.T) {
	assert.True(t, StatusVerified.IsTerminal())
	assert.True(t, StatusRejected.IsTerminal())

	assert.False(t, StatusPending.IsTerminal())
	assert.False(t, StatusSubmitted.IsTerminal())
	assert.False(t, StatusQueued.IsTerminal())
}

func TestClosedSets(t *testing.T) {
	assert.True(t, ValidPlan("ebook"))
	assert.True(t, ValidPlan("kelas"))
	assert.True(t, ValidPlan("template"))
	assert.False(t, ValidPlan("poster"))
	assert.False(t, ValidPlan(""))

	assert.True(t, ValidPaymentMethod("DANA"))
	assert.True(t, ValidPaymentMethod("OVO"))
	assert.True(t, ValidPaymentMethod("GOPAY"))
	assert.True(t, ValidPaymentMethod("BRI"))
	assert.False(t, ValidPaymentMethod("dana"))
}

func TestViewRedactsProof(t *testing.T) {
	order := Order{
		ID:         "abc",
		Email:      "a@b.com",
		ProofImage: "data:image/png;base64,AAAA",
		Status:     StatusSubmitted,
	}

	view := order.View()
	assert.True(t, view.HasProof)
	assert.Equal(t, "abc", view.ID)
	assert.Equal(t, StatusSubmitted, view.Status)

	empty := Order{ID: "def", Status: StatusPending}.View()
	assert.False(t, empty.HasProof)
}
