package model

import (
	"time"
)

type Status string

const (
	StatusPending   Status = "pending"
	StatusSubmitted Status = "submitted"
	StatusQueued    Status = "queued"
	StatusVerified  Status = "verified"
	StatusRejected  Status = "rejected"
)

// IsTerminal reports whether no further transition is permitted.
func (s Status) IsTerminal() bool {
	return s == StatusVerified || s == StatusRejected
}

func (s Status) String() string {
	return string(s)
}

var plans = map[string]bool{
	"ebook":    true,
	"kelas":    true,
	"template": true,
}

var paymentMethods = map[string]bool{
	"DANA":  true,
	"OVO":   true,
	"GOPAY": true,
	"BRI":   true,
}

func ValidPlan(p string) bool {
	return plans[p]
}

func ValidPaymentMethod(m string) bool {
	return paymentMethods[m]
}

type Order struct {
	ID            string    `json:"id"`
	Email         string    `json:"email"`
	Plan          string    `json:"plan"`
	PaymentMethod string    `json:"payment_method"`
	ProofImage    string    `json:"proof_image,omitempty"`
	Status        Status    `json:"status"`
	Note          string    `json:"note,omitempty"`
	CreatedAt     time.Time `json:"created_at"`
	UpdatedAt     time.Time `json:"updated_at"`
}

// OrderView is the listing projection: the proof image is replaced by a flag
// because the raw payload is a base64 data URL and too large for bulk
// responses.
type OrderView struct {
	ID            string    `json:"id"`
	Email         string    `json:"email"`
	Plan          string    `json:"plan"`
	PaymentMethod string    `json:"payment_method"`
	HasProof      bool      `json:"has_proof"`
	Status        Status    `json:"status"`
	Note          string    `json:"note,omitempty"`
	CreatedAt     time.Time `json:"created_at"`
	UpdatedAt     time.Time `json:"updated_at"`
}

func (o Order) View() OrderView {
	return OrderView{
		ID:            o.ID,
		Email:         o.Email,
		Plan:          o.Plan,
		PaymentMethod: o.PaymentMethod,
		HasProof:      o.ProofImage != "",
		Status:        o.Status,
		Note:          o.Note,
		CreatedAt:     o.CreatedAt,
		UpdatedAt:     o.UpdatedAt,
	}
}
