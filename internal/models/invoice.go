package models

import "time"

// Invoice statuses.
const (
	InvoiceStatusPending = "pending"
	InvoiceStatusPaid    = "paid"
	InvoiceStatusUnpaid  = "unpaid"
)

// Invoice is a billing record for a quoted amount tied to a project.
// Amount is always in minor currency units (pence).
type Invoice struct {
	ID              int        `json:"id"`
	ProjectID       int        `json:"project_id"`
	UserID          *int       `json:"user_id,omitempty"`
	Amount          int        `json:"amount"`
	Status          string     `json:"status"`
	Description     string     `json:"description,omitempty"`
	PaymentIntentID string     `json:"payment_intent_id,omitempty"`
	PaidAt          *time.Time `json:"paid_at,omitempty"`
	CreatedAt       time.Time  `json:"created_at"`
}
