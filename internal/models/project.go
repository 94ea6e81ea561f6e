package models

import "time"

// Project is a unit of billable client work tracked to completion.
type Project struct {
	ID               int        `json:"id"`
	Name             string     `json:"name"`
	Status           string     `json:"status"`
	Progress         int        `json:"progress"`
	WebsiteType      string     `json:"website_type,omitempty"`
	Features         string     `json:"features,omitempty"`
	Requirements     string     `json:"requirements,omitempty"`
	Description      string     `json:"description,omitempty"`
	Budget           float64    `json:"budget"`
	DueDate          string     `json:"due_date,omitempty"`
	ClientEmail      string     `json:"client_email,omitempty"`
	UserID           *int       `json:"user_id,omitempty"`
	QuoteAmountPence *int       `json:"quote_amount_pence,omitempty"`
	InvoiceID        *int       `json:"invoice_id,omitempty"`
	PaidAt           *time.Time `json:"paid_at,omitempty"`
	CreatedAt        time.Time  `json:"created_at"`
	UpdatedAt        *time.Time `json:"updated_at,omitempty"`
}
