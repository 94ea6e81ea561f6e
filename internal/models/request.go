package models

import "time"

// Contact is the contact block embedded in a project request.
type Contact struct {
	Name  string `json:"name"`
	Email string `json:"email"`
	Phone string `json:"phone,omitempty"`
}

// Request is an inbound project brief awaiting admin triage.
type Request struct {
	ID             int        `json:"id"`
	UserID         int        `json:"user_id,omitempty"`
	ProjectType    string     `json:"project_type"`
	Goals          []string   `json:"goals,omitempty"`
	Pages          []string   `json:"pages,omitempty"`
	Features       []string   `json:"features,omitempty"`
	Style          string     `json:"style,omitempty"`
	ContentStatus  string     `json:"content_status,omitempty"`
	BudgetRange    string     `json:"budget_range,omitempty"`
	TimelineTarget string     `json:"timeline_target,omitempty"`
	Uploads        []string   `json:"uploads,omitempty"`
	Contact        Contact    `json:"contact"`
	Status         string     `json:"status"`
	QuoteAmount    *float64   `json:"quote_amount,omitempty"`
	ProjectID      *int       `json:"project_id,omitempty"`
	CreatedAt      time.Time  `json:"created_at"`
	UpdatedAt      *time.Time `json:"updated_at,omitempty"`
}
