package models

import "time"

// Contact submission statuses.
const (
	ContactStatusNew       = "new"
	ContactStatusRead      = "read"
	ContactStatusConverted = "converted"
)

// ContactSubmission is an unauthenticated inquiry from the public site.
type ContactSubmission struct {
	ID        int       `json:"id"`
	Name      string    `json:"name"`
	Email     string    `json:"email"`
	Phone     string    `json:"phone"`
	Subject   string    `json:"subject,omitempty"`
	Message   string    `json:"message"`
	Status    string    `json:"status"`
	Source    string    `json:"source,omitempty"`
	CreatedAt time.Time `json:"created_at"`
}
