package models

// AdminEvent is pushed to connected admin sessions when something lands in
// the inbox.
type AdminEvent struct {
	Kind    string      `json:"kind"` // "request.created", "contact.created"
	Payload interface{} `json:"payload"`
}
