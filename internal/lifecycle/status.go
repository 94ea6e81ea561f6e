package lifecycle

import "strings"

// Canonical project statuses shared by the admin and client views.
const (
	StatusPending      = "pending"
	StatusApproved     = "approved"
	StatusRejected     = "rejected"
	StatusOnHold       = "on hold"
	StatusInProgress   = "in progress"
	StatusClientReview = "client review"
	StatusFinalReview  = "final review"
	StatusCompleted    = "completed"
	// StatusUnknown marks a stored string the canonicalizer could not map.
	// It is surfaced to admins for cleanup instead of being guessed at.
	StatusUnknown = "unknown"
)

// statusOrder drives the client-facing progress bar.
var statusOrder = []string{
	StatusPending,
	StatusApproved,
	StatusInProgress,
	StatusClientReview,
	StatusFinalReview,
	StatusCompleted,
}

// Canonicalize maps a free-text project status onto the canonical vocabulary
// by keyword. Historical data contains values like "in-progress", "On Hold"
// and "Client Review stage", so matching is on substrings of the lowercased
// input. Anything unmapped becomes StatusUnknown; stored data is never
// auto-corrected.
func Canonicalize(raw string) string {
	s := strings.ToLower(strings.TrimSpace(raw))
	switch {
	case strings.Contains(s, "rejected"):
		return StatusRejected
	case strings.Contains(s, "hold"):
		return StatusOnHold
	case strings.Contains(s, "accepted"), strings.Contains(s, "approve"):
		return StatusApproved
	case strings.Contains(s, "client") && strings.Contains(s, "review"):
		return StatusClientReview
	case strings.Contains(s, "final") && strings.Contains(s, "review"):
		return StatusFinalReview
	case strings.Contains(s, "progress"):
		return StatusInProgress
	case strings.Contains(s, "cancel"):
		return StatusRejected
	case strings.Contains(s, "complete"):
		return StatusCompleted
	case strings.Contains(s, "pending"):
		return StatusPending
	}
	return StatusUnknown
}

// ProgressIndex returns the position of a status on the client progress bar.
// Rejected, on-hold and unknown statuses pin to the start.
func ProgressIndex(status string) int {
	canonical := Canonicalize(status)
	for i, s := range statusOrder {
		if s == canonical {
			return i
		}
	}
	return 0
}

// ClampProgress bounds a progress value to [0,100]. The old client clamped in
// the browser only, so out-of-range values exist in stored data.
func ClampProgress(progress int) int {
	if progress < 0 {
		return 0
	}
	if progress > 100 {
		return 100
	}
	return progress
}
