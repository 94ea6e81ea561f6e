package lifecycle

// Status constants used by the request triage state machine.
const (
	RequestStatusNew      = "new"
	RequestStatusQuoted   = "quoted"
	RequestStatusAccepted = "accepted"
	RequestStatusRejected = "rejected"
)

var requestTransitions = map[string]map[string]struct{}{
	RequestStatusNew: {
		RequestStatusQuoted:   {},
		RequestStatusAccepted: {},
		RequestStatusRejected: {},
	},
	RequestStatusQuoted: {
		RequestStatusQuoted:   {},
		RequestStatusAccepted: {},
		RequestStatusRejected: {},
	},
	RequestStatusAccepted: {},
	RequestStatusRejected: {
		RequestStatusRejected: {},
	},
}

// NormalizeRequestStatus maps legacy free-text statuses onto the machine's
// vocabulary. Unknown strings behave like "new" for transition purposes; the
// stored value is never rewritten.
func NormalizeRequestStatus(status string) string {
	switch status {
	case RequestStatusNew, RequestStatusQuoted, RequestStatusAccepted, RequestStatusRejected:
		return status
	}
	return RequestStatusNew
}

// CanTransition reports whether a request may move from one status to another.
// Repeating the current status is allowed where the transition table says so,
// which makes reject idempotent while re-accepting stays forbidden.
func CanTransition(from, to string) bool {
	allowed, ok := requestTransitions[NormalizeRequestStatus(from)]
	if !ok {
		return false
	}
	_, ok = allowed[to]
	return ok
}
