package lifecycle

import "testing"

func TestCanTransition(t *testing.T) {
	if !CanTransition(RequestStatusNew, RequestStatusQuoted) {
		t.Fatal("expected new -> quoted to be allowed")
	}
	if !CanTransition(RequestStatusNew, RequestStatusAccepted) {
		t.Fatal("expected new -> accepted to be allowed")
	}
	if !CanTransition(RequestStatusQuoted, RequestStatusAccepted) {
		t.Fatal("expected quoted -> accepted to be allowed")
	}
	if !CanTransition(RequestStatusQuoted, RequestStatusQuoted) {
		t.Fatal("expected re-quoting to be allowed")
	}
	if CanTransition(RequestStatusAccepted, RequestStatusRejected) {
		t.Fatal("unexpected transition out of accepted")
	}
	if CanTransition(RequestStatusAccepted, RequestStatusAccepted) {
		t.Fatal("re-accepting must not be allowed")
	}
	if !CanTransition(RequestStatusRejected, RequestStatusRejected) {
		t.Fatal("expected reject to be repeatable")
	}
}

func TestCanTransitionLegacyStatus(t *testing.T) {
	// Ad hoc strings in stored data behave like "new".
	if !CanTransition("contacted", RequestStatusQuoted) {
		t.Fatal("expected unrecognized status to transition like new")
	}
	if NormalizeRequestStatus("contacted") != RequestStatusNew {
		t.Fatal("expected unrecognized status to normalize to new")
	}
	if NormalizeRequestStatus(RequestStatusQuoted) != RequestStatusQuoted {
		t.Fatal("known status must normalize to itself")
	}
}
