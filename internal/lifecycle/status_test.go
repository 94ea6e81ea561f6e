package lifecycle

import "testing"

func TestCanonicalize(t *testing.T) {
	cases := map[string]string{
		"in-progress":         StatusInProgress,
		"In Progress":         StatusInProgress,
		"on-hold":             StatusOnHold,
		"On Hold":             StatusOnHold,
		"accepted":            StatusApproved,
		"Approved":            StatusApproved,
		"client review stage": StatusClientReview,
		"final review":        StatusFinalReview,
		"completed":           StatusCompleted,
		"cancelled":           StatusRejected,
		"rejected":            StatusRejected,
		"pending":             StatusPending,
	}
	for raw, want := range cases {
		if got := Canonicalize(raw); got != want {
			t.Errorf("Canonicalize(%q) = %q, want %q", raw, got, want)
		}
	}
}

func TestCanonicalizeUnknown(t *testing.T) {
	// A data-entry typo must surface as unknown, not silently display as a
	// more progressed status.
	for _, raw := range []string{"", "prgoress", "banana", "   "} {
		if got := Canonicalize(raw); got != StatusUnknown {
			t.Errorf("Canonicalize(%q) = %q, want %q", raw, got, StatusUnknown)
		}
	}
}

func TestProgressIndex(t *testing.T) {
	if got := ProgressIndex("completed"); got != 5 {
		t.Fatalf("expected completed at index 5, got %d", got)
	}
	if got := ProgressIndex("in-progress"); got != 2 {
		t.Fatalf("expected in progress at index 2, got %d", got)
	}
	// Unknown and non-linear statuses pin to the start of the bar.
	for _, raw := range []string{"typo", "rejected", "on hold"} {
		if got := ProgressIndex(raw); got != 0 {
			t.Fatalf("ProgressIndex(%q) = %d, want 0", raw, got)
		}
	}
}

func TestClampProgress(t *testing.T) {
	cases := []struct{ in, want int }{
		{-10, 0}, {0, 0}, {55, 55}, {100, 100}, {250, 100},
	}
	for _, c := range cases {
		if got := ClampProgress(c.in); got != c.want {
			t.Errorf("ClampProgress(%d) = %d, want %d", c.in, got, c.want)
		}
	}
}
