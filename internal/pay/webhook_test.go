package pay

import (
	"testing"
	"time"
)

func TestVerifySignature(t *testing.T) {
	body := []byte(`{"id":"evt_1","type":"payment_intent.succeeded"}`)
	secret := "whsec_test"
	now := time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC)

	header := SignPayload(body, secret, now)
	if !VerifySignature(body, header, secret, now) {
		t.Fatal("expected signature to be valid")
	}
	if VerifySignature(body, header, "whsec_other", now) {
		t.Fatal("unexpected valid signature with wrong secret")
	}
	if VerifySignature([]byte(`{"id":"evt_2"}`), header, secret, now) {
		t.Fatal("unexpected valid signature for altered body")
	}
	if VerifySignature(body, "t=abc,v1=deadbeef", secret, now) {
		t.Fatal("unexpected valid signature for garbage header")
	}
}

func TestVerifySignatureRejectsStale(t *testing.T) {
	body := []byte(`{"id":"evt_1"}`)
	secret := "whsec_test"
	sent := time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC)
	header := SignPayload(body, secret, sent)

	if VerifySignature(body, header, secret, sent.Add(10*time.Minute)) {
		t.Fatal("expected stale delivery to be rejected")
	}
	if !VerifySignature(body, header, secret, sent.Add(time.Minute)) {
		t.Fatal("expected fresh delivery to be accepted")
	}
}

func TestParseEvent(t *testing.T) {
	ev, err := ParseEvent([]byte(`{"id":"evt_9","type":"payment_intent.succeeded","data":{"object":{"id":"pi_1","amount":37500,"currency":"gbp","metadata":{"projectId":"4","invoiceId":"2"}}}}`))
	if err != nil {
		t.Fatalf("ParseEvent: %v", err)
	}
	if ev.ID != "evt_9" || ev.Data.Object.ID != "pi_1" {
		t.Fatalf("unexpected event %+v", ev)
	}
	if ev.Data.Object.Metadata["invoiceId"] != "2" {
		t.Fatalf("metadata not decoded")
	}

	if _, err := ParseEvent([]byte(`{"type":"x"}`)); err == nil {
		t.Fatal("expected error for event without id")
	}
}
