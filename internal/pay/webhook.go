package pay

import (
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"strconv"
	"strings"
	"time"
)

// DefaultTolerance is how far a webhook timestamp may drift before the
// delivery is treated as a replay.
const DefaultTolerance = 5 * time.Minute

// Event is the envelope of a gateway webhook delivery.
type Event struct {
	ID   string `json:"id"`
	Type string `json:"type"`
	Data struct {
		Object struct {
			ID       string            `json:"id"`
			Amount   int               `json:"amount"`
			Currency string            `json:"currency"`
			Metadata map[string]string `json:"metadata"`
		} `json:"object"`
	} `json:"data"`
}

// ParseEvent decodes a webhook payload after its signature was verified.
func ParseEvent(body []byte) (Event, error) {
	var ev Event
	if err := json.Unmarshal(body, &ev); err != nil {
		return Event{}, err
	}
	if ev.ID == "" {
		return Event{}, fmt.Errorf("pay: event id missing")
	}
	return ev, nil
}

// VerifySignature validates a Stripe-style signature header of the form
// "t=<unix>,v1=<hex>" where v1 is HMAC-SHA256 over "<t>.<body>".
func VerifySignature(body []byte, header, secret string, now time.Time) bool {
	var ts string
	var sigs []string
	for _, part := range strings.Split(header, ",") {
		kv := strings.SplitN(strings.TrimSpace(part), "=", 2)
		if len(kv) != 2 {
			continue
		}
		switch kv[0] {
		case "t":
			ts = kv[1]
		case "v1":
			sigs = append(sigs, kv[1])
		}
	}
	if ts == "" || len(sigs) == 0 {
		return false
	}
	unix, err := strconv.ParseInt(ts, 10, 64)
	if err != nil {
		return false
	}
	sent := time.Unix(unix, 0)
	if now.Sub(sent) > DefaultTolerance || sent.Sub(now) > DefaultTolerance {
		return false
	}

	mac := hmac.New(sha256.New, []byte(secret))
	mac.Write([]byte(ts))
	mac.Write([]byte("."))
	mac.Write(body)
	expected := mac.Sum(nil)

	for _, s := range sigs {
		sigBytes, err := hex.DecodeString(s)
		if err != nil {
			continue
		}
		if hmac.Equal(expected, sigBytes) {
			return true
		}
	}
	return false
}

// SignPayload produces a signature header for a payload, used by tests and
// the local webhook replayer.
func SignPayload(body []byte, secret string, at time.Time) string {
	ts := strconv.FormatInt(at.Unix(), 10)
	mac := hmac.New(sha256.New, []byte(secret))
	mac.Write([]byte(ts))
	mac.Write([]byte("."))
	mac.Write(body)
	return fmt.Sprintf("t=%s,v1=%s", ts, hex.EncodeToString(mac.Sum(nil)))
}
