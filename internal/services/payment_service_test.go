package services

import "testing"

func TestCanBill(t *testing.T) {
	owner := 42

	cases := []struct {
		name    string
		ownerID *int
		userID  int
		isAdmin bool
		want    bool
	}{
		{"owner may pay", &owner, 42, false, true},
		{"another client may not", &owner, 7, false, false},
		{"unowned records are admin-only", nil, 7, false, false},
		{"admin passes regardless of owner", &owner, 7, true, true},
		{"admin passes unowned records", nil, 7, true, true},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			if got := canBill(c.ownerID, c.userID, c.isAdmin); got != c.want {
				t.Fatalf("canBill = %v, want %v", got, c.want)
			}
		})
	}
}
