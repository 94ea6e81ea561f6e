package lifecycle

import (
	"errors"
	"testing"

	"studioBack/internal/models"
)

func TestRequestHappyPath(t *testing.T) {
	svc := NewService()

	draft := models.Request{
		ProjectType: "Portfolio site",
		Pages:       []string{"Home", "About"},
		Features:    []string{"Gallery", "Contact form"},
		Contact:     models.Contact{Name: "A", Email: "a@b.com"},
	}
	req, err := svc.Submit(draft, 42)
	if err != nil {
		t.Fatalf("Submit: %v", err)
	}
	if req.Status != RequestStatusNew {
		t.Fatalf("expected status new, got %s", req.Status)
	}
	if req.UserID != 42 {
		t.Fatalf("expected owner 42, got %d", req.UserID)
	}

	req, err = svc.Quote(req, 500)
	if err != nil {
		t.Fatalf("Quote: %v", err)
	}
	if req.Status != RequestStatusQuoted {
		t.Fatalf("expected status quoted, got %s", req.Status)
	}
	if req.QuoteAmount == nil || *req.QuoteAmount != 500 {
		t.Fatalf("quote amount not stored")
	}

	project, err := svc.AcceptSeed(req)
	if err != nil {
		t.Fatalf("AcceptSeed: %v", err)
	}
	if project.Name != "Portfolio site" {
		t.Fatalf("expected project name from project type, got %q", project.Name)
	}
	if project.ClientEmail != "a@b.com" {
		t.Fatalf("expected client email from contact, got %q", project.ClientEmail)
	}
	if project.Progress != 0 || project.Status != "in-progress" {
		t.Fatalf("unexpected seed state: progress=%d status=%s", project.Progress, project.Status)
	}
	if project.Features != "Gallery, Contact form" {
		t.Fatalf("features not joined: %q", project.Features)
	}
	if project.Requirements != "Home, About" {
		t.Fatalf("pages not joined into requirements: %q", project.Requirements)
	}
	if project.UserID == nil || *project.UserID != 42 {
		t.Fatalf("owner not carried to project")
	}

	req = svc.LinkProject(req, 7)
	if req.Status != RequestStatusAccepted {
		t.Fatalf("expected status accepted, got %s", req.Status)
	}
	if req.ProjectID == nil || *req.ProjectID != 7 {
		t.Fatalf("project id not linked")
	}

	// Accepted requests stay accepted.
	if _, err := svc.AcceptSeed(req); !errors.Is(err, ErrAlreadyAccepted) {
		t.Fatalf("expected ErrAlreadyAccepted, got %v", err)
	}
	if _, err := svc.Reject(req); !errors.Is(err, ErrInvalidOperation) {
		t.Fatalf("expected reject of accepted request to fail, got %v", err)
	}
}

func TestSubmitValidation(t *testing.T) {
	svc := NewService()
	_, err := svc.Submit(models.Request{Contact: models.Contact{Email: "not-an-email"}}, 1)
	if !errors.Is(err, ErrInvalidEmail) {
		t.Fatalf("expected ErrInvalidEmail, got %v", err)
	}
	// Every field other than the contact email is optional.
	if _, err := svc.Submit(models.Request{Contact: models.Contact{Email: "a@b.com"}}, 1); err != nil {
		t.Fatalf("minimal submission rejected: %v", err)
	}
}

func TestQuoteRejectsNegativeAmount(t *testing.T) {
	svc := NewService()
	if _, err := svc.Quote(models.Request{Status: RequestStatusNew}, -1); !errors.Is(err, ErrNegativeAmount) {
		t.Fatalf("expected ErrNegativeAmount, got %v", err)
	}
}

func TestRejectIdempotent(t *testing.T) {
	svc := NewService()
	req := models.Request{Status: RequestStatusQuoted}

	first, err := svc.Reject(req)
	if err != nil {
		t.Fatalf("Reject: %v", err)
	}
	second, err := svc.Reject(first)
	if err != nil {
		t.Fatalf("repeated Reject: %v", err)
	}
	if first.Status != RequestStatusRejected || second.Status != RequestStatusRejected {
		t.Fatalf("reject not idempotent: %s / %s", first.Status, second.Status)
	}
}

func TestAcceptSeedEmptyProjectType(t *testing.T) {
	svc := NewService()
	project, err := svc.AcceptSeed(models.Request{
		Status:  RequestStatusNew,
		Contact: models.Contact{Email: "a@b.com"},
	})
	if err != nil {
		t.Fatalf("AcceptSeed: %v", err)
	}
	if project.Name != "Project" {
		t.Fatalf("expected fallback project name, got %q", project.Name)
	}
	if project.UserID != nil {
		t.Fatalf("anonymous request must not get an owner")
	}
}

func TestInvoiceSeed(t *testing.T) {
	svc := NewService()
	quote := 75000
	uid := 3
	project := models.Project{ID: 9, UserID: &uid, QuoteAmountPence: &quote}

	inv, err := svc.InvoiceSeed(project)
	if err != nil {
		t.Fatalf("InvoiceSeed: %v", err)
	}
	if inv.Amount != 75000 {
		t.Fatalf("expected amount 75000, got %d", inv.Amount)
	}
	if inv.Status != models.InvoiceStatusPending {
		t.Fatalf("expected pending invoice, got %s", inv.Status)
	}
	if inv.Description != "Project deposit" {
		t.Fatalf("unexpected description %q", inv.Description)
	}
	if inv.ProjectID != 9 || inv.UserID == nil || *inv.UserID != 3 {
		t.Fatalf("invoice links wrong: project=%d", inv.ProjectID)
	}

	if _, err := svc.InvoiceSeed(models.Project{}); !errors.Is(err, ErrNoQuote) {
		t.Fatalf("expected ErrNoQuote for unquoted project, got %v", err)
	}
}

func TestDepositAmount(t *testing.T) {
	cases := []struct{ quote, want int }{
		{75000, 37500},
		{101, 51}, // odd quotes round up
		{1, 1},
		{0, 0},
		{-50, 0},
	}
	for _, c := range cases {
		if got := DepositAmount(c.quote); got != c.want {
			t.Errorf("DepositAmount(%d) = %d, want %d", c.quote, got, c.want)
		}
	}
}

func TestPaymentCoversDeposit(t *testing.T) {
	cases := []struct {
		invoice, paid int
		want          bool
	}{
		{75000, 37500, true}, // exact deposit
		{75000, 75000, true}, // paid in full
		{75000, 37499, false},
		{75000, 1, false},
		{101, 51, true}, // odd quotes round up
		{101, 50, false},
	}
	for _, c := range cases {
		if got := PaymentCoversDeposit(c.invoice, c.paid); got != c.want {
			t.Errorf("PaymentCoversDeposit(%d, %d) = %v, want %v", c.invoice, c.paid, got, c.want)
		}
	}
}

func TestQuoteRoundTrip(t *testing.T) {
	// quote £750 -> 75000 pence -> "750.00"
	pence := QuoteToPence(750)
	if pence != 75000 {
		t.Fatalf("expected 75000 pence, got %d", pence)
	}
	if got := FormatPence(pence); got != "750.00" {
		t.Fatalf("expected 750.00, got %s", got)
	}
}
