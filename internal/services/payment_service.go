package services

import (
	"context"
	"fmt"
	"strconv"
	"time"

	"github.com/redis/go-redis/v9"

	"studioBack/internal/lifecycle"
	"studioBack/internal/models"
	"studioBack/internal/pay"
	"studioBack/internal/repositories"
)

// webhookKeyTTL is how long processed gateway event ids are remembered.
const webhookKeyTTL = 72 * time.Hour

type PaymentService struct {
	ProjectRepo *repositories.ProjectRepository
	InvoiceRepo *repositories.InvoiceRepository
	Lifecycle   *lifecycle.Service
	Gateway     *pay.Client
	Redis       *redis.Client
	BaseURL     string
}

// GenerateInvoiceResult is what the admin "Generate Payment" action returns.
type GenerateInvoiceResult struct {
	Invoice      models.Invoice `json:"invoice"`
	ClientSecret string         `json:"client_secret"`
	IntentID     string         `json:"payment_intent_id"`
}

// GenerateInvoice creates the deposit invoice for a quoted project (reusing a
// previously generated one), links it to the project and opens a payment
// intent for the deposit share of the quote.
func (s *PaymentService) GenerateInvoice(ctx context.Context, projectID, quotePence int) (GenerateInvoiceResult, error) {
	if quotePence < 0 {
		return GenerateInvoiceResult{}, lifecycle.ErrNegativeAmount
	}
	project, err := s.ProjectRepo.GetProjectByID(ctx, projectID)
	if err != nil {
		return GenerateInvoiceResult{}, err
	}
	project.QuoteAmountPence = &quotePence

	var invoice models.Invoice
	if project.InvoiceID != nil {
		invoice, err = s.InvoiceRepo.GetInvoiceByID(ctx, *project.InvoiceID)
		if err != nil {
			return GenerateInvoiceResult{}, err
		}
		// A re-quote updates the stored records too, not just the intent.
		// Paid invoices keep their amount; the guard in UpdateAmount skips them.
		if invoice.Amount != quotePence {
			updated, err := s.InvoiceRepo.UpdateAmount(ctx, invoice.ID, quotePence)
			if err != nil {
				return GenerateInvoiceResult{}, err
			}
			if updated {
				invoice.Amount = quotePence
			}
		}
		if err := s.ProjectRepo.LinkInvoice(ctx, projectID, invoice.ID, quotePence); err != nil {
			return GenerateInvoiceResult{}, err
		}
	} else {
		seed, err := s.Lifecycle.InvoiceSeed(project)
		if err != nil {
			return GenerateInvoiceResult{}, err
		}
		invoice, err = s.InvoiceRepo.CreateInvoice(ctx, seed)
		if err != nil {
			return GenerateInvoiceResult{}, err
		}
		if err := s.ProjectRepo.LinkInvoice(ctx, projectID, invoice.ID, quotePence); err != nil {
			return GenerateInvoiceResult{}, err
		}
	}

	intent, err := s.Gateway.CreatePaymentIntent(ctx, pay.CreateIntentRequest{
		Amount:        lifecycle.DepositAmount(quotePence),
		Currency:      pay.Currency,
		TransferGroup: strconv.Itoa(projectID),
		Metadata: map[string]string{
			"projectId": strconv.Itoa(projectID),
			"invoiceId": strconv.Itoa(invoice.ID),
			"type":      "deposit",
		},
	})
	if err != nil {
		return GenerateInvoiceResult{}, err
	}
	if err := s.InvoiceRepo.SetPaymentIntent(ctx, invoice.ID, intent.IntentID); err != nil {
		return GenerateInvoiceResult{}, err
	}
	return GenerateInvoiceResult{Invoice: invoice, ClientSecret: intent.ClientSecret, IntentID: intent.IntentID}, nil
}

// canBill reports whether the caller may initiate payment against a record.
// Admins pass; everyone else must own it.
func canBill(ownerID *int, userID int, isAdmin bool) bool {
	if isAdmin {
		return true
	}
	return ownerID != nil && *ownerID == userID
}

// CreateDeposit opens a payment intent for a project's deposit. The amount
// always comes from the single deposit policy, never from the caller.
func (s *PaymentService) CreateDeposit(ctx context.Context, projectID, invoiceID, userID int, isAdmin bool) (string, string, error) {
	project, err := s.ProjectRepo.GetProjectByID(ctx, projectID)
	if err != nil {
		return "", "", err
	}
	if !canBill(project.UserID, userID, isAdmin) {
		return "", "", models.ErrNotOwner
	}
	if project.QuoteAmountPence == nil {
		return "", "", lifecycle.ErrNoQuote
	}
	invoice, err := s.InvoiceRepo.GetInvoiceByID(ctx, invoiceID)
	if err != nil {
		return "", "", err
	}
	if !canBill(invoice.UserID, userID, isAdmin) {
		return "", "", models.ErrNotOwner
	}

	intent, err := s.Gateway.CreatePaymentIntent(ctx, pay.CreateIntentRequest{
		Amount:        lifecycle.DepositAmount(*project.QuoteAmountPence),
		Currency:      pay.Currency,
		TransferGroup: strconv.Itoa(projectID),
		Metadata: map[string]string{
			"projectId": strconv.Itoa(projectID),
			"invoiceId": strconv.Itoa(invoice.ID),
			"type":      "deposit",
		},
	})
	if err != nil {
		return "", "", err
	}
	if err := s.InvoiceRepo.SetPaymentIntent(ctx, invoice.ID, intent.IntentID); err != nil {
		return "", "", err
	}
	return intent.ClientSecret, intent.IntentID, nil
}

// CheckoutParams are the caller-supplied parts of a hosted checkout.
type CheckoutParams struct {
	ProjectID  int
	InvoiceID  int
	Amount     int
	Label      string
	SuccessURL string
	CancelURL  string
}

// CreateCheckoutSession opens a hosted checkout page and returns its URL.
func (s *PaymentService) CreateCheckoutSession(ctx context.Context, p CheckoutParams, userID int, isAdmin bool) (string, error) {
	project, err := s.ProjectRepo.GetProjectByID(ctx, p.ProjectID)
	if err != nil {
		return "", err
	}
	if !canBill(project.UserID, userID, isAdmin) {
		return "", models.ErrNotOwner
	}
	if p.InvoiceID != 0 {
		invoice, err := s.InvoiceRepo.GetInvoiceByID(ctx, p.InvoiceID)
		if err != nil {
			return "", err
		}
		if !canBill(invoice.UserID, userID, isAdmin) {
			return "", models.ErrNotOwner
		}
	}
	successURL := p.SuccessURL
	if successURL == "" {
		successURL = fmt.Sprintf("%s/dashboard/projects/%d?paid=1", s.BaseURL, p.ProjectID)
	}
	cancelURL := p.CancelURL
	if cancelURL == "" {
		cancelURL = fmt.Sprintf("%s/dashboard/projects/%d?canceled=1", s.BaseURL, p.ProjectID)
	}
	invoiceRef := ""
	if p.InvoiceID != 0 {
		invoiceRef = strconv.Itoa(p.InvoiceID)
	}

	session, err := s.Gateway.CreateCheckoutSession(ctx, pay.CreateSessionRequest{
		Amount:     p.Amount,
		Currency:   pay.Currency,
		Label:      p.Label,
		InvoiceRef: invoiceRef,
		SuccessURL: successURL,
		CancelURL:  cancelURL,
		Metadata: map[string]string{
			"projectId": strconv.Itoa(p.ProjectID),
			"invoiceId": invoiceRef,
		},
	})
	if err != nil {
		return "", err
	}
	return session.URL, nil
}

// HandlePaymentSucceeded closes the loop after the gateway confirms payment:
// the invoice flips to paid and the project is stamped. Deliveries are keyed
// by event id so retries are absorbed; the status guard on MarkPaid is a
// second line for deliveries racing past the key.
func (s *PaymentService) HandlePaymentSucceeded(ctx context.Context, event pay.Event) error {
	invoiceID, err := strconv.Atoi(event.Data.Object.Metadata["invoiceId"])
	if err != nil {
		return fmt.Errorf("webhook event %s: invoiceId metadata missing", event.ID)
	}

	// The gateway reports what was actually charged; an invoice only flips
	// to paid when that covers the deposit due on it.
	invoice, err := s.InvoiceRepo.GetInvoiceByID(ctx, invoiceID)
	if err != nil {
		return err
	}
	if paid := event.Data.Object.Amount; paid > 0 && !lifecycle.PaymentCoversDeposit(invoice.Amount, paid) {
		return fmt.Errorf("webhook event %s: paid %d does not cover the deposit on invoice %d", event.ID, paid, invoiceID)
	}

	if s.Redis != nil {
		key := "webhook:event:" + event.ID
		ok, err := s.Redis.SetNX(ctx, key, "1", webhookKeyTTL).Result()
		if err == nil && !ok {
			return nil // already processed
		}
	}

	updated, err := s.InvoiceRepo.MarkPaid(ctx, invoiceID, event.Data.Object.ID)
	if err != nil {
		return err
	}
	if !updated {
		return nil
	}

	if projectID, err := strconv.Atoi(event.Data.Object.Metadata["projectId"]); err == nil {
		if err := s.ProjectRepo.MarkPaid(ctx, projectID); err != nil {
			return err
		}
	}
	return nil
}
