package lifecycle

import (
	"errors"
	"fmt"
	"math"
	"net/mail"
	"strings"

	"studioBack/internal/models"
)

var (
	ErrInvalidOperation = errors.New("lifecycle: operation not allowed in current status")
	ErrAlreadyAccepted  = errors.New("lifecycle: request already accepted")
	ErrInvalidEmail     = errors.New("lifecycle: contact email is not a valid address")
	ErrNegativeAmount   = errors.New("lifecycle: amount must not be negative")
	ErrNoQuote          = errors.New("lifecycle: project has no quote amount")
)

// Service encapsulates the request/project/invoice transition rules. It is
// pure: persistence of the states it computes belongs to the callers.
type Service struct{}

func NewService() *Service { return &Service{} }

// ValidateSubmission checks an intake payload before it becomes a new
// request. Only the contact email is mandatory; every other field is free
// text the studio triages by hand.
func (s *Service) ValidateSubmission(req models.Request) error {
	if _, err := mail.ParseAddress(req.Contact.Email); err != nil {
		return ErrInvalidEmail
	}
	return nil
}

// Submit stamps a validated intake payload as a new request.
func (s *Service) Submit(req models.Request, userID int) (models.Request, error) {
	if err := s.ValidateSubmission(req); err != nil {
		return models.Request{}, err
	}
	req.UserID = userID
	req.Status = RequestStatusNew
	req.QuoteAmount = nil
	req.ProjectID = nil
	return req, nil
}

// Quote moves a request to quoted with the given amount in major currency
// units. Repeat calls overwrite the previous quote.
func (s *Service) Quote(req models.Request, amount float64) (models.Request, error) {
	if amount < 0 {
		return models.Request{}, ErrNegativeAmount
	}
	if !CanTransition(req.Status, RequestStatusQuoted) {
		return models.Request{}, ErrInvalidOperation
	}
	req.Status = RequestStatusQuoted
	req.QuoteAmount = &amount
	return req, nil
}

// Reject marks a request rejected. Calling it on an already rejected request
// is a harmless no-op; calling it on an accepted one is refused.
func (s *Service) Reject(req models.Request) (models.Request, error) {
	if !CanTransition(req.Status, RequestStatusRejected) {
		return models.Request{}, ErrInvalidOperation
	}
	req.Status = RequestStatusRejected
	return req, nil
}

// AcceptSeed derives the project created when an admin accepts a request.
// The caller persists the project, then links it back with LinkProject.
func (s *Service) AcceptSeed(req models.Request) (models.Project, error) {
	if NormalizeRequestStatus(req.Status) == RequestStatusAccepted {
		return models.Project{}, ErrAlreadyAccepted
	}
	if !CanTransition(req.Status, RequestStatusAccepted) {
		return models.Project{}, ErrInvalidOperation
	}
	name := strings.TrimSpace(req.ProjectType)
	if name == "" {
		name = "Project"
	}
	project := models.Project{
		Name:         name,
		Status:       "in-progress",
		Progress:     0,
		WebsiteType:  req.ProjectType,
		Features:     strings.Join(req.Features, ", "),
		Requirements: strings.Join(req.Pages, ", "),
		Description:  req.Style,
		Budget:       0,
		DueDate:      req.TimelineTarget,
		ClientEmail:  req.Contact.Email,
	}
	if req.UserID != 0 {
		uid := req.UserID
		project.UserID = &uid
	}
	return project, nil
}

// LinkProject finalizes acceptance: status becomes accepted and the request
// points at the created project. Invariant: project id is set if and only if
// the status is accepted.
func (s *Service) LinkProject(req models.Request, projectID int) models.Request {
	req.Status = RequestStatusAccepted
	req.ProjectID = &projectID
	return req
}

// InvoiceSeed derives the deposit invoice for a quoted project.
func (s *Service) InvoiceSeed(project models.Project) (models.Invoice, error) {
	if project.QuoteAmountPence == nil {
		return models.Invoice{}, ErrNoQuote
	}
	amount := *project.QuoteAmountPence
	if amount < 0 {
		return models.Invoice{}, ErrNegativeAmount
	}
	return models.Invoice{
		ProjectID:   project.ID,
		UserID:      project.UserID,
		Amount:      amount,
		Status:      models.InvoiceStatusPending,
		Description: "Project deposit",
	}, nil
}

// DepositAmount is the single deposit policy: half the quote, rounded up.
// The studio bills 50% up front and 50% on completion; every payment
// initiation path must charge through here.
func DepositAmount(quotePence int) int {
	if quotePence <= 0 {
		return 0
	}
	return int(math.Ceil(float64(quotePence) / 2))
}

// PaymentCoversDeposit reports whether a gateway-confirmed amount settles at
// least the deposit due on an invoice of the given total. Underpayments must
// not flip an invoice to paid.
func PaymentCoversDeposit(invoicePence, paidPence int) bool {
	return paidPence >= DepositAmount(invoicePence)
}

// QuoteToPence converts a major-unit quote to minor units.
func QuoteToPence(quote float64) int {
	return int(math.Round(quote * 100))
}

// FormatPence renders a minor-unit amount as a major-unit string with two
// decimal places, e.g. 75000 -> "750.00".
func FormatPence(pence int) string {
	return fmt.Sprintf("%.2f", float64(pence)/100)
}
