package services

import (
	"context"
	"errors"
	"net/mail"
	"strings"

	"studioBack/internal/models"
	"studioBack/internal/repositories"
)

var ErrContactValidation = errors.New("name, email, phone and message are required")

type ContactService struct {
	ContactRepo *repositories.ContactRepository
}

func (s *ContactService) Submit(ctx context.Context, sub models.ContactSubmission) (models.ContactSubmission, error) {
	if strings.TrimSpace(sub.Name) == "" || strings.TrimSpace(sub.Phone) == "" || strings.TrimSpace(sub.Message) == "" {
		return models.ContactSubmission{}, ErrContactValidation
	}
	if _, err := mail.ParseAddress(sub.Email); err != nil {
		return models.ContactSubmission{}, ErrContactValidation
	}
	sub.Status = models.ContactStatusNew
	sub.Source = "site-contact"
	return s.ContactRepo.CreateSubmission(ctx, sub)
}

func (s *ContactService) GetSubmissions(ctx context.Context) ([]models.ContactSubmission, error) {
	return s.ContactRepo.GetSubmissions(ctx)
}

func (s *ContactService) MarkRead(ctx context.Context, id int) error {
	return s.ContactRepo.UpdateStatus(ctx, id, models.ContactStatusRead)
}
