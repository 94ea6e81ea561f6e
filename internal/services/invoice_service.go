package services

import (
	"context"

	"studioBack/internal/models"
	"studioBack/internal/repositories"
)

type InvoiceService struct {
	InvoiceRepo *repositories.InvoiceRepository
}

func (s *InvoiceService) GetInvoices(ctx context.Context) ([]models.Invoice, error) {
	return s.InvoiceRepo.GetInvoices(ctx)
}

func (s *InvoiceService) GetInvoicesByUserID(ctx context.Context, userID int) ([]models.Invoice, error) {
	return s.InvoiceRepo.GetInvoicesByUserID(ctx, userID)
}

func (s *InvoiceService) GetInvoiceByID(ctx context.Context, id int) (models.Invoice, error) {
	return s.InvoiceRepo.GetInvoiceByID(ctx, id)
}

func (s *InvoiceService) GetOwnInvoice(ctx context.Context, id, userID int) (models.Invoice, error) {
	inv, err := s.InvoiceRepo.GetInvoiceByID(ctx, id)
	if err != nil {
		return models.Invoice{}, err
	}
	if inv.UserID == nil || *inv.UserID != userID {
		return models.Invoice{}, models.ErrNotOwner
	}
	return inv, nil
}
