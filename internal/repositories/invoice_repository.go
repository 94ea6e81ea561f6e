package repositories

import (
	"context"
	"database/sql"
	"errors"

	"studioBack/internal/models"
)

type InvoiceRepository struct {
	DB *sql.DB
}

func (r *InvoiceRepository) CreateInvoice(ctx context.Context, inv models.Invoice) (models.Invoice, error) {
	query := `INSERT INTO invoices (project_id, user_id, amount, status, description, created_at)
	          VALUES (?, ?, ?, ?, ?, NOW())`
	res, err := r.DB.ExecContext(ctx, query, inv.ProjectID, inv.UserID, inv.Amount, inv.Status, inv.Description)
	if err != nil {
		return models.Invoice{}, err
	}
	id, _ := res.LastInsertId()
	inv.ID = int(id)
	return inv, nil
}

const invoiceColumns = `id, project_id, user_id, amount, status, description, COALESCE(payment_intent_id, ''), paid_at, created_at`

func scanInvoice(row interface{ Scan(...interface{}) error }) (models.Invoice, error) {
	var inv models.Invoice
	err := row.Scan(&inv.ID, &inv.ProjectID, &inv.UserID, &inv.Amount, &inv.Status,
		&inv.Description, &inv.PaymentIntentID, &inv.PaidAt, &inv.CreatedAt)
	return inv, err
}

func (r *InvoiceRepository) GetInvoiceByID(ctx context.Context, id int) (models.Invoice, error) {
	row := r.DB.QueryRowContext(ctx, `SELECT `+invoiceColumns+` FROM invoices WHERE id = ?`, id)
	inv, err := scanInvoice(row)
	if errors.Is(err, sql.ErrNoRows) {
		return models.Invoice{}, models.ErrInvoiceNotFound
	}
	return inv, err
}

func (r *InvoiceRepository) GetInvoices(ctx context.Context) ([]models.Invoice, error) {
	return r.queryInvoices(ctx, `SELECT `+invoiceColumns+` FROM invoices ORDER BY created_at DESC`)
}

func (r *InvoiceRepository) GetInvoicesByUserID(ctx context.Context, userID int) ([]models.Invoice, error) {
	return r.queryInvoices(ctx, `SELECT `+invoiceColumns+` FROM invoices WHERE user_id = ? ORDER BY created_at DESC`, userID)
}

func (r *InvoiceRepository) queryInvoices(ctx context.Context, query string, args ...interface{}) ([]models.Invoice, error) {
	rows, err := r.DB.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var invoices []models.Invoice
	for rows.Next() {
		inv, err := scanInvoice(rows)
		if err != nil {
			return nil, err
		}
		invoices = append(invoices, inv)
	}
	return invoices, rows.Err()
}

// UpdateAmount re-bills an open invoice after a re-quote. Paid invoices are
// immutable; the guard reports whether anything changed.
func (r *InvoiceRepository) UpdateAmount(ctx context.Context, id, amount int) (bool, error) {
	res, err := r.DB.ExecContext(ctx,
		`UPDATE invoices SET amount = ? WHERE id = ? AND status <> 'paid'`, amount, id)
	if err != nil {
		return false, err
	}
	rows, err := res.RowsAffected()
	if err != nil {
		return false, err
	}
	return rows > 0, nil
}

func (r *InvoiceRepository) SetPaymentIntent(ctx context.Context, id int, intentID string) error {
	_, err := r.DB.ExecContext(ctx, `UPDATE invoices SET payment_intent_id = ? WHERE id = ?`, intentID, id)
	return err
}

// MarkPaid flips a pending or unpaid invoice to paid. The status guard makes
// redelivered webhooks a no-op at the SQL layer.
func (r *InvoiceRepository) MarkPaid(ctx context.Context, id int, intentID string) (bool, error) {
	res, err := r.DB.ExecContext(ctx,
		`UPDATE invoices SET status = 'paid', payment_intent_id = ?, paid_at = NOW() WHERE id = ? AND status <> 'paid'`,
		intentID, id)
	if err != nil {
		return false, err
	}
	rows, err := res.RowsAffected()
	if err != nil {
		return false, err
	}
	return rows > 0, nil
}
