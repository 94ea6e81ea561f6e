package repositories

import (
	"context"
	"database/sql"

	"studioBack/internal/models"
)

type ContactRepository struct {
	DB *sql.DB
}

func (r *ContactRepository) CreateSubmission(ctx context.Context, sub models.ContactSubmission) (models.ContactSubmission, error) {
	query := `INSERT INTO contact_submissions (name, email, phone, subject, message, status, source, created_at)
	          VALUES (?, ?, ?, ?, ?, ?, ?, NOW())`
	res, err := r.DB.ExecContext(ctx, query, sub.Name, sub.Email, sub.Phone, sub.Subject, sub.Message, sub.Status, sub.Source)
	if err != nil {
		return models.ContactSubmission{}, err
	}
	id, _ := res.LastInsertId()
	sub.ID = int(id)
	return sub, nil
}

func (r *ContactRepository) GetSubmissions(ctx context.Context) ([]models.ContactSubmission, error) {
	rows, err := r.DB.QueryContext(ctx,
		`SELECT id, name, email, phone, subject, message, status, source, created_at
		 FROM contact_submissions ORDER BY created_at DESC`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var subs []models.ContactSubmission
	for rows.Next() {
		var sub models.ContactSubmission
		if err := rows.Scan(&sub.ID, &sub.Name, &sub.Email, &sub.Phone, &sub.Subject, &sub.Message,
			&sub.Status, &sub.Source, &sub.CreatedAt); err != nil {
			return nil, err
		}
		subs = append(subs, sub)
	}
	return subs, rows.Err()
}

func (r *ContactRepository) UpdateStatus(ctx context.Context, id int, status string) error {
	res, err := r.DB.ExecContext(ctx, `UPDATE contact_submissions SET status = ? WHERE id = ?`, status, id)
	if err != nil {
		return err
	}
	rows, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if rows == 0 {
		return models.ErrContactNotFound
	}
	return nil
}
