package repositories

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"

	"studioBack/internal/models"
)

type RequestRepository struct {
	DB *sql.DB
}

// Tag lists (goals, pages, features, uploads) are stored as JSON text
// columns; MySQL equality queries never touch them.
func encodeTags(tags []string) string {
	if len(tags) == 0 {
		return "[]"
	}
	b, err := json.Marshal(tags)
	if err != nil {
		return "[]"
	}
	return string(b)
}

func decodeTags(raw string) []string {
	if raw == "" {
		return nil
	}
	var tags []string
	if err := json.Unmarshal([]byte(raw), &tags); err != nil {
		return nil
	}
	return tags
}

func (r *RequestRepository) CreateRequest(ctx context.Context, req models.Request) (models.Request, error) {
	query := `INSERT INTO requests (user_id, project_type, goals, pages, features, style, content_status, budget_range,
	                                timeline_target, uploads, contact_name, contact_email, contact_phone, status, created_at, updated_at)
	          VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, NOW(), NOW())`
	res, err := r.DB.ExecContext(ctx, query,
		nullableID(req.UserID), req.ProjectType, encodeTags(req.Goals), encodeTags(req.Pages), encodeTags(req.Features),
		req.Style, req.ContentStatus, req.BudgetRange, req.TimelineTarget, encodeTags(req.Uploads),
		req.Contact.Name, req.Contact.Email, req.Contact.Phone, req.Status)
	if err != nil {
		return models.Request{}, err
	}
	id, _ := res.LastInsertId()
	req.ID = int(id)
	return req, nil
}

const requestColumns = `id, COALESCE(user_id, 0), project_type, goals, pages, features, style, content_status,
	budget_range, timeline_target, uploads, contact_name, contact_email, contact_phone, status,
	quote_amount, project_id, created_at, updated_at`

func scanRequest(row interface{ Scan(...interface{}) error }) (models.Request, error) {
	var req models.Request
	var goals, pages, features, uploads string
	err := row.Scan(&req.ID, &req.UserID, &req.ProjectType, &goals, &pages, &features, &req.Style,
		&req.ContentStatus, &req.BudgetRange, &req.TimelineTarget, &uploads,
		&req.Contact.Name, &req.Contact.Email, &req.Contact.Phone, &req.Status,
		&req.QuoteAmount, &req.ProjectID, &req.CreatedAt, &req.UpdatedAt)
	if err != nil {
		return models.Request{}, err
	}
	req.Goals = decodeTags(goals)
	req.Pages = decodeTags(pages)
	req.Features = decodeTags(features)
	req.Uploads = decodeTags(uploads)
	return req, nil
}

func (r *RequestRepository) GetRequestByID(ctx context.Context, id int) (models.Request, error) {
	row := r.DB.QueryRowContext(ctx, `SELECT `+requestColumns+` FROM requests WHERE id = ?`, id)
	req, err := scanRequest(row)
	if errors.Is(err, sql.ErrNoRows) {
		return models.Request{}, models.ErrRequestNotFound
	}
	return req, err
}

func (r *RequestRepository) GetRequests(ctx context.Context) ([]models.Request, error) {
	return r.queryRequests(ctx, `SELECT `+requestColumns+` FROM requests ORDER BY created_at DESC`)
}

func (r *RequestRepository) GetRequestsByUserID(ctx context.Context, userID int) ([]models.Request, error) {
	return r.queryRequests(ctx, `SELECT `+requestColumns+` FROM requests WHERE user_id = ? ORDER BY created_at DESC`, userID)
}

func (r *RequestRepository) queryRequests(ctx context.Context, query string, args ...interface{}) ([]models.Request, error) {
	rows, err := r.DB.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var requests []models.Request
	for rows.Next() {
		req, err := scanRequest(rows)
		if err != nil {
			return nil, err
		}
		requests = append(requests, req)
	}
	return requests, rows.Err()
}

// UpdateDetails rewrites the structural fields of a request. The status guard
// makes accepted requests immutable at the SQL layer.
func (r *RequestRepository) UpdateDetails(ctx context.Context, req models.Request) error {
	query := `UPDATE requests SET project_type = ?, goals = ?, pages = ?, features = ?, style = ?, content_status = ?,
	          budget_range = ?, timeline_target = ?, contact_name = ?, contact_email = ?, contact_phone = ?, updated_at = NOW()
	          WHERE id = ? AND status <> 'accepted'`
	res, err := r.DB.ExecContext(ctx, query,
		req.ProjectType, encodeTags(req.Goals), encodeTags(req.Pages), encodeTags(req.Features),
		req.Style, req.ContentStatus, req.BudgetRange, req.TimelineTarget,
		req.Contact.Name, req.Contact.Email, req.Contact.Phone, req.ID)
	if err != nil {
		return err
	}
	rows, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if rows == 0 {
		return models.ErrRequestAccepted
	}
	return nil
}

func (r *RequestRepository) UpdateQuote(ctx context.Context, id int, amount float64) error {
	_, err := r.DB.ExecContext(ctx,
		`UPDATE requests SET quote_amount = ?, status = 'quoted', updated_at = NOW() WHERE id = ?`, amount, id)
	return err
}

// MarkRejected moves a request to rejected. The status guard keeps a reject
// racing an accept from stamping over the accepted state; the loser sees zero
// rows and reports ErrRequestAccepted.
func (r *RequestRepository) MarkRejected(ctx context.Context, id int) error {
	res, err := r.DB.ExecContext(ctx,
		`UPDATE requests SET status = 'rejected', updated_at = NOW() WHERE id = ? AND status <> 'accepted'`, id)
	if err != nil {
		return err
	}
	rows, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if rows == 0 {
		return models.ErrRequestAccepted
	}
	return nil
}

// LinkProject marks the request accepted and points it at the created
// project. The status guard means two racing accepts cannot both link: the
// loser sees zero rows and reports ErrRequestAccepted.
func (r *RequestRepository) LinkProject(ctx context.Context, id, projectID int) error {
	res, err := r.DB.ExecContext(ctx,
		`UPDATE requests SET project_id = ?, status = 'accepted', updated_at = NOW() WHERE id = ? AND status <> 'accepted'`,
		projectID, id)
	if err != nil {
		return err
	}
	rows, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if rows == 0 {
		return models.ErrRequestAccepted
	}
	return nil
}

func (r *RequestRepository) AppendUpload(ctx context.Context, id int, fileURL string) error {
	req, err := r.GetRequestByID(ctx, id)
	if err != nil {
		return err
	}
	uploads := append(req.Uploads, fileURL)
	_, err = r.DB.ExecContext(ctx,
		`UPDATE requests SET uploads = ?, updated_at = NOW() WHERE id = ?`, encodeTags(uploads), id)
	return err
}

func nullableID(id int) interface{} {
	if id == 0 {
		return nil
	}
	return id
}
