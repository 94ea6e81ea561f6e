package repositories

import (
	"context"
	"database/sql"
	"errors"

	"studioBack/internal/models"
)

type ProjectRepository struct {
	DB *sql.DB
}

func (r *ProjectRepository) CreateProject(ctx context.Context, project models.Project) (models.Project, error) {
	query := `INSERT INTO projects (name, status, progress, website_type, features, requirements, description,
	                                budget, due_date, client_email, user_id, quote_amount_pence, invoice_id, created_at, updated_at)
	          VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, NOW(), NOW())`
	res, err := r.DB.ExecContext(ctx, query,
		project.Name, project.Status, project.Progress, project.WebsiteType, project.Features,
		project.Requirements, project.Description, project.Budget, project.DueDate, project.ClientEmail,
		project.UserID, project.QuoteAmountPence, project.InvoiceID)
	if err != nil {
		return models.Project{}, err
	}
	id, _ := res.LastInsertId()
	project.ID = int(id)
	return project, nil
}

const projectColumns = `id, name, status, progress, website_type, features, requirements, description,
	budget, due_date, client_email, user_id, quote_amount_pence, invoice_id, paid_at, created_at, updated_at`

func scanProject(row interface{ Scan(...interface{}) error }) (models.Project, error) {
	var p models.Project
	err := row.Scan(&p.ID, &p.Name, &p.Status, &p.Progress, &p.WebsiteType, &p.Features, &p.Requirements,
		&p.Description, &p.Budget, &p.DueDate, &p.ClientEmail, &p.UserID, &p.QuoteAmountPence,
		&p.InvoiceID, &p.PaidAt, &p.CreatedAt, &p.UpdatedAt)
	return p, err
}

func (r *ProjectRepository) GetProjectByID(ctx context.Context, id int) (models.Project, error) {
	row := r.DB.QueryRowContext(ctx, `SELECT `+projectColumns+` FROM projects WHERE id = ?`, id)
	p, err := scanProject(row)
	if errors.Is(err, sql.ErrNoRows) {
		return models.Project{}, models.ErrProjectNotFound
	}
	return p, err
}

func (r *ProjectRepository) GetProjects(ctx context.Context) ([]models.Project, error) {
	return r.queryProjects(ctx, `SELECT `+projectColumns+` FROM projects ORDER BY created_at DESC`)
}

func (r *ProjectRepository) GetProjectsByUserID(ctx context.Context, userID int) ([]models.Project, error) {
	return r.queryProjects(ctx, `SELECT `+projectColumns+` FROM projects WHERE user_id = ? ORDER BY created_at DESC`, userID)
}

func (r *ProjectRepository) GetProjectsByClientEmail(ctx context.Context, email string) ([]models.Project, error) {
	return r.queryProjects(ctx, `SELECT `+projectColumns+` FROM projects WHERE client_email = ? ORDER BY created_at DESC`, email)
}

func (r *ProjectRepository) queryProjects(ctx context.Context, query string, args ...interface{}) ([]models.Project, error) {
	rows, err := r.DB.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var projects []models.Project
	for rows.Next() {
		p, err := scanProject(rows)
		if err != nil {
			return nil, err
		}
		projects = append(projects, p)
	}
	return projects, rows.Err()
}

func (r *ProjectRepository) UpdateProject(ctx context.Context, project models.Project) (models.Project, error) {
	query := `UPDATE projects SET name = ?, status = ?, progress = ?, website_type = ?, features = ?, requirements = ?,
	          description = ?, budget = ?, due_date = ?, client_email = ?, quote_amount_pence = ?, invoice_id = ?, updated_at = NOW()
	          WHERE id = ?`
	_, err := r.DB.ExecContext(ctx, query,
		project.Name, project.Status, project.Progress, project.WebsiteType, project.Features,
		project.Requirements, project.Description, project.Budget, project.DueDate, project.ClientEmail,
		project.QuoteAmountPence, project.InvoiceID, project.ID)
	return project, err
}

// LinkInvoice stores the generated invoice id and the quote it bills for.
func (r *ProjectRepository) LinkInvoice(ctx context.Context, projectID, invoiceID, quotePence int) error {
	_, err := r.DB.ExecContext(ctx,
		`UPDATE projects SET invoice_id = ?, quote_amount_pence = ?, updated_at = NOW() WHERE id = ?`,
		invoiceID, quotePence, projectID)
	return err
}

func (r *ProjectRepository) MarkPaid(ctx context.Context, projectID int) error {
	_, err := r.DB.ExecContext(ctx,
		`UPDATE projects SET paid_at = NOW(), updated_at = NOW() WHERE id = ? AND paid_at IS NULL`, projectID)
	return err
}
