package supabase

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"visual-library-backend/internal/models"
)

// Reviews

func (d *DatabaseClient) CreateReview(ctx context.Context, r *models.ProjectReview) error {
	if r.Status == "" {
		r.Status = models.ReviewPending
	}
	err := d.db.QueryRowContext(ctx, `
		INSERT INTO project_reviews (project_id, user_id, rating, comment, status)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING id, created_at
	`, r.ProjectID, r.UserID, r.Rating, r.Comment, string(r.Status)).Scan(&r.ID, &r.CreatedAt)
	return wrap("create review", err)
}

// ListReviews lists a project's reviews, optionally restricted to one status.
func (d *DatabaseClient) ListReviews(ctx context.Context, projectID uuid.UUID, status models.ReviewStatus) ([]models.ProjectReview, error) {
	rows, err := d.db.QueryContext(ctx, `
		SELECT id, project_id, user_id, rating, comment, status, created_at
		FROM project_reviews
		WHERE project_id = $1 AND ($2 = '' OR status = $2)
		ORDER BY created_at DESC
	`, projectID, string(status))
	if err != nil {
		return nil, wrap("list reviews", err)
	}
	defer rows.Close()
	return scanReviews(rows)
}

// ListOwnerReviews lists reviews left on any of the owner's projects.
func (d *DatabaseClient) ListOwnerReviews(ctx context.Context, ownerID uuid.UUID) ([]models.ProjectReview, error) {
	rows, err := d.db.QueryContext(ctx, `
		SELECT r.id, r.project_id, r.user_id, r.rating, r.comment, r.status, r.created_at
		FROM project_reviews r
		JOIN projects p ON p.id = r.project_id
		WHERE p.user_id = $1
		ORDER BY r.created_at DESC
	`, ownerID)
	if err != nil {
		return nil, wrap("list owner reviews", err)
	}
	defer rows.Close()
	return scanReviews(rows)
}

type scannerRows interface {
	rowScanner
	Next() bool
	Err() error
}

func scanReviews(rows scannerRows) ([]models.ProjectReview, error) {
	reviews := []models.ProjectReview{}
	for rows.Next() {
		var r models.ProjectReview
		var status string
		if err := rows.Scan(&r.ID, &r.ProjectID, &r.UserID, &r.Rating, &r.Comment, &status, &r.CreatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan review: %w", err)
		}
		r.Status = models.ReviewStatus(status)
		reviews = append(reviews, r)
	}
	return reviews, wrap("list reviews", rows.Err())
}

func (d *DatabaseClient) UpdateReviewStatus(ctx context.Context, reviewID, ownerID uuid.UUID, status models.ReviewStatus) error {
	return d.execScoped(ctx, "update review status", `
		UPDATE project_reviews r SET status = $1
		FROM projects p
		WHERE r.id = $2 AND r.project_id = p.id AND p.user_id = $3
	`, string(status), reviewID, ownerID)
}

func (d *DatabaseClient) DeleteReview(ctx context.Context, reviewID, ownerID uuid.UUID) error {
	return d.execScoped(ctx, "delete review", `
		DELETE FROM project_reviews r USING projects p
		WHERE r.id = $1 AND r.project_id = p.id AND p.user_id = $2
	`, reviewID, ownerID)
}

// Suggestions

func (d *DatabaseClient) CreateSuggestion(ctx context.Context, s *models.ProjectSuggestion) error {
	if s.Status == "" {
		s.Status = models.SuggestionNew
	}
	err := d.db.QueryRowContext(ctx, `
		INSERT INTO project_suggestions (project_id, user_id, content, status)
		VALUES ($1, $2, $3, $4)
		RETURNING id, created_at
	`, s.ProjectID, s.UserID, s.Content, string(s.Status)).Scan(&s.ID, &s.CreatedAt)
	return wrap("create suggestion", err)
}

func (d *DatabaseClient) ListOwnerSuggestions(ctx context.Context, ownerID uuid.UUID) ([]models.ProjectSuggestion, error) {
	rows, err := d.db.QueryContext(ctx, `
		SELECT s.id, s.project_id, s.user_id, s.content, s.status, s.created_at
		FROM project_suggestions s
		JOIN projects p ON p.id = s.project_id
		WHERE p.user_id = $1
		ORDER BY s.created_at DESC
	`, ownerID)
	if err != nil {
		return nil, wrap("list suggestions", err)
	}
	defer rows.Close()

	suggestions := []models.ProjectSuggestion{}
	for rows.Next() {
		var s models.ProjectSuggestion
		var status string
		if err := rows.Scan(&s.ID, &s.ProjectID, &s.UserID, &s.Content, &status, &s.CreatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan suggestion: %w", err)
		}
		s.Status = models.SuggestionStatus(status)
		suggestions = append(suggestions, s)
	}
	return suggestions, wrap("list suggestions", rows.Err())
}

func (d *DatabaseClient) UpdateSuggestionStatus(ctx context.Context, suggestionID, ownerID uuid.UUID, status models.SuggestionStatus) error {
	return d.execScoped(ctx, "update suggestion status", `
		UPDATE project_suggestions s SET status = $1
		FROM projects p
		WHERE s.id = $2 AND s.project_id = p.id AND p.user_id = $3
	`, string(status), suggestionID, ownerID)
}

func (d *DatabaseClient) DeleteSuggestion(ctx context.Context, suggestionID, ownerID uuid.UUID) error {
	return d.execScoped(ctx, "delete suggestion", `
		DELETE FROM project_suggestions s USING projects p
		WHERE s.id = $1 AND s.project_id = p.id AND p.user_id = $2
	`, suggestionID, ownerID)
}

// Audits

func (d *DatabaseClient) CreateAudit(ctx context.Context, a *models.ProjectAudit) error {
	if a.Status == "" {
		a.Status = models.AuditStatusActive
	}
	a.Score = models.ClampScore(a.Score)
	err := d.db.QueryRowContext(ctx, `
		INSERT INTO project_audits (project_id, user_id, audit_type, score, findings, recommendations, status)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		RETURNING id, created_at
	`, a.ProjectID, a.UserID, a.AuditType, a.Score, a.Findings, a.Recommendations, string(a.Status),
	).Scan(&a.ID, &a.CreatedAt)
	return wrap("create audit", err)
}

const auditColumns = `id, project_id, user_id, audit_type, score, findings, recommendations, status, created_at`

// ListAudits lists audits for one project, optionally by status.
func (d *DatabaseClient) ListAudits(ctx context.Context, projectID uuid.UUID, status models.AuditStatus) ([]models.ProjectAudit, error) {
	rows, err := d.db.QueryContext(ctx, `
		SELECT `+auditColumns+`
		FROM project_audits
		WHERE project_id = $1 AND ($2 = '' OR status = $2)
		ORDER BY created_at DESC
	`, projectID, string(status))
	if err != nil {
		return nil, wrap("list audits", err)
	}
	defer rows.Close()
	return scanAudits(rows)
}

func (d *DatabaseClient) ListOwnerAudits(ctx context.Context, ownerID uuid.UUID) ([]models.ProjectAudit, error) {
	rows, err := d.db.QueryContext(ctx, `
		SELECT `+auditColumns+`
		FROM project_audits
		WHERE user_id = $1
		ORDER BY created_at DESC
	`, ownerID)
	if err != nil {
		return nil, wrap("list owner audits", err)
	}
	defer rows.Close()
	return scanAudits(rows)
}

func scanAudits(rows scannerRows) ([]models.ProjectAudit, error) {
	audits := []models.ProjectAudit{}
	for rows.Next() {
		var a models.ProjectAudit
		var status string
		if err := rows.Scan(&a.ID, &a.ProjectID, &a.UserID, &a.AuditType, &a.Score,
			&a.Findings, &a.Recommendations, &status, &a.CreatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan audit: %w", err)
		}
		a.Status = models.AuditStatus(status)
		audits = append(audits, a)
	}
	return audits, wrap("list audits", rows.Err())
}

func (d *DatabaseClient) DeleteAudit(ctx context.Context, auditID, ownerID uuid.UUID) error {
	return d.execScoped(ctx, "delete audit", `
		DELETE FROM project_audits WHERE id = $1 AND user_id = $2
	`, auditID, ownerID)
}

// Messages

const messageColumns = `m.id, m.project_id, m.user_id, m.content, m.sender_name, m.sender_role, m.created_at`

func (d *DatabaseClient) CreateMessage(ctx context.Context, m *models.ProjectMessage) error {
	if m.SenderRole == "" {
		m.SenderRole = models.SenderUser
	}
	err := d.db.QueryRowContext(ctx, `
		INSERT INTO project_messages (project_id, user_id, content, sender_name, sender_role)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING id, created_at
	`, m.ProjectID, m.UserID, m.Content, m.SenderName, string(m.SenderRole)).Scan(&m.ID, &m.CreatedAt)
	return wrap("create message", err)
}

// ListMessages returns a project's conversation oldest first.
func (d *DatabaseClient) ListMessages(ctx context.Context, projectID uuid.UUID) ([]models.ProjectMessage, error) {
	rows, err := d.db.QueryContext(ctx, `
		SELECT `+messageColumns+`
		FROM project_messages m
		WHERE m.project_id = $1
		ORDER BY m.created_at ASC
	`, projectID)
	if err != nil {
		return nil, wrap("list messages", err)
	}
	defer rows.Close()
	return scanMessages(rows)
}

// ListOwnerMessages returns messages across the owner's projects, oldest first.
func (d *DatabaseClient) ListOwnerMessages(ctx context.Context, ownerID uuid.UUID) ([]models.ProjectMessage, error) {
	rows, err := d.db.QueryContext(ctx, `
		SELECT `+messageColumns+`
		FROM project_messages m
		JOIN projects p ON p.id = m.project_id
		WHERE p.user_id = $1
		ORDER BY m.created_at ASC
	`, ownerID)
	if err != nil {
		return nil, wrap("list owner messages", err)
	}
	defer rows.Close()
	return scanMessages(rows)
}

func scanMessages(rows scannerRows) ([]models.ProjectMessage, error) {
	messages := []models.ProjectMessage{}
	for rows.Next() {
		var m models.ProjectMessage
		var role string
		if err := rows.Scan(&m.ID, &m.ProjectID, &m.UserID, &m.Content, &m.SenderName, &role, &m.CreatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan message: %w", err)
		}
		m.SenderRole = models.SenderRole(role)
		messages = append(messages, m)
	}
	return messages, wrap("list messages", rows.Err())
}

// ClearMessages deletes a project's conversation and returns how many rows went.
func (d *DatabaseClient) ClearMessages(ctx context.Context, projectID, ownerID uuid.UUID) (int64, error) {
	res, err := d.db.ExecContext(ctx, `
		DELETE FROM project_messages m USING projects p
		WHERE m.project_id = $1 AND m.project_id = p.id AND p.user_id = $2
	`, projectID, ownerID)
	if err != nil {
		return 0, wrap("clear messages", err)
	}
	n, err := res.RowsAffected()
	return n, wrap("clear messages", err)
}
