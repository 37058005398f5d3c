package supabase

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"visual-library-backend/internal/models"
)

// Milestones

func (d *DatabaseClient) CountMilestones(ctx context.Context, projectID uuid.UUID) (int, error) {
	var count int
	err := d.db.QueryRowContext(ctx, `
		SELECT COUNT(*) FROM project_milestones WHERE project_id = $1
	`, projectID).Scan(&count)
	return count, wrap("count milestones", err)
}

func (d *DatabaseClient) CreateMilestone(ctx context.Context, m *models.ProjectMilestone) error {
	err := d.db.QueryRowContext(ctx, `
		INSERT INTO project_milestones (project_id, title, description, image_url, milestone_order)
		VALUES ($1, $2, $3, NULLIF($4, ''), $5)
		RETURNING id, created_at
	`, m.ProjectID, m.Title, m.Description, m.ImageURL, m.Order).Scan(&m.ID, &m.CreatedAt)
	return wrap("create milestone", err)
}

// ListMilestones returns a project's timeline in milestone order.
func (d *DatabaseClient) ListMilestones(ctx context.Context, projectID uuid.UUID) ([]models.ProjectMilestone, error) {
	rows, err := d.db.QueryContext(ctx, `
		SELECT id, project_id, title, description, COALESCE(image_url, ''), milestone_order, created_at
		FROM project_milestones
		WHERE project_id = $1
		ORDER BY milestone_order ASC
	`, projectID)
	if err != nil {
		return nil, wrap("list milestones", err)
	}
	defer rows.Close()
	return scanMilestones(rows)
}

func (d *DatabaseClient) ListOwnerMilestones(ctx context.Context, ownerID uuid.UUID) ([]models.ProjectMilestone, error) {
	rows, err := d.db.QueryContext(ctx, `
		SELECT m.id, m.project_id, m.title, m.description, COALESCE(m.image_url, ''), m.milestone_order, m.created_at
		FROM project_milestones m
		JOIN projects p ON p.id = m.project_id
		WHERE p.user_id = $1
		ORDER BY m.project_id, m.milestone_order ASC
	`, ownerID)
	if err != nil {
		return nil, wrap("list owner milestones", err)
	}
	defer rows.Close()
	return scanMilestones(rows)
}

func scanMilestones(rows scannerRows) ([]models.ProjectMilestone, error) {
	milestones := []models.ProjectMilestone{}
	for rows.Next() {
		var m models.ProjectMilestone
		if err := rows.Scan(&m.ID, &m.ProjectID, &m.Title, &m.Description, &m.ImageURL, &m.Order, &m.CreatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan milestone: %w", err)
		}
		milestones = append(milestones, m)
	}
	return milestones, wrap("list milestones", rows.Err())
}

func (d *DatabaseClient) DeleteMilestone(ctx context.Context, milestoneID, ownerID uuid.UUID) error {
	return d.execScoped(ctx, "delete milestone", `
		DELETE FROM project_milestones m USING projects p
		WHERE m.id = $1 AND m.project_id = p.id AND p.user_id = $2
	`, milestoneID, ownerID)
}

// Visuals

func (d *DatabaseClient) CreateVisual(ctx context.Context, v *models.ProjectVisual) error {
	err := d.db.QueryRowContext(ctx, `
		INSERT INTO project_visuals (project_id, user_id, visual_type, image_url, prompt)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING id, created_at
	`, v.ProjectID, v.UserID, string(v.VisualType), v.ImageURL, v.Prompt).Scan(&v.ID, &v.CreatedAt)
	return wrap("create visual", err)
}

func (d *DatabaseClient) ListVisuals(ctx context.Context, projectID uuid.UUID) ([]models.ProjectVisual, error) {
	rows, err := d.db.QueryContext(ctx, `
		SELECT id, project_id, user_id, visual_type, image_url, prompt, created_at
		FROM project_visuals
		WHERE project_id = $1
		ORDER BY created_at DESC
	`, projectID)
	if err != nil {
		return nil, wrap("list visuals", err)
	}
	defer rows.Close()

	visuals := []models.ProjectVisual{}
	for rows.Next() {
		var v models.ProjectVisual
		var visualType string
		if err := rows.Scan(&v.ID, &v.ProjectID, &v.UserID, &visualType, &v.ImageURL, &v.Prompt, &v.CreatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan visual: %w", err)
		}
		v.VisualType = models.VisualType(visualType)
		visuals = append(visuals, v)
	}
	return visuals, wrap("list visuals", rows.Err())
}

// Testimonials

func (d *DatabaseClient) CreateTestimonial(ctx context.Context, t *models.Testimonial) error {
	err := d.db.QueryRowContext(ctx, `
		INSERT INTO testimonials (user_id, name, role, company, content, avatar_url)
		VALUES ($1, $2, $3, $4, $5, NULLIF($6, ''))
		RETURNING id, created_at
	`, t.UserID, t.Name, t.Role, t.Company, t.Content, t.AvatarURL).Scan(&t.ID, &t.CreatedAt)
	return wrap("create testimonial", err)
}

// ListTestimonials lists testimonials newest first. A nil owner lists all.
func (d *DatabaseClient) ListTestimonials(ctx context.Context, ownerID uuid.UUID) ([]models.Testimonial, error) {
	query := `SELECT id, user_id, name, role, company, content, COALESCE(avatar_url, ''), created_at FROM testimonials`
	var args []interface{}
	if ownerID != uuid.Nil {
		query += ` WHERE user_id = $1`
		args = append(args, ownerID)
	}
	query += ` ORDER BY created_at DESC`

	rows, err := d.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, wrap("list testimonials", err)
	}
	defer rows.Close()

	testimonials := []models.Testimonial{}
	for rows.Next() {
		var t models.Testimonial
		if err := rows.Scan(&t.ID, &t.UserID, &t.Name, &t.Role, &t.Company, &t.Content, &t.AvatarURL, &t.CreatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan testimonial: %w", err)
		}
		testimonials = append(testimonials, t)
	}
	return testimonials, wrap("list testimonials", rows.Err())
}

func (d *DatabaseClient) DeleteTestimonial(ctx context.Context, testimonialID, ownerID uuid.UUID) error {
	return d.execScoped(ctx, "delete testimonial", `
		DELETE FROM testimonials WHERE id = $1 AND user_id = $2
	`, testimonialID, ownerID)
}

// Inquiries

func (d *DatabaseClient) CreateInquiry(ctx context.Context, i *models.Inquiry) error {
	err := d.db.QueryRowContext(ctx, `
		INSERT INTO inquiries (user_id, name, email, subject, message)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING id, created_at
	`, nullUUID(i.UserID), i.Name, i.Email, i.Subject, i.Message).Scan(&i.ID, &i.CreatedAt)
	return wrap("create inquiry", err)
}

// ListInquiries returns inquiries addressed to the owner. Site-wide ones
// (no user_id) are included only when siteWide is set.
func (d *DatabaseClient) ListInquiries(ctx context.Context, ownerID uuid.UUID, siteWide bool) ([]models.Inquiry, error) {
	rows, err := d.db.QueryContext(ctx, `
		SELECT id, user_id, name, email, subject, message, created_at
		FROM inquiries
		WHERE user_id = $1 OR ($2 AND user_id IS NULL)
		ORDER BY created_at DESC
	`, ownerID, siteWide)
	if err != nil {
		return nil, wrap("list inquiries", err)
	}
	defer rows.Close()

	inquiries := []models.Inquiry{}
	for rows.Next() {
		var i models.Inquiry
		var userID uuid.NullUUID
		if err := rows.Scan(&i.ID, &userID, &i.Name, &i.Email, &i.Subject, &i.Message, &i.CreatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan inquiry: %w", err)
		}
		i.UserID = scanNullUUID(userID)
		inquiries = append(inquiries, i)
	}
	return inquiries, wrap("list inquiries", rows.Err())
}

func (d *DatabaseClient) DeleteInquiry(ctx context.Context, inquiryID, ownerID uuid.UUID, siteWide bool) error {
	return d.execScoped(ctx, "delete inquiry", `
		DELETE FROM inquiries WHERE id = $1 AND (user_id = $2 OR ($3 AND user_id IS NULL))
	`, inquiryID, ownerID, siteWide)
}

// Newsletter

// CreateSubscription fails with errs.ErrConflict when the email already exists.
func (d *DatabaseClient) CreateSubscription(ctx context.Context, s *models.NewsletterSubscription) error {
	err := d.db.QueryRowContext(ctx, `
		INSERT INTO newsletter_subscriptions (email)
		VALUES ($1)
		RETURNING id, created_at
	`, s.Email).Scan(&s.ID, &s.CreatedAt)
	return wrap("create subscription", err)
}

func (d *DatabaseClient) ListSubscriptions(ctx context.Context) ([]models.NewsletterSubscription, error) {
	rows, err := d.db.QueryContext(ctx, `
		SELECT id, email, created_at FROM newsletter_subscriptions ORDER BY created_at DESC
	`)
	if err != nil {
		return nil, wrap("list subscriptions", err)
	}
	defer rows.Close()

	subs := []models.NewsletterSubscription{}
	for rows.Next() {
		var s models.NewsletterSubscription
		if err := rows.Scan(&s.ID, &s.Email, &s.CreatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan subscription: %w", err)
		}
		subs = append(subs, s)
	}
	return subs, wrap("list subscriptions", rows.Err())
}

func (d *DatabaseClient) DeleteSubscription(ctx context.Context, subscriptionID uuid.UUID) error {
	return d.execScoped(ctx, "delete subscription", `
		DELETE FROM newsletter_subscriptions WHERE id = $1
	`, subscriptionID)
}

// Engagement

func (d *DatabaseClient) CreateView(ctx context.Context, v *models.ProjectView) error {
	err := d.db.QueryRowContext(ctx, `
		INSERT INTO project_views (project_id, user_id, view_duration)
		VALUES ($1, $2, $3)
		RETURNING id, created_at
	`, v.ProjectID, nullUUID(v.UserID), v.ViewDuration).Scan(&v.ID, &v.CreatedAt)
	return wrap("create view", err)
}

func (d *DatabaseClient) UpdateViewDuration(ctx context.Context, viewID uuid.UUID, seconds int) error {
	return d.execScoped(ctx, "update view duration", `
		UPDATE project_views SET view_duration = $1 WHERE id = $2
	`, seconds, viewID)
}

func (d *DatabaseClient) CreateClick(ctx context.Context, c *models.ProjectClick) error {
	err := d.db.QueryRowContext(ctx, `
		INSERT INTO project_clicks (project_id, user_id, click_type)
		VALUES ($1, $2, $3)
		RETURNING id, created_at
	`, c.ProjectID, nullUUID(c.UserID), string(c.ClickType)).Scan(&c.ID, &c.CreatedAt)
	return wrap("create click", err)
}

// ListOwnerViews returns views recorded on the owner's projects.
func (d *DatabaseClient) ListOwnerViews(ctx context.Context, ownerID uuid.UUID) ([]models.ProjectView, error) {
	rows, err := d.db.QueryContext(ctx, `
		SELECT v.id, v.project_id, v.user_id, v.view_duration, v.created_at
		FROM project_views v
		JOIN projects p ON p.id = v.project_id
		WHERE p.user_id = $1
	`, ownerID)
	if err != nil {
		return nil, wrap("list views", err)
	}
	defer rows.Close()

	views := []models.ProjectView{}
	for rows.Next() {
		var v models.ProjectView
		var userID uuid.NullUUID
		if err := rows.Scan(&v.ID, &v.ProjectID, &userID, &v.ViewDuration, &v.CreatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan view: %w", err)
		}
		v.UserID = scanNullUUID(userID)
		views = append(views, v)
	}
	return views, wrap("list views", rows.Err())
}

func (d *DatabaseClient) ListOwnerClicks(ctx context.Context, ownerID uuid.UUID) ([]models.ProjectClick, error) {
	rows, err := d.db.QueryContext(ctx, `
		SELECT c.id, c.project_id, c.user_id, c.click_type, c.created_at
		FROM project_clicks c
		JOIN projects p ON p.id = c.project_id
		WHERE p.user_id = $1
	`, ownerID)
	if err != nil {
		return nil, wrap("list clicks", err)
	}
	defer rows.Close()

	clicks := []models.ProjectClick{}
	for rows.Next() {
		var c models.ProjectClick
		var userID uuid.NullUUID
		var clickType string
		if err := rows.Scan(&c.ID, &c.ProjectID, &userID, &clickType, &c.CreatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan click: %w", err)
		}
		c.UserID = scanNullUUID(userID)
		c.ClickType = models.ClickType(clickType)
		clicks = append(clicks, c)
	}
	return clicks, wrap("list clicks", rows.Err())
}
