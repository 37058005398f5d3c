package supabase

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"visual-library-backend/internal/models"
)

const projectColumns = `id, user_id, title, description, category, image_url,
	COALESCE(media_type, ''), COALESCE(video_url, ''), COALESCE(github_url, ''),
	COALESCE(demo_url, ''), COALESCE(tags, ''), COALESCE(archive_url, ''),
	visibility, created_at, updated_at`

func scanProject(row rowScanner, p *models.Project) error {
	var mediaType, visibility string
	if err := row.Scan(
		&p.ID, &p.UserID, &p.Title, &p.Description, &p.Category, &p.ImageURL,
		&mediaType, &p.VideoURL, &p.GithubURL,
		&p.DemoURL, &p.Tags, &p.ArchiveURL,
		&visibility, &p.CreatedAt, &p.UpdatedAt,
	); err != nil {
		return err
	}
	p.MediaType = models.MediaType(mediaType)
	p.Visibility = models.Visibility(visibility)
	return nil
}

// CreateProject inserts p and fills in the generated id and timestamps.
func (d *DatabaseClient) CreateProject(ctx context.Context, p *models.Project) error {
	if p.Visibility == "" {
		p.Visibility = models.VisibilityPublic
	}
	err := d.db.QueryRowContext(ctx, `
		INSERT INTO projects (user_id, title, description, category, image_url, media_type,
			video_url, github_url, demo_url, tags, archive_url, visibility)
		VALUES ($1, $2, $3, $4, $5, NULLIF($6, ''), NULLIF($7, ''), NULLIF($8, ''),
			NULLIF($9, ''), NULLIF($10, ''), NULLIF($11, ''), $12)
		RETURNING id, created_at, updated_at
	`, p.UserID, p.Title, p.Description, p.Category, p.ImageURL, string(p.MediaType),
		p.VideoURL, p.GithubURL, p.DemoURL, p.Tags, p.ArchiveURL, string(p.Visibility),
	).Scan(&p.ID, &p.CreatedAt, &p.UpdatedAt)
	return wrap("create project", err)
}

func (d *DatabaseClient) GetProject(ctx context.Context, projectID uuid.UUID) (*models.Project, error) {
	var p models.Project
	row := d.db.QueryRowContext(ctx, `SELECT `+projectColumns+` FROM projects WHERE id = $1`, projectID)
	if err := scanProject(row, &p); err != nil {
		return nil, wrap("get project", err)
	}
	return &p, nil
}

// ListProjects returns projects newest first. A nil owner lists every project.
func (d *DatabaseClient) ListProjects(ctx context.Context, ownerID uuid.UUID) ([]models.Project, error) {
	query := `SELECT ` + projectColumns + ` FROM projects`
	var args []interface{}
	if ownerID != uuid.Nil {
		query += ` WHERE user_id = $1`
		args = append(args, ownerID)
	}
	query += ` ORDER BY created_at DESC`

	rows, err := d.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, wrap("list projects", err)
	}
	defer rows.Close()

	projects := []models.Project{}
	for rows.Next() {
		var p models.Project
		if err := scanProject(rows, &p); err != nil {
			return nil, fmt.Errorf("failed to scan project: %w", err)
		}
		projects = append(projects, p)
	}
	return projects, wrap("list projects", rows.Err())
}

// UpdateProject writes every editable field of p, scoped to its owner.
func (d *DatabaseClient) UpdateProject(ctx context.Context, p *models.Project) error {
	err := d.db.QueryRowContext(ctx, `
		UPDATE projects
		SET title = $1, description = $2, category = $3, image_url = $4,
			media_type = NULLIF($5, ''), video_url = NULLIF($6, ''), github_url = NULLIF($7, ''),
			demo_url = NULLIF($8, ''), tags = NULLIF($9, ''), archive_url = NULLIF($10, ''),
			visibility = $11, updated_at = NOW()
		WHERE id = $12 AND user_id = $13
		RETURNING updated_at
	`, p.Title, p.Description, p.Category, p.ImageURL, string(p.MediaType),
		p.VideoURL, p.GithubURL, p.DemoURL, p.Tags, p.ArchiveURL,
		string(p.Visibility), p.ID, p.UserID,
	).Scan(&p.UpdatedAt)
	return wrap("update project", err)
}

func (d *DatabaseClient) SetProjectVisibility(ctx context.Context, projectID, ownerID uuid.UUID, visibility models.Visibility) error {
	return d.execScoped(ctx, "set project visibility", `
		UPDATE projects SET visibility = $1, updated_at = NOW()
		WHERE id = $2 AND user_id = $3
	`, string(visibility), projectID, ownerID)
}

func (d *DatabaseClient) DeleteProject(ctx context.Context, projectID, ownerID uuid.UUID) error {
	return d.execScoped(ctx, "delete project", `
		DELETE FROM projects WHERE id = $1 AND user_id = $2
	`, projectID, ownerID)
}
