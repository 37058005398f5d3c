package services

import (
	"context"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"visual-library-backend/internal/models"
)

const (
	approvalName  = "Client Approval"
	approvalEmail = "client@system.auto"
	noFeedback    = "No additional comments."
)

type ProofingStore interface {
	GetProject(ctx context.Context, projectID uuid.UUID) (*models.Project, error)
	CreateInquiry(ctx context.Context, i *models.Inquiry) error
}

// ProofingService backs the client review portal. Holding the project link is
// enough to view and approve, regardless of visibility.
type ProofingService struct {
	store      ProofingStore
	mailer     Mailer
	ownerEmail string
	logger     zerolog.Logger
}

func NewProofingService(store ProofingStore, mailer Mailer, ownerEmail string) *ProofingService {
	return &ProofingService{
		store:      store,
		mailer:     mailer,
		ownerEmail: ownerEmail,
		logger:     log.With().Str("service", "proofing").Logger(),
	}
}

func (s *ProofingService) Get(ctx context.Context, projectID uuid.UUID) (*models.Project, error) {
	return s.store.GetProject(ctx, projectID)
}

// Approve records the client's sign-off as an inquiry addressed to the owner
// and notifies the owner by email when mail is configured.
func (s *ProofingService) Approve(ctx context.Context, projectID uuid.UUID, feedback string) (*models.Inquiry, error) {
	project, err := s.store.GetProject(ctx, projectID)
	if err != nil {
		return nil, err
	}

	feedback = strings.TrimSpace(feedback)
	if feedback == "" {
		feedback = noFeedback
	}
	owner := project.UserID
	inquiry := &models.Inquiry{
		UserID:  &owner,
		Name:    approvalName,
		Email:   approvalEmail,
		Subject: "APPROVAL: " + project.Title,
		Message: fmt.Sprintf("Project approved. Feedback: %s", feedback),
	}
	if err := s.store.CreateInquiry(ctx, inquiry); err != nil {
		return nil, err
	}

	if s.mailer.Enabled() && s.ownerEmail != "" {
		if err := s.mailer.SendApprovalNotice(ctx, s.ownerEmail, project.Title, feedback); err != nil {
			s.logger.Warn().Err(err).Str("project_id", projectID.String()).Msg("failed to send approval notice")
		}
	}

	s.logger.Info().Str("project_id", projectID.String()).Msg("project approved by client")
	return inquiry, nil
}
