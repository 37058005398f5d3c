package services

import (
	"context"
	"strings"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"visual-library-backend/internal/models"
)

type EngagementStore interface {
	CreateInquiry(ctx context.Context, i *models.Inquiry) error
	CreateSubscription(ctx context.Context, s *models.NewsletterSubscription) error
}

// EngagementService takes contact inquiries and newsletter sign-ups.
type EngagementService struct {
	store  EngagementStore
	mailer Mailer
	logger zerolog.Logger
}

func NewEngagementService(store EngagementStore, mailer Mailer) *EngagementService {
	return &EngagementService{
		store:  store,
		mailer: mailer,
		logger: log.With().Str("service", "engagement").Logger(),
	}
}

// SubmitInquiry stores the inquiry, addressed to ownerID or site-wide when nil,
// then sends the visitor a confirmation. The email is best effort.
func (s *EngagementService) SubmitInquiry(ctx context.Context, ownerID *uuid.UUID, req models.CreateInquiryRequest) (*models.Inquiry, error) {
	inquiry := &models.Inquiry{
		UserID:  ownerID,
		Name:    strings.TrimSpace(req.Name),
		Email:   strings.TrimSpace(req.Email),
		Subject: strings.TrimSpace(req.Subject),
		Message: strings.TrimSpace(req.Message),
	}
	if err := s.store.CreateInquiry(ctx, inquiry); err != nil {
		return nil, err
	}

	if s.mailer.Enabled() {
		if err := s.mailer.SendInquiryConfirmation(ctx, inquiry.Name, inquiry.Email, inquiry.Subject, inquiry.Message); err != nil {
			s.logger.Warn().Err(err).Str("inquiry_id", inquiry.ID.String()).Msg("failed to send inquiry confirmation")
		}
	}
	return inquiry, nil
}

// Subscribe adds an email to the newsletter. A duplicate address is a conflict.
func (s *EngagementService) Subscribe(ctx context.Context, email string) (*models.NewsletterSubscription, error) {
	sub := &models.NewsletterSubscription{Email: strings.ToLower(strings.TrimSpace(email))}
	if err := s.store.CreateSubscription(ctx, sub); err != nil {
		return nil, err
	}
	return sub, nil
}
