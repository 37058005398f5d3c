// Package services holds the multi-step operations behind the admin and
// visitor routes: admin collections, proofing, chat, assets, insights,
// profile settings and outbound messages.
package services

import (
	"context"

	"github.com/google/uuid"
)

type ObjectStore interface {
	Upload(ctx context.Context, objectPath string, data []byte, contentType string) (string, error)
}

type Publisher interface {
	PublishProjectEvent(ctx context.Context, projectID uuid.UUID, event string, payload map[string]interface{}) error
}

type Mailer interface {
	Enabled() bool
	SendInquiryConfirmation(ctx context.Context, name, email, subject, message string) error
	SendApprovalNotice(ctx context.Context, ownerEmail, title, feedback string) error
}

// Upload is a file attached to a request.
type Upload struct {
	Name        string
	ContentType string
	Data        []byte
}
