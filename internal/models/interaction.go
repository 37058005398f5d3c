package models

import (
	"time"

	"github.com/google/uuid"
)

type ReviewStatus string

const (
	ReviewPending  ReviewStatus = "pending"
	ReviewApproved ReviewStatus = "approved"
	ReviewRejected ReviewStatus = "rejected"
)

func (s ReviewStatus) Valid() bool {
	switch s {
	case ReviewPending, ReviewApproved, ReviewRejected:
		return true
	}
	return false
}

type ProjectReview struct {
	ID        uuid.UUID    `json:"id"`
	ProjectID uuid.UUID    `json:"project_id"`
	UserID    uuid.UUID    `json:"user_id"`
	Rating    int          `json:"rating"`
	Comment   string       `json:"comment"`
	Status    ReviewStatus `json:"status"`
	CreatedAt time.Time    `json:"created_at"`
}

type SuggestionStatus string

const (
	SuggestionNew         SuggestionStatus = "new"
	SuggestionConsidered  SuggestionStatus = "considered"
	SuggestionImplemented SuggestionStatus = "implemented"
	SuggestionClosed      SuggestionStatus = "closed"
)

func (s SuggestionStatus) Valid() bool {
	switch s {
	case SuggestionNew, SuggestionConsidered, SuggestionImplemented, SuggestionClosed:
		return true
	}
	return false
}

type ProjectSuggestion struct {
	ID        uuid.UUID        `json:"id"`
	ProjectID uuid.UUID        `json:"project_id"`
	UserID    uuid.UUID        `json:"user_id"`
	Content   string           `json:"content"`
	Status    SuggestionStatus `json:"status"`
	CreatedAt time.Time        `json:"created_at"`
}

type SenderRole string

const (
	SenderAdmin SenderRole = "admin"
	SenderUser  SenderRole = "user"
)

type ProjectMessage struct {
	ID         uuid.UUID  `json:"id"`
	ProjectID  uuid.UUID  `json:"project_id"`
	UserID     uuid.UUID  `json:"user_id"`
	Content    string     `json:"content"`
	SenderName string     `json:"sender_name"`
	SenderRole SenderRole `json:"sender_role"`
	CreatedAt  time.Time  `json:"created_at"`
}

// ProjectView records one detail-view session; duration is filled in on close.
type ProjectView struct {
	ID           uuid.UUID  `json:"id"`
	ProjectID    uuid.UUID  `json:"project_id"`
	UserID       *uuid.UUID `json:"user_id,omitempty"`
	ViewDuration int        `json:"view_duration"`
	CreatedAt    time.Time  `json:"created_at"`
}

type ClickType string

const (
	ClickDemo    ClickType = "demo"
	ClickGithub  ClickType = "github"
	ClickVideo   ClickType = "video"
	ClickArchive ClickType = "archive"
)

func (c ClickType) Valid() bool {
	switch c {
	case ClickDemo, ClickGithub, ClickVideo, ClickArchive:
		return true
	}
	return false
}

type ProjectClick struct {
	ID        uuid.UUID  `json:"id"`
	ProjectID uuid.UUID  `json:"project_id"`
	UserID    *uuid.UUID `json:"user_id,omitempty"`
	ClickType ClickType  `json:"click_type"`
	CreatedAt time.Time  `json:"created_at"`
}
