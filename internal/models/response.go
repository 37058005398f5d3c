package models

import "github.com/google/uuid"

type ErrorResponse struct {
	Error   string `json:"error"`
	Message string `json:"message,omitempty"`
}

type HealthResponse struct {
	Status string `json:"status"`
}

type MessageResponse struct {
	Message string `json:"message"`
}

type GalleryResponse struct {
	Projects   []Project `json:"projects"`
	Total      int       `json:"total"`
	Categories []string  `json:"categories"`
	// Sample is set when the curated sample set stands in for an empty library.
	Sample bool `json:"sample"`
}

type TrackResponse struct {
	ID     string `json:"id,omitempty"`
	Status string `json:"status"`
}

type ProjectListResponse struct {
	Projects []Project `json:"projects"`
}

type ReviewListResponse struct {
	Reviews []ProjectReview `json:"reviews"`
}

type SuggestionListResponse struct {
	Suggestions []ProjectSuggestion `json:"suggestions"`
}

type AuditListResponse struct {
	Audits []ProjectAudit `json:"audits"`
}

type MilestoneListResponse struct {
	Milestones []ProjectMilestone `json:"milestones"`
}

type VisualListResponse struct {
	Visuals []ProjectVisual `json:"visuals"`
}

type MessageListResponse struct {
	Messages []ProjectMessage `json:"messages"`
}

type TestimonialListResponse struct {
	Testimonials []Testimonial `json:"testimonials"`
}

type InquiryListResponse struct {
	Inquiries []Inquiry `json:"inquiries"`
}

type SubscriptionListResponse struct {
	Subscriptions []NewsletterSubscription `json:"subscriptions"`
}

type ChatSummary struct {
	ProjectID    uuid.UUID      `json:"project_id"`
	ProjectTitle string         `json:"project_title"`
	MessageCount int            `json:"message_count"`
	LastMessage  ProjectMessage `json:"last_message"`
}

type ChatSummaryListResponse struct {
	Chats []ChatSummary `json:"chats"`
}

type ClearResponse struct {
	Deleted int64 `json:"deleted"`
}

type ThemeResponse struct {
	Theme      Theme  `json:"theme"`
	SourceURL  string `json:"source_url"`
	SourceName string `json:"source_name"`
}

type AssistantResponse struct {
	Answer string `json:"answer"`
}
