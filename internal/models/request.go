package models

type UpdateProjectRequest struct {
	Title       *string `json:"title,omitempty"`
	Description *string `json:"description,omitempty"`
	Category    *string `json:"category,omitempty"`
	ImageURL    *string `json:"image_url,omitempty"`
	MediaType   *string `json:"media_type,omitempty" example:"image"`
	VideoURL    *string `json:"video_url,omitempty"`
	GithubURL   *string `json:"github_url,omitempty"`
	DemoURL     *string `json:"demo_url,omitempty"`
	Tags        *string `json:"tags,omitempty" example:"react, design, ui"`
	ArchiveURL  *string `json:"archive_url,omitempty"`
	Visibility  *string `json:"visibility,omitempty" example:"public"`
}

type VisibilityRequest struct {
	Visibility string `json:"visibility" binding:"required" example:"private"`
}

type GenerateRequest struct {
	GithubURL string `json:"github_url,omitempty" form:"github_url" example:"https://github.com/acme/app"`
	DemoURL   string `json:"demo_url,omitempty" form:"demo_url" example:"https://example.com/app"`
}

type SyncRequest struct {
	Connector string `json:"connector" example:"behance"`
	Value     string `json:"value" example:"https://www.behance.net/someone"`
}

type CreateReviewRequest struct {
	Rating  int    `json:"rating" binding:"required,min=1,max=5" example:"5"`
	Comment string `json:"comment"`
}

type CreateSuggestionRequest struct {
	Content string `json:"content" binding:"required"`
}

type StatusRequest struct {
	Status string `json:"status" binding:"required" example:"approved"`
}

type CreateAuditRequest struct {
	AuditType       string `json:"audit_type,omitempty" example:"Security"`
	Score           *int   `json:"score,omitempty" example:"100"`
	Findings        string `json:"findings"`
	Recommendations string `json:"recommendations"`
}

type CreateMessageRequest struct {
	Content    string `json:"content" binding:"required"`
	SenderName string `json:"sender_name,omitempty"`
}

type CreateVisualRequest struct {
	VisualType string `json:"visual_type" binding:"required" example:"architecture"`
	Prompt     string `json:"prompt,omitempty"`
}

type CreateTestimonialRequest struct {
	Name      string `json:"name" binding:"required"`
	Role      string `json:"role"`
	Company   string `json:"company"`
	Content   string `json:"content" binding:"required"`
	AvatarURL string `json:"avatar_url,omitempty"`
}

type CreateInquiryRequest struct {
	// OwnerID addresses the inquiry to a portfolio owner; empty means site-wide.
	OwnerID string `json:"owner_id,omitempty"`
	Name    string `json:"name" binding:"required"`
	Email   string `json:"email" binding:"required,email"`
	Subject string `json:"subject"`
	Message string `json:"message" binding:"required"`
}

type SubscribeRequest struct {
	Email string `json:"email" binding:"required,email"`
}

type ApproveRequest struct {
	Feedback string `json:"feedback,omitempty"`
}

type UpdateViewRequest struct {
	DurationSeconds int `json:"duration_seconds" example:"42"`
}

type TrackClickRequest struct {
	ClickType string `json:"click_type" binding:"required" example:"demo"`
}

type UpdateProfileRequest struct {
	DisplayName *string `json:"display_name,omitempty"`
	Username    *string `json:"username,omitempty"`
	FigmaToken  *string `json:"figma_token,omitempty"`
}

type AssistantRequest struct {
	Question string `json:"question" binding:"required"`
}
