// Package notify sends transactional email through the Resend API.
package notify

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"html/template"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/rs/zerolog/log"
)

const defaultEndpoint = "https://api.resend.com/emails"

// ErrNotConfigured is returned when no API key or sender is set.
var ErrNotConfigured = errors.New("email delivery is not configured")

type emailRequest struct {
	From    string   `json:"from"`
	To      []string `json:"to"`
	Subject string   `json:"subject"`
	Html    string   `json:"html,omitempty"`
}

type emailResponse struct {
	ID string `json:"id"`
}

type errorResponse struct {
	Message string `json:"message"`
}

type Mailer struct {
	apiKey     string
	from       string
	endpoint   string
	httpClient *http.Client
}

func NewMailer(apiKey, from string) *Mailer {
	return &Mailer{
		apiKey:     apiKey,
		from:       from,
		endpoint:   defaultEndpoint,
		httpClient: &http.Client{Timeout: 15 * time.Second},
	}
}

// WithEndpoint points the mailer at another Resend-compatible endpoint.
func (m *Mailer) WithEndpoint(endpoint string) *Mailer {
	m.endpoint = endpoint
	return m
}

func (m *Mailer) Enabled() bool {
	return m != nil && m.apiKey != "" && m.from != ""
}

// Send delivers one HTML email and returns the provider's message id.
func (m *Mailer) Send(ctx context.Context, subject, html string, recipients []string) (string, error) {
	if !m.Enabled() {
		return "", ErrNotConfigured
	}
	if len(recipients) == 0 {
		return "", fmt.Errorf("at least one recipient is required")
	}

	payload, err := json.Marshal(emailRequest{From: m.from, To: recipients, Subject: subject, Html: html})
	if err != nil {
		return "", fmt.Errorf("failed to marshal email payload: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, m.endpoint, bytes.NewReader(payload))
	if err != nil {
		return "", fmt.Errorf("failed to create Resend API request: %w", err)
	}
	req.Header.Set("Authorization", "Bearer "+m.apiKey)
	req.Header.Set("Content-Type", "application/json")

	resp, err := m.httpClient.Do(req)
	if err != nil {
		return "", fmt.Errorf("failed to send request to Resend API: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", fmt.Errorf("failed to read Resend API response: %w", err)
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		var apiErr errorResponse
		if json.Unmarshal(body, &apiErr) == nil && apiErr.Message != "" {
			return "", fmt.Errorf("resend API error (status %d): %s", resp.StatusCode, apiErr.Message)
		}
		return "", fmt.Errorf("resend API error (status %d): %s", resp.StatusCode, strings.TrimSpace(string(body)))
	}

	var out emailResponse
	if err := json.Unmarshal(body, &out); err != nil {
		return "", fmt.Errorf("failed to decode Resend API response: %w", err)
	}
	log.Debug().Str("email_id", out.ID).Strs("to", recipients).Msg("email sent")
	return out.ID, nil
}

var confirmationTmpl = template.Must(template.New("confirmation").Parse(
	`<p>Hi {{.Name}},</p>
<p>Thanks for reaching out{{if .Subject}} about "{{.Subject}}"{{end}}. Your message has been received and you will hear back soon.</p>
<blockquote>{{.Message}}</blockquote>`))

var approvalTmpl = template.Must(template.New("approval").Parse(
	`<p>The project <strong>{{.Title}}</strong> was approved by the client.</p>
<p>Feedback: {{.Feedback}}</p>`))

// SendInquiryConfirmation acknowledges a contact inquiry to the visitor.
func (m *Mailer) SendInquiryConfirmation(ctx context.Context, name, email, subject, message string) error {
	var body bytes.Buffer
	if err := confirmationTmpl.Execute(&body, map[string]string{
		"Name": name, "Subject": subject, "Message": message,
	}); err != nil {
		return fmt.Errorf("failed to render confirmation: %w", err)
	}
	_, err := m.Send(ctx, "We received your message", body.String(), []string{email})
	return err
}

// SendApprovalNotice tells the owner a client approved a proofing link.
func (m *Mailer) SendApprovalNotice(ctx context.Context, ownerEmail, title, feedback string) error {
	var body bytes.Buffer
	if err := approvalTmpl.Execute(&body, map[string]string{"Title": title, "Feedback": feedback}); err != nil {
		return fmt.Errorf("failed to render approval notice: %w", err)
	}
	_, err := m.Send(ctx, "APPROVAL: "+title, body.String(), []string{ownerEmail})
	return err
}
