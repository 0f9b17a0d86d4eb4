package dto

import "time"

const (
	EmailStatusSent   = "sent"
	EmailStatusFailed = "failed"
)

type Recipient struct {
	Email string `json:"email"`
	Name  string `json:"name"`
}

// ReportDetails is the report summary rendered into notification emails.
type ReportDetails struct {
	ID          uint      `json:"id"`
	Title       string    `json:"title"`
	Description string    `json:"description"`
	Type        string    `json:"type"`
	CreatedAt   time.Time `json:"created_at"`
	Address     string    `json:"address"`
	ViewURL     string    `json:"viewUrl"`
}

type NotificationResult struct {
	Success   bool   `json:"success"`
	MessageID string `json:"messageId,omitempty"`
	Error     string `json:"error,omitempty"`
	Code      string `json:"code,omitempty"`
	Response  string `json:"response,omitempty"`
}

// Status maps the result onto the advisory emailStatus field.
func (r NotificationResult) Status() string {
	if r.Success {
		return EmailStatusSent
	}
	return EmailStatusFailed
}
