package services

import (
	"context"
	"errors"
	"net/textproto"
	"strconv"
	"strings"

	"depositshield_backend/internal/email"
	"depositshield_backend/internal/logger"
	"depositshield_backend/internal/models"
	"depositshield_backend/internal/services/dto"
	"depositshield_backend/pkg/apperrors"
)

// NotificationService sends report emails. Send methods never return an
// error: failures are reported in the result and the caller decides.
type NotificationService interface {
	ResolveRecipient(explicit dto.Recipient, report *models.Report, creator *models.User) dto.Recipient
	SendApproval(ctx context.Context, to dto.Recipient, details dto.ReportDetails, message string) dto.NotificationResult
	SendRejection(ctx context.Context, to dto.Recipient, details dto.ReportDetails, reason string) dto.NotificationResult
	SendCustom(ctx context.Context, to dto.Recipient, details dto.ReportDetails, subject, message string) dto.NotificationResult
	SendVerification(ctx context.Context, to dto.Recipient, code string) dto.NotificationResult
}

type NotificationServiceImpl struct {
	provider      email.Provider
	renderer      email.TemplateRenderer
	defaultSender dto.Recipient
}

func NewNotificationService(provider email.Provider, renderer email.TemplateRenderer, defaultSender dto.Recipient) NotificationService {
	return &NotificationServiceImpl{provider: provider, renderer: renderer, defaultSender: defaultSender}
}

// ResolveRecipient picks the first source with an email address: the
// request, the report's tenant contact, the report creator, the default sender.
func (s *NotificationServiceImpl) ResolveRecipient(explicit dto.Recipient, report *models.Report, creator *models.User) dto.Recipient {
	candidates := []dto.Recipient{explicit}
	if report != nil && report.TenantEmail != nil {
		name := ""
		if report.TenantName != nil {
			name = *report.TenantName
		}
		candidates = append(candidates, dto.Recipient{Email: *report.TenantEmail, Name: name})
	}
	if creator != nil {
		candidates = append(candidates, dto.Recipient{Email: creator.Email, Name: creator.Name})
	}
	candidates = append(candidates, s.defaultSender)

	for _, c := range candidates {
		addr := strings.TrimSpace(c.Email)
		if addr == "" {
			continue
		}
		name := strings.TrimSpace(c.Name)
		if name == "" {
			name = addr
		}
		return dto.Recipient{Email: addr, Name: name}
	}
	return dto.Recipient{}
}

func (s *NotificationServiceImpl) SendApproval(ctx context.Context, to dto.Recipient, details dto.ReportDetails, message string) dto.NotificationResult {
	return s.send(ctx, to, "Report approved: "+reportTitle(details), email.TemplateApproval, reportData(to, details, message))
}

func (s *NotificationServiceImpl) SendRejection(ctx context.Context, to dto.Recipient, details dto.ReportDetails, reason string) dto.NotificationResult {
	return s.send(ctx, to, "Report rejected: "+reportTitle(details), email.TemplateRejection, reportData(to, details, reason))
}

func (s *NotificationServiceImpl) SendCustom(ctx context.Context, to dto.Recipient, details dto.ReportDetails, subject, message string) dto.NotificationResult {
	if strings.TrimSpace(subject) == "" {
		subject = "Update on report: " + reportTitle(details)
	}
	return s.send(ctx, to, subject, email.TemplateCustom, reportData(to, details, message))
}

func (s *NotificationServiceImpl) SendVerification(ctx context.Context, to dto.Recipient, code string) dto.NotificationResult {
	data := email.TemplateData{"RecipientName": to.Name, "Code": code}
	return s.send(ctx, to, "Verify your DepositShield account", email.TemplateVerification, data)
}

func (s *NotificationServiceImpl) send(ctx context.Context, to dto.Recipient, subject, template string, data email.TemplateData) dto.NotificationResult {
	log := logger.FromContext(ctx).With("template", template, "recipient", to.Email)

	if to.Email == "" {
		log.Warn("email skipped: no recipient")
		return dto.NotificationResult{Success: false, Error: "no recipient address", Code: "NO_RECIPIENT"}
	}

	html, err := s.renderer.Render(template, data)
	if err != nil {
		log.Error("email template failed", "error", err)
		return dto.NotificationResult{Success: false, Error: err.Error(), Code: "TEMPLATE_ERROR"}
	}

	msg := &email.Email{
		To:       []email.Address{{Email: to.Email, Name: to.Name}},
		Subject:  subject,
		HTMLBody: html,
	}

	messageID, err := s.provider.Send(ctx, msg)
	if err != nil {
		result := dto.NotificationResult{Success: false, Error: err.Error(), Code: string(apperrors.CodeNotificationFailed)}
		var smtpErr *textproto.Error
		if errors.As(err, &smtpErr) {
			result.Code = strconv.Itoa(smtpErr.Code)
			result.Response = smtpErr.Msg
		}
		log.Warn("email delivery failed", "error", err, "code", result.Code)
		return result
	}

	log.Info("email sent", "message_id", messageID)
	return dto.NotificationResult{Success: true, MessageID: messageID}
}

func reportTitle(d dto.ReportDetails) string {
	if d.Title != "" {
		return d.Title
	}
	return d.Type + " report"
}

func reportData(to dto.Recipient, d dto.ReportDetails, message string) email.TemplateData {
	return email.TemplateData{
		"RecipientName": to.Name,
		"Message":       message,
		"Title":         reportTitle(d),
		"Description":   d.Description,
		"Type":          d.Type,
		"Address":       d.Address,
		"CreatedAt":     d.CreatedAt.Format("2006-01-02"),
		"ViewURL":       d.ViewURL,
	}
}
