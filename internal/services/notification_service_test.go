package services

import (
	"context"
	"errors"
	"net/textproto"
	"testing"

	"depositshield_backend/internal/email"
	"depositshield_backend/internal/models"
	"depositshield_backend/internal/services/dto"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestResolveRecipient_Precedence(t *testing.T) {
	svc := NewNotificationService(&fakeProvider{}, email.NewTemplateManager(), dto.Recipient{Email: "noreply@depositshield.app", Name: "DepositShield"})

	tenantEmail, tenantName := "tenant@example.com", "Tess"
	report := &models.Report{TenantEmail: &tenantEmail, TenantName: &tenantName}
	creator := &models.User{Email: "creator@example.com", Name: "Cora"}

	cases := []struct {
		name     string
		explicit dto.Recipient
		report   *models.Report
		creator  *models.User
		want     dto.Recipient
	}{
		{"explicit wins", dto.Recipient{Email: "x@example.com", Name: "X"}, report, creator, dto.Recipient{Email: "x@example.com", Name: "X"}},
		{"explicit without name uses email", dto.Recipient{Email: "x@example.com"}, report, creator, dto.Recipient{Email: "x@example.com", Name: "x@example.com"}},
		{"tenant contact", dto.Recipient{}, report, creator, dto.Recipient{Email: tenantEmail, Name: tenantName}},
		{"creator", dto.Recipient{}, &models.Report{}, creator, dto.Recipient{Email: "creator@example.com", Name: "Cora"}},
		{"default sender", dto.Recipient{Name: "ignored"}, &models.Report{}, nil, dto.Recipient{Email: "noreply@depositshield.app", Name: "DepositShield"}},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, svc.ResolveRecipient(tc.explicit, tc.report, tc.creator))
		})
	}
}

func TestSendApproval_Success(t *testing.T) {
	provider := &fakeProvider{}
	svc := NewNotificationService(provider, email.NewTemplateManager(), dto.Recipient{})

	result := svc.SendApproval(context.Background(), dto.Recipient{Email: "a@example.com", Name: "A"},
		dto.ReportDetails{Title: "Move-in", Address: "1 Main St", ViewURL: "http://app/reports/shared/abc"}, "Looks good")

	assert.True(t, result.Success)
	assert.Equal(t, dto.EmailStatusSent, result.Status())
	assert.NotEmpty(t, result.MessageID)
	require.Equal(t, 1, provider.count())
	msg := provider.sent[0]
	assert.Equal(t, "Report approved: Move-in", msg.Subject)
	assert.Contains(t, msg.HTMLBody, "Looks good")
	assert.Contains(t, msg.HTMLBody, "http://app/reports/shared/abc")
}

func TestSend_TransportFailureIsReported(t *testing.T) {
	provider := &fakeProvider{err: &textproto.Error{Code: 550, Msg: "mailbox unavailable"}}
	svc := NewNotificationService(provider, email.NewTemplateManager(), dto.Recipient{})

	result := svc.SendRejection(context.Background(), dto.Recipient{Email: "a@example.com"}, dto.ReportDetails{Type: "move-in"}, "Dirty oven")

	assert.False(t, result.Success)
	assert.Equal(t, dto.EmailStatusFailed, result.Status())
	assert.Equal(t, "550", result.Code)
	assert.Equal(t, "mailbox unavailable", result.Response)
}

func TestSend_GenericFailureAndMissingRecipient(t *testing.T) {
	provider := &fakeProvider{err: errors.New("connection refused")}
	svc := NewNotificationService(provider, email.NewTemplateManager(), dto.Recipient{})

	result := svc.SendCustom(context.Background(), dto.Recipient{Email: "a@example.com"}, dto.ReportDetails{}, "", "Hello")
	assert.False(t, result.Success)
	assert.Equal(t, "NOTIFICATION_FAILED", result.Code)
	assert.Contains(t, result.Error, "connection refused")

	result = svc.SendCustom(context.Background(), dto.Recipient{}, dto.ReportDetails{}, "", "Hello")
	assert.False(t, result.Success)
	assert.Equal(t, "NO_RECIPIENT", result.Code)
}
