package services

import (
	"context"
	"errors"
	"testing"

	"depositshield_backend/internal/models"
	"depositshield_backend/internal/services/dto"
	"depositshield_backend/pkg/apperrors"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCreateReport_OwnerOnlyAndUUID(t *testing.T) {
	f := newServiceFixture(t)
	reports := f.services.ReportService

	_, err := reports.CreateReport(f.db, f.stranger.ID, &dto.CreateReportRequest{PropertyID: f.property.ID, Type: "move-in"})
	requireAppError(t, err, apperrors.CodeForbidden)

	_, err = reports.CreateReport(f.db, f.owner.ID, &dto.CreateReportRequest{PropertyID: 9999, Type: "move-in"})
	requireAppError(t, err, apperrors.CodeNotFound)

	created, err := reports.CreateReport(f.db, f.owner.ID, &dto.CreateReportRequest{
		PropertyID: f.property.ID,
		Type:       "move-out",
		Title:      "Leaving",
		Rooms:      []dto.RoomInput{{ID: "kitchen", Name: "Kitchen"}},
	})
	require.NoError(t, err)
	_, err = uuid.Parse(created.UUID)
	assert.NoError(t, err)
	assert.Nil(t, created.ApprovalStatus)

	shared, err := f.services.ShareService.Resolve(f.db, created.UUID, 0, testBaseURL)
	require.NoError(t, err)
	assert.Equal(t, created.ID, shared.Report.ID)
	require.Len(t, shared.Rooms, 1)
	assert.Equal(t, "Kitchen", shared.Rooms[0].Name)

	supplied := uuid.NewString()
	withUUID, err := reports.CreateReport(f.db, f.owner.ID, &dto.CreateReportRequest{PropertyID: f.property.ID, Type: "general", UUID: supplied})
	require.NoError(t, err)
	assert.Equal(t, supplied, withUUID.UUID)

	_, err = reports.CreateReport(f.db, f.owner.ID, &dto.CreateReportRequest{PropertyID: f.property.ID, Type: "general", UUID: supplied})
	requireAppError(t, err, apperrors.CodeAlreadyExists)
}

func TestListReportsByProperty_Visibility(t *testing.T) {
	f := newServiceFixture(t)
	reports := f.services.ReportService

	ownerReport, err := reports.CreateReport(f.db, f.owner.ID, &dto.CreateReportRequest{PropertyID: f.property.ID, Type: "general"})
	require.NoError(t, err)

	all, err := reports.ListReportsByProperty(f.db, f.owner.ID, f.property.ID)
	require.NoError(t, err)
	assert.Len(t, all, 2)

	mine, err := reports.ListReportsByProperty(f.db, f.tenant.ID, f.property.ID)
	require.NoError(t, err)
	require.Len(t, mine, 1)
	assert.Equal(t, f.report.ID, mine[0].ID)
	assert.NotEqual(t, ownerReport.ID, mine[0].ID)

	_, err = reports.ListReportsByProperty(f.db, f.stranger.ID, f.property.ID)
	requireAppError(t, err, apperrors.CodeForbidden)
}

func TestGetReport_AccessAndViewCount(t *testing.T) {
	f := newServiceFixture(t)
	reports := f.services.ReportService

	_, err := reports.GetReport(f.db, f.stranger.ID, f.report.ID, testBaseURL)
	requireAppError(t, err, apperrors.CodeForbidden)

	_, err = f.services.ShareService.Resolve(f.db, f.report.UUID, 0, testBaseURL)
	require.NoError(t, err)
	_, err = f.services.ShareService.Resolve(f.db, f.report.UUID, f.stranger.ID, testBaseURL)
	require.NoError(t, err)

	for _, uid := range []uint{f.owner.ID, f.tenant.ID} {
		shared, err := reports.GetReport(f.db, uid, f.report.ID, testBaseURL)
		require.NoError(t, err)
		require.NotNil(t, shared.ViewCount)
		assert.Equal(t, int64(2), *shared.ViewCount)
	}

	_, err = reports.GetReport(f.db, f.owner.ID, 9999, testBaseURL)
	requireAppError(t, err, apperrors.CodeNotFound)
}

func TestShareResolve_InvalidUUIDIsNotFound(t *testing.T) {
	f := newServiceFixture(t)

	_, err := f.services.ShareService.Resolve(f.db, "not-a-uuid", 0, testBaseURL)
	requireAppError(t, err, apperrors.CodeNotFound)

	_, err = f.services.ShareService.Resolve(f.db, uuid.NewString(), 0, testBaseURL)
	requireAppError(t, err, apperrors.CodeNotFound)
}

func TestApproveReport_Authorization(t *testing.T) {
	f := newServiceFixture(t)
	reports := f.services.ReportService
	ctx := context.Background()

	_, err := reports.ApproveReport(ctx, f.db, f.stranger.ID, f.report.ID, &dto.ApproveReportRequest{})
	requireAppError(t, err, apperrors.CodeForbidden)

	_, err = reports.ApproveReport(ctx, f.db, 0, f.report.ID, &dto.ApproveReportRequest{UUID: uuid.NewString()})
	requireAppError(t, err, apperrors.CodeForbidden)

	resp, err := reports.ApproveReport(ctx, f.db, 0, f.report.ID, &dto.ApproveReportRequest{UUID: f.report.UUID, Message: "All good"})
	require.NoError(t, err)
	require.NotNil(t, resp.Report.ApprovalStatus)
	assert.Equal(t, models.ApprovalStatusApproved, *resp.Report.ApprovalStatus)
	require.NotNil(t, resp.Report.ApprovedMessage)
	assert.Equal(t, "All good", *resp.Report.ApprovedMessage)
	assert.NotNil(t, resp.Report.ApprovedAt)
	assert.Equal(t, dto.EmailStatusSent, resp.EmailStatus)

	require.Equal(t, 1, f.provider.count())
	assert.Equal(t, "tenant@example.com", f.provider.sent[0].To[0].Email)
	assert.Contains(t, f.provider.sent[0].HTMLBody, "/reports/shared/"+f.report.UUID)
}

func TestDecisions_AreOneWay(t *testing.T) {
	f := newServiceFixture(t)
	reports := f.services.ReportService
	ctx := context.Background()

	_, err := reports.RejectReport(ctx, f.db, f.tenant.ID, f.report.ID, &dto.RejectReportRequest{Reason: "Broken window missing"})
	require.NoError(t, err)

	_, err = reports.RejectReport(ctx, f.db, f.tenant.ID, f.report.ID, &dto.RejectReportRequest{Reason: "again"})
	appErr := requireAppError(t, err, apperrors.CodeInvalidStatus)
	assert.Equal(t, 409, appErr.HTTPCode)

	_, err = reports.ApproveReport(ctx, f.db, f.tenant.ID, f.report.ID, &dto.ApproveReportRequest{})
	requireAppError(t, err, apperrors.CodeInvalidStatus)
	assert.Equal(t, 1, f.provider.count())
}

func TestRejectReport_ReasonRequiredUnlessQuick(t *testing.T) {
	f := newServiceFixture(t)
	reports := f.services.ReportService
	ctx := context.Background()

	_, err := reports.RejectReport(ctx, f.db, f.tenant.ID, f.report.ID, &dto.RejectReportRequest{Reason: "   "})
	requireAppError(t, err, apperrors.CodeValidationFailed)

	resp, err := reports.RejectReport(ctx, f.db, f.tenant.ID, f.report.ID, &dto.RejectReportRequest{Quick: true})
	require.NoError(t, err)
	require.NotNil(t, resp.Report.RejectionMessage)
	assert.Equal(t, DefaultRejectionMessage, *resp.Report.RejectionMessage)
	assert.NotNil(t, resp.Report.RejectedAt)
}

func TestApproveReport_EmailFailureKeepsDecision(t *testing.T) {
	f := newServiceFixture(t)
	f.provider.err = errors.New("smtp: dial tcp: connection refused")
	ctx := context.Background()

	resp, err := f.services.ReportService.ApproveReport(ctx, f.db, f.tenant.ID, f.report.ID, &dto.ApproveReportRequest{Email: "landlord@example.com"})
	require.NoError(t, err)
	assert.Equal(t, dto.EmailStatusFailed, resp.EmailStatus)
	require.NotNil(t, resp.EmailResult)
	assert.False(t, resp.EmailResult.Success)
	assert.Contains(t, resp.EmailResult.Error, "connection refused")

	stored, err := f.services.ShareService.Resolve(f.db, f.report.UUID, 0, testBaseURL)
	require.NoError(t, err)
	require.NotNil(t, stored.Report.ApprovalStatus)
	assert.Equal(t, models.ApprovalStatusApproved, *stored.Report.ApprovalStatus)
}

func TestUpdateReport_StatusRules(t *testing.T) {
	f := newServiceFixture(t)
	reports := f.services.ReportService
	ctx := context.Background()
	originalUUID := f.report.UUID
	title := "Updated"

	updated, err := reports.UpdateReport(f.db, f.tenant.ID, f.report.ID, &dto.UpdateReportRequest{Title: &title, GenerateNewUUID: true})
	require.NoError(t, err)
	assert.Equal(t, originalUUID, updated.UUID, "undecided reports keep their share link")
	assert.Equal(t, "Updated", updated.Title)

	_, err = reports.UpdateReport(f.db, f.stranger.ID, f.report.ID, &dto.UpdateReportRequest{Title: &title})
	requireAppError(t, err, apperrors.CodeForbidden)

	_, err = reports.RejectReport(ctx, f.db, f.tenant.ID, f.report.ID, &dto.RejectReportRequest{Reason: "Missing photos"})
	require.NoError(t, err)

	unchanged, err := reports.UpdateReport(f.db, f.tenant.ID, f.report.ID, &dto.UpdateReportRequest{GenerateNewUUID: true})
	require.NoError(t, err)
	assert.True(t, unchanged.IsRejected())
	assert.Equal(t, originalUUID, unchanged.UUID)

	sameTitle, err := reports.UpdateReport(f.db, f.tenant.ID, f.report.ID, &dto.UpdateReportRequest{Title: &title, GenerateNewUUID: true})
	require.NoError(t, err)
	assert.True(t, sameTitle.IsRejected(), "resending the stored title is not a correction")

	stored, err := reports.GetReport(f.db, f.tenant.ID, f.report.ID, testBaseURL)
	require.NoError(t, err)
	require.NotNil(t, stored.Report.RejectionMessage)
	assert.Equal(t, "Missing photos", *stored.Report.RejectionMessage)
	assert.Equal(t, originalUUID, stored.Report.UUID)

	reopened, err := reports.UpdateReport(f.db, f.tenant.ID, f.report.ID, &dto.UpdateReportRequest{
		Rooms:           []dto.RoomInput{{ID: "hall", Name: "Hall"}},
		GenerateNewUUID: true,
	})
	require.NoError(t, err)
	assert.Nil(t, reopened.ApprovalStatus)
	assert.Nil(t, reopened.RejectionMessage)
	assert.Nil(t, reopened.RejectedAt)
	assert.NotEqual(t, originalUUID, reopened.UUID)

	_, err = f.services.ShareService.Resolve(f.db, originalUUID, 0, testBaseURL)
	requireAppError(t, err, apperrors.CodeNotFound)
	shared, err := f.services.ShareService.Resolve(f.db, reopened.UUID, 0, testBaseURL)
	require.NoError(t, err)
	require.Len(t, shared.Rooms, 1)
	assert.Equal(t, "Hall", shared.Rooms[0].Name)

	_, err = reports.ApproveReport(ctx, f.db, f.tenant.ID, f.report.ID, &dto.ApproveReportRequest{})
	require.NoError(t, err)
	_, err = reports.UpdateReport(f.db, f.tenant.ID, f.report.ID, &dto.UpdateReportRequest{Title: &title})
	requireAppError(t, err, apperrors.CodeInvalidStatus)
}

func TestArchiveAndListReports(t *testing.T) {
	f := newServiceFixture(t)
	reports := f.services.ReportService

	archived, err := reports.ArchiveReport(f.db, f.tenant.ID, f.report.ID)
	require.NoError(t, err)
	assert.True(t, archived.IsArchived)
	require.NotNil(t, archived.ArchivedBy)
	assert.Equal(t, f.tenant.ID, *archived.ArchivedBy)

	active, err := reports.ListReports(f.db, f.owner.ID, false)
	require.NoError(t, err)
	assert.Empty(t, active)

	all, err := reports.ListReports(f.db, f.owner.ID, true)
	require.NoError(t, err)
	assert.Len(t, all, 1)

	none, err := reports.ListReports(f.db, f.stranger.ID, true)
	require.NoError(t, err)
	assert.Empty(t, none)
}

func TestNotifyReport(t *testing.T) {
	f := newServiceFixture(t)
	ctx := context.Background()

	_, err := f.services.ReportService.NotifyReport(ctx, f.db, f.stranger.ID, f.report.ID, &dto.NotifyReportRequest{Message: "hi"})
	requireAppError(t, err, apperrors.CodeForbidden)

	resp, err := f.services.ReportService.NotifyReport(ctx, f.db, f.owner.ID, f.report.ID, &dto.NotifyReportRequest{Subject: "Inspection", Message: "See you Monday"})
	require.NoError(t, err)
	assert.Equal(t, dto.EmailStatusSent, resp.EmailStatus)
	require.Equal(t, 1, f.provider.count())
	assert.Equal(t, "Inspection", f.provider.sent[0].Subject)
}
