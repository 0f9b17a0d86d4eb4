package services

import (
	"bytes"
	"context"
	"errors"
	"image"
	"image/png"
	"sync"
	"testing"

	"depositshield_backend/internal/config"
	"depositshield_backend/internal/email"
	"depositshield_backend/internal/models"
	"depositshield_backend/internal/repositories"
	"depositshield_backend/internal/storage"
	"depositshield_backend/internal/testutil"
	"depositshield_backend/pkg/apperrors"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

const testBaseURL = "http://files.test"

// fakeProvider records messages and fails with err when set.
type fakeProvider struct {
	mu   sync.Mutex
	sent []*email.Email
	err  error
}

func (p *fakeProvider) Send(_ context.Context, msg *email.Email) (string, error) {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.err != nil {
		return "", p.err
	}
	p.sent = append(p.sent, msg)
	return "<test-message@depositshield.test>", nil
}

func (p *fakeProvider) Validate() error { return nil }
func (p *fakeProvider) Close() error    { return nil }

func (p *fakeProvider) count() int {
	p.mu.Lock()
	defer p.mu.Unlock()
	return len(p.sent)
}

type serviceFixture struct {
	db        *gorm.DB
	uploadDir string
	provider  *fakeProvider
	services  *ServiceContainer
	owner     *models.User
	tenant    *models.User
	stranger  *models.User
	property  *models.Property
	report    *models.Report
}

func newServiceFixture(t *testing.T) *serviceFixture {
	t.Helper()

	db := testutil.NewTestDB(t)
	dir := t.TempDir()
	store, err := storage.NewLocalStorage(storage.Config{Type: "local", BasePath: dir})
	require.NoError(t, err)

	cfg := config.Default()
	cfg.JWT.Secret = "test-secret"
	provider := &fakeProvider{}
	container := NewServiceContainer(cfg, store, provider, email.NewTemplateManager())

	users := repositories.NewUserRepository()
	owner := &models.User{Name: "Olive Owner", Email: "owner@example.com", Password: "x"}
	require.NoError(t, users.Create(db, owner))
	tenant := &models.User{Name: "Tom Tenant", Email: "tenant@example.com", Password: "x"}
	require.NoError(t, users.Create(db, tenant))
	stranger := &models.User{Name: "Sam Stranger", Email: "stranger@example.com", Password: "x"}
	require.NoError(t, users.Create(db, stranger))

	property := &models.Property{UserID: owner.ID, Address: "1 Main St", RoleAtThisProperty: models.PropertyRoleLandlord}
	require.NoError(t, repositories.NewPropertyRepository().Create(db, property))

	rooms, err := models.EncodeRooms([]models.Room{{ID: "kitchen", Name: "Kitchen"}, {ID: "bath", Name: "Bathroom"}})
	require.NoError(t, err)
	report := &models.Report{
		PropertyID: property.ID,
		CreatedBy:  tenant.ID,
		Type:       models.ReportTypeMoveIn,
		UUID:       uuid.NewString(),
		Title:      "Move-in",
		RoomsJSON:  rooms,
	}
	require.NoError(t, repositories.NewReportRepository().Create(db, report))

	return &serviceFixture{
		db:        db,
		uploadDir: dir,
		provider:  provider,
		services:  container,
		owner:     owner,
		tenant:    tenant,
		stranger:  stranger,
		property:  property,
		report:    report,
	}
}

func pngBytes(t *testing.T) []byte {
	t.Helper()
	var buf bytes.Buffer
	require.NoError(t, png.Encode(&buf, image.NewRGBA(image.Rect(0, 0, 2, 2))))
	return buf.Bytes()
}

func requireAppError(t *testing.T, err error, code apperrors.ErrorCode) *apperrors.AppError {
	t.Helper()
	require.Error(t, err)
	var appErr *apperrors.AppError
	require.True(t, errors.As(err, &appErr), "expected AppError, got %T: %v", err, err)
	require.Equal(t, code, appErr.Code)
	return appErr
}
