package auth

import (
	"math/rand"
	"testing"

	"depositshield_backend/internal/models"

	"github.com/stretchr/testify/assert"
)

func TestCanAccessReport_RandomTriples(t *testing.T) {
	rng := rand.New(rand.NewSource(42))

	for i := 0; i < 2000; i++ {
		creator := uint(rng.Intn(5) + 1)
		owner := uint(rng.Intn(5) + 1)
		caller := uint(rng.Intn(6)) // 0 is anonymous

		property := &models.Property{BaseModel: models.BaseModel{ID: 10}, UserID: owner}
		report := &models.Report{BaseModel: models.BaseModel{ID: 20}, PropertyID: 10, CreatedBy: creator}

		want := caller != 0 && (caller == creator || caller == owner)
		assert.Equal(t, want, CanAccessReport(report, property, caller),
			"creator=%d owner=%d caller=%d", creator, owner, caller)

		photo := &models.Photo{ReportID: 20}
		assert.Equal(t, want, CanAccessPhoto(photo, report, property, caller))
	}
}

func TestCanAccessReport_PropertyMustMatchReport(t *testing.T) {
	other := &models.Property{BaseModel: models.BaseModel{ID: 99}, UserID: 7}
	report := &models.Report{PropertyID: 1, CreatedBy: 3}

	assert.False(t, CanAccessReport(report, other, 7))
	assert.True(t, CanAccessReport(report, other, 3))
	assert.False(t, CanAccessReport(nil, other, 7))
}

func TestCanAccessPhoto_ForeignPhoto(t *testing.T) {
	property := &models.Property{BaseModel: models.BaseModel{ID: 1}, UserID: 2}
	report := &models.Report{BaseModel: models.BaseModel{ID: 5}, PropertyID: 1, CreatedBy: 2}

	assert.False(t, CanAccessPhoto(&models.Photo{ReportID: 6}, report, property, 2))
}

func TestCanMutateReport_CreatorOnly(t *testing.T) {
	report := &models.Report{PropertyID: 1, CreatedBy: 3}

	assert.True(t, CanMutateReport(report, 3))
	assert.False(t, CanMutateReport(report, 4))
	assert.False(t, CanMutateReport(report, 0))
}

func TestCanApproveOrReject(t *testing.T) {
	report := &models.Report{CreatedBy: 3, UUID: "2b0a5f5e-7d7e-4a57-9b0e-2f1c1f8b7a10"}

	assert.True(t, CanApproveOrReject(report, 3, ""))
	assert.True(t, CanApproveOrReject(report, 0, report.UUID))
	assert.False(t, CanApproveOrReject(report, 4, ""))
	assert.False(t, CanApproveOrReject(report, 4, "not-the-uuid"))
	assert.False(t, CanApproveOrReject(&models.Report{CreatedBy: 3}, 0, ""))
}

func TestIsPropertyOwner(t *testing.T) {
	property := &models.Property{UserID: 9}

	assert.True(t, IsPropertyOwner(property, 9))
	assert.False(t, IsPropertyOwner(property, 8))
	assert.False(t, IsPropertyOwner(&models.Property{}, 0))
	assert.False(t, IsPropertyOwner(nil, 9))
}
