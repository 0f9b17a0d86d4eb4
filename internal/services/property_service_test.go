package services

import (
	"encoding/json"
	"testing"

	"depositshield_backend/internal/models"
	"depositshield_backend/internal/services/dto"
	"depositshield_backend/pkg/apperrors"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPropertyService_CreateAndUpdate(t *testing.T) {
	f := newServiceFixture(t)
	svc := f.services.PropertyService

	deposit := 1200.0
	start := "2024-01-01"
	created, err := svc.CreateProperty(f.db, f.tenant.ID, &dto.CreatePropertyRequest{
		Address:           "22 Elm Rd",
		Role:              "renter",
		DepositAmount:     &deposit,
		ContractStartDate: &start,
		AdditionalSpaces:  json.RawMessage(`["balcony","storage"]`),
	})
	require.NoError(t, err)
	assert.Equal(t, models.PropertyRoleRenter, created.RoleAtThisProperty)
	assert.JSONEq(t, `["balcony","storage"]`, string(created.AdditionalSpaces))

	defaulted, err := svc.CreateProperty(f.db, f.tenant.ID, &dto.CreatePropertyRequest{Address: "3 Oak Ave"})
	require.NoError(t, err)
	assert.Equal(t, models.PropertyRoleOther, defaulted.RoleAtThisProperty)

	_, err = svc.CreateProperty(f.db, f.tenant.ID, &dto.CreatePropertyRequest{Address: "x", AdditionalSpaces: json.RawMessage(`{broken`)})
	requireAppError(t, err, apperrors.CodeValidationFailed)

	list, err := svc.ListProperties(f.db, f.tenant.ID)
	require.NoError(t, err)
	require.Len(t, list, 2)
	assert.Equal(t, defaulted.ID, list[0].ID, "newest first")

	address := "22 Elm Road"
	role := "landlord"
	updated, err := svc.UpdateProperty(f.db, f.tenant.ID, created.ID, &dto.UpdatePropertyRequest{Address: &address, RoleAtThisProperty: &role})
	require.NoError(t, err)
	assert.Equal(t, "22 Elm Road", updated.Address)
	assert.Equal(t, models.PropertyRoleLandlord, updated.RoleAtThisProperty)
	require.NotNil(t, updated.DepositAmount)
	assert.Equal(t, 1200.0, *updated.DepositAmount)

	_, err = svc.UpdateProperty(f.db, f.owner.ID, created.ID, &dto.UpdatePropertyRequest{Address: &address})
	requireAppError(t, err, apperrors.CodeForbidden)
}

func TestPropertyService_OwnerOnlyReads(t *testing.T) {
	f := newServiceFixture(t)
	svc := f.services.PropertyService

	_, err := svc.GetProperty(f.db, f.tenant.ID, f.property.ID)
	requireAppError(t, err, apperrors.CodeForbidden)

	_, err = svc.GetProperty(f.db, f.owner.ID, 9999)
	requireAppError(t, err, apperrors.CodeNotFound)

	reports, err := svc.ListPropertyReports(f.db, f.owner.ID, f.property.ID)
	require.NoError(t, err)
	require.Len(t, reports, 1)
	assert.Equal(t, f.report.ID, reports[0].ID)
}
