package services

import (
	"testing"
	"time"

	"depositshield_backend/internal/models"
	"depositshield_backend/internal/repositories"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/datatypes"
)

func strPtr(s string) *string { return &s }

func TestBuildSharedReport_NoCrossReportLeakage(t *testing.T) {
	report := &models.Report{BaseModel: models.BaseModel{ID: 1}, PropertyID: 7}
	rooms := []models.Room{{ID: "kitchen", Name: "Kitchen", PhotoCount: 42}}
	photos := []models.Photo{
		{ID: 10, ReportID: 1, RoomID: strPtr("kitchen"), FilePath: "a.jpg"},
		{ID: 11, ReportID: 2, RoomID: strPtr("kitchen"), FilePath: "b.jpg"},
		{ID: 12, ReportID: 1, RoomID: strPtr("hall"), FilePath: "c.jpg"},
		{ID: 13, ReportID: 1, FilePath: "d.jpg"},
	}

	shared := BuildSharedReport(report, nil, rooms, photos, "http://x/")

	require.Len(t, shared.Rooms, 1)
	kitchen := shared.Rooms[0]
	assert.Equal(t, 1, kitchen.PhotoCount, "stored photo_count is replaced by the actual count")
	require.Len(t, kitchen.Photos, 1)
	assert.Equal(t, uint(10), kitchen.Photos[0].ID)

	ids := make([]uint, 0, len(shared.Photos))
	for _, p := range shared.Photos {
		ids = append(ids, p.ID)
		assert.Equal(t, uint(1), p.ReportID)
	}
	assert.Equal(t, []uint{10, 12, 13}, ids)

	assert.Equal(t, "/uploads/a.jpg", kitchen.Photos[0].URL)
	assert.Equal(t, "http://x/uploads/a.jpg", kitchen.Photos[0].AbsoluteURL)
	assert.Nil(t, shared.Property)
	assert.Nil(t, shared.Report.Address)
}

func TestBuildSharedReport_EmptyCollectionsAreNotNil(t *testing.T) {
	report := &models.Report{BaseModel: models.BaseModel{ID: 1}}
	shared := BuildSharedReport(report, nil, []models.Room{{ID: "r", Name: "Room"}}, nil, "")

	assert.NotNil(t, shared.Photos)
	assert.NotNil(t, shared.Rooms[0].Photos)
	assert.Equal(t, 0, shared.Rooms[0].PhotoCount)
}

func TestReportAggregator_MalformedRoomsStillServed(t *testing.T) {
	f := newServiceFixture(t)
	f.report.RoomsJSON = datatypes.JSON(`{"not":"a list"`)
	require.NoError(t, repositories.NewReportRepository().Update(f.db, f.report))

	photo := &models.Photo{ReportID: f.report.ID, RoomID: strPtr("kitchen"), FilePath: "k.jpg", Timestamp: time.Now()}
	require.NoError(t, repositories.NewPhotoRepository().Create(f.db, photo))

	aggregator := NewReportAggregator(repositories.NewPropertyRepository(), repositories.NewPhotoRepository())
	shared, err := aggregator.Aggregate(f.db, f.report, testBaseURL)
	require.NoError(t, err)

	assert.Empty(t, shared.Rooms)
	assert.NotNil(t, shared.Rooms)
	require.Len(t, shared.Photos, 1)
	require.NotNil(t, shared.Property)
	assert.Equal(t, "1 Main St", shared.Property.Address)
	require.NotNil(t, shared.Report.Address)
	assert.Equal(t, "1 Main St", *shared.Report.Address)
}

func TestReportAggregator_RoomIDsAcceptNumbers(t *testing.T) {
	f := newServiceFixture(t)
	f.report.RoomsJSON = datatypes.JSON(`[{"id": 3, "name": "Bedroom", "photo_count": 9}]`)
	require.NoError(t, repositories.NewReportRepository().Update(f.db, f.report))

	photo := &models.Photo{ReportID: f.report.ID, RoomID: strPtr("3"), FilePath: "b.jpg", Timestamp: time.Now()}
	require.NoError(t, repositories.NewPhotoRepository().Create(f.db, photo))

	aggregator := NewReportAggregator(repositories.NewPropertyRepository(), repositories.NewPhotoRepository())
	shared, err := aggregator.Aggregate(f.db, f.report, testBaseURL)
	require.NoError(t, err)

	require.Len(t, shared.Rooms, 1)
	assert.Equal(t, 1, shared.Rooms[0].PhotoCount)
}
