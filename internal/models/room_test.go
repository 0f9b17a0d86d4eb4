package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/datatypes"
)

func TestParseRooms(t *testing.T) {
	rooms, err := ParseRooms(datatypes.JSON(`[{"id":"r1","name":"Kitchen","photo_count":7},{"id":2,"name":"Bath"}]`))
	require.NoError(t, err)
	require.Len(t, rooms, 2)

	assert.Equal(t, RoomID("r1"), rooms[0].ID)
	assert.Equal(t, 7, rooms[0].PhotoCount)
	assert.Equal(t, RoomID("2"), rooms[1].ID)
}

func TestParseRooms_EmptyAndMalformed(t *testing.T) {
	rooms, err := ParseRooms(nil)
	require.NoError(t, err)
	assert.NotNil(t, rooms)
	assert.Empty(t, rooms)

	rooms, err = ParseRooms(datatypes.JSON(`{"not":"a list"`))
	assert.Error(t, err)
	assert.NotNil(t, rooms)
	assert.Empty(t, rooms)
}

func TestEncodeRooms_NilIsEmptyList(t *testing.T) {
	raw, err := EncodeRooms(nil)
	require.NoError(t, err)
	assert.JSONEq(t, `[]`, string(raw))
}
