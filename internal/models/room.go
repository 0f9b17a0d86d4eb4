package models

import (
	"bytes"
	"encoding/json"

	"gorm.io/datatypes"
)

// RoomID accepts both string and numeric ids from stored room lists.
type RoomID string

func (id *RoomID) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if bytes.Equal(data, []byte("null")) {
		*id = ""
		return nil
	}
	if len(data) > 0 && data[0] == '"' {
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return err
		}
		*id = RoomID(s)
		return nil
	}
	var n json.Number
	if err := json.Unmarshal(data, &n); err != nil {
		return err
	}
	*id = RoomID(n.String())
	return nil
}

// Room is one entry of a report's stored room list. PhotoCount is advisory.
type Room struct {
	ID         RoomID `json:"id"`
	Name       string `json:"name"`
	Notes      string `json:"notes"`
	PhotoCount int    `json:"photo_count"`
}

// ParseRooms decodes a rooms_json column. Empty input yields no rooms.
func ParseRooms(raw datatypes.JSON) ([]Room, error) {
	if len(bytes.TrimSpace(raw)) == 0 || bytes.Equal(bytes.TrimSpace(raw), []byte("null")) {
		return []Room{}, nil
	}
	var rooms []Room
	if err := json.Unmarshal(raw, &rooms); err != nil {
		return []Room{}, err
	}
	if rooms == nil {
		rooms = []Room{}
	}
	return rooms, nil
}

// EncodeRooms serializes rooms for storage.
func EncodeRooms(rooms []Room) (datatypes.JSON, error) {
	if rooms == nil {
		rooms = []Room{}
	}
	b, err := json.Marshal(rooms)
	if err != nil {
		return nil, err
	}
	return datatypes.JSON(b), nil
}
