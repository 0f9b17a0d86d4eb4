package dto

import "io"

// UploadedFile is the part of a multipart upload the photo service needs.
type UploadedFile struct {
	Filename string
	Size     int64
	Content  io.ReadSeeker
}

type UploadPhotoRequest struct {
	RoomID *string  `form:"room_id" validate:"omitempty,max=100"`
	Note   string   `form:"note" validate:"max=5000"`
	Tags   []string `form:"tags" validate:"omitempty,dive,max=100"`
}

type UpdateNoteRequest struct {
	Note *string `json:"note" validate:"required,max=5000"`
}

type AddTagRequest struct {
	Tag string `json:"tag" validate:"required,max=100"`
}

type PhotoResponse struct {
	Message string     `json:"message"`
	Photo   *PhotoView `json:"photo"`
}

type PhotoListResponse struct {
	Message string      `json:"message"`
	Photos  []PhotoView `json:"photos"`
}
