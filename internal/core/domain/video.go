package domain

import "time"

// Video is an uploaded clip and its metadata.
//
// OwnerUsername is copied from the uploader at upload time and is not kept in
// sync when the user is later renamed.
type Video struct {
	ID            string    `json:"id"`
	Title         string    `json:"title"`
	Description   string    `json:"description"`
	Filename      string    `json:"filename"`
	OwnerID       string    `json:"owner_id"`
	OwnerUsername string    `json:"owner_username"`
	Views         int64     `json:"views"`
	UploadedAt    time.Time `json:"uploaded_at"`
	Code          string    `json:"code,omitempty"`
}

// VideoUpdate is a partial update: a nil field is left untouched.
type VideoUpdate struct {
	Title       *string
	Description *string
}

// Empty reports whether the update carries no field at all.
func (u VideoUpdate) Empty() bool {
	return u.Title == nil && u.Description == nil
}

// VideoDetail is everything shown on a video page.
type VideoDetail struct {
	Video       *Video     `json:"video"`
	Suggestions []*Video   `json:"suggestions"`
	Comments    []*Comment `json:"comments"`
}
