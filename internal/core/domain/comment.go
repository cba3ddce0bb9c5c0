package domain

import "time"

// AnonymousAuthor is recorded as the author of comments posted without a session.
const AnonymousAuthor = "Anonimo"

// Comment is a note left on a video. Author is the username at posting time,
// not a reference: it may outlive the user it names.
type Comment struct {
	ID        string    `json:"id"`
	VideoID   string    `json:"video_id"`
	Author    string    `json:"author"`
	Text      string    `json:"text"`
	CreatedAt time.Time `json:"created_at"`
}
