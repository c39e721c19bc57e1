package models

import "time"

// Post is a piece of content published to a group.
type Post struct {
	ID         int64     `db:"id" json:"id"`
	UserID     int64     `db:"user_id" json:"user_id"`
	UserHandle string    `db:"user_handle" json:"user_handle"`
	GroupID    int64     `db:"group_id" json:"group_id"`
	Content    string    `db:"content" json:"content"`
	Date       time.Time `db:"date" json:"date"`
}

// UpdateStatus tags the outcome of a poll that reached storage.
type UpdateStatus int

const (
	// UpdateAvailable means Posts holds at least one post newer than the last seen id.
	UpdateAvailable UpdateStatus = iota
	// NoUpdate means nothing is newer than the last seen id.
	NoUpdate
)

func (s UpdateStatus) String() string {
	if s == NoUpdate {
		return "no_update"
	}
	return "updated"
}

// PostUpdate is the outcome of looking for posts newer than a given id.
// Posts is ordered by id descending and is empty when Status is NoUpdate.
type PostUpdate struct {
	Status UpdateStatus
	Posts  []Post
}

// PostEvent is published to the event exchange whenever a post or comment changes.
type PostEvent struct {
	Type      string `json:"type"`
	GroupID   int64  `json:"group_id,omitempty"`
	PostID    int64  `json:"post_id"`
	CommentID int64  `json:"comment_id,omitempty"`
	UserID    int64  `json:"user_id"`
}
