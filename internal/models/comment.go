package models

import "time"

// Comment is a reply attached to a single post.
type Comment struct {
	ID         int64     `db:"id" json:"id"`
	UserID     int64     `db:"user_id" json:"user_id"`
	UserHandle string    `db:"user_handle" json:"user_handle"`
	PostID     int64     `db:"post_id" json:"post_id"`
	Content    string    `db:"content" json:"content"`
	Date       time.Time `db:"date" json:"date"`
}
