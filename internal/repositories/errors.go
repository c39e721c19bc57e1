package repositories

import (
	"errors"

	"github.com/lib/pq"
)

var (
	ErrPostNotFound    = errors.New("post not found")
	ErrCommentNotFound = errors.New("comment not found")
	ErrNotAuthor       = errors.New("user is not the author")
	ErrCreateFailed    = errors.New("no row created")
)

const foreignKeyViolation = "23503"

// violatesForeignKey reports whether err is a postgres FK violation on constraint.
func violatesForeignKey(err error, constraint string) bool {
	var pqErr *pq.Error
	if !errors.As(err, &pqErr) {
		return false
	}
	return pqErr.Code == foreignKeyViolation && pqErr.Constraint == constraint
}
