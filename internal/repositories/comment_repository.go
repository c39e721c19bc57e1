package repositories

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/jmoiron/sqlx"

	"post-service/internal/models"
	"post-service/internal/sanitize"
)

// CommentRepository defines interactions for post comments.
type CommentRepository interface {
	GetComment(ctx context.Context, commentID int64) (models.Comment, error)
	ListComments(ctx context.Context, postID int64, offset, limit int) ([]models.Comment, error)
	CreateComment(ctx context.Context, authorID, postID int64, content string) (int64, error)
	EditComment(ctx context.Context, authorID, commentID int64, content string) error
	DeleteComment(ctx context.Context, authorID, commentID int64) error
}

// CommentRepo is a sqlx-backed implementation.
type CommentRepo struct {
	db *sqlx.DB
}

// NewCommentRepo constructs a CommentRepo.
func NewCommentRepo(db *sqlx.DB) *CommentRepo {
	return &CommentRepo{db: db}
}

const selectComment = `SELECT c.id, c.user_id, u.handle AS user_handle, c.post_id, c.content, c.date
        FROM comments c INNER JOIN users u ON u.id = c.user_id`

// GetComment fetches a single comment.
func (r *CommentRepo) GetComment(ctx context.Context, commentID int64) (models.Comment, error) {
	var comment models.Comment
	err := r.db.GetContext(ctx, &comment, selectComment+` WHERE c.id=$1`, commentID)
	if errors.Is(err, sql.ErrNoRows) {
		return models.Comment{}, ErrCommentNotFound
	}
	if err != nil {
		return models.Comment{}, fmt.Errorf("get comment %d: %w", commentID, err)
	}
	return comment, nil
}

// ListComments returns one page of a post's comments, newest first.
func (r *CommentRepo) ListComments(ctx context.Context, postID int64, offset, limit int) ([]models.Comment, error) {
	comments := []models.Comment{}
	err := r.db.SelectContext(ctx, &comments, selectComment+` WHERE c.post_id=$1 ORDER BY c.id DESC LIMIT $2 OFFSET $3`, postID, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("list comments of post %d: %w", postID, err)
	}
	return comments, nil
}

// CreateComment strips markup from content and attaches a new comment to a post.
func (r *CommentRepo) CreateComment(ctx context.Context, authorID, postID int64, content string) (int64, error) {
	var id int64
	err := r.db.QueryRowxContext(ctx, `INSERT INTO comments (user_id, post_id, content) VALUES ($1, $2, $3) RETURNING id`,
		authorID, postID, sanitize.StripTags(content)).Scan(&id)
	switch {
	case err == nil:
		return id, nil
	case errors.Is(err, sql.ErrNoRows):
		return 0, ErrCreateFailed
	case violatesForeignKey(err, "comments_post_id_fkey"):
		return 0, ErrPostNotFound
	default:
		return 0, fmt.Errorf("create comment: %w", err)
	}
}

// EditComment replaces the content of a comment owned by authorID.
func (r *CommentRepo) EditComment(ctx context.Context, authorID, commentID int64, content string) error {
	if err := r.checkAuthor(ctx, authorID, commentID); err != nil {
		return err
	}
	res, err := r.db.ExecContext(ctx, `UPDATE comments SET content=$1 WHERE id=$2 AND user_id=$3`, sanitize.StripTags(content), commentID, authorID)
	if err != nil {
		return fmt.Errorf("edit comment %d: %w", commentID, err)
	}
	return expectAffected(res, ErrCommentNotFound)
}

// DeleteComment removes a comment owned by authorID.
func (r *CommentRepo) DeleteComment(ctx context.Context, authorID, commentID int64) error {
	if err := r.checkAuthor(ctx, authorID, commentID); err != nil {
		return err
	}
	res, err := r.db.ExecContext(ctx, `DELETE FROM comments WHERE id=$1 AND user_id=$2`, commentID, authorID)
	if err != nil {
		return fmt.Errorf("delete comment %d: %w", commentID, err)
	}
	return expectAffected(res, ErrCommentNotFound)
}

func (r *CommentRepo) checkAuthor(ctx context.Context, authorID, commentID int64) error {
	var ownerID int64
	err := r.db.GetContext(ctx, &ownerID, `SELECT user_id FROM comments WHERE id=$1`, commentID)
	if errors.Is(err, sql.ErrNoRows) {
		return ErrCommentNotFound
	}
	if err != nil {
		return fmt.Errorf("author of comment %d: %w", commentID, err)
	}
	if ownerID != authorID {
		return ErrNotAuthor
	}
	return nil
}
