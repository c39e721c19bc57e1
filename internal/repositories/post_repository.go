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

// PostRepository abstracts post persistence.
type PostRepository interface {
	GetPost(ctx context.Context, postID int64) (models.Post, error)
	GroupForPost(ctx context.Context, postID int64) (int64, error)
	ListPosts(ctx context.Context, groupID int64, offset, limit int) ([]models.Post, error)
	GetUpdates(ctx context.Context, groupID int64, lastSeenID int64) (models.PostUpdate, error)
	CreatePost(ctx context.Context, authorID, groupID int64, content string) (int64, error)
	EditPost(ctx context.Context, authorID, postID int64, content string) error
	DeletePost(ctx context.Context, authorID, postID int64) error
	CountPosts(ctx context.Context, groupID int64) (int, error)
}

// PostRepo is a sqlx implementation of PostRepository.
type PostRepo struct {
	db *sqlx.DB
}

// NewPostRepo constructs a PostRepo.
func NewPostRepo(db *sqlx.DB) *PostRepo {
	return &PostRepo{db: db}
}

const selectPost = `SELECT p.id, p.user_id, u.handle AS user_handle, p.group_id, p.content, p.date
        FROM posts p INNER JOIN users u ON u.id = p.user_id`

// GetPost fetches a single post with its author's handle.
func (r *PostRepo) GetPost(ctx context.Context, postID int64) (models.Post, error) {
	var post models.Post
	err := r.db.GetContext(ctx, &post, selectPost+` WHERE p.id=$1`, postID)
	if errors.Is(err, sql.ErrNoRows) {
		return models.Post{}, ErrPostNotFound
	}
	if err != nil {
		return models.Post{}, fmt.Errorf("get post %d: %w", postID, err)
	}
	return post, nil
}

// GroupForPost returns the group a post belongs to.
func (r *PostRepo) GroupForPost(ctx context.Context, postID int64) (int64, error) {
	var groupID int64
	err := r.db.GetContext(ctx, &groupID, `SELECT group_id FROM posts WHERE id=$1`, postID)
	if errors.Is(err, sql.ErrNoRows) {
		return 0, ErrPostNotFound
	}
	if err != nil {
		return 0, fmt.Errorf("group for post %d: %w", postID, err)
	}
	return groupID, nil
}

// ListPosts returns one page of a group's posts, newest first.
func (r *PostRepo) ListPosts(ctx context.Context, groupID int64, offset, limit int) ([]models.Post, error) {
	posts := []models.Post{}
	err := r.db.SelectContext(ctx, &posts, selectPost+` WHERE p.group_id=$1 ORDER BY p.id DESC LIMIT $2 OFFSET $3`, groupID, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("list posts of group %d: %w", groupID, err)
	}
	return posts, nil
}

// GetUpdates returns the group's posts newer than lastSeenID, newest first.
func (r *PostRepo) GetUpdates(ctx context.Context, groupID int64, lastSeenID int64) (models.PostUpdate, error) {
	posts := []models.Post{}
	err := r.db.SelectContext(ctx, &posts, selectPost+` WHERE p.group_id=$1 AND p.id>$2 ORDER BY p.id DESC`, groupID, lastSeenID)
	if err != nil {
		return models.PostUpdate{}, fmt.Errorf("updates of group %d: %w", groupID, err)
	}
	if len(posts) == 0 {
		return models.PostUpdate{Status: models.NoUpdate, Posts: posts}, nil
	}
	return models.PostUpdate{Status: models.UpdateAvailable, Posts: posts}, nil
}

// CreatePost strips markup from content and stores a new post.
func (r *PostRepo) CreatePost(ctx context.Context, authorID, groupID int64, content string) (int64, error) {
	var id int64
	err := r.db.QueryRowxContext(ctx, `INSERT INTO posts (user_id, group_id, content) VALUES ($1, $2, $3) RETURNING id`,
		authorID, groupID, sanitize.StripTags(content)).Scan(&id)
	if errors.Is(err, sql.ErrNoRows) {
		return 0, ErrCreateFailed
	}
	if err != nil {
		return 0, fmt.Errorf("create post: %w", err)
	}
	return id, nil
}

// EditPost replaces the content of a post owned by authorID.
func (r *PostRepo) EditPost(ctx context.Context, authorID, postID int64, content string) error {
	if err := r.checkAuthor(ctx, authorID, postID); err != nil {
		return err
	}
	res, err := r.db.ExecContext(ctx, `UPDATE posts SET content=$1 WHERE id=$2 AND user_id=$3`, sanitize.StripTags(content), postID, authorID)
	if err != nil {
		return fmt.Errorf("edit post %d: %w", postID, err)
	}
	return expectAffected(res, ErrPostNotFound)
}

// DeletePost removes a post owned by authorID together with its comments.
func (r *PostRepo) DeletePost(ctx context.Context, authorID, postID int64) error {
	if err := r.checkAuthor(ctx, authorID, postID); err != nil {
		return err
	}
	res, err := r.db.ExecContext(ctx, `DELETE FROM posts WHERE id=$1 AND user_id=$2`, postID, authorID)
	if err != nil {
		return fmt.Errorf("delete post %d: %w", postID, err)
	}
	return expectAffected(res, ErrPostNotFound)
}

// CountPosts returns how many posts a group holds.
func (r *PostRepo) CountPosts(ctx context.Context, groupID int64) (int, error) {
	var count int
	if err := r.db.GetContext(ctx, &count, `SELECT COUNT(*) FROM posts WHERE group_id=$1`, groupID); err != nil {
		return 0, fmt.Errorf("count posts of group %d: %w", groupID, err)
	}
	return count, nil
}

func (r *PostRepo) checkAuthor(ctx context.Context, authorID, postID int64) error {
	var ownerID int64
	err := r.db.GetContext(ctx, &ownerID, `SELECT user_id FROM posts WHERE id=$1`, postID)
	if errors.Is(err, sql.ErrNoRows) {
		return ErrPostNotFound
	}
	if err != nil {
		return fmt.Errorf("author of post %d: %w", postID, err)
	}
	if ownerID != authorID {
		return ErrNotAuthor
	}
	return nil
}

// expectAffected turns a zero row count into notFound; the row vanished between
// the author check and the write.
func expectAffected(res sql.Result, notFound error) error {
	count, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if count == 0 {
		return notFound
	}
	return nil
}
