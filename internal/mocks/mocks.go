package mocks

import (
	"context"

	"github.com/stretchr/testify/mock"

	"post-service/internal/models"
	"post-service/internal/repositories"
	"post-service/internal/telemetry"
)

type PostRepositoryMock struct {
	mock.Mock
}

func (m *PostRepositoryMock) GetPost(ctx context.Context, postID int64) (models.Post, error) {
	args := m.Called(ctx, postID)
	var post models.Post
	if val := args.Get(0); val != nil {
		post = val.(models.Post)
	}
	return post, args.Error(1)
}

func (m *PostRepositoryMock) GroupForPost(ctx context.Context, postID int64) (int64, error) {
	args := m.Called(ctx, postID)
	return args.Get(0).(int64), args.Error(1)
}

func (m *PostRepositoryMock) ListPosts(ctx context.Context, groupID int64, offset, limit int) ([]models.Post, error) {
	args := m.Called(ctx, groupID, offset, limit)
	var posts []models.Post
	if val := args.Get(0); val != nil {
		posts = val.([]models.Post)
	}
	return posts, args.Error(1)
}

func (m *PostRepositoryMock) GetUpdates(ctx context.Context, groupID int64, lastSeenID int64) (models.PostUpdate, error) {
	args := m.Called(ctx, groupID, lastSeenID)
	var update models.PostUpdate
	if val := args.Get(0); val != nil {
		update = val.(models.PostUpdate)
	}
	return update, args.Error(1)
}

func (m *PostRepositoryMock) CreatePost(ctx context.Context, authorID, groupID int64, content string) (int64, error) {
	args := m.Called(ctx, authorID, groupID, content)
	return args.Get(0).(int64), args.Error(1)
}

func (m *PostRepositoryMock) EditPost(ctx context.Context, authorID, postID int64, content string) error {
	args := m.Called(ctx, authorID, postID, content)
	return args.Error(0)
}

func (m *PostRepositoryMock) DeletePost(ctx context.Context, authorID, postID int64) error {
	args := m.Called(ctx, authorID, postID)
	return args.Error(0)
}

func (m *PostRepositoryMock) CountPosts(ctx context.Context, groupID int64) (int, error) {
	args := m.Called(ctx, groupID)
	return args.Int(0), args.Error(1)
}

type CommentRepositoryMock struct {
	mock.Mock
}

func (m *CommentRepositoryMock) GetComment(ctx context.Context, commentID int64) (models.Comment, error) {
	args := m.Called(ctx, commentID)
	var comment models.Comment
	if val := args.Get(0); val != nil {
		comment = val.(models.Comment)
	}
	return comment, args.Error(1)
}

func (m *CommentRepositoryMock) ListComments(ctx context.Context, postID int64, offset, limit int) ([]models.Comment, error) {
	args := m.Called(ctx, postID, offset, limit)
	var comments []models.Comment
	if val := args.Get(0); val != nil {
		comments = val.([]models.Comment)
	}
	return comments, args.Error(1)
}

func (m *CommentRepositoryMock) CreateComment(ctx context.Context, authorID, postID int64, content string) (int64, error) {
	args := m.Called(ctx, authorID, postID, content)
	return args.Get(0).(int64), args.Error(1)
}

func (m *CommentRepositoryMock) EditComment(ctx context.Context, authorID, commentID int64, content string) error {
	args := m.Called(ctx, authorID, commentID, content)
	return args.Error(0)
}

func (m *CommentRepositoryMock) DeleteComment(ctx context.Context, authorID, commentID int64) error {
	args := m.Called(ctx, authorID, commentID)
	return args.Error(0)
}

type MembershipRepositoryMock struct {
	mock.Mock
}

func (m *MembershipRepositoryMock) IsMember(ctx context.Context, groupID int64, userID int64) (bool, error) {
	args := m.Called(ctx, groupID, userID)
	return args.Bool(0), args.Error(1)
}

type PublisherMock struct {
	mock.Mock
}

func (m *PublisherMock) Publish(ctx context.Context, routingKey string, event any, headers map[string]string) error {
	args := m.Called(ctx, routingKey, event, headers)
	return args.Error(0)
}

func (m *PublisherMock) Close() error {
	args := m.Called()
	return args.Error(0)
}

var _ repositories.PostRepository = (*PostRepositoryMock)(nil)
var _ repositories.CommentRepository = (*CommentRepositoryMock)(nil)
var _ repositories.MembershipRepository = (*MembershipRepositoryMock)(nil)
var _ telemetry.Publisher = (*PublisherMock)(nil)
