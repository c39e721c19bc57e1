package handlers

import (
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"post-service/internal/models"
	"post-service/internal/repositories"
	"post-service/internal/telemetry"
)

func TestGetComments(t *testing.T) {
	f := newFixture(t)
	f.posts.On("GroupForPost", mock.Anything, int64(12)).Return(int64(7), nil).Once()
	f.members.On("IsMember", mock.Anything, int64(7), testUserID).Return(true, nil).Once()
	f.comments.On("ListComments", mock.Anything, int64(12), 0, 10).
		Return([]models.Comment{{ID: 5, PostID: 12}, {ID: 4, PostID: 12}}, nil).Once()

	rec := f.get("/post_getcomments?post_id=12&offset=0&amount=10")

	require.Equal(t, http.StatusOK, rec.Code)
	env := decode(t, rec)
	require.True(t, env.Success)
	require.Len(t, env.Comments, 2)
	require.Equal(t, int64(5), env.Comments[0].ID)
}

func TestGetCommentsUnknownPost(t *testing.T) {
	f := newFixture(t)
	f.posts.On("GroupForPost", mock.Anything, int64(99)).Return(int64(0), repositories.ErrPostNotFound).Once()

	rec := f.get("/post_getcomments?post_id=99&offset=0&amount=10")

	require.Equal(t, http.StatusNotFound, rec.Code)
}

func TestGetCommentsNotMember(t *testing.T) {
	f := newFixture(t)
	f.posts.On("GroupForPost", mock.Anything, int64(12)).Return(int64(7), nil).Once()
	f.members.On("IsMember", mock.Anything, int64(7), testUserID).Return(false, nil).Once()

	rec := f.get("/post_getcomments?post_id=12&offset=0&amount=10")

	require.Equal(t, http.StatusForbidden, rec.Code)
	require.Equal(t, msgNotMember, decode(t, rec).ErrorMsg)
}

func TestGetCommentsAmountAboveCap(t *testing.T) {
	f := newFixture(t)

	rec := f.get("/post_getcomments?post_id=12&offset=0&amount=500")

	require.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestSubmitComment(t *testing.T) {
	f := newFixture(t)
	f.posts.On("GroupForPost", mock.Anything, int64(12)).Return(int64(7), nil).Once()
	f.members.On("IsMember", mock.Anything, int64(7), testUserID).Return(true, nil).Once()
	f.comments.On("CreateComment", mock.Anything, testUserID, int64(12), "<i>nice</i>").Return(int64(6), nil).Once()

	rec := f.postJSON("/post_submitcomment", `{"post_id":12,"content":"<i>nice</i>"}`)

	require.Equal(t, http.StatusCreated, rec.Code)
	require.Equal(t, int64(6), decode(t, rec).CommentID)

	created := f.events(telemetry.CommentCreated)
	require.Len(t, created, 1)
	require.Equal(t, int64(6), created[0].Payload.CommentID)
	require.Equal(t, int64(12), created[0].Payload.PostID)
}

func TestSubmitCommentPostRemovedMeanwhile(t *testing.T) {
	f := newFixture(t)
	f.posts.On("GroupForPost", mock.Anything, int64(12)).Return(int64(7), nil).Once()
	f.members.On("IsMember", mock.Anything, int64(7), testUserID).Return(true, nil).Once()
	f.comments.On("CreateComment", mock.Anything, testUserID, int64(12), "hi").Return(int64(0), repositories.ErrPostNotFound).Once()

	rec := f.postJSON("/post_submitcomment", `{"post_id":12,"content":"hi"}`)

	require.Equal(t, http.StatusNotFound, rec.Code)
	require.Equal(t, msgPostNotFound, decode(t, rec).ErrorMsg)
}

func TestSubmitCommentEmptyAfterStripping(t *testing.T) {
	f := newFixture(t)

	rec := f.postJSON("/post_submitcomment", `{"post_id":12,"content":"  <p></p> "}`)

	require.Equal(t, http.StatusBadRequest, rec.Code)
	require.Equal(t, msgEmptyContent, decode(t, rec).ErrorMsg)
}

func TestEditCommentByNonAuthor(t *testing.T) {
	f := newFixture(t)
	f.comments.On("GetComment", mock.Anything, int64(5)).Return(models.Comment{ID: 5, PostID: 12, UserID: 9}, nil).Once()
	f.posts.On("GroupForPost", mock.Anything, int64(12)).Return(int64(7), nil).Once()
	f.members.On("IsMember", mock.Anything, int64(7), testUserID).Return(true, nil).Once()
	f.comments.On("EditComment", mock.Anything, testUserID, int64(5), "changed").Return(repositories.ErrNotAuthor).Once()

	rec := f.postJSON("/post_editcomment", `{"comment_id":5,"content":"changed"}`)

	require.Equal(t, http.StatusForbidden, rec.Code)
	require.Equal(t, "Couldn't edit comment!", decode(t, rec).ErrorMsg)
	require.Empty(t, f.events(telemetry.CommentEdited))
}

func TestEditCommentPublishesEvent(t *testing.T) {
	f := newFixture(t)
	f.comments.On("GetComment", mock.Anything, int64(5)).Return(models.Comment{ID: 5, PostID: 12, UserID: testUserID}, nil).Once()
	f.posts.On("GroupForPost", mock.Anything, int64(12)).Return(int64(7), nil).Once()
	f.members.On("IsMember", mock.Anything, int64(7), testUserID).Return(true, nil).Once()
	f.comments.On("EditComment", mock.Anything, testUserID, int64(5), "changed").Return(nil).Once()

	rec := f.postJSON("/post_editcomment", `{"comment_id":5,"content":"changed"}`)

	require.Equal(t, http.StatusOK, rec.Code)
	edited := f.events(telemetry.CommentEdited)
	require.Len(t, edited, 1)
	require.Equal(t, telemetry.CommentEdited, edited[0].Payload.Type)
	require.Equal(t, int64(5), edited[0].Payload.CommentID)
	require.Equal(t, int64(12), edited[0].Payload.PostID)
	require.Equal(t, int64(7), edited[0].Payload.GroupID)
	require.Equal(t, testUserID, edited[0].Payload.UserID)
	require.Contains(t, f.audits("INFO"), telemetry.AuditPayload{Level: "INFO", Text: "Comment edited"})
}

func TestEditCommentUnknown(t *testing.T) {
	f := newFixture(t)
	f.comments.On("GetComment", mock.Anything, int64(5)).Return(models.Comment{}, repositories.ErrCommentNotFound).Once()

	rec := f.postJSON("/post_editcomment", `{"comment_id":5,"content":"changed"}`)

	require.Equal(t, http.StatusNotFound, rec.Code)
	require.Equal(t, msgCommentNotFound, decode(t, rec).ErrorMsg)
}

func TestDeleteCommentTwice(t *testing.T) {
	f := newFixture(t)
	f.comments.On("GetComment", mock.Anything, int64(5)).Return(models.Comment{ID: 5, PostID: 12, UserID: testUserID}, nil).Once()
	f.posts.On("GroupForPost", mock.Anything, int64(12)).Return(int64(7), nil).Once()
	f.members.On("IsMember", mock.Anything, int64(7), testUserID).Return(true, nil).Once()
	f.comments.On("DeleteComment", mock.Anything, testUserID, int64(5)).Return(nil).Once()

	rec := f.postJSON("/post_deletecomment", `{"comment_id":5}`)
	require.Equal(t, http.StatusOK, rec.Code)

	f.comments.On("GetComment", mock.Anything, int64(5)).Return(models.Comment{}, repositories.ErrCommentNotFound).Once()

	rec = f.postJSON("/post_deletecomment", `{"comment_id":5}`)
	require.Equal(t, http.StatusNotFound, rec.Code)
	require.False(t, decode(t, rec).Success)

	deleted := f.events(telemetry.CommentDeleted)
	require.Len(t, deleted, 1)
	require.Equal(t, int64(5), deleted[0].Payload.CommentID)
}

func TestDeleteCommentStorageFailure(t *testing.T) {
	f := newFixture(t)
	f.comments.On("GetComment", mock.Anything, int64(5)).Return(models.Comment{}, assert.AnError).Once()

	rec := f.postJSON("/post_deletecomment", `{"comment_id":5}`)

	require.Equal(t, http.StatusInternalServerError, rec.Code)
	require.Equal(t, msgStatementError, decode(t, rec).ErrorMsg)
}
