package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"post-service/internal/models"
	"post-service/internal/repositories"
	"post-service/internal/sanitize"
	"post-service/internal/telemetry"
)

// CommentHandler manages comment endpoints. Access is decided by the group of
// the parent post.
type CommentHandler struct {
	gate
	comments    repositories.CommentRepository
	maxPageSize int
}

// NewCommentHandler constructs a CommentHandler.
func NewCommentHandler(comments repositories.CommentRepository, posts repositories.PostRepository, members repositories.MembershipRepository, audit *telemetry.AuditEmitter, events *telemetry.EventEmitter, maxPageSize int) *CommentHandler {
	return &CommentHandler{
		gate:        gate{members: members, posts: posts, audit: audit, events: events},
		comments:    comments,
		maxPageSize: maxPageSize,
	}
}

type commentsQuery struct {
	PostID int64 `form:"post_id" binding:"required,min=1"`
	pageQuery
}

// GetComments handles GET /post_getcomments.
func (h *CommentHandler) GetComments(c *gin.Context) {
	var req commentsQuery
	if !bindPage(c, &req, h.maxPageSize) {
		return
	}
	if _, ok := h.memberOfPostGroup(c, req.PostID); !ok {
		return
	}

	comments, err := h.comments.ListComments(c.Request.Context(), req.PostID, *req.Offset, *req.Amount)
	if err != nil {
		h.emitAudit(c, "ERROR", "internal error")
		respondError(c, http.StatusInternalServerError, "Unable to retrieve comments!")
		return
	}

	respondOK(c, http.StatusOK, gin.H{"comments": comments})
}

// SubmitComment handles POST /post_submitcomment.
func (h *CommentHandler) SubmitComment(c *gin.Context) {
	var req struct {
		PostID  int64  `json:"post_id" form:"post_id" binding:"required,min=1"`
		Content string `json:"content" form:"content" binding:"required"`
	}
	if !bindBody(c, &req) {
		return
	}
	if sanitize.StripTags(req.Content) == "" {
		respondError(c, http.StatusBadRequest, msgEmptyContent)
		return
	}
	groupID, ok := h.memberOfPostGroup(c, req.PostID)
	if !ok {
		return
	}

	commentID, err := h.comments.CreateComment(c.Request.Context(), c.GetInt64(userIDContextKey), req.PostID, req.Content)
	if err != nil {
		if errors.Is(err, repositories.ErrPostNotFound) {
			h.emitAudit(c, "ERROR", "post not found")
			respondError(c, http.StatusNotFound, msgPostNotFound)
			return
		}
		h.emitAudit(c, "ERROR", "internal error")
		respondError(c, http.StatusInternalServerError, "Couldn't create new comment!")
		return
	}

	h.emitEvent(c, telemetry.CommentCreated, models.PostEvent{GroupID: groupID, PostID: req.PostID, CommentID: commentID})
	h.emitAudit(c, "INFO", "Comment created")
	respondOK(c, http.StatusCreated, gin.H{"comment_id": commentID})
}

// EditComment handles POST /post_editcomment.
func (h *CommentHandler) EditComment(c *gin.Context) {
	var req struct {
		CommentID int64  `json:"comment_id" form:"comment_id" binding:"required,min=1"`
		Content   string `json:"content" form:"content" binding:"required"`
	}
	if !bindBody(c, &req) {
		return
	}
	if sanitize.StripTags(req.Content) == "" {
		respondError(c, http.StatusBadRequest, msgEmptyContent)
		return
	}
	comment, groupID, ok := h.memberOfCommentGroup(c, req.CommentID)
	if !ok {
		return
	}

	if err := h.comments.EditComment(c.Request.Context(), c.GetInt64(userIDContextKey), req.CommentID, req.Content); err != nil {
		h.respondMutationError(c, err, "Couldn't edit comment!")
		return
	}

	h.emitEvent(c, telemetry.CommentEdited, models.PostEvent{GroupID: groupID, PostID: comment.PostID, CommentID: comment.ID})
	h.emitAudit(c, "INFO", "Comment edited")
	respondOK(c, http.StatusOK, nil)
}

// DeleteComment handles POST /post_deletecomment.
func (h *CommentHandler) DeleteComment(c *gin.Context) {
	var req struct {
		CommentID int64 `json:"comment_id" form:"comment_id" binding:"required,min=1"`
	}
	if !bindBody(c, &req) {
		return
	}
	comment, groupID, ok := h.memberOfCommentGroup(c, req.CommentID)
	if !ok {
		return
	}

	if err := h.comments.DeleteComment(c.Request.Context(), c.GetInt64(userIDContextKey), req.CommentID); err != nil {
		h.respondMutationError(c, err, "Couldn't delete comment!")
		return
	}

	h.emitEvent(c, telemetry.CommentDeleted, models.PostEvent{GroupID: groupID, PostID: comment.PostID, CommentID: comment.ID})
	h.emitAudit(c, "INFO", "Comment deleted")
	respondOK(c, http.StatusOK, nil)
}

func (h *CommentHandler) memberOfCommentGroup(c *gin.Context, commentID int64) (models.Comment, int64, bool) {
	comment, err := h.comments.GetComment(c.Request.Context(), commentID)
	if err != nil {
		if errors.Is(err, repositories.ErrCommentNotFound) {
			h.emitAudit(c, "ERROR", "comment not found")
			respondError(c, http.StatusNotFound, msgCommentNotFound)
			return models.Comment{}, 0, false
		}
		h.emitAudit(c, "ERROR", "internal error")
		respondError(c, http.StatusInternalServerError, msgStatementError)
		return models.Comment{}, 0, false
	}
	groupID, ok := h.memberOfPostGroup(c, comment.PostID)
	return comment, groupID, ok
}
