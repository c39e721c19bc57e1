package handlers

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"

	"post-service/internal/models"
	"post-service/internal/repositories"
	"post-service/internal/sanitize"
	"post-service/internal/telemetry"
)

type updatePoller interface {
	Poll(ctx context.Context, groupID, lastSeenID int64) (models.PostUpdate, error)
}

// PostHandler manages post endpoints.
type PostHandler struct {
	gate
	poller      updatePoller
	maxPageSize int
}

// NewPostHandler constructs a PostHandler.
func NewPostHandler(posts repositories.PostRepository, members repositories.MembershipRepository, poll updatePoller, audit *telemetry.AuditEmitter, events *telemetry.EventEmitter, maxPageSize int) *PostHandler {
	return &PostHandler{
		gate:        gate{members: members, posts: posts, audit: audit, events: events},
		poller:      poll,
		maxPageSize: maxPageSize,
	}
}

// GetPost handles GET /post_getpost.
func (h *PostHandler) GetPost(c *gin.Context) {
	var req struct {
		PostID int64 `form:"post_id" binding:"required,min=1"`
	}
	if !bindQuery(c, &req) {
		return
	}

	post, err := h.posts.GetPost(c.Request.Context(), req.PostID)
	if err != nil {
		h.respondLookupError(c, err)
		return
	}
	if !h.requireMember(c, post.GroupID) {
		return
	}

	respondOK(c, http.StatusOK, gin.H{"post": post})
}

type postsQuery struct {
	GroupID int64 `form:"group_id" binding:"required,min=1"`
	pageQuery
}

// GetPosts handles GET /post_getposts.
func (h *PostHandler) GetPosts(c *gin.Context) {
	var req postsQuery
	if !bindPage(c, &req, h.maxPageSize) {
		return
	}
	if !h.requireMember(c, req.GroupID) {
		return
	}

	posts, err := h.posts.ListPosts(c.Request.Context(), req.GroupID, *req.Offset, *req.Amount)
	if err != nil {
		h.emitAudit(c, "ERROR", "internal error")
		respondError(c, http.StatusInternalServerError, "Unable to retrieve posts!")
		return
	}

	respondOK(c, http.StatusOK, gin.H{"posts": posts})
}

// GetPostUpdate handles GET /post_getpostupdate. Finding nothing new is a
// successful response flagged with no_update, not an error.
func (h *PostHandler) GetPostUpdate(c *gin.Context) {
	var req struct {
		GroupID      int64  `form:"group_id" binding:"required,min=1"`
		LastUpdate   *int64 `form:"last_update" binding:"required,min=0"`
		OldestPostID *int64 `form:"oldest_post_id" binding:"omitempty,min=0"`
	}
	if !bindQuery(c, &req) {
		return
	}
	if req.OldestPostID != nil && *req.OldestPostID > *req.LastUpdate {
		respondError(c, http.StatusBadRequest, "Invalid parameter: oldest_post_id must not exceed last_update")
		return
	}
	if !h.requireMember(c, req.GroupID) {
		return
	}

	res, err := h.poller.Poll(c.Request.Context(), req.GroupID, *req.LastUpdate)
	if err != nil {
		h.emitAudit(c, "ERROR", "internal error")
		respondError(c, http.StatusInternalServerError, msgStatementError)
		return
	}

	noUpdate := res.Status == models.NoUpdate
	payload := gin.H{"posts": res.Posts, "no_update": noUpdate}
	if noUpdate {
		payload["message"] = msgNoUpdate
	}
	if req.OldestPostID != nil {
		payload["oldest_post_id"] = *req.OldestPostID
	}
	respondOK(c, http.StatusOK, payload)
}

// CountPosts handles GET /post_countposts.
func (h *PostHandler) CountPosts(c *gin.Context) {
	var req struct {
		GroupID int64 `form:"group_id" binding:"required,min=1"`
	}
	if !bindQuery(c, &req) {
		return
	}
	if !h.requireMember(c, req.GroupID) {
		return
	}

	count, err := h.posts.CountPosts(c.Request.Context(), req.GroupID)
	if err != nil {
		h.emitAudit(c, "ERROR", "internal error")
		respondError(c, http.StatusInternalServerError, msgStatementError)
		return
	}

	respondOK(c, http.StatusOK, gin.H{"count": count})
}

// SubmitPost handles POST /post_submitpost.
func (h *PostHandler) SubmitPost(c *gin.Context) {
	var req struct {
		GroupID int64  `json:"group_id" form:"group_id" binding:"required,min=1"`
		Content string `json:"content" form:"content" binding:"required"`
	}
	if !bindBody(c, &req) {
		return
	}
	if sanitize.StripTags(req.Content) == "" {
		respondError(c, http.StatusBadRequest, msgEmptyContent)
		return
	}
	if !h.requireMember(c, req.GroupID) {
		return
	}

	postID, err := h.posts.CreatePost(c.Request.Context(), c.GetInt64(userIDContextKey), req.GroupID, req.Content)
	if err != nil {
		h.emitAudit(c, "ERROR", "internal error")
		respondError(c, http.StatusInternalServerError, "Couldn't create new post!")
		return
	}

	h.emitEvent(c, telemetry.PostCreated, models.PostEvent{GroupID: req.GroupID, PostID: postID})
	h.emitAudit(c, "INFO", "Post created")
	respondOK(c, http.StatusCreated, gin.H{"post_id": postID})
}

// EditPost handles POST /post_editpost.
func (h *PostHandler) EditPost(c *gin.Context) {
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

	if err := h.posts.EditPost(c.Request.Context(), c.GetInt64(userIDContextKey), req.PostID, req.Content); err != nil {
		h.respondMutationError(c, err, "Couldn't edit post!")
		return
	}

	h.emitEvent(c, telemetry.PostEdited, models.PostEvent{GroupID: groupID, PostID: req.PostID})
	h.emitAudit(c, "INFO", "Post edited")
	respondOK(c, http.StatusOK, nil)
}

// DeletePost handles POST /post_deletepost.
func (h *PostHandler) DeletePost(c *gin.Context) {
	var req struct {
		PostID int64 `json:"post_id" form:"post_id" binding:"required,min=1"`
	}
	if !bindBody(c, &req) {
		return
	}
	groupID, ok := h.memberOfPostGroup(c, req.PostID)
	if !ok {
		return
	}

	if err := h.posts.DeletePost(c.Request.Context(), c.GetInt64(userIDContextKey), req.PostID); err != nil {
		h.respondMutationError(c, err, "Couldn't delete post!")
		return
	}

	h.emitEvent(c, telemetry.PostDeleted, models.PostEvent{GroupID: groupID, PostID: req.PostID})
	h.emitAudit(c, "INFO", "Post deleted")
	respondOK(c, http.StatusOK, nil)
}
