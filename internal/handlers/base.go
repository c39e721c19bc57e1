package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"post-service/internal/models"
	"post-service/internal/repositories"
	"post-service/internal/telemetry"
)

// gate holds what every group-scoped handler needs: the membership check, the
// post lookup that resolves a post's group, and the audit and event emitters.
type gate struct {
	members repositories.MembershipRepository
	posts   repositories.PostRepository
	audit   *telemetry.AuditEmitter
	events  *telemetry.EventEmitter
}

// requireMember answers 403 or 500 and returns false unless the caller belongs to groupID.
func (g gate) requireMember(c *gin.Context, groupID int64) bool {
	member, err := g.members.IsMember(c.Request.Context(), groupID, c.GetInt64(userIDContextKey))
	if err != nil {
		g.emitAudit(c, "ERROR", "membership check failed")
		respondError(c, http.StatusInternalServerError, msgStatementError)
		return false
	}
	if !member {
		g.emitAudit(c, "ERROR", "not a member of group")
		respondError(c, http.StatusForbidden, msgNotMember)
		return false
	}
	return true
}

// memberOfPostGroup resolves the post's group and checks the caller belongs to it.
func (g gate) memberOfPostGroup(c *gin.Context, postID int64) (int64, bool) {
	groupID, err := g.posts.GroupForPost(c.Request.Context(), postID)
	if err != nil {
		g.respondLookupError(c, err)
		return 0, false
	}
	return groupID, g.requireMember(c, groupID)
}

func (g gate) respondLookupError(c *gin.Context, err error) {
	if errors.Is(err, repositories.ErrPostNotFound) {
		g.emitAudit(c, "ERROR", "post not found")
		respondError(c, http.StatusNotFound, msgPostNotFound)
		return
	}
	g.emitAudit(c, "ERROR", "internal error")
	respondError(c, http.StatusInternalServerError, msgStatementError)
}

func (g gate) emitAudit(c *gin.Context, level, text string) {
	if g.audit == nil {
		return
	}
	g.audit.Emit(c.Request.Context(), level, text, requestIDFromContext(c), userIDFromContext(c))
}

func (g gate) emitEvent(c *gin.Context, name string, event models.PostEvent) {
	if g.events == nil {
		return
	}
	event.UserID = c.GetInt64(userIDContextKey)
	g.events.Emit(c.Request.Context(), name, requestIDFromContext(c), event)
}

// respondMutationError maps an edit or delete failure. Missing rows and foreign
// authorship get distinct statuses but keep the operation's message.
func (g gate) respondMutationError(c *gin.Context, err error, failMsg string) {
	switch {
	case errors.Is(err, repositories.ErrPostNotFound), errors.Is(err, repositories.ErrCommentNotFound):
		g.emitAudit(c, "ERROR", "not found")
		respondError(c, http.StatusNotFound, failMsg)
	case errors.Is(err, repositories.ErrNotAuthor):
		g.emitAudit(c, "ERROR", "not the author")
		respondError(c, http.StatusForbidden, failMsg)
	default:
		g.emitAudit(c, "ERROR", "internal error")
		respondError(c, http.StatusInternalServerError, msgStatementError)
	}
}
