package handlers

import (
	"errors"
	"fmt"
	"net/http"
	"reflect"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"
	"github.com/samber/lo"
)

// Messages shown to clients. Storage internals never reach the response.
const (
	msgRequestNotReceived = "Request not received!"
	msgStatementError     = "Database statement error!"
	msgNotMember          = "User isn't a member of requested group!"
	msgPostNotFound       = "Post not found!"
	msgCommentNotFound    = "Comment not found!"
	msgEmptyContent       = "Content is empty!"
	msgNoUpdate           = "No update available."
)

func init() {
	// report form/json names instead of Go field names in validation messages
	if v, ok := binding.Validator.Engine().(*validator.Validate); ok {
		v.RegisterTagNameFunc(func(fld reflect.StructField) string {
			for _, tag := range []string{"form", "json"} {
				name := strings.SplitN(fld.Tag.Get(tag), ",", 2)[0]
				if name != "" && name != "-" {
					return name
				}
			}
			return fld.Name
		})
	}
}

func respondOK(c *gin.Context, status int, payload gin.H) {
	if payload == nil {
		payload = gin.H{}
	}
	payload["success"] = true
	payload["error_msg"] = ""
	c.JSON(status, payload)
}

func respondError(c *gin.Context, status int, msg string) {
	c.JSON(status, gin.H{"success": false, "error_msg": msg})
}

// bindingMessage turns a binding failure into a client message. Missing
// parameters keep the historical "Request not received!" text.
func bindingMessage(err error) string {
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return "Invalid parameters!"
	}
	if lo.ContainsBy(verrs, func(fe validator.FieldError) bool { return fe.Tag() == "required" }) {
		return msgRequestNotReceived
	}
	fields := lo.Uniq(lo.Map(verrs, func(fe validator.FieldError, _ int) string { return fe.Field() }))
	return fmt.Sprintf("Invalid parameter: %s", strings.Join(fields, ", "))
}

// pageQuery is the offset/amount window shared by listing endpoints.
type pageQuery struct {
	Offset *int `form:"offset" binding:"required,min=0"`
	Amount *int `form:"amount" binding:"required,min=1"`
}

func (p pageQuery) page() pageQuery { return p }

// bindPage binds the window and rejects amounts above maxPageSize.
func bindPage(c *gin.Context, dst interface{ page() pageQuery }, maxPageSize int) bool {
	if !bindQuery(c, dst) {
		return false
	}
	if *dst.page().Amount > maxPageSize {
		respondError(c, http.StatusBadRequest, fmt.Sprintf("Invalid parameter: amount must not exceed %d", maxPageSize))
		return false
	}
	return true
}

// bindQuery binds and validates query parameters, answering 400 on failure.
func bindQuery(c *gin.Context, dst any) bool {
	if err := c.ShouldBindQuery(dst); err != nil {
		respondError(c, http.StatusBadRequest, bindingMessage(err))
		return false
	}
	return true
}

// bindBody binds a JSON or form body, answering 400 on failure.
func bindBody(c *gin.Context, dst any) bool {
	if err := c.ShouldBind(dst); err != nil {
		respondError(c, http.StatusBadRequest, bindingMessage(err))
		return false
	}
	return true
}
