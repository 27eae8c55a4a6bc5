package handlers

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"
	"github.com/internforge/backend/internal/agent"
	"github.com/internforge/backend/internal/apperr"
	"github.com/internforge/backend/internal/llmjson"
	"github.com/internforge/backend/internal/submissions"
	"github.com/internforge/backend/pkg/logger"
	"github.com/internforge/backend/pkg/middleware"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

var statusByKind = map[apperr.Kind]int{
	apperr.KindValidation: http.StatusBadRequest,
	apperr.KindAuth:       http.StatusUnauthorized,
	apperr.KindNotFound:   http.StatusNotFound,
	apperr.KindConflict:   http.StatusConflict,
	apperr.KindUpstream:   http.StatusBadGateway,
}

// respondError writes the JSON error body for err.
func respondError(c *gin.Context, err error) {
	kind := apperr.KindOf(err)
	status, ok := statusByKind[kind]
	if !ok {
		logger.Errorw("unhandled error", "method", c.Request.Method, "route", c.FullPath(), "err", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal error"})
		return
	}
	body := gin.H{"error": apperr.Message(err, "internal error")}
	if kind == apperr.KindUpstream {
		logger.Warnw("upstream failure", "route", c.FullPath(), "err", err)
		if stage := agent.Stage(err); stage != "" {
			body["stage"] = stage
		} else if stage := llmjson.Stage(err); stage != "" {
			body["stage"] = stage
		}
		var ee *submissions.EvaluationError
		if errors.As(err, &ee) {
			body["submissionId"] = ee.SubmissionID.Hex()
		}
	}
	c.JSON(status, body)
}

// bindJSON decodes the body into dst and answers 400 on failure.
func bindJSON(c *gin.Context, dst any) bool {
	if err := c.ShouldBindJSON(dst); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": bindMessage(err)})
		return false
	}
	return true
}

func bindMessage(err error) string {
	var verrs validator.ValidationErrors
	if errors.As(err, &verrs) && len(verrs) > 0 {
		fe := verrs[0]
		switch fe.Tag() {
		case "required":
			return fe.Field() + " is required"
		case "skillpair":
			return "skills must be [['skill', 'beginner|intermediate|advanced']]"
		case "objectid":
			return fe.Field() + " must be a valid id"
		case "min":
			return fmt.Sprintf("%s must be at least %s", fe.Field(), fe.Param())
		case "max":
			return fmt.Sprintf("%s must be at most %s", fe.Field(), fe.Param())
		}
		return fe.Field() + " is invalid"
	}
	var ute *json.UnmarshalTypeError
	if errors.As(err, &ute) {
		if ute.Field != "" {
			return ute.Field + " has the wrong type"
		}
		return "request body has the wrong type"
	}
	if strings.Contains(err.Error(), "EOF") {
		return "request body is required"
	}
	return "invalid request body"
}

// objectIDParam parses a path parameter, answering 400 with msg when invalid.
func objectIDParam(c *gin.Context, name, msg string) (primitive.ObjectID, bool) {
	id, err := primitive.ObjectIDFromHex(c.Param(name))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": msg})
		return primitive.NilObjectID, false
	}
	return id, true
}

// currentUser returns the authenticated user id or answers 401.
func currentUser(c *gin.Context) (primitive.ObjectID, bool) {
	id, ok := middleware.UserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "authentication required"})
	}
	return id, ok
}
