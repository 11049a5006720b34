package handler

import (
	"errors"
	"log/slog"
	"net/http"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"

	"taskplane.app/api-server/internal/apperr"
)

// development controls whether unclassified error details reach clients.
// Set once during router setup.
var development bool

func SetDevelopmentMode(enabled bool) {
	development = enabled
}

// Every response uses the same envelope: {"status": "success", "data": ...}
// or {"status": "error", "message": ...}.

func respondSuccess(c *gin.Context, status int, data any) {
	c.JSON(status, gin.H{"status": "success", "data": data})
}

func respondError(c *gin.Context, err error) {
	kind := apperr.KindOf(err)
	message := apperr.MessageOf(err)

	if kind == apperr.KindInternal {
		slog.ErrorContext(c.Request.Context(), "request failed", "error", err)
		if development {
			message = err.Error()
		} else {
			message = "internal server error"
		}
	}

	c.JSON(statusOf(kind), gin.H{"status": "error", "message": message})
}

// respondBindError turns binding failures into a field-level error list so
// clients see every invalid field at once.
func respondBindError(c *gin.Context, err error) {
	var verrs validator.ValidationErrors
	if errors.As(err, &verrs) {
		details := make([]gin.H, 0, len(verrs))
		for _, fe := range verrs {
			details = append(details, gin.H{
				"field":   fieldName(fe),
				"message": validationMessage(fe),
			})
		}
		c.JSON(http.StatusBadRequest, gin.H{
			"status":  "error",
			"message": "validation failed",
			"errors":  details,
		})
		return
	}

	c.JSON(http.StatusBadRequest, gin.H{
		"status":  "error",
		"message": "invalid request body",
	})
}

func statusOf(kind apperr.Kind) int {
	switch kind {
	case apperr.KindBadRequest:
		return http.StatusBadRequest
	case apperr.KindUnauthorized:
		return http.StatusUnauthorized
	case apperr.KindForbidden:
		return http.StatusForbidden
	case apperr.KindNotFound:
		return http.StatusNotFound
	case apperr.KindConflict:
		return http.StatusConflict
	default:
		return http.StatusInternalServerError
	}
}

func fieldName(fe validator.FieldError) string {
	name := fe.Field()
	if name == "" {
		return name
	}
	return strings.ToLower(name[:1]) + name[1:]
}

func validationMessage(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return "is required"
	case "email":
		return "must be a valid email address"
	case "min":
		return "must be at least " + fe.Param() + " characters"
	case "max":
		return "must be at most " + fe.Param() + " characters"
	case "oneof":
		return "must be one of: " + fe.Param()
	default:
		return "is invalid"
	}
}

// pathID parses the :id path segment; a malformed id reads as not-found
// rather than a validation error, matching lookups for ids that never
// existed.
func pathID(c *gin.Context, name string) (int64, error) {
	id, err := strconv.ParseInt(c.Param(name), 10, 64)
	if err != nil {
		return 0, apperr.NotFound("not found")
	}
	return id, nil
}
