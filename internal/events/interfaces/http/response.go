package http

import (
	"errors"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"

	"github.com/events7/events7-api/internal/events/domain"
)

type eventEnvelope struct {
	Success bool          `json:"success"`
	Message string        `json:"message"`
	Data    *domain.Event `json:"data"`
}

type statusEnvelope struct {
	Success bool   `json:"success"`
	Message string `json:"message"`
}

type fieldError struct {
	Field  string   `json:"field"`
	Errors []string `json:"errors"`
}

type badRequestBody struct {
	StatusCode int          `json:"statusCode"`
	Message    string       `json:"message"`
	Errors     []fieldError `json:"errors"`
}

func writeForbidden(c *gin.Context) {
	c.AbortWithStatusJSON(http.StatusForbidden, gin.H{
		"statusCode": http.StatusForbidden,
		"message":    "Forbidden resource",
		"error":      "Forbidden",
	})
}

func writeNotFound(c *gin.Context) {
	c.JSON(http.StatusNotFound, gin.H{
		"statusCode": http.StatusNotFound,
		"message":    "Not Found",
	})
}

func writeBadRequest(c *gin.Context, message string) {
	c.JSON(http.StatusBadRequest, gin.H{
		"statusCode": http.StatusBadRequest,
		"message":    message,
		"error":      "Bad Request",
	})
}

func writeInternalError(c *gin.Context) {
	c.JSON(http.StatusInternalServerError, gin.H{
		"statusCode": http.StatusInternalServerError,
		"message":    "Internal server error",
	})
}

// writeValidationError renders binding failures as the structured 400 body
// with per-field messages.
func writeValidationError(c *gin.Context, err error) {
	body := badRequestBody{
		StatusCode: http.StatusBadRequest,
		Message:    "Validation failed",
		Errors:     []fieldError{},
	}

	var verrs validator.ValidationErrors
	if errors.As(err, &verrs) {
		for _, fe := range verrs {
			field := strings.ToLower(fe.Field())
			body.Errors = append(body.Errors, fieldError{
				Field:  field,
				Errors: []string{validationMessage(field, fe)},
			})
		}
	}

	c.JSON(http.StatusBadRequest, body)
}

func validationMessage(field string, fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return field + " should not be empty"
	case "oneof":
		return field + " must be one of the following values: " + strings.ReplaceAll(fe.Param(), " ", ", ")
	case "min":
		return field + " must not be less than " + fe.Param()
	case "max":
		return field + " must not be greater than " + fe.Param()
	default:
		return field + " is invalid"
	}
}
