package handler

import (
	"errors"
	"fmt"
	"strings"
	"unicode"

	"github.com/dukkan/backend/internal/interfaces/http/dto"
	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"
)

// BindingError translates a gin binding failure into the standard error
// envelope. Validator failures become field-level details; anything else
// is reported as malformed JSON.
func (h *BaseHandler) BindingError(c *gin.Context, err error) {
	var verrs validator.ValidationErrors
	if errors.As(err, &verrs) {
		details := make([]dto.ValidationDetail, 0, len(verrs))
		for _, fe := range verrs {
			details = append(details, dto.ValidationDetail{
				Field:   fieldName(fe),
				Message: fieldMessage(fe),
			})
		}
		h.ValidationError(c, details)
		return
	}

	h.Error(c, dto.GetHTTPStatus(dto.ErrCodeInvalidJSON), dto.ErrCodeInvalidJSON, "Request body is not valid JSON")
}

// fieldName reports the struct field in the snake_case form used by the
// JSON tags, so error details match the wire names clients sent.
func fieldName(fe validator.FieldError) string {
	return toSnakeCase(fe.Field())
}

func fieldMessage(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return "This field is required"
	case "oneof":
		return fmt.Sprintf("Must be one of: %s", strings.ReplaceAll(fe.Param(), " ", ", "))
	case "min":
		return fmt.Sprintf("Must be at least %s characters", fe.Param())
	case "max":
		return fmt.Sprintf("Must be at most %s characters", fe.Param())
	default:
		return fmt.Sprintf("Failed %s validation", fe.Tag())
	}
}

func toSnakeCase(s string) string {
	var b strings.Builder
	for i := 0; i < len(s); i++ {
		r := rune(s[i])
		if unicode.IsUpper(r) && i > 0 {
			prevUpper := unicode.IsUpper(rune(s[i-1]))
			nextLower := i+1 < len(s) && unicode.IsLower(rune(s[i+1]))
			if !prevUpper || nextLower {
				b.WriteByte('_')
			}
		}
		b.WriteRune(unicode.ToLower(r))
	}
	return b.String()
}
