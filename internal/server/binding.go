package server

import (
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"

	"pollboard/internal/apperr"
)

// bindMessages maps a JSON field name to a message per failed rule.
// Entries inside a slice use the "field[]" key.
type bindMessages map[string]map[string]string

// bindJSON decodes and validates the request body. On failure it writes
// the error envelope and returns false. Field violations are all
// collected into one response rather than stopping at the first.
func bindJSON(c *gin.Context, req any, messages bindMessages) bool {
	err := c.ShouldBindJSON(req)
	if err == nil {
		return true
	}
	var verrs validator.ValidationErrors
	if errors.As(err, &verrs) {
		details := make([]ValidationError, 0, len(verrs))
		for _, verr := range verrs {
			details = append(details, ValidationError{
				Field:         verr.Field(),
				Message:       resolveMessage(verr, messages),
				RejectedValue: verr.Value(),
			})
		}
		writeError(c, http.StatusBadRequest, apperr.CodeValidation,
			"validation failed for one or more fields", details)
		return false
	}
	writeError(c, http.StatusBadRequest, apperr.CodeMalformed, "malformed request body", nil)
	return false
}

func resolveMessage(verr validator.FieldError, messages bindMessages) string {
	key := verr.Field()
	if i := strings.IndexByte(key, '['); i >= 0 {
		key = key[:i] + "[]"
	}
	if fieldMsgs, ok := messages[key]; ok {
		if msg, ok := fieldMsgs[verr.Tag()]; ok {
			return msg
		}
	}
	return fmt.Sprintf("%s is invalid", verr.Field())
}

// pathID parses a positive integer path segment. Anything else is
// treated as a reference to a resource that cannot exist.
func pathID(c *gin.Context, name string) (uint, bool) {
	raw := c.Param(name)
	id, err := strconv.ParseUint(raw, 10, 32)
	if err != nil || id == 0 {
		writeError(c, http.StatusNotFound, apperr.CodeNotFound,
			fmt.Sprintf("invalid %s: %s", name, raw), nil)
		return 0, false
	}
	return uint(id), true
}
