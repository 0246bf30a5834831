package handlers

import (
	"errors"
	"net/http"
	"regexp"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"

	apperrors "incidentlens.io/lens/internal/pkg/errors"
)

var paramNamePattern = regexp.MustCompile(`parameter (\w+)`)

// ParamErrorHandler renders a parameter the generated wrapper could not bind
// as INVALID_QUERY naming that parameter.
func ParamErrorHandler(c *gin.Context, err error, _ int) {
	field := "query"
	if m := paramNamePattern.FindStringSubmatch(err.Error()); m != nil {
		field = m[1]
	}
	_ = c.Error(apperrors.Wrap(err, apperrors.CodeInvalidQuery, "invalid query parameter: "+field, http.StatusBadRequest).
		WithFieldErrors([]apperrors.FieldError{{
			Field:   field,
			Code:    apperrors.CodeInvalidQuery,
			Message: "malformed value",
		}}))
}

// bindError converts a gin body binding failure into INVALID_QUERY with one
// field error per failed rule.
func bindError(err error) *apperrors.AppError {
	var verrs validator.ValidationErrors
	if errors.As(err, &verrs) && len(verrs) > 0 {
		fields := make([]apperrors.FieldError, 0, len(verrs))
		for _, fe := range verrs {
			fields = append(fields, apperrors.FieldError{
				Field:   fieldName(fe),
				Code:    apperrors.CodeInvalidQuery,
				Message: "failed rule " + fe.Tag() + paramSuffix(fe.Param()),
			})
		}
		return apperrors.BadRequest(apperrors.CodeInvalidQuery, "invalid query parameter: "+fields[0].Field).
			WithFieldErrors(fields)
	}
	return apperrors.Wrap(err, apperrors.CodeInvalidQuery, "malformed request", http.StatusBadRequest)
}

// fieldName reports the wire name of a failed field. Query structs name
// fields after their form tag in snake case.
func fieldName(fe validator.FieldError) string {
	name := fe.Field()
	var b strings.Builder
	for i, r := range name {
		if r >= 'A' && r <= 'Z' {
			if i > 0 {
				b.WriteByte('_')
			}
			r += 'a' - 'A'
		}
		b.WriteRune(r)
	}
	return b.String()
}

func paramSuffix(p string) string {
	if p == "" {
		return ""
	}
	return "=" + p
}
