package service

import (
	"fmt"
	"strings"

	apperrors "incidentlens.io/lens/internal/pkg/errors"
)

// Paging limits shared by every list operation.
const (
	DefaultPageSize       = 20
	DefaultPeoplePageSize = 10
	MaxPageSize           = 100
)

// checkPaging rejects a page below 1 or a page size outside 1..MaxPageSize.
func checkPaging(page, pageSize int) error {
	if page < 1 {
		return apperrors.ErrInvalidQueryf("page", "must be at least 1")
	}
	if pageSize < 1 || pageSize > MaxPageSize {
		return apperrors.ErrInvalidQueryf("page_size", fmt.Sprintf("must be between 1 and %d", MaxPageSize))
	}
	return nil
}

// containsFold reports whether needle occurs in haystack, ignoring case.
// The needle is matched literally.
func containsFold(haystack, needle string) bool {
	if needle == "" {
		return true
	}
	return strings.Contains(strings.ToLower(haystack), strings.ToLower(needle))
}

// anyContainsFold reports whether needle occurs in any of fields.
func anyContainsFold(needle string, fields ...string) bool {
	for _, f := range fields {
		if containsFold(f, needle) {
			return true
		}
	}
	return false
}
