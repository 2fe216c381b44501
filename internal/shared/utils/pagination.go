package utils

import (
	"strconv"

	"github.com/gin-gonic/gin"

	"caseflow/internal/shared/constants"
	"caseflow/internal/shared/errors"
)

// Pagination holds parsed pagination parameters.
type Pagination struct {
	Page     int
	PageSize int
}

// ValidatePagination validates and normalizes pagination parameters.
// Omitted values (zero) fall back to DefaultPage/DefaultPageSize and
// PageSize is capped at MaxPageSize. Explicitly negative values are
// malformed input, not something to silently repair.
func ValidatePagination(page, pageSize int) (Pagination, error) {
	if page < 0 {
		return Pagination{}, errors.NewValidationError("page must not be negative")
	}
	if pageSize < 0 {
		return Pagination{}, errors.NewValidationError("page size must not be negative")
	}

	if page == 0 {
		page = constants.DefaultPage
	}
	if pageSize == 0 {
		pageSize = constants.DefaultPageSize
	}
	if pageSize > constants.MaxPageSize {
		pageSize = constants.MaxPageSize
	}

	return Pagination{
		Page:     page,
		PageSize: pageSize,
	}, nil
}

// ParsePagination parses pagination parameters from Gin context query string.
// Returns validated pagination with defaults applied, or a validation error
// for negative values.
func ParsePagination(c *gin.Context) (Pagination, error) {
	page := parseQueryInt(c, "page")
	pageSize := parseQueryInt(c, "page_size")
	return ValidatePagination(page, pageSize)
}

// parseQueryInt parses an integer query parameter; absent or non-numeric
// values read as zero so validation can apply the default.
func parseQueryInt(c *gin.Context, key string) int {
	if val := c.Query(key); val != "" {
		if n, err := strconv.Atoi(val); err == nil {
			return n
		}
	}
	return 0
}

// Offset returns the query offset for the page.
func (p Pagination) Offset() int {
	return (p.Page - 1) * p.PageSize
}

// TotalPages calculates total pages for a given total count.
func TotalPages(total int64, pageSize int) int {
	if total == 0 || pageSize == 0 {
		return 1
	}
	pages := int((total + int64(pageSize) - 1) / int64(pageSize))
	if pages == 0 {
		return 1
	}
	return pages
}
