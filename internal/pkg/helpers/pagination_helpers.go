package helpers

import (
	"fmt"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/yigit/libraryhub/internal/app/models/dto"
	"github.com/yigit/libraryhub/internal/pkg/apperrors"
)

const (
	DefaultLimit = 5
	MaxLimit     = 100
	MinLimit     = 1
)

// ParsePaginationParams reads limit and offset from the query string.
// Missing values fall back to the defaults; out-of-range or non-numeric values are rejected.
func ParsePaginationParams(c *gin.Context) (limit, offset int, err error) {
	limit = DefaultLimit
	if raw, ok := c.GetQuery("limit"); ok {
		limit, err = strconv.Atoi(raw)
		if err != nil {
			return 0, 0, apperrors.NewValidationError("limit must be an integer")
		}
	}

	if raw, ok := c.GetQuery("offset"); ok {
		offset, err = strconv.Atoi(raw)
		if err != nil {
			return 0, 0, apperrors.NewValidationError("offset must be an integer")
		}
	}

	if err := ValidatePagination(limit, offset); err != nil {
		return 0, 0, err
	}
	return limit, offset, nil
}

// ValidatePagination checks limit is within [MinLimit, MaxLimit] and offset is non-negative.
func ValidatePagination(limit, offset int) error {
	if limit < MinLimit || limit > MaxLimit {
		return apperrors.NewValidationError(fmt.Sprintf("limit must be between %d and %d", MinLimit, MaxLimit))
	}
	if offset < 0 {
		return apperrors.NewValidationError("offset must be greater than or equal to 0")
	}
	return nil
}

// NewPaginationInfo creates a standard PaginationInfo DTO.
func NewPaginationInfo(totalItems int64, limit, offset, returned int) dto.PaginationInfo {
	return dto.PaginationInfo{
		Limit:      limit,
		Offset:     offset,
		Returned:   returned,
		TotalItems: totalItems,
		HasMore:    int64(offset+returned) < totalItems,
	}
}
