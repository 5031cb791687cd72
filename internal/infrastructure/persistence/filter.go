package persistence

import (
	"fmt"

	"gorm.io/gorm"

	"github.com/venuehq/backend/internal/domain/shared"
)

// applySort orders the query by a whitelisted field and normalized direction
func applySort(query *gorm.DB, filter shared.Filter, allowedFields map[string]bool) *gorm.DB {
	field := ValidateSortField(filter.OrderBy, allowedFields, "created_at")
	dir := ValidateSortOrder(filter.OrderDir)
	return query.Order(fmt.Sprintf("%s %s", field, dir))
}

// applyPagination offsets and limits the query from the filter's page settings
func applyPagination(query *gorm.DB, filter shared.Filter) *gorm.DB {
	page := filter.Page
	if page <= 0 {
		page = 1
	}
	pageSize := filter.PageSize
	if pageSize <= 0 {
		pageSize = 20
	}
	return query.Offset((page - 1) * pageSize).Limit(pageSize)
}
