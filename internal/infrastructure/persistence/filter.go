package persistence

import (
	"github.com/smeops/backend/internal/domain/shared"
	"gorm.io/gorm"
)

// allowed order columns per model keep the ORDER BY clause off user input
var orderableColumns = map[string]bool{
	"created_at":   true,
	"updated_at":   true,
	"name":         true,
	"sku":          true,
	"code":         true,
	"order_number": true,
	"order_date":   true,
	"payment_date": true,
	"total":        true,
	"amount":       true,
	"status":       true,
	"type":         true,
	"is_active":    true,
}

// applyFilter adds pagination, ordering and exact-match filters to a query
func applyFilter(query *gorm.DB, filter shared.Filter) *gorm.DB {
	for column, value := range filter.Filters {
		if orderableColumns[column] {
			query = query.Where(column+" = ?", value)
		}
	}

	orderBy := "created_at"
	if orderableColumns[filter.OrderBy] {
		orderBy = filter.OrderBy
	}
	direction := "DESC"
	if filter.OrderDir == "asc" {
		direction = "ASC"
	}
	query = query.Order(orderBy + " " + direction)

	offset := (filter.Page - 1) * filter.PageSize
	return query.Offset(offset).Limit(filter.PageSize)
}
