package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/lib/pq"
)

// ProductVariant distinguishes a sellable variation of a product by its
// attribute values (size, color, ...). The values form an unordered
// multiset; display order is not significant.
type ProductVariant struct {
	ID              uuid.UUID      `gorm:"column:id;type:uuid;default:gen_random_uuid();primaryKey"`
	ProductID       uuid.UUID      `gorm:"column:product_id;type:uuid;not null"`
	SKU             string         `gorm:"column:sku;not null"`
	AttributeValues pq.StringArray `gorm:"column:attribute_values;type:text[];not null;default:ARRAY[]::text[]"`
	CreatedAt       time.Time      `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt       time.Time      `gorm:"column:updated_at;autoUpdateTime"`
}
