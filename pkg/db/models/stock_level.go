package models

import (
	"time"

	"github.com/google/uuid"
)

// StockLevel mirrors the stock ledger's current quantity and thresholds per
// product or variant. The ledger owns the writes; this service reads it for
// replenishment recommendations.
type StockLevel struct {
	ID          uuid.UUID  `gorm:"column:id;type:uuid;default:gen_random_uuid();primaryKey"`
	ProductID   *uuid.UUID `gorm:"column:product_id;type:uuid"`
	VariantID   *uuid.UUID `gorm:"column:variant_id;type:uuid"`
	Quantity    int        `gorm:"column:quantity;not null;default:0"`
	MinQuantity int        `gorm:"column:min_quantity;not null;default:0"`
	MaxQuantity int        `gorm:"column:max_quantity;not null;default:0"`
	UpdatedAt   time.Time  `gorm:"column:updated_at;autoUpdateTime"`
}
