package models

import (
	"time"

	"github.com/google/uuid"

	"github.com/stocksentry/stocksentry-backend/pkg/enums"
)

// Shortage is one tracked episode of a product or variant falling below its
// configured minimum. Exactly one of ProductID/VariantID is set; partial
// unique indexes guarantee at most one non-resolved row per reference.
// Rows are never deleted: resolved is terminal but kept for audit.
type Shortage struct {
	ID            uuid.UUID           `gorm:"column:id;type:uuid;default:gen_random_uuid();primaryKey"`
	ProductID     *uuid.UUID          `gorm:"column:product_id;type:uuid"`
	VariantID     *uuid.UUID          `gorm:"column:variant_id;type:uuid"`
	OriginalQty   int                 `gorm:"column:original_qty;not null"`
	ShortfallQty  int                 `gorm:"column:shortfall_qty;not null"`
	ClaimedQty    int                 `gorm:"column:claimed_qty;not null;default:0"`
	State         enums.ShortageState `gorm:"column:state;type:shortage_state;not null;default:'detected'"`
	LinkedOrderID *uuid.UUID          `gorm:"column:linked_order_id;type:uuid"`
	Resolved      bool                `gorm:"column:resolved;not null;default:false"`
	DetectedAt    time.Time           `gorm:"column:detected_at;autoCreateTime"`
	UpdatedAt     time.Time           `gorm:"column:updated_at;autoUpdateTime"`
}
