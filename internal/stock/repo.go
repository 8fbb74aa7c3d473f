package stock

import (
	"context"
	"errors"

	"gorm.io/gorm"

	"github.com/stocksentry/stocksentry-backend/pkg/db/models"
)

// Repository reads the stock ledger's level rows. The ledger itself is an
// external collaborator; nothing in this service writes to it.
type Repository interface {
	FindByRef(ctx context.Context, ref models.ProductRef) (*models.StockLevel, error)
}

type repository struct {
	db *gorm.DB
}

// NewRepository builds a read-only stock repository.
func NewRepository(db *gorm.DB) Repository {
	return &repository{db: db}
}

func (r *repository) FindByRef(ctx context.Context, ref models.ProductRef) (*models.StockLevel, error) {
	query := r.db.WithContext(ctx)
	if ref.VariantID != nil {
		query = query.Where("variant_id = ?", *ref.VariantID)
	} else {
		query = query.Where("product_id = ?", *ref.ProductID)
	}

	var level models.StockLevel
	if err := query.First(&level).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &level, nil
}
