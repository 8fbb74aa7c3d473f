package shortages

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/stocksentry/stocksentry-backend/pkg/db/models"
	"github.com/stocksentry/stocksentry-backend/pkg/enums"
)

// Repository exposes persistence helpers for shortage records.
//
// Callers that participate in a collaborator transaction rebind via WithTx
// so every mutation commits or rolls back with the triggering write.
type Repository interface {
	WithTx(tx *gorm.DB) Repository
	Create(ctx context.Context, shortage *models.Shortage) error
	FindByID(ctx context.Context, id uuid.UUID) (*models.Shortage, error)
	FindActiveByRef(ctx context.Context, ref models.ProductRef) (*models.Shortage, error)
	FindClaimableByRef(ctx context.Context, ref models.ProductRef) ([]models.Shortage, error)
	UpdateClaim(ctx context.Context, id uuid.UUID, claimedQty int, state enums.ShortageState, orderID uuid.UUID) error
	UpdateState(ctx context.Context, id uuid.UUID, from, to enums.ShortageState) (bool, error)
	ResolveActiveByRef(ctx context.Context, ref models.ProductRef) (int64, error)
	ResolveByLinkedOrder(ctx context.Context, orderID uuid.UUID) (int64, error)
	ResetByLinkedOrder(ctx context.Context, orderID uuid.UUID) (int64, error)
	AdvanceByLinkedOrder(ctx context.Context, orderID uuid.UUID, from []enums.ShortageState, to enums.ShortageState) (int64, error)
	ListActive(ctx context.Context) ([]models.Shortage, error)
}

type repository struct {
	db *gorm.DB
}

// NewRepository builds a shortages repository bound to the provided DB.
func NewRepository(db *gorm.DB) Repository {
	return &repository{db: db}
}

func (r *repository) WithTx(tx *gorm.DB) Repository {
	if tx == nil {
		return r
	}
	return &repository{db: tx}
}

func (r *repository) Create(ctx context.Context, shortage *models.Shortage) error {
	return r.db.WithContext(ctx).Create(shortage).Error
}

func (r *repository) FindByID(ctx context.Context, id uuid.UUID) (*models.Shortage, error) {
	var shortage models.Shortage
	err := r.db.WithContext(ctx).Where("id = ?", id).First(&shortage).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &shortage, nil
}

func (r *repository) FindActiveByRef(ctx context.Context, ref models.ProductRef) (*models.Shortage, error) {
	var shortage models.Shortage
	query := refScope(r.db.WithContext(ctx), ref).
		Where("state <> ?", enums.ShortageStateResolved)
	err := query.First(&shortage).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &shortage, nil
}

func (r *repository) FindClaimableByRef(ctx context.Context, ref models.ProductRef) ([]models.Shortage, error) {
	var shortages []models.Shortage
	query := refScope(r.db.WithContext(ctx), ref).
		Where("state IN ?", ClaimableStates()).
		Order("detected_at ASC")
	if err := query.Find(&shortages).Error; err != nil {
		return nil, err
	}
	return shortages, nil
}

func (r *repository) UpdateClaim(ctx context.Context, id uuid.UUID, claimedQty int, state enums.ShortageState, orderID uuid.UUID) error {
	return r.db.WithContext(ctx).
		Model(&models.Shortage{}).
		Where("id = ?", id).
		Updates(map[string]any{
			"claimed_qty":     claimedQty,
			"state":           state,
			"linked_order_id": orderID,
		}).Error
}

// UpdateState performs a compare-and-set transition; it reports false when
// the row was no longer in the expected source state.
func (r *repository) UpdateState(ctx context.Context, id uuid.UUID, from, to enums.ShortageState) (bool, error) {
	result := r.db.WithContext(ctx).
		Model(&models.Shortage{}).
		Where("id = ? AND state = ?", id, from).
		UpdateColumn("state", to)
	if result.Error != nil {
		return false, result.Error
	}
	return result.RowsAffected > 0, nil
}

// Resolution is terminal and drops the order link; linked_order_id only
// carries meaning while a replenishment order is in flight.
func (r *repository) ResolveActiveByRef(ctx context.Context, ref models.ProductRef) (int64, error) {
	result := refScope(r.db.WithContext(ctx).Model(&models.Shortage{}), ref).
		Where("state <> ?", enums.ShortageStateResolved).
		Updates(map[string]any{
			"state":           enums.ShortageStateResolved,
			"resolved":        true,
			"linked_order_id": nil,
		})
	return result.RowsAffected, result.Error
}

func (r *repository) ResolveByLinkedOrder(ctx context.Context, orderID uuid.UUID) (int64, error) {
	result := r.db.WithContext(ctx).
		Model(&models.Shortage{}).
		Where("linked_order_id = ? AND state <> ?", orderID, enums.ShortageStateResolved).
		Updates(map[string]any{
			"state":           enums.ShortageStateResolved,
			"resolved":        true,
			"linked_order_id": nil,
		})
	return result.RowsAffected, result.Error
}

func (r *repository) ResetByLinkedOrder(ctx context.Context, orderID uuid.UUID) (int64, error) {
	result := r.db.WithContext(ctx).
		Model(&models.Shortage{}).
		Where("linked_order_id = ? AND state <> ?", orderID, enums.ShortageStateResolved).
		Updates(map[string]any{
			"state":           enums.ShortageStateDetected,
			"claimed_qty":     0,
			"linked_order_id": nil,
		})
	return result.RowsAffected, result.Error
}

func (r *repository) AdvanceByLinkedOrder(ctx context.Context, orderID uuid.UUID, from []enums.ShortageState, to enums.ShortageState) (int64, error) {
	result := r.db.WithContext(ctx).
		Model(&models.Shortage{}).
		Where("linked_order_id = ? AND state IN ?", orderID, from).
		UpdateColumn("state", to)
	return result.RowsAffected, result.Error
}

func (r *repository) ListActive(ctx context.Context) ([]models.Shortage, error) {
	var shortages []models.Shortage
	err := r.db.WithContext(ctx).
		Where("state <> ?", enums.ShortageStateResolved).
		Order("detected_at ASC").
		Find(&shortages).Error
	if err != nil {
		return nil, err
	}
	return shortages, nil
}

// refScope narrows a query to the shortage's own reference column. A
// shortage row carries exactly one of product_id/variant_id, so a line or
// mutation matches only through the reference it shares.
func refScope(q *gorm.DB, ref models.ProductRef) *gorm.DB {
	if ref.VariantID != nil {
		return q.Where("variant_id = ?", *ref.VariantID)
	}
	return q.Where("product_id = ?", *ref.ProductID)
}
