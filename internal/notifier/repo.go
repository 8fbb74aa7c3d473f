package notifier

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/stocksentry/stocksentry-backend/pkg/db/models"
	"github.com/stocksentry/stocksentry-backend/pkg/enums"
)

// RequestRepository exposes persistence helpers for notification requests.
type RequestRepository interface {
	WithTx(tx *gorm.DB) RequestRepository
	Create(ctx context.Context, request *models.NotificationRequest) error
	ListEligible(ctx context.Context, asOf time.Time, limit int) ([]models.NotificationRequest, error)
	MarkSent(ctx context.Context, id uuid.UUID, at time.Time) error
	MarkFailed(ctx context.Context, id uuid.UUID) error
	DeleteOlderThan(ctx context.Context, tx *gorm.DB, cutoff time.Time) (int64, error)
}

type requestRepository struct {
	db *gorm.DB
}

// NewRequestRepository builds a notification request repository.
func NewRequestRepository(db *gorm.DB) RequestRepository {
	return &requestRepository{db: db}
}

func (r *requestRepository) WithTx(tx *gorm.DB) RequestRepository {
	if tx == nil {
		return r
	}
	return &requestRepository{db: tx}
}

func (r *requestRepository) Create(ctx context.Context, request *models.NotificationRequest) error {
	return r.db.WithContext(ctx).Create(request).Error
}

// ListEligible returns pending requests whose scheduled date has arrived.
// A null scheduled_for means "send at the next processing pass".
func (r *requestRepository) ListEligible(ctx context.Context, asOf time.Time, limit int) ([]models.NotificationRequest, error) {
	var requests []models.NotificationRequest
	query := r.db.WithContext(ctx).
		Where("status = ?", enums.NotificationStatusPending).
		Where("scheduled_for IS NULL OR scheduled_for <= ?", asOf).
		Order("created_at ASC")
	if limit > 0 {
		query = query.Limit(limit)
	}
	if err := query.Find(&requests).Error; err != nil {
		return nil, err
	}
	return requests, nil
}

func (r *requestRepository) MarkSent(ctx context.Context, id uuid.UUID, at time.Time) error {
	return r.db.WithContext(ctx).
		Model(&models.NotificationRequest{}).
		Where("id = ? AND status = ?", id, enums.NotificationStatusPending).
		Updates(map[string]any{
			"status":  enums.NotificationStatusSent,
			"sent_at": at,
		}).Error
}

func (r *requestRepository) MarkFailed(ctx context.Context, id uuid.UUID) error {
	return r.db.WithContext(ctx).
		Model(&models.NotificationRequest{}).
		Where("id = ? AND status = ?", id, enums.NotificationStatusPending).
		UpdateColumn("status", enums.NotificationStatusFailed).Error
}

// DeleteOlderThan removes delivered and failed requests created before the
// cutoff. Pending requests are kept regardless of age.
func (r *requestRepository) DeleteOlderThan(ctx context.Context, tx *gorm.DB, cutoff time.Time) (int64, error) {
	conn := r.db
	if tx != nil {
		conn = tx
	}
	result := conn.WithContext(ctx).
		Where("status <> ? AND created_at < ?", enums.NotificationStatusPending, cutoff).
		Delete(&models.NotificationRequest{})
	return result.RowsAffected, result.Error
}

// ConfigRepository reads the operator-managed notification settings. Reads
// go to the database every time so a frequency change takes effect on the
// next scheduling decision, never from a process-lifetime cache.
type ConfigRepository interface {
	FindActive(ctx context.Context, channel string) (*models.NotificationConfig, error)
}

type configRepository struct {
	db *gorm.DB
}

// NewConfigRepository builds a read-only notification config repository.
func NewConfigRepository(db *gorm.DB) ConfigRepository {
	return &configRepository{db: db}
}

func (r *configRepository) FindActive(ctx context.Context, channel string) (*models.NotificationConfig, error) {
	var cfg models.NotificationConfig
	err := r.db.WithContext(ctx).
		Where("channel = ? AND active = ?", channel, true).
		First(&cfg).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &cfg, nil
}
