package detector

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/stocksentry/stocksentry-backend/internal/shortages"
	"github.com/stocksentry/stocksentry-backend/pkg/db"
	"github.com/stocksentry/stocksentry-backend/pkg/db/models"
	"github.com/stocksentry/stocksentry-backend/pkg/enums"
	pkgerrors "github.com/stocksentry/stocksentry-backend/pkg/errors"
	"github.com/stocksentry/stocksentry-backend/pkg/logger"
	"github.com/stocksentry/stocksentry-backend/pkg/validate"
)

// StockMutation is the stock ledger's change event. Quantities are the
// values before and after the write; minimums are carried alongside so a
// threshold edit alone can open or resolve a shortage.
type StockMutation struct {
	ProductID   *uuid.UUID `json:"product_id" validate:"required_without=VariantID,excluded_with=VariantID"`
	VariantID   *uuid.UUID `json:"variant_id"`
	OldQuantity int        `json:"old_quantity" validate:"min=0"`
	NewQuantity int        `json:"new_quantity" validate:"min=0"`
	OldMinimum  int        `json:"old_minimum" validate:"min=0"`
	NewMinimum  int        `json:"new_minimum" validate:"min=0"`
}

// Ref returns the mutation's product reference.
func (m StockMutation) Ref() models.ProductRef {
	return models.ProductRef{ProductID: m.ProductID, VariantID: m.VariantID}
}

// NotificationScheduler queues the outbound notification for a freshly
// opened shortage inside the same transaction.
type NotificationScheduler interface {
	ShortageOpened(ctx context.Context, tx *gorm.DB, shortage *models.Shortage) error
}

// Service reacts to stock ledger mutations: it opens a shortage on the
// falling edge through the minimum and resolves the active one on the
// rising edge. Level writes that stay on one side of the threshold are
// ignored.
type Service interface {
	Apply(ctx context.Context, tx *gorm.DB, mutation StockMutation) error
}

type service struct {
	repo      shortages.Repository
	scheduler NotificationScheduler
	logg      *logger.Logger
}

// NewService wires detector dependencies.
func NewService(repo shortages.Repository, scheduler NotificationScheduler, logg *logger.Logger) (Service, error) {
	if repo == nil {
		return nil, pkgerrors.New(pkgerrors.CodeDependency, "shortages repository required")
	}
	if scheduler == nil {
		return nil, pkgerrors.New(pkgerrors.CodeDependency, "notification scheduler required")
	}
	if logg == nil {
		return nil, pkgerrors.New(pkgerrors.CodeDependency, "logger required")
	}
	return &service{repo: repo, scheduler: scheduler, logg: logg}, nil
}

// Apply runs inside the transaction of the stock write that produced the
// mutation, so shortage bookkeeping and the write commit together.
func (s *service) Apply(ctx context.Context, tx *gorm.DB, mutation StockMutation) error {
	if err := validate.Struct(mutation); err != nil {
		return err
	}

	switch {
	case mutation.crossedBelow():
		return s.open(ctx, tx, mutation)
	case mutation.crossedAbove():
		return s.resolve(ctx, tx, mutation)
	default:
		return nil
	}
}

func (m StockMutation) crossedBelow() bool {
	return m.NewQuantity < m.NewMinimum && m.OldQuantity >= m.OldMinimum
}

func (m StockMutation) crossedAbove() bool {
	return m.NewQuantity >= m.NewMinimum && m.OldQuantity < m.OldMinimum
}

func (s *service) open(ctx context.Context, tx *gorm.DB, mutation StockMutation) error {
	repo := s.repo.WithTx(tx)

	existing, err := repo.FindActiveByRef(ctx, mutation.Ref())
	if err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "look up active shortage")
	}
	if existing != nil {
		// Same depletion episode: the first crossing already opened it.
		shortageCtx := s.logg.WithShortageID(ctx, existing.ID.String())
		s.logg.Info(shortageCtx, "falling edge ignored, shortage already open")
		return nil
	}

	shortage := &models.Shortage{
		ProductID:    mutation.ProductID,
		VariantID:    mutation.VariantID,
		OriginalQty:  mutation.NewQuantity,
		ShortfallQty: mutation.NewMinimum - mutation.NewQuantity,
		State:        enums.ShortageStateDetected,
	}
	if err := repo.Create(ctx, shortage); err != nil {
		if db.IsUniqueViolation(err, "") {
			// Lost the check-then-act race; the winner's row covers this episode.
			return pkgerrors.Wrap(pkgerrors.CodeConflict, err, "active shortage already exists")
		}
		return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "create shortage")
	}

	shortageCtx := s.logg.WithShortageID(ctx, shortage.ID.String())
	s.logg.Info(shortageCtx, "shortage opened")

	if err := s.scheduler.ShortageOpened(ctx, tx, shortage); err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "schedule shortage notification")
	}
	return nil
}

func (s *service) resolve(ctx context.Context, tx *gorm.DB, mutation StockMutation) error {
	rows, err := s.repo.WithTx(tx).ResolveActiveByRef(ctx, mutation.Ref())
	if err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "resolve shortage")
	}
	if rows == 0 {
		// Already resolved or never opened; rising edge is a no-op then.
		return nil
	}
	s.logg.Info(ctx, "shortage resolved on stock recovery")
	return nil
}
