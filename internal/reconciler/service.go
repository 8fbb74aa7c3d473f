package reconciler

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"go.uber.org/multierr"
	"gorm.io/gorm"

	"github.com/stocksentry/stocksentry-backend/internal/shortages"
	"github.com/stocksentry/stocksentry-backend/pkg/db/models"
	"github.com/stocksentry/stocksentry-backend/pkg/enums"
	pkgerrors "github.com/stocksentry/stocksentry-backend/pkg/errors"
	"github.com/stocksentry/stocksentry-backend/pkg/logger"
	"github.com/stocksentry/stocksentry-backend/pkg/validate"
)

const defaultMaxLineQuantity = 1000000

// LineInserted is the order collaborator's event for a new replenishment
// order line.
type LineInserted struct {
	OrderID   uuid.UUID  `json:"order_id" validate:"required"`
	ProductID *uuid.UUID `json:"product_id" validate:"required_without=VariantID,excluded_with=VariantID"`
	VariantID *uuid.UUID `json:"variant_id"`
	Quantity  int        `json:"quantity" validate:"gt=0"`
}

// Ref returns the line's product reference.
func (e LineInserted) Ref() models.ProductRef {
	return models.ProductRef{ProductID: e.ProductID, VariantID: e.VariantID}
}

// StatusChanged is the order collaborator's status transition event.
// Transitions for the same order arrive serialized; that ordering is the
// collaborator's contract, not enforced here.
type StatusChanged struct {
	OrderID   uuid.UUID `json:"order_id" validate:"required"`
	OldStatus string    `json:"old_status"`
	NewStatus string    `json:"new_status" validate:"required"`
}

// Service reconciles shortage claims against replenishment order events.
type Service interface {
	ApplyLineInsert(ctx context.Context, tx *gorm.DB, event LineInserted) error
	ApplyStatusChange(ctx context.Context, tx *gorm.DB, event StatusChanged) error
}

type service struct {
	repo       shortages.Repository
	logg       *logger.Logger
	maxLineQty int
}

// NewService wires reconciler dependencies. maxLineQty bounds the sanity
// ceiling for line quantities; zero falls back to the default.
func NewService(repo shortages.Repository, logg *logger.Logger, maxLineQty int) (Service, error) {
	if repo == nil {
		return nil, pkgerrors.New(pkgerrors.CodeDependency, "shortages repository required")
	}
	if logg == nil {
		return nil, pkgerrors.New(pkgerrors.CodeDependency, "logger required")
	}
	if maxLineQty <= 0 {
		maxLineQty = defaultMaxLineQuantity
	}
	return &service{repo: repo, logg: logg, maxLineQty: maxLineQty}, nil
}

// ApplyLineInsert adds the line's quantity to the claim of every claimable
// shortage matching the line's reference and recomputes their state. The
// inserting transaction is joined so claims and the line commit together.
func (s *service) ApplyLineInsert(ctx context.Context, tx *gorm.DB, event LineInserted) error {
	if err := validate.Struct(event); err != nil {
		return err
	}
	if event.Quantity > s.maxLineQty {
		return pkgerrors.New(pkgerrors.CodeValidation, "line quantity exceeds sanity ceiling").
			WithDetails(map[string]any{"quantity": event.Quantity, "ceiling": s.maxLineQty})
	}

	repo := s.repo.WithTx(tx)
	claimable, err := repo.FindClaimableByRef(ctx, event.Ref())
	if err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "find claimable shortages")
	}
	if len(claimable) == 0 {
		return nil
	}

	// State depends on each row's shortfall, so claims branch per row.
	var errs error
	for i := range claimable {
		shortage := &claimable[i]
		claimed := shortage.ClaimedQty + event.Quantity
		next := shortages.StateForClaim(claimed, shortage.ShortfallQty)
		if err := repo.UpdateClaim(ctx, shortage.ID, claimed, next, event.OrderID); err != nil {
			errs = multierr.Append(errs, fmt.Errorf("claim shortage %s: %w", shortage.ID, err))
		}
	}
	if errs != nil {
		return pkgerrors.Wrap(pkgerrors.CodeDependency, errs, "apply line claims")
	}

	lineCtx := s.logg.WithFields(ctx, map[string]any{
		"order_id":         event.OrderID.String(),
		"claimed_quantity": event.Quantity,
		"shortages":        len(claimable),
	})
	s.logg.Info(lineCtx, "order line claimed shortages")
	return nil
}

// ApplyStatusChange advances, resets or resolves every shortage linked to
// the order. Unknown statuses are a collaborator problem: logged, dropped,
// and never allowed to block other events.
func (s *service) ApplyStatusChange(ctx context.Context, tx *gorm.DB, event StatusChanged) error {
	if err := validate.Struct(event); err != nil {
		return err
	}

	status, err := enums.ParseReplenishmentOrderStatus(event.NewStatus)
	if err != nil {
		statusCtx := s.logg.WithOrderID(ctx, event.OrderID.String())
		s.logg.Warn(statusCtx, "dropping order status event with unknown status "+event.NewStatus)
		return nil
	}

	repo := s.repo.WithTx(tx)
	var rows int64
	switch status {
	case enums.ReplenishmentOrderStatusCancelled:
		rows, err = repo.ResetByLinkedOrder(ctx, event.OrderID)
	case enums.ReplenishmentOrderStatusCompleted:
		rows, err = repo.ResolveByLinkedOrder(ctx, event.OrderID)
	case enums.ReplenishmentOrderStatusGenerated:
		rows, err = repo.AdvanceByLinkedOrder(ctx, event.OrderID, shortages.OrderGeneratedSources(), enums.ShortageStateOrderGenerated)
	case enums.ReplenishmentOrderStatusInTransit:
		rows, err = repo.AdvanceByLinkedOrder(ctx, event.OrderID, shortages.InTransitSources(), enums.ShortageStateInTransit)
	default:
		return nil
	}
	if err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeDependency, err, fmt.Sprintf("apply order status %s", status))
	}

	statusCtx := s.logg.WithFields(ctx, map[string]any{
		"order_id": event.OrderID.String(),
		"status":   status,
		"rows":     rows,
	})
	s.logg.Info(statusCtx, "order status reconciled")
	return nil
}
