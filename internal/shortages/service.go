package shortages

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/stocksentry/stocksentry-backend/pkg/db/models"
	"github.com/stocksentry/stocksentry-backend/pkg/enums"
	pkgerrors "github.com/stocksentry/stocksentry-backend/pkg/errors"
	"github.com/stocksentry/stocksentry-backend/pkg/logger"
)

// LabelResolver resolves the display label for a product reference.
type LabelResolver interface {
	Label(ctx context.Context, ref models.ProductRef) string
}

// StockReader reads the ledger's current level for a product reference.
type StockReader interface {
	FindByRef(ctx context.Context, ref models.ProductRef) (*models.StockLevel, error)
}

// Service defines shortage read/registration operations for reporting and
// purchasing staff.
type Service interface {
	Register(ctx context.Context, shortageID uuid.UUID) error
	ListOpen(ctx context.Context) ([]OpenShortage, error)
}

// OpenShortage is the reporting row for one non-resolved shortage.
type OpenShortage struct {
	ID             uuid.UUID           `json:"id"`
	Label          string              `json:"label"`
	State          enums.ShortageState `json:"state"`
	ShortfallQty   int                 `json:"shortfall_qty"`
	ClaimedQty     int                 `json:"claimed_qty"`
	CurrentQty     int                 `json:"current_qty"`
	RecommendedQty int                 `json:"recommended_qty"`
	DetectedAt     time.Time           `json:"detected_at"`
}

type service struct {
	repo   Repository
	stock  StockReader
	labels LabelResolver
	logg   *logger.Logger
}

// NewService wires shortage reporting dependencies.
func NewService(repo Repository, stock StockReader, labels LabelResolver, logg *logger.Logger) (Service, error) {
	if repo == nil {
		return nil, pkgerrors.New(pkgerrors.CodeDependency, "shortages repository required")
	}
	if stock == nil {
		return nil, pkgerrors.New(pkgerrors.CodeDependency, "stock reader required")
	}
	if labels == nil {
		return nil, pkgerrors.New(pkgerrors.CodeDependency, "label resolver required")
	}
	if logg == nil {
		return nil, pkgerrors.New(pkgerrors.CodeDependency, "logger required")
	}
	return &service{repo: repo, stock: stock, labels: labels, logg: logg}, nil
}

// Register acknowledges a detected shortage. Re-registering is a no-op;
// any other source state is a state conflict.
func (s *service) Register(ctx context.Context, shortageID uuid.UUID) error {
	if shortageID == uuid.Nil {
		return pkgerrors.New(pkgerrors.CodeValidation, "shortage id required")
	}

	shortage, err := s.repo.FindByID(ctx, shortageID)
	if err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load shortage")
	}
	if shortage == nil {
		return pkgerrors.New(pkgerrors.CodeNotFound, "shortage not found")
	}

	switch shortage.State {
	case enums.ShortageStateRegistered:
		return nil
	case enums.ShortageStateDetected:
		updated, err := s.repo.UpdateState(ctx, shortageID, enums.ShortageStateDetected, enums.ShortageStateRegistered)
		if err != nil {
			return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "register shortage")
		}
		if !updated {
			return pkgerrors.New(pkgerrors.CodeConflict, "shortage changed state concurrently")
		}
		return nil
	default:
		return pkgerrors.New(pkgerrors.CodeStateConflict, "only detected shortages can be registered").
			WithDetails(map[string]any{"state": shortage.State})
	}
}

// ListOpen returns every non-resolved shortage with its display label,
// current stock and recommended replenishment quantity. A missing stock
// row degrades that one entry instead of failing the whole report.
func (s *service) ListOpen(ctx context.Context) ([]OpenShortage, error) {
	shortages, err := s.repo.ListActive(ctx)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "list active shortages")
	}

	rows := make([]OpenShortage, 0, len(shortages))
	for i := range shortages {
		shortage := &shortages[i]
		row := OpenShortage{
			ID:           shortage.ID,
			Label:        s.labels.Label(ctx, shortage.Ref()),
			State:        shortage.State,
			ShortfallQty: shortage.ShortfallQty,
			ClaimedQty:   shortage.ClaimedQty,
			DetectedAt:   shortage.DetectedAt,
		}

		level, err := s.stock.FindByRef(ctx, shortage.Ref())
		if err != nil {
			levelCtx := s.logg.WithShortageID(ctx, shortage.ID.String())
			s.logg.Error(levelCtx, "stock lookup failed for open shortage", err)
		} else if level != nil {
			row.CurrentQty = level.Quantity
			row.RecommendedQty = RecommendedOrderQty(level.Quantity, level.MinQuantity, level.MaxQuantity)
		}

		rows = append(rows, row)
	}
	return rows, nil
}

// RecommendedOrderQty computes the suggested replenishment quantity: fill
// up to the maximum when one is configured above the minimum, otherwise
// target twice the minimum.
func RecommendedOrderQty(current, minimum, maximum int) int {
	target := 2 * minimum
	if maximum > minimum {
		target = maximum
	}
	if target <= current {
		return 0
	}
	return target - current
}
