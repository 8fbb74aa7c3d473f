package catalog

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/stocksentry/stocksentry-backend/pkg/db/models"
	"github.com/stocksentry/stocksentry-backend/pkg/logger"
)

// Repository reads the platform-owned product catalog.
type Repository interface {
	FindProduct(ctx context.Context, id uuid.UUID) (*models.Product, error)
	FindVariant(ctx context.Context, id uuid.UUID) (*models.ProductVariant, error)
}

type repository struct {
	db *gorm.DB
}

// NewRepository builds a read-only catalog repository.
func NewRepository(db *gorm.DB) Repository {
	return &repository{db: db}
}

func (r *repository) FindProduct(ctx context.Context, id uuid.UUID) (*models.Product, error) {
	var product models.Product
	if err := r.db.WithContext(ctx).Where("id = ?", id).First(&product).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &product, nil
}

func (r *repository) FindVariant(ctx context.Context, id uuid.UUID) (*models.ProductVariant, error) {
	var variant models.ProductVariant
	if err := r.db.WithContext(ctx).Where("id = ?", id).First(&variant).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &variant, nil
}

// Resolver turns a product reference into a display label. The label is
// never empty: unknown references fall back to an identifier placeholder
// so a half-deleted catalog cannot block notifications or reporting.
type Resolver struct {
	repo Repository
	logg *logger.Logger
}

// NewResolver wires a label resolver over the catalog repository.
func NewResolver(repo Repository, logg *logger.Logger) *Resolver {
	return &Resolver{repo: repo, logg: logg}
}

// Label resolves the display label for the referenced product or variant.
// Variants render as "<product name> (<attr>, <attr>, ...)"; attribute
// order is whatever the catalog stored, the values are an unordered
// multiset.
func (r *Resolver) Label(ctx context.Context, ref models.ProductRef) string {
	if ref.VariantID != nil {
		return r.variantLabel(ctx, *ref.VariantID)
	}
	if ref.ProductID != nil {
		return r.productLabel(ctx, *ref.ProductID)
	}
	return placeholder(uuid.Nil)
}

func (r *Resolver) productLabel(ctx context.Context, id uuid.UUID) string {
	product, err := r.repo.FindProduct(ctx, id)
	if err != nil {
		r.logg.Error(ctx, "catalog lookup failed for product label", err)
		return placeholder(id)
	}
	if product == nil || strings.TrimSpace(product.Name) == "" {
		return placeholder(id)
	}
	return product.Name
}

func (r *Resolver) variantLabel(ctx context.Context, id uuid.UUID) string {
	variant, err := r.repo.FindVariant(ctx, id)
	if err != nil {
		r.logg.Error(ctx, "catalog lookup failed for variant label", err)
		return placeholder(id)
	}
	if variant == nil {
		return placeholder(id)
	}

	base := r.productLabel(ctx, variant.ProductID)
	values := make([]string, 0, len(variant.AttributeValues))
	for _, v := range variant.AttributeValues {
		if trimmed := strings.TrimSpace(v); trimmed != "" {
			values = append(values, trimmed)
		}
	}
	if len(values) == 0 {
		return base
	}
	return fmt.Sprintf("%s (%s)", base, strings.Join(values, ", "))
}

func placeholder(id uuid.UUID) string {
	return fmt.Sprintf("item %s", id)
}
