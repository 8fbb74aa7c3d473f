package validate

import (
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	pkgerrors "github.com/stocksentry/stocksentry-backend/pkg/errors"
)

type testEvent struct {
	ProductID *uuid.UUID `json:"product_id" validate:"required_without=VariantID,excluded_with=VariantID"`
	VariantID *uuid.UUID `json:"variant_id"`
	Quantity  int        `json:"quantity" validate:"gt=0"`
}

func TestStructAcceptsValidPayload(t *testing.T) {
	productID := uuid.New()
	require.NoError(t, Struct(testEvent{ProductID: &productID, Quantity: 3}))

	variantID := uuid.New()
	require.NoError(t, Struct(testEvent{VariantID: &variantID, Quantity: 1}))
}

func TestStructRejectsMissingReference(t *testing.T) {
	err := Struct(testEvent{Quantity: 3})
	require.Error(t, err)

	typed := pkgerrors.As(err)
	require.NotNil(t, typed)
	assert.Equal(t, pkgerrors.CodeValidation, typed.Code())

	details, ok := typed.Details().(map[string]string)
	require.True(t, ok)
	assert.Contains(t, details, "product_id")
}

func TestStructRejectsAmbiguousReference(t *testing.T) {
	productID := uuid.New()
	variantID := uuid.New()
	err := Struct(testEvent{ProductID: &productID, VariantID: &variantID, Quantity: 3})
	require.Error(t, err)

	typed := pkgerrors.As(err)
	require.NotNil(t, typed)
	details, ok := typed.Details().(map[string]string)
	require.True(t, ok)
	assert.Contains(t, details, "product_id")
}

func TestStructRejectsNonPositiveQuantity(t *testing.T) {
	productID := uuid.New()
	err := Struct(testEvent{ProductID: &productID, Quantity: 0})
	require.Error(t, err)

	typed := pkgerrors.As(err)
	require.NotNil(t, typed)
	details, ok := typed.Details().(map[string]string)
	require.True(t, ok)
	assert.Equal(t, "must be greater than 0", details["quantity"])
}
