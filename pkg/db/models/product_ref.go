package models

import "github.com/google/uuid"

// ProductRef points at exactly one product or variant. The two references
// are mutually exclusive everywhere they appear (shortages, stock levels,
// collaborator events).
type ProductRef struct {
	ProductID *uuid.UUID
	VariantID *uuid.UUID
}

// Valid reports whether exactly one reference is set.
func (r ProductRef) Valid() bool {
	return (r.ProductID != nil) != (r.VariantID != nil)
}

// IsVariant reports whether the reference targets a variant.
func (r ProductRef) IsVariant() bool {
	return r.VariantID != nil
}

// ID returns whichever identifier is set.
func (r ProductRef) ID() uuid.UUID {
	if r.ProductID != nil {
		return *r.ProductID
	}
	if r.VariantID != nil {
		return *r.VariantID
	}
	return uuid.Nil
}

// Ref returns the shortage's product reference.
func (s *Shortage) Ref() ProductRef {
	return ProductRef{ProductID: s.ProductID, VariantID: s.VariantID}
}

// Ref returns the stock row's product reference.
func (s *StockLevel) Ref() ProductRef {
	return ProductRef{ProductID: s.ProductID, VariantID: s.VariantID}
}
