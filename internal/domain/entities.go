// Package domain holds the persisted registry records and their closed enums.
// Records are immutable once committed; no operation edits or deletes them.
package domain

// SystemAdmin is the singleton identity allowed to create type definitions.
// It is written once at bootstrap and only ever read afterwards.
type SystemAdmin struct {
	PublicKey string `json:"publicKey"`
	Timestamp int64  `json:"timestamp"`
}

// TaskType represents a task or role an operator may hold.
type TaskType struct {
	ID   string `json:"id"`
	Role string `json:"role"`
}

// DerivedProduct declares that the owning ProductType can be transformed into
// another ProductType at the given yield ratio.
type DerivedProduct struct {
	ProductTypeID  string  `json:"derivedProductType"`
	ConversionRate float64 `json:"conversionRate"`
}

// ProductType describes a product category and its legal derivations.
// DerivedProducts is ordered as submitted; no cycle check is performed on the
// derivation graph.
type ProductType struct {
	ID              string           `json:"id"`
	Name            string           `json:"name"`
	Description     string           `json:"description"`
	Measure         UnitOfMeasure    `json:"measure"`
	DerivedProducts []DerivedProduct `json:"derivedProducts"`
}

// Derives reports whether the product type declares the given product type id
// as one of its derivation targets.
func (p ProductType) Derives(productTypeID string) bool {
	for _, dp := range p.DerivedProducts {
		if dp.ProductTypeID == productTypeID {
			return true
		}
	}
	return false
}

// EventParameterType names a reusable, typed event parameter.
type EventParameterType struct {
	ID   string   `json:"id"`
	Name string   `json:"name"`
	Kind TypeKind `json:"type"`
}

// EventType describes a recordable event, who may record it, which product
// types it applies to, and, for transformations, what it may yield.
//
// Invariant: DerivedProductTypes is non-empty iff Typology is transformation.
type EventType struct {
	ID                  string        `json:"id"`
	Typology            EventTypology `json:"typology"`
	Name                string        `json:"name"`
	Description         string        `json:"description"`
	Parameters          []string      `json:"parameters"`
	EnabledTaskTypes    []string      `json:"enabledTaskTypes"`
	EnabledProductTypes []string      `json:"enabledProductTypes"`
	DerivedProductTypes []string      `json:"derivedProductTypes"`
}

// PropertyType names a free-form, typed property recordable against a batch.
type PropertyType struct {
	ID                  string   `json:"id"`
	Name                string   `json:"name"`
	Kind                TypeKind `json:"type"`
	EnabledTaskTypes    []string `json:"enabledTaskTypes"`
	EnabledProductTypes []string `json:"enabledProductTypes"`
}
