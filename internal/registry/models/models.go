// Package models defines the creation payloads accepted by the registry
// service, with their structural validation. Referential and consistency
// checks need state and live in the service; everything checkable from the
// payload alone is checked here.
package models

import (
	"tracechain/internal/domain"
	dErrors "tracechain/pkg/domain-errors"
)

// CreateTaskType is the payload for a TaskType creation.
type CreateTaskType struct {
	ID   string `json:"id"`
	Role string `json:"role"`
}

// Validate checks the payload's own shape.
func (p CreateTaskType) Validate() error {
	if p.ID == "" {
		return dErrors.New(dErrors.CodeValidation, "id is required")
	}
	if p.Role == "" {
		return dErrors.New(dErrors.CodeValidation, "role is required")
	}
	return nil
}

// CreateProductType is the payload for a ProductType creation.
type CreateProductType struct {
	ID              string                  `json:"id"`
	Name            string                  `json:"name"`
	Description     string                  `json:"description"`
	Measure         domain.UnitOfMeasure    `json:"measure"`
	DerivedProducts []domain.DerivedProduct `json:"derivedProducts"`
}

// Validate checks the payload's own shape. Conversion rates must be strictly
// positive; whether the derived ids exist is the service's concern.
func (p CreateProductType) Validate() error {
	if p.ID == "" {
		return dErrors.New(dErrors.CodeValidation, "id is required")
	}
	if p.Name == "" {
		return dErrors.New(dErrors.CodeValidation, "name is required")
	}
	if p.Description == "" {
		return dErrors.New(dErrors.CodeValidation, "description is required")
	}
	if !p.Measure.IsValid() {
		return dErrors.Newf(dErrors.CodeValidation, "invalid unit of measure %q", string(p.Measure))
	}
	for _, dp := range p.DerivedProducts {
		if dp.ProductTypeID == "" {
			return dErrors.New(dErrors.CodeValidation, "derivedProducts entries require a derivedProductType id")
		}
		if dp.ConversionRate <= 0 {
			return dErrors.Newf(dErrors.CodeValidation,
				"conversion rate for derived product type %q must be strictly positive, got %v",
				dp.ProductTypeID, dp.ConversionRate)
		}
	}
	return nil
}

// CreateEventParameterType is the payload for an EventParameterType creation.
type CreateEventParameterType struct {
	ID   string          `json:"id"`
	Name string          `json:"name"`
	Kind domain.TypeKind `json:"type"`
}

// Validate checks the payload's own shape.
func (p CreateEventParameterType) Validate() error {
	if p.ID == "" {
		return dErrors.New(dErrors.CodeValidation, "id is required")
	}
	if p.Name == "" {
		return dErrors.New(dErrors.CodeValidation, "name is required")
	}
	if !p.Kind.IsValid() {
		return dErrors.Newf(dErrors.CodeValidation, "invalid type %q", string(p.Kind))
	}
	return nil
}

// CreateEventType is the payload for an EventType creation.
type CreateEventType struct {
	ID                  string               `json:"id"`
	Typology            domain.EventTypology `json:"typology"`
	Name                string               `json:"name"`
	Description         string               `json:"description"`
	Parameters          []string             `json:"parameters"`
	EnabledTaskTypes    []string             `json:"enabledTaskTypes"`
	EnabledProductTypes []string             `json:"enabledProductTypes"`
	DerivedProductTypes []string             `json:"derivedProductTypes"`
}

// Validate checks the payload's own shape. The typology/derivation pairing is
// a consistency rule, not a structural one, and is enforced by the service.
func (p CreateEventType) Validate() error {
	if p.ID == "" {
		return dErrors.New(dErrors.CodeValidation, "id is required")
	}
	if !p.Typology.IsValid() {
		return dErrors.Newf(dErrors.CodeValidation, "invalid typology %q", string(p.Typology))
	}
	if p.Name == "" {
		return dErrors.New(dErrors.CodeValidation, "name is required")
	}
	if p.Description == "" {
		return dErrors.New(dErrors.CodeValidation, "description is required")
	}
	if len(p.EnabledTaskTypes) == 0 {
		return dErrors.New(dErrors.CodeValidation, "enabledTaskTypes must not be empty")
	}
	if len(p.EnabledProductTypes) == 0 {
		return dErrors.New(dErrors.CodeValidation, "enabledProductTypes must not be empty")
	}
	if err := requireIDs(p.Parameters, "parameters"); err != nil {
		return err
	}
	if err := requireIDs(p.EnabledTaskTypes, "enabledTaskTypes"); err != nil {
		return err
	}
	if err := requireIDs(p.EnabledProductTypes, "enabledProductTypes"); err != nil {
		return err
	}
	return requireIDs(p.DerivedProductTypes, "derivedProductTypes")
}

// CreatePropertyType is the payload for a PropertyType creation.
type CreatePropertyType struct {
	ID                  string          `json:"id"`
	Name                string          `json:"name"`
	Kind                domain.TypeKind `json:"type"`
	EnabledTaskTypes    []string        `json:"enabledTaskTypes"`
	EnabledProductTypes []string        `json:"enabledProductTypes"`
}

// Validate checks the payload's own shape.
func (p CreatePropertyType) Validate() error {
	if p.ID == "" {
		return dErrors.New(dErrors.CodeValidation, "id is required")
	}
	if p.Name == "" {
		return dErrors.New(dErrors.CodeValidation, "name is required")
	}
	if !p.Kind.IsValid() {
		return dErrors.Newf(dErrors.CodeValidation, "invalid type %q", string(p.Kind))
	}
	if len(p.EnabledTaskTypes) == 0 {
		return dErrors.New(dErrors.CodeValidation, "enabledTaskTypes must not be empty")
	}
	if len(p.EnabledProductTypes) == 0 {
		return dErrors.New(dErrors.CodeValidation, "enabledProductTypes must not be empty")
	}
	if err := requireIDs(p.EnabledTaskTypes, "enabledTaskTypes"); err != nil {
		return err
	}
	return requireIDs(p.EnabledProductTypes, "enabledProductTypes")
}

func requireIDs(ids []string, field string) error {
	for _, id := range ids {
		if id == "" {
			return dErrors.Newf(dErrors.CodeValidation, "%s entries must not be empty", field)
		}
	}
	return nil
}
