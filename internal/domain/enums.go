package domain

import dErrors "tracechain/pkg/domain-errors"

// UnitOfMeasure is the unit a ProductType is quantified in.
// Invariant: the value must be one of the supported units.
//
// Usage: construct via ParseUnitOfMeasure at trust boundaries to enforce the
// allowlist; direct casting bypasses validation.
type UnitOfMeasure string

const (
	UnitKilograms UnitOfMeasure = "kilograms"
	UnitLitres    UnitOfMeasure = "litres"
	UnitMetres    UnitOfMeasure = "metres"
	UnitUnits     UnitOfMeasure = "units"
)

// validUnits is the single source of truth for valid units of measure.
var validUnits = map[UnitOfMeasure]bool{
	UnitKilograms: true,
	UnitLitres:    true,
	UnitMetres:    true,
	UnitUnits:     true,
}

// ParseUnitOfMeasure constructs a UnitOfMeasure from external input.
//
// Errors: returns CodeValidation when the value is empty or unsupported.
func ParseUnitOfMeasure(s string) (UnitOfMeasure, error) {
	if s == "" {
		return "", dErrors.New(dErrors.CodeValidation, "unit of measure cannot be empty")
	}
	u := UnitOfMeasure(s)
	if !u.IsValid() {
		return "", dErrors.Newf(dErrors.CodeValidation, "invalid unit of measure %q", s)
	}
	return u, nil
}

// IsValid checks if the unit is one of the supported enum values.
func (u UnitOfMeasure) IsValid() bool {
	return validUnits[u]
}

// String returns the string representation of the unit.
func (u UnitOfMeasure) String() string {
	return string(u)
}

// TypeKind classifies the value carried by an event parameter or a property.
type TypeKind string

const (
	TypeKindNumber   TypeKind = "number"
	TypeKindString   TypeKind = "string"
	TypeKindBytes    TypeKind = "bytes"
	TypeKindLocation TypeKind = "location"
	TypeKindBoolean  TypeKind = "boolean"
)

var validTypeKinds = map[TypeKind]bool{
	TypeKindNumber:   true,
	TypeKindString:   true,
	TypeKindBytes:    true,
	TypeKindLocation: true,
	TypeKindBoolean:  true,
}

// ParseTypeKind constructs a TypeKind from external input.
//
// Errors: returns CodeValidation when the value is empty or unsupported.
func ParseTypeKind(s string) (TypeKind, error) {
	if s == "" {
		return "", dErrors.New(dErrors.CodeValidation, "type cannot be empty")
	}
	k := TypeKind(s)
	if !k.IsValid() {
		return "", dErrors.Newf(dErrors.CodeValidation, "invalid type %q", s)
	}
	return k, nil
}

// IsValid checks if the kind is one of the supported enum values.
func (k TypeKind) IsValid() bool {
	return validTypeKinds[k]
}

// String returns the string representation of the kind.
func (k TypeKind) String() string {
	return string(k)
}

// EventTypology classifies an EventType and governs whether derived products
// are required.
type EventTypology string

const (
	// TypologyDescription: the event describes a batch without transforming it.
	TypologyDescription EventTypology = "description"
	// TypologyTransformation: the event consumes enabled product types and
	// yields derived product types.
	TypologyTransformation EventTypology = "transformation"
)

var validTypologies = map[EventTypology]bool{
	TypologyDescription:    true,
	TypologyTransformation: true,
}

// ParseEventTypology constructs an EventTypology from external input.
//
// Errors: returns CodeValidation when the value is empty or unsupported.
func ParseEventTypology(s string) (EventTypology, error) {
	if s == "" {
		return "", dErrors.New(dErrors.CodeValidation, "typology cannot be empty")
	}
	t := EventTypology(s)
	if !t.IsValid() {
		return "", dErrors.Newf(dErrors.CodeValidation, "invalid typology %q", s)
	}
	return t, nil
}

// IsValid checks if the typology is one of the supported enum values.
func (t EventTypology) IsValid() bool {
	return validTypologies[t]
}

// String returns the string representation of the typology.
func (t EventTypology) String() string {
	return string(t)
}
