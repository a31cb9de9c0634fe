// Package addressing derives deterministic state addresses for registry
// records. The layout follows the ledger's convention: a 6-hex-char namespace
// prefix, a 2-hex-char entity-kind prefix, then 62 hex chars of the hashed id,
// 70 chars in total. Hashing makes the mapping injective per kind for all
// practical purposes while keeping addresses fixed-width.
package addressing

import (
	"encoding/hex"
	"strings"

	"golang.org/x/crypto/blake2b"
)

// Kind identifies the entity kind an address belongs to.
type Kind string

const (
	KindSystemAdmin        Kind = "system-admin"
	KindTaskType           Kind = "task-type"
	KindProductType        Kind = "product-type"
	KindEventParameterType Kind = "event-parameter-type"
	KindEventType          Kind = "event-type"
	KindPropertyType       Kind = "property-type"
)

// kindPrefixes assigns each entity kind its own two-char prefix so the key
// spaces of the registries never collide.
var kindPrefixes = map[Kind]string{
	KindSystemAdmin:        "00",
	KindTaskType:           "01",
	KindProductType:        "02",
	KindEventParameterType: "03",
	KindEventType:          "04",
	KindPropertyType:       "05",
}

// Namespace is the 6-hex-char prefix reserved for this registry's state.
var Namespace = hashHex("tracechain")[:6]

// For derives the state address of the record with the given kind and id.
// The same (kind, id) pair always yields the same address.
func For(kind Kind, id string) string {
	return Namespace + kindPrefixes[kind] + hashHex(id)[:62]
}

// SystemAdmin returns the fixed singleton address of the SystemAdmin record.
func SystemAdmin() string {
	return Namespace + kindPrefixes[KindSystemAdmin] + strings.Repeat("0", 62)
}

// String returns the kind name for error messages and audit events.
func (k Kind) String() string {
	return string(k)
}

func hashHex(s string) string {
	sum := blake2b.Sum256([]byte(s))
	return hex.EncodeToString(sum[:])
}
