package sentinel

import "errors"

// Sentinel errors for infrastructure facts. State stores and the replay guard
// return these (optionally wrapped) so the registry service can translate them
// into coded domain errors.
//
// These represent factual states about resources, not validation failures:
// - ErrNotFound: no value committed at the requested address
// - ErrConflict: a value is already committed at the target address
// - ErrAlreadySeen: transaction id was accepted before (replay)
// - ErrUnavailable: backing store temporarily unreachable
//
// For validation failures use pkg/domain-errors directly.
var (
	ErrNotFound    = errors.New("not found")
	ErrConflict    = errors.New("conflict")
	ErrAlreadySeen = errors.New("already seen")
	ErrUnavailable = errors.New("unavailable")
)
