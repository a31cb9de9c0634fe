package registry

import (
	"context"

	"tracechain/internal/addressing"
	"tracechain/internal/codec"
	dErrors "tracechain/pkg/domain-errors"
)

// stateView is the result of an operation's single batched read. Every guard
// and resolver decision is made against this one snapshot; no guard reads the
// store again.
type stateView map[string][]byte

// readView performs the operation's one batched read. Duplicate addresses are
// collapsed; absent addresses are simply missing from the view.
func (s *Service) readView(ctx context.Context, addresses []string) (stateView, error) {
	seen := make(map[string]struct{}, len(addresses))
	unique := make([]string, 0, len(addresses))
	for _, addr := range addresses {
		if _, ok := seen[addr]; ok {
			continue
		}
		seen[addr] = struct{}{}
		unique = append(unique, addr)
	}
	entries, err := s.store.Get(ctx, unique)
	if err != nil {
		return nil, dErrors.Wrap(err, dErrors.CodeInternal, "read state")
	}
	return stateView(entries), nil
}

func (v stateView) present(address string) bool {
	data, ok := v[address]
	return ok && len(data) > 0
}

// requireSystemAdmin confirms the request signer matches the committed System
// Administrator record. Applied identically before any mutating operation.
func requireSystemAdmin(view stateView, signer string) error {
	data, ok := view[addressing.SystemAdmin()]
	if !ok || len(data) == 0 {
		return dErrors.New(dErrors.CodeUnauthorized, "system administrator is not bootstrapped")
	}
	admin, err := codec.DecodeSystemAdmin(data)
	if err != nil {
		return err
	}
	if signer == "" || signer != admin.PublicKey {
		return dErrors.Newf(dErrors.CodeUnauthorized,
			"signer is not the system administrator %s", admin.PublicKey)
	}
	return nil
}

// requireUnused confirms the target address is absent. Together with the
// transaction boundary this guarantees at-most-one creation per id.
func requireUnused(view stateView, address, id string) error {
	if view.present(address) {
		return dErrors.Newf(dErrors.CodeConflict, "id %q is already committed", id)
	}
	return nil
}

// requireReference confirms a cited foreign id denotes an entity of the
// expected kind that was already committed. Forward references are rejected.
func requireReference(view stateView, kind addressing.Kind, id, field string) error {
	if !view.present(addressing.For(kind, id)) {
		return dErrors.Newf(dErrors.CodeReference,
			"%s: %s %q does not exist", field, kind, id)
	}
	return nil
}

// requireReferences resolves every id in order, failing on the first miss.
func requireReferences(view stateView, kind addressing.Kind, ids []string, field string) error {
	for _, id := range ids {
		if err := requireReference(view, kind, id, field); err != nil {
			return err
		}
	}
	return nil
}
