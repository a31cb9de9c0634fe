package state

import (
	"context"
	"testing"

	"github.com/stretchr/testify/suite"

	"tracechain/pkg/platform/sentinel"
)

type InMemoryStoreSuite struct {
	suite.Suite
	store *InMemoryStore
	ctx   context.Context
}

func TestInMemoryStoreSuite(t *testing.T) {
	suite.Run(t, new(InMemoryStoreSuite))
}

func (s *InMemoryStoreSuite) SetupTest() {
	s.store = NewInMemoryStore()
	s.ctx = context.Background()
}

func (s *InMemoryStoreSuite) TestGet() {
	s.Run("omits absent addresses from the result", func() {
		s.Require().NoError(s.store.Set(s.ctx, map[string][]byte{"aa": []byte("one")}))

		entries, err := s.store.Get(s.ctx, []string{"aa", "bb"})
		s.Require().NoError(err)
		s.Len(entries, 1)
		s.Equal([]byte("one"), entries["aa"])
		_, ok := entries["bb"]
		s.False(ok)
	})

	s.Run("returns copies the caller cannot corrupt", func() {
		s.Require().NoError(s.store.Set(s.ctx, map[string][]byte{"cc": []byte("data")}))

		entries, err := s.store.Get(s.ctx, []string{"cc"})
		s.Require().NoError(err)
		entries["cc"][0] = 'X'

		again, err := s.store.Get(s.ctx, []string{"cc"})
		s.Require().NoError(err)
		s.Equal([]byte("data"), again["cc"])
	})
}

func (s *InMemoryStoreSuite) TestSet() {
	s.Run("rejects overwriting a committed address", func() {
		s.Require().NoError(s.store.Set(s.ctx, map[string][]byte{"dd": []byte("first")}))

		err := s.store.Set(s.ctx, map[string][]byte{"dd": []byte("second")})
		s.Require().ErrorIs(err, sentinel.ErrConflict)

		entries, err := s.store.Get(s.ctx, []string{"dd"})
		s.Require().NoError(err)
		s.Equal([]byte("first"), entries["dd"])
	})

	s.Run("writes nothing when any entry conflicts", func() {
		s.Require().NoError(s.store.Set(s.ctx, map[string][]byte{"ee": []byte("held")}))

		err := s.store.Set(s.ctx, map[string][]byte{"ee": []byte("clash"), "ff": []byte("new")})
		s.Require().ErrorIs(err, sentinel.ErrConflict)

		entries, err := s.store.Get(s.ctx, []string{"ff"})
		s.Require().NoError(err)
		_, ok := entries["ff"]
		s.False(ok)
	})
}

func (s *InMemoryStoreSuite) TestRunInTx() {
	s.Run("runs the callback and surfaces its error", func() {
		wantErr := sentinel.ErrConflict
		err := s.store.RunInTx(s.ctx, func(ctx context.Context) error {
			return wantErr
		})
		s.Require().ErrorIs(err, wantErr)
	})

	s.Run("serializes check-then-write sequences", func() {
		err := s.store.RunInTx(s.ctx, func(ctx context.Context) error {
			entries, err := s.store.Get(ctx, []string{"gg"})
			s.Require().NoError(err)
			if _, ok := entries["gg"]; ok {
				return sentinel.ErrConflict
			}
			return s.store.Set(ctx, map[string][]byte{"gg": []byte("v")})
		})
		s.Require().NoError(err)

		entries, err := s.store.Get(s.ctx, []string{"gg"})
		s.Require().NoError(err)
		s.Equal([]byte("v"), entries["gg"])
	})
}
