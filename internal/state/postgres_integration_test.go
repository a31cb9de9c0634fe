//go:build integration

package state

import (
	"context"
	"testing"

	"github.com/stretchr/testify/suite"

	"tracechain/pkg/platform/sentinel"
	"tracechain/pkg/testutil/containers"
)

type PostgresStoreSuite struct {
	suite.Suite
	store *PostgresStore
	ctx   context.Context
}

func TestPostgresStoreSuite(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping integration test in short mode")
	}
	suite.Run(t, new(PostgresStoreSuite))
}

func (s *PostgresStoreSuite) SetupSuite() {
	s.ctx = context.Background()
	pg := containers.NewPostgresContainer(s.T())

	store, err := NewPostgresStore(s.ctx, pg.DSN)
	s.Require().NoError(err)
	s.store = store
}

func (s *PostgresStoreSuite) TearDownSuite() {
	if s.store != nil {
		s.store.Close()
	}
}

func (s *PostgresStoreSuite) TestSetAndGet() {
	s.Require().NoError(s.store.Set(s.ctx, map[string][]byte{"pg-aa": []byte("one")}))

	entries, err := s.store.Get(s.ctx, []string{"pg-aa", "pg-missing"})
	s.Require().NoError(err)
	s.Equal([]byte("one"), entries["pg-aa"])
	_, ok := entries["pg-missing"]
	s.False(ok)
}

func (s *PostgresStoreSuite) TestSetConflictsOnExistingAddress() {
	s.Require().NoError(s.store.Set(s.ctx, map[string][]byte{"pg-bb": []byte("first")}))

	err := s.store.Set(s.ctx, map[string][]byte{"pg-bb": []byte("second")})
	s.Require().ErrorIs(err, sentinel.ErrConflict)

	entries, err := s.store.Get(s.ctx, []string{"pg-bb"})
	s.Require().NoError(err)
	s.Equal([]byte("first"), entries["pg-bb"])
}

func (s *PostgresStoreSuite) TestRunInTxCommitsAtomically() {
	err := s.store.RunInTx(s.ctx, func(ctx context.Context) error {
		entries, err := s.store.Get(ctx, []string{"pg-cc"})
		if err != nil {
			return err
		}
		if _, ok := entries["pg-cc"]; ok {
			return sentinel.ErrConflict
		}
		return s.store.Set(ctx, map[string][]byte{"pg-cc": []byte("committed")})
	})
	s.Require().NoError(err)

	entries, err := s.store.Get(s.ctx, []string{"pg-cc"})
	s.Require().NoError(err)
	s.Equal([]byte("committed"), entries["pg-cc"])
}

func (s *PostgresStoreSuite) TestRunInTxRollsBackOnError() {
	err := s.store.RunInTx(s.ctx, func(ctx context.Context) error {
		if err := s.store.Set(ctx, map[string][]byte{"pg-dd": []byte("doomed")}); err != nil {
			return err
		}
		return sentinel.ErrConflict
	})
	s.Require().ErrorIs(err, sentinel.ErrConflict)

	entries, err := s.store.Get(s.ctx, []string{"pg-dd"})
	s.Require().NoError(err)
	_, ok := entries["pg-dd"]
	s.False(ok, "rolled-back write must not be visible")
}
