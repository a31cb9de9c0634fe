package replay

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/suite"

	"tracechain/pkg/platform/sentinel"
)

type InMemoryGuardSuite struct {
	suite.Suite
	guard *InMemoryGuard
	ctx   context.Context
}

func TestInMemoryGuardSuite(t *testing.T) {
	suite.Run(t, new(InMemoryGuardSuite))
}

func (s *InMemoryGuardSuite) SetupTest() {
	s.guard = NewInMemoryGuard()
	s.ctx = context.Background()
}

func (s *InMemoryGuardSuite) TestMarkSeen() {
	s.Run("accepts a fresh id and rejects its resubmission", func() {
		s.Require().NoError(s.guard.MarkSeen(s.ctx, "tx-1", time.Minute))
		s.Require().ErrorIs(s.guard.MarkSeen(s.ctx, "tx-1", time.Minute), sentinel.ErrAlreadySeen)
	})

	s.Run("treats distinct ids independently", func() {
		s.Require().NoError(s.guard.MarkSeen(s.ctx, "tx-a", time.Minute))
		s.Require().NoError(s.guard.MarkSeen(s.ctx, "tx-b", time.Minute))
	})

	s.Run("ignores empty ids", func() {
		s.Require().NoError(s.guard.MarkSeen(s.ctx, "", time.Minute))
		s.Require().NoError(s.guard.MarkSeen(s.ctx, "", time.Minute))
	})

	s.Run("forgets an id after its retention window", func() {
		s.Require().NoError(s.guard.MarkSeen(s.ctx, "tx-short", time.Millisecond))
		time.Sleep(5 * time.Millisecond)
		s.Require().NoError(s.guard.MarkSeen(s.ctx, "tx-short", time.Minute))
	})
}
