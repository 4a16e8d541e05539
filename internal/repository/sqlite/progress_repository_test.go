package sqlite_test

import (
	"context"
	"database/sql"
	"testing"
	"time"

	"github.com/stretchr/testify/suite"

	"github.com/anshulm/prepdeck/internal/models"
	"github.com/anshulm/prepdeck/internal/repository"
	"github.com/anshulm/prepdeck/internal/repository/sqlite"
	"github.com/anshulm/prepdeck/internal/testutil"
)

type ProgressStoreSuite struct {
	suite.Suite
	db    *sql.DB
	store repository.ProgressStore
}

func (s *ProgressStoreSuite) SetupTest() {
	s.db = testutil.NewTestDB(s.T())
	s.store = sqlite.NewProgressStore(s.db)
}

func (s *ProgressStoreSuite) TearDownTest() {
	testutil.MustClose(s.T(), s.db)
}

func (s *ProgressStoreSuite) TestGet_AbsentIsNil() {
	got, err := s.store.Get(context.Background(), "unknown")
	s.Require().NoError(err)
	s.Nil(got)
}

func (s *ProgressStoreSuite) TestUpsertTransitionsStatus() {
	ctx := context.Background()
	attempted := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)

	s.Require().NoError(s.store.Upsert(ctx, models.ProblemProgress{
		ProblemID: "two-sum", Status: models.StatusAttempted, LastAttempted: attempted,
	}))
	s.Require().NoError(s.store.Upsert(ctx, models.ProblemProgress{
		ProblemID: "two-sum", Status: models.StatusSolved, LastAttempted: attempted.AddDate(0, 0, 1),
	}))

	got, err := s.store.Get(ctx, "two-sum")
	s.Require().NoError(err)
	s.Require().NotNil(got)
	s.Equal(models.StatusSolved, got.Status)
}

func (s *ProgressStoreSuite) TestListNewestFirst() {
	ctx := context.Background()
	base := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)

	s.Require().NoError(s.store.Upsert(ctx, models.ProblemProgress{ProblemID: "old", Status: models.StatusAttempted, LastAttempted: base}))
	s.Require().NoError(s.store.Upsert(ctx, models.ProblemProgress{ProblemID: "new", Status: models.StatusSolved, LastAttempted: base.AddDate(0, 0, 2)}))

	list, err := s.store.List(ctx)
	s.Require().NoError(err)
	s.Require().Len(list, 2)
	s.Equal("new", list[0].ProblemID)
}

func TestProgressStoreSuite(t *testing.T) {
	suite.Run(t, new(ProgressStoreSuite))
}
