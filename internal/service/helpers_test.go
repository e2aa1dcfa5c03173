package service_test

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/dom/league-ledger/internal/events"
	"github.com/dom/league-ledger/internal/repository"
	"github.com/dom/league-ledger/internal/repository/postgres"
	"github.com/dom/league-ledger/internal/service"
	"github.com/dom/league-ledger/internal/testutil"
	"github.com/google/uuid"
	"github.com/jonboulle/clockwork"
)

// recorder is an events.Publisher that keeps everything it is handed.
type recorder struct {
	mu     sync.Mutex
	events []events.Event
}

func (r *recorder) Publish(_ context.Context, event events.Event) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.events = append(r.events, event)
	return nil
}

func (r *recorder) types() []events.Type {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]events.Type, len(r.events))
	for i, e := range r.events {
		out[i] = e.Type
	}
	return out
}

func (r *recorder) reset() {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.events = nil
}

type testEnv struct {
	db       *testutil.TestDB
	repos    *repository.Repositories
	services *service.Services
	clock    *clockwork.FakeClock
	events   *recorder
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()

	testDB := testutil.NewTestDB(t)
	repos := postgres.NewRepositories(testDB.DB)
	clock := clockwork.NewFakeClockAt(time.Date(2025, 4, 24, 20, 0, 0, 0, time.UTC))
	rec := &recorder{}

	return &testEnv{
		db:       testDB,
		repos:    repos,
		services: service.NewServices(repos, testutil.TestConfig(), clock, rec),
		clock:    clock,
		events:   rec,
	}
}

// reset clears the database and recorded events between subtests.
func (e *testEnv) reset(t *testing.T) {
	t.Helper()
	e.db.Truncate(t)
	e.events.reset()
}

func prospectFilter(leagueID uuid.UUID, drafted *bool) repository.ProspectFilter {
	return repository.ProspectFilter{LeagueID: &leagueID, IsDrafted: drafted}
}
