package service

import (
	"context"
	"errors"

	"github.com/dom/league-ledger/internal/config"
	"github.com/dom/league-ledger/internal/events"
	"github.com/dom/league-ledger/internal/repository"
	"github.com/google/uuid"
	"github.com/jonboulle/clockwork"
	"github.com/rs/zerolog/log"
	"gorm.io/gorm"
)

type Services struct {
	Auth     *AuthService
	League   *LeagueService
	Team     *TeamService
	Prospect *ProspectService
	Draft    *DraftService
	Trade    *TradeService
	Group    *GroupService
	Expense  *ExpenseService
}

func NewServices(repos *repository.Repositories, cfg *config.Config, clock clockwork.Clock, publisher events.Publisher) *Services {
	if publisher == nil {
		publisher = events.Nop{}
	}
	emitter := &eventEmitter{publisher: publisher, clock: clock}

	return &Services{
		Auth:     NewAuthService(repos.User, repos.Session, cfg, clock),
		League:   NewLeagueService(repos, emitter),
		Team:     NewTeamService(repos.Team, repos.Prospect),
		Prospect: NewProspectService(repos.Prospect, repos.League),
		Draft:    NewDraftService(repos, emitter),
		Trade:    NewTradeService(repos, clock, emitter),
		Group:    NewGroupService(repos.Group, repos.User),
		Expense:  NewExpenseService(repos.Expense, repos.User, repos.Group),
	}
}

// eventEmitter publishes league events once the mutating transaction has
// committed. Publish failures are logged and never fail the request.
type eventEmitter struct {
	publisher events.Publisher
	clock     clockwork.Clock
}

func (e *eventEmitter) emit(ctx context.Context, eventType events.Type, leagueID uuid.UUID, payload interface{}) {
	if e == nil {
		return
	}

	event, err := events.New(eventType, leagueID, e.clock.Now(), payload)
	if err != nil {
		log.Error().Err(err).Str("event_type", string(eventType)).Msg("failed to build league event")
		return
	}
	if err := e.publisher.Publish(ctx, event); err != nil {
		log.Error().
			Err(err).
			Str("event_type", string(eventType)).
			Str("league_id", leagueID.String()).
			Msg("failed to publish league event")
	}
}

// notFound swaps gorm's record-not-found for the caller's domain error.
func notFound(err error, sentinel error) error {
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return sentinel
	}
	return err
}
