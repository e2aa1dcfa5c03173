package service

import (
	"context"
	"fmt"
	"strings"

	"github.com/dom/league-ledger/internal/domain"
	"github.com/dom/league-ledger/internal/events"
	"github.com/dom/league-ledger/internal/repository"
	"github.com/google/uuid"
)

type LeagueService struct {
	repos   *repository.Repositories
	emitter *eventEmitter
}

func NewLeagueService(repos *repository.Repositories, emitter *eventEmitter) *LeagueService {
	return &LeagueService{repos: repos, emitter: emitter}
}

type CreateLeagueInput struct {
	Name        string
	Description string
	NumRounds   *int
}

type UpdateLeagueInput struct {
	Name              *string
	Description       *string
	NumRounds         *int
	DraftStarted      *bool
	CurrentPickNumber *int
}

type TeamInput struct {
	Name    string
	Icon    string
	Color   string
	BgColor string
}

func (s *LeagueService) List(ctx context.Context) ([]*domain.League, error) {
	return s.repos.League.List(ctx)
}

func (s *LeagueService) Get(ctx context.Context, id uuid.UUID, includeRelations bool) (*domain.League, error) {
	var (
		league *domain.League
		err    error
	)
	if includeRelations {
		league, err = s.repos.League.GetWithRelations(ctx, id)
	} else {
		league, err = s.repos.League.GetByID(ctx, id)
	}
	if err != nil {
		return nil, notFound(err, domain.ErrLeagueNotFound)
	}
	return league, nil
}

func (s *LeagueService) Create(ctx context.Context, input CreateLeagueInput) (*domain.League, error) {
	name := strings.TrimSpace(input.Name)
	if name == "" {
		return nil, fmt.Errorf("%w: league name is required", domain.ErrInvalidInput)
	}

	rounds := domain.DefaultNumRounds
	if input.NumRounds != nil {
		rounds = *input.NumRounds
	}
	if rounds < 1 {
		return nil, domain.ErrInvalidNumRounds
	}

	league := &domain.League{
		ID:                uuid.New(),
		Name:              name,
		Description:       input.Description,
		NumRounds:         rounds,
		CurrentPickNumber: 1,
	}
	if err := s.repos.League.Create(ctx, league); err != nil {
		return nil, err
	}
	return league, nil
}

func (s *LeagueService) Update(ctx context.Context, id uuid.UUID, input UpdateLeagueInput) (*domain.League, error) {
	var league *domain.League

	err := s.repos.Tx.WithinTransaction(ctx, func(tx *repository.Repositories) error {
		var err error
		league, err = tx.League.GetByIDForUpdate(ctx, id)
		if err != nil {
			return notFound(err, domain.ErrLeagueNotFound)
		}

		total, err := tx.DraftPick.CountByLeague(ctx, id)
		if err != nil {
			return err
		}

		if input.Name != nil {
			name := strings.TrimSpace(*input.Name)
			if name == "" {
				return fmt.Errorf("%w: league name cannot be empty", domain.ErrInvalidInput)
			}
			league.Name = name
		}
		if input.Description != nil {
			league.Description = *input.Description
		}
		if input.NumRounds != nil && *input.NumRounds != league.NumRounds {
			if *input.NumRounds < 1 {
				return domain.ErrInvalidNumRounds
			}
			if total > 0 {
				return domain.ErrLeagueInitialized
			}
			league.NumRounds = *input.NumRounds
		}
		if input.DraftStarted != nil {
			league.DraftStarted = *input.DraftStarted
		}
		if input.CurrentPickNumber != nil {
			if err := league.SetCursor(*input.CurrentPickNumber, int(total)); err != nil {
				return fmt.Errorf("%w: must be between 1 and %d", err, total+1)
			}
		}

		return tx.League.Update(ctx, league)
	})
	if err != nil {
		return nil, err
	}
	return league, nil
}

func (s *LeagueService) Delete(ctx context.Context, id uuid.UUID) error {
	if _, err := s.repos.League.GetByID(ctx, id); err != nil {
		return notFound(err, domain.ErrLeagueNotFound)
	}
	return s.repos.League.Delete(ctx, id)
}

// Initialize creates the league's teams in the given order and lays out
// NumRounds rounds of snake-ordered picks. It runs once per league.
func (s *LeagueService) Initialize(ctx context.Context, id uuid.UUID, teams []TeamInput) (*domain.League, error) {
	if len(teams) == 0 {
		return nil, domain.ErrNoTeams
	}
	for i, t := range teams {
		if strings.TrimSpace(t.Name) == "" {
			return nil, fmt.Errorf("%w: team %d has no name", domain.ErrInvalidInput, i+1)
		}
	}

	var pickCount int
	err := s.repos.Tx.WithinTransaction(ctx, func(tx *repository.Repositories) error {
		league, err := tx.League.GetByIDForUpdate(ctx, id)
		if err != nil {
			return notFound(err, domain.ErrLeagueNotFound)
		}

		existingTeams, err := tx.Team.CountByLeague(ctx, id)
		if err != nil {
			return err
		}
		existingPicks, err := tx.DraftPick.CountByLeague(ctx, id)
		if err != nil {
			return err
		}
		if existingTeams > 0 || existingPicks > 0 {
			return domain.ErrLeagueAlreadyInitialized
		}

		created := make([]*domain.Team, len(teams))
		for i, t := range teams {
			created[i] = &domain.Team{
				ID:         uuid.New(),
				LeagueID:   id,
				Name:       strings.TrimSpace(t.Name),
				Icon:       withDefault(t.Icon, domain.DefaultTeamIcon),
				Color:      withDefault(t.Color, domain.DefaultTeamColor),
				BgColor:    withDefault(t.BgColor, domain.DefaultTeamBgColor),
				DraftOrder: i + 1,
			}
		}
		if err := tx.Team.CreateMany(ctx, created); err != nil {
			return err
		}

		slots := domain.SnakeOrder(len(created), league.NumRounds)
		picks := make([]*domain.DraftPick, len(slots))
		for i, slot := range slots {
			owner := created[slot.TeamIndex].ID
			picks[i] = &domain.DraftPick{
				ID:             uuid.New(),
				LeagueID:       id,
				PickNumber:     slot.PickNumber,
				RoundNumber:    slot.RoundNumber,
				PickInRound:    slot.PickInRound,
				OriginalTeamID: owner,
				CurrentTeamID:  owner,
			}
		}
		if err := tx.DraftPick.CreateMany(ctx, picks); err != nil {
			return err
		}
		pickCount = len(picks)

		league.CurrentPickNumber = 1
		league.DraftStarted = false
		league.DraftCompleted = false
		return tx.League.Update(ctx, league)
	})
	if err != nil {
		return nil, err
	}

	league, err := s.repos.League.GetWithRelations(ctx, id)
	if err != nil {
		return nil, err
	}

	s.emitter.emit(ctx, events.LeagueInitialized, id, map[string]int{
		"team_count": len(teams),
		"pick_count": pickCount,
	})
	return league, nil
}

func withDefault(value, fallback string) string {
	if strings.TrimSpace(value) == "" {
		return fallback
	}
	return value
}
