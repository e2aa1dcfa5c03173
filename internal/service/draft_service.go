package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/dom/league-ledger/internal/domain"
	"github.com/dom/league-ledger/internal/events"
	"github.com/dom/league-ledger/internal/repository"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

type DraftService struct {
	repos   *repository.Repositories
	emitter *eventEmitter
}

func NewDraftService(repos *repository.Repositories, emitter *eventEmitter) *DraftService {
	return &DraftService{repos: repos, emitter: emitter}
}

type ExecuteDraftInput struct {
	LeagueID   uuid.UUID
	TeamID     uuid.UUID
	ProspectID uuid.UUID
}

type DraftResult struct {
	Prospect *domain.Prospect
	Pick     *domain.DraftPick
	League   *domain.League
}

type UndraftInput struct {
	LeagueID   uuid.UUID
	ProspectID uuid.UUID
}

type UndraftResult struct {
	Prospect *domain.Prospect
	League   *domain.League
	// Pick is the released pick, nil when no pick referenced the prospect.
	Pick *domain.DraftPick
}

// Board is the full draft state of a league.
type Board struct {
	League *domain.League      `json:"league"`
	Teams  []*domain.Team      `json:"teams"`
	Picks  []*domain.DraftPick `json:"picks"`
}

// ListPicks returns a league's picks in draft order, or the picks a team
// currently owns when teamID is given.
func (s *DraftService) ListPicks(ctx context.Context, leagueID, teamID *uuid.UUID) ([]*domain.DraftPick, error) {
	switch {
	case teamID != nil:
		return s.repos.DraftPick.ListByTeam(ctx, *teamID)
	case leagueID != nil:
		return s.repos.DraftPick.ListByLeague(ctx, *leagueID)
	default:
		return nil, fmt.Errorf("%w: league_id or team_id is required", domain.ErrInvalidInput)
	}
}

func (s *DraftService) GetPick(ctx context.Context, id uuid.UUID) (*domain.DraftPick, error) {
	pick, err := s.repos.DraftPick.GetByID(ctx, id)
	if err != nil {
		return nil, notFound(err, domain.ErrPickNotFound)
	}
	return pick, nil
}

// Current returns the pick the league's cursor points at.
func (s *DraftService) Current(ctx context.Context, leagueID uuid.UUID) (*domain.DraftPick, error) {
	league, err := s.repos.League.GetByID(ctx, leagueID)
	if err != nil {
		return nil, notFound(err, domain.ErrLeagueNotFound)
	}

	pick, err := s.repos.DraftPick.GetByNumber(ctx, leagueID, league.CurrentPickNumber)
	if err != nil {
		return nil, notFound(err, domain.ErrNoCurrentPick)
	}
	return pick, nil
}

// Execute spends the league's current pick on a prospect. The team is
// recorded as the drafter without checking that it owns the pick.
func (s *DraftService) Execute(ctx context.Context, input ExecuteDraftInput) (*DraftResult, error) {
	result := &DraftResult{}

	err := s.repos.Tx.WithinTransaction(ctx, func(tx *repository.Repositories) error {
		league, err := tx.League.GetByIDForUpdate(ctx, input.LeagueID)
		if err != nil {
			return notFound(err, domain.ErrLeagueNotFound)
		}

		prospect, err := tx.Prospect.GetByID(ctx, input.ProspectID)
		if err != nil {
			return notFound(err, domain.ErrProspectNotFound)
		}
		if prospect.LeagueID != league.ID {
			return domain.ErrProspectNotFound
		}
		if prospect.IsDrafted {
			return domain.ErrAlreadyDrafted
		}

		if _, err := tx.Team.GetInLeague(ctx, league.ID, input.TeamID); err != nil {
			return notFound(err, domain.ErrTeamNotFound)
		}

		pick, err := tx.DraftPick.GetByNumber(ctx, league.ID, league.CurrentPickNumber)
		if err != nil {
			return notFound(err, domain.ErrNoCurrentPick)
		}

		total, err := tx.DraftPick.CountByLeague(ctx, league.ID)
		if err != nil {
			return err
		}

		prospect.MarkDrafted(input.TeamID, pick.PickNumber)
		pick.Use(prospect.ID)
		league.AdvanceCursor(int(total))

		if err := tx.Prospect.Update(ctx, prospect); err != nil {
			return err
		}
		if err := tx.DraftPick.Update(ctx, pick); err != nil {
			return err
		}
		if err := tx.League.Update(ctx, league); err != nil {
			return err
		}

		result.Prospect = prospect
		result.Pick = pick
		result.League = league
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.emitter.emit(ctx, events.PickMade, result.League.ID, map[string]interface{}{
		"pick":                result.Pick,
		"prospect":            result.Prospect,
		"team_id":             input.TeamID,
		"current_pick_number": result.League.CurrentPickNumber,
	})
	if result.League.DraftCompleted {
		s.emitter.emit(ctx, events.DraftCompleted, result.League.ID, map[string]int{
			"total_picks": result.League.CurrentPickNumber - 1,
		})
	}
	return result, nil
}

// Undraft returns a drafted prospect to the pool and frees its pick. The
// cursor only moves back when the freed pick is behind it.
func (s *DraftService) Undraft(ctx context.Context, input UndraftInput) (*UndraftResult, error) {
	result := &UndraftResult{}

	err := s.repos.Tx.WithinTransaction(ctx, func(tx *repository.Repositories) error {
		league, err := tx.League.GetByIDForUpdate(ctx, input.LeagueID)
		if err != nil {
			return notFound(err, domain.ErrLeagueNotFound)
		}

		prospect, err := tx.Prospect.GetByID(ctx, input.ProspectID)
		if err != nil {
			return notFound(err, domain.ErrProspectNotFound)
		}
		if prospect.LeagueID != league.ID {
			return domain.ErrProspectNotFound
		}
		if !prospect.IsDrafted {
			return domain.ErrNotDrafted
		}

		pick, err := tx.DraftPick.GetByProspect(ctx, league.ID, prospect.ID)
		switch {
		case errors.Is(err, gorm.ErrRecordNotFound):
			pick = nil
		case err != nil:
			return err
		}

		if pick != nil {
			pick.Release()
			if err := tx.DraftPick.Update(ctx, pick); err != nil {
				return err
			}
			if league.RetreatCursor(pick.PickNumber) {
				if err := tx.League.Update(ctx, league); err != nil {
					return err
				}
			}
		}

		prospect.ClearDraft()
		if err := tx.Prospect.Update(ctx, prospect); err != nil {
			return err
		}

		result.Prospect = prospect
		result.League = league
		result.Pick = pick
		return nil
	})
	if err != nil {
		return nil, err
	}

	payload := map[string]interface{}{
		"prospect_id":         result.Prospect.ID,
		"current_pick_number": result.League.CurrentPickNumber,
	}
	if result.Pick != nil {
		payload["pick_number"] = result.Pick.PickNumber
	}
	s.emitter.emit(ctx, events.PickUndone, result.League.ID, payload)
	return result, nil
}

// Board loads the league with its teams and picks; it backs the feed's
// STATE_SYNC message.
func (s *DraftService) Board(ctx context.Context, leagueID uuid.UUID) (*Board, error) {
	league, err := s.repos.League.GetByID(ctx, leagueID)
	if err != nil {
		return nil, notFound(err, domain.ErrLeagueNotFound)
	}

	teams, err := s.repos.Team.List(ctx, &leagueID, false)
	if err != nil {
		return nil, err
	}
	picks, err := s.repos.DraftPick.ListByLeague(ctx, leagueID)
	if err != nil {
		return nil, err
	}

	return &Board{League: league, Teams: teams, Picks: picks}, nil
}
