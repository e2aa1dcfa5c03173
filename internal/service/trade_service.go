package service

import (
	"context"
	"fmt"

	"github.com/dom/league-ledger/internal/domain"
	"github.com/dom/league-ledger/internal/events"
	"github.com/dom/league-ledger/internal/repository"
	"github.com/google/uuid"
	"github.com/jonboulle/clockwork"
)

type TradeService struct {
	repos   *repository.Repositories
	clock   clockwork.Clock
	emitter *eventEmitter
}

func NewTradeService(repos *repository.Repositories, clock clockwork.Clock, emitter *eventEmitter) *TradeService {
	return &TradeService{repos: repos, clock: clock, emitter: emitter}
}

type ExecuteTradeInput struct {
	LeagueID   uuid.UUID
	FromTeamID uuid.UUID
	ToTeamID   uuid.UUID
	PickIDs    []uuid.UUID
}

type TradeResult struct {
	Trade *domain.Trade
	// Picks are the moved picks in the order they were requested.
	Picks []*domain.DraftPick
}

func (s *TradeService) List(ctx context.Context, leagueID *uuid.UUID) ([]*domain.Trade, error) {
	return s.repos.Trade.List(ctx, leagueID)
}

func (s *TradeService) Get(ctx context.Context, id uuid.UUID) (*domain.Trade, error) {
	trade, err := s.repos.Trade.GetByID(ctx, id)
	if err != nil {
		return nil, notFound(err, domain.ErrTradeNotFound)
	}
	return trade, nil
}

// Delete drops the trade record. Pick ownership stays where the trade put it.
func (s *TradeService) Delete(ctx context.Context, id uuid.UUID) error {
	if _, err := s.repos.Trade.GetByID(ctx, id); err != nil {
		return notFound(err, domain.ErrTradeNotFound)
	}
	return s.repos.Trade.Delete(ctx, id)
}

// Execute moves unused picks from one team to another. Every pick is
// validated before any ownership changes, so a failed trade changes nothing.
func (s *TradeService) Execute(ctx context.Context, input ExecuteTradeInput) (*TradeResult, error) {
	if input.FromTeamID == input.ToTeamID {
		return nil, domain.ErrSameTeamTrade
	}
	if len(input.PickIDs) == 0 {
		return nil, domain.ErrEmptyPickList
	}

	result := &TradeResult{}
	err := s.repos.Tx.WithinTransaction(ctx, func(tx *repository.Repositories) error {
		if _, err := tx.League.GetByIDForUpdate(ctx, input.LeagueID); err != nil {
			return notFound(err, domain.ErrLeagueNotFound)
		}
		if _, err := tx.Team.GetInLeague(ctx, input.LeagueID, input.ToTeamID); err != nil {
			return notFound(err, domain.ErrTeamNotFound)
		}

		found, err := tx.DraftPick.GetManyInLeague(ctx, input.LeagueID, input.PickIDs)
		if err != nil {
			return err
		}
		// Repeated ids collapse to one row, so they surface as missing picks.
		if len(found) != len(input.PickIDs) {
			return domain.ErrPicksNotFound
		}

		byID := make(map[uuid.UUID]*domain.DraftPick, len(found))
		for _, p := range found {
			byID[p.ID] = p
		}

		ordered := make([]*domain.DraftPick, len(input.PickIDs))
		for i, id := range input.PickIDs {
			pick := byID[id]
			if pick.CurrentTeamID != input.FromTeamID {
				return fmt.Errorf("%w: pick %s does not belong to team %s", domain.ErrPickOwnershipMismatch, pick.ID, input.FromTeamID)
			}
			if pick.IsUsed {
				return fmt.Errorf("%w: pick %s", domain.ErrPickAlreadyUsed, pick.ID)
			}
			ordered[i] = pick
		}

		if err := tx.DraftPick.SetOwner(ctx, input.PickIDs, input.ToTeamID); err != nil {
			return err
		}
		for _, pick := range ordered {
			pick.CurrentTeamID = input.ToTeamID
		}

		trade := &domain.Trade{
			ID:         uuid.New(),
			LeagueID:   input.LeagueID,
			FromTeamID: input.FromTeamID,
			ToTeamID:   input.ToTeamID,
			ExecutedAt: s.clock.Now().UTC(),
		}
		trade.Picks = domain.NewTradePicks(trade.ID, input.PickIDs)
		if err := tx.Trade.Create(ctx, trade); err != nil {
			return err
		}

		result.Trade = trade
		result.Picks = ordered
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.emitter.emit(ctx, events.TradeExecuted, input.LeagueID, map[string]interface{}{
		"trade_id":     result.Trade.ID,
		"from_team_id": result.Trade.FromTeamID,
		"to_team_id":   result.Trade.ToTeamID,
		"pick_ids":     result.Trade.PickIDs(),
	})
	return result, nil
}
