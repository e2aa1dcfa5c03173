package service

import (
	"context"
	"fmt"
	"strings"

	"github.com/dom/league-ledger/internal/domain"
	"github.com/dom/league-ledger/internal/repository"
	"github.com/google/uuid"
)

type TeamService struct {
	teamRepo     repository.TeamRepository
	prospectRepo repository.ProspectRepository
}

func NewTeamService(teamRepo repository.TeamRepository, prospectRepo repository.ProspectRepository) *TeamService {
	return &TeamService{
		teamRepo:     teamRepo,
		prospectRepo: prospectRepo,
	}
}

type UpdateTeamInput struct {
	Name       *string
	Icon       *string
	Color      *string
	BgColor    *string
	DraftOrder *int
}

func (s *TeamService) List(ctx context.Context, leagueID *uuid.UUID, includeRoster bool) ([]*domain.Team, error) {
	return s.teamRepo.List(ctx, leagueID, includeRoster)
}

func (s *TeamService) Get(ctx context.Context, id uuid.UUID, includeRoster bool) (*domain.Team, error) {
	team, err := s.teamRepo.GetByID(ctx, id)
	if err != nil {
		return nil, notFound(err, domain.ErrTeamNotFound)
	}

	if includeRoster {
		roster, err := s.prospectRepo.ListByTeam(ctx, id)
		if err != nil {
			return nil, err
		}
		team.Roster = make([]domain.Prospect, len(roster))
		for i, p := range roster {
			team.Roster[i] = *p
		}
	}
	return team, nil
}

func (s *TeamService) Update(ctx context.Context, id uuid.UUID, input UpdateTeamInput) (*domain.Team, error) {
	team, err := s.teamRepo.GetByID(ctx, id)
	if err != nil {
		return nil, notFound(err, domain.ErrTeamNotFound)
	}

	if input.Name != nil {
		name := strings.TrimSpace(*input.Name)
		if name == "" {
			return nil, fmt.Errorf("%w: team name cannot be empty", domain.ErrInvalidInput)
		}
		team.Name = name
	}
	if input.Icon != nil {
		team.Icon = *input.Icon
	}
	if input.Color != nil {
		team.Color = *input.Color
	}
	if input.BgColor != nil {
		team.BgColor = *input.BgColor
	}
	if input.DraftOrder != nil {
		if *input.DraftOrder < 1 {
			return nil, fmt.Errorf("%w: draft_order must be at least 1", domain.ErrInvalidInput)
		}
		team.DraftOrder = *input.DraftOrder
	}

	if err := s.teamRepo.Update(ctx, team); err != nil {
		return nil, err
	}
	return team, nil
}

// Delete removes a team that no longer owns picks or drafted prospects.
func (s *TeamService) Delete(ctx context.Context, id uuid.UUID) error {
	if _, err := s.teamRepo.GetByID(ctx, id); err != nil {
		return notFound(err, domain.ErrTeamNotFound)
	}

	held, err := s.teamRepo.HasHoldings(ctx, id)
	if err != nil {
		return err
	}
	if held {
		return domain.ErrTeamHasPicks
	}
	return s.teamRepo.Delete(ctx, id)
}

func (s *TeamService) Roster(ctx context.Context, id uuid.UUID) ([]*domain.Prospect, error) {
	if _, err := s.teamRepo.GetByID(ctx, id); err != nil {
		return nil, notFound(err, domain.ErrTeamNotFound)
	}
	return s.prospectRepo.ListByTeam(ctx, id)
}
