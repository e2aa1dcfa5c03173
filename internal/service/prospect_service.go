package service

import (
	"context"
	"fmt"
	"strings"

	"github.com/dom/league-ledger/internal/domain"
	"github.com/dom/league-ledger/internal/repository"
	"github.com/google/uuid"
)

type ProspectService struct {
	prospectRepo repository.ProspectRepository
	leagueRepo   repository.LeagueRepository
}

func NewProspectService(prospectRepo repository.ProspectRepository, leagueRepo repository.LeagueRepository) *ProspectService {
	return &ProspectService{
		prospectRepo: prospectRepo,
		leagueRepo:   leagueRepo,
	}
}

type ProspectInput struct {
	Name     string
	Position string
	College  string
}

type UpdateProspectInput struct {
	Name     *string
	Position *string
	College  *string
}

func (s *ProspectService) List(ctx context.Context, filter repository.ProspectFilter) ([]*domain.Prospect, error) {
	return s.prospectRepo.List(ctx, filter)
}

func (s *ProspectService) Get(ctx context.Context, id uuid.UUID) (*domain.Prospect, error) {
	prospect, err := s.prospectRepo.GetByID(ctx, id)
	if err != nil {
		return nil, notFound(err, domain.ErrProspectNotFound)
	}
	return prospect, nil
}

func (s *ProspectService) Create(ctx context.Context, leagueID uuid.UUID, input ProspectInput) (*domain.Prospect, error) {
	if !input.valid() {
		return nil, fmt.Errorf("%w: name and position are required", domain.ErrInvalidInput)
	}
	if _, err := s.leagueRepo.GetByID(ctx, leagueID); err != nil {
		return nil, notFound(err, domain.ErrLeagueNotFound)
	}

	prospect := input.build(leagueID)
	if err := s.prospectRepo.Create(ctx, prospect); err != nil {
		return nil, err
	}
	return prospect, nil
}

// CreateBulk adds every entry that has a name and position and silently
// skips the rest.
func (s *ProspectService) CreateBulk(ctx context.Context, leagueID uuid.UUID, inputs []ProspectInput) ([]*domain.Prospect, error) {
	if _, err := s.leagueRepo.GetByID(ctx, leagueID); err != nil {
		return nil, notFound(err, domain.ErrLeagueNotFound)
	}

	prospects := make([]*domain.Prospect, 0, len(inputs))
	for _, input := range inputs {
		if !input.valid() {
			continue
		}
		prospects = append(prospects, input.build(leagueID))
	}

	if err := s.prospectRepo.CreateMany(ctx, prospects); err != nil {
		return nil, err
	}
	return prospects, nil
}

func (s *ProspectService) Update(ctx context.Context, id uuid.UUID, input UpdateProspectInput) (*domain.Prospect, error) {
	prospect, err := s.prospectRepo.GetByID(ctx, id)
	if err != nil {
		return nil, notFound(err, domain.ErrProspectNotFound)
	}

	if input.Name != nil {
		if strings.TrimSpace(*input.Name) == "" {
			return nil, fmt.Errorf("%w: name cannot be empty", domain.ErrInvalidInput)
		}
		prospect.Name = strings.TrimSpace(*input.Name)
	}
	if input.Position != nil {
		if strings.TrimSpace(*input.Position) == "" {
			return nil, fmt.Errorf("%w: position cannot be empty", domain.ErrInvalidInput)
		}
		prospect.Position = strings.TrimSpace(*input.Position)
	}
	if input.College != nil {
		prospect.College = *input.College
	}

	if err := s.prospectRepo.UpdateDetails(ctx, prospect); err != nil {
		return nil, err
	}

	// Draft columns may have moved since the read above.
	fresh, err := s.prospectRepo.GetByID(ctx, id)
	if err != nil {
		return nil, notFound(err, domain.ErrProspectNotFound)
	}
	return fresh, nil
}

func (s *ProspectService) Delete(ctx context.Context, id uuid.UUID) error {
	deleted, err := s.prospectRepo.DeleteUndrafted(ctx, id)
	if err != nil {
		return err
	}
	if deleted {
		return nil
	}

	if _, err := s.prospectRepo.GetByID(ctx, id); err != nil {
		return notFound(err, domain.ErrProspectNotFound)
	}
	return domain.ErrProspectDrafted
}

func (in ProspectInput) valid() bool {
	return strings.TrimSpace(in.Name) != "" && strings.TrimSpace(in.Position) != ""
}

func (in ProspectInput) build(leagueID uuid.UUID) *domain.Prospect {
	return &domain.Prospect{
		ID:       uuid.New(),
		LeagueID: leagueID,
		Name:     strings.TrimSpace(in.Name),
		Position: strings.TrimSpace(in.Position),
		College:  in.College,
	}
}
