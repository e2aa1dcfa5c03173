package service

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/dom/league-ledger/internal/domain"
	"github.com/dom/league-ledger/internal/repository"
	"github.com/google/uuid"
)

type GroupService struct {
	groupRepo repository.GroupRepository
	userRepo  repository.UserRepository
}

func NewGroupService(groupRepo repository.GroupRepository, userRepo repository.UserRepository) *GroupService {
	return &GroupService{
		groupRepo: groupRepo,
		userRepo:  userRepo,
	}
}

type CreateGroupInput struct {
	Name        string
	Description string
}

// Create makes a group with the creator as its first member.
func (s *GroupService) Create(ctx context.Context, creatorID uuid.UUID, input CreateGroupInput) (*domain.Group, error) {
	name := strings.TrimSpace(input.Name)
	if name == "" {
		return nil, fmt.Errorf("%w: group name is required", domain.ErrInvalidInput)
	}

	creator, err := s.userRepo.GetByID(ctx, creatorID)
	if err != nil {
		return nil, notFound(err, domain.ErrUserNotFound)
	}

	group := &domain.Group{
		ID:          uuid.New(),
		Name:        name,
		Description: input.Description,
		CreatedBy:   creator.ID,
		Members:     []domain.User{*creator},
	}
	if err := s.groupRepo.Create(ctx, group); err != nil {
		return nil, err
	}
	return group, nil
}

func (s *GroupService) ListMine(ctx context.Context, userID uuid.UUID) ([]*domain.Group, error) {
	return s.groupRepo.ListByMember(ctx, userID)
}

// Get returns the group with its members. Only members may view it.
func (s *GroupService) Get(ctx context.Context, userID, groupID uuid.UUID) (*domain.Group, error) {
	group, err := s.groupRepo.GetByID(ctx, groupID)
	if err != nil {
		return nil, notFound(err, domain.ErrGroupNotFound)
	}
	if !group.HasMember(userID) {
		return nil, domain.ErrNotGroupMember
	}
	return group, nil
}

func (s *GroupService) AddMember(ctx context.Context, actorID, groupID, userID uuid.UUID) (*domain.Group, error) {
	group, err := s.Get(ctx, actorID, groupID)
	if err != nil {
		return nil, err
	}

	user, err := s.userRepo.GetByID(ctx, userID)
	if err != nil {
		return nil, notFound(err, domain.ErrUserNotFound)
	}
	if group.HasMember(user.ID) {
		return nil, domain.ErrAlreadyMember
	}

	if err := s.groupRepo.AddMember(ctx, group, user); err != nil {
		if errors.Is(err, domain.ErrDuplicate) {
			return nil, domain.ErrAlreadyMember
		}
		return nil, err
	}
	return group, nil
}
