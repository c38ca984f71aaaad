package service

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/tallyup/backend/internal/models"
	"github.com/tallyup/backend/internal/storage"
)

// GroupService manages groups and their membership.
type GroupService struct {
	store storage.Store
}

// NewGroupService creates a new GroupService with the given storage backend.
func NewGroupService(store storage.Store) *GroupService {
	return &GroupService{store: store}
}

// CreateGroup creates a new group. The creator is always a member.
func (s *GroupService) CreateGroup(ctx context.Context, creatorID, name string, members []string) (*models.Group, error) {
	slog.Info("CreateGroup request", "name", name, "members_count", len(members))

	if name == "" {
		return nil, fmt.Errorf("%w: group name required", ErrInvalidInput)
	}

	memberSet := map[string]bool{creatorID: true}
	all := []string{creatorID}
	for _, id := range members {
		if memberSet[id] {
			continue
		}
		memberSet[id] = true
		all = append(all, id)
	}

	// Every member must be a registered user.
	for _, id := range all {
		if _, err := s.store.GetUserByID(ctx, id); err != nil {
			return nil, fmt.Errorf("failed to resolve member %s: %w", id, err)
		}
	}

	group := &models.Group{
		Name:      name,
		Members:   all,
		CreatedBy: creatorID,
	}
	if err := s.store.CreateGroup(ctx, group); err != nil {
		slog.Error("CreateGroup failed", "error", err)
		return nil, err
	}

	slog.Info("Group created", "group_id", group.ID)
	return group, nil
}

// GetGroup retrieves a group the user is a member of.
func (s *GroupService) GetGroup(ctx context.Context, userID, groupID string) (*models.Group, error) {
	group, err := s.store.GetGroup(ctx, groupID)
	if err != nil {
		return nil, err
	}
	if !group.HasMember(userID) {
		return nil, ErrForbidden
	}
	return group, nil
}

// ListGroups retrieves the groups the user belongs to.
func (s *GroupService) ListGroups(ctx context.Context, userID string) ([]*models.Group, error) {
	return s.store.ListGroupsByMember(ctx, userID)
}

// UpdateMembers replaces a group's member list. Removed members' old expense
// shares stay in the ledger but drop out of balance aggregation.
func (s *GroupService) UpdateMembers(ctx context.Context, userID, groupID string, members []string) (*models.Group, error) {
	slog.Info("UpdateMembers request", "group_id", groupID, "members_count", len(members))

	group, err := s.store.GetGroup(ctx, groupID)
	if err != nil {
		return nil, err
	}
	if !group.HasMember(userID) {
		return nil, ErrForbidden
	}
	if len(members) == 0 {
		return nil, fmt.Errorf("%w: a group needs at least one member", ErrInvalidInput)
	}

	for _, id := range members {
		if _, err := s.store.GetUserByID(ctx, id); err != nil {
			return nil, fmt.Errorf("failed to resolve member %s: %w", id, err)
		}
	}

	if err := s.store.UpdateGroupMembers(ctx, groupID, members); err != nil {
		slog.Error("UpdateMembers failed", "group_id", groupID, "error", err)
		return nil, err
	}

	return s.store.GetGroup(ctx, groupID)
}

// DeleteGroup removes a group.
func (s *GroupService) DeleteGroup(ctx context.Context, userID, groupID string) error {
	group, err := s.store.GetGroup(ctx, groupID)
	if err != nil {
		return err
	}
	if !group.HasMember(userID) {
		return ErrForbidden
	}

	if err := s.store.DeleteGroup(ctx, groupID); err != nil {
		slog.Error("DeleteGroup failed", "group_id", groupID, "error", err)
		return err
	}

	slog.Info("Group deleted", "group_id", groupID)
	return nil
}
