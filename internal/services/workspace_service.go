package services

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/taskmaster/taskmaster-api/internal/models"
	"github.com/taskmaster/taskmaster-api/internal/repository"
)

var (
	ErrWorkspaceNotFound     = errors.New("workspace not found")
	ErrWorkspaceNameRequired = errors.New("workspace name is required")
	ErrNotWorkspaceOwner     = errors.New("only the workspace owner can perform this action")
	ErrInvitesDisabled       = errors.New("workspace does not allow member invites")
	ErrAlreadyMember         = errors.New("user is already a member of this workspace")
	ErrMemberNotFound        = errors.New("workspace member not found")
	ErrCannotRemoveOwner     = errors.New("the workspace owner cannot be removed")
)

// WorkspaceService provides workspace and membership business logic.
// Membership mutation is the only workspace write path task authorization
// depends on; workspace deletion is deliberately not offered.
type WorkspaceService struct {
	workspaceRepo repository.WorkspaceRepository
}

// NewWorkspaceService creates a new WorkspaceService.
func NewWorkspaceService(workspaceRepo repository.WorkspaceRepository) *WorkspaceService {
	return &WorkspaceService{workspaceRepo: workspaceRepo}
}

// CreateWorkspaceInput represents parameters to create a new workspace.
type CreateWorkspaceInput struct {
	Name        string
	Description string
	OwnerID     string
}

// CreateWorkspace creates a workspace owned by the caller. The owner is
// always the first member.
func (s *WorkspaceService) CreateWorkspace(ctx context.Context, input CreateWorkspaceInput) (*models.Workspace, error) {
	if strings.TrimSpace(input.Name) == "" {
		return nil, ErrWorkspaceNameRequired
	}

	now := time.Now().UTC().Format(time.RFC3339)
	workspace := &models.Workspace{
		WorkspaceID: uuid.NewString(),
		Name:        input.Name,
		Description: input.Description,
		Owner:       models.UserRef(input.OwnerID),
		Members:     []string{models.UserRef(input.OwnerID)},
		Settings: models.WorkspaceSettings{
			IsPublic:       false,
			AllowInvites:   true,
			TaskAutoAssign: false,
		},
		Subscription: models.WorkspaceTierFree,
		CreatedAt:    now,
		UpdatedAt:    now,
	}
	workspace.SetKeys()

	if err := s.workspaceRepo.Create(ctx, workspace); err != nil {
		return nil, fmt.Errorf("failed to create workspace: %w", err)
	}

	return workspace, nil
}

// GetWorkspace returns a workspace to one of its members.
func (s *WorkspaceService) GetWorkspace(ctx context.Context, workspaceID, userID string) (*models.Workspace, error) {
	workspace, err := s.findWorkspace(ctx, workspaceID)
	if err != nil {
		return nil, err
	}

	if !workspace.IsMember(userID) {
		return nil, ErrNotWorkspaceMember
	}

	return workspace, nil
}

// AddMember adds a user to the workspace member set. Non-owner members may
// invite only when the workspace allows invites.
func (s *WorkspaceService) AddMember(ctx context.Context, workspaceID, actorID, userID string) (*models.Workspace, error) {
	workspace, err := s.findWorkspace(ctx, workspaceID)
	if err != nil {
		return nil, err
	}

	if !workspace.IsMember(actorID) {
		return nil, ErrNotWorkspaceMember
	}
	if !workspace.IsOwner(actorID) && !workspace.Settings.AllowInvites {
		return nil, ErrInvitesDisabled
	}
	if workspace.IsMember(userID) {
		return nil, ErrAlreadyMember
	}

	workspace.Members = append(workspace.Members, models.UserRef(userID))
	workspace.UpdatedAt = time.Now().UTC().Format(time.RFC3339)

	if err := s.workspaceRepo.Save(ctx, workspace); err != nil {
		return nil, fmt.Errorf("failed to add member: %w", err)
	}

	return workspace, nil
}

// RemoveMember removes a user from the member set. Owner only; the owner
// itself can never be removed, keeping the member set non-empty.
func (s *WorkspaceService) RemoveMember(ctx context.Context, workspaceID, actorID, userID string) (*models.Workspace, error) {
	workspace, err := s.findWorkspace(ctx, workspaceID)
	if err != nil {
		return nil, err
	}

	if !workspace.IsMember(actorID) {
		return nil, ErrNotWorkspaceMember
	}
	if !workspace.IsOwner(actorID) {
		return nil, ErrNotWorkspaceOwner
	}
	if models.UserRef(userID) == workspace.Owner {
		return nil, ErrCannotRemoveOwner
	}
	if !workspace.IsMember(userID) {
		return nil, ErrMemberNotFound
	}

	ref := models.UserRef(userID)
	members := make([]string, 0, len(workspace.Members)-1)
	for _, m := range workspace.Members {
		if m != ref {
			members = append(members, m)
		}
	}
	workspace.Members = members
	workspace.UpdatedAt = time.Now().UTC().Format(time.RFC3339)

	if err := s.workspaceRepo.Save(ctx, workspace); err != nil {
		return nil, fmt.Errorf("failed to remove member: %w", err)
	}

	return workspace, nil
}

func (s *WorkspaceService) findWorkspace(ctx context.Context, workspaceID string) (*models.Workspace, error) {
	workspace, err := s.workspaceRepo.FindByID(ctx, workspaceID)
	if err != nil {
		if errors.Is(err, repository.ErrWorkspaceNotFound) {
			return nil, ErrWorkspaceNotFound
		}
		return nil, fmt.Errorf("failed to find workspace: %w", err)
	}
	return workspace, nil
}
