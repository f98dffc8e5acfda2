package repository

import (
	"context"
	"errors"

	"github.com/taskmaster/taskmaster-api/internal/models"
)

var (
	ErrTaskNotFound      = errors.New("task not found")
	ErrWorkspaceNotFound = errors.New("workspace not found")
	ErrUserNotFound      = errors.New("user not found")
	ErrWorkspaceExists   = errors.New("workspace already exists")
	ErrUserExists        = errors.New("user already exists")
)

// ChangeSet is the sanitized attribute-name to new-value mapping applied
// during a partial update.
type ChangeSet map[string]any

// TaskRepository defines the interface for task data access.
type TaskRepository interface {
	// Create stores a new task.
	Create(ctx context.Context, task *models.Task) error

	// FindByID finds a task by its (workspace, task) composite key.
	FindByID(ctx context.Context, workspaceID, taskID string) (*models.Task, error)

	// ListByWorkspace returns every task in the workspace partition.
	ListByWorkspace(ctx context.Context, workspaceID string) ([]models.Task, error)

	// ListByAccessUser returns tasks keyed to the user on the secondary index
	// (assigned to them, or created by them while unassigned).
	ListByAccessUser(ctx context.Context, userID string) ([]models.Task, error)

	// ApplyChanges applies a change set to a task as a single unconditional
	// point write and returns the updated record. Last writer wins.
	ApplyChanges(ctx context.Context, workspaceID, taskID string, changes ChangeSet) (*models.Task, error)

	// Delete removes a task record.
	Delete(ctx context.Context, workspaceID, taskID string) error
}

// WorkspaceRepository defines the interface for workspace data access.
type WorkspaceRepository interface {
	// Create stores a new workspace, failing if the key already exists.
	Create(ctx context.Context, workspace *models.Workspace) error

	// FindByID finds a workspace by ID.
	FindByID(ctx context.Context, workspaceID string) (*models.Workspace, error)

	// Save overwrites an existing workspace record (membership and settings
	// changes), failing if it does not exist.
	Save(ctx context.Context, workspace *models.Workspace) error
}

// UserRepository defines the interface for user profile data access.
type UserRepository interface {
	// Create stores a new user profile, failing if the key already exists.
	Create(ctx context.Context, user *models.User) error

	// FindByID finds a user profile by ID.
	FindByID(ctx context.Context, userID string) (*models.User, error)
}
