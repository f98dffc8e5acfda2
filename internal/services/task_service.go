package services

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/taskmaster/taskmaster-api/internal/models"
	"github.com/taskmaster/taskmaster-api/internal/repository"
)

var (
	ErrWorkspaceIDRequired = errors.New("workspace ID is required")
	ErrTitleRequired       = errors.New("workspace ID and title are required")
	ErrNotWorkspaceMember  = errors.New("user is not a member of the workspace")
	ErrTaskNotFound        = errors.New("task not found")
)

// TaskService enforces workspace membership around every task operation and
// applies the partial-update policy. Membership is re-read from the workspace
// record on every call; there is no caching and no cross-record atomicity.
type TaskService struct {
	taskRepo      repository.TaskRepository
	workspaceRepo repository.WorkspaceRepository
}

// NewTaskService creates a new TaskService.
func NewTaskService(taskRepo repository.TaskRepository, workspaceRepo repository.WorkspaceRepository) *TaskService {
	return &TaskService{
		taskRepo:      taskRepo,
		workspaceRepo: workspaceRepo,
	}
}

// CreateTaskInput represents input for creating a task.
type CreateTaskInput struct {
	WorkspaceID string
	Title       string
	Description string
	Status      string
	Priority    string
	AssignedTo  *string
	DueDate     *string
	CreatorID   string
}

// ListTasks returns every task in the workspace. Any member sees the full
// list; non-members get an authorization error.
func (s *TaskService) ListTasks(ctx context.Context, workspaceID, userID string) ([]models.Task, error) {
	if workspaceID == "" {
		return nil, ErrWorkspaceIDRequired
	}

	if _, err := s.memberWorkspace(ctx, workspaceID, userID); err != nil {
		return nil, err
	}

	tasks, err := s.taskRepo.ListByWorkspace(ctx, workspaceID)
	if err != nil {
		return nil, fmt.Errorf("failed to list tasks: %w", err)
	}

	return tasks, nil
}

// ListAssignedTasks returns the tasks keyed to the user on the secondary
// index: assigned to them, or created by them while unassigned.
func (s *TaskService) ListAssignedTasks(ctx context.Context, userID string) ([]models.Task, error) {
	tasks, err := s.taskRepo.ListByAccessUser(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to list assigned tasks: %w", err)
	}
	return tasks, nil
}

// CreateTask creates a task in the workspace after the membership check.
func (s *TaskService) CreateTask(ctx context.Context, input CreateTaskInput) (*models.Task, error) {
	if input.WorkspaceID == "" || input.Title == "" {
		return nil, ErrTitleRequired
	}

	status := models.TaskStatusTodo
	if input.Status != "" {
		status = models.TaskStatus(input.Status)
		if !status.IsValid() {
			return nil, ErrInvalidStatus
		}
	}

	priority := models.TaskPriorityMedium
	if input.Priority != "" {
		priority = models.TaskPriority(input.Priority)
		if !priority.IsValid() {
			return nil, ErrInvalidPriority
		}
	}

	workspace, err := s.memberWorkspace(ctx, input.WorkspaceID, input.CreatorID)
	if err != nil {
		return nil, err
	}

	assignedTo := input.AssignedTo
	if (assignedTo == nil || *assignedTo == "") && workspace.Settings.TaskAutoAssign {
		creator := input.CreatorID
		assignedTo = &creator
	}

	now := time.Now().UTC().Format(time.RFC3339)
	task := &models.Task{
		TaskID:      uuid.NewString(),
		WorkspaceID: input.WorkspaceID,
		Title:       input.Title,
		Description: input.Description,
		Status:      status,
		Priority:    priority,
		AssignedTo:  assignedTo,
		CreatedBy:   input.CreatorID,
		DueDate:     input.DueDate,
		Tags:        []string{},
		Attachments: []string{},
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	task.SetKeys()

	if err := s.taskRepo.Create(ctx, task); err != nil {
		return nil, fmt.Errorf("failed to create task: %w", err)
	}

	return task, nil
}

// GetTask returns a task. Existence is checked before membership, so an
// unknown task surfaces not-found even to a non-member.
func (s *TaskService) GetTask(ctx context.Context, workspaceID, userID, taskID string) (*models.Task, error) {
	if workspaceID == "" {
		return nil, ErrWorkspaceIDRequired
	}

	task, err := s.findTask(ctx, workspaceID, taskID)
	if err != nil {
		return nil, err
	}

	if _, err := s.memberWorkspace(ctx, workspaceID, userID); err != nil {
		return nil, err
	}

	return task, nil
}

// UpdateTask applies a partial update: existence, then membership, then the
// update policy. The write itself is unconditional; last writer wins.
func (s *TaskService) UpdateTask(ctx context.Context, workspaceID, userID, taskID string, fields map[string]any) (*models.Task, error) {
	if workspaceID == "" {
		return nil, ErrWorkspaceIDRequired
	}

	task, err := s.findTask(ctx, workspaceID, taskID)
	if err != nil {
		return nil, err
	}

	if _, err := s.memberWorkspace(ctx, workspaceID, userID); err != nil {
		return nil, err
	}

	now := time.Now().UTC().Format(time.RFC3339)
	changes, err := ComputeChangeSet(fields, now)
	if err != nil {
		return nil, err
	}

	applied := repository.ChangeSet{}
	for name, value := range changes {
		applied[name] = value
	}

	// Reassignment moves the task on the user-centric index.
	if value, ok := changes["assignedTo"]; ok {
		assignee := task.CreatedBy
		if v, ok := value.(string); ok && v != "" {
			assignee = v
		}
		applied["GSI1PK"] = models.UserRef(assignee)
	}

	updated, err := s.taskRepo.ApplyChanges(ctx, workspaceID, taskID, applied)
	if err != nil {
		if errors.Is(err, repository.ErrTaskNotFound) {
			return nil, ErrTaskNotFound
		}
		return nil, fmt.Errorf("failed to update task: %w", err)
	}

	return updated, nil
}

// DeleteTask removes a task after the existence and membership checks.
func (s *TaskService) DeleteTask(ctx context.Context, workspaceID, userID, taskID string) error {
	if workspaceID == "" {
		return ErrWorkspaceIDRequired
	}

	if _, err := s.findTask(ctx, workspaceID, taskID); err != nil {
		return err
	}

	if _, err := s.memberWorkspace(ctx, workspaceID, userID); err != nil {
		return err
	}

	if err := s.taskRepo.Delete(ctx, workspaceID, taskID); err != nil {
		return fmt.Errorf("failed to delete task: %w", err)
	}

	return nil
}

func (s *TaskService) findTask(ctx context.Context, workspaceID, taskID string) (*models.Task, error) {
	task, err := s.taskRepo.FindByID(ctx, workspaceID, taskID)
	if err != nil {
		if errors.Is(err, repository.ErrTaskNotFound) {
			return nil, ErrTaskNotFound
		}
		return nil, fmt.Errorf("failed to find task: %w", err)
	}
	return task, nil
}

// memberWorkspace loads the workspace and verifies membership. An absent
// workspace fails closed as not-a-member.
func (s *TaskService) memberWorkspace(ctx context.Context, workspaceID, userID string) (*models.Workspace, error) {
	workspace, err := s.workspaceRepo.FindByID(ctx, workspaceID)
	if err != nil {
		if errors.Is(err, repository.ErrWorkspaceNotFound) {
			return nil, ErrNotWorkspaceMember
		}
		return nil, fmt.Errorf("failed to verify workspace membership: %w", err)
	}

	if !workspace.IsMember(userID) {
		return nil, ErrNotWorkspaceMember
	}

	return workspace, nil
}
