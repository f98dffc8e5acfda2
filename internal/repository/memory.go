package repository

import (
	"context"
	"sort"
	"sync"

	"github.com/taskmaster/taskmaster-api/internal/models"
)

// In-memory implementations of the repositories. Used as injected fakes in
// tests and as the STORAGE_BACKEND=memory local development backend. Ordering
// mirrors the store's sort-key ordering.

// MemoryTaskRepository is an in-memory TaskRepository.
type MemoryTaskRepository struct {
	mu    sync.RWMutex
	tasks map[string]map[string]models.Task // workspaceID -> taskID -> task
}

// NewMemoryTaskRepository creates an empty in-memory TaskRepository.
func NewMemoryTaskRepository() *MemoryTaskRepository {
	return &MemoryTaskRepository{tasks: make(map[string]map[string]models.Task)}
}

func copyTask(t models.Task) models.Task {
	out := t
	if t.AssignedTo != nil {
		v := *t.AssignedTo
		out.AssignedTo = &v
	}
	if t.DueDate != nil {
		v := *t.DueDate
		out.DueDate = &v
	}
	out.Tags = append([]string{}, t.Tags...)
	out.Attachments = append([]string{}, t.Attachments...)
	return out
}

// Create stores a new task.
func (r *MemoryTaskRepository) Create(_ context.Context, task *models.Task) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	ws, ok := r.tasks[task.WorkspaceID]
	if !ok {
		ws = make(map[string]models.Task)
		r.tasks[task.WorkspaceID] = ws
	}
	ws[task.TaskID] = copyTask(*task)
	return nil
}

// FindByID finds a task by its (workspace, task) pair.
func (r *MemoryTaskRepository) FindByID(_ context.Context, workspaceID, taskID string) (*models.Task, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	task, ok := r.tasks[workspaceID][taskID]
	if !ok {
		return nil, ErrTaskNotFound
	}
	out := copyTask(task)
	return &out, nil
}

// ListByWorkspace returns every task in the workspace, in sort-key order.
func (r *MemoryTaskRepository) ListByWorkspace(_ context.Context, workspaceID string) ([]models.Task, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	tasks := []models.Task{}
	for _, task := range r.tasks[workspaceID] {
		tasks = append(tasks, copyTask(task))
	}
	sort.Slice(tasks, func(i, j int) bool { return tasks[i].SK < tasks[j].SK })
	return tasks, nil
}

// ListByAccessUser returns tasks whose secondary-access key matches the user.
func (r *MemoryTaskRepository) ListByAccessUser(_ context.Context, userID string) ([]models.Task, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	ref := models.UserRef(userID)
	tasks := []models.Task{}
	for _, ws := range r.tasks {
		for _, task := range ws {
			if task.GSI1PK == ref {
				tasks = append(tasks, copyTask(task))
			}
		}
	}
	sort.Slice(tasks, func(i, j int) bool { return tasks[i].GSI1SK < tasks[j].GSI1SK })
	return tasks, nil
}

// ApplyChanges applies a change set to a stored task and returns the result.
func (r *MemoryTaskRepository) ApplyChanges(_ context.Context, workspaceID, taskID string, changes ChangeSet) (*models.Task, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	task, ok := r.tasks[workspaceID][taskID]
	if !ok {
		return nil, ErrTaskNotFound
	}

	for name, value := range changes {
		applyTaskChange(&task, name, value)
	}
	r.tasks[workspaceID][taskID] = task

	out := copyTask(task)
	return &out, nil
}

func applyTaskChange(task *models.Task, name string, value any) {
	switch name {
	case "title":
		if v, ok := value.(string); ok {
			task.Title = v
		}
	case "description":
		if v, ok := value.(string); ok {
			task.Description = v
		}
	case "status":
		if v, ok := value.(string); ok {
			task.Status = models.TaskStatus(v)
		}
	case "priority":
		if v, ok := value.(string); ok {
			task.Priority = models.TaskPriority(v)
		}
	case "assignedTo":
		if value == nil {
			task.AssignedTo = nil
		} else if v, ok := value.(string); ok {
			task.AssignedTo = &v
		}
	case "dueDate":
		if value == nil {
			task.DueDate = nil
		} else if v, ok := value.(string); ok {
			task.DueDate = &v
		}
	case "updatedAt":
		if v, ok := value.(string); ok {
			task.UpdatedAt = v
		}
	case "GSI1PK":
		if v, ok := value.(string); ok {
			task.GSI1PK = v
		}
	}
}

// Delete removes a task record.
func (r *MemoryTaskRepository) Delete(_ context.Context, workspaceID, taskID string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	delete(r.tasks[workspaceID], taskID)
	return nil
}

// MemoryWorkspaceRepository is an in-memory WorkspaceRepository.
type MemoryWorkspaceRepository struct {
	mu         sync.RWMutex
	workspaces map[string]models.Workspace
}

// NewMemoryWorkspaceRepository creates an empty in-memory WorkspaceRepository.
func NewMemoryWorkspaceRepository() *MemoryWorkspaceRepository {
	return &MemoryWorkspaceRepository{workspaces: make(map[string]models.Workspace)}
}

func copyWorkspace(w models.Workspace) models.Workspace {
	out := w
	out.Members = append([]string{}, w.Members...)
	return out
}

// Create stores a new workspace, failing if it already exists.
func (r *MemoryWorkspaceRepository) Create(_ context.Context, workspace *models.Workspace) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.workspaces[workspace.WorkspaceID]; ok {
		return ErrWorkspaceExists
	}
	r.workspaces[workspace.WorkspaceID] = copyWorkspace(*workspace)
	return nil
}

// FindByID finds a workspace by ID.
func (r *MemoryWorkspaceRepository) FindByID(_ context.Context, workspaceID string) (*models.Workspace, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	workspace, ok := r.workspaces[workspaceID]
	if !ok {
		return nil, ErrWorkspaceNotFound
	}
	out := copyWorkspace(workspace)
	return &out, nil
}

// Save overwrites an existing workspace, failing if it does not exist.
func (r *MemoryWorkspaceRepository) Save(_ context.Context, workspace *models.Workspace) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.workspaces[workspace.WorkspaceID]; !ok {
		return ErrWorkspaceNotFound
	}
	r.workspaces[workspace.WorkspaceID] = copyWorkspace(*workspace)
	return nil
}

// MemoryUserRepository is an in-memory UserRepository.
type MemoryUserRepository struct {
	mu    sync.RWMutex
	users map[string]models.User
}

// NewMemoryUserRepository creates an empty in-memory UserRepository.
func NewMemoryUserRepository() *MemoryUserRepository {
	return &MemoryUserRepository{users: make(map[string]models.User)}
}

// Create stores a new user profile, failing if it already exists.
func (r *MemoryUserRepository) Create(_ context.Context, user *models.User) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.users[user.UserID]; ok {
		return ErrUserExists
	}
	r.users[user.UserID] = *user
	return nil
}

// FindByID finds a user profile by ID.
func (r *MemoryUserRepository) FindByID(_ context.Context, userID string) (*models.User, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	user, ok := r.users[userID]
	if !ok {
		return nil, ErrUserNotFound
	}
	out := user
	return &out, nil
}
