package services

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/suite"
	"github.com/taskmaster/taskmaster-api/internal/models"
	"github.com/taskmaster/taskmaster-api/internal/repository"
)

// TaskServiceTestSuite defines the test suite for TaskService.
type TaskServiceTestSuite struct {
	suite.Suite
	ctx           context.Context
	taskRepo      *repository.MemoryTaskRepository
	workspaceRepo *repository.MemoryWorkspaceRepository
	service       *TaskService
}

// SetupTest runs before each test.
func (suite *TaskServiceTestSuite) SetupTest() {
	suite.ctx = context.Background()
	suite.taskRepo = repository.NewMemoryTaskRepository()
	suite.workspaceRepo = repository.NewMemoryWorkspaceRepository()
	suite.service = NewTaskService(suite.taskRepo, suite.workspaceRepo)
}

// Helper to seed a workspace with the given owner and members.
func (suite *TaskServiceTestSuite) createTestWorkspace(id, owner string, members ...string) *models.Workspace {
	refs := []string{models.UserRef(owner)}
	for _, m := range members {
		refs = append(refs, models.UserRef(m))
	}

	workspace := &models.Workspace{
		WorkspaceID:  id,
		Name:         "Test Workspace",
		Owner:        models.UserRef(owner),
		Members:      refs,
		Settings:     models.WorkspaceSettings{AllowInvites: true},
		Subscription: models.WorkspaceTierFree,
		CreatedAt:    "2024-01-01T00:00:00Z",
		UpdatedAt:    "2024-01-01T00:00:00Z",
	}
	workspace.SetKeys()
	suite.Require().NoError(suite.workspaceRepo.Create(suite.ctx, workspace))
	return workspace
}

func (suite *TaskServiceTestSuite) createTestTask(workspaceID, creatorID, title string) *models.Task {
	task, err := suite.service.CreateTask(suite.ctx, CreateTaskInput{
		WorkspaceID: workspaceID,
		Title:       title,
		CreatorID:   creatorID,
	})
	suite.Require().NoError(err)
	return task
}

func (suite *TaskServiceTestSuite) TestCreateTask_Defaults() {
	suite.createTestWorkspace("w1", "u1", "u2")

	task, err := suite.service.CreateTask(suite.ctx, CreateTaskInput{
		WorkspaceID: "w1",
		Title:       "Ship release",
		CreatorID:   "u1",
	})

	suite.Require().NoError(err)
	assert.NotEmpty(suite.T(), task.TaskID)
	assert.Equal(suite.T(), models.TaskStatusTodo, task.Status)
	assert.Equal(suite.T(), models.TaskPriorityMedium, task.Priority)
	assert.Nil(suite.T(), task.AssignedTo)
	assert.Nil(suite.T(), task.DueDate)
	assert.Equal(suite.T(), "u1", task.CreatedBy)
	assert.Equal(suite.T(), []string{}, task.Tags)
	assert.Equal(suite.T(), []string{}, task.Attachments)
	assert.Equal(suite.T(), task.CreatedAt, task.UpdatedAt)
	assert.Equal(suite.T(), "WORKSPACE#w1", task.PK)
	assert.Equal(suite.T(), "TASK#"+task.TaskID, task.SK)
	assert.Equal(suite.T(), "USER#u1", task.GSI1PK)
}

func (suite *TaskServiceTestSuite) TestCreateTask_MissingFields() {
	suite.createTestWorkspace("w1", "u1")

	_, err := suite.service.CreateTask(suite.ctx, CreateTaskInput{WorkspaceID: "w1", CreatorID: "u1"})
	assert.ErrorIs(suite.T(), err, ErrTitleRequired)

	_, err = suite.service.CreateTask(suite.ctx, CreateTaskInput{Title: "No workspace", CreatorID: "u1"})
	assert.ErrorIs(suite.T(), err, ErrTitleRequired)
}

func (suite *TaskServiceTestSuite) TestCreateTask_NonMember() {
	suite.createTestWorkspace("w1", "u1")

	_, err := suite.service.CreateTask(suite.ctx, CreateTaskInput{
		WorkspaceID: "w1",
		Title:       "Intruder task",
		CreatorID:   "u3",
	})

	assert.ErrorIs(suite.T(), err, ErrNotWorkspaceMember)
}

func (suite *TaskServiceTestSuite) TestCreateTask_AbsentWorkspaceFailsClosed() {
	_, err := suite.service.CreateTask(suite.ctx, CreateTaskInput{
		WorkspaceID: "ghost",
		Title:       "Orphan task",
		CreatorID:   "u1",
	})

	assert.ErrorIs(suite.T(), err, ErrNotWorkspaceMember)
}

func (suite *TaskServiceTestSuite) TestCreateTask_InvalidEnums() {
	suite.createTestWorkspace("w1", "u1")

	_, err := suite.service.CreateTask(suite.ctx, CreateTaskInput{
		WorkspaceID: "w1", Title: "Bad status", Status: "done", CreatorID: "u1",
	})
	assert.ErrorIs(suite.T(), err, ErrInvalidStatus)

	_, err = suite.service.CreateTask(suite.ctx, CreateTaskInput{
		WorkspaceID: "w1", Title: "Bad priority", Priority: "critical", CreatorID: "u1",
	})
	assert.ErrorIs(suite.T(), err, ErrInvalidPriority)
}

func (suite *TaskServiceTestSuite) TestCreateTask_WithAssignee() {
	suite.createTestWorkspace("w1", "u1", "u2")
	assignee := "u2"

	task, err := suite.service.CreateTask(suite.ctx, CreateTaskInput{
		WorkspaceID: "w1",
		Title:       "Assigned task",
		AssignedTo:  &assignee,
		CreatorID:   "u1",
	})

	suite.Require().NoError(err)
	suite.Require().NotNil(task.AssignedTo)
	assert.Equal(suite.T(), "u2", *task.AssignedTo)
	assert.Equal(suite.T(), "USER#u2", task.GSI1PK)
}

func (suite *TaskServiceTestSuite) TestCreateTask_AutoAssign() {
	workspace := suite.createTestWorkspace("w1", "u1")
	workspace.Settings.TaskAutoAssign = true
	suite.Require().NoError(suite.workspaceRepo.Save(suite.ctx, workspace))

	task := suite.createTestTask("w1", "u1", "Auto-assigned")

	suite.Require().NotNil(task.AssignedTo)
	assert.Equal(suite.T(), "u1", *task.AssignedTo)
}

func (suite *TaskServiceTestSuite) TestGetTask_RoundTrip() {
	suite.createTestWorkspace("w1", "u1")
	created := suite.createTestTask("w1", "u1", "Round trip")

	got, err := suite.service.GetTask(suite.ctx, "w1", "u1", created.TaskID)

	suite.Require().NoError(err)
	assert.Equal(suite.T(), created, got)
}

func (suite *TaskServiceTestSuite) TestGetTask_NotFoundPrecedesMembership() {
	// A wrong task ID surfaces not-found even to a user with no workspace
	// access at all.
	suite.createTestWorkspace("w1", "u1")

	_, err := suite.service.GetTask(suite.ctx, "w1", "u3", "nonexistent")

	assert.ErrorIs(suite.T(), err, ErrTaskNotFound)
}

func (suite *TaskServiceTestSuite) TestGetTask_NonMember() {
	suite.createTestWorkspace("w1", "u1", "u2")
	task := suite.createTestTask("w1", "u1", "Secret task")

	_, err := suite.service.GetTask(suite.ctx, "w1", "u3", task.TaskID)

	assert.ErrorIs(suite.T(), err, ErrNotWorkspaceMember)
}

func (suite *TaskServiceTestSuite) TestGetTask_MissingWorkspaceID() {
	_, err := suite.service.GetTask(suite.ctx, "", "u1", "t1")
	assert.ErrorIs(suite.T(), err, ErrWorkspaceIDRequired)
}

func (suite *TaskServiceTestSuite) TestUpdateTask_ByMember() {
	suite.createTestWorkspace("w1", "u1", "u2")
	created := suite.createTestTask("w1", "u1", "Ship release")

	updated, err := suite.service.UpdateTask(suite.ctx, "w1", "u2", created.TaskID, map[string]any{
		"status": "in_progress",
	})

	suite.Require().NoError(err)
	assert.Equal(suite.T(), models.TaskStatusInProgress, updated.Status)
	assert.Equal(suite.T(), created.Title, updated.Title)
	assert.Equal(suite.T(), created.CreatedBy, updated.CreatedBy)
	assert.GreaterOrEqual(suite.T(), updated.UpdatedAt, created.UpdatedAt)
}

func (suite *TaskServiceTestSuite) TestUpdateTask_EmptyChangeSet() {
	suite.createTestWorkspace("w1", "u1")
	created := suite.createTestTask("w1", "u1", "Untouchable")

	_, err := suite.service.UpdateTask(suite.ctx, "w1", "u1", created.TaskID, map[string]any{
		"taskId":    "forged",
		"createdBy": "forged",
	})

	assert.ErrorIs(suite.T(), err, ErrNoUpdatableFields)
}

func (suite *TaskServiceTestSuite) TestUpdateTask_ImmutableFieldsDropped() {
	suite.createTestWorkspace("w1", "u1")
	created := suite.createTestTask("w1", "u1", "Keep creator")

	updated, err := suite.service.UpdateTask(suite.ctx, "w1", "u1", created.TaskID, map[string]any{
		"createdBy": "u9",
		"priority":  "urgent",
	})

	suite.Require().NoError(err)
	assert.Equal(suite.T(), "u1", updated.CreatedBy)
	assert.Equal(suite.T(), models.TaskPriorityUrgent, updated.Priority)
}

func (suite *TaskServiceTestSuite) TestUpdateTask_NotFound() {
	suite.createTestWorkspace("w1", "u1")

	_, err := suite.service.UpdateTask(suite.ctx, "w1", "u3", "nonexistent", map[string]any{
		"status": "completed",
	})

	assert.ErrorIs(suite.T(), err, ErrTaskNotFound)
}

func (suite *TaskServiceTestSuite) TestUpdateTask_NonMember() {
	suite.createTestWorkspace("w1", "u1")
	created := suite.createTestTask("w1", "u1", "Locked down")

	_, err := suite.service.UpdateTask(suite.ctx, "w1", "u3", created.TaskID, map[string]any{
		"status": "completed",
	})

	assert.ErrorIs(suite.T(), err, ErrNotWorkspaceMember)
}

func (suite *TaskServiceTestSuite) TestUpdateTask_ReassignMovesIndex() {
	suite.createTestWorkspace("w1", "u1", "u2")
	created := suite.createTestTask("w1", "u1", "Handover")

	updated, err := suite.service.UpdateTask(suite.ctx, "w1", "u1", created.TaskID, map[string]any{
		"assignedTo": "u2",
	})
	suite.Require().NoError(err)
	assert.Equal(suite.T(), "USER#u2", updated.GSI1PK)

	assigned, err := suite.service.ListAssignedTasks(suite.ctx, "u2")
	suite.Require().NoError(err)
	suite.Require().Len(assigned, 1)
	assert.Equal(suite.T(), created.TaskID, assigned[0].TaskID)

	// Clearing the assignee keys the task back to its creator.
	updated, err = suite.service.UpdateTask(suite.ctx, "w1", "u1", created.TaskID, map[string]any{
		"assignedTo": nil,
	})
	suite.Require().NoError(err)
	assert.Nil(suite.T(), updated.AssignedTo)
	assert.Equal(suite.T(), "USER#u1", updated.GSI1PK)
}

func (suite *TaskServiceTestSuite) TestDeleteTask_Success() {
	suite.createTestWorkspace("w1", "u1")
	created := suite.createTestTask("w1", "u1", "Doomed")

	err := suite.service.DeleteTask(suite.ctx, "w1", "u1", created.TaskID)
	suite.Require().NoError(err)

	_, err = suite.service.GetTask(suite.ctx, "w1", "u1", created.TaskID)
	assert.ErrorIs(suite.T(), err, ErrTaskNotFound)
}

func (suite *TaskServiceTestSuite) TestDeleteTask_NotFound() {
	suite.createTestWorkspace("w1", "u1", "u2")

	err := suite.service.DeleteTask(suite.ctx, "w1", "u1", "nonexistent")
	assert.ErrorIs(suite.T(), err, ErrTaskNotFound)
}

func (suite *TaskServiceTestSuite) TestDeleteTask_NonMember() {
	suite.createTestWorkspace("w1", "u1")
	created := suite.createTestTask("w1", "u1", "Protected")

	err := suite.service.DeleteTask(suite.ctx, "w1", "u3", created.TaskID)
	assert.ErrorIs(suite.T(), err, ErrNotWorkspaceMember)

	_, err = suite.service.GetTask(suite.ctx, "w1", "u1", created.TaskID)
	assert.NoError(suite.T(), err)
}

func (suite *TaskServiceTestSuite) TestListTasks_MemberSeesFullList() {
	suite.createTestWorkspace("w1", "u1", "u2")
	suite.createTestTask("w1", "u1", "First")
	suite.createTestTask("w1", "u2", "Second")

	tasks, err := suite.service.ListTasks(suite.ctx, "w1", "u2")

	suite.Require().NoError(err)
	assert.Len(suite.T(), tasks, 2)
}

func (suite *TaskServiceTestSuite) TestListTasks_Validation() {
	_, err := suite.service.ListTasks(suite.ctx, "", "u1")
	assert.ErrorIs(suite.T(), err, ErrWorkspaceIDRequired)
}

func (suite *TaskServiceTestSuite) TestListTasks_NonMember() {
	suite.createTestWorkspace("w1", "u1")

	_, err := suite.service.ListTasks(suite.ctx, "w1", "u3")
	assert.ErrorIs(suite.T(), err, ErrNotWorkspaceMember)

	_, err = suite.service.ListTasks(suite.ctx, "ghost", "u1")
	assert.ErrorIs(suite.T(), err, ErrNotWorkspaceMember)
}

func (suite *TaskServiceTestSuite) TestListAssignedTasks() {
	suite.createTestWorkspace("w1", "u1", "u2")
	suite.createTestTask("w1", "u1", "Mine by creation")

	assignee := "u1"
	_, err := suite.service.CreateTask(suite.ctx, CreateTaskInput{
		WorkspaceID: "w1",
		Title:       "Mine by assignment",
		AssignedTo:  &assignee,
		CreatorID:   "u2",
	})
	suite.Require().NoError(err)

	tasks, err := suite.service.ListAssignedTasks(suite.ctx, "u1")

	suite.Require().NoError(err)
	assert.Len(suite.T(), tasks, 2)
}

func TestTaskServiceTestSuite(t *testing.T) {
	suite.Run(t, new(TaskServiceTestSuite))
}
