package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog/log"
	"github.com/taskmaster/taskmaster-api/internal/dto"
	"github.com/taskmaster/taskmaster-api/internal/middleware"
	"github.com/taskmaster/taskmaster-api/internal/response"
	"github.com/taskmaster/taskmaster-api/internal/services"
)

// TaskHandler coordinates task HTTP handlers.
type TaskHandler struct {
	taskService *services.TaskService
}

// NewTaskHandler creates a new TaskHandler.
func NewTaskHandler(taskService *services.TaskService) *TaskHandler {
	return &TaskHandler{taskService: taskService}
}

// ListTasks returns every task in the requested workspace.
func (h *TaskHandler) ListTasks(c *gin.Context) {
	userID, exists := middleware.GetUserID(c)
	if !exists {
		response.Unauthorized(c, "")
		return
	}

	tasks, err := h.taskService.ListTasks(c.Request.Context(), c.Query("workspaceId"), userID)
	if err != nil {
		respondTaskError(c, err)
		return
	}

	response.Success(c, http.StatusOK, gin.H{"tasks": tasks})
}

// ListAssignedTasks returns the tasks keyed to the current user on the
// user-centric index.
func (h *TaskHandler) ListAssignedTasks(c *gin.Context) {
	userID, exists := middleware.GetUserID(c)
	if !exists {
		response.Unauthorized(c, "")
		return
	}

	tasks, err := h.taskService.ListAssignedTasks(c.Request.Context(), userID)
	if err != nil {
		respondTaskError(c, err)
		return
	}

	response.Success(c, http.StatusOK, gin.H{"tasks": tasks})
}

// CreateTask creates a new task in a workspace.
func (h *TaskHandler) CreateTask(c *gin.Context) {
	userID, exists := middleware.GetUserID(c)
	if !exists {
		response.Unauthorized(c, "")
		return
	}

	var req dto.CreateTaskRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "Invalid request body")
		return
	}

	task, err := h.taskService.CreateTask(c.Request.Context(), services.CreateTaskInput{
		WorkspaceID: req.WorkspaceID,
		Title:       req.Title,
		Description: req.Description,
		Status:      req.Status,
		Priority:    req.Priority,
		AssignedTo:  req.AssignedTo,
		DueDate:     req.DueDate,
		CreatorID:   userID,
	})
	if err != nil {
		respondTaskError(c, err)
		return
	}

	response.Success(c, http.StatusCreated, gin.H{"task": task})
}

// GetTask returns a single task by ID.
func (h *TaskHandler) GetTask(c *gin.Context) {
	userID, exists := middleware.GetUserID(c)
	if !exists {
		response.Unauthorized(c, "")
		return
	}

	task, err := h.taskService.GetTask(c.Request.Context(), c.Query("workspaceId"), userID, c.Param("taskId"))
	if err != nil {
		respondTaskError(c, err)
		return
	}

	response.Success(c, http.StatusOK, gin.H{"task": task})
}

// UpdateTask applies a partial update to a task. The workspace ID comes from
// the body when present, falling back to the query parameter.
func (h *TaskHandler) UpdateTask(c *gin.Context) {
	userID, exists := middleware.GetUserID(c)
	if !exists {
		response.Unauthorized(c, "")
		return
	}

	var fields map[string]any
	if err := c.ShouldBindJSON(&fields); err != nil {
		response.BadRequest(c, "Invalid request body")
		return
	}

	workspaceID, _ := fields["workspaceId"].(string)
	if workspaceID == "" {
		workspaceID = c.Query("workspaceId")
	}

	task, err := h.taskService.UpdateTask(c.Request.Context(), workspaceID, userID, c.Param("taskId"), fields)
	if err != nil {
		respondTaskError(c, err)
		return
	}

	response.Success(c, http.StatusOK, gin.H{"task": task})
}

// DeleteTask removes a task.
func (h *TaskHandler) DeleteTask(c *gin.Context) {
	userID, exists := middleware.GetUserID(c)
	if !exists {
		response.Unauthorized(c, "")
		return
	}

	if err := h.taskService.DeleteTask(c.Request.Context(), c.Query("workspaceId"), userID, c.Param("taskId")); err != nil {
		respondTaskError(c, err)
		return
	}

	response.Success(c, http.StatusOK, gin.H{"message": "Task deleted successfully"})
}

func respondTaskError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, services.ErrWorkspaceIDRequired),
		errors.Is(err, services.ErrTitleRequired),
		errors.Is(err, services.ErrNoUpdatableFields),
		errors.Is(err, services.ErrTitleEmpty),
		errors.Is(err, services.ErrInvalidStatus),
		errors.Is(err, services.ErrInvalidPriority),
		errors.Is(err, services.ErrInvalidFieldValue):
		response.BadRequest(c, err.Error())
	case errors.Is(err, services.ErrNotWorkspaceMember):
		response.Unauthorized(c, "No access to this workspace")
	case errors.Is(err, services.ErrTaskNotFound):
		response.NotFound(c, "Task not found")
	default:
		log.Error().Err(err).Msg("task operation failed")
		response.InternalError(c, "Failed to process task operation")
	}
}
