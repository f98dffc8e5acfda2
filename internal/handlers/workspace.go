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

// WorkspaceHandler coordinates workspace HTTP handlers.
type WorkspaceHandler struct {
	workspaceService *services.WorkspaceService
}

// NewWorkspaceHandler creates a new WorkspaceHandler.
func NewWorkspaceHandler(workspaceService *services.WorkspaceService) *WorkspaceHandler {
	return &WorkspaceHandler{workspaceService: workspaceService}
}

// CreateWorkspace creates a workspace owned by the caller.
func (h *WorkspaceHandler) CreateWorkspace(c *gin.Context) {
	userID, exists := middleware.GetUserID(c)
	if !exists {
		response.Unauthorized(c, "")
		return
	}

	var req dto.CreateWorkspaceRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "Invalid request body")
		return
	}

	workspace, err := h.workspaceService.CreateWorkspace(c.Request.Context(), services.CreateWorkspaceInput{
		Name:        req.Name,
		Description: req.Description,
		OwnerID:     userID,
	})
	if err != nil {
		respondWorkspaceError(c, err)
		return
	}

	response.Success(c, http.StatusCreated, gin.H{"workspace": workspace})
}

// GetWorkspace returns a workspace to one of its members.
func (h *WorkspaceHandler) GetWorkspace(c *gin.Context) {
	userID, exists := middleware.GetUserID(c)
	if !exists {
		response.Unauthorized(c, "")
		return
	}

	workspace, err := h.workspaceService.GetWorkspace(c.Request.Context(), c.Param("id"), userID)
	if err != nil {
		respondWorkspaceError(c, err)
		return
	}

	response.Success(c, http.StatusOK, gin.H{"workspace": workspace})
}

// AddMember adds a user to the workspace member set.
func (h *WorkspaceHandler) AddMember(c *gin.Context) {
	userID, exists := middleware.GetUserID(c)
	if !exists {
		response.Unauthorized(c, "")
		return
	}

	var req dto.AddMemberRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "User ID is required")
		return
	}

	workspace, err := h.workspaceService.AddMember(c.Request.Context(), c.Param("id"), userID, req.UserID)
	if err != nil {
		respondWorkspaceError(c, err)
		return
	}

	response.Success(c, http.StatusOK, gin.H{"workspace": workspace})
}

// RemoveMember removes a user from the workspace member set.
func (h *WorkspaceHandler) RemoveMember(c *gin.Context) {
	userID, exists := middleware.GetUserID(c)
	if !exists {
		response.Unauthorized(c, "")
		return
	}

	workspace, err := h.workspaceService.RemoveMember(c.Request.Context(), c.Param("id"), userID, c.Param("userId"))
	if err != nil {
		respondWorkspaceError(c, err)
		return
	}

	response.Success(c, http.StatusOK, gin.H{"workspace": workspace})
}

func respondWorkspaceError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, services.ErrWorkspaceNameRequired),
		errors.Is(err, services.ErrCannotRemoveOwner):
		response.BadRequest(c, err.Error())
	case errors.Is(err, services.ErrNotWorkspaceMember):
		response.Unauthorized(c, "No access to this workspace")
	case errors.Is(err, services.ErrNotWorkspaceOwner),
		errors.Is(err, services.ErrInvitesDisabled):
		response.Unauthorized(c, err.Error())
	case errors.Is(err, services.ErrWorkspaceNotFound):
		response.NotFound(c, "Workspace not found")
	case errors.Is(err, services.ErrMemberNotFound):
		response.NotFound(c, err.Error())
	case errors.Is(err, services.ErrAlreadyMember):
		response.Conflict(c, err.Error())
	default:
		log.Error().Err(err).Msg("workspace operation failed")
		response.InternalError(c, "Failed to process workspace operation")
	}
}
