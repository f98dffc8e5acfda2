package dto

// CreateWorkspaceRequest is the body of POST /workspaces.
type CreateWorkspaceRequest struct {
	Name        string `json:"name"`
	Description string `json:"description"`
}

// AddMemberRequest is the body of POST /workspaces/:id/members.
type AddMemberRequest struct {
	UserID string `json:"userId" binding:"required"`
}
