package dto

// CreateTaskRequest is the body of POST /tasks. Status and priority fall back
// to their defaults when omitted; assignedTo and dueDate stay null.
type CreateTaskRequest struct {
	WorkspaceID string  `json:"workspaceId"`
	Title       string  `json:"title"`
	Description string  `json:"description"`
	Status      string  `json:"status"`
	Priority    string  `json:"priority"`
	AssignedTo  *string `json:"assignedTo"`
	DueDate     *string `json:"dueDate"`
}
