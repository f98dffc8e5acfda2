package models

type TaskStatus string

const (
	TaskStatusTodo       TaskStatus = "todo"
	TaskStatusInProgress TaskStatus = "in_progress"
	TaskStatusCompleted  TaskStatus = "completed"
	TaskStatusCancelled  TaskStatus = "cancelled"
)

// IsValid reports whether the status is one of the enumerated variants.
func (s TaskStatus) IsValid() bool {
	switch s {
	case TaskStatusTodo, TaskStatusInProgress, TaskStatusCompleted, TaskStatusCancelled:
		return true
	}
	return false
}

type TaskPriority string

const (
	TaskPriorityLow    TaskPriority = "low"
	TaskPriorityMedium TaskPriority = "medium"
	TaskPriorityHigh   TaskPriority = "high"
	TaskPriorityUrgent TaskPriority = "urgent"
)

// IsValid reports whether the priority is one of the enumerated variants.
func (p TaskPriority) IsValid() bool {
	switch p {
	case TaskPriorityLow, TaskPriorityMedium, TaskPriorityHigh, TaskPriorityUrgent:
		return true
	}
	return false
}

// Task is stored at PK=WORKSPACE#<id>, SK=TASK#<id>. GSI1PK/GSI1SK form the
// UserIndex key for assignee-centric lookup: the assignee when set, otherwise
// the creator. A task belongs to exactly one workspace for its lifetime and
// CreatedBy never changes.
type Task struct {
	PK          string       `dynamodbav:"PK" json:"-"`
	SK          string       `dynamodbav:"SK" json:"-"`
	TaskID      string       `dynamodbav:"taskId" json:"taskId"`
	WorkspaceID string       `dynamodbav:"workspaceId" json:"workspaceId"`
	Title       string       `dynamodbav:"title" json:"title"`
	Description string       `dynamodbav:"description" json:"description"`
	Status      TaskStatus   `dynamodbav:"status" json:"status"`
	Priority    TaskPriority `dynamodbav:"priority" json:"priority"`
	AssignedTo  *string      `dynamodbav:"assignedTo" json:"assignedTo"`
	CreatedBy   string       `dynamodbav:"createdBy" json:"createdBy"`
	DueDate     *string      `dynamodbav:"dueDate" json:"dueDate"`
	Tags        []string     `dynamodbav:"tags" json:"tags"`
	Attachments []string     `dynamodbav:"attachments" json:"attachments"`
	CreatedAt   string       `dynamodbav:"createdAt" json:"createdAt"`
	UpdatedAt   string       `dynamodbav:"updatedAt" json:"updatedAt"`
	GSI1PK      string       `dynamodbav:"GSI1PK" json:"-"`
	GSI1SK      string       `dynamodbav:"GSI1SK" json:"-"`
}

// SetKeys derives the composite key and UserIndex key from the task's
// current attributes.
func (t *Task) SetKeys() {
	t.PK = WorkspaceKey(t.WorkspaceID)
	t.SK = TaskKey(t.TaskID)
	t.GSI1PK = UserRef(t.AccessUserID())
	t.GSI1SK = TaskKey(t.TaskID)
}

// AccessUserID returns the user the secondary-access key is derived from:
// the assignee when set, otherwise the creator.
func (t *Task) AccessUserID() string {
	if t.AssignedTo != nil && *t.AssignedTo != "" {
		return *t.AssignedTo
	}
	return t.CreatedBy
}
