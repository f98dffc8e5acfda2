package models

type WorkspaceTier string

const (
	WorkspaceTierFree       WorkspaceTier = "free"
	WorkspaceTierTeam       WorkspaceTier = "team"
	WorkspaceTierEnterprise WorkspaceTier = "enterprise"
)

// WorkspaceSettings controls workspace-level behavior.
type WorkspaceSettings struct {
	IsPublic       bool `dynamodbav:"isPublic" json:"isPublic"`
	AllowInvites   bool `dynamodbav:"allowInvites" json:"allowInvites"`
	TaskAutoAssign bool `dynamodbav:"taskAutoAssign" json:"taskAutoAssign"`
}

// Workspace is stored at PK=WORKSPACE#<id>, SK=METADATA. Members holds
// USER#<id> references and is the sole source of truth for task access;
// it always contains the owner.
type Workspace struct {
	PK           string            `dynamodbav:"PK" json:"-"`
	SK           string            `dynamodbav:"SK" json:"-"`
	WorkspaceID  string            `dynamodbav:"workspaceId" json:"workspaceId"`
	Name         string            `dynamodbav:"name" json:"name"`
	Description  string            `dynamodbav:"description,omitempty" json:"description,omitempty"`
	Owner        string            `dynamodbav:"owner" json:"owner"`
	Members      []string          `dynamodbav:"members" json:"members"`
	Settings     WorkspaceSettings `dynamodbav:"settings" json:"settings"`
	Subscription WorkspaceTier     `dynamodbav:"subscription" json:"subscription"`
	CreatedAt    string            `dynamodbav:"createdAt" json:"createdAt"`
	UpdatedAt    string            `dynamodbav:"updatedAt" json:"updatedAt"`
}

// SetKeys derives the composite key from the workspace ID.
func (w *Workspace) SetKeys() {
	w.PK = WorkspaceKey(w.WorkspaceID)
	w.SK = WorkspaceMetadataSK
}

// IsMember reports whether the given user may act on resources in this
// workspace. A nil workspace is never a member; access fails closed.
func (w *Workspace) IsMember(userID string) bool {
	if w == nil {
		return false
	}
	ref := UserRef(userID)
	for _, m := range w.Members {
		if m == ref {
			return true
		}
	}
	return false
}

// IsOwner reports whether the given user owns this workspace.
func (w *Workspace) IsOwner(userID string) bool {
	return w != nil && w.Owner == UserRef(userID)
}
