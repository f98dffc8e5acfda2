package models

// Key prefixes for the composite-key item layout. Existing data depends on
// these exact values.
const (
	WorkspaceKeyPrefix = "WORKSPACE#"
	TaskKeyPrefix      = "TASK#"
	UserKeyPrefix      = "USER#"

	WorkspaceMetadataSK = "METADATA"
	UserProfileSK       = "PROFILE"
)

// WorkspaceKey returns the partition key for a workspace.
func WorkspaceKey(workspaceID string) string {
	return WorkspaceKeyPrefix + workspaceID
}

// TaskKey returns the sort key for a task.
func TaskKey(taskID string) string {
	return TaskKeyPrefix + taskID
}

// UserRef returns the USER# reference for a user ID, as stored in workspace
// member lists and the UserIndex partition key.
func UserRef(userID string) string {
	return UserKeyPrefix + userID
}
