package services

import (
	"errors"

	"github.com/taskmaster/taskmaster-api/internal/models"
	"github.com/taskmaster/taskmaster-api/internal/repository"
)

var (
	ErrNoUpdatableFields = errors.New("no valid fields to update")
	ErrTitleEmpty        = errors.New("title cannot be empty")
	ErrInvalidStatus     = errors.New("invalid task status")
	ErrInvalidPriority   = errors.New("invalid task priority")
	ErrInvalidFieldValue = errors.New("invalid field value")
)

// taskUpdatableFields is the fixed set of attributes a partial update may
// touch. Identifiers, createdBy, timestamps, and the tag/attachment sets are
// never accepted; anything outside this set is silently dropped.
var taskUpdatableFields = []string{"title", "description", "status", "priority", "assignedTo", "dueDate"}

// ComputeChangeSet computes the sanitized, minimal attribute changes for a
// partial update request. Keys outside the updatable set are dropped, absent
// values are skipped, and enum fields are validated against their variant
// sets. A non-empty change set always gains updatedAt stamped with now.
func ComputeChangeSet(requested map[string]any, now string) (repository.ChangeSet, error) {
	changes := repository.ChangeSet{}

	for _, key := range taskUpdatableFields {
		value, ok := requested[key]
		if !ok {
			continue
		}
		if err := validateUpdateValue(key, value); err != nil {
			return nil, err
		}
		changes[key] = value
	}

	if len(changes) == 0 {
		return nil, ErrNoUpdatableFields
	}

	changes["updatedAt"] = now
	return changes, nil
}

func validateUpdateValue(key string, value any) error {
	switch key {
	case "title":
		v, ok := value.(string)
		if !ok || v == "" {
			return ErrTitleEmpty
		}
	case "description":
		if _, ok := value.(string); !ok {
			return ErrInvalidFieldValue
		}
	case "status":
		v, ok := value.(string)
		if !ok || !models.TaskStatus(v).IsValid() {
			return ErrInvalidStatus
		}
	case "priority":
		v, ok := value.(string)
		if !ok || !models.TaskPriority(v).IsValid() {
			return ErrInvalidPriority
		}
	case "assignedTo", "dueDate":
		// Null clears the field; otherwise a string is required.
		if value == nil {
			return nil
		}
		if _, ok := value.(string); !ok {
			return ErrInvalidFieldValue
		}
	}
	return nil
}
