package model

import (
	"errors"
	"fmt"
	"strings"
	"time"
)

var (
	ErrInvalidTask        = errors.New("model: invalid task")
	ErrInvalidPriority    = errors.New("model: invalid task priority")
	ErrEmptyDescription   = errors.New("model: task description is required")
	ErrCompletedAtMissing = errors.New("model: completed_at is required when task is completed")
	ErrCompletedAtPresent = errors.New("model: completed_at must be nil when task is not completed")
)

// Priority is an ordinal level; 1 sorts first.
type Priority int

const (
	PriorityHigh   Priority = 1
	PriorityMedium Priority = 2
	PriorityLow    Priority = 3
)

// Priorities lists every valid level in display order.
var Priorities = []Priority{PriorityHigh, PriorityMedium, PriorityLow}

func (p Priority) IsValid() bool {
	switch p {
	case PriorityHigh, PriorityMedium, PriorityLow:
		return true
	default:
		return false
	}
}

func (p Priority) String() string {
	switch p {
	case PriorityHigh:
		return "High"
	case PriorityMedium:
		return "Medium"
	case PriorityLow:
		return "Low"
	default:
		return fmt.Sprintf("Priority(%d)", int(p))
	}
}

// Next cycles High -> Medium -> Low -> High. Invalid values restart at High.
func (p Priority) Next() Priority {
	switch p {
	case PriorityHigh:
		return PriorityMedium
	case PriorityMedium:
		return PriorityLow
	default:
		return PriorityHigh
	}
}

// Prev is the inverse of Next.
func (p Priority) Prev() Priority {
	switch p {
	case PriorityLow:
		return PriorityMedium
	case PriorityMedium:
		return PriorityHigh
	default:
		return PriorityLow
	}
}

type Task struct {
	ID          string
	Description string
	Priority    Priority
	Completed   bool
	CreatedAt   time.Time
	CompletedAt *time.Time
}

// NormalizeDescription trims surrounding whitespace and rejects what is left
// when it is empty.
func NormalizeDescription(raw string) (string, error) {
	trimmed := strings.TrimSpace(raw)
	if trimmed == "" {
		return "", ErrEmptyDescription
	}
	return trimmed, nil
}

// Clone returns a copy that shares no memory with t.
func (t Task) Clone() Task {
	out := t
	if t.CompletedAt != nil {
		at := *t.CompletedAt
		out.CompletedAt = &at
	}
	return out
}

func (t Task) Validate() error {
	if strings.TrimSpace(t.ID) == "" {
		return fmt.Errorf("%w: id is required", ErrInvalidTask)
	}
	if strings.TrimSpace(t.Description) == "" {
		return ErrEmptyDescription
	}
	if !t.Priority.IsValid() {
		return fmt.Errorf("%w: %d", ErrInvalidPriority, int(t.Priority))
	}
	if t.CreatedAt.IsZero() {
		return fmt.Errorf("%w: created_at is required", ErrInvalidTask)
	}
	if t.Completed && t.CompletedAt == nil {
		return ErrCompletedAtMissing
	}
	if !t.Completed && t.CompletedAt != nil {
		return ErrCompletedAtPresent
	}
	return nil
}
