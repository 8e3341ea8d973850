package model

import (
	"errors"
	"testing"
	"time"
)

func TestTaskValidateSuccess(t *testing.T) {
	now := time.Date(2026, 2, 9, 12, 0, 0, 0, time.UTC)
	task := Task{
		ID:          "task-1",
		Description: "Buy milk",
		Priority:    PriorityMedium,
		CreatedAt:   now,
	}
	if err := task.Validate(); err != nil {
		t.Fatalf("expected valid task, got error: %v", err)
	}
}

func TestTaskValidateCompletedRequiresCompletedAt(t *testing.T) {
	now := time.Date(2026, 2, 9, 12, 0, 0, 0, time.UTC)
	task := Task{
		ID:          "task-1",
		Description: "Done task",
		Priority:    PriorityHigh,
		Completed:   true,
		CreatedAt:   now,
	}
	if err := task.Validate(); !errors.Is(err, ErrCompletedAtMissing) {
		t.Fatalf("expected ErrCompletedAtMissing, got: %v", err)
	}

	task.Completed = false
	task.CompletedAt = &now
	if err := task.Validate(); !errors.Is(err, ErrCompletedAtPresent) {
		t.Fatalf("expected ErrCompletedAtPresent, got: %v", err)
	}
}

func TestTaskValidateRejectsBadFields(t *testing.T) {
	now := time.Date(2026, 2, 9, 12, 0, 0, 0, time.UTC)
	task := Task{
		ID:          "task-1",
		Description: "  ",
		Priority:    PriorityLow,
		CreatedAt:   now,
	}
	if err := task.Validate(); !errors.Is(err, ErrEmptyDescription) {
		t.Fatalf("expected ErrEmptyDescription, got: %v", err)
	}

	task.Description = "ok"
	for _, p := range []Priority{0, 4, -1} {
		task.Priority = p
		if err := task.Validate(); !errors.Is(err, ErrInvalidPriority) {
			t.Fatalf("priority %d: expected ErrInvalidPriority, got: %v", p, err)
		}
	}

	task.Priority = PriorityLow
	task.ID = ""
	if err := task.Validate(); !errors.Is(err, ErrInvalidTask) {
		t.Fatalf("expected ErrInvalidTask for missing id, got: %v", err)
	}

	task.ID = "task-1"
	task.CreatedAt = time.Time{}
	if err := task.Validate(); !errors.Is(err, ErrInvalidTask) {
		t.Fatalf("expected ErrInvalidTask for missing created_at, got: %v", err)
	}
}

func TestNormalizeDescription(t *testing.T) {
	got, err := NormalizeDescription("  Call Alice \n")
	if err != nil || got != "Call Alice" {
		t.Fatalf("unexpected normalize result: %q, %v", got, err)
	}
	if _, err := NormalizeDescription(" \t "); !errors.Is(err, ErrEmptyDescription) {
		t.Fatalf("expected ErrEmptyDescription, got: %v", err)
	}
}

func TestPriorityCycle(t *testing.T) {
	if PriorityHigh.Next() != PriorityMedium || PriorityLow.Next() != PriorityHigh {
		t.Fatal("unexpected Next cycle")
	}
	if PriorityHigh.Prev() != PriorityLow || PriorityMedium.Prev() != PriorityHigh {
		t.Fatal("unexpected Prev cycle")
	}
	if Priority(9).Next() != PriorityHigh {
		t.Fatal("expected invalid priority to restart at High")
	}
	if PriorityMedium.String() != "Medium" || Priority(7).String() != "Priority(7)" {
		t.Fatalf("unexpected labels: %s %s", PriorityMedium, Priority(7))
	}
}

func TestCloneDoesNotShareCompletedAt(t *testing.T) {
	at := time.Date(2026, 2, 9, 12, 0, 0, 0, time.UTC)
	task := Task{ID: "a", Description: "x", Priority: PriorityHigh, Completed: true, CreatedAt: at, CompletedAt: &at}
	cp := task.Clone()
	*cp.CompletedAt = at.Add(time.Hour)
	if !task.CompletedAt.Equal(at) {
		t.Fatalf("clone mutation leaked into original: %v", task.CompletedAt)
	}
}
