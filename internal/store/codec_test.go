package store

import (
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/sandeepkv93/todo/internal/model"
)

func TestEncodeTasksWireFormat(t *testing.T) {
	created := time.Date(2026, 2, 9, 12, 0, 0, 0, time.UTC)
	done := created.Add(90 * time.Minute)
	blob, err := encodeTasks([]model.Task{
		{ID: "a", Description: "Buy milk", Priority: 2, CreatedAt: created},
		{ID: "b", Description: "Call Alice", Priority: 1, Completed: true, CreatedAt: created, CompletedAt: &done},
	})
	if err != nil {
		t.Fatalf("encode: %v", err)
	}
	want := `[{"id":"a","description":"Buy milk","completed":false,"priority":2,"createdAt":"2026-02-09T12:00:00.000Z"},` +
		`{"id":"b","description":"Call Alice","completed":true,"priority":1,"createdAt":"2026-02-09T12:00:00.000Z","completedAt":"2026-02-09T13:30:00.000Z"}]`
	if blob != want {
		t.Fatalf("unexpected blob:\n got %s\nwant %s", blob, want)
	}
}

func TestEncodeEmptyCollection(t *testing.T) {
	blob, err := encodeTasks(nil)
	if err != nil || blob != "[]" {
		t.Fatalf("expected [], got %q (%v)", blob, err)
	}
}

func TestDecodeTasksStructuralErrors(t *testing.T) {
	if _, _, err := decodeTasks(`{"id":"a"}`); !errors.Is(err, errNotArray) {
		t.Fatalf("expected errNotArray for object, got %v", err)
	}
	if _, _, err := decodeTasks(`null`); !errors.Is(err, errNotArray) {
		t.Fatalf("expected errNotArray for null, got %v", err)
	}
	if _, _, err := decodeTasks(`[{`); err == nil {
		t.Fatal("expected syntax error")
	}
}

func TestDecodeTasksReportsDroppedIndexes(t *testing.T) {
	tasks, dropped, err := decodeTasks(`[
		{"id":"a","description":"ok","completed":false,"priority":3,"createdAt":"2026-02-09T12:00:00.000Z"},
		{"id":"b","description":"bad","completed":false,"priority":0,"createdAt":"2026-02-09T12:00:00.000Z"},
		{"id":"c","description":"bad time","completed":false,"priority":1,"createdAt":"yesterday"}
	]`)
	if err != nil {
		t.Fatalf("decode: %v", err)
	}
	if len(tasks) != 1 || tasks[0].ID != "a" {
		t.Fatalf("unexpected tasks: %#v", tasks)
	}
	if len(dropped) != 2 || dropped[0].Index != 1 || dropped[1].Index != 2 {
		t.Fatalf("unexpected dropped: %#v", dropped)
	}
	if !errors.Is(dropped[0].Reason, model.ErrInvalidPriority) {
		t.Fatalf("expected priority reason, got %v", dropped[0].Reason)
	}
	if !strings.Contains(dropped[1].Reason.Error(), "createdAt") {
		t.Fatalf("expected createdAt reason, got %v", dropped[1].Reason)
	}
}

func TestDecodeAcceptsIntegralFloatPriority(t *testing.T) {
	tasks, dropped, err := decodeTasks(`[
		{"id":"a","description":"whole","completed":false,"priority":1.0,"createdAt":"2026-02-09T12:00:00.000Z"},
		{"id":"b","description":"exponent","completed":false,"priority":3e0,"createdAt":"2026-02-09T12:00:00.000Z"},
		{"id":"c","description":"fraction","completed":false,"priority":2.5,"createdAt":"2026-02-09T12:00:00.000Z"},
		{"id":"d","description":"huge","completed":false,"priority":1e300,"createdAt":"2026-02-09T12:00:00.000Z"}
	]`)
	if err != nil {
		t.Fatalf("decode: %v", err)
	}
	if len(tasks) != 2 || tasks[0].Priority != model.PriorityHigh || tasks[1].Priority != model.PriorityLow {
		t.Fatalf("unexpected tasks: %#v", tasks)
	}
	if len(dropped) != 2 || !errors.Is(dropped[0].Reason, model.ErrInvalidPriority) || !errors.Is(dropped[1].Reason, model.ErrInvalidPriority) {
		t.Fatalf("unexpected dropped: %#v", dropped)
	}
}

func TestDecodeMatchesKeysExactly(t *testing.T) {
	tasks, dropped, err := decodeTasks(`[
		{"id":"a","TASK":"upper legacy","completed":false,"priority":2,"createdAt":"2026-02-09T12:00:00.000Z"},
		{"id":"b","Description":"upper","completed":false,"priority":2,"createdAt":"2026-02-09T12:00:00.000Z"},
		{"id":"c","description":"upper flag","COMPLETED":false,"priority":2,"createdAt":"2026-02-09T12:00:00.000Z"},
		{"id":"d","description":null,"completed":false,"priority":2,"createdAt":"2026-02-09T12:00:00.000Z"},
		{"id":"e","task":"legacy","completed":false,"priority":2,"createdAt":"2026-02-09T12:00:00.000Z","completedAt":null}
	]`)
	if err != nil {
		t.Fatalf("decode: %v", err)
	}
	if len(tasks) != 1 || tasks[0].ID != "e" || tasks[0].Description != "legacy" || tasks[0].CompletedAt != nil {
		t.Fatalf("unexpected tasks: %#v", tasks)
	}
	if len(dropped) != 4 {
		t.Fatalf("expected 4 dropped, got %#v", dropped)
	}
	for _, d := range dropped {
		if !errors.Is(d.Reason, model.ErrInvalidTask) {
			t.Fatalf("index %d: expected invalid task reason, got %v", d.Index, d.Reason)
		}
	}
}

func TestDecodeKeepsCompletionInvariant(t *testing.T) {
	_, dropped, err := decodeTasks(`[
		{"id":"a","description":"done without time","completed":true,"priority":1,"createdAt":"2026-02-09T12:00:00.000Z"},
		{"id":"b","description":"no creation time","completed":false,"priority":1}
	]`)
	if err != nil {
		t.Fatalf("decode: %v", err)
	}
	if len(dropped) != 2 {
		t.Fatalf("expected both dropped, got %#v", dropped)
	}
	if !errors.Is(dropped[0].Reason, model.ErrCompletedAtMissing) {
		t.Fatalf("expected completedAt reason, got %v", dropped[0].Reason)
	}
	if !strings.Contains(dropped[1].Reason.Error(), "createdAt") {
		t.Fatalf("expected createdAt reason, got %v", dropped[1].Reason)
	}
}
