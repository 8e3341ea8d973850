package store

import (
	"encoding/json"
	"errors"
	"fmt"
	"math"
	"time"

	"github.com/sandeepkv93/todo/internal/model"
)

// timeLayout matches what JavaScript's Date.toISOString produces, so blobs
// written by older clients load unchanged.
const timeLayout = "2006-01-02T15:04:05.000Z07:00"

var errNotArray = errors.New("top-level value is not an array")

type record struct {
	ID          string  `json:"id"`
	Description string  `json:"description"`
	Completed   bool    `json:"completed"`
	Priority    int     `json:"priority"`
	CreatedAt   string  `json:"createdAt"`
	CompletedAt *string `json:"completedAt,omitempty"`
}

func formatTime(t time.Time) string {
	return t.UTC().Format(timeLayout)
}

func parseTime(raw string) (time.Time, error) {
	return time.Parse(time.RFC3339Nano, raw)
}

// Export renders tasks in the same JSON form the store persists.
func Export(tasks []model.Task) (string, error) {
	return encodeTasks(tasks)
}

func encodeTasks(tasks []model.Task) (string, error) {
	out := make([]record, 0, len(tasks))
	for _, t := range tasks {
		rec := record{
			ID:          t.ID,
			Description: t.Description,
			Completed:   t.Completed,
			Priority:    int(t.Priority),
			CreatedAt:   formatTime(t.CreatedAt),
		}
		if t.CompletedAt != nil {
			at := formatTime(*t.CompletedAt)
			rec.CompletedAt = &at
		}
		out = append(out, rec)
	}
	raw, err := json.Marshal(out)
	if err != nil {
		return "", err
	}
	return string(raw), nil
}

// droppedRecord describes one element skipped while decoding.
type droppedRecord struct {
	Index  int
	Reason error
}

// decodeTasks parses a persisted blob. A structural failure returns an error
// and no tasks; individual elements that fail validation are skipped and
// reported in dropped.
func decodeTasks(blob string) (tasks []model.Task, dropped []droppedRecord, err error) {
	var elems []json.RawMessage
	if err := json.Unmarshal([]byte(blob), &elems); err != nil {
		var typeErr *json.UnmarshalTypeError
		if errors.As(err, &typeErr) {
			return nil, nil, errNotArray
		}
		return nil, nil, err
	}
	if elems == nil {
		// "null" decodes without error but is not a sequence.
		return nil, nil, errNotArray
	}

	tasks = make([]model.Task, 0, len(elems))
	seen := make(map[string]bool, len(elems))
	for i, elem := range elems {
		task, decErr := decodeRecord(elem)
		if decErr == nil && seen[task.ID] {
			decErr = fmt.Errorf("%w: duplicate id %q", model.ErrInvalidTask, task.ID)
		}
		if decErr != nil {
			dropped = append(dropped, droppedRecord{Index: i, Reason: decErr})
			continue
		}
		seen[task.ID] = true
		tasks = append(tasks, task)
	}
	return tasks, dropped, nil
}

// decodeRecord checks one element the way a JavaScript loader would: keys
// match exactly, a JSON null counts as absent, and any integral number is
// accepted as a priority.
func decodeRecord(elem json.RawMessage) (model.Task, error) {
	var fields map[string]json.RawMessage
	if err := json.Unmarshal(elem, &fields); err != nil || fields == nil {
		return model.Task{}, fmt.Errorf("%w: element is not an object", model.ErrInvalidTask)
	}

	var desc string
	found, err := field(fields, "description", &desc)
	if err == nil && !found {
		found, err = field(fields, "task", &desc)
	}
	if err != nil || !found {
		return model.Task{}, fmt.Errorf("%w: description is not a string", model.ErrInvalidTask)
	}
	var completed bool
	if found, err := field(fields, "completed", &completed); err != nil || !found {
		return model.Task{}, fmt.Errorf("%w: completed is not a boolean", model.ErrInvalidTask)
	}
	var rawPriority float64
	found, err = field(fields, "priority", &rawPriority)
	if err != nil || !found || rawPriority != math.Trunc(rawPriority) {
		return model.Task{}, fmt.Errorf("%w: priority is not an integer", model.ErrInvalidPriority)
	}
	if rawPriority < float64(model.PriorityHigh) || rawPriority > float64(model.PriorityLow) {
		return model.Task{}, fmt.Errorf("%w: %v", model.ErrInvalidPriority, rawPriority)
	}
	var id string
	if found, err := field(fields, "id", &id); err != nil || !found {
		return model.Task{}, fmt.Errorf("%w: id is not a string", model.ErrInvalidTask)
	}
	var createdRaw string
	if found, err := field(fields, "createdAt", &createdRaw); err != nil || !found {
		return model.Task{}, fmt.Errorf("%w: createdAt is missing", model.ErrInvalidTask)
	}
	createdAt, err := parseTime(createdRaw)
	if err != nil {
		return model.Task{}, fmt.Errorf("%w: createdAt: %v", model.ErrInvalidTask, err)
	}

	task := model.Task{
		ID:          id,
		Description: desc,
		Priority:    model.Priority(rawPriority),
		Completed:   completed,
		CreatedAt:   createdAt,
	}
	var completedRaw string
	found, err = field(fields, "completedAt", &completedRaw)
	if err != nil {
		return model.Task{}, fmt.Errorf("%w: completedAt is not a string", model.ErrInvalidTask)
	}
	if found {
		at, err := parseTime(completedRaw)
		if err != nil {
			return model.Task{}, fmt.Errorf("%w: completedAt: %v", model.ErrInvalidTask, err)
		}
		task.CompletedAt = &at
	}
	if err := task.Validate(); err != nil {
		return model.Task{}, err
	}
	return task, nil
}

// field decodes fields[name] into dst and reports whether the key was present
// with a non-null value.
func field(fields map[string]json.RawMessage, name string, dst any) (bool, error) {
	raw, ok := fields[name]
	if !ok || string(raw) == "null" {
		return false, nil
	}
	return true, json.Unmarshal(raw, dst)
}
