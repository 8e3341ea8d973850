package commands

import (
	"fmt"
	"strconv"
	"strings"
)

type Type string

const (
	TypeAdd    Type = "add"
	TypeDone   Type = "done"
	TypeEdit   Type = "edit"
	TypeDelete Type = "rm"
)

// aliases maps alternative spellings onto a canonical Type.
var aliases = map[string]Type{
	"add":      TypeAdd,
	"a":        TypeAdd,
	"done":     TypeDone,
	"complete": TypeDone,
	"edit":     TypeEdit,
	"rm":       TypeDelete,
	"delete":   TypeDelete,
	"del":      TypeDelete,
}

type ErrorCode string

const (
	ErrCodeEmptyInput      ErrorCode = "empty_input"
	ErrCodeUnknownCommand  ErrorCode = "unknown_command"
	ErrCodeInvalidArgument ErrorCode = "invalid_argument"
	ErrCodeHandlerMissing  ErrorCode = "handler_missing"
)

type CommandError struct {
	Code    ErrorCode
	Message string
}

func (e *CommandError) Error() string {
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

// AddArgs carries the priority exactly as typed. HasPriority is false when
// the command gave none; range checks belong to the store.
type AddArgs struct {
	Priority    int
	HasPriority bool
	Description string
}

type DoneArgs struct {
	Target string
}

type EditArgs struct {
	Target      string
	Description string
}

type DeleteArgs struct {
	Target string
}

type Command struct {
	Type   Type
	Raw    string
	Add    *AddArgs
	Done   *DoneArgs
	Edit   *EditArgs
	Delete *DeleteArgs
}

func Parse(input string) (Command, error) {
	raw := strings.TrimSpace(input)
	raw = strings.TrimSpace(strings.TrimPrefix(raw, "/"))
	if raw == "" {
		return Command{}, &CommandError{Code: ErrCodeEmptyInput, Message: "command is empty"}
	}

	parts := strings.Fields(raw)
	head := strings.ToLower(parts[0])
	args := parts[1:]

	typ, ok := aliases[head]
	if !ok {
		return Command{}, &CommandError{Code: ErrCodeUnknownCommand, Message: fmt.Sprintf("unsupported command: %s", head)}
	}
	switch typ {
	case TypeAdd:
		return parseAdd(input, args)
	case TypeDone:
		if len(args) != 1 {
			return Command{}, &CommandError{Code: ErrCodeInvalidArgument, Message: "done requires exactly one task id"}
		}
		return Command{Type: TypeDone, Raw: input, Done: &DoneArgs{Target: args[0]}}, nil
	case TypeEdit:
		if len(args) < 2 {
			return Command{}, &CommandError{Code: ErrCodeInvalidArgument, Message: "edit requires a task id and new text"}
		}
		return Command{Type: TypeEdit, Raw: input, Edit: &EditArgs{Target: args[0], Description: strings.Join(args[1:], " ")}}, nil
	default:
		if len(args) != 1 {
			return Command{}, &CommandError{Code: ErrCodeInvalidArgument, Message: "rm requires exactly one task id"}
		}
		return Command{Type: TypeDelete, Raw: input, Delete: &DeleteArgs{Target: args[0]}}, nil
	}
}

// parseAdd accepts "add [N|pN] text". A leading integer is always taken as
// the priority, so "add 4 x" reaches the store and is rejected there.
func parseAdd(raw string, args []string) (Command, error) {
	add := &AddArgs{}
	if len(args) > 1 {
		if p, ok := parsePriorityToken(args[0]); ok {
			add.Priority = p
			add.HasPriority = true
			args = args[1:]
		}
	}
	add.Description = strings.TrimSpace(strings.Join(args, " "))
	if add.Description == "" {
		return Command{}, &CommandError{Code: ErrCodeInvalidArgument, Message: "add requires a description"}
	}
	return Command{Type: TypeAdd, Raw: raw, Add: add}, nil
}

func parsePriorityToken(tok string) (int, bool) {
	tok = strings.TrimPrefix(strings.ToLower(tok), "p")
	n, err := strconv.Atoi(tok)
	if err != nil {
		return 0, false
	}
	return n, true
}
