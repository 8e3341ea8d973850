package views

import (
	"fmt"
	"strings"
)

// FormErrorText is shown when a submitted task is rejected.
const FormErrorText = "error: enter a task and choose a valid priority (1-3)"

type FormPanelData struct {
	InputView     string
	PriorityLabel string
	Priority      int
	Editing       bool
	Focused       bool
	ErrorText     string
}

type TaskRowData struct {
	ShortID       string
	Description   string
	Priority      int
	PriorityLabel string
	Completed     bool
	CreatedAt     string
	CompletedAt   string
}

type TaskListPanelData struct {
	Rows    []TaskRowData
	Cursor  int
	Focused bool
}

type ConfirmData struct {
	Active      bool
	Description string
}

type HelpPanelData struct {
	Bindings     []string
	HelpView     string
	MarkdownView string
}

func RenderFormPanel(data FormPanelData) string {
	var b strings.Builder
	title := "new task"
	if data.Editing {
		title = "edit task"
	}
	if data.Focused {
		title += " *"
	}
	b.WriteString(title + ":\n")
	b.WriteString(data.InputView + "\n")
	if data.Editing {
		b.WriteString("actions: [enter]save [esc]cancel\n")
	} else {
		b.WriteString(fmt.Sprintf("priority: %s  [up/down]change [enter]add [tab]list\n", PriorityBadge(data.Priority, data.PriorityLabel)))
	}
	if data.ErrorText != "" {
		b.WriteString(errorStyle.Render(data.ErrorText) + "\n")
	}
	return strings.TrimSpace(b.String())
}

func RenderTaskListPanel(data TaskListPanelData) string {
	var b strings.Builder
	title := "tasks"
	if data.Focused {
		title += " *"
	}
	b.WriteString(title + ":\n")
	if len(data.Rows) == 0 {
		b.WriteString(mutedStyle.Render("(no tasks)"))
		return b.String()
	}
	for i, row := range data.Rows {
		cursor := " "
		if data.Focused && i == data.Cursor {
			cursor = ">"
		}
		check := "[ ]"
		desc := row.Description
		if row.Completed {
			check = "[x]"
			desc = doneStyle.Render(desc)
		}
		b.WriteString(fmt.Sprintf("%s %s %s %s %s\n", cursor, check, desc, PriorityBadge(row.Priority, row.PriorityLabel), mutedStyle.Render("#"+row.ShortID)))
		meta := "created " + row.CreatedAt
		if row.CompletedAt != "" {
			meta += " | done " + row.CompletedAt
		}
		b.WriteString("      " + mutedStyle.Render(meta) + "\n")
	}
	return strings.TrimSuffix(b.String(), "\n")
}

func RenderConfirm(data ConfirmData) string {
	if !data.Active {
		return ""
	}
	return errorStyle.Render(fmt.Sprintf("delete %q? y/n", data.Description))
}

func RenderCommandPalette(active bool, input string) string {
	if !active {
		return ""
	}
	return fmt.Sprintf("command: %s", input)
}

func RenderHelpPanel(data HelpPanelData) string {
	parts := []string{"help:", strings.Join(data.Bindings, "\n")}
	if data.HelpView != "" {
		parts = append(parts, data.HelpView)
	}
	if data.MarkdownView != "" {
		parts = append(parts, data.MarkdownView)
	}
	return strings.Join(parts, "\n")
}
