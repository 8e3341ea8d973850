package update

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/sandeepkv93/todo/internal/model"
	"github.com/sandeepkv93/todo/internal/views"
)

func (m Model) Init() tea.Cmd {
	return nil
}

// Update runs every store call synchronously so one intent finishes,
// including its write, before the next message is handled.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch typed := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(typed)
	case SetStatusMsg:
		m.Status = StatusBar{Text: typed.Text, IsError: typed.IsError}
		return m, nil
	case ClearStatusMsg:
		m.Status = StatusBar{}
		return m, nil
	case AppErrorMsg:
		if typed.Err != nil {
			m.setError(typed.Err)
		}
		return m, nil
	case AddTaskMsg:
		m.addTask(typed.Description, typed.Priority)
		return m, nil
	case CompleteTaskMsg:
		m.completeTask(typed.ID)
		return m, nil
	case EditTaskMsg:
		m.editTask(typed.ID, typed.Description)
		return m, nil
	case DeleteTaskMsg:
		m.requestDelete(typed.ID)
		return m, nil
	}
	return m, nil
}

func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	keyStr := msg.String()
	if keyStr == "ctrl+c" {
		m.Quitting = true
		return m, tea.Quit
	}
	if m.Confirm.Active {
		m.handleConfirmKey(keyStr)
		return m, nil
	}
	if m.Palette.Active {
		return m.handlePaletteKey(msg), nil
	}
	if m.Focus == FocusForm {
		return m.handleFormKey(msg)
	}
	return m.handleListKey(msg)
}

func (m Model) handleFormKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "enter":
		m.Form.Input = m.descInput.Value()
		m.submitForm()
		return m, nil
	case "esc":
		if m.Form.EditingID != "" {
			m.resetForm()
			m.Form.Error = ""
			m.Status = StatusBar{Text: "edit cancelled"}
		}
		m.focusList()
		return m, nil
	case "tab":
		if m.Form.EditingID == "" {
			m.focusList()
		}
		return m, nil
	case "up", "ctrl+p":
		if m.Form.EditingID == "" {
			m.Form.Priority = m.Form.Priority.Prev()
		}
		return m, nil
	case "down", "ctrl+n":
		if m.Form.EditingID == "" {
			m.Form.Priority = m.Form.Priority.Next()
		}
		return m, nil
	}
	var cmd tea.Cmd
	m.descInput, cmd = m.descInput.Update(msg)
	m.Form.Input = m.descInput.Value()
	return m, cmd
}

func (m Model) handleListKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch keyStr := msg.String(); keyStr {
	case m.Keys.Quit:
		m.Quitting = true
		return m, tea.Quit
	case m.Keys.Help:
		m.HelpVisible = !m.HelpVisible
	case m.Keys.Palette:
		m.Palette = CommandPaletteState{Active: true}
		m.commandInput.SetValue("")
		m.commandInput.Focus()
		m.Status = StatusBar{Text: "command palette active"}
	case "tab", "a", "i":
		m.focusForm()
	case "up", "k":
		if m.Cursor > 0 {
			m.Cursor--
		}
		m.clampCursor()
	case "down", "j":
		if m.Cursor < len(m.Tasks)-1 {
			m.Cursor++
		}
		m.clampCursor()
	case " ", "x":
		if task, ok := m.currentTask(); ok {
			m.completeTask(task.ID)
		}
	case "e":
		m.startEdit()
	case "d", "delete":
		if task, ok := m.currentTask(); ok {
			m.requestDelete(task.ID)
		}
	case "1", "2", "3":
		m.Form.Priority = model.Priority(keyStr[0] - '0')
		m.Status = StatusBar{Text: fmt.Sprintf("new tasks get priority %s", m.Form.Priority)}
	}
	return m, nil
}

func (m Model) View() string {
	if m.Quitting {
		return ""
	}
	status := ""
	if m.Status.Text != "" {
		if m.Status.IsError {
			status = "status: error: " + strings.TrimPrefix(m.Status.Text, "error: ")
		} else {
			status = fmt.Sprintf("status: %s", m.Status.Text)
		}
	}

	leftPane := strings.Join([]string{m.renderForm(), "", m.renderTaskList()}, "\n")
	rightPane := strings.TrimSpace(strings.Join([]string{
		views.RenderConfirm(views.ConfirmData{Active: m.Confirm.Active, Description: m.Confirm.Description}),
		views.RenderCommandPalette(m.Palette.Active, m.commandInput.View()),
		m.renderHelpIfVisible(),
	}, "\n"))

	done := 0
	for _, t := range m.Tasks {
		if t.Completed {
			done++
		}
	}
	return views.RenderApp(views.AppData{
		Header:     fmt.Sprintf("todo | tasks: %d | done: %d | selected: %s", len(m.Tasks), done, shortID(m.SelectedTaskID)),
		LeftPane:   leftPane,
		RightPane:  rightPane,
		StatusLine: status,
		Footer:     fmt.Sprintf("keys: tab form/list | space done | e edit | d delete | %s cmd | %s help | %s quit", m.Keys.Palette, m.Keys.Help, m.Keys.Quit),
	})
}

func (m Model) renderForm() string {
	return views.RenderFormPanel(views.FormPanelData{
		InputView:     m.descInput.View(),
		Priority:      int(m.Form.Priority),
		PriorityLabel: m.Form.Priority.String(),
		Editing:       m.Form.EditingID != "",
		Focused:       m.Focus == FocusForm,
		ErrorText:     m.Form.Error,
	})
}

func (m Model) renderTaskList() string {
	rows := make([]views.TaskRowData, 0, len(m.Tasks))
	for _, t := range m.Tasks {
		row := views.TaskRowData{
			ShortID:       shortID(t.ID),
			Description:   t.Description,
			Priority:      int(t.Priority),
			PriorityLabel: t.Priority.String(),
			Completed:     t.Completed,
			CreatedAt:     formatTimestamp(t.CreatedAt),
		}
		if t.CompletedAt != nil {
			row.CompletedAt = formatTimestamp(*t.CompletedAt)
		}
		rows = append(rows, row)
	}
	return views.RenderTaskListPanel(views.TaskListPanelData{
		Rows:    rows,
		Cursor:  m.Cursor,
		Focused: m.Focus == FocusList,
	})
}
