package update

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/sandeepkv93/todo/internal/commands"
	"github.com/sandeepkv93/todo/internal/model"
	"github.com/sandeepkv93/todo/internal/store"
	"github.com/sandeepkv93/todo/internal/views"
)

func (m Model) handlePaletteKey(msg tea.KeyMsg) Model {
	switch msg.String() {
	case "esc":
		m.closePalette()
		m.Status = StatusBar{Text: "command palette closed"}
	case "enter":
		m.Palette.Input = m.commandInput.Value()
		m = m.executePaletteCommand()
	default:
		var cmd tea.Cmd
		m.commandInput, cmd = m.commandInput.Update(msg)
		_ = cmd
		m.Palette.Input = m.commandInput.Value()
	}
	return m
}

func (m *Model) closePalette() {
	m.Palette = CommandPaletteState{}
	m.commandInput.SetValue("")
	m.commandInput.Blur()
}

func (m Model) executePaletteCommand() Model {
	raw := strings.TrimSpace(m.Palette.Input)
	m.closePalette()

	cmd, err := commands.Parse(raw)
	if err != nil {
		m.Status = StatusBar{Text: err.Error(), IsError: true}
		return m
	}
	m.logger.Debug("palette command", "type", cmd.Type, "raw", cmd.Raw)

	res, err := commands.Execute(cmd, commands.Handlers{
		Add: func(a commands.AddArgs) (commands.Result, error) {
			priority := m.Form.Priority
			if a.HasPriority {
				priority = model.Priority(a.Priority)
			}
			task, err := m.store.Add(m.ctx, a.Description, priority)
			if store.IsRejected(err) {
				return commands.Result{}, errRejectedAdd{err: err}
			}
			m.SelectedTaskID = task.ID
			m.refresh()
			if err != nil {
				return commands.Result{}, err
			}
			return commands.Result{Message: fmt.Sprintf("added %q", task.Description)}, nil
		},
		Done: func(a commands.DoneArgs) (commands.Result, error) {
			task, err := m.store.Resolve(a.Target)
			if err != nil {
				return commands.Result{}, err
			}
			err = m.store.Complete(m.ctx, task.ID)
			m.refresh()
			if err != nil {
				return commands.Result{}, err
			}
			return commands.Result{Message: fmt.Sprintf("completed %q", task.Description)}, nil
		},
		Edit: func(a commands.EditArgs) (commands.Result, error) {
			task, err := m.store.Resolve(a.Target)
			if err != nil {
				return commands.Result{}, err
			}
			err = m.store.Edit(m.ctx, task.ID, a.Description)
			m.refresh()
			if err != nil {
				return commands.Result{}, err
			}
			return commands.Result{Message: "task updated"}, nil
		},
		Delete: func(a commands.DeleteArgs) (commands.Result, error) {
			task, err := m.store.Resolve(a.Target)
			if err != nil {
				return commands.Result{}, err
			}
			m.requestDelete(task.ID)
			return commands.Result{Message: m.Status.Text}, nil
		},
	})
	if err != nil {
		m.setError(err)
		return m
	}
	m.Status = StatusBar{Text: res.Message}
	return m
}

// errRejectedAdd shows the same text as a rejected form submit while keeping
// the store error reachable through errors.Is.
type errRejectedAdd struct {
	err error
}

func (e errRejectedAdd) Error() string { return views.FormErrorText }

func (e errRejectedAdd) Unwrap() error { return e.err }
