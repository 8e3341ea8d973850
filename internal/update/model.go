package update

import (
	"context"
	"io"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/textinput"
	"github.com/charmbracelet/log"

	"github.com/sandeepkv93/todo/internal/model"
	"github.com/sandeepkv93/todo/internal/store"
)

type Focus string

const (
	FocusForm Focus = "form"
	FocusList Focus = "list"
)

type StatusBar struct {
	Text    string
	IsError bool
}

type GlobalKeyMap struct {
	Palette string
	Help    string
	Quit    string
}

// ConfirmState holds a delete that waits for an explicit yes.
type ConfirmState struct {
	Active      bool
	TaskID      string
	Description string
}

type CommandPaletteState struct {
	Active bool
	Input  string
}

// FormState is the add/edit form. EditingID is empty while adding.
type FormState struct {
	Input     string
	Priority  model.Priority
	EditingID string
	Error     string
}

// Model renders a snapshot of the store and turns key presses into store
// calls. It never holds task state of its own beyond that snapshot.
type Model struct {
	Tasks          []model.Task
	Cursor         int
	SelectedTaskID string
	Focus          Focus
	Form           FormState
	Confirm        ConfirmState
	Palette        CommandPaletteState
	HelpVisible    bool
	Status         StatusBar
	Keys           GlobalKeyMap
	Quitting       bool
	LastError      error

	ctx    context.Context
	store  *store.Store
	logger *log.Logger

	descInput    textinput.Model
	commandInput textinput.Model
	helpModel    help.Model
}

type SetStatusMsg struct {
	Text    string
	IsError bool
}

type ClearStatusMsg struct{}

type AppErrorMsg struct {
	Err error
}

type AddTaskMsg struct {
	Description string
	Priority    model.Priority
}

type CompleteTaskMsg struct {
	ID string
}

type EditTaskMsg struct {
	ID          string
	Description string
}

// DeleteTaskMsg asks for confirmation before anything is removed.
type DeleteTaskMsg struct {
	ID string
}

func NewModel(ctx context.Context, st *store.Store, logger *log.Logger) Model {
	if logger == nil {
		logger = log.New(io.Discard)
	}
	m := Model{
		Focus: FocusForm,
		Form: FormState{
			Priority: model.PriorityMedium,
		},
		Keys: GlobalKeyMap{
			Palette: "/",
			Help:    "?",
			Quit:    "q",
		},
		ctx:    ctx,
		store:  st,
		logger: logger,
	}
	m.initBubbleComponents()
	m.refresh()
	return m
}

func (m *Model) initBubbleComponents() {
	m.descInput = textinput.New()
	m.descInput.Prompt = "task> "
	m.descInput.Placeholder = "what needs doing?"
	m.descInput.CharLimit = 256
	m.descInput.Width = 48
	m.descInput.Focus()

	m.commandInput = textinput.New()
	m.commandInput.Prompt = "/"
	m.commandInput.CharLimit = 256
	m.commandInput.Width = 40

	m.helpModel = help.New()
	m.helpModel.ShowAll = true
}

// refresh re-reads the whole list from the store and keeps the cursor on the
// selected task when it still exists.
func (m *Model) refresh() {
	m.Tasks = m.store.List()
	if m.SelectedTaskID != "" {
		for i, t := range m.Tasks {
			if t.ID == m.SelectedTaskID {
				m.Cursor = i
				return
			}
		}
	}
	m.clampCursor()
}

func (m *Model) clampCursor() {
	if m.Cursor >= len(m.Tasks) {
		m.Cursor = len(m.Tasks) - 1
	}
	if m.Cursor < 0 {
		m.Cursor = 0
	}
	m.SelectedTaskID = ""
	if len(m.Tasks) > 0 {
		m.SelectedTaskID = m.Tasks[m.Cursor].ID
	}
}

func (m Model) currentTask() (model.Task, bool) {
	if len(m.Tasks) == 0 || m.Cursor < 0 || m.Cursor >= len(m.Tasks) {
		return model.Task{}, false
	}
	return m.Tasks[m.Cursor], true
}
