package update

import (
	"fmt"

	"github.com/charmbracelet/bubbles/key"

	"github.com/sandeepkv93/todo/internal/views"
)

type KeyBinding struct {
	Key    string
	Action string
}

type helpKeyMap struct {
	short []key.Binding
	full  [][]key.Binding
}

func (k helpKeyMap) ShortHelp() []key.Binding  { return k.short }
func (k helpKeyMap) FullHelp() [][]key.Binding { return k.full }

const helpMarkdown = `**Priorities**: 1 High, 2 Medium, 3 Low. The list is sorted by priority.

**Palette**: ` + "`add 2 Buy milk`, `done <id>`, `edit <id> text`, `rm <id>`" + `. Ids may be shortened to any unique prefix.`

func (m Model) renderHelpIfVisible() string {
	if !m.HelpVisible {
		return ""
	}
	return m.renderHelpView()
}

func (m Model) renderHelpView() string {
	var plain []string
	for _, kb := range m.bindings() {
		plain = append(plain, fmt.Sprintf("- %s: %s", kb.Key, kb.Action))
	}
	bindings := m.helpBindings()
	return views.RenderHelpPanel(views.HelpPanelData{
		Bindings: plain,
		HelpView: m.helpModel.View(helpKeyMap{
			short: bindings,
			full:  [][]key.Binding{bindings},
		}),
		MarkdownView: views.RenderMarkdown(helpMarkdown),
	})
}

func (m Model) bindings() []KeyBinding {
	if m.Focus == FocusForm {
		return []KeyBinding{
			{Key: "enter", Action: "add or save task"},
			{Key: "up/down", Action: "change priority"},
			{Key: "tab", Action: "go to list"},
			{Key: "esc", Action: "cancel edit"},
		}
	}
	return []KeyBinding{
		{Key: "j/k", Action: "move cursor"},
		{Key: "space", Action: "mark done"},
		{Key: "e", Action: "edit text"},
		{Key: "d", Action: "delete (asks first)"},
		{Key: "1/2/3", Action: "priority for new tasks"},
		{Key: "tab", Action: "go to form"},
		{Key: m.Keys.Palette, Action: "command palette"},
		{Key: m.Keys.Help, Action: "toggle help"},
		{Key: m.Keys.Quit, Action: "quit"},
	}
}

func (m Model) helpBindings() []key.Binding {
	all := m.bindings()
	out := make([]key.Binding, 0, len(all))
	for _, kb := range all {
		out = append(out, key.NewBinding(key.WithKeys(kb.Key), key.WithHelp(kb.Key, kb.Action)))
	}
	return out
}
