package update

import (
	"fmt"

	"github.com/sandeepkv93/todo/internal/model"
	"github.com/sandeepkv93/todo/internal/store"
	"github.com/sandeepkv93/todo/internal/views"
)

// submitForm sends the form to Add or Edit depending on its mode.
func (m *Model) submitForm() {
	if m.Form.EditingID != "" {
		m.editTask(m.Form.EditingID, m.Form.Input)
		return
	}
	m.addTask(m.Form.Input, m.Form.Priority)
}

func (m *Model) addTask(description string, priority model.Priority) {
	task, err := m.store.Add(m.ctx, description, priority)
	if store.IsRejected(err) {
		m.Form.Error = views.FormErrorText
		m.logger.Debug("add rejected", "err", err)
		return
	}
	m.Form.Error = ""
	m.resetForm()
	m.SelectedTaskID = task.ID
	m.refresh()
	if err != nil {
		m.setError(err)
		return
	}
	m.Status = StatusBar{Text: fmt.Sprintf("added %q", task.Description)}
}

func (m *Model) completeTask(id string) {
	task, ok := m.store.Get(id)
	if !ok {
		return
	}
	if task.Completed {
		m.Status = StatusBar{Text: fmt.Sprintf("%q is already done", task.Description)}
		return
	}
	err := m.store.Complete(m.ctx, id)
	m.refresh()
	if err != nil {
		m.setError(err)
		return
	}
	m.Status = StatusBar{Text: fmt.Sprintf("completed %q", task.Description)}
}

func (m *Model) startEdit() {
	task, ok := m.currentTask()
	if !ok {
		return
	}
	m.Form.EditingID = task.ID
	m.Form.Input = task.Description
	m.Form.Error = ""
	m.descInput.SetValue(task.Description)
	m.descInput.CursorEnd()
	m.focusForm()
	m.Status = StatusBar{Text: "editing task"}
}

func (m *Model) editTask(id, description string) {
	err := m.store.Edit(m.ctx, id, description)
	if store.IsRejected(err) {
		m.Form.Error = "error: task text cannot be empty"
		return
	}
	m.resetForm()
	m.SelectedTaskID = id
	m.refresh()
	m.focusList()
	if err != nil {
		m.setError(err)
		return
	}
	m.Status = StatusBar{Text: "task updated"}
}

func (m *Model) requestDelete(id string) {
	task, ok := m.store.Get(id)
	if !ok {
		return
	}
	m.Confirm = ConfirmState{Active: true, TaskID: task.ID, Description: task.Description}
	m.Status = StatusBar{Text: fmt.Sprintf("delete %q? y/n", task.Description)}
}

func (m *Model) handleConfirmKey(key string) {
	pending := m.Confirm
	m.Confirm = ConfirmState{}
	if key != "y" && key != "Y" {
		m.Status = StatusBar{Text: "delete cancelled"}
		return
	}
	err := m.store.Delete(m.ctx, pending.TaskID)
	m.refresh()
	if err != nil {
		m.setError(err)
		return
	}
	m.Status = StatusBar{Text: fmt.Sprintf("deleted %q", pending.Description)}
}

func (m *Model) resetForm() {
	m.Form.Input = ""
	m.Form.EditingID = ""
	m.Form.Priority = model.PriorityMedium
	m.descInput.SetValue("")
}

func (m *Model) setError(err error) {
	m.LastError = err
	m.Status = StatusBar{Text: err.Error(), IsError: true}
	m.logger.Error("task operation failed", "err", err)
}

func (m *Model) focusForm() {
	m.Focus = FocusForm
	m.descInput.Focus()
}

func (m *Model) focusList() {
	m.Focus = FocusList
	m.descInput.Blur()
}
