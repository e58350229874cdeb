package ui

import (
	"slices"
	"strings"

	tea "github.com/charmbracelet/bubbletea"

	"todos/internal/todo"
)

// Every network call below runs inside a tea.Cmd and reports back with a
// message; state is only touched from Update.

func (m Model) loadCmd() tea.Cmd {
	svc, ctx := m.svc, m.ctx
	return func() tea.Msg {
		tasks, err := svc.ListTodos(ctx)
		return todosLoadedMsg{tasks: tasks, err: err}
	}
}

func (m Model) createCmd(t todo.Task) tea.Cmd {
	svc, ctx := m.svc, m.ctx
	return func() tea.Msg {
		created, err := svc.CreateTodo(ctx, t)
		return todoCreatedMsg{title: t.Title, task: created, err: err}
	}
}

func (m Model) updateCmd(op updateOp, t todo.Task) tea.Cmd {
	svc, ctx := m.svc, m.ctx
	return func() tea.Msg {
		updated, err := svc.UpdateTodo(ctx, t)
		return todoUpdatedMsg{op: op, sent: t, task: updated, err: err}
	}
}

func (m Model) deleteCmd(id int) tea.Cmd {
	svc, ctx := m.svc, m.ctx
	return func() tea.Msg {
		return todoDeletedMsg{id: id, err: svc.DeleteTodo(ctx, id)}
	}
}

func (m *Model) isLoading(id int) bool {
	_, ok := m.loading[id]
	return ok
}

func (m *Model) markLoading(id int) {
	m.loading[id] = struct{}{}
}

func (m *Model) clearLoading(id int) {
	delete(m.loading, id)
}

func (m *Model) find(id int) (todo.Task, bool) {
	i := todo.Index(m.tasks, id)
	if i < 0 {
		return todo.Task{}, false
	}
	return m.tasks[i], true
}

func (m *Model) fail(text string) tea.Cmd {
	return m.banner.Set(text, m.cfg.ErrorTimeout())
}

// addTask validates and submits the new-task title. Only one create may be
// in flight.
func (m *Model) addTask(raw string) tea.Cmd {
	if m.submitting {
		return nil
	}
	title := strings.TrimSpace(raw)
	if title == "" {
		return m.fail(msgEmptyTitle)
	}

	m.submitting = true
	m.input.Blur()
	m.placeholder = &todo.Task{Title: raw, UserID: m.userID}
	return m.createCmd(todo.Task{Title: title, UserID: m.userID})
}

func (m *Model) toggleCompleted(id int) tea.Cmd {
	t, ok := m.find(id)
	if !ok || m.isLoading(id) {
		return nil
	}
	t.Completed = !t.Completed
	m.markLoading(id)
	return m.updateCmd(opToggle, t)
}

// renameTask sends title as-is; trimming and the empty-title policy belong
// to the edit session.
func (m *Model) renameTask(id int, title string) tea.Cmd {
	t, ok := m.find(id)
	if !ok || m.isLoading(id) {
		return nil
	}
	t.Title = title
	m.markLoading(id)
	return m.updateCmd(opRename, t)
}

func (m *Model) deleteTask(id int) tea.Cmd {
	if _, ok := m.find(id); !ok || m.isLoading(id) {
		return nil
	}
	m.markLoading(id)
	return m.deleteCmd(id)
}

// deleteCompleted fires one independent delete per completed task.
func (m *Model) deleteCompleted() tea.Cmd {
	var cmds []tea.Cmd
	for _, t := range m.tasks {
		if !t.Completed {
			continue
		}
		if cmd := m.deleteTask(t.ID); cmd != nil {
			cmds = append(cmds, cmd)
		}
	}
	return tea.Batch(cmds...)
}

// toggleAll completes every task unless all already are, in which case it
// reopens them. Each task is updated by its own request; failures are not
// rolled back.
func (m *Model) toggleAll() tea.Cmd {
	target := !todo.AllCompleted(m.tasks)
	var cmds []tea.Cmd
	for _, t := range m.tasks {
		if t.Completed == target || m.isLoading(t.ID) {
			continue
		}
		t.Completed = target
		m.markLoading(t.ID)
		cmds = append(cmds, m.updateCmd(opToggleAll, t))
	}
	return tea.Batch(cmds...)
}

func (m *Model) handleLoaded(msg todosLoadedMsg) tea.Cmd {
	m.loaded = true
	if msg.err != nil {
		m.logger.Warn("load todos failed", "err", msg.err)
		m.tasks = nil
		return m.fail(msgLoadFailed)
	}
	m.tasks = msg.tasks
	m.logger.Debug("loaded todos", "count", len(msg.tasks))
	m.clampCursor()
	return nil
}

func (m *Model) handleCreated(msg todoCreatedMsg) tea.Cmd {
	m.placeholder = nil
	m.submitting = false
	if m.mode == modeAdd {
		m.input.Focus()
	}
	if msg.err != nil {
		m.logger.Warn("create todo failed", "title", msg.title, "err", msg.err)
		return m.fail(msgAddFailed)
	}

	m.tasks = append(m.tasks, todo.Task{
		ID:        msg.task.ID,
		Title:     msg.title,
		UserID:    msg.task.UserID,
		Completed: msg.task.Completed,
	})
	m.input.SetValue("")
	m.clampCursor()
	return nil
}

func (m *Model) handleUpdated(msg todoUpdatedMsg) tea.Cmd {
	id := msg.sent.ID
	m.clearLoading(id)

	renaming := msg.op == opRename && m.edit != nil && m.edit.TaskID == id
	if msg.err != nil {
		m.logger.Warn("update todo failed", "op", msg.op, "id", id, "err", msg.err)
		if renaming {
			m.edit.Fail()
		}
		if msg.op == opToggleAll {
			return m.fail(msgBulkFailed)
		}
		return m.fail(msgUpdateFailed)
	}

	record := msg.task
	if record.ID != id {
		record = msg.sent
	}
	if i := todo.Index(m.tasks, id); i >= 0 {
		tasks := slices.Clone(m.tasks)
		tasks[i] = record
		m.tasks = tasks
	}
	if renaming {
		m.closeEdit()
	}
	m.clampCursor()
	return nil
}

func (m *Model) handleDeleted(msg todoDeletedMsg) tea.Cmd {
	m.clearLoading(msg.id)
	editing := m.edit != nil && m.edit.TaskID == msg.id
	if msg.err != nil {
		m.logger.Warn("delete todo failed", "id", msg.id, "err", msg.err)
		if editing {
			m.edit.Fail()
		}
		return m.fail(msgDeleteFailed)
	}

	if i := todo.Index(m.tasks, msg.id); i >= 0 {
		m.tasks = append(m.tasks[:i:i], m.tasks[i+1:]...)
	}
	if editing {
		m.closeEdit()
	}
	m.clampCursor()
	return nil
}

// startEdit opens the inline editor on a persisted, idle task.
func (m *Model) startEdit(id int) {
	t, ok := m.find(id)
	if !ok || m.isLoading(id) || m.edit != nil {
		return
	}
	m.edit = todo.StartEdit(t)
	m.editInput.SetValue(t.Title)
	m.editInput.CursorEnd()
	m.editInput.Focus()
	m.mode = modeEdit
}

// commitEdit runs the edit session's transition for ev and performs the
// resulting action. Submit, blur and cancel all come through here.
func (m *Model) commitEdit(ev todo.EditEvent) tea.Cmd {
	if m.edit == nil {
		return nil
	}
	current, ok := m.find(m.edit.TaskID)
	if !ok {
		m.closeEdit()
		return nil
	}

	d := m.edit.Handle(ev, current)
	switch d.Action {
	case todo.ActionExit:
		m.closeEdit()
		return nil
	case todo.ActionRename:
		cmd := m.renameTask(current.ID, d.Title)
		if cmd == nil {
			m.edit.Fail()
		}
		return cmd
	case todo.ActionDelete:
		cmd := m.deleteTask(current.ID)
		if cmd == nil {
			m.edit.Fail()
		}
		return cmd
	default:
		return nil
	}
}

func (m *Model) closeEdit() {
	m.edit = nil
	m.editInput.Blur()
	m.editInput.SetValue("")
	if m.mode == modeEdit {
		m.mode = modeList
	}
}
