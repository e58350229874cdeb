package ui

import "todos/internal/todo"

// Banner texts, one per failing operation kind.
const (
	msgLoadFailed   = "Unable to load todos"
	msgEmptyTitle   = "Title should not be empty"
	msgAddFailed    = "Unable to add a todo"
	msgUpdateFailed = "Unable to update a todo"
	msgDeleteFailed = "Unable to delete a todo"
	msgBulkFailed   = "Unable to update todos"
)

type updateOp int

const (
	opToggle updateOp = iota
	opRename
	opToggleAll
)

func (op updateOp) String() string {
	switch op {
	case opToggle:
		return "toggle"
	case opRename:
		return "rename"
	case opToggleAll:
		return "toggle all"
	default:
		return "update"
	}
}

type todosLoadedMsg struct {
	tasks []todo.Task
	err   error
}

// todoCreatedMsg carries the trimmed title that was sent so the stored
// record keeps it even if the server echoes something else.
type todoCreatedMsg struct {
	title string
	task  todo.Task
	err   error
}

// todoUpdatedMsg carries the record that was sent (sent) and the server's
// answer (task).
type todoUpdatedMsg struct {
	op   updateOp
	sent todo.Task
	task todo.Task
	err  error
}

type todoDeletedMsg struct {
	id  int
	err error
}
