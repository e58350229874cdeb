package todo

type entryKind int

const (
	kindPersisted entryKind = iota
	kindPlaceholder
)

// Entry is one row of the rendered list. A placeholder stands in for a task
// whose create request is still in flight; it has no server id and never
// enters the authoritative list.
type Entry struct {
	kind entryKind
	task Task
}

func Persisted(t Task) Entry {
	return Entry{kind: kindPersisted, task: t}
}

func Placeholder(t Task) Entry {
	t.ID = 0
	return Entry{kind: kindPlaceholder, task: t}
}

func (e Entry) IsPlaceholder() bool {
	return e.kind == kindPlaceholder
}

// Task returns the wrapped record. For a placeholder the ID is meaningless.
func (e Entry) Task() Task {
	return e.task
}

// Entries builds the rendered rows: the visible persisted tasks followed by
// the optional placeholder.
func Entries(visible []Task, placeholder *Task) []Entry {
	out := make([]Entry, 0, len(visible)+1)
	for _, t := range visible {
		out = append(out, Persisted(t))
	}
	if placeholder != nil {
		out = append(out, Placeholder(*placeholder))
	}
	return out
}
