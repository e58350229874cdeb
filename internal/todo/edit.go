package todo

import "strings"

// EditEvent is a user trigger that ends or commits an inline edit.
type EditEvent int

const (
	EventSubmit EditEvent = iota
	EventBlur
	EventCancel
)

// EditAction is what the caller must do after an edit transition.
type EditAction int

const (
	// ActionNone: nothing to do, the session is unchanged.
	ActionNone EditAction = iota
	// ActionExit: close the session without a request.
	ActionExit
	// ActionRename: send an update carrying Decision.Title.
	ActionRename
	// ActionDelete: the working title was empty, delete the task.
	ActionDelete
)

func (a EditAction) String() string {
	switch a {
	case ActionNone:
		return "none"
	case ActionExit:
		return "exit"
	case ActionRename:
		return "rename"
	case ActionDelete:
		return "delete"
	default:
		return "unknown"
	}
}

// Decision is the outcome of EditSession.Handle.
type Decision struct {
	Action EditAction
	Title  string
}

// EditSession is the inline rename state of a single task. A nil session
// means the task is being viewed.
type EditSession struct {
	TaskID     int
	Title      string
	committing bool
}

// StartEdit opens a session seeded with the task's current title.
func StartEdit(t Task) *EditSession {
	return &EditSession{TaskID: t.ID, Title: t.Title}
}

// Committing reports whether a rename or delete issued by this session is
// still waiting for a response.
func (s *EditSession) Committing() bool {
	return s != nil && s.committing
}

// SetTitle replaces the working title. It is ignored while committing.
func (s *EditSession) SetTitle(title string) {
	if s == nil || s.committing {
		return
	}
	s.Title = title
}

// Handle is the single transition function shared by submit, blur and
// cancel. current is the persisted record being edited. Once a request has
// been issued every further event is suppressed until Fail is called, so an
// edit session produces at most one outbound request.
func (s *EditSession) Handle(ev EditEvent, current Task) Decision {
	if s == nil || s.committing {
		return Decision{Action: ActionNone}
	}
	if ev == EventCancel {
		return Decision{Action: ActionExit}
	}

	title := strings.TrimSpace(s.Title)
	switch {
	case title == "":
		s.committing = true
		return Decision{Action: ActionDelete}
	case title == current.Title:
		return Decision{Action: ActionExit}
	default:
		s.committing = true
		return Decision{Action: ActionRename, Title: title}
	}
}

// Fail reopens the session for editing after its request failed. The
// working title is kept.
func (s *EditSession) Fail() {
	if s != nil {
		s.committing = false
	}
}
