package ui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"todos/internal/todo"
)

var (
	appTitleStyle   = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("168"))
	doneStyle       = lipgloss.NewStyle().Strikethrough(true).Foreground(lipgloss.Color("241"))
	pendingStyle    = lipgloss.NewStyle().Italic(true).Foreground(lipgloss.Color("245"))
	dimStyle        = lipgloss.NewStyle().Foreground(lipgloss.Color("241"))
	activeStyle     = lipgloss.NewStyle().Bold(true).Underline(true)
	toggleAllOn     = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("42"))
	bannerStyle     = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("196"))
	spinnerStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("69"))
	warningBoxStyle = lipgloss.NewStyle().Border(lipgloss.RoundedBorder()).Padding(1, 2).BorderForeground(lipgloss.Color("214"))
)

func (m Model) View() string {
	if m.userID == 0 {
		return renderUserWarning()
	}

	var b strings.Builder
	b.WriteString(appTitleStyle.Render("todos"))
	b.WriteString("\n\n")
	b.WriteString(m.renderHeader())
	b.WriteString("\n")

	if !m.loaded && !m.banner.Visible() {
		b.WriteString(dimStyle.Render(m.spinner.View() + " Loading todos..."))
		b.WriteString("\n")
	} else {
		b.WriteString(m.renderTaskList())
	}

	if len(m.tasks) > 0 {
		b.WriteString("\n")
		b.WriteString(m.renderFooter())
		b.WriteString("\n")
	}

	if m.banner.Visible() {
		b.WriteString("\n")
		b.WriteString(bannerStyle.Render(m.banner.text))
		b.WriteString(dimStyle.Render(fmt.Sprintf("  (%s to dismiss)", m.keys.Dismiss.Help().Key)))
		b.WriteString("\n")
	}

	b.WriteString("\n")
	b.WriteString(m.help.View(m.keys))
	return b.String()
}

func (m Model) renderHeader() string {
	marker := "  "
	if len(m.tasks) > 0 {
		if todo.AllCompleted(m.tasks) {
			marker = toggleAllOn.Render("✓") + " "
		} else {
			marker = dimStyle.Render("✓") + " "
		}
	}

	prefix := "  "
	if m.mode == modeAdd {
		prefix = "> "
	}
	input := m.input.View()
	if m.submitting {
		input = dimStyle.Render(m.placeholderTitle())
	}
	return prefix + marker + input + "\n"
}

func (m Model) placeholderTitle() string {
	if m.placeholder == nil {
		return ""
	}
	return m.placeholder.Title
}

func (m Model) renderTaskList() string {
	entries := m.entries()
	if len(entries) == 0 {
		if len(m.tasks) == 0 {
			return dimStyle.Render(fmt.Sprintf("No todos yet. Press '%s' to add one.", m.keys.Add.Help().Key)) + "\n"
		}
		return dimStyle.Render(fmt.Sprintf("Nothing %s.", m.filter)) + "\n"
	}

	var b strings.Builder
	for i, e := range entries {
		b.WriteString(m.renderEntry(i, e))
		b.WriteString("\n")
	}
	return b.String()
}

func (m Model) renderEntry(i int, e todo.Entry) string {
	t := e.Task()

	cursor := "  "
	if m.cursor == i && m.mode != modeAdd {
		cursor = "> "
	}

	checkbox := "[ ]"
	if t.Completed {
		checkbox = "[x]"
	}

	if e.IsPlaceholder() {
		return cursor + checkbox + " " + pendingStyle.Render(t.Title) + " " + m.spinner.View()
	}

	var title string
	switch {
	case m.edit != nil && m.edit.TaskID == t.ID:
		title = m.editInput.View()
	case t.Completed:
		title = doneStyle.Render(t.Title)
	default:
		title = t.Title
	}

	line := cursor + checkbox + " " + title
	if m.isLoading(t.ID) {
		line += " " + m.spinner.View()
	}
	return line
}

func (m Model) renderFooter() string {
	left := todo.ActiveCount(m.tasks)
	noun := "items"
	if left == 1 {
		noun = "item"
	}

	filters := make([]string, 0, len(todo.Filters()))
	for _, f := range todo.Filters() {
		name := strings.ToUpper(f.String()[:1]) + f.String()[1:]
		if f == m.filter {
			filters = append(filters, activeStyle.Render(name))
		} else {
			filters = append(filters, dimStyle.Render(name))
		}
	}

	footer := fmt.Sprintf("%d %s left · %s", left, noun, strings.Join(filters, " "))
	if left < len(m.tasks) {
		footer += " · " + dimStyle.Render(fmt.Sprintf("%s clear completed", m.keys.ClearCompleted.Help().Key))
	}
	return footer
}

func renderUserWarning() string {
	msg := "Please set user_id in your config file (or TODO_USER_ID)\n" +
		"to the id you registered with the todos API, then restart."
	return warningBoxStyle.Render(msg) + "\n"
}
