package ui

import (
	"time"

	tea "github.com/charmbracelet/bubbletea"
)

// bannerExpiredMsg fires when the timer armed for generation gen runs out.
type bannerExpiredMsg struct {
	gen int
}

// banner is the transient error line. Every Set or Dismiss bumps gen, so
// an expiry armed for an older message is ignored: a new message restarts
// the countdown and a dismissal cancels it.
type banner struct {
	text string
	gen  int
}

func (b *banner) Set(text string, after time.Duration) tea.Cmd {
	b.gen++
	b.text = text
	gen := b.gen
	return tea.Tick(after, func(time.Time) tea.Msg {
		return bannerExpiredMsg{gen: gen}
	})
}

func (b *banner) Dismiss() {
	b.gen++
	b.text = ""
}

// Expire clears the banner if msg belongs to the current generation.
func (b *banner) Expire(msg bannerExpiredMsg) {
	if msg.gen == b.gen {
		b.text = ""
	}
}

func (b banner) Visible() bool {
	return b.text != ""
}
