package ui

import (
	"time"

	tea "github.com/charmbracelet/bubbletea/v2"
)

// showToastMsg displays a transient notification for the given TTL.
type showToastMsg struct {
	text string
	ttl  time.Duration
}

type toastTickMsg struct{}

// ShowToast returns a Cmd to display a transient notification.
func (a *App) ShowToast(text string, ttl time.Duration) tea.Cmd {
	return func() tea.Msg { return showToastMsg{text: text, ttl: ttl} }
}

func (a *App) handleToast(msg tea.Msg) tea.Cmd {
	switch msg := msg.(type) {
	case showToastMsg:
		a.toastActive = true
		a.toastText = msg.text
		a.toastUntil = time.Now().Add(msg.ttl)
		return tea.Tick(250*time.Millisecond, func(time.Time) tea.Msg { return toastTickMsg{} })
	case toastTickMsg:
		if !a.toastActive {
			return nil
		}
		if time.Now().After(a.toastUntil) {
			a.toastActive = false
			return nil
		}
		return tea.Tick(250*time.Millisecond, func(time.Time) tea.Msg { return toastTickMsg{} })
	}
	return nil
}
