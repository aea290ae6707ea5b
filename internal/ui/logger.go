package ui

import (
	"fmt"
	"strings"
	"sync"
	"time"

	tea "github.com/charmbracelet/bubbletea/v2"
	"github.com/go-logr/logr"
)

// ToastLogger is a minimal adapter that wraps log-style calls and emits
// transient toasts in the UI for errors, with rate limiting to avoid storms.
type ToastLogger struct {
	app         *App
	mu          sync.Mutex
	lastToast   time.Time
	minInterval time.Duration
	lastText    string
	now         func() time.Time
}

func NewToastLogger(app *App, minInterval time.Duration) *ToastLogger {
	return &ToastLogger{app: app, minInterval: minInterval, now: time.Now}
}

// Errorf shows a red toast for the formatted error message if allowed by the
// rate limiter. It also returns the message as a Cmd for easy composition.
func (l *ToastLogger) Errorf(format string, args ...any) tea.Cmd {
	msg := strings.TrimSpace(fmt.Sprintf(format, args...))
	l.mu.Lock()
	now := l.now()
	// Suppress duplicates of the same text for 30s to avoid storms.
	suppressDup := (msg == l.lastText) && now.Sub(l.lastToast) < 30*time.Second
	allow := now.Sub(l.lastToast) >= l.minInterval && !suppressDup
	if allow {
		l.lastToast = now
		l.lastText = msg
	}
	l.mu.Unlock()
	if !allow {
		return nil
	}
	return l.app.ShowToast(msg, 5*time.Second)
}

// Logger returns a logr.Logger that forwards everything to next and also
// turns Error calls into toasts.
func (l *ToastLogger) Logger(next logr.Logger) logr.Logger {
	return logr.New(&toastSink{toasts: l, next: next.GetSink()})
}

type toastSink struct {
	toasts *ToastLogger
	next   logr.LogSink
}

func (s *toastSink) Init(info logr.RuntimeInfo) {
	if s.next != nil {
		s.next.Init(info)
	}
}

func (s *toastSink) Enabled(level int) bool {
	return s.next != nil && s.next.Enabled(level)
}

func (s *toastSink) Info(level int, msg string, kv ...any) {
	if s.next != nil {
		s.next.Info(level, msg, kv...)
	}
}

func (s *toastSink) Error(err error, msg string, kv ...any) {
	if s.next != nil {
		s.next.Error(err, msg, kv...)
	}
	s.toasts.app.enqueueCmd(s.toasts.Errorf("%s: %v", msg, err))
}

func (s *toastSink) WithValues(kv ...any) logr.LogSink {
	out := *s
	if s.next != nil {
		out.next = s.next.WithValues(kv...)
	}
	return &out
}

func (s *toastSink) WithName(name string) logr.LogSink {
	out := *s
	if s.next != nil {
		out.next = s.next.WithName(name)
	}
	return &out
}
