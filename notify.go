package qrcode

import (
	"fmt"
	"io"
	"sync"
	"time"

	"github.com/fatih/color"
)

// NotifyDuration is how long a Toast stays visible.
const NotifyDuration = 5 * time.Second

// Notifier surfaces user-facing failures.
type Notifier interface {
	Notify(message string)
}

// Toast shows at most one message at a time. A new message replaces the
// visible text and restarts the dismiss timer.
type Toast struct {
	mu       sync.Mutex
	out      io.Writer
	paint    *color.Color
	duration time.Duration
	text     string
	visible  bool
	shown    uint64
	timer    *time.Timer
}

// NewToast writes messages to out. A non-positive duration uses NotifyDuration.
func NewToast(out io.Writer, duration time.Duration) *Toast {
	if duration <= 0 {
		duration = NotifyDuration
	}

	return &Toast{
		out:      out,
		paint:    color.New(color.FgWhite, color.BgRed, color.Bold),
		duration: duration,
	}
}

func (t *Toast) Notify(message string) {
	t.mu.Lock()
	defer t.mu.Unlock()

	t.text = message
	t.visible = true
	t.shown++

	if t.out != nil {
		fmt.Fprintln(t.out, t.paint.Sprintf(" %s ", message))
	}

	if t.timer != nil {
		t.timer.Stop()
	}

	shown := t.shown
	t.timer = time.AfterFunc(t.duration, func() { t.dismiss(shown) })
}

// Visible returns the current message and whether it is still shown.
func (t *Toast) Visible() (string, bool) {
	t.mu.Lock()
	defer t.mu.Unlock()

	return t.text, t.visible
}

// dismiss hides message n unless a newer one replaced it.
func (t *Toast) dismiss(n uint64) {
	t.mu.Lock()
	defer t.mu.Unlock()

	if n == t.shown {
		t.visible = false
	}
}

// discardNotifier drops every message.
type discardNotifier struct{}

func (discardNotifier) Notify(string) {}
