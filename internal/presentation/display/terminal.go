// Package display renders the engine's status feed on the terminal. It only
// consumes read-only state produced by the core; nothing here feeds back
// into tracking.
package display

import (
	"fmt"
	"os"
	"strings"

	"github.com/mattn/go-runewidth"
	"golang.org/x/term"

	"github.com/mouseminder/mouseminder/internal/core/model"
)

// State is the read-only view the core hands to the display each refresh.
type State struct {
	Paused   bool
	Current  *model.PositionSample
	Snapshot *model.Snapshot
	Binding  string
	Feedback string
}

// Terminal draws the status screen in the alternate screen buffer.
type Terminal struct {
	out *os.File
}

// NewTerminal creates a Terminal writing to stdout.
func NewTerminal() *Terminal {
	return &Terminal{out: os.Stdout}
}

// Interactive reports whether stdout is a terminal.
func (t *Terminal) Interactive() bool {
	return term.IsTerminal(int(t.out.Fd()))
}

// EnterAlternateScreen switches to the alternate screen buffer and clears it.
func (t *Terminal) EnterAlternateScreen() {
	fmt.Fprint(t.out, "\033[?1049h")
	fmt.Fprint(t.out, "\033[2J")
	fmt.Fprint(t.out, "\033[H")
	fmt.Fprint(t.out, "\033[?25l") // Hide cursor
}

// ExitAlternateScreen restores the normal screen buffer.
func (t *Terminal) ExitAlternateScreen() {
	fmt.Fprint(t.out, "\033[?25h") // Show cursor
	fmt.Fprint(t.out, "\033[?1049l")
}

// Render redraws the whole status screen.
func (t *Terminal) Render(state State) {
	width, _, err := term.GetSize(int(t.out.Fd()))
	if err != nil || width <= 0 {
		width = 80
	}

	var b strings.Builder
	b.WriteString("\033[H")

	line := func(text string) {
		b.WriteString(centerLine(text, width))
		b.WriteString("\033[K\n")
	}

	line("")
	line("MouseMinder")
	line(strings.Repeat("─", min(width-2, 40)))
	line("")

	if state.Paused {
		line("● PAUSED")
	} else {
		line("● TRACKING")
	}
	line("")

	if state.Current != nil {
		line(fmt.Sprintf("Cursor: X: %d, Y: %d", state.Current.X, state.Current.Y))
	} else {
		line("Cursor: —")
	}
	line("")

	line("Last Saved Position")
	if state.Snapshot != nil {
		line(fmt.Sprintf("X: %d, Y: %d", state.Snapshot.X, state.Snapshot.Y))
		line(fmt.Sprintf("Saved at: %s", state.Snapshot.ConfirmedAt.Format("15:04:05")))
	} else {
		line("No position saved yet")
	}
	line("")

	if state.Feedback != "" {
		line(state.Feedback)
	} else {
		line("")
	}
	line("")

	line(strings.Repeat("─", min(width-2, 40)))
	line(fmt.Sprintf("Press %s to restore the saved position", state.Binding))
	line("[p] pause/resume   [r] restore   [c] clear   [q] quit")

	b.WriteString("\033[J")
	fmt.Fprint(t.out, b.String())
}

// FeedbackText maps a status event to the transient message shown on screen.
func FeedbackText(event model.StatusEvent) string {
	switch event.Kind {
	case model.StatusRestored:
		return "Position restored!"
	case model.StatusNothingToRestore:
		return "Nothing to restore yet"
	case model.StatusRestoreFailed:
		return "Restore failed (check accessibility permission)"
	case model.StatusSnapshotSaved:
		if event.Snapshot != nil {
			return fmt.Sprintf("Saved X: %d, Y: %d", event.Snapshot.X, event.Snapshot.Y)
		}
		return "Position saved"
	case model.StatusSnapshotCleared:
		return "Saved position cleared"
	case model.StatusTrackingPaused:
		return "Tracking paused"
	case model.StatusTrackingResumed:
		return "Tracking resumed"
	case model.StatusHotkeyRebound:
		return fmt.Sprintf("Hotkey changed to %s", event.Binding)
	case model.StatusHotkeyLost:
		return "Hotkey unavailable; tracking continues"
	case model.StatusPermissionDenied:
		return "Input monitoring permission denied"
	default:
		return ""
	}
}

// centerLine pads text to the middle of the given width, accounting for
// wide runes.
func centerLine(text string, width int) string {
	w := runewidth.StringWidth(text)
	if w >= width {
		return text
	}
	return strings.Repeat(" ", (width-w)/2) + text
}
