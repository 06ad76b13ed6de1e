// Package uitest provides helpers for testing Bubble Tea views.
//
//	func TestMenu(t *testing.T) {
//	    uitest.SetupColorProfile()
//
//	    tm := uitest.NewTestModel(t, model, uitest.Compact)
//	    tm.Send(tea.KeyMsg{Type: tea.KeyDown})
//	    uitest.WaitForText(t, tm.Output(), "› item 2")
//	}
package uitest

import (
	"bytes"
	"io"
	"strings"
	"testing"
	"time"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/x/ansi"
	"github.com/charmbracelet/x/exp/teatest"
	"github.com/muesli/termenv"

	tea "github.com/charmbracelet/bubbletea"
)

// DefaultTimeout bounds every wait in this package.
const DefaultTimeout = 3 * time.Second

// Size represents terminal dimensions.
type Size struct {
	Width  int
	Height int
}

var (
	// Compact is the classic 80x24 terminal.
	Compact = Size{Width: 80, Height: 24}
	// Narrow is too small for most chrome.
	Narrow = Size{Width: 20, Height: 10}
)

// SetupColorProfile pins the color profile so styled output is stable.
func SetupColorProfile() {
	lipgloss.SetColorProfile(termenv.TrueColor)
}

// NewTestModel starts m in a teatest program with the given terminal size.
func NewTestModel(tb testing.TB, m tea.Model, size Size) *teatest.TestModel {
	tb.Helper()

	return teatest.NewTestModel(tb, m, teatest.WithInitialTermSize(size.Width, size.Height))
}

// WaitForText waits until the ANSI-stripped output contains text.
func WaitForText(tb testing.TB, r io.Reader, text string) {
	tb.Helper()

	teatest.WaitFor(tb, r, func(b []byte) bool {
		return bytes.Contains([]byte(ansi.Strip(string(b))), []byte(text))
	}, teatest.WithDuration(DefaultTimeout), teatest.WithCheckInterval(10*time.Millisecond))
}

// FinalModel waits for the program to exit and returns its last model.
func FinalModel(tb testing.TB, tm *teatest.TestModel) tea.Model { //nolint:ireturn // Any model.
	tb.Helper()

	return tm.FinalModel(tb, teatest.WithFinalTimeout(DefaultTimeout))
}

// PlainLines strips ANSI sequences from a view and returns its lines with
// trailing spaces removed.
func PlainLines(view string) []string {
	lines := strings.Split(ansi.Strip(view), "\n")
	for i, l := range lines {
		lines[i] = strings.TrimRight(l, " ")
	}

	return lines
}
