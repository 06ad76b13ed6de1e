// Package theme derives the menu palette from a chroma style.
package theme

import (
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/alecthomas/chroma/v2"
	"github.com/alecthomas/chroma/v2/styles"
	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/termenv"
	"golang.org/x/term"
)

var (
	ErrInvalidName    = errors.New("invalid theme name")
	ErrRegisterStyles = errors.New("register styles")
)

// Default is the theme used when none is configured.
var Default = New("auto")

type Theme struct {
	Name string

	LogoStyle       lipgloss.Style
	HeaderStyle     lipgloss.Style
	SelectedStyle   lipgloss.Style
	CursorStyle     lipgloss.Style
	ItemStyle       lipgloss.Style
	SubtleStyle     lipgloss.Style
	EmptySlotStyle  lipgloss.Style
	FilterStyle     lipgloss.Style
	PaginationStyle lipgloss.Style
	HelpStyle       lipgloss.Style
	StatusStyle     lipgloss.Style
	ErrorStyle      lipgloss.Style
}

// New builds a [Theme] from the chroma style called name. "dark" and
// "light" select the GitHub styles; "auto" (or "") picks one of them from
// the terminal background. Unknown names use the chroma fallback style.
func New(name string) *Theme {
	p := newPalette(resolve(name))

	subtle := lipgloss.NewStyle().Foreground(p.fg(chroma.Comment, 0))
	accent := lipgloss.NewStyle().Foreground(p.fg(chroma.NameTag, 0))

	return &Theme{
		Name: p.style.Name,

		LogoStyle: lipgloss.NewStyle().
			Foreground(p.bg(chroma.Background, 0)).
			Background(p.fg(chroma.NameTag, 0)).
			Bold(true).
			Padding(0, 1),
		HeaderStyle:     subtle,
		SelectedStyle:   accent.Bold(true),
		CursorStyle:     accent,
		ItemStyle:       lipgloss.NewStyle().Foreground(p.fg(chroma.Background, 0)),
		SubtleStyle:     subtle,
		EmptySlotStyle:  lipgloss.NewStyle().Foreground(p.fg(chroma.Comment, 0.3)),
		FilterStyle:     accent,
		PaginationStyle: subtle,
		HelpStyle:       lipgloss.NewStyle().Foreground(p.fg(chroma.Background, 0.2)),
		StatusStyle: lipgloss.NewStyle().
			Foreground(p.fg(chroma.Background, 0)).
			Background(p.bg(chroma.Background, 0.1)),
		ErrorStyle: lipgloss.NewStyle().Foreground(p.fg(chroma.GenericDeleted, 0)),
	}
}

// Register adds a custom chroma style that [New] can then select by name.
func Register(name string, entries chroma.StyleEntries) error {
	if strings.TrimSpace(name) == "" {
		return ErrInvalidName
	}

	s, err := chroma.NewStyle(name, entries)
	if err != nil {
		return fmt.Errorf("%w: %s: %w", ErrRegisterStyles, name, err)
	}

	styles.Register(s)

	return nil
}

type palette struct {
	style *chroma.Style
}

func newPalette(name string) palette {
	s := styles.Get(name)
	if s == nil {
		s = styles.Fallback
	}

	return palette{style: s}
}

// fg returns the foreground of token c, brightened or darkened by factor.
func (p palette) fg(c chroma.TokenType, factor float64) lipgloss.Color {
	col := p.style.Get(c).Colour //nolint:misspell // Chroma naming.
	if factor != 0 {
		col = col.BrightenOrDarken(factor)
	}

	return lipgloss.Color(col.String())
}

func (p palette) bg(c chroma.TokenType, factor float64) lipgloss.Color {
	col := p.style.Get(c).Background
	if factor != 0 {
		col = col.BrightenOrDarken(factor)
	}

	return lipgloss.Color(col.String())
}

func resolve(name string) string {
	switch strings.ToLower(name) {
	case "dark":
		return "github-dark"
	case "light":
		return "github"
	case "auto", "":
		return detect()
	}

	return name
}

func detect() string {
	if !term.IsTerminal(int(os.Stdout.Fd())) { //nolint:gosec // G115: fd fits in int.
		return "github"
	}
	if termenv.HasDarkBackground() {
		return "github-dark"
	}

	return "github"
}
