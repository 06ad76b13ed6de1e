// Package menu implements a Bubble Tea picker whose visible rows are framed
// by a [pagination.State].
package menu

import (
	"errors"
	"fmt"
	"log/slog"

	"github.com/charmbracelet/bubbles/paginator"
	"github.com/charmbracelet/bubbles/textinput"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/macropower/pagewin/pkg/pagination"
	"github.com/macropower/pagewin/pkg/ui/theme"
)

var ErrInvalidConfig = errors.New("invalid menu config")

type Config struct {
	Logger       *slog.Logger
	KeyBinds     *KeyBinds
	Theme        *theme.Theme
	Title        string
	Items        []string
	ItemsPerPage int
	Strategy     pagination.Strategy
}

// ConfigMsg changes the window capacity and scroll strategy of a running
// menu. Invalid values are logged and the current frame is kept.
type ConfigMsg struct {
	ItemsPerPage int
	Strategy     pagination.Strategy
}

// ItemsMsg replaces the menu items. The active filter is re-applied.
type ItemsMsg []string

type Model struct {
	state     *pagination.State
	kb        *KeyBinds
	theme     *theme.Theme
	log       *slog.Logger
	title     string
	items     []string
	visible   []int // Indices into items, in display order.
	chosen    int
	filter    textinput.Model
	paginator paginator.Model
	width     int
	filtering bool
	showHelp  bool
	quitting  bool
}

func New(c Config) (Model, error) {
	state, err := pagination.New(c.ItemsPerPage, c.Strategy)
	if err != nil {
		return Model{}, fmt.Errorf("%w: %w", ErrInvalidConfig, err)
	}

	kb := c.KeyBinds
	if kb == nil {
		kb = NewKeyBinds()
	}

	kb.EnsureDefaults()

	err = kb.Validate()
	if err != nil {
		return Model{}, fmt.Errorf("%w: %w", ErrInvalidConfig, err)
	}

	t := c.Theme
	if t == nil {
		t = theme.Default
	}

	logger := c.Logger
	if logger == nil {
		logger = slog.Default()
	}

	title := c.Title
	if title == "" {
		title = "pagewin"
	}

	fi := textinput.New()
	fi.Prompt = "/ "
	fi.PromptStyle = t.FilterStyle
	fi.Cursor.Style = t.CursorStyle

	p := paginator.New()
	p.Type = paginator.Dots
	p.ActiveDot = t.SelectedStyle.Render("•")
	p.InactiveDot = t.EmptySlotStyle.Render("◦")

	m := Model{
		state:     state,
		kb:        kb,
		theme:     t,
		log:       logger,
		title:     title,
		filter:    fi,
		paginator: p,
		chosen:    -1,
		width:     80,
	}
	m.setItems(c.Items)

	return m, nil
}

func (m Model) Init() tea.Cmd {
	return nil
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		return m, nil

	case ConfigMsg:
		m.applyConfig(msg)
		return m, nil

	case ItemsMsg:
		m.setItems(msg)
		return m, nil

	case tea.KeyMsg:
		if m.filtering {
			return m.handleFilterKeys(msg)
		}

		return m.handleKeys(msg)
	}

	return m, nil
}

// Chosen returns the item picked with the select key, if any.
func (m Model) Chosen() (string, bool) {
	if m.chosen < 0 {
		return "", false
	}

	return m.items[m.chosen], true
}

// State returns the pagination state driving the visible window.
func (m Model) State() *pagination.State {
	return m.state
}

// Visible returns the items that pass the current filter, in display order.
func (m Model) Visible() []string {
	out := make([]string, len(m.visible))
	for i, idx := range m.visible {
		out[i] = m.items[idx]
	}

	return out
}

func (m *Model) applyConfig(msg ConfigMsg) {
	err := pagination.Validate(msg.ItemsPerPage, msg.Strategy)
	if err != nil {
		m.log.Warn("ignore config update", slog.Any("error", err))
		return
	}

	err = m.state.SetItemsPerPage(msg.ItemsPerPage)
	if err != nil {
		m.log.Error("set items per page", slog.Any("error", err))
		return
	}

	err = m.state.SetStrategy(msg.Strategy)
	if err != nil {
		m.log.Error("set strategy", slog.Any("error", err))
		return
	}

	m.log.Debug("applied config update", slog.Any("pagination", m.state))
}

func (m *Model) setItems(items []string) {
	m.items = items
	m.chosen = -1
	m.refilter()
}

func (m *Model) cycleStrategy() {
	next := pagination.Strategy((int(m.state.Strategy()) + 1) % len(pagination.AllStrategies))

	err := m.state.SetStrategy(next)
	if err != nil {
		m.log.Error("cycle strategy", slog.Any("error", err))
		return
	}

	m.log.Debug("changed strategy", slog.Any("pagination", m.state))
}
