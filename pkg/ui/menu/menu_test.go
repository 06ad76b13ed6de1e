package menu_test

import (
	"bytes"
	"io"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/macropower/pagewin/pkg/keys"
	"github.com/macropower/pagewin/pkg/pagination"
	"github.com/macropower/pagewin/pkg/ui/menu"
	"github.com/macropower/pagewin/pkg/ui/theme"
	"github.com/macropower/pagewin/pkg/uitest"
)

var fruit = []string{"apple", "banana", "cherry", "date", "elderberry", "fig", "grape"}

func newModel(t *testing.T, items []string, perPage int, strategy pagination.Strategy) menu.Model {
	t.Helper()

	m, err := menu.New(menu.Config{
		Logger:       slog.New(slog.NewTextHandler(io.Discard, nil)),
		Theme:        theme.New("dark"),
		Items:        items,
		ItemsPerPage: perPage,
		Strategy:     strategy,
	})
	require.NoError(t, err)

	return m
}

func keyMsg(key string) tea.KeyMsg {
	switch key {
	case "up":
		return tea.KeyMsg{Type: tea.KeyUp}
	case "down":
		return tea.KeyMsg{Type: tea.KeyDown}
	case "pgup":
		return tea.KeyMsg{Type: tea.KeyPgUp}
	case "pgdown":
		return tea.KeyMsg{Type: tea.KeyPgDown}
	case "home":
		return tea.KeyMsg{Type: tea.KeyHome}
	case "end":
		return tea.KeyMsg{Type: tea.KeyEnd}
	case "enter":
		return tea.KeyMsg{Type: tea.KeyEnter}
	case "esc":
		return tea.KeyMsg{Type: tea.KeyEsc}
	case "ctrl+c":
		return tea.KeyMsg{Type: tea.KeyCtrlC}
	}

	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(key)}
}

// press sends each message to m and returns the resulting model and the
// command from the last update.
func press(t *testing.T, m menu.Model, msgs ...tea.Msg) (menu.Model, tea.Cmd) {
	t.Helper()

	var cmd tea.Cmd

	for _, msg := range msgs {
		if k, ok := msg.(string); ok {
			msg = keyMsg(k)
		}

		var next tea.Model

		next, cmd = m.Update(msg)

		var ok bool

		m, ok = next.(menu.Model)
		require.True(t, ok)
	}

	return m, cmd
}

// rows returns the plain item rows of the view.
func rows(m menu.Model) []string {
	lines := uitest.PlainLines(m.View())
	perPage := m.State().ItemsPerPage()

	start := 1
	if len(lines) > 1 && len(lines[1]) > 0 && lines[1][0] == '/' {
		start = 2
	}

	return lines[start : start+perPage]
}

func TestNew(t *testing.T) {
	t.Parallel()

	up := keys.NewBind("up", keys.New("x"))
	down := keys.NewBind("down", keys.New("x"))

	tcs := map[string]struct {
		cfg menu.Config
		err error
	}{
		"defaults": {
			cfg: menu.Config{ItemsPerPage: 5, Items: fruit},
		},
		"zero rows": {
			cfg: menu.Config{ItemsPerPage: 0},
			err: menu.ErrInvalidConfig,
		},
		"unknown strategy": {
			cfg: menu.Config{ItemsPerPage: 5, Strategy: pagination.Strategy(9)},
			err: menu.ErrInvalidConfig,
		},
		"duplicate keys": {
			cfg: menu.Config{
				ItemsPerPage: 5,
				KeyBinds: &menu.KeyBinds{
					Up:   &up,
					Down: &down,
				},
			},
			err: keys.ErrDuplicateKey,
		},
	}

	for name, tc := range tcs {
		t.Run(name, func(t *testing.T) {
			t.Parallel()

			m, err := menu.New(tc.cfg)
			if tc.err != nil {
				require.ErrorIs(t, err, tc.err)
				return
			}

			require.NoError(t, err)
			assert.Equal(t, len(tc.cfg.Items), m.State().TotalItems())
			assert.Nil(t, m.Init())
		})
	}
}

func TestUpdate_Navigation(t *testing.T) {
	t.Parallel()

	tcs := map[string]struct {
		strategy  pagination.Strategy
		keys      []tea.Msg
		wantRows  []string
		wantIndex int
	}{
		"down": {
			strategy:  pagination.Classic,
			keys:      []tea.Msg{"down", "j"},
			wantIndex: 2,
			wantRows:  []string{"  apple", "  banana", "› cherry", "  date", "  elderberry"},
		},
		"wrap up anchors the last page": {
			strategy:  pagination.Classic,
			keys:      []tea.Msg{"up"},
			wantIndex: 6,
			wantRows:  []string{"  cherry", "  date", "  elderberry", "  fig", "› grape"},
		},
		"paginated last page has blank rows": {
			strategy:  pagination.Paginated,
			keys:      []tea.Msg{"up"},
			wantIndex: 6,
			wantRows:  []string{"  fig", "› grape", "", "", ""},
		},
		"infinite wraps the window": {
			strategy:  pagination.Infinite,
			keys:      []tea.Msg{"up"},
			wantIndex: 6,
			wantRows:  []string{"› grape", "  apple", "  banana", "  cherry", "  date"},
		},
		"end": {
			strategy:  pagination.Classic,
			keys:      []tea.Msg{"end"},
			wantIndex: 6,
			wantRows:  []string{"  cherry", "  date", "  elderberry", "  fig", "› grape"},
		},
		"home": {
			strategy:  pagination.Classic,
			keys:      []tea.Msg{"G", "g"},
			wantIndex: 0,
			wantRows:  []string{"› apple", "  banana", "  cherry", "  date", "  elderberry"},
		},
		"page down clamps": {
			strategy:  pagination.Paginated,
			keys:      []tea.Msg{"down", "pgdown", "pgdown"},
			wantIndex: 6,
			wantRows:  []string{"  fig", "› grape", "", "", ""},
		},
		"page up clamps": {
			strategy:  pagination.Paginated,
			keys:      []tea.Msg{"pgdown", "pgup", "pgup"},
			wantIndex: 0,
			wantRows:  []string{"› apple", "  banana", "  cherry", "  date", "  elderberry"},
		},
		"unbound key": {
			strategy:  pagination.Classic,
			keys:      []tea.Msg{"z"},
			wantIndex: 0,
			wantRows:  []string{"› apple", "  banana", "  cherry", "  date", "  elderberry"},
		},
	}

	for name, tc := range tcs {
		t.Run(name, func(t *testing.T) {
			t.Parallel()

			m := newModel(t, fruit, 5, tc.strategy)
			m, _ = press(t, m, tc.keys...)

			assert.Equal(t, tc.wantIndex, m.State().CurrentMenuIndex())
			assert.Equal(t, tc.wantRows, rows(m))
		})
	}
}

func TestUpdate_Select(t *testing.T) {
	t.Parallel()

	m := newModel(t, fruit, 5, pagination.Classic)

	_, ok := m.Chosen()
	assert.False(t, ok)

	m, cmd := press(t, m, "down", "enter")
	require.NotNil(t, cmd)
	assert.Equal(t, tea.QuitMsg{}, cmd())

	chosen, ok := m.Chosen()
	require.True(t, ok)
	assert.Equal(t, "banana", chosen)
	assert.Empty(t, m.View())
}

func TestUpdate_Quit(t *testing.T) {
	t.Parallel()

	for _, key := range []string{"q", "ctrl+c"} {
		t.Run(key, func(t *testing.T) {
			t.Parallel()

			m, cmd := press(t, newModel(t, fruit, 5, pagination.Classic), key)
			require.NotNil(t, cmd)
			assert.Equal(t, tea.QuitMsg{}, cmd())

			_, ok := m.Chosen()
			assert.False(t, ok)
		})
	}
}

func TestUpdate_Filter(t *testing.T) {
	t.Parallel()

	t.Run("shrinks the collection and clamps the selection", func(t *testing.T) {
		t.Parallel()

		m := newModel(t, fruit, 5, pagination.Classic)
		m, _ = press(t, m, "up", "/", "a", "n")

		assert.Equal(t, []string{"banana"}, m.Visible())
		assert.Equal(t, 1, m.State().TotalItems())
		assert.Equal(t, 0, m.State().CurrentMenuIndex())
		assert.Contains(t, m.View(), "1 of 7 items")
		assert.Equal(t, []string{"› banana", "", "", "", ""}, rows(m))

		// Enter applies the filter, a second enter picks the match.
		m, _ = press(t, m, "enter", "enter")

		chosen, ok := m.Chosen()
		require.True(t, ok)
		assert.Equal(t, "banana", chosen)
	})

	t.Run("navigation keys leave the input", func(t *testing.T) {
		t.Parallel()

		m := newModel(t, fruit, 5, pagination.Classic)
		m, _ = press(t, m, "/", "e", "down")

		assert.Len(t, m.Visible(), m.State().TotalItems())
		assert.Equal(t, 1, m.State().CurrentMenuIndex())

		// "j" moves again instead of typing.
		m, _ = press(t, m, "j")
		assert.Equal(t, 2, m.State().CurrentMenuIndex())
	})

	t.Run("escape restores every item", func(t *testing.T) {
		t.Parallel()

		m := newModel(t, fruit, 5, pagination.Classic)
		m, _ = press(t, m, "/", "f", "i", "g")
		require.Equal(t, []string{"fig"}, m.Visible())

		m, _ = press(t, m, "esc")
		assert.Equal(t, fruit, m.Visible())
		assert.Equal(t, len(fruit), m.State().TotalItems())
	})

	t.Run("no matches", func(t *testing.T) {
		t.Parallel()

		m := newModel(t, fruit, 5, pagination.Classic)
		m, _ = press(t, m, "/", "z", "z", "z", "enter")

		assert.Empty(t, m.Visible())
		assert.Equal(t, 0, m.State().WindowLen())
		assert.Contains(t, m.View(), "no items")

		// Moves and select are no-ops.
		m, cmd := press(t, m, "down", "enter")
		assert.Nil(t, cmd)

		_, ok := m.Chosen()
		assert.False(t, ok)
	})
}

func TestUpdate_ConfigMsg(t *testing.T) {
	t.Parallel()

	tcs := map[string]struct {
		msg          menu.ConfigMsg
		wantStrategy pagination.Strategy
		wantPerPage  int
	}{
		"applied": {
			msg:          menu.ConfigMsg{ItemsPerPage: 3, Strategy: pagination.Infinite},
			wantPerPage:  3,
			wantStrategy: pagination.Infinite,
		},
		"zero rows is ignored": {
			msg:          menu.ConfigMsg{ItemsPerPage: 0, Strategy: pagination.Infinite},
			wantPerPage:  5,
			wantStrategy: pagination.Classic,
		},
		"unknown strategy is ignored": {
			msg:          menu.ConfigMsg{ItemsPerPage: 3, Strategy: pagination.Strategy(42)},
			wantPerPage:  5,
			wantStrategy: pagination.Classic,
		},
	}

	for name, tc := range tcs {
		t.Run(name, func(t *testing.T) {
			t.Parallel()

			m := newModel(t, fruit, 5, pagination.Classic)
			m, _ = press(t, m, "end", tc.msg)

			s := m.State()
			assert.Equal(t, tc.wantPerPage, s.ItemsPerPage())
			assert.Equal(t, tc.wantStrategy, s.Strategy())
			assert.Equal(t, 6, s.CurrentMenuIndex())
			assert.True(t, s.IsVisible(6))
			assert.Len(t, rows(m), tc.wantPerPage)
		})
	}
}

func TestUpdate_ItemsMsg(t *testing.T) {
	t.Parallel()

	m := newModel(t, fruit, 5, pagination.Classic)
	m, _ = press(t, m, "end", menu.ItemsMsg{"one", "two"})

	assert.Equal(t, []string{"one", "two"}, m.Visible())
	assert.Equal(t, 2, m.State().TotalItems())
	assert.Equal(t, 1, m.State().CurrentMenuIndex())
	assert.Equal(t, []string{"  one", "› two", "", "", ""}, rows(m))
}

func TestUpdate_StrategyCycle(t *testing.T) {
	t.Parallel()

	m := newModel(t, fruit, 5, pagination.Classic)

	for _, want := range []pagination.Strategy{
		pagination.Infinite,
		pagination.Paginated,
		pagination.Classic,
	} {
		m, _ = press(t, m, "s")
		assert.Equal(t, want, m.State().Strategy())
		assert.Contains(t, m.View(), want.String())
	}
}

func TestView(t *testing.T) {
	t.Parallel()

	m := newModel(t, fruit, 5, pagination.Paginated)
	m, _ = press(t, m, tea.WindowSizeMsg{Width: 60, Height: 20})

	view := uitest.PlainLines(m.View())
	assert.Contains(t, view[0], "pagewin")
	assert.Contains(t, view[0], "paginated · 7 items")
	assert.Contains(t, m.View(), "•")
	assert.Equal(t, "? help", view[len(view)-1])

	m, _ = press(t, m, "?")
	assert.Contains(t, m.View(), "quit")
	assert.NotContains(t, m.View(), "? help")

	m, _ = press(t, m, "?")
	assert.Contains(t, m.View(), "? help")
}

func TestView_SinglePageHidesPaginator(t *testing.T) {
	t.Parallel()

	m := newModel(t, fruit[:3], 5, pagination.Classic)
	assert.NotContains(t, m.View(), "•")
	assert.Equal(t, []string{"› apple", "  banana", "  cherry", "", ""}, rows(m))
}

func TestView_TruncatesLongItems(t *testing.T) {
	t.Parallel()

	m := newModel(t, []string{"a very long item that does not fit"}, 1, pagination.Classic)
	m, _ = press(t, m, tea.WindowSizeMsg{Width: 12, Height: 10})

	assert.Equal(t, []string{"› a very lo" + keys.Ellipsis}, rows(m))
}

func TestUpdate_ConfigMsg_RejectedIsAtomic(t *testing.T) {
	t.Parallel()

	var logs bytes.Buffer

	m, err := menu.New(menu.Config{
		Logger:       slog.New(slog.NewTextHandler(&logs, nil)),
		Theme:        theme.New("dark"),
		Items:        fruit,
		ItemsPerPage: 5,
		Strategy:     pagination.Classic,
	})
	require.NoError(t, err)

	// A valid size with an invalid strategy must not resize the window.
	m, _ = press(t, m, menu.ConfigMsg{ItemsPerPage: 2, Strategy: pagination.Strategy(-1)})

	assert.Equal(t, 5, m.State().ItemsPerPage())
	assert.Equal(t, pagination.Classic, m.State().Strategy())
	assert.Contains(t, logs.String(), "ignore config update")
	assert.Contains(t, logs.String(), pagination.ErrUnknownStrategy.Error())
}
