package menu

import (
	"log/slog"

	"github.com/sahilm/fuzzy"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/macropower/pagewin/pkg/keys"
)

func (m Model) handleFilterKeys(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	key := msg.String()

	switch {
	case m.kb.Escape.Match(key):
		m.resetFilter()
		return m, nil

	case m.kb.Select.Match(key), !keys.IsTextInput(key):
		// Apply the filter and return to navigation.
		m.filtering = false
		m.filter.Blur()

		if m.filter.Value() == "" {
			m.resetFilter()
		}

		if m.kb.Select.Match(key) {
			return m, nil
		}

		return m.handleKeys(msg)
	}

	prev := m.filter.Value()

	var cmd tea.Cmd

	m.filter, cmd = m.filter.Update(msg)
	if m.filter.Value() != prev {
		m.refilter()
	}

	return m, cmd
}

func (m *Model) startFilter() tea.Cmd {
	m.filtering = true
	return m.filter.Focus()
}

func (m *Model) resetFilter() {
	m.filtering = false
	m.filter.Blur()
	m.filter.Reset()
	m.refilter()
}

// refilter recomputes the visible items and resizes the pagination state to
// match. A shrinking match set clamps the selection onto the last match.
func (m *Model) refilter() {
	query := m.filter.Value()

	visible := make([]int, 0, len(m.items))
	if query == "" {
		for i := range m.items {
			visible = append(visible, i)
		}
	} else {
		for _, match := range fuzzy.Find(query, m.items) {
			visible = append(visible, match.Index)
		}
	}

	m.visible = visible

	m.state.SetTotalItems(len(m.visible))

	m.log.Debug("filtered items",
		slog.String("query", query),
		slog.Int("matches", len(m.visible)),
		slog.Any("pagination", m.state),
	)
}
