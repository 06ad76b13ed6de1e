package menu

import (
	"log/slog"

	tea "github.com/charmbracelet/bubbletea"
)

func (m Model) handleKeys(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	key := msg.String()
	kb := m.kb

	switch {
	case kb.Quit.Match(key):
		m.quitting = true
		return m, tea.Quit

	case kb.Help.Match(key):
		m.showHelp = !m.showHelp
		return m, nil

	case kb.Filter.Match(key):
		cmd := m.startFilter()
		return m, cmd

	case kb.Escape.Match(key):
		if m.filter.Value() != "" {
			m.resetFilter()
		}

		return m, nil

	case kb.Strategy.Match(key):
		m.cycleStrategy()
		return m, nil
	}

	n := m.state.TotalItems()
	if n == 0 {
		return m, nil
	}

	idx := m.state.CurrentMenuIndex()
	perPage := m.state.ItemsPerPage()

	var shifted bool

	switch {
	case kb.Up.Match(key):
		shifted = m.state.MoveUp()
	case kb.Down.Match(key):
		shifted = m.state.MoveDown()
	case kb.PageUp.Match(key):
		shifted = m.state.Select(idx - perPage)
	case kb.PageDown.Match(key):
		shifted = m.state.Select(idx + perPage)
	case kb.Home.Match(key):
		shifted = m.state.Select(0)
	case kb.End.Match(key):
		shifted = m.state.Select(n - 1)

	case kb.Select.Match(key):
		m.chosen = m.visible[idx]
		m.quitting = true
		m.log.Debug("chose item", slog.Int("item", m.chosen), slog.Any("pagination", m.state))

		return m, tea.Quit

	default:
		return m, nil
	}

	if shifted {
		m.log.Debug("window shifted", slog.String("key", key), slog.Any("pagination", m.state))
	}

	return m, nil
}
