package menu

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/paginator"
	"github.com/charmbracelet/lipgloss"
	"github.com/dustin/go-humanize"
	"github.com/muesli/reflow/ansi"
	"github.com/muesli/reflow/truncate"

	"github.com/macropower/pagewin/pkg/keys"
)

const cursor = "›"

func (m Model) View() string {
	if m.quitting {
		return ""
	}

	sections := []string{m.headerView()}
	if m.filtering || m.filter.Value() != "" {
		sections = append(sections, m.filter.View())
	}

	sections = append(sections, m.rowsView())

	if p := m.paginationView(); p != "" {
		sections = append(sections, p)
	}

	sections = append(sections, m.helpView())

	return lipgloss.JoinVertical(lipgloss.Left, sections...)
}

func (m Model) headerView() string {
	counts := humanize.Comma(int64(len(m.visible))) + " items"
	if len(m.visible) != len(m.items) {
		counts = fmt.Sprintf("%s of %s items",
			humanize.Comma(int64(len(m.visible))),
			humanize.Comma(int64(len(m.items))),
		)
	}

	return m.theme.LogoStyle.Render(m.title) + " " +
		m.theme.HeaderStyle.Render(m.state.Strategy().String()+" · "+counts)
}

// rowsView renders one row per window slot. Empty slots render as blank rows
// so the menu height stays fixed.
func (m Model) rowsView() string {
	if len(m.visible) == 0 {
		rows := make([]string, m.state.ItemsPerPage())
		rows[0] = m.theme.SubtleStyle.Render("  no items")

		return strings.Join(rows, "\n")
	}

	width := max(1, m.width-2)
	selected := m.state.CurrentMenuIndex()

	slots := m.state.Slots()
	rows := make([]string, len(slots))

	for slot, idx := range slots {
		if idx < 0 {
			continue
		}

		item := truncate.StringWithTail(m.items[m.visible[idx]], uint(width), keys.Ellipsis) //nolint:gosec // G115: positive.
		if idx == selected {
			rows[slot] = m.theme.CursorStyle.Render(cursor) + " " + m.theme.SelectedStyle.Render(item)
		} else {
			rows[slot] = "  " + m.theme.ItemStyle.Render(item)
		}
	}

	return strings.Join(rows, "\n")
}

func (m Model) paginationView() string {
	pages := m.state.PageCount()
	if pages <= 1 {
		return ""
	}

	p := m.paginator
	p.PerPage = m.state.ItemsPerPage()
	p.TotalPages = pages
	p.Page = m.state.CurrentPage()

	view := p.View()
	if ansi.PrintableRuneWidth(view) > m.width {
		p.Type = paginator.Arabic
		view = p.View()
	}

	return m.theme.PaginationStyle.Render(view)
}

func (m Model) helpView() string {
	if m.showHelp {
		return m.theme.HelpStyle.Render(m.kb.helpRenderer().Render(m.width))
	}

	return m.theme.SubtleStyle.Render(m.kb.Help.String() + " help")
}
