package pagination

import (
	"fmt"
	"log/slog"
)

// State is the pagination state of one scrollable list.
//
// Only the selected logical index, the window bounds and the visible slot
// are stored. Page numbers and page-relative indices are derived on demand,
// so they cannot drift out of sync with the selection.
//
// The zero value is unconfigured: conversions return zero values and moves
// are no-ops until the page capacity is set with [State.SetItemsPerPage].
// Use [New] to get a configured State.
type State struct {
	itemsPerPage int
	totalItems   int
	strategy     Strategy

	menuIndex   int
	windowStart int
	windowEnd   int
	slot        int
}

// New creates a [State] for an empty collection with the given page
// capacity and [Strategy]. It returns [ErrInvalidConfiguration] when
// itemsPerPage is less than one or the strategy is unknown.
func New(itemsPerPage int, strategy Strategy) (*State, error) {
	err := Validate(itemsPerPage, strategy)
	if err != nil {
		return nil, err
	}

	return &State{
		itemsPerPage: itemsPerPage,
		strategy:     strategy,
	}, nil
}

// Validate reports whether itemsPerPage and strategy form a usable
// configuration, without building a [State]. The error wraps
// [ErrInvalidConfiguration].
func Validate(itemsPerPage int, strategy Strategy) error {
	if itemsPerPage < 1 {
		return fmt.Errorf("%w: items per page must be at least 1, got %d", ErrInvalidConfiguration, itemsPerPage)
	}
	if !strategy.Valid() {
		return fmt.Errorf("%w: %w: %d", ErrInvalidConfiguration, ErrUnknownStrategy, int(strategy))
	}

	return nil
}

// SetTotalItems updates the size of the backing collection.
//
// A shrinking collection may leave the selection or the window past the end.
// The selection is clamped onto the last item and the window is re-framed
// around it, keeping the current window where it still fits. Negative
// counts are treated as zero.
func (s *State) SetTotalItems(totalItems int) {
	s.totalItems = max(0, totalItems)
	if s.configured() {
		s.reframe()
	}
}

// SetItemsPerPage changes the window capacity and re-frames the window.
// The state is left untouched when itemsPerPage is less than one.
func (s *State) SetItemsPerPage(itemsPerPage int) error {
	err := Validate(itemsPerPage, s.strategy)
	if err != nil {
		return err
	}

	s.itemsPerPage = itemsPerPage
	s.reframe()

	return nil
}

// SetStrategy changes the scroll strategy and re-frames the window so that it
// obeys the new strategy's shape. The state is left untouched when the
// strategy is unknown or the State is unconfigured.
func (s *State) SetStrategy(strategy Strategy) error {
	err := Validate(s.itemsPerPage, strategy)
	if err != nil {
		return err
	}

	s.strategy = strategy
	s.reframe()

	return nil
}

// ItemsPerPage returns the window capacity.
func (s *State) ItemsPerPage() int { return s.itemsPerPage }

// TotalItems returns the size of the backing collection.
func (s *State) TotalItems() int { return s.totalItems }

// Strategy returns the scroll strategy.
func (s *State) Strategy() Strategy { return s.strategy }

// CurrentMenuIndex returns the logical index of the selected item.
func (s *State) CurrentMenuIndex() int { return s.menuIndex }

// CurrentPage returns the page holding the selected item.
func (s *State) CurrentPage() int { return s.Page(s.menuIndex) }

// CurrentPageIndex returns the position of the selected item within its page.
func (s *State) CurrentPageIndex() int { return s.PageIndexOf(s.menuIndex) }

// WindowStart returns the logical index shown in the first slot.
//
// On a partial final page under [Classic] the window stays full, so it starts
// [State.MissingSlots] items before [State.PageStartIndex] and the page's
// items fill the end of the window.
func (s *State) WindowStart() int { return s.windowStart }

// WindowEnd returns the logical index shown in the last occupied slot. It is
// smaller than [State.WindowStart] when the window wraps past the end of the
// collection.
func (s *State) WindowEnd() int { return s.windowEnd }

// VisibleSlot returns the slot of the window that holds the selected item.
func (s *State) VisibleSlot() int { return s.slot }

// TotalPages returns the number of full pages, floor(totalItems/itemsPerPage).
// It is also the index of the last page when that page is partial.
func (s *State) TotalPages() int {
	if !s.configured() {
		return 0
	}

	return s.totalItems / s.itemsPerPage
}

// PageCount returns the number of pages including a partial final page.
func (s *State) PageCount() int {
	if !s.configured() {
		return 0
	}

	return (s.totalItems + s.itemsPerPage - 1) / s.itemsPerPage
}

// PageStartIndex returns the first logical index of the current page.
func (s *State) PageStartIndex() int {
	return s.MenuIndexFromPage(s.CurrentPage(), 0)
}

// PageEndIndex returns the last valid logical index of the current page,
// accounting for a partial final page. It is -1 for an empty collection.
func (s *State) PageEndIndex() int {
	return s.PageStartIndex() + s.PageItemCount(s.CurrentPage()) - 1
}

// LogValue implements [slog.LogValuer].
func (s *State) LogValue() slog.Value {
	return slog.GroupValue(
		slog.String("strategy", s.strategy.String()),
		slog.Int("totalItems", s.totalItems),
		slog.Int("itemsPerPage", s.itemsPerPage),
		slog.Int("menuIndex", s.menuIndex),
		slog.Int("page", s.CurrentPage()),
		slog.Int("pageIndex", s.CurrentPageIndex()),
		slog.Int("pageStart", s.PageStartIndex()),
		slog.Int("pageEnd", s.PageEndIndex()),
		slog.Int("totalPages", s.TotalPages()),
		slog.Int("windowStart", s.windowStart),
		slog.Int("windowEnd", s.windowEnd),
		slog.Int("slot", s.slot),
	)
}

func (s *State) configured() bool {
	return s.itemsPerPage >= 1
}

// movable reports whether a move can be applied. It is checked before any
// field is touched, so a rejected move leaves the State unchanged.
func (s *State) movable() bool {
	return s.configured() && s.totalItems > 0
}
