package pagination

// MoveUp moves the selection to the previous item, wrapping from the first
// item to the last. It reports whether the visible window shifted.
//
// Moves on an empty collection are no-ops that return false.
func (s *State) MoveUp() bool {
	if !s.movable() {
		return false
	}

	overflow := false

	s.menuIndex--
	if s.menuIndex < 0 {
		s.menuIndex = s.totalItems - 1
		overflow = true
	}

	s.slot--
	if s.slot >= 0 {
		return false
	}

	// The whole collection is always visible.
	if s.totalItems <= s.itemsPerPage {
		s.slot = s.totalItems - 1
		return false
	}

	if s.strategy.scrollsByItem(overflow) {
		s.shiftWindow(-1)
		s.slot = 0

		return true
	}

	s.jumpToPage()

	return true
}

// MoveDown moves the selection to the next item, wrapping from the last item
// to the first. It reports whether the visible window shifted.
//
// Moves on an empty collection are no-ops that return false.
func (s *State) MoveDown() bool {
	if !s.movable() {
		return false
	}

	overflow := false

	s.menuIndex++
	if s.menuIndex >= s.totalItems {
		s.menuIndex = 0
		overflow = true
	}

	s.slot++
	if s.slot >= s.totalItems {
		s.slot = 0
		return false
	}

	// Past the last occupied slot. For full windows this is itemsPerPage-1;
	// a partial page under Paginated ends earlier.
	if s.slot >= s.WindowLen() {
		if s.strategy.scrollsByItem(overflow) {
			s.shiftWindow(1)
			s.slot = s.itemsPerPage - 1

			return true
		}

		s.jumpToPage()

		return true
	}

	return false
}

// Select moves the selection to menuIndex, clamped onto the collection, and
// re-frames the window around it. The window is kept where it is when the new
// selection is already visible. It reports whether the window moved.
func (s *State) Select(menuIndex int) bool {
	if !s.movable() {
		return false
	}

	start, end := s.windowStart, s.windowEnd
	s.menuIndex = menuIndex
	s.reframe()

	return start != s.windowStart || end != s.windowEnd
}

// shiftWindow moves both window bounds by delta items, wrapping at the ends
// of the collection.
func (s *State) shiftWindow(delta int) {
	s.windowStart = s.wrap(s.windowStart + delta)
	s.windowEnd = s.wrap(s.windowEnd + delta)
}

// jumpToPage sets the window to the bounds of the current page and points the
// visible slot at the selection.
//
// Strategies that anchor a partial final page widen the window backwards to
// a full itemsPerPage, so the page's items sit at the end of the window and
// the selection lands missingSlots further down than its page index.
func (s *State) jumpToPage() {
	s.windowStart = s.PageStartIndex()
	s.windowEnd = s.PageEndIndex()

	if s.strategy.anchorsPartialPage() && s.totalItems > s.itemsPerPage {
		s.windowStart -= s.MissingSlots()
	}

	s.slot = s.distance(s.windowStart, s.menuIndex)
}

// reframe brings the selection and the window back into a valid shape after
// a configuration change or a direct selection.
func (s *State) reframe() {
	if s.totalItems == 0 {
		s.menuIndex, s.windowStart, s.windowEnd, s.slot = 0, 0, 0, 0
		return
	}

	s.menuIndex = min(max(0, s.menuIndex), s.totalItems-1)

	switch {
	case s.totalItems <= s.itemsPerPage:
		s.windowStart, s.windowEnd = 0, s.totalItems-1

	case !s.strategy.anchorsPartialPage():
		s.windowStart, s.windowEnd = s.PageStartIndex(), s.PageEndIndex()

	default:
		s.windowStart = s.fitWindowStart()
		s.windowEnd = s.wrap(s.windowStart + s.itemsPerPage - 1)
	}

	s.slot = s.distance(s.windowStart, s.menuIndex)
}

// fitWindowStart returns the start of a full window containing the selection.
// The current start is kept when possible; otherwise the window is moved just
// far enough to bring the selection to its nearest edge.
func (s *State) fitWindowStart() int {
	lastStart := s.totalItems - s.itemsPerPage

	start := min(max(0, s.windowStart), lastStart)
	if s.strategy.wrapsWindow() && s.windowStart < s.totalItems {
		start = max(0, s.windowStart)
	}

	if s.distance(start, s.menuIndex) < s.itemsPerPage {
		return start
	}

	if s.menuIndex < start {
		start = s.menuIndex
	} else {
		start = s.menuIndex - s.itemsPerPage + 1
	}

	return min(start, lastStart)
}
