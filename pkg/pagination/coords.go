package pagination

// Page returns the page holding the logical index menuIndex.
func (s *State) Page(menuIndex int) int {
	if !s.configured() {
		return 0
	}

	return floorDiv(menuIndex, s.itemsPerPage)
}

// PageIndexOf returns the position of menuIndex within its page.
func (s *State) PageIndexOf(menuIndex int) int {
	return menuIndex - s.Page(menuIndex)*s.itemsPerPage
}

// MenuIndexFromPage returns the logical index at position indexInPage of page.
func (s *State) MenuIndexFromPage(page, indexInPage int) int {
	return page*s.itemsPerPage + indexInPage
}

// PageItemCount returns the number of items occupying page. Every page holds
// itemsPerPage items except a partial final page. Pages past the end of the
// collection hold none.
func (s *State) PageItemCount(page int) int {
	if !s.configured() || page < 0 {
		return 0
	}

	return min(max(0, s.totalItems-page*s.itemsPerPage), s.itemsPerPage)
}

// MissingSlots returns the number of window slots with no backing item on the
// current page. It is non-zero only on a partial final page.
func (s *State) MissingSlots() int {
	return s.itemsPerPage - s.PageItemCount(s.CurrentPage())
}

// WindowLen returns the number of items in the visible window. This is
// min(itemsPerPage, totalItems), except for a partial final page shown by
// [Paginated], which holds only that page's items.
func (s *State) WindowLen() int {
	if !s.configured() || s.totalItems == 0 {
		return 0
	}

	return s.distance(s.windowStart, s.windowEnd) + 1
}

// IsVisible reports whether menuIndex currently lies in the visible window.
// A wrapped window (start > end) covers the tail of the collection followed
// by its head.
func (s *State) IsVisible(menuIndex int) bool {
	if !s.configured() || menuIndex < 0 || menuIndex >= s.totalItems {
		return false
	}
	if s.windowStart <= s.windowEnd {
		return menuIndex >= s.windowStart && menuIndex <= s.windowEnd
	}

	return menuIndex >= s.windowStart || menuIndex <= s.windowEnd
}

// VisibleSlotFor returns the window slot showing menuIndex. The second
// result is false when menuIndex is not in the window.
//
// The slot is the cyclic offset of menuIndex from [State.WindowStart], so a
// wrapped window numbers its head items after its tail items. A partial
// final page under [Classic] is anchored to the end of the window by the
// window bounds themselves, so no extra offset is applied here.
func (s *State) VisibleSlotFor(menuIndex int) (int, bool) {
	if !s.IsVisible(menuIndex) {
		return 0, false
	}

	return s.distance(s.windowStart, menuIndex), true
}

// MenuIndexForVisibleSlot returns the logical index shown in slot. The second
// result is false for slots outside the window or with no backing item.
func (s *State) MenuIndexForVisibleSlot(slot int) (int, bool) {
	if slot < 0 || slot >= s.WindowLen() {
		return -1, false
	}

	return s.wrap(s.windowStart + slot), true
}

// Slots returns the logical index shown in each of the itemsPerPage slots,
// with -1 for slots that have no backing item.
func (s *State) Slots() []int {
	slots := make([]int, s.itemsPerPage)
	for i := range slots {
		idx, ok := s.MenuIndexForVisibleSlot(i)
		if !ok {
			idx = -1
		}

		slots[i] = idx
	}

	return slots
}

// wrap maps i onto [0, totalItems) cyclically.
func (s *State) wrap(i int) int {
	if s.totalItems == 0 {
		return 0
	}

	return ((i % s.totalItems) + s.totalItems) % s.totalItems
}

// distance returns the number of forward steps from one logical index to
// another, wrapping at the end of the collection.
func (s *State) distance(from, to int) int {
	return s.wrap(to - from)
}

func floorDiv(a, b int) int {
	q := a / b
	if a%b != 0 && (a < 0) != (b < 0) {
		q--
	}

	return q
}
