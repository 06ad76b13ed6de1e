package pagination

import (
	"fmt"
	"strings"
)

// Strategy controls how the visible window follows the selection when the
// selection crosses the edge of the window.
type Strategy int

const (
	// Classic scrolls one item at a time within the collection, and jumps a
	// full page when the selection wraps around the collection.
	Classic Strategy = iota
	// Infinite always scrolls one item at a time and never jumps a page.
	Infinite
	// Paginated always jumps a full page at the window boundary.
	Paginated
)

// AllStrategies lists the names accepted by [ParseStrategy].
var AllStrategies = []string{
	Classic.String(),
	Infinite.String(),
	Paginated.String(),
}

// ParseStrategy returns the [Strategy] with the given case-insensitive name.
func ParseStrategy(name string) (Strategy, error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "classic", "":
		return Classic, nil
	case "infinite":
		return Infinite, nil
	case "paginated":
		return Paginated, nil
	}

	return Classic, fmt.Errorf("%w: %q", ErrUnknownStrategy, name)
}

func (s Strategy) String() string {
	switch s {
	case Classic:
		return "classic"
	case Infinite:
		return "infinite"
	case Paginated:
		return "paginated"
	}

	return fmt.Sprintf("Strategy(%d)", int(s))
}

// Valid reports whether s is one of the declared strategies.
func (s Strategy) Valid() bool {
	switch s {
	case Classic, Infinite, Paginated:
		return true
	}

	return false
}

// MarshalText implements [encoding.TextMarshaler].
func (s Strategy) MarshalText() ([]byte, error) {
	if !s.Valid() {
		return nil, fmt.Errorf("%w: %d", ErrUnknownStrategy, int(s))
	}

	return []byte(s.String()), nil
}

// UnmarshalText implements [encoding.TextUnmarshaler].
func (s *Strategy) UnmarshalText(text []byte) error {
	parsed, err := ParseStrategy(string(text))
	if err != nil {
		return err
	}

	*s = parsed

	return nil
}

// scrollsByItem reports whether crossing the window edge shifts the window
// by a single item. Otherwise the window jumps to the bounds of the page
// holding the new selection. The overflow flag is set when the step wrapped
// around the collection.
func (s Strategy) scrollsByItem(overflow bool) bool {
	switch s {
	case Infinite:
		return true
	case Classic:
		return !overflow
	case Paginated:
		return false
	}

	panic(fmt.Sprintf("pagination: unhandled strategy %d", int(s)))
}

// anchorsPartialPage reports whether a jump onto a partial final page keeps
// the window full by pulling in items from the previous page, so that the
// partial page's items sit at the end of the window.
func (s Strategy) anchorsPartialPage() bool {
	switch s {
	case Classic, Infinite:
		return true
	case Paginated:
		return false
	}

	panic(fmt.Sprintf("pagination: unhandled strategy %d", int(s)))
}

// wrapsWindow reports whether the window may straddle the end of the
// collection, showing its last items followed by its first.
func (s Strategy) wrapsWindow() bool {
	switch s {
	case Infinite:
		return true
	case Classic, Paginated:
		return false
	}

	panic(fmt.Sprintf("pagination: unhandled strategy %d", int(s)))
}
