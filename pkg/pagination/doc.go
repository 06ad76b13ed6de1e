// Package pagination translates between the coordinate spaces of a
// fixed-capacity scrollable list.
//
// A collection of N logical items is shown through a window of
// itemsPerPage rendered slots. [State] tracks the selected logical index,
// the page it falls on, and the slot of the window that currently holds it,
// and keeps them consistent as the selection moves with [State.MoveUp] and
// [State.MoveDown]. Movement wraps at both ends of the collection.
//
// How the window follows the selection is decided by a [Strategy]:
//
//   - [Classic] scrolls one item at a time, but jumps a full page when the
//     selection wraps around the collection.
//   - [Infinite] always scrolls one item at a time, treating the collection
//     as circular.
//   - [Paginated] always jumps a full page, so the window only ever shows
//     whole pages.
//
// A [State] does not render anything and does not own the items, only their
// count. It is not safe for concurrent use.
package pagination
