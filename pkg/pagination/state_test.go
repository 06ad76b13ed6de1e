package pagination_test

import (
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/macropower/pagewin/pkg/pagination"
)

func newState(t *testing.T, perPage int, strategy pagination.Strategy, total int) *pagination.State {
	t.Helper()

	s, err := pagination.New(perPage, strategy)
	require.NoError(t, err)
	s.SetTotalItems(total)

	return s
}

type window struct {
	start, end, slot, index int
}

func windowOf(s *pagination.State) window {
	return window{
		start: s.WindowStart(),
		end:   s.WindowEnd(),
		slot:  s.VisibleSlot(),
		index: s.CurrentMenuIndex(),
	}
}

func TestNew(t *testing.T) {
	t.Parallel()

	tcs := map[string]struct {
		perPage  int
		strategy pagination.Strategy
		err      error
	}{
		"valid": {
			perPage:  5,
			strategy: pagination.Classic,
		},
		"single slot": {
			perPage:  1,
			strategy: pagination.Paginated,
		},
		"zero items per page": {
			perPage:  0,
			strategy: pagination.Classic,
			err:      pagination.ErrInvalidConfiguration,
		},
		"negative items per page": {
			perPage:  -3,
			strategy: pagination.Infinite,
			err:      pagination.ErrInvalidConfiguration,
		},
		"unknown strategy": {
			perPage:  5,
			strategy: pagination.Strategy(42),
			err:      pagination.ErrUnknownStrategy,
		},
	}

	for name, tc := range tcs {
		t.Run(name, func(t *testing.T) {
			t.Parallel()

			s, err := pagination.New(tc.perPage, tc.strategy)
			if tc.err != nil {
				require.ErrorIs(t, err, tc.err)
				require.ErrorIs(t, err, pagination.ErrInvalidConfiguration)
				assert.Nil(t, s)

				return
			}

			require.NoError(t, err)
			assert.Equal(t, tc.perPage, s.ItemsPerPage())
			assert.Equal(t, tc.strategy, s.Strategy())
			assert.Equal(t, 0, s.TotalItems())
			assert.Equal(t, window{}, windowOf(s))
		})
	}
}

func TestValidate(t *testing.T) {
	t.Parallel()

	tcs := map[string]struct {
		err          error
		strategy     pagination.Strategy
		itemsPerPage int
	}{
		"valid":            {itemsPerPage: 1, strategy: pagination.Paginated},
		"zero rows":        {itemsPerPage: 0, strategy: pagination.Classic, err: pagination.ErrInvalidConfiguration},
		"unknown strategy": {itemsPerPage: 3, strategy: pagination.Strategy(7), err: pagination.ErrUnknownStrategy},
	}

	for name, tc := range tcs {
		t.Run(name, func(t *testing.T) {
			t.Parallel()

			err := pagination.Validate(tc.itemsPerPage, tc.strategy)
			if tc.err == nil {
				require.NoError(t, err)
				return
			}

			require.ErrorIs(t, err, tc.err)
			require.ErrorIs(t, err, pagination.ErrInvalidConfiguration)
		})
	}
}

func TestSetTotalItems_InitialWindow(t *testing.T) {
	t.Parallel()

	tcs := map[string]struct {
		total int
		want  window
	}{
		"more items than slots": {total: 12, want: window{start: 0, end: 4}},
		"exactly one page":      {total: 5, want: window{start: 0, end: 4}},
		"fewer items than slots": {
			total: 3,
			want:  window{start: 0, end: 2},
		},
		"empty":    {total: 0, want: window{}},
		"negative": {total: -4, want: window{}},
	}

	for name, tc := range tcs {
		t.Run(name, func(t *testing.T) {
			t.Parallel()

			s := newState(t, 5, pagination.Classic, tc.total)
			assert.Equal(t, tc.want, windowOf(s))
			assert.Equal(t, max(0, tc.total), s.TotalItems())
		})
	}
}

func TestSetTotalItems_ClampsStaleIndex(t *testing.T) {
	t.Parallel()

	t.Run("classic keeps a full window ending at the last item", func(t *testing.T) {
		t.Parallel()

		s := newState(t, 5, pagination.Classic, 20)
		s.Select(17)
		require.Equal(t, window{start: 13, end: 17, slot: 4, index: 17}, windowOf(s))

		s.SetTotalItems(10)
		assert.Equal(t, window{start: 5, end: 9, slot: 4, index: 9}, windowOf(s))

		s.SetTotalItems(3)
		assert.Equal(t, window{start: 0, end: 2, slot: 2, index: 2}, windowOf(s))

		s.SetTotalItems(0)
		assert.Equal(t, window{}, windowOf(s))
		assert.False(t, s.MoveDown())
	})

	t.Run("paginated snaps to the new last page", func(t *testing.T) {
		t.Parallel()

		s := newState(t, 5, pagination.Paginated, 12)
		s.Select(11)
		require.Equal(t, window{start: 10, end: 11, slot: 1, index: 11}, windowOf(s))

		s.SetTotalItems(8)
		assert.Equal(t, window{start: 5, end: 7, slot: 2, index: 7}, windowOf(s))
		assert.Equal(t, 1, s.CurrentPage())
	})

	t.Run("growing keeps the selection and window", func(t *testing.T) {
		t.Parallel()

		s := newState(t, 5, pagination.Infinite, 8)
		s.MoveDown()
		s.MoveDown()

		before := windowOf(s)
		s.SetTotalItems(50)
		assert.Equal(t, before, windowOf(s))
	})
}

func TestSetItemsPerPage(t *testing.T) {
	t.Parallel()

	s := newState(t, 5, pagination.Classic, 7)
	s.MoveUp()
	require.Equal(t, window{start: 2, end: 6, slot: 4, index: 6}, windowOf(s))
	s.MoveUp()

	before := windowOf(s)
	err := s.SetItemsPerPage(0)
	require.ErrorIs(t, err, pagination.ErrInvalidConfiguration)
	assert.Equal(t, 5, s.ItemsPerPage())
	assert.Equal(t, before, windowOf(s))

	require.NoError(t, s.SetItemsPerPage(3))
	assert.Equal(t, window{start: 3, end: 5, slot: 2, index: 5}, windowOf(s))

	require.NoError(t, s.SetItemsPerPage(10))
	assert.Equal(t, window{start: 0, end: 6, slot: 5, index: 5}, windowOf(s))
}

func TestSetStrategy(t *testing.T) {
	t.Parallel()

	s := newState(t, 5, pagination.Paginated, 7)
	s.Select(5)
	require.Equal(t, window{start: 5, end: 6, slot: 0, index: 5}, windowOf(s))

	require.NoError(t, s.SetStrategy(pagination.Classic))
	assert.Equal(t, window{start: 2, end: 6, slot: 3, index: 5}, windowOf(s))

	require.NoError(t, s.SetStrategy(pagination.Paginated))
	assert.Equal(t, window{start: 5, end: 6, slot: 0, index: 5}, windowOf(s))

	err := s.SetStrategy(pagination.Strategy(7))
	require.ErrorIs(t, err, pagination.ErrInvalidConfiguration)
	assert.Equal(t, pagination.Paginated, s.Strategy())
}

func TestState_ZeroValue(t *testing.T) {
	t.Parallel()

	var s pagination.State

	s.SetTotalItems(10)
	assert.False(t, s.MoveDown())
	assert.False(t, s.MoveUp())
	assert.False(t, s.Select(3))
	assert.Equal(t, window{}, windowOf(&s))
	assert.Equal(t, 0, s.Page(7))
	assert.Equal(t, 0, s.TotalPages())
	assert.Empty(t, s.Slots())

	require.ErrorIs(t, s.SetStrategy(pagination.Infinite), pagination.ErrInvalidConfiguration)

	require.NoError(t, s.SetItemsPerPage(4))
	assert.Equal(t, window{start: 0, end: 3}, windowOf(&s))
	assert.True(t, s.MoveUp())
}

func TestState_LogValue(t *testing.T) {
	t.Parallel()

	s := newState(t, 5, pagination.Paginated, 7)
	s.MoveUp()

	v := s.LogValue()
	require.Equal(t, slog.KindGroup, v.Kind())

	got := map[string]string{}
	for _, a := range v.Group() {
		got[a.Key] = a.Value.String()
	}

	assert.Equal(t, "paginated", got["strategy"])
	assert.Equal(t, "6", got["menuIndex"])
	assert.Equal(t, "1", got["page"])
	assert.Equal(t, "5", got["windowStart"])
	assert.Equal(t, "6", got["windowEnd"])
	assert.Equal(t, "1", got["slot"])
	assert.Equal(t, "1", got["totalPages"])
}
