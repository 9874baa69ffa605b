package query

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestFilter(t *testing.T) {
	nums := []int{1, 2, 3, 4, 5, 6}

	t.Run(`predicates are conjunctive`, func(t *testing.T) {
		got := Filter(nums,
			func(n int) bool { return n%2 == 0 },
			func(n int) bool { return n > 2 },
		)
		require.Equal(t, []int{4, 6}, got)
	})

	t.Run(`no predicates keeps everything`, func(t *testing.T) {
		require.Equal(t, nums, Filter(nums))
	})
}

func TestPaginate(t *testing.T) {
	items := []string{"a", "b", "c", "d", "e", "f", "g"}

	t.Run(`total pages is rounded up`, func(t *testing.T) {
		page, p := Paginate(items, 1, 3)
		require.Equal(t, []string{"a", "b", "c"}, page)
		require.Equal(t, 7, p.Total)
		require.Equal(t, 3, p.TotalPages)
	})

	t.Run(`last page is partial`, func(t *testing.T) {
		page, p := Paginate(items, 3, 3)
		require.Equal(t, []string{"g"}, page)
		require.Equal(t, 3, p.TotalPages)
	})

	t.Run(`page past the end is empty, not an error`, func(t *testing.T) {
		page, p := Paginate(items, 9, 3)
		require.Empty(t, page)
		require.Equal(t, 7, p.Total)
	})

	t.Run(`empty input yields zero pages`, func(t *testing.T) {
		page, p := Paginate([]string{}, 1, 10)
		require.Empty(t, page)
		require.Equal(t, 0, p.Total)
		require.Equal(t, 0, p.TotalPages)
	})

	t.Run(`sequential pages reassemble the full set`, func(t *testing.T) {
		var assembled []string
		page := 1
		for {
			chunk, p := Paginate(items, page, 2)
			assembled = append(assembled, chunk...)
			if page >= p.TotalPages {
				break
			}
			page++
		}
		require.Equal(t, items, assembled)
	})
}

func TestContainsFold(t *testing.T) {
	t.Run(`case-insensitive substring over any field`, func(t *testing.T) {
		require.Equal(t, true, ContainsFold("ENGIN", "Backend Engineer", "Remote"))
		require.Equal(t, true, ContainsFold("remote", "Backend Engineer", "Remote"))
		require.Equal(t, false, ContainsFold("designer", "Backend Engineer", "Remote"))
	})

	t.Run(`empty term matches everything`, func(t *testing.T) {
		require.Equal(t, true, ContainsFold(""))
	})
}

func TestParseSort(t *testing.T) {
	t.Run(`field with direction`, func(t *testing.T) {
		field, desc := ParseSort("title:desc")
		require.Equal(t, "title", field)
		require.Equal(t, true, desc)
	})

	t.Run(`direction defaults to ascending`, func(t *testing.T) {
		field, desc := ParseSort("order")
		require.Equal(t, "order", field)
		require.Equal(t, false, desc)
	})
}
