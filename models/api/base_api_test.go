package apimodels

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestPagination(t *testing.T) {
	t.Run(`defaults`, func(t *testing.T) {
		page, limit := Pagination{}.GetPage()
		require.Equal(t, 1, page)
		require.Equal(t, 10, limit)
		_, limit = Pagination{Limit: 500}.GetPage()
		require.Equal(t, 100, limit)
	})
	t.Run(`bounds`, func(t *testing.T) {
		from, to := Pagination{Page: 2, Limit: 10}.Bounds(25)
		require.Equal(t, 10, from)
		require.Equal(t, 20, to)
		from, to = Pagination{Page: 3, Limit: 10}.Bounds(25)
		require.Equal(t, 20, from)
		require.Equal(t, 25, to)
		from, to = Pagination{Page: 9, Limit: 10}.Bounds(25)
		require.Equal(t, 25, from)
		require.Equal(t, 25, to)
	})
	t.Run(`validate`, func(t *testing.T) {
		require.NoError(t, Pagination{}.Validate())
		require.NoError(t, Pagination{Page: 2, Limit: 100}.Validate())
		require.Error(t, Pagination{Page: -1}.Validate())
		require.Error(t, Pagination{Limit: 101}.Validate())
	})
}
