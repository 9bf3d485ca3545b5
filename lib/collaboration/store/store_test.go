package collaborationstore

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestExceedsCeiling(t *testing.T) {
	t.Run(`exact ceiling fits`, func(t *testing.T) {
		require.False(t, ExceedsCeiling(90, 10, 100))
		require.False(t, ExceedsCeiling(33.33+33.33, 33.34, 100))
	})
	t.Run(`over ceiling`, func(t *testing.T) {
		require.True(t, ExceedsCeiling(100, 1, 100))
		require.True(t, ExceedsCeiling(99.99, 0.02, 100))
	})
	t.Run(`sub hundredth over a full placement`, func(t *testing.T) {
		require.True(t, ExceedsCeiling(100, 0.004, 100))
		require.True(t, ExceedsCeiling(99.996, 0.005, 100))
	})
}
