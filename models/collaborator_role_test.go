package models

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestIsSplitPrecise(t *testing.T) {
	require.True(t, IsSplitPrecise(100))
	require.True(t, IsSplitPrecise(33.33))
	require.True(t, IsSplitPrecise(0.01))
	require.False(t, IsSplitPrecise(0.004))
	require.False(t, IsSplitPrecise(12.345))
}
