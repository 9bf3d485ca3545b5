package initchecker

import (
	"testing"

	"github.com/stretchr/testify/require"
)

type provider interface {
	Do()
}

type impl struct{}

func (impl) Do() {}

func TestCheckInit(t *testing.T) {
	var missing provider
	var ready provider = impl{}

	require.NotPanics(t, func() { CheckInit("ready", ready) })
	require.PanicsWithValue(t, "missing dependency not initialized", func() {
		CheckInit("ready", ready, "missing", missing)
	})
	require.Panics(t, func() { CheckInit("odd") })
	require.Panics(t, func() { CheckInit(1, ready) })
}
