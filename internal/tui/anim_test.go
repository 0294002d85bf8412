package tui

import (
	"testing"

	"charm.land/bubbles/v2/spinner"
	"github.com/stretchr/testify/require"
)

func TestSpinner_StartStop(t *testing.T) {
	t.Parallel()
	s := NewDefaultSpinner()

	require.False(t, s.Active())
	require.Empty(t, s.View())
	require.Nil(t, s.Update(spinner.TickMsg{}), "stopped spinner ignores ticks")

	require.NotNil(t, s.Start())
	require.Nil(t, s.Start(), "second start is a no-op")
	require.True(t, s.Active())
	require.NotEmpty(t, s.View())

	s.Stop()
	require.False(t, s.Active())
	require.Empty(t, s.View())
}
