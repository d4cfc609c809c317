package sim

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/devtalks/devlink.go/pkg/periph"
)

func TestBankSetRead(t *testing.T) {
	b := NewBank()
	require.Equal(t, periph.DefaultPins, b.Pins())

	require.NoError(t, b.Set(12, true))
	high, err := b.Read(12)
	require.NoError(t, err)
	require.True(t, high)

	require.NoError(t, b.Set(12, false))
	high, err = b.Read(12)
	require.NoError(t, err)
	require.False(t, high)
}

func TestBankUnsupported(t *testing.T) {
	b := NewBank(12)
	require.Equal(t, periph.ErrUnsupported, b.Set(99, true))
	require.Equal(t, periph.ErrUnsupported, b.Enable(99))
	_, err := b.Read(99)
	require.Equal(t, periph.ErrUnsupported, err)
}

func TestBankEnableDisable(t *testing.T) {
	b := NewBank(12)
	require.False(t, b.Enabled(12))
	require.NoError(t, b.Enable(12))
	require.True(t, b.Enabled(12))
	require.NoError(t, b.Set(12, true))
	require.NoError(t, b.Disable(12))
	require.False(t, b.Enabled(12))
	high, err := b.Read(12)
	require.NoError(t, err)
	require.False(t, high, "disable clears the level")
}

func TestBankFault(t *testing.T) {
	b := NewBank(12)
	b.SetFault(12, true)
	require.Equal(t, periph.ErrFault, b.Set(12, true))
	_, err := b.Read(12)
	require.Equal(t, periph.ErrFault, err)
	b.SetFault(12, false)
	require.NoError(t, b.Set(12, true))
}
