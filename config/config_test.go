package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaultsMatchPlatformTuning(t *testing.T) {
	d := Defaults()
	assert.Equal(t, 0.5, d.Physics.Gravity)
	assert.Equal(t, 11.0, d.Physics.JumpStrength)
	assert.Equal(t, 4, d.Physics.CoyoteFrames)
	assert.Equal(t, 5.0, d.Player.MoveSpeed)
	assert.Equal(t, 60, d.Window.TickRate)
	assert.Less(t, d.Physics.MaxFallSpeed, 20.0)
}

func TestElevationArc(t *testing.T) {
	g, v := Defaults().Elevation.Arc()
	assert.InDelta(t, 0.3, g, 1e-9)
	assert.InDelta(t, 6.0, v, 1e-9)
}

func TestLoadOverlaysDefaults(t *testing.T) {
	path := filepath.Join(t.TempDir(), "custom.yaml")
	require.NoError(t, os.WriteFile(path, []byte("physics:\n  gravity: 0.8\nplayer:\n  move_speed: 7\n"), 0o644))

	s, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, 0.8, s.Physics.Gravity)
	assert.Equal(t, 7.0, s.Player.MoveSpeed)
	assert.Equal(t, 11.0, s.Physics.JumpStrength, "untouched fields keep defaults")
}

func TestLoadCustomPathErrors(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "nope.yaml"))
	assert.Error(t, err)

	bad := filepath.Join(t.TempDir(), "bad.yaml")
	require.NoError(t, os.WriteFile(bad, []byte("physics: [1, 2"), 0o644))
	_, err = Load(bad)
	assert.Error(t, err)
}

func TestMarshalRoundTrip(t *testing.T) {
	data, err := Marshal(Defaults())
	require.NoError(t, err)

	path := filepath.Join(t.TempDir(), "out.yaml")
	require.NoError(t, os.WriteFile(path, data, 0o644))
	s, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, Defaults(), s)
}

func TestApplyAndCurrent(t *testing.T) {
	orig := Current()
	t.Cleanup(func() { Apply(orig) })

	s := Defaults()
	s.Physics.Gravity = 2
	s.Window.Width = 1024
	Apply(s)
	assert.Equal(t, 2.0, Physics.Gravity)
	assert.Equal(t, 1024, C.Width)
	assert.Equal(t, s, Current())
}
