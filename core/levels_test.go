package core

import (
	"os"
	"testing"

	"github.com/automoto/flipside/shared/leveldata"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestShippedLevelsLoad(t *testing.T) {
	fsys := os.DirFS("../levels")
	names, err := leveldata.ListLevels(fsys, ".")
	require.NoError(t, err)
	require.NotEmpty(t, names)

	for _, name := range names {
		t.Run(name, func(t *testing.T) {
			desc, err := leveldata.Load(fsys, name)
			require.NoError(t, err)
			require.NotNil(t, desc.Goal, "every shipped level has a goal")

			s, err := NewSession(desc, testSettings())
			require.NoError(t, err)
			for range 120 {
				res := s.Step(InputSnapshot{})
				require.False(t, res.Respawned, "standing still at the start is safe")
			}
			assert.True(t, s.Player().Grounded)
		})
	}
}
