package generator

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/automoto/flipside/config"
	"github.com/automoto/flipside/core"
	"github.com/automoto/flipside/shared/leveldata"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"pgregory.net/rapid"
)

var _ core.ChunkSource = (*Generator)(nil)

func TestLevelIsLoadable(t *testing.T) {
	for _, seed := range []uint64{1, 2, 42, 1234} {
		desc := New(seed).Level()
		require.NoError(t, desc.Validate())

		assert.Equal(t, 530.0, desc.Start.Y, "start stands on the ground")
		assert.GreaterOrEqual(t, desc.Start.X, 100.0)
		assert.LessOrEqual(t, desc.Start.X, 200.0)

		require.NotNil(t, desc.Goal)
		assert.GreaterOrEqual(t, desc.Goal.X, float64(levelWidth-300))
		assert.LessOrEqual(t, desc.Goal.X, float64(levelWidth-100))

		_, err := core.LoadLevel(desc, config.Defaults())
		require.NoError(t, err, "seed %d", seed)
	}
}

func TestLevelIsDeterministic(t *testing.T) {
	a := New(7).Level().String()
	b := New(7).Level().String()
	c := New(8).Level().String()
	assert.Equal(t, a, b)
	assert.NotEqual(t, a, c)
}

func TestLevelRoundTripsThroughText(t *testing.T) {
	desc := New(99).Level()
	parsed, err := leveldata.ParseString(desc.String())
	require.NoError(t, err)
	assert.Equal(t, desc.Records, parsed.Records)
	assert.Equal(t, desc.Start, parsed.Start)
	assert.Equal(t, *desc.Goal, *parsed.Goal)
}

func TestPathRecordsStayInBounds(t *testing.T) {
	rapid.Check(t, func(t *rapid.T) {
		desc := New(rapid.Uint64().Draw(t, "seed")).Level()
		for _, r := range desc.Records {
			switch r.Type {
			case leveldata.TypeSpike:
				if r.Rect.Bottom() != groundY {
					t.Fatalf("spike %v not standing on the ground", r.Rect)
				}
			case leveldata.TypeSlope:
				if r.LeftOffset != 100 || r.RightOffset != 0 {
					t.Fatalf("slope %v should rise to the right", r)
				}
			case leveldata.TypePlatform:
				if r.Rect.W == levelWidth {
					continue
				}
				if r.Rect.Y < minPathY || r.Rect.Y > 560 {
					t.Fatalf("platform %v outside the playfield", r.Rect)
				}
			}
		}
	})
}

func TestQuickFitsScreen(t *testing.T) {
	desc := New(3).Quick(800, 600)
	require.NoError(t, desc.Validate())

	pushables := 0
	for _, r := range desc.Records {
		assert.GreaterOrEqual(t, r.Rect.X, 0.0)
		assert.LessOrEqual(t, r.Rect.Right(), 800.0)
		if r.Type == leveldata.TypePushable {
			pushables++
		}
	}
	assert.GreaterOrEqual(t, pushables, 1)
	assert.LessOrEqual(t, pushables, 3)
	assert.Nil(t, desc.Goal)
}

func TestDefaultLevel(t *testing.T) {
	desc := Default(800, 600)
	assert.Equal(t, leveldata.Point{X: 100, Y: 530}, desc.Start)
	assert.Equal(t, "start,100,530,40,50\n"+
		"platform,0,580,800,20\n"+
		"platform,0,0,800,20\n"+
		"platform,200,450,150,20\n"+
		"platform,400,350,150,20\n"+
		"pushable,500,530,40,40\n", desc.String())
}

func TestChunkShape(t *testing.T) {
	g := New(5)
	recs := g.Chunk(800, 1600)
	require.GreaterOrEqual(t, len(recs), 2)

	assert.Equal(t, leveldata.TypePlatform, recs[0].Type)
	assert.Equal(t, 800.0, recs[0].Rect.X)
	assert.Equal(t, 800.0, recs[0].Rect.W)
	assert.Equal(t, leveldata.TypeCheckpoint, recs[1].Type)
	assert.Equal(t, 820.0, recs[1].Rect.X)

	for _, r := range recs {
		assert.GreaterOrEqual(t, r.Rect.X, 800.0)
		assert.NotEqual(t, leveldata.TypeStart, r.Type)
		assert.NotEqual(t, leveldata.TypeGoal, r.Type)
	}
	assert.Empty(t, g.Chunk(100, 100))
}

func TestChunkIndependentOfOrder(t *testing.T) {
	a := New(11)
	first := a.Chunk(800, 1600)
	a.Chunk(0, 800)
	again := a.Chunk(800, 1600)
	assert.Equal(t, first, again)

	b := New(11)
	b.Level()
	assert.Equal(t, first, b.Chunk(800, 1600))
}

func TestEndlessSessionSurvivesGeneratedChunks(t *testing.T) {
	desc, err := leveldata.ParseString("start,0,530,40,50\nplatform,0,580,800,20\n")
	require.NoError(t, err)
	s, err := core.NewSession(desc, config.Defaults(), core.WithChunkSource(New(21)))
	require.NoError(t, err)

	for range 300 {
		s.Step(core.NewInput(core.ActionRight))
	}
	assert.Greater(t, s.Level().LastCheckpoint().X, 0.0, "walked past a streamed checkpoint")
}

func TestCounterRoundTrip(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "randomgen.txt")

	c, err := ReadCounter(path, 5)
	require.NoError(t, err)
	assert.Equal(t, Counter{Next: 1, Count: 5}, c)

	require.NoError(t, WriteCounter(path, Counter{Next: 12, Count: 3}))
	c, err = ReadCounter(path, 5)
	require.NoError(t, err)
	assert.Equal(t, Counter{Next: 12, Count: 3}, c)

	require.NoError(t, os.WriteFile(path, []byte("abc\n1\n"), 0o644))
	_, err = ReadCounter(path, 5)
	assert.ErrorIs(t, err, ErrBadCounter)

	require.NoError(t, os.WriteFile(path, []byte("4\n"), 0o644))
	_, err = ReadCounter(path, 5)
	assert.ErrorIs(t, err, ErrBadCounter)
}

func TestBatchWritesNumberedLevels(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "levels")
	paths, next, err := Batch(dir, Counter{Next: 3, Count: 2}, 100)
	require.NoError(t, err)
	assert.Equal(t, Counter{Next: 5, Count: 2}, next)
	require.Len(t, paths, 2)
	assert.Equal(t, "random3.txt", filepath.Base(paths[0]))
	assert.Equal(t, "random4.txt", filepath.Base(paths[1]))

	desc, err := leveldata.LoadFile(os.DirFS(dir), "random4.txt")
	require.NoError(t, err)
	assert.Equal(t, "random4", desc.Name)
	assert.Equal(t, New(104).Level().String(), desc.String())
}
