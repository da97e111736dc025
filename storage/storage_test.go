package storage

import (
	"errors"
	"path/filepath"
	"testing"

	"github.com/automoto/flipside/shared/leveldata"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type memItems struct {
	data map[string][]byte
	err  error
}

func (m *memItems) LoadItem(key string) ([]byte, error) {
	if m.err != nil {
		return nil, m.err
	}
	return m.data[key], nil
}

func (m *memItems) SaveItem(key string, data []byte) error {
	if m.err != nil {
		return m.err
	}
	if m.data == nil {
		m.data = map[string][]byte{}
	}
	m.data[key] = data
	return nil
}

func TestProgressEmpty(t *testing.T) {
	s := NewProgressStore(&memItems{})
	p, err := s.Load()
	require.NoError(t, err)
	assert.Nil(t, p)
	assert.False(t, s.Has())
}

func TestProgressSaveLoadClear(t *testing.T) {
	items := &memItems{}
	s := NewProgressStore(items)

	want := Progress{Level: "random3", CheckpointX: 820, CheckpointY: 500}
	require.NoError(t, s.Save(want))
	assert.True(t, s.Has())

	got, err := s.Load()
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.Equal(t, want, *got)
	assert.Equal(t, leveldata.Point{X: 820, Y: 500}, got.Checkpoint())
	assert.JSONEq(t, `{"level":"random3","checkpointX":820,"checkpointY":500}`, string(items.data[progressKey]))

	require.NoError(t, s.Clear())
	assert.False(t, s.Has())
}

func TestProgressErrors(t *testing.T) {
	boom := errors.New("disk gone")
	s := NewProgressStore(&memItems{err: boom})
	_, err := s.Load()
	assert.ErrorIs(t, err, boom)
	assert.ErrorIs(t, s.Save(Progress{}), boom)

	bad := NewProgressStore(&memItems{data: map[string][]byte{progressKey: []byte("{")}})
	_, err = bad.Load()
	assert.Error(t, err)
}

func openTestRuns(t *testing.T) *RunStore {
	t.Helper()
	s, err := OpenRuns(filepath.Join(t.TempDir(), "nested", "runs.db"))
	require.NoError(t, err)
	t.Cleanup(func() { _ = s.Close() })
	return s
}

func TestRunsSaveAndRecent(t *testing.T) {
	s := openTestRuns(t)

	for _, r := range []Run{
		{Level: "a", Outcome: OutcomeComplete, Frames: 900, Deaths: 2},
		{Level: "b", Outcome: OutcomeQuit, Frames: 100},
		{Level: "a", Outcome: OutcomeQuit, Frames: 50, Endless: true, FurthestX: 1234.5},
	} {
		_, err := s.SaveRun(r)
		require.NoError(t, err)
	}

	all, err := s.RecentRuns("", 10)
	require.NoError(t, err)
	require.Len(t, all, 3)
	assert.Equal(t, "a", all[0].Level)
	assert.True(t, all[0].Endless)
	assert.Equal(t, 1234.5, all[0].FurthestX)
	assert.Equal(t, "b", all[1].Level)

	onlyA, err := s.RecentRuns("a", 1)
	require.NoError(t, err)
	require.Len(t, onlyA, 1)
	assert.Equal(t, int64(50), onlyA[0].Frames)
}

func TestRunsBestAndStats(t *testing.T) {
	s := openTestRuns(t)
	for _, r := range []Run{
		{Level: "a", Outcome: OutcomeComplete, Frames: 900, Deaths: 2},
		{Level: "a", Outcome: OutcomeComplete, Frames: 700, Deaths: 1},
		{Level: "a", Outcome: OutcomeQuit, Frames: 10},
		{Level: "b", Outcome: OutcomeQuit, Frames: 100, Deaths: 4},
	} {
		_, err := s.SaveRun(r)
		require.NoError(t, err)
	}

	best, err := s.BestRuns("a", 5)
	require.NoError(t, err)
	require.Len(t, best, 2)
	assert.Equal(t, int64(700), best[0].Frames)
	assert.Equal(t, int64(900), best[1].Frames)

	stats, err := s.Stats()
	require.NoError(t, err)
	assert.Equal(t, []LevelStats{
		{Level: "a", Runs: 3, Completed: 2, BestFrames: 700, Deaths: 3},
		{Level: "b", Runs: 1, Completed: 0, BestFrames: 0, Deaths: 4},
	}, stats)
}

func TestRunsPersistAcrossOpen(t *testing.T) {
	path := filepath.Join(t.TempDir(), "runs.db")
	s, err := OpenRuns(path)
	require.NoError(t, err)
	_, err = s.SaveRun(Run{Level: "x", Outcome: OutcomeComplete, Frames: 1})
	require.NoError(t, err)
	require.NoError(t, s.Close())

	s, err = OpenRuns(path)
	require.NoError(t, err)
	defer s.Close()
	runs, err := s.RecentRuns("x", 0)
	require.NoError(t, err)
	assert.Len(t, runs, 1)
}
