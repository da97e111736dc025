package core

import (
	"testing"

	"github.com/automoto/flipside/shared/gamemath"
	"github.com/automoto/flipside/shared/leveldata"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadLevelRequiresStart(t *testing.T) {
	desc := &leveldata.Description{Records: []leveldata.Record{
		{Type: leveldata.TypePlatform, Rect: rect(0, 580, 400, 20)},
	}}
	_, err := LoadLevel(desc, testSettings())
	assert.ErrorIs(t, err, leveldata.ErrMissingStartPoint)
}

func TestLoadLevelRejectsInvalidGeometry(t *testing.T) {
	tests := []struct {
		name string
		rec  leveldata.Record
	}{
		{"zero width", leveldata.Record{Type: leveldata.TypePlatform, Rect: rect(0, 0, 0, 20)}},
		{"slope offset", leveldata.Record{Type: leveldata.TypeSlope, Rect: rect(0, 0, 50, 50), LeftOffset: 60}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			desc := &leveldata.Description{HasStart: true, Records: []leveldata.Record{tt.rec}}
			_, err := LoadLevel(desc, testSettings())
			assert.ErrorIs(t, err, gamemath.ErrInvalidGeometry)
		})
	}
}

func TestObstaclesIterateInLoadOrder(t *testing.T) {
	l := newTestLevel(t, `start,0,0,40,50
platform,0,580,400,20
spike,100,560,20,20
platform,500,580,400,20
pushable,200,400,40,40
goal,900,500,80,80
`)
	var kinds []Kind
	var ids []int
	for o := range l.Obstacles() {
		kinds = append(kinds, o.Kind)
		ids = append(ids, o.ID)
	}
	assert.Equal(t, []Kind{KindPlatform, KindSpike, KindPlatform, KindGoal}, kinds)
	assert.IsIncreasing(t, ids)

	var platforms int
	for range l.Obstacles(KindPlatform) {
		platforms++
	}
	assert.Equal(t, 2, platforms)

	var pushables []Pushable
	for b := range l.Pushables() {
		pushables = append(pushables, b)
	}
	require.Len(t, pushables, 1)
	assert.True(t, pushables[0].Static, "pushables start static in 2D")

	g, ok := l.Goal()
	require.True(t, ok)
	assert.Equal(t, rect(900, 500, 80, 80), g)
}

func TestObstacleCopiesAreReadOnly(t *testing.T) {
	l := newTestLevel(t, "start,0,0,40,50\nplatform,0,580,400,20\n")
	for o := range l.Obstacles() {
		o.Rect.X = 999
	}
	for o := range l.Obstacles() {
		assert.Equal(t, 0.0, o.Rect.X)
	}
}

func TestCheckFellOutOfWorld(t *testing.T) {
	l := newTestLevel(t, "start,0,0,40,50\n")
	p := newPlayer(l.Start(), testSettings().Player)
	assert.False(t, l.CheckFellOutOfWorld(p, 1000))
	placePlayer(p, 0, 1000)
	assert.False(t, l.CheckFellOutOfWorld(p, 1000), "top must exceed the threshold")
	placePlayer(p, 0, 1000.5)
	assert.True(t, l.CheckFellOutOfWorld(p, 1000))
}

func TestCheckGoalReached(t *testing.T) {
	l := newTestLevel(t, "start,0,0,40,50\ngoal,100,0,50,50\n")
	p := newPlayer(l.Start(), testSettings().Player)
	assert.False(t, l.CheckGoalReached(p))
	placePlayer(p, 80, 0)
	assert.True(t, l.CheckGoalReached(p))

	noGoal := newTestLevel(t, "start,0,0,40,50\n")
	assert.False(t, noGoal.CheckGoalReached(p))
}

func TestToggleModeFlipsPushablesAtomically(t *testing.T) {
	l := newTestLevel(t, "start,100,500,40,50\npushable,200,400,40,40\npushable,300,400,40,40\n")
	p := newPlayer(l.Start(), testSettings().Player)
	p.VY = 7
	p.WallSliding = true

	l.ToggleMode(p)
	assert.Equal(t, Mode3D, p.Mode)
	assert.Equal(t, 40.0, p.Rect.W)
	assert.Equal(t, 40.0, p.Rect.H)
	assert.Equal(t, 525.0, p.Rect.CenterY(), "re-centered")
	assert.Zero(t, p.VY)
	assert.False(t, p.WallSliding)
	for b := range l.Pushables() {
		assert.False(t, b.Static)
	}

	l.ToggleMode(p)
	assert.Equal(t, Mode2D, p.Mode)
	assert.Equal(t, rect(100, 500, 40, 50), p.Rect)
	for b := range l.Pushables() {
		assert.True(t, b.Static)
	}
}

func TestRespawnReloadsAuthoredPushables(t *testing.T) {
	l := newTestLevel(t, "start,100,500,40,50\npushable,200,400,40,40\n")
	p := newPlayer(l.Start(), testSettings().Player)
	l.bp.movePushable(l.bp.pushables[0], rect(260, 400, 40, 40))
	l.ToggleMode(p)

	l.Respawn(p)
	for b := range l.Pushables() {
		assert.Equal(t, 200.0, b.Rect.X)
		assert.True(t, b.Static)
	}
	assert.Equal(t, Mode2D, p.Mode)
	assert.Equal(t, rect(100, 500, 40, 50), p.Rect)
}

func TestDescriptionMatchesAuthoredLevel(t *testing.T) {
	text := "start,50,500,40,50\ngoal,900,500,80,80\nplatform,0,580,400,20\nslope,100,480,100,100,100,0\n"
	l := newTestLevel(t, text)
	assert.Equal(t, text, l.Description().String())
}
