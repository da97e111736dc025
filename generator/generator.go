// Package generator builds random levels: full-length levels with a goal,
// quick single-screen levels, and endless chunks streamed into a running
// level. Output depends only on the seed.
package generator

import (
	"math/rand/v2"

	"github.com/automoto/flipside/shared/gamemath"
	"github.com/automoto/flipside/shared/leveldata"
)

const (
	levelWidth = 4000
	groundY    = 580
	groundH    = 20

	minPathY = 100
	maxPathY = 500
)

type challenge int

const (
	challengeNone challenge = iota
	challengeSpikeTrap
	challengeWallPuzzle
	challengeTrampoline
	challengeSlopePath
	challengeCount
)

// Generator produces levels from a seeded random source.
type Generator struct {
	seed uint64
	rng  *rand.Rand
}

// New returns a generator seeded with seed.
func New(seed uint64) *Generator {
	return &Generator{seed: seed, rng: rand.New(rand.NewPCG(seed, seed^0x9e3779b97f4a7c15))}
}

// Seed is the seed the generator was created with.
func (g *Generator) Seed() uint64 { return g.seed }

// between returns a uniform integer in [lo, hi].
func between(rng *rand.Rand, lo, hi int) int {
	if hi <= lo {
		return lo
	}
	return lo + rng.IntN(hi-lo+1)
}

func rec(t leveldata.RecordType, x, y, w, h int) leveldata.Record {
	return leveldata.Record{Type: t, Rect: gamemath.Rect{X: float64(x), Y: float64(y), W: float64(w), H: float64(h)}}
}

// Level generates a full-length level: a ground strip, a start on the
// left, a goal near the right edge, a path of platforms with challenges
// in the gaps and some filler geometry.
func (g *Generator) Level() *leveldata.Description {
	rng := g.rng
	desc := &leveldata.Description{}
	desc.Records = append(desc.Records, rec(leveldata.TypePlatform, 0, groundY, levelWidth, groundH))

	startX := between(rng, 100, 200)
	desc.Start = leveldata.Point{X: float64(startX), Y: groundY - leveldata.StartHeight}
	desc.HasStart = true

	goalX := between(rng, levelWidth-300, levelWidth-100)
	goalY := between(rng, 100, 500)
	goal := gamemath.Rect{X: float64(goalX), Y: float64(goalY), W: 80, H: 80}
	desc.Goal = &goal

	desc.Records = append(desc.Records, path(rng, startX, groundY-40, goalX-200)...)

	for range between(rng, 10, 20) {
		px := between(rng, 100, levelWidth-100)
		py := between(rng, 100, 560)
		if rng.IntN(2) == 0 {
			desc.Records = append(desc.Records, rec(leveldata.TypePlatform, px, py, between(rng, 50, 100), 20))
		} else {
			desc.Records = append(desc.Records, rec(leveldata.TypeWall3D, px, py, 20, between(rng, 50, 120)))
		}
	}
	return desc
}

// path lays platforms from (lastX, lastY) until untilX, each step picking
// one challenge for the gap it leaves behind.
func path(rng *rand.Rand, lastX, lastY, untilX int) []leveldata.Record {
	var out []leveldata.Record
	for lastX < untilX {
		nextX := lastX + between(rng, 100, 250)
		nextY := min(maxPathY, max(minPathY, lastY+between(rng, -150, 150)))
		platformW := between(rng, 80, 200)
		out = append(out, rec(leveldata.TypePlatform, nextX, nextY, platformW, 20))

		switch challenge(rng.IntN(int(challengeCount))) {
		case challengeSpikeTrap:
			if nextX > lastX+150 {
				center := (lastX + nextX) / 2
				n := between(rng, 2, 5)
				for i := range n {
					// Spikes sit on the ground so a player walking the gap touches them.
					out = append(out, rec(leveldata.TypeSpike, center-(n/2)*20+i*20, groundY-20, 20, 20))
				}
			}
		case challengeWallPuzzle:
			wallX := (lastX + nextX) / 2
			wallY := nextY - 100
			if wallY > minPathY {
				out = append(out,
					rec(leveldata.TypeWall3D, wallX, wallY, 20, 100),
					// reachable in 2D only, the wall blocks it in 3D
					rec(leveldata.TypePlatform, wallX-60, wallY+80, 80, 20),
				)
			}
		case challengeTrampoline:
			if lastY > 300 {
				out = append(out, rec(leveldata.TypeTrampoline, lastX+between(rng, 20, 50), lastY-20, 80, 20))
			}
		case challengeSlopePath:
			slopeX := lastX + platformW
			slopeY := lastY - 100
			if slopeY > minPathY {
				s := rec(leveldata.TypeSlope, slopeX, slopeY, 100, 100)
				s.LeftOffset, s.RightOffset = 100, 0
				out = append(out, s, rec(leveldata.TypePlatform, slopeX+100, slopeY, 100, 20))
			}
		}

		lastX, lastY = nextX, nextY
	}
	return out
}

// Quick generates a single-screen level of scattered platforms and a few
// pushable boxes inside a screenW x screenH window. It has a ground, a
// roof and a start but no goal.
func (g *Generator) Quick(screenW, screenH int) *leveldata.Description {
	rng := g.rng
	desc := frame(screenW, screenH)
	for range between(rng, 5, 10) {
		w := between(rng, 80, 200)
		desc.Records = append(desc.Records, rec(leveldata.TypePlatform,
			between(rng, 0, screenW-w), between(rng, 100, screenH-100), w, 20))
	}
	const size = 40
	for range between(rng, 1, 3) {
		desc.Records = append(desc.Records, rec(leveldata.TypePushable,
			between(rng, 0, screenW-size), between(rng, 100, screenH-100-size), size, size))
	}
	return desc
}

// Default is the level played when none is chosen: two platforms and one
// pushable box between a ground and a roof.
func Default(screenW, screenH int) *leveldata.Description {
	desc := frame(screenW, screenH)
	desc.Records = append(desc.Records,
		rec(leveldata.TypePlatform, 200, 450, 150, 20),
		rec(leveldata.TypePlatform, 400, 350, 150, 20),
		rec(leveldata.TypePushable, 500, screenH-70, 40, 40),
	)
	return desc
}

// frame is a ground and a roof spanning the screen with the start at the
// left of the ground.
func frame(screenW, screenH int) *leveldata.Description {
	return &leveldata.Description{
		Start:    leveldata.Point{X: 100, Y: float64(screenH - 20 - leveldata.StartHeight)},
		HasStart: true,
		Records: []leveldata.Record{
			rec(leveldata.TypePlatform, 0, screenH-20, screenW, 20),
			rec(leveldata.TypePlatform, 0, 0, screenW, 20),
		},
	}
}
