package generator

import (
	"math"
	"math/rand/v2"

	"github.com/automoto/flipside/shared/leveldata"
)

// Chunk generates the strip [fromX, toX) of an endless level: a ground
// segment, a checkpoint at its left end and a platform path with
// challenges. The same seed and strip always give the same records, so
// chunks can be requested in any order.
func (g *Generator) Chunk(fromX, toX float64) []leveldata.Record {
	from, to := int(math.Floor(fromX)), int(math.Ceil(toX))
	if to <= from {
		return nil
	}
	rng := rand.New(rand.NewPCG(g.seed, uint64(int64(from))))

	out := []leveldata.Record{
		rec(leveldata.TypePlatform, from, groundY, to-from, groundH),
		rec(leveldata.TypeCheckpoint, from+20, groundY-80, 20, 80),
	}
	if to-from < 400 {
		return out
	}
	return append(out, path(rng, from+80, groundY-40, to-250)...)
}
