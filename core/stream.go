package core

import (
	"github.com/automoto/flipside/config"
	"github.com/automoto/flipside/shared/leveldata"
)

// ChunkSource produces the records for the strip [fromX, toX) of an endless
// level. Start and goal records are ignored.
type ChunkSource interface {
	Chunk(fromX, toX float64) []leveldata.Record
}

// ChunkSourceFunc adapts a function to ChunkSource.
type ChunkSourceFunc func(fromX, toX float64) []leveldata.Record

func (f ChunkSourceFunc) Chunk(fromX, toX float64) []leveldata.Record { return f(fromX, toX) }

type streamer struct {
	src      ChunkSource
	cfg      config.StreamConfig
	frontier float64 // right edge of everything generated so far
}

func newStreamer(src ChunkSource, cfg config.StreamConfig, frontier float64) *streamer {
	return &streamer{src: src, cfg: cfg, frontier: frontier}
}

// StreamChunk appends generated chunks until the frontier is the configured
// distance ahead of atWorldX. It returns the number of records added.
// Existing geometry is never touched.
func (l *Level) StreamChunk(atWorldX float64) int {
	st := l.stream
	if st == nil || st.cfg.ChunkWidth <= 0 {
		return 0
	}
	added := 0
	for st.frontier < atWorldX+st.cfg.AheadDistance {
		from, to := st.frontier, st.frontier+st.cfg.ChunkWidth
		for _, r := range st.src.Chunk(from, to) {
			if r.Type == leveldata.TypeStart || r.Type == leveldata.TypeGoal {
				continue
			}
			if err := validRecord(r); err != nil {
				l.logger.Warn("dropping generated record", "type", r.Type, "err", err)
				continue
			}
			l.instantiate(authoredRecord{id: l.appendRecord(r), rec: r})
			added++
		}
		st.frontier = to
	}
	if added > 0 {
		l.logger.Debug("streamed", "records", added, "frontier", st.frontier)
	}
	return added
}

// PruneBehind drops every obstacle and pushable whose right edge is behind
// the despawn line. The line never passes the respawn anchor's own window,
// so the ground under the last checkpoint survives. It returns the number
// of records removed.
func (l *Level) PruneBehind(worldX float64) int {
	despawn := 0.0
	if l.stream != nil {
		despawn = l.stream.cfg.DespawnDistance
	}
	line := min(worldX, l.lastCheckpoint.X) - despawn

	behind := map[int]bool{}
	kept := l.records[:0]
	for _, ar := range l.records {
		if ar.rec.Type != leveldata.TypeGoal && ar.rec.Rect.Right() < line {
			behind[ar.id] = true
			continue
		}
		kept = append(kept, ar)
	}
	l.records = kept
	if len(behind) == 0 {
		return 0
	}

	l.bp.removeObstacles(func(o *Obstacle) bool { return behind[o.ID] })
	l.bp.removePushables(func(b *Pushable) bool { return behind[b.ID] })
	l.bp.fit()
	l.logger.Debug("pruned", "records", len(behind), "line", line)
	return len(behind)
}
