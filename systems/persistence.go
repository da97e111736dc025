package systems

import (
	"io"

	"github.com/automoto/flipside/components"
	"github.com/automoto/flipside/storage"
	"github.com/charmbracelet/log"
)

// Persistence is where the play scene saves progress and finished runs.
// Either store may be nil, in which case that half is skipped.
type Persistence struct {
	Progress *storage.ProgressStore
	Runs     *storage.RunStore
	Logger   *log.Logger
}

// SaveCheckpoint stores the session's respawn anchor as the resume point.
// Only levels loaded from a file can be resumed.
func (p *Persistence) SaveCheckpoint(sd *components.SessionData) {
	if p == nil || p.Progress == nil || !sd.Resumable {
		return
	}
	cp := sd.Session.Level().LastCheckpoint()
	err := p.Progress.Save(storage.Progress{
		Level:       sd.Level,
		CheckpointX: cp.X,
		CheckpointY: cp.Y,
	})
	if err != nil {
		p.log().Warn("could not save progress", "err", err)
	}
}

// ClearProgress drops the resume point once a level is finished.
func (p *Persistence) ClearProgress() {
	if p == nil || p.Progress == nil {
		return
	}
	if err := p.Progress.Clear(); err != nil {
		p.log().Warn("could not clear progress", "err", err)
	}
}

// RecordRun writes the session to run history once.
func (p *Persistence) RecordRun(sd *components.SessionData, outcome string) {
	if p == nil || p.Runs == nil || sd.Recorded {
		return
	}
	sd.Recorded = true
	id, err := p.Runs.SaveRun(storage.Run{
		Level:     sd.Level,
		Outcome:   outcome,
		Frames:    int64(sd.Session.Frame()),
		Deaths:    sd.Session.Deaths(),
		Endless:   sd.Endless,
		FurthestX: sd.FurthestX,
	})
	if err != nil {
		p.log().Warn("could not record run", "err", err)
		return
	}
	p.log().Debug("run recorded", "id", id, "level", sd.Level, "outcome", outcome)
}

func (p *Persistence) log() *log.Logger {
	if p == nil || p.Logger == nil {
		return log.New(io.Discard)
	}
	return p.Logger
}
