// Package core is the frame-stepped simulation: a player moving through
// static geometry and pushable boxes in either platform (2D) or free-roam
// (3D) mode. It has no dependency on rendering or input backends.
package core

import (
	"fmt"
	"io"
	"iter"
	"slices"

	"github.com/automoto/flipside/config"
	"github.com/automoto/flipside/shared/gamemath"
	"github.com/automoto/flipside/shared/leveldata"
	"github.com/charmbracelet/log"
)

// authoredRecord is a level record with the ID its obstacle gets every
// time the level is built.
type authoredRecord struct {
	id  int
	rec leveldata.Record
}

// Level owns the geometry, the respawn anchor and the goal. Respawning
// rebuilds everything from the authored records, so mutations such as
// carried pushables never need to be undone one by one.
type Level struct {
	cfg    config.Settings
	logger *log.Logger

	name    string
	start   leveldata.Point
	records []authoredRecord
	nextID  int

	bp             *broadphase
	goal           *Obstacle
	lastCheckpoint leveldata.Point

	stream *streamer
}

// Option configures a Level or Session.
type Option func(*options)

type options struct {
	logger *log.Logger
	source ChunkSource
	resume *leveldata.Point
}

// WithLogger routes simulation logging to logger.
func WithLogger(logger *log.Logger) Option {
	return func(o *options) { o.logger = logger }
}

// WithChunkSource turns the level into an endless one fed by src.
func WithChunkSource(src ChunkSource) Option {
	return func(o *options) { o.source = src }
}

// WithResume makes the checkpoint anchored at at the respawn anchor from
// the first frame. It is ignored when the level has no such checkpoint.
func WithResume(at leveldata.Point) Option {
	return func(o *options) { o.resume = &at }
}

func forgetResume(o *options) { o.resume = nil }

func buildOptions(opts []Option) options {
	var o options
	for _, opt := range opts {
		opt(&o)
	}
	if o.logger == nil {
		o.logger = log.New(io.Discard)
	}
	return o
}

// LoadLevel validates desc and builds its geometry. The description is
// copied; later changes to it do not affect the level.
func LoadLevel(desc *leveldata.Description, cfg config.Settings, opts ...Option) (*Level, error) {
	if err := desc.Validate(); err != nil {
		return nil, err
	}
	o := buildOptions(opts)

	l := &Level{
		cfg:            cfg,
		logger:         o.logger,
		name:           desc.Name,
		start:          desc.Start,
		lastCheckpoint: desc.Start,
	}
	for i, r := range desc.Records {
		if err := validRecord(r); err != nil {
			return nil, fmt.Errorf("record %d (%s): %w", i, r.Type, err)
		}
		l.appendRecord(r)
	}
	if desc.Goal != nil {
		if _, err := gamemath.NewRect(desc.Goal.X, desc.Goal.Y, desc.Goal.W, desc.Goal.H); err != nil {
			return nil, fmt.Errorf("goal: %w", err)
		}
		l.appendRecord(leveldata.Record{Type: leveldata.TypeGoal, Rect: *desc.Goal})
	}

	if o.resume != nil {
		l.resumeAt(*o.resume)
	}

	ext := desc.Bounds()
	if o.source != nil {
		l.stream = newStreamer(o.source, cfg.Stream, ext.Right())
	}

	l.build(ext)
	l.logger.Info("level loaded", "name", l.name, "records", len(l.records), "endless", l.stream != nil)
	return l, nil
}

func (l *Level) resumeAt(at leveldata.Point) {
	for _, ar := range l.records {
		if ar.rec.Type == leveldata.TypeCheckpoint && (leveldata.Point{X: ar.rec.Rect.X, Y: ar.rec.Rect.Y}) == at {
			l.lastCheckpoint = at
			return
		}
	}
	l.logger.Warn("no checkpoint to resume at", "x", at.X, "y", at.Y)
}

func validRecord(r leveldata.Record) error {
	if _, err := gamemath.NewRect(r.Rect.X, r.Rect.Y, r.Rect.W, r.Rect.H); err != nil {
		return err
	}
	if r.Type == leveldata.TypeSlope {
		if _, err := gamemath.NewSlope(r.Rect, r.LeftOffset, r.RightOffset); err != nil {
			return err
		}
	}
	return nil
}

func (l *Level) appendRecord(r leveldata.Record) int {
	l.nextID++
	l.records = append(l.records, authoredRecord{id: l.nextID, rec: r})
	return l.nextID
}

// build replaces the live geometry with a fresh copy of the authored
// records. Pushables start static because the player starts in 2D.
func (l *Level) build(extent gamemath.Rect) {
	l.bp = newBroadphase(extent)
	l.goal = nil
	for _, ar := range l.records {
		l.instantiate(ar)
	}
}

func (l *Level) instantiate(ar authoredRecord) {
	if ar.rec.Type == leveldata.TypePushable {
		l.bp.addPushable(&Pushable{ID: ar.id, Rect: ar.rec.Rect, Static: true})
		return
	}
	kind, ok := kindOf(ar.rec.Type)
	if !ok {
		return
	}
	o := &Obstacle{ID: ar.id, Kind: kind, Rect: ar.rec.Rect}
	switch kind {
	case KindSlope:
		o.Slope = ar.rec.Slope()
	case KindCheckpoint:
		o.Active = o.Anchor() == l.lastCheckpoint
	case KindGoal:
		l.goal = o
	}
	l.bp.addObstacle(o)
}

// extent is the box the broadphase currently needs to cover.
func (l *Level) extent() gamemath.Rect {
	ext := gamemath.Rect{X: l.start.X, Y: l.start.Y, W: leveldata.StartWidth, H: leveldata.StartHeight}
	for _, ar := range l.records {
		ext = ext.Union(ar.rec.Rect)
	}
	return ext
}

// Respawn rebuilds the level from its authored records and puts the player
// at the last activated checkpoint, or the start when there is none. It
// always succeeds.
func (l *Level) Respawn(p *Player) {
	l.build(l.extent())
	p.reset(l.lastCheckpoint, l.cfg.Player)
	l.logger.Debug("respawn", "x", l.lastCheckpoint.X, "y", l.lastCheckpoint.Y)
}

// ToggleMode switches the player's movement model. Pushable flags change in
// the same call, so no frame sees a half-toggled level.
func (l *Level) ToggleMode(p *Player) {
	p.toggle(l.cfg.Player)
	static := p.Mode == Mode2D
	for _, b := range l.bp.pushables {
		b.Static = static
	}
}

func (l *Level) activateCheckpoint(o *Obstacle) {
	l.lastCheckpoint = o.Anchor()
	for _, c := range l.bp.obstacles {
		if c.Kind == KindCheckpoint {
			c.Active = c == o
		}
	}
	l.logger.Info("checkpoint", "id", o.ID, "x", o.Rect.X, "y", o.Rect.Y)
}

// CheckGoalReached reports whether the player touches the goal. Levels
// without a goal never complete.
func (l *Level) CheckGoalReached(p *Player) bool {
	return l.goal != nil && p.Rect.Intersects(l.goal.Rect)
}

// CheckFellOutOfWorld reports whether the player's top is below thresholdY.
func (l *Level) CheckFellOutOfWorld(p *Player, thresholdY float64) bool {
	return p.Rect.Top() > thresholdY
}

// Name is the level's file stem, if it had one.
func (l *Level) Name() string { return l.name }

// Start is the authored start anchor.
func (l *Level) Start() leveldata.Point { return l.start }

// LastCheckpoint is the current respawn anchor.
func (l *Level) LastCheckpoint() leveldata.Point { return l.lastCheckpoint }

// Goal returns the goal region, if the level has one.
func (l *Level) Goal() (gamemath.Rect, bool) {
	if l.goal == nil {
		return gamemath.Rect{}, false
	}
	return l.goal.Rect, true
}

// Endless reports whether the level streams chunks.
func (l *Level) Endless() bool { return l.stream != nil }

// Obstacles yields copies of the live obstacles in ID order, optionally
// restricted to kinds.
func (l *Level) Obstacles(kinds ...Kind) iter.Seq[Obstacle] {
	return func(yield func(Obstacle) bool) {
		for _, o := range l.bp.obstacles {
			if len(kinds) > 0 && !slices.Contains(kinds, o.Kind) {
				continue
			}
			c := *o
			c.obj = nil
			if !yield(c) {
				return
			}
		}
	}
}

// Pushables yields copies of the live pushables in ID order.
func (l *Level) Pushables() iter.Seq[Pushable] {
	return func(yield func(Pushable) bool) {
		for _, b := range l.bp.pushables {
			c := *b
			c.obj = nil
			if !yield(c) {
				return
			}
		}
	}
}

// Description returns the level as it would be reloaded on respawn.
func (l *Level) Description() *leveldata.Description {
	d := &leveldata.Description{Name: l.name, Start: l.start, HasStart: true}
	for _, ar := range l.records {
		if ar.rec.Type == leveldata.TypeGoal {
			g := ar.rec.Rect
			d.Goal = &g
			continue
		}
		d.Records = append(d.Records, ar.rec)
	}
	return d
}
