package core

import (
	"slices"

	"github.com/automoto/flipside/config"
	"github.com/automoto/flipside/shared/gamemath"
	"github.com/automoto/flipside/shared/leveldata"
	"github.com/charmbracelet/log"
)

// State is the session's lifecycle state.
type State uint8

const (
	StatePlaying State = iota
	StateRespawning
	StateComplete
)

func (s State) String() string {
	switch s {
	case StateRespawning:
		return "respawning"
	case StateComplete:
		return "complete"
	}
	return "playing"
}

// RespawnReason says why a frame ended in a respawn.
type RespawnReason uint8

const (
	ReasonNone RespawnReason = iota
	ReasonHazard
	ReasonFellOut
)

func (r RespawnReason) String() string {
	switch r {
	case ReasonHazard:
		return "hazard"
	case ReasonFellOut:
		return "fell_out"
	}
	return "none"
}

// FrameResult reports what happened during one Step.
type FrameResult struct {
	Frame               uint64
	State               State
	Respawned           bool
	Reason              RespawnReason
	CheckpointActivated bool
	GoalReached         bool
}

// Session owns exactly one level and its player and advances them one
// fixed-rate frame per Step. It is not safe for concurrent use; renderers
// read Snapshot between steps.
type Session struct {
	cfg    config.Settings
	logger *log.Logger
	desc   *leveldata.Description
	opts   []Option

	level  *Level
	player *Player
	integ  integrator

	prev   InputSnapshot
	state  State
	frame  uint64
	deaths int
}

// NewSession loads desc and places the player at its start, or at the
// resumed checkpoint when WithResume named one.
func NewSession(desc *leveldata.Description, cfg config.Settings, opts ...Option) (*Session, error) {
	level, err := LoadLevel(desc, cfg, opts...)
	if err != nil {
		return nil, err
	}
	s := &Session{
		cfg:    cfg,
		logger: buildOptions(opts).logger,
		desc:   desc.Clone(),
		opts:   opts,
		level:  level,
		player: newPlayer(level.LastCheckpoint(), cfg.Player),
		integ:  newIntegrator(cfg),
		state:  StatePlaying,
	}
	return s, nil
}

// Step advances the simulation by one frame.
func (s *Session) Step(in InputSnapshot) FrameResult {
	fi := frameInput{cur: in, prev: s.prev}
	s.prev = in
	if s.state == StateComplete {
		return FrameResult{Frame: s.frame, State: s.state}
	}

	s.frame++
	res := FrameResult{Frame: s.frame}
	p := s.player
	p.untoggle = nil

	if fi.justPressed(ActionToggle) {
		s.level.ToggleMode(p)
	}

	m := s.integ.step(p, fi)

	for _, pass := range [...]struct {
		axis Axis
		d    float64
	}{{AxisX, m.dx}, {AxisY, m.dy}} {
		switch s.level.resolve(p, pass.axis, pass.d) {
		case EventHazard:
			return s.respawnFrame(res, ReasonHazard)
		case EventCheckpoint:
			res.CheckpointActivated = true
		}
	}

	s.integ.settle(p)

	if s.level.Endless() {
		cx := p.Rect.CenterX()
		s.level.StreamChunk(cx)
		s.level.PruneBehind(cx)
	}

	switch {
	case s.level.CheckGoalReached(p):
		s.state = s.complete()
		res.GoalReached = true
	case s.level.CheckFellOutOfWorld(p, s.cfg.Physics.FallOutY):
		return s.respawnFrame(res, ReasonFellOut)
	}
	res.State = s.state
	return res
}

// respawnFrame runs both respawn transitions inside the current frame.
func (s *Session) respawnFrame(res FrameResult, reason RespawnReason) FrameResult {
	s.state = s.beginRespawn(reason)
	s.state = s.finishRespawn()
	res.Respawned = true
	res.Reason = reason
	res.State = s.state
	return res
}

func (s *Session) beginRespawn(reason RespawnReason) State {
	s.deaths++
	s.logger.Info("player died", "reason", reason, "frame", s.frame, "deaths", s.deaths)
	return StateRespawning
}

func (s *Session) finishRespawn() State {
	s.level.Respawn(s.player)
	return StatePlaying
}

func (s *Session) complete() State {
	s.logger.Info("level complete", "name", s.level.Name(), "frame", s.frame, "deaths", s.deaths)
	return StateComplete
}

// Toggle switches mode outside of a frame step.
func (s *Session) Toggle() { s.level.ToggleMode(s.player) }

// Restart reloads the level from scratch, forgetting checkpoints.
func (s *Session) Restart() error {
	level, err := LoadLevel(s.desc, s.cfg, append(slices.Clip(s.opts), forgetResume)...)
	if err != nil {
		return err
	}
	s.level = level
	s.player = newPlayer(level.Start(), s.cfg.Player)
	s.prev = InputSnapshot{}
	s.state = StatePlaying
	s.frame = 0
	s.deaths = 0
	return nil
}

// State returns the current lifecycle state.
func (s *Session) State() State { return s.state }

// Frame returns the number of frames stepped.
func (s *Session) Frame() uint64 { return s.frame }

// Deaths returns the number of respawns since the last restart.
func (s *Session) Deaths() int { return s.deaths }

// Level returns the live level. Callers must not hold on to it across a
// Restart.
func (s *Session) Level() *Level { return s.level }

// Player returns a copy of the player state.
func (s *Session) Player() Player {
	p := *s.player
	p.untoggle = nil
	return p
}

// Snapshot is a value copy of everything a renderer needs.
type Snapshot struct {
	Frame          uint64
	State          State
	Player         Player
	Obstacles      []Obstacle
	Pushables      []Pushable
	LastCheckpoint leveldata.Point
	Goal           *gamemath.Rect
	GoalReached    bool
	FellOut        bool
	Deaths         int
}

// Snapshot copies the current state. Take it between steps.
func (s *Session) Snapshot() Snapshot {
	snap := Snapshot{
		Frame:          s.frame,
		State:          s.state,
		Player:         s.Player(),
		LastCheckpoint: s.level.LastCheckpoint(),
		GoalReached:    s.level.CheckGoalReached(s.player),
		FellOut:        s.level.CheckFellOutOfWorld(s.player, s.cfg.Physics.FallOutY),
		Deaths:         s.deaths,
	}
	for o := range s.level.Obstacles() {
		snap.Obstacles = append(snap.Obstacles, o)
	}
	for b := range s.level.Pushables() {
		snap.Pushables = append(snap.Pushables, b)
	}
	if g, ok := s.level.Goal(); ok {
		snap.Goal = &g
	}
	return snap
}
