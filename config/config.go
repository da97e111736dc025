// Package config holds every tunable value of the game. Defaults are set in
// init() and can be overlaid from a YAML file with Load. The simulation takes
// a Settings value at construction and never reads the globals itself.
package config

import (
	"image/color"

	"github.com/automoto/flipside/shared/gamemath"
)

// PhysicsConfig contains the platform-mode physics constants
type PhysicsConfig struct {
	Gravity          float64 `yaml:"gravity"`
	JumpStrength     float64 `yaml:"jump_strength"` // magnitude of the upward impulse
	MaxFallSpeed     float64 `yaml:"max_fall_speed"`
	TrampolineBounce float64 `yaml:"trampoline_bounce"`
	CoyoteFrames     int     `yaml:"coyote_frames"`

	// Wall sliding
	WallSlideSpeed       float64 `yaml:"wall_slide_speed"`
	WallJumpPushAway     float64 `yaml:"wall_jump_push_away"`   // holding away from the wall
	WallJumpPushToward   float64 `yaml:"wall_jump_push_toward"` // any other input
	WallJumpPushFriction float64 `yaml:"wall_jump_push_friction"`

	// Player top below this y counts as falling out of the world
	FallOutY float64 `yaml:"fall_out_y"`
}

// PlayerConfig contains movement and size values shared by both modes
type PlayerConfig struct {
	MoveSpeed float64 `yaml:"move_speed"`

	// Tall box in platform mode, square box in free-roam mode
	TallWidth    float64 `yaml:"tall_width"`
	TallHeight   float64 `yaml:"tall_height"`
	SquareWidth  float64 `yaml:"square_width"`
	SquareHeight float64 `yaml:"square_height"`

	// Fraction of the player's displacement a grabbed object follows
	GrabDamping float64 `yaml:"grab_damping"`
}

// ElevationConfig describes the free-roam jump arc on the z axis
type ElevationConfig struct {
	JumpHeight float64 `yaml:"jump_height"` // pixels
	Airtime    float64 `yaml:"airtime"`     // frames from takeoff to landing

	// Render scale added per pixel of elevation
	ScalePerPixel float64 `yaml:"scale_per_pixel"`
}

// Arc returns the per-frame gravity and launch speed of the elevation jump.
func (e ElevationConfig) Arc() (gravity, impulse float64) {
	return gamemath.ArcParams(e.JumpHeight, e.Airtime)
}

// StreamConfig contains the infinite-mode generation window
type StreamConfig struct {
	ChunkWidth      float64 `yaml:"chunk_width"`
	AheadDistance   float64 `yaml:"ahead_distance"`
	DespawnDistance float64 `yaml:"despawn_distance"`
	Seed            uint64  `yaml:"seed"` // 0 picks a time-based seed
}

// CameraConfig contains camera behavior configuration
type CameraConfig struct {
	FollowSmoothing float64 `yaml:"follow_smoothing"` // 0.0-1.0
	LookAheadX      float64 `yaml:"look_ahead_x"`
	ShakeIntensity  float64 `yaml:"shake_intensity"` // on respawn
	ShakeDuration   int     `yaml:"shake_duration"`  // frames
}

// EffectsConfig contains tween durations in seconds
type EffectsConfig struct {
	CheckpointFlash float64 `yaml:"checkpoint_flash"`
	ToggleFade      float64 `yaml:"toggle_fade"`
}

// StorageConfig names where progress and run history are kept
type StorageConfig struct {
	AppName     string `yaml:"app_name"`
	HistoryPath string `yaml:"history_path"`
	LevelsDir   string `yaml:"levels_dir"`
}

// Config holds general window configuration
type Config struct {
	Width    int    `yaml:"width"`
	Height   int    `yaml:"height"`
	TickRate int    `yaml:"tick_rate"`
	Title    string `yaml:"title"`
}

// Settings is every section in one value, the unit Load returns and the
// simulation consumes.
type Settings struct {
	Window    Config          `yaml:"window"`
	Physics   PhysicsConfig   `yaml:"physics"`
	Player    PlayerConfig    `yaml:"player"`
	Elevation ElevationConfig `yaml:"elevation"`
	Stream    StreamConfig    `yaml:"stream"`
	Camera    CameraConfig    `yaml:"camera"`
	Effects   EffectsConfig   `yaml:"effects"`
	Storage   StorageConfig   `yaml:"storage"`
}

// Global configuration instances
var C *Config
var Physics PhysicsConfig
var Player PlayerConfig
var Elevation ElevationConfig
var Stream StreamConfig
var Camera CameraConfig
var Effects EffectsConfig
var Storage StorageConfig

// Shared RGBA color constants
var (
	White        = color.RGBA{R: 255, G: 255, B: 255, A: 255}
	Black        = color.RGBA{A: 255}
	Sky          = color.RGBA{R: 135, G: 206, B: 235, A: 255}
	Grey         = color.RGBA{R: 128, G: 128, B: 128, A: 255}
	DarkGrey     = color.RGBA{R: 64, G: 64, B: 64, A: 255}
	Brown        = color.RGBA{R: 139, G: 69, B: 19, A: 255}
	Red          = color.RGBA{R: 255, G: 0, B: 0, A: 255}
	Green        = color.RGBA{R: 0, G: 255, B: 0, A: 255}
	Blue         = color.RGBA{R: 0, G: 100, B: 255, A: 255}
	Yellow       = color.RGBA{R: 255, G: 255, B: 0, A: 255}
	Orange       = color.RGBA{R: 255, G: 140, B: 0, A: 255}
	Purple       = color.RGBA{R: 128, G: 0, B: 255, A: 255}
	BlackOverlay = color.RGBA{R: 0, G: 0, B: 0, A: 180}
	LightBlue    = color.RGBA{R: 100, G: 180, B: 255, A: 255}
	DarkBlue     = color.RGBA{R: 60, G: 100, B: 160, A: 255}
)

// Defaults returns the built-in settings.
func Defaults() Settings {
	return Settings{
		Window: Config{
			Width:    800,
			Height:   600,
			TickRate: 60,
			Title:    "Flipside",
		},
		Physics: PhysicsConfig{
			Gravity:          0.5,
			JumpStrength:     11,
			MaxFallSpeed:     15, // below the smallest obstacle dimension
			TrampolineBounce: 18,
			CoyoteFrames:     4,

			WallSlideSpeed:       1.5,
			WallJumpPushAway:     8,
			WallJumpPushToward:   4,
			WallJumpPushFriction: 0.5,

			FallOutY: 1000,
		},
		Player: PlayerConfig{
			MoveSpeed:    5,
			TallWidth:    40,
			TallHeight:   50,
			SquareWidth:  40,
			SquareHeight: 40,
			GrabDamping:  0.9,
		},
		Elevation: ElevationConfig{
			JumpHeight:    60,
			Airtime:       40,
			ScalePerPixel: 0.005,
		},
		Stream: StreamConfig{
			ChunkWidth:      800,
			AheadDistance:   1200,
			DespawnDistance: 800,
		},
		Camera: CameraConfig{
			FollowSmoothing: 0.1,
			LookAheadX:      80,
			ShakeIntensity:  4,
			ShakeDuration:   12,
		},
		Effects: EffectsConfig{
			CheckpointFlash: 0.5,
			ToggleFade:      0.25,
		},
		Storage: StorageConfig{
			AppName:     "flipside",
			HistoryPath: "~/.flipside/runs.db",
			LevelsDir:   "levels",
		},
	}
}

// Apply replaces the package-level configuration with s.
func Apply(s Settings) {
	w := s.Window
	C = &w
	Physics = s.Physics
	Player = s.Player
	Elevation = s.Elevation
	Stream = s.Stream
	Camera = s.Camera
	Effects = s.Effects
	Storage = s.Storage
}

// Current collects the package-level configuration back into one value.
func Current() Settings {
	return Settings{
		Window:    *C,
		Physics:   Physics,
		Player:    Player,
		Elevation: Elevation,
		Stream:    Stream,
		Camera:    Camera,
		Effects:   Effects,
		Storage:   Storage,
	}
}

func init() {
	Apply(Defaults())
}
