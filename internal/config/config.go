// Package config provides YAML-based game configuration loading and
// difficulty management for the arcade.
package config

import (
	"errors"
	"fmt"
)

// ErrInvalid is wrapped by Validate errors.
var ErrInvalid = errors.New("invalid config")

// Validator is implemented by configs that can reject impossible values.
type Validator interface {
	Validate() error
}

// World is the simulated play area in world units (canvas pixels).
type World struct {
	Width  float64 `yaml:"width"`
	Height float64 `yaml:"height"`
}

func (w World) validate(game string) error {
	if w.Width <= 0 || w.Height <= 0 {
		return fmt.Errorf("%s: world %gx%g: %w", game, w.Width, w.Height, ErrInvalid)
	}
	return nil
}

// StackConfig contains all configuration for Block Stack.
type StackConfig struct {
	World      World            `yaml:"world"`
	Block      StackBlock       `yaml:"block"`
	Scoring    StackScoring     `yaml:"scoring"`
	Difficulty DifficultyConfig `yaml:"difficulty"`
}

// StackBlock defines block geometry and motion.
type StackBlock struct {
	Height    float64 `yaml:"height"`
	BaseWidth float64 `yaml:"base_width"`
	Speed     float64 `yaml:"speed"` // Horizontal speed in px/s at difficulty 0
	Gravity   float64 `yaml:"gravity"`
}

// StackScoring defines placement scoring.
type StackScoring struct {
	PerfectThreshold float64 `yaml:"perfect_threshold"` // Max x offset in px that still snaps
	PerfectBonus     int     `yaml:"perfect_bonus"`
	ComboGrowEvery   int     `yaml:"combo_grow_every"` // Perfect streak length that regrows width
	GrowAmount       float64 `yaml:"grow_amount"`
}

// Validate implements Validator.
func (c StackConfig) Validate() error {
	if err := c.World.validate("stack"); err != nil {
		return err
	}
	if c.Block.Height <= 0 || c.Block.BaseWidth <= 0 || c.Block.BaseWidth > c.World.Width {
		return fmt.Errorf("stack: block %gx%g: %w", c.Block.BaseWidth, c.Block.Height, ErrInvalid)
	}
	return nil
}

// RunnerConfig contains all configuration for the Endless Runner.
type RunnerConfig struct {
	World      World            `yaml:"world"`
	Physics    RunnerPhysics    `yaml:"physics"`
	Player     RunnerPlayer     `yaml:"player"`
	Obstacles  RunnerObstacles  `yaml:"obstacles"`
	Difficulty DifficultyConfig `yaml:"difficulty"`
}

// RunnerPhysics defines jump and scroll physics.
type RunnerPhysics struct {
	Gravity      float64 `yaml:"gravity"`
	JumpImpulse  float64 `yaml:"jump_impulse"`
	MaxFallSpeed float64 `yaml:"max_fall_speed"`
	BaseSpeed    float64 `yaml:"base_speed"`
	GroundOffset float64 `yaml:"ground_offset"`
}

// RunnerPlayer defines the runner's hitbox.
type RunnerPlayer struct {
	X          float64 `yaml:"x"`
	Width      float64 `yaml:"width"`
	Height     float64 `yaml:"height"`
	DuckHeight float64 `yaml:"duck_height"`
	DuckTime   float64 `yaml:"duck_time"` // Seconds a duck press lasts
}

// RunnerObstacles defines obstacle and coin spawning.
type RunnerObstacles struct {
	MinWidth       float64 `yaml:"min_width"`
	MaxWidth       float64 `yaml:"max_width"`
	MinHeight      float64 `yaml:"min_height"`
	MaxHeight      float64 `yaml:"max_height"`
	MinSpacing     float64 `yaml:"min_spacing"`
	MaxSpacing     float64 `yaml:"max_spacing"`
	BirdChance     float64 `yaml:"bird_chance"`
	BirdAltitude   float64 `yaml:"bird_altitude"`
	CoinChance     float64 `yaml:"coin_chance"`
	CoinValue      int     `yaml:"coin_value"`
	DistancePerPts float64 `yaml:"distance_per_point"`
}

// Validate implements Validator.
func (c RunnerConfig) Validate() error {
	if err := c.World.validate("runner"); err != nil {
		return err
	}
	if c.Obstacles.MinSpacing <= 0 || c.Obstacles.MaxSpacing < c.Obstacles.MinSpacing {
		return fmt.Errorf("runner: spacing %g..%g: %w", c.Obstacles.MinSpacing, c.Obstacles.MaxSpacing, ErrInvalid)
	}
	return nil
}

// ArenaConfig contains all configuration for the Arena Shooter.
type ArenaConfig struct {
	World      World            `yaml:"world"`
	Player     ArenaPlayer      `yaml:"player"`
	Weapon     ArenaWeapon      `yaml:"weapon"`
	Enemies    ArenaEnemies     `yaml:"enemies"`
	Difficulty DifficultyConfig `yaml:"difficulty"`
}

// ArenaPlayer defines the player ship.
type ArenaPlayer struct {
	Radius       float64 `yaml:"radius"`
	Speed        float64 `yaml:"speed"`
	Health       int     `yaml:"health"`
	Invulnerable float64 `yaml:"invulnerable"` // Seconds of immunity after a hit
	HoldTime     float64 `yaml:"hold_time"`    // Seconds a move press keeps steering
}

// ArenaWeapon defines projectiles.
type ArenaWeapon struct {
	BulletSpeed  float64 `yaml:"bullet_speed"`
	BulletRadius float64 `yaml:"bullet_radius"`
	Cooldown     float64 `yaml:"cooldown"`
	Damage       int     `yaml:"damage"`
}

// ArenaEnemies defines enemy spawning and stats.
type ArenaEnemies struct {
	Radius        float64 `yaml:"radius"`
	Speed         float64 `yaml:"speed"`
	Health        int     `yaml:"health"`
	Damage        int     `yaml:"damage"`
	Points        int     `yaml:"points"`
	SpawnInterval float64 `yaml:"spawn_interval"`
	MaxAlive      int     `yaml:"max_alive"`
}

// Validate implements Validator.
func (c ArenaConfig) Validate() error {
	if err := c.World.validate("arena"); err != nil {
		return err
	}
	if c.Player.Health <= 0 {
		return fmt.Errorf("arena: player health %d: %w", c.Player.Health, ErrInvalid)
	}
	return nil
}

// SlingshotConfig contains all configuration for Slingshot.
type SlingshotConfig struct {
	World      World            `yaml:"world"`
	Physics    SlingPhysics     `yaml:"physics"`
	Aim        SlingAim         `yaml:"aim"`
	Targets    SlingTargets     `yaml:"targets"`
	Difficulty DifficultyConfig `yaml:"difficulty"`
}

// SlingPhysics defines projectile flight.
type SlingPhysics struct {
	Gravity     float64 `yaml:"gravity"`
	Radius      float64 `yaml:"radius"`
	Restitution float64 `yaml:"restitution"` // Vertical speed kept on a ground bounce
	Friction    float64 `yaml:"friction"`    // Horizontal speed kept on a ground bounce
	RestSpeed   float64 `yaml:"rest_speed"`  // Below this the projectile stops
	MaxFlight   float64 `yaml:"max_flight"`  // Seconds before a shot is abandoned
	GroundY     float64 `yaml:"ground_y"`
}

// SlingAim defines the sling and aiming controls.
type SlingAim struct {
	AnchorX      float64 `yaml:"anchor_x"`
	AnchorY      float64 `yaml:"anchor_y"`
	MinAngle     float64 `yaml:"min_angle"`
	MaxAngle     float64 `yaml:"max_angle"`
	AngleStep    float64 `yaml:"angle_step"`
	InitialAngle float64 `yaml:"initial_angle"`
	MinPower     float64 `yaml:"min_power"`
	MaxPower     float64 `yaml:"max_power"`
	PowerStep    float64 `yaml:"power_step"`
	InitialPower float64 `yaml:"initial_power"`
}

// SlingTargets defines the targets and shot budget.
type SlingTargets struct {
	Count     int     `yaml:"count"`
	Size      float64 `yaml:"size"`
	MinX      float64 `yaml:"min_x"`
	Points    int     `yaml:"points"`
	Shots     int     `yaml:"shots"`
	ShotBonus int     `yaml:"shot_bonus"`
}

// Validate implements Validator.
func (c SlingshotConfig) Validate() error {
	if err := c.World.validate("slingshot"); err != nil {
		return err
	}
	if c.Targets.Shots <= 0 || c.Targets.Count <= 0 {
		return fmt.Errorf("slingshot: %d shots for %d targets: %w", c.Targets.Shots, c.Targets.Count, ErrInvalid)
	}
	if c.Aim.MinAngle >= c.Aim.MaxAngle || c.Aim.MinPower >= c.Aim.MaxPower {
		return fmt.Errorf("slingshot: aim ranges: %w", ErrInvalid)
	}
	t := c.Targets
	if t.Size <= 0 || t.MinX < 0 || t.MinX+t.Size > c.World.Width || t.Size > c.Physics.GroundY {
		return fmt.Errorf("slingshot: %g px targets do not fit right of x=%g: %w", t.Size, t.MinX, ErrInvalid)
	}
	return nil
}

// Match3Config contains all configuration for Gem Match.
type Match3Config struct {
	Board      Match3Board      `yaml:"board"`
	Scoring    Match3Scoring    `yaml:"scoring"`
	Difficulty DifficultyConfig `yaml:"difficulty"`
}

// Match3Board defines the grid.
type Match3Board struct {
	Width  int `yaml:"width"`
	Height int `yaml:"height"`
	Kinds  int `yaml:"kinds"`
}

// Match3Scoring defines points and time.
type Match3Scoring struct {
	PointsPerGem int     `yaml:"points_per_gem"`
	TimeLimit    float64 `yaml:"time_limit"`
	MatchBonus   float64 `yaml:"match_bonus"` // Seconds added per cleared run
}

// Validate implements Validator.
func (c Match3Config) Validate() error {
	if c.Board.Width < 3 || c.Board.Height < 3 || c.Board.Kinds < 3 {
		return fmt.Errorf("match3: board %dx%d with %d kinds: %w", c.Board.Width, c.Board.Height, c.Board.Kinds, ErrInvalid)
	}
	return nil
}

// MemoryConfig contains all configuration for Memory Match.
type MemoryConfig struct {
	Board      MemoryBoard      `yaml:"board"`
	Scoring    MemoryScoring    `yaml:"scoring"`
	Difficulty DifficultyConfig `yaml:"difficulty"`
}

// MemoryBoard defines the card grid.
type MemoryBoard struct {
	Cols        int     `yaml:"cols"`
	Rows        int     `yaml:"rows"`
	RevealDelay float64 `yaml:"reveal_delay"` // Seconds a mismatched pair stays face up
}

// MemoryScoring defines points, timer and penalty.
type MemoryScoring struct {
	MatchPoints     int     `yaml:"match_points"`
	StreakBonus     int     `yaml:"streak_bonus"`
	TimeLimit       float64 `yaml:"time_limit"`
	MismatchPenalty float64 `yaml:"mismatch_penalty"` // Seconds removed on a wrong pair
	TimeBonus       int     `yaml:"time_bonus"`       // Points per second left when cleared
}

// Validate implements Validator.
func (c MemoryConfig) Validate() error {
	n := c.Board.Cols * c.Board.Rows
	if n <= 0 || n%2 != 0 {
		return fmt.Errorf("memory: %dx%d board needs an even card count: %w", c.Board.Cols, c.Board.Rows, ErrInvalid)
	}
	return nil
}

// CatcherConfig contains all configuration for Fruit Catcher.
type CatcherConfig struct {
	World      World            `yaml:"world"`
	Basket     CatcherBasket    `yaml:"basket"`
	Items      CatcherItems     `yaml:"items"`
	Difficulty DifficultyConfig `yaml:"difficulty"`
}

// CatcherBasket defines the player basket.
type CatcherBasket struct {
	Width    float64 `yaml:"width"`
	Height   float64 `yaml:"height"`
	Speed    float64 `yaml:"speed"`
	HoldTime float64 `yaml:"hold_time"`
	Health   int     `yaml:"health"`
}

// CatcherItems defines falling items.
type CatcherItems struct {
	Radius        float64 `yaml:"radius"`
	FallSpeed     float64 `yaml:"fall_speed"`
	SpawnInterval float64 `yaml:"spawn_interval"`
	BombChance    float64 `yaml:"bomb_chance"`
	Points        int     `yaml:"points"`
}

// Validate implements Validator.
func (c CatcherConfig) Validate() error {
	if err := c.World.validate("catcher"); err != nil {
		return err
	}
	if c.Basket.Health <= 0 {
		return fmt.Errorf("catcher: health %d: %w", c.Basket.Health, ErrInvalid)
	}
	return nil
}

// WhackConfig contains all configuration for Whack-a-Mole.
type WhackConfig struct {
	Board      WhackBoard       `yaml:"board"`
	Moles      WhackMoles       `yaml:"moles"`
	Difficulty DifficultyConfig `yaml:"difficulty"`
}

// WhackBoard defines the hole grid and session length.
type WhackBoard struct {
	Cols      int     `yaml:"cols"`
	Rows      int     `yaml:"rows"`
	TimeLimit float64 `yaml:"time_limit"`
}

// WhackMoles defines mole behavior.
type WhackMoles struct {
	MinUp         float64 `yaml:"min_up"`
	MaxUp         float64 `yaml:"max_up"`
	SpawnInterval float64 `yaml:"spawn_interval"`
	GoldenChance  float64 `yaml:"golden_chance"`
	Points        int     `yaml:"points"`
	GoldenPoints  int     `yaml:"golden_points"`
}

// Validate implements Validator.
func (c WhackConfig) Validate() error {
	if c.Board.Cols <= 0 || c.Board.Rows <= 0 {
		return fmt.Errorf("whack: board %dx%d: %w", c.Board.Cols, c.Board.Rows, ErrInvalid)
	}
	if c.Moles.MaxUp < c.Moles.MinUp {
		return fmt.Errorf("whack: mole up time %g..%g: %w", c.Moles.MinUp, c.Moles.MaxUp, ErrInvalid)
	}
	return nil
}

// DifficultyConfig defines the difficulty progression system.
type DifficultyConfig struct {
	Enabled      bool              `yaml:"enabled"`
	InitialLevel float64           `yaml:"initial_level"` // 0.0 = easy, 1.0 = hard
	Progression  ProgressionConfig `yaml:"progression"`
	Scaling      ScalingConfig     `yaml:"scaling"`
}

// ProgressionConfig defines how difficulty increases over time.
type ProgressionConfig struct {
	Type  string `yaml:"type"`   // "score", "time", or "none"
	MaxAt int    `yaml:"max_at"` // Score/ticks at which max difficulty is reached
}

// ScalingConfig defines the magnitude of difficulty changes.
type ScalingConfig struct {
	SpeedMultiplier   float64 `yaml:"speed_multiplier"`   // Added to the speed factor at max difficulty
	IntervalReduction float64 `yaml:"interval_reduction"` // Fraction of spawn interval removed at max difficulty
	SpacingReduction  float64 `yaml:"spacing_reduction"`  // Fraction of obstacle spacing removed at max difficulty
}
