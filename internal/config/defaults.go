package config

import (
	"embed"
)

//go:embed defaults/*.yaml
var defaultsFS embed.FS

// DefaultYAML returns the embedded default YAML for a game, or nil.
func DefaultYAML(gameID string) []byte {
	data, err := defaultsFS.ReadFile("defaults/" + gameID + ".yaml")
	if err != nil {
		return nil
	}
	return data
}

func scoreProgression(maxAt int, speed, interval, spacing float64) DifficultyConfig {
	return DifficultyConfig{
		Enabled:     true,
		Progression: ProgressionConfig{Type: "score", MaxAt: maxAt},
		Scaling: ScalingConfig{
			SpeedMultiplier:   speed,
			IntervalReduction: interval,
			SpacingReduction:  spacing,
		},
	}
}

// DefaultStackConfig returns the built-in Block Stack configuration.
func DefaultStackConfig() StackConfig {
	return StackConfig{
		World: World{Width: 400, Height: 600},
		Block: StackBlock{
			Height:    20,
			BaseWidth: 200,
			Speed:     150,
			Gravity:   900,
		},
		Scoring: StackScoring{
			PerfectThreshold: 5,
			PerfectBonus:     1,
			ComboGrowEvery:   3,
			GrowAmount:       10,
		},
		Difficulty: scoreProgression(50, 1.5, 0, 0),
	}
}

// DefaultRunnerConfig returns the built-in Endless Runner configuration.
func DefaultRunnerConfig() RunnerConfig {
	return RunnerConfig{
		World: World{Width: 600, Height: 200},
		Physics: RunnerPhysics{
			Gravity:      2400,
			JumpImpulse:  -720,
			MaxFallSpeed: 900,
			BaseSpeed:    240,
			GroundOffset: 20,
		},
		Player: RunnerPlayer{
			X:          60,
			Width:      24,
			Height:     40,
			DuckHeight: 20,
			DuckTime:   0.5,
		},
		Obstacles: RunnerObstacles{
			MinWidth:       14,
			MaxWidth:       30,
			MinHeight:      24,
			MaxHeight:      44,
			MinSpacing:     260,
			MaxSpacing:     460,
			BirdChance:     0.25,
			BirdAltitude:   30,
			CoinChance:     0.35,
			CoinValue:      10,
			DistancePerPts: 10,
		},
		Difficulty: scoreProgression(2000, 1.5, 0, 0.3),
	}
}

// DefaultArenaConfig returns the built-in Arena Shooter configuration.
func DefaultArenaConfig() ArenaConfig {
	return ArenaConfig{
		World: World{Width: 800, Height: 600},
		Player: ArenaPlayer{
			Radius:       12,
			Speed:        220,
			Health:       5,
			Invulnerable: 1.0,
			HoldTime:     0.15,
		},
		Weapon: ArenaWeapon{
			BulletSpeed:  520,
			BulletRadius: 4,
			Cooldown:     0.2,
			Damage:       1,
		},
		Enemies: ArenaEnemies{
			Radius:        12,
			Speed:         80,
			Health:        2,
			Damage:        1,
			Points:        10,
			SpawnInterval: 1.5,
			MaxAlive:      20,
		},
		Difficulty: scoreProgression(500, 1.0, 0.6, 0),
	}
}

// DefaultSlingshotConfig returns the built-in Slingshot configuration.
func DefaultSlingshotConfig() SlingshotConfig {
	return SlingshotConfig{
		World: World{Width: 800, Height: 400},
		Physics: SlingPhysics{
			Gravity:     600,
			Radius:      8,
			Restitution: 0.4,
			Friction:    0.7,
			RestSpeed:   30,
			MaxFlight:   8,
			GroundY:     380,
		},
		Aim: SlingAim{
			AnchorX:      80,
			AnchorY:      320,
			MinAngle:     5,
			MaxAngle:     85,
			AngleStep:    2,
			InitialAngle: 45,
			MinPower:     200,
			MaxPower:     800,
			PowerStep:    25,
			InitialPower: 500,
		},
		Targets: SlingTargets{
			Count:     5,
			Size:      30,
			MinX:      400,
			Points:    100,
			Shots:     6,
			ShotBonus: 50,
		},
		Difficulty: DifficultyConfig{Progression: ProgressionConfig{Type: "none"}},
	}
}

// DefaultMatch3Config returns the built-in Gem Match configuration.
func DefaultMatch3Config() Match3Config {
	return Match3Config{
		Board: Match3Board{Width: 8, Height: 8, Kinds: 6},
		Scoring: Match3Scoring{
			PointsPerGem: 10,
			TimeLimit:    90,
			MatchBonus:   0.5,
		},
		Difficulty: DifficultyConfig{Progression: ProgressionConfig{Type: "none"}},
	}
}

// DefaultMemoryConfig returns the built-in Memory Match configuration.
func DefaultMemoryConfig() MemoryConfig {
	return MemoryConfig{
		Board: MemoryBoard{Cols: 4, Rows: 4, RevealDelay: 0.8},
		Scoring: MemoryScoring{
			MatchPoints:     10,
			StreakBonus:     5,
			TimeLimit:       60,
			MismatchPenalty: 2,
			TimeBonus:       1,
		},
		Difficulty: DifficultyConfig{Progression: ProgressionConfig{Type: "none"}},
	}
}

// DefaultCatcherConfig returns the built-in Fruit Catcher configuration.
func DefaultCatcherConfig() CatcherConfig {
	return CatcherConfig{
		World: World{Width: 400, Height: 600},
		Basket: CatcherBasket{
			Width:    70,
			Height:   16,
			Speed:    320,
			HoldTime: 0.15,
			Health:   3,
		},
		Items: CatcherItems{
			Radius:        10,
			FallSpeed:     150,
			SpawnInterval: 0.9,
			BombChance:    0.2,
			Points:        10,
		},
		Difficulty: scoreProgression(400, 1.2, 0.5, 0),
	}
}

// DefaultWhackConfig returns the built-in Whack-a-Mole configuration.
func DefaultWhackConfig() WhackConfig {
	return WhackConfig{
		Board: WhackBoard{Cols: 3, Rows: 3, TimeLimit: 45},
		Moles: WhackMoles{
			MinUp:         0.6,
			MaxUp:         1.4,
			SpawnInterval: 0.7,
			GoldenChance:  0.1,
			Points:        10,
			GoldenPoints:  30,
		},
		Difficulty: scoreProgression(400, 0, 0.5, 0),
	}
}
