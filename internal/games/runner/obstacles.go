package runner

import (
	"math/rand"

	"github.com/vovakirdan/minigames/internal/config"
	"github.com/vovakirdan/minigames/internal/core"
	"github.com/vovakirdan/minigames/internal/sim"
)

// Body kinds in the runner world.
const (
	kindPlayer sim.Kind = iota + 1
	kindCactus
	kindBird
	kindCoin
)

const (
	birdWidth  = 30
	birdHeight = 16
	coinRadius = 6
)

// Spawner decides when and what to spawn as the world scrolls.
type Spawner struct {
	rng        *rand.Rand
	cfg        *config.RunnerConfig
	difficulty *config.DifficultyManager
	groundY    float64
	spawnX     float64 // Left edge for new obstacles
	untilNext  float64 // Scroll distance until the next obstacle
}

// NewSpawner creates a spawner with the given RNG seed.
func NewSpawner(seed int64, cfg *config.RunnerConfig, diff *config.DifficultyManager, groundY float64) *Spawner {
	s := &Spawner{
		cfg:        cfg,
		difficulty: diff,
		groundY:    groundY,
		spawnX:     cfg.World.Width,
	}
	s.Reset(seed)
	return s
}

// Reset reseeds and schedules the first obstacle one minimum spacing away.
func (s *Spawner) Reset(seed int64) {
	s.rng = rand.New(rand.NewSource(seed))
	s.untilNext = s.cfg.Obstacles.MinSpacing
}

// Update advances by the scrolled distance and spawns into w as needed.
func (s *Spawner) Update(w *sim.World, scrolled, speed float64, score, ticks int) {
	s.untilNext -= scrolled
	if s.untilNext > 0 {
		return
	}

	width := s.spawnObstacle(w, speed)
	if s.rng.Float64() < s.cfg.Obstacles.CoinChance {
		s.spawnCoin(w, speed, width)
	}

	// Spacing shrinks with difficulty but never below the minimum
	minSpacing := s.cfg.Obstacles.MinSpacing
	maxSpacing := max(minSpacing, s.difficulty.Spacing(s.cfg.Obstacles.MaxSpacing, score, ticks))
	s.untilNext = width + minSpacing + s.rng.Float64()*(maxSpacing-minSpacing)
}

// spawnObstacle adds a cactus or a bird and returns its width.
func (s *Spawner) spawnObstacle(w *sim.World, speed float64) float64 {
	o := &s.cfg.Obstacles

	if s.rng.Float64() < o.BirdChance {
		bottom := s.groundY - o.BirdAltitude
		b := sim.NewBox(kindBird, core.V(s.spawnX+birdWidth/2, bottom-birdHeight/2), birdWidth, birdHeight)
		b.Vel = core.V(-speed, 0)
		b.Cull = true
		w.Spawn(b)
		return birdWidth
	}

	width := o.MinWidth + s.rng.Float64()*(o.MaxWidth-o.MinWidth)
	height := o.MinHeight + s.rng.Float64()*(o.MaxHeight-o.MinHeight)
	c := sim.NewBox(kindCactus, core.V(s.spawnX+width/2, s.groundY-height/2), width, height)
	c.Vel = core.V(-speed, 0)
	c.Cull = true
	w.Spawn(c)
	return width
}

// spawnCoin places a coin above the obstacle, or low in the gap after it.
func (s *Spawner) spawnCoin(w *sim.World, speed, obstacleW float64) {
	x := s.spawnX + obstacleW/2
	y := s.groundY - s.cfg.Obstacles.MaxHeight - 40
	if s.rng.Intn(2) == 0 {
		x += s.cfg.Obstacles.MinSpacing / 2
		y = s.groundY - coinRadius*3
	}
	c := sim.NewCircle(kindCoin, core.V(x, y), coinRadius)
	c.Vel = core.V(-speed, 0)
	c.Cull = true
	c.Tag = s.cfg.Obstacles.CoinValue
	w.Spawn(c)
}
