package tui

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/log"

	"github.com/vovakirdan/minigames/internal/config"
	"github.com/vovakirdan/minigames/internal/core"
	"github.com/vovakirdan/minigames/internal/registry"
	"github.com/vovakirdan/minigames/internal/session"
)

// screenshotDir is where ctrl+s writes plain-text captures.
const screenshotDir = "~/.arcade/screenshots"

// Model is the Bubble Tea model for running one arcade game.
// The session runner owns the game; the model only feeds it key presses
// and draws it.
type Model struct {
	runner     *session.Runner
	screen     *core.Screen
	keyMapper  *KeyMapper
	logger     *log.Logger
	tickRate   int
	inputFrame core.InputFrame
	quitting   bool
	backToMenu bool
}

// NewModel creates a new Bubble Tea model for the given game.
func NewModel(game registry.Game, svc Services, cfg core.RuntimeConfig) Model {
	runner := svc.NewRunner(game, cfg)
	logger := svc.Logger
	if logger == nil {
		logger = log.Default()
	}

	return Model{
		runner:     runner,
		screen:     core.NewScreen(cfg.ScreenW, cfg.ScreenH),
		keyMapper:  NewKeyMapper(),
		logger:     logger,
		tickRate:   runner.Config().TickRate,
		inputFrame: core.NewInputFrame(),
	}
}

// Init starts the tick loop. The runner has already reset the game to Idle.
func (m Model) Init() tea.Cmd {
	return tickCmd(m.tickRate)
}

// Update handles messages and updates the model state.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)

	case tea.WindowSizeMsg:
		return m.handleResize(msg)

	case TickMsg:
		return m.handleTick()
	}

	return m, nil
}

// handleKey processes keyboard input.
func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if msg.String() == "ctrl+s" {
		if path, err := m.saveScreenshot(); err != nil {
			m.logger.Warn("screenshot failed", "err", err)
		} else {
			m.logger.Info("screenshot saved", "path", path)
		}
		return m, nil
	}

	if m.keyMapper.MapKeyToFrame(msg, &m.inputFrame) {
		m.runner.Abandon()
		m.quitting = true
		return m, tea.Quit
	}

	// Back leaves the game unless a round is in progress
	if m.inputFrame.Has(core.ActionBack) {
		state := m.runner.State()
		if !state.Playing() || state.Paused {
			m.runner.Abandon()
			m.backToMenu = true
			return m, tea.Quit
		}
	}

	return m, nil
}

// handleResize processes window resize events.
// Games draw through a viewport, so the session keeps running at any size.
func (m Model) handleResize(msg tea.WindowSizeMsg) (tea.Model, tea.Cmd) {
	m.screen.Resize(msg.Width, msg.Height)
	return m, nil
}

// handleTick advances the session by one simulation step.
func (m Model) handleTick() (tea.Model, tea.Cmd) {
	m.runner.Tick(m.inputFrame)
	m.inputFrame.Clear()
	return m, tickCmd(m.tickRate)
}

// saveScreenshot writes the current screen to a timestamped text file.
func (m *Model) saveScreenshot() (string, error) {
	m.runner.Render(m.screen)

	dir, err := config.ExpandHome(screenshotDir)
	if err != nil {
		return "", err
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", fmt.Errorf("tui: cannot create screenshot directory: %w", err)
	}

	timestamp := time.Now().Format("20060102_150405")
	path := filepath.Join(dir, fmt.Sprintf("%s_%s.txt", m.runner.Game().ID(), timestamp))
	if err := os.WriteFile(path, []byte(m.screen.String()), 0o600); err != nil {
		return "", fmt.Errorf("tui: cannot write screenshot: %w", err)
	}
	return path, nil
}

// View renders the current state to a string for display.
func (m Model) View() string {
	if m.quitting || m.backToMenu {
		return ""
	}

	m.runner.Render(m.screen)
	drawBest(m.screen, m.runner)
	return RenderScreen(m.screen)
}

// drawBest writes the best score into the bottom row of the screen.
func drawBest(dst *core.Screen, r *session.Runner) {
	if dst.Height() < 2 {
		return
	}
	text := fmt.Sprintf(" Best: %d ", r.Best())
	c := core.ColorGray
	if r.NewBest() {
		text = fmt.Sprintf(" NEW BEST: %d ", r.Best())
		c = core.ColorBrightYellow
	}
	dst.DrawTextColor(dst.Width()-len(text)-1, dst.Height()-1, text, c)
}

// Runner returns the session runner driving the game.
func (m Model) Runner() *session.Runner {
	return m.runner
}

// IsQuitting returns true if user requested to quit entirely.
func (m Model) IsQuitting() bool {
	return m.quitting
}

// BackToMenu returns true if user requested to go back to menu.
func (m Model) BackToMenu() bool {
	return m.backToMenu
}

// Run starts the Bubble Tea program for a single game.
func Run(game registry.Game, svc Services, cfg core.RuntimeConfig) error {
	model := NewModel(game, svc, cfg)

	p := tea.NewProgram(
		model,
		tea.WithAltScreen(), // Use alternate screen buffer
	)

	_, err := p.Run()
	return err
}
