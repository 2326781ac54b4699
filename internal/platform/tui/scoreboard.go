package tui

import (
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/table"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/vovakirdan/minigames/internal/analytics"
	"github.com/vovakirdan/minigames/internal/registry"
	"github.com/vovakirdan/minigames/internal/storage"
)

const (
	topRunsShown   = 10
	sessionsShown  = 12
	splitMinWidth  = 90 // Overview and detail side by side from this width
	detailMinLines = 6
)

// detailView selects what the right-hand pane lists for the chosen game.
type detailView int

const (
	detailRuns detailView = iota
	detailSessions
)

func (v detailView) String() string {
	if v == detailSessions {
		return "Recent sessions"
	}
	return "Top runs"
}

type scoreboardKeys struct {
	Up     key.Binding
	Down   key.Binding
	Toggle key.Binding
	Back   key.Binding
	Quit   key.Binding
}

func (k scoreboardKeys) ShortHelp() []key.Binding {
	return []key.Binding{k.Up, k.Down, k.Toggle, k.Back, k.Quit}
}

func (k scoreboardKeys) FullHelp() [][]key.Binding {
	return [][]key.Binding{k.ShortHelp()}
}

func newScoreboardKeys() scoreboardKeys {
	return scoreboardKeys{
		Up:     key.NewBinding(key.WithKeys("up", "k"), key.WithHelp("up/k", "prev game")),
		Down:   key.NewBinding(key.WithKeys("down", "j"), key.WithHelp("down/j", "next game")),
		Toggle: key.NewBinding(key.WithKeys("tab"), key.WithHelp("tab", "runs/sessions")),
		Back:   key.NewBinding(key.WithKeys("esc", "b"), key.WithHelp("esc/b", "back")),
		Quit:   key.NewBinding(key.WithKeys("q", "ctrl+c"), key.WithHelp("q", "quit")),
	}
}

// gameRecord is one overview row.
type gameRecord struct {
	ID     string
	Title  string
	Best   int
	Played int
	Avg    float64
	Last   time.Time
}

var (
	boardTitleStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("229"))
	paneStyle       = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("240")).
			Padding(0, 1)
	paneHeaderStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("111"))
	dimStyle        = lipgloss.NewStyle().Foreground(lipgloss.Color("241"))
	endStyle        = lipgloss.NewStyle().Foreground(lipgloss.Color("114"))
)

// ScoreboardModel shows every game's best score and play counts, with the
// top runs or the analytics sessions of the highlighted game.
// Without a store only the best scores are shown.
type ScoreboardModel struct {
	store     *storage.Store
	records   []gameRecord
	runs      []storage.ScoreEntry
	sessions  []storage.SessionEvent
	detail    detailView
	table     table.Model
	help      help.Model
	keys      scoreboardKeys
	width     int
	height    int
	quitting  bool
	goingBack bool
}

// NewScoreboardModel loads the records of every registered game.
func NewScoreboardModel(svc Services, width, height int) ScoreboardModel {
	m := ScoreboardModel{
		store:  svc.Store,
		help:   help.New(),
		keys:   newScoreboardKeys(),
		width:  width,
		height: height,
	}
	m.records = loadRecords(svc.Store, svc.Best)
	m.table = m.newTable()
	m.loadDetail()
	return m
}

// loadRecords merges the registry with stored stats. The best score comes
// from best when given, since it survives a cleared run history.
func loadRecords(store *storage.Store, best storage.BestScores) []gameRecord {
	var stats map[string]*storage.GameStats
	if store != nil {
		stats, _ = store.GetAllGamesStats()
	}

	games := registry.List()
	records := make([]gameRecord, 0, len(games))
	for _, g := range games {
		r := gameRecord{ID: g.ID, Title: g.Title}
		if s, ok := stats[g.ID]; ok {
			r.Best = s.BestScore
			r.Played = s.GamesCount
			r.Avg = s.AvgScore
			r.Last = s.LastPlayed
		}
		if best != nil {
			r.Best = max(r.Best, best.Best(g.ID))
		}
		records = append(records, r)
	}
	return records
}

func (m ScoreboardModel) newTable() table.Model {
	titleW := 16
	for _, r := range m.records {
		titleW = max(titleW, len(r.Title)+1)
	}
	columns := []table.Column{
		{Title: "Game", Width: titleW},
		{Title: "Best", Width: 8},
		{Title: "Played", Width: 7},
		{Title: "Avg", Width: 7},
	}

	rows := make([]table.Row, len(m.records))
	for i, r := range m.records {
		avg := "-"
		if r.Played > 0 {
			avg = fmt.Sprintf("%.0f", r.Avg)
		}
		rows[i] = table.Row{r.Title, fmt.Sprintf("%d", r.Best), fmt.Sprintf("%d", r.Played), avg}
	}

	t := table.New(
		table.WithColumns(columns),
		table.WithRows(rows),
		table.WithFocused(true),
		table.WithHeight(max(3, min(len(rows)+1, m.height-8))),
	)
	s := table.DefaultStyles()
	s.Header = s.Header.
		BorderStyle(lipgloss.NormalBorder()).
		BorderForeground(lipgloss.Color("240")).
		BorderBottom(true).
		Bold(true)
	s.Selected = s.Selected.
		Foreground(lipgloss.Color("229")).
		Background(lipgloss.Color("57")).
		Bold(false)
	t.SetStyles(s)
	return t
}

// selected returns the highlighted game record.
func (m ScoreboardModel) selected() (gameRecord, bool) {
	i := m.table.Cursor()
	if i < 0 || i >= len(m.records) {
		return gameRecord{}, false
	}
	return m.records[i], true
}

// loadDetail reads the top runs and sessions of the highlighted game.
func (m *ScoreboardModel) loadDetail() {
	m.runs, m.sessions = nil, nil
	r, ok := m.selected()
	if !ok || m.store == nil {
		return
	}
	if runs, err := m.store.TopScores(r.ID, topRunsShown); err == nil {
		m.runs = runs
	}
	if sessions, err := m.store.RecentSessions(r.ID, sessionsShown); err == nil {
		m.sessions = sessions
	}
}

// Init initializes the scoreboard model.
func (m ScoreboardModel) Init() tea.Cmd {
	return nil
}

// Update handles messages for the scoreboard.
func (m ScoreboardModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch {
		case key.Matches(msg, m.keys.Quit):
			m.quitting = true
			return m, tea.Quit
		case key.Matches(msg, m.keys.Back):
			m.goingBack = true
			return m, tea.Quit
		case key.Matches(msg, m.keys.Toggle):
			m.detail = 1 - m.detail
			return m, nil
		case key.Matches(msg, m.keys.Up), key.Matches(msg, m.keys.Down):
			before := m.table.Cursor()
			var cmd tea.Cmd
			m.table, cmd = m.table.Update(msg)
			if m.table.Cursor() != before {
				m.loadDetail()
			}
			return m, cmd
		}

	case tea.WindowSizeMsg:
		cursor := m.table.Cursor()
		m.width, m.height = msg.Width, msg.Height
		m.table = m.newTable()
		m.table.SetCursor(cursor)
		m.help.Width = msg.Width
	}
	return m, nil
}

// View renders the scoreboard.
func (m ScoreboardModel) View() string {
	if m.quitting || m.goingBack {
		return ""
	}

	overview := paneStyle.Render(m.table.View())
	detail := paneStyle.Render(m.renderDetail())

	var body string
	if m.width >= splitMinWidth {
		body = lipgloss.JoinHorizontal(lipgloss.Top, overview, " ", detail)
	} else {
		body = lipgloss.JoinVertical(lipgloss.Left, overview, detail)
	}

	return lipgloss.JoinVertical(lipgloss.Left,
		boardTitleStyle.Render(centerText("R E C O R D S", m.width)),
		"",
		body,
		dimStyle.Render(m.help.View(m.keys)),
	)
}

func (m ScoreboardModel) renderDetail() string {
	r, ok := m.selected()
	if !ok {
		return dimStyle.Render("No games registered.")
	}

	var b strings.Builder
	b.WriteString(paneHeaderStyle.Render(fmt.Sprintf("%s - %s", r.Title, m.detail)))
	b.WriteString("\n")
	if r.Played > 0 {
		b.WriteString(dimStyle.Render("last played " + r.Last.Format("Jan 02 15:04")))
	} else {
		b.WriteString(dimStyle.Render("not played yet"))
	}
	b.WriteString("\n\n")

	var lines []string
	if m.detail == detailSessions {
		lines = sessionLines(m.sessions)
	} else {
		lines = runLines(m.runs)
	}
	if len(lines) == 0 {
		lines = []string{dimStyle.Italic(true).Render("nothing recorded")}
	}
	for len(lines) < detailMinLines {
		lines = append(lines, "")
	}
	b.WriteString(strings.Join(lines, "\n"))
	return b.String()
}

func runLines(runs []storage.ScoreEntry) []string {
	lines := make([]string, len(runs))
	for i, run := range runs {
		lines[i] = fmt.Sprintf("%3d. %8d  %s", i+1, run.Score, dimStyle.Render(run.CreatedAt.Format("Jan 02 15:04")))
	}
	return lines
}

func sessionLines(events []storage.SessionEvent) []string {
	lines := make([]string, len(events))
	for i, e := range events {
		when := dimStyle.Render(e.CreatedAt.Format("Jan 02 15:04"))
		if e.Event == analytics.EventGameEnd {
			lines[i] = fmt.Sprintf("%s  %s  %6d  %s", when, endStyle.Render("end  "), e.Score, e.Duration.Round(time.Second))
		} else {
			lines[i] = fmt.Sprintf("%s  %s", when, "start")
		}
	}
	return lines
}

// IsGoingBack returns true if user wants to go back to menu.
func (m ScoreboardModel) IsGoingBack() bool {
	return m.goingBack
}

// IsQuitting returns true if user wants to quit entirely.
func (m ScoreboardModel) IsQuitting() bool {
	return m.quitting
}
