package tui

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/table"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/vovakirdan/blockfall/internal/core"
	"github.com/vovakirdan/blockfall/internal/registry"
	"github.com/vovakirdan/blockfall/internal/storage"
)

const (
	minWidthForSidebar = 80
	sidebarWidth       = 22
	maxReplays         = 100
)

var (
	replaysTitleStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("229"))
	frameStyle        = lipgloss.NewStyle().Border(lipgloss.RoundedBorder()).BorderForeground(lipgloss.Color("240")).Padding(0, 1)
	filterStyle       = lipgloss.NewStyle().Foreground(lipgloss.Color("241"))
	filterActiveStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("229"))
	filterTabStyle    = filterActiveStyle.Background(lipgloss.Color("57")).Padding(0, 1)
	emptyStyle        = lipgloss.NewStyle().Foreground(lipgloss.Color("241")).Italic(true).Padding(2, 4)
	passStyle         = lipgloss.NewStyle().Foreground(lipgloss.Color("10"))
	failStyle         = lipgloss.NewStyle().Foreground(lipgloss.Color("9"))
)

// Verifier re-runs a recording and reports whether it reproduces its outcome.
type Verifier func(core.Recording) error

// ReplaysKeyMap holds the replay browser bindings.
type ReplaysKeyMap struct {
	Up     key.Binding
	Down   key.Binding
	Next   key.Binding
	Prev   key.Binding
	Verify key.Binding
	Back   key.Binding
	Quit   key.Binding
}

// ShortHelp implements help.KeyMap.
func (k ReplaysKeyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Up, k.Down, k.Next, k.Verify, k.Back}
}

// FullHelp implements help.KeyMap.
func (k ReplaysKeyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Up, k.Down},
		{k.Next, k.Prev},
		{k.Verify, k.Back, k.Quit},
	}
}

// DefaultReplaysKeyMap returns the replay browser bindings.
func DefaultReplaysKeyMap() ReplaysKeyMap {
	return ReplaysKeyMap{
		Up:     key.NewBinding(key.WithKeys("up", "k"), key.WithHelp("↑/k", "up")),
		Down:   key.NewBinding(key.WithKeys("down", "j"), key.WithHelp("↓/j", "down")),
		Next:   key.NewBinding(key.WithKeys("tab", "right", "l"), key.WithHelp("tab", "next filter")),
		Prev:   key.NewBinding(key.WithKeys("shift+tab", "left", "h"), key.WithHelp("S-tab", "prev filter")),
		Verify: key.NewBinding(key.WithKeys("enter", "v"), key.WithHelp("enter", "verify")),
		Back:   key.NewBinding(key.WithKeys("esc", "b"), key.WithHelp("esc", "back")),
		Quit:   key.NewBinding(key.WithKeys("q", "ctrl+c"), key.WithHelp("q", "quit")),
	}
}

// ReplaysModel browses the replay journal and re-runs entries on demand.
type ReplaysModel struct {
	games       []registry.GameInfo // games[0] is the "All games" filter
	gameCursor  int
	store       *storage.Store
	verify      Verifier
	replays     []storage.ReplaySummary
	status      string
	passed      bool
	table       table.Model
	help        help.Model
	keys        ReplaysKeyMap
	width       int
	height      int
	quitting    bool
	goingBack   bool
	showSidebar bool
}

// NewReplaysModel opens the browser on every game. A nil store shows an
// empty list; a nil verify disables the verify key.
func NewReplaysModel(store *storage.Store, verify Verifier, width, height int) ReplaysModel {
	m := ReplaysModel{
		games:  append([]registry.GameInfo{{Title: "All games"}}, registry.List()...),
		store:  store,
		verify: verify,
		keys:   DefaultReplaysKeyMap(),
		help:   help.New(),
	}
	m.resize(width, height)
	m.reload()
	return m
}

func (m *ReplaysModel) resize(width, height int) {
	m.width, m.height = width, height
	m.help.Width = width
	m.showSidebar = width >= minWidthForSidebar

	columns := []table.Column{
		{Title: "ID", Width: 8},
		{Title: "Game", Width: 10},
		{Title: "Score", Width: 7},
		{Title: "Lines", Width: 5},
		{Title: "Time", Width: 7},
		{Title: "Date", Width: 12},
	}
	avail := width - 4
	if m.showSidebar {
		avail -= sidebarWidth + 3
	}
	for _, c := range columns {
		avail -= c.Width + 2
	}
	columns[1].Width += max(min(avail, 10), 0)

	styles := table.DefaultStyles()
	styles.Header = styles.Header.
		BorderStyle(lipgloss.NormalBorder()).
		BorderForeground(lipgloss.Color("240")).
		BorderBottom(true).
		Bold(true)
	styles.Selected = styles.Selected.
		Foreground(lipgloss.Color("229")).
		Background(lipgloss.Color("57")).
		Bold(false)

	// Header, detail, status and help take the remaining rows.
	m.table = table.New(
		table.WithColumns(columns),
		table.WithFocused(true),
		table.WithHeight(max(height-10, 3)),
		table.WithStyles(styles),
	)
	m.fillTable()
}

// reload fetches the newest replays for the current filter.
func (m *ReplaysModel) reload() {
	m.replays = nil
	if m.store != nil {
		replays, err := m.store.RecentReplays(m.games[m.gameCursor].ID, maxReplays)
		if err != nil {
			m.status, m.passed = fmt.Sprintf("cannot load replays: %v", err), false
		}
		m.replays = replays
	}
	m.fillTable()
}

func (m *ReplaysModel) fillTable() {
	rows := make([]table.Row, 0, len(m.replays))
	for _, r := range m.replays {
		rows = append(rows, table.Row{
			shortID(r.ID),
			r.GameID,
			strconv.Itoa(r.Score),
			strconv.Itoa(r.Lines),
			formatDuration(r.Duration()),
			r.CreatedAt.Format("Jan 02 15:04"),
		})
	}
	m.table.SetRows(rows)
	m.table.GotoTop()
}

// cycleFilter moves the game filter by delta, wrapping around.
func (m *ReplaysModel) cycleFilter(delta int) {
	n := len(m.games)
	m.gameCursor = ((m.gameCursor+delta)%n + n) % n
	m.status = ""
	m.reload()
}

func (m ReplaysModel) selected() (storage.ReplaySummary, bool) {
	i := m.table.Cursor()
	if i < 0 || i >= len(m.replays) {
		return storage.ReplaySummary{}, false
	}
	return m.replays[i], true
}

// verifySelected re-runs the highlighted replay and records the verdict.
func (m *ReplaysModel) verifySelected() {
	sum, ok := m.selected()
	if !ok || m.verify == nil || m.store == nil {
		return
	}

	entry, err := m.store.Replay(sum.ID)
	if err != nil {
		m.status, m.passed = fmt.Sprintf("%s: %v", shortID(sum.ID), err), false
		return
	}
	if err := m.verify(entry.Recording); err != nil {
		m.status, m.passed = fmt.Sprintf("✗ %s: %v", shortID(sum.ID), err), false
		return
	}
	m.status = fmt.Sprintf("✓ %s reproduces score %d in %d ticks", shortID(sum.ID), entry.Score, entry.Ticks)
	m.passed = true
}

// Init implements tea.Model.
func (m ReplaysModel) Init() tea.Cmd {
	return nil
}

// Update implements tea.Model.
func (m ReplaysModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.resize(msg.Width, msg.Height)
		return m, nil

	case tea.KeyMsg:
		switch {
		case key.Matches(msg, m.keys.Quit):
			m.quitting = true
			return m, tea.Quit
		case key.Matches(msg, m.keys.Back):
			m.goingBack = true
			return m, tea.Quit
		case key.Matches(msg, m.keys.Verify):
			m.verifySelected()
			return m, nil
		case key.Matches(msg, m.keys.Next):
			m.cycleFilter(1)
			return m, nil
		case key.Matches(msg, m.keys.Prev):
			m.cycleFilter(-1)
			return m, nil
		}
	}

	var cmd tea.Cmd
	m.table, cmd = m.table.Update(msg)
	return m, cmd
}

// View implements tea.Model.
func (m ReplaysModel) View() string {
	if m.quitting || m.goingBack {
		return ""
	}

	title := replaysTitleStyle.Render("REPLAYS - " + m.games[m.gameCursor].Title)
	parts := []string{m.center(title), ""}

	body := lipgloss.JoinVertical(lipgloss.Left, frameStyle.Render(m.tableView()), m.detail())
	if m.showSidebar {
		parts = append(parts, lipgloss.JoinHorizontal(lipgloss.Top, m.sidebar(), "  ", body))
	} else {
		parts = append(parts, m.center(m.tabs()), "", m.center(body))
	}

	if m.status != "" {
		style := failStyle
		if m.passed {
			style = passStyle
		}
		parts = append(parts, style.Render(m.status))
	}
	parts = append(parts, helpStyle.Render(m.help.View(m.keys)))
	return strings.Join(parts, "\n")
}

func (m ReplaysModel) center(s string) string {
	if lipgloss.Width(s) >= m.width {
		return s
	}
	return lipgloss.PlaceHorizontal(m.width, lipgloss.Center, s)
}

func (m ReplaysModel) tableView() string {
	if len(m.replays) == 0 {
		return emptyStyle.Render("No replays recorded yet.\nFinish a game to record one!")
	}
	return m.table.View()
}

// detail describes the highlighted replay beyond what the table shows.
func (m ReplaysModel) detail() string {
	r, ok := m.selected()
	if !ok {
		return ""
	}
	state := "finished"
	if !r.Finished {
		state = "abandoned"
	}
	return filterStyle.Render(fmt.Sprintf(" seed %d • %d pieces • %d ticks at %d/s • %s",
		r.Seed, r.Pieces, r.Ticks, r.TickRate, state))
}

func (m ReplaysModel) sidebar() string {
	lines := []string{"Games", strings.Repeat("─", sidebarWidth-4)}
	for i, g := range m.games {
		name := truncate(g.Title, sidebarWidth-6)
		if i == m.gameCursor {
			lines = append(lines, filterActiveStyle.Render("> "+name))
		} else {
			lines = append(lines, "  "+name)
		}
	}
	return frameStyle.Width(sidebarWidth).Render(strings.Join(lines, "\n"))
}

// tabs is the narrow-screen filter row; it collapses to "< current >" when
// the tabs do not fit.
func (m ReplaysModel) tabs() string {
	tabs := make([]string, len(m.games))
	for i, g := range m.games {
		name := truncate(g.Title, 10)
		if i == m.gameCursor {
			tabs[i] = filterTabStyle.Render(name)
		} else {
			tabs[i] = filterStyle.Render(" " + name + " ")
		}
	}
	row := lipgloss.JoinHorizontal(lipgloss.Top, tabs...)
	if lipgloss.Width(row) > m.width-4 {
		return fmt.Sprintf("< %s >", m.games[m.gameCursor].Title)
	}
	return row
}

// IsGoingBack reports whether the user asked to return to the menu.
func (m ReplaysModel) IsGoingBack() bool {
	return m.goingBack
}

// IsQuitting reports whether the user quit.
func (m ReplaysModel) IsQuitting() bool {
	return m.quitting
}

// RunReplays shows the browser on the alternate screen. goBack is true when
// the user left with Back rather than Quit.
func RunReplays(store *storage.Store, verify Verifier, width, height int) (goBack bool, err error) {
	final, err := tea.NewProgram(NewReplaysModel(store, verify, width, height), tea.WithAltScreen()).Run()
	if err != nil {
		return false, err
	}
	m, ok := final.(ReplaysModel)
	return ok && m.IsGoingBack(), nil
}

func truncate(s string, n int) string {
	r := []rune(s)
	if len(r) <= n {
		return s
	}
	return string(r[:n-1]) + "."
}

func shortID(id string) string {
	if len(id) > 8 {
		return id[:8]
	}
	return id
}

func formatDuration(d time.Duration) string {
	d = d.Round(time.Second)
	return fmt.Sprintf("%d:%02d", int(d.Minutes()), int(d.Seconds())%60)
}
