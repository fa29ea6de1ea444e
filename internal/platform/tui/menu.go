package tui

import (
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/vovakirdan/blockfall/internal/core"
	"github.com/vovakirdan/blockfall/internal/registry"
)

var (
	menuTitleStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("14"))
	menuItemStyle  = lipgloss.NewStyle().PaddingLeft(2)
	menuPickStyle  = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("11"))
	menuDescStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("245")).PaddingLeft(4)
)

// MenuItem is one variant in the picker.
type MenuItem struct {
	GameID      string
	Title       string
	Description string
}

// MenuModel picks a variant or opens the replay browser.
type MenuModel struct {
	items       []MenuItem
	cursor      int
	config      core.RuntimeConfig
	keyMapper   *KeyMapper
	quitting    bool
	selected    *MenuItem
	openReplays bool
}

// NewMenuModel lists every registered variant.
func NewMenuModel(cfg core.RuntimeConfig) MenuModel {
	var items []MenuItem
	for _, g := range registry.List() {
		items = append(items, MenuItem{GameID: g.ID, Title: g.Title, Description: g.Description})
	}
	return MenuModel{items: items, config: cfg, keyMapper: NewKeyMapper()}
}

// Init implements tea.Model.
func (m MenuModel) Init() tea.Cmd {
	return nil
}

// Update implements tea.Model.
func (m MenuModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.config.ScreenW = msg.Width
		m.config.ScreenH = msg.Height

	case tea.KeyMsg:
		switch m.keyMapper.MapKeyToMenuAction(msg) {
		case MenuActionQuit:
			m.quitting = true
			return m, tea.Quit
		case MenuActionUp:
			m.cursor = max(m.cursor-1, 0)
		case MenuActionDown:
			m.cursor = min(m.cursor+1, max(len(m.items)-1, 0))
		case MenuActionSelect:
			if len(m.items) == 0 {
				break
			}
			picked := m.items[m.cursor]
			m.selected = &picked
			return m, tea.Quit
		case MenuActionReplays:
			m.openReplays = true
			return m, tea.Quit
		}
	}
	return m, nil
}

// View implements tea.Model.
func (m MenuModel) View() string {
	if m.quitting {
		return ""
	}

	lines := []string{
		menuTitleStyle.Render("B L O C K F A L L"),
		"",
	}
	for i, item := range m.items {
		if i == m.cursor {
			lines = append(lines, menuPickStyle.Render("> "+item.Title))
		} else {
			lines = append(lines, menuItemStyle.Render(item.Title))
		}
		if item.Description != "" {
			lines = append(lines, menuDescStyle.Render(item.Description))
		}
	}
	lines = append(lines, "", helpStyle.Render("↑/↓ move • enter play • Tab: Replays • q quit"))

	block := lipgloss.JoinVertical(lipgloss.Left, lines...)
	if m.config.ScreenW <= 0 {
		return "\n" + block + "\n"
	}
	return "\n" + lipgloss.PlaceHorizontal(m.config.ScreenW, lipgloss.Center, block) + "\n"
}

// Selected returns the picked variant, or nil.
func (m MenuModel) Selected() *MenuItem {
	return m.selected
}

// IsQuitting reports whether the user quit.
func (m MenuModel) IsQuitting() bool {
	return m.quitting
}

// WantsReplays reports whether the user asked for the replay browser.
func (m MenuModel) WantsReplays() bool {
	return m.openReplays
}

// Config returns the runtime config with the latest screen size.
func (m MenuModel) Config() core.RuntimeConfig {
	return m.config
}

// Result summarises how the menu was left.
func (m MenuModel) Result() MenuResult {
	res := MenuResult{Config: m.config}
	switch {
	case m.openReplays:
		res.WantsReplays = true
	case m.selected != nil:
		res.GameID = m.selected.GameID
	default:
		res.Quit = true
	}
	return res
}

// MenuResult is what RunMenu hands back to the caller.
type MenuResult struct {
	GameID       string
	Config       core.RuntimeConfig
	WantsReplays bool
	Quit         bool
}

// RunMenu shows the picker on the alternate screen until the user leaves it.
func RunMenu(cfg core.RuntimeConfig) (MenuResult, error) {
	final, err := tea.NewProgram(NewMenuModel(cfg), tea.WithAltScreen()).Run()
	if err != nil {
		return MenuResult{Config: cfg}, err
	}
	m, ok := final.(MenuModel)
	if !ok {
		return MenuResult{Config: cfg, Quit: true}, nil
	}
	return m.Result(), nil
}

