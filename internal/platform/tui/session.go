package tui

import (
	"fmt"
	"sync"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/log"

	"github.com/vovakirdan/tui-loderunner/internal/config"
	"github.com/vovakirdan/tui-loderunner/internal/core"
	"github.com/vovakirdan/tui-loderunner/internal/games/loderunner/levels"
	"github.com/vovakirdan/tui-loderunner/internal/multiplayer"
)

// RoomProvider hands out the room a player enters for a level.
// The multiplayer Manager is one; LocalRooms is another.
type RoomProvider interface {
	Room(levelID string) (*multiplayer.Room, error)
}

// LocalRooms creates a private room per game for offline play.
// Its rooms are ticked by the client, not by a room loop.
type LocalRooms struct {
	cfg    config.Config
	loader *levels.Loader
	saver  multiplayer.ResultSaver
	logger *log.Logger
	seed   int64 // 0 means seed from the clock

	mu    sync.Mutex
	rooms []*multiplayer.Room
}

// NewLocalRooms creates a provider of private rooms. saver may be nil.
func NewLocalRooms(cfg config.Config, loader *levels.Loader, saver multiplayer.ResultSaver, logger *log.Logger, seed int64) *LocalRooms {
	return &LocalRooms{cfg: cfg, loader: loader, saver: saver, logger: logger, seed: seed}
}

// Room builds a fresh room for the level.
func (l *LocalRooms) Room(levelID string) (*multiplayer.Room, error) {
	if levelID == "" {
		levelID = l.cfg.Simulation.Level
	}
	lvl, err := l.loader.LoadByID(levelID)
	if err != nil {
		return nil, err
	}

	seed := l.seed
	if seed == 0 {
		seed = time.Now().UnixNano()
	}
	r, err := multiplayer.NewRoom(multiplayer.RoomConfigFrom(l.cfg, lvl, seed), l.logger, l.saver)
	if err != nil {
		return nil, err
	}

	l.mu.Lock()
	l.rooms = append(l.rooms, r)
	l.mu.Unlock()
	return r, nil
}

// Flush waits for the results of every room created so far to be saved.
func (l *LocalRooms) Flush() {
	l.mu.Lock()
	rooms := append([]*multiplayer.Room(nil), l.rooms...)
	l.mu.Unlock()
	for _, r := range rooms {
		r.Flush()
	}
}

// SessionConfig describes one client session.
type SessionConfig struct {
	Name       string             // player name shown to others
	Levels     []levels.Level     // levels offered in the menu
	Rooms      RoomProvider       // where games are played
	Local      bool               // the client ticks its rooms itself
	Results    ResultSource       // optional, for the scoreboard
	Players    func(string) int   // optional, current players per level
	Runtime    core.RuntimeConfig // terminal size and tick rate
	StartLevel string             // skip the menu and enter this level

	// Done, when set, ends the player's stay in a room once closed,
	// for connections that drop without a quit key.
	Done <-chan struct{}
}

type sessionScreen int

const (
	screenMenu sessionScreen = iota
	screenGame
	screenScores
)

// SessionModel manages the full client flow: menu -> game -> menu, with the
// scoreboard one key away. It is the top-level model of both the local
// client and each SSH session.
type SessionModel struct {
	cfg      SessionConfig
	screen   sessionScreen
	menu     MenuModel
	game     *GameModel
	scores   ScoreboardModel
	flash    string // last error, shown under the menu
	width    int
	height   int
	quitting bool
}

// NewSessionModel creates a session. With StartLevel set the player enters
// that level immediately; a failure to do so is returned.
func NewSessionModel(cfg SessionConfig) (SessionModel, error) {
	m := SessionModel{
		cfg:    cfg,
		width:  cfg.Runtime.ScreenW,
		height: cfg.Runtime.ScreenH,
	}
	m.menu = m.newMenu()

	if cfg.StartLevel != "" {
		if err := m.enter(cfg.StartLevel); err != nil {
			return m, err
		}
	}
	return m, nil
}

func (m SessionModel) newMenu() MenuModel {
	return NewMenuModel(MenuItems(m.cfg.Levels, m.cfg.Players), m.width, m.height)
}

func (m SessionModel) runtime() core.RuntimeConfig {
	rc := m.cfg.Runtime
	rc.ScreenW = m.width
	rc.ScreenH = m.height
	return rc
}

// enter joins the level's room and switches to the game screen.
func (m *SessionModel) enter(levelID string) error {
	room, err := m.cfg.Rooms.Room(levelID)
	if err != nil {
		return err
	}
	gm, err := NewGameModel(room, m.cfg.Name, m.runtime(), m.cfg.Local, m.cfg.Done)
	if err != nil {
		return err
	}
	m.game = &gm
	m.screen = screenGame
	m.flash = ""
	return nil
}

// Init initializes the session.
func (m SessionModel) Init() tea.Cmd {
	if m.screen == screenGame && m.game != nil {
		return m.game.Init()
	}
	return m.menu.Init()
}

// Update handles messages for the session.
func (m SessionModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	if wsm, ok := msg.(tea.WindowSizeMsg); ok {
		m.width = wsm.Width
		m.height = wsm.Height
	}

	switch m.screen {
	case screenGame:
		return m.updateGame(msg)
	case screenScores:
		return m.updateScores(msg)
	default:
		return m.updateMenu(msg)
	}
}

func (m SessionModel) updateMenu(msg tea.Msg) (tea.Model, tea.Cmd) {
	newMenu, cmd := m.menu.Update(msg)
	if menuModel, ok := newMenu.(MenuModel); ok {
		m.menu = menuModel
	}

	switch {
	case m.menu.IsQuitting():
		m.quitting = true
		return m, tea.Quit

	case m.menu.WantsScoreboard():
		m.menu = m.newMenu()
		m.scores = NewScoreboardModel(m.cfg.Results, m.menu.items, m.width, m.height)
		m.screen = screenScores
		return m, m.scores.Init()

	case m.menu.Selected() != nil:
		levelID := m.menu.Selected().LevelID
		m.menu = m.newMenu()
		if err := m.enter(levelID); err != nil {
			m.flash = fmt.Sprintf("Cannot enter %s: %v", levelID, err)
			return m, nil
		}
		return m, m.game.Init()
	}

	return m, cmd
}

func (m SessionModel) updateGame(msg tea.Msg) (tea.Model, tea.Cmd) {
	newModel, cmd := m.game.Update(msg)
	if gameModel, ok := newModel.(GameModel); ok {
		m.game = &gameModel
	}

	if m.game.IsQuitting() {
		m.quitting = true
		return m, tea.Quit
	}

	if m.game.BackToMenu() {
		m.game = nil
		m.screen = screenMenu
		m.menu = m.newMenu()
		return m, m.menu.Init()
	}

	return m, cmd
}

func (m SessionModel) updateScores(msg tea.Msg) (tea.Model, tea.Cmd) {
	newModel, cmd := m.scores.Update(msg)
	if sb, ok := newModel.(ScoreboardModel); ok {
		m.scores = sb
	}

	if m.scores.IsQuitting() {
		m.quitting = true
		return m, tea.Quit
	}
	if m.scores.IsGoingBack() {
		m.screen = screenMenu
		m.menu = m.newMenu()
		return m, nil
	}
	return m, cmd
}

// View renders the current screen.
func (m SessionModel) View() string {
	if m.quitting {
		return ""
	}

	switch m.screen {
	case screenGame:
		return m.game.View()
	case screenScores:
		return m.scores.View()
	}

	v := m.menu.View()
	if m.flash != "" {
		v += "\n" + menuDimStyle.Render(centerText(m.flash, m.width)) + "\n"
	}
	return v
}

// Leave takes the player out of any game in progress.
// Used when the program ends without the model seeing a quit key.
func (m SessionModel) Leave() {
	if m.game != nil {
		m.game.leave()
	}
}

// Run starts a Bubble Tea program for a session and blocks until it ends.
func Run(cfg SessionConfig) error {
	model, err := NewSessionModel(cfg)
	if err != nil {
		return err
	}

	p := tea.NewProgram(
		model,
		tea.WithAltScreen(),
	)

	final, err := p.Run()
	if sm, ok := final.(SessionModel); ok {
		sm.Leave()
	}
	return err
}
