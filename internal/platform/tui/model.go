package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/vovakirdan/tui-loderunner/internal/core"
	"github.com/vovakirdan/tui-loderunner/internal/games/loderunner/engine"
	"github.com/vovakirdan/tui-loderunner/internal/multiplayer"
	"github.com/vovakirdan/tui-loderunner/internal/scoring"
)

const (
	hudHeight    = 2
	messageLines = 1
	sidebarWidth = 24
	maxMessages  = 4
)

// GameModel plays one hero in a room. A local game drives the room's ticks
// from the Bubble Tea loop; an online game only listens while the server's
// room loop ticks.
type GameModel struct {
	room     *multiplayer.Room
	session  *multiplayer.ChannelSession
	player   engine.PlayerID
	drive    bool
	tickRate int

	screen    *core.Screen
	width     int
	height    int
	keys      GameKeyMap
	help      help.Model
	snapshot  engine.Snapshot
	standings []scoring.Tally
	messages  []string
	closed    string

	left       bool
	quitting   bool
	backToMenu bool
}

// NewGameModel joins the room as name. With drive set, every TickMsg steps
// the room. Closing done (may be nil) ends the session; the room drops it on
// its next tick.
func NewGameModel(room *multiplayer.Room, name string, cfg core.RuntimeConfig, drive bool, done <-chan struct{}) (GameModel, error) {
	sess := multiplayer.NewChannelSession(multiplayer.NewSessionID(), 128)
	id, err := room.Join(sess, name)
	if err != nil {
		sess.Close()
		return GameModel{}, err
	}
	if done != nil {
		go func() {
			select {
			case <-done:
				sess.Close()
			case <-sess.Done():
			}
		}()
	}

	h := help.New()
	h.ShowAll = false

	return GameModel{
		room:     room,
		session:  sess,
		player:   id,
		drive:    drive,
		tickRate: cfg.TickRate,
		screen:   core.NewScreen(cfg.ScreenW, cfg.ScreenH),
		width:    cfg.ScreenW,
		height:   cfg.ScreenH,
		keys:     DefaultGameKeyMap(),
		help:     h,
		snapshot: room.Snapshot(),
	}, nil
}

// Init starts listening to the room and, for local games, the tick loop.
func (m GameModel) Init() tea.Cmd {
	if m.drive {
		return tea.Batch(m.waitForEvent(), tickCmd(m.tickRate))
	}
	return m.waitForEvent()
}

// waitForEvent returns a command that waits for the next room event.
func (m GameModel) waitForEvent() tea.Cmd {
	sess := m.session
	return func() tea.Msg {
		select {
		case evt := <-sess.Events():
			return evt
		case <-sess.Done():
			return nil
		}
	}
}

// Update handles messages.
func (m GameModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.help.Width = msg.Width
		return m, nil

	case TickMsg:
		if !m.drive || m.left {
			return m, nil
		}
		m.room.Step()
		return m, tickCmd(m.tickRate)

	case multiplayer.JoinedEvent:
		m.player = msg.Player
		m.pushMessage(fmt.Sprintf("Joined %s as %s", msg.LevelName, msg.Player))
		return m, m.waitForEvent()

	case multiplayer.SnapshotEvent:
		m.snapshot = msg.Snapshot
		m.standings = msg.Standings
		return m, m.waitForEvent()

	case multiplayer.GameEvent:
		m.pushMessage(eventMessage(msg.Event))
		return m, m.waitForEvent()

	case multiplayer.RespawnEvent:
		m.pushMessage(fmt.Sprintf("Back in the game at %s", msg.At))
		return m, m.waitForEvent()

	case multiplayer.RoomClosedEvent:
		m.closed = msg.Reason
		m.left = true
		m.session.Close()
		return m, nil
	}

	return m, nil
}

func eventMessage(e engine.Event) string {
	switch e {
	case engine.EventKillHero:
		return "You were buried in a brick!"
	case engine.EventGetGold:
		return "Picked up gold"
	case engine.EventKillEnemy:
		return "Your hole trapped a rival!"
	}
	return e.String()
}

func (m *GameModel) pushMessage(s string) {
	m.messages = append(m.messages, s)
	if len(m.messages) > maxMessages {
		m.messages = m.messages[len(m.messages)-maxMessages:]
	}
}

// handleKey processes keyboard input.
func (m GameModel) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Quit):
		m.leave()
		m.quitting = true
		return m, tea.Quit
	case key.Matches(msg, m.keys.Back):
		m.leave()
		m.backToMenu = true
		return m, nil
	case key.Matches(msg, m.keys.Help):
		m.help.ShowAll = !m.help.ShowAll
		return m, nil
	}

	if cmd, ok := m.keys.Command(msg); ok && !m.left {
		m.room.SendInput(m.session.ID(), cmd)
	}
	return m, nil
}

// leave takes the hero off the board. The room saves its result.
func (m *GameModel) leave() {
	if m.left {
		return
	}
	m.left = true
	m.room.Leave(m.session.ID())
	m.session.Close()
}

// Tally returns the player's current score line.
func (m GameModel) Tally() scoring.Tally {
	for _, t := range m.standings {
		if t.Player == m.player {
			return t
		}
	}
	return scoring.Tally{Player: m.player}
}

// Player returns the id of the hero this model controls.
func (m GameModel) Player() engine.PlayerID {
	return m.player
}

// View renders the game.
func (m GameModel) View() string {
	if m.quitting {
		return ""
	}

	helpView := m.help.View(m.keys)
	screenH := m.height - lipgloss.Height(helpView)
	m.screen.Resize(m.width, screenH)
	m.screen.Clear()

	t := m.Tally()
	title := fmt.Sprintf(" LODE RUNNER  %s  tick %d", m.room.Level().Name, m.snapshot.Tick)
	m.screen.DrawTextColored(0, 0, title, core.ColorBrightYellow)
	// The title always wins; stats shrink to the score, then disappear.
	titleW := len([]rune(title))
	stats := fmt.Sprintf("score %d  gold %d  kills %d  deaths %d ", t.Score, t.Gold, t.Kills, t.Deaths)
	if titleW+1+len([]rune(stats)) > m.width {
		stats = fmt.Sprintf("score %d ", t.Score)
	}
	if x := m.width - len([]rune(stats)); x > titleW {
		m.screen.DrawTextColored(x, 0, stats, core.ColorWhite)
	}
	m.screen.DrawHLine(0, 1, m.width, '─', core.ColorGray)

	boardW := m.width
	showSidebar := m.width >= m.snapshot.Size+sidebarWidth+2
	if showSidebar {
		boardW = m.width - sidebarWidth - 2
	}
	boardH := screenH - hudHeight - messageLines
	DrawBoard(m.screen, m.snapshot, m.player, core.NewRect(0, hudHeight, boardW, boardH))
	if m.closed != "" {
		m.screen.DrawTextCentered(hudHeight+boardH/2, " ROOM CLOSED ", core.ColorRed)
	}

	if showSidebar {
		m.drawStandings(boardW+2, hudHeight)
	}

	status := ""
	switch {
	case m.closed != "":
		status = fmt.Sprintf("Room closed: %s. Press esc.", m.closed)
	case m.heroDead():
		status = "You died. Respawning..."
	case len(m.messages) > 0:
		status = m.messages[len(m.messages)-1]
	}
	m.screen.DrawTextColored(0, screenH-1, status, core.ColorCyan)

	return RenderScreen(m.screen) + "\n" + helpView
}

func (m GameModel) drawStandings(x, y int) {
	m.screen.DrawTextColored(x, y, "PLAYERS", core.ColorBrightYellow)
	for i, t := range m.standings {
		line := fmt.Sprintf("%d. %-12s %5d", i+1, truncate(string(t.Player), 12), t.Score)
		c := core.ColorWhite
		if t.Player == m.player {
			c = core.ColorBrightCyan
		}
		m.screen.DrawTextColored(x, y+1+i, line, c)
	}
}

func (m GameModel) heroDead() bool {
	for _, it := range m.snapshot.Items {
		if it.Player == m.player {
			return it.Sprite == engine.SpriteDeadHero
		}
	}
	return false
}

// IsQuitting returns true if user requested to quit entirely.
func (m GameModel) IsQuitting() bool {
	return m.quitting
}

// BackToMenu returns true if user requested to go back to menu.
func (m GameModel) BackToMenu() bool {
	return m.backToMenu
}

func truncate(s string, n int) string {
	r := []rune(s)
	if len(r) <= n {
		return s
	}
	return string(r[:n-1]) + "…"
}

// centerText centers text within given width.
func centerText(text string, width int) string {
	n := len([]rune(text))
	if n >= width {
		return text
	}
	return strings.Repeat(" ", (width-n)/2) + text
}
