package multiplayer

import (
	"context"
	"fmt"
	"sort"
	"sync"
	"time"

	"github.com/charmbracelet/log"

	"github.com/vovakirdan/tui-loderunner/internal/config"
	"github.com/vovakirdan/tui-loderunner/internal/games/loderunner/ai"
	"github.com/vovakirdan/tui-loderunner/internal/games/loderunner/engine"
	"github.com/vovakirdan/tui-loderunner/internal/games/loderunner/levels"
	"github.com/vovakirdan/tui-loderunner/internal/logging"
	"github.com/vovakirdan/tui-loderunner/internal/scoring"
)

// RoomConfig holds everything needed to build a room.
type RoomConfig struct {
	Level          levels.Level
	TickRate       int
	RecoveryTicks  int
	EnemyBrain     string
	EnemyMoveEvery int
	RespawnDelay   int // ticks between death and respawn
	MaxPlayers     int
	Seed           int64
	Rules          scoring.Rules
}

// RoomConfigFrom merges the global config with a level. Level settings win.
func RoomConfigFrom(cfg config.Config, lvl levels.Level, seed int64) RoomConfig {
	rc := RoomConfig{
		Level:          lvl,
		TickRate:       cfg.Simulation.TickRate,
		RecoveryTicks:  cfg.Simulation.BrickRecoveryTicks,
		EnemyBrain:     cfg.Enemies.Brain,
		EnemyMoveEvery: cfg.Enemies.MoveEveryTicks,
		RespawnDelay:   cfg.Simulation.RespawnDelayTicks,
		MaxPlayers:     cfg.Server.MaxPlayers,
		Seed:           seed,
		Rules:          scoring.RulesFromConfig(cfg.Scoring),
	}
	if lvl.RecoveryTicks > 0 {
		rc.RecoveryTicks = lvl.RecoveryTicks
	}
	if lvl.EnemyBrain != "" {
		rc.EnemyBrain = lvl.EnemyBrain
	}
	return rc
}

type member struct {
	session  SessionHandle
	player   *engine.Player // nil for spectators
	joystick *engine.Joystick
	joined   uint64
}

type input struct {
	session SessionID
	cmd     engine.Command
}

// Room is a shared board that sessions join as players or spectators.
// The board is only touched while holding mu, by Step or by membership
// changes, so one goroutine at a time drives it.
type Room struct {
	id     RoomID
	cfg    RoomConfig
	logger *log.Logger
	saver  ResultSaver // optional

	mu        sync.Mutex
	board     *engine.Board
	scores    *scoring.Scoreboard
	members   map[SessionID]*member
	order     []SessionID // join order, for deterministic broadcast
	deadSince map[engine.PlayerID]uint64
	closed    bool

	inputs   chan input
	done     chan struct{}
	doneOnce sync.Once
	saves    sync.WaitGroup
}

// NewRoom builds a room and its board. The room does not tick until Run.
func NewRoom(cfg RoomConfig, logger *log.Logger, saver ResultSaver) (*Room, error) {
	if logger == nil {
		logger = logging.Discard()
	}
	if cfg.MaxPlayers <= 0 {
		cfg.MaxPlayers = config.DefaultConfig().Server.MaxPlayers
	}

	newBrain, err := ai.Factory(cfg.EnemyBrain, engine.NewRandomDice(cfg.Seed+1))
	if err != nil {
		return nil, fmt.Errorf("multiplayer: room %s: %w", cfg.Level.ID, err)
	}

	id := RoomID(cfg.Level.ID)
	logger = logger.With("room", id)

	board := engine.NewBoard(cfg.Level.Layout, engine.NewRandomDice(cfg.Seed), engine.Options{
		RecoveryTicks:  cfg.RecoveryTicks,
		EnemyMoveEvery: cfg.EnemyMoveEvery,
		NewBrain:       newBrain,
	})
	board.OnAnomaly = logging.AnomalyHook(logger)

	return &Room{
		id:        id,
		cfg:       cfg,
		logger:    logger,
		saver:     saver,
		board:     board,
		scores:    scoring.NewScoreboard(cfg.Rules),
		members:   make(map[SessionID]*member),
		deadSince: make(map[engine.PlayerID]uint64),
		inputs:    make(chan input, 256),
		done:      make(chan struct{}),
	}, nil
}

// ID returns the room identifier.
func (r *Room) ID() RoomID {
	return r.id
}

// Level returns the level the room plays.
func (r *Room) Level() levels.Level {
	return r.cfg.Level
}

// Join adds a session as a player named name. Names already taken in the
// room get a numeric suffix. Returns the player id the session controls.
func (r *Room) Join(s SessionHandle, name string) (engine.PlayerID, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.closed {
		return "", ErrRoomClosed
	}
	if _, ok := r.members[s.ID()]; ok {
		return "", ErrAlreadyJoined
	}
	if r.playerCount() >= r.cfg.MaxPlayers {
		return "", ErrRoomFull
	}

	id := r.uniqueName(name)
	js := engine.NewJoystick()
	p := engine.NewPlayer(id, js)
	r.board.NewGame(p)
	r.scores.Join(id)

	r.members[s.ID()] = &member{session: s, player: p, joystick: js, joined: r.board.CurrentTick()}
	r.order = append(r.order, s.ID())

	r.logger.Info("player joined", "player", id, "session", s.ID(), "at", p.Hero().Pos())
	s.Send(JoinedEvent{RoomID: r.id, Player: id, LevelName: r.cfg.Level.Name, Size: r.board.Size()})
	s.Send(r.snapshotEvent())
	return id, nil
}

// Watch adds a session that only receives snapshots.
func (r *Room) Watch(s SessionHandle) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.closed {
		return ErrRoomClosed
	}
	if _, ok := r.members[s.ID()]; ok {
		return ErrAlreadyJoined
	}
	r.members[s.ID()] = &member{session: s}
	r.order = append(r.order, s.ID())
	r.logger.Debug("spectator joined", "session", s.ID())
	s.Send(r.snapshotEvent())
	return nil
}

// Leave removes a session. A player's hero leaves the board and its
// result is saved.
func (r *Room) Leave(id SessionID) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.leave(id)
}

func (r *Room) leave(id SessionID) {
	m, ok := r.members[id]
	if !ok {
		return
	}
	delete(r.members, id)
	for i, sid := range r.order {
		if sid == id {
			r.order = append(r.order[:i], r.order[i+1:]...)
			break
		}
	}

	if m.player == nil {
		return
	}
	pid := m.player.ID()
	r.board.Remove(pid)
	delete(r.deadSince, pid)
	final, _ := r.scores.Forget(pid)
	r.logger.Info("player left", "player", pid, "score", final.Score)
	r.saveResult(final, r.board.CurrentTick()-m.joined)
}

// SendInput queues a command for the session's hero. Non-blocking; the
// latest command before a tick wins.
func (r *Room) SendInput(id SessionID, cmd engine.Command) {
	select {
	case r.inputs <- input{session: id, cmd: cmd}:
	default:
		// Channel full, drop input (rare under normal conditions)
	}
}

// Step runs one tick: apply queued inputs, respawn, tick the board, score
// and broadcast. Run calls it on every timer tick; tests call it directly.
func (r *Room) Step() engine.TickResult {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.dropEnded()
	r.drainInputs()
	r.respawnDue()

	res := r.board.Tick()
	r.scores.Record(res)

	for _, pid := range res.Dead {
		r.deadSince[pid] = res.Tick
		r.logger.Debug("hero died", "player", pid, "tick", res.Tick)
	}
	for _, pe := range res.Events {
		if m := r.memberOf(pe.Player); m != nil {
			m.session.Send(GameEvent{Tick: res.Tick, Player: pe.Player, Event: pe.Event})
		}
	}

	r.broadcast(r.snapshotEvent())
	return res
}

// Run ticks the room until ctx is cancelled or Stop is called. Remaining
// players get their results saved and every session is told.
func (r *Room) Run(ctx context.Context) {
	rate := r.cfg.TickRate
	if rate <= 0 {
		rate = config.DefaultConfig().Simulation.TickRate
	}
	ticker := time.NewTicker(time.Second / time.Duration(rate))
	defer ticker.Stop()

	r.logger.Info("room started", "level", r.cfg.Level.ID, "tick_rate", rate)
	for {
		select {
		case <-ticker.C:
			r.Step()
		case <-ctx.Done():
			r.close("server shutting down")
			r.Flush()
			return
		case <-r.done:
			r.close("room stopped")
			r.Flush()
			return
		}
	}
}

// Stop ends Run. Safe to call multiple times.
func (r *Room) Stop() {
	r.doneOnce.Do(func() {
		close(r.done)
	})
}

func (r *Room) close(reason string) {
	r.mu.Lock()
	defer r.mu.Unlock()

	evt := RoomClosedEvent{RoomID: r.id, Reason: reason}
	for _, sid := range append([]SessionID(nil), r.order...) {
		r.members[sid].session.Send(evt)
		r.leave(sid)
	}
	r.closed = true
	r.logger.Info("room closed", "reason", reason)
}

// Flush waits until every pending result save has finished.
func (r *Room) Flush() {
	r.saves.Wait()
}

// Snapshot returns the current board view.
func (r *Room) Snapshot() engine.Snapshot {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.board.Snapshot()
}

// Standings returns the current score table.
func (r *Room) Standings() []scoring.Tally {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.scores.Standings()
}

// PlayerCount returns how many sessions play (spectators excluded).
func (r *Room) PlayerCount() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.playerCount()
}

func (r *Room) playerCount() int {
	n := 0
	for _, m := range r.members {
		if m.player != nil {
			n++
		}
	}
	return n
}

func (r *Room) uniqueName(name string) engine.PlayerID {
	if name == "" {
		name = "runner"
	}
	id := engine.PlayerID(name)
	for i := 2; r.board.Player(id) != nil; i++ {
		id = engine.PlayerID(fmt.Sprintf("%s-%d", name, i))
	}
	return id
}

func (r *Room) memberOf(pid engine.PlayerID) *member {
	for _, m := range r.members {
		if m.player != nil && m.player.ID() == pid {
			return m
		}
	}
	return nil
}

// dropEnded removes sessions whose transport has gone away.
func (r *Room) dropEnded() {
	for _, sid := range append([]SessionID(nil), r.order...) {
		select {
		case <-r.members[sid].session.Done():
			r.leave(sid)
		default:
		}
	}
}

func (r *Room) drainInputs() {
	for {
		select {
		case in := <-r.inputs:
			if m, ok := r.members[in.session]; ok && m.joystick != nil {
				m.joystick.Set(in.cmd)
			}
		default:
			return
		}
	}
}

// respawnDue gives a new hero to every player dead for RespawnDelay ticks.
func (r *Room) respawnDue() {
	now := r.board.CurrentTick()
	var due []engine.PlayerID
	for pid, since := range r.deadSince {
		if now-since >= uint64(r.cfg.RespawnDelay) {
			due = append(due, pid)
		}
	}
	sort.Slice(due, func(i, j int) bool { return due[i] < due[j] })

	for _, pid := range due {
		delete(r.deadSince, pid)
		p := r.board.Player(pid)
		if p == nil {
			continue
		}
		r.board.NewGame(p)
		if m := r.memberOf(pid); m != nil {
			m.session.Send(RespawnEvent{Tick: now, Player: pid, At: p.Hero().Pos()})
		}
	}
}

func (r *Room) snapshotEvent() SnapshotEvent {
	return SnapshotEvent{
		RoomID:    r.id,
		Snapshot:  r.board.Snapshot(),
		Standings: r.scores.Standings(),
	}
}

func (r *Room) broadcast(evt SessionEvent) {
	for _, sid := range r.order {
		r.members[sid].session.Send(evt)
	}
}

func (r *Room) saveResult(t scoring.Tally, ticks uint64) {
	if r.saver == nil {
		return
	}
	rate := uint64(max(1, r.cfg.TickRate))
	result := RoundResult{
		RoomID:       string(r.id),
		LevelID:      r.cfg.Level.ID,
		Player:       string(t.Player),
		Score:        t.Score,
		Gold:         t.Gold,
		Kills:        t.Kills,
		Deaths:       t.Deaths,
		DurationSecs: int(ticks / rate), //nolint:gosec // bounded by uptime
	}
	// Best effort save, don't block the tick loop on the database
	r.saves.Add(1)
	go func() {
		defer r.saves.Done()
		if err := r.saver.SaveRoundResult(result); err != nil {
			r.logger.Warn("could not save result", "player", result.Player, "error", err)
		}
	}()
}
