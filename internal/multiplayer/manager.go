package multiplayer

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/charmbracelet/log"

	"github.com/vovakirdan/tui-loderunner/internal/config"
	"github.com/vovakirdan/tui-loderunner/internal/games/loderunner/levels"
	"github.com/vovakirdan/tui-loderunner/internal/logging"
)

// Manager owns the running rooms, one per level, created on first use.
type Manager struct {
	cfg    config.Config
	loader *levels.Loader
	saver  ResultSaver // Optional, can be nil
	logger *log.Logger

	ctx    context.Context
	cancel context.CancelFunc
	wg     sync.WaitGroup

	mu    sync.Mutex
	rooms map[RoomID]*Room
}

// NewManager creates a manager whose rooms live until ctx ends or
// Shutdown is called.
func NewManager(ctx context.Context, cfg config.Config, loader *levels.Loader, saver ResultSaver, logger *log.Logger) *Manager {
	if logger == nil {
		logger = logging.Discard()
	}
	ctx, cancel := context.WithCancel(ctx)
	return &Manager{
		cfg:    cfg,
		loader: loader,
		saver:  saver,
		logger: logger,
		ctx:    ctx,
		cancel: cancel,
		rooms:  make(map[RoomID]*Room),
	}
}

// Room returns the running room for a level, starting it if needed.
// An empty level id selects the configured default level.
func (m *Manager) Room(levelID string) (*Room, error) {
	if levelID == "" {
		levelID = m.cfg.Simulation.Level
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	if r, ok := m.rooms[RoomID(levelID)]; ok {
		return r, nil
	}

	lvl, err := m.loader.LoadByID(levelID)
	if err != nil {
		return nil, err
	}
	r, err := NewRoom(RoomConfigFrom(m.cfg, lvl, time.Now().UnixNano()), m.logger, m.saver)
	if err != nil {
		return nil, err
	}
	m.rooms[r.ID()] = r

	m.wg.Add(1)
	go func() {
		defer m.wg.Done()
		r.Run(m.ctx)
	}()
	return r, nil
}

// Rooms returns the running rooms sorted by id.
func (m *Manager) Rooms() []*Room {
	m.mu.Lock()
	defer m.mu.Unlock()

	out := make([]*Room, 0, len(m.rooms))
	for _, r := range m.rooms {
		out = append(out, r)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID() < out[j].ID() })
	return out
}

// Shutdown stops every room and waits for their loops to finish.
func (m *Manager) Shutdown() {
	m.cancel()
	m.wg.Wait()

	m.mu.Lock()
	m.rooms = make(map[RoomID]*Room)
	m.mu.Unlock()
}
