// Package web serves the room feed over websockets. Spectators receive JSON
// snapshots; a client that passes a name joins as a player and may send
// commands back.
package web

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"github.com/charmbracelet/log"
	"github.com/gorilla/websocket"

	"github.com/vovakirdan/tui-loderunner/internal/logging"
	"github.com/vovakirdan/tui-loderunner/internal/multiplayer"
)

// Rooms is the part of the room manager the feed needs.
type Rooms interface {
	Room(levelID string) (*multiplayer.Room, error)
	Rooms() []*multiplayer.Room
}

// Server exposes /ws, /rooms and /healthz.
type Server struct {
	rooms  Rooms
	logger *log.Logger

	upgrader websocket.Upgrader
	srv      *http.Server
}

// NewServer creates a feed server on top of the room manager.
func NewServer(rooms Rooms, logger *log.Logger) *Server {
	if logger == nil {
		logger = logging.Discard()
	}
	return &Server{
		rooms:  rooms,
		logger: logger,
		upgrader: websocket.Upgrader{
			ReadBufferSize:  4 * 1024,
			WriteBufferSize: 16 * 1024,
			CheckOrigin:     func(r *http.Request) bool { return true },
		},
	}
}

// Handler returns the HTTP routes of the feed.
func (s *Server) Handler() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("/ws", s.handleWS)
	mux.HandleFunc("/rooms", s.handleRooms)
	mux.HandleFunc("/healthz", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("ok\n"))
	})
	return mux
}

// ListenAndServe serves the feed on addr until ctx ends.
func (s *Server) ListenAndServe(ctx context.Context, addr string) error {
	s.srv = &http.Server{
		Addr:              addr,
		Handler:           s.Handler(),
		ReadHeaderTimeout: 5 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		s.logger.Info("Starting websocket feed", "address", addr)
		if err := s.srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
			return
		}
		errCh <- nil
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := s.srv.Shutdown(shutdownCtx); err != nil {
		return err
	}
	return <-errCh
}

type roomInfo struct {
	ID      multiplayer.RoomID `json:"id"`
	Level   string             `json:"level"`
	Players int                `json:"players"`
	Tick    uint64             `json:"tick"`
}

func (s *Server) handleRooms(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		w.WriteHeader(http.StatusMethodNotAllowed)
		return
	}
	rooms := s.rooms.Rooms()
	out := make([]roomInfo, 0, len(rooms))
	for _, room := range rooms {
		out = append(out, roomInfo{
			ID:      room.ID(),
			Level:   room.Level().Name,
			Players: room.PlayerCount(),
			Tick:    room.Snapshot().Tick,
		})
	}
	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(out)
}
