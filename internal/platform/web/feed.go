package web

import (
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"github.com/gorilla/websocket"

	"github.com/vovakirdan/tui-loderunner/internal/games/loderunner/engine"
	"github.com/vovakirdan/tui-loderunner/internal/games/loderunner/levels"
	"github.com/vovakirdan/tui-loderunner/internal/multiplayer"
)

const (
	writeWait  = 5 * time.Second
	pongWait   = 60 * time.Second
	pingPeriod = pongWait * 9 / 10
)

// Envelope is the wire frame of the feed in both directions.
type Envelope struct {
	Type    string          `json:"type"`
	Payload json.RawMessage `json:"payload,omitempty"`
}

// Envelope types.
const (
	TypeJoined   = "joined"
	TypeSnapshot = "snapshot"
	TypeEvent    = "event"
	TypeRespawn  = "respawn"
	TypeClosed   = "closed"
	TypeInput    = "input"
)

// InputPayload is sent by players: {"type":"input","payload":{"command":"left"}}.
type InputPayload struct {
	Command string `json:"command"`
}

// encodeEvent wraps a room event in an envelope.
func encodeEvent(evt multiplayer.SessionEvent) ([]byte, error) {
	var typ string
	switch evt.(type) {
	case multiplayer.JoinedEvent:
		typ = TypeJoined
	case multiplayer.SnapshotEvent:
		typ = TypeSnapshot
	case multiplayer.GameEvent:
		typ = TypeEvent
	case multiplayer.RespawnEvent:
		typ = TypeRespawn
	case multiplayer.RoomClosedEvent:
		typ = TypeClosed
	default:
		return nil, errors.New("web: unknown event type")
	}
	payload, err := json.Marshal(evt)
	if err != nil {
		return nil, err
	}
	return json.Marshal(Envelope{Type: typ, Payload: payload})
}

func (s *Server) handleWS(w http.ResponseWriter, r *http.Request) {
	levelID := r.URL.Query().Get("level")
	name := r.URL.Query().Get("name")

	room, err := s.rooms.Room(levelID)
	if err != nil {
		if errors.Is(err, levels.ErrLevelNotFound) {
			http.Error(w, "unknown level", http.StatusNotFound)
			return
		}
		s.logger.Error("room lookup failed", "level", levelID, "error", err)
		http.Error(w, "room unavailable", http.StatusInternalServerError)
		return
	}

	conn, err := s.upgrader.Upgrade(w, r, nil)
	if err != nil {
		return
	}
	defer conn.Close()

	sess := multiplayer.NewChannelSession(multiplayer.NewSessionID(), 64)
	defer sess.Close()

	playing := name != ""
	if playing {
		_, err = room.Join(sess, name)
	} else {
		err = room.Watch(sess)
	}
	if err != nil {
		_ = conn.WriteControl(websocket.CloseMessage,
			websocket.FormatCloseMessage(websocket.CloseTryAgainLater, err.Error()),
			time.Now().Add(time.Second))
		return
	}
	defer room.Leave(sess.ID())

	logger := s.logger.With("room", room.ID(), "session", sess.ID())
	logger.Debug("feed connected", "remote", r.RemoteAddr, "playing", playing)

	writeDone := make(chan struct{})
	go func() {
		defer close(writeDone)
		s.writePump(conn, sess)
	}()

	s.readPump(conn, room, sess.ID(), playing)
	sess.Close()
	<-writeDone
	logger.Debug("feed disconnected")
}

// writePump forwards room events until the session ends, the room closes
// or the connection fails.
func (s *Server) writePump(conn *websocket.Conn, sess *multiplayer.ChannelSession) {
	ping := time.NewTicker(pingPeriod)
	defer ping.Stop()

	for {
		select {
		case <-sess.Done():
			_ = conn.WriteControl(websocket.CloseMessage,
				websocket.FormatCloseMessage(websocket.CloseNormalClosure, "bye"),
				time.Now().Add(time.Second))
			return
		case <-ping.C:
			if err := conn.WriteControl(websocket.PingMessage, nil, time.Now().Add(writeWait)); err != nil {
				return
			}
		case evt := <-sess.Events():
			b, err := encodeEvent(evt)
			if err != nil {
				s.logger.Warn("dropping event", "error", err)
				continue
			}
			_ = conn.SetWriteDeadline(time.Now().Add(writeWait))
			if err := conn.WriteMessage(websocket.TextMessage, b); err != nil {
				return
			}
			if _, closed := evt.(multiplayer.RoomClosedEvent); closed {
				_ = conn.WriteControl(websocket.CloseMessage,
					websocket.FormatCloseMessage(websocket.CloseGoingAway, "room closed"),
					time.Now().Add(time.Second))
				return
			}
		}
	}
}

// readPump reads client frames until the connection closes. Players may
// send input envelopes; everything else is ignored.
func (s *Server) readPump(conn *websocket.Conn, room *multiplayer.Room, id multiplayer.SessionID, playing bool) {
	conn.SetReadLimit(4 * 1024)
	_ = conn.SetReadDeadline(time.Now().Add(pongWait))
	conn.SetPongHandler(func(string) error {
		return conn.SetReadDeadline(time.Now().Add(pongWait))
	})

	for {
		_, msg, err := conn.ReadMessage()
		if err != nil {
			return
		}
		_ = conn.SetReadDeadline(time.Now().Add(pongWait))
		if !playing {
			continue
		}

		var env Envelope
		if err := json.Unmarshal(msg, &env); err != nil || env.Type != TypeInput {
			continue
		}
		var in InputPayload
		if err := json.Unmarshal(env.Payload, &in); err != nil {
			continue
		}
		cmd, ok := engine.ParseCommand(in.Command)
		if !ok || cmd == engine.CommandDropGold {
			continue
		}
		room.SendInput(id, cmd)
	}
}
