package web

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gorilla/websocket"

	"github.com/vovakirdan/tui-loderunner/internal/games/loderunner/engine"
	"github.com/vovakirdan/tui-loderunner/internal/games/loderunner/levels"
	"github.com/vovakirdan/tui-loderunner/internal/multiplayer"
	"github.com/vovakirdan/tui-loderunner/internal/scoring"
)

// fixedRooms serves a single room that the test ticks by hand.
type fixedRooms struct {
	room *multiplayer.Room
}

func (f fixedRooms) Room(levelID string) (*multiplayer.Room, error) {
	if levelID != "" && levelID != "test" {
		return nil, levels.ErrLevelNotFound
	}
	return f.room, nil
}

func (f fixedRooms) Rooms() []*multiplayer.Room {
	return []*multiplayer.Room{f.room}
}

func newTestServer(t *testing.T) (*multiplayer.Room, *httptest.Server) {
	t.Helper()
	layout, err := levels.ParseMap([]string{
		"☼☼☼☼☼☼",
		"☼    ☼",
		"☼    ☼",
		"☼@   ☼",
		"☼####☼",
		"☼☼☼☼☼☼",
	})
	if err != nil {
		t.Fatalf("ParseMap() failed: %v", err)
	}
	room, err := multiplayer.NewRoom(multiplayer.RoomConfig{
		Level:         levels.Level{ID: "test", Name: "Test", Layout: layout},
		TickRate:      50,
		RecoveryTicks: 3,
		EnemyBrain:    "idle",
		RespawnDelay:  2,
		MaxPlayers:    2,
		Rules:         scoring.Rules{Gold: 10, Kill: 50, DeathPenalty: 20},
	}, nil, nil)
	if err != nil {
		t.Fatalf("NewRoom() failed: %v", err)
	}

	srv := httptest.NewServer(NewServer(fixedRooms{room: room}, nil).Handler())
	t.Cleanup(srv.Close)
	return room, srv
}

func wsURL(srv *httptest.Server, query string) string {
	return "ws" + strings.TrimPrefix(srv.URL, "http") + "/ws" + query
}

func dial(t *testing.T, url string) *websocket.Conn {
	t.Helper()
	conn, _, err := websocket.DefaultDialer.Dial(url, nil)
	if err != nil {
		t.Fatalf("dial failed: %v", err)
	}
	t.Cleanup(func() { conn.Close() })
	return conn
}

// readUntil reads envelopes until one of type typ arrives.
func readUntil(t *testing.T, conn *websocket.Conn, typ string) Envelope {
	t.Helper()
	_ = conn.SetReadDeadline(time.Now().Add(2 * time.Second))
	for {
		_, msg, err := conn.ReadMessage()
		if err != nil {
			t.Fatalf("waiting for %q: %v", typ, err)
		}
		var env Envelope
		if err := json.Unmarshal(msg, &env); err != nil {
			t.Fatalf("bad envelope %s: %v", msg, err)
		}
		if env.Type == typ {
			return env
		}
	}
}

func TestSpectatorReceivesSnapshots(t *testing.T) {
	room, srv := newTestServer(t)
	conn := dial(t, wsURL(srv, "?level=test"))

	env := readUntil(t, conn, TypeSnapshot)
	var first multiplayer.SnapshotEvent
	if err := json.Unmarshal(env.Payload, &first); err != nil {
		t.Fatalf("decode snapshot: %v", err)
	}
	if first.RoomID != "test" || first.Snapshot.Size != 6 {
		t.Errorf("snapshot = room %q size %d, want test/6", first.RoomID, first.Snapshot.Size)
	}

	room.Step()
	env = readUntil(t, conn, TypeSnapshot)
	var next multiplayer.SnapshotEvent
	if err := json.Unmarshal(env.Payload, &next); err != nil {
		t.Fatalf("decode snapshot: %v", err)
	}
	if next.Snapshot.Tick != 1 {
		t.Errorf("tick = %d, want 1", next.Snapshot.Tick)
	}
	if room.PlayerCount() != 0 {
		t.Errorf("spectator counted as player")
	}
}

func TestPlayerInputMovesHero(t *testing.T) {
	room, srv := newTestServer(t)
	conn := dial(t, wsURL(srv, "?level=test&name=ann"))

	env := readUntil(t, conn, TypeJoined)
	var joined multiplayer.JoinedEvent
	if err := json.Unmarshal(env.Payload, &joined); err != nil {
		t.Fatalf("decode joined: %v", err)
	}
	if joined.Player != "ann" || joined.LevelName != "Test" {
		t.Fatalf("joined = %+v", joined)
	}

	payload, _ := json.Marshal(InputPayload{Command: "right"})
	if err := conn.WriteJSON(Envelope{Type: TypeInput, Payload: payload}); err != nil {
		t.Fatalf("write input: %v", err)
	}

	// The command travels through the socket asynchronously.
	deadline := time.Now().Add(2 * time.Second)
	for time.Now().Before(deadline) {
		room.Step()
		for _, it := range room.Snapshot().Items {
			if it.Player == "ann" && it.Point == engine.Pt(2, 2) {
				return
			}
		}
		time.Sleep(10 * time.Millisecond)
	}
	t.Fatalf("hero never moved right: %+v", room.Snapshot().Items)
}

func TestDisconnectLeavesRoom(t *testing.T) {
	room, srv := newTestServer(t)
	conn, _, err := websocket.DefaultDialer.Dial(wsURL(srv, "?name=bob"), nil)
	if err != nil {
		t.Fatalf("dial failed: %v", err)
	}
	readUntil(t, conn, TypeJoined)
	if room.PlayerCount() != 1 {
		t.Fatalf("PlayerCount() = %d, want 1", room.PlayerCount())
	}

	conn.Close()
	deadline := time.Now().Add(2 * time.Second)
	for room.PlayerCount() != 0 {
		if time.Now().After(deadline) {
			t.Fatal("player still in room after disconnect")
		}
		time.Sleep(10 * time.Millisecond)
	}
}

func TestRoomCloseNotifiesFeed(t *testing.T) {
	room, srv := newTestServer(t)
	conn := dial(t, wsURL(srv, ""))
	readUntil(t, conn, TypeSnapshot)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	room.Run(ctx)

	env := readUntil(t, conn, TypeClosed)
	var closed multiplayer.RoomClosedEvent
	if err := json.Unmarshal(env.Payload, &closed); err != nil {
		t.Fatalf("decode closed: %v", err)
	}
	if closed.Reason == "" {
		t.Error("closed event without reason")
	}
}

func TestUnknownLevel(t *testing.T) {
	_, srv := newTestServer(t)
	_, resp, err := websocket.DefaultDialer.Dial(wsURL(srv, "?level=nope"), nil)
	if err == nil {
		t.Fatal("dial to unknown level succeeded")
	}
	if resp == nil || resp.StatusCode != http.StatusNotFound {
		t.Fatalf("response = %v, want 404", resp)
	}
}

func TestHTTPRoutes(t *testing.T) {
	_, srv := newTestServer(t)

	resp, err := http.Get(srv.URL + "/healthz")
	if err != nil {
		t.Fatalf("GET /healthz: %v", err)
	}
	body, _ := io.ReadAll(resp.Body)
	resp.Body.Close()
	if resp.StatusCode != http.StatusOK || strings.TrimSpace(string(body)) != "ok" {
		t.Errorf("/healthz = %d %q", resp.StatusCode, body)
	}

	resp, err = http.Get(srv.URL + "/rooms")
	if err != nil {
		t.Fatalf("GET /rooms: %v", err)
	}
	defer resp.Body.Close()
	var rooms []roomInfo
	if err := json.NewDecoder(resp.Body).Decode(&rooms); err != nil {
		t.Fatalf("decode rooms: %v", err)
	}
	if len(rooms) != 1 || rooms[0].ID != "test" || rooms[0].Level != "Test" {
		t.Errorf("rooms = %+v", rooms)
	}
}

func TestEncodeEvent(t *testing.T) {
	b, err := encodeEvent(multiplayer.GameEvent{Tick: 4, Player: "ann", Event: engine.EventGetGold})
	if err != nil {
		t.Fatalf("encodeEvent() failed: %v", err)
	}
	var env Envelope
	if err := json.Unmarshal(b, &env); err != nil {
		t.Fatal(err)
	}
	if env.Type != TypeEvent {
		t.Errorf("type = %q, want %q", env.Type, TypeEvent)
	}
	if !strings.Contains(string(env.Payload), `"event":"GET_GOLD"`) {
		t.Errorf("payload = %s", env.Payload)
	}
}
