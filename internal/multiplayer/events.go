package multiplayer

import (
	"github.com/vovakirdan/tui-loderunner/internal/games/loderunner/engine"
	"github.com/vovakirdan/tui-loderunner/internal/scoring"
)

// SessionEvent is an event sent from a room to a session.
type SessionEvent interface {
	sessionEvent()
}

// JoinedEvent confirms that a session now controls a hero.
type JoinedEvent struct {
	RoomID    RoomID          `json:"room"`
	Player    engine.PlayerID `json:"player"`
	LevelName string          `json:"level"`
	Size      int             `json:"size"`
}

func (JoinedEvent) sessionEvent() {}

// SnapshotEvent carries the board after a tick.
type SnapshotEvent struct {
	RoomID    RoomID          `json:"room"`
	Snapshot  engine.Snapshot `json:"snapshot"`
	Standings []scoring.Tally `json:"standings"`
}

func (SnapshotEvent) sessionEvent() {}

// GameEvent tells a player what happened to its hero.
type GameEvent struct {
	Tick   uint64          `json:"tick"`
	Player engine.PlayerID `json:"player"`
	Event  engine.Event    `json:"event"`
}

func (GameEvent) sessionEvent() {}

// RespawnEvent announces a new hero for a player.
type RespawnEvent struct {
	Tick   uint64          `json:"tick"`
	Player engine.PlayerID `json:"player"`
	At     engine.Point    `json:"at"`
}

func (RespawnEvent) sessionEvent() {}

// RoomClosedEvent is sent when a room shuts down.
type RoomClosedEvent struct {
	RoomID RoomID `json:"room"`
	Reason string `json:"reason"`
}

func (RoomClosedEvent) sessionEvent() {}
