// Package multiplayer runs shared Lode Runner rooms: an authoritative tick
// loop per room that many sessions join, steer and watch.
package multiplayer

import (
	"errors"

	"github.com/google/uuid"
)

// SessionID uniquely identifies a connection (SSH session, websocket, local).
type SessionID string

// NewSessionID returns a fresh random session id.
func NewSessionID() SessionID {
	return SessionID(uuid.NewString())
}

// RoomID identifies a room. Rooms are keyed by level, so it is the level id.
type RoomID string

var (
	// ErrRoomFull is returned when a room has no free player slot.
	ErrRoomFull = errors.New("multiplayer: room is full")

	// ErrAlreadyJoined is returned when a session joins a room twice.
	ErrAlreadyJoined = errors.New("multiplayer: session already in room")

	// ErrRoomClosed is returned when joining a room that has shut down.
	ErrRoomClosed = errors.New("multiplayer: room is closed")
)

// ResultSaver persists the outcome of a player's stay in a room.
// This allows rooms to save results without depending on the storage package.
type ResultSaver interface {
	SaveRoundResult(result RoundResult) error
}

// RoundResult is one player's final tally when leaving a room.
type RoundResult struct {
	RoomID       string
	LevelID      string
	Player       string
	Score        int
	Gold         int
	Kills        int
	Deaths       int
	DurationSecs int
}
