package engine

import "fmt"

// Event is a notification fired to a player during a tick.
type Event uint8

const (
	EventKillHero  Event = iota // the player's hero died
	EventGetGold                // the player's hero picked up gold
	EventKillEnemy              // the player's drilling killed another hero
)

// String returns the wire name of the event.
func (e Event) String() string {
	switch e {
	case EventKillHero:
		return "KILL_HERO"
	case EventGetGold:
		return "GET_GOLD"
	case EventKillEnemy:
		return "KILL_ENEMY"
	default:
		return "UNKNOWN"
	}
}

// MarshalText encodes the event as its wire name.
func (e Event) MarshalText() ([]byte, error) {
	return []byte(e.String()), nil
}

// UnmarshalText decodes a wire name produced by MarshalText.
func (e *Event) UnmarshalText(b []byte) error {
	for v := EventKillHero; v <= EventKillEnemy; v++ {
		if v.String() == string(b) {
			*e = v
			return nil
		}
	}
	return fmt.Errorf("engine: unknown event %q", b)
}

// PlayerEvent is an event addressed to one player.
type PlayerEvent struct {
	Player PlayerID `json:"player"`
	Event  Event    `json:"event"`
}

// TickResult records what happened during one tick.
type TickResult struct {
	Tick   uint64
	Events []PlayerEvent
	Dead   []PlayerID // distinct players whose hero died this tick
}

// EventsFor returns the events addressed to one player, in firing order.
func (r TickResult) EventsFor(id PlayerID) []Event {
	var out []Event
	for _, pe := range r.Events {
		if pe.Player == id {
			out = append(out, pe.Event)
		}
	}
	return out
}
