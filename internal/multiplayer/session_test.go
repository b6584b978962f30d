package multiplayer

import "testing"

func TestChannelSessionDropsOldest(t *testing.T) {
	s := NewChannelSession("s", 2)
	for i := 1; i <= 3; i++ {
		s.Send(GameEvent{Tick: uint64(i)})
	}

	var ticks []uint64
	for len(s.Events()) > 0 {
		ticks = append(ticks, (<-s.Events()).(GameEvent).Tick)
	}
	if len(ticks) != 2 || ticks[0] != 2 || ticks[1] != 3 {
		t.Errorf("kept ticks %v, expected [2 3]", ticks)
	}
}

func TestChannelSessionClose(t *testing.T) {
	s := NewChannelSession("s", 4)
	s.Close()
	s.Close()

	s.Send(GameEvent{})
	if len(s.Events()) != 0 {
		t.Error("closed session should not queue events")
	}
	select {
	case <-s.Done():
	default:
		t.Error("Done() should be closed")
	}
}

func TestNewSessionIDUnique(t *testing.T) {
	if NewSessionID() == NewSessionID() {
		t.Error("session ids should be unique")
	}
}
