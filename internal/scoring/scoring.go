// Package scoring turns tick events into per-player scores.
package scoring

import (
	"sort"

	"github.com/vovakirdan/tui-loderunner/internal/config"
	"github.com/vovakirdan/tui-loderunner/internal/games/loderunner/engine"
)

// Rules assigns points to events.
type Rules struct {
	Gold         int
	Kill         int
	DeathPenalty int
}

// RulesFromConfig builds rules from the scoring section of the config.
func RulesFromConfig(cfg config.ScoringConfig) Rules {
	return Rules{
		Gold:         cfg.GoldPoints,
		Kill:         cfg.KillPoints,
		DeathPenalty: cfg.DeathPenalty,
	}
}

// Tally is one player's running score.
type Tally struct {
	Player engine.PlayerID `json:"player"`
	Score  int             `json:"score"`
	Gold   int             `json:"gold"`
	Kills  int             `json:"kills"`
	Deaths int             `json:"deaths"`
	Best   int             `json:"best"` // highest score reached this session
}

// Scoreboard accumulates tallies for every player seen.
// Not safe for concurrent use; it lives next to the board it scores.
type Scoreboard struct {
	rules   Rules
	tallies map[engine.PlayerID]*Tally
}

// NewScoreboard creates an empty scoreboard.
func NewScoreboard(rules Rules) *Scoreboard {
	return &Scoreboard{
		rules:   rules,
		tallies: make(map[engine.PlayerID]*Tally),
	}
}

// Join makes sure the player has a tally, even before its first event.
func (s *Scoreboard) Join(id engine.PlayerID) {
	s.tally(id)
}

func (s *Scoreboard) tally(id engine.PlayerID) *Tally {
	t, ok := s.tallies[id]
	if !ok {
		t = &Tally{Player: id}
		s.tallies[id] = t
	}
	return t
}

// Apply scores a single event. A score never drops below zero.
func (s *Scoreboard) Apply(id engine.PlayerID, e engine.Event) {
	t := s.tally(id)
	switch e {
	case engine.EventGetGold:
		t.Gold++
		t.Score += s.rules.Gold
	case engine.EventKillEnemy:
		t.Kills++
		t.Score += s.rules.Kill
	case engine.EventKillHero:
		t.Deaths++
		t.Score -= s.rules.DeathPenalty
		if t.Score < 0 {
			t.Score = 0
		}
	}
	if t.Score > t.Best {
		t.Best = t.Score
	}
}

// Record scores every event of a tick.
func (s *Scoreboard) Record(res engine.TickResult) {
	for _, pe := range res.Events {
		s.Apply(pe.Player, pe.Event)
	}
}

// Get returns a copy of one player's tally.
func (s *Scoreboard) Get(id engine.PlayerID) (Tally, bool) {
	t, ok := s.tallies[id]
	if !ok {
		return Tally{}, false
	}
	return *t, true
}

// Forget drops a player's tally and returns its final state.
func (s *Scoreboard) Forget(id engine.PlayerID) (Tally, bool) {
	t, ok := s.Get(id)
	delete(s.tallies, id)
	return t, ok
}

// Standings returns all tallies, best score first, ties by player id.
func (s *Scoreboard) Standings() []Tally {
	out := make([]Tally, 0, len(s.tallies))
	for _, t := range s.tallies {
		out = append(out, *t)
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Score != out[j].Score {
			return out[i].Score > out[j].Score
		}
		return out[i].Player < out[j].Player
	})
	return out
}
