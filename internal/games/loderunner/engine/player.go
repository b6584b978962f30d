package engine

// PlayerID identifies a player across respawns.
type PlayerID string

// Player owns one hero at a time and receives tick events.
type Player struct {
	id         PlayerID
	hero       *Hero
	controller Controller
	listener   func(Event)
}

// NewPlayer creates a player whose hero is driven by ctrl.
func NewPlayer(id PlayerID, ctrl Controller) *Player {
	return &Player{id: id, controller: ctrl}
}

// ID returns the player identifier.
func (p *Player) ID() PlayerID {
	return p.id
}

// Hero returns the player's current hero, nil before the first NewGame.
func (p *Player) Hero() *Hero {
	return p.hero
}

// OnEvent installs a callback invoked for every event sent to this player.
func (p *Player) OnEvent(fn func(Event)) {
	p.listener = fn
}

func (p *Player) event(e Event) {
	if p.listener != nil {
		p.listener(e)
	}
}
