package engine

import "fmt"

// Sprite is the visible kind of a snapshot item.
type Sprite uint8

const (
	SpriteBorder Sprite = iota
	SpriteBrick
	SpriteDrilledBrick
	SpriteLadder
	SpritePipe
	SpriteGold
	SpriteHero
	SpriteDeadHero
	SpriteEnemy
	SpriteEnemyWithGold
)

var spriteNames = [...]string{
	SpriteBorder:        "border",
	SpriteBrick:         "brick",
	SpriteDrilledBrick:  "drilled_brick",
	SpriteLadder:        "ladder",
	SpritePipe:          "pipe",
	SpriteGold:          "gold",
	SpriteHero:          "hero",
	SpriteDeadHero:      "dead_hero",
	SpriteEnemy:         "enemy",
	SpriteEnemyWithGold: "enemy_with_gold",
}

// String returns the wire name of the sprite.
func (s Sprite) String() string {
	if int(s) < len(spriteNames) {
		return spriteNames[s]
	}
	return "unknown"
}

// MarshalText encodes the sprite as its wire name.
func (s Sprite) MarshalText() ([]byte, error) {
	return []byte(s.String()), nil
}

// UnmarshalText decodes a wire name produced by MarshalText.
func (s *Sprite) UnmarshalText(b []byte) error {
	for i, name := range spriteNames {
		if name == string(b) {
			*s = Sprite(i)
			return nil
		}
	}
	return fmt.Errorf("engine: unknown sprite %q", b)
}

// Item is one visible element of the board.
type Item struct {
	Point
	Sprite    Sprite   `json:"sprite"`
	Player    PlayerID `json:"player,omitempty"`
	Facing    Dir      `json:"facing"`
	Remaining int      `json:"remaining,omitempty"` // drilled bricks only
}

// Snapshot is a read-only copy of the board taken between ticks.
type Snapshot struct {
	Tick  uint64 `json:"tick"`
	Size  int    `json:"size"`
	Items []Item `json:"items"`
}

// Snapshot copies the visible state: heroes, enemies, gold, then terrain.
func (b *Board) Snapshot() Snapshot {
	s := Snapshot{
		Tick:  b.tick,
		Size:  b.size,
		Items: make([]Item, 0, len(b.players)+len(b.enemies)+b.gold.Len()+len(b.grid.Bricks())),
	}

	for _, p := range b.players {
		h := p.hero
		if h == nil {
			continue
		}
		sprite := SpriteHero
		if !h.alive {
			sprite = SpriteDeadHero
		}
		s.Items = append(s.Items, Item{Point: h.pos, Sprite: sprite, Player: p.id, Facing: h.facing})
	}

	for _, e := range b.enemies {
		sprite := SpriteEnemy
		if e.withGold {
			sprite = SpriteEnemyWithGold
		}
		s.Items = append(s.Items, Item{Point: e.pos, Sprite: sprite, Facing: e.facing})
	}

	for _, p := range b.gold.Points() {
		s.Items = append(s.Items, Item{Point: p, Sprite: SpriteGold})
	}

	for y := 0; y < b.size; y++ {
		for x := 0; x < b.size; x++ {
			el := b.grid.At(Pt(x, y))
			item := Item{Point: Pt(x, y)}
			switch el.Kind {
			case ElementNone:
				continue
			case ElementBorder:
				item.Sprite = SpriteBorder
			case ElementLadder:
				item.Sprite = SpriteLadder
			case ElementPipe:
				item.Sprite = SpritePipe
			case ElementBrick:
				item.Sprite = SpriteBrick
				if el.Brick.State() == BrickDrilled {
					item.Sprite = SpriteDrilledBrick
					item.Remaining = el.Brick.Remaining()
				}
			}
			s.Items = append(s.Items, item)
		}
	}

	return s
}

// Count returns how many items of the given sprite are in the snapshot.
func (s Snapshot) Count(sprite Sprite) int {
	n := 0
	for _, it := range s.Items {
		if it.Sprite == sprite {
			n++
		}
	}
	return n
}
