package engine

import "math/rand"

// Dice is the board's source of randomness.
type Dice interface {
	// Next returns a uniform integer in [0, n).
	Next(n int) int
}

// RandomDice is a seeded pseudo-random Dice.
type RandomDice struct {
	rng *rand.Rand
}

// NewRandomDice creates dice seeded for reproducible games.
func NewRandomDice(seed int64) *RandomDice {
	return &RandomDice{rng: rand.New(rand.NewSource(seed))}
}

// Next returns a uniform integer in [0, n).
func (d *RandomDice) Next(n int) int {
	if n <= 0 {
		return 0
	}
	return d.rng.Intn(n)
}

// ScriptedDice replays a fixed sequence of values, cycling at the end.
// Values are reduced modulo n. Calls counts how many values were drawn.
type ScriptedDice struct {
	Values []int
	Calls  int
}

// NewScriptedDice creates dice that return the given values in order.
func NewScriptedDice(values ...int) *ScriptedDice {
	return &ScriptedDice{Values: values}
}

// Next returns the next scripted value reduced into [0, n).
func (d *ScriptedDice) Next(n int) int {
	d.Calls++
	if n <= 0 || len(d.Values) == 0 {
		return 0
	}
	v := d.Values[(d.Calls-1)%len(d.Values)] % n
	if v < 0 {
		v += n
	}
	return v
}
