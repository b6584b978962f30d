package config

import "fmt"

// DifficultyPreset represents a named difficulty level.
type DifficultyPreset string

const (
	DifficultyEasy   DifficultyPreset = "easy"
	DifficultyNormal DifficultyPreset = "normal"
	DifficultyHard   DifficultyPreset = "hard"
)

// ParseDifficultyPreset validates a preset name. Empty means normal.
func ParseDifficultyPreset(s string) (DifficultyPreset, error) {
	switch p := DifficultyPreset(s); p {
	case "":
		return DifficultyNormal, nil
	case DifficultyEasy, DifficultyNormal, DifficultyHard:
		return p, nil
	default:
		return "", fmt.Errorf("config: unknown difficulty %q (want easy, normal or hard)", s)
	}
}

// ApplyPreset modifies the config based on a difficulty preset.
// Easy holes stay open longer and enemies are slower; hard is the reverse.
func ApplyPreset(cfg *Config, preset DifficultyPreset) {
	switch preset {
	case DifficultyEasy:
		cfg.Simulation.BrickRecoveryTicks = 20
		cfg.Enemies.MoveEveryTicks = 3
		cfg.Scoring.DeathPenalty = 0
	case DifficultyHard:
		cfg.Simulation.BrickRecoveryTicks = 8
		cfg.Enemies.MoveEveryTicks = 1
		cfg.Simulation.RespawnDelayTicks *= 2
	}
}
