package config

import (
	_ "embed"
)

//go:embed defaults/loderunner.yaml
var defaultYAML []byte

// DefaultConfig returns the hardcoded configuration. It matches the
// embedded defaults/loderunner.yaml and is the last fallback of Load.
func DefaultConfig() Config {
	return Config{
		Simulation: SimulationConfig{
			TickRate:           8,
			BrickRecoveryTicks: 13,
			RespawnDelayTicks:  16,
			Level:              "classic",
		},
		Enemies: EnemiesConfig{
			Brain:          "chaser",
			MoveEveryTicks: 2,
		},
		Scoring: ScoringConfig{
			GoldPoints:   10,
			KillPoints:   50,
			DeathPenalty: 20,
		},
		Server: ServerConfig{
			SSHAddress:         ":2222",
			WSAddress:          ":8080",
			HostKeyPath:        ".ssh/loderunner_ed25519",
			DBPath:             "", // resolved by storage.DefaultDBPath
			MaxPlayers:         8,
			IdleTimeoutMinutes: 30,
		},
		Logging: LoggingConfig{
			Level:      "info",
			MaxSizeMB:  10,
			MaxBackups: 3,
			MaxAgeDays: 28,
		},
	}
}

// DefaultYAML returns the embedded default configuration file.
func DefaultYAML() []byte {
	return defaultYAML
}
