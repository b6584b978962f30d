// Package config provides YAML-based configuration loading and difficulty
// presets for the Lode Runner server and clients.
package config

import "time"

// Config contains all runtime configuration.
type Config struct {
	Simulation SimulationConfig `yaml:"simulation"`
	Enemies    EnemiesConfig    `yaml:"enemies"`
	Scoring    ScoringConfig    `yaml:"scoring"`
	Server     ServerConfig     `yaml:"server"`
	Logging    LoggingConfig    `yaml:"logging"`
}

// SimulationConfig defines the tick loop and board parameters.
type SimulationConfig struct {
	TickRate           int    `yaml:"tick_rate"`            // ticks per second
	BrickRecoveryTicks int    `yaml:"brick_recovery_ticks"` // used when a level does not set its own
	RespawnDelayTicks  int    `yaml:"respawn_delay_ticks"`
	Level              string `yaml:"level"`      // default level id
	LevelsDir          string `yaml:"levels_dir"` // extra level files, optional
}

// EnemiesConfig defines enemy behaviour.
type EnemiesConfig struct {
	Brain          string `yaml:"brain"`            // used when a level does not name one
	MoveEveryTicks int    `yaml:"move_every_ticks"` // 1 = every tick
}

// ScoringConfig defines points per event.
type ScoringConfig struct {
	GoldPoints   int `yaml:"gold_points"`
	KillPoints   int `yaml:"kill_points"`
	DeathPenalty int `yaml:"death_penalty"`
}

// ServerConfig defines the network endpoints of `serve`.
type ServerConfig struct {
	SSHAddress         string `yaml:"ssh_address"`
	WSAddress          string `yaml:"ws_address"` // empty disables the spectator feed
	HostKeyPath        string `yaml:"host_key_path"`
	DBPath             string `yaml:"db_path"`
	MaxPlayers         int    `yaml:"max_players"`
	IdleTimeoutMinutes int    `yaml:"idle_timeout_minutes"`
}

// IdleTimeout returns the SSH idle timeout as a duration.
func (s ServerConfig) IdleTimeout() time.Duration {
	return time.Duration(s.IdleTimeoutMinutes) * time.Minute
}

// LoggingConfig defines the log level and optional rotating file sink.
type LoggingConfig struct {
	Level      string `yaml:"level"` // debug, info, warn, error
	File       string `yaml:"file"`  // empty logs to stderr
	MaxSizeMB  int    `yaml:"max_size_mb"`
	MaxBackups int    `yaml:"max_backups"`
	MaxAgeDays int    `yaml:"max_age_days"`
}

// TickInterval returns the duration of one simulation tick.
func (c Config) TickInterval() time.Duration {
	rate := c.Simulation.TickRate
	if rate <= 0 {
		rate = DefaultConfig().Simulation.TickRate
	}
	return time.Second / time.Duration(rate)
}
