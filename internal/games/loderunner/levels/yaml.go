package levels

import (
	"fmt"

	"gopkg.in/yaml.v3"
)

// YAMLLevel represents the YAML structure for a level file.
type YAMLLevel struct {
	ID            string            `yaml:"id"`
	Name          string            `yaml:"name"`
	Description   string            `yaml:"description,omitempty"`
	RecoveryTicks int               `yaml:"brick_recovery_ticks,omitempty"`
	EnemyBrain    string            `yaml:"enemy_brain,omitempty"`
	Map           string            `yaml:"map"`
	Metadata      map[string]string `yaml:"metadata,omitempty"`
}

// ParseYAML parses a YAML level file.
func ParseYAML(data []byte) (Level, error) {
	var yl YAMLLevel
	if err := yaml.Unmarshal(data, &yl); err != nil {
		return Level{}, fmt.Errorf("yaml unmarshal: %w", err)
	}
	if yl.ID == "" {
		return Level{}, fmt.Errorf("level has no id")
	}

	layout, err := ParseMap(SplitMap(yl.Map))
	if err != nil {
		return Level{}, fmt.Errorf("level %s: %w", yl.ID, err)
	}

	name := yl.Name
	if name == "" {
		name = yl.ID
	}

	return Level{
		ID:            yl.ID,
		Name:          name,
		Description:   yl.Description,
		RecoveryTicks: yl.RecoveryTicks,
		EnemyBrain:    yl.EnemyBrain,
		Layout:        layout,
		Metadata:      yl.Metadata,
	}, nil
}

// FormatExtensions returns supported file extensions.
func FormatExtensions() []string {
	return []string{".yaml", ".yml"}
}
