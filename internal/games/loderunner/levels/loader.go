// Package levels loads Lode Runner boards from YAML files holding ASCII maps.
// This package depends on engine but engine does not depend on levels.
package levels

import (
	"embed"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/vovakirdan/tui-loderunner/internal/games/loderunner/engine"
)

// ErrLevelNotFound is returned when no level has the requested id.
var ErrLevelNotFound = errors.New("levels: level not found")

//go:embed builtin/*.yaml
var builtinFS embed.FS

// Level represents a complete level definition.
type Level struct {
	ID            string
	Name          string
	Description   string
	RecoveryTicks int    // 0 means use the configured default
	EnemyBrain    string // empty means use the configured default
	Layout        engine.Layout
	Metadata      map[string]string
	FilePath      string
}

// Loader handles loading levels from a directory, falling back to the
// built-in levels when Root is empty.
type Loader struct {
	Root string
}

// NewLoader creates a new level loader.
func NewLoader(root string) *Loader {
	return &Loader{Root: root}
}

// LoadAll loads every level. Levels from Root override built-in levels
// with the same id. Returns levels sorted by ID for deterministic ordering.
func (l *Loader) LoadAll() ([]Level, error) {
	byID := make(map[string]Level)

	builtin, err := Builtin()
	if err != nil {
		return nil, err
	}
	for _, lvl := range builtin {
		byID[lvl.ID] = lvl
	}

	if l.Root != "" {
		err := filepath.WalkDir(l.Root, func(path string, d os.DirEntry, err error) error {
			if err != nil {
				return err
			}
			if d.IsDir() || !isSupportedExtension(filepath.Ext(path)) {
				return nil
			}

			lvl, err := l.LoadFile(path)
			if err != nil {
				// Skip invalid files
				return nil
			}
			byID[lvl.ID] = lvl
			return nil
		})
		if err != nil {
			return nil, fmt.Errorf("levels: walking directory %s: %w", l.Root, err)
		}
	}

	levels := make([]Level, 0, len(byID))
	for _, lvl := range byID {
		levels = append(levels, lvl)
	}
	sort.Slice(levels, func(i, j int) bool {
		return levels[i].ID < levels[j].ID
	})
	return levels, nil
}

// LoadFile loads a single level file.
func (l *Loader) LoadFile(path string) (Level, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Level{}, fmt.Errorf("levels: reading file %s: %w", path, err)
	}

	lvl, err := ParseYAML(data)
	if err != nil {
		return Level{}, fmt.Errorf("levels: parsing file %s: %w", path, err)
	}
	lvl.FilePath = path
	return lvl, nil
}

// LoadByID loads a specific level by ID.
func (l *Loader) LoadByID(id string) (Level, error) {
	levels, err := l.LoadAll()
	if err != nil {
		return Level{}, err
	}

	for _, lvl := range levels {
		if lvl.ID == id {
			return lvl, nil
		}
	}

	return Level{}, fmt.Errorf("%w: %s", ErrLevelNotFound, id)
}

// ListIDs returns all level IDs in sorted order.
func (l *Loader) ListIDs() ([]string, error) {
	levels, err := l.LoadAll()
	if err != nil {
		return nil, err
	}

	ids := make([]string, len(levels))
	for i, lvl := range levels {
		ids[i] = lvl.ID
	}
	return ids, nil
}

// Builtin returns the levels compiled into the binary.
func Builtin() ([]Level, error) {
	entries, err := fs.ReadDir(builtinFS, "builtin")
	if err != nil {
		return nil, fmt.Errorf("levels: reading builtin levels: %w", err)
	}

	levels := make([]Level, 0, len(entries))
	for _, e := range entries {
		data, err := builtinFS.ReadFile("builtin/" + e.Name())
		if err != nil {
			return nil, fmt.Errorf("levels: reading builtin %s: %w", e.Name(), err)
		}
		lvl, err := ParseYAML(data)
		if err != nil {
			return nil, fmt.Errorf("levels: parsing builtin %s: %w", e.Name(), err)
		}
		lvl.FilePath = "builtin/" + e.Name()
		levels = append(levels, lvl)
	}
	return levels, nil
}

// isSupportedExtension checks if extension is supported.
func isSupportedExtension(ext string) bool {
	ext = strings.ToLower(ext)
	for _, supported := range FormatExtensions() {
		if ext == supported {
			return true
		}
	}
	return false
}
