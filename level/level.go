package level

import (
	"errors"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// ErrBadLevel marks malformed level input. The failed document is
// rejected; a running session keeps its previous level.
var ErrBadLevel = errors.New("level: bad level data")

// Segment is one static ground/wall line, in metres.
type Segment struct {
	X1 float64 `yaml:"x1"`
	Y1 float64 `yaml:"y1"`
	X2 float64 `yaml:"x2"`
	Y2 float64 `yaml:"y2"`
}

// Spawn is one typed spawn descriptor: a kind tag plus a position in
// metres. Extra fields only apply to some kinds.
type Spawn struct {
	Kind     string  `yaml:"kind"`
	X        float64 `yaml:"x"`
	Y        float64 `yaml:"y"`
	Behavior string  `yaml:"behavior,omitempty"`
	MinX     float64 `yaml:"min_x,omitempty"`
	MaxX     float64 `yaml:"max_x,omitempty"`
}

type Level struct {
	Name   string    `yaml:"name"`
	Ground []Segment `yaml:"ground"`
	Spawns []Spawn   `yaml:"spawns"`
}

// Parse validates and loads a level document.
func Parse(data []byte) (*Level, error) {
	var lvl Level
	if err := yaml.Unmarshal(data, &lvl); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrBadLevel, err)
	}
	if lvl.Name == "" {
		return nil, fmt.Errorf("%w: missing name", ErrBadLevel)
	}
	if len(lvl.Ground) == 0 {
		return nil, fmt.Errorf("%w: %s: no ground geometry", ErrBadLevel, lvl.Name)
	}
	for i, sp := range lvl.Spawns {
		if sp.Kind == "" {
			return nil, fmt.Errorf("%w: %s: spawn %d missing kind", ErrBadLevel, lvl.Name, i)
		}
	}
	return &lvl, nil
}

// LoadFile loads a level from a YAML file on disk.
func LoadFile(path string) (*Level, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("level: read %s: %w", path, err)
	}
	lvl, err := Parse(b)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return lvl, nil
}
