package levels

import (
	"embed"
	"fmt"
	"path"
	"strings"

	"github.com/bproctor91/sidewinder/level"
)

//go:embed *.yaml
var levelsFS embed.FS

const DefaultName = "cavern"

// Load parses an embedded level by basename (.yaml optional). The empty
// name loads the default level.
func Load(name string) (*level.Level, error) {
	if name == "" {
		name = DefaultName
	}
	clean := path.Base(strings.TrimSuffix(name, ".yaml"))
	b, err := levelsFS.ReadFile(clean + ".yaml")
	if err != nil {
		return nil, fmt.Errorf("levels: %q: %w", name, err)
	}
	lvl, err := level.Parse(b)
	if err != nil {
		return nil, fmt.Errorf("levels: %q: %w", name, err)
	}
	return lvl, nil
}
