package assets

import (
	"embed"
	"fmt"
	"path"
	"strings"
)

//go:embed animations.yaml settings.toml scripts
var assetsFS embed.FS

// DefaultSettings returns the embedded settings.toml.
func DefaultSettings() []byte {
	b, err := assetsFS.ReadFile("settings.toml")
	if err != nil {
		// embedded at build time; absence is a packaging bug
		panic(fmt.Sprintf("assets: settings.toml missing: %v", err))
	}
	return b
}

// Script returns an embedded behavior script by name (without extension).
func Script(name string) ([]byte, error) {
	clean := path.Base(strings.TrimSuffix(name, ".tengo"))
	b, err := assetsFS.ReadFile(path.Join("scripts", clean+".tengo"))
	if err != nil {
		return nil, fmt.Errorf("assets: script %q: %w", name, err)
	}
	return b, nil
}
