package levels

import "testing"

func TestLoadDefaultLevel(t *testing.T) {
	for _, name := range []string{"", DefaultName, DefaultName + ".yaml"} {
		lvl, err := Load(name)
		if err != nil {
			t.Fatalf("Load(%q): %v", name, err)
		}
		if lvl.Name != DefaultName {
			t.Fatalf("Load(%q): name = %q", name, lvl.Name)
		}
		if len(lvl.Ground) == 0 {
			t.Fatalf("default level needs ground geometry")
		}

		var hasPlayer bool
		for _, sp := range lvl.Spawns {
			if sp.Kind == "player" {
				hasPlayer = true
			}
		}
		if !hasPlayer {
			t.Fatalf("default level needs a player spawn")
		}
	}
}

func TestLoadUnknownLevel(t *testing.T) {
	if _, err := Load("atlantis"); err == nil {
		t.Fatalf("expected an error for an unknown level")
	}
}
