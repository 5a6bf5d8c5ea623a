package config

import (
	"fmt"
	"os"

	"github.com/BurntSushi/toml"

	"github.com/bproctor91/sidewinder/assets"
)

type Config struct {
	Window     WindowConfig     `toml:"window"`
	Simulation SimulationConfig `toml:"simulation"`
	Movement   MovementConfig   `toml:"movement"`
	Combat     CombatConfig     `toml:"combat"`
	Logging    LoggingConfig    `toml:"logging"`
}

type WindowConfig struct {
	Title  string `toml:"title"`
	Width  int    `toml:"width"`
	Height int    `toml:"height"`
}

type SimulationConfig struct {
	PixelsPerMeter float64 `toml:"pixels_per_meter"`
	Gravity        float64 `toml:"gravity"` // m/s², Y-down
	TickRate       float64 `toml:"tick_rate"`
}

type MovementConfig struct {
	MoveSpeed    float64 `toml:"move_speed"`
	JumpSpeed    float64 `toml:"jump_speed"`
	WallSlideMax float64 `toml:"wall_slide_max"`
	MaxJumps     int     `toml:"max_jumps"`
	CoyoteFrames int     `toml:"coyote_frames"`
}

type CombatConfig struct {
	ProjectileSpeed    float64 `toml:"projectile_speed"`
	ProjectileLifetime float64 `toml:"projectile_lifetime"`
	ProjectileDamage   int     `toml:"projectile_damage"`
	FireCooldown       float64 `toml:"fire_cooldown"`
}

type LoggingConfig struct {
	Level  string `toml:"level"`
	Format string `toml:"format"` // "json" or "console"
}

// Load reads settings from path, or the embedded defaults when path is
// empty.
func Load(path string) (*Config, error) {
	data := assets.DefaultSettings()
	if path != "" {
		b, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("config: read %s: %w", path, err)
		}
		data = b
	}

	var cfg Config
	if err := toml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("config: parse: %w", err)
	}
	if err := cfg.validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

func (c *Config) validate() error {
	if c.Simulation.PixelsPerMeter <= 0 {
		return fmt.Errorf("config: pixels_per_meter must be positive")
	}
	if c.Simulation.TickRate <= 0 {
		return fmt.Errorf("config: tick_rate must be positive")
	}
	if c.Movement.MaxJumps < 1 {
		return fmt.Errorf("config: max_jumps must be at least 1")
	}
	if c.Movement.CoyoteFrames < 0 {
		return fmt.Errorf("config: coyote_frames must not be negative")
	}
	if c.Combat.ProjectileLifetime <= 0 {
		return fmt.Errorf("config: projectile_lifetime must be positive")
	}
	return nil
}
