// Package config loads game settings from an optional battlebox.yaml
// next to the binary, layered over built-in defaults.
package config

import (
	"errors"
	"fmt"

	"github.com/spf13/viper"
)

// Config is the full settings surface of the game.
type Config struct {
	WindowWidth  int    `mapstructure:"window_width"`
	WindowHeight int    `mapstructure:"window_height"`
	Title        string `mapstructure:"title"`

	// Arena is the battle box in screen pixels.
	ArenaX      float64 `mapstructure:"arena_x"`
	ArenaY      float64 `mapstructure:"arena_y"`
	ArenaWidth  float64 `mapstructure:"arena_width"`
	ArenaHeight float64 `mapstructure:"arena_height"`

	SoulSpeed           float64 `mapstructure:"soul_speed"`
	StartingHP          float64 `mapstructure:"starting_hp"`
	InvincibilityFrames int     `mapstructure:"invincibility_frames"`

	// Enemy is the default encounter name under prefabs/enemies.
	Enemy string `mapstructure:"enemy"`
	Debug bool   `mapstructure:"debug"`
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("window_width", 640)
	v.SetDefault("window_height", 480)
	v.SetDefault("title", "battlebox")
	v.SetDefault("arena_x", 160)
	v.SetDefault("arena_y", 120)
	v.SetDefault("arena_width", 320)
	v.SetDefault("arena_height", 240)
	v.SetDefault("soul_speed", 2.5)
	v.SetDefault("starting_hp", 20)
	v.SetDefault("invincibility_frames", 60)
	v.SetDefault("enemy", "dummy")
	v.SetDefault("debug", false)
}

// Load reads battlebox.yaml from the working directory when present;
// a missing file just means defaults.
func Load() (*Config, error) {
	v := viper.New()
	setDefaults(v)
	v.SetConfigName("battlebox")
	v.SetConfigType("yaml")
	v.AddConfigPath(".")

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return nil, fmt.Errorf("config: read battlebox.yaml: %w", err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("config: unmarshal: %w", err)
	}
	if err := cfg.validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

func (c *Config) validate() error {
	if c.WindowWidth <= 0 || c.WindowHeight <= 0 {
		return fmt.Errorf("config: window size must be positive, got %dx%d", c.WindowWidth, c.WindowHeight)
	}
	if c.ArenaWidth <= 0 || c.ArenaHeight <= 0 {
		return fmt.Errorf("config: arena size must be positive, got %gx%g", c.ArenaWidth, c.ArenaHeight)
	}
	if c.SoulSpeed <= 0 {
		return fmt.Errorf("config: soul_speed must be positive, got %g", c.SoulSpeed)
	}
	if c.StartingHP <= 0 {
		return fmt.Errorf("config: starting_hp must be positive, got %g", c.StartingHP)
	}
	if c.InvincibilityFrames < 0 {
		return fmt.Errorf("config: invincibility_frames must not be negative, got %d", c.InvincibilityFrames)
	}
	return nil
}
