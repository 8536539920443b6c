package config

import (
	"fmt"

	"github.com/caarlos0/env/v11"
)

// Env is the process configuration read from DETECTIVE_* variables.
type Env struct {
	Width      int32  `env:"DETECTIVE_WIDTH" envDefault:"1280"`
	Height     int32  `env:"DETECTIVE_HEIGHT" envDefault:"720"`
	TargetFPS  int32  `env:"DETECTIVE_FPS" envDefault:"60"`
	ScenePath  string `env:"DETECTIVE_SCENE" envDefault:"assets/scenes/detective.json"`
	ConfigPath string `env:"DETECTIVE_CONFIG" envDefault:"assets/config/player.yaml"`
	LogLevel   string `env:"DETECTIVE_LOG_LEVEL" envDefault:"info"`
	HotReload  bool   `env:"DETECTIVE_HOT_RELOAD" envDefault:"true"`
}

// ParseEnv loads configuration from environment variables.
func ParseEnv(target any) error {
	if err := env.Parse(target); err != nil {
		return fmt.Errorf("parse env: %w", err)
	}
	return nil
}

func LoadEnv() (Env, error) {
	var e Env
	if err := ParseEnv(&e); err != nil {
		return Env{}, err
	}
	if e.Width <= 0 || e.Height <= 0 {
		return Env{}, fmt.Errorf("window size must be positive, got %dx%d", e.Width, e.Height)
	}
	return e, nil
}
