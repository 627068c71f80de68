// Package config loads game settings from a YAML file and BLOCKFALL_*
// environment variables.
package config

import (
	"errors"
	"fmt"

	"github.com/ilyakaznacheev/cleanenv"
)

var ErrInvalidConfig = errors.New("invalid config")

type Config struct {
	LogLevel string `yaml:"log-level" env:"BLOCKFALL_LOG_LEVEL" env-default:"info"`
	LogFile  string `yaml:"log-file" env:"BLOCKFALL_LOG_FILE"`
	Board    Board  `yaml:"board"`
	Window   Window `yaml:"window"`
}

type Board struct {
	Height int `yaml:"height" env:"BLOCKFALL_BOARD_HEIGHT" env-default:"20"`
	Width  int `yaml:"width" env:"BLOCKFALL_BOARD_WIDTH" env-default:"10"`
}

type Window struct {
	Title    string `yaml:"title" env:"BLOCKFALL_WINDOW_TITLE" env-default:"Tetris"`
	Width    int    `yaml:"width" env:"BLOCKFALL_WINDOW_WIDTH" env-default:"600"`
	Height   int    `yaml:"height" env:"BLOCKFALL_WINDOW_HEIGHT" env-default:"700"`
	FPS      int    `yaml:"fps" env:"BLOCKFALL_FPS" env-default:"25"`
	CellSize int    `yaml:"cell-size" env:"BLOCKFALL_CELL_SIZE" env-default:"30"`
	OriginX  int    `yaml:"origin-x" env:"BLOCKFALL_ORIGIN_X" env-default:"100"`
	OriginY  int    `yaml:"origin-y" env:"BLOCKFALL_ORIGIN_Y" env-default:"60"`
	Debug    bool   `yaml:"debug" env:"BLOCKFALL_DEBUG" env-default:"false"`
}

// Load reads the file at path, or only the environment when path is empty,
// and validates the result.
func Load(path string) (*Config, error) {
	config := &Config{}

	var err error
	if path == "" {
		err = cleanenv.ReadEnv(config)
	} else {
		err = cleanenv.ReadConfig(path, config)
	}
	if err != nil {
		return nil, fmt.Errorf("unable to load config %q: %w", path, err)
	}

	if err := config.Validate(); err != nil {
		return nil, err
	}
	return config, nil
}

// MustLoad is like Load but panics on error.
func MustLoad(path string) *Config {
	config, err := Load(path)
	if err != nil {
		panic(err)
	}
	return config
}

func (c *Config) Validate() error {
	if c.Board.Height <= 0 || c.Board.Width <= 0 {
		return fmt.Errorf("%w: board must be at least 1x1, got %dx%d", ErrInvalidConfig, c.Board.Height, c.Board.Width)
	}
	if c.Window.FPS <= 0 {
		return fmt.Errorf("%w: fps must be positive, got %d", ErrInvalidConfig, c.Window.FPS)
	}
	if c.Window.CellSize <= 2 {
		return fmt.Errorf("%w: cell size must be larger than 2, got %d", ErrInvalidConfig, c.Window.CellSize)
	}
	return nil
}
