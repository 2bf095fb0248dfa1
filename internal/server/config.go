package server

import (
	"fmt"
	"os"

	"github.com/hashicorp/hcl/v2/gohcl"
	"github.com/hashicorp/hcl/v2/hclparse"

	"github.com/Hsooooo/ai-headsup-holdem/internal/game"
)

// Config is the complete server configuration.
type Config struct {
	Server *ServerSettings `hcl:"server,block"`
	Game   *GameSettings   `hcl:"game,block"`
	Auth   *AuthSettings   `hcl:"auth,block"`
}

// ServerSettings contains transport-level configuration.
type ServerSettings struct {
	Address  string `hcl:"address,optional"`
	Port     int    `hcl:"port,optional"`
	LogLevel string `hcl:"log_level,optional"`
}

// GameSettings contains the table parameters.
type GameSettings struct {
	SmallBlind      int `hcl:"small_blind,optional"`
	BigBlind        int `hcl:"big_blind,optional"`
	StartingStack   int `hcl:"starting_stack,optional"`
	ActionTimeoutMs int `hcl:"action_timeout_ms,optional"`
}

// AuthSettings holds the two seat bearer tokens. Empty tokens disable the
// seat (no token will ever resolve to it).
type AuthSettings struct {
	TokenA string `hcl:"token_a,optional"`
	TokenB string `hcl:"token_b,optional"`
}

// DefaultConfig returns the configuration used when no file is present.
func DefaultConfig() *Config {
	return &Config{
		Server: &ServerSettings{
			Address:  "localhost",
			Port:     8080,
			LogLevel: "info",
		},
		Game: &GameSettings{
			SmallBlind:      10,
			BigBlind:        20,
			StartingStack:   2000,
			ActionTimeoutMs: 300000,
		},
		Auth: &AuthSettings{},
	}
}

// LoadConfig loads configuration from an HCL file, falling back to defaults
// when the file does not exist. Missing blocks and fields keep their
// default values.
func LoadConfig(filename string) (*Config, error) {
	if _, err := os.Stat(filename); os.IsNotExist(err) {
		return DefaultConfig(), nil
	}

	parser := hclparse.NewParser()
	file, diags := parser.ParseHCLFile(filename)
	if diags.HasErrors() {
		return nil, fmt.Errorf("failed to parse HCL file: %s", diags.Error())
	}

	var config Config
	if diags := gohcl.DecodeBody(file.Body, nil, &config); diags.HasErrors() {
		return nil, fmt.Errorf("failed to decode HCL: %s", diags.Error())
	}

	defaults := DefaultConfig()
	if config.Server == nil {
		config.Server = defaults.Server
	}
	if config.Game == nil {
		config.Game = defaults.Game
	}
	if config.Auth == nil {
		config.Auth = defaults.Auth
	}
	if config.Server.Address == "" {
		config.Server.Address = defaults.Server.Address
	}
	if config.Server.Port == 0 {
		config.Server.Port = defaults.Server.Port
	}
	if config.Server.LogLevel == "" {
		config.Server.LogLevel = defaults.Server.LogLevel
	}
	if config.Game.SmallBlind == 0 {
		config.Game.SmallBlind = defaults.Game.SmallBlind
	}
	if config.Game.BigBlind == 0 {
		config.Game.BigBlind = defaults.Game.BigBlind
	}
	if config.Game.StartingStack == 0 {
		config.Game.StartingStack = defaults.Game.StartingStack
	}

	return &config, nil
}

// Validate checks the configuration for contradictions.
func (c *Config) Validate() error {
	if c.Server.Port < 1 || c.Server.Port > 65535 {
		return fmt.Errorf("invalid port: %d", c.Server.Port)
	}
	if c.Game.SmallBlind <= 0 {
		return fmt.Errorf("small blind must be positive")
	}
	if c.Game.BigBlind <= c.Game.SmallBlind {
		return fmt.Errorf("big blind must be greater than small blind")
	}
	if c.Game.StartingStack < c.Game.BigBlind {
		return fmt.Errorf("starting stack must cover at least one big blind")
	}
	if c.Game.ActionTimeoutMs < 0 {
		return fmt.Errorf("action timeout must not be negative")
	}
	return nil
}

// Addr returns the listen address.
func (c *Config) Addr() string {
	return fmt.Sprintf("%s:%d", c.Server.Address, c.Server.Port)
}

// GameConfig converts the table parameters for the game core.
func (c *Config) GameConfig() game.Config {
	return game.Config{
		Blinds: game.Blinds{
			Small: c.Game.SmallBlind,
			Big:   c.Game.BigBlind,
		},
		StartingStack: c.Game.StartingStack,
	}
}
