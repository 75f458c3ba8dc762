package engine

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"dario.cat/mergo"
	"gopkg.in/yaml.v3"
)

var (
	ErrNoPlayers      = errors.New("at least one player is required")
	ErrTooManyPlayers = errors.New("too many players")
)

// Messages are the texts shown to players for game events
type Messages struct {
	Welcome   string `json:"welcome" yaml:"welcome"`
	Forward   string `json:"forward" yaml:"forward"`
	Backward  string `json:"backward" yaml:"backward"`
	Ladder    string `json:"ladder" yaml:"ladder"`
	BonusTurn string `json:"bonus_turn" yaml:"bonus_turn"`
	Win       string `json:"win" yaml:"win"`
	Reset     string `json:"reset" yaml:"reset"`
}

// GameConfig describes a board and the player limits for a game table
type GameConfig struct {
	Name                     string      `json:"name" yaml:"name"`
	Description              string      `json:"description" yaml:"description"`
	TileCount                int         `json:"tile_count" yaml:"tile_count"`
	Ladders                  map[int]int `json:"ladders" yaml:"ladders"`
	RegenerateLaddersOnReset *bool       `json:"regenerate_ladders_on_reset,omitempty" yaml:"regenerate_ladders_on_reset,omitempty"`
	MinPlayers               int         `json:"min_players" yaml:"min_players"`
	MaxPlayers               int         `json:"max_players" yaml:"max_players"`
	DefaultPlayers           []string    `json:"default_players,omitempty" yaml:"default_players,omitempty"`
	Messages                 Messages    `json:"messages" yaml:"messages"`
}

// RegeneratesLadders reports whether Reset draws a fresh ladder set
func (c *GameConfig) RegeneratesLadders() bool {
	return c.RegenerateLaddersOnReset == nil || *c.RegenerateLaddersOnReset
}

// DefaultGameConfig returns the classic 100 tile board
func DefaultGameConfig() *GameConfig {
	ladders := make(map[int]int, len(ClassicLadders))
	for from, to := range ClassicLadders {
		ladders[from] = to
	}
	return &GameConfig{
		Name:        "classic",
		Description: "Classic 100 tile board with five curated ladders",
		TileCount:   DefaultTileCount,
		Ladders:     ladders,
		MinPlayers:  1,
		MaxPlayers:  MaxPlayers,
		Messages: Messages{
			Welcome:   "Press roll to start!",
			Forward:   "%s moves forward %d",
			Backward:  "%s moves back %d",
			Ladder:    "%s climbs a ladder to %d!",
			BonusTurn: "%s landed on a star tile: extra turn!",
			Win:       "%s reached the finish!",
			Reset:     "New game started, ladders have moved",
		},
	}
}

// ApplyDefaults fills every unset field from the classic board.
// A board that lists its own ladders keeps exactly those ladders.
func ApplyDefaults(config *GameConfig) error {
	custom := config.Ladders
	config.Ladders = nil

	if err := mergo.Merge(config, DefaultGameConfig()); err != nil {
		config.Ladders = custom
		return fmt.Errorf("failed to apply config defaults: %w", err)
	}

	if len(custom) > 0 {
		config.Ladders = custom
	}
	return nil
}

// ValidateGameConfig validates a game configuration.
// Ladder problems are not errors here, see LadderWarnings.
func ValidateGameConfig(config *GameConfig) error {
	if config == nil {
		return fmt.Errorf("config validation: config is required")
	}
	if config.Name == "" {
		return fmt.Errorf("config validation: name is required")
	}
	if config.TileCount < MinTileCount || config.TileCount > MaxTileCount {
		return fmt.Errorf("config validation: tile_count must be between %d and %d, got %d",
			MinTileCount, MaxTileCount, config.TileCount)
	}
	if config.MinPlayers < 1 || config.MinPlayers > MaxPlayers {
		return fmt.Errorf("config validation: min_players must be between 1 and %d, got %d", MaxPlayers, config.MinPlayers)
	}
	if config.MaxPlayers < config.MinPlayers || config.MaxPlayers > MaxPlayers {
		return fmt.Errorf("config validation: max_players must be between min_players (%d) and %d, got %d",
			config.MinPlayers, MaxPlayers, config.MaxPlayers)
	}
	if len(config.DefaultPlayers) > config.MaxPlayers {
		return fmt.Errorf("config validation: default_players lists %d names but max_players is %d",
			len(config.DefaultPlayers), config.MaxPlayers)
	}
	if config.Messages.Win != "" && !strings.Contains(config.Messages.Win, "%s") {
		return fmt.Errorf("config validation: messages.win must contain %%s for the player name")
	}
	return nil
}

// NormalizePlayerNames applies the config's player bounds and names blank entries "Player i"
func NormalizePlayerNames(config *GameConfig, names []string) ([]string, error) {
	if len(names) == 0 {
		names = config.DefaultPlayers
	}
	if len(names) == 0 || len(names) < config.MinPlayers {
		return nil, fmt.Errorf("%w: need at least %d", ErrNoPlayers, max(config.MinPlayers, 1))
	}
	if len(names) > config.MaxPlayers {
		return nil, fmt.Errorf("%w: %d players, at most %d allowed", ErrTooManyPlayers, len(names), config.MaxPlayers)
	}

	out := make([]string, len(names))
	for i, name := range names {
		name = strings.TrimSpace(name)
		if name == "" {
			name = fmt.Sprintf("Player %d", i+1)
		}
		out[i] = name
	}
	return out, nil
}

// ParseGameConfig decodes a JSON or YAML board config, fills defaults and validates it
func ParseGameConfig(data []byte, format string) (*GameConfig, error) {
	var config GameConfig
	switch strings.ToLower(format) {
	case ".yaml", ".yml", "yaml", "yml":
		if err := yaml.Unmarshal(data, &config); err != nil {
			return nil, fmt.Errorf("failed to parse yaml config: %w", err)
		}
	default:
		if err := json.Unmarshal(data, &config); err != nil {
			return nil, fmt.Errorf("failed to parse json config: %w", err)
		}
	}

	if err := ApplyDefaults(&config); err != nil {
		return nil, err
	}
	if err := ValidateGameConfig(&config); err != nil {
		return nil, err
	}
	return &config, nil
}

// LoadGameConfig loads a game configuration from a JSON or YAML file
func LoadGameConfig(filename string) (*GameConfig, error) {
	data, err := os.ReadFile(filename)
	if err != nil {
		return nil, err
	}
	return ParseGameConfig(data, filepath.Ext(filename))
}
