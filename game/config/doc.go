// Package config provides board configuration management.
//
// The config package handles:
//   - Loading board configurations from JSON and YAML files
//   - Filling missing fields from the classic board
//   - Default configuration management
//   - Configuration discovery and listing
//
// Configuration Format:
//
// Each file in the configs directory describes one board:
//
//	name: quick
//	tile_count: 50
//	ladders:
//	  4: 18
//	  21: 37
//	max_players: 4
//
// The file name without its extension is the config ID used when creating a
// session. Unset fields take the classic board's values. Ladder problems are
// logged as warnings and the board is still loaded.
//
// Usage:
//
//	manager, err := config.NewManager("configs", logger)
//	if err != nil {
//		log.Fatal(err)
//	}
//
//	quick, err := manager.LoadConfig("quick")
//	defaultConfig := manager.GetDefault()
//	configs, err := manager.ListConfigs()
package config
