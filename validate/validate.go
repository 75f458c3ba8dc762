// Command validate provides a small CLI that validates board configuration
// files (JSON or YAML) in the ../configs directory. It checks:
//   - file syntax, required fields and player bounds
//   - ladder mappings (inside the board, not onto themselves, not from a bonus tile)
//   - message templates carry the %s player placeholder
//   - the finish can be reached from the start tile
package main

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/wricardo/mcp-training/laddergame/game/engine"
)

// ValidationResult captures the outcome of validating a single file.
// If Valid is true, Errors contains informational messages; otherwise it
// accumulates the validation errors that were found. Warnings never make a
// file invalid.
type ValidationResult struct {
	File     string
	Valid    bool
	Errors   []string
	Warnings []string
}

// validateConfig loads and validates a single board configuration file.
func validateConfig(filePath string) ValidationResult {
	result := ValidationResult{
		File:   filepath.Base(filePath),
		Valid:  true,
		Errors: []string{},
	}

	data, err := os.ReadFile(filePath)
	if err != nil {
		result.Valid = false
		result.Errors = append(result.Errors, fmt.Sprintf("Failed to read file: %v", err))
		return result
	}

	config, err := engine.ParseGameConfig(data, filepath.Ext(filePath))
	if err != nil {
		result.Valid = false
		result.Errors = append(result.Errors, err.Error())
		return result
	}

	result.Warnings = engine.LadderWarnings(config.TileCount, config.Ladders)

	// Validate messages
	templates := map[string]string{
		"forward":    config.Messages.Forward,
		"backward":   config.Messages.Backward,
		"ladder":     config.Messages.Ladder,
		"bonus_turn": config.Messages.BonusTurn,
	}
	keys := make([]string, 0, len(templates))
	for key := range templates {
		keys = append(keys, key)
	}
	sort.Strings(keys)
	for _, key := range keys {
		if !strings.Contains(templates[key], "%s") {
			result.Valid = false
			result.Errors = append(result.Errors, fmt.Sprintf("Message %s must contain %%s for the player name", key))
		}
	}

	// Reachability of the finish
	if result.Valid {
		reachability := validateReachability(config.TileCount, config.Ladders)
		if !reachability.Valid {
			result.Valid = false
		}
		result.Errors = append(result.Errors, reachability.Errors...)
	}

	// Add informational data
	if result.Valid {
		result.Errors = append(result.Errors, fmt.Sprintf("✓ Name: %s", config.Name))
		result.Errors = append(result.Errors, fmt.Sprintf("✓ Tiles: %d", config.TileCount))
		result.Errors = append(result.Errors, fmt.Sprintf("✓ Ladders: %d", len(config.Ladders)))
		result.Errors = append(result.Errors, fmt.Sprintf("✓ Players: %d-%d", config.MinPlayers, config.MaxPlayers))
		if config.RegeneratesLadders() {
			result.Errors = append(result.Errors, "✓ Ladders move on reset")
		}
	}

	return result
}

// validateReachability ensures the finish can be reached from the start tile
// over single steps and ladders.
func validateReachability(tileCount int, ladders map[int]int) ValidationResult {
	result := ValidationResult{
		Valid:  true,
		Errors: []string{},
	}

	board := engine.NewBoard(tileCount, ladders)
	moves := engine.ShortestPathLength(board, engine.StartTile)
	if moves < 0 {
		result.Valid = false
		result.Errors = append(result.Errors, fmt.Sprintf("Finish tile %d is unreachable from tile %d", tileCount, engine.StartTile))
		return result
	}

	result.Errors = append(result.Errors, fmt.Sprintf("✓ Shortest route: %d moves", moves))
	return result
}

// main scans ../configs for board files and validates each one, printing a
// concise report and exiting with non-zero status if any are invalid.
func main() {
	configDir := "../configs"
	if len(os.Args) > 1 {
		configDir = os.Args[1]
	}

	var files []string
	for _, pattern := range []string{"*.json", "*.yaml", "*.yml"} {
		matches, err := filepath.Glob(filepath.Join(configDir, pattern))
		if err != nil {
			fmt.Printf("Error finding config files: %v\n", err)
			os.Exit(1)
		}
		files = append(files, matches...)
	}
	sort.Strings(files)

	allValid := true
	for _, file := range files {
		result := validateConfig(file)

		fmt.Printf("\n%s %s\n", strings.Repeat("=", 20), result.File)

		if result.Valid {
			fmt.Println("✅ VALID")
			for _, info := range result.Errors {
				fmt.Println("  " + info)
			}
		} else {
			fmt.Println("❌ INVALID")
			allValid = false
			for _, err := range result.Errors {
				if !strings.HasPrefix(err, "✓") {
					fmt.Println("  ❌ " + err)
				}
			}
		}
		for _, warning := range result.Warnings {
			fmt.Println("  ⚠️  " + warning)
		}
	}

	fmt.Printf("\n%s\n", strings.Repeat("=", 40))
	if allValid {
		fmt.Println("✅ All configurations are valid!")
	} else {
		fmt.Println("❌ Some configurations have errors")
		os.Exit(1)
	}
}
