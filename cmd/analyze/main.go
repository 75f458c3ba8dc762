// Command analyze prints quick, human-readable heuristics about board
// configuration files. It summarizes tile count and ladders, lists the bonus
// and prime tiles, and reports the shortest possible route to the finish along
// with any ladder warnings.
//
// Usage: go run ./cmd/analyze [config-dir]
package main

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/samber/lo"

	"github.com/wricardo/mcp-training/laddergame/game/engine"
)

// Analysis holds the derived facts about one board config.
type Analysis struct {
	File       string
	Name       string
	TileCount  int
	Ladders    map[int]int
	BonusTiles []int
	PrimeTiles []int
	Route      []int // shortest route from the start, nil when the finish is unreachable
	LaddersHit []int
	Warnings   []string
}

func main() {
	configDir := "configs"
	if len(os.Args) > 1 {
		configDir = os.Args[1]
	}

	files, err := configFiles(configDir)
	if err != nil {
		fmt.Printf("Error finding config files: %v\n", err)
		os.Exit(1)
	}

	for _, configFile := range files {
		fmt.Printf("\n=== Analyzing %s ===\n", filepath.Base(configFile))
		analysis, err := analyzeConfig(configFile)
		if err != nil {
			fmt.Printf("Error: %v\n", err)
			continue
		}
		printAnalysis(os.Stdout, analysis)
	}
}

func configFiles(dir string) ([]string, error) {
	var files []string
	for _, pattern := range []string{"*.json", "*.yaml", "*.yml"} {
		matches, err := filepath.Glob(filepath.Join(dir, pattern))
		if err != nil {
			return nil, err
		}
		files = append(files, matches...)
	}
	sort.Strings(files)
	return files, nil
}

func analyzeConfig(path string) (*Analysis, error) {
	config, err := engine.LoadGameConfig(path)
	if err != nil {
		return nil, err
	}

	board := engine.NewBoard(config.TileCount, config.Ladders)
	analysis := &Analysis{
		File:       filepath.Base(path),
		Name:       config.Name,
		TileCount:  config.TileCount,
		Ladders:    board.Ladders(),
		BonusTiles: board.BonusTiles(),
		PrimeTiles: engine.PrimeTiles(config.TileCount),
		Warnings:   engine.LadderWarnings(config.TileCount, config.Ladders),
	}

	route := engine.ShortestPath(engine.StartTile, config.TileCount, config.TileCount, analysis.Ladders)
	if len(route) > 0 && route[len(route)-1] == config.TileCount {
		analysis.Route = route
		for i := 1; i < len(route); i++ {
			if to, ok := analysis.Ladders[route[i-1]]; ok && to == route[i] {
				analysis.LaddersHit = append(analysis.LaddersHit, route[i-1])
			}
		}
	}

	return analysis, nil
}

func printAnalysis(w io.Writer, a *Analysis) {
	fmt.Fprintf(w, "Name: %s\n", a.Name)
	fmt.Fprintf(w, "Tiles: %d\n", a.TileCount)

	sources := lo.Keys(a.Ladders)
	sort.Ints(sources)
	ladders := lo.Map(sources, func(from int, _ int) string {
		return fmt.Sprintf("%d->%d", from, a.Ladders[from])
	})
	fmt.Fprintf(w, "Ladders (%d): %s\n", len(ladders), strings.Join(ladders, ", "))
	fmt.Fprintf(w, "Bonus tiles: %d\n", len(a.BonusTiles))
	fmt.Fprintf(w, "Prime tiles (path search): %d\n", len(a.PrimeTiles))

	if a.Route == nil {
		fmt.Fprintf(w, "⚠️  WARNING: tile %d cannot be reached from the start!\n", a.TileCount)
	} else {
		fmt.Fprintf(w, "✅ Shortest route: %d moves, ladders used at %v\n", len(a.Route)-1, a.LaddersHit)
	}

	for _, warning := range a.Warnings {
		fmt.Fprintf(w, "⚠️  %s\n", warning)
	}
}
