package engine

import (
	"errors"
	"fmt"
	"math"
	"math/rand"
	"sort"
)

// ErrLadderGeneration is returned when the rejection sampler cannot place every ladder
var ErrLadderGeneration = errors.New("ladder generation exhausted")

// ClassicLadders is the curated ladder set used for a fresh classic board.
// 75 is also a bonus tile; LadderWarnings reports it and the ladder is kept.
var ClassicLadders = map[int]int{
	3:  22,
	8:  26,
	28: 55,
	58: 77,
	75: 96,
}

// Board holds the static tile data of a game: size, ladders and bonus tiles
type Board struct {
	tileCount  int
	ladders    map[int]int
	bonusTiles map[int]bool
}

// NewBoard creates a board with the given tile count and ladder mapping.
// The mapping is copied and kept as-is even when LadderWarnings reports problems.
func NewBoard(tileCount int, ladders map[int]int) *Board {
	b := &Board{
		tileCount:  tileCount,
		ladders:    make(map[int]int, len(ladders)),
		bonusTiles: make(map[int]bool),
	}
	for from, to := range ladders {
		b.ladders[from] = to
	}
	for t := BonusTileInterval; t < tileCount; t += BonusTileInterval {
		b.bonusTiles[t] = true
	}
	return b
}

// TileCount returns the finish tile number
func (b *Board) TileCount() int {
	return b.tileCount
}

// IsBonusTile reports whether landing on tile grants bonus turns
func (b *Board) IsBonusTile(tile int) bool {
	return b.bonusTiles[tile]
}

// LadderDestination returns the top of the ladder starting at tile
func (b *Board) LadderDestination(tile int) (int, bool) {
	to, ok := b.ladders[tile]
	return to, ok
}

// Ladders returns a copy of the ladder mapping
func (b *Board) Ladders() map[int]int {
	out := make(map[int]int, len(b.ladders))
	for from, to := range b.ladders {
		out[from] = to
	}
	return out
}

// BonusTiles returns the bonus tiles in ascending order
func (b *Board) BonusTiles() []int {
	tiles := make([]int, 0, len(b.bonusTiles))
	for t := range b.bonusTiles {
		tiles = append(tiles, t)
	}
	sort.Ints(tiles)
	return tiles
}

// setLadders replaces the ladder mapping, used by reset
func (b *Board) setLadders(ladders map[int]int) {
	b.ladders = make(map[int]int, len(ladders))
	for from, to := range ladders {
		b.ladders[from] = to
	}
}

// LadderWarnings lists the ladders that break the board invariants.
// Problems are not fatal: the caller logs them and keeps the mapping.
func LadderWarnings(tileCount int, ladders map[int]int) []string {
	sources := make([]int, 0, len(ladders))
	for from := range ladders {
		sources = append(sources, from)
	}
	sort.Ints(sources)

	var warnings []string
	for _, from := range sources {
		to := ladders[from]
		if from < 1 || from > tileCount || to < 1 || to > tileCount {
			warnings = append(warnings, fmt.Sprintf("invalid ladder mapping: %d -> %d (tiles are 1..%d)", from, to, tileCount))
			continue
		}
		if from == to {
			warnings = append(warnings, fmt.Sprintf("ladder at %d leads to itself", from))
		}
		if from%BonusTileInterval == 0 && from < tileCount {
			warnings = append(warnings, fmt.Sprintf("ladder at %d starts on a bonus tile", from))
		}
	}
	return warnings
}

// GenerateLadders places count ladders by rejection sampling.
// Sources are drawn from [2, tileCount-20] and climb 5..19 tiles. Candidates that reuse a
// source, reach the finish or start on a bonus tile are rejected. When the attempt budget runs
// out the ladders placed so far are returned with ErrLadderGeneration.
func GenerateLadders(rng *rand.Rand, tileCount, count int) (map[int]int, error) {
	ladders := make(map[int]int, count)

	maxSource := tileCount - LadderSourceMargin
	if maxSource < 2 {
		return ladders, fmt.Errorf("%w: board of %d tiles has no room for ladders", ErrLadderGeneration, tileCount)
	}

	for attempt := 0; len(ladders) < count; attempt++ {
		if attempt >= MaxLadderAttempts {
			return ladders, fmt.Errorf("%w: placed %d of %d ladders after %d attempts",
				ErrLadderGeneration, len(ladders), count, attempt)
		}

		from := 2 + rng.Intn(maxSource-1)
		to := from + MinLadderOffset + rng.Intn(MaxLadderOffset-MinLadderOffset+1)

		if _, taken := ladders[from]; taken {
			continue
		}
		if to >= tileCount {
			continue
		}
		if from%BonusTileInterval == 0 {
			continue
		}
		ladders[from] = to
	}

	return ladders, nil
}

// IsPrime reports whether n is prime using trial division
func IsPrime(n int) bool {
	if n < 2 {
		return false
	}
	limit := int(math.Sqrt(float64(n)))
	for i := 2; i <= limit; i++ {
		if n%i == 0 {
			return false
		}
	}
	return true
}
