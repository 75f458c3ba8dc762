package engine

import "golang.org/x/exp/constraints"

// clamp bounds v to [lo, hi]
func clamp[T constraints.Integer](v, lo, hi T) T {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

// ShortestPathLength returns the number of moves on the best route from start to the finish,
// or -1 when the finish cannot be reached
func ShortestPathLength(board *Board, start int) int {
	n := board.TileCount()
	path := ShortestPath(start, n, n, board.ladders)
	if path[len(path)-1] != n {
		return -1
	}
	return len(path) - 1
}

// PrimeTiles lists the tiles from which a roll uses the path search
func PrimeTiles(tileCount int) []int {
	var primes []int
	for t := StartTile; t <= tileCount; t++ {
		if IsPrime(t) {
			primes = append(primes, t)
		}
	}
	return primes
}
