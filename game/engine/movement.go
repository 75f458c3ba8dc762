package engine

// MoveOutcome describes how a die roll was resolved
type MoveOutcome struct {
	Path        []int
	LadderTaken bool
	PathSearch  bool
}

// Resolve moves the player for a die roll and returns the tiles traversed, starting tile first.
func Resolve(board *Board, p *Player, die int) []int {
	return ResolveMovement(board, p, die).Path
}

// ResolveMovement applies a die roll to the player.
//
// From a prime tile the player follows the shortest route to the finish and ladders are live.
// From any other tile the player steps forward one tile at a time with ladders switched off,
// or retreats along its own step history when the roll resolved backward.
// Bonus turns are recomputed from the landing tile.
func ResolveMovement(board *Board, p *Player, die int) MoveOutcome {
	start := p.Position
	p.BonusTurnsRemaining = 0

	var out MoveOutcome
	switch {
	case IsPrime(start):
		out = searchMove(board, p, start, die)
	case p.Direction == Backward:
		out = retreat(p, start, die)
	default:
		out = stepForward(board, p, start, die)
	}

	p.Position = out.Path[len(out.Path)-1]
	if board.IsBonusTile(p.Position) {
		p.BonusTurnsRemaining = BonusTurnsAwarded
	}
	return out
}

// searchMove walks up to die entries of the shortest route to the finish.
// Any ladder met on the way ends the move at the top of that ladder.
func searchMove(board *Board, p *Player, start, die int) MoveOutcome {
	n := board.TileCount()
	route := ShortestPath(start, n, n, board.ladders)
	steps := min(die, max(0, len(route)-1))

	out := MoveOutcome{Path: []int{start}, PathSearch: true}
	p.history = []int{start}

	for k := 1; k <= steps; k++ {
		tile := route[k]
		viaLadder := isLadderEdge(route[k-1], tile, board.ladders)

		if tile > n {
			out.Path = append(out.Path, n)
			p.push(n)
			out.LadderTaken = viaLadder
			break
		}

		out.Path = append(out.Path, tile)
		p.push(tile)

		if viaLadder {
			out.LadderTaken = true
			break
		}

		if to, ok := board.LadderDestination(tile); ok {
			top := clamp(to, StartTile, n)
			out.Path = append(out.Path, top)
			p.push(top)
			out.LadderTaken = true
			break
		}
	}
	return out
}

// stepForward advances one tile per pip, stopping at the finish
func stepForward(board *Board, p *Player, start, die int) MoveOutcome {
	n := board.TileCount()
	out := MoveOutcome{Path: []int{start}}
	p.popIfTop(start)

	cur := start
	for k := 1; k <= die; k++ {
		cur++
		if cur >= n {
			out.Path = append(out.Path, n)
			p.push(n)
			break
		}
		out.Path = append(out.Path, cur)
		p.push(cur)
	}
	return out
}

// retreat pops the step history, nearest tile first
func retreat(p *Player, start, die int) MoveOutcome {
	out := MoveOutcome{Path: []int{start}}
	p.popIfTop(start)

	cur := start
	steps := min(die, len(p.history))
	for k := 0; k < steps; k++ {
		tile, _ := p.pop()
		cur = max(tile, StartTile)
		out.Path = append(out.Path, cur)
	}

	p.push(cur)
	return out
}
