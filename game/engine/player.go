package engine

// Player is the mutable per-player state of a game
type Player struct {
	Name                string
	Position            int
	Direction           Direction
	BonusTurnsRemaining int

	// history is the trail of tiles the player can retreat along; top is the last element.
	history []int
}

// NewPlayer creates a player standing on the start tile
func NewPlayer(name string) *Player {
	p := &Player{Name: name}
	p.reset()
	return p
}

// reset puts the player back on the start tile with a fresh trail
func (p *Player) reset() {
	p.Position = StartTile
	p.Direction = Forward
	p.BonusTurnsRemaining = 0
	p.history = []int{StartTile}
}

// StepHistory returns a copy of the retreat trail, bottom first
func (p *Player) StepHistory() []int {
	out := make([]int, len(p.history))
	copy(out, p.history)
	return out
}

func (p *Player) push(tile int) {
	p.history = append(p.history, tile)
}

func (p *Player) pop() (int, bool) {
	if len(p.history) == 0 {
		return 0, false
	}
	top := p.history[len(p.history)-1]
	p.history = p.history[:len(p.history)-1]
	return top, true
}

func (p *Player) peek() (int, bool) {
	if len(p.history) == 0 {
		return 0, false
	}
	return p.history[len(p.history)-1], true
}

// popIfTop drops the top of the trail when it matches tile
func (p *Player) popIfTop(tile int) {
	if top, ok := p.peek(); ok && top == tile {
		p.pop()
	}
}

// View returns the display status of the player
func (p *Player) View() PlayerView {
	return PlayerView{
		Name:                p.Name,
		Position:            p.Position,
		BonusTurnsRemaining: p.BonusTurnsRemaining,
		Direction:           string(p.Direction),
	}
}
