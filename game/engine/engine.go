package engine

import (
	"errors"
	"fmt"
	"math/rand"
	"sort"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// ErrInvalidDieValue is returned when a die value outside 1..6 is passed to ResolveMove
var ErrInvalidDieValue = errors.New("die value must be between 1 and 6")

// Engine provides the main interface for game operations
type Engine interface {
	// Turn operations
	RollDie() (int, Direction)
	ResolveMove(die int) ([]int, error)
	AdvanceTurn()
	EndTurn() (won bool, extraTurn bool)

	// Players
	CurrentPlayer() PlayerView
	CurrentPlayerIndex() int
	Players() []PlayerView
	IsGameWon(player PlayerView) bool

	// Leaderboard
	RecordWin(name string)
	TopWinners(limit int) []WinEntry

	// Game state management
	GetState() *GameState
	Reset() *GameState
	Phase() Phase
	Board() *Board
	GetConfig() *GameConfig
	LastTurn() *TurnRecord
}

// Option configures a GameEngine
type Option func(*GameEngine)

// WithSeed makes every roll, shuffle and ladder draw reproducible
func WithSeed(seed int64) Option {
	return func(e *GameEngine) {
		e.rng = rand.New(rand.NewSource(seed))
	}
}

// WithRand uses the given random source
func WithRand(rng *rand.Rand) Option {
	return func(e *GameEngine) {
		e.rng = rng
	}
}

// WithLogger sets the logger used for board warnings
func WithLogger(logger *zap.Logger) Option {
	return func(e *GameEngine) {
		if logger != nil {
			e.logger = logger
		}
	}
}

// WithoutShuffle keeps the players in the order they were given
func WithoutShuffle() Option {
	return func(e *GameEngine) {
		e.keepOrder = true
	}
}

// GameEngine implements the Engine interface.
// It is not safe for concurrent use; callers serialize access.
type GameEngine struct {
	config    *GameConfig
	board     *Board
	players   []*Player
	current   int
	phase     Phase
	lastRoll  *LastRoll
	winner    string
	message   string
	roundID   string
	keepOrder bool

	winOrder []string
	wins     map[string]int

	turnLog      []TurnRecord
	currentRound []TurnRecord

	rng    *rand.Rand
	logger *zap.Logger
}

// NewEngine creates a game table for the given players on the configured board.
// Players are shuffled into a random turn order.
func NewEngine(config *GameConfig, playerNames []string, opts ...Option) (*GameEngine, error) {
	if err := ValidateGameConfig(config); err != nil {
		return nil, err
	}

	names, err := NormalizePlayerNames(config, playerNames)
	if err != nil {
		return nil, err
	}

	e := &GameEngine{
		config:  config,
		board:   NewBoard(config.TileCount, config.Ladders),
		phase:   PhaseAwaitingRoll,
		message: config.Messages.Welcome,
		roundID: uuid.NewString(),
		wins:    make(map[string]int),
		logger:  zap.NewNop(),
	}
	for _, opt := range opts {
		opt(e)
	}
	if e.rng == nil {
		e.rng = rand.New(rand.NewSource(time.Now().UnixNano()))
	}

	for _, name := range names {
		e.players = append(e.players, NewPlayer(name))
		e.registerWinner(name)
	}
	if !e.keepOrder {
		e.rng.Shuffle(len(e.players), func(i, j int) {
			e.players[i], e.players[j] = e.players[j], e.players[i]
		})
	}

	return e, nil
}

// RollDie rolls a six-sided die and resolves the current player's direction for this roll
func (e *GameEngine) RollDie() (int, Direction) {
	die := e.rng.Intn(MaxDieValue) + MinDieValue

	dir := Backward
	if e.rng.Float64() < ForwardProbability {
		dir = Forward
	}

	p := e.players[e.current]
	p.Direction = dir
	e.lastRoll = &LastRoll{Value: die, Direction: dir, Player: p.Name}
	e.phase = PhaseAwaitingMove
	return die, dir
}

// ResolveMove moves the current player and returns the tiles to animate, start tile first
func (e *GameEngine) ResolveMove(die int) ([]int, error) {
	if die < MinDieValue || die > MaxDieValue {
		return nil, fmt.Errorf("%w: got %d", ErrInvalidDieValue, die)
	}

	p := e.players[e.current]
	from := p.Position
	out := ResolveMovement(e.board, p, die)

	e.recordTurn(TurnRecord{
		Player:      p.Name,
		Die:         die,
		Direction:   p.Direction,
		From:        from,
		To:          p.Position,
		Path:        out.Path,
		LadderTaken: out.LadderTaken,
		PathSearch:  out.PathSearch,
		BonusTurns:  p.BonusTurnsRemaining,
		Won:         e.IsGameWon(p.View()),
	})

	e.message = e.moveMessage(p, die, out)
	e.phase = PhaseAwaitingEndTurn
	return out.Path, nil
}

// AdvanceTurn keeps the current player while it has bonus turns, otherwise passes the turn on
func (e *GameEngine) AdvanceTurn() {
	p := e.players[e.current]
	e.phase = PhaseAwaitingRoll

	if p.BonusTurnsRemaining > 0 {
		p.BonusTurnsRemaining--
		return
	}
	e.current = (e.current + 1) % len(e.players)
}

// EndTurn runs the finish check after a move has been shown.
// A player on the finish tile wins the game, otherwise the turn advances.
func (e *GameEngine) EndTurn() (won bool, extraTurn bool) {
	p := e.players[e.current]

	if e.IsGameWon(p.View()) {
		e.winner = p.Name
		e.RecordWin(p.Name)
		e.phase = PhaseFinished
		e.message = e.format(e.config.Messages.Win, p.Name)
		return true, false
	}

	extraTurn = p.BonusTurnsRemaining > 0
	e.AdvanceTurn()
	return false, extraTurn
}

// IsGameWon reports whether the player has reached the finish tile
func (e *GameEngine) IsGameWon(player PlayerView) bool {
	return player.Position >= e.board.TileCount()
}

// CurrentPlayer returns the player whose turn it is
func (e *GameEngine) CurrentPlayer() PlayerView {
	return e.players[e.current].View()
}

// CurrentPlayerIndex returns the turn cursor
func (e *GameEngine) CurrentPlayerIndex() int {
	return e.current
}

// Players returns every player in turn order
func (e *GameEngine) Players() []PlayerView {
	views := make([]PlayerView, len(e.players))
	for i, p := range e.players {
		views[i] = p.View()
	}
	return views
}

// Player returns the mutable player at index i, or nil
func (e *GameEngine) Player(i int) *Player {
	if i < 0 || i >= len(e.players) {
		return nil
	}
	return e.players[i]
}

// RecordWin adds a win for name to the leaderboard
func (e *GameEngine) RecordWin(name string) {
	e.registerWinner(name)
	e.wins[name]++
}

// TopWinners returns up to limit players ordered by wins, most first.
// Ties keep the order in which names were first seen.
func (e *GameEngine) TopWinners(limit int) []WinEntry {
	if limit <= 0 {
		limit = DefaultTopWinners
	}

	entries := make([]WinEntry, 0, len(e.winOrder))
	for _, name := range e.winOrder {
		if e.wins[name] > 0 {
			entries = append(entries, WinEntry{Name: name, Wins: e.wins[name]})
		}
	}
	sort.SliceStable(entries, func(i, j int) bool {
		return entries[i].Wins > entries[j].Wins
	})

	if len(entries) > limit {
		entries = entries[:limit]
	}
	return entries
}

// Reset starts a new game with the same players. Win history is kept.
func (e *GameEngine) Reset() *GameState {
	for _, p := range e.players {
		p.reset()
	}
	e.current = 0
	e.phase = PhaseAwaitingRoll
	e.lastRoll = nil
	e.winner = ""
	e.roundID = uuid.NewString()
	e.currentRound = nil

	if e.config.RegeneratesLadders() {
		ladders, err := GenerateLadders(e.rng, e.board.TileCount(), GeneratedLadderCount)
		if err != nil {
			e.logger.Warn("ladder regeneration incomplete",
				zap.String("config", e.config.Name), zap.Int("placed", len(ladders)), zap.Error(err))
		}
		// a board too small for any ladder keeps the ones it has
		if len(ladders) > 0 {
			e.board.setLadders(ladders)
		}
	}

	e.message = e.config.Messages.Reset
	return e.GetState()
}

// Phase returns where the current turn stands
func (e *GameEngine) Phase() Phase {
	return e.phase
}

// Board returns the board in play
func (e *GameEngine) Board() *Board {
	return e.board
}

// GetConfig returns the board configuration
func (e *GameEngine) GetConfig() *GameConfig {
	return e.config
}

// LastRoll returns the most recent roll, or nil before the first roll of a game
func (e *GameEngine) LastRoll() *LastRoll {
	return e.lastRoll
}

// Winner returns the name of the player who finished this game
func (e *GameEngine) Winner() string {
	return e.winner
}

// LastTurn returns the most recent resolved move, or nil
func (e *GameEngine) LastTurn() *TurnRecord {
	if len(e.currentRound) == 0 {
		return nil
	}
	return &e.currentRound[len(e.currentRound)-1]
}

// TurnLog returns the cumulative turn log
func (e *GameEngine) TurnLog() []TurnRecord {
	return e.turnLog
}

// GetState returns a snapshot of the table
func (e *GameEngine) GetState() *GameState {
	state := &GameState{
		ConfigName:         e.config.Name,
		RoundID:            e.roundID,
		TileCount:          e.board.TileCount(),
		Ladders:            e.board.Ladders(),
		BonusTiles:         e.board.BonusTiles(),
		Players:            e.Players(),
		CurrentPlayerIndex: e.current,
		CurrentPlayer:      e.CurrentPlayer(),
		Phase:              e.phase,
		Winner:             e.winner,
		Message:            e.message,
		WinHistory:         e.TopWinners(len(e.winOrder)),
		TurnLog:            append([]TurnRecord(nil), e.turnLog...),
		TotalTurns:         len(e.turnLog),
		CurrentRound:       append([]TurnRecord(nil), e.currentRound...),
		CurrentRoundTurns:  len(e.currentRound),
	}
	if e.lastRoll != nil {
		roll := *e.lastRoll
		state.LastRoll = &roll
	}
	return state
}

// recordTurn stamps a resolved move and appends it to both logs
func (e *GameEngine) recordTurn(rec TurnRecord) {
	rec.TurnNumber = len(e.turnLog) + 1
	rec.RoundID = e.roundID
	rec.Timestamp = time.Now().Unix()

	e.turnLog = append(e.turnLog, rec)
	e.currentRound = append(e.currentRound, rec)
}

func (e *GameEngine) registerWinner(name string) {
	if _, seen := e.wins[name]; !seen {
		e.wins[name] = 0
		e.winOrder = append(e.winOrder, name)
	}
}

func (e *GameEngine) moveMessage(p *Player, die int, out MoveOutcome) string {
	msgs := e.config.Messages
	switch {
	case out.LadderTaken:
		return e.format(msgs.Ladder, p.Name, p.Position)
	case p.BonusTurnsRemaining > 0:
		return e.format(msgs.BonusTurn, p.Name)
	case p.Direction == Backward && !out.PathSearch:
		return e.format(msgs.Backward, p.Name, die)
	default:
		return e.format(msgs.Forward, p.Name, die)
	}
}

// format fills a message template, tolerating templates without verbs
func (e *GameEngine) format(template string, args ...any) string {
	if template == "" {
		return ""
	}
	return fmt.Sprintf(template, args...)
}
