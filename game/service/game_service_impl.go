package service

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/samber/lo"
	"go.uber.org/zap"

	"github.com/wricardo/mcp-training/laddergame/game/engine"
)

const (
	defaultHistoryLimit = 20
	maxHistoryLimit     = 100
)

// gameServiceImpl implements the GameService interface
type gameServiceImpl struct {
	sessions SessionManager
	configs  ConfigManager
	logger   *zap.Logger
	mu       sync.RWMutex
}

// NewGameService creates a new game service instance
func NewGameService(sessions SessionManager, configs ConfigManager, logger *zap.Logger) GameService {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &gameServiceImpl{
		sessions: sessions,
		configs:  configs,
		logger:   logger,
	}
}

// CreateSession creates a new game table
func (s *gameServiceImpl) CreateSession(ctx context.Context, req CreateSessionRequest) (*SessionInfo, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	configID := req.ConfigID
	var config *engine.GameConfig
	if configID != "" {
		var err error
		config, err = s.configs.LoadConfig(configID)
		if err != nil {
			if errors.Is(err, ErrConfigNotFound) {
				return nil, s.configNotFound(configID)
			}
			return nil, fmt.Errorf("failed to load config %s: %w", configID, err)
		}
	} else {
		config = s.configs.GetDefault()
		configID = s.getConfigID(config.Name)
	}

	opts := []engine.Option{engine.WithLogger(s.logger)}
	if req.Seed != 0 {
		opts = append(opts, engine.WithSeed(req.Seed))
	}

	// Let session manager generate a proper 4-character ID
	sess, err := s.sessions.Create("", config, req.Players, opts...)
	if err != nil {
		return nil, fmt.Errorf("failed to create session: %w", err)
	}
	sess.ConfigID = configID

	s.logger.Info("session created",
		zap.String("session", sess.ID),
		zap.String("config", configID),
		zap.Int("players", len(sess.Engine.Players())))

	return s.sessionInfo(sess), nil
}

// GetSession retrieves session information
func (s *gameServiceImpl) GetSession(ctx context.Context, sessionID string) (*SessionInfo, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	sess, err := s.getSession(sessionID)
	if err != nil {
		return nil, err
	}
	return s.sessionInfo(sess), nil
}

// ListSessions returns all active sessions
func (s *gameServiceImpl) ListSessions(ctx context.Context) ([]*SessionInfo, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return lo.Map(s.sessions.List(), func(sess *Session, _ int) *SessionInfo {
		return s.sessionInfo(sess)
	}), nil
}

// DeleteSession removes a session
func (s *gameServiceImpl) DeleteSession(ctx context.Context, sessionID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.sessions.Delete(sessionID); err != nil {
		return err
	}
	s.logger.Info("session deleted", zap.String("session", sessionID))
	return nil
}

// RollDice rolls the die for the current player
func (s *gameServiceImpl) RollDice(ctx context.Context, sessionID string) (*RollResult, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	sess, err := s.getSession(sessionID)
	if err != nil {
		return nil, err
	}
	return s.roll(sess)
}

// ResolveMove moves the current player by the rolled die
func (s *gameServiceImpl) ResolveMove(ctx context.Context, sessionID string) (*MoveResult, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	sess, err := s.getSession(sessionID)
	if err != nil {
		return nil, err
	}
	return s.move(sess)
}

// EndTurn runs the finish check and passes the turn on
func (s *gameServiceImpl) EndTurn(ctx context.Context, sessionID string) (*EndTurnResult, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	sess, err := s.getSession(sessionID)
	if err != nil {
		return nil, err
	}
	return s.endTurn(sess)
}

// PlayTurn rolls, moves and ends the turn in one call
func (s *gameServiceImpl) PlayTurn(ctx context.Context, sessionID string) (*TurnResult, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	sess, err := s.getSession(sessionID)
	if err != nil {
		return nil, err
	}

	roll, err := s.roll(sess)
	if err != nil {
		return nil, err
	}
	move, err := s.move(sess)
	if err != nil {
		return nil, err
	}
	end, err := s.endTurn(sess)
	if err != nil {
		return nil, err
	}

	events := make([]GameEvent, 0, len(roll.Events)+len(move.Events)+len(end.Events))
	events = append(events, roll.Events...)
	events = append(events, move.Events...)
	events = append(events, end.Events...)

	return &TurnResult{
		Roll:      roll,
		Move:      move,
		End:       end,
		GameState: end.GameState,
		Events:    events,
	}, nil
}

// Reset starts a new game with the same players
func (s *gameServiceImpl) Reset(ctx context.Context, sessionID string) (*engine.GameState, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	sess, err := s.getSession(sessionID)
	if err != nil {
		return nil, err
	}

	state := sess.Engine.Reset()
	s.logger.Info("game reset",
		zap.String("session", sess.ID),
		zap.String("round", state.RoundID),
		zap.Any("ladders", state.Ladders))
	return state, nil
}

// GetGameState retrieves the current game state
func (s *gameServiceImpl) GetGameState(ctx context.Context, sessionID string) (*engine.GameState, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	sess, err := s.getSession(sessionID)
	if err != nil {
		return nil, err
	}
	return sess.Engine.GetState(), nil
}

// GetTurnHistory returns paginated turn history across every round of the session
func (s *gameServiceImpl) GetTurnHistory(ctx context.Context, sessionID string, opts HistoryOptions) (*HistoryResponse, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	sess, err := s.getSession(sessionID)
	if err != nil {
		return nil, err
	}

	history := lo.Filter(sess.Engine.TurnLog(), func(rec engine.TurnRecord, _ int) bool {
		if opts.Player != "" && rec.Player != opts.Player {
			return false
		}
		return opts.RoundID == "" || rec.RoundID == opts.RoundID
	})
	total := len(history)

	// Apply defaults
	if opts.Page < 1 {
		opts.Page = 1
	}
	if opts.Limit <= 0 {
		opts.Limit = defaultHistoryLimit
	}
	if opts.Limit > maxHistoryLimit {
		opts.Limit = maxHistoryLimit
	}
	if opts.Order == "" {
		opts.Order = "desc"
	}

	if opts.Order == "desc" {
		// Most recent first
		history = lo.Reverse(history)
	}

	totalPages := (total + opts.Limit - 1) / opts.Limit
	if totalPages == 0 {
		totalPages = 1
	}

	start := min((opts.Page-1)*opts.Limit, total)
	end := min(start+opts.Limit, total)

	turns := history[start:end]
	if turns == nil {
		turns = []engine.TurnRecord{}
	}

	return &HistoryResponse{
		Turns:       turns,
		TotalTurns:  total,
		Page:        opts.Page,
		PageSize:    opts.Limit,
		TotalPages:  totalPages,
		HasNext:     opts.Page < totalPages,
		HasPrevious: opts.Page > 1,
	}, nil
}

// GetLeaderboard returns the players with the most wins in the session
func (s *gameServiceImpl) GetLeaderboard(ctx context.Context, sessionID string, limit int) (*LeaderboardResponse, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	sess, err := s.getSession(sessionID)
	if err != nil {
		return nil, err
	}

	if limit <= 0 {
		limit = engine.DefaultTopWinners
	}
	return &LeaderboardResponse{
		SessionID: sess.ID,
		Entries:   sess.Engine.TopWinners(limit),
		Limit:     limit,
	}, nil
}

// ShortestPath finds the best route between two tiles on the session's board.
// from defaults to the current player's tile and to defaults to the finish.
func (s *gameServiceImpl) ShortestPath(ctx context.Context, sessionID string, from, to int) (*PathResult, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	sess, err := s.getSession(sessionID)
	if err != nil {
		return nil, err
	}

	board := sess.Engine.Board()
	n := board.TileCount()
	if from == 0 {
		from = sess.Engine.CurrentPlayer().Position
	}
	if to == 0 {
		to = n
	}
	if from < engine.StartTile || from > n {
		return nil, fmt.Errorf("%w: from=%d (tiles are 1..%d)", ErrInvalidTile, from, n)
	}
	if to < engine.StartTile || to > n {
		return nil, fmt.Errorf("%w: to=%d (tiles are 1..%d)", ErrInvalidTile, to, n)
	}

	path := engine.ShortestPath(from, to, n, board.Ladders())
	reachable := path[len(path)-1] == to

	var ladders []int
	for i := 1; i < len(path); i++ {
		if path[i] != path[i-1]+1 {
			ladders = append(ladders, path[i-1])
		}
	}

	return &PathResult{
		From:      from,
		To:        to,
		Path:      path,
		Moves:     len(path) - 1,
		Reachable: reachable,
		Ladders:   ladders,
	}, nil
}

// ListConfigs returns available game configurations
func (s *gameServiceImpl) ListConfigs(ctx context.Context) ([]*ConfigInfo, error) {
	return s.configs.ListConfigs()
}

// LoadConfig loads a specific game configuration
func (s *gameServiceImpl) LoadConfig(ctx context.Context, configName string) (*engine.GameConfig, error) {
	return s.configs.LoadConfig(configName)
}

// SaveConfig saves a game configuration to disk
func (s *gameServiceImpl) SaveConfig(ctx context.Context, configName string, config *engine.GameConfig) error {
	return s.configs.SaveConfig(configName, config)
}

// getSession looks a session up and marks it as used.
// It writes LastAccessedAt, so callers hold s.mu for writing.
func (s *gameServiceImpl) getSession(sessionID string) (*Session, error) {
	sess, err := s.sessions.Get(sessionID)
	if err != nil {
		return nil, fmt.Errorf("session %s: %w", sessionID, err)
	}
	s.sessions.UpdateLastAccessed(sessionID)
	return sess, nil
}

// checkPhase returns ErrGameFinished or ErrWrongPhase when the game is not in want
func checkPhase(sess *Session, want engine.Phase) error {
	phase := sess.Engine.Phase()
	if phase == want {
		return nil
	}
	if phase == engine.PhaseFinished {
		return ErrGameFinished
	}
	return fmt.Errorf("%w: expected %s, game is %s", ErrWrongPhase, want, phase)
}

func (s *gameServiceImpl) roll(sess *Session) (*RollResult, error) {
	if err := checkPhase(sess, engine.PhaseAwaitingRoll); err != nil {
		return nil, err
	}

	player := sess.Engine.CurrentPlayer().Name
	die, dir := sess.Engine.RollDie()

	s.logger.Debug("die rolled",
		zap.String("session", sess.ID),
		zap.String("player", player),
		zap.Int("die", die),
		zap.String("direction", string(dir)))

	return &RollResult{
		Player:    player,
		Die:       die,
		Direction: dir,
		GameState: sess.Engine.GetState(),
		Events: []GameEvent{{
			Type:      EventRoll,
			Message:   fmt.Sprintf("%s rolled %d (%s)", player, die, dir),
			Timestamp: time.Now(),
			Player:    player,
		}},
	}, nil
}

func (s *gameServiceImpl) move(sess *Session) (*MoveResult, error) {
	if err := checkPhase(sess, engine.PhaseAwaitingMove); err != nil {
		return nil, err
	}

	roll := sess.Engine.LastRoll()
	if roll == nil {
		return nil, fmt.Errorf("%w: no die has been rolled", ErrWrongPhase)
	}

	if _, err := sess.Engine.ResolveMove(roll.Value); err != nil {
		return nil, fmt.Errorf("failed to resolve move: %w", err)
	}
	turn := sess.Engine.LastTurn()
	state := sess.Engine.GetState()

	s.logger.Debug("move resolved",
		zap.String("session", sess.ID),
		zap.String("player", turn.Player),
		zap.Ints("path", turn.Path),
		zap.Bool("ladder", turn.LadderTaken),
		zap.Bool("path_search", turn.PathSearch))

	return &MoveResult{
		Player:      turn.Player,
		Die:         turn.Die,
		Direction:   turn.Direction,
		From:        turn.From,
		To:          turn.To,
		Path:        turn.Path,
		LadderTaken: turn.LadderTaken,
		PathSearch:  turn.PathSearch,
		BonusTurns:  turn.BonusTurns,
		Message:     state.Message,
		GameState:   state,
		Events:      moveEvents(turn),
	}, nil
}

func (s *gameServiceImpl) endTurn(sess *Session) (*EndTurnResult, error) {
	if err := checkPhase(sess, engine.PhaseAwaitingEndTurn); err != nil {
		return nil, err
	}

	player := sess.Engine.CurrentPlayer()
	won, extra := sess.Engine.EndTurn()
	state := sess.Engine.GetState()
	now := time.Now()

	result := &EndTurnResult{
		Won:       won,
		ExtraTurn: extra,
		Message:   state.Message,
		GameState: state,
	}

	switch {
	case won:
		result.Winner = player.Name
		result.Events = append(result.Events, GameEvent{
			Type:      EventWin,
			Message:   state.Message,
			Timestamp: now,
			Player:    player.Name,
			Tile:      player.Position,
		})
		s.logger.Info("game won",
			zap.String("session", sess.ID),
			zap.String("winner", player.Name),
			zap.Int("turns", state.CurrentRoundTurns))
	case extra:
		result.NextPlayer = player.Name
		result.Events = append(result.Events, GameEvent{
			Type:      EventExtraTurn,
			Message:   fmt.Sprintf("%s rolls again", player.Name),
			Timestamp: now,
			Player:    player.Name,
		})
	default:
		result.NextPlayer = state.CurrentPlayer.Name
		result.Events = append(result.Events, GameEvent{
			Type:      EventTurn,
			Message:   fmt.Sprintf("%s's turn", state.CurrentPlayer.Name),
			Timestamp: now,
			Player:    state.CurrentPlayer.Name,
		})
	}

	return result, nil
}

// moveEvents describes a resolved move
func moveEvents(turn *engine.TurnRecord) []GameEvent {
	now := time.Now()
	events := []GameEvent{{
		Type:      EventMove,
		Message:   fmt.Sprintf("%s moved from %d to %d", turn.Player, turn.From, turn.To),
		Timestamp: now,
		Player:    turn.Player,
		Tile:      turn.To,
	}}

	if turn.PathSearch {
		events = append(events, GameEvent{
			Type:      EventPathSearch,
			Message:   fmt.Sprintf("%s started on prime tile %d and followed the shortest route", turn.Player, turn.From),
			Timestamp: now,
			Player:    turn.Player,
			Tile:      turn.From,
		})
	}
	if turn.LadderTaken {
		events = append(events, GameEvent{
			Type:      EventLadder,
			Message:   fmt.Sprintf("%s climbed a ladder to %d", turn.Player, turn.To),
			Timestamp: now,
			Player:    turn.Player,
			Tile:      turn.To,
		})
	}
	if turn.BonusTurns > 0 {
		events = append(events, GameEvent{
			Type:      EventBonusTurn,
			Message:   fmt.Sprintf("%s landed on star tile %d", turn.Player, turn.To),
			Timestamp: now,
			Player:    turn.Player,
			Tile:      turn.To,
		})
	}
	return events
}

// configNotFound lists the valid config IDs in the error
func (s *gameServiceImpl) configNotFound(configID string) error {
	available, err := s.configs.ListConfigs()
	if err == nil && len(available) > 0 {
		ids := lo.Map(available, func(c *ConfigInfo, _ int) string { return c.ConfigID })
		return fmt.Errorf("%w: '%s'. Available configs: %v", ErrConfigNotFound, configID, ids)
	}
	return fmt.Errorf("%w: '%s'. Use /api/configs to list available configurations", ErrConfigNotFound, configID)
}

// getConfigID returns the config_id for a given config name, used for consistent API responses
func (s *gameServiceImpl) getConfigID(configName string) string {
	available, err := s.configs.ListConfigs()
	if err == nil {
		if cfg, ok := lo.Find(available, func(c *ConfigInfo) bool { return c.Name == configName }); ok {
			return cfg.ConfigID
		}
	}
	if configName == "" {
		return "default"
	}
	return configName
}

func (s *gameServiceImpl) sessionInfo(sess *Session) *SessionInfo {
	configID := sess.ConfigID
	if configID == "" {
		configID = s.getConfigID(sess.Config.Name)
	}
	return &SessionInfo{
		ID:             sess.ID,
		ConfigName:     configID,
		CreatedAt:      sess.CreatedAt,
		LastAccessedAt: sess.LastAccessedAt,
		GameState:      sess.Engine.GetState(),
		GameConfig:     sess.Config,
	}
}
