// Package simulate plays many headless ladder games in parallel and aggregates the results.
package simulate

import (
	"context"
	"errors"
	"fmt"
	"math/rand"
	"runtime"
	"sort"
	"sync"

	"github.com/panjf2000/ants/v2"
	"github.com/samber/lo"
	"go.uber.org/zap"

	"github.com/wricardo/mcp-training/laddergame/game/engine"
)

// DefaultMaxTurns bounds a single game so a pathological board cannot hang a worker
const DefaultMaxTurns = 10000

var ErrNoGames = errors.New("at least one game is required")

// Options configures a simulation run
type Options struct {
	Config   *engine.GameConfig
	Players  []string
	Games    int
	Workers  int
	Seed     int64
	MaxTurns int
	Logger   *zap.Logger
}

// GameResult is the outcome of one simulated game
type GameResult struct {
	Game     int    `json:"game"`
	Winner   string `json:"winner"`
	Turns    int    `json:"turns"`
	Ladders  int    `json:"ladders"`
	Bonus    int    `json:"bonus_turns"`
	Finished bool   `json:"finished"`
}

// Report aggregates every game of a run
type Report struct {
	Games       int               `json:"games"`
	Finished    int               `json:"finished"`
	Wins        []engine.WinEntry `json:"wins"`
	MinTurns    int               `json:"min_turns"`
	MaxTurns    int               `json:"max_turns"`
	AvgTurns    float64           `json:"avg_turns"`
	AvgLadders  float64           `json:"avg_ladders"`
	ShortestRun int               `json:"shortest_path_moves"`
	Results     []GameResult      `json:"-"`
}

// Run plays opts.Games games on an ants worker pool.
// Game i is seeded with opts.Seed+i so a run is reproducible for a fixed seed.
func Run(ctx context.Context, opts Options) (*Report, error) {
	if opts.Games <= 0 {
		return nil, ErrNoGames
	}
	if opts.Config == nil {
		opts.Config = engine.DefaultGameConfig()
	}
	if opts.Workers <= 0 {
		opts.Workers = runtime.NumCPU()
	}
	if opts.MaxTurns <= 0 {
		opts.MaxTurns = DefaultMaxTurns
	}
	if opts.Logger == nil {
		opts.Logger = zap.NewNop()
	}
	if _, err := engine.NormalizePlayerNames(opts.Config, opts.Players); err != nil {
		return nil, err
	}

	pool, err := ants.NewPool(opts.Workers)
	if err != nil {
		return nil, fmt.Errorf("pool init failed: %w", err)
	}
	defer pool.Release()

	results := make([]GameResult, opts.Games)
	errs := make([]error, opts.Games)
	var wg sync.WaitGroup

	for i := 0; i < opts.Games; i++ {
		if ctx.Err() != nil {
			break
		}
		wg.Add(1)
		if err := pool.Submit(func() {
			defer wg.Done()
			results[i], errs[i] = playGame(ctx, opts, i)
		}); err != nil {
			wg.Done()
			errs[i] = fmt.Errorf("submit game %d: %w", i, err)
		}
	}
	wg.Wait()

	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if err := errors.Join(errs...); err != nil {
		return nil, err
	}

	report := summarize(results)
	report.ShortestRun = engine.ShortestPathLength(engine.NewBoard(opts.Config.TileCount, opts.Config.Ladders), engine.StartTile)
	opts.Logger.Info("simulation finished",
		zap.Int("games", report.Games),
		zap.Int("finished", report.Finished),
		zap.Float64("avg_turns", report.AvgTurns))
	return report, nil
}

// playGame runs one engine until somebody wins or the turn limit is hit
func playGame(ctx context.Context, opts Options, game int) (GameResult, error) {
	rng := rand.New(rand.NewSource(opts.Seed + int64(game)))
	eng, err := engine.NewEngine(opts.Config, opts.Players, engine.WithRand(rng), engine.WithLogger(opts.Logger))
	if err != nil {
		return GameResult{}, err
	}

	res := GameResult{Game: game}
	for res.Turns < opts.MaxTurns {
		if ctx.Err() != nil {
			return res, ctx.Err()
		}

		die, _ := eng.RollDie()
		if _, err := eng.ResolveMove(die); err != nil {
			return res, err
		}
		res.Turns++

		turn := eng.LastTurn()
		if turn.LadderTaken {
			res.Ladders++
		}
		if turn.BonusTurns > 0 {
			res.Bonus++
		}

		if won, _ := eng.EndTurn(); won {
			res.Winner = eng.Winner()
			res.Finished = true
			return res, nil
		}
	}

	opts.Logger.Warn("game hit the turn limit", zap.Int("game", game), zap.Int("turns", res.Turns))
	return res, nil
}

func summarize(results []GameResult) *Report {
	report := &Report{Games: len(results), Results: results}

	finished := lo.Filter(results, func(r GameResult, _ int) bool { return r.Finished })
	report.Finished = len(finished)
	if len(finished) == 0 {
		return report
	}

	turns := lo.Map(finished, func(r GameResult, _ int) int { return r.Turns })
	report.MinTurns = lo.Min(turns)
	report.MaxTurns = lo.Max(turns)
	report.AvgTurns = float64(lo.Sum(turns)) / float64(len(finished))
	report.AvgLadders = float64(lo.SumBy(finished, func(r GameResult) int { return r.Ladders })) / float64(len(finished))

	wins := lo.CountValues(lo.Map(finished, func(r GameResult, _ int) string { return r.Winner }))
	for name, count := range wins {
		report.Wins = append(report.Wins, engine.WinEntry{Name: name, Wins: count})
	}
	sort.Slice(report.Wins, func(i, j int) bool {
		if report.Wins[i].Wins != report.Wins[j].Wins {
			return report.Wins[i].Wins > report.Wins[j].Wins
		}
		return report.Wins[i].Name < report.Wins[j].Name
	})
	return report
}
