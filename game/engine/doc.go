// Package engine provides the rules of the ladder race game.
//
// The engine package implements the game mechanics including:
//   - A numbered board with ladders and bonus (star) tiles
//   - Shortest route search over forward steps and ladder jumps
//   - Die rolls with a random forward or backward direction
//   - Backward movement along each player's own step history
//   - Turn order, bonus turns, wins and the leaderboard
//
// Core Types:
//
// The Engine interface defines the turn contract, implemented by GameEngine.
// Board holds the tiles and ladders, Player the mutable per-player state, and
// GameState is the snapshot handed to transports and user interfaces.
//
// Usage:
//
//	config := engine.DefaultGameConfig()
//	game, err := engine.NewEngine(config, []string{"Ann", "Bob"})
//	if err != nil {
//		log.Fatal(err)
//	}
//
//	die, _ := game.RollDie()
//	path, _ := game.ResolveMove(die)
//	// animate path, then
//	won, _ := game.EndTurn()
//
// Game Rules:
//
// Every roll also draws a direction: forward with probability 0.8, otherwise
// backward. A player standing on a prime tile ignores the direction and follows
// the shortest route to the finish, where ladders are live. Elsewhere a forward
// roll steps one tile per pip with ladders ignored, and a backward roll retraces
// the player's recent steps. Landing on a multiple of 5 earns extra turns. The
// first player to reach the last tile wins.
package engine
