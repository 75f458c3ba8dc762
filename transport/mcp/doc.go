// Package mcp exposes the ladder game to AI agents over the Model Context Protocol.
//
// The Client is a thin proxy: every tool call is translated into a request
// against the REST API and the JSON answer is rendered as plain text.
//
// MCP Tools:
//   - create_session, list_sessions, get_session
//   - game_state
//   - roll_dice, move, end_turn, play_turn
//   - reset_game
//   - leaderboard, turn_history, shortest_path
//   - list_configs, game_instructions
//
// Usage:
//
//	client := mcp.NewClient("http://localhost:8080")
//	server.ServeStdio(client.GetMCPServer())
package mcp
