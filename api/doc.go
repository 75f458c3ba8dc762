// Package api provides HTTP REST API handlers for the ladder game.
//
// Endpoints:
//
// Session Management:
//   - POST /api/sessions - Create new session ({"config_id", "players", "seed"})
//   - GET /api/sessions - List all sessions (sort, order, limit)
//   - GET /api/sessions/unified - Multi-table view (sessionIds, configName)
//   - GET /api/sessions/{id} - Get specific session
//   - DELETE /api/sessions/{id} - Delete session
//
// Turn Operations:
//   - GET /api/sessions/{id}/state - Current game state
//   - POST /api/sessions/{id}/roll - Roll the die for the current player
//   - POST /api/sessions/{id}/move - Resolve the rolled die
//   - POST /api/sessions/{id}/end-turn - Finish check and turn hand-off
//   - POST /api/sessions/{id}/turn - Roll, move and end turn in one call
//   - POST /api/sessions/{id}/reset - Start a new game with the same players
//
// Reports:
//   - GET /api/sessions/{id}/history - Turn log (page, limit, order, player, round)
//   - GET /api/sessions/{id}/leaderboard - Top winners (limit, default 3)
//   - GET /api/sessions/{id}/path - Shortest route (from, to)
//
// Configuration:
//   - GET /api/configs - List available board configurations
//   - GET /api/configs/{name} - Get one configuration
//   - POST /api/configs - Save a configuration
//
// Turn operations called out of order answer 409 Conflict. Unknown
// sessions and configs answer 404. Errors are returned as JSON:
//
//	{"error": "error message"}
//
// Every successful turn operation pushes a state_update and one message per
// game event to WebSocket clients watching the session (/ws?session={id}).
package api
