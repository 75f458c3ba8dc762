// Package websocket pushes live game updates to browsers and other watchers.
//
// Architecture:
//
// A central Hub tracks the connections of each session. Every connection has a
// read goroutine that only keeps the socket alive and a write goroutine that
// drains the client's queue.
//
// Message Protocol:
//
// Outgoing messages are JSON:
//   - {"session_id": "ab12", "event": "state_update", "game_state": {...}} after every change
//   - {"session_id": "ab12", "event": "ladder", "data": {...}} for each turn event
//
// Clients pick the session with the ?session= query parameter of /ws.
//
// Usage:
//
//	hub := websocket.NewHub(logger)
//	go hub.Run()
//
//	hub.BroadcastToSession(sessionID, state)
//	hub.BroadcastEvent(sessionID, "win", event)
package websocket
