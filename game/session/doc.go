// Package session keeps the game tables that are currently open.
//
// The session package implements:
//   - Thread-safe session storage and retrieval
//   - Short session ID generation
//   - Expiry of idle sessions
//
// Core Types:
//
// Manager is the session manager that handles all session operations.
// Each service.Session owns its own engine.GameEngine, with its own players,
// board and random source.
//
// Session Identifiers:
//
// Sessions use 4-character lowercase alphanumeric IDs so players can type them
// easily. IDs are drawn with nanoid and redrawn on collision. Lookups are
// case-insensitive.
//
// Usage:
//
//	manager := session.NewManager()
//
//	sess, err := manager.Create("", config, []string{"Ann", "Bob"})
//	if err != nil {
//		log.Fatal(err)
//	}
//
//	sess, err = manager.Get(sess.ID)
//
// Sessions live in memory only and are gone when the process exits.
package session
