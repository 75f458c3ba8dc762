// Package service provides the business logic layer for the ladder game.
//
// GameService is the interface used by every transport (REST, WebSocket, MCP,
// the CLI simulator). It owns turn sequencing on top of the engine: a turn is
// RollDice, ResolveMove and EndTurn in that order, and calls made out of order
// fail with ErrWrongPhase, or ErrGameFinished once somebody has won.
//
// SessionManager stores game tables and ConfigManager loads board configs.
// Both are interfaces so the session and config packages can depend on this
// one for the shared Session type and sentinel errors.
//
// Usage:
//
//	sessionMgr := session.NewManager()
//	configMgr := config.NewManager("configs", logger)
//	gameService := service.NewGameService(sessionMgr, configMgr, logger)
//
//	info, err := gameService.CreateSession(ctx, service.CreateSessionRequest{
//		ConfigID: "classic",
//		Players:  []string{"Ann", "Bob"},
//	})
//	turn, err := gameService.PlayTurn(ctx, info.ID)
package service
