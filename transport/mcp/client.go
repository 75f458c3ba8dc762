package mcp

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"sort"
	"strings"
	"time"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"

	"github.com/wricardo/mcp-training/laddergame/game/engine"
	"github.com/wricardo/mcp-training/laddergame/game/service"
)

// Client is a thin MCP client that proxies to the REST API
type Client struct {
	baseURL    string
	httpClient *http.Client
	mcpServer  *server.MCPServer
}

// NewClient creates a new MCP client that calls the REST API
func NewClient(baseURL string) *Client {
	c := &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		httpClient: &http.Client{
			Timeout: 10 * time.Second,
		},
	}

	c.initMCPServer()
	return c
}

// initMCPServer initializes the MCP server with all tools
func (c *Client) initMCPServer() {
	c.mcpServer = server.NewMCPServer(
		"Ladder Game",
		"1.0.0",
		server.WithToolCapabilities(true),
		server.WithInstructions(`Ladder Game - MCP Interface

This is a thin client that proxies all requests to the REST API server.

GAME OBJECTIVE:
Be the first player to reach the last tile of the board. Up to five players take turns.

TURN CYCLE:
roll_dice -> move -> end_turn, or play_turn to do all three at once.

AVAILABLE TOOLS:
- create_session: Create a new game table
- list_sessions / get_session: Inspect tables
- game_state: Current board, players and turn phase
- roll_dice, move, end_turn, play_turn: Play the current player's turn
- reset_game: New game with the same players, ladders may move
- leaderboard: Top winners of a table
- turn_history: Past turns with pagination and filters
- shortest_path: Best route between two tiles
- list_configs: Available boards
- game_instructions: Full rules`),
	)

	c.registerTools()
}

func sessionOnlySchema() mcp.ToolInputSchema {
	return mcp.ToolInputSchema{
		Type: "object",
		Properties: map[string]interface{}{
			"session_id": map[string]interface{}{
				"type":        "string",
				"description": "Session ID",
			},
		},
		Required: []string{"session_id"},
	}
}

// registerTools registers all MCP tools
func (c *Client) registerTools() {
	// Session management
	c.mcpServer.AddTool(mcp.Tool{
		Name:        "create_session",
		Description: "Create a new game table with optional board config, player names and seed",
		InputSchema: mcp.ToolInputSchema{
			Type: "object",
			Properties: map[string]interface{}{
				"config_id": map[string]interface{}{
					"type":        "string",
					"description": "ID of the board config to use (optional, defaults to classic)",
				},
				"players": map[string]interface{}{
					"type":        "array",
					"items":       map[string]interface{}{"type": "string"},
					"description": "Player names, 1 to 5 (optional)",
				},
				"seed": map[string]interface{}{
					"type":        "number",
					"description": "Seed for reproducible dice (optional)",
				},
			},
		},
	}, c.handleCreateSession)

	c.mcpServer.AddTool(mcp.Tool{
		Name:        "list_sessions",
		Description: "List all active game tables",
		InputSchema: mcp.ToolInputSchema{
			Type:       "object",
			Properties: map[string]interface{}{},
		},
	}, c.handleListSessions)

	c.mcpServer.AddTool(mcp.Tool{
		Name:        "get_session",
		Description: "Get details of a specific table",
		InputSchema: sessionOnlySchema(),
	}, c.handleGetSession)

	// Turn operations
	c.mcpServer.AddTool(mcp.Tool{
		Name:        "game_state",
		Description: "Get the current game state",
		InputSchema: sessionOnlySchema(),
	}, c.handleGameState)

	c.mcpServer.AddTool(mcp.Tool{
		Name:        "roll_dice",
		Description: "Roll the die for the current player. The roll also decides forward or backward movement.",
		InputSchema: sessionOnlySchema(),
	}, c.handleRoll)

	c.mcpServer.AddTool(mcp.Tool{
		Name:        "move",
		Description: "Resolve the rolled die and move the current player",
		InputSchema: sessionOnlySchema(),
	}, c.handleMove)

	c.mcpServer.AddTool(mcp.Tool{
		Name:        "end_turn",
		Description: "Check for a winner and hand the turn to the next player",
		InputSchema: sessionOnlySchema(),
	}, c.handleEndTurn)

	c.mcpServer.AddTool(mcp.Tool{
		Name:        "play_turn",
		Description: "Roll, move and end the turn in one call",
		InputSchema: sessionOnlySchema(),
	}, c.handlePlayTurn)

	c.mcpServer.AddTool(mcp.Tool{
		Name:        "reset_game",
		Description: "Start a new game with the same players. Win history is kept.",
		InputSchema: sessionOnlySchema(),
	}, c.handleReset)

	// Reports
	c.mcpServer.AddTool(mcp.Tool{
		Name:        "leaderboard",
		Description: "Show the players with the most wins at a table",
		InputSchema: mcp.ToolInputSchema{
			Type: "object",
			Properties: map[string]interface{}{
				"session_id": map[string]interface{}{
					"type":        "string",
					"description": "Session ID",
				},
				"limit": map[string]interface{}{
					"type":        "number",
					"description": "Number of entries (default 3)",
				},
			},
			Required: []string{"session_id"},
		},
	}, c.handleLeaderboard)

	c.mcpServer.AddTool(mcp.Tool{
		Name:        "turn_history",
		Description: "Get the turn log with pagination",
		InputSchema: mcp.ToolInputSchema{
			Type: "object",
			Properties: map[string]interface{}{
				"session_id": map[string]interface{}{
					"type":        "string",
					"description": "Session ID",
				},
				"page": map[string]interface{}{
					"type":        "number",
					"description": "Page number (default 1)",
				},
				"limit": map[string]interface{}{
					"type":        "number",
					"description": "Turns per page (default 20, max 100)",
				},
				"order": map[string]interface{}{
					"type":        "string",
					"enum":        []string{"asc", "desc"},
					"description": "Oldest or newest first (default desc)",
				},
				"player": map[string]interface{}{
					"type":        "string",
					"description": "Only turns of this player",
				},
			},
			Required: []string{"session_id"},
		},
	}, c.handleTurnHistory)

	c.mcpServer.AddTool(mcp.Tool{
		Name:        "shortest_path",
		Description: "Find the route with the fewest moves between two tiles, ladders included",
		InputSchema: mcp.ToolInputSchema{
			Type: "object",
			Properties: map[string]interface{}{
				"session_id": map[string]interface{}{
					"type":        "string",
					"description": "Session ID",
				},
				"from": map[string]interface{}{
					"type":        "number",
					"description": "Start tile (default: current player's tile)",
				},
				"to": map[string]interface{}{
					"type":        "number",
					"description": "Target tile (default: the finish)",
				},
			},
			Required: []string{"session_id"},
		},
	}, c.handleShortestPath)

	// Configuration
	c.mcpServer.AddTool(mcp.Tool{
		Name:        "list_configs",
		Description: "List available board configurations",
		InputSchema: mcp.ToolInputSchema{
			Type:       "object",
			Properties: map[string]interface{}{},
		},
	}, c.handleListConfigs)

	c.mcpServer.AddTool(mcp.Tool{
		Name:        "game_instructions",
		Description: "Get the complete rules of the ladder game",
		InputSchema: mcp.ToolInputSchema{
			Type:       "object",
			Properties: map[string]interface{}{},
		},
	}, c.handleGameInstructions)
}

// GetMCPServer returns the underlying MCP server for serving
func (c *Client) GetMCPServer() *server.MCPServer {
	return c.mcpServer
}

// Helper methods for API calls

func (c *Client) apiCall(ctx context.Context, method, path string, body interface{}, result interface{}) error {
	var reqBody io.Reader
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			return err
		}
		reqBody = bytes.NewBuffer(data)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reqBody)
	if err != nil {
		return err
	}

	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 400 {
		var errResp map[string]string
		json.NewDecoder(resp.Body).Decode(&errResp)
		if msg, ok := errResp["error"]; ok {
			return fmt.Errorf("%s", msg)
		}
		return fmt.Errorf("API error: %d", resp.StatusCode)
	}

	if result != nil {
		return json.NewDecoder(resp.Body).Decode(result)
	}

	return nil
}

func arguments(request mcp.CallToolRequest) map[string]interface{} {
	args, _ := request.Params.Arguments.(map[string]interface{})
	if args == nil {
		return map[string]interface{}{}
	}
	return args
}

func sessionPath(args map[string]interface{}, suffix string) (string, error) {
	sessionID, _ := args["session_id"].(string)
	if strings.TrimSpace(sessionID) == "" {
		return "", fmt.Errorf("session_id is required")
	}
	return "/api/sessions/" + url.PathEscape(sessionID) + suffix, nil
}

// Tool handlers

func (c *Client) handleCreateSession(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	args := arguments(request)

	body := map[string]interface{}{}
	if configID, _ := args["config_id"].(string); configID != "" {
		body["config_id"] = configID
	}
	if raw, ok := args["players"].([]interface{}); ok {
		players := make([]string, 0, len(raw))
		for _, p := range raw {
			if name, ok := p.(string); ok {
				players = append(players, name)
			}
		}
		body["players"] = players
	}
	if seed, ok := args["seed"].(float64); ok {
		body["seed"] = int64(seed)
	}

	var session service.SessionInfo
	if err := c.apiCall(ctx, "POST", "/api/sessions", body, &session); err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	result := fmt.Sprintf("Created session: %s\nConfig: %s\n", session.ID, session.ConfigName)
	if session.GameState != nil {
		result += "\n" + formatGameState(session.GameState)
	}
	return mcp.NewToolResultText(result), nil
}

func (c *Client) handleListSessions(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	var response struct {
		Count    int                   `json:"count"`
		Sessions []service.SessionInfo `json:"sessions"`
	}

	if err := c.apiCall(ctx, "GET", "/api/sessions", nil, &response); err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	var sb strings.Builder
	fmt.Fprintf(&sb, "Active Sessions (%d):\n\n", response.Count)
	for _, s := range response.Sessions {
		players := 0
		phase := ""
		if s.GameState != nil {
			players = len(s.GameState.Players)
			phase = string(s.GameState.Phase)
		}
		fmt.Fprintf(&sb, "- %s (Config: %s, Players: %d, Phase: %s, Created: %s)\n",
			s.ID, s.ConfigName, players, phase, s.CreatedAt.Format("15:04:05"))
	}

	return mcp.NewToolResultText(sb.String()), nil
}

func (c *Client) handleGetSession(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	path, err := sessionPath(arguments(request), "")
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	var session service.SessionInfo
	if err := c.apiCall(ctx, "GET", path, nil, &session); err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	return mcp.NewToolResultText(formatSessionInfo(&session)), nil
}

func (c *Client) handleGameState(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	path, err := sessionPath(arguments(request), "/state")
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	var state engine.GameState
	if err := c.apiCall(ctx, "GET", path, nil, &state); err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	return mcp.NewToolResultText(formatGameState(&state)), nil
}

func (c *Client) handleRoll(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	path, err := sessionPath(arguments(request), "/roll")
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	var result service.RollResult
	if err := c.apiCall(ctx, "POST", path, nil, &result); err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	return mcp.NewToolResultText(formatRollResult(&result)), nil
}

func (c *Client) handleMove(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	path, err := sessionPath(arguments(request), "/move")
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	var result service.MoveResult
	if err := c.apiCall(ctx, "POST", path, nil, &result); err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	return mcp.NewToolResultText(formatMoveResult(&result)), nil
}

func (c *Client) handleEndTurn(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	path, err := sessionPath(arguments(request), "/end-turn")
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	var result service.EndTurnResult
	if err := c.apiCall(ctx, "POST", path, nil, &result); err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	return mcp.NewToolResultText(formatEndTurnResult(&result)), nil
}

func (c *Client) handlePlayTurn(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	path, err := sessionPath(arguments(request), "/turn")
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	var result service.TurnResult
	if err := c.apiCall(ctx, "POST", path, nil, &result); err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	var sb strings.Builder
	if result.Roll != nil {
		sb.WriteString(formatRollResult(result.Roll))
	}
	if result.Move != nil {
		sb.WriteString(formatMoveResult(result.Move))
	}
	if result.End != nil {
		sb.WriteString(formatEndTurnResult(result.End))
	}
	return mcp.NewToolResultText(sb.String()), nil
}

func (c *Client) handleReset(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	path, err := sessionPath(arguments(request), "/reset")
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	var response struct {
		Message string            `json:"message"`
		State   *engine.GameState `json:"state"`
	}
	if err := c.apiCall(ctx, "POST", path, nil, &response); err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	result := fmt.Sprintf("%s\n\n%s", response.Message, formatGameState(response.State))
	return mcp.NewToolResultText(result), nil
}

func (c *Client) handleLeaderboard(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	args := arguments(request)
	path, err := sessionPath(args, "/leaderboard")
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	if limit, ok := args["limit"].(float64); ok {
		path += fmt.Sprintf("?limit=%d", int(limit))
	}

	var board service.LeaderboardResponse
	if err := c.apiCall(ctx, "GET", path, nil, &board); err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	return mcp.NewToolResultText(formatLeaderboard(&board)), nil
}

func (c *Client) handleTurnHistory(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	args := arguments(request)
	path, err := sessionPath(args, "/history")
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	params := url.Values{}
	if page, ok := args["page"].(float64); ok {
		params.Set("page", fmt.Sprint(int(page)))
	}
	if limit, ok := args["limit"].(float64); ok {
		params.Set("limit", fmt.Sprint(int(limit)))
	}
	if order, _ := args["order"].(string); order != "" {
		params.Set("order", order)
	}
	if player, _ := args["player"].(string); player != "" {
		params.Set("player", player)
	}
	if len(params) > 0 {
		path += "?" + params.Encode()
	}

	var history service.HistoryResponse
	if err := c.apiCall(ctx, "GET", path, nil, &history); err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	return mcp.NewToolResultText(formatHistory(&history)), nil
}

func (c *Client) handleShortestPath(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	args := arguments(request)
	path, err := sessionPath(args, "/path")
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	params := url.Values{}
	if from, ok := args["from"].(float64); ok {
		params.Set("from", fmt.Sprint(int(from)))
	}
	if to, ok := args["to"].(float64); ok {
		params.Set("to", fmt.Sprint(int(to)))
	}
	if len(params) > 0 {
		path += "?" + params.Encode()
	}

	var result service.PathResult
	if err := c.apiCall(ctx, "GET", path, nil, &result); err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	return mcp.NewToolResultText(formatPathResult(&result)), nil
}

func (c *Client) handleListConfigs(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	var configs []service.ConfigInfo
	if err := c.apiCall(ctx, "GET", "/api/configs", nil, &configs); err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	var sb strings.Builder
	sb.WriteString("Available Configurations:\n\n")
	for _, config := range configs {
		fmt.Fprintf(&sb, "• %s (id: %s)\n  %s\n  Tiles: %d, Ladders: %d, Max players: %d\n\n",
			config.Name, config.ConfigID, config.Description, config.TileCount, config.LadderCount, config.MaxPlayers)
	}

	return mcp.NewToolResultText(sb.String()), nil
}

func (c *Client) handleGameInstructions(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	return mcp.NewToolResultText(gameInstructions), nil
}

const gameInstructions = `Ladder Game - Complete Instructions

GAME OBJECTIVE:
Be the first player to reach the last tile of the board (tile 100 on the classic board).

TURNS:
• Players take turns in a shuffled order
• A turn is roll_dice, then move, then end_turn (play_turn does all three)
• Calling them out of order is rejected

MOVEMENT:
• Each roll is 1 to 6 and goes forward 80% of the time, backward otherwise
• From a prime-numbered tile the player follows the shortest route to the finish
  for up to the rolled number of steps, and ladders on that route are climbed
• From any other tile the player simply steps forward, ladders are ignored
• A backward roll retraces the player's own recent steps, never below tile 1
• Movement never goes past the finish tile

BONUS TILES:
• Every fifth tile (5, 10, 15, ...) grants an extra turn

WINNING:
• Reaching the finish wins the game; the win is added to the table's leaderboard
• reset_game starts a new game with the same players, ladders may be redrawn

STRATEGY TIPS:
• Use shortest_path to see how far a player is from the finish
• turn_history and leaderboard show how earlier games went`

// Formatters

func formatSessionInfo(session *service.SessionInfo) string {
	var sb strings.Builder
	fmt.Fprintf(&sb, "Session: %s\n", session.ID)
	fmt.Fprintf(&sb, "Config: %s\n", session.ConfigName)
	fmt.Fprintf(&sb, "Created: %s\n", session.CreatedAt.Format(time.RFC3339))
	fmt.Fprintf(&sb, "Last Accessed: %s\n", session.LastAccessedAt.Format(time.RFC3339))
	if session.GameState != nil {
		sb.WriteString("\n" + formatGameState(session.GameState))
	}
	return sb.String()
}

func formatGameState(state *engine.GameState) string {
	if state == nil {
		return "No game state available"
	}

	var sb strings.Builder
	fmt.Fprintf(&sb, "Board: %s (%d tiles)\n", state.ConfigName, state.TileCount)
	fmt.Fprintf(&sb, "Phase: %s\n", state.Phase)
	if state.Message != "" {
		fmt.Fprintf(&sb, "Message: %s\n", state.Message)
	}

	sb.WriteString("\nPlayers:\n")
	for i, p := range state.Players {
		marker := " "
		if i == state.CurrentPlayerIndex && state.Phase != engine.PhaseFinished {
			marker = ">"
		}
		fmt.Fprintf(&sb, "%s %s: tile %d", marker, p.Name, p.Position)
		if p.BonusTurnsRemaining > 0 {
			fmt.Fprintf(&sb, " (bonus turns: %d)", p.BonusTurnsRemaining)
		}
		sb.WriteString("\n")
	}

	if state.LastRoll != nil {
		fmt.Fprintf(&sb, "\nLast roll: %s rolled %d (%s)\n", state.LastRoll.Player, state.LastRoll.Value, state.LastRoll.Direction)
	}
	if state.Winner != "" {
		fmt.Fprintf(&sb, "\n🏆 WINNER: %s\n", state.Winner)
	}

	if len(state.Ladders) > 0 {
		sources := make([]int, 0, len(state.Ladders))
		for from := range state.Ladders {
			sources = append(sources, from)
		}
		sort.Ints(sources)
		parts := make([]string, len(sources))
		for i, from := range sources {
			parts[i] = fmt.Sprintf("%d->%d", from, state.Ladders[from])
		}
		fmt.Fprintf(&sb, "\nLadders: %s\n", strings.Join(parts, ", "))
	}

	fmt.Fprintf(&sb, "Turns this game: %d (total %d)\n", state.CurrentRoundTurns, state.TotalTurns)
	return sb.String()
}

func formatRollResult(result *service.RollResult) string {
	return fmt.Sprintf("%s rolled %d, moving %s\n", result.Player, result.Die, result.Direction)
}

func formatMoveResult(result *service.MoveResult) string {
	var sb strings.Builder
	fmt.Fprintf(&sb, "%s moved from %d to %d\n", result.Player, result.From, result.To)
	fmt.Fprintf(&sb, "Path: %s\n", joinTiles(result.Path))
	if result.PathSearch {
		sb.WriteString("Started on a prime tile: followed the shortest route\n")
	}
	if result.LadderTaken {
		sb.WriteString("Climbed a ladder!\n")
	}
	if result.BonusTurns > 0 {
		sb.WriteString("Landed on a bonus tile: extra turn\n")
	}
	if result.Message != "" {
		fmt.Fprintf(&sb, "Message: %s\n", result.Message)
	}
	return sb.String()
}

func formatEndTurnResult(result *service.EndTurnResult) string {
	switch {
	case result.Won:
		return fmt.Sprintf("🏆 %s wins the game!\n", result.Winner)
	case result.ExtraTurn:
		return fmt.Sprintf("%s plays again\n", result.NextPlayer)
	default:
		return fmt.Sprintf("Next player: %s\n", result.NextPlayer)
	}
}

func formatLeaderboard(board *service.LeaderboardResponse) string {
	if len(board.Entries) == 0 {
		return "No wins recorded yet"
	}
	var sb strings.Builder
	sb.WriteString("Leaderboard:\n")
	for i, entry := range board.Entries {
		fmt.Fprintf(&sb, "%d. %s - %d wins\n", i+1, entry.Name, entry.Wins)
	}
	return sb.String()
}

func formatHistory(history *service.HistoryResponse) string {
	var sb strings.Builder
	fmt.Fprintf(&sb, "Turn History (Page %d/%d, Total: %d turns)\n\n",
		history.Page, history.TotalPages, history.TotalTurns)

	for _, turn := range history.Turns {
		fmt.Fprintf(&sb, "#%d %s rolled %d %s: %d -> %d",
			turn.TurnNumber, turn.Player, turn.Die, turn.Direction, turn.From, turn.To)
		if turn.LadderTaken {
			sb.WriteString(" [ladder]")
		}
		if turn.Won {
			sb.WriteString(" [win]")
		}
		sb.WriteString("\n")
	}

	if history.HasNext {
		sb.WriteString("\n(More turns available on next page)")
	}
	return sb.String()
}

func formatPathResult(result *service.PathResult) string {
	if !result.Reachable {
		return fmt.Sprintf("Tile %d cannot be reached from tile %d", result.To, result.From)
	}
	var sb strings.Builder
	fmt.Fprintf(&sb, "Shortest route from %d to %d: %d moves\n", result.From, result.To, result.Moves)
	fmt.Fprintf(&sb, "Path: %s\n", joinTiles(result.Path))
	if len(result.Ladders) > 0 {
		fmt.Fprintf(&sb, "Ladders used at: %s\n", joinTiles(result.Ladders))
	}
	return sb.String()
}

func joinTiles(tiles []int) string {
	parts := make([]string, len(tiles))
	for i, t := range tiles {
		parts[i] = fmt.Sprint(t)
	}
	return strings.Join(parts, " → ")
}
