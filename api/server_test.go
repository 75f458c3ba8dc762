package api

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gorilla/mux"
	gorillaws "github.com/gorilla/websocket"
	"go.uber.org/zap"

	"github.com/wricardo/mcp-training/laddergame/game/engine"
	"github.com/wricardo/mcp-training/laddergame/game/service"
	"github.com/wricardo/mcp-training/laddergame/transport/websocket"
)

// MockGameService implements service.GameService for testing
type MockGameService struct {
	// Session Management
	CreateSessionFunc func(ctx context.Context, req service.CreateSessionRequest) (*service.SessionInfo, error)
	GetSessionFunc    func(ctx context.Context, sessionID string) (*service.SessionInfo, error)
	ListSessionsFunc  func(ctx context.Context) ([]*service.SessionInfo, error)
	DeleteSessionFunc func(ctx context.Context, sessionID string) error

	// Turn Operations
	RollDiceFunc    func(ctx context.Context, sessionID string) (*service.RollResult, error)
	ResolveMoveFunc func(ctx context.Context, sessionID string) (*service.MoveResult, error)
	EndTurnFunc     func(ctx context.Context, sessionID string) (*service.EndTurnResult, error)
	PlayTurnFunc    func(ctx context.Context, sessionID string) (*service.TurnResult, error)
	ResetFunc       func(ctx context.Context, sessionID string) (*engine.GameState, error)

	// Game State
	GetGameStateFunc   func(ctx context.Context, sessionID string) (*engine.GameState, error)
	GetTurnHistoryFunc func(ctx context.Context, sessionID string, opts service.HistoryOptions) (*service.HistoryResponse, error)
	GetLeaderboardFunc func(ctx context.Context, sessionID string, limit int) (*service.LeaderboardResponse, error)
	ShortestPathFunc   func(ctx context.Context, sessionID string, from, to int) (*service.PathResult, error)

	// Configuration
	ListConfigsFunc func(ctx context.Context) ([]*service.ConfigInfo, error)
	LoadConfigFunc  func(ctx context.Context, configName string) (*engine.GameConfig, error)
	SaveConfigFunc  func(ctx context.Context, configName string, config *engine.GameConfig) error
}

// Session Management
func (m *MockGameService) CreateSession(ctx context.Context, req service.CreateSessionRequest) (*service.SessionInfo, error) {
	if m.CreateSessionFunc != nil {
		return m.CreateSessionFunc(ctx, req)
	}
	return &service.SessionInfo{
		ID:         "test-session",
		ConfigName: req.ConfigID,
		CreatedAt:  time.Now(),
	}, nil
}

func (m *MockGameService) GetSession(ctx context.Context, sessionID string) (*service.SessionInfo, error) {
	if m.GetSessionFunc != nil {
		return m.GetSessionFunc(ctx, sessionID)
	}
	return &service.SessionInfo{
		ID:         sessionID,
		ConfigName: "test-config",
		CreatedAt:  time.Now(),
	}, nil
}

func (m *MockGameService) ListSessions(ctx context.Context) ([]*service.SessionInfo, error) {
	if m.ListSessionsFunc != nil {
		return m.ListSessionsFunc(ctx)
	}
	return []*service.SessionInfo{}, nil
}

func (m *MockGameService) DeleteSession(ctx context.Context, sessionID string) error {
	if m.DeleteSessionFunc != nil {
		return m.DeleteSessionFunc(ctx, sessionID)
	}
	return nil
}

// Turn Operations
func (m *MockGameService) RollDice(ctx context.Context, sessionID string) (*service.RollResult, error) {
	if m.RollDiceFunc != nil {
		return m.RollDiceFunc(ctx, sessionID)
	}
	return &service.RollResult{
		Player:    "Ann",
		Die:       4,
		Direction: engine.Forward,
		GameState: &engine.GameState{Phase: engine.PhaseAwaitingMove},
	}, nil
}

func (m *MockGameService) ResolveMove(ctx context.Context, sessionID string) (*service.MoveResult, error) {
	if m.ResolveMoveFunc != nil {
		return m.ResolveMoveFunc(ctx, sessionID)
	}
	return &service.MoveResult{
		Player:    "Ann",
		Die:       4,
		From:      1,
		To:        5,
		Path:      []int{1, 2, 3, 4, 5},
		GameState: &engine.GameState{Phase: engine.PhaseAwaitingEndTurn},
	}, nil
}

func (m *MockGameService) EndTurn(ctx context.Context, sessionID string) (*service.EndTurnResult, error) {
	if m.EndTurnFunc != nil {
		return m.EndTurnFunc(ctx, sessionID)
	}
	return &service.EndTurnResult{
		NextPlayer: "Bob",
		GameState:  &engine.GameState{Phase: engine.PhaseAwaitingRoll},
	}, nil
}

func (m *MockGameService) PlayTurn(ctx context.Context, sessionID string) (*service.TurnResult, error) {
	if m.PlayTurnFunc != nil {
		return m.PlayTurnFunc(ctx, sessionID)
	}
	return &service.TurnResult{GameState: &engine.GameState{}}, nil
}

func (m *MockGameService) Reset(ctx context.Context, sessionID string) (*engine.GameState, error) {
	if m.ResetFunc != nil {
		return m.ResetFunc(ctx, sessionID)
	}
	return &engine.GameState{}, nil
}

// Game State
func (m *MockGameService) GetGameState(ctx context.Context, sessionID string) (*engine.GameState, error) {
	if m.GetGameStateFunc != nil {
		return m.GetGameStateFunc(ctx, sessionID)
	}
	return &engine.GameState{}, nil
}

func (m *MockGameService) GetTurnHistory(ctx context.Context, sessionID string, opts service.HistoryOptions) (*service.HistoryResponse, error) {
	if m.GetTurnHistoryFunc != nil {
		return m.GetTurnHistoryFunc(ctx, sessionID, opts)
	}
	return &service.HistoryResponse{
		Turns:      []engine.TurnRecord{},
		Page:       opts.Page,
		PageSize:   opts.Limit,
		TotalPages: 1,
	}, nil
}

func (m *MockGameService) GetLeaderboard(ctx context.Context, sessionID string, limit int) (*service.LeaderboardResponse, error) {
	if m.GetLeaderboardFunc != nil {
		return m.GetLeaderboardFunc(ctx, sessionID, limit)
	}
	return &service.LeaderboardResponse{SessionID: sessionID, Limit: limit}, nil
}

func (m *MockGameService) ShortestPath(ctx context.Context, sessionID string, from, to int) (*service.PathResult, error) {
	if m.ShortestPathFunc != nil {
		return m.ShortestPathFunc(ctx, sessionID, from, to)
	}
	return &service.PathResult{From: from, To: to}, nil
}

// Configuration
func (m *MockGameService) ListConfigs(ctx context.Context) ([]*service.ConfigInfo, error) {
	if m.ListConfigsFunc != nil {
		return m.ListConfigsFunc(ctx)
	}
	return []*service.ConfigInfo{}, nil
}

func (m *MockGameService) LoadConfig(ctx context.Context, configName string) (*engine.GameConfig, error) {
	if m.LoadConfigFunc != nil {
		return m.LoadConfigFunc(ctx, configName)
	}
	return &engine.GameConfig{
		Name:        configName,
		Description: "Test config",
	}, nil
}

func (m *MockGameService) SaveConfig(ctx context.Context, configName string, config *engine.GameConfig) error {
	if m.SaveConfigFunc != nil {
		return m.SaveConfigFunc(ctx, configName, config)
	}
	return nil
}

// Test helpers
func setupTestServer(mockService *MockGameService) *Server {
	hub := websocket.NewHub(zap.NewNop())
	go hub.Run()
	return NewServer(mockService, hub, zap.NewNop())
}

func makeRequest(method, path string, body interface{}) *http.Request {
	var bodyBytes []byte
	if body != nil {
		bodyBytes, _ = json.Marshal(body)
	}
	req := httptest.NewRequest(method, path, bytes.NewBuffer(bodyBytes))
	req.Header.Set("Content-Type", "application/json")
	return req
}

func parseResponse(t *testing.T, w *httptest.ResponseRecorder, target interface{}) {
	t.Helper()
	if err := json.Unmarshal(w.Body.Bytes(), target); err != nil {
		t.Fatalf("Failed to parse response: %v (body %q)", err, w.Body.String())
	}
}

func serve(server *Server, req *http.Request) *httptest.ResponseRecorder {
	w := httptest.NewRecorder()
	server.ServeHTTP(w, req)
	return w
}

// Session Management Tests

func TestCreateSession(t *testing.T) {
	tests := []struct {
		name           string
		requestBody    map[string]interface{}
		setupMock      func(*MockGameService)
		expectedStatus int
		validateResp   func(*testing.T, *httptest.ResponseRecorder)
	}{
		{
			name:        "Create session with default config",
			requestBody: nil,
			setupMock: func(m *MockGameService) {
				m.CreateSessionFunc = func(ctx context.Context, req service.CreateSessionRequest) (*service.SessionInfo, error) {
					return &service.SessionInfo{
						ID:             "ab12",
						ConfigName:     "classic",
						CreatedAt:      time.Now(),
						LastAccessedAt: time.Now(),
					}, nil
				}
			},
			expectedStatus: http.StatusCreated,
			validateResp: func(t *testing.T, w *httptest.ResponseRecorder) {
				var resp service.SessionInfo
				parseResponse(t, w, &resp)
				if resp.ID != "ab12" {
					t.Errorf("Expected session ID ab12, got %s", resp.ID)
				}
			},
		},
		{
			name: "Create session with config, players and seed",
			requestBody: map[string]interface{}{
				"config_id": "quick",
				"players":   []string{"Ann", "Bob"},
				"seed":      42,
			},
			setupMock: func(m *MockGameService) {
				m.CreateSessionFunc = func(ctx context.Context, req service.CreateSessionRequest) (*service.SessionInfo, error) {
					if req.ConfigID != "quick" {
						t.Errorf("Expected config id 'quick', got %s", req.ConfigID)
					}
					if len(req.Players) != 2 || req.Players[0] != "Ann" {
						t.Errorf("Expected players [Ann Bob], got %v", req.Players)
					}
					if req.Seed != 42 {
						t.Errorf("Expected seed 42, got %d", req.Seed)
					}
					return &service.SessionInfo{ID: "cd34", ConfigName: req.ConfigID}, nil
				}
			},
			expectedStatus: http.StatusCreated,
			validateResp: func(t *testing.T, w *httptest.ResponseRecorder) {
				var resp service.SessionInfo
				parseResponse(t, w, &resp)
				if resp.ConfigName != "quick" {
					t.Errorf("Expected config name 'quick', got %s", resp.ConfigName)
				}
			},
		},
		{
			name:        "Deprecated config_name is still accepted",
			requestBody: map[string]interface{}{"config_name": "classic"},
			setupMock: func(m *MockGameService) {
				m.CreateSessionFunc = func(ctx context.Context, req service.CreateSessionRequest) (*service.SessionInfo, error) {
					if req.ConfigID != "classic" {
						t.Errorf("Expected config id 'classic', got %s", req.ConfigID)
					}
					return &service.SessionInfo{ID: "ef56"}, nil
				}
			},
			expectedStatus: http.StatusCreated,
		},
		{
			name:        "Too many players",
			requestBody: map[string]interface{}{"players": []string{"a", "b", "c", "d", "e"}},
			setupMock: func(m *MockGameService) {
				m.CreateSessionFunc = func(ctx context.Context, req service.CreateSessionRequest) (*service.SessionInfo, error) {
					return nil, fmt.Errorf("failed to create session: %w", engine.ErrTooManyPlayers)
				}
			},
			expectedStatus: http.StatusBadRequest,
		},
		{
			name:        "Unknown config",
			requestBody: map[string]interface{}{"config_id": "nope"},
			setupMock: func(m *MockGameService) {
				m.CreateSessionFunc = func(ctx context.Context, req service.CreateSessionRequest) (*service.SessionInfo, error) {
					return nil, fmt.Errorf("%w: nope", service.ErrConfigNotFound)
				}
			},
			expectedStatus: http.StatusNotFound,
		},
		{
			name:        "Handle service error",
			requestBody: nil,
			setupMock: func(m *MockGameService) {
				m.CreateSessionFunc = func(ctx context.Context, req service.CreateSessionRequest) (*service.SessionInfo, error) {
					return nil, fmt.Errorf("service error")
				}
			},
			expectedStatus: http.StatusInternalServerError,
			validateResp: func(t *testing.T, w *httptest.ResponseRecorder) {
				var resp map[string]string
				parseResponse(t, w, &resp)
				if resp["error"] != "service error" {
					t.Errorf("Expected error message 'service error', got %s", resp["error"])
				}
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mockService := &MockGameService{}
			if tt.setupMock != nil {
				tt.setupMock(mockService)
			}

			server := setupTestServer(mockService)
			var req *http.Request
			if tt.requestBody == nil {
				req = httptest.NewRequest("POST", "/api/sessions", nil)
			} else {
				req = makeRequest("POST", "/api/sessions", tt.requestBody)
			}

			w := serve(server, req)

			if w.Code != tt.expectedStatus {
				t.Errorf("Expected status %d, got %d", tt.expectedStatus, w.Code)
			}

			if tt.validateResp != nil {
				tt.validateResp(t, w)
			}
		})
	}
}

func TestCreateSessionInvalidBody(t *testing.T) {
	server := setupTestServer(&MockGameService{})
	req := httptest.NewRequest("POST", "/api/sessions", bytes.NewBufferString("{not json"))

	w := serve(server, req)

	if w.Code != http.StatusBadRequest {
		t.Errorf("Expected status 400, got %d", w.Code)
	}
}

func TestListSessions(t *testing.T) {
	now := time.Now()
	tests := []struct {
		name           string
		query          string
		setupMock      func(*MockGameService)
		expectedStatus int
		validateResp   func(*testing.T, *httptest.ResponseRecorder)
	}{
		{
			name: "List multiple sessions, most recently accessed first",
			setupMock: func(m *MockGameService) {
				m.ListSessionsFunc = func(ctx context.Context) ([]*service.SessionInfo, error) {
					return []*service.SessionInfo{
						{ID: "old1", ConfigName: "classic", LastAccessedAt: now.Add(-time.Hour)},
						{ID: "new1", ConfigName: "quick", LastAccessedAt: now},
					}, nil
				}
			},
			expectedStatus: http.StatusOK,
			validateResp: func(t *testing.T, w *httptest.ResponseRecorder) {
				var resp struct {
					Count    int                    `json:"count"`
					Sessions []*service.SessionInfo `json:"sessions"`
				}
				parseResponse(t, w, &resp)
				if resp.Count != 2 {
					t.Errorf("Expected count 2, got %d", resp.Count)
				}
				if len(resp.Sessions) != 2 || resp.Sessions[0].ID != "new1" {
					t.Errorf("Expected new1 first, got %+v", resp.Sessions)
				}
			},
		},
		{
			name:  "Limit and ascending creation order",
			query: "?sort=created&order=asc&limit=1",
			setupMock: func(m *MockGameService) {
				m.ListSessionsFunc = func(ctx context.Context) ([]*service.SessionInfo, error) {
					return []*service.SessionInfo{
						{ID: "b", CreatedAt: now},
						{ID: "a", CreatedAt: now.Add(-time.Minute)},
					}, nil
				}
			},
			expectedStatus: http.StatusOK,
			validateResp: func(t *testing.T, w *httptest.ResponseRecorder) {
				var resp struct {
					Count    int                    `json:"count"`
					Total    int                    `json:"total"`
					Sessions []*service.SessionInfo `json:"sessions"`
				}
				parseResponse(t, w, &resp)
				if resp.Count != 1 || resp.Total != 2 {
					t.Errorf("Expected count 1 of 2, got %d of %d", resp.Count, resp.Total)
				}
				if resp.Sessions[0].ID != "a" {
					t.Errorf("Expected oldest session a, got %s", resp.Sessions[0].ID)
				}
			},
		},
		{
			name:           "Handle empty session list",
			expectedStatus: http.StatusOK,
			validateResp: func(t *testing.T, w *httptest.ResponseRecorder) {
				var resp map[string]interface{}
				parseResponse(t, w, &resp)
				if resp["count"].(float64) != 0 {
					t.Errorf("Expected count 0, got %v", resp["count"])
				}
			},
		},
		{
			name: "Handle service error",
			setupMock: func(m *MockGameService) {
				m.ListSessionsFunc = func(ctx context.Context) ([]*service.SessionInfo, error) {
					return nil, fmt.Errorf("storage error")
				}
			},
			expectedStatus: http.StatusInternalServerError,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mockService := &MockGameService{}
			if tt.setupMock != nil {
				tt.setupMock(mockService)
			}

			server := setupTestServer(mockService)
			w := serve(server, makeRequest("GET", "/api/sessions"+tt.query, nil))

			if w.Code != tt.expectedStatus {
				t.Errorf("Expected status %d, got %d", tt.expectedStatus, w.Code)
			}

			if tt.validateResp != nil {
				tt.validateResp(t, w)
			}
		})
	}
}

func TestGetSession(t *testing.T) {
	tests := []struct {
		name           string
		sessionID      string
		expectedStatus int
	}{
		{name: "Get existing session", sessionID: "ab12", expectedStatus: http.StatusOK},
		{name: "Session not found", sessionID: "zz99", expectedStatus: http.StatusNotFound},
	}

	mockService := &MockGameService{
		GetSessionFunc: func(ctx context.Context, sessionID string) (*service.SessionInfo, error) {
			if sessionID != "ab12" {
				return nil, fmt.Errorf("%w: %s", service.ErrSessionNotFound, sessionID)
			}
			return &service.SessionInfo{ID: sessionID, ConfigName: "classic"}, nil
		},
	}
	server := setupTestServer(mockService)

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := httptest.NewRecorder()
			req := makeRequest("GET", "/api/sessions/"+tt.sessionID, nil)
			req = mux.SetURLVars(req, map[string]string{"id": tt.sessionID})

			server.handleGetSession(w, req)

			if w.Code != tt.expectedStatus {
				t.Errorf("Expected status %d, got %d", tt.expectedStatus, w.Code)
			}
		})
	}
}

func TestDeleteSession(t *testing.T) {
	var deleted string
	mockService := &MockGameService{
		DeleteSessionFunc: func(ctx context.Context, sessionID string) error {
			deleted = sessionID
			return nil
		},
	}
	server := setupTestServer(mockService)

	w := serve(server, makeRequest("DELETE", "/api/sessions/ab12", nil))

	if w.Code != http.StatusOK {
		t.Fatalf("Expected status 200, got %d", w.Code)
	}
	if deleted != "ab12" {
		t.Errorf("Expected ab12 to be deleted, got %q", deleted)
	}
}

// Turn Operation Tests

func TestTurnEndpoints(t *testing.T) {
	tests := []struct {
		name           string
		path           string
		setupMock      func(*MockGameService)
		expectedStatus int
		validateResp   func(*testing.T, *httptest.ResponseRecorder)
	}{
		{
			name:           "Roll",
			path:           "/api/sessions/ab12/roll",
			expectedStatus: http.StatusOK,
			validateResp: func(t *testing.T, w *httptest.ResponseRecorder) {
				var resp service.RollResult
				parseResponse(t, w, &resp)
				if resp.Die != 4 || resp.Direction != engine.Forward {
					t.Errorf("Expected forward 4, got %s %d", resp.Direction, resp.Die)
				}
			},
		},
		{
			name: "Roll twice is a conflict",
			path: "/api/sessions/ab12/roll",
			setupMock: func(m *MockGameService) {
				m.RollDiceFunc = func(ctx context.Context, sessionID string) (*service.RollResult, error) {
					return nil, fmt.Errorf("%w: awaiting_move", service.ErrWrongPhase)
				}
			},
			expectedStatus: http.StatusConflict,
		},
		{
			name:           "Move",
			path:           "/api/sessions/ab12/move",
			expectedStatus: http.StatusOK,
			validateResp: func(t *testing.T, w *httptest.ResponseRecorder) {
				var resp service.MoveResult
				parseResponse(t, w, &resp)
				if resp.To != 5 || len(resp.Path) != 5 {
					t.Errorf("Expected move to 5 over 5 tiles, got %d %v", resp.To, resp.Path)
				}
			},
		},
		{
			name: "Move after the game is won",
			path: "/api/sessions/ab12/move",
			setupMock: func(m *MockGameService) {
				m.ResolveMoveFunc = func(ctx context.Context, sessionID string) (*service.MoveResult, error) {
					return nil, service.ErrGameFinished
				}
			},
			expectedStatus: http.StatusConflict,
		},
		{
			name:           "End turn",
			path:           "/api/sessions/ab12/end-turn",
			expectedStatus: http.StatusOK,
			validateResp: func(t *testing.T, w *httptest.ResponseRecorder) {
				var resp service.EndTurnResult
				parseResponse(t, w, &resp)
				if resp.NextPlayer != "Bob" {
					t.Errorf("Expected Bob next, got %q", resp.NextPlayer)
				}
			},
		},
		{
			name: "Play turn",
			path: "/api/sessions/ab12/turn",
			setupMock: func(m *MockGameService) {
				m.PlayTurnFunc = func(ctx context.Context, sessionID string) (*service.TurnResult, error) {
					return &service.TurnResult{
						End:       &service.EndTurnResult{Won: true, Winner: "Ann"},
						GameState: &engine.GameState{Phase: engine.PhaseFinished, Winner: "Ann"},
						Events:    []service.GameEvent{{Type: service.EventWin, Player: "Ann", Tile: 100}},
					}, nil
				}
			},
			expectedStatus: http.StatusOK,
			validateResp: func(t *testing.T, w *httptest.ResponseRecorder) {
				var resp service.TurnResult
				parseResponse(t, w, &resp)
				if resp.End == nil || !resp.End.Won || resp.GameState.Winner != "Ann" {
					t.Errorf("Expected Ann to win, got %+v", resp.End)
				}
			},
		},
		{
			name: "Reset",
			path: "/api/sessions/ab12/reset",
			setupMock: func(m *MockGameService) {
				m.ResetFunc = func(ctx context.Context, sessionID string) (*engine.GameState, error) {
					return &engine.GameState{Phase: engine.PhaseAwaitingRoll, Message: "new game"}, nil
				}
			},
			expectedStatus: http.StatusOK,
			validateResp: func(t *testing.T, w *httptest.ResponseRecorder) {
				var resp struct {
					State engine.GameState `json:"state"`
				}
				parseResponse(t, w, &resp)
				if resp.State.Phase != engine.PhaseAwaitingRoll {
					t.Errorf("Expected awaiting_roll after reset, got %s", resp.State.Phase)
				}
			},
		},
		{
			name: "Unknown session",
			path: "/api/sessions/zz99/turn",
			setupMock: func(m *MockGameService) {
				m.PlayTurnFunc = func(ctx context.Context, sessionID string) (*service.TurnResult, error) {
					return nil, service.ErrSessionNotFound
				}
			},
			expectedStatus: http.StatusNotFound,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mockService := &MockGameService{}
			if tt.setupMock != nil {
				tt.setupMock(mockService)
			}

			server := setupTestServer(mockService)
			w := serve(server, makeRequest("POST", tt.path, nil))

			if w.Code != tt.expectedStatus {
				t.Errorf("Expected status %d, got %d (%s)", tt.expectedStatus, w.Code, w.Body.String())
			}
			if tt.validateResp != nil {
				tt.validateResp(t, w)
			}
		})
	}
}

func TestGetGameState(t *testing.T) {
	mockService := &MockGameService{
		GetGameStateFunc: func(ctx context.Context, sessionID string) (*engine.GameState, error) {
			return &engine.GameState{
				ConfigName: "classic",
				TileCount:  100,
				Players:    []engine.PlayerView{{Name: "Ann", Position: 1}},
				Phase:      engine.PhaseAwaitingRoll,
			}, nil
		},
	}
	server := setupTestServer(mockService)

	w := serve(server, makeRequest("GET", "/api/sessions/ab12/state", nil))

	if w.Code != http.StatusOK {
		t.Fatalf("Expected status 200, got %d", w.Code)
	}
	var state engine.GameState
	parseResponse(t, w, &state)
	if state.TileCount != 100 || len(state.Players) != 1 {
		t.Errorf("Unexpected state: %+v", state)
	}
}

// Report Tests

func TestGetHistory(t *testing.T) {
	tests := []struct {
		name     string
		query    string
		expected service.HistoryOptions
	}{
		{
			name:     "Defaults",
			query:    "",
			expected: service.HistoryOptions{Page: 1, Limit: 20, Order: "desc"},
		},
		{
			name:     "All filters",
			query:    "?page=2&limit=5&order=asc&player=Ann&round=r1",
			expected: service.HistoryOptions{Page: 2, Limit: 5, Order: "asc", Player: "Ann", RoundID: "r1"},
		},
		{
			name:     "Invalid values fall back to defaults",
			query:    "?page=-1&limit=abc&order=sideways",
			expected: service.HistoryOptions{Page: 1, Limit: 20, Order: "desc"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var got service.HistoryOptions
			mockService := &MockGameService{
				GetTurnHistoryFunc: func(ctx context.Context, sessionID string, opts service.HistoryOptions) (*service.HistoryResponse, error) {
					got = opts
					return &service.HistoryResponse{Page: opts.Page, PageSize: opts.Limit}, nil
				},
			}
			server := setupTestServer(mockService)

			w := serve(server, makeRequest("GET", "/api/sessions/ab12/history"+tt.query, nil))

			if w.Code != http.StatusOK {
				t.Fatalf("Expected status 200, got %d", w.Code)
			}
			if got != tt.expected {
				t.Errorf("Expected options %+v, got %+v", tt.expected, got)
			}
		})
	}
}

func TestLeaderboard(t *testing.T) {
	var gotLimit int
	mockService := &MockGameService{
		GetLeaderboardFunc: func(ctx context.Context, sessionID string, limit int) (*service.LeaderboardResponse, error) {
			gotLimit = limit
			return &service.LeaderboardResponse{
				SessionID: sessionID,
				Entries:   []engine.WinEntry{{Name: "Ann", Wins: 3}, {Name: "Bob", Wins: 1}},
				Limit:     limit,
			}, nil
		},
	}
	server := setupTestServer(mockService)

	w := serve(server, makeRequest("GET", "/api/sessions/ab12/leaderboard?limit=2", nil))

	if w.Code != http.StatusOK {
		t.Fatalf("Expected status 200, got %d", w.Code)
	}
	if gotLimit != 2 {
		t.Errorf("Expected limit 2, got %d", gotLimit)
	}
	var resp service.LeaderboardResponse
	parseResponse(t, w, &resp)
	if len(resp.Entries) != 2 || resp.Entries[0].Name != "Ann" {
		t.Errorf("Unexpected leaderboard: %+v", resp.Entries)
	}

	w = serve(server, makeRequest("GET", "/api/sessions/ab12/leaderboard?limit=three", nil))
	if w.Code != http.StatusBadRequest {
		t.Errorf("Expected status 400 for a non-numeric limit, got %d", w.Code)
	}
}

func TestShortestPath(t *testing.T) {
	tests := []struct {
		name           string
		query          string
		setupMock      func(*MockGameService)
		expectedStatus int
	}{
		{
			name:  "Explicit tiles",
			query: "?from=1&to=100",
			setupMock: func(m *MockGameService) {
				m.ShortestPathFunc = func(ctx context.Context, sessionID string, from, to int) (*service.PathResult, error) {
					if from != 1 || to != 100 {
						t.Errorf("Expected 1 -> 100, got %d -> %d", from, to)
					}
					return &service.PathResult{From: from, To: to, Path: []int{1, 7, 33}, Moves: 2, Reachable: true}, nil
				}
			},
			expectedStatus: http.StatusOK,
		},
		{
			name:  "Missing tiles default to zero",
			query: "",
			setupMock: func(m *MockGameService) {
				m.ShortestPathFunc = func(ctx context.Context, sessionID string, from, to int) (*service.PathResult, error) {
					if from != 0 || to != 0 {
						t.Errorf("Expected zero tiles, got %d -> %d", from, to)
					}
					return &service.PathResult{}, nil
				}
			},
			expectedStatus: http.StatusOK,
		},
		{
			name:           "Non-numeric tile",
			query:          "?from=start",
			expectedStatus: http.StatusBadRequest,
		},
		{
			name:  "Tile off the board",
			query: "?from=500",
			setupMock: func(m *MockGameService) {
				m.ShortestPathFunc = func(ctx context.Context, sessionID string, from, to int) (*service.PathResult, error) {
					return nil, fmt.Errorf("%w: %d", service.ErrInvalidTile, from)
				}
			},
			expectedStatus: http.StatusBadRequest,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mockService := &MockGameService{}
			if tt.setupMock != nil {
				tt.setupMock(mockService)
			}
			server := setupTestServer(mockService)

			w := serve(server, makeRequest("GET", "/api/sessions/ab12/path"+tt.query, nil))

			if w.Code != tt.expectedStatus {
				t.Errorf("Expected status %d, got %d", tt.expectedStatus, w.Code)
			}
		})
	}
}

// Configuration Tests

func TestListConfigs(t *testing.T) {
	mockService := &MockGameService{
		ListConfigsFunc: func(ctx context.Context) ([]*service.ConfigInfo, error) {
			return []*service.ConfigInfo{
				{ConfigID: "classic", Name: "classic", TileCount: 100, LadderCount: 5, MaxPlayers: 4},
				{ConfigID: "quick", Name: "quick", TileCount: 30, LadderCount: 3, MaxPlayers: 4},
			}, nil
		},
	}
	server := setupTestServer(mockService)

	w := serve(server, makeRequest("GET", "/api/configs", nil))

	if w.Code != http.StatusOK {
		t.Fatalf("Expected status 200, got %d", w.Code)
	}
	var resp []*service.ConfigInfo
	parseResponse(t, w, &resp)
	if len(resp) != 2 || resp[1].TileCount != 30 {
		t.Errorf("Unexpected configs: %+v", resp)
	}
}

func TestGetConfig(t *testing.T) {
	mockService := &MockGameService{
		LoadConfigFunc: func(ctx context.Context, configName string) (*engine.GameConfig, error) {
			if configName != "classic" {
				return nil, fmt.Errorf("%w: %s", service.ErrConfigNotFound, configName)
			}
			return engine.DefaultGameConfig(), nil
		},
	}
	server := setupTestServer(mockService)

	w := serve(server, makeRequest("GET", "/api/configs/classic", nil))
	if w.Code != http.StatusOK {
		t.Fatalf("Expected status 200, got %d", w.Code)
	}
	var cfg engine.GameConfig
	parseResponse(t, w, &cfg)
	if cfg.TileCount != 100 || len(cfg.Ladders) != 5 {
		t.Errorf("Unexpected config: %+v", cfg)
	}

	w = serve(server, makeRequest("GET", "/api/configs/missing", nil))
	if w.Code != http.StatusNotFound {
		t.Errorf("Expected status 404, got %d", w.Code)
	}
}

func TestCreateConfig(t *testing.T) {
	tests := []struct {
		name           string
		body           map[string]interface{}
		expectedID     string
		expectedStatus int
	}{
		{
			name: "Derives id from name",
			body: map[string]interface{}{
				"name":       "Short Hop",
				"tile_count": 30,
				"ladders":    map[string]int{"4": 14},
			},
			expectedID:     "short_hop",
			expectedStatus: http.StatusCreated,
		},
		{
			name: "Explicit id",
			body: map[string]interface{}{
				"config_id":  "mini",
				"name":       "Mini",
				"tile_count": 20,
			},
			expectedID:     "mini",
			expectedStatus: http.StatusCreated,
		},
		{
			name:           "Name is required",
			body:           map[string]interface{}{"tile_count": 20},
			expectedStatus: http.StatusBadRequest,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var savedID string
			var saved *engine.GameConfig
			mockService := &MockGameService{
				SaveConfigFunc: func(ctx context.Context, configName string, config *engine.GameConfig) error {
					savedID = configName
					saved = config
					return nil
				},
			}
			server := setupTestServer(mockService)

			w := serve(server, makeRequest("POST", "/api/configs", tt.body))

			if w.Code != tt.expectedStatus {
				t.Fatalf("Expected status %d, got %d", tt.expectedStatus, w.Code)
			}
			if tt.expectedID != "" {
				if savedID != tt.expectedID {
					t.Errorf("Expected config id %q, got %q", tt.expectedID, savedID)
				}
				if saved == nil || saved.TileCount != int(tt.body["tile_count"].(int)) {
					t.Errorf("Config body was not passed through: %+v", saved)
				}
			}
		})
	}
}

func TestUnifiedSessions(t *testing.T) {
	mockService := &MockGameService{
		ListSessionsFunc: func(ctx context.Context) ([]*service.SessionInfo, error) {
			return []*service.SessionInfo{
				{ID: "t1", ConfigName: "classic", GameState: &engine.GameState{
					Players: []engine.PlayerView{{Name: "Ann"}, {Name: "Bob"}},
					Phase:   engine.PhaseFinished,
				}},
				{ID: "t2", ConfigName: "classic", GameState: &engine.GameState{
					Players: []engine.PlayerView{{Name: "Cid"}},
					Phase:   engine.PhaseAwaitingRoll,
				}},
				{ID: "t3", ConfigName: "quick"},
			}, nil
		},
	}
	server := setupTestServer(mockService)

	w := serve(server, makeRequest("GET", "/api/sessions/unified?configName=classic", nil))

	if w.Code != http.StatusOK {
		t.Fatalf("Expected status 200, got %d", w.Code)
	}
	var resp struct {
		ConfigName   string                   `json:"config_name"`
		TotalPlayers int                      `json:"total_players"`
		Finished     int                      `json:"finished"`
		Sessions     []map[string]interface{} `json:"sessions"`
	}
	parseResponse(t, w, &resp)
	if len(resp.Sessions) != 2 {
		t.Errorf("Expected 2 classic tables, got %d", len(resp.Sessions))
	}
	if resp.TotalPlayers != 3 || resp.Finished != 1 {
		t.Errorf("Expected 3 players and 1 finished table, got %d and %d", resp.TotalPlayers, resp.Finished)
	}
}

func TestStatusFor(t *testing.T) {
	tests := []struct {
		err    error
		status int
	}{
		{service.ErrSessionNotFound, http.StatusNotFound},
		{fmt.Errorf("wrapped: %w", service.ErrConfigNotFound), http.StatusNotFound},
		{service.ErrWrongPhase, http.StatusConflict},
		{service.ErrGameFinished, http.StatusConflict},
		{service.ErrInvalidTile, http.StatusBadRequest},
		{engine.ErrNoPlayers, http.StatusBadRequest},
		{fmt.Errorf("boom"), http.StatusInternalServerError},
	}

	for _, tt := range tests {
		if got := statusFor(tt.err); got != tt.status {
			t.Errorf("statusFor(%v) = %d, want %d", tt.err, got, tt.status)
		}
	}
}

func TestWebSocketRequiresSession(t *testing.T) {
	mockService := &MockGameService{
		GetSessionFunc: func(ctx context.Context, sessionID string) (*service.SessionInfo, error) {
			return nil, service.ErrSessionNotFound
		},
	}
	server := setupTestServer(mockService)

	w := serve(server, makeRequest("GET", "/ws", nil))
	if w.Code != http.StatusBadRequest {
		t.Errorf("Expected status 400 without session, got %d", w.Code)
	}

	w = serve(server, makeRequest("GET", "/ws?session=zz99", nil))
	if w.Code != http.StatusNotFound {
		t.Errorf("Expected status 404 for unknown session, got %d", w.Code)
	}
}

func TestWebSocketRoomIgnoresCase(t *testing.T) {
	mockService := &MockGameService{
		GetSessionFunc: func(ctx context.Context, sessionID string) (*service.SessionInfo, error) {
			return &service.SessionInfo{ID: "ab12"}, nil
		},
		RollDiceFunc: func(ctx context.Context, sessionID string) (*service.RollResult, error) {
			return &service.RollResult{
				Player:    "Ann",
				Die:       4,
				Direction: engine.Forward,
				GameState: &engine.GameState{ConfigName: "classic", Phase: engine.PhaseAwaitingMove},
			}, nil
		},
	}
	server := setupTestServer(mockService)
	ts := httptest.NewServer(server)
	defer ts.Close()

	wsURL := "ws" + strings.TrimPrefix(ts.URL, "http") + "/ws?session=AB12"
	conn, _, err := gorillaws.DefaultDialer.Dial(wsURL, nil)
	if err != nil {
		t.Fatalf("Failed to connect: %v", err)
	}
	defer conn.Close()

	deadline := time.Now().Add(2 * time.Second)
	for server.hub.ClientCount("ab12") != 1 {
		if time.Now().After(deadline) {
			t.Fatal("Expected the watcher in room ab12")
		}
		time.Sleep(10 * time.Millisecond)
	}

	w := serve(server, makeRequest("POST", "/api/sessions/Ab12/roll", nil))
	if w.Code != http.StatusOK {
		t.Fatalf("Expected status 200, got %d", w.Code)
	}

	conn.SetReadDeadline(time.Now().Add(2 * time.Second))
	var msg websocket.Message
	if err := conn.ReadJSON(&msg); err != nil {
		t.Fatalf("Expected a state update for the watcher: %v", err)
	}
	if msg.SessionID != "ab12" || msg.Event != websocket.EventStateUpdate {
		t.Errorf("Unexpected message: session %q event %q", msg.SessionID, msg.Event)
	}
	if msg.GameState == nil || msg.GameState.Phase != engine.PhaseAwaitingMove {
		t.Errorf("Expected the rolled state, got %+v", msg.GameState)
	}
}

func TestHealth(t *testing.T) {
	server := setupTestServer(&MockGameService{})

	w := serve(server, makeRequest("GET", "/health", nil))

	if w.Code != http.StatusOK {
		t.Fatalf("Expected status 200, got %d", w.Code)
	}
	var resp map[string]string
	parseResponse(t, w, &resp)
	if resp["status"] != "healthy" {
		t.Errorf("Expected healthy, got %q", resp["status"])
	}
}
