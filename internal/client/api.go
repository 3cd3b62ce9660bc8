// Package client is a headless hex-settlers client: the REST lobby calls,
// the game socket and a bot that plays a seat remotely.
package client

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"hex-settlers/internal/game"
	"hex-settlers/internal/protocol"
)

// APIError is a non-2xx response from the server.
type APIError struct {
	Status  int
	Code    protocol.ErrorCode
	Message string
}

func (e *APIError) Error() string {
	return fmt.Sprintf("server returned %d (%s): %s", e.Status, e.Code, e.Message)
}

// API calls the server's REST routes as one player.
type API struct {
	httpBase string
	wsBase   string
	http     *http.Client

	Token    string
	PlayerID string
}

// NewAPI creates a client for serverAddr, which may be host:port or a full
// http(s) or ws(s) URL.
func NewAPI(serverAddr string) *API {
	httpBase, wsBase := baseURLs(serverAddr)
	return &API{
		httpBase: httpBase,
		wsBase:   wsBase,
		http:     &http.Client{Timeout: 15 * time.Second},
	}
}

// baseURLs picks the schemes for an address. Cloud hosts get TLS on the
// standard port.
func baseURLs(addr string) (httpBase, wsBase string) {
	secure := strings.HasPrefix(addr, "https://") || strings.HasPrefix(addr, "wss://")
	host := addr
	for _, prefix := range []string{"https://", "http://", "wss://", "ws://"} {
		host = strings.TrimPrefix(host, prefix)
	}
	host = strings.TrimSuffix(host, "/")

	for _, cloud := range []string{".onrender.com", ".herokuapp.com", ".fly.dev"} {
		if strings.Contains(host, cloud) {
			secure = true
			// Remove any port if specified (cloud providers use standard 443)
			if i := strings.LastIndex(host, ":"); i != -1 {
				host = host[:i]
			}
		}
	}

	if secure {
		return "https://" + host, "wss://" + host
	}
	return "http://" + host, "ws://" + host
}

// Register creates a player and keeps its session for later calls.
func (a *API) Register(ctx context.Context, name string) (*protocol.RegisterResponse, error) {
	var resp protocol.RegisterResponse
	if err := a.do(ctx, http.MethodPost, "/players/register", protocol.RegisterRequest{DisplayName: name}, &resp); err != nil {
		return nil, err
	}
	a.Token, a.PlayerID = resp.SessionToken, resp.PlayerID
	return &resp, nil
}

// CreateGame opens a lobby hosted by this player and returns its id.
func (a *API) CreateGame(ctx context.Context, req protocol.CreateGameRequest) (string, error) {
	var resp protocol.CreateGameResponse
	if err := a.do(ctx, http.MethodPost, "/games", req, &resp); err != nil {
		return "", err
	}
	return resp.GameID, nil
}

// Game returns a game summary.
func (a *API) Game(ctx context.Context, gameID string) (*protocol.GameInfo, error) {
	var resp protocol.GameInfo
	if err := a.do(ctx, http.MethodGet, "/games/"+gameID, nil, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

// JoinGame takes the next free seat.
func (a *API) JoinGame(ctx context.Context, gameID, password string) (*protocol.JoinGameResponse, error) {
	var resp protocol.JoinGameResponse
	if err := a.do(ctx, http.MethodPost, "/games/"+gameID+"/join", protocol.JoinGameRequest{Password: password}, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

// AddAI adds a server-side computer seat. Host only.
func (a *API) AddAI(ctx context.Context, gameID, difficulty string) (*protocol.GamePlayerInfo, error) {
	var resp protocol.GamePlayerInfo
	if err := a.do(ctx, http.MethodPost, "/games/"+gameID+"/ai", protocol.AddAIRequest{Difficulty: difficulty}, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

// StartGame deals the board. Host only.
func (a *API) StartGame(ctx context.Context, gameID string) (*game.GameState, error) {
	var resp protocol.GameStatePayload
	if err := a.do(ctx, http.MethodPost, "/games/"+gameID+"/start", nil, &resp); err != nil {
		return nil, err
	}
	return resp.State, nil
}

// State returns the game as this player may see it.
func (a *API) State(ctx context.Context, gameID string) (*game.GameState, error) {
	var resp protocol.GameStatePayload
	if err := a.do(ctx, http.MethodGet, "/games/"+gameID+"/state", nil, &resp); err != nil {
		return nil, err
	}
	return resp.State, nil
}

func (a *API) do(ctx context.Context, method, path string, body, out any) error {
	var r io.Reader
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			return err
		}
		r = bytes.NewReader(data)
	}
	req, err := http.NewRequestWithContext(ctx, method, a.httpBase+path, r)
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/json")
	if a.Token != "" {
		req.Header.Set("Authorization", "Bearer "+a.Token)
	}

	resp, err := a.http.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 300 {
		apiErr := &APIError{Status: resp.StatusCode}
		var payload protocol.ErrorPayload
		if json.NewDecoder(resp.Body).Decode(&payload) == nil {
			apiErr.Code, apiErr.Message = payload.Code, payload.Message
		}
		return apiErr
	}
	if out == nil {
		return nil
	}
	return json.NewDecoder(resp.Body).Decode(out)
}
