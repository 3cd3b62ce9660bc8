package server

import (
	"context"
	"encoding/json"
	"errors"
	"sync"
	"time"

	"github.com/coder/websocket"
	"github.com/rs/zerolog/log"

	"hex-settlers/internal/game"
	"hex-settlers/internal/protocol"
)

// Hub tracks the connected clients of every game.
type Hub struct {
	mu    sync.RWMutex
	games map[string]map[*Client]bool
}

// NewHub creates a new Hub.
func NewHub() *Hub {
	return &Hub{games: make(map[string]map[*Client]bool)}
}

// Register adds a client to its game.
func (h *Hub) Register(c *Client) {
	h.mu.Lock()
	defer h.mu.Unlock()

	if h.games[c.GameID] == nil {
		h.games[c.GameID] = make(map[*Client]bool)
	}
	h.games[c.GameID][c] = true
}

// Unregister removes a client and stops its writer.
func (h *Hub) Unregister(c *Client) {
	h.mu.Lock()
	if clients, ok := h.games[c.GameID]; ok {
		delete(clients, c)
		if len(clients) == 0 {
			delete(h.games, c.GameID)
		}
	}
	h.mu.Unlock()
	c.close()
}

func (h *Hub) clients(gameID string) []*Client {
	h.mu.RLock()
	defer h.mu.RUnlock()

	out := make([]*Client, 0, len(h.games[gameID]))
	for c := range h.games[gameID] {
		out = append(out, c)
	}
	return out
}

// Broadcast sends msg to every client in a game.
func (h *Hub) Broadcast(gameID string, msg *protocol.Message) {
	for _, c := range h.clients(gameID) {
		c.Send(msg)
	}
}

// SendToPlayer sends msg to every connection playerID has open on a game.
func (h *Hub) SendToPlayer(gameID, playerID string, msg *protocol.Message) {
	for _, c := range h.clients(gameID) {
		if c.PlayerID == playerID {
			c.Send(msg)
		}
	}
}

// BroadcastState sends each client the state as that client may see it.
func (h *Hub) BroadcastState(gameID string, msgType protocol.MessageType, state *game.GameState) {
	views := make(map[string]*protocol.Message)
	for _, c := range h.clients(gameID) {
		msg, ok := views[c.PlayerID]
		if !ok {
			var err error
			msg, err = protocol.NewMessage(msgType, protocol.GameStatePayload{State: FilterStateForPlayer(state, c.PlayerID)})
			if err != nil {
				log.Error().Err(err).Str("game", gameID).Msg("failed to encode state")
				return
			}
			views[c.PlayerID] = msg
		}
		c.Send(msg)
	}
}

const (
	writeWait      = 10 * time.Second
	pingPeriod     = 30 * time.Second
	maxMessageSize = 65536
	sendBuffer     = 256
)

// Client represents a connected WebSocket client.
type Client struct {
	conn *websocket.Conn
	send chan *protocol.Message
	done chan struct{}
	once sync.Once

	PlayerID string
	GameID   string
}

// NewClient creates a new client.
func NewClient(conn *websocket.Conn, gameID, playerID string) *Client {
	return &Client{
		conn:     conn,
		send:     make(chan *protocol.Message, sendBuffer),
		done:     make(chan struct{}),
		GameID:   gameID,
		PlayerID: playerID,
	}
}

// Send queues a message to be sent to the client. A client too slow to
// drain its queue is disconnected.
func (c *Client) Send(msg *protocol.Message) {
	select {
	case <-c.done:
		return
	default:
	}
	select {
	case c.send <- msg:
	case <-c.done:
	default:
		log.Warn().Str("game", c.GameID).Str("player", c.PlayerID).Msg("client send queue full, disconnecting")
		c.close()
	}
}

func (c *Client) close() {
	c.once.Do(func() { close(c.done) })
}

// ReadPump passes each text frame to handle until the connection closes.
func (c *Client) ReadPump(ctx context.Context, handle func(data []byte)) {
	defer c.close()

	c.conn.SetReadLimit(maxMessageSize)
	for {
		msgType, data, err := c.conn.Read(ctx)
		if err != nil {
			status := websocket.CloseStatus(err)
			if status != websocket.StatusNormalClosure && status != websocket.StatusGoingAway && !errors.Is(err, context.Canceled) {
				log.Debug().Err(err).Str("game", c.GameID).Str("player", c.PlayerID).Msg("websocket read failed")
			}
			return
		}
		if msgType != websocket.MessageText {
			continue
		}
		handle(data)
	}
}

// WritePump writes queued messages and keepalive pings until the client is
// closed or ctx is done.
func (c *Client) WritePump(ctx context.Context) {
	ticker := time.NewTicker(pingPeriod)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			c.conn.Close(websocket.StatusGoingAway, "server shutting down")
			return
		case <-c.done:
			c.conn.Close(websocket.StatusNormalClosure, "")
			return
		case msg := <-c.send:
			data, err := json.Marshal(msg)
			if err != nil {
				log.Error().Err(err).Msg("failed to marshal message")
				continue
			}
			if err := c.write(ctx, data); err != nil {
				c.close()
				return
			}
		case <-ticker.C:
			pctx, cancel := context.WithTimeout(ctx, writeWait)
			err := c.conn.Ping(pctx)
			cancel()
			if err != nil {
				c.close()
				return
			}
		}
	}
}

func (c *Client) write(ctx context.Context, data []byte) error {
	wctx, cancel := context.WithTimeout(ctx, writeWait)
	defer cancel()
	return c.conn.Write(wctx, websocket.MessageText, data)
}
