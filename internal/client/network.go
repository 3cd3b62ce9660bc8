package client

import (
	"context"
	"encoding/json"
	"errors"
	"net/url"
	"sync"
	"time"

	"github.com/coder/websocket"
	"github.com/rs/zerolog/log"

	"hex-settlers/internal/game"
	"hex-settlers/internal/protocol"
)

// ErrNotConnected is returned when sending on a closed connection.
var ErrNotConnected = errors.New("not connected")

// Conn is a player's WebSocket to one game.
type Conn struct {
	conn     *websocket.Conn
	sendChan chan []byte
	recvChan chan *protocol.Message
	done     chan struct{}
	mu       sync.Mutex

	GameID string

	connected bool
}

// Dial opens the game socket for gameID with the API's session.
func (a *API) Dial(ctx context.Context, gameID string) (*Conn, error) {
	u := a.wsBase + "/games/" + url.PathEscape(gameID) + "/ws?token=" + url.QueryEscape(a.Token)

	dialCtx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()

	conn, _, err := websocket.Dial(dialCtx, u, nil)
	if err != nil {
		log.Debug().Err(err).Str("game", gameID).Msg("websocket dial failed")
		return nil, err
	}
	log.Debug().Str("game", gameID).Msg("websocket connection established")

	c := &Conn{
		conn:      conn,
		sendChan:  make(chan []byte, 64),
		recvChan:  make(chan *protocol.Message, 64),
		done:      make(chan struct{}),
		GameID:    gameID,
		connected: true,
	}
	go c.readPump()
	go c.writePump()
	return c, nil
}

// Close closes the connection.
func (c *Conn) Close() {
	c.mu.Lock()
	defer c.mu.Unlock()

	if !c.connected {
		return
	}
	c.connected = false
	close(c.done)
	c.conn.Close(websocket.StatusNormalClosure, "")
}

// IsConnected returns true if connected to server.
func (c *Conn) IsConnected() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.connected
}

// Messages returns the server's messages in order. The channel closes when
// the connection does.
func (c *Conn) Messages() <-chan *protocol.Message {
	return c.recvChan
}

// SendAction queues an action. The server fills in the player id.
func (c *Conn) SendAction(a game.Action) error {
	data, err := json.Marshal(a)
	if err != nil {
		return err
	}
	select {
	case <-c.done:
		return ErrNotConnected
	case c.sendChan <- data:
		return nil
	}
}

// readPump reads messages from the WebSocket.
func (c *Conn) readPump() {
	defer func() {
		c.mu.Lock()
		if c.connected {
			c.connected = false
			close(c.done)
		}
		c.mu.Unlock()
		close(c.recvChan)
	}()

	c.conn.SetReadLimit(1 << 20)

	for {
		// Read with no timeout - rely on ping/pong to detect dead connections
		msgType, data, err := c.conn.Read(context.Background())
		if err != nil {
			status := websocket.CloseStatus(err)
			if status != websocket.StatusNormalClosure && status != websocket.StatusGoingAway {
				log.Debug().Err(err).Str("game", c.GameID).Msg("websocket read error")
			}
			return
		}

		// Only process text messages
		if msgType != websocket.MessageText {
			continue
		}

		var msg protocol.Message
		if err := json.Unmarshal(data, &msg); err != nil {
			log.Warn().Err(err).Msg("failed to unmarshal message")
			continue
		}

		select {
		case c.recvChan <- &msg:
		case <-c.done:
			return
		}
	}
}

// writePump writes messages to the WebSocket.
func (c *Conn) writePump() {
	ticker := time.NewTicker(30 * time.Second)
	defer ticker.Stop()

	for {
		select {
		case <-c.done:
			return

		case data := <-c.sendChan:
			ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
			err := c.conn.Write(ctx, websocket.MessageText, data)
			cancel()
			if err != nil {
				log.Debug().Err(err).Str("game", c.GameID).Msg("websocket write error")
				return
			}

		case <-ticker.C:
			ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
			err := c.conn.Ping(ctx)
			cancel()
			if err != nil {
				return
			}
		}
	}
}
