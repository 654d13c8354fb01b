// Package transport is the brain's only collaborator that touches the
// network: a gorilla/websocket connection to the game server, decoded into
// catan.Message and re-encoded from catan.Action. Everything in C1-C5 is
// pure in-memory state transition; this package is the sole place that
// blocks on I/O.
package transport

import (
	"context"
	"fmt"
	"net/url"
	"strings"
	"sync"
	"time"

	"github.com/gorilla/websocket"
	"github.com/rs/zerolog"

	"github.com/settlers/robotbrain/internal/brain"
	"github.com/settlers/robotbrain/pkg/catan"
)

// Client is a single bot's connection to the game server: reads wire
// messages and decodes/enqueues them onto a brain.Queue, and implements
// brain.Emitter to encode and send the brain's outbound actions.
type Client struct {
	name    string
	baseURL string
	token   string
	userID  string

	conn   *websocket.Conn
	queue  *brain.Queue
	httpC  *httpClient
	log    zerolog.Logger

	mu     sync.Mutex
	closed bool
}

// NewClient creates a client targeting baseURL, feeding decoded messages
// into queue.
func NewClient(name, baseURL string, queue *brain.Queue, log zerolog.Logger) *Client {
	return &Client{
		name:    name,
		baseURL: strings.TrimRight(baseURL, "/"),
		queue:   queue,
		httpC:   newHTTPClient(30 * time.Second),
		log:     log,
	}
}

// SetToken installs a bearer token obtained elsewhere; Login sets the token
// itself.
func (c *Client) SetToken(token string) { c.token = token }

// Connect opens the websocket and starts the read loop, which decodes and
// pushes every frame onto the brain's queue until the connection closes or
// ctx is cancelled.
func (c *Client) Connect(ctx context.Context, gameID string) error {
	wsURL := strings.Replace(c.baseURL, "http", "ws", 1) + "/ws?game_id=" + url.QueryEscape(gameID) + "&token=" + url.QueryEscape(c.token)
	conn, _, err := websocket.DefaultDialer.DialContext(ctx, wsURL, nil)
	if err != nil {
		return fmt.Errorf("transport: ws dial: %w", err)
	}
	c.conn = conn
	go c.readLoop(ctx)
	return nil
}

func (c *Client) readLoop(ctx context.Context) {
	defer func() {
		c.mu.Lock()
		closed := c.closed
		c.mu.Unlock()
		if !closed {
			c.queue.Close()
		}
	}()
	for {
		_, raw, err := c.conn.ReadMessage()
		if err != nil {
			c.log.Debug().Err(err).Str("bot", c.name).Msg("websocket read error, treating as game reset")
			return
		}
		msg, err := decodeMessage(raw)
		if err != nil {
			c.log.Warn().Err(err).Msg("failed to decode inbound frame, dropping")
			continue
		}
		if !c.queue.Push(ctx, msg) {
			return
		}
	}
}

// Emit implements brain.Emitter: encodes and writes an outbound action.
func (c *Client) Emit(a catan.Action) {
	raw, err := encodeAction(a)
	if err != nil {
		c.log.Error().Err(err).Msg("failed to encode outbound action")
		return
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.closed || c.conn == nil {
		return
	}
	if err := c.conn.WriteMessage(websocket.TextMessage, raw); err != nil {
		c.log.Warn().Err(err).Msg("failed to write outbound frame")
	}
}

// Close closes the underlying websocket connection.
func (c *Client) Close() {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.closed || c.conn == nil {
		return
	}
	c.closed = true
	c.conn.WriteMessage(websocket.CloseMessage, websocket.FormatCloseMessage(websocket.CloseNormalClosure, ""))
	c.conn.Close()
}
