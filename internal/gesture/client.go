package gesture

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/gorilla/websocket"
)

// Client publishes frames to a running bridge. It is used by the CLI relay
// and by tests.
type Client struct {
	conn *websocket.Conn
}

// Dial connects to a bridge URL such as ws://127.0.0.1:8765/ws.
func Dial(ctx context.Context, url string) (*Client, error) {
	conn, _, err := websocket.DefaultDialer.DialContext(ctx, url, nil)
	if err != nil {
		return nil, fmt.Errorf("gesture: cannot dial %s: %w", url, err)
	}
	return &Client{conn: conn}, nil
}

// Send writes one frame.
func (c *Client) Send(msg Message) error {
	data, err := json.Marshal(msg)
	if err != nil {
		return fmt.Errorf("gesture: cannot encode message: %w", err)
	}
	return c.SendRaw(data)
}

// SendRaw writes an already encoded frame.
func (c *Client) SendRaw(data []byte) error {
	_ = c.conn.SetWriteDeadline(time.Now().Add(writeWait))
	if err := c.conn.WriteMessage(websocket.TextMessage, data); err != nil {
		return fmt.Errorf("gesture: cannot send: %w", err)
	}
	return nil
}

// Close sends a close frame and closes the connection.
func (c *Client) Close() error {
	deadline := time.Now().Add(writeWait)
	msg := websocket.FormatCloseMessage(websocket.CloseNormalClosure, "")
	_ = c.conn.WriteControl(websocket.CloseMessage, msg, deadline)
	return c.conn.Close()
}
