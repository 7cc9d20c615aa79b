package slither

import (
	"encoding/json"
	"log"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/gorilla/websocket"
)

// sendQueueSize bounds each connection's outbound buffer. A tick's
// broadcast enqueues onto this channel and never blocks on a slow reader;
// a full queue drops the message and logs it. A dropped message is not
// resent; the messages that are delivered keep their order.
const sendQueueSize = 32

// Conn wraps one WebSocket session. It implements Sender so Room code never
// imports gorilla/websocket directly.
type Conn struct {
	ID string

	ws   *websocket.Conn
	send chan []byte

	mu     sync.Mutex
	closed bool
}

// NewConn allocates a connection with an 8-character opaque id, which
// doubles as the player id once the connection joins a room.
func NewConn(ws *websocket.Conn) *Conn {
	return &Conn{
		ID:   uuid.New().String()[:8],
		ws:   ws,
		send: make(chan []byte, sendQueueSize),
	}
}

// Send marshals msg and enqueues it for the write pump. Non-blocking: a
// saturated queue means a slow client, and the message is dropped rather
// than stalling whichever goroutine (often the room's tick) called Send.
func (c *Conn) Send(msg interface{}) error {
	data, err := json.Marshal(msg)
	if err != nil {
		return err
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.closed {
		return nil
	}
	select {
	case c.send <- data:
	default:
		log.Printf("conn %s: send queue full, dropping message", c.ID)
	}
	return nil
}

// Close marks the connection closed and stops its write pump.
func (c *Conn) Close() {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.closed {
		return
	}
	c.closed = true
	close(c.send)
	c.ws.Close()
}

// WritePump drains the send queue to the socket and keeps the heartbeat
// ping alive. Runs until the connection closes; a failed write tears the
// whole connection down so the read side unblocks promptly.
func (c *Conn) WritePump() {
	ticker := time.NewTicker(PingInterval)
	defer ticker.Stop()
	defer c.Close()

	for {
		select {
		case data, ok := <-c.send:
			if !ok {
				return
			}
			_ = c.ws.SetWriteDeadline(time.Now().Add(PongTimeout))
			if err := c.ws.WriteMessage(websocket.TextMessage, data); err != nil {
				return
			}
		case <-ticker.C:
			_ = c.ws.SetWriteDeadline(time.Now().Add(PongTimeout))
			if err := c.ws.WriteMessage(websocket.PingMessage, nil); err != nil {
				return
			}
		}
	}
}

// ReadPump reads frames until the connection errors or closes, dispatching
// each to onMessage. onClose runs exactly once, however the loop ends.
func (c *Conn) ReadPump(onMessage func(raw []byte), onClose func()) {
	defer onClose()
	defer c.Close()

	c.ws.SetReadDeadline(time.Now().Add(PongTimeout))
	c.ws.SetPongHandler(func(string) error {
		c.ws.SetReadDeadline(time.Now().Add(PongTimeout))
		return nil
	})

	for {
		_, raw, err := c.ws.ReadMessage()
		if err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseNormalClosure) {
				log.Printf("ws read error for %s: %v", c.ID, err)
			}
			return
		}
		onMessage(raw)
	}
}
