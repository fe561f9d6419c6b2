package api

import (
	"context"
	"encoding/json"
	"log"
	"net/http"
	"sync"
	"time"

	"drivethru/internal/order"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"
)

// WebSocket upgrader configuration
var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	CheckOrigin: func(r *http.Request) bool {
		return true // kiosk hardware connects from its own origin
	},
}

// wsConnection maintains one kiosk's chat connection.
type wsConnection struct {
	conn    *websocket.Conn
	send    chan []byte
	mu      sync.Mutex
	server  *Server
	session *order.Session
}

// handleWebSocket upgrades a kiosk chat connection. Each inbound message is
// one customer utterance; each outbound message is a ChatResponse.
func (s *Server) handleWebSocket(c *gin.Context) {
	sess, err := s.sessions.Get(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Session not found"})
		return
	}

	conn, err := upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		log.Printf("Failed to upgrade connection: %v", err)
		return
	}

	ws := &wsConnection{
		conn:    conn,
		send:    make(chan []byte, 16),
		server:  s,
		session: sess,
	}

	go ws.writePump()
	go ws.readPump()
}

// readPump pumps customer utterances from the socket into the chat pipeline.
func (c *wsConnection) readPump() {
	defer func() {
		close(c.send)
		c.conn.Close()
	}()

	c.conn.SetReadLimit(32 * 1024)
	c.conn.SetReadDeadline(time.Now().Add(5 * time.Minute))
	c.conn.SetPongHandler(func(string) error {
		c.conn.SetReadDeadline(time.Now().Add(5 * time.Minute))
		return nil
	})

	for {
		_, message, err := c.conn.ReadMessage()
		if err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseAbnormalClosure) {
				log.Printf("WebSocket error: %v", err)
			}
			return
		}
		c.handleMessage(message)
	}
}

// writePump pumps chat responses back to the kiosk and keeps the socket alive.
func (c *wsConnection) writePump() {
	ticker := time.NewTicker(30 * time.Second)
	defer func() {
		ticker.Stop()
		c.conn.Close()
	}()

	for {
		select {
		case message, ok := <-c.send:
			c.conn.SetWriteDeadline(time.Now().Add(10 * time.Second))
			if !ok {
				c.conn.WriteMessage(websocket.CloseMessage, []byte{})
				return
			}
			if err := c.conn.WriteMessage(websocket.TextMessage, message); err != nil {
				return
			}
		case <-ticker.C:
			c.conn.SetWriteDeadline(time.Now().Add(10 * time.Second))
			if err := c.conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				return
			}
		}
	}
}

// handleMessage runs one utterance through the chat pipeline.
func (c *wsConnection) handleMessage(message []byte) {
	var req ChatRequest
	if err := json.Unmarshal(message, &req); err != nil || req.Message == "" {
		c.reply(gin.H{"error": "expected {\"message\": \"...\"}"})
		return
	}

	ctx, cancel := context.WithTimeout(context.Background(), 60*time.Second)
	defer cancel()

	resp := c.server.runChat(ctx, c.session, req.Message)
	c.reply(resp)
}

// reply marshals and queues one outbound frame.
func (c *wsConnection) reply(v interface{}) {
	data, err := json.Marshal(v)
	if err != nil {
		log.Printf("failed to encode websocket reply: %v", err)
		return
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	select {
	case c.send <- data:
	default:
		log.Printf("websocket send buffer full, dropping reply")
	}
}
