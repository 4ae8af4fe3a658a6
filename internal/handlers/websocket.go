package handlers

import (
	"log"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"
	"github.com/peerdial/signaling/internal/relay"
)

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	CheckOrigin: func(r *http.Request) bool {
		// Origin checking is handled by middleware
		return true
	},
}

const (
	readTimeout   = 60 * time.Second
	writeTimeout  = 10 * time.Second
	pingInterval  = 54 * time.Second
	sendQueueSize = 256
)

// Client is one WebSocket connection. It satisfies relay.Conn: Send is
// best-effort and drops the message when the outbound queue is full.
// The relay holds the client only while an identifier is registered to
// it; the client owns the underlying connection.
type Client struct {
	conn *websocket.Conn
	send chan []byte
}

// Send queues data for delivery to the peer.
func (c *Client) Send(data []byte) {
	select {
	case c.send <- data:
	default:
		log.Printf("Send queue full, message dropped")
	}
}

// HandleSignaling upgrades the connection and runs the read/write
// pumps, dispatching every inbound frame to the router.
func HandleSignaling(router *relay.Router) gin.HandlerFunc {
	return func(c *gin.Context) {
		conn, err := upgrader.Upgrade(c.Writer, c.Request, nil)
		if err != nil {
			log.Printf("Failed to upgrade connection: %v", err)
			return
		}

		client := &Client{
			conn: conn,
			send: make(chan []byte, sendQueueSize),
		}

		go client.writePump()
		client.readPump(router)
	}
}

func (c *Client) readPump(router *relay.Router) {
	defer func() {
		c.conn.Close()
		router.HandleDisconnect(c)
	}()

	c.conn.SetReadDeadline(time.Now().Add(readTimeout))
	c.conn.SetPongHandler(func(string) error {
		c.conn.SetReadDeadline(time.Now().Add(readTimeout))
		return nil
	})

	for {
		_, message, err := c.conn.ReadMessage()
		if err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseAbnormalClosure) {
				log.Printf("WebSocket error: %v", err)
			}
			break
		}
		router.HandleMessage(c, message)
	}
}

func (c *Client) writePump() {
	ticker := time.NewTicker(pingInterval)
	defer func() {
		ticker.Stop()
		c.conn.Close()
	}()

	for {
		select {
		case message, ok := <-c.send:
			c.conn.SetWriteDeadline(time.Now().Add(writeTimeout))
			if !ok {
				c.conn.WriteMessage(websocket.CloseMessage, []byte{})
				return
			}
			if err := c.conn.WriteMessage(websocket.TextMessage, message); err != nil {
				log.Printf("Failed to write message: %v", err)
				return
			}

		case <-ticker.C:
			c.conn.SetWriteDeadline(time.Now().Add(writeTimeout))
			if err := c.conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				return
			}
		}
	}
}
