package rates

import (
	"encoding/json"
	"sync"
	"time"

	"github.com/gorilla/websocket"
	"github.com/rs/zerolog"

	"goldbook/internal/pkg/logx"
)

const (
	// timeout duration for writing to the WebSocket connection.
	writeWait = 10 * time.Second

	// maximum time allowed for the server to wait for a Pong message from the client.
	pongWait = 60 * time.Second

	// frequency at which the server sends a Ping message.
	pingPeriod = (pongWait * 9) / 10

	// subscribers never send application data; anything beyond control frames is abuse.
	maxInboundBytes = 512
)

// Hub fans fetched rate quotes out to subscribed WebSocket clients. Registration,
// unregistration, and broadcast all funnel through one goroutine, so the client set
// needs no lock.
type Hub struct {
	clients    map[*subscriber]struct{}
	register   chan *subscriber
	unregister chan *subscriber
	broadcast  chan []byte
	done       chan struct{}

	wg     sync.WaitGroup
	logger zerolog.Logger
}

// NewHub constructs a Hub and starts its run loop.
func NewHub() *Hub {
	h := &Hub{
		clients:    make(map[*subscriber]struct{}),
		register:   make(chan *subscriber),
		unregister: make(chan *subscriber),
		broadcast:  make(chan []byte, 8),
		done:       make(chan struct{}),
		logger:     logx.Logger().With().Str("component", "rates_hub").Logger(),
	}

	h.wg.Add(1)
	go h.run()

	return h
}

func (h *Hub) run() {
	defer h.wg.Done()

	for {
		select {
		case sub := <-h.register:
			h.clients[sub] = struct{}{}
			h.logger.Debug().Int("subscribers", len(h.clients)).Msg("Rate subscriber registered")

		case sub := <-h.unregister:
			if _, ok := h.clients[sub]; ok {
				delete(h.clients, sub)
				close(sub.send)
			}

		case msg := <-h.broadcast:
			for sub := range h.clients {
				select {
				case sub.send <- msg:
				default:
					// Slow consumer; drop it rather than stall the loop.
					delete(h.clients, sub)
					close(sub.send)
				}
			}

		case <-h.done:
			for sub := range h.clients {
				close(sub.send)
			}
			h.clients = nil
			return
		}
	}
}

// Publish sends a quote to every subscriber. Dropped silently after shutdown.
func (h *Hub) Publish(quote Quote) {
	msg, err := json.Marshal(quote)
	if err != nil {
		h.logger.Error().Err(err).Msg("Failed to encode rate quote for broadcast")
		return
	}

	select {
	case h.broadcast <- msg:
	case <-h.done:
	}
}

// Shutdown stops the run loop and disconnects all subscribers.
func (h *Hub) Shutdown() {
	close(h.done)
	h.wg.Wait()
	h.logger.Info().Msg("Rates hub shutdown complete")
}

// subscriber is one connected WebSocket client.
type subscriber struct {
	hub  *Hub
	conn *websocket.Conn
	send chan []byte
}

// Attach registers a freshly upgraded connection with the hub and starts its pumps.
// The initial quote is queued so subscribers render immediately. Blocks in the read
// pump until the client disconnects.
func (h *Hub) Attach(conn *websocket.Conn, initial Quote) {
	sub := &subscriber{
		hub:  h,
		conn: conn,
		send: make(chan []byte, 8),
	}

	if msg, err := json.Marshal(initial); err == nil {
		sub.send <- msg
	}

	select {
	case h.register <- sub:
	case <-h.done:
		conn.Close()
		return
	}

	go sub.writePump()
	sub.readPump()
}

// readPump drains the connection for control frames and detects disconnects.
func (s *subscriber) readPump() {
	defer func() {
		select {
		case s.hub.unregister <- s:
		case <-s.hub.done:
		}
		s.conn.Close()
	}()

	s.conn.SetReadLimit(maxInboundBytes)
	if err := s.conn.SetReadDeadline(time.Now().Add(pongWait)); err != nil {
		return
	}
	s.conn.SetPongHandler(func(string) error {
		return s.conn.SetReadDeadline(time.Now().Add(pongWait))
	})

	for {
		if _, _, err := s.conn.ReadMessage(); err != nil {
			return
		}
	}
}

// writePump forwards queued quotes to the connection and keeps the heartbeat going.
func (s *subscriber) writePump() {
	ticker := time.NewTicker(pingPeriod)
	defer func() {
		ticker.Stop()
		s.conn.Close()
	}()

	for {
		select {
		case msg, ok := <-s.send:
			if err := s.conn.SetWriteDeadline(time.Now().Add(writeWait)); err != nil {
				return
			}
			if !ok {
				s.conn.WriteMessage(websocket.CloseMessage, []byte{})
				return
			}
			if err := s.conn.WriteMessage(websocket.TextMessage, msg); err != nil {
				return
			}

		case <-ticker.C:
			if err := s.conn.SetWriteDeadline(time.Now().Add(writeWait)); err != nil {
				return
			}
			if err := s.conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				return
			}
		}
	}
}
