package monitor

import (
	"encoding/json"
	"log"
	"net/http"
	"sync"

	"github.com/google/uuid"
	"github.com/gorilla/mux"
	"github.com/gorilla/websocket"
)

var upgrader = websocket.Upgrader{
	ReadBufferSize:  4096,
	WriteBufferSize: 4096,
	CheckOrigin: func(r *http.Request) bool {
		return true
	},
}

// wsConn wraps a connection with a write mutex, matching the teacher's own
// wsConn pattern (one writer goroutine/mutex per socket, never concurrent
// writes to the same gorilla/websocket.Conn).
type wsConn struct {
	conn    *websocket.Conn
	id      string
	writeMu sync.Mutex
}

// Server is the --ws-addr live monitor: it accepts client connections and
// fans out CARRIER/NOCARRIER/decoded-byte Events to all of them.
type Server struct {
	mu      sync.RWMutex
	clients map[string]*wsConn
	mux     *mux.Router
}

// NewServer builds a monitor server with its routes registered.
func NewServer() *Server {
	s := &Server{clients: make(map[string]*wsConn), mux: mux.NewRouter()}
	s.mux.HandleFunc("/ws", s.handleWS)
	return s
}

func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.mux.ServeHTTP(w, r)
}

func (s *Server) handleWS(w http.ResponseWriter, r *http.Request) {
	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		log.Printf("[ws] upgrade failed: %v", err)
		return
	}

	client := &wsConn{conn: conn, id: uuid.NewString()}
	s.mu.Lock()
	s.clients[client.id] = client
	s.mu.Unlock()

	defer func() {
		s.mu.Lock()
		delete(s.clients, client.id)
		s.mu.Unlock()
		conn.Close()
	}()

	// Monitor clients are read-only observers; drain and discard any
	// messages they send (including the close handshake) rather than
	// blocking the connection.
	for {
		if _, _, err := conn.ReadMessage(); err != nil {
			return
		}
	}
}

// Broadcast sends ev to every connected client, dropping clients whose
// write fails (matching the "slow client never blocks the others"
// discipline of the teacher's websocket.go).
func (s *Server) Broadcast(ev Event) {
	payload, err := json.Marshal(ev)
	if err != nil {
		return
	}

	s.mu.RLock()
	targets := make([]*wsConn, 0, len(s.clients))
	for _, c := range s.clients {
		targets = append(targets, c)
	}
	s.mu.RUnlock()

	for _, c := range targets {
		c.writeMu.Lock()
		err := c.conn.WriteMessage(websocket.TextMessage, payload)
		c.writeMu.Unlock()
		if err != nil {
			s.mu.Lock()
			delete(s.clients, c.id)
			s.mu.Unlock()
		}
	}
}
