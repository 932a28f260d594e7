package collab

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"net/http"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/gorilla/websocket"

	"github.com/deltaweave/deltaweave/pkg/delta"
	"github.com/deltaweave/deltaweave/pkg/deltawire"
)

// writeTimeout and pingInterval match the teacher's websocket.go
// keepalive values.
const (
	writeTimeout = 10 * time.Second
	pingInterval = 54 * time.Second
)

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	CheckOrigin:     func(r *http.Request) bool { return true },
}

// Hub accepts WebSocket connections, assigns each a uuid client ID,
// and fans out rebased changes to every client sharing a document.
// Grounded on the teacher's transport.WebSocketServer, generalized
// from a single bespoke Message envelope to collab's delta-aware
// protocol and from one implicit document to a docID-keyed map of
// Sessions.
type Hub struct {
	cfg    Config
	lookup delta.HandlerLookup

	mu       sync.RWMutex
	sessions map[string]*Session
	clients  map[string]*hubClient

	server  *http.Server
	closeCh chan struct{}
}

// NewHub constructs a Hub. lookup resolves embed handlers for any
// embedded content documents carry; pass nil if none are in use.
func NewHub(cfg Config, lookup delta.HandlerLookup) *Hub {
	return &Hub{
		cfg:      cfg,
		lookup:   lookup,
		sessions: make(map[string]*Session),
		clients:  make(map[string]*hubClient),
		closeCh:  make(chan struct{}),
	}
}

// sessionFor returns the Session for docID, creating an empty one on
// first reference.
func (h *Hub) sessionFor(docID string) *Session {
	h.mu.Lock()
	defer h.mu.Unlock()

	s, ok := h.sessions[docID]
	if !ok {
		s = NewSession(nil, h.lookup)
		if h.cfg.HistoryLimit > 0 {
			s.limit = h.cfg.HistoryLimit
		}
		h.sessions[docID] = s
	}
	return s
}

// Start binds ListenAddr and serves WebSocket upgrades at /ws in the
// background, the same fire-and-forget shape as the teacher's
// WebSocketServer.Start.
func (h *Hub) Start(ctx context.Context) error {
	mux := http.NewServeMux()
	mux.HandleFunc("/ws", h.handleWebSocket)

	h.server = &http.Server{Addr: h.cfg.ListenAddr, Handler: mux}

	go func() {
		if err := h.server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Printf("[collab] server error: %v", err)
		}
	}()

	go func() {
		<-ctx.Done()
		h.Close()
	}()

	return nil
}

// Close shuts down the HTTP server and disconnects every client.
func (h *Hub) Close() error {
	select {
	case <-h.closeCh:
		return nil
	default:
		close(h.closeCh)
	}

	if h.server != nil {
		h.server.Close()
	}

	h.mu.Lock()
	defer h.mu.Unlock()
	for _, c := range h.clients {
		c.conn.Close()
	}
	h.clients = make(map[string]*hubClient)
	return nil
}

func (h *Hub) handleWebSocket(w http.ResponseWriter, r *http.Request) {
	docID := r.URL.Query().Get("doc")
	if docID == "" {
		docID = "default"
	}

	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		log.Printf("[ws] upgrade failed: %v", err)
		return
	}

	clientID := uuid.NewString()
	c := &hubClient{
		id:    clientID,
		docID: docID,
		conn:  conn,
		send:  make(chan *Message, 64),
		hub:   h,
	}

	h.mu.Lock()
	h.clients[clientID] = c
	h.mu.Unlock()

	session := h.sessionFor(docID)
	doc, version := session.Snapshot()
	docJSON, err := deltawire.MarshalDelta(doc)
	if err != nil {
		log.Printf("[collab] encoding welcome snapshot: %v", err)
		docJSON = []byte(`{"ops":[]}`)
	}

	welcome, err := newMessage(MessageTypeWelcome, WelcomeData{
		ClientID: clientID,
		Version:  version,
		Document: docJSON,
	})
	if err == nil {
		c.send <- welcome
	}

	log.Printf("[ws] %s joined doc %q", clientID, docID)

	go c.writePump()
	go c.readPump()
}

// broadcast sends msg to every client sharing docID except skip.
func (h *Hub) broadcast(docID string, msg *Message, skip string) {
	h.mu.RLock()
	defer h.mu.RUnlock()

	for id, c := range h.clients {
		if id == skip || c.docID != docID {
			continue
		}
		select {
		case c.send <- msg:
		default:
			log.Printf("[ws] %s: send buffer full, dropping broadcast", id)
		}
	}
}

func (h *Hub) removeClient(id string) {
	h.mu.Lock()
	defer h.mu.Unlock()
	delete(h.clients, id)
}

// hubClient is one connected WebSocket client, grounded on the
// teacher's WebSocketConn.
type hubClient struct {
	id    string
	docID string
	conn  *websocket.Conn
	send  chan *Message
	hub   *Hub
}

func (c *hubClient) readPump() {
	defer func() {
		c.conn.Close()
		c.hub.removeClient(c.id)
		close(c.send)
		log.Printf("[ws] %s: disconnected", c.id)
	}()

	for {
		var msg Message
		if err := c.conn.ReadJSON(&msg); err != nil {
			log.Printf("[ws] %s: read error: %v", c.id, err)
			return
		}

		if msg.Type != MessageTypeChange {
			continue
		}

		if err := c.handleChange(msg); err != nil {
			log.Printf("[ws] %s: change rejected: %v", c.id, err)
			if errMsg, merr := newMessage(MessageTypeError, ErrorData{
				Code:    "change_rejected",
				Message: err.Error(),
			}); merr == nil {
				select {
				case c.send <- errMsg:
				default:
				}
			}
		}
	}
}

func (c *hubClient) handleChange(msg Message) error {
	var data ChangeData
	if err := json.Unmarshal(msg.Data, &data); err != nil {
		return fmt.Errorf("decoding change payload: %w", err)
	}

	change, err := deltawire.UnmarshalDelta(data.Change)
	if err != nil {
		return fmt.Errorf("decoding change delta: %w", err)
	}

	if err := c.hub.cfg.validate(change); err != nil {
		return err
	}

	session := c.hub.sessionFor(c.docID)
	rebased, newVersion, err := session.Apply(change, data.BaseVersion)
	if err != nil {
		return err
	}

	rebasedJSON, err := deltawire.MarshalDelta(rebased)
	if err != nil {
		return fmt.Errorf("encoding rebased change: %w", err)
	}

	out, err := newMessage(MessageTypeChange, ChangeData{
		ClientID:    data.ClientID,
		BaseVersion: data.BaseVersion,
		Change:      rebasedJSON,
		NewVersion:  newVersion,
	})
	if err != nil {
		return fmt.Errorf("encoding broadcast message: %w", err)
	}

	c.hub.broadcast(c.docID, out, "")
	return nil
}

func (c *hubClient) writePump() {
	ticker := time.NewTicker(pingInterval)
	defer func() {
		ticker.Stop()
		c.conn.Close()
	}()

	for {
		select {
		case msg, ok := <-c.send:
			if !ok {
				c.conn.WriteMessage(websocket.CloseMessage, []byte{})
				return
			}
			c.conn.SetWriteDeadline(time.Now().Add(writeTimeout))
			if err := c.conn.WriteJSON(msg); err != nil {
				log.Printf("[ws] %s: write error: %v", c.id, err)
				return
			}
		case <-ticker.C:
			c.conn.SetWriteDeadline(time.Now().Add(writeTimeout))
			if err := c.conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				return
			}
		case <-c.hub.closeCh:
			return
		}
	}
}
