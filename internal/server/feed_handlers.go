package server

import (
	"context"
	"log"
	"net/http"

	"github.com/coder/websocket"
	"github.com/google/uuid"

	"typingracer/internal/wshub"
)

// handleFeed streams every newly saved result to the connected client.
// The feed is one-way; anything the client sends is discarded.
func (s *Server) handleFeed(w http.ResponseWriter, r *http.Request) {
	conn, err := websocket.Accept(w, r, &websocket.AcceptOptions{
		OriginPatterns: []string{"*"},
	})
	if err != nil {
		log.Printf("[Feed] Accept error: %v\n", err)
		return
	}
	defer conn.CloseNow()

	ctx, cancel := context.WithCancel(r.Context())
	defer cancel()
	go func() {
		select {
		case <-s.closing:
			cancel()
		case <-ctx.Done():
		}
	}()
	ctx = conn.CloseRead(ctx)

	client := &wshub.Client{
		ID:   uuid.NewString(),
		Conn: conn,
		Send: make(chan []byte, 16),
	}
	s.Hub.Register(client)
	s.Metrics.FeedClients.Inc()
	defer func() {
		s.Hub.Unregister(client.ID)
		s.Metrics.FeedClients.Dec()
	}()

	client.WritePump(ctx)
	conn.Close(websocket.StatusNormalClosure, "")
}
