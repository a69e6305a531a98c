// Package live pushes table reload notifications to connected dashboards
// over WebSocket.
package live

import (
	"encoding/json"
	"errors"
	"fmt"
	"sentiment-analysis/logging"
	"time"

	"github.com/gorilla/websocket"
)

const maxClients = 100

type hubCmd interface{ hubCmd() }

type cmdRegister struct {
	conn  *websocket.Conn
	errCh chan error
}

func (cmdRegister) hubCmd() {}

type cmdUnregister struct {
	conn *websocket.Conn
}

func (cmdUnregister) hubCmd() {}

type cmdBroadcast struct {
	data []byte
}

func (cmdBroadcast) hubCmd() {}

type cmdClientCount struct {
	replyCh chan int
}

func (cmdClientCount) hubCmd() {}

type cmdStop struct{}

func (cmdStop) hubCmd() {}

type clientWriter struct {
	conn   *websocket.Conn
	sendCh chan []byte
	done   chan struct{}
}

func newClientWriter(conn *websocket.Conn) *clientWriter {
	cw := &clientWriter{
		conn:   conn,
		sendCh: make(chan []byte, 16),
		done:   make(chan struct{}),
	}
	go cw.run()
	return cw
}

func (cw *clientWriter) run() {
	for {
		select {
		case msg := <-cw.sendCh:
			_ = cw.conn.SetWriteDeadline(time.Now().Add(5 * time.Second))
			if err := cw.conn.WriteMessage(websocket.TextMessage, msg); err != nil {
				return
			}
		case <-cw.done:
			return
		}
	}
}

func (cw *clientWriter) stop() {
	close(cw.done)
	_ = cw.conn.Close()
}

// Hub owns every connection; all state changes go through its command loop.
type Hub struct {
	cmdCh   chan hubCmd
	clients map[*websocket.Conn]*clientWriter
	stopped chan struct{}
}

func NewHub() *Hub {
	h := &Hub{
		cmdCh:   make(chan hubCmd, 64),
		clients: make(map[*websocket.Conn]*clientWriter),
		stopped: make(chan struct{}),
	}
	go h.run()
	return h
}

func (h *Hub) run() {
	defer close(h.stopped)
	for cmd := range h.cmdCh {
		switch c := cmd.(type) {
		case cmdRegister:
			if len(h.clients) >= maxClients {
				_ = c.conn.Close()
				c.errCh <- fmt.Errorf("max clients (%d) reached", maxClients)
				continue
			}
			h.clients[c.conn] = newClientWriter(c.conn)
			c.errCh <- nil
		case cmdUnregister:
			if cw, ok := h.clients[c.conn]; ok {
				cw.stop()
				delete(h.clients, c.conn)
			}
		case cmdBroadcast:
			for _, cw := range h.clients {
				select {
				case cw.sendCh <- c.data:
				default:
					logging.Logger.Warn("Dropping live update for slow client")
				}
			}
		case cmdClientCount:
			c.replyCh <- len(h.clients)
		case cmdStop:
			for conn, cw := range h.clients {
				cw.stop()
				delete(h.clients, conn)
			}
			return
		}
	}
}

// send reports false once the hub has stopped.
func (h *Hub) send(cmd hubCmd) bool {
	select {
	case <-h.stopped:
		return false
	default:
	}
	select {
	case h.cmdCh <- cmd:
		return true
	case <-h.stopped:
		return false
	}
}

var errStopped = errors.New("live hub stopped")

func (h *Hub) Register(conn *websocket.Conn) error {
	errCh := make(chan error, 1)
	if !h.send(cmdRegister{conn: conn, errCh: errCh}) {
		_ = conn.Close()
		return errStopped
	}
	select {
	case err := <-errCh:
		return err
	case <-h.stopped:
		_ = conn.Close()
		return errStopped
	}
}

func (h *Hub) Unregister(conn *websocket.Conn) {
	h.send(cmdUnregister{conn: conn})
}

// Broadcast sends v as JSON to every client.
func (h *Hub) Broadcast(v any) error {
	data, err := json.Marshal(v)
	if err != nil {
		return fmt.Errorf("encode live message: %w", err)
	}
	if !h.send(cmdBroadcast{data: data}) {
		return errStopped
	}
	return nil
}

func (h *Hub) ClientCount() int {
	replyCh := make(chan int, 1)
	if !h.send(cmdClientCount{replyCh: replyCh}) {
		return 0
	}
	select {
	case n := <-replyCh:
		return n
	case <-h.stopped:
		return 0
	}
}

// Stop closes every connection and ends the command loop.
func (h *Hub) Stop() {
	h.send(cmdStop{})
	<-h.stopped
}

// ReloadMessage tells dashboards that a new table is being served.
type ReloadMessage struct {
	Type         string    `json:"type"`
	UpdatedAt    time.Time `json:"updated_at"`
	Applications int       `json:"applications"`
	TotalReviews int       `json:"total_reviews"`
}

func NewReloadMessage(at time.Time, applications, totalReviews int) ReloadMessage {
	return ReloadMessage{Type: "reload", UpdatedAt: at, Applications: applications, TotalReviews: totalReviews}
}
