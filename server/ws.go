package server

import (
	"context"
	"errors"
	"net"
	"net/http"
	"strconv"
	"sync"
	"time"

	"github.com/gorilla/websocket"
)

// The WebSocket gateway feeds browser clients into the same session engine
// as raw TCP: each text message is one protocol line, each reply or
// broadcast goes out as one text message.

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	// The protocol has its own authentication; any origin may connect.
	CheckOrigin: func(r *http.Request) bool { return true },
}

// StartWS serves the /ws endpoint on the given port and blocks until the
// gateway is shut down. Upgraded connections are hijacked from the HTTP
// server, so like TCP sessions they outlive Shutdown.
func (s *Server) StartWS(port int) error {
	mux := http.NewServeMux()
	mux.HandleFunc("/ws", s.ServeWS)

	ws := &http.Server{
		Addr:    net.JoinHostPort(s.config.Host, strconv.Itoa(port)),
		Handler: mux,
	}

	s.mu.Lock()
	s.ws = ws
	s.mu.Unlock()

	err := ws.ListenAndServe()
	if errors.Is(err, http.ErrServerClosed) {
		return nil
	}
	return err
}

func (s *Server) ServeWS(w http.ResponseWriter, r *http.Request) {
	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		// Upgrade already wrote the HTTP error.
		return
	}

	s.handleStream(&wsStream{conn: conn, writeTimeout: s.config.WriteTimeout})
}

func (s *Server) shutdownWS() {
	s.mu.Lock()
	ws := s.ws
	s.ws = nil
	s.mu.Unlock()

	if ws != nil {
		ws.Shutdown(context.Background())
	}
}

type wsStream struct {
	conn         *websocket.Conn
	writeTimeout time.Duration
	writeMu      sync.Mutex
}

func (w *wsStream) ReadLine() (string, error) {
	for {
		msgType, data, err := w.conn.ReadMessage()
		if err != nil {
			return "", err
		}
		if msgType != websocket.TextMessage {
			continue
		}
		return string(data), nil
	}
}

func (w *wsStream) WriteLine(line string) error {
	w.writeMu.Lock()
	defer w.writeMu.Unlock()

	if w.writeTimeout > 0 {
		w.conn.SetWriteDeadline(time.Now().Add(w.writeTimeout))
	}
	return w.conn.WriteMessage(websocket.TextMessage, []byte(line))
}

func (w *wsStream) Close() error {
	return w.conn.Close()
}

func (w *wsStream) RemoteAddr() string {
	return w.conn.RemoteAddr().String()
}
