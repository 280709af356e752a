// Package server implements the chat service core: the accept loop, the
// per-connection command state machine, the online-user registry, and
// message routing between connections.
package server

import (
	"errors"
	"io"
	"log"
	"net"
	"net/http"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"

	"linechat/protocol"
	"linechat/store"
)

type Server struct {
	creds    store.Credentials
	config   *Config
	registry *Registry

	mu       sync.Mutex
	listener net.Listener
	ws       *http.Server
}

type Config struct {
	Host         string
	Port         int
	WriteTimeout time.Duration
}

func New(creds store.Credentials, config *Config) *Server {
	return &Server{
		creds:    creds,
		config:   config,
		registry: NewRegistry(),
	}
}

// Start listens on the configured address and accepts connections until the
// listener is closed by Shutdown. Each connection gets its own goroutine.
func (s *Server) Start() error {
	listener, err := net.Listen("tcp", net.JoinHostPort(s.config.Host, strconv.Itoa(s.config.Port)))
	if err != nil {
		return err
	}

	s.mu.Lock()
	s.listener = listener
	s.mu.Unlock()

	log.Printf("Server is running on %s", listener.Addr())

	for {
		conn, err := listener.Accept()
		if err != nil {
			if errors.Is(err, net.ErrClosed) {
				return nil
			}
			log.Printf("Error accepting connection: %v", err)
			continue
		}

		go s.handleConn(conn)
	}
}

// Addr returns the TCP listener address, or nil before Start.
func (s *Server) Addr() net.Addr {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.listener == nil {
		return nil
	}
	return s.listener.Addr()
}

// Shutdown closes the listening sockets, which stops the accept loops.
// Established client connections keep running until they disconnect on
// their own; the server does not force them closed.
func (s *Server) Shutdown() {
	s.mu.Lock()
	if s.listener != nil {
		s.listener.Close()
		s.listener = nil
	}
	s.mu.Unlock()

	s.shutdownWS()
}

func (s *Server) handleConn(conn net.Conn) {
	s.handleStream(newTCPStream(conn, s.config.WriteTimeout))
}

// handleStream runs one connection's session loop: read a line, parse it,
// dispatch it, until LOGOUT or stream closure. Every exit path converges on
// the deferred cleanup, which de-registers the session and announces the
// departure no more than once.
func (s *Server) handleStream(st stream) {
	sess := &session{id: uuid.NewString(), stream: st}
	remoteAddr := st.RemoteAddr()

	log.Printf("New client connected from %s (session %s)", remoteAddr, sess.id)

	defer func() {
		s.disconnect(sess)
		st.Close()
		log.Printf("Client disconnected from %s (session %s)", remoteAddr, sess.id)
	}()

	for {
		line, err := st.ReadLine()
		if err != nil {
			if err != io.EOF && !errors.Is(err, net.ErrClosed) {
				log.Printf("Error reading from %s: %v", remoteAddr, err)
			}
			return
		}

		cmd, ok := protocol.Parse(line)
		if !ok {
			continue
		}

		if quit := s.dispatch(sess, cmd); quit {
			return
		}
	}
}

// disconnect removes the session's presence entry, if it still holds one,
// and broadcasts the departure. Registry.Remove reports whether this caller
// won, so a LOGOUT followed by the deferred cleanup announces only once.
func (s *Server) disconnect(sess *session) {
	if sess.username == "" {
		return
	}
	if s.registry.Remove(sess.username) {
		s.registry.Broadcast(sess.username+" has left the chat.", "")
	}
	sess.username = ""
}

// Stats returns a one-line summary for the control socket.
func (s *Server) Stats() string {
	names := s.registry.Online()
	return "online=" + strconv.Itoa(len(names)) + ",users=" + strings.Join(names, ";")
}
