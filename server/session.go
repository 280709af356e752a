package server

import (
	"bufio"
	"net"
	"strings"
	"sync"
	"time"
)

// stream is one client connection regardless of transport: blocking
// line-at-a-time reads plus a write end safe for concurrent use (the
// connection's own handler and other handlers' broadcasts both write).
type stream interface {
	ReadLine() (string, error)
	WriteLine(line string) error
	Close() error
	RemoteAddr() string
}

// session is the per-connection state. Exactly one handler goroutine owns
// it; username is set only by a successful LOGIN and cleared on logout.
type session struct {
	id       string
	stream   stream
	username string
}

func (s *session) authenticated() bool {
	return s.username != ""
}

type tcpStream struct {
	conn         net.Conn
	reader       *bufio.Reader
	writeTimeout time.Duration
	writeMu      sync.Mutex
}

func newTCPStream(conn net.Conn, writeTimeout time.Duration) *tcpStream {
	return &tcpStream{
		conn:         conn,
		reader:       bufio.NewReader(conn),
		writeTimeout: writeTimeout,
	}
}

func (t *tcpStream) ReadLine() (string, error) {
	line, err := t.reader.ReadString('\n')
	if err != nil {
		return "", err
	}
	return strings.TrimRight(line, "\r\n"), nil
}

func (t *tcpStream) WriteLine(line string) error {
	t.writeMu.Lock()
	defer t.writeMu.Unlock()

	if t.writeTimeout > 0 {
		t.conn.SetWriteDeadline(time.Now().Add(t.writeTimeout))
	}
	_, err := t.conn.Write([]byte(line + "\n"))
	return err
}

func (t *tcpStream) Close() error {
	return t.conn.Close()
}

func (t *tcpStream) RemoteAddr() string {
	return t.conn.RemoteAddr().String()
}
