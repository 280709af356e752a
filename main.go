package main

import (
	"bufio"
	"log"
	"net"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"linechat/config"
	"linechat/server"
	"linechat/store"
)

const controlSocketPath = "/tmp/linechat.sock"

func main() {
	cfg := config.Load()

	creds, err := openStore(cfg)
	if err != nil {
		log.Fatalf("Failed to open credential store: %v", err)
	}
	defer creds.Close()

	srv := server.New(creds, &server.Config{
		Host:         cfg.Host,
		Port:         cfg.Port,
		WriteTimeout: time.Duration(cfg.WriteTimeout) * time.Second,
	})

	// Control socket for management commands
	go startControlSocket(srv)

	if cfg.WSPort > 0 {
		go func() {
			if err := srv.StartWS(cfg.WSPort); err != nil {
				log.Printf("WebSocket gateway error: %v", err)
			}
		}()
	}

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)

	go func() {
		sig := <-sigChan
		log.Printf("Received signal %v, shutting down...", sig)
		// Closes the listeners only; open client connections stay up until
		// they disconnect themselves.
		srv.Shutdown()
		os.Remove(controlSocketPath)
	}()

	if err := srv.Start(); err != nil {
		log.Fatal(err)
	}
}

func openStore(cfg *config.Config) (store.Credentials, error) {
	if cfg.Store == "sqlite" {
		return store.OpenSQLite(cfg.DBPath)
	}
	return store.OpenFile(cfg.UsersFile)
}

func startControlSocket(srv *server.Server) {
	// Remove existing socket file
	os.Remove(controlSocketPath)

	listener, err := net.Listen("unix", controlSocketPath)
	if err != nil {
		log.Printf("Failed to create control socket: %v", err)
		return
	}
	defer listener.Close()
	defer os.Remove(controlSocketPath)

	log.Printf("Control socket listening on %s", controlSocketPath)

	for {
		conn, err := listener.Accept()
		if err != nil {
			continue
		}

		go handleControlCommand(srv, conn)
	}
}

func handleControlCommand(srv *server.Server, conn net.Conn) {
	defer conn.Close()

	reader := bufio.NewReader(conn)
	line, err := reader.ReadString('\n')
	if err != nil {
		return
	}

	switch strings.TrimSpace(line) {
	case "stats":
		conn.Write([]byte("OK|" + srv.Stats() + "\n"))

	case "shutdown":
		conn.Write([]byte("OK|Shutting down\n"))
		log.Printf("Shutdown requested via control socket")
		srv.Shutdown()
		os.Remove(controlSocketPath)

	default:
		conn.Write([]byte("ERROR|Unknown command\n"))
	}
}
