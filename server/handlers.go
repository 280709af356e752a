package server

import (
	"errors"
	"log"
	"strings"

	"linechat/protocol"
	"linechat/store"
)

// Reply lines are part of the wire protocol; clients display them verbatim.
const (
	replyRegistered = "Registration successful."
	replyLoggedIn   = "Login successful."

	errRegisterUsage    = "Error: Invalid command format. Use REGISTER <username> <password>."
	errLoginUsage       = "Error: Invalid command format. Use LOGIN <username> <password>."
	errSendUsage        = "Error: Invalid command format. Use SEND <username> <message>."
	errUserExists       = "Error: Username already exists."
	errBadCredentials   = "Error: Invalid username or password."
	errAlreadyLoggedIn  = "Error: User already logged in."
	errSessionLoggedIn  = "Error: Already logged in."
	errLoginFirst       = "Error: Please login first."
	errRecipientOffline = "Error: User is not online."
	errUnknownCommand   = "Error: Unknown command."
)

// dispatch routes one parsed command. The returned flag tells the session
// loop to terminate (LOGOUT, or a fault that stands in for a disconnect).
func (s *Server) dispatch(sess *session, cmd protocol.Command) bool {
	switch cmd.Name {
	case "REGISTER":
		return s.handleRegister(sess, cmd.Args)
	case "LOGIN":
		return s.handleLogin(sess, cmd.Args)
	case "LIST_ONLINE":
		s.handleListOnline(sess)
	case "SEND":
		s.handleSend(sess, cmd.Args)
	case "LOGOUT":
		s.handleLogout(sess)
		return true
	default:
		s.reply(sess, errUnknownCommand)
	}
	return false
}

func (s *Server) handleRegister(sess *session, args []string) bool {
	if len(args) != 2 {
		s.reply(sess, errRegisterUsage)
		return false
	}
	username, password := args[0], args[1]

	err := s.creds.Register(username, password)
	if errors.Is(err, store.ErrUserExists) {
		s.reply(sess, errUserExists)
		return false
	}
	if err != nil {
		// Store faults have no protocol reply; treat them like any other
		// unhandled fault and drop the connection.
		log.Printf("Register error for %s: %v", username, err)
		return true
	}

	s.reply(sess, replyRegistered)
	return false
}

func (s *Server) handleLogin(sess *session, args []string) bool {
	if sess.authenticated() {
		s.reply(sess, errSessionLoggedIn)
		return false
	}
	if len(args) != 2 {
		s.reply(sess, errLoginUsage)
		return false
	}
	username, password := args[0], args[1]

	stored, err := s.creds.Lookup(username)
	if err != nil {
		if !errors.Is(err, store.ErrUnknownUser) {
			log.Printf("Login error for %s: %v", username, err)
			return true
		}
		s.reply(sess, errBadCredentials)
		return false
	}
	if stored != password {
		s.reply(sess, errBadCredentials)
		return false
	}

	if err := s.registry.Add(username, sess.stream); err != nil {
		s.reply(sess, errAlreadyLoggedIn)
		return false
	}
	sess.username = username

	s.reply(sess, replyLoggedIn)
	s.registry.Broadcast(username+" has joined the chat.", username)
	log.Printf("User %s logged in (session %s)", username, sess.id)
	return false
}

func (s *Server) handleListOnline(sess *session) {
	s.reply(sess, "Online users: "+strings.Join(s.registry.Online(), ", "))
}

func (s *Server) handleSend(sess *session, args []string) {
	if !sess.authenticated() {
		s.reply(sess, errLoginFirst)
		return
	}
	if len(args) < 2 {
		s.reply(sess, errSendUsage)
		return
	}
	recipient, message := args[0], args[1]

	sink, ok := s.registry.Lookup(recipient)
	if !ok {
		s.reply(sess, errRecipientOffline)
		return
	}

	// No ack to the sender on success. A failed delivery is the recipient's
	// connection dying; their own handler will clean up.
	if err := sink.WriteLine(sess.username + ": " + message); err != nil {
		log.Printf("Send from %s to %s failed: %v", sess.username, recipient, err)
	}
}

func (s *Server) handleLogout(sess *session) {
	if !sess.authenticated() {
		return
	}
	username := sess.username
	s.disconnect(sess)
	log.Printf("User %s logged out (session %s)", username, sess.id)
}

func (s *Server) reply(sess *session, line string) {
	if err := sess.stream.WriteLine(line); err != nil {
		log.Printf("Error writing to %s: %v", sess.stream.RemoteAddr(), err)
	}
}
