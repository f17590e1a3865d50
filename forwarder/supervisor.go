package forwarder

import (
	"fmt"
	"log"
	"net"

	"github.com/mcproxy/core/proto"
	"github.com/mcproxy/core/session"
)

// Supervisor accepts clients on a listen address and, for each one, dials
// the real server and relays traffic between the two through a fresh
// Session and Forwarder pair. It never retries a failed connection
// in-place — a dropped connection tears its Session down completely and
// the next accept starts from scratch.
type Supervisor struct {
	ListenAddr string
	ServerAddr string
	Logger     *log.Logger
	Debug      bool

	// SeedPreferences is applied to every new Session before its
	// Forwarders start, so GetPreference never fails for a name the
	// bootstrap config promised to provide.
	SeedPreferences map[string]string
}

// Run listens on s.ListenAddr and serves connections until Accept fails.
func (s *Supervisor) Run() error {
	ln, err := net.Listen("tcp", s.ListenAddr)
	if err != nil {
		return fmt.Errorf("supervisor: listen: %w", err)
	}
	defer ln.Close()
	s.logf("listening on %s, forwarding to %s", s.ListenAddr, s.ServerAddr)

	for {
		client, err := ln.Accept()
		if err != nil {
			return fmt.Errorf("supervisor: accept: %w", err)
		}
		go s.serve(client)
	}
}

func (s *Supervisor) logf(format string, args ...any) {
	if s.Logger != nil {
		s.Logger.Printf(format, args...)
	}
}

func (s *Supervisor) serve(client net.Conn) {
	s.logf("accepted connection from %s", client.RemoteAddr())

	server, err := net.Dial("tcp", s.ServerAddr)
	if err != nil {
		s.logf("dial %s: %v", s.ServerAddr, err)
		client.Close()
		return
	}

	sess := session.New()
	for name, value := range s.SeedPreferences {
		_ = sess.SetPreference(name, value)
	}

	toServer := New(proto.ClientToServer, client, server, sess, s.Logger, s.Debug)
	toClient := New(proto.ServerToClient, server, client, sess, s.Logger, s.Debug)
	toServer.SetOppositeOut(toClient.Out())
	toClient.SetOppositeOut(toServer.Out())

	toServer.Run()
	toClient.Run()

	sess.WaitShutdown()
	client.Close()
	server.Close()
	s.logf("connection from %s closed", client.RemoteAddr())
}
