package host

import (
	"bufio"
	"fmt"
	"net"
	"os"
	"sync"

	"github.com/rs/zerolog"

	"github.com/1broseidon/winbridge/internal/config"
	"github.com/1broseidon/winbridge/internal/platform"
	"github.com/1broseidon/winbridge/internal/wire"
)

// Server is the native side of the bridge protocol. It owns the socket,
// decodes calls, forwards them to the platform backend, and broadcasts
// backend lifecycle events to every connected bridge.
type Server struct {
	socketPath string
	listener   net.Listener
	backend    platform.Backend
	cfg        *config.Config
	logger     zerolog.Logger

	mu    sync.Mutex
	conns map[net.Conn]*sync.Mutex // per-connection write locks

	stopWatch    chan struct{}
	shutdownMu   sync.Mutex
	shuttingDown bool
}

// NewServer creates a host server on the given socket path.
func NewServer(socketPath string, backend platform.Backend, cfg *config.Config, logger zerolog.Logger) *Server {
	// Remove stale socket from a previous run
	os.Remove(socketPath)

	return &Server{
		socketPath: socketPath,
		backend:    backend,
		cfg:        cfg,
		logger:     logger,
		conns:      make(map[net.Conn]*sync.Mutex),
		stopWatch:  make(chan struct{}),
	}
}

// Start begins listening for bridge connections and watching the backend
// for window events.
func (s *Server) Start() error {
	listener, err := net.Listen("unix", s.socketPath)
	if err != nil {
		return fmt.Errorf("failed to create host socket: %w", err)
	}
	s.listener = listener

	if err := os.Chmod(s.socketPath, 0600); err != nil {
		listener.Close()
		return fmt.Errorf("failed to set socket permissions: %w", err)
	}

	s.logger.Info().Str("socket", s.socketPath).Msg("host listening")

	go s.acceptLoop()
	go s.watchLoop()

	return nil
}

func (s *Server) acceptLoop() {
	for {
		conn, err := s.listener.Accept()
		if err != nil {
			s.shutdownMu.Lock()
			stopping := s.shuttingDown
			s.shutdownMu.Unlock()
			if stopping {
				return
			}
			s.logger.Error().Err(err).Msg("accept error")
			continue
		}
		go s.handleConnection(conn)
	}
}

func (s *Server) watchLoop() {
	err := s.backend.Watch(s.stopWatch, func(ev platform.Event) {
		name := wire.EventName(ev.Kind)
		if !wire.KnownEvent(name) {
			// Backend bug: the translation table and the wire enumeration
			// must stay in lockstep.
			s.logger.Error().Str("kind", string(ev.Kind)).Msg("backend emitted unknown event kind")
			return
		}
		s.Broadcast(wire.Event{Name: name, Window: wire.WindowID(ev.Window)})
	})
	if err != nil {
		s.logger.Error().Err(err).Msg("event watch failed")
	}
}

// Broadcast sends an event frame to every connected bridge.
func (s *Server) Broadcast(ev wire.Event) {
	data, err := wire.EncodeEvent(&ev)
	if err != nil {
		s.logger.Error().Err(err).Msg("failed to encode event")
		return
	}

	s.mu.Lock()
	targets := make(map[net.Conn]*sync.Mutex, len(s.conns))
	for conn, lock := range s.conns {
		targets[conn] = lock
	}
	s.mu.Unlock()

	for conn, lock := range targets {
		lock.Lock()
		_, err := conn.Write(data)
		lock.Unlock()
		if err != nil {
			s.logger.Debug().Err(err).Msg("dropping dead bridge connection")
			s.removeConn(conn)
		}
	}
}

func (s *Server) removeConn(conn net.Conn) {
	s.mu.Lock()
	delete(s.conns, conn)
	s.mu.Unlock()
	conn.Close()
}

// handleConnection serves one bridge until it disconnects. A bridge
// connection is persistent: many calls flow over it, interleaved with
// broadcast events.
func (s *Server) handleConnection(conn net.Conn) {
	writeLock := &sync.Mutex{}
	s.mu.Lock()
	s.conns[conn] = writeLock
	s.mu.Unlock()
	defer s.removeConn(conn)

	s.logger.Debug().Msg("bridge connected")

	reader := bufio.NewReader(conn)
	for {
		line, err := reader.ReadBytes('\n')
		if err != nil {
			s.logger.Debug().Msg("bridge disconnected")
			return
		}

		env, err := wire.Decode(line)
		if err != nil {
			s.logger.Warn().Err(err).Msg("dropping undecodable frame")
			continue
		}
		if env.Type != wire.FrameCall {
			s.logger.Warn().Str("type", string(env.Type)).Msg("bridge sent a non-call frame; ignoring")
			continue
		}

		call := env.AsCall()
		res := s.handleCall(call)

		data, err := wire.EncodeResult(res)
		if err != nil {
			s.logger.Error().Err(err).Msg("failed to encode result")
			continue
		}
		writeLock.Lock()
		_, err = conn.Write(data)
		writeLock.Unlock()
		if err != nil {
			return
		}
	}
}

// Stop shuts the server down.
func (s *Server) Stop() {
	s.shutdownMu.Lock()
	s.shuttingDown = true
	s.shutdownMu.Unlock()

	close(s.stopWatch)
	if s.listener != nil {
		s.listener.Close()
	}

	s.mu.Lock()
	for conn := range s.conns {
		conn.Close()
	}
	s.conns = make(map[net.Conn]*sync.Mutex)
	s.mu.Unlock()

	os.Remove(s.socketPath)
}
