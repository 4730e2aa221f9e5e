package bridge

import (
	"bufio"
	"context"
	"fmt"
	"net"
	"sync"
	"sync/atomic"
	"time"

	"github.com/rs/zerolog"

	"github.com/1broseidon/winbridge/internal/wire"
)

// RemoteError is a failure reported by the native host. The message is
// forwarded exactly as received; the bridge does not interpret it.
type RemoteError struct {
	Method  wire.Method
	Message string
}

func (e *RemoteError) Error() string {
	return e.Message
}

// ErrConnClosed is returned for calls issued after the connection died.
var ErrConnClosed = fmt.Errorf("bridge connection closed")

const dialTimeout = 5 * time.Second

// Conn multiplexes named calls and host events over one stream connection.
// Each call carries a fresh ID; the caller's goroutine parks on a per-call
// channel until the matching result arrives. A single reader goroutine
// routes results to pending calls and hands events to the dispatcher.
type Conn struct {
	conn    net.Conn
	events  *Dispatcher
	logger  zerolog.Logger
	writeMu sync.Mutex
	nextID  atomic.Uint64

	mu      sync.Mutex
	pending map[uint64]chan *wire.Result
	closed  bool
	err     error
}

// Dial connects to the host socket and starts the reader.
func Dial(socketPath string, events *Dispatcher, logger zerolog.Logger) (*Conn, error) {
	nc, err := net.DialTimeout("unix", socketPath, dialTimeout)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to host: %w (is the host running?)", err)
	}
	return NewConn(nc, events, logger), nil
}

// NewConn wraps an established connection. Used directly by tests with
// in-process pipe pairs.
func NewConn(nc net.Conn, events *Dispatcher, logger zerolog.Logger) *Conn {
	if events == nil {
		events = NewDispatcher()
	}
	c := &Conn{
		conn:    nc,
		events:  events,
		logger:  logger,
		pending: make(map[uint64]chan *wire.Result),
	}
	go c.readLoop()
	return c
}

// Events returns the dispatcher receiving host events on this connection.
func (c *Conn) Events() *Dispatcher {
	return c.events
}

// Call sends a named invocation and blocks until the host answers or ctx
// is done. Remote errors come back as *RemoteError with the host's
// message untouched.
func (c *Conn) Call(ctx context.Context, method wire.Method, window wire.WindowID, args wire.Args) ([]byte, error) {
	id := c.nextID.Add(1)
	ch := make(chan *wire.Result, 1)

	c.mu.Lock()
	if c.closed {
		err := c.err
		c.mu.Unlock()
		if err == nil {
			err = ErrConnClosed
		}
		return nil, err
	}
	c.pending[id] = ch
	c.mu.Unlock()

	line, err := wire.EncodeCall(&wire.Call{ID: id, Method: method, Window: window, Args: args})
	if err != nil {
		c.dropPending(id)
		return nil, err
	}

	c.writeMu.Lock()
	_, err = c.conn.Write(line)
	c.writeMu.Unlock()
	if err != nil {
		c.dropPending(id)
		return nil, fmt.Errorf("failed to send %s call: %w", method, err)
	}

	select {
	case <-ctx.Done():
		c.dropPending(id)
		return nil, ctx.Err()
	case res, ok := <-ch:
		if !ok {
			c.mu.Lock()
			err := c.err
			c.mu.Unlock()
			if err == nil {
				err = ErrConnClosed
			}
			return nil, err
		}
		if res.Status == wire.StatusError {
			return nil, &RemoteError{Method: method, Message: res.Error}
		}
		return res.Data, nil
	}
}

func (c *Conn) dropPending(id uint64) {
	c.mu.Lock()
	delete(c.pending, id)
	c.mu.Unlock()
}

func (c *Conn) readLoop() {
	reader := bufio.NewReader(c.conn)
	for {
		line, err := reader.ReadBytes('\n')
		if err != nil {
			c.fail(fmt.Errorf("bridge connection lost: %w", err))
			return
		}

		env, err := wire.Decode(line)
		if err != nil {
			c.logger.Error().Err(err).Msg("dropping undecodable frame")
			continue
		}

		switch env.Type {
		case wire.FrameResult:
			res := env.AsResult()
			c.mu.Lock()
			ch, ok := c.pending[res.ID]
			if ok {
				delete(c.pending, res.ID)
			}
			c.mu.Unlock()
			if !ok {
				c.logger.Warn().Uint64("id", res.ID).Msg("result for unknown call")
				continue
			}
			ch <- res
		case wire.FrameEvent:
			ev := env.AsEvent()
			if err := c.events.Dispatch(*ev); err != nil {
				// Unknown event names are a contract violation between
				// bridge and host, not a recoverable runtime state.
				c.logger.Error().
					Str("event", string(ev.Name)).
					Uint32("window", uint32(ev.Window)).
					Msg("unimplemented window event")
			}
		case wire.FrameCall:
			c.logger.Warn().Str("method", string(env.Method)).Msg("host sent a call frame; ignoring")
		}
	}
}

// fail closes the connection and wakes every pending caller with err.
func (c *Conn) fail(err error) {
	c.mu.Lock()
	if c.closed {
		c.mu.Unlock()
		return
	}
	c.closed = true
	c.err = err
	pending := c.pending
	c.pending = make(map[uint64]chan *wire.Result)
	c.mu.Unlock()

	c.conn.Close()
	for _, ch := range pending {
		close(ch)
	}
}

// Close shuts the connection down. Pending calls fail with ErrConnClosed.
func (c *Conn) Close() error {
	c.fail(ErrConnClosed)
	return nil
}
