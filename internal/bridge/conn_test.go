package bridge

import (
	"bufio"
	"context"
	"net"
	"testing"
	"time"

	"github.com/rs/zerolog"

	"github.com/1broseidon/winbridge/internal/wire"
)

// fakeHost answers frames on the far end of a pipe using the given handler.
// The handler returns nil to leave a call unanswered.
type fakeHost struct {
	conn   net.Conn
	handle func(*wire.Call) *wire.Result
}

func startFakeHost(t *testing.T, handle func(*wire.Call) *wire.Result) (*Conn, *fakeHost) {
	t.Helper()
	clientEnd, hostEnd := net.Pipe()
	host := &fakeHost{conn: hostEnd, handle: handle}
	go host.serve()
	conn := NewConn(clientEnd, NewDispatcher(), zerolog.Nop())
	t.Cleanup(func() {
		conn.Close()
		hostEnd.Close()
	})
	return conn, host
}

func (h *fakeHost) serve() {
	reader := bufio.NewReader(h.conn)
	for {
		line, err := reader.ReadBytes('\n')
		if err != nil {
			return
		}
		env, err := wire.Decode(line)
		if err != nil || env.Type != wire.FrameCall {
			continue
		}
		if res := h.handle(env.AsCall()); res != nil {
			data, err := wire.EncodeResult(res)
			if err != nil {
				continue
			}
			h.conn.Write(data)
		}
	}
}

func (h *fakeHost) emit(t *testing.T, ev wire.Event) {
	t.Helper()
	data, err := wire.EncodeEvent(&ev)
	if err != nil {
		t.Fatalf("EncodeEvent: %v", err)
	}
	if _, err := h.conn.Write(data); err != nil {
		t.Fatalf("emit: %v", err)
	}
}

func TestCallReceivesMatchingResult(t *testing.T) {
	conn, _ := startFakeHost(t, func(call *wire.Call) *wire.Result {
		if call.Method != wire.MethodGetBounds {
			return wire.NewErrorResult(call.ID, "unexpected method")
		}
		res, _ := wire.NewOKResult(call.ID, wire.Bounds{X: 1, Y: 2, Width: 3, Height: 4})
		return res
	})

	data, err := conn.Call(context.Background(), wire.MethodGetBounds, 8, nil)
	if err != nil {
		t.Fatalf("Call: %v", err)
	}
	if string(data) != `{"x":1,"y":2,"width":3,"height":4}` {
		t.Errorf("result data = %s", data)
	}
}

func TestCallPropagatesRemoteErrorUnchanged(t *testing.T) {
	const msg = "X11: BadWindow (invalid Window parameter)"
	conn, _ := startFakeHost(t, func(call *wire.Call) *wire.Result {
		return wire.NewErrorResult(call.ID, msg)
	})

	_, err := conn.Call(context.Background(), wire.MethodFocus, 99, nil)
	if err == nil {
		t.Fatal("expected remote error")
	}
	remote, ok := err.(*RemoteError)
	if !ok {
		t.Fatalf("error type = %T, want *RemoteError", err)
	}
	if remote.Message != msg || remote.Error() != msg {
		t.Errorf("remote message = %q, want it forwarded unchanged", remote.Message)
	}
	if remote.Method != wire.MethodFocus {
		t.Errorf("remote method = %q", remote.Method)
	}
}

func TestCallHonorsContextCancellation(t *testing.T) {
	conn, _ := startFakeHost(t, func(*wire.Call) *wire.Result {
		return nil // never answer
	})

	ctx, cancel := context.WithTimeout(context.Background(), 20*time.Millisecond)
	defer cancel()

	_, err := conn.Call(ctx, wire.MethodShow, 1, nil)
	if err != context.DeadlineExceeded {
		t.Errorf("err = %v, want context.DeadlineExceeded", err)
	}
}

func TestConcurrentCallsDemultiplexByID(t *testing.T) {
	conn, _ := startFakeHost(t, func(call *wire.Call) *wire.Result {
		res, _ := wire.NewOKResult(call.ID, map[string]uint64{"echo": call.ID})
		return res
	})

	const n = 8
	errs := make(chan error, n)
	for i := 0; i < n; i++ {
		go func() {
			_, err := conn.Call(context.Background(), wire.MethodGetDisplays, 0, nil)
			errs <- err
		}()
	}
	for i := 0; i < n; i++ {
		if err := <-errs; err != nil {
			t.Errorf("concurrent call: %v", err)
		}
	}
}

func TestEventReachesDispatcher(t *testing.T) {
	got := make(chan wire.Event, 1)
	conn, host := startFakeHost(t, func(*wire.Call) *wire.Result { return nil })
	conn.Events().AddListener(&ListenerFuncs{
		OnEnterFullScreen: func(ev wire.Event) { got <- ev },
	})

	host.emit(t, wire.Event{Name: wire.EventEnterFullScreen, Window: 5})

	select {
	case ev := <-got:
		if ev.Window != 5 {
			t.Errorf("event window = %d, want 5", ev.Window)
		}
	case <-time.After(time.Second):
		t.Fatal("event never dispatched")
	}
}

func TestCallAfterCloseFails(t *testing.T) {
	conn, _ := startFakeHost(t, func(*wire.Call) *wire.Result { return nil })
	conn.Close()

	_, err := conn.Call(context.Background(), wire.MethodShow, 1, nil)
	if err == nil {
		t.Error("expected error calling a closed connection")
	}
}

func TestPendingCallsFailWhenConnectionDrops(t *testing.T) {
	clientEnd, hostEnd := net.Pipe()
	conn := NewConn(clientEnd, NewDispatcher(), zerolog.Nop())
	defer conn.Close()

	done := make(chan error, 1)
	go func() {
		_, err := conn.Call(context.Background(), wire.MethodShow, 1, nil)
		done <- err
	}()

	// Swallow the outgoing frame, then drop the connection.
	reader := bufio.NewReader(hostEnd)
	if _, err := reader.ReadBytes('\n'); err != nil {
		t.Fatalf("read call: %v", err)
	}
	hostEnd.Close()

	select {
	case err := <-done:
		if err == nil {
			t.Error("pending call survived a dropped connection")
		}
	case <-time.After(time.Second):
		t.Fatal("pending call never failed")
	}
}
