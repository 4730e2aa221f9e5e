package bridge

import (
	"fmt"
	"sync"

	"github.com/1broseidon/winbridge/internal/wire"
)

// Listener receives window-lifecycle events fanned out by the Dispatcher.
// One callback per event name in the wire enumeration.
type Listener interface {
	WindowClose(ev wire.Event)
	WindowFocus(ev wire.Event)
	WindowBlur(ev wire.Event)
	WindowMaximize(ev wire.Event)
	WindowUnmaximize(ev wire.Event)
	WindowMinimize(ev wire.Event)
	WindowRestore(ev wire.Event)
	WindowResize(ev wire.Event)
	WindowResized(ev wire.Event)
	WindowMove(ev wire.Event)
	WindowMoved(ev wire.Event)
	WindowEnterFullScreen(ev wire.Event)
	WindowLeaveFullScreen(ev wire.Event)
}

// ListenerFuncs adapts plain functions to the Listener interface. Nil
// fields are skipped, so callers implement only the events they observe.
type ListenerFuncs struct {
	OnClose           func(ev wire.Event)
	OnFocus           func(ev wire.Event)
	OnBlur            func(ev wire.Event)
	OnMaximize        func(ev wire.Event)
	OnUnmaximize      func(ev wire.Event)
	OnMinimize        func(ev wire.Event)
	OnRestore         func(ev wire.Event)
	OnResize          func(ev wire.Event)
	OnResized         func(ev wire.Event)
	OnMove            func(ev wire.Event)
	OnMoved           func(ev wire.Event)
	OnEnterFullScreen func(ev wire.Event)
	OnLeaveFullScreen func(ev wire.Event)
}

func (l *ListenerFuncs) WindowClose(ev wire.Event) {
	if l.OnClose != nil {
		l.OnClose(ev)
	}
}

func (l *ListenerFuncs) WindowFocus(ev wire.Event) {
	if l.OnFocus != nil {
		l.OnFocus(ev)
	}
}

func (l *ListenerFuncs) WindowBlur(ev wire.Event) {
	if l.OnBlur != nil {
		l.OnBlur(ev)
	}
}

func (l *ListenerFuncs) WindowMaximize(ev wire.Event) {
	if l.OnMaximize != nil {
		l.OnMaximize(ev)
	}
}

func (l *ListenerFuncs) WindowUnmaximize(ev wire.Event) {
	if l.OnUnmaximize != nil {
		l.OnUnmaximize(ev)
	}
}

func (l *ListenerFuncs) WindowMinimize(ev wire.Event) {
	if l.OnMinimize != nil {
		l.OnMinimize(ev)
	}
}

func (l *ListenerFuncs) WindowRestore(ev wire.Event) {
	if l.OnRestore != nil {
		l.OnRestore(ev)
	}
}

func (l *ListenerFuncs) WindowResize(ev wire.Event) {
	if l.OnResize != nil {
		l.OnResize(ev)
	}
}

func (l *ListenerFuncs) WindowResized(ev wire.Event) {
	if l.OnResized != nil {
		l.OnResized(ev)
	}
}

func (l *ListenerFuncs) WindowMove(ev wire.Event) {
	if l.OnMove != nil {
		l.OnMove(ev)
	}
}

func (l *ListenerFuncs) WindowMoved(ev wire.Event) {
	if l.OnMoved != nil {
		l.OnMoved(ev)
	}
}

func (l *ListenerFuncs) WindowEnterFullScreen(ev wire.Event) {
	if l.OnEnterFullScreen != nil {
		l.OnEnterFullScreen(ev)
	}
}

func (l *ListenerFuncs) WindowLeaveFullScreen(ev wire.Event) {
	if l.OnLeaveFullScreen != nil {
		l.OnLeaveFullScreen(ev)
	}
}

var _ Listener = (*ListenerFuncs)(nil)

// Dispatcher fans incoming host events out to registered listeners.
// The registry is insertion-ordered and does not deduplicate: adding the
// same listener twice means it is invoked twice per event.
type Dispatcher struct {
	mu        sync.RWMutex
	listeners []Listener
}

// NewDispatcher creates an empty dispatcher.
func NewDispatcher() *Dispatcher {
	return &Dispatcher{}
}

// AddListener appends l to the registry.
func (d *Dispatcher) AddListener(l Listener) {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.listeners = append(d.listeners, l)
}

// RemoveListener removes the first registered entry identical to l.
// Removing a listener that was never added is a no-op.
func (d *Dispatcher) RemoveListener(l Listener) {
	d.mu.Lock()
	defer d.mu.Unlock()
	for i, cur := range d.listeners {
		if cur == l {
			d.listeners = append(d.listeners[:i], d.listeners[i+1:]...)
			return
		}
	}
}

// Len returns the number of registered listeners.
func (d *Dispatcher) Len() int {
	d.mu.RLock()
	defer d.mu.RUnlock()
	return len(d.listeners)
}

// Dispatch invokes the callback matching ev.Name on every registered
// listener, in registration order. An event name outside the fixed
// enumeration is a fault: no callback runs and an error is returned.
func (d *Dispatcher) Dispatch(ev wire.Event) error {
	var fn func(Listener, wire.Event)
	switch ev.Name {
	case wire.EventClose:
		fn = Listener.WindowClose
	case wire.EventFocus:
		fn = Listener.WindowFocus
	case wire.EventBlur:
		fn = Listener.WindowBlur
	case wire.EventMaximize:
		fn = Listener.WindowMaximize
	case wire.EventUnmaximize:
		fn = Listener.WindowUnmaximize
	case wire.EventMinimize:
		fn = Listener.WindowMinimize
	case wire.EventRestore:
		fn = Listener.WindowRestore
	case wire.EventResize:
		fn = Listener.WindowResize
	case wire.EventResized:
		fn = Listener.WindowResized
	case wire.EventMove:
		fn = Listener.WindowMove
	case wire.EventMoved:
		fn = Listener.WindowMoved
	case wire.EventEnterFullScreen:
		fn = Listener.WindowEnterFullScreen
	case wire.EventLeaveFullScreen:
		fn = Listener.WindowLeaveFullScreen
	default:
		return fmt.Errorf("unhandled window event %q", ev.Name)
	}

	// Snapshot under the lock so callbacks may add or remove listeners.
	d.mu.RLock()
	snapshot := make([]Listener, len(d.listeners))
	copy(snapshot, d.listeners)
	d.mu.RUnlock()

	for _, l := range snapshot {
		fn(l, ev)
	}
	return nil
}
