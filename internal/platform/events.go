package platform

import "sort"

// WindowState is one polled snapshot of a window's observable state.
type WindowState struct {
	Bounds     Rect
	Focused    bool
	Maximized  bool
	Minimized  bool
	Fullscreen bool
}

// DiffStates compares two snapshots and returns the lifecycle transitions
// between them, ordered by window ID for determinism. Polling cannot see a
// gesture in progress, so move/resize begin-and-settle pairs (move+moved,
// resize+resized) are emitted together once the change is observed.
func DiffStates(prev, next map[WindowID]WindowState) []Event {
	ids := make([]WindowID, 0, len(prev)+len(next))
	seen := make(map[WindowID]struct{}, len(prev)+len(next))
	for id := range prev {
		ids = append(ids, id)
		seen[id] = struct{}{}
	}
	for id := range next {
		if _, ok := seen[id]; !ok {
			ids = append(ids, id)
		}
	}
	sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })

	var events []Event
	for _, id := range ids {
		old, existed := prev[id]
		cur, exists := next[id]

		if existed && !exists {
			events = append(events, Event{Kind: EventClose, Window: id})
			continue
		}
		if !existed {
			// New window: report only its focus, the rest is initial state.
			if cur.Focused {
				events = append(events, Event{Kind: EventFocus, Window: id})
			}
			continue
		}

		if old.Focused && !cur.Focused {
			events = append(events, Event{Kind: EventBlur, Window: id})
		}
		if !old.Focused && cur.Focused {
			events = append(events, Event{Kind: EventFocus, Window: id})
		}

		if !old.Minimized && cur.Minimized {
			events = append(events, Event{Kind: EventMinimize, Window: id})
		}
		if old.Minimized && !cur.Minimized {
			events = append(events, Event{Kind: EventRestore, Window: id})
		}

		if !old.Maximized && cur.Maximized {
			events = append(events, Event{Kind: EventMaximize, Window: id})
		}
		if old.Maximized && !cur.Maximized {
			events = append(events, Event{Kind: EventUnmaximize, Window: id})
		}

		if !old.Fullscreen && cur.Fullscreen {
			events = append(events, Event{Kind: EventEnterFullScreen, Window: id})
		}
		if old.Fullscreen && !cur.Fullscreen {
			events = append(events, Event{Kind: EventLeaveFullScreen, Window: id})
		}

		if old.Bounds.X != cur.Bounds.X || old.Bounds.Y != cur.Bounds.Y {
			events = append(events,
				Event{Kind: EventMove, Window: id},
				Event{Kind: EventMoved, Window: id})
		}
		if old.Bounds.Width != cur.Bounds.Width || old.Bounds.Height != cur.Bounds.Height {
			events = append(events,
				Event{Kind: EventResize, Window: id},
				Event{Kind: EventResized, Window: id})
		}
	}
	return events
}
