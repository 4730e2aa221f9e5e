package platform

import (
	"reflect"
	"testing"
)

func TestDiffStatesClose(t *testing.T) {
	prev := map[WindowID]WindowState{1: {}, 2: {}}
	next := map[WindowID]WindowState{1: {}}

	got := DiffStates(prev, next)
	want := []Event{{Kind: EventClose, Window: 2}}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("DiffStates = %v, want %v", got, want)
	}
}

func TestDiffStatesFocusTransfer(t *testing.T) {
	prev := map[WindowID]WindowState{
		1: {Focused: true},
		2: {},
	}
	next := map[WindowID]WindowState{
		1: {},
		2: {Focused: true},
	}

	got := DiffStates(prev, next)
	want := []Event{
		{Kind: EventBlur, Window: 1},
		{Kind: EventFocus, Window: 2},
	}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("DiffStates = %v, want %v", got, want)
	}
}

func TestDiffStatesMoveAndResize(t *testing.T) {
	prev := map[WindowID]WindowState{
		3: {Bounds: Rect{X: 0, Y: 0, Width: 800, Height: 600}},
	}
	next := map[WindowID]WindowState{
		3: {Bounds: Rect{X: 40, Y: 40, Width: 1024, Height: 768}},
	}

	got := DiffStates(prev, next)
	want := []Event{
		{Kind: EventMove, Window: 3},
		{Kind: EventMoved, Window: 3},
		{Kind: EventResize, Window: 3},
		{Kind: EventResized, Window: 3},
	}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("DiffStates = %v, want %v", got, want)
	}
}

func TestDiffStatesStateToggles(t *testing.T) {
	tests := []struct {
		name string
		old  WindowState
		new  WindowState
		want []EventKind
	}{
		{"maximize", WindowState{}, WindowState{Maximized: true}, []EventKind{EventMaximize}},
		{"unmaximize", WindowState{Maximized: true}, WindowState{}, []EventKind{EventUnmaximize}},
		{"minimize", WindowState{}, WindowState{Minimized: true}, []EventKind{EventMinimize}},
		{"restore", WindowState{Minimized: true}, WindowState{}, []EventKind{EventRestore}},
		{"enter-full-screen", WindowState{}, WindowState{Fullscreen: true}, []EventKind{EventEnterFullScreen}},
		{"leave-full-screen", WindowState{Fullscreen: true}, WindowState{}, []EventKind{EventLeaveFullScreen}},
		{"no change", WindowState{Maximized: true}, WindowState{Maximized: true}, nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := DiffStates(
				map[WindowID]WindowState{7: tt.old},
				map[WindowID]WindowState{7: tt.new},
			)
			var kinds []EventKind
			for _, ev := range got {
				kinds = append(kinds, ev.Kind)
			}
			if !reflect.DeepEqual(kinds, tt.want) {
				t.Errorf("kinds = %v, want %v", kinds, tt.want)
			}
		})
	}
}

func TestDiffStatesNewWindowOnlyReportsFocus(t *testing.T) {
	next := map[WindowID]WindowState{
		5: {Focused: true, Maximized: true},
		6: {},
	}

	got := DiffStates(nil, next)
	want := []Event{{Kind: EventFocus, Window: 5}}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("DiffStates = %v, want %v", got, want)
	}
}

func TestDiffStatesDeterministicOrder(t *testing.T) {
	prev := map[WindowID]WindowState{10: {}, 2: {}, 7: {}}
	next := map[WindowID]WindowState{}

	got := DiffStates(prev, next)
	want := []Event{
		{Kind: EventClose, Window: 2},
		{Kind: EventClose, Window: 7},
		{Kind: EventClose, Window: 10},
	}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("DiffStates = %v, want %v", got, want)
	}
}
