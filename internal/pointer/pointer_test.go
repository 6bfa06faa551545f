package pointer

import (
	"image"
	"reflect"
	"testing"

	"github.com/phinze/huedial/internal/dial"
)

func TestTrackerStep(t *testing.T) {
	steps := []struct {
		name   string
		sample Sample
		want   []dial.Event
	}{
		{"hover", Sample{X: 10, Y: 10, Focused: true}, nil},
		{"press", Sample{X: 10, Y: 10, Primary: true, Modifiers: dial.ModShift, Focused: true},
			[]dial.Event{dial.PressEvent{X: 10, Y: 10, Button: dial.Button1, Modifiers: dial.ModShift}}},
		{"hold still", Sample{X: 10, Y: 10, Primary: true, Focused: true}, nil},
		{"drag", Sample{X: 14, Y: 8, Primary: true, Focused: true},
			[]dial.Event{dial.MotionEvent{X: 14, Y: 8}}},
		{"release elsewhere", Sample{X: 300, Y: -20, Focused: true},
			[]dial.Event{dial.MotionEvent{X: 300, Y: -20}, dial.ReleaseEvent{Button: dial.Button1}}},
		{"hover after release", Sample{X: 40, Y: 40, Focused: true}, nil},
		{"context press", Sample{X: 40, Y: 40, Secondary: true, Focused: true},
			[]dial.Event{dial.PressEvent{X: 40, Y: 40, Button: dial.Button3}}},
		{"context release", Sample{X: 40, Y: 40, Focused: true},
			[]dial.Event{dial.ReleaseEvent{Button: dial.Button3}}},
	}

	var tr Tracker
	for _, st := range steps {
		got := tr.Step(st.sample)
		if !reflect.DeepEqual(got, st.want) {
			t.Errorf("%s: got %#v, want %#v", st.name, got, st.want)
		}
	}
}

func TestTrackerFocusLossReleases(t *testing.T) {
	var tr Tracker
	tr.Step(Sample{X: 5, Y: 5, Primary: true, Focused: true})

	got := tr.Step(Sample{X: 9, Y: 9, Primary: true, Focused: false})
	want := []dial.Event{dial.ReleaseEvent{Button: dial.Button1}}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("got %#v, want %#v", got, want)
	}

	// Regaining focus with the button still down starts a new drag.
	got = tr.Step(Sample{X: 9, Y: 9, Primary: true, Focused: true})
	if len(got) != 1 || got[0] != (dial.PressEvent{X: 9, Y: 9, Button: dial.Button1}) {
		t.Errorf("got %#v, want a fresh press", got)
	}
}

func TestSwipe(t *testing.T) {
	got := Swipe(image.Pt(0, 0), image.Pt(40, 20), 4)
	want := []dial.Event{
		dial.PressEvent{X: 0, Y: 0, Button: dial.Button1},
		dial.MotionEvent{X: 10, Y: 5},
		dial.MotionEvent{X: 20, Y: 10},
		dial.MotionEvent{X: 30, Y: 15},
		dial.MotionEvent{X: 40, Y: 20},
		dial.ReleaseEvent{Button: dial.Button1},
	}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("got %#v, want %#v", got, want)
	}

	if n := len(Swipe(image.Pt(1, 1), image.Pt(2, 2), 0)); n != 3 {
		t.Errorf("zero steps produced %d events, want 3", n)
	}
}

func TestTap(t *testing.T) {
	got := Tap(image.Pt(3, 4))
	if len(got) != 2 || got[0] != (dial.PressEvent{X: 3, Y: 4, Button: dial.Button1}) || got[1] != (dial.ReleaseEvent{Button: dial.Button1}) {
		t.Errorf("got %#v", got)
	}
}

func TestTrackerDrivesController(t *testing.T) {
	c := dial.New()
	c.HandleEvent(dial.LayoutEvent{Width: 100, Height: 100})

	var tr Tracker
	for _, s := range []Sample{
		{X: 50, Y: 50, Primary: true, Focused: true},
		{X: 60, Y: 50, Primary: true, Focused: true},
	} {
		for _, ev := range tr.Step(s) {
			c.HandleEvent(ev)
		}
	}
	if !c.Dragging() {
		t.Fatal("controller not dragging after press")
	}
	for _, ev := range tr.Step(Sample{X: 60, Y: 50, Primary: true, Focused: false}) {
		c.HandleEvent(ev)
	}
	if c.Dragging() {
		t.Error("focus loss left the controller dragging")
	}
}
