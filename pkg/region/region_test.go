package region

import "testing"

func TestRectContains(t *testing.T) {
	r := Rect{X: 10, Y: 20, W: 100, H: 50}

	tests := []struct {
		name   string
		p      Point
		inside bool
	}{
		{"strict interior", Point{60, 45}, true},
		{"near top-left interior", Point{10.5, 20.5}, true},
		{"strictly left", Point{9.9, 45}, false},
		{"strictly right", Point{110.1, 45}, false},
		{"strictly above", Point{60, 19.9}, false},
		{"strictly below", Point{60, 70.1}, false},
		{"far outside", Point{-100, -100}, false},
		{"top edge", Point{60, 20}, true},
		{"bottom edge", Point{60, 70}, true},
		{"left edge", Point{10, 45}, true},
		{"right edge", Point{110, 45}, true},
		{"corner", Point{10, 20}, true},
		{"opposite corner", Point{110, 70}, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := r.Contains(tt.p); got != tt.inside {
				t.Errorf("Contains(%v): got %v, want %v", tt.p, got, tt.inside)
			}
		})
	}
}

func TestRectCenter(t *testing.T) {
	r := Rect{X: 10, Y: 20, W: 100, H: 50}
	c := r.Center()
	if c.X != 60 || c.Y != 45 {
		t.Errorf("Center: got %v, want {60 45}", c)
	}
}

func TestEdgeDetectorRisingEdges(t *testing.T) {
	// [outside, outside, inside, inside, outside, inside]
	// exactly two rising edges, at positions 2 and 5.
	states := []bool{false, false, true, true, false, true}
	wantRise := []bool{false, false, true, false, false, true}

	var d EdgeDetector
	for i, s := range states {
		if got := d.Observe(s); got != wantRise[i] {
			t.Errorf("position %d: Observe(%v) = %v, want %v", i, s, got, wantRise[i])
		}
	}
}

func TestEdgeDetectorInitialState(t *testing.T) {
	// Zero value starts outside: an immediately-inside first frame fires.
	var d EdgeDetector
	if !d.Observe(true) {
		t.Error("first inside observation should fire a rising edge")
	}

	// A first outside observation never fires.
	var d2 EdgeDetector
	if d2.Observe(false) {
		t.Error("first outside observation must not fire")
	}
}

func TestEdgeDetectorReset(t *testing.T) {
	var d EdgeDetector
	d.Observe(true)
	if !d.Inside() {
		t.Error("Inside should report last state")
	}
	d.Reset()
	if d.Inside() {
		t.Error("Reset should return to outside")
	}
	if !d.Observe(true) {
		t.Error("inside after Reset should fire again")
	}
}
