package viewer

import "testing"

func TestViewerStateTransitions(t *testing.T) {
	s := ViewerState{Frames: framesOf(3)}

	if _, ok := s.Next(); ok {
		t.Fatal("Next should be rejected while closed")
	}
	if _, ok := s.Close(); ok {
		t.Fatal("Close should be rejected while closed")
	}
	for _, i := range []int{-1, 3, 100} {
		if _, ok := s.Open(i); ok {
			t.Fatalf("Open(%d) should be rejected", i)
		}
	}

	s, ok := s.Open(2)
	if !ok || !s.IsOpen || s.Current != 2 {
		t.Fatalf("Open(2) = %+v, %v", s, ok)
	}
	if s2, ok := s.Next(); ok || s2.Current != 2 {
		t.Fatalf("Next at last index moved to %d", s2.Current)
	}
	s, _ = s.Prev()
	s, _ = s.Prev()
	if s.Current != 0 {
		t.Fatalf("expected index 0, got %d", s.Current)
	}
	if s2, ok := s.Prev(); ok || s2.Current != 0 {
		t.Fatalf("Prev at index 0 moved to %d", s2.Current)
	}
	s, ok = s.Close()
	if !ok || s.IsOpen {
		t.Fatalf("Close = %+v, %v", s, ok)
	}
	if _, ok := s.Display(); ok {
		t.Fatal("closed state has no display")
	}
}

func TestViewerStateIsAValue(t *testing.T) {
	closed := ViewerState{Frames: framesOf(2)}
	open, _ := closed.Open(1)
	if closed.IsOpen {
		t.Fatal("transition mutated the receiver")
	}
	if !open.IsOpen || open.Current != 1 {
		t.Fatalf("unexpected open state: %+v", open)
	}
}

func TestViewerStateDisplayFlags(t *testing.T) {
	s, _ := ViewerState{Frames: scenarioFrames()}.Open(0)
	d, ok := s.Display()
	if !ok {
		t.Fatal("expected display while open")
	}
	if d.HasPrev || !d.HasNext {
		t.Fatalf("unexpected flags at first frame: %+v", d)
	}
	s, _ = s.Next()
	d, _ = s.Display()
	if !d.HasPrev || d.HasNext {
		t.Fatalf("unexpected flags at last frame: %+v", d)
	}
}

func TestViewerStateEmptyFramesNeverOpens(t *testing.T) {
	if _, ok := (ViewerState{}).Open(0); ok {
		t.Fatal("Open(0) on empty frames should be rejected")
	}
}
