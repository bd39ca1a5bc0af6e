package viewer

import "frame-gallery/pkg/models"

// ViewerState is the lightbox state machine value: Closed, or Open at Current.
// Transitions return the next state and whether the move was taken; rejected moves
// return the receiver unchanged.
type ViewerState struct {
	Frames  []models.Frame
	Current int
	IsOpen  bool
}

// Open moves to Open(i) when i indexes a frame
func (s ViewerState) Open(i int) (ViewerState, bool) {
	if i < 0 || i >= len(s.Frames) {
		return s, false
	}
	s.Current = i
	s.IsOpen = true
	return s, true
}

// Close moves to Closed from any open state
func (s ViewerState) Close() (ViewerState, bool) {
	if !s.IsOpen {
		return s, false
	}
	s.IsOpen = false
	return s, true
}

// Next moves one frame forward; it never wraps
func (s ViewerState) Next() (ViewerState, bool) {
	if !s.IsOpen || s.Current >= len(s.Frames)-1 {
		return s, false
	}
	s.Current++
	return s, true
}

// Prev moves one frame back; it never wraps
func (s ViewerState) Prev() (ViewerState, bool) {
	if !s.IsOpen || s.Current <= 0 {
		return s, false
	}
	s.Current--
	return s, true
}

// Display describes the current frame while open
func (s ViewerState) Display() (Display, bool) {
	if !s.IsOpen || s.Current < 0 || s.Current >= len(s.Frames) {
		return Display{}, false
	}
	frame := s.Frames[s.Current]
	return Display{
		Index:    s.Current,
		Number:   frame.Number,
		Source:   frame.ImageSource(),
		Label:    frame.Label(),
		Timecode: frame.Timecode,
		HasPrev:  s.Current > 0,
		HasNext:  s.Current < len(s.Frames)-1,
	}, true
}
