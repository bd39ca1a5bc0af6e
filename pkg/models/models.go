package models

import "fmt"

// Frame represents one extracted shot frame with its preview and optional full image
type Frame struct {
	Number    int      `json:"number"`
	Timecode  string   `json:"timecode"`
	Thumbnail string   `json:"thumbnail"`
	Full      *string  `json:"full,omitempty"`
	Timestamp *float64 `json:"timestamp,omitempty"`

	// Extractor annotations, kept so an exported manifest round-trips
	Type       string `json:"type,omitempty"`
	Subtitle   string `json:"subtitle,omitempty"`
	Shot       *int   `json:"shot,omitempty"`
	BurstFrame *int   `json:"burst_frame,omitempty"`
}

// ImageSource returns the full-size image reference, falling back to the thumbnail
func (f Frame) ImageSource() string {
	if f.Full != nil && *f.Full != "" {
		return *f.Full
	}
	return f.Thumbnail
}

// Label returns the display label of the frame
func (f Frame) Label() string {
	return fmt.Sprintf("Frame %d", f.Number)
}

// FrameManifest represents the ordered frame list of one movie
type FrameManifest struct {
	MovieName      *string  `json:"movie_name,omitempty"`
	TotalFrames    int      `json:"total_frames,omitempty"`
	ExtractionType string   `json:"extraction_type,omitempty"`
	Threshold      *float64 `json:"threshold,omitempty"`
	TotalShots     *int     `json:"total_shots,omitempty"`
	FramesPerShot  *int     `json:"frames_per_shot,omitempty"`
	FPS            *float64 `json:"fps,omitempty"`
	ShotFrames     *int     `json:"shot_frames,omitempty"`
	SubtitleFrames *int     `json:"subtitle_frames,omitempty"`
	Frames         []Frame  `json:"frames"`
}

// Title returns the movie name when present
func (m FrameManifest) Title() (string, bool) {
	if m.MovieName == nil || *m.MovieName == "" {
		return "", false
	}
	return *m.MovieName, true
}

// Movie represents a manifest stored in the bucket catalog
type Movie struct {
	Name         string `json:"name"`
	ManifestPath string `json:"manifestPath"`
	URL          string `json:"url"`
}
