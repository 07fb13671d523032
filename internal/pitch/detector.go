// Package pitch extracts a fundamental frequency from captured audio.
// Resolving the frequency to a note is the scale package's job.
package pitch

import (
	"errors"

	"github.com/avelez/pitchnote/internal/audio"
	"github.com/avelez/pitchnote/internal/scale"
)

// Errors
var (
	ErrEmptyBuffer     = errors.New("empty audio buffer")
	ErrVolumeThreshold = errors.New("volume below threshold")
	ErrOutOfRange      = errors.New("frequency outside detectable range")
)

// Detector defines the interface for pitch detection.
type Detector interface {
	// DetectPitch analyzes an audio buffer and returns the fundamental
	// frequency it contains.
	DetectPitch(buffer *audio.Buffer) (scale.Frequency, error)
}
