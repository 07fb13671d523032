package audio

// Buffer holds a snapshot of captured audio samples.
type Buffer struct {
	Samples    []float32
	SampleRate int
}

// Capturer defines the interface for audio capture.
type Capturer interface {
	// Start begins audio capture
	Start() error

	// Stop ends audio capture
	Stop() error

	// GetBuffer returns a copy of the current audio buffer
	GetBuffer() (*Buffer, error)

	// IsCapturing returns true if currently capturing audio
	IsCapturing() bool

	// SetAmplification sets the input gain factor
	SetAmplification(factor float32)
}

// downmix averages interleaved multi-channel samples into a mono buffer
// and applies the amplification factor. Mono input is copied with the
// gain applied.
func downmix(in []float32, channels int, amplification float32) []float32 {
	if channels <= 1 {
		out := make([]float32, len(in))
		for i, sample := range in {
			out[i] = sample * amplification
		}
		return out
	}

	out := make([]float32, len(in)/channels)
	for i := range out {
		sum := float32(0)
		for ch := 0; ch < channels; ch++ {
			sum += in[i*channels+ch]
		}
		out[i] = (sum / float32(channels)) * amplification
	}
	return out
}
