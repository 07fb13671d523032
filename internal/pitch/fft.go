package pitch

import (
	"math"
	"math/cmplx"
	"sort"

	"github.com/mjibson/go-dsp/fft"

	"github.com/avelez/pitchnote/internal/audio"
	"github.com/avelez/pitchnote/internal/scale"
)

// FFTDetector implements pitch detection using FFT peak analysis.
type FFTDetector struct {
	windowSize      int
	minFrequency    float64 // Lowest frequency to detect (Hz)
	maxFrequency    float64 // Highest frequency to detect (Hz)
	noiseFloor      float64 // Noise threshold (0.0-1.0)
	peakThreshold   float64 // Minimum peak height as fraction of highest peak
	volumeThreshold float64 // Minimum RMS volume level for detection
}

// NewFFTDetector creates a new FFT-based pitch detector covering the
// given frequency range.
func NewFFTDetector(windowSize int, minFrequency, maxFrequency float64) *FFTDetector {
	return &FFTDetector{
		windowSize:      windowSize,
		minFrequency:    minFrequency,
		maxFrequency:    maxFrequency,
		noiseFloor:      0.01,
		peakThreshold:   0.2,
		volumeThreshold: 0.005,
	}
}

// DetectPitch analyzes an audio buffer and returns the fundamental
// frequency it contains.
func (d *FFTDetector) DetectPitch(buffer *audio.Buffer) (scale.Frequency, error) {
	if buffer == nil || len(buffer.Samples) == 0 {
		return 0, ErrEmptyBuffer
	}

	sumSquares := 0.0
	peakValue := 0.0
	for _, sample := range buffer.Samples {
		v := float64(sample)
		sumSquares += v * v
		if abs := math.Abs(v); abs > peakValue {
			peakValue = abs
		}
	}
	rmsVolume := math.Sqrt(sumSquares / float64(len(buffer.Samples)))

	dbLevel := -100.0
	if rmsVolume > 0.0000001 { // avoid log(0)
		dbLevel = 20 * math.Log10(rmsVolume)
	}

	// Silence gate: both RMS and dB thresholds, plus a peak floor so
	// very quiet transients are not analyzed.
	if rmsVolume < d.volumeThreshold || dbLevel < -50.0 {
		return 0, ErrVolumeThreshold
	}
	if peakValue < d.volumeThreshold*2 {
		return 0, ErrVolumeThreshold
	}

	windowed := applyHannWindow(buffer.Samples)

	complexSamples := make([]complex128, len(windowed))
	for i, sample := range windowed {
		complexSamples[i] = complex(float64(sample), 0)
	}

	spectrum := fft.FFT(complexSamples)

	freq, ok := d.findFundamentalFrequency(spectrum, buffer.SampleRate)
	if !ok {
		return 0, ErrVolumeThreshold
	}
	if freq < d.minFrequency || freq > d.maxFrequency {
		return 0, ErrOutOfRange
	}

	return scale.Frequency(freq), nil
}

// applyHannWindow applies a Hann window to the audio samples.
func applyHannWindow(samples []float32) []float32 {
	windowed := make([]float32, len(samples))
	for i, sample := range samples {
		coeff := 0.5 * (1 - math.Cos(2*math.Pi*float64(i)/float64(len(samples)-1)))
		windowed[i] = sample * float32(coeff)
	}
	return windowed
}

// peak is a local maximum in the frequency spectrum.
type peak struct {
	bin       int
	magnitude float64
	frequency float64
}

// findFundamentalFrequency picks the strongest interpolated spectral
// peak inside the detector's frequency range.
func (d *FFTDetector) findFundamentalFrequency(spectrum []complex128, sampleRate int) (float64, bool) {
	// Only the first half of the spectrum is meaningful (Nyquist).
	spectrumHalf := spectrum[:len(spectrum)/2]

	binSizeHz := float64(sampleRate) / float64(len(spectrum))

	minBin := int(d.minFrequency / binSizeHz)
	if minBin < 1 {
		minBin = 1 // skip the DC component
	}
	maxBin := int(d.maxFrequency / binSizeHz)
	if maxBin >= len(spectrumHalf) {
		maxBin = len(spectrumHalf) - 1
	}

	maxMagnitude := 0.0
	for i := minBin; i <= maxBin; i++ {
		if magnitude := cmplx.Abs(spectrumHalf[i]); magnitude > maxMagnitude {
			maxMagnitude = magnitude
		}
	}
	if maxMagnitude < d.noiseFloor {
		return 0, false
	}

	var peaks []peak
	for i := minBin + 1; i < maxBin; i++ {
		magnitude := cmplx.Abs(spectrumHalf[i])
		prev := cmplx.Abs(spectrumHalf[i-1])
		next := cmplx.Abs(spectrumHalf[i+1])

		if magnitude <= prev || magnitude <= next || magnitude <= maxMagnitude*d.peakThreshold {
			continue
		}

		// Quadratic interpolation refines the peak position between bins:
		// delta = 0.5 * (R[k-1] - R[k+1]) / (R[k-1] - 2*R[k] + R[k+1])
		freq := float64(i) * binSizeHz
		if denom := prev - 2*magnitude + next; denom != 0 {
			delta := 0.5 * (prev - next) / denom
			freq = (float64(i) + delta) * binSizeHz
		}

		peaks = append(peaks, peak{bin: i, magnitude: magnitude, frequency: freq})
	}

	if len(peaks) == 0 {
		return 0, false
	}

	sort.Slice(peaks, func(i, j int) bool {
		return peaks[i].magnitude > peaks[j].magnitude
	})

	return peaks[0].frequency, true
}
