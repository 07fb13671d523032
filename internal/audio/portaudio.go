package audio

import (
	"errors"
	"sync"

	"github.com/gordonklaus/portaudio"
)

const minAmplification = 0.1

// PortAudioCapturer implements audio capture using PortAudio.
type PortAudioCapturer struct {
	isCapturing   bool
	stream        *portaudio.Stream
	buffer        *Buffer
	bufferSize    int
	sampleRate    int
	channels      int
	bufferMutex   sync.Mutex
	amplification float32
}

// NewPortAudioCapturer creates a new audio capturer using PortAudio.
func NewPortAudioCapturer(bufferSize, sampleRate, channels int) (*PortAudioCapturer, error) {
	if err := portaudio.Initialize(); err != nil {
		return nil, err
	}

	return &PortAudioCapturer{
		buffer: &Buffer{
			Samples:    make([]float32, 0, bufferSize),
			SampleRate: sampleRate,
		},
		bufferSize:    bufferSize,
		sampleRate:    sampleRate,
		channels:      channels,
		amplification: 1.0,
	}, nil
}

// Start opens the default input stream and begins capture.
func (c *PortAudioCapturer) Start() error {
	if c.isCapturing {
		return errors.New("audio capture already started")
	}

	var err error
	c.stream, err = portaudio.OpenDefaultStream(
		c.channels,
		0, // input only
		float64(c.sampleRate),
		c.bufferSize/c.channels,
		c.processAudio,
	)
	if err != nil {
		return err
	}

	if err := c.stream.Start(); err != nil {
		c.stream.Close()
		return err
	}

	c.isCapturing = true
	return nil
}

// Stop ends capture and releases the stream.
func (c *PortAudioCapturer) Stop() error {
	if !c.isCapturing {
		return errors.New("audio capture not started")
	}

	if err := c.stream.Stop(); err != nil {
		return err
	}
	if err := c.stream.Close(); err != nil {
		return err
	}
	if err := portaudio.Terminate(); err != nil {
		return err
	}

	c.isCapturing = false
	return nil
}

// processAudio is the PortAudio stream callback.
func (c *PortAudioCapturer) processAudio(in, _ []float32) {
	c.bufferMutex.Lock()
	defer c.bufferMutex.Unlock()

	c.buffer.Samples = downmix(in, c.channels, c.amplification)
}

// GetBuffer returns a copy of the most recent audio buffer.
func (c *PortAudioCapturer) GetBuffer() (*Buffer, error) {
	if !c.isCapturing {
		return nil, errors.New("audio capture not started")
	}

	c.bufferMutex.Lock()
	defer c.bufferMutex.Unlock()

	bufferCopy := &Buffer{
		Samples:    make([]float32, len(c.buffer.Samples)),
		SampleRate: c.buffer.SampleRate,
	}
	copy(bufferCopy.Samples, c.buffer.Samples)

	return bufferCopy, nil
}

// IsCapturing returns true if currently capturing audio.
func (c *PortAudioCapturer) IsCapturing() bool {
	return c.isCapturing
}

// SetAmplification sets the input gain factor.
func (c *PortAudioCapturer) SetAmplification(factor float32) {
	c.bufferMutex.Lock()
	defer c.bufferMutex.Unlock()

	if factor < minAmplification {
		factor = minAmplification
	}
	c.amplification = factor
}
