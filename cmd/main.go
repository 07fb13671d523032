package main

import (
	"context"
	"errors"
	"fmt"
	"math"
	"os"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"

	"github.com/avelez/pitchnote/internal/audio"
	"github.com/avelez/pitchnote/internal/config"
	"github.com/avelez/pitchnote/internal/logger"
	"github.com/avelez/pitchnote/internal/pitch"
	"github.com/avelez/pitchnote/internal/scale"
	"github.com/avelez/pitchnote/internal/ui"
)

const (
	// How often to push level diagnostics to the UI
	debugInterval = time.Millisecond * 200

	// Delay after a volume increase before registering a note, so the
	// attack transient settles first
	stabilizationDelay = 300 * time.Millisecond

	// Minimum interval between note updates, to prevent flicker
	noteUpdateInterval = 80 * time.Millisecond
)

// getAudioLevel calculates RMS and dB level of a buffer.
func getAudioLevel(buffer *audio.Buffer) (rms, db float32) {
	if buffer == nil || len(buffer.Samples) == 0 {
		return 0, -100
	}

	sumSquares := float32(0)
	for _, sample := range buffer.Samples {
		sumSquares += sample * sample
	}
	rms = float32(math.Sqrt(float64(sumSquares / float32(len(buffer.Samples)))))

	if rms > 0.0000001 { // avoid log(0)
		db = 20 * float32(math.Log10(float64(rms)))
	} else {
		db = -100
	}

	return rms, db
}

// analyzeLoop reads audio buffers, detects pitch, resolves notes and
// feeds the UI until the context is cancelled.
func analyzeLoop(ctx context.Context, capturer audio.Capturer, detector pitch.Detector, p *tea.Program, log *logger.Logger, showLevels bool) error {
	lastDebugTime := time.Now()
	lastNoteTime := time.Now()
	isVolumeRising := false
	volumeRiseTime := time.Time{}
	lastDB := float32(-100)

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		default:
		}

		buffer, err := capturer.GetBuffer()
		if err != nil {
			time.Sleep(time.Millisecond * 10)
			continue
		}
		if len(buffer.Samples) < 512 {
			time.Sleep(time.Millisecond * 10)
			continue
		}

		rms, db := getAudioLevel(buffer)

		if showLevels && time.Since(lastDebugTime) > debugInterval {
			p.Send(ui.UpdateAudioLevelMsg{RMS: rms, DB: db})
			lastDebugTime = time.Now()
		}

		// A sharp volume rise marks the beginning of a note; hold off
		// until the attack settles.
		if db > lastDB+3 && db > -40 {
			if !isVolumeRising {
				isVolumeRising = true
				volumeRiseTime = time.Now()
				lastDB = db
				time.Sleep(time.Millisecond * 10)
				continue
			}
		}
		lastDB = db

		if db < -30 {
			p.Send(ui.ClearNoteMsg{})
			isVolumeRising = false
			time.Sleep(time.Millisecond * 50)
			continue
		}

		if isVolumeRising && time.Since(volumeRiseTime) < stabilizationDelay {
			time.Sleep(time.Millisecond * 10)
			continue
		}
		isVolumeRising = false

		frequency, err := detector.DetectPitch(buffer)
		if err != nil {
			p.Send(ui.ClearNoteMsg{})
			time.Sleep(time.Millisecond * 50)
			continue
		}

		match, err := scale.ClosestNote(frequency)
		if err != nil {
			// Detector produced an unusable frequency; discard the sample.
			log.Debug("discarding sample: %v", err)
			p.Send(ui.ClearNoteMsg{})
			time.Sleep(time.Millisecond * 50)
			continue
		}

		if time.Since(lastNoteTime) > noteUpdateInterval {
			p.Send(ui.UpdateMatchMsg{Match: match, Frequency: frequency})
			lastNoteTime = time.Now()
		}

		time.Sleep(time.Millisecond * 50)
	}
}

func run(cfg config.Config, showLevels bool) error {
	log := logger.New(cfg.Verbose)
	defer log.Close()

	capturer, err := audio.NewPortAudioCapturer(cfg.BufferSize, cfg.SampleRate, cfg.Channels)
	if err != nil {
		return fmt.Errorf("failed to create audio capturer: %w", err)
	}

	detector := pitch.NewFFTDetector(cfg.BufferSize, cfg.MinFrequency, cfg.MaxFrequency)

	if err := capturer.Start(); err != nil {
		return fmt.Errorf("failed to start audio capture: %w", err)
	}
	defer capturer.Stop()

	capturer.SetAmplification(float32(cfg.Amplification))
	log.Info("listening at %d Hz, buffer %d, gain %.1fx",
		cfg.SampleRate, cfg.BufferSize, cfg.Amplification)

	p := tea.NewProgram(ui.NewModel(showLevels), tea.WithAltScreen())

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	g, ctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		// Tear down the UI if the analysis loop fails.
		defer p.Quit()
		if err := analyzeLoop(ctx, capturer, detector, p, log, showLevels); !errors.Is(err, context.Canceled) {
			return err
		}
		return nil
	})
	g.Go(func() error {
		// Stop the analysis loop when the UI exits.
		defer cancel()
		_, err := p.Run()
		return err
	})

	return g.Wait()
}

func main() {
	var (
		configPath    string
		amplification float64
		verbose       bool
		showLevels    bool
	)

	rootCmd := &cobra.Command{
		Use:   "pitchnote",
		Short: "Terminal instrument tuner",
		Long:  "PitchNote listens to the default input device and shows the closest note, octave and cents deviation.",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load(configPath)
			if err != nil {
				return err
			}
			if cmd.Flags().Changed("amp") {
				cfg.Amplification = amplification
			}
			if verbose {
				cfg.Verbose = true
			}
			return run(cfg, showLevels)
		},
		SilenceUsage: true,
	}

	rootCmd.Flags().StringVarP(&configPath, "config", "c", "", "path to config file")
	rootCmd.Flags().Float64Var(&amplification, "amp", 8.0, "input amplification factor")
	rootCmd.Flags().BoolVarP(&verbose, "verbose", "v", false, "verbose logging")
	rootCmd.Flags().BoolVar(&showLevels, "levels", false, "show input level diagnostics")

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
