package chip8vm

import (
	"context"
	"fmt"
	"sync/atomic"

	"github.com/go-audio/audio"
	"github.com/go-audio/generator"
	"github.com/gordonklaus/portaudio"
	"golang.org/x/sync/errgroup"
)

const (
	framesPerBuffer int     = 512
	volume          float64 = 0.5
)

var (
	sampleFormat = audio.FormatMono44100
)

// Beep plays a sine tone on the default output device while the sound timer
// runs.
type Beep struct {
	Tone float64

	// play runs one beep until it is stopped, stream when nil.
	play func(ctx context.Context) error

	g       errgroup.Group
	beeping atomic.Bool
}

// Set starts or stops the tone. It is a no-op when already in that state.
func (b *Beep) Set(ctx context.Context, on bool) error {
	if on {
		b.Start(ctx)
		return nil
	}
	return b.Stop()
}

// Start begins a beep in the background. Errors it hits are returned by Stop.
func (b *Beep) Start(ctx context.Context) {
	if !b.beeping.CompareAndSwap(false, true) {
		return
	}

	play := b.play
	if play == nil {
		play = b.stream
	}
	b.g.Go(func() error {
		return play(ctx)
	})
}

// stream sets up the audio device and plays the tone on it.
func (b *Beep) stream(ctx context.Context) error {
	if err := portaudio.Initialize(); err != nil {
		return fmt.Errorf("initializing audio: %w", err)
	}
	defer func() {
		_ = portaudio.Terminate()
	}()
	return b.tone(ctx)
}

// tone streams the tone until the beep is stopped or ctx is done.
func (b *Beep) tone(ctx context.Context) error {
	src := &audio.FloatBuffer{
		Data:   make([]float64, framesPerBuffer),
		Format: sampleFormat,
	}
	osc := generator.NewOsc(generator.WaveSine, b.Tone, sampleFormat.SampleRate)
	osc.Amplitude = volume

	out := make([]float32, framesPerBuffer)
	stream, err := portaudio.OpenDefaultStream(0, sampleFormat.NumChannels,
		float64(sampleFormat.SampleRate), len(out), &out)
	if err != nil {
		return fmt.Errorf("opening audio stream: %w", err)
	}
	defer func() {
		_ = stream.Close()
	}()

	if err := stream.Start(); err != nil {
		return fmt.Errorf("starting audio stream: %w", err)
	}
	defer func() {
		_ = stream.Stop()
	}()

	for b.beeping.Load() && ctx.Err() == nil {
		if err := osc.Fill(src); err != nil {
			return err
		}
		for i, sample := range src.Data {
			out[i] = float32(sample)
		}
		if err := stream.Write(); err != nil {
			return err
		}
	}
	return nil
}

// Stop silences the tone and returns the error the current beep hit, if any.
func (b *Beep) Stop() error {
	if !b.beeping.CompareAndSwap(true, false) {
		return nil
	}
	err := b.g.Wait()
	// A group keeps its first error, so each beep gets a fresh one.
	b.g = errgroup.Group{}
	return err
}
