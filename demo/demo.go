// Package demo replays a routed circuit one wire at a time.
package demo

import (
	"math/rand"
	"sync"
	"time"

	"github.com/pkg/errors"
)

// Settings configures playback timing
type Settings struct {
	Delay    time.Duration // base delay between steps
	Variance time.Duration // random variance (±variance)
}

// DefaultSettings returns the timing used by the view command.
func DefaultSettings() Settings {
	return Settings{Delay: 500 * time.Millisecond, Variance: 100 * time.Millisecond}
}

// next returns the delay before the next step.
func (s Settings) next() time.Duration {
	d := s.Delay
	if s.Variance > 0 {
		d += time.Duration(rand.Int63n(int64(2*s.Variance))) - s.Variance
	}
	if d < 0 {
		d = 0
	}
	return d
}

// Player calls onStep for steps 0..n-1 with a pause between steps
type Player struct {
	steps    int
	onStep   func(step int)
	settings Settings

	mu      sync.Mutex
	playing bool
	stop    chan struct{}
	done    chan struct{}
}

// NewPlayer creates a new player
func NewPlayer(steps int, onStep func(step int), settings Settings) *Player {
	return &Player{
		steps:    steps,
		onStep:   onStep,
		settings: settings,
	}
}

// Play starts playback in the background
func (p *Player) Play() error {
	p.mu.Lock()
	defer p.mu.Unlock()

	if p.playing {
		return errors.New("already playing")
	}
	if p.steps <= 0 {
		return errors.New("nothing to play")
	}

	p.playing = true
	p.stop = make(chan struct{})
	p.done = make(chan struct{})
	go p.play(p.stop, p.done)
	return nil
}

// Stop stops the current playback and waits for it to finish
func (p *Player) Stop() {
	p.mu.Lock()
	stop, done := p.stop, p.done
	p.stop = nil
	p.mu.Unlock()

	if stop == nil {
		return
	}
	close(stop)
	<-done
}

// Wait blocks until playback ends
func (p *Player) Wait() {
	p.mu.Lock()
	done := p.done
	p.mu.Unlock()

	if done != nil {
		<-done
	}
}

// IsPlaying returns whether playback is running
func (p *Player) IsPlaying() bool {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.playing
}

func (p *Player) play(stop <-chan struct{}, done chan<- struct{}) {
	defer func() {
		p.mu.Lock()
		p.playing = false
		p.mu.Unlock()
		close(done)
	}()

	for step := 0; step < p.steps; step++ {
		if step > 0 {
			timer := time.NewTimer(p.settings.next())
			select {
			case <-stop:
				timer.Stop()
				return
			case <-timer.C:
			}
		}

		select {
		case <-stop:
			return
		default:
			p.onStep(step)
		}
	}
}
