package demo

import (
	"sync"
	"testing"
	"time"
)

func TestPlayer_PlaysEveryStepInOrder(t *testing.T) {
	var (
		mu    sync.Mutex
		steps []int
	)
	p := NewPlayer(4, func(step int) {
		mu.Lock()
		steps = append(steps, step)
		mu.Unlock()
	}, Settings{})

	if err := p.Play(); err != nil {
		t.Fatalf("Play failed: %v", err)
	}
	p.Wait()

	if p.IsPlaying() {
		t.Error("player still playing after Wait")
	}
	mu.Lock()
	defer mu.Unlock()
	if len(steps) != 4 {
		t.Fatalf("steps = %v, want 0..3", steps)
	}
	for i, s := range steps {
		if s != i {
			t.Errorf("steps = %v, want 0..3", steps)
			break
		}
	}
}

func TestPlayer_Stop(t *testing.T) {
	first := make(chan struct{})
	calls := 0
	p := NewPlayer(10, func(step int) {
		calls++
		if step == 0 {
			close(first)
		}
	}, Settings{Delay: time.Hour})

	if err := p.Play(); err != nil {
		t.Fatal(err)
	}
	<-first
	p.Stop()

	if p.IsPlaying() {
		t.Error("player still playing after Stop")
	}
	if calls != 1 {
		t.Errorf("onStep called %d times, want 1", calls)
	}

	// stopping twice is a no-op
	p.Stop()
}

func TestPlayer_PlayErrors(t *testing.T) {
	if err := NewPlayer(0, func(int) {}, Settings{}).Play(); err == nil {
		t.Error("Play with no steps should fail")
	}

	p := NewPlayer(2, func(int) {}, Settings{Delay: time.Hour})
	if err := p.Play(); err != nil {
		t.Fatal(err)
	}
	defer p.Stop()
	if err := p.Play(); err == nil {
		t.Error("second Play should fail while playing")
	}
}

func TestSettings_Next(t *testing.T) {
	s := Settings{Delay: 100 * time.Millisecond, Variance: 20 * time.Millisecond}
	for i := 0; i < 50; i++ {
		d := s.next()
		if d < 80*time.Millisecond || d >= 120*time.Millisecond {
			t.Fatalf("next() = %v, want within 100ms ± 20ms", d)
		}
	}

	if d := (Settings{Delay: time.Millisecond, Variance: time.Second}).next(); d < 0 {
		t.Errorf("next() = %v, want non-negative", d)
	}
}
