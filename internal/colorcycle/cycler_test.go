package colorcycle

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/san-kum/particlesim/internal/particle"
)

func waitFor(t *testing.T, cond func() bool) {
	t.Helper()
	deadline := time.Now().Add(2 * time.Second)
	for time.Now().Before(deadline) {
		if cond() {
			return
		}
		time.Sleep(time.Millisecond)
	}
	t.Fatal("condition not met before deadline")
}

func TestNewCyclerRejectsZeroStep(t *testing.T) {
	_, err := NewCycler(0, 255, 0, time.Millisecond)
	if !errors.Is(err, ErrZeroStep) {
		t.Errorf("expected ErrZeroStep, got %v", err)
	}
}

func TestCyclerPublishes(t *testing.T) {
	c, err := NewCycler(0, 255, 10, time.Millisecond)
	if err != nil {
		t.Fatal(err)
	}

	if _, ok := c.Latest(); ok {
		t.Fatal("expected no value before start")
	}

	c.Start(context.Background())
	defer c.Stop()

	waitFor(t, func() bool {
		v, ok := c.Latest()
		return ok && v.B >= 30
	})
	if !c.Running() {
		t.Error("expected running")
	}
}

func TestCyclerStopKeepsLastValue(t *testing.T) {
	c, _ := NewCycler(0, 255, 10, time.Millisecond)
	c.Start(context.Background())
	waitFor(t, func() bool { _, ok := c.Latest(); return ok })

	done := c.Done()
	c.Stop()

	select {
	case <-done:
	case <-time.After(2 * time.Second):
		t.Fatal("task did not exit after stop")
	}

	last, ok := c.Latest()
	if !ok {
		t.Fatal("expected last value to survive stop")
	}
	time.Sleep(5 * time.Millisecond)
	if again, _ := c.Latest(); again != last {
		t.Errorf("value changed after stop: %v -> %v", last, again)
	}
	if c.Running() {
		t.Error("expected stopped")
	}
}

func TestCyclerRestartsFromBeginning(t *testing.T) {
	c, _ := NewCycler(0, 255, 10, time.Hour)

	c.Start(context.Background())
	waitFor(t, func() bool { _, ok := c.Latest(); return ok })
	c.Stop()
	<-c.Done()

	// a long interval means only the first ramp value gets published
	c.slot.Store(&particle.RGB{R: 1, G: 2, B: 3})
	c.Start(context.Background())
	defer c.Stop()

	waitFor(t, func() bool {
		v, _ := c.Latest()
		return v == particle.RGB{}
	})
}

func TestCyclerToggle(t *testing.T) {
	c, _ := NewCycler(0, 255, 10, time.Millisecond)
	ctx := context.Background()

	if !c.Toggle(ctx) {
		t.Error("expected first toggle to start")
	}
	if c.Toggle(ctx) {
		t.Error("expected second toggle to stop")
	}
	<-c.Done()
}

func TestCyclerStopsWithContext(t *testing.T) {
	c, _ := NewCycler(0, 255, 10, time.Millisecond)
	ctx, cancel := context.WithCancel(context.Background())

	c.Start(ctx)
	done := c.Done()
	cancel()

	select {
	case <-done:
	case <-time.After(2 * time.Second):
		t.Fatal("task ignored context cancellation")
	}
}
