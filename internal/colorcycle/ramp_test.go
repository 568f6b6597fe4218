package colorcycle

import (
	"errors"
	"testing"

	"github.com/san-kum/particlesim/internal/particle"
)

func TestNewRampErrors(t *testing.T) {
	tests := []struct {
		low, high, step int
		want            error
	}{
		{0, 255, 0, ErrZeroStep},
		{0, 255, -10, ErrEmptyRamp},
		{100, 100, 10, ErrEmptyRamp},
		{-1, 255, 10, ErrChannelRange},
		{0, 300, 10, ErrChannelRange},
	}

	for _, tt := range tests {
		_, err := NewRamp(tt.low, tt.high, tt.step)
		if !errors.Is(err, tt.want) {
			t.Errorf("(%d,%d,%d): expected %v, got %v", tt.low, tt.high, tt.step, tt.want, err)
		}
	}
}

func TestRampFirstValues(t *testing.T) {
	r, err := NewRamp(0, 255, 10)
	if err != nil {
		t.Fatal(err)
	}

	want := []particle.RGB{
		{R: 0, G: 0, B: 0}, {R: 0, G: 0, B: 10}, {R: 0, G: 0, B: 20}, {R: 0, G: 0, B: 30}, {R: 0, G: 0, B: 40},
		{R: 0, G: 0, B: 50}, {R: 0, G: 0, B: 60}, {R: 0, G: 0, B: 70}, {R: 0, G: 0, B: 80}, {R: 0, G: 0, B: 90},
		{R: 0, G: 0, B: 100}, {R: 0, G: 0, B: 110}, {R: 0, G: 0, B: 120}, {R: 0, G: 0, B: 130}, {R: 0, G: 0, B: 140},
		{R: 0, G: 0, B: 150}, {R: 0, G: 0, B: 160}, {R: 0, G: 0, B: 170}, {R: 0, G: 0, B: 180}, {R: 0, G: 0, B: 190},
		{R: 0, G: 0, B: 200}, {R: 0, G: 0, B: 210}, {R: 0, G: 0, B: 220}, {R: 0, G: 0, B: 230}, {R: 0, G: 0, B: 240},
		{R: 0, G: 0, B: 250}, {R: 0, G: 10, B: 0}, {R: 0, G: 10, B: 10},
	}

	for i, w := range want {
		if got := r.Next(); got != w {
			t.Errorf("sample %d: expected %v, got %v", i+1, w, got)
		}
	}
}

func TestRampSampleIndices(t *testing.T) {
	r, err := NewRamp(0, 255, 10)
	if err != nil {
		t.Fatal(err)
	}

	// 26 ascending values per channel, 26 descending (245..5 then -5 pinned to 0)
	checks := map[int]particle.RGB{
		25:    {R: 0, G: 0, B: 250},
		26:    {R: 0, G: 10, B: 0},
		676:   {R: 10, G: 0, B: 0},
		17575: {R: 250, G: 250, B: 250},
		17576: {R: 245, G: 245, B: 245},
		17577: {R: 245, G: 245, B: 235},
		17601: {R: 245, G: 245, B: 0},
		17602: {R: 245, G: 235, B: 245},
		35151: {R: 0, G: 0, B: 0},
		35152: {R: 0, G: 0, B: 0},
		35153: {R: 0, G: 0, B: 10},
	}

	if r.Period() != 2*26*26*26 {
		t.Fatalf("expected period %d, got %d", 2*26*26*26, r.Period())
	}

	for i := 0; i <= 35153; i++ {
		got := r.Next()
		if w, ok := checks[i]; ok && got != w {
			t.Errorf("sample index %d: expected %v, got %v", i, w, got)
		}
	}
}

func TestRampReset(t *testing.T) {
	r, _ := NewRamp(50, 100, 25)
	first := r.Next()
	r.Next()
	r.Next()

	r.Reset()

	if got := r.Next(); got != first {
		t.Errorf("expected %v after reset, got %v", first, got)
	}
}

func TestRampSmallGrid(t *testing.T) {
	r, _ := NewRamp(0, 2, 1)

	// ascending {0,1}, descending {1,0}
	want := []particle.RGB{
		{R: 0, G: 0, B: 0}, {R: 0, G: 0, B: 1}, {R: 0, G: 1, B: 0}, {R: 0, G: 1, B: 1},
		{R: 1, G: 0, B: 0}, {R: 1, G: 0, B: 1}, {R: 1, G: 1, B: 0}, {R: 1, G: 1, B: 1},
		{R: 1, G: 1, B: 1}, {R: 1, G: 1, B: 0}, {R: 1, G: 0, B: 1}, {R: 1, G: 0, B: 0},
		{R: 0, G: 1, B: 1}, {R: 0, G: 1, B: 0}, {R: 0, G: 0, B: 1}, {R: 0, G: 0, B: 0},
		{R: 0, G: 0, B: 0},
	}
	for i, w := range want {
		if got := r.Next(); got != w {
			t.Errorf("sample %d: expected %v, got %v", i, w, got)
		}
	}
}
