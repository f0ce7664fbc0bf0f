package raster

import (
	"math"
	"testing"
)

func TestBoxFilter(t *testing.T) {
	t.Run("window of one is identity", func(t *testing.T) {
		src := []float64{1, 2, 3, 4, 5, 6}
		out := BoxFilter(src, 3, 2, 1)
		for i := range src {
			if out[i] != src[i] {
				t.Fatalf("pixel %d: expected %v, got %v", i, src[i], out[i])
			}
		}
	})

	t.Run("constant plane stays constant", func(t *testing.T) {
		src := make([]float64, 8*8)
		for i := range src {
			src[i] = 42
		}
		out := BoxFilter(src, 8, 8, 5)
		for i, o := range out {
			if math.Abs(o-42) > 1e-9 {
				t.Fatalf("pixel %d: expected 42, got %v", i, o)
			}
		}
	})

	t.Run("clipped windows normalize by actual count", func(t *testing.T) {
		src := []float64{0, 3, 6}
		out := BoxFilter(src, 3, 1, 3)
		want := []float64{1.5, 3, 4.5}
		for i := range want {
			if math.Abs(out[i]-want[i]) > 1e-9 {
				t.Errorf("pixel %d: expected %v, got %v", i, want[i], out[i])
			}
		}
	})
}

func TestLocalVariance(t *testing.T) {
	uniform := make([]uint8, 10*10)
	for i := range uniform {
		uniform[i] = 99
	}
	for i, v := range LocalVariance(uniform, 10, 10, 5) {
		if v != 0 {
			t.Fatalf("pixel %d: expected zero variance on uniform plane, got %v", i, v)
		}
	}

	// vertical step: variance concentrates at the split
	split := make([]uint8, 10*10)
	for y := 0; y < 10; y++ {
		for x := 5; x < 10; x++ {
			split[y*10+x] = 255
		}
	}
	std := LocalStdDev(split, 10, 10, 4)
	if std[4] <= std[0] {
		t.Errorf("expected higher local std at the split (%v) than far from it (%v)", std[4], std[0])
	}
}
