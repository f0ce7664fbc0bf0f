package raster

import "testing"

func TestCannyEdges_UniformPlane(t *testing.T) {
	gray := make([]uint8, 32*32)
	for i := range gray {
		gray[i] = 128
	}
	if got := CannyEdges(gray, 32, 32, 50, 150).Count(); got != 0 {
		t.Errorf("expected no edges on uniform plane, got %d", got)
	}
}

func TestCannyEdges_VerticalStep(t *testing.T) {
	const w, h = 32, 32
	gray := make([]uint8, w*h)
	for y := 0; y < h; y++ {
		for x := 16; x < w; x++ {
			gray[y*w+x] = 255
		}
	}

	edges := CannyEdges(gray, w, h, 50, 150)
	if edges.Count() == 0 {
		t.Fatal("expected edges at the brightness step")
	}
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			if edges.Bits[y*w+x] && (x < 10 || x > 22) {
				t.Fatalf("edge pixel (%d,%d) far from the step", x, y)
			}
		}
	}
}

func TestCannyEdges_TinyPlane(t *testing.T) {
	if got := CannyEdges([]uint8{0, 255}, 2, 1, 50, 150).Count(); got != 0 {
		t.Errorf("expected no edges below minimum size, got %d", got)
	}
}

func TestClose3x3_BridgesGap(t *testing.T) {
	m := NewMask(12, 12)
	m.Bits[5*12+5] = true
	m.Bits[5*12+7] = true

	closed := m.Close3x3()
	if !closed.Bits[5*12+6] {
		t.Error("expected closing to bridge the one-pixel gap")
	}
	if !closed.Bits[5*12+5] || !closed.Bits[5*12+7] {
		t.Error("expected closing to keep the original pixels")
	}
	if closed.Bits[0] {
		t.Error("expected far pixels to stay clear")
	}
}
