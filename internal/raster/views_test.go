package raster

import "testing"

func uniformImage(w, h int, r, g, b uint8) *Image {
	im := New(w, h)
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			im.Set(x, y, r, g, b)
		}
	}
	return im
}

func TestNewColorViews_KnownColors(t *testing.T) {
	tests := []struct {
		name    string
		r, g, b uint8
		hue     uint8
		sat     uint8
		val     uint8
		gray    uint8
	}{
		{"pure green", 0, 255, 0, 60, 255, 255, 150},
		{"pure yellow", 255, 255, 0, 30, 255, 255, 226},
		{"pure red", 255, 0, 0, 0, 255, 255, 76},
		{"black", 0, 0, 0, 0, 0, 0, 0},
		{"white", 255, 255, 255, 0, 0, 255, 255},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			v := NewColorViews(uniformImage(4, 4, tt.r, tt.g, tt.b))
			if v.Hue[0] != tt.hue {
				t.Errorf("hue: expected %d, got %d", tt.hue, v.Hue[0])
			}
			if v.Sat[0] != tt.sat {
				t.Errorf("sat: expected %d, got %d", tt.sat, v.Sat[0])
			}
			if v.Val[0] != tt.val {
				t.Errorf("val: expected %d, got %d", tt.val, v.Val[0])
			}
			if v.Gray[0] != tt.gray {
				t.Errorf("gray: expected %d, got %d", tt.gray, v.Gray[0])
			}
		})
	}
}

func TestNewColorViews_ChannelMeans(t *testing.T) {
	im := New(2, 1)
	im.Set(0, 0, 10, 20, 30)
	im.Set(1, 0, 30, 40, 50)

	v := NewColorViews(im)
	if v.MeanR != 20 || v.MeanG != 30 || v.MeanB != 40 {
		t.Errorf("unexpected channel means: %v %v %v", v.MeanR, v.MeanG, v.MeanB)
	}
	if v.W != 2 || v.H != 1 {
		t.Errorf("unexpected dimensions: %dx%d", v.W, v.H)
	}
}
