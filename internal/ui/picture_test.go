package ui

import (
	"image"
	"image/color"
	"strings"
	"testing"

	colorful "github.com/lucasb-eyer/go-colorful"
)

func TestFitCells(t *testing.T) {
	tests := []struct {
		name         string
		srcW, srcH   int
		cols, rows   int
		wantW, wantH int
	}{
		{name: "landscape width bound", srcW: 200, srcH: 100, cols: 80, rows: 40, wantW: 80, wantH: 40},
		{name: "portrait height bound", srcW: 100, srcH: 200, cols: 80, rows: 20, wantW: 20, wantH: 40},
		{name: "odd height rounds down", srcW: 100, srcH: 33, cols: 100, rows: 40, wantW: 100, wantH: 32},
		{name: "tiny area", srcW: 100, srcH: 100, cols: 1, rows: 1, wantW: 1, wantH: 2},
		{name: "empty image", srcW: 0, srcH: 10, cols: 80, rows: 24},
		{name: "no rows", srcW: 10, srcH: 10, cols: 80, rows: 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w, h := fitCells(tt.srcW, tt.srcH, tt.cols, tt.rows)
			if w != tt.wantW || h != tt.wantH {
				t.Fatalf("fitCells = %dx%d, want %dx%d", w, h, tt.wantW, tt.wantH)
			}
		})
	}
}

func checker(w, h int) image.Image {
	img := image.NewRGBA(image.Rect(0, 0, w, h))
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			if y < h/2 {
				img.Set(x, y, color.RGBA{R: 255, A: 255})
			} else {
				img.Set(x, y, color.RGBA{B: 255, A: 255})
			}
		}
	}
	return img
}

func TestScaleAndRender(t *testing.T) {
	bg := colorful.Color{}
	px := scale(checker(8, 4), 4, 1, bg)
	if px.w != 4 || px.h != 2 {
		t.Fatalf("scale = %dx%d, want 4x2", px.w, px.h)
	}

	out := px.render(1, bg)
	if lines := strings.Split(out, "\n"); len(lines) != 1 {
		t.Fatalf("render produced %d lines, want 1", len(lines))
	}
	if got := strings.Count(out, upperHalf); got != 4 {
		t.Fatalf("render drew %d cells, want 4", got)
	}
	if !strings.Contains(out, "\x1b[38;2;255;0;0m") || !strings.Contains(out, "\x1b[48;2;0;0;255m") {
		t.Fatalf("render = %q, want red over blue", out)
	}

	faded := px.render(0, bg)
	if strings.Contains(faded, "255") {
		t.Fatalf("render at alpha 0 = %q, want only background", faded)
	}
}

func TestScaleTransparentUsesBackground(t *testing.T) {
	bg, err := colorful.Hex("#131a24")
	if err != nil {
		t.Fatalf("Hex: %v", err)
	}
	img := image.NewNRGBA(image.Rect(0, 0, 2, 2))
	px := scale(img, 2, 1, bg)
	for _, c := range px.cells {
		if c.Hex() != bg.Hex() {
			t.Fatalf("transparent pixel = %s, want %s", c.Hex(), bg.Hex())
		}
	}
}

func TestPictureCacheReusesFrames(t *testing.T) {
	cache := &pictureCache{}
	img := checker(8, 4)

	first := cache.frameFor(img, 1, 4, 1, "#000000", 1)
	cache.frame = "sentinel"
	if got := cache.frameFor(img, 1, 4, 1, "#000000", 0.999); got != "sentinel" {
		t.Fatalf("frameFor re-rendered for the same quantized alpha")
	}
	if got := cache.frameFor(img, 2, 4, 1, "#000000", 1); got != first {
		t.Fatalf("frameFor after new image = %q, want a fresh render", got)
	}
	if cache.frameFor(nil, 3, 4, 1, "#000000", 1) != "" {
		t.Fatalf("frameFor(nil) should be empty")
	}
}
