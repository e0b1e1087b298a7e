package image

import (
	"image"
	"image/color"
	"image/draw"
	"strings"
	"testing"

	"gitlab.com/tinyland/lab/tile-pulse/pkg/terminal"
)

func solidImage(w, h int, c color.Color) *image.NRGBA {
	img := image.NewNRGBA(image.Rect(0, 0, w, h))
	draw.Draw(img, img.Bounds(), &image.Uniform{c}, image.Point{}, draw.Src)
	return img
}

func TestFitCellsNoUpscale(t *testing.T) {
	img := solidImage(10, 10, color.NRGBA{R: 255, A: 255})

	got := FitCells(img, 10, 10, 8, 16)
	if got != image.Image(img) {
		t.Error("small image should be returned unchanged")
	}
}

func TestFitCellsDownscale(t *testing.T) {
	img := solidImage(800, 400, color.NRGBA{G: 255, A: 255})

	got := FitCells(img, 10, 5, 8, 16)
	b := got.Bounds()
	if b.Dx() > 80 || b.Dy() > 80 {
		t.Errorf("resized to %dx%d, want within 80x80", b.Dx(), b.Dy())
	}

	// 2:1 source aspect should survive the resize.
	ratio := float64(b.Dx()) / float64(b.Dy())
	if ratio < 1.8 || ratio > 2.2 {
		t.Errorf("aspect ratio %.2f, want ~2.0", ratio)
	}
}

func TestFitCellsNil(t *testing.T) {
	if got := FitCells(nil, 10, 10, 8, 16); got != nil {
		t.Errorf("FitCells(nil) = %v, want nil", got)
	}
}

func TestCellGrid(t *testing.T) {
	tests := []struct {
		name               string
		imgW, imgH         int
		maxCols, maxRows   int
		wantCols, wantRows int
	}{
		{"fits native", 32, 32, 20, 10, 4, 2},
		{"width limited", 1600, 160, 20, 20, 20, 1},
		{"height limited", 160, 1600, 20, 5, 1, 5},
		{"degenerate source", 0, 0, 20, 20, 1, 1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cols, rows := CellGrid(tt.imgW, tt.imgH, 8, 16, tt.maxCols, tt.maxRows)
			if cols != tt.wantCols || rows != tt.wantRows {
				t.Errorf("CellGrid = %dx%d, want %dx%d", cols, rows, tt.wantCols, tt.wantRows)
			}
			if cols > tt.maxCols || rows > tt.maxRows {
				t.Errorf("CellGrid = %dx%d exceeds max %dx%d", cols, rows, tt.maxCols, tt.maxRows)
			}
		})
	}
}

func TestHalfblocksSolid(t *testing.T) {
	img := solidImage(4, 4, color.NRGBA{R: 10, G: 20, B: 30, A: 255})

	out, err := renderHalfblocks(img, 4, 2)
	if err != nil {
		t.Fatalf("renderHalfblocks: %v", err)
	}

	lines := strings.Split(out, "\n")
	if len(lines) != 2 {
		t.Fatalf("got %d lines, want 2", len(lines))
	}
	if !strings.Contains(out, "▀") {
		t.Error("output missing upper half block")
	}
	if !strings.Contains(out, "\x1b[38;2;10;20;30m") {
		t.Error("output missing foreground color sequence")
	}
	if !strings.HasSuffix(out, "\x1b[0m") {
		t.Error("output does not end with a reset")
	}
}

func TestHalfblocksTransparent(t *testing.T) {
	img := image.NewNRGBA(image.Rect(0, 0, 2, 4))

	out, err := renderHalfblocks(img, 2, 2)
	if err != nil {
		t.Fatalf("renderHalfblocks: %v", err)
	}
	if strings.Contains(out, "▀") || strings.Contains(out, "▄") {
		t.Error("fully transparent image should render as blanks")
	}
}

func TestRenderDisabled(t *testing.T) {
	r := &Renderer{protocol: terminal.ProtocolNone, cache: newRenderCache(0)}

	if _, err := r.Render(solidImage(2, 2, color.White), 1, 1); err == nil {
		t.Error("expected error with protocol none")
	}
}

func TestRenderCachesResult(t *testing.T) {
	r := &Renderer{
		protocol: terminal.ProtocolHalfblocks,
		cellW:    8,
		cellH:    16,
		cache:    newRenderCache(1 << 20),
	}
	img := solidImage(64, 64, color.NRGBA{B: 200, A: 255})

	first, err := r.Render(img, 4, 2)
	if err != nil {
		t.Fatalf("first render: %v", err)
	}
	second, err := r.Render(img, 4, 2)
	if err != nil {
		t.Fatalf("second render: %v", err)
	}
	if first != second {
		t.Error("repeat render differs from cached result")
	}
	if r.cache.len() != 1 {
		t.Errorf("cache has %d entries, want 1", r.cache.len())
	}
}

func TestRenderNilImage(t *testing.T) {
	r := &Renderer{protocol: terminal.ProtocolHalfblocks, cache: newRenderCache(0)}
	if _, err := r.Render(nil, 4, 2); err == nil {
		t.Error("expected error for nil image")
	}
}

func TestContentSum(t *testing.T) {
	red := solidImage(8, 8, color.NRGBA{R: 255, A: 255})
	red2 := solidImage(8, 8, color.NRGBA{R: 255, A: 255})
	blue := solidImage(8, 8, color.NRGBA{B: 255, A: 255})

	if contentSum(red) != contentSum(red2) {
		t.Error("identical images hash differently")
	}
	if contentSum(red) == contentSum(blue) {
		t.Error("different images hash identically")
	}

	// Sampled path for large images must still be deterministic.
	big := solidImage(200, 200, color.NRGBA{G: 128, A: 255})
	if contentSum(big) != contentSum(big) {
		t.Error("large image hash is not deterministic")
	}
}

func TestCacheEviction(t *testing.T) {
	c := newRenderCache(100)

	k1 := renderKey{protocol: "halfblocks", cols: 1, rows: 1}
	k2 := renderKey{protocol: "halfblocks", cols: 2, rows: 2}

	c.put(k1, strings.Repeat("a", 80))
	c.put(k2, strings.Repeat("b", 80))

	if _, ok := c.get(k1); ok {
		t.Error("oldest entry should have been evicted")
	}
	if out, ok := c.get(k2); !ok || out != strings.Repeat("b", 80) {
		t.Error("newest entry missing after eviction")
	}
}
