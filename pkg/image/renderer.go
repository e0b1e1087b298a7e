// Package image renders decoded images to terminal escape sequences using
// the best graphics protocol the terminal supports, with a halfblock
// fallback that works anywhere true color does.
package image

import (
	"crypto/sha256"
	"encoding/binary"
	"fmt"
	"image"
	_ "image/gif"
	_ "image/jpeg"
	_ "image/png"
	"os"
	"strings"

	"github.com/blacktop/go-termimg"
	"github.com/disintegration/imaging"
	xdraw "golang.org/x/image/draw"

	"gitlab.com/tinyland/lab/tile-pulse/pkg/terminal"
)

// Renderer turns an image.Image into a string of escape sequences sized in
// terminal cells. Kitty, iTerm2, and Sixel output is delegated to
// go-termimg; everything else falls back to Unicode halfblocks.
type Renderer struct {
	protocol terminal.GraphicsProtocol
	cellW    int
	cellH    int
	cache    *renderCache
}

// NewRenderer builds a Renderer for the given terminal. The override string
// follows the config convention: "" or "auto" means detect, otherwise one
// of kitty, iterm2, sixel, halfblocks, none.
func NewRenderer(term terminal.Terminal, override string) *Renderer {
	proto := terminal.SelectProtocol(term)
	if override != "" && override != "auto" {
		proto = terminal.SelectProtocolWithOverride(term, override)
	}

	cellW, cellH := DetectCellSize()

	return &Renderer{
		protocol: proto,
		cellW:    cellW,
		cellH:    cellH,
		cache:    newRenderCache(8 << 20),
	}
}

// Protocol returns the protocol this renderer emits.
func (r *Renderer) Protocol() terminal.GraphicsProtocol {
	return r.protocol
}

// Render draws img into an area of cols x rows terminal cells, scaling down
// as needed. The result is cached by image content and footprint, so
// re-rendering an unchanged image is a map lookup.
func (r *Renderer) Render(img image.Image, cols, rows int) (string, error) {
	if img == nil {
		return "", fmt.Errorf("render: nil image")
	}
	if r.protocol == terminal.ProtocolNone {
		return "", fmt.Errorf("render: image output disabled")
	}
	if cols < 1 || rows < 1 {
		return "", fmt.Errorf("render: target %dx%d cells too small", cols, rows)
	}

	key := renderKey{
		protocol: r.protocol.String(),
		cols:     cols,
		rows:     rows,
		sum:      contentSum(img),
	}
	if out, ok := r.cache.get(key); ok {
		return out, nil
	}

	fitted := FitCells(img, cols, rows, r.cellW, r.cellH)

	var out string
	var err error
	switch r.protocol {
	case terminal.ProtocolKitty:
		out, err = renderTermimg(fitted, termimg.Kitty, cols, rows)
	case terminal.ProtocolITerm2:
		out, err = renderTermimg(fitted, termimg.ITerm2, cols, rows)
	case terminal.ProtocolSixel:
		out, err = renderTermimg(fitted, termimg.Sixel, cols, rows)
	default:
		out, err = renderHalfblocks(fitted, cols, rows)
	}
	if err != nil {
		return "", fmt.Errorf("render %s: %w", r.protocol, err)
	}

	r.cache.put(key, out)
	return out, nil
}

// RenderFile decodes an image file and renders it.
func (r *Renderer) RenderFile(path string, cols, rows int) (string, error) {
	f, err := os.Open(path)
	if err != nil {
		return "", fmt.Errorf("open image: %w", err)
	}
	defer f.Close()

	img, _, err := image.Decode(f)
	if err != nil {
		return "", fmt.Errorf("decode %s: %w", path, err)
	}
	return r.Render(img, cols, rows)
}

func renderTermimg(img image.Image, proto termimg.Protocol, cols, rows int) (string, error) {
	ti := termimg.New(img)
	if ti == nil {
		return "", fmt.Errorf("go-termimg rejected image")
	}
	ti.Protocol(proto).Size(cols, rows).Scale(termimg.ScaleFit)
	return ti.Render()
}

// renderHalfblocks emits one U+2580 upper half block per cell, packing two
// vertical pixels into each: top pixel as foreground, bottom as background.
// Needs only 24-bit color support, so it works over SSH and in multiplexers.
func renderHalfblocks(img image.Image, cols, rows int) (string, error) {
	b := img.Bounds()
	if b.Dx() <= 0 || b.Dy() <= 0 {
		return "", nil
	}

	// Scale to the exact pixel grid the halfblocks address: one column per
	// cell, two rows of pixels per cell.
	cols, rows = CellGrid(b.Dx(), b.Dy(), 1, 2, cols, rows)
	px := image.NewNRGBA(image.Rect(0, 0, cols, rows*2))
	xdraw.CatmullRom.Scale(px, px.Bounds(), img, b, xdraw.Over, nil)

	var sb strings.Builder
	sb.Grow(cols * rows * 32)

	for y := 0; y < rows*2; y += 2 {
		if y > 0 {
			sb.WriteString("\x1b[0m\n")
		}
		for x := 0; x < cols; x++ {
			top := px.NRGBAAt(x, y)
			bot := px.NRGBAAt(x, y+1)

			switch {
			case top.A == 0 && bot.A == 0:
				sb.WriteString("\x1b[0m ")
			case top.A == 0:
				fmt.Fprintf(&sb, "\x1b[38;2;%d;%d;%dm\x1b[49m▄", bot.R, bot.G, bot.B)
			case bot.A == 0:
				fmt.Fprintf(&sb, "\x1b[38;2;%d;%d;%dm\x1b[49m▀", top.R, top.G, top.B)
			default:
				fmt.Fprintf(&sb, "\x1b[38;2;%d;%d;%dm\x1b[48;2;%d;%d;%dm▀",
					top.R, top.G, top.B, bot.R, bot.G, bot.B)
			}
		}
	}
	sb.WriteString("\x1b[0m")

	return sb.String(), nil
}

// contentSum hashes the image content for cache keying. Small images hash
// every pixel; larger ones hash a 32x32 sample grid plus the dimensions,
// which is collision-resistant enough for a per-process cache.
func contentSum(img image.Image) [32]byte {
	// Normalizing through NRGBA keeps the sum independent of the source
	// pixel format.
	nrgba := imaging.Clone(img)
	b := nrgba.Bounds()
	w, h := b.Dx(), b.Dy()

	hasher := sha256.New()
	var buf [8]byte
	binary.LittleEndian.PutUint32(buf[:4], uint32(w))
	binary.LittleEndian.PutUint32(buf[4:], uint32(h))
	hasher.Write(buf[:])

	if w*h <= 64*64 {
		hasher.Write(nrgba.Pix)
	} else {
		for sy := 0; sy < 32; sy++ {
			for sx := 0; sx < 32; sx++ {
				x := sx * w / 32
				y := sy * h / 32
				c := nrgba.NRGBAAt(x, y)
				hasher.Write([]byte{c.R, c.G, c.B, c.A})
			}
		}
	}

	var sum [32]byte
	copy(sum[:], hasher.Sum(nil))
	return sum
}
