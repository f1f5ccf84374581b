package ui

import (
	"image"
	"strconv"
	"strings"

	colorful "github.com/lucasb-eyer/go-colorful"
)

// upperHalf draws two vertical pixels per cell: foreground on top,
// background underneath.
const upperHalf = "▀"

// fadeSteps is how many distinct opacity levels a picture frame is cached at.
const fadeSteps = 32

// pixels is an image scaled to the terminal, two pixel rows per text row.
type pixels struct {
	w, h  int
	cells []colorful.Color
}

func (p pixels) at(x, y int) colorful.Color {
	return p.cells[y*p.w+x]
}

// fitCells returns the pixel size that fits a srcW×srcH image into cols×rows
// cells without distorting it. Height is always even.
func fitCells(srcW, srcH, cols, rows int) (w, h int) {
	maxW, maxH := cols, rows*2
	if srcW <= 0 || srcH <= 0 || maxW <= 0 || maxH < 2 {
		return 0, 0
	}
	w = maxW
	h = srcH * maxW / srcW
	if h > maxH {
		h = maxH
		w = srcW * maxH / srcH
	}
	h -= h % 2
	return max(w, 1), max(h, 2)
}

// scale samples img with nearest neighbour. Transparent pixels become bg.
func scale(img image.Image, cols, rows int, bg colorful.Color) pixels {
	if img == nil {
		return pixels{}
	}
	b := img.Bounds()
	w, h := fitCells(b.Dx(), b.Dy(), cols, rows)
	if w == 0 || h == 0 {
		return pixels{}
	}
	out := pixels{w: w, h: h, cells: make([]colorful.Color, w*h)}
	for y := 0; y < h; y++ {
		sy := b.Min.Y + (2*y+1)*b.Dy()/(2*h)
		for x := 0; x < w; x++ {
			sx := b.Min.X + (2*x+1)*b.Dx()/(2*w)
			c, ok := colorful.MakeColor(img.At(sx, sy))
			if !ok {
				c = bg
			}
			out.cells[y*w+x] = c
		}
	}
	return out
}

// render draws the pixels blended toward bg by alpha using 24-bit colour
// escapes. Each row ends with a reset.
func (p pixels) render(alpha float64, bg colorful.Color) string {
	if p.w == 0 || p.h == 0 {
		return ""
	}
	alpha = clamp01(alpha)
	var b strings.Builder
	b.Grow(p.w * p.h / 2 * 40)
	for y := 0; y+1 < p.h; y += 2 {
		if y > 0 {
			b.WriteByte('\n')
		}
		for x := 0; x < p.w; x++ {
			top := bg.BlendRgb(p.at(x, y), alpha).Clamped()
			bottom := bg.BlendRgb(p.at(x, y+1), alpha).Clamped()
			writeSGR(&b, 38, top)
			writeSGR(&b, 48, bottom)
			b.WriteString(upperHalf)
		}
		b.WriteString("\x1b[0m")
	}
	return b.String()
}

func writeSGR(b *strings.Builder, code int, c colorful.Color) {
	r, g, bl := c.RGB255()
	b.WriteString("\x1b[")
	b.WriteString(strconv.Itoa(code))
	b.WriteString(";2;")
	b.WriteString(strconv.Itoa(int(r)))
	b.WriteByte(';')
	b.WriteString(strconv.Itoa(int(g)))
	b.WriteByte(';')
	b.WriteString(strconv.Itoa(int(bl)))
	b.WriteByte('m')
}

// pictureCache keeps the scaled pixels and the last rendered frame so a
// steady picture is not rebuilt every tick.
type pictureCache struct {
	seq, cols, rows int
	bg              string
	px              pixels

	alpha float64
	frame string
	valid bool
}

func (c *pictureCache) frameFor(img image.Image, seq, cols, rows int, bgHex string, alpha float64) string {
	bg, err := colorful.Hex(bgHex)
	if err != nil {
		bg = colorful.Color{}
	}
	if seq != c.seq || cols != c.cols || rows != c.rows || bgHex != c.bg {
		c.seq, c.cols, c.rows, c.bg = seq, cols, rows, bgHex
		c.px = scale(img, cols, rows, bg)
		c.valid = false
	}
	alpha = quantize(alpha, fadeSteps)
	if c.valid && alpha == c.alpha {
		return c.frame
	}
	c.alpha = alpha
	c.frame = c.px.render(alpha, bg)
	c.valid = true
	return c.frame
}
