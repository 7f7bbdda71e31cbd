package portfolio

import (
	"image"
	"image/color"
	"strings"

	"golang.org/x/image/draw"
	"golang.org/x/image/font"
	"golang.org/x/image/font/opentype"
	"golang.org/x/image/math/fixed"
)

func hex(rgb uint32) color.RGBA {
	return color.RGBA{R: uint8(rgb >> 16), G: uint8(rgb >> 8), B: uint8(rgb), A: 0xff}
}

// withAlpha returns c premultiplied to alpha a.
func withAlpha(c color.RGBA, a uint8) color.RGBA {
	return color.RGBA{
		R: uint8(uint32(c.R) * uint32(a) / 0xff),
		G: uint8(uint32(c.G) * uint32(a) / 0xff),
		B: uint8(uint32(c.B) * uint32(a) / 0xff),
		A: a,
	}
}

// circle is an alpha mask that is opaque inside a disc
type circle struct {
	p image.Point
	r int
}

func (c *circle) ColorModel() color.Model { return color.AlphaModel }

func (c *circle) Bounds() image.Rectangle {
	return image.Rect(c.p.X-c.r, c.p.Y-c.r, c.p.X+c.r, c.p.Y+c.r)
}

func (c *circle) At(x, y int) color.Color {
	xx, yy, rr := float64(x-c.p.X)+0.5, float64(y-c.p.Y)+0.5, float64(c.r)
	if xx*xx+yy*yy < rr*rr {
		return color.Alpha{A: 255}
	}
	return color.Alpha{A: 0}
}

// roundRect is an alpha mask for a rectangle with rounded corners
type roundRect struct {
	r      image.Rectangle
	radius int
}

func (m *roundRect) ColorModel() color.Model { return color.AlphaModel }

func (m *roundRect) Bounds() image.Rectangle { return m.r }

func (m *roundRect) At(x, y int) color.Color {
	if !(image.Point{X: x, Y: y}).In(m.r) {
		return color.Alpha{A: 0}
	}
	rad := m.radius
	if limit := min(m.r.Dx(), m.r.Dy()) / 2; rad > limit {
		rad = limit
	}
	cx, cy := x, y
	switch {
	case x < m.r.Min.X+rad:
		cx = m.r.Min.X + rad
	case x >= m.r.Max.X-rad:
		cx = m.r.Max.X - rad - 1
	}
	switch {
	case y < m.r.Min.Y+rad:
		cy = m.r.Min.Y + rad
	case y >= m.r.Max.Y-rad:
		cy = m.r.Max.Y - rad - 1
	}
	dx, dy := x-cx, y-cy
	if dx*dx+dy*dy <= rad*rad {
		return color.Alpha{A: 255}
	}
	return color.Alpha{A: 0}
}

type faceKey struct {
	bold bool
	size int
}

// canvas draws in layout units that are multiplied by scale
type canvas struct {
	img   *image.RGBA
	scale int
	fonts *Fonts
	faces map[faceKey]font.Face
}

func newCanvas(width, height, scale int, fonts *Fonts) *canvas {
	return &canvas{
		img:   image.NewRGBA(image.Rect(0, 0, width*scale, height*scale)),
		scale: scale,
		fonts: fonts,
		faces: make(map[faceKey]font.Face),
	}
}

func (c *canvas) close() {
	for _, f := range c.faces {
		_ = f.Close()
	}
}

func (c *canvas) px(v int) int { return v * c.scale }

func (c *canvas) rect(x0, y0, x1, y1 int) image.Rectangle {
	return image.Rect(c.px(x0), c.px(y0), c.px(x1), c.px(y1))
}

func (c *canvas) fill(r image.Rectangle, col color.Color) {
	draw.Draw(c.img, r, image.NewUniform(col), image.Point{}, draw.Over)
}

func (c *canvas) fillRound(r image.Rectangle, radius int, col color.Color) {
	draw.DrawMask(c.img, r, image.NewUniform(col), image.Point{}, &roundRect{r: r, radius: c.px(radius)}, r.Min, draw.Over)
}

func (c *canvas) fillCircle(cx, cy, radius int, col color.Color) {
	m := &circle{p: image.Pt(c.px(cx), c.px(cy)), r: c.px(radius)}
	draw.DrawMask(c.img, m.Bounds(), image.NewUniform(col), image.Point{}, m, m.Bounds().Min, draw.Over)
}

// drawPhoto scales src into a disc of the given radius.
func (c *canvas) drawPhoto(src image.Image, cx, cy, radius int) {
	m := &circle{p: image.Pt(c.px(cx), c.px(cy)), r: c.px(radius)}
	b := m.Bounds()
	scaled := image.NewRGBA(image.Rect(0, 0, b.Dx(), b.Dy()))
	draw.CatmullRom.Scale(scaled, scaled.Bounds(), src, cropSquare(src.Bounds()), draw.Src, nil)
	draw.DrawMask(c.img, b, scaled, image.Point{}, m, b.Min, draw.Over)
}

func cropSquare(r image.Rectangle) image.Rectangle {
	side := min(r.Dx(), r.Dy())
	x0 := r.Min.X + (r.Dx()-side)/2
	y0 := r.Min.Y + (r.Dy()-side)/2
	return image.Rect(x0, y0, x0+side, y0+side)
}

// gradient paints a diagonal blend across stops over r.
func (c *canvas) gradient(r image.Rectangle, stops ...color.RGBA) {
	span := float64(r.Dx() + r.Dy())
	for y := r.Min.Y; y < r.Max.Y; y++ {
		for x := r.Min.X; x < r.Max.X; x++ {
			t := float64(x-r.Min.X+y-r.Min.Y) / span
			c.img.SetRGBA(x, y, blend(stops, t))
		}
	}
}

func blend(stops []color.RGBA, t float64) color.RGBA {
	if len(stops) == 1 {
		return stops[0]
	}
	pos := t * float64(len(stops)-1)
	i := int(pos)
	if i >= len(stops)-1 {
		return stops[len(stops)-1]
	}
	f := pos - float64(i)
	a, b := stops[i], stops[i+1]
	mix := func(x, y uint8) uint8 { return uint8(float64(x) + (float64(y)-float64(x))*f) }
	return color.RGBA{R: mix(a.R, b.R), G: mix(a.G, b.G), B: mix(a.B, b.B), A: 0xff}
}

func (c *canvas) face(size int, bold bool) font.Face {
	key := faceKey{bold: bold, size: size}
	if f, ok := c.faces[key]; ok {
		return f
	}
	f, err := opentype.NewFace(c.fonts.pick(bold), &opentype.FaceOptions{
		Size:    float64(c.px(size)),
		DPI:     72,
		Hinting: font.HintingFull,
	})
	if err != nil {
		// NewFace only fails on invalid sizes; fall back to a fixed face.
		return c.fonts.fallback
	}
	c.faces[key] = f
	return f
}

// text draws s with its baseline at (x, y) and returns the drawn width in
// layout units.
func (c *canvas) text(s string, x, y, size int, bold bool, col color.Color) int {
	face := c.face(size, bold)
	d := &font.Drawer{
		Dst:  c.img,
		Src:  image.NewUniform(col),
		Face: face,
		Dot:  fixed.P(c.px(x), c.px(y)),
	}
	d.DrawString(s)
	return (d.Dot.X.Ceil() - c.px(x) + c.scale - 1) / c.scale
}

// textRight draws s so that it ends at x.
func (c *canvas) textRight(s string, x, y, size int, bold bool, col color.Color) {
	c.text(s, x-c.measure(s, size, bold), y, size, bold, col)
}

// measure returns the advance of s in layout units.
func (c *canvas) measure(s string, size int, bold bool) int {
	w := font.MeasureString(c.face(size, bold), s).Ceil()
	return (w + c.scale - 1) / c.scale
}

// wrap breaks s into lines no wider than width layout units. Words wider than
// a line are broken between runes, which also covers unspaced Thai text.
func (c *canvas) wrap(s string, width, size int, bold bool) []string {
	var lines []string
	for _, para := range splitLines(s) {
		line := ""
		for _, word := range splitWords(para) {
			candidate := word
			if line != "" {
				candidate = line + " " + word
			}
			if c.measure(candidate, size, bold) <= width {
				line = candidate
				continue
			}
			if line != "" {
				lines = append(lines, line)
				line = ""
			}
			for _, r := range word {
				if line != "" && c.measure(line+string(r), size, bold) > width {
					lines = append(lines, line)
					line = ""
				}
				line += string(r)
			}
		}
		lines = append(lines, line)
	}
	return lines
}

func splitLines(s string) []string { return strings.Split(s, "\n") }

func splitWords(s string) []string { return strings.Fields(s) }

// paragraph draws wrapped text and returns the y below the last line.
func (c *canvas) paragraph(s string, x, y, width, size, lineHeight int, bold bool, col color.Color) int {
	for _, line := range c.wrap(s, width, size, bold) {
		y += lineHeight
		c.text(line, x, y, size, bold, col)
	}
	return y
}
