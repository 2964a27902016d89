// Package titlebar measures, truncates and renders the text of container tabs.
package titlebar

import (
	"image"
	"image/color"
	"image/draw"

	"golang.org/x/image/font"
	"golang.org/x/image/font/basicfont"
	"golang.org/x/image/math/fixed"
)

// Ellipsis marks truncated titles. The basic font has no U+2026 glyph.
const Ellipsis = "..."

// DefaultPadding is the gap between the title text and the bar edges.
const DefaultPadding = 3

// Metrics fits title text into title bars drawn with Face.
type Metrics struct {
	Face    font.Face
	Padding int
}

// New returns Metrics for face. A nil face selects the 7x13 bitmap font.
func New(face font.Face, padding int) Metrics {
	if face == nil {
		face = basicfont.Face7x13
	}
	if padding < 0 {
		padding = 0
	}
	return Metrics{Face: face, Padding: padding}
}

// Default returns Metrics for the 7x13 bitmap font with default padding.
func Default() Metrics {
	return New(nil, DefaultPadding)
}

// Height is the title bar height: one line of text plus padding above and below.
func (m Metrics) Height() int {
	fm := m.Face.Metrics()
	return (fm.Ascent + fm.Descent).Ceil() + 2*m.Padding
}

// Baseline is the y offset of the text baseline within the bar.
func (m Metrics) Baseline() int {
	return m.Padding + m.Face.Metrics().Ascent.Ceil()
}

// Width returns the rendered width of s in pixels.
func (m Metrics) Width(s string) int {
	return font.MeasureString(m.Face, s).Ceil()
}

// Fit returns title as it should appear in a bar barWidth pixels wide. Text
// that fits is returned unmodified; wider text is cut at a rune boundary and
// suffixed with Ellipsis. If not even the ellipsis fits, Fit returns "".
func (m Metrics) Fit(title string, barWidth int) string {
	avail := barWidth - 2*m.Padding
	if avail <= 0 {
		return ""
	}
	if m.Width(title) <= avail {
		return title
	}
	runes := []rune(title)
	for n := len(runes) - 1; n >= 0; n-- {
		candidate := string(runes[:n]) + Ellipsis
		if m.Width(candidate) <= avail {
			return candidate
		}
	}
	return ""
}

// Render fills dst with bg and draws the fitted title in fg.
func (m Metrics) Render(dst draw.Image, title string, bg, fg color.Color) {
	bounds := dst.Bounds()
	draw.Draw(dst, bounds, image.NewUniform(bg), image.Point{}, draw.Src)

	text := m.Fit(title, bounds.Dx())
	if text == "" {
		return
	}
	d := &font.Drawer{
		Dst:  dst,
		Src:  image.NewUniform(fg),
		Face: m.Face,
		Dot:  fixed.P(bounds.Min.X+m.Padding, bounds.Min.Y+m.Baseline()),
	}
	d.DrawString(text)
}

// RGB converts a 0xRRGGBB value to an opaque color.
func RGB(v uint32) color.RGBA {
	return color.RGBA{R: uint8(v >> 16), G: uint8(v >> 8), B: uint8(v), A: 0xff}
}
