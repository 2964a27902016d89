package x11

import (
	"fmt"
	"image"

	"github.com/BurntSushi/xgb/xproto"
	"github.com/BurntSushi/xgbutil/xgraphics"

	"github.com/mj1618/ifwm/internal/platform"
	"github.com/mj1618/ifwm/internal/titlebar"
)

// Painter draws frames with a solid fill and title bars through an
// xgraphics image.
type Painter struct {
	conn    *Conn
	theme   platform.TitleTheme
	metrics titlebar.Metrics
	// gcs holds one frame-colored graphics context per screen.
	gcs map[int]xproto.Gcontext
}

func NewPainter(c *Conn, metrics titlebar.Metrics) *Painter {
	return &Painter{
		conn:    c,
		theme:   c.opts.Theme,
		metrics: metrics,
		gcs:     make(map[int]xproto.Gcontext),
	}
}

func (p *Painter) frameGC(screen int) (xproto.Gcontext, error) {
	if gc, ok := p.gcs[screen]; ok {
		return gc, nil
	}
	info, err := p.conn.screenInfo(screen)
	if err != nil {
		return 0, err
	}
	gc, err := xproto.NewGcontextId(p.conn.xc)
	if err != nil {
		return 0, fmt.Errorf("allocate graphics context: %w", err)
	}
	err = xproto.CreateGCChecked(p.conn.xc, gc, xproto.Drawable(info.Root),
		xproto.GcForeground, []uint32{p.conn.opts.FrameColor}).Check()
	if err != nil {
		return 0, fmt.Errorf("create graphics context: %w", err)
	}
	p.gcs[screen] = gc
	return gc, nil
}

func (p *Painter) PaintFrame(w platform.WindowID, area platform.Rect) error {
	gc, err := p.frameGC(p.conn.windowScreen[w])
	if err != nil {
		return err
	}
	rect := xproto.Rectangle{
		X:      int16(area.X),
		Y:      int16(area.Y),
		Width:  uint16(max(area.Width, 0)),
		Height: uint16(max(area.Height, 0)),
	}
	err = xproto.PolyFillRectangleChecked(p.conn.xc, xproto.Drawable(w), gc,
		[]xproto.Rectangle{rect}).Check()
	return classify(w, "paint frame", err)
}

func (p *Painter) PaintTitleBar(w platform.WindowID, width, height int, title string, active bool) error {
	if width <= 0 || height <= 0 {
		return nil
	}
	bg, fg := p.theme.InactiveBackground, p.theme.InactiveForeground
	if active {
		bg, fg = p.theme.ActiveBackground, p.theme.Foreground
	}
	img := xgraphics.New(p.conn.xu, image.Rect(0, 0, width, height))
	defer img.Destroy()

	p.metrics.Render(img, title, titlebar.RGB(bg), titlebar.RGB(fg))
	if err := img.XSurfaceSet(xproto.Window(w)); err != nil {
		return classify(w, "paint title bar", err)
	}
	if err := img.XDrawChecked(); err != nil {
		return classify(w, "paint title bar", err)
	}
	img.XPaint(xproto.Window(w))
	return nil
}
