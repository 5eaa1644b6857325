package st7735

import (
	"errors"
	"fmt"
	"image"
	"image/color"

	"github.com/flavioheleno/st7735/font"
	"github.com/flavioheleno/st7735/rgb565"
)

// Align selects the horizontal placement of text inside its box.
type Align uint8

const (
	AlignCenter Align = iota // default
	AlignLeft
	AlignRight
	AlignNone // same placement as AlignLeft
)

// TextOpts is the configuration for DrawText.
type TextOpts struct {
	// Box dimensions in pixels. Zero means auto-size to the text. A box
	// smaller than the text grows to fit it.
	W, H int

	// Text and box background colors (default: white on black).
	Color      color.Color
	Background color.Color

	// Placement of the text inside the box.
	Align Align
}

// DrawText renders a string into a background-filled box and streams it to
// the display in a single write. The box's top-left corner is at (x, y);
// its size comes from opts or, by default, from the measured text size.
// The glyph row is centered vertically within the box.
//
// opts can be nil to use defaults (auto-sized box, white on black, centered).
func (d *Dev) DrawText(text string, x, y int, f *font.Font, opts *TextOpts) error {
	if d.halted {
		return errors.New("st7735: halted")
	}
	if f == nil {
		return errors.New("st7735: nil font")
	}
	if opts == nil {
		opts = &TextOpts{}
	}
	if x < 0 || y < 0 || x > d.w || y > d.h || opts.W < 0 || opts.H < 0 {
		return fmt.Errorf("%w: %dx%d text box at (%d,%d)", ErrOutOfBounds, opts.W, opts.H, x, y)
	}

	tw, err := f.TextWidth(text)
	if err != nil {
		return err
	}

	// The box grows to fit its content, never the other way around.
	w, h := opts.W, opts.H
	if w < tw {
		w = tw
	}
	if h < f.Height() {
		h = f.Height()
	}
	if w == 0 || h == 0 {
		return nil
	}
	if x+w > d.w || y+h > d.h {
		return fmt.Errorf("%w: %dx%d text box at (%d,%d) on %dx%d", ErrOutOfBounds, w, h, x, y, d.w, d.h)
	}

	fg := rgb565.White
	if opts.Color != nil {
		fg = rgb565.Model.Convert(opts.Color).(rgb565.RGB)
	}
	bg := rgb565.Black
	if opts.Background != nil {
		bg = rgb565.Model.Convert(opts.Background).(rgb565.RGB)
	}

	area := rgb565.New(image.Rect(0, 0, w, h))
	area.Fill(bg)

	cx := 0
	switch opts.Align {
	case AlignRight:
		cx = w - tw
	case AlignCenter:
		cx = (w - tw) / 2
	}
	cy := (h - f.Height()) / 2

	for _, r := range text {
		g, err := f.Glyph(r)
		if err != nil {
			return err
		}
		for col := 0; col < g.Width; col++ {
			for row := 0; row < f.Height(); row++ {
				if g.Bit(col, row) {
					area.SetRGB(cx+col, cy+row, fg)
				}
			}
		}
		cx += g.Width + 1
	}

	return d.writeRect(x, y, w, h, area.Pix)
}
