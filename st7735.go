// Package st7735 controls a Sitronix ST7735 color TFT LCD via SPI.
//
// The ST7735 is a single-chip 16-bit color controller for panels up to
// 132x162 pixels. Common display sizes are 80x160 and 128x160.
//
// See the examples for how to use this package.
package st7735

import (
	"errors"
	"fmt"
	"image"
	"image/color"
	"image/draw"
	"time"

	"github.com/flavioheleno/st7735/rgb565"
	"periph.io/x/conn/v3"
	"periph.io/x/conn/v3/display"
	"periph.io/x/conn/v3/gpio"
	"periph.io/x/conn/v3/physic"
	"periph.io/x/conn/v3/spi"
)

// Controller RAM size. Panels smaller than this are centered in RAM, which
// is where the per-rotation column/row start offsets come from.
const (
	ramCols = 132
	ramRows = 162
)

// Command set (from the ST7735 datasheet).
const (
	cmdSWRESET = 0x01 // Software reset
	cmdSLPOUT  = 0x11 // Sleep out
	cmdNORON   = 0x13 // Normal display mode on
	cmdINVOFF  = 0x20 // Display inversion off
	cmdINVON   = 0x21 // Display inversion on
	cmdDISPOFF = 0x28 // Display off
	cmdDISPON  = 0x29 // Display on
	cmdCASET   = 0x2A // Column address set
	cmdRASET   = 0x2B // Row address set
	cmdRAMWR   = 0x2C // Memory write
	cmdMADCTL  = 0x36 // Memory data access control
	cmdCOLMOD  = 0x3A // Interface pixel format
	cmdFRMCTR1 = 0xB1 // Frame rate control (normal mode)
	cmdFRMCTR2 = 0xB2 // Frame rate control (idle mode)
	cmdFRMCTR3 = 0xB3 // Frame rate control (partial mode)
	cmdINVCTR  = 0xB4 // Display inversion control
	cmdPWCTR1  = 0xC0 // Power control 1
	cmdPWCTR2  = 0xC1 // Power control 2
	cmdPWCTR3  = 0xC2 // Power control 3
	cmdPWCTR4  = 0xC3 // Power control 4
	cmdPWCTR5  = 0xC4 // Power control 5
	cmdVMCTR1  = 0xC5 // VCOM control 1
	cmdGMCTRP1 = 0xE0 // Positive gamma correction
	cmdGMCTRN1 = 0xE1 // Negative gamma correction
)

// MADCTL bits.
const (
	madMY  = 0x80 // Row address order
	madMX  = 0x40 // Column address order
	madMV  = 0x20 // Row/column exchange
	madMH  = 0x04 // Horizontal refresh order
	madBGR = 0x08 // BGR color filter panel
)

// Rotation selects one of the four supported display orientations.
type Rotation uint8

const (
	Rotation0   Rotation = 0
	Rotation90  Rotation = 1
	Rotation180 Rotation = 2
	Rotation270 Rotation = 3
)

// madctl is the MADCTL byte for each rotation. Odd rotations swap the
// panel's width and height.
var madctl = [4]byte{
	madMX | madMY | madMH | madBGR,
	madMV | madMY | madBGR,
	madBGR,
	madMX | madMV | madBGR,
}

// Errors reported before any bus traffic happens.
var (
	// ErrOutOfBounds means a coordinate or dimension falls outside the
	// display area.
	ErrOutOfBounds = errors.New("st7735: coordinates outside display area")
	// ErrInvalidSize means a raw pixel buffer does not match its declared
	// width and height.
	ErrInvalidSize = errors.New("st7735: invalid buffer size")
	// ErrInvalidRotation means a rotation other than 0..3 was requested.
	ErrInvalidRotation = errors.New("st7735: invalid rotation")
)

// Opts is the configuration for the ST7735 display.
type Opts struct {
	// Panel dimensions in pixels at rotation 0.
	W int // Width (default: 80, must be ≤132)
	H int // Height (default: 160, must be ≤162)

	// Initial orientation.
	Rotation Rotation

	// SPI clock frequency (default: 27MHz).
	Freq physic.Frequency

	// Optional pins.
	RST gpio.PinIO // Reset pin (optional, nil if not used)
	BL  gpio.PinIO // Backlight enable pin (optional, nil if not used)
}

// Dev is the device handle for the ST7735 display.
type Dev struct {
	// Communication
	c   conn.Conn   // SPI connection
	dc  gpio.PinOut // Data/Command pin
	rst gpio.PinIO  // Reset pin (optional)
	bl  gpio.PinIO  // Backlight pin (optional)

	// Largest chunk the SPI connection accepts in one transaction.
	maxTxSize int

	// Display geometry. w/h are the logical dimensions under the current
	// rotation; panelW/panelH are the panel's native (rotation 0) size.
	panelW, panelH     int
	w, h               int
	colstart, rowstart int

	// State
	rotation Rotation
	inverted bool
	halted   bool
}

// command is one entry of an initialization sequence: an opcode, its operand
// bytes and the settle time the datasheet requires after it.
type command struct {
	cmd   byte
	data  []byte
	delay time.Duration
}

// NewSPI creates a new ST7735 device connected via SPI.
//
// The SPI port is configured for Mode0 (CPOL=0, CPHA=0), 8-bit transfers.
// The dc (Data/Command) GPIO pin must be provided and configured as an output.
//
// opts can be nil to use defaults (80x160 display, rotation 0).
func NewSPI(p spi.Port, dc gpio.PinOut, opts *Opts) (*Dev, error) {
	// Apply defaults and validate options
	if opts == nil {
		opts = &Opts{}
	}
	w, h := opts.W, opts.H
	if w == 0 && h == 0 {
		w, h = 80, 160
	}
	if w <= 0 || w > ramCols {
		return nil, errors.New("st7735: width must be between 1 and 132")
	}
	if h <= 0 || h > ramRows {
		return nil, errors.New("st7735: height must be between 1 and 162")
	}
	if opts.Rotation > Rotation270 {
		return nil, fmt.Errorf("%w: %d", ErrInvalidRotation, opts.Rotation)
	}

	freq := opts.Freq
	if freq == 0 {
		freq = 27 * physic.MegaHertz
	}

	c, err := p.Connect(freq, spi.Mode0, 8)
	if err != nil {
		return nil, err
	}

	// Respect the connection's transaction size limit when streaming pixel
	// buffers, falling back to a conservative default.
	maxTxSize := 0
	if limits, ok := c.(conn.Limits); ok {
		maxTxSize = limits.MaxTxSize()
	}
	if maxTxSize == 0 {
		maxTxSize = 4096
	}

	d := &Dev{
		c:         c,
		dc:        dc,
		rst:       opts.RST,
		bl:        opts.BL,
		maxTxSize: maxTxSize,
		panelW:    w,
		panelH:    h,
	}

	if err := d.init(opts.Rotation); err != nil {
		return nil, err
	}

	return d, nil
}

// Reset performs a hardware reset (if a reset pin was provided) followed by
// the full initialization sequence, restoring the current rotation.
func (d *Dev) Reset() error {
	d.halted = false
	return d.init(d.rotation)
}

// init resets the display and sends the initialization sequence, leaving the
// panel in normal display mode with the display on.
func (d *Dev) init(r Rotation) error {
	// Hardware reset pulse (if RST pin is provided)
	if d.rst != nil {
		if err := d.rst.Out(gpio.Low); err != nil {
			return fmt.Errorf("st7735: failed to pull RST low: %w", err)
		}
		time.Sleep(100 * time.Millisecond)

		if err := d.rst.Out(gpio.High); err != nil {
			return fmt.Errorf("st7735: failed to pull RST high: %w", err)
		}
		time.Sleep(100 * time.Millisecond)
	}

	if err := d.sendCommands([]command{
		{cmd: cmdSWRESET, delay: 150 * time.Millisecond},
		{cmd: cmdSLPOUT, delay: 500 * time.Millisecond},
		{cmd: cmdFRMCTR1, data: []byte{0x01, 0x2C, 0x2D}},
		{cmd: cmdFRMCTR2, data: []byte{0x01, 0x2C, 0x2D}},
		{cmd: cmdFRMCTR3, data: []byte{0x01, 0x2C, 0x2D, 0x01, 0x2C, 0x2D}},
		{cmd: cmdINVCTR, data: []byte{0x07}},
		{cmd: cmdPWCTR1, data: []byte{0xA2, 0x02, 0x84}},
		{cmd: cmdPWCTR2, data: []byte{0xC5}},
		{cmd: cmdPWCTR3, data: []byte{0x0A, 0x00}},
		{cmd: cmdPWCTR4, data: []byte{0x8A, 0x2A}},
		{cmd: cmdPWCTR5, data: []byte{0x8A, 0xEE}},
		{cmd: cmdVMCTR1, data: []byte{0x0E}},
	}); err != nil {
		return err
	}

	// These panels expect inverted polarity for normal colors.
	if err := d.SetInvert(true); err != nil {
		return err
	}
	if err := d.SetRotation(r); err != nil {
		return err
	}

	return d.sendCommands([]command{
		{cmd: cmdCOLMOD, data: []byte{0x05}}, // 16bpp
		{cmd: cmdCASET, data: []byte{0x00, 0x00, 0x00, ramCols - 1}},
		{cmd: cmdRASET, data: []byte{0x00, 0x00, 0x00, ramRows - 1}},
		{cmd: cmdGMCTRP1, data: []byte{
			0x02, 0x1C, 0x07, 0x12, 0x37, 0x32, 0x29, 0x2D,
			0x29, 0x25, 0x2B, 0x39, 0x00, 0x01, 0x03, 0x10,
		}},
		{cmd: cmdGMCTRN1, data: []byte{
			0x03, 0x1D, 0x07, 0x06, 0x2E, 0x2C, 0x29, 0x2D,
			0x2E, 0x2E, 0x37, 0x3F, 0x00, 0x00, 0x02, 0x10,
		}},
		{cmd: cmdNORON, delay: 10 * time.Millisecond},
		{cmd: cmdDISPON, delay: 100 * time.Millisecond},
	})
}

// sendCommand sends a single command byte.
func (d *Dev) sendCommand(cmd byte) error {
	if err := d.dc.Out(gpio.Low); err != nil {
		return err
	}
	return d.c.Tx([]byte{cmd}, nil)
}

// sendData sends a slice of data bytes, split to honor the connection's
// transaction size limit.
func (d *Dev) sendData(data []byte) error {
	if err := d.dc.Out(gpio.High); err != nil {
		return err
	}
	for len(data) > 0 {
		chunk := data
		if len(chunk) > d.maxTxSize {
			chunk = chunk[:d.maxTxSize]
		}
		if err := d.c.Tx(chunk, nil); err != nil {
			return err
		}
		data = data[len(chunk):]
	}
	return nil
}

// sendCommands sends a command sequence with its operand bytes and delays.
func (d *Dev) sendCommands(cmds []command) error {
	for _, c := range cmds {
		if err := d.sendCommand(c.cmd); err != nil {
			return err
		}
		if len(c.data) > 0 {
			if err := d.sendData(c.data); err != nil {
				return err
			}
		}
		if c.delay != 0 {
			time.Sleep(c.delay)
		}
	}
	return nil
}

// setAddrWindow sets the pixel address window for the next memory write and
// arms the controller for a pixel stream. Coordinates are in logical pixels;
// the panel's RAM offsets are added here.
func (d *Dev) setAddrWindow(x0, y0, x1, y1 int) error {
	x0 += d.colstart
	x1 += d.colstart
	y0 += d.rowstart
	y1 += d.rowstart

	return d.sendCommands([]command{
		{cmd: cmdCASET, data: []byte{byte(x0 >> 8), byte(x0), byte(x1 >> 8), byte(x1)}},
		{cmd: cmdRASET, data: []byte{byte(y0 >> 8), byte(y0), byte(y1 >> 8), byte(y1)}},
		{cmd: cmdRAMWR},
	})
}

// SetRotation sets the direction of frame memory. Odd rotations swap the
// logical width and height.
func (d *Dev) SetRotation(r Rotation) error {
	if d.halted {
		return errors.New("st7735: halted")
	}
	if r > Rotation270 {
		return fmt.Errorf("%w: %d", ErrInvalidRotation, r)
	}

	if err := d.sendCommands([]command{
		{cmd: cmdMADCTL, data: []byte{madctl[r]}},
	}); err != nil {
		return err
	}

	d.rotation = r
	d.w, d.h = d.panelW, d.panelH
	if r == Rotation90 || r == Rotation270 {
		d.w, d.h = d.h, d.w
	}
	// Center the panel in the controller's 132x162 RAM.
	if r == Rotation90 || r == Rotation270 {
		d.colstart = (ramRows - d.w) / 2
		d.rowstart = (ramCols - d.h) / 2
	} else {
		d.colstart = (ramCols - d.w) / 2
		d.rowstart = (ramRows - d.h) / 2
	}
	return nil
}

// Rotation returns the current display orientation.
func (d *Dev) Rotation() Rotation {
	return d.rotation
}

// SetBacklight switches the backlight on or off. It is a no-op when no
// backlight pin was configured.
func (d *Dev) SetBacklight(on bool) error {
	if d.bl == nil {
		return nil
	}
	l := gpio.Low
	if on {
		l = gpio.High
	}
	return d.bl.Out(l)
}

// SetInvert sets the display color inversion mode.
func (d *Dev) SetInvert(on bool) error {
	if d.halted {
		return errors.New("st7735: halted")
	}
	cmd := byte(cmdINVOFF)
	if on {
		cmd = cmdINVON
	}
	if err := d.sendCommand(cmd); err != nil {
		return err
	}
	d.inverted = on
	return nil
}

// On turns the display on.
func (d *Dev) On() error {
	if d.halted {
		return errors.New("st7735: halted")
	}
	return d.sendCommand(cmdDISPON)
}

// Off turns the display off. The frame memory is retained.
func (d *Dev) Off() error {
	if d.halted {
		return errors.New("st7735: halted")
	}
	return d.sendCommand(cmdDISPOFF)
}

// Halt turns the display and backlight off.
// After calling Halt, the display will not respond to further drawing calls
// until Reset is called.
func (d *Dev) Halt() error {
	d.halted = true
	if err := d.SetBacklight(false); err != nil {
		return err
	}
	return d.sendCommand(cmdDISPOFF)
}

// clip validates a drawing origin and size against the display area.
//
// An origin exactly on the far edge is clamped to the last pixel; an origin
// beyond it, a negative origin or a non-positive size is an error. A region
// extending past the edge is truncated to fit.
func (d *Dev) clip(x, y, w, h int) (int, int, int, int, error) {
	if x > d.w || y > d.h {
		return 0, 0, 0, 0, fmt.Errorf("%w: (%d,%d) on %dx%d", ErrOutOfBounds, x, y, d.w, d.h)
	}
	if x < 0 || y < 0 || w < 1 || h < 1 {
		return 0, 0, 0, 0, fmt.Errorf("%w: %dx%d at (%d,%d)", ErrOutOfBounds, w, h, x, y)
	}
	if x == d.w {
		x = d.w - 1
	}
	if y == d.h {
		y = d.h - 1
	}
	if x+w > d.w {
		w = d.w - x
	}
	if y+h > d.h {
		h = d.h - y
	}
	return x, y, w, h, nil
}

// writeRect streams pre-encoded pixel data into a rectangular region.
func (d *Dev) writeRect(x, y, w, h int, pixels []byte) error {
	if err := d.setAddrWindow(x, y, x+w-1, y+h-1); err != nil {
		return err
	}
	return d.sendData(pixels)
}

// fillRect streams n repetitions of a single color into the armed window.
func (d *Dev) fillRect(x, y, w, h int, c rgb565.RGB) error {
	if err := d.setAddrWindow(x, y, x+w-1, y+h-1); err != nil {
		return err
	}
	hi, lo := rgb565.Encode(c)
	buf := make([]byte, w*h*2)
	for i := 0; i < len(buf); i += 2 {
		buf[i] = hi
		buf[i+1] = lo
	}
	return d.sendData(buf)
}

// Clear fills the entire display with black.
func (d *Dev) Clear() error {
	return d.FillScreen(rgb565.Black)
}

// FillScreen fills the entire display with the given color.
func (d *Dev) FillScreen(c color.Color) error {
	return d.FillRect(0, 0, d.w, d.h, c)
}

// FillRect fills a rectangular area with the given color. The origin may sit
// on the display edge (it is clamped to the last pixel) and the area is
// truncated to the display bounds.
func (d *Dev) FillRect(x, y, w, h int, c color.Color) error {
	if d.halted {
		return errors.New("st7735: halted")
	}
	x, y, w, h, err := d.clip(x, y, w, h)
	if err != nil {
		return err
	}
	return d.fillRect(x, y, w, h, rgb565.Model.Convert(c).(rgb565.RGB))
}

// DrawPixel draws a single pixel.
func (d *Dev) DrawPixel(x, y int, c color.Color) error {
	if d.halted {
		return errors.New("st7735: halted")
	}
	x, y, _, _, err := d.clip(x, y, 1, 1)
	if err != nil {
		return err
	}
	hi, lo := rgb565.Encode(rgb565.Model.Convert(c).(rgb565.RGB))
	return d.writeRect(x, y, 1, 1, []byte{hi, lo})
}

// DrawLine draws a horizontal line of the given length, truncated at the
// right display edge.
func (d *Dev) DrawLine(x, y, length int, c color.Color) error {
	if d.halted {
		return errors.New("st7735: halted")
	}
	x, y, length, _, err := d.clip(x, y, length, 1)
	if err != nil {
		return err
	}
	return d.fillRect(x, y, length, 1, rgb565.Model.Convert(c).(rgb565.RGB))
}

// DrawImage draws a raw pre-encoded pixel buffer (2 bytes per pixel, 5-6-5
// big-endian) at the given position. The whole image must fit on the display
// and pix must hold exactly w*h pixels.
func (d *Dev) DrawImage(pix []byte, x, y, w, h int) error {
	if d.halted {
		return errors.New("st7735: halted")
	}
	if x < 0 || y < 0 || w < 1 || h < 1 || x+w > d.w || y+h > d.h {
		return fmt.Errorf("%w: %dx%d at (%d,%d) on %dx%d", ErrOutOfBounds, w, h, x, y, d.w, d.h)
	}
	if len(pix) != w*h*2 {
		return fmt.Errorf("%w: got %d bytes, want %d", ErrInvalidSize, len(pix), w*h*2)
	}
	return d.writeRect(x, y, w, h, pix)
}

// ColorModel returns the color model of the display.
func (d *Dev) ColorModel() color.Model {
	return rgb565.Model
}

// Bounds returns the image bounds of the display under the current rotation.
func (d *Dev) Bounds() image.Rectangle {
	return image.Rect(0, 0, d.w, d.h)
}

// Draw draws an image onto the display.
// The dst rectangle specifies the destination region on the display, clipped
// to the display bounds. The src image is read starting at sp.
func (d *Dev) Draw(dst image.Rectangle, src image.Image, sp image.Point) error {
	if d.halted {
		return errors.New("st7735: halted")
	}

	dst = dst.Intersect(d.Bounds())
	if dst.Empty() {
		return nil
	}

	// Fast path: a wire-format source aligned with the destination needs no
	// conversion.
	if srcImg, ok := src.(*rgb565.Image); ok {
		if sp == srcImg.Rect.Min && dst.Size() == srcImg.Rect.Size() {
			return d.writeRect(dst.Min.X, dst.Min.Y, dst.Dx(), dst.Dy(), srcImg.Pix)
		}
	}

	buf := rgb565.New(dst)
	draw.Draw(buf, dst, src, sp, draw.Src)
	return d.writeRect(dst.Min.X, dst.Min.Y, dst.Dx(), dst.Dy(), buf.Pix)
}

// String returns a string representation of the device.
func (d *Dev) String() string {
	return fmt.Sprintf("st7735.Dev{%dx%d}", d.w, d.h)
}

var _ display.Drawer = &Dev{}
