// Package rgb565 provides the 16-bit 5-6-5 RGB pixel format used by the ST7735 display.
//
// Each pixel is two bytes on the wire, high byte first: 5 bits of red, 6 bits
// of green and 5 bits of blue. This package provides the RGB color type, the
// 565 codec and an image.Image implementation backed by wire-format bytes.
package rgb565

import (
	"image"
	"image/color"
)

// RGB represents a 24-bit color that encodes to 16-bit 5-6-5 on the wire.
// The low 3 (red, blue) or 2 (green) bits of each channel are discarded by
// the encoding.
type RGB struct {
	R, G, B uint8
}

// RGBA converts the RGB color to standard RGBA.
func (c RGB) RGBA() (r, g, b, a uint32) {
	r = uint32(c.R) * 0x101
	g = uint32(c.G) * 0x101
	b = uint32(c.B) * 0x101
	return r, g, b, 0xFFFF
}

// toRGB converts any color.Color to RGB.
func toRGB(c color.Color) color.Color {
	if rgb, ok := c.(RGB); ok {
		return rgb
	}
	r, g, b, _ := c.RGBA()
	return RGB{R: uint8(r >> 8), G: uint8(g >> 8), B: uint8(b >> 8)}
}

// Model converts colors to RGB.
var Model = color.ModelFunc(toRGB)

// Colors from the ST7735 datasheet reference table.
var (
	Black   = RGB{0x00, 0x00, 0x00}
	Blue    = RGB{0x00, 0x00, 0xFF}
	Green   = RGB{0x00, 0xFF, 0x00}
	Red     = RGB{0xFF, 0x00, 0x00}
	Cyan    = RGB{0x00, 0xFF, 0xFF}
	Magenta = RGB{0xFF, 0x00, 0xFF}
	Yellow  = RGB{0xFF, 0xFF, 0x00}
	White   = RGB{0xFF, 0xFF, 0xFF}
)

// Encode packs a color into its two wire bytes, high byte first.
func Encode(c RGB) (hi, lo byte) {
	v := uint16(c.R&0xF8)<<8 | uint16(c.G&0xFC)<<3 | uint16(c.B)>>3
	return byte(v >> 8), byte(v)
}

// Decode unpacks two wire bytes into a color. The bits lost by Encode come
// back as zero, so Decode(Encode(c)) keeps the top 5/6/5 bits of each channel.
func Decode(hi, lo byte) RGB {
	v := uint16(hi)<<8 | uint16(lo)
	return RGB{
		R: uint8(v >> 11 << 3),
		G: uint8(v >> 5 << 2),
		B: uint8(v << 3),
	}
}

// Image is an in-memory image whose pixels are stored in wire format:
// two bytes per pixel, big-endian 5-6-5.
type Image struct {
	Pix    []byte          // Pixel data (2 bytes per pixel)
	Stride int             // Bytes per row
	Rect   image.Rectangle // Image bounds
}

// New creates a new Image with the specified bounds.
func New(r image.Rectangle) *Image {
	w, h := r.Dx(), r.Dy()
	if w < 0 || h < 0 {
		return &Image{Rect: r}
	}
	stride := w * 2
	return &Image{
		Pix:    make([]byte, stride*h),
		Stride: stride,
		Rect:   r,
	}
}

// ColorModel returns the color model of the image.
func (p *Image) ColorModel() color.Model {
	return Model
}

// Bounds returns the image bounds.
func (p *Image) Bounds() image.Rectangle {
	return p.Rect
}

// At returns the color of the pixel at (x, y).
// It implements the image.Image interface.
func (p *Image) At(x, y int) color.Color {
	return p.RGBAt(x, y)
}

// RGBAt returns the RGB color of the pixel at (x, y).
func (p *Image) RGBAt(x, y int) RGB {
	if !(image.Point{X: x, Y: y}.In(p.Rect)) {
		return RGB{}
	}
	o := p.PixOffset(x, y)
	return Decode(p.Pix[o], p.Pix[o+1])
}

// Set sets the color of the pixel at (x, y).
func (p *Image) Set(x, y int, c color.Color) {
	p.SetRGB(x, y, Model.Convert(c).(RGB))
}

// SetRGB sets the RGB color of the pixel at (x, y).
// This is faster than Set() as it doesn't require color conversion.
func (p *Image) SetRGB(x, y int, c RGB) {
	if !(image.Point{X: x, Y: y}.In(p.Rect)) {
		return
	}
	o := p.PixOffset(x, y)
	p.Pix[o], p.Pix[o+1] = Encode(c)
}

// Fill sets every pixel to c.
func (p *Image) Fill(c RGB) {
	hi, lo := Encode(c)
	for i := 0; i < len(p.Pix); i += 2 {
		p.Pix[i] = hi
		p.Pix[i+1] = lo
	}
}

// PixOffset returns the byte offset of the first byte of the pixel at (x, y).
func (p *Image) PixOffset(x, y int) int {
	return (y-p.Rect.Min.Y)*p.Stride + (x-p.Rect.Min.X)*2
}
