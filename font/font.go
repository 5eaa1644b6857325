// Package font reads the packed bitmap font tables consumed by the ST7735 driver.
package font

import (
	"errors"
	"fmt"
)

// Errors returned while parsing a font table or looking up glyphs.
var (
	// ErrTruncated means the table is too short for its own header or for a
	// glyph bitmap it references.
	ErrTruncated = errors.New("font: truncated table")
	// ErrBadRange means the header declares lastChar < firstChar.
	ErrBadRange = errors.New("font: invalid character range")
	// ErrUnsupportedRune means a rune falls outside the font's character range.
	ErrUnsupportedRune = errors.New("font: unsupported rune")
)

// Table layout constants.
const (
	headerLen   = 8 // bytes before the glyph directory
	dirEntryLen = 4 // width byte + 3-byte bitmap offset
)

// Font is a parsed bitmap font table.
//
// The table layout is:
//
//	offset 2-3  first character code (little-endian)
//	offset 4-5  last character code (little-endian)
//	offset 6    glyph height in pixels
//	offset 8    directory: 4 bytes per character in [first, last]
//	            (width, 24-bit little-endian bitmap offset)
//	...         packed glyph bitmaps
//
// Glyph bitmaps are monochrome, one bit per pixel, stored column by column.
// Each column starts on a byte boundary and is read LSB first, top row first.
type Font struct {
	data   []byte
	first  rune
	last   rune
	height int
}

// Parse validates the table header and returns a Font reading from data.
// The byte slice is retained and must not be modified.
func Parse(data []byte) (*Font, error) {
	if len(data) < headerLen {
		return nil, fmt.Errorf("%w: %d byte header", ErrTruncated, len(data))
	}
	f := &Font{
		data:   data,
		first:  rune(uint16(data[2]) | uint16(data[3])<<8),
		last:   rune(uint16(data[4]) | uint16(data[5])<<8),
		height: int(data[6]),
	}
	if f.last < f.first {
		return nil, fmt.Errorf("%w: first=%d last=%d", ErrBadRange, f.first, f.last)
	}
	if f.height == 0 {
		return nil, errors.New("font: zero glyph height")
	}
	dirLen := int(f.last-f.first+1) * dirEntryLen
	if len(data) < headerLen+dirLen {
		return nil, fmt.Errorf("%w: directory needs %d bytes", ErrTruncated, headerLen+dirLen)
	}
	return f, nil
}

// First returns the lowest character code the font covers.
func (f *Font) First() rune {
	return f.first
}

// Last returns the highest character code the font covers.
func (f *Font) Last() rune {
	return f.last
}

// Height returns the glyph height in pixels. All glyphs share it.
func (f *Font) Height() int {
	return f.height
}

// Glyph is a single character's width and bitmap.
type Glyph struct {
	Width  int
	bitmap []byte
	height int
}

// Glyph looks up the directory entry for r and returns its glyph.
func (f *Font) Glyph(r rune) (Glyph, error) {
	if r < f.first || r > f.last {
		return Glyph{}, fmt.Errorf("%w: %q not in [%q, %q]", ErrUnsupportedRune, r, f.first, f.last)
	}
	idx := headerLen + int(r-f.first)*dirEntryLen
	width := int(f.data[idx])
	offset := int(f.data[idx+1]) | int(f.data[idx+2])<<8 | int(f.data[idx+3])<<16

	size := width * bytesPerColumn(f.height)
	if offset+size > len(f.data) {
		return Glyph{}, fmt.Errorf("%w: glyph %q bitmap at %d+%d", ErrTruncated, r, offset, size)
	}
	return Glyph{
		Width:  width,
		bitmap: f.data[offset : offset+size],
		height: f.height,
	}, nil
}

// Bit reports whether the pixel at (col, row) of the glyph is set.
// col counts from the left edge, row from the top.
func (g Glyph) Bit(col, row int) bool {
	o := col*bytesPerColumn(g.height) + row/8
	return g.bitmap[o]&(1<<(row%8)) != 0
}

// bytesPerColumn is how many bytes one glyph column occupies.
func bytesPerColumn(height int) int {
	return (height + 7) / 8
}

// TextWidth returns the width in pixels of s: the sum of its glyph widths
// plus one spacing pixel between adjacent characters. The empty string is 0
// wide. Runes outside the font's range yield ErrUnsupportedRune.
func (f *Font) TextWidth(s string) (int, error) {
	w := 0
	n := 0
	for _, r := range s {
		g, err := f.Glyph(r)
		if err != nil {
			return 0, err
		}
		w += g.Width + 1
		n++
	}
	if n > 0 {
		w--
	}
	return w, nil
}
