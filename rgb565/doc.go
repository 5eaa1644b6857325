// Package rgb565 provides the 16-bit color format for the ST7735 display controller.
//
// The ST7735 is driven here in 16bpp mode (COLMOD 0x05), where every pixel is
// transferred as two bytes, high byte first:
//
//	Bit:   15 14 13 12 11 | 10 9 8 7 6 5 | 4 3 2 1 0
//	       R  R  R  R  R  | G  G G G G G | B B B B B
//
// Encoding truncates each 8-bit channel: red and blue keep their top 5 bits,
// green keeps its top 6. Decoding restores the lost bits as zero, so one
// encode/decode round trip is idempotent.
//
// This package provides:
//
// - RGB: a color type with three 8-bit channels
// - Model: a color model for converting standard Go colors to RGB
// - Encode/Decode: the wire codec
// - Image: an image.Image implementation storing pixels in wire format
//
// Example usage:
//
//	// Create a 80x160 image
//	img := rgb565.New(image.Rect(0, 0, 80, 160))
//
//	// Set a pixel to pure red
//	img.SetRGB(10, 20, rgb565.Red)
//
//	// Wire bytes for pure red
//	hi, lo := rgb565.Encode(rgb565.Red) // 0xF8, 0x00
//	_ = hi
//	_ = lo
//
//	// Use with standard Go image operations
//	draw.Draw(img, img.Bounds(), image.NewUniform(rgb565.White), image.Point{}, draw.Src)
package rgb565
