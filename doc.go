// Package st7735 controls a Sitronix ST7735 color TFT LCD via SPI.
//
// The ST7735 is a single-chip driver for 16-bit color TFT panels up to
// 132×162 pixels. This driver targets the common 80×160 0.96" panels and
// implements the display.Drawer interface from periph.io.
//
// # Display Characteristics
//
// - 16-bit color, 5-6-5 RGB, high byte first on the wire
// - Four orientations (0°, 90°, 180°, 270°); 90° and 270° swap width/height
// - Display inversion
// - Optional backlight enable pin
// - 132×162 internal RAM with automatic centering for smaller panels
//
// # Hardware Connection
//
// Connect the ST7735 display to your system via SPI:
//
//	Display Pin → System Pin
//	GND         → GND
//	VCC         → 3.3V
//	SCL/CLK     → SPI Clock (SCLK)
//	SDA/MOSI    → SPI Data (MOSI)
//	DC          → GPIO (any available pin)
//	CS          → SPI Chip Select
//	RES         → Optional: GPIO for hardware reset
//	BL          → Optional: GPIO for backlight enable
//
// # Basic Usage
//
// Example of creating and using the display:
//
//	package main
//
//	import (
//		"github.com/flavioheleno/st7735"
//		"github.com/flavioheleno/st7735/rgb565"
//		"periph.io/x/conn/v3/gpio/gpioreg"
//		"periph.io/x/conn/v3/spi/spireg"
//		"periph.io/x/host/v3"
//	)
//
//	func main() {
//		// Initialize periph.io
//		host.Init()
//
//		// Open SPI bus
//		spiBus, _ := spireg.Open("")
//
//		// Get Data/Command GPIO pin
//		dcPin := gpioreg.ByName("GPIO23")
//
//		// Create device (80x160 panel, rotation 0)
//		dev, _ := st7735.NewSPI(spiBus, dcPin, nil)
//		defer dev.Halt()
//
//		// Draw
//		dev.Clear()
//		dev.FillRect(10, 20, 20, 100, rgb565.Yellow)
//		dev.DrawPixel(50, 50, rgb565.White)
//		dev.DrawLine(30, 20, 40, rgb565.Blue)
//	}
//
// # Using Hardware Reset and Backlight Pins (Optional)
//
// If your display has a reset (RES) pin or a backlight enable (BL) pin
// connected to a GPIO, provide them in the Opts struct:
//
//	rstPin := gpioreg.ByName("GPIO26")
//	blPin := gpioreg.ByName("GPIO27")
//
//	dev, _ := st7735.NewSPI(spiBus, dcPin, &st7735.Opts{
//		W:   80,
//		H:   160,
//		RST: rstPin,
//		BL:  blPin,
//	})
//
// The driver performs a hardware reset pulse (pull RES low, wait 100ms, pull
// high, wait 100ms) before the register initialization sequence. If RST is
// nil the driver relies on power-on reset.
//
// # Drawing Text
//
// DrawText renders a string with a bitmap font into a minimally-sized box
// and transfers it in one write:
//
//	f, _ := font.Parse(tahoma7)
//	dev.DrawText("Hello", 4, 10, f, &st7735.TextOpts{
//		Color:      rgb565.White,
//		Background: rgb565.Black,
//		Align:      st7735.AlignLeft,
//	})
//
// See the font package for the table format.
//
// # Raw Images
//
// DrawImage streams a pre-encoded pixel buffer (2 bytes per pixel, 5-6-5
// big-endian) straight to a window:
//
//	pix := make([]byte, 40*40*2)
//	// ... fill pix ...
//	dev.DrawImage(pix, 0, 0, 40, 40)
//
// For standard Go images use the display.Drawer interface instead:
//
//	dev.Draw(dev.Bounds(), myImage, image.Point{})
//
// # Errors
//
// Coordinate and dimension validation happens before any bus traffic:
// ErrOutOfBounds, ErrInvalidSize and ErrInvalidRotation wrap the offending
// values. Font table problems surface as errors from the font package. SPI
// and GPIO failures are returned unchanged; the driver never retries.
//
// # Datasheet
//
// For detailed register descriptions and timing information, see:
// https://www.displayfuture.com/Display/datasheet/controller/ST7735.pdf
//
// # Compatibility with periph.io
//
// This driver implements the display.Drawer interface from periph.io:
// https://pkg.go.dev/periph.io/x/conn/v3/display
//
// It can be used with any periph.io tool or library expecting a display.Drawer.
package st7735
