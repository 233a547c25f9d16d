//go:build rp2040 || rp2350

package hal

import (
	"image/color"

	"tinygo.org/x/drivers"
	"tinygo.org/x/drivers/ssd1306"
	"tinygo.org/x/tinyfont"
	"tinygo.org/x/tinyfont/proggy"

	"feedminder-go/types"
)

// oledScreen renders on a real SSD1306 over I²C.
type oledScreen struct {
	dev    ssd1306.Device
	params types.DisplayParams
}

var displayWhite = color.RGBA{R: 255, G: 255, B: 255, A: 255}

func newScreen(i2c drivers.I2C, p types.DisplayParams) screen {
	return &oledScreen{dev: ssd1306.NewI2C(i2c), params: p}
}

func (s *oledScreen) Init() error {
	s.dev.Configure(ssd1306.Config{
		Width:   int16(s.params.Width),
		Height:  int16(s.params.Height),
		Address: s.params.Addr,
	})
	s.dev.ClearBuffer()
	return s.dev.Display()
}

func (s *oledScreen) Show(line1, line2 string) error {
	s.dev.ClearBuffer()
	tinyfont.WriteLine(&s.dev, &proggy.TinySZ8pt7b, 0, 10, line1, displayWhite)
	if line2 != "" {
		tinyfont.WriteLine(&s.dev, &proggy.TinySZ8pt7b, 0, 24, line2, displayWhite)
	}
	return s.dev.Display()
}

func (s *oledScreen) Clear() error {
	s.dev.ClearDisplay()
	return nil
}
