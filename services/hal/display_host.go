//go:build !rp2040 && !rp2350

package hal

import (
	"tinygo.org/x/drivers"

	"feedminder-go/types"
)

// SSD1306 I²C control bytes.
const (
	ctrlCommand = 0x00
	ctrlData    = 0x40
)

// hostScreen stands in for the OLED on host builds. The MCU display
// driver only compiles under TinyGo, so here the text is framed as plain
// command/data writes on the injected I²C bus, which keeps the bench
// tests' traffic assertions meaningful.
type hostScreen struct {
	i2c  drivers.I2C
	addr uint16
}

func newScreen(i2c drivers.I2C, p types.DisplayParams) screen {
	return &hostScreen{i2c: i2c, addr: p.Addr}
}

func (s *hostScreen) Init() error {
	return s.i2c.Tx(s.addr, []byte{ctrlCommand, 0xAE, 0xAF}, nil)
}

func (s *hostScreen) Show(line1, line2 string) error {
	buf := append([]byte{ctrlData}, line1...)
	if line2 != "" {
		buf = append(buf, '\n')
		buf = append(buf, line2...)
	}
	return s.i2c.Tx(s.addr, buf, nil)
}

func (s *hostScreen) Clear() error {
	return s.i2c.Tx(s.addr, []byte{ctrlData}, nil)
}
