package ft232h

import (
	"errors"
	"fmt"

	"github.com/yunginnanet/ft232h"
)

// SetCSPin configures pin as the active-low chip select, released high.
func (ft *FT232H) SetCSPin(pin uint) error {
	ft.csPin = ft232h.CPin(pin)
	return ft.GPIO.ConfigPin(ft.csPin, ft232h.Output, true)
}

// CSPin returns the configured chip-select pin.
func (ft *FT232H) CSPin() ft232h.CPin {
	return ft.csPin
}

// SetCS drives the chip-select pin.
func (ft *FT232H) SetCS(high bool) error {
	if ft.csPin == 0 {
		return fmt.Errorf("CS pin not set")
	}
	return ft.GPIO.Set(ft.csPin, high)
}

// Init initializes the MPSSE SPI engine.
func (ft *FT232H) Init() error {
	return ft.SPI.Init()
}

// Close shuts down the SPI engine.
func (ft *FT232H) Close() error {
	return ft.SPI.Close()
}

// Exchange implements the rhd2164 word-exchange contract over the MPSSE
// SPI engine. Words are framed big-endian; the engine clocks the tx
// bytes out first, then clocks the reply bytes back in, all under one
// chip-select assertion.
func (ft *FT232H) Exchange(tx, rx []uint16) (int, error) {
	var out [4]byte
	for i, w := range tx {
		out[2*i] = byte(w >> 8)
		out[2*i+1] = byte(w)
	}

	if err := ft.SetCS(false); err != nil {
		return 0, err
	}

	if _, err := ft.SPI.Write(out[:2*len(tx)], true, false); err != nil {
		return 0, errors.Join(err, ft.SetCS(true))
	}

	in, err := ft.SPI.Read(uint(2*len(tx)), false, true)
	if err != nil {
		return 0, errors.Join(err, ft.SetCS(true))
	}

	n := 0
	for i := 0; i+1 < len(in) && n < len(rx); i += 2 {
		rx[n] = uint16(in[i])<<8 | uint16(in[i+1])
		n++
	}
	return n, ft.SetCS(true)
}
