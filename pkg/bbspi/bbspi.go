// Package bbspi implements the RHD2164 word-exchange transport by
// bit-banging GPIO pins, for boards wired straight to a header with no
// SPI engine available.
//
// The caller is responsible for gpio.Open / gpio.Close around the
// lifetime of the link.
package bbspi

import (
	"sync"
	"time"

	"github.com/warthog618/gpio"
)

// SPI drives the half-duplex amplifier link over four GPIO pins.
//
// In doubled-bit (DDR) wiring the chip drives MISO on both clock edges,
// so the two sample streams arrive interleaved on the single miso pin,
// exactly the layout the rhd2164 codec expects.
type SPI struct {
	mu sync.Mutex
	// time between clock edges (half the SCLK cycle)
	tclk time.Duration
	ddr  bool
	sclk *gpio.Pin
	csz  *gpio.Pin
	mosi *gpio.Pin
	miso *gpio.Pin
}

// New creates a bit-banged link on the given pins. tclk is the time
// between clock edges.
func New(tclk time.Duration, sclk, csz, mosi, miso uint8) *SPI {
	s := &SPI{
		tclk: tclk,
		sclk: gpio.NewPin(int(sclk)),
		csz:  gpio.NewPin(int(csz)),
		mosi: gpio.NewPin(int(mosi)),
		miso: gpio.NewPin(int(miso)),
	}
	s.sclk.Low()
	s.sclk.Output()
	s.csz.High()
	s.csz.Output()
	s.mosi.Low()
	s.mosi.Output()
	s.miso.Input()
	return s
}

// WithDDR switches the link to doubled-bit timing: MOSI driven and MISO
// sampled on both clock edges.
func (s *SPI) WithDDR(on bool) *SPI {
	s.ddr = on
	return s
}

// Close releases the driven pins to inputs.
func (s *SPI) Close() {
	s.mu.Lock()
	s.sclk.Input()
	s.csz.Input()
	s.mosi.Input()
	s.mu.Unlock()
}

// Exchange clocks out the words in tx MSB first while sampling the
// incoming words into rx, all under one chip-select assertion.
func (s *SPI) Exchange(tx, rx []uint16) (int, error) {
	s.mu.Lock()
	s.csz.Low()
	time.Sleep(s.tclk)

	n := 0
	for i, w := range tx {
		var in uint16
		if s.ddr {
			in = s.transferDDR(w)
		} else {
			in = s.transfer(w)
		}
		if i < len(rx) {
			rx[i] = in
			n++
		}
	}

	s.csz.High()
	s.mu.Unlock()
	return n, nil
}

// transfer clocks one word over 16 full SCLK cycles, driving MOSI on
// the rising edge and sampling MISO on the falling edge.
func (s *SPI) transfer(w uint16) uint16 {
	var in uint16
	for i := 15; i >= 0; i-- {
		s.mosi.Write(levelOf(w, uint(i)))
		s.sclk.High()
		time.Sleep(s.tclk)
		s.sclk.Low()
		if s.miso.Read() == gpio.High {
			in |= 1 << uint(i)
		}
		time.Sleep(s.tclk)
	}
	return in
}

// transferDDR clocks one doubled word over 8 SCLK cycles, driving and
// sampling on every edge. Bit 2i+1 of the word rides the rising edge of
// cycle i, bit 2i the falling edge.
func (s *SPI) transferDDR(w uint16) uint16 {
	var in uint16
	for i := 15; i >= 0; i-- {
		s.mosi.Write(levelOf(w, uint(i)))
		if i%2 == 1 {
			s.sclk.High()
		} else {
			s.sclk.Low()
		}
		time.Sleep(s.tclk)
		if s.miso.Read() == gpio.High {
			in |= 1 << uint(i)
		}
	}
	return in
}

func levelOf(w uint16, bit uint) gpio.Level {
	if w>>bit&1 == 1 {
		return gpio.High
	}
	return gpio.Low
}
