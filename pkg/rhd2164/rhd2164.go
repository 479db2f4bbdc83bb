package rhd2164

import (
	"errors"
	"fmt"
)

// Exchanger is the injected link capability: one synchronous full-duplex
// exchange of 16-bit words with the chip.
type Exchanger interface {
	// Exchange clocks out the words in tx while filling rx with whatever
	// the chip returns, reporting the number of words transferred.
	//
	// rx is always the session's full two-word receive scratch, even for a
	// one-word transmit: a transport wired to both MISO lines fills rx[1]
	// on every transfer. Transports that only produce len(tx) words leave
	// the rest untouched.
	Exchange(tx, rx []uint16) (int, error)
}

// ExchangerFunc adapts a bare function to the Exchanger interface.
type ExchangerFunc func(tx, rx []uint16) (int, error)

func (f ExchangerFunc) Exchange(tx, rx []uint16) (int, error) { return f(tx, rx) }

var (
	// ErrInvalidRegister flags a register address outside [0,63].
	ErrInvalidRegister = errors.New("register address out of range")
	// ErrInvalidChannel flags a channel index outside [0,31].
	ErrInvalidChannel = errors.New("channel index out of range")
	// ErrVerify flags a setup register whose echoed readback did not match
	// the value written.
	ErrVerify = errors.New("register readback mismatch")
)

// RHD2164 drives an Intan RHD2164 64-channel amplifier chip through an
// injected word-exchange transport.
//
// Every buffer is fixed-size and embedded in the session; no operation
// allocates. The session holds no lock: exactly one operation may be in
// flight at a time, serialized by the caller. One session per physical
// chip.
type RHD2164 struct {
	spi        Exchanger
	doubleBits bool

	tx [2]uint16
	rx [2]uint16

	samples [SampleBufSize]byte

	regLW [NumRegisters]byte // last written register values
}

// Config holds the session's link configuration.
type Config struct {
	// DoubleBits selects the DDR flip-flop line encoding: every payload
	// bit goes out twice, and the two MISO streams arrive interleaved in
	// each received word.
	DoubleBits bool
}

// DefaultConfig returns the plain (non-doubled) link configuration.
func DefaultConfig() Config {
	return Config{DoubleBits: false}
}

// NewRHD2164 constructs a session over the given transport. The session
// must not be copied once in use: that would alias the scratch buffers.
func NewRHD2164(spi Exchanger, cfg Config) *RHD2164 {
	return &RHD2164{
		spi:        spi,
		doubleBits: cfg.DoubleBits,
	}
}

// DoubleBits reports whether the session encodes commands in the DDR
// flip-flop scheme.
func (dev *RHD2164) DoubleBits() bool {
	return dev.doubleBits
}

// exchange runs one duplex transfer of the first n transmit words. The
// receive scratch is always handed over whole; see Exchanger.
func (dev *RHD2164) exchange(n int) error {
	_, err := dev.spi.Exchange(dev.tx[:n], dev.rx[:])
	return err
}

// Setup writes the canonical bring-up values to registers 0 through 21
// and verifies each write through the chip's one-behind command echo.
//
// Two dummy chip-ID reads go out first: the chip's command pipeline does
// not produce a valid reply until two exchanges have passed. Verification
// mismatches do not abort the sequence; every failing register is
// reported in the returned aggregate. A transport failure aborts
// immediately, since nothing after it can verify.
func (dev *RHD2164) Setup() error {
	if err := dev.ReadRegister(RegChipID, 0); err != nil {
		return err
	}
	if err := dev.ReadRegister(RegChipID, 0); err != nil {
		return err
	}

	var errs error
	for i := 0; i < NumConfigRegisters; i++ {
		if err := dev.WriteRegister(Register(i), setupDefaults[i]); err != nil {
			return err
		}
		if i < 2 {
			// pipeline still carries the dummy replies
			continue
		}
		// The reply on the wire belongs to the write from two steps ago.
		prev := i - 2
		if got := dev.ReplyValue(); got != setupDefaults[prev] {
			errs = errors.Join(errs, fmt.Errorf("%w: register %d wrote 0x%02X, read 0x%02X",
				ErrVerify, prev, setupDefaults[prev], got))
		}
	}
	return errs
}

// Calibrate starts the chip's ADC self-calibration, then waits out the
// chip-mandated settling period of nine command cycles. The returned
// status is the calibration command's own; the settle replies are
// discarded.
func (dev *RHD2164) Calibrate() error {
	err := dev.Send(CmdCalibrate, 0)
	for i := 0; i < calibSettleCycles; i++ {
		_ = dev.ReadRegister(RegChipID, 0)
	}
	return err
}

// ClearCalibration cancels a previous calibration. Single exchange, no
// settle cycles.
func (dev *RHD2164) ClearCalibration() error {
	return dev.Send(CmdClearCalibration, 0)
}
