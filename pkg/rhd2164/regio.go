package rhd2164

import "fmt"

// ReadRegister issues a read command for reg. The chip pipelines replies
// by one exchange: the value echoed for this read arrives during the
// next exchange and is picked up with ReplyValue.
//
// val rides in the payload byte of the command word; the chip ignores it
// on reads, but the wire format carries it regardless.
func (dev *RHD2164) ReadRegister(reg Register, val byte) error {
	if reg > regMask {
		return fmt.Errorf("%w: 0x%02X", ErrInvalidRegister, byte(reg))
	}
	return dev.Send(uint16(reg)|cmdRead, uint16(val))
}

// WriteRegister issues a write command for reg, recording val in the
// last-written shadow on a successful exchange. The chip echoes the
// written value one exchange later.
func (dev *RHD2164) WriteRegister(reg Register, val byte) error {
	if reg > regMask {
		return fmt.Errorf("%w: 0x%02X", ErrInvalidRegister, byte(reg))
	}
	if err := dev.Send(uint16(reg)|cmdWrite, uint16(val)); err != nil {
		return err
	}
	dev.regLW[reg] = val
	return nil
}

// Send transmits one command without touching the mode bits, doubling
// reg and val independently when the session is in doubled-bit mode.
// The transport's status is propagated unmodified; the core never
// retries.
func (dev *RHD2164) Send(reg, val uint16) error {
	if dev.doubleBits {
		dev.tx[0] = DuplicateBits(byte(reg))
		dev.tx[1] = DuplicateBits(byte(val))
		return dev.exchange(2)
	}
	dev.tx[0] = reg<<8 | val&0xFF
	return dev.exchange(1)
}

// SendRaw transmits a pre-encoded word as-is, with no doubling. Use it
// when the doubled form is already known, as with ChannelCmdDouble.
func (dev *RHD2164) SendRaw(word uint16) error {
	dev.tx[0] = word
	if dev.doubleBits {
		return dev.exchange(2)
	}
	return dev.exchange(1)
}

// ReplyValue extracts the register byte echoed in the last reply.
// The chip answers the previous command, not the one just sent.
func (dev *RHD2164) ReplyValue() byte {
	if dev.doubleBits {
		a, _ := Unsplit(dev.rx[1])
		return a
	}
	return byte(dev.rx[0])
}

// LastWritten reports the value this session last wrote to reg.
func (dev *RHD2164) LastWritten(reg Register) byte {
	return dev.regLW[reg&regMask]
}

// Registers returns a copy of the last-written register shadow, for
// reference or debugging. Unlike the protocol operations, it allocates.
func (dev *RHD2164) Registers() map[Register]byte {
	r := make(map[Register]byte, NumRegisters)
	for reg, val := range dev.regLW {
		r[Register(reg)] = val
	}
	return r
}
