package rhd2164

import (
	"errors"
	"fmt"
)

// Channel identifies one of the 32 multiplexed amplifier inputs per bank.
type Channel int

// Bank identifies one of the two physical amplifier sub-arrays the chip
// converts on every request.
type Bank int

const (
	BankA Bank = iota
	BankB
)

func (b Bank) String() string {
	switch b {
	case BankA:
		return "A"
	case BankB:
		return "B"
	default:
		return "(invalid bank)"
	}
}

// Sample requests a conversion of ch on both banks and decodes the
// in-flight reply into ch's sample slots.
//
// The chip pipelines by one request: the decoded bytes belong to the
// previous sample request, not to ch. That is documented chip behavior;
// SampleAll accounts for the offset across a full sweep.
func (dev *RHD2164) Sample(ch Channel) error {
	if ch < 0 || ch >= NumChannels {
		return fmt.Errorf("%w: %d", ErrInvalidChannel, ch)
	}
	err := dev.Send(ChannelCmd[ch], 0)
	dev.decodeSamples(ch)
	return err
}

// SampleAll sweeps all 32 channels of both banks into the sample buffer,
// honoring the one-request pipeline delay.
//
// The sweep primes the pipe with channel 1's command (no reply to decode
// yet), then walks a 34-step virtual index where step i decodes logical
// channel i-2; the last two steps re-issue channel 0's command purely to
// flush the two pending replies. Do not collapse this into a same-cycle
// request/reply loop: that desynchronizes every sample.
//
// Per-step transport statuses are joined into a single sweep-level
// error; nil means every exchange succeeded.
func (dev *RHD2164) SampleAll() error {
	cmds := &ChannelCmd
	if dev.doubleBits {
		cmds = &ChannelCmdDouble
	}

	// Prime: ask for channel 1, with channel 0's conversion arriving one
	// exchange later.
	errs := dev.SendRaw(cmds[1])

	ch := Channel(0)
	for i := 2; i < NumChannels+2; i++ {
		cmd := cmds[0]
		if i < NumChannels {
			cmd = cmds[i]
		}
		// The reply on the wire is channel i-2's conversion.
		errs = errors.Join(errs, dev.SendRaw(cmd))
		dev.decodeSamples(ch)
		ch++
	}

	// First-sample marker: channel 0 bank A keeps the only cleared flag
	// bit, so downstream framing can locate the start of a sweep.
	dev.samples[1] &^= 1

	return errs
}

// decodeSamples demultiplexes the receive scratch into ch's sample
// slots, bank A low/high then bank B low/high, forcing both flag bits
// to 1.
func (dev *RHD2164) decodeSamples(ch Channel) {
	lo := int(ch) * 2
	hi := (int(ch) + NumChannels) * 2

	if dev.doubleBits {
		dev.samples[lo], dev.samples[hi] = Unsplit(dev.rx[0])
		dev.samples[lo+1], dev.samples[hi+1] = Unsplit(dev.rx[1])
	} else {
		dev.samples[lo] = byte(dev.rx[0] >> 8)
		dev.samples[lo+1] = byte(dev.rx[0])
		dev.samples[hi] = byte(dev.rx[1] >> 8)
		dev.samples[hi+1] = byte(dev.rx[1])
	}

	dev.samples[lo+1] |= 1
	dev.samples[hi+1] |= 1
}

// Samples returns a copy of the session's sample buffer. Bank A channel
// n lives at bytes 2n and 2n+1, bank B at 2(n+32) and 2(n+32)+1; the
// second byte of each pair carries the sweep flag bit.
func (dev *RHD2164) Samples() [SampleBufSize]byte {
	return dev.samples
}

// ChannelSample returns the last captured 16-bit sample word for ch on
// bank, flag bit included. ch must be in [0,31].
func (dev *RHD2164) ChannelSample(ch Channel, bank Bank) uint16 {
	idx := int(ch) * 2
	if bank == BankB {
		idx += NumChannels * 2
	}
	return uint16(dev.samples[idx])<<8 | uint16(dev.samples[idx+1])
}
