package rhd2164

import (
	"errors"
	"testing"
)

func TestSample(t *testing.T) {
	t.Run("Plain", func(t *testing.T) {
		spi := newFakeSPI()
		dev := NewRHD2164(spi, DefaultConfig())
		if err := dev.Sample(10); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if spi.lens[0] != 1 {
			t.Errorf("plain sample exchanged %d words, want 1", spi.lens[0])
		}
		buf := dev.Samples()
		if buf[20] != 0xAA {
			t.Errorf("bank A low = 0x%02X, want 0xAA", buf[20])
		}
		if buf[21] != 0xAA|1 {
			t.Errorf("bank A high = 0x%02X, want 0x%02X", buf[21], 0xAA|1)
		}
		if buf[20+64] != 0x55 {
			t.Errorf("bank B low = 0x%02X, want 0x55", buf[20+64])
		}
		if buf[21+64] != 0x55|1 {
			t.Errorf("bank B high = 0x%02X, want 0x%02X", buf[21+64], 0x55|1)
		}
	})

	t.Run("Doubled", func(t *testing.T) {
		spi := newFakeSPI()
		dev := NewRHD2164(spi, Config{DoubleBits: true})
		if err := dev.Sample(31); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if spi.lens[0] != 2 {
			t.Errorf("doubled sample exchanged %d words, want 2", spi.lens[0])
		}
		buf := dev.Samples()
		if buf[62] != 0xFF {
			t.Errorf("bank A low = 0x%02X, want 0xFF", buf[62])
		}
		if buf[63] != 0x01 {
			t.Errorf("bank A high = 0x%02X, want 0x01", buf[63])
		}
		if buf[126] != 0x00 {
			t.Errorf("bank B low = 0x%02X, want 0x00", buf[126])
		}
		if buf[127] != 0xFF {
			t.Errorf("bank B high = 0x%02X, want 0xFF", buf[127])
		}
	})

	t.Run("OutOfRange", func(t *testing.T) {
		dev := NewRHD2164(newFakeSPI(), DefaultConfig())
		if err := dev.Sample(32); !errors.Is(err, ErrInvalidChannel) {
			t.Errorf("expected ErrInvalidChannel, got %v", err)
		}
		if err := dev.Sample(-1); !errors.Is(err, ErrInvalidChannel) {
			t.Errorf("expected ErrInvalidChannel, got %v", err)
		}
	})

	t.Run("ChannelSample", func(t *testing.T) {
		dev := NewRHD2164(newFakeSPI(), DefaultConfig())
		if err := dev.Sample(10); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if got := dev.ChannelSample(10, BankA); got != 0xAAAB {
			t.Errorf("ChannelSample(10, A) = 0x%04X, want 0xAAAB", got)
		}
		if got := dev.ChannelSample(10, BankB); got != 0x5555 {
			t.Errorf("ChannelSample(10, B) = 0x%04X, want 0x5555", got)
		}
	})
}

func TestSampleAll(t *testing.T) {
	t.Run("Plain", func(t *testing.T) {
		spi := newFakeSPI()
		dev := NewRHD2164(spi, DefaultConfig())
		if err := dev.SampleAll(); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		// priming exchange plus 32 sweep steps
		if len(spi.lens) != NumChannels+1 {
			t.Errorf("sweep ran %d exchanges, want %d", len(spi.lens), NumChannels+1)
		}
		// the final two steps re-issue channel 0's command to flush the pipe
		if tx := spi.lastTx(); tx[0] != ChannelCmd[0] {
			t.Errorf("final command 0x%04X, want 0x%04X", tx[0], ChannelCmd[0])
		}

		buf := dev.Samples()
		if buf[1]&1 != 0 {
			t.Error("channel 0 flag bit should be 0")
		}
		if buf[3]&1 != 1 {
			t.Error("channel 1 flag bit should be 1")
		}
		for ch := 0; ch < NumChannels; ch++ {
			if buf[ch*2] != 0xAA {
				t.Errorf("bank A ch %d low = 0x%02X, want 0xAA", ch, buf[ch*2])
			}
			if buf[ch*2+1]&0xFE != 0xAA {
				t.Errorf("bank A ch %d high = 0x%02X, want 0xAA|flag", ch, buf[ch*2+1])
			}
			if buf[(ch+NumChannels)*2] != 0x55 {
				t.Errorf("bank B ch %d low = 0x%02X, want 0x55", ch, buf[(ch+NumChannels)*2])
			}
			if buf[(ch+NumChannels)*2+1] != 0x55 {
				t.Errorf("bank B ch %d high = 0x%02X, want 0x55", ch, buf[(ch+NumChannels)*2+1])
			}
		}
	})

	t.Run("Doubled", func(t *testing.T) {
		spi := newFakeSPI()
		dev := NewRHD2164(spi, Config{DoubleBits: true})
		if err := dev.SampleAll(); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if tx := spi.lastTx(); tx[0] != ChannelCmdDouble[0] {
			t.Errorf("final command 0x%04X, want 0x%04X", tx[0], ChannelCmdDouble[0])
		}

		buf := dev.Samples()
		if buf[1]&1 != 0 {
			t.Error("channel 0 flag bit should be 0")
		}
		if buf[3]&1 != 1 {
			t.Error("channel 1 flag bit should be 1")
		}
		for ch := 0; ch < NumChannels; ch++ {
			if buf[ch*2] != 0xFF {
				t.Errorf("bank A ch %d low = 0x%02X, want 0xFF", ch, buf[ch*2])
			}
			if buf[ch*2+1]&0xFE != 0x00 {
				t.Errorf("bank A ch %d high = 0x%02X, want flag only", ch, buf[ch*2+1])
			}
			if buf[(ch+NumChannels)*2] != 0x00 {
				t.Errorf("bank B ch %d low = 0x%02X, want 0x00", ch, buf[(ch+NumChannels)*2])
			}
			if buf[(ch+NumChannels)*2+1] != 0xFF {
				t.Errorf("bank B ch %d high = 0x%02X, want 0xFF", ch, buf[(ch+NumChannels)*2+1])
			}
		}
	})

	t.Run("CommandSequence", func(t *testing.T) {
		spi := newFakeSPI()
		dev := NewRHD2164(spi, DefaultConfig())
		if err := dev.SampleAll(); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		// prime with channel 1, walk 2..31, flush twice with channel 0
		if spi.sent[0][0] != ChannelCmd[1] {
			t.Errorf("priming command 0x%04X, want 0x%04X", spi.sent[0][0], ChannelCmd[1])
		}
		for i := 2; i < NumChannels; i++ {
			if spi.sent[i-1][0] != ChannelCmd[i] {
				t.Errorf("step %d sent 0x%04X, want 0x%04X", i, spi.sent[i-1][0], ChannelCmd[i])
			}
		}
		if spi.sent[31][0] != ChannelCmd[0] || spi.sent[32][0] != ChannelCmd[0] {
			t.Error("flush steps must re-issue channel 0's command")
		}
	})

	t.Run("AggregatesTransportFailures", func(t *testing.T) {
		spi := newFakeSPI()
		spi.err = errors.New("link down")
		dev := NewRHD2164(spi, DefaultConfig())
		err := dev.SampleAll()
		if err == nil {
			t.Fatal("expected error")
		}
		if !errors.Is(err, spi.err) {
			t.Errorf("expected transport error, got %v", err)
		}
		// a failing step does not stop the sweep
		if len(spi.lens) != NumChannels+1 {
			t.Errorf("sweep ran %d exchanges, want %d", len(spi.lens), NumChannels+1)
		}
	})
}
