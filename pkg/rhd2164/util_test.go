package rhd2164

import (
	"testing"
)

func TestDuplicateBits(t *testing.T) {
	t.Run("KnownPatterns", func(t *testing.T) {
		vectors := []struct {
			in  byte
			out uint16
		}{
			{0xAA, 0xCCCC},
			{0x55, 0x3333},
			{0x00, 0x0000},
			{0xFF, 0xFFFF},
			{0x01, 0x0003},
			{0x80, 0xC000},
		}
		for _, v := range vectors {
			if got := DuplicateBits(v.in); got != v.out {
				t.Errorf("DuplicateBits(0x%02X) = 0x%04X, want 0x%04X", v.in, got, v.out)
			}
		}
	})

	t.Run("RoundTrip", func(t *testing.T) {
		for x := 0; x < 256; x++ {
			a, b := Unsplit(DuplicateBits(byte(x)))
			if a != byte(x) {
				t.Errorf("Unsplit(DuplicateBits(0x%02X)) a = 0x%02X", x, a)
			}
			if b != byte(x) {
				t.Errorf("Unsplit(DuplicateBits(0x%02X)) b = 0x%02X", x, b)
			}
		}
	})
}

func TestUnsplit(t *testing.T) {
	t.Run("KnownPatterns", func(t *testing.T) {
		vectors := []struct {
			in uint16
			a  byte
		}{
			{0xCCCC, 0xAA},
			{0x3333, 0x55},
		}
		for _, v := range vectors {
			if a, _ := Unsplit(v.in); a != v.a {
				t.Errorf("Unsplit(0x%04X) a = 0x%02X, want 0x%02X", v.in, a, v.a)
			}
		}
	})

	t.Run("Interleaved", func(t *testing.T) {
		// odd bits belong to a, even bits to b
		a, b := Unsplit(0xAAAA)
		if a != 0xFF || b != 0x00 {
			t.Errorf("Unsplit(0xAAAA) = (0x%02X, 0x%02X), want (0xFF, 0x00)", a, b)
		}
		a, b = Unsplit(0x5555)
		if a != 0x00 || b != 0xFF {
			t.Errorf("Unsplit(0x5555) = (0x%02X, 0x%02X), want (0x00, 0xFF)", a, b)
		}
	})
}
