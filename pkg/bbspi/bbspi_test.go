package bbspi

import (
	"os"
	"testing"
	"time"

	"github.com/warthog618/gpio"
)

// Loopback test: wire MOSI to MISO. Runs on a Pi header only.
func TestExchangeLoopback(t *testing.T) {
	if os.Getenv("TEST_BBSPI") == "" {
		t.Skip("set 'TEST_BBSPI' in environment to run this test")
	}

	if err := gpio.Open(); err != nil {
		t.Fatalf("failed to open gpio: %v", err)
	}
	defer gpio.Close()

	s := New(time.Microsecond, 21, 20, 16, 19)
	defer s.Close()

	tx := []uint16{0xAA55, 0x3C0F}
	rx := make([]uint16, 2)

	n, err := s.Exchange(tx, rx)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if n != 2 {
		t.Fatalf("exchanged %d words, want 2", n)
	}
	for i := range tx {
		if rx[i] != tx[i] {
			t.Errorf("word %d: sent 0x%04X, read 0x%04X", i, tx[i], rx[i])
		}
	}
}
