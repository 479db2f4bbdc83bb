package rhd2164

// DuplicateBits expands each bit of v into two adjacent bits of the
// result: bit i of v lands in bits 2i and 2i+1. This is the DDR
// flip-flop line encoding, where every payload bit goes out twice.
// 0xAA becomes 0xCCCC and 0x55 becomes 0x3333.
func DuplicateBits(v byte) uint16 {
	var out uint16
	for i := 0; i < 8; i++ {
		bit := uint16(v>>i) & 1
		out |= (bit<<1 | bit) << (2 * i)
	}
	return out
}

// Unsplit reassembles the two byte streams interleaved in one received
// doubled word: bit 2i+1 of data belongs to a, bit 2i to b. Applied to
// a word built by DuplicateBits, both streams carry the original value:
// Unsplit(DuplicateBits(x)) yields a == x.
func Unsplit(data uint16) (a, b byte) {
	da := data >> 1
	for i := 0; i < 8; i++ {
		mask := byte(1) << i
		a |= byte(da>>i) & mask
		b |= byte(data>>i) & mask
	}
	return a, b
}
