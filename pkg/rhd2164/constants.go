package rhd2164

// Constants from the Intan RHD2000 series datasheet. The numbering and
// code points are chip-defined wire protocol; they must match the
// silicon exactly.

// Register is a 6-bit register address. The top two bits of the command
// byte are mode bits owned by the protocol layer.
type Register byte

// General configuration registers, written by Setup.
const (
	// RegADCConfig is the ADC configuration and amplifier fast settle register.
	RegADCConfig Register = 0
	// RegSupplyBias is the supply sensor and ADC buffer bias current register.
	RegSupplyBias Register = 1
	// RegMUXBias is the MUX bias current register.
	RegMUXBias Register = 2
	// RegMUXLoad is the MUX load, temperature sensor and auxiliary digital output register.
	RegMUXLoad Register = 3
	// RegADCFormat is the ADC output format and DSP offset removal register.
	RegADCFormat Register = 4
	// RegImpedanceCheck is the impedance check control register.
	RegImpedanceCheck Register = 5
	// RegImpedanceDAC is the impedance check DAC register.
	RegImpedanceDAC Register = 6
	// RegImpedanceAmp is the impedance check amplifier select register.
	RegImpedanceAmp Register = 7

	// RegAmpBW0 through RegAmpBW5 select the on-chip amplifier bandwidth.
	RegAmpBW0 Register = 8
	RegAmpBW1 Register = 9
	RegAmpBW2 Register = 10
	RegAmpBW3 Register = 11
	RegAmpBW4 Register = 12
	RegAmpBW5 Register = 13

	// RegAmpPower0 through RegAmpPower7 gate individual amplifier power,
	// one bit per amplifier.
	RegAmpPower0 Register = 14
	RegAmpPower1 Register = 15
	RegAmpPower2 Register = 16
	RegAmpPower3 Register = 17
	RegAmpPower4 Register = 18
	RegAmpPower5 Register = 19
	RegAmpPower6 Register = 20
	RegAmpPower7 Register = 21
)

// Read-only identification and status registers.
const (
	// RegIntan0 through RegIntan4 read back the ASCII string "INTAN".
	RegIntan0 Register = 40
	RegIntan1 Register = 41
	RegIntan2 Register = 42
	RegIntan3 Register = 43
	RegIntan4 Register = 44

	// RegMISOAB reports which MISO lines are present.
	RegMISOAB Register = 59
	// RegDieRevision is the silicon die revision.
	RegDieRevision Register = 60
	// RegUnipolarAmps reports unipolar vs bipolar amplifier wiring.
	RegUnipolarAmps Register = 61
	// RegAmpCount is the on-die amplifier count.
	RegAmpCount Register = 62
	// RegChipID identifies the chip model. Also the target of dummy
	// pipeline-priming reads.
	RegChipID Register = 63
)

const (
	// NumConfigRegisters counts the writable configuration registers (0..21).
	NumConfigRegisters = 22
	// NumRegisters spans the full register address space.
	NumRegisters = 64

	// NumChannels is the amplifier channel count per bank.
	NumChannels = 32
	// NumBanks is the number of physical amplifier sub-arrays.
	NumBanks = 2
	// SampleBufSize holds two bytes per logical channel across both banks.
	SampleBufSize = NumBanks * NumChannels * 2
)

// Command mode bits, occupying the top two bits of the register byte.
const (
	cmdRead  = 0xC0 // 0b11xxxxxx
	cmdWrite = 0x80 // 0b10xxxxxx
	regMask  = 0x3F
)

// Calibration command code points.
const (
	// CmdCalibrate starts the ADC self-calibration routine.
	CmdCalibrate = 0b01010101
	// CmdClearCalibration cancels calibration.
	CmdClearCalibration = 0b01101010

	// calibSettleCycles is the chip-mandated number of dummy command
	// cycles after CmdCalibrate.
	calibSettleCycles = 9
)

// ChannelCmd is the per-channel CONVERT command table for the plain
// line encoding.
var ChannelCmd = [NumChannels]uint16{
	0, 1, 2, 3, 4, 5, 6, 7,
	8, 9, 10, 11, 12, 13, 14, 15,
	16, 17, 18, 19, 20, 21, 22, 23,
	24, 25, 26, 27, 28, 29, 30, 31,
}

// ChannelCmdDouble is ChannelCmd with every bit duplicated, pre-encoded
// for the DDR flip-flop wiring.
var ChannelCmdDouble = [NumChannels]uint16{
	0x000, 0x003, 0x00C, 0x00F, 0x030, 0x033, 0x03C, 0x03F,
	0x0C0, 0x0C3, 0x0CC, 0x0CF, 0x0F0, 0x0F3, 0x0FC, 0x0FF,
	0x300, 0x303, 0x30C, 0x30F, 0x330, 0x333, 0x33C, 0x33F,
	0x3C0, 0x3C3, 0x3CC, 0x3CF, 0x3F0, 0x3F3, 0x3FC, 0x3FF,
}

// setupDefaults is written to registers 0..21 by Setup, in order.
var setupDefaults = [NumConfigRegisters]byte{
	0b11011110, // R0: 1.225V Vref, ADC comparator bias 3, comparator select 2
	0b00100000, // R1
	0b00101000, // R2
	0b00000010, // R3
	0b11000111, // R4: two's complement ADC output
	0,          // R5
	0,          // R6
	0,          // R7
	6, 9, 2, 11, // R8-R11: 300 Hz amplifier upper bandwidth
	54, 0, // R12-R13: 20 Hz amplifier lower bandwidth
	0xFF, 0xFF, 0xFF, 0xFF, // R14-R21: all amplifiers powered
	0xFF, 0xFF, 0xFF, 0xFF,
}
