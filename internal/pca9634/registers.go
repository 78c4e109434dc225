package pca9634

// Register map and fixed bit patterns of the PCA9634 as wired on the
// SBC-MotoDriver3. Values must stay bit-exact.
const (
	regMode1   = 0x00
	regMode2   = 0x01
	regPWM0    = 0x02 // duty register of channel n is regPWM0 + n
	regLEDOut0 = 0x0C // channels 0-3
	regLEDOut1 = 0x0D // channels 4-7

	// Control byte carries auto-increment flags in bits 7:5; reads address
	// the register directly.
	regAddrMask = 0x1F

	// Bulk LEDOUT patterns (four channels x two bits).
	AllOff = 0x00
	AllOn  = 0x55
	AllPWM = 0xAA

	// Begin sequence.
	mode1Init = 0x01 // ALLCALL response on, oscillator running
	mode2Init = 0x14 // INVRT, OUTDRV totem pole

	// SoftResetAddress is the reserved bus address the chip listens on for a
	// software reset; softResetSeq must be written to it verbatim.
	SoftResetAddress = 0x03
	softResetByte1   = 0xA5
	softResetByte2   = 0x5A

	// NumChannels is the number of LED outputs.
	NumChannels = 8

	channelsPerReg = 4
	dutyFull       = 0xFF
)

var softResetSeq = [2]byte{softResetByte1, softResetByte2}
