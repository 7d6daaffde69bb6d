package stm32rtc

// Register32 is a single 32-bit memory-mapped register. TinyGo's
// *volatile.Register32 satisfies it directly; tests substitute an in-memory
// implementation.
type Register32 interface {
	Get() uint32
	Set(value uint32)
	SetBits(mask uint32)
	ClearBits(mask uint32)
	HasBits(mask uint32) bool
}

// Registers is the RTC register block plus the backup-domain control register
// that gates its clock source. Exactly one Registers value exists per chip;
// on hardware it is handed out by ClaimRegisters.
type Registers struct {
	TR   Register32 // time register (BCD)
	DR   Register32 // date register (BCD + raw weekday)
	CR   Register32 // control register
	ISR  Register32 // initialization and status register
	PRER Register32 // prescaler register
	WPR  Register32 // write protection register
	OR   Register32 // option register (output pin behavior)
	BDCR Register32 // RCC backup domain control register
}

// Write protection key bytes. The hardware opens the register block only
// after 0xCA then 0x53 are written to WPR in that order; any other byte
// relocks it.
const (
	wprKey1 = 0xCA
	wprKey2 = 0x53
	wprLock = 0xFF
)

// RTC_TR bit fields
const (
	rtcTRSUPos  = 0  // second units
	rtcTRSTPos  = 4  // second tens
	rtcTRMNUPos = 8  // minute units
	rtcTRMNTPos = 12 // minute tens
	rtcTRHUPos  = 16 // hour units
	rtcTRHTPos  = 20 // hour tens
	rtcTRPM     = 1 << 22
)

// RTC_DR bit fields
const (
	rtcDRDUPos  = 0       // date units
	rtcDRDTPos  = 4       // date tens
	rtcDRMUPos  = 8       // month units
	rtcDRMT     = 1 << 12 // month tens (single bit)
	rtcDRWDUPos = 13      // weekday, raw 1-7
	rtcDRYUPos  = 16      // year units
	rtcDRYTPos  = 20      // year tens
)

// RTC_CR bit fields
const (
	rtcCRFMT     = 1 << 6 // hour format; repurposed as daylight savings flag
	rtcCRPOL     = 1 << 20
	rtcCROSELPos = 21
	rtcCROSELMsk = 0x3 << rtcCROSELPos
)

// RTC_ISR bit fields
const (
	rtcISRINITF = 1 << 6 // init mode entered
	rtcISRINIT  = 1 << 7 // init mode request
)

// RTC_PRER bit fields
const (
	rtcPRERSPos = 0  // PREDIV_S, synchronous divider
	rtcPRERAPos = 16 // PREDIV_A, asynchronous divider
)

// RTC_OR bit fields
const (
	rtcORAlarmType = 1 << 0
	rtcOROutRemap  = 1 << 1
)

// RCC_BDCR bit fields
const (
	rccBDCRRTCSELPos = 8
	rccBDCRRTCSELMsk = 0x3 << rccBDCRRTCSELPos
	rccBDCRRTCEN     = 1 << 15
	rccBDCRBDRST     = 1 << 16
)

// ClockSource selects the oscillator feeding the RTC, encoded in the BDCR
// RTCSEL field.
type ClockSource uint8

const (
	ClockSourceNone     ClockSource = iota // 00: no clock
	ClockSourceLSE                         // 01: low speed external oscillator
	ClockSourceLSI                         // 10: low speed internal oscillator
	ClockSourceHSEDiv32                    // 11: high speed external / 32
)
