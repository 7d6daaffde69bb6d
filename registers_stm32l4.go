//go:build stm32 && stm32l4

package stm32rtc

import (
	"device/stm32"
)

var claimed bool

// ClaimRegisters hands out the chip's RTC register block. The block exists
// exactly once; the second and later calls return nil so that only a single
// Device can ever be built over the real hardware.
func ClaimRegisters() *Registers {
	if claimed {
		return nil
	}
	claimed = true
	return &Registers{
		TR:   &stm32.RTC.TR,
		DR:   &stm32.RTC.DR,
		CR:   &stm32.RTC.CR,
		ISR:  &stm32.RTC.ISR,
		PRER: &stm32.RTC.PRER,
		WPR:  &stm32.RTC.WPR,
		OR:   &stm32.RTC.OR,
		BDCR: &stm32.RCC.BDCR,
	}
}

// EnableBusClock turns on the APB1 clock that carries register traffic to
// the RTC. The dummy PWR read lets the power interface clock settle before
// anyone touches it.
func EnableBusClock() {
	stm32.RCC.APB1ENR1.SetBits(stm32.RCC_APB1ENR1_RTCAPBEN)
	_ = stm32.PWR.CR1.Get()
}

// EnableBackupAccess lifts backup-domain write protection and spins until
// the hardware confirms it.
func EnableBackupAccess() {
	stm32.PWR.CR1.SetBits(stm32.PWR_CR1_DBP)
	for !stm32.PWR.CR1.HasBits(stm32.PWR_CR1_DBP) {
	}
}
