// Package stm32rtc implements a driver for the real-time clock peripheral of
// STM32L4 microcontrollers, providing basic read-write of the current time
// and calendar date. The peripheral itself supports alarms, a periodic wakeup
// timer, and tamper timestamping, but those features remain unimplemented.
//
// The RTC registers live in the battery-backed backup domain and are write
// protected. Every mutation runs the full unlock, init-mode, write, relock
// sequence; reads need neither. The driver is written against the Register32
// interface so the register protocol can be exercised without hardware.
//
// Reference manual: https://www.st.com/resource/en/reference_manual/rm0394-stm32l41xxx42xxx43xxx44xxx45xxx46xxx-advanced-armbased-32bit-mcus-stmicroelectronics.pdf
package stm32rtc

import (
	"errors"
	"time"

	"tinygo.org/x/stm32rtc/bcd"
)

// ErrInvalidConfig is returned by Configure when the Config cannot describe a
// working clock setup.
var ErrInvalidConfig = errors.New("stm32rtc: invalid configuration")

// Device grants access to the RTC register block. A Device is the sole handle
// to the peripheral; the caller must not share it between goroutines.
type Device struct {
	regs *Registers
	wait func(ready func() bool)
}

// Config holds the one-shot capabilities and clock parameters consumed by
// Configure.
type Config struct {
	// ClockSource selects the oscillator feeding the RTC. Required.
	ClockSource ClockSource

	// ClockFrequency is the frequency of the selected source in Hz, used to
	// derive the prescalers for a 1 Hz tick. Defaults to 32768.
	ClockFrequency uint32

	// EnableBusClock enables the peripheral clock used for register
	// communication (RCC APB1 RTCAPBEN on hardware). Required.
	EnableBusClock func()

	// EnableBackupAccess unlocks backup-domain write protection and returns
	// once the unlock is confirmed (PWR CR1 DBP on hardware). Required.
	EnableBackupAccess func()

	// Wait polls ready until it reports true. Left nil it spins forever,
	// matching the hardware contract; tests substitute a bounded wait.
	Wait func(ready func() bool)
}

// New creates a driver over the given register block. Call Configure before
// any time or date operation.
func New(regs *Registers) *Device {
	return &Device{regs: regs}
}

// Configure brings up the RTC: bus clock, backup-domain access, a backup
// domain reset bracketing clock source selection, then fixed parameters
// (24-hour format, alarm output disabled, default polarity) and prescalers
// sized for a 1 Hz tick.
//
// Configure blocks until the hardware confirms init mode; on a peripheral
// that never responds it does not return.
func (d *Device) Configure(cfg Config) error {
	if cfg.EnableBusClock == nil || cfg.EnableBackupAccess == nil {
		return ErrInvalidConfig
	}
	if cfg.ClockSource == ClockSourceNone || cfg.ClockSource > ClockSourceHSEDiv32 {
		return ErrInvalidConfig
	}
	if cfg.ClockFrequency == 0 {
		cfg.ClockFrequency = 32768
	}
	d.wait = cfg.Wait
	if d.wait == nil {
		d.wait = func(ready func() bool) {
			for !ready() {
			}
		}
	}

	cfg.EnableBusClock()
	cfg.EnableBackupAccess()

	// Changing the clock source requires a backup domain reset. Assert the
	// reset, then release it in the same write that selects the source.
	d.regs.BDCR.SetBits(rccBDCRBDRST)
	bdcr := d.regs.BDCR.Get()
	bdcr &^= rccBDCRRTCSELMsk | rccBDCRBDRST
	bdcr |= uint32(cfg.ClockSource) << rccBDCRRTCSELPos
	bdcr |= rccBDCRRTCEN
	d.regs.BDCR.Set(bdcr)

	d.setWriteProtection(false)
	d.enterInitMode()
	// 24-hour format, alarm outputs disabled, output polarity high.
	d.regs.CR.ClearBits(rtcCRFMT | rtcCROSELMsk | rtcCRPOL)
	predivA, predivS := prescalers(cfg.ClockFrequency)
	d.regs.PRER.Set(predivA<<rtcPRERAPos | predivS<<rtcPRERSPos)
	d.exitInitMode()
	// Output pin defaults: push-pull alarm output, no remap.
	d.regs.OR.ClearBits(rtcORAlarmType | rtcOROutRemap)
	d.setWriteProtection(true)

	return nil
}

// prescalers derives the asynchronous and synchronous divider values that
// bring freq down to 1 Hz. The asynchronous divider is kept as close to its
// 127 maximum as the frequency allows to minimize power; a 32768 Hz source
// yields the canonical 127/255 pair.
func prescalers(freq uint32) (predivA, predivS uint32) {
	predivA = 127
	for predivA > 0 && freq%(predivA+1) != 0 {
		predivA--
	}
	predivS = freq/(predivA+1) - 1
	return predivA, predivS
}

// SetTime writes a wall-clock time. The AM/PM bit is always cleared; the
// hardware runs in 24-hour mode and the format bit instead carries the
// daylight savings flag.
func (d *Device) SetTime(t Time) {
	d.setWriteProtection(false)
	d.enterInitMode()

	ht, hu := bcd.Encode(t.Hours)
	mnt, mnu := bcd.Encode(t.Minutes)
	st, su := bcd.Encode(t.Seconds)
	d.regs.TR.Set(uint32(ht)<<rtcTRHTPos | uint32(hu&0x0F)<<rtcTRHUPos |
		uint32(mnt)<<rtcTRMNTPos | uint32(mnu&0x0F)<<rtcTRMNUPos |
		uint32(st)<<rtcTRSTPos | uint32(su&0x0F)<<rtcTRSUPos)
	if t.DaylightSavings {
		d.regs.CR.SetBits(rtcCRFMT)
	} else {
		d.regs.CR.ClearBits(rtcCRFMT)
	}

	d.exitInitMode()
	d.setWriteProtection(true)
}

// ReadTime returns the current wall-clock time. Reads need no unlock and
// leave the write protection state untouched.
func (d *Device) ReadTime() Time {
	tr := d.regs.TR.Get()
	cr := d.regs.CR.Get()
	return Time{
		Hours:           bcd.Decode(uint8(tr>>rtcTRHTPos)&0x3, uint8(tr>>rtcTRHUPos)&0xF),
		Minutes:         bcd.Decode(uint8(tr>>rtcTRMNTPos)&0x7, uint8(tr>>rtcTRMNUPos)&0xF),
		Seconds:         bcd.Decode(uint8(tr>>rtcTRSTPos)&0x7, uint8(tr>>rtcTRSUPos)&0xF),
		DaylightSavings: cr&rtcCRFMT != 0,
	}
}

// SetDate writes a calendar date. Day, month and the 1970-based year offset
// are BCD encoded; the weekday is a raw 3-bit value as the register demands.
func (d *Device) SetDate(dt Date) {
	d.setWriteProtection(false)
	d.enterInitMode()

	dtens, du := bcd.Encode(dt.Day)
	mt, mu := bcd.Encode(dt.Month)
	yt, yu := bcd.Encode(uint8(dt.Year - epochYear))
	word := uint32(dtens)<<rtcDRDTPos | uint32(du&0x0F)<<rtcDRDUPos |
		uint32(mu&0x0F)<<rtcDRMUPos |
		uint32(yt)<<rtcDRYTPos | uint32(yu&0x0F)<<rtcDRYUPos |
		uint32(dt.Weekday&0x7)<<rtcDRWDUPos
	if mt > 0 {
		word |= rtcDRMT
	}
	d.regs.DR.Set(word)

	d.exitInitMode()
	d.setWriteProtection(true)
}

// ReadDate returns the current calendar date with the year translated back
// from the hardware's epoch offset.
func (d *Device) ReadDate() Date {
	dr := d.regs.DR.Get()
	var mt uint8
	if dr&rtcDRMT != 0 {
		mt = 1
	}
	return Date{
		Weekday: uint8(dr>>rtcDRWDUPos) & 0x7,
		Day:     bcd.Decode(uint8(dr>>rtcDRDTPos)&0x3, uint8(dr>>rtcDRDUPos)&0xF),
		Month:   bcd.Decode(mt, uint8(dr>>rtcDRMUPos)&0xF),
		Year:    uint16(bcd.Decode(uint8(dr>>rtcDRYTPos)&0xF, uint8(dr>>rtcDRYUPos)&0xF)) + epochYear,
	}
}

// Set writes t's date and time fields to the RTC. The zone is ignored; store
// UTC if the application needs a fixed reference.
func (d *Device) Set(t time.Time) {
	wd := uint8(t.Weekday())
	if wd == 0 {
		wd = 7 // hardware weekday runs Monday=1 through Sunday=7
	}
	d.SetDate(Date{
		Weekday: wd,
		Day:     uint8(t.Day()),
		Month:   uint8(t.Month()),
		Year:    uint16(t.Year()),
	})
	d.SetTime(Time{
		Hours:   uint8(t.Hour()),
		Minutes: uint8(t.Minute()),
		Seconds: uint8(t.Second()),
	})
}

// Now reads the RTC into a time.Time in UTC.
func (d *Device) Now() time.Time {
	dt := d.ReadDate()
	tm := d.ReadTime()
	return time.Date(int(dt.Year), time.Month(dt.Month), int(dt.Day),
		int(tm.Hours), int(tm.Minutes), int(tm.Seconds), 0, time.UTC)
}

// setWriteProtection locks or unlocks the RTC register block. Unlocking
// requires the exact two-byte key sequence; a partial write leaves the block
// locked, and any other byte relocks it.
func (d *Device) setWriteProtection(locked bool) {
	if locked {
		d.regs.WPR.Set(wprLock)
	} else {
		d.regs.WPR.Set(wprKey1)
		d.regs.WPR.Set(wprKey2)
	}
}

// enterInitMode requests initialization mode and blocks until the hardware
// confirms it. Already being in init mode is a no-op. On a peripheral that
// never raises INITF this does not return.
func (d *Device) enterInitMode() {
	if d.regs.ISR.HasBits(rtcISRINITF) {
		return
	}
	d.regs.ISR.Set(rtcISRINIT)
	d.wait(func() bool {
		return d.regs.ISR.HasBits(rtcISRINITF)
	})
}

// exitInitMode clears the init request; the calendar restarts on its own
// within a few clock cycles, so there is nothing to poll.
func (d *Device) exitInitMode() {
	d.regs.ISR.ClearBits(rtcISRINIT)
}
