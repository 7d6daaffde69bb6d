package stm32rtc

// Time is a wall-clock snapshot at second granularity. Values are taken as
// given; the hardware encoding truncates out-of-range fields.
type Time struct {
	Hours   uint8 // 0-23
	Minutes uint8 // 0-59
	Seconds uint8 // 0-59
	// DaylightSavings is carried in the control register's hour-format bit,
	// which this driver repurposes since it always runs in 24-hour mode.
	DaylightSavings bool
}

// Date is a calendar snapshot. Weekday is 1 (Monday) through 7 (Sunday) and
// is stored raw, not BCD. Year is absolute; the hardware keeps it as a
// two-digit offset from the 1970 epoch.
type Date struct {
	Weekday uint8 // 1-7
	Day     uint8 // 1-31
	Month   uint8 // 1-12
	Year    uint16
}

// epochYear is the base for the hardware's two-digit year field.
const epochYear = 1970
