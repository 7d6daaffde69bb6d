package stm32rtc

// An in-memory model of the RTC register block for driver tests. It mimics
// the protection behavior that matters to the access protocol: writes to the
// calendar registers are dropped unless the WPR key sequence has been entered
// and init mode is active, and raising INIT raises INITF the way hardware
// does once its clock domains synchronize.

type regWrite struct {
	reg   string
	value uint32
}

type simRTC struct {
	tr, dr, cr, isr, prer, wpr, or, bdcr *simRegister

	trace []regWrite

	unlocked    bool
	unlockStage int // 1 after 0xCA, waiting for 0x53
}

func newSimRTC() *simRTC {
	s := &simRTC{}
	s.tr = &simRegister{rtc: s, name: "TR"}
	s.dr = &simRegister{rtc: s, name: "DR"}
	s.cr = &simRegister{rtc: s, name: "CR"}
	s.isr = &simRegister{rtc: s, name: "ISR"}
	s.prer = &simRegister{rtc: s, name: "PRER"}
	s.wpr = &simRegister{rtc: s, name: "WPR"}
	s.or = &simRegister{rtc: s, name: "OR"}
	s.bdcr = &simRegister{rtc: s, name: "BDCR"}
	return s
}

func (s *simRTC) registers() *Registers {
	return &Registers{
		TR:   s.tr,
		DR:   s.dr,
		CR:   s.cr,
		ISR:  s.isr,
		PRER: s.prer,
		WPR:  s.wpr,
		OR:   s.or,
		BDCR: s.bdcr,
	}
}

func (s *simRTC) inInitMode() bool {
	return s.isr.value&rtcISRINITF != 0
}

// writesSince returns the register writes recorded after mark.
func (s *simRTC) writesSince(mark int) []regWrite {
	return s.trace[mark:]
}

type simRegister struct {
	rtc   *simRTC
	name  string
	value uint32
}

func (r *simRegister) Get() uint32 { return r.value }

func (r *simRegister) Set(v uint32) {
	s := r.rtc
	s.trace = append(s.trace, regWrite{r.name, v})

	switch r.name {
	case "WPR":
		switch v & 0xFF {
		case wprKey1:
			s.unlockStage = 1
		case wprKey2:
			if s.unlockStage == 1 {
				s.unlocked = true
			}
			s.unlockStage = 0
		default:
			s.unlocked = false
			s.unlockStage = 0
		}
		r.value = v
		return
	case "BDCR":
		// RCC register, not behind the RTC write protection.
		r.value = v
		return
	case "ISR":
		if !s.unlocked {
			return
		}
		r.value = v
		if v&rtcISRINIT != 0 {
			r.value |= rtcISRINITF
		} else {
			r.value &^= rtcISRINITF
		}
		return
	case "TR", "DR", "PRER":
		// Calendar and prescaler fields additionally require init mode.
		if !s.unlocked || !s.inInitMode() {
			return
		}
	default: // CR, OR
		if !s.unlocked {
			return
		}
	}
	r.value = v
}

func (r *simRegister) SetBits(mask uint32)      { r.Set(r.Get() | mask) }
func (r *simRegister) ClearBits(mask uint32)    { r.Set(r.Get() &^ mask) }
func (r *simRegister) HasBits(mask uint32) bool { return r.Get()&mask != 0 }
