package s9180_32x

import (
	"fmt"

	"github.com/ufispace/onlp2go/internal/onlp"
	"github.com/ufispace/onlp2go/internal/ui"
	"github.com/ufispace/onlp2go/internal/util"
)

const (
	fan1 = iota + 1
	fan2
	fan3
	fan4
	fan5
	fan6
	fan7
	fan8
	fanPsu1
	fanPsu2
	fanMax
)

const (
	fanPresenceBus  = 59
	fanPresenceAddr = 0x20
	// fan tachometers are exposed in reverse order below hwmon1
	fanHwmon = 1
)

// fanPresence locates the active high absent bit of a fan tray
type fanPresence struct {
	reg  uint8
	mask uint8
}

var fanPresenceTable = map[int]fanPresence{
	fan1: {reg: 1, mask: 0x40},
	fan2: {reg: 1, mask: 0x40},
	fan3: {reg: 1, mask: 0x04},
	fan4: {reg: 1, mask: 0x04},
	fan5: {reg: 0, mask: 0x40},
	fan6: {reg: 0, mask: 0x40},
	fan7: {reg: 0, mask: 0x04},
	fan8: {reg: 0, mask: 0x04},
}

var fanPsu = map[int]int{
	fanPsu1: psu1,
	fanPsu2: psu2,
}

func chassisFan(id int) onlp.FanInfo {
	return onlp.FanInfo{
		Header: onlp.OidHeader{
			Id:          onlp.FanOid(id),
			Description: fmt.Sprintf("Chassis Fan %d", id),
			Parent:      onlp.OidChassis,
			Status:      onlp.StatusPresent,
		},
		Caps: onlp.FanCapsGetRpm,
		Dir:  onlp.FanDirUnknown,
	}
}

func psuFan(id int, psu int) onlp.FanInfo {
	return onlp.FanInfo{
		Header: onlp.OidHeader{
			Id:          onlp.FanOid(id),
			Description: fmt.Sprintf("PSU %d - Fan 1", psu),
			Parent:      onlp.PsuOid(psu),
			Status:      onlp.StatusPresent,
		},
		Dir: onlp.FanDirUnknown,
	}
}

var fanTable = []onlp.FanInfo{
	{},
	chassisFan(fan1),
	chassisFan(fan2),
	chassisFan(fan3),
	chassisFan(fan4),
	chassisFan(fan5),
	chassisFan(fan6),
	chassisFan(fan7),
	chassisFan(fan8),
	psuFan(fanPsu1, psu1),
	psuFan(fanPsu2, psu2),
}

type fans struct {
	onlp.Base
	onlp.FixedFans
	board *board
}

func (f *fans) SwInit() error {
	return f.Init(func() error {
		f.board.bmc()
		return nil
	})
}

func (f *fans) Ids() []onlp.Oid {
	return onlp.RangeIds(onlp.OidTypeFan, 1, fanMax-1)
}

func (f *fans) Validate(id onlp.Oid) error {
	return onlp.ValidateRange(id, onlp.OidTypeFan, 1, fanMax-1)
}

func (f *fans) Caps(id onlp.Oid) (onlp.FanCaps, error) {
	if err := f.Validate(id); err != nil {
		return 0, err
	}
	return fanTable[id.Id()].Caps, nil
}

func (f *fans) Header(id onlp.Oid) (onlp.OidHeader, error) {
	if err := f.Validate(id); err != nil {
		return onlp.OidHeader{}, err
	}
	var hdr onlp.OidHeader
	err := f.Do(func() (err error) {
		hdr, err = f.header(id.Id())
		return err
	})
	return hdr, err
}

func (f *fans) present(local int) (bool, error) {
	if psu, ok := fanPsu[local]; ok {
		return f.board.psuPresent(psu)
	}
	if f.board.bmc() {
		return false, fmt.Errorf("fan %d presence with BMC: %w", local, onlp.ErrUnsupported)
	}
	p := fanPresenceTable[local]
	value, err := f.board.env.I2C.ReadByte(fanPresenceBus, fanPresenceAddr, p.reg)
	if err != nil {
		ui.Debug("Unable to read fan presence register: %v", err)
		return false, fmt.Errorf("fan %d presence: %w: %v", local, onlp.ErrInternal, err)
	}
	return value&p.mask == 0, nil
}

// tachometer returns the hwmon channel of a chassis fan
func tachometer(local int) int {
	return fan8 - local + 1
}

// operational reports false if the fan raised an alarm or stopped
func (f *fans) operational(local int) (bool, error) {
	if f.board.bmc() {
		return false, fmt.Errorf("fan %d status with BMC: %w", local, onlp.ErrUnsupported)
	}
	channel := tachometer(local)
	alarm, err := f.board.env.Sysfs.ReadInt(util.HwmonDevicePath(fanHwmon, fmt.Sprintf("fan%d_alarm", channel)))
	if err != nil {
		return false, err
	}
	rpm, err := f.rpm(local)
	if err != nil {
		return false, err
	}
	return alarm <= 0 && rpm != 0, nil
}

func (f *fans) rpm(local int) (int, error) {
	return f.board.env.Sysfs.ReadInt(util.HwmonDevicePath(fanHwmon, fmt.Sprintf("fan%d_input", tachometer(local))))
}

func (f *fans) header(local int) (onlp.OidHeader, error) {
	hdr := fanTable[local].Header
	present, err := f.present(local)
	if err != nil {
		return hdr, err
	}
	if !present {
		hdr.Status = onlp.StatusUnplugged
		return hdr, nil
	}
	hdr.Status = onlp.StatusPresent
	if _, ok := fanPsu[local]; ok {
		return hdr, nil
	}

	ok, err := f.operational(local)
	if err != nil {
		return hdr, err
	}
	if ok {
		hdr.Status.Set(onlp.StatusOperational)
	} else {
		hdr.Status.Set(onlp.StatusFailed)
	}
	return hdr, nil
}

func (f *fans) Info(id onlp.Oid) (onlp.FanInfo, error) {
	if err := f.Validate(id); err != nil {
		return onlp.FanInfo{}, err
	}
	local := id.Id()
	info := fanTable[local]
	err := f.Do(func() error {
		hdr, err := f.header(local)
		if err != nil {
			return err
		}
		info.Header = hdr
		if !hdr.Status.Has(onlp.StatusPresent) || !info.Caps.Has(onlp.FanCapsGetRpm) {
			return nil
		}
		info.Rpm, err = f.rpm(local)
		return err
	})
	return info, err
}
