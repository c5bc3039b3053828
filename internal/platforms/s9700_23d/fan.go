package s9700_23d

import (
	"github.com/ufispace/onlp2go/internal/onlp"
)

const (
	fan1 = iota + 1
	fan2
	fan3
	fan4
	fanPsu0_1
	fanPsu0_2
	fanPsu1_1
	fanPsu1_2
	fanMax
)

const (
	psu0 = 1
	psu1 = 2
)

const (
	chassisFanMaxRpm = 16000
	psuFan1MaxRpm    = 28500
	psuFan2MaxRpm    = 26000
)

const fanCaps = onlp.FanCapsGetDir | onlp.FanCapsGetPercentage | onlp.FanCapsGetRpm

type fanDesc struct {
	info onlp.FanInfo
	// bmc sensor of the presence signal, empty for psu fans
	presence string
	rpm      string
	maxRpm   int
	psu      int
}

func newFan(id int, description string, parent onlp.Oid, presence string, rpm string, maxRpm int, psu int) fanDesc {
	return fanDesc{
		info: onlp.FanInfo{
			Header: onlp.OidHeader{
				Id:          onlp.FanOid(id),
				Description: description,
				Parent:      parent,
				Status:      onlp.StatusPresent,
			},
			Caps: fanCaps,
			Dir:  onlp.FanDirF2B,
		},
		presence: presence,
		rpm:      rpm,
		maxRpm:   maxRpm,
		psu:      psu,
	}
}

var fanTable = []fanDesc{
	{},
	newFan(fan1, "Chassis Fan - 1", onlp.OidChassis, "FAN0_PRSNT_H", "FAN0_RPM", chassisFanMaxRpm, 0),
	newFan(fan2, "Chassis Fan - 2", onlp.OidChassis, "FAN1_PRSNT_H", "FAN1_RPM", chassisFanMaxRpm, 0),
	newFan(fan3, "Chassis Fan - 3", onlp.OidChassis, "FAN2_PRSNT_H", "FAN2_RPM", chassisFanMaxRpm, 0),
	newFan(fan4, "Chassis Fan - 4", onlp.OidChassis, "FAN3_PRSNT_H", "FAN3_RPM", chassisFanMaxRpm, 0),
	newFan(fanPsu0_1, "PSU 0 - Fan 1", onlp.PsuOid(psu0), "", "PSU0_FAN1", psuFan1MaxRpm, psu0),
	newFan(fanPsu0_2, "PSU 0 - Fan 2", onlp.PsuOid(psu0), "", "PSU0_FAN2", psuFan2MaxRpm, psu0),
	newFan(fanPsu1_1, "PSU 1 - Fan 1", onlp.PsuOid(psu1), "", "PSU1_FAN1", psuFan1MaxRpm, psu1),
	newFan(fanPsu1_2, "PSU 1 - Fan 2", onlp.PsuOid(psu1), "", "PSU1_FAN2", psuFan2MaxRpm, psu1),
}

type fans struct {
	onlp.Base
	onlp.FixedFans
	board *board
}

func (f *fans) SwInit() error {
	return f.Init(func() error { return nil })
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
	return fanTable[id.Id()].info.Caps, nil
}

func (f *fans) Header(id onlp.Oid) (onlp.OidHeader, error) {
	if err := f.Validate(id); err != nil {
		return onlp.OidHeader{}, err
	}
	var hdr onlp.OidHeader
	err := f.Do(func() (err error) {
		hdr, err = f.header(fanTable[id.Id()])
		return err
	})
	return hdr, err
}

func (f *fans) header(desc fanDesc) (onlp.OidHeader, error) {
	hdr := desc.info.Header
	hdr.Status = 0

	var present bool
	if desc.psu > 0 {
		var err error
		if present, err = f.board.psuPresent(desc.psu); err != nil {
			return hdr, err
		}
	} else {
		value, err := f.board.sensor(desc.presence)
		if err != nil {
			return hdr, err
		}
		present = value == 1
	}

	if present {
		hdr.Status.Set(onlp.StatusPresent)
	} else {
		hdr.Status.Set(onlp.StatusUnplugged)
	}
	return hdr, nil
}

func (f *fans) Info(id onlp.Oid) (onlp.FanInfo, error) {
	if err := f.Validate(id); err != nil {
		return onlp.FanInfo{}, err
	}
	desc := fanTable[id.Id()]
	info := desc.info
	err := f.Do(func() error {
		hdr, err := f.header(desc)
		if err != nil {
			return err
		}
		info.Header = hdr
		if !hdr.Status.Has(onlp.StatusPresent) {
			return nil
		}

		rpm, err := f.board.sensor(desc.rpm)
		if err != nil {
			return err
		}
		info.Rpm = rpm
		info.Percentage = rpm * 100 / desc.maxRpm
		if rpm == 0 {
			info.Header.Status.Set(onlp.StatusFailed)
		} else {
			info.Header.Status.Set(onlp.StatusOperational)
		}
		return nil
	})
	return info, err
}
