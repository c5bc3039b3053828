package s9180_32x

import (
	"fmt"

	"github.com/ufispace/onlp2go/internal/onlp"
	"github.com/ufispace/onlp2go/internal/pmbus"
	"github.com/ufispace/onlp2go/internal/ui"
	"github.com/ufispace/onlp2go/internal/util"
)

const (
	thermalFrontMac = iota + 1
	thermalRearMac
	thermalAsic
	thermalCpu1
	thermalCpu2
	thermalCpu3
	thermalCpu4
	thermalCpuBoard
	thermalPsu1Near
	thermalPsu2Near
	thermalQsfpNear
	thermalPsu1_1
	thermalPsu1_2
	thermalPsu2_1
	thermalPsu2_2
	thermalMax
)

const (
	psuPmbusAddr    = 0x58
	psuTemperature1 = 0x8D
	psuTemperature2 = 0x8E
)

type thermalSource int

const (
	// hwmon sensor of the mainboard, owned by the BMC when enabled
	sourceMac thermalSource = iota
	// cpu and cpu board sensors, always readable
	sourceCpu
	// pmbus temperature of a psu
	sourcePsu
)

type thermalDesc struct {
	info   onlp.ThermalInfo
	source thermalSource
	// hwmon index and temp channel
	hwmon   int
	channel int
	// psu and pmbus location
	psu int
	bus int
	reg uint8
}

func chassisThermal(id int, description string, source thermalSource, hwmon int, channel int, warning int, critical int, shutdown int) thermalDesc {
	return thermalDesc{
		info: onlp.ThermalInfo{
			Header: onlp.OidHeader{
				Id:          onlp.ThermalOid(id),
				Description: description,
				Parent:      onlp.OidChassis,
				Status:      onlp.StatusPresent,
			},
			Caps:       onlp.ThermalCapsAll,
			Thresholds: onlp.ThermalThresholds{Warning: warning, Error: critical, Shutdown: shutdown},
		},
		source:  source,
		hwmon:   hwmon,
		channel: channel,
	}
}

func psuThermal(id int, description string, psu int, bus int, reg uint8) thermalDesc {
	return thermalDesc{
		info: onlp.ThermalInfo{
			Header: onlp.OidHeader{
				Id:          onlp.ThermalOid(id),
				Description: description,
				Parent:      onlp.PsuOid(psu),
				Status:      onlp.StatusPresent,
			},
			Caps: onlp.ThermalCapsGetTemperature,
		},
		source: sourcePsu,
		psu:    psu,
		bus:    bus,
		reg:    reg,
	}
}

// thermalTable is indexed by local id, index 0 is unused
var thermalTable = []thermalDesc{
	{},
	chassisThermal(thermalFrontMac, "Front MAC Thermal", sourceMac, 2, 1, 62700, 66000, 69000),
	chassisThermal(thermalRearMac, "Rear MAC Thermal", sourceMac, 5, 1, 5727, 60260, 63273),
	chassisThermal(thermalAsic, "ASIC Thermal", sourceMac, 2, 2, 84787, 89250, 93712),
	chassisThermal(thermalCpu1, "CPU Thermal 1", sourceCpu, 0, 2, 77000, 95000, 105000),
	chassisThermal(thermalCpu2, "CPU Thermal 2", sourceCpu, 0, 3, 77000, 95000, 105000),
	chassisThermal(thermalCpu3, "CPU Thermal 3", sourceCpu, 0, 4, 77000, 95000, 105000),
	chassisThermal(thermalCpu4, "CPU Thermal 4", sourceCpu, 0, 5, 77000, 95000, 105000),
	chassisThermal(thermalCpuBoard, "CPU Board Thermal", sourceCpu, 3, 1, 59774, 62920, 66066),
	chassisThermal(thermalPsu1Near, "Near PSU1 Thermal", sourceMac, 4, 1, 61132, 64350, 67567),
	chassisThermal(thermalPsu2Near, "Near PSU2 Thermal", sourceMac, 7, 1, 61132, 64350, 67567),
	chassisThermal(thermalQsfpNear, "Near QSFP Thermal", sourceMac, 6, 1, 55508, 58430, 61351),
	psuThermal(thermalPsu1_1, "PSU-1 Thermal 1", psu1, 58, psuTemperature1),
	psuThermal(thermalPsu1_2, "PSU-1 Thermal 2", psu1, 58, psuTemperature2),
	psuThermal(thermalPsu2_1, "PSU-2 Thermal 1", psu2, 57, psuTemperature1),
	psuThermal(thermalPsu2_2, "PSU-2 Thermal 2", psu2, 57, psuTemperature2),
}

// the cpu board sensor is attached to the BMC when it is enabled
const cpuBoardBmcHwmon = 1

type thermals struct {
	onlp.Base
	board *board
}

func (t *thermals) SwInit() error {
	return t.Init(func() error {
		t.board.bmc()
		return nil
	})
}

func (t *thermals) Ids() []onlp.Oid {
	return onlp.RangeIds(onlp.OidTypeThermal, 1, thermalMax-1)
}

func (t *thermals) Validate(id onlp.Oid) error {
	return onlp.ValidateRange(id, onlp.OidTypeThermal, 1, thermalMax-1)
}

func (t *thermals) Caps(id onlp.Oid) (onlp.ThermalCaps, error) {
	if err := t.Validate(id); err != nil {
		return 0, err
	}
	return thermalTable[id.Id()].info.Caps, nil
}

func (t *thermals) Header(id onlp.Oid) (onlp.OidHeader, error) {
	if err := t.Validate(id); err != nil {
		return onlp.OidHeader{}, err
	}
	var hdr onlp.OidHeader
	err := t.Do(func() (err error) {
		hdr, err = t.header(thermalTable[id.Id()])
		return err
	})
	return hdr, err
}

func (t *thermals) header(desc thermalDesc) (onlp.OidHeader, error) {
	hdr := desc.info.Header
	switch desc.source {
	case sourceMac:
		if t.board.bmc() {
			return hdr, fmt.Errorf("%s is read by the BMC: %w", hdr.Id, onlp.ErrUnsupported)
		}
		hdr.Status = onlp.StatusPresent
	case sourceCpu:
		hdr.Status = onlp.StatusPresent
	case sourcePsu:
		present, err := t.board.psuPresent(desc.psu)
		if err != nil {
			return hdr, err
		}
		if present {
			hdr.Status = onlp.StatusPresent
		} else {
			hdr.Status = onlp.StatusUnplugged
		}
	}
	return hdr, nil
}

func (t *thermals) Info(id onlp.Oid) (onlp.ThermalInfo, error) {
	if err := t.Validate(id); err != nil {
		return onlp.ThermalInfo{}, err
	}
	desc := thermalTable[id.Id()]
	info := desc.info
	err := t.Do(func() error {
		hdr, err := t.header(desc)
		if err != nil {
			return err
		}
		info.Header = hdr
		return t.read(desc, &info)
	})
	return info, err
}

func (t *thermals) read(desc thermalDesc, info *onlp.ThermalInfo) error {
	env := t.board.env
	switch desc.source {
	case sourceMac, sourceCpu:
		hwmon := desc.hwmon
		if desc.info.Header.Id.Id() == thermalCpuBoard && t.board.bmc() {
			hwmon = cpuBoardBmcHwmon
		}
		value, err := env.Sysfs.ReadInt(util.HwmonPath(hwmon, util.TempInput(desc.channel)))
		if err != nil {
			ui.Debug("Unable to read %s: %v", desc.info.Header.Description, err)
			return err
		}
		info.MilliCelsius = value
	case sourcePsu:
		if !info.Header.Status.Has(onlp.StatusPresent) {
			return nil
		}
		value, err := env.I2C.ReadWord(desc.bus, psuPmbusAddr, desc.reg)
		if err != nil {
			ui.Debug("Unable to read %s: %v", desc.info.Header.Description, err)
			return fmt.Errorf("%s: %w: %v", desc.info.Header.Description, onlp.ErrInternal, err)
		}
		info.MilliCelsius = pmbus.MilliCelsius(value)
	}
	return nil
}
