package s9701_78dc

import (
	"errors"
	"fmt"
	"math"

	"github.com/ufispace/onlp2go/internal/onlp"
	"github.com/ufispace/onlp2go/internal/platform"
	"github.com/ufispace/onlp2go/internal/ui"
	"github.com/ufispace/onlp2go/internal/util"
)

const Name = "x86-64-ufispace-s9701-78dc"

const (
	thermalCpuPeci = iota + 1
	thermalCpuEnv
	thermalCpuEnv2
	thermalMacFront
	thermalMacDie
	thermal0x48
	thermal0x49
	thermalPsu0
	thermalPsu1
	thermalCpuPkg
	thermalCpu1
	thermalCpu2
	thermalCpu3
	thermalCpu4
	thermalCpu5
	thermalCpu6
	thermalCpu7
	thermalCpu8
	thermalMax
)

// coretemp hwmon directories, the index depends on the probe order
var coretempPrefixes = []string{
	"/sys/devices/platform/coretemp.0/hwmon/hwmon1/",
	"/sys/devices/platform/coretemp.0/hwmon/hwmon0/",
}

type thermalDesc struct {
	info onlp.ThermalInfo
	// bmc sensor name, empty for coretemp sensors
	sensor string
}

func newThermal(id int, description string, sensor string, thresholds onlp.ThermalThresholds) thermalDesc {
	return thermalDesc{
		info: onlp.ThermalInfo{
			Header: onlp.OidHeader{
				Id:          onlp.ThermalOid(id),
				Description: description,
				Parent:      onlp.OidChassis,
				Status:      onlp.StatusPresent,
			},
			Caps:       onlp.ThermalCapsAll,
			Thresholds: thresholds,
		},
		sensor: sensor,
	}
}

func thresholds(warning int, critical int, shutdown int) onlp.ThermalThresholds {
	return onlp.ThermalThresholds{Warning: warning, Error: critical, Shutdown: shutdown}
}

var thermalTable = []thermalDesc{
	{},
	newThermal(thermalCpuPeci, "TEMP_CPU_PECI", "TEMP_CPU_PECI", thresholds(85000, 95000, 100000)),
	newThermal(thermalCpuEnv, "TEMP_CPU_ENV", "TEMP_CPU_ENV", thresholds(80000, 85000, 90000)),
	newThermal(thermalCpuEnv2, "TEMP_CPU_ENV_2", "TEMP_CPU_ENV_2", thresholds(65000, 70000, 80000)),
	newThermal(thermalMacFront, "TEMP_MAC_FRONT", "TEMP_MAC_FRONT", thresholds(80000, 85000, 90000)),
	newThermal(thermalMacDie, "TEMP_MAC_DIE", "TEMP_MAC_DIE", thresholds(90000, 100000, 110000)),
	newThermal(thermal0x48, "TEMP_0x48", "TEMP_0x48", thresholds(60000, 65000, 70000)),
	newThermal(thermal0x49, "TEMP_0x49", "TEMP_0x49", thresholds(65000, 70000, 80000)),
	newThermal(thermalPsu0, "PSU 0 - Thermal Sensor 1", "PSU0_TEMP", thresholds(65000, 70000, 75000)),
	newThermal(thermalPsu1, "PSU 1 - Thermal Sensor 1", "PSU1_TEMP", thresholds(65000, 70000, 75000)),
	newThermal(thermalCpuPkg, "CPU Package", "", onlp.DefaultThresholds),
	newThermal(thermalCpu1, "CPU Thermal 1", "", onlp.DefaultThresholds),
	newThermal(thermalCpu2, "CPU Thermal 2", "", onlp.DefaultThresholds),
	newThermal(thermalCpu3, "CPU Thermal 3", "", onlp.DefaultThresholds),
	newThermal(thermalCpu4, "CPU Thermal 4", "", onlp.DefaultThresholds),
	newThermal(thermalCpu5, "CPU Thermal 5", "", onlp.DefaultThresholds),
	newThermal(thermalCpu6, "CPU Thermal 6", "", onlp.DefaultThresholds),
	newThermal(thermalCpu7, "CPU Thermal 7", "", onlp.DefaultThresholds),
	newThermal(thermalCpu8, "CPU Thermal 8", "", onlp.DefaultThresholds),
}

type thermals struct {
	onlp.Base
	env *platform.Env
}

func (t *thermals) SwInit() error {
	return t.Init(func() error { return nil })
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
	info, err := t.Info(id)
	return info.Header, err
}

func (t *thermals) Info(id onlp.Oid) (onlp.ThermalInfo, error) {
	if err := t.Validate(id); err != nil {
		return onlp.ThermalInfo{}, err
	}
	local := id.Id()
	desc := thermalTable[local]
	info := desc.info
	err := t.Do(func() error {
		if len(desc.sensor) > 0 {
			return t.readBmc(desc.sensor, &info)
		}
		return t.readCoretemp(local-thermalCpuPkg+1, &info)
	})
	return info, err
}

// readBmc converts a bmc reading in degrees to millidegrees.
// A sensor without reading is reported as not present.
func (t *thermals) readBmc(sensor string, info *onlp.ThermalInfo) error {
	value, err := t.env.Bmc.Sensor(sensor)
	if errors.Is(err, onlp.ErrMissing) {
		info.Header.Status.Clear(onlp.StatusPresent)
		return nil
	}
	if err != nil {
		ui.Debug("Unable to read sensor %s from BMC: %v", sensor, err)
		return err
	}
	info.MilliCelsius = int(math.Round(value * 1000))
	return nil
}

func (t *thermals) readCoretemp(channel int, info *onlp.ThermalInfo) error {
	var err error
	for _, prefix := range coretempPrefixes {
		var value int
		value, err = t.env.Sysfs.ReadInt(prefix + util.TempInput(channel))
		if err == nil {
			info.MilliCelsius = value
			return nil
		}
	}
	if errors.Is(err, onlp.ErrMissing) {
		info.Header.Status.Clear(onlp.StatusPresent)
		return nil
	}
	ui.Debug("Unable to read coretemp channel %d: %v", channel, err)
	return fmt.Errorf("read %s: %w", info.Header.Description, err)
}

// New creates the drivers of a s9701-78dc
func New(env *platform.Env) *onlp.Platform {
	return &onlp.Platform{
		Name:    Name,
		Version: 1,
		Thermal: &thermals{env: env},
	}
}
