package s9700_23d

import (
	"fmt"

	"github.com/ufispace/onlp2go/internal/hw/sysfs"
	"github.com/ufispace/onlp2go/internal/onlp"
	"github.com/ufispace/onlp2go/internal/platform"
	"github.com/ufispace/onlp2go/internal/platforms/common"
	"github.com/ufispace/onlp2go/internal/ui"
	"github.com/ufispace/onlp2go/internal/util"
)

const (
	Name = "x86-64-ufispace-s9700-23d"

	idpromPath = "/sys/bus/i2c/devices/0-0057/eeprom"
	cpldBus    = 1
)

// i2c addresses of the mainboard cplds
var cpldAddrs = []int{0x30, 0x31, 0x32}

// board holds the handles shared by the driver modules of one s9700-23d
type board struct {
	env *platform.Env
}

// sensor reads a bmc sensor, a sensor without reading is an error
func (b *board) sensor(name string) (int, error) {
	value, err := b.env.Bmc.Sensor(name)
	if err != nil {
		ui.Debug("Unable to read sensor %s from BMC: %v", name, err)
		return 0, err
	}
	return int(value), nil
}

// psuPresent reads the active low presence signal of a psu
func (b *board) psuPresent(psu int) (bool, error) {
	value, err := b.sensor(fmt.Sprintf("PSU%d_PRSNT_L", psu-1))
	if err != nil {
		return false, err
	}
	return value == 0, nil
}

func (b *board) psuPowerGood(psu int) (bool, error) {
	value, err := b.sensor(fmt.Sprintf("PSU%d_PWROK_H", psu-1))
	if err != nil {
		return false, err
	}
	return value == 1, nil
}

func readCpldVersion(root *sysfs.Root, addr int) (common.CpldVersion, error) {
	value, err := root.ReadHex(util.I2cDevicePath(cpldBus, addr, "cpld_version"))
	if err != nil {
		return common.CpldVersion{}, err
	}
	if value < 0 {
		return common.CpldVersion{}, fmt.Errorf("invalid cpld version %d: %w", value, onlp.ErrInternal)
	}
	return common.NewCpldVersion(value), nil
}

func (b *board) asset(asset *onlp.AssetInfo) error {
	cpu, err := b.env.IoPort.ReadByte(common.CpuCpldVersionPort)
	if err != nil {
		ui.Error("Unable to read CPU CPLD version: %v", err)
		return fmt.Errorf("cpu cpld version: %w: %v", onlp.ErrInternal, err)
	}
	cpuVersion := common.NewCpldVersion(int(cpu))

	var mb []common.CpldVersion
	for _, addr := range cpldAddrs {
		version, err := readCpldVersion(b.env.Sysfs, addr)
		if err != nil {
			ui.Error("Unable to read MB CPLD version: %v", err)
			return err
		}
		mb = append(mb, version)
	}
	asset.CpldRevision = fmt.Sprintf("\n"+
		"    [CPU CPLD] %s\n"+
		"    [MB CPLD1] %s\n"+
		"    [MB CPLD2] %s\n"+
		"    [MB CPLD3] %s\n",
		cpuVersion, mb[0], mb[1], mb[2])

	revision, err := common.ReadBoardRevision(b.env.IoPort)
	if err != nil {
		ui.Error("Unable to read MB CPLD1 board type revision: %v", err)
		return err
	}
	bios, err := b.env.BiosVersion()
	if err != nil {
		ui.Error("Unable to read BIOS version: %v", err)
		return err
	}
	mc, err := b.env.Bmc.McInfo()
	if err != nil {
		ui.Error("Unable to read BMC version: %v", err)
		return err
	}
	ucdVersion, ucdDate, err := b.env.Bmc.UcdVersion()
	if err != nil {
		ui.Error("Unable to read UCD version: %v", err)
		return err
	}

	asset.FirmwareRevision = fmt.Sprintf("\n"+
		"    [HW   ] %d\n"+
		"    [BUILD] %d\n"+
		"    [BIOS ] %s\n"+
		"    [BMC  ] %s\n"+
		"    [UCD  ] %s %s\n",
		revision.Hw, revision.Build, bios, mc, ucdVersion, ucdDate)
	return nil
}

// New creates the drivers of a s9700-23d
func New(env *platform.Env) *onlp.Platform {
	b := &board{env: env}
	return &onlp.Platform{
		Name:    Name,
		Version: 1,
		Fan:     &fans{board: b},
		Psu:     &psus{board: b},
		Attribute: &common.Attributes{
			Env:        env,
			IdpromPath: idpromPath,
			Asset:      b.asset,
		},
		Board: &common.Board{PlatformName: Name + "-r0"},
	}
}
