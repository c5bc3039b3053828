package s9180_32x

import (
	"fmt"
	"sync"

	"github.com/ufispace/onlp2go/internal/onlp"
	"github.com/ufispace/onlp2go/internal/platform"
	"github.com/ufispace/onlp2go/internal/platforms/common"
	"github.com/ufispace/onlp2go/internal/ui"
)

const (
	Name = "x86-64-ufispace-s9180-32x"

	idpromPath = "/sys/bus/i2c/devices/0-0051/eeprom"

	psuStatusBus  = 0
	psuStatusAddr = 0x25
	psuStatusReg  = 0x00

	cpldBus        = 44
	cpldAddr       = 0x33
	cpldVersionReg = 0x01
)

const (
	psu1 = 1
	psu2 = 2
)

// psu status register bits
var (
	psuAbsentBit    = map[int]uint{psu1: 4, psu2: 1}
	psuPowerGoodBit = map[int]uint{psu1: 3, psu2: 0}
)

// board holds the state shared by the driver modules of one s9180
type board struct {
	env *platform.Env

	bmcOnce    sync.Once
	bmcEnabled bool
}

// bmc returns whether the board management controller owns the sensors.
// The flag is read once.
func (b *board) bmc() bool {
	b.bmcOnce.Do(func() {
		b.bmcEnabled = b.env.BmcEnabled()
		ui.Debug("s9180 BMC enabled: %v", b.bmcEnabled)
	})
	return b.bmcEnabled
}

func (b *board) psuStatusBit(local int, bits map[int]uint) (bool, error) {
	if b.bmc() {
		return false, fmt.Errorf("psu %d status with BMC: %w", local, onlp.ErrUnsupported)
	}
	bit, ok := bits[local]
	if !ok {
		return false, fmt.Errorf("unknown psu %d: %w", local, onlp.ErrParam)
	}
	value, err := b.env.I2C.ReadByte(psuStatusBus, psuStatusAddr, psuStatusReg)
	if err != nil {
		ui.Debug("Unable to read psu status register: %v", err)
		return false, fmt.Errorf("psu %d status: %w: %v", local, onlp.ErrInternal, err)
	}
	return (value>>bit)&0x01 != 0, nil
}

// psuPresent reports the presence of a psu, the absent bit is active high
func (b *board) psuPresent(local int) (bool, error) {
	absent, err := b.psuStatusBit(local, psuAbsentBit)
	return !absent && err == nil, err
}

func (b *board) psuPowerGood(local int) (bool, error) {
	return b.psuStatusBit(local, psuPowerGoodBit)
}

func (b *board) asset(asset *onlp.AssetInfo) error {
	value, err := b.env.I2C.ReadByte(cpldBus, cpldAddr, cpldVersionReg)
	if err != nil {
		ui.Error("Unable to read CPLD version: %v", err)
		return fmt.Errorf("cpld version: %w: %v", onlp.ErrInternal, err)
	}
	asset.CpldRevision = fmt.Sprintf("0x%02x\n", value&0x3F)

	bios, err := b.env.BiosVersion()
	if err != nil {
		ui.Error("Unable to read BIOS version: %v", err)
		return err
	}
	asset.FirmwareRevision = fmt.Sprintf("\n    [BIOS] %s\n", bios)
	return nil
}

// New creates the drivers of a s9180-32x
func New(env *platform.Env) *onlp.Platform {
	b := &board{env: env}
	return &onlp.Platform{
		Name:    Name,
		Version: 1,
		Thermal: &thermals{board: b},
		Fan:     &fans{board: b},
		Psu:     &psus{board: b},
		Attribute: &common.Attributes{
			Env:        env,
			IdpromPath: idpromPath,
			Asset:      b.asset,
			OnInit: func() error {
				b.bmc()
				return nil
			},
		},
		Board: &common.Board{PlatformName: Name + "-r0"},
	}
}
