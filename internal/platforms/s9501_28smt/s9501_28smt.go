package s9501_28smt

import (
	"errors"
	"fmt"
	"strconv"

	"github.com/ufispace/onlp2go/internal/hw/gpio"
	"github.com/ufispace/onlp2go/internal/onlp"
	"github.com/ufispace/onlp2go/internal/platform"
	"github.com/ufispace/onlp2go/internal/platforms/common"
	"github.com/ufispace/onlp2go/internal/ui"
	"github.com/ufispace/onlp2go/internal/util"
)

const (
	Name = "x86-64-ufispace-s9501-28smt"

	boardIdPath = "/sys/devices/platform/x86_64_ufispace_s9501_28smt_lpc/mb_cpld/board_id_0"

	// disconnect all channels while the mux is idle
	muxIdleDisconnect = -2

	gpioFirst = 336
	gpioLast  = 511

	// hw_build revision of the alpha 1 boards
	hwBuildAlpha1 = 4

	eepromFirstBus  = 10
	eepromLastBus   = 33
	firstEepromPort = 4
)

// DefaultMuxes are the pca9546 root and pca9548 sfp multiplexers
var DefaultMuxes = []platform.Mux{
	{Bus: 1, Addr: 0x75},
	{Bus: 1, Addr: 0x76},
	{Bus: 9, Addr: 0x71},
	{Bus: 9, Addr: 0x72},
	{Bus: 9, Addr: 0x73},
}

// BoardId is the decoded board id register of the mainboard cpld
type BoardId struct {
	Model int
	Hw    int
	Build int
}

func NewBoardId(value int) BoardId {
	return BoardId{
		Model: value & 0x0F,
		Hw:    (value & 0x30) >> 4,
		Build: (value & 0xC0) >> 6,
	}
}

func (b BoardId) HwBuild() int {
	return b.Hw<<2 | b.Build
}

// gpioRange returns the lines from high down to low, both inclusive
func gpioRange(high int, low int) []int {
	var result []int
	for i := high; i >= low; i-- {
		result = append(result, i)
	}
	return result
}

func concat(ranges ...[]int) []int {
	var result []int
	for _, r := range ranges {
		result = append(result, r...)
	}
	return result
}

// GpioDirections returns the direction of every gpio line between 336 and 511
func GpioDirections(id BoardId) map[int]gpio.Direction {
	var low, high []int
	if id.HwBuild() == hwBuildAlpha1 {
		low = concat(gpioRange(495, 488), gpioRange(483, 476), gpioRange(471, 464))
		high = concat(gpioRange(431, 424), gpioRange(419, 412), gpioRange(407, 400))
	} else {
		low = concat(gpioRange(495, 488), gpioRange(483, 476), gpioRange(471, 464),
			gpioRange(431, 424), gpioRange(419, 416), gpioRange(407, 404))
		high = concat(gpioRange(415, 412), gpioRange(403, 400))
	}

	result := map[int]gpio.Direction{}
	for i := gpioFirst; i <= gpioLast; i++ {
		result[i] = gpio.DirectionIn
	}
	for _, i := range low {
		result[i] = gpio.DirectionOutLow
	}
	for _, i := range high {
		result[i] = gpio.DirectionOutHigh
	}
	return result
}

// PortNames maps the i2c bus of each sfp eeprom to its front panel port
func PortNames() map[int]int {
	result := map[int]int{}
	for bus := eepromFirstBus; bus <= eepromLastBus; bus++ {
		result[bus] = firstEepromPort + bus - eepromFirstBus
	}
	return result
}

type board struct {
	common.Board
	env *platform.Env
}

func (b *board) muxes() []platform.Mux {
	if len(b.env.Muxes) > 0 {
		return b.env.Muxes
	}
	return DefaultMuxes
}

// BaseConfig records the bmc flag and configures the multiplexers, gpio lines and eeprom port names
func (b *board) BaseConfig() error {
	path := b.env.BmcEnablePath
	if len(path) <= 0 {
		path = platform.BmcEnableFile
	}
	if err := b.env.Sysfs.WriteFileAtomic(path, "1\n"); err != nil {
		ui.Error("Unable to record bmc enable flag: %v", err)
		return err
	}
	ui.Info("bmc enable : %t", true)

	var result error
	if err := b.initMuxIdleState(); err != nil {
		result = errors.Join(result, err)
	}
	if err := b.initGpio(); err != nil {
		result = errors.Join(result, err)
	}
	if err := b.initPortNames(); err != nil {
		result = errors.Join(result, err)
	}
	return result
}

func (b *board) initMuxIdleState() error {
	var result error
	for _, mux := range b.muxes() {
		path := util.I2cDevicePath(mux.Bus, mux.Addr, "idle_state")
		if !b.env.Sysfs.Exists(path) {
			ui.Debug("Mux %d-%04x has no idle_state attribute", mux.Bus, mux.Addr)
			continue
		}
		if err := b.env.Sysfs.WriteString(path, strconv.Itoa(muxIdleDisconnect)); err != nil {
			ui.Error("Unable to set idle state of mux %d-%04x: %v", mux.Bus, mux.Addr, err)
			result = errors.Join(result, err)
		}
	}
	return result
}

func (b *board) initGpio() error {
	value, err := b.env.Sysfs.ReadInt(boardIdPath)
	if err != nil {
		ui.Error("Get board id from LPC failed: %v", err)
		return fmt.Errorf("board id: %w", err)
	}
	id := NewBoardId(value)
	if id.HwBuild() == hwBuildAlpha1 {
		ui.Info("Alpha 1 GPIO init")
	} else {
		ui.Info("Alpha 2 and later GPIO init")
	}
	if b.env.Gpio == nil {
		return fmt.Errorf("gpio init: no gpio controller: %w", onlp.ErrInternal)
	}

	var result error
	directions := GpioDirections(id)
	for _, line := range util.SortedKeys(directions) {
		if err := b.env.Gpio.Export(line); err != nil {
			ui.Warning("Unable to export gpio %d: %v", line, err)
			result = errors.Join(result, err)
			continue
		}
		if err := b.env.Gpio.SetDirection(line, directions[line]); err != nil {
			ui.Warning("Unable to set direction of gpio %d: %v", line, err)
			result = errors.Join(result, err)
		}
	}
	if result != nil {
		return fmt.Errorf("gpio init: %w", errors.Join(onlp.ErrInternal, result))
	}
	return nil
}

// initPortNames labels the optoe eeprom clients that are already bound
func (b *board) initPortNames() error {
	var result error
	names := PortNames()
	for _, bus := range util.SortedKeys(names) {
		path := util.I2cDevicePath(bus, 0x50, "port_name")
		if !b.env.Sysfs.Exists(path) {
			continue
		}
		if err := b.env.Sysfs.WriteInt(path, names[bus]); err != nil {
			ui.Warning("Unable to set port name of bus %d: %v", bus, err)
			result = errors.Join(result, err)
		}
	}
	return result
}

// New creates the drivers of a s9501-28smt
func New(env *platform.Env) *onlp.Platform {
	return &onlp.Platform{
		Name:    Name,
		Version: 1,
		Board: &board{
			Board: common.Board{PlatformName: Name + "-r0"},
			env:   env,
		},
	}
}
