package s9600_72xc

import (
	"fmt"

	"github.com/ufispace/onlp2go/internal/onlp"
	"github.com/ufispace/onlp2go/internal/platform"
	"github.com/ufispace/onlp2go/internal/ui"
	"github.com/ufispace/onlp2go/internal/util"
)

const Name = "x86-64-ufispace-s9600-72xc"

const (
	sfpNum     = 64
	qsfpNum    = 8
	mgmtSfpNum = 2
	portNum    = sfpNum + qsfpNum + mgmtSfpNum

	eepromAddr = 0x50
	eepromSize = 256

	cpldBus   = 1
	cpld1Addr = 0x30
	cpld2Addr = 0x31
	cpld3Addr = 0x32

	muxResetPath = "/sys/devices/platform/x86_64_ufispace_s9600_72xc_lpc/mb_cpld/mux_reset"
)

type portType int

const (
	portSfp portType = iota
	portQsfp
	portMgmtSfp
	portUnknown
)

func (t portType) String() string {
	switch t {
	case portSfp:
		return "sfp+"
	case portQsfp:
		return "qsfp"
	case portMgmtSfp:
		return "mgmt sfp"
	}
	return "unknown"
}

// first i2c bus of the module eeproms of each port type
var eepromBusBase = map[portType]int{
	portSfp:     25,
	portQsfp:    9,
	portMgmtSfp: 89,
}

// cpld attribute suffix of each group of 8 sfp+ ports
var portGroups = []string{"0_7", "8_15", "16_23", "24_31", "32_39", "40_47", "48_55", "56_63"}

// mgmt sfp register bits, shifted by 4 per port
const (
	mgmtSfpAbsent    = 0x01
	mgmtSfpTxFault   = 0x02
	mgmtSfpRxLos     = 0x04
	mgmtSfpTxDisable = 0x01
)

type portInfo struct {
	kind  portType
	index int
	// offset of the eeprom bus from the base of its port type
	busIndex int
}

func portOf(port int) portInfo {
	switch {
	case port >= 0 && port < sfpNum:
		return portInfo{kind: portSfp, index: port, busIndex: port}
	case port >= sfpNum && port < sfpNum+qsfpNum:
		index := port - sfpNum
		busIndex := index
		if index > 3 {
			busIndex = index + 2
		}
		return portInfo{kind: portQsfp, index: index, busIndex: busIndex}
	case port >= sfpNum+qsfpNum && port < portNum:
		index := port - sfpNum - qsfpNum
		return portInfo{kind: portMgmtSfp, index: index, busIndex: index}
	}
	return portInfo{kind: portUnknown, index: -1}
}

func (p portInfo) bus() int {
	return eepromBusBase[p.kind] + p.busIndex
}

// groupCpld returns the cpld serving the control registers of a sfp+ port group
func groupCpld(group int) (int, error) {
	switch group {
	case 0, 1, 4, 5:
		return cpld2Addr, nil
	case 2, 3, 6, 7:
		return cpld3Addr, nil
	}
	return 0, fmt.Errorf("sfp+ group %d: %w", group, onlp.ErrUnsupported)
}

type sfps struct {
	onlp.Guard
	env *platform.Env
}

func (s *sfps) SwInit() error {
	return s.Init(func() error { return nil })
}

func (s *sfps) Denit() error {
	return nil
}

func (s *sfps) Bitmap() (onlp.SfpBitmap, error) {
	bitmap := onlp.NewSfpBitmap()
	for port := 0; port < portNum; port++ {
		bitmap.Set(port)
	}
	return bitmap, nil
}

// resetMux recovers the i2c mux tree after a failed transfer
func (s *sfps) resetMux(port int) {
	if !s.env.Sysfs.Exists(muxResetPath) {
		return
	}
	ui.Warning("Resetting i2c mux after failed access of port %d", port)
	if err := s.env.Sysfs.WriteInt(muxResetPath, 0); err != nil {
		ui.Error("Unable to reset i2c mux: %v", err)
	}
}

func (s *sfps) readBit(addr int, attribute string, mask int) (bool, error) {
	path := util.I2cDevicePath(cpldBus, addr, attribute)
	value, err := s.env.Sysfs.ReadHex(path)
	if err != nil {
		ui.Error("Unable to read %s: %v", path, err)
		return false, fmt.Errorf("%w: %v", onlp.ErrInternal, err)
	}
	return value&mask != 0, nil
}

func (s *sfps) IsPresent(port int) (bool, error) {
	info := portOf(port)
	var absent bool
	err := s.Do(func() (err error) {
		switch info.kind {
		case portSfp:
			group := info.index / 8
			addr, err := groupCpld(group)
			if err != nil {
				return err
			}
			absent, err = s.readBit(addr, "cpld_sfp_abs_"+portGroups[group], 1<<(info.index%8))
			return err
		case portQsfp:
			absent, err = s.readBit(cpld1Addr, "cpld_qsfp_abs_0_7", 1<<info.index)
			return err
		case portMgmtSfp:
			absent, err = s.readBit(cpld1Addr, "cpld_mgmt_sfp_status", mgmtSfpAbsent<<(info.index*4))
			return err
		}
		return fmt.Errorf("presence of port %d: %w", port, onlp.ErrUnsupported)
	})
	if err != nil {
		return false, err
	}
	return !absent, nil
}

// PresenceBitmap reports a port whose presence cannot be read as present
func (s *sfps) PresenceBitmap() (onlp.SfpBitmap, error) {
	bitmap := onlp.NewSfpBitmap()
	for port := 0; port < portNum; port++ {
		present, err := s.IsPresent(port)
		if err != nil {
			ui.Debug("Unable to read presence of port %d: %v", port, err)
		}
		bitmap.Mod(port, present || err != nil)
	}
	return bitmap, nil
}

// RxLosBitmap reports ports without rx los control as 0
func (s *sfps) RxLosBitmap() (onlp.SfpBitmap, error) {
	bitmap := onlp.NewSfpBitmap()
	for port := 0; port < portNum; port++ {
		value, err := s.ControlGet(port, onlp.SfpControlRxLos)
		bitmap.Mod(port, err == nil && value == 1)
	}
	return bitmap, nil
}

func (s *sfps) readEeprom(port int, offset int64) ([]byte, error) {
	info := portOf(port)
	if info.kind == portUnknown {
		return nil, fmt.Errorf("eeprom of port %d: %w", port, onlp.ErrUnsupported)
	}
	path := util.I2cDevicePath(info.bus(), eepromAddr, "eeprom")
	var data []byte
	err := s.Do(func() (err error) {
		data, err = s.env.Sysfs.ReadBytes(path, offset, eepromSize)
		return err
	})
	if err != nil {
		ui.Error("Unable to read eeprom for %s port(%d) sysfs: %s", info.kind, port, path)
		s.resetMux(port)
		return nil, fmt.Errorf("eeprom of port %d: %w: %v", port, onlp.ErrInternal, err)
	}
	return data, nil
}

func (s *sfps) ReadEeprom(port int) ([]byte, error) {
	return s.readEeprom(port, 0)
}

func (s *sfps) ReadDom(port int) ([]byte, error) {
	if portOf(port).kind == portUnknown {
		return nil, fmt.Errorf("dom of port %d: %w", port, onlp.ErrParam)
	}
	return s.readEeprom(port, eepromSize)
}

// dev runs an i2c transfer on the eeprom bus of port
func (s *sfps) dev(port int, f func(bus int) error) error {
	info := portOf(port)
	if info.kind == portUnknown {
		return fmt.Errorf("device access of port %d: %w", port, onlp.ErrParam)
	}
	err := s.Do(func() error {
		return f(info.bus())
	})
	if err != nil {
		ui.Debug("I2c access of port %d failed: %v", port, err)
		s.resetMux(port)
		return fmt.Errorf("device access of port %d: %w: %v", port, onlp.ErrInternal, err)
	}
	return nil
}

func (s *sfps) DevReadByte(port int, devAddr uint8, addr uint8) (result uint8, err error) {
	err = s.dev(port, func(bus int) (err error) {
		result, err = s.env.I2C.ReadByte(bus, int(devAddr), addr)
		return err
	})
	return result, err
}

func (s *sfps) DevWriteByte(port int, devAddr uint8, addr uint8, value uint8) error {
	return s.dev(port, func(bus int) error {
		return s.env.I2C.WriteByte(bus, int(devAddr), addr, value)
	})
}

func (s *sfps) DevReadWord(port int, devAddr uint8, addr uint8) (result uint16, err error) {
	err = s.dev(port, func(bus int) (err error) {
		result, err = s.env.I2C.ReadWord(bus, int(devAddr), addr)
		return err
	})
	return result, err
}

func (s *sfps) DevWriteWord(port int, devAddr uint8, addr uint8, value uint16) error {
	return s.dev(port, func(bus int) error {
		return s.env.I2C.WriteWord(bus, int(devAddr), addr, value)
	})
}

func (s *sfps) DevRead(port int, devAddr uint8, addr uint8, size int) (result []byte, err error) {
	err = s.dev(port, func(bus int) (err error) {
		result, err = s.env.I2C.ReadBlock(bus, int(devAddr), addr, size)
		return err
	})
	return result, err
}

func (s *sfps) DevWrite(port int, devAddr uint8, addr uint8, data []byte) error {
	return s.dev(port, func(bus int) error {
		return s.env.I2C.WriteBlock(bus, int(devAddr), addr, data)
	})
}

// controlRegister locates the register and mask of a control of port
func controlRegister(port int, control onlp.SfpControl) (addr int, attribute string, mask int, err error) {
	info := portOf(port)
	switch info.kind {
	case portSfp:
		group := info.index / 8
		if addr, err = groupCpld(group); err != nil {
			return 0, "", 0, err
		}
		mask = 1 << (info.index % 8)
		switch control {
		case onlp.SfpControlRxLos:
			return addr, "cpld_sfp_rx_los_" + portGroups[group], mask, nil
		case onlp.SfpControlTxFault:
			return addr, "cpld_sfp_tx_fault_" + portGroups[group], mask, nil
		case onlp.SfpControlTxDisable:
			return addr, "cpld_sfp_tx_dis_" + portGroups[group], mask, nil
		}
	case portMgmtSfp:
		shift := info.index * 4
		switch control {
		case onlp.SfpControlRxLos:
			return cpld1Addr, "cpld_mgmt_sfp_status", mgmtSfpRxLos << shift, nil
		case onlp.SfpControlTxFault:
			return cpld1Addr, "cpld_mgmt_sfp_status", mgmtSfpTxFault << shift, nil
		case onlp.SfpControlTxDisable:
			return cpld1Addr, "cpld_mgmt_sfp_conf", mgmtSfpTxDisable << shift, nil
		}
	}
	return 0, "", 0, fmt.Errorf("control %s of port %d: %w", control, port, onlp.ErrUnsupported)
}

func (s *sfps) ControlGet(port int, control onlp.SfpControl) (int, error) {
	addr, attribute, mask, err := controlRegister(port, control)
	if err != nil {
		return 0, err
	}
	var set bool
	err = s.Do(func() (err error) {
		set, err = s.readBit(addr, attribute, mask)
		return err
	})
	if err != nil || !set {
		return 0, err
	}
	return 1, nil
}

// ControlSet only supports tx disable, written back as a read-modify-write of the register
func (s *sfps) ControlSet(port int, control onlp.SfpControl, value int) error {
	if control != onlp.SfpControlTxDisable {
		return fmt.Errorf("set control %s of port %d: %w", control, port, onlp.ErrUnsupported)
	}
	addr, attribute, mask, err := controlRegister(port, control)
	if err != nil {
		return err
	}
	path := util.I2cDevicePath(cpldBus, addr, attribute)
	return s.Do(func() error {
		current, err := s.env.Sysfs.ReadHex(path)
		if err != nil {
			ui.Error("Unable to read %s: %v", path, err)
			return fmt.Errorf("%w: %v", onlp.ErrInternal, err)
		}
		next := current &^ mask
		if value == 1 {
			next = current | mask
		}
		if err := s.env.Sysfs.WriteHex(path, next); err != nil {
			ui.Error("Unable to write tx disable value %x to %s: %v", next, path, err)
			return fmt.Errorf("%w: %v", onlp.ErrInternal, err)
		}
		return nil
	})
}

// New creates the drivers of a s9600-72xc
func New(env *platform.Env) *onlp.Platform {
	return &onlp.Platform{
		Name:    Name,
		Version: 1,
		Sfp:     &sfps{env: env},
	}
}
