package s9600_72xc

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/ufispace/onlp2go/internal/hw/sysfs"
	"github.com/ufispace/onlp2go/internal/onlp"
	"github.com/ufispace/onlp2go/internal/platform"
	"github.com/ufispace/onlp2go/internal/testingutils"
	"github.com/ufispace/onlp2go/internal/util"
)

func newFixture(t *testing.T) (string, *testingutils.FakeBus, *onlp.Platform) {
	dir := t.TempDir()
	bus := testingutils.NewFakeBus()
	p := New(&platform.Env{
		Sysfs: sysfs.NewRoot(dir),
		I2C:   bus,
	})
	return dir, bus, p
}

// writeAllAbsent creates every presence register with all ports absent
func writeAllAbsent(t *testing.T, dir string) {
	for group, suffix := range portGroups {
		addr, err := groupCpld(group)
		assert.NoError(t, err)
		testingutils.WriteSysfs(t, dir, util.I2cDevicePath(cpldBus, addr, "cpld_sfp_abs_"+suffix), "0xff\n")
	}
	testingutils.WriteSysfs(t, dir, util.I2cDevicePath(cpldBus, cpld1Addr, "cpld_qsfp_abs_0_7"), "0xff\n")
	testingutils.WriteSysfs(t, dir, util.I2cDevicePath(cpldBus, cpld1Addr, "cpld_mgmt_sfp_status"), "0x11\n")
}

func TestPortOf(t *testing.T) {
	tests := []struct {
		port int
		kind portType
		bus  int
	}{
		{port: 0, kind: portSfp, bus: 25},
		{port: 63, kind: portSfp, bus: 88},
		{port: 64, kind: portQsfp, bus: 9},
		{port: 67, kind: portQsfp, bus: 12},
		{port: 68, kind: portQsfp, bus: 15},
		{port: 71, kind: portQsfp, bus: 18},
		{port: 72, kind: portMgmtSfp, bus: 89},
		{port: 73, kind: portMgmtSfp, bus: 90},
	}
	for _, tt := range tests {
		// WHEN
		info := portOf(tt.port)

		// THEN
		assert.Equal(t, tt.kind, info.kind, "port %d", tt.port)
		assert.Equal(t, tt.bus, info.bus(), "port %d", tt.port)
	}
	assert.Equal(t, portUnknown, portOf(74).kind)
	assert.Equal(t, portUnknown, portOf(-1).kind)
}

func TestSfp_Bitmap(t *testing.T) {
	// GIVEN
	_, _, p := newFixture(t)

	// WHEN
	bitmap, err := p.Sfp.Bitmap()

	// THEN
	assert.NoError(t, err)
	assert.Len(t, bitmap.Ports(), 74)
}

func TestSfp_Presence(t *testing.T) {
	// GIVEN
	dir, _, p := newFixture(t)
	writeAllAbsent(t, dir)
	// port 2 present in group 0 on cpld2
	testingutils.WriteSysfs(t, dir, "/sys/bus/i2c/devices/1-0031/cpld_sfp_abs_0_7", "0xfb\n")
	// port 17 present in group 2 on cpld3
	testingutils.WriteSysfs(t, dir, "/sys/bus/i2c/devices/1-0032/cpld_sfp_abs_16_23", "0xfd\n")
	// qsfp 64 present
	testingutils.WriteSysfs(t, dir, "/sys/bus/i2c/devices/1-0030/cpld_qsfp_abs_0_7", "0xfe\n")
	// mgmt 72 present, mgmt 73 absent
	testingutils.WriteSysfs(t, dir, "/sys/bus/i2c/devices/1-0030/cpld_mgmt_sfp_status", "0x10\n")

	// WHEN
	bitmap, err := p.Sfp.PresenceBitmap()

	// THEN
	assert.NoError(t, err)
	assert.Equal(t, []int{2, 17, 64, 72}, bitmap.Ports())
	_, err = p.Sfp.IsPresent(74)
	assert.ErrorIs(t, err, onlp.ErrUnsupported)
}

func TestSfp_PresenceUnreadableCountsAsPresent(t *testing.T) {
	// GIVEN
	_, _, p := newFixture(t)

	// WHEN
	bitmap, err := p.Sfp.PresenceBitmap()
	_, presentErr := p.Sfp.IsPresent(8)

	// THEN
	assert.NoError(t, err)
	assert.True(t, bitmap.IsSet(0))
	assert.Len(t, bitmap.Ports(), portNum)
	assert.ErrorIs(t, presentErr, onlp.ErrInternal)
}

func TestSfp_ReadEeprom(t *testing.T) {
	// GIVEN
	dir, _, p := newFixture(t)
	image := strings.Repeat("a", 256) + strings.Repeat("d", 256)
	testingutils.WriteSysfs(t, dir, "/sys/bus/i2c/devices/15-0050/eeprom", image)

	// WHEN
	eeprom, err1 := p.Sfp.ReadEeprom(68)
	dom, err2 := p.Sfp.ReadDom(68)

	// THEN
	assert.NoError(t, err1)
	assert.NoError(t, err2)
	assert.Equal(t, []byte(strings.Repeat("a", 256)), eeprom)
	assert.Equal(t, []byte(strings.Repeat("d", 256)), dom)
}

func TestSfp_ReadEepromFailureResetsMux(t *testing.T) {
	// GIVEN
	dir, _, p := newFixture(t)
	testingutils.WriteSysfs(t, dir, muxResetPath, "1")

	// WHEN
	_, err := p.Sfp.ReadEeprom(3)

	// THEN
	assert.ErrorIs(t, err, onlp.ErrInternal)
	assert.Equal(t, "0", testingutils.ReadSysfs(t, dir, muxResetPath))
}

func TestSfp_UnknownPort(t *testing.T) {
	// GIVEN
	_, _, p := newFixture(t)

	// WHEN
	_, eepromErr := p.Sfp.ReadEeprom(80)
	_, domErr := p.Sfp.ReadDom(80)
	_, devErr := p.Sfp.DevReadByte(80, 0x50, 0)

	// THEN
	assert.ErrorIs(t, eepromErr, onlp.ErrUnsupported)
	assert.ErrorIs(t, domErr, onlp.ErrParam)
	assert.ErrorIs(t, devErr, onlp.ErrParam)
}

func TestSfp_DevAccess(t *testing.T) {
	// GIVEN
	dir, bus, p := newFixture(t)
	testingutils.WriteSysfs(t, dir, muxResetPath, "1")
	bus.SetByte(89, 0x51, 0x60, 0x2a)

	// WHEN
	value, err1 := p.Sfp.DevReadByte(72, 0x51, 0x60)
	err2 := p.Sfp.DevWriteWord(0, 0x50, 0x10, 0x1234)
	_, err3 := p.Sfp.DevReadWord(1, 0x50, 0x10)

	// THEN
	assert.NoError(t, err1)
	assert.Equal(t, uint8(0x2a), value)
	assert.NoError(t, err2)
	assert.Equal(t, []string{"25-0050:10=1234"}, bus.Writes)
	assert.ErrorIs(t, err3, onlp.ErrInternal)
	assert.Equal(t, "0", testingutils.ReadSysfs(t, dir, muxResetPath))
}

func TestSfp_ControlGet(t *testing.T) {
	// GIVEN
	dir, _, p := newFixture(t)
	testingutils.WriteSysfs(t, dir, "/sys/bus/i2c/devices/1-0031/cpld_sfp_rx_los_32_39", "0x02\n")
	testingutils.WriteSysfs(t, dir, "/sys/bus/i2c/devices/1-0030/cpld_mgmt_sfp_status", "0x60\n")

	// WHEN
	rxLos, err1 := p.Sfp.ControlGet(33, onlp.SfpControlRxLos)
	mgmtRxLos, err2 := p.Sfp.ControlGet(73, onlp.SfpControlRxLos)
	mgmtTxFault, err3 := p.Sfp.ControlGet(73, onlp.SfpControlTxFault)
	_, qsfpErr := p.Sfp.ControlGet(65, onlp.SfpControlRxLos)
	_, lpModeErr := p.Sfp.ControlGet(0, onlp.SfpControlLpMode)

	// THEN
	assert.NoError(t, err1)
	assert.NoError(t, err2)
	assert.NoError(t, err3)
	assert.Equal(t, 1, rxLos)
	assert.Equal(t, 1, mgmtRxLos)
	assert.Equal(t, 1, mgmtTxFault)
	assert.ErrorIs(t, qsfpErr, onlp.ErrUnsupported)
	assert.ErrorIs(t, lpModeErr, onlp.ErrUnsupported)
}

func TestSfp_RxLosBitmapDefaultsToZero(t *testing.T) {
	// GIVEN
	dir, _, p := newFixture(t)
	testingutils.WriteSysfs(t, dir, "/sys/bus/i2c/devices/1-0032/cpld_sfp_rx_los_16_23", "0x81\n")

	// WHEN
	bitmap, err := p.Sfp.RxLosBitmap()

	// THEN
	assert.NoError(t, err)
	assert.Equal(t, []int{16, 23}, bitmap.Ports())
}

func TestSfp_ControlSetTxDisable(t *testing.T) {
	// GIVEN
	dir, _, p := newFixture(t)
	testingutils.WriteSysfs(t, dir, "/sys/bus/i2c/devices/1-0032/cpld_sfp_tx_dis_56_63", "0x0f\n")
	testingutils.WriteSysfs(t, dir, "/sys/bus/i2c/devices/1-0030/cpld_mgmt_sfp_conf", "0x00\n")

	// WHEN
	err1 := p.Sfp.ControlSet(56, onlp.SfpControlTxDisable, 0)
	err2 := p.Sfp.ControlSet(63, onlp.SfpControlTxDisable, 1)
	err3 := p.Sfp.ControlSet(73, onlp.SfpControlTxDisable, 1)
	err4 := p.Sfp.ControlSet(0, onlp.SfpControlRxLos, 1)

	// THEN
	assert.NoError(t, err1)
	assert.NoError(t, err2)
	assert.NoError(t, err3)
	assert.ErrorIs(t, err4, onlp.ErrUnsupported)
	assert.Equal(t, "8e", testingutils.ReadSysfs(t, dir, "/sys/bus/i2c/devices/1-0032/cpld_sfp_tx_dis_56_63"))
	assert.Equal(t, "10", testingutils.ReadSysfs(t, dir, "/sys/bus/i2c/devices/1-0030/cpld_mgmt_sfp_conf"))
}
