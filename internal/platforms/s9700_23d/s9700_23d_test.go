package s9700_23d

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/ufispace/onlp2go/internal/bmc"
	"github.com/ufispace/onlp2go/internal/hw/sysfs"
	"github.com/ufispace/onlp2go/internal/onie"
	"github.com/ufispace/onlp2go/internal/onlp"
	"github.com/ufispace/onlp2go/internal/platform"
	"github.com/ufispace/onlp2go/internal/platforms/common"
	"github.com/ufispace/onlp2go/internal/testingutils"
)

func sdr(name string, value string) (string, string) {
	return "ipmitool -c sdr get " + name, name + "," + value + ",unspecified,ok"
}

func newEnv(t *testing.T, dir string, outputs map[string]string, port testingutils.FakePort) *platform.Env {
	runner := testingutils.CannedRunner(outputs)
	return &platform.Env{
		Sysfs:  sysfs.NewRoot(dir),
		IoPort: port,
		Exec:   runner,
		Bmc:    bmc.NewClient("", 0, runner),
	}
}

func sensors(values map[string]string) map[string]string {
	result := map[string]string{}
	for name, value := range values {
		cmd, output := sdr(name, value)
		result[cmd] = output
	}
	return result
}

func TestFan_ChassisFan(t *testing.T) {
	// GIVEN
	outputs := sensors(map[string]string{
		"FAN0_PRSNT_H": "0x01",
		"FAN0_RPM":     "8000",
		"FAN1_PRSNT_H": "0x00",
		"FAN2_PRSNT_H": "0x01",
		"FAN2_RPM":     "0",
	})
	p := New(newEnv(t, t.TempDir(), outputs, nil))
	assert.NoError(t, p.Init())

	// WHEN
	running, err1 := p.Fan.Info(onlp.FanOid(fan1))
	absent, err2 := p.Fan.Info(onlp.FanOid(fan2))
	stopped, err3 := p.Fan.Info(onlp.FanOid(fan3))

	// THEN
	assert.NoError(t, err1)
	assert.NoError(t, err2)
	assert.NoError(t, err3)
	assert.Equal(t, onlp.StatusPresent|onlp.StatusOperational, running.Header.Status)
	assert.Equal(t, 8000, running.Rpm)
	assert.Equal(t, 50, running.Percentage)
	assert.Equal(t, onlp.FanDirF2B, running.Dir)
	assert.Equal(t, onlp.StatusUnplugged, absent.Header.Status)
	assert.Equal(t, onlp.StatusPresent|onlp.StatusFailed, stopped.Header.Status)
}

func TestFan_PsuFans(t *testing.T) {
	// GIVEN
	outputs := sensors(map[string]string{
		"PSU0_PRSNT_L": "0x00",
		"PSU0_FAN1":    "14250",
		"PSU0_FAN2":    "13000",
		"PSU1_PRSNT_L": "0x01",
	})
	p := New(newEnv(t, t.TempDir(), outputs, nil))

	// WHEN
	fan1Info, err1 := p.Fan.Info(onlp.FanOid(fanPsu0_1))
	fan2Info, err2 := p.Fan.Info(onlp.FanOid(fanPsu0_2))
	absent, err3 := p.Fan.Info(onlp.FanOid(fanPsu1_2))

	// THEN
	assert.NoError(t, err1)
	assert.NoError(t, err2)
	assert.NoError(t, err3)
	assert.Equal(t, 50, fan1Info.Percentage)
	assert.Equal(t, 50, fan2Info.Percentage)
	assert.Equal(t, onlp.PsuOid(psu0), fan2Info.Header.Parent)
	assert.Equal(t, onlp.StatusUnplugged, absent.Header.Status)
	assert.Equal(t, onlp.PsuOid(psu1), absent.Header.Parent)
}

func TestFan_BmcFailure(t *testing.T) {
	// GIVEN
	p := New(newEnv(t, t.TempDir(), map[string]string{}, nil))

	// WHEN
	_, err := p.Fan.Header(onlp.FanOid(fan4))

	// THEN
	assert.ErrorIs(t, err, onlp.ErrInternal)
}

func TestPsu_Info(t *testing.T) {
	// GIVEN
	outputs := sensors(map[string]string{
		"PSU0_PRSNT_L": "0x00",
		"PSU0_PWROK_H": "0x01",
		"PSU1_PRSNT_L": "0x00",
		"PSU1_PWROK_H": "0x00",
	})
	p := New(newEnv(t, t.TempDir(), outputs, nil))

	// WHEN
	good, err1 := p.Psu.Info(onlp.PsuOid(psu0))
	bad, err2 := p.Psu.Info(onlp.PsuOid(psu1))

	// THEN
	assert.NoError(t, err1)
	assert.NoError(t, err2)
	assert.Equal(t, onlp.StatusPresent|onlp.StatusOperational, good.Header.Status)
	assert.True(t, good.PowerGood)
	assert.Equal(t, onlp.StatusPresent|onlp.StatusFailed, bad.Header.Status)
}

func TestAttribute_Asset(t *testing.T) {
	// GIVEN
	dir := t.TempDir()
	testingutils.WriteSysfs(t, dir, "/sys/bus/i2c/devices/1-0030/cpld_version", "0x41\n")
	testingutils.WriteSysfs(t, dir, "/sys/bus/i2c/devices/1-0031/cpld_version", "0x03\n")
	testingutils.WriteSysfs(t, dir, "/sys/bus/i2c/devices/1-0032/cpld_version", "0x0a\n")
	testingutils.WriteSysfs(t, dir, idpromPath, string(onie.Encode(&onlp.OnieInfo{
		Manufacturer: "UfiSpace",
		SerialNumber: "WB19020010",
	})))
	outputs := map[string]string{
		"dmidecode -s bios-version": "5.13.1\n",
		"ipmitool mc info":          "Firmware Revision : 3.04\nAux Firmware Rev Info :\n    0x02\n    0x00\n",
		"ipmitool raw 0x3c 0x08":    " 31 2e 30 31 38 31 31 32 30\n",
	}
	// hw 2, build 5
	port := testingutils.FakePort{
		common.CpuCpldVersionPort: 0x47,
		common.BoardRevisionPort:  0x89,
	}
	p := New(newEnv(t, dir, outputs, port))

	// WHEN
	asset, err := p.Attribute.AssetInfo(onlp.OidChassis)

	// THEN
	assert.NoError(t, err)
	assert.Equal(t, "\n"+
		"    [CPU CPLD] 1.07\n"+
		"    [MB CPLD1] 1.01\n"+
		"    [MB CPLD2] 0.03\n"+
		"    [MB CPLD3] 0.10\n", asset.CpldRevision)
	assert.Equal(t, "\n"+
		"    [HW   ] 2\n"+
		"    [BUILD] 5\n"+
		"    [BIOS ] 5.13.1\n"+
		"    [BMC  ] 3.4.2\n"+
		"    [UCD  ] 1.0 181120\n", asset.FirmwareRevision)
	assert.Equal(t, "WB19020010", asset.SerialNumber)
}

func TestAttribute_AssetFailsWithoutIoPort(t *testing.T) {
	// GIVEN
	p := New(newEnv(t, t.TempDir(), map[string]string{}, testingutils.FakePort{}))

	// WHEN
	_, err := p.Attribute.AssetInfo(onlp.OidChassis)

	// THEN
	assert.ErrorIs(t, err, onlp.ErrInternal)
}
