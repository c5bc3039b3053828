package sysfs

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/ufispace/onlp2go/internal/onlp"
)

func writeFixture(t *testing.T, root string, path string, content string) {
	full := filepath.Join(root, path)
	require.NoError(t, os.MkdirAll(filepath.Dir(full), 0755))
	require.NoError(t, os.WriteFile(full, []byte(content), 0644))
}

func TestRoot_Path(t *testing.T) {
	// GIVEN
	root := NewRoot("/tmp/fixture")
	host := NewRoot("")

	// THEN
	assert.Equal(t, "/tmp/fixture/sys/class/hwmon/hwmon0/temp2_input", root.Path("/sys/class/hwmon/hwmon0/temp2_input"))
	assert.Equal(t, "/sys/class/hwmon/hwmon0/temp2_input", host.Path("/sys/class/hwmon/hwmon0/temp2_input"))
}

func TestRoot_ReadInt(t *testing.T) {
	// GIVEN
	dir := t.TempDir()
	writeFixture(t, dir, "/sys/class/hwmon/hwmon2/temp1_input", "45500\n")
	root := NewRoot(dir)

	// WHEN
	value, err := root.ReadInt("/sys/class/hwmon/hwmon2/temp1_input")

	// THEN
	assert.NoError(t, err)
	assert.Equal(t, 45500, value)
}

func TestRoot_ReadMissingIsErrMissing(t *testing.T) {
	// GIVEN
	root := NewRoot(t.TempDir())

	// WHEN
	_, err := root.ReadInt("/sys/class/hwmon/hwmon9/temp1_input")

	// THEN
	assert.ErrorIs(t, err, onlp.ErrMissing)
	assert.ErrorIs(t, err, os.ErrNotExist)
}

func TestRoot_ReadGarbageIsErrInternal(t *testing.T) {
	// GIVEN
	dir := t.TempDir()
	writeFixture(t, dir, "/sys/bus/i2c/devices/1-0030/cpld_system_led_0", "zz")
	root := NewRoot(dir)

	// WHEN
	_, err := root.ReadHex("/sys/bus/i2c/devices/1-0030/cpld_system_led_0")

	// THEN
	assert.ErrorIs(t, err, onlp.ErrInternal)
}

func TestRoot_WriteHexInPlace(t *testing.T) {
	// GIVEN
	dir := t.TempDir()
	path := "/sys/bus/i2c/devices/1-0031/cpld_sfp_tx_dis_0_7"
	writeFixture(t, dir, path, "0x00")
	root := NewRoot(dir)

	// WHEN
	err := root.WriteHex(path, 0x81)

	// THEN
	assert.NoError(t, err)
	value, err := root.ReadHex(path)
	assert.NoError(t, err)
	assert.Equal(t, 0x81, value)
}

func TestRoot_WriteFileAtomic(t *testing.T) {
	// GIVEN
	dir := t.TempDir()
	root := NewRoot(dir)

	// WHEN
	err := root.WriteFileAtomic("/etc/onl/bmc_en", "1")

	// THEN
	assert.NoError(t, err)
	value, err := root.ReadInt("/etc/onl/bmc_en")
	assert.NoError(t, err)
	assert.Equal(t, 1, value)
	assert.True(t, root.Exists("/etc/onl/bmc_en"))
}
