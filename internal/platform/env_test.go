package platform

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/ufispace/onlp2go/internal/hw/sysfs"
	"github.com/ufispace/onlp2go/internal/onlp"
	"github.com/ufispace/onlp2go/internal/testingutils"
)

func TestDetect_PlatformFile(t *testing.T) {
	// GIVEN
	dir := t.TempDir()
	testingutils.WriteSysfs(t, dir, PlatformFile, "x86-64-ufispace-s9180-32x-r0\n")
	env := &Env{Sysfs: sysfs.NewRoot(dir)}

	// WHEN
	name, err := Detect(env, "x86-64-ufispace-s9700-23d-r0")

	// THEN
	assert.NoError(t, err)
	assert.Equal(t, "x86-64-ufispace-s9180-32x-r0", name)
}

func TestDetect_Fallback(t *testing.T) {
	// GIVEN
	env := &Env{Sysfs: sysfs.NewRoot(t.TempDir())}

	// WHEN
	name, err := Detect(env, "x86-64-ufispace-s9700-23d-r0")

	// THEN
	assert.NoError(t, err)
	assert.Equal(t, "x86-64-ufispace-s9700-23d-r0", name)
}

func TestDetect_Unknown(t *testing.T) {
	// GIVEN
	env := &Env{Sysfs: sysfs.NewRoot(t.TempDir())}

	// WHEN
	_, err := Detect(env, "")

	// THEN
	assert.ErrorIs(t, err, onlp.ErrMissing)
}

func TestEnv_BmcEnabled(t *testing.T) {
	// GIVEN
	dir := t.TempDir()
	enabled := &Env{Sysfs: sysfs.NewRoot(dir)}
	testingutils.WriteSysfs(t, dir, BmcEnableFile, "1\n")
	missing := &Env{Sysfs: sysfs.NewRoot(t.TempDir())}

	// THEN
	assert.True(t, enabled.BmcEnabled())
	assert.False(t, missing.BmcEnabled())
}

func TestEnv_BiosVersion(t *testing.T) {
	// GIVEN
	env := &Env{
		Sysfs: sysfs.NewRoot(t.TempDir()),
		Exec: testingutils.CannedRunner(map[string]string{
			"dmidecode -s bios-version": "# SMBIOS entry point\r\n5.6.5\r\n",
		}),
	}

	// WHEN
	version, err := env.BiosVersion()

	// THEN
	assert.NoError(t, err)
	assert.Equal(t, "5.6.5", version)
}

func TestEnv_RunWithoutRunner(t *testing.T) {
	// GIVEN
	env := &Env{}

	// WHEN
	_, err := env.Run("dmidecode")

	// THEN
	assert.ErrorIs(t, err, onlp.ErrInternal)
}
