package bmc

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/ufispace/onlp2go/internal/onlp"
	"github.com/ufispace/onlp2go/internal/testingutils"
)

const mcInfoOutput = `Device ID                 : 32
Device Revision           : 1
Firmware Revision         : 2.15
IPMI Version              : 2.0
Manufacturer ID           : 0
Manufacturer Name         : Unknown
Product ID                : 0 (0x0000)
Product Name              : Unknown (0x0)
Device Available          : yes
Provides Device SDRs      : yes
Additional Device Support :
    Sensor Device
    SDR Repository Device
Aux Firmware Rev Info     :
    0x03
    0x00
    0x00
    0x00
`

func TestClient_Sensor(t *testing.T) {
	// GIVEN
	client := NewClient("", 0, testingutils.CannedRunner(map[string]string{
		"ipmitool -c sdr get FAN0_RPM": "FAN0_RPM,7800,RPM,ok,,,,,,,,,",
	}))

	// WHEN
	value, err := client.Sensor("FAN0_RPM")

	// THEN
	assert.NoError(t, err)
	assert.Equal(t, 7800.0, value)
}

func TestClient_SensorDiscrete(t *testing.T) {
	// GIVEN
	client := NewClient("", 0, testingutils.CannedRunner(map[string]string{
		"ipmitool -c sdr get PSU0_PRSNT_L": "PSU0_PRSNT_L,0x00,discrete,ok",
		"ipmitool -c sdr get FAN1_PRSNT_H": "FAN1_PRSNT_H,0x01,discrete,ok",
	}))

	// WHEN
	psu, err1 := client.Sensor("PSU0_PRSNT_L")
	fan, err2 := client.Sensor("FAN1_PRSNT_H")

	// THEN
	assert.NoError(t, err1)
	assert.NoError(t, err2)
	assert.Equal(t, 0.0, psu)
	assert.Equal(t, 1.0, fan)
}

func TestClient_SensorNoReading(t *testing.T) {
	// GIVEN
	client := NewClient("", 0, testingutils.CannedRunner(map[string]string{
		"ipmitool -c sdr get PSU1_TEMP": "PSU1_TEMP,na,degrees C,ns",
	}))

	// WHEN
	_, err := client.Sensor("PSU1_TEMP")
	status, statusErr := client.ThresholdStatus("PSU1_TEMP")

	// THEN
	assert.ErrorIs(t, err, onlp.ErrMissing)
	assert.NoError(t, statusErr)
	assert.Equal(t, ThresholdStatusNoReading, status)
}

func TestClient_SensorCommandFails(t *testing.T) {
	// GIVEN
	client := NewClient("", 0, testingutils.CannedRunner(map[string]string{}))

	// WHEN
	_, err := client.Sensor("TEMP_MAC_DIE")

	// THEN
	assert.ErrorIs(t, err, onlp.ErrInternal)
}

func TestClient_ThresholdStatus(t *testing.T) {
	// GIVEN
	client := NewClient("", 0, testingutils.CannedRunner(map[string]string{
		"ipmitool -c sdr get TEMP_MAC_DIE": "TEMP_MAC_DIE,101,degrees C,ucr",
	}))

	// WHEN
	status, err := client.ThresholdStatus("TEMP_MAC_DIE")

	// THEN
	assert.NoError(t, err)
	assert.Equal(t, ThresholdStatusUCR, status)
}

func TestClient_McInfo(t *testing.T) {
	// GIVEN
	client := NewClient("", 0, testingutils.CannedRunner(map[string]string{
		"ipmitool mc info": mcInfoOutput,
	}))

	// WHEN
	info, err := client.McInfo()

	// THEN
	assert.NoError(t, err)
	assert.Equal(t, McInfo{Major: 2, Minor: 15, Aux: 3}, info)
	assert.Equal(t, "2.15.3", info.String())
}

func TestParseMcInfo_NoRevision(t *testing.T) {
	// WHEN
	_, err := parseMcInfo("Device ID : 32\n")

	// THEN
	assert.ErrorIs(t, err, onlp.ErrInternal)
}

func TestClient_UcdVersion(t *testing.T) {
	// GIVEN
	client := NewClient("", 0, testingutils.CannedRunner(map[string]string{
		"ipmitool raw 0x3c 0x08": " 32 2e 31 2e 30 31 38 30 35 31 35\n",
	}))

	// WHEN
	version, date, err := client.UcdVersion()

	// THEN
	assert.NoError(t, err)
	assert.Equal(t, "2.1.0", version)
	assert.Equal(t, "180515", date)
}

func TestSplitUcd_Short(t *testing.T) {
	// WHEN
	version, date, err := splitUcd([]byte("12"))

	// THEN
	assert.NoError(t, err)
	assert.Equal(t, "12", version)
	assert.Empty(t, date)
}

func TestParseRaw_Invalid(t *testing.T) {
	// WHEN
	_, err := parseRaw("0a zz")

	// THEN
	assert.ErrorIs(t, err, onlp.ErrInternal)
}
