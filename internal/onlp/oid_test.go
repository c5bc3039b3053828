package onlp

import (
	"errors"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestOid_Encoding(t *testing.T) {
	// GIVEN
	oid := NewOid(OidTypeThermal, 3)

	// THEN
	assert.Equal(t, Oid(0x02000003), oid)
	assert.Equal(t, OidTypeThermal, oid.Type())
	assert.Equal(t, 3, oid.Id())
	assert.Equal(t, "thermal-3", oid.String())
}

func TestParseOid(t *testing.T) {
	tests := []struct {
		input    string
		expected Oid
	}{
		{"thermal-3", ThermalOid(3)},
		{"FAN-12", FanOid(12)},
		{"psu-2", PsuOid(2)},
		{"sys-1", OidChassis},
		{"0x05000004", LedOid(4)},
	}

	for _, tt := range tests {
		// WHEN
		oid, err := ParseOid(tt.input)

		// THEN
		assert.NoError(t, err, tt.input)
		assert.Equal(t, tt.expected, oid, tt.input)
	}
}

func TestParseOid_Invalid(t *testing.T) {
	for _, input := range []string{"", "blower-1", "fan-x", "0x7f000001", "fan--1"} {
		// WHEN
		_, err := ParseOid(input)

		// THEN
		assert.ErrorIs(t, err, ErrParam, input)
	}
}

func TestOid_TextRoundTrip(t *testing.T) {
	// GIVEN
	oid := FanOid(7)
	text, _ := oid.MarshalText()

	// WHEN
	var parsed Oid
	err := parsed.UnmarshalText(text)

	// THEN
	assert.NoError(t, err)
	assert.Equal(t, oid, parsed)
}

func TestStatus_String(t *testing.T) {
	// GIVEN
	var status Status
	status.Set(StatusPresent)
	status.Set(StatusFailed)

	// THEN
	assert.Equal(t, "PRESENT|FAILED", status.String())
	assert.True(t, status.Has(StatusPresent))
	assert.False(t, status.Has(StatusOperational))

	// WHEN
	status.Clear(StatusPresent)

	// THEN
	assert.Equal(t, "FAILED", status.String())
	assert.Equal(t, "-", Status(0).String())
}

func TestStatus_UnmarshalText(t *testing.T) {
	// WHEN
	var status Status
	err := status.UnmarshalText([]byte("PRESENT|OPERATIONAL"))

	// THEN
	assert.NoError(t, err)
	assert.Equal(t, StatusPresent|StatusOperational, status)
}

func TestValidateRange(t *testing.T) {
	// THEN
	assert.NoError(t, ValidateRange(FanOid(1), OidTypeFan, 1, 8))
	assert.NoError(t, ValidateRange(FanOid(8), OidTypeFan, 1, 8))
	assert.ErrorIs(t, ValidateRange(FanOid(0), OidTypeFan, 1, 8), ErrParam)
	assert.ErrorIs(t, ValidateRange(FanOid(9), OidTypeFan, 1, 8), ErrParam)
	assert.ErrorIs(t, ValidateRange(ThermalOid(1), OidTypeFan, 1, 8), ErrParam)
}

func TestGuard_InitRunsOnce(t *testing.T) {
	// GIVEN
	var guard Guard
	calls := 0
	initErr := errors.New("init failed")

	// WHEN
	var wg sync.WaitGroup
	for i := 0; i < 10; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_ = guard.Init(func() error {
				calls++
				return initErr
			})
		}()
	}
	wg.Wait()

	// THEN
	assert.Equal(t, 1, calls)
	assert.ErrorIs(t, guard.Init(func() error { return nil }), initErr)
}

func TestFixedFans_Unsupported(t *testing.T) {
	// GIVEN
	fans := FixedFans{}

	// THEN
	assert.True(t, IsUnsupported(fans.SetRpm(FanOid(1), 1000)))
	assert.True(t, IsUnsupported(fans.SetPercentage(FanOid(1), 50)))
	assert.True(t, IsUnsupported(fans.SetDir(FanOid(1), FanDirB2F)))
}

func TestLedCaps_Supports(t *testing.T) {
	// GIVEN
	caps := LedCapsOff | LedCapsGreen | LedCapsGreenBlinking

	// THEN
	assert.True(t, caps.Supports(LedModeGreen))
	assert.False(t, caps.Supports(LedModeYellow))
	assert.Equal(t, "OFF|GREEN|GREEN_BLINKING", caps.String())
}

func TestThermalInfo_Level(t *testing.T) {
	// GIVEN
	info := ThermalInfo{
		Header:     OidHeader{Status: StatusPresent},
		Caps:       ThermalCapsAll,
		Thresholds: ThermalThresholds{Warning: 60000, Error: 65000, Shutdown: 70000},
	}

	// THEN
	info.MilliCelsius = 50000
	assert.Equal(t, "", info.Level())
	info.MilliCelsius = 60000
	assert.Equal(t, "warning", info.Level())
	info.MilliCelsius = 66000
	assert.Equal(t, "error", info.Level())
	info.MilliCelsius = 71000
	assert.Equal(t, "shutdown", info.Level())
}

func TestSfpBitmap_Ports(t *testing.T) {
	// GIVEN
	bitmap := NewSfpBitmap()
	bitmap.Set(5)
	bitmap.Set(1)
	bitmap.Mod(3, true)
	bitmap.Mod(5, false)

	// THEN
	assert.Equal(t, []int{1, 3}, bitmap.Ports())
	assert.True(t, bitmap.IsSet(3))
	assert.False(t, bitmap.IsSet(5))
}
