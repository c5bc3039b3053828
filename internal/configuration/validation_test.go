package configuration

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/ufispace/onlp2go/internal/onlp"
)

func validConfig() Configuration {
	return Configuration{
		PollingRate:              5 * time.Second,
		ThermalRollingWindowSize: 12,
		CmdTimeout:               10 * time.Second,
		Statistics:               StatisticsConfig{Enabled: true, Port: 9000},
		Api:                      ApiConfig{Enabled: true, Host: "localhost", Port: 9001},
	}
}

func TestValidate_Defaults(t *testing.T) {
	// GIVEN
	config := validConfig()
	config.Platform = "x86-64-ufispace-s9700-53dx-r9"

	// WHEN
	err := validateConfig(&config, "")

	// THEN
	assert.NoError(t, err)
}

func TestValidate_UnknownPlatform(t *testing.T) {
	// GIVEN
	config := validConfig()
	config.Platform = "x86-64-accton-as7712-32x"

	// WHEN
	err := validateConfig(&config, "")

	// THEN
	assert.ErrorIs(t, err, onlp.ErrUnsupported)
}

func TestValidate_PollingRate(t *testing.T) {
	// GIVEN
	config := validConfig()
	config.PollingRate = 0

	// WHEN
	err := validateConfig(&config, "")

	// THEN
	assert.EqualError(t, err, "pollingRate must be positive, got 0s")
}

func TestValidate_PortConflict(t *testing.T) {
	// GIVEN
	config := validConfig()
	config.Api.Port = config.Statistics.Port

	// WHEN
	err := validateConfig(&config, "")

	// THEN
	assert.EqualError(t, err, "api: port 9000 is already used by the statistics server")
}

func TestValidate_DisabledServerIsNotChecked(t *testing.T) {
	// GIVEN
	config := validConfig()
	config.Statistics = StatisticsConfig{Enabled: false, Port: -1}

	// WHEN
	err := validateConfig(&config, "")

	// THEN
	assert.NoError(t, err)
}

func TestValidate_Redis(t *testing.T) {
	// GIVEN
	config := validConfig()
	config.Redis = RedisConfig{Enabled: true, Address: "localhost:6379"}

	// WHEN
	err := validateConfig(&config, "")

	// THEN
	assert.EqualError(t, err, "redis: key is missing")
}

func TestValidate_Muxes(t *testing.T) {
	tests := []struct {
		name     string
		muxes    []MuxConfig
		expected string
	}{
		{name: "valid", muxes: []MuxConfig{{Bus: 0, Addr: 0x70}, {Bus: 0, Addr: 0x73}}},
		{name: "address out of range", muxes: []MuxConfig{{Bus: 0, Addr: 0x80}}, expected: "mux 0-0080: address out of range 0x03..0x77"},
		{name: "duplicate", muxes: []MuxConfig{{Bus: 1, Addr: 0x70}, {Bus: 1, Addr: 0x70}}, expected: "duplicate mux detected: 1-0070"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			// GIVEN
			config := validConfig()
			config.Muxes = tt.muxes

			// WHEN
			err := validateConfig(&config, "")

			// THEN
			if len(tt.expected) <= 0 {
				assert.NoError(t, err)
			} else {
				assert.EqualError(t, err, tt.expected)
			}
		})
	}
}

func TestValidate_Thresholds(t *testing.T) {
	tests := []struct {
		name       string
		thresholds []ThermalThresholdConfig
		expected   string
	}{
		{name: "partial override", thresholds: []ThermalThresholdConfig{{Oid: onlp.ThermalOid(1), Error: 90000}}},
		{name: "not a thermal", thresholds: []ThermalThresholdConfig{{Oid: onlp.FanOid(1), Warning: 1}}, expected: "thermal threshold fan-1: oid is not a thermal"},
		{
			name:       "duplicate",
			thresholds: []ThermalThresholdConfig{{Oid: onlp.ThermalOid(2)}, {Oid: onlp.ThermalOid(2)}},
			expected:   "duplicate thermal threshold detected: thermal-2",
		},
		{
			name:       "descending",
			thresholds: []ThermalThresholdConfig{{Oid: onlp.ThermalOid(3), Warning: 90000, Shutdown: 80000}},
			expected:   "thermal threshold thermal-3: warning, error and shutdown must be ascending",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			// GIVEN
			config := validConfig()
			config.ThermalThresholds = tt.thresholds

			// WHEN
			err := validateConfig(&config, "")

			// THEN
			if len(tt.expected) <= 0 {
				assert.NoError(t, err)
			} else {
				assert.EqualError(t, err, tt.expected)
			}
		})
	}
}

func TestThermalThresholdConfig_Apply(t *testing.T) {
	// GIVEN
	override := ThermalThresholdConfig{Oid: onlp.ThermalOid(1), Warning: 70000}

	// WHEN
	result := override.Apply(onlp.DefaultThresholds)

	// THEN
	assert.Equal(t, onlp.ThermalThresholds{Warning: 70000, Error: 95000, Shutdown: 100000}, result)
}
