package configuration

import (
	"errors"
	"fmt"

	"github.com/ufispace/onlp2go/internal/onlp"
	"github.com/ufispace/onlp2go/internal/platforms"
	"golang.org/x/exp/slices"
)

const (
	minI2cAddr = 0x03
	maxI2cAddr = 0x77
)

func Validate(configPath string) error {
	return validateConfig(&CurrentConfig, configPath)
}

func validateConfig(config *Configuration, path string) error {
	if len(config.Platform) > 0 {
		if _, err := platforms.Lookup(config.Platform); err != nil {
			return err
		}
	}
	if config.PollingRate <= 0 {
		return fmt.Errorf("pollingRate must be positive, got %s", config.PollingRate)
	}
	if config.ThermalRollingWindowSize <= 0 {
		return fmt.Errorf("thermalRollingWindowSize must be >= 1, got %d", config.ThermalRollingWindowSize)
	}
	if config.CmdTimeout <= 0 {
		return fmt.Errorf("cmdTimeout must be positive, got %s", config.CmdTimeout)
	}

	err := validateServers(config)
	if err != nil {
		return err
	}
	err = validateMuxes(config)
	if err != nil {
		return err
	}
	return validateThresholds(config)
}

func validatePort(name string, port int) error {
	if port <= 0 || port >= 65535 {
		return fmt.Errorf("%s: invalid port %d", name, port)
	}
	return nil
}

func validateServers(config *Configuration) error {
	var ports []int
	if config.Statistics.Enabled {
		if err := validatePort("statistics", config.Statistics.Port); err != nil {
			return err
		}
		ports = append(ports, config.Statistics.Port)
	}
	if config.Api.Enabled {
		if err := validatePort("api", config.Api.Port); err != nil {
			return err
		}
		if slices.Contains(ports, config.Api.Port) {
			return fmt.Errorf("api: port %d is already used by the statistics server", config.Api.Port)
		}
		ports = append(ports, config.Api.Port)
	}
	if config.Profiling.Enabled {
		if err := validatePort("profiling", config.Profiling.Port); err != nil {
			return err
		}
		if slices.Contains(ports, config.Profiling.Port) {
			return fmt.Errorf("profiling: port %d is already in use", config.Profiling.Port)
		}
	}
	if config.Redis.Enabled {
		if len(config.Redis.Address) <= 0 {
			return errors.New("redis: address is missing")
		}
		if len(config.Redis.Key) <= 0 {
			return errors.New("redis: key is missing")
		}
	}
	if len(config.LogFile.Path) > 0 && config.LogFile.MaxSizeMb <= 0 {
		return fmt.Errorf("logFile: maxSizeMb must be positive, got %d", config.LogFile.MaxSizeMb)
	}
	return nil
}

func validateMuxes(config *Configuration) error {
	var seen []MuxConfig
	for _, mux := range config.Muxes {
		if mux.Bus < 0 {
			return fmt.Errorf("mux %d-%04x: invalid bus", mux.Bus, mux.Addr)
		}
		if mux.Addr < minI2cAddr || mux.Addr > maxI2cAddr {
			return fmt.Errorf("mux %d-%04x: address out of range 0x%02x..0x%02x", mux.Bus, mux.Addr, minI2cAddr, maxI2cAddr)
		}
		if slices.Contains(seen, mux) {
			return fmt.Errorf("duplicate mux detected: %d-%04x", mux.Bus, mux.Addr)
		}
		seen = append(seen, mux)
	}
	return nil
}

func validateThresholds(config *Configuration) error {
	var seen []onlp.Oid
	for _, t := range config.ThermalThresholds {
		if t.Oid.Type() != onlp.OidTypeThermal {
			return fmt.Errorf("thermal threshold %s: oid is not a thermal", t.Oid)
		}
		if slices.Contains(seen, t.Oid) {
			return fmt.Errorf("duplicate thermal threshold detected: %s", t.Oid)
		}
		seen = append(seen, t.Oid)

		var levels []int
		for _, value := range []int{t.Warning, t.Error, t.Shutdown} {
			if value < 0 {
				return fmt.Errorf("thermal threshold %s: negative value %d", t.Oid, value)
			}
			if value > 0 {
				levels = append(levels, value)
			}
		}
		if !slices.IsSorted(levels) {
			return fmt.Errorf("thermal threshold %s: warning, error and shutdown must be ascending", t.Oid)
		}
	}
	return nil
}
