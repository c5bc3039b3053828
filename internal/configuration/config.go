package configuration

import (
	"errors"
	"os"
	"time"

	"github.com/mitchellh/go-homedir"
	"github.com/mitchellh/mapstructure"
	"github.com/spf13/viper"
	"github.com/ufispace/onlp2go/internal/platform"
	"github.com/ufispace/onlp2go/internal/ui"
)

type Configuration struct {
	// Platform is used when /etc/onl/platform is missing
	Platform string `json:"platform"`

	SysfsRoot     string        `json:"sysfsRoot"`
	IoPortPath    string        `json:"ioPortPath"`
	BmcEnablePath string        `json:"bmcEnablePath"`
	IpmitoolPath  string        `json:"ipmitoolPath"`
	DmidecodePath string        `json:"dmidecodePath"`
	CmdTimeout    time.Duration `json:"cmdTimeout"`

	DbPath string `json:"dbPath"`
	// PersistEvents stores status changes in the database, defaults to true
	PersistEvents DefaultTrueBool `json:"persistEvents"`

	PollingRate              time.Duration `json:"pollingRate"`
	ThermalRollingWindowSize int           `json:"thermalRollingWindowSize"`

	Statistics StatisticsConfig `json:"statistics"`
	Api        ApiConfig        `json:"api"`
	Redis      RedisConfig      `json:"redis"`
	Profiling  ProfilingConfig  `json:"profiling"`
	LogFile    LogFileConfig    `json:"logFile"`

	Muxes             []MuxConfig              `json:"muxes"`
	ThermalThresholds []ThermalThresholdConfig `json:"thermalThresholds"`
}

var CurrentConfig Configuration

// InitConfig reads in config file and ENV variables if set.
func InitConfig(cfgFile string) {
	viper.SetConfigName("onlp2go")

	if cfgFile != "" {
		// Use config file from the flag.
		viper.SetConfigFile(cfgFile)
	} else {
		// Find home directory.
		home, err := homedir.Dir()
		if err != nil {
			ui.Error("Couldn't detect home directory: %v", err)
			os.Exit(1)
		}

		viper.AddConfigPath(".")
		viper.AddConfigPath(home)
		viper.AddConfigPath("/etc/onlp2go/")
	}

	viper.SetEnvPrefix("onlp2go")
	viper.AutomaticEnv() // read in environment variables that match

	setDefaultValues()
}

func setDefaultValues() {
	viper.SetDefault("platform", "")
	viper.SetDefault("sysfsRoot", "")
	viper.SetDefault("ioPortPath", "/dev/port")
	viper.SetDefault("bmcEnablePath", platform.BmcEnableFile)
	viper.SetDefault("ipmitoolPath", "ipmitool")
	viper.SetDefault("dmidecodePath", platform.DefaultDmidecode)
	viper.SetDefault("cmdTimeout", platform.DefaultCmdTimeout)

	viper.SetDefault("dbPath", "/etc/onlp2go/onlp2go.db")

	viper.SetDefault("pollingRate", 5*time.Second)
	viper.SetDefault("thermalRollingWindowSize", 12)

	viper.SetDefault("statistics.enabled", false)
	viper.SetDefault("statistics.port", 9000)

	viper.SetDefault("api.enabled", false)
	viper.SetDefault("api.host", "localhost")
	viper.SetDefault("api.port", 9001)

	viper.SetDefault("redis.enabled", false)
	viper.SetDefault("redis.address", "localhost:6379")
	viper.SetDefault("redis.key", "onlp")

	viper.SetDefault("profiling.enabled", false)
	viper.SetDefault("profiling.host", "localhost")
	viper.SetDefault("profiling.port", 6060)

	viper.SetDefault("logFile.path", "")
	viper.SetDefault("logFile.maxSizeMb", 10)
	viper.SetDefault("logFile.maxBackups", 3)

	viper.SetDefault("muxes", []MuxConfig{})
	viper.SetDefault("thermalThresholds", []ThermalThresholdConfig{})
}

// DetectAndReadConfigFile reads the config file if there is one.
// Running without a config file uses the default values.
func DetectAndReadConfigFile() {
	if err := viper.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			ui.Fatal("Error reading config file, %s", err)
		}
		ui.Debug("No config file found, using defaults")
	} else {
		// this is only populated _after_ ReadInConfig()
		ui.Debug("Using configuration file at: %s", viper.ConfigFileUsed())
	}

	LoadConfig()
}

func decodeHook() mapstructure.DecodeHookFunc {
	return mapstructure.ComposeDecodeHookFunc(
		mapstructure.TextUnmarshallerHookFunc(),
		mapstructure.StringToTimeDurationHookFunc(),
		HexIntHookFunc(),
		DefaultTrueBoolHookFunc(),
	)
}

func LoadConfig() {
	err := viper.Unmarshal(&CurrentConfig, viper.DecodeHook(decodeHook()))
	if err != nil {
		ui.Fatal("unable to decode into struct, %v", err)
	}
}

// EnvOptions returns the host resources selected by the configuration
func (c *Configuration) EnvOptions() platform.Options {
	var muxes []platform.Mux
	for _, mux := range c.Muxes {
		muxes = append(muxes, platform.Mux{Bus: mux.Bus, Addr: mux.Addr})
	}
	return platform.Options{
		SysfsRoot:     c.SysfsRoot,
		IoPortPath:    c.IoPortPath,
		BmcEnablePath: c.BmcEnablePath,
		Ipmitool:      c.IpmitoolPath,
		Dmidecode:     c.DmidecodePath,
		CmdTimeout:    c.CmdTimeout,
		Muxes:         muxes,
	}
}
