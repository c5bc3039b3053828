package configuration

type ApiConfig struct {
	Enabled bool   `json:"enabled"`
	Host    string `json:"host"`
	Port    int    `json:"port"`
}

type StatisticsConfig struct {
	Enabled bool `json:"enabled"`
	Port    int  `json:"port"`
}

type RedisConfig struct {
	Enabled bool   `json:"enabled"`
	Address string `json:"address"`
	// Key is the hash the component state is written to
	Key string `json:"key"`
}

type LogFileConfig struct {
	Path       string `json:"path"`
	MaxSizeMb  int    `json:"maxSizeMb"`
	MaxBackups int    `json:"maxBackups"`
}
