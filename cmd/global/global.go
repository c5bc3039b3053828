package global

import (
	"bytes"
	"fmt"
	"strconv"

	"github.com/mgutz/ansi"
	"github.com/tomlazar/table"
	"github.com/ufispace/onlp2go/internal"
	"github.com/ufispace/onlp2go/internal/configuration"
	"github.com/ufispace/onlp2go/internal/onlp"
	"github.com/ufispace/onlp2go/internal/ui"
)

var (
	CfgFile  string
	NoColor  bool
	NoStyle  bool
	Verbose  bool
	Platform string
)

// LoadConfig reads and validates the configuration. The --platform flag
// takes precedence over the configured platform.
func LoadConfig() *configuration.Configuration {
	configuration.DetectAndReadConfigFile()
	if len(Platform) > 0 {
		configuration.CurrentConfig.Platform = Platform
	}
	if err := configuration.Validate(CfgFile); err != nil {
		ui.FatalWithoutStacktrace("Invalid configuration: %v", err)
	}
	return &configuration.CurrentConfig
}

// LoadPlatform creates and initializes the drivers of the host board
func LoadPlatform() *onlp.Platform {
	config := LoadConfig()
	p, err := internal.LoadPlatform(config)
	if err != nil {
		ui.FatalWithoutStacktrace("%v", err)
	}
	if err := p.Init(); err != nil {
		ui.FatalWithoutStacktrace("Unable to initialize platform %s: %v", p.Name, err)
	}
	return p
}

func tableConfig() *table.Config {
	return &table.Config{
		ShowIndex:       false,
		Color:           !NoColor,
		AlternateColors: true,
		TitleColorCode:  ansi.ColorCode("white+buf"),
		AltColorCodes: []string{
			ansi.ColorCode("white"),
			ansi.ColorCode("white:236"),
		},
	}
}

// PrintTable prints rows in the common table style
func PrintTable(headers []string, rows [][]string) {
	tab := table.Table{
		Headers: headers,
		Rows:    rows,
	}
	var buf bytes.Buffer
	if err := tab.WriteTable(&buf, tableConfig()); err != nil {
		ui.Fatal("Error printing table: %v", err)
	}
	ui.Printfln(buf.String())
}

// ParseOid accepts a plain id like "3" as well as the "thermal-3" notation
func ParseOid(text string, oidType onlp.OidType) (onlp.Oid, error) {
	if id, err := strconv.Atoi(text); err == nil {
		return onlp.NewOid(oidType, id), nil
	}
	oid, err := onlp.ParseOid(text)
	if err != nil {
		return 0, err
	}
	if oid.Type() != oidType {
		return 0, fmt.Errorf("'%s' is not a %s: %w", text, oidType, onlp.ErrParam)
	}
	return oid, nil
}

