package config

import (
	"os"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"github.com/ufispace/onlp2go/cmd/global"
	"github.com/ufispace/onlp2go/internal/configuration"
	"github.com/ufispace/onlp2go/internal/ui"
)

var validateCmd = &cobra.Command{
	Use:   "validate",
	Short: "Validates the current configuration",
	Long:  ``,
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		// note: config file path parameter comes from the root command (-c)
		configuration.DetectAndReadConfigFile()
		if path := viper.ConfigFileUsed(); len(path) > 0 {
			ui.Info("Using configuration file at: %s", path)
		}

		if err := configuration.Validate(global.CfgFile); err != nil {
			ui.Error("Validation failed: %v", err)
			os.Exit(1)
		}

		ui.Success("Config looks good! :)")
		return nil
	},
}

func init() {
	Command.AddCommand(validateCmd)
}
