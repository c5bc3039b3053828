package cmd

import (
	"fmt"
	"os"

	"github.com/pterm/pterm"
	"github.com/spf13/cobra"
	"github.com/ufispace/onlp2go/cmd/attribute"
	"github.com/ufispace/onlp2go/cmd/config"
	"github.com/ufispace/onlp2go/cmd/fan"
	"github.com/ufispace/onlp2go/cmd/global"
	"github.com/ufispace/onlp2go/cmd/led"
	"github.com/ufispace/onlp2go/cmd/platform"
	"github.com/ufispace/onlp2go/cmd/psu"
	"github.com/ufispace/onlp2go/cmd/sfp"
	"github.com/ufispace/onlp2go/cmd/thermal"
	"github.com/ufispace/onlp2go/internal"
	"github.com/ufispace/onlp2go/internal/configuration"
	"github.com/ufispace/onlp2go/internal/ui"
)

// rootCmd represents the base command when called without any subcommands
var rootCmd = &cobra.Command{
	Use:   "onlp2go",
	Short: "Platform drivers and monitoring daemon for UfiSpace switches.",
	Long: `onlp2go gives access to the thermal sensors, fans, leds, power supplies
and transceiver ports of UfiSpace switches and monitors their state.`,
	// this is the default command to run when no subcommand is specified
	Run: func(cmd *cobra.Command, args []string) {
		printHeader()

		config := global.LoadConfig()
		setupLogFile(config)
		defer ui.CloseFileOutput()

		internal.RunDaemon()
	},
}

func init() {
	rootCmd.PersistentFlags().StringVarP(&global.CfgFile, "config", "c", "", "config file (default is $HOME/onlp2go.yaml)")
	rootCmd.PersistentFlags().BoolVarP(&global.NoColor, "no-color", "", false, "Disable all terminal output coloration")
	rootCmd.PersistentFlags().BoolVarP(&global.NoStyle, "no-style", "", false, "Disable all terminal output styling")
	rootCmd.PersistentFlags().BoolVarP(&global.Verbose, "verbose", "v", false, "More verbose output")
	rootCmd.PersistentFlags().StringVarP(&global.Platform, "platform", "p", "", "Platform name, used if /etc/onl/platform is missing")

	rootCmd.AddCommand(config.Command)
	rootCmd.AddCommand(platform.Command)

	rootCmd.AddCommand(thermal.Command)
	rootCmd.AddCommand(fan.Command)
	rootCmd.AddCommand(led.Command)
	rootCmd.AddCommand(psu.Command)
	rootCmd.AddCommand(sfp.Command)
	rootCmd.AddCommand(attribute.Command)
}

func setupUi() {
	ui.SetDebugEnabled(global.Verbose)

	if global.NoColor {
		pterm.DisableColor()
	}
	if global.NoStyle {
		pterm.DisableStyling()
	}
}

func setupLogFile(config *configuration.Configuration) {
	if len(config.LogFile.Path) <= 0 {
		return
	}
	ui.EnableFileOutput(config.LogFile.Path, config.LogFile.MaxSizeMb, config.LogFile.MaxBackups)
}

// Print a large text with the LetterStyle from the standard theme.
func printHeader() {
	err := pterm.DefaultBigText.WithLetters(
		pterm.NewLettersFromStringWithStyle("onlp", pterm.NewStyle(pterm.FgLightBlue)),
		pterm.NewLettersFromStringWithStyle("2", pterm.NewStyle(pterm.FgWhite)),
		pterm.NewLettersFromStringWithStyle("go", pterm.NewStyle(pterm.FgLightBlue)),
	).Render()
	if err != nil {
		fmt.Println("onlp2go")
	}
}

// Execute adds all child commands to the root command and sets flags appropriately.
// This is called by main.main(). It only needs to happen once to the rootCmd.
func Execute() {
	cobra.OnInitialize(func() {
		setupUi()
		configuration.InitConfig(global.CfgFile)
	})

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
