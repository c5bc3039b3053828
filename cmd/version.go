package cmd

import (
	"github.com/spf13/cobra"
	"github.com/ufispace/onlp2go/internal/ui"
)

const Version = "0.1.0"

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print the version number of onlp2go",
	Long:  `All software has versions. This is onlp2go's`,
	Run: func(cmd *cobra.Command, args []string) {
		ui.Printfln(Version)
	},
}

func init() {
	rootCmd.AddCommand(versionCmd)
}
