package config

import (
	"github.com/spf13/cobra"
	"github.com/ufispace/onlp2go/cmd/global"
	"github.com/ufispace/onlp2go/internal/ui"
	"gopkg.in/yaml.v3"
)

var showCmd = &cobra.Command{
	Use:   "show",
	Short: "Prints the effective configuration, including default values",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		config := global.LoadConfig()
		out, err := yaml.Marshal(config)
		if err != nil {
			return err
		}
		ui.Printf("%s", string(out))
		return nil
	},
}

func init() {
	Command.AddCommand(showCmd)
}
