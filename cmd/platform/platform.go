package platform

import (
	"github.com/spf13/cobra"
	"github.com/ufispace/onlp2go/cmd/global"
	"github.com/ufispace/onlp2go/internal/inventory"
	"github.com/ufispace/onlp2go/internal/onlp"
	"github.com/ufispace/onlp2go/internal/platforms"
	"github.com/ufispace/onlp2go/internal/ui"
)

var Command = &cobra.Command{
	Use:              "platform",
	Short:            "Platform related commands",
	Long:             ``,
	TraverseChildren: true,
}

var listCmd = &cobra.Command{
	Use:   "list",
	Short: "List all supported platforms",
	Args:  cobra.NoArgs,
	Run: func(cmd *cobra.Command, args []string) {
		for _, name := range platforms.Names() {
			ui.Printfln(name)
		}
	},
}

var nameCmd = &cobra.Command{
	Use:   "name",
	Short: "Print the exact platform name, including the board revision",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		p := global.LoadPlatform()
		if p.Board == nil {
			ui.Printfln(p.Name)
			return nil
		}
		name, err := p.Board.Name()
		if err != nil {
			ui.Warning("Unable to detect board revision: %v", err)
		}
		ui.Printfln(name)
		return nil
	},
}

var initCmd = &cobra.Command{
	Use:   "init",
	Short: "Run the boot time initialization of the board",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		p := global.LoadPlatform()
		if p.Board == nil {
			ui.Info("Platform %s needs no initialization", p.Name)
			return nil
		}
		if err := p.Board.BaseConfig(); err != nil {
			return err
		}
		ui.Success("Platform %s initialized", p.Name)
		return nil
	},
}

var validateCmd = &cobra.Command{
	Use:   "validate",
	Short: "Check that every component has a known parent and there are no cycles",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		p := global.LoadPlatform()
		if err := inventory.ValidateTopology(p); err != nil {
			return err
		}
		ui.Success("Component tree of %s looks good! :)", p.Name)
		return nil
	},
}

var manageCmd = &cobra.Command{
	Use:   "manage",
	Short: "Run one iteration of the board fan and led management",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		p := global.LoadPlatform()
		if p.Board == nil {
			return nil
		}
		if err := p.Board.ManageFans(); err != nil && !onlp.IsUnsupported(err) {
			return err
		}
		if err := p.Board.ManageLeds(); err != nil && !onlp.IsUnsupported(err) {
			return err
		}
		return nil
	},
}

func init() {
	Command.AddCommand(listCmd)
	Command.AddCommand(nameCmd)
	Command.AddCommand(initCmd)
	Command.AddCommand(validateCmd)
	Command.AddCommand(manageCmd)
}
