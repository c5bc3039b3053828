package psu

import (
	"fmt"

	"github.com/spf13/cobra"
	"github.com/ufispace/onlp2go/cmd/global"
	"github.com/ufispace/onlp2go/internal/onlp"
	"github.com/ufispace/onlp2go/internal/ui"
)

var Command = &cobra.Command{
	Use:   "psu",
	Short: "Prints the state of all power supplies",
	Long:  ``,
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		p := global.LoadPlatform()
		if p.Psu == nil {
			return fmt.Errorf("platform %s has no power supplies: %w", p.Name, onlp.ErrUnsupported)
		}

		var rows [][]string
		for _, id := range p.Psu.Ids() {
			info, err := p.Psu.Info(id)
			if err != nil {
				rows = append(rows, []string{id.String(), "", "error: " + err.Error(), "", "", ""})
				continue
			}
			rows = append(rows, []string{
				id.String(),
				info.Header.Description,
				info.Header.Status.String(),
				fmt.Sprintf("%v", info.PowerGood),
				info.Model,
				info.Serial,
			})
		}
		if len(rows) <= 0 {
			ui.Warning("No power supplies found")
			return nil
		}
		global.PrintTable([]string{"ID", "Description", "Status", "Power Good", "Model", "Serial"}, rows)
		return nil
	},
}
