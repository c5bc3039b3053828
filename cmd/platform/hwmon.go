package platform

import (
	"fmt"
	"path/filepath"

	"github.com/spf13/cobra"
	"github.com/ufispace/onlp2go/cmd/global"
	"github.com/ufispace/onlp2go/internal/hwmon"
	"github.com/ufispace/onlp2go/internal/ui"
)

var hwmonCmd = &cobra.Command{
	Use:   "hwmon",
	Short: "Detect hwmon chips",
	Long:  `Lists the hwmon chips found by libsensors, with their index and inputs`,
	Args:  cobra.NoArgs,
	Run: func(cmd *cobra.Command, args []string) {
		chips := hwmon.GetChips()
		if len(chips) <= 0 {
			ui.Warning("No hwmon chips found")
			return
		}

		for _, chip := range chips {
			ui.Printfln("> %s (hwmon%d)", chip.Name, chip.Index)

			var rows [][]string
			for _, channel := range chip.Temps {
				rows = append(rows, channelRow("Temp", channel))
			}
			for _, channel := range chip.Fans {
				rows = append(rows, channelRow("Fan", channel))
			}
			global.PrintTable([]string{"Type", "Label", "Value", "Min", "Max"}, rows)
			ui.Printfln("")
		}
	},
}

func channelRow(kind string, channel hwmon.Channel) []string {
	_, file := filepath.Split(channel.Input)
	limit := func(value float64) string {
		if value < 0 {
			return "N/A"
		}
		return fmt.Sprintf("%.1f", value)
	}
	return []string{
		kind,
		fmt.Sprintf("%s (%s)", channel.Label, file),
		fmt.Sprintf("%.1f", channel.Value),
		limit(channel.Min),
		limit(channel.Max),
	}
}

func init() {
	Command.AddCommand(hwmonCmd)
}
