package sfp

import (
	"strconv"

	"github.com/spf13/cobra"
	"github.com/ufispace/onlp2go/cmd/global"
	"github.com/ufispace/onlp2go/internal/onlp"
	"github.com/ufispace/onlp2go/internal/ui"
	"github.com/ufispace/onlp2go/internal/util"
)

var controlCmd = &cobra.Command{
	Use:   "control <port> [<control> [<value>]]",
	Short: "Print all control signals of a port, or get or set a single one",
	Args:  cobra.RangeArgs(1, 3),
	RunE: func(cmd *cobra.Command, args []string) error {
		port, err := parsePort(args[0])
		if err != nil {
			return err
		}
		driver, err := getDriver()
		if err != nil {
			return err
		}

		if len(args) == 1 {
			var rows [][]string
			for _, control := range onlp.SfpControls() {
				value, err := driver.ControlGet(port, control)
				text := strconv.Itoa(value)
				if onlp.IsUnsupported(err) {
					text = "N/A"
				} else if err != nil {
					text = "error: " + err.Error()
				}
				rows = append(rows, []string{string(control), text})
			}
			global.PrintTable([]string{"Control", "Value"}, rows)
			return nil
		}

		control, err := onlp.ParseSfpControl(args[1])
		if err != nil {
			return err
		}
		if len(args) == 2 {
			value, err := driver.ControlGet(port, control)
			if err != nil {
				return err
			}
			ui.Printfln("%d", value)
			return nil
		}

		value, err := util.ParseInt(args[2])
		if err != nil {
			return err
		}
		if err := driver.ControlSet(port, control, int(value)); err != nil {
			return err
		}
		ui.Success("Port %d %s set to %d", port, control, value)
		return nil
	},
}

func init() {
	Command.AddCommand(controlCmd)
}
