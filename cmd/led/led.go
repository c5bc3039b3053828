package led

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"
	"github.com/ufispace/onlp2go/cmd/global"
	"github.com/ufispace/onlp2go/internal/onlp"
	"github.com/ufispace/onlp2go/internal/ui"
)

var ledId string

var Command = &cobra.Command{
	Use:              "led",
	Short:            "LED related commands",
	Long:             `Prints the mode of all front panel LEDs`,
	TraverseChildren: true,
	Args:             cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		driver, err := getDriver()
		if err != nil {
			return err
		}

		var rows [][]string
		for _, id := range driver.Ids() {
			info, err := driver.Info(id)
			if err != nil {
				rows = append(rows, []string{id.String(), "", "error: " + err.Error(), "", ""})
				continue
			}
			rows = append(rows, []string{
				id.String(),
				info.Header.Description,
				info.Header.Status.String(),
				string(info.Mode),
				info.Caps.String(),
			})
		}
		if len(rows) <= 0 {
			ui.Warning("No LEDs found")
			return nil
		}
		global.PrintTable([]string{"ID", "Description", "Status", "Mode", "Supported Modes"}, rows)
		return nil
	},
}

var setCmd = &cobra.Command{
	Use:   "set <mode>",
	Short: "Set the mode of a LED, e.g. green_blinking",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		if len(ledId) <= 0 {
			return errors.New("--id is required")
		}
		mode, err := onlp.ParseLedMode(args[0])
		if err != nil {
			return err
		}
		driver, err := getDriver()
		if err != nil {
			return err
		}
		id, err := global.ParseOid(ledId, onlp.OidTypeLed)
		if err != nil {
			return err
		}
		caps, err := driver.Caps(id)
		if err != nil {
			return err
		}
		if mode != onlp.LedModeOn && !caps.Supports(mode) {
			return fmt.Errorf("led %s does not support mode %s, supported: %s: %w", id, mode, caps, onlp.ErrUnsupported)
		}
		if err := driver.SetMode(id, mode); err != nil {
			return err
		}
		ui.Success("LED %s set to %s", id, mode)
		return nil
	},
}

func init() {
	Command.PersistentFlags().StringVarP(
		&ledId,
		"id", "i",
		"",
		"LED ID, e.g. 1 or led-1",
	)
	Command.AddCommand(setCmd)
}

func getDriver() (onlp.LedDriver, error) {
	p := global.LoadPlatform()
	if p.Led == nil {
		return nil, fmt.Errorf("platform %s has no LEDs: %w", p.Name, onlp.ErrUnsupported)
	}
	return p.Led, nil
}
