package fan

import (
	"fmt"
	"strconv"

	"github.com/pterm/pterm"
	"github.com/spf13/cobra"
	"github.com/ufispace/onlp2go/cmd/global"
	"github.com/ufispace/onlp2go/internal/onlp"
	"github.com/ufispace/onlp2go/internal/ui"
)

var fanId string

var Command = &cobra.Command{
	Use:              "fan",
	Short:            "Fan related commands",
	Long:             `Prints all fans, or the RPM of a single fan if --id is given`,
	TraverseChildren: true,
	Args:             cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		if len(fanId) > 0 {
			pterm.DisableOutput()
		}
		driver, err := getDriver()
		if err != nil {
			return err
		}

		if len(fanId) > 0 {
			id, err := global.ParseOid(fanId, onlp.OidTypeFan)
			if err != nil {
				return err
			}
			info, err := driver.Info(id)
			if err != nil {
				return err
			}
			fmt.Printf("%d", info.Rpm)
			return nil
		}

		printFans(driver)
		return nil
	},
}

func init() {
	Command.PersistentFlags().StringVarP(
		&fanId,
		"id", "i",
		"",
		"Fan ID, e.g. 2 or fan-2",
	)
}

func getDriver() (onlp.FanDriver, error) {
	p := global.LoadPlatform()
	if p.Fan == nil {
		return nil, fmt.Errorf("platform %s has no fans: %w", p.Name, onlp.ErrUnsupported)
	}
	return p.Fan, nil
}

func printFans(driver onlp.FanDriver) {
	var rows [][]string
	for _, id := range driver.Ids() {
		info, err := driver.Info(id)
		if err != nil {
			rows = append(rows, []string{id.String(), "", "error: " + err.Error(), "", "", ""})
			continue
		}
		rpm, percentage := "N/A", "N/A"
		if info.Header.Status.Has(onlp.StatusPresent) {
			if info.Caps.Has(onlp.FanCapsGetRpm) {
				rpm = strconv.Itoa(info.Rpm)
			}
			if info.Caps.Has(onlp.FanCapsGetPercentage) {
				percentage = strconv.Itoa(info.Percentage)
			}
		}
		rows = append(rows, []string{
			id.String(),
			info.Header.Description,
			info.Header.Status.String(),
			rpm,
			percentage,
			string(info.Dir),
		})
	}
	if len(rows) <= 0 {
		ui.Warning("No fans found")
		return
	}
	global.PrintTable([]string{"ID", "Description", "Status", "RPM", "%", "Direction"}, rows)
}
