package thermal

import (
	"fmt"

	"github.com/pterm/pterm"
	"github.com/spf13/cobra"
	"github.com/ufispace/onlp2go/cmd/global"
	"github.com/ufispace/onlp2go/internal/onlp"
	"github.com/ufispace/onlp2go/internal/ui"
)

var thermalId string

var Command = &cobra.Command{
	Use:              "thermal",
	Short:            "Thermal sensor related commands",
	Long:             `Prints all thermal sensors, or the temperature of a single sensor in millidegrees celsius if --id is given`,
	TraverseChildren: true,
	Args:             cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		if len(thermalId) > 0 {
			pterm.DisableOutput()
		}
		p := global.LoadPlatform()
		if p.Thermal == nil {
			return fmt.Errorf("platform %s has no thermal sensors: %w", p.Name, onlp.ErrUnsupported)
		}

		if len(thermalId) > 0 {
			id, err := global.ParseOid(thermalId, onlp.OidTypeThermal)
			if err != nil {
				return err
			}
			info, err := p.Thermal.Info(id)
			if err != nil {
				return err
			}
			fmt.Printf("%d", info.MilliCelsius)
			return nil
		}

		printThermals(p.Thermal)
		return nil
	},
}

func init() {
	Command.PersistentFlags().StringVarP(
		&thermalId,
		"id", "i",
		"",
		"Thermal ID, e.g. 3 or thermal-3",
	)
}

func threshold(info onlp.ThermalInfo, caps onlp.ThermalCaps, value int) string {
	if !info.Caps.Has(caps) {
		return "N/A"
	}
	return fmt.Sprintf("%.1f", float64(value)/1000)
}

func printThermals(driver onlp.ThermalDriver) {
	var rows [][]string
	for _, id := range driver.Ids() {
		info, err := driver.Info(id)
		if err != nil {
			status := "error"
			if onlp.IsUnsupported(err) {
				status = "unsupported"
			}
			rows = append(rows, []string{id.String(), "", status, "", "", "", "", ""})
			continue
		}

		temperature := "N/A"
		if info.Header.Status.Has(onlp.StatusPresent) && info.Caps.Has(onlp.ThermalCapsGetTemperature) {
			temperature = fmt.Sprintf("%.1f", info.Celsius())
		}
		rows = append(rows, []string{
			id.String(),
			info.Header.Description,
			info.Header.Status.String(),
			temperature,
			threshold(info, onlp.ThermalCapsGetWarningThreshold, info.Thresholds.Warning),
			threshold(info, onlp.ThermalCapsGetErrorThreshold, info.Thresholds.Error),
			threshold(info, onlp.ThermalCapsGetShutdownThreshold, info.Thresholds.Shutdown),
			info.Level(),
		})
	}
	if len(rows) <= 0 {
		ui.Warning("No thermal sensors found")
		return
	}
	global.PrintTable([]string{"ID", "Description", "Status", "°C", "Warning", "Error", "Shutdown", "Level"}, rows)
}
