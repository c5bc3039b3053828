package thermal

import (
	"errors"
	"fmt"
	"time"

	"github.com/guptarohit/asciigraph"
	"github.com/spf13/cobra"
	"github.com/ufispace/onlp2go/cmd/global"
	"github.com/ufispace/onlp2go/internal/onlp"
	"github.com/ufispace/onlp2go/internal/ui"
	"github.com/ufispace/onlp2go/internal/util"
)

var (
	watchInterval time.Duration
	watchSamples  int
)

var watchCmd = &cobra.Command{
	Use:   "watch",
	Short: "Plot the temperature of a thermal sensor over time",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		if len(thermalId) <= 0 {
			return errors.New("--id is required")
		}
		if watchSamples < 2 {
			return errors.New("--samples must be >= 2")
		}
		p := global.LoadPlatform()
		if p.Thermal == nil {
			return fmt.Errorf("platform %s has no thermal sensors: %w", p.Name, onlp.ErrUnsupported)
		}
		id, err := global.ParseOid(thermalId, onlp.OidTypeThermal)
		if err != nil {
			return err
		}

		window := util.CreateRollingWindow(watchSamples)
		var values []float64
		for i := 0; i < watchSamples; i++ {
			if i > 0 {
				time.Sleep(watchInterval)
			}
			info, err := p.Thermal.Info(id)
			if err != nil {
				return err
			}
			window.Append(info.Celsius())
			values = append(values, info.Celsius())
		}

		caption := fmt.Sprintf("%s °C, avg %.1f, max %.1f", id, util.GetWindowAvg(window), util.GetWindowMax(window))
		graph := asciigraph.Plot(values, asciigraph.Height(15), asciigraph.Width(100), asciigraph.Caption(caption))
		ui.Printfln(graph)
		return nil
	},
}

func init() {
	watchCmd.Flags().DurationVar(&watchInterval, "interval", time.Second, "Time between two samples")
	watchCmd.Flags().IntVarP(&watchSamples, "samples", "n", 30, "Number of samples to plot")
	Command.AddCommand(watchCmd)
}
