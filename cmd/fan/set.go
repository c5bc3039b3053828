package fan

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"
	"github.com/ufispace/onlp2go/cmd/global"
	"github.com/ufispace/onlp2go/internal/onlp"
	"github.com/ufispace/onlp2go/internal/ui"
)

var (
	setRpm        int
	setPercentage int
	setDir        string
)

var setCmd = &cobra.Command{
	Use:   "set",
	Short: "Set the speed or airflow direction of a fan",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		if len(fanId) <= 0 {
			return errors.New("--id is required")
		}
		flags := cmd.Flags()
		selected := 0
		for _, name := range []string{"rpm", "percentage", "dir"} {
			if flags.Changed(name) {
				selected++
			}
		}
		if selected != 1 {
			return errors.New("exactly one of --rpm, --percentage or --dir is required")
		}

		driver, err := getDriver()
		if err != nil {
			return err
		}
		id, err := global.ParseOid(fanId, onlp.OidTypeFan)
		if err != nil {
			return err
		}

		switch {
		case flags.Changed("rpm"):
			err = driver.SetRpm(id, setRpm)
		case flags.Changed("percentage"):
			if setPercentage < 0 || setPercentage > 100 {
				return fmt.Errorf("percentage %d out of range 0..100: %w", setPercentage, onlp.ErrParam)
			}
			err = driver.SetPercentage(id, setPercentage)
		default:
			err = driver.SetDir(id, onlp.FanDir(setDir))
		}
		if err != nil {
			return err
		}
		ui.Success("Fan %s updated", id)
		return nil
	},
}

func init() {
	setCmd.Flags().IntVar(&setRpm, "rpm", 0, "Target RPM")
	setCmd.Flags().IntVar(&setPercentage, "percentage", 0, "Target speed in percent [0..100]")
	setCmd.Flags().StringVar(&setDir, "dir", "", "Airflow direction, f2b or b2f")
	Command.AddCommand(setCmd)
}
