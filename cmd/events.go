package cmd

import (
	"github.com/spf13/cobra"
	"github.com/ufispace/onlp2go/cmd/global"
	"github.com/ufispace/onlp2go/internal"
	"github.com/ufispace/onlp2go/internal/persistence"
	"github.com/ufispace/onlp2go/internal/ui"
)

var eventLimit int

var eventsCmd = &cobra.Command{
	Use:   "events",
	Short: "Print the recorded status changes",
	Long:  `Prints the status changes the daemon recorded for this platform in chronological order`,
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		config := global.LoadConfig()
		p, err := internal.LoadPlatform(config)
		if err != nil {
			return err
		}

		pers := persistence.NewPersistence(config.DbPath)
		events, err := pers.LoadEvents(p.Name, eventLimit)
		if err != nil {
			return err
		}
		if len(events) <= 0 {
			ui.Info("No events recorded for %s", p.Name)
			return nil
		}

		var rows [][]string
		for _, event := range events {
			rows = append(rows, []string{
				event.Time.Format("2006-01-02 15:04:05"),
				event.Id.String(),
				event.Description,
				event.Old.String(),
				event.New.String(),
			})
		}
		global.PrintTable([]string{"Time", "ID", "Description", "Old", "New"}, rows)
		return nil
	},
}

func init() {
	eventsCmd.Flags().IntVarP(&eventLimit, "limit", "l", 20, "Maximum number of events to print")
	rootCmd.AddCommand(eventsCmd)
}
