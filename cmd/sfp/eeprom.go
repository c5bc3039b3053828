package sfp

import (
	"encoding/hex"

	"github.com/spf13/cobra"
	"github.com/ufispace/onlp2go/internal/ui"
)

var dom bool

var eepromCmd = &cobra.Command{
	Use:   "eeprom <port>",
	Short: "Dump the eeprom of a transceiver",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		port, err := parsePort(args[0])
		if err != nil {
			return err
		}
		driver, err := getDriver()
		if err != nil {
			return err
		}

		var data []byte
		if dom {
			data, err = driver.ReadDom(port)
		} else {
			data, err = driver.ReadEeprom(port)
		}
		if err != nil {
			return err
		}
		ui.Printf("%s", hex.Dump(data))
		return nil
	},
}

func init() {
	eepromCmd.Flags().BoolVar(&dom, "dom", false, "Dump the diagnostic monitoring page instead")
	Command.AddCommand(eepromCmd)
}
