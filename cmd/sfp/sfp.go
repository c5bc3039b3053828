package sfp

import (
	"fmt"
	"strconv"

	"github.com/spf13/cobra"
	"github.com/ufispace/onlp2go/cmd/global"
	"github.com/ufispace/onlp2go/internal/onlp"
	"github.com/ufispace/onlp2go/internal/ui"
	"github.com/ufispace/onlp2go/internal/util"
)

var onlyPresent bool

var Command = &cobra.Command{
	Use:              "sfp",
	Short:            "Transceiver port related commands",
	Long:             `Prints the presence and loss of signal state of all ports`,
	TraverseChildren: true,
	Args:             cobra.NoArgs,
	RunE:             listPorts,
}

var listCmd = &cobra.Command{
	Use:   "list",
	Short: "List all ports",
	Args:  cobra.NoArgs,
	RunE:  listPorts,
}

func listPorts(cmd *cobra.Command, args []string) error {
	driver, err := getDriver()
	if err != nil {
		return err
	}
	ports, err := driver.Bitmap()
	if err != nil {
		return err
	}
	present, err := driver.PresenceBitmap()
	if err != nil {
		return err
	}
	rxLos, err := driver.RxLosBitmap()
	if err != nil {
		ui.Warning("Unable to read rx los: %v", err)
		rxLos = onlp.NewSfpBitmap()
	}

	var rows [][]string
	for _, port := range ports.Ports() {
		if onlyPresent && !present.IsSet(port) {
			continue
		}
		rows = append(rows, []string{
			strconv.Itoa(port),
			fmt.Sprintf("%v", present.IsSet(port)),
			fmt.Sprintf("%v", rxLos.IsSet(port)),
		})
	}
	if len(rows) <= 0 {
		ui.Warning("No ports found")
		return nil
	}
	global.PrintTable([]string{"Port", "Present", "RX LOS"}, rows)
	return nil
}

func init() {
	Command.PersistentFlags().BoolVar(&onlyPresent, "present", false, "Only list ports with a transceiver")
	Command.AddCommand(listCmd)
}

func getDriver() (onlp.SfpDriver, error) {
	p := global.LoadPlatform()
	if p.Sfp == nil {
		return nil, fmt.Errorf("platform %s has no transceiver ports: %w", p.Name, onlp.ErrUnsupported)
	}
	return p.Sfp, nil
}

func parsePort(text string) (int, error) {
	port, err := strconv.Atoi(text)
	if err != nil {
		return 0, fmt.Errorf("invalid port '%s': %w", text, onlp.ErrParam)
	}
	return port, nil
}

// parseUint8 accepts decimal and 0x prefixed hex values
func parseUint8(name string, text string) (uint8, error) {
	value, err := util.ParseInt(text)
	if err != nil || value < 0 || value > 0xff {
		return 0, fmt.Errorf("invalid %s '%s': %w", name, text, onlp.ErrParam)
	}
	return uint8(value), nil
}
