package cmd

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/spf13/cobra"
	"github.com/ufispace/onlp2go/cmd/global"
	"github.com/ufispace/onlp2go/internal/inventory"
	"github.com/ufispace/onlp2go/internal/onlp"
	"github.com/ufispace/onlp2go/internal/ui"
	"github.com/ufispace/onlp2go/internal/util"
	"gopkg.in/yaml.v3"
)

var dumpOutput string

var dumpCmd = &cobra.Command{
	Use:   "dump",
	Short: "Print the state of all components",
	Long:  `Reads every component of the board once and prints the result`,
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		p := global.LoadPlatform()
		snapshot, err := inventory.Collect(p)
		if err != nil {
			return err
		}

		switch strings.ToLower(dumpOutput) {
		case "json":
			data, err := json.MarshalIndent(snapshot, "", "  ")
			if err != nil {
				return err
			}
			ui.Printfln("%s", data)
		case "yaml":
			data, err := yaml.Marshal(snapshot)
			if err != nil {
				return err
			}
			ui.Printf("%s", data)
		case "table":
			printSnapshot(snapshot)
		default:
			return fmt.Errorf("unsupported output format: %s", dumpOutput)
		}
		return nil
	},
}

func printSnapshot(snapshot *inventory.Snapshot) {
	var rows [][]string
	for _, id := range snapshot.Oids() {
		hdr := snapshot.Headers[id]
		rows = append(rows, []string{id.String(), hdr.Description, hdr.Parent.String(), hdr.Status.String(), snapshotValue(snapshot, id)})
	}
	for _, id := range util.SortedKeys(snapshot.Errors) {
		if _, ok := snapshot.Headers[id]; !ok {
			rows = append(rows, []string{id.String(), "", "", "", "error: " + snapshot.Errors[id]})
		}
	}
	global.PrintTable([]string{"ID", "Description", "Parent", "Status", "Value"}, rows)

	if len(snapshot.SfpPorts) > 0 {
		ui.Printfln("SFP ports: %d, present: %v, rx los: %v", len(snapshot.SfpPorts), snapshot.SfpPresent, snapshot.SfpRxLos)
	}
	if snapshot.Onie != nil {
		ui.Printfln("Product: %s, serial: %s", snapshot.Onie.ProductName, snapshot.Onie.SerialNumber)
	}
}

func snapshotValue(snapshot *inventory.Snapshot, id onlp.Oid) string {
	if info, ok := snapshot.Thermals[id]; ok {
		return fmt.Sprintf("%.1f°C", info.Celsius())
	}
	if info, ok := snapshot.Fans[id]; ok {
		return fmt.Sprintf("%d rpm (%d%%)", info.Rpm, info.Percentage)
	}
	if info, ok := snapshot.Leds[id]; ok {
		return string(info.Mode)
	}
	if info, ok := snapshot.Psus[id]; ok {
		return fmt.Sprintf("power good: %v", info.PowerGood)
	}
	return ""
}

func init() {
	dumpCmd.Flags().StringVarP(&dumpOutput, "output", "o", "table", "Output format, one of: table, json, yaml")
	rootCmd.AddCommand(dumpCmd)
}
