package attribute

import (
	"fmt"

	"github.com/spf13/cobra"
	"github.com/ufispace/onlp2go/cmd/global"
	"github.com/ufispace/onlp2go/internal/onlp"
	"github.com/ufispace/onlp2go/internal/ui"
)

var Command = &cobra.Command{
	Use:              "attribute",
	Short:            "Board identity related commands",
	Long:             `Prints the ONIE system eeprom and the asset information of the chassis`,
	TraverseChildren: true,
	Args:             cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		if err := onieCmd.RunE(cmd, args); err != nil {
			return err
		}
		ui.Printfln("")
		return assetCmd.RunE(cmd, args)
	},
}

var onieCmd = &cobra.Command{
	Use:   "onie",
	Short: "Print the decoded ONIE system eeprom",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		driver, err := getDriver(onlp.AttributeOnieInfo)
		if err != nil {
			return err
		}
		info, err := driver.OnieInfo(onlp.OidChassis)
		if err != nil {
			return err
		}
		global.PrintTable([]string{"TLV", "Value"}, onieRows(info))
		return nil
	},
}

var assetCmd = &cobra.Command{
	Use:   "asset",
	Short: "Print manufacturer, serial number and firmware revisions",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		driver, err := getDriver(onlp.AttributeAssetInfo)
		if err != nil {
			return err
		}
		info, err := driver.AssetInfo(onlp.OidChassis)
		if err != nil {
			return err
		}
		global.PrintTable([]string{"Field", "Value"}, assetRows(info))
		return nil
	},
}

func init() {
	Command.AddCommand(onieCmd)
	Command.AddCommand(assetCmd)
}

func getDriver(name string) (onlp.AttributeDriver, error) {
	p := global.LoadPlatform()
	if p.Attribute == nil || !p.Attribute.Supported(onlp.OidChassis, name) {
		return nil, fmt.Errorf("platform %s does not provide %s: %w", p.Name, name, onlp.ErrUnsupported)
	}
	return p.Attribute, nil
}

func onieRows(info *onlp.OnieInfo) [][]string {
	rows := [][]string{
		{"Product Name", info.ProductName},
		{"Part Number", info.PartNumber},
		{"Serial Number", info.SerialNumber},
		{"Base MAC Address", info.MacBase.String()},
		{"Manufacture Date", info.ManufactureDate},
		{"Device Version", fmt.Sprintf("%d", info.DeviceVersion)},
		{"Label Revision", info.LabelRevision},
		{"Platform Name", info.PlatformName},
		{"ONIE Version", info.OnieVersion},
		{"MAC Addresses", fmt.Sprintf("%d", info.MacRange)},
		{"Manufacturer", info.Manufacturer},
		{"Country Code", info.CountryCode},
		{"Vendor Name", info.Vendor},
		{"Diag Version", info.DiagVersion},
		{"Service Tag", info.ServiceTag},
	}
	for _, extension := range info.VendorExtensions {
		rows = append(rows, []string{"Vendor Extension", fmt.Sprintf("% x", extension)})
	}
	rows = append(rows, []string{"CRC-32", fmt.Sprintf("0x%08X", info.Crc)})
	return rows
}

func assetRows(info *onlp.AssetInfo) [][]string {
	return [][]string{
		{"OEM Id", info.OemId},
		{"Manufacturer", info.Manufacturer},
		{"Part Number", info.PartNumber},
		{"Serial Number", info.SerialNumber},
		{"Manufacture Date", info.ManufactureDate},
		{"Firmware Revision", info.FirmwareRevision},
		{"CPLD Revision", info.CpldRevision},
		{"Description", info.Description},
	}
}
