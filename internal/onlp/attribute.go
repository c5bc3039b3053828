package onlp

import "net"

const (
	AttributeOnieInfo  = "onlp.attr.onie_info"
	AttributeAssetInfo = "onlp.attr.asset_info"
)

// OnieInfo holds the decoded TlvInfo records of an ONIE system eeprom
type OnieInfo struct {
	ProductName      string           `json:"productName,omitempty"`
	PartNumber       string           `json:"partNumber,omitempty"`
	SerialNumber     string           `json:"serialNumber,omitempty"`
	MacBase          net.HardwareAddr `json:"macBase,omitempty"`
	ManufactureDate  string           `json:"manufactureDate,omitempty"`
	DeviceVersion    uint8            `json:"deviceVersion"`
	LabelRevision    string           `json:"labelRevision,omitempty"`
	PlatformName     string           `json:"platformName,omitempty"`
	OnieVersion      string           `json:"onieVersion,omitempty"`
	MacRange         uint16           `json:"macRange"`
	Manufacturer     string           `json:"manufacturer,omitempty"`
	CountryCode      string           `json:"countryCode,omitempty"`
	Vendor           string           `json:"vendor,omitempty"`
	DiagVersion      string           `json:"diagVersion,omitempty"`
	ServiceTag       string           `json:"serviceTag,omitempty"`
	VendorExtensions [][]byte         `json:"vendorExtensions,omitempty"`
	Crc              uint32           `json:"crc"`
}

type AssetInfo struct {
	OemId            string `json:"oemId,omitempty"`
	Manufacturer     string `json:"manufacturer,omitempty"`
	PartNumber       string `json:"partNumber,omitempty"`
	SerialNumber     string `json:"serialNumber,omitempty"`
	ManufactureDate  string `json:"manufactureDate,omitempty"`
	FirmwareRevision string `json:"firmwareRevision,omitempty"`
	CpldRevision     string `json:"cpldRevision,omitempty"`
	Description      string `json:"description,omitempty"`
}
