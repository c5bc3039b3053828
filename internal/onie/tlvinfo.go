package onie

import (
	"bytes"
	"encoding/binary"
	"fmt"
	"hash/crc32"
	"net"
	"strings"

	"github.com/ufispace/onlp2go/internal/hw/sysfs"
	"github.com/ufispace/onlp2go/internal/onlp"
)

// TlvInfo record types
const (
	productName     = 0x21
	partNumber      = 0x22
	serialNumber    = 0x23
	macBase         = 0x24
	manufactureDate = 0x25
	deviceVersion   = 0x26
	labelRevision   = 0x27
	platformName    = 0x28
	onieVersion     = 0x29
	numMacs         = 0x2a
	manufacturer    = 0x2b
	countryCode     = 0x2c
	vendor          = 0x2d
	diagVersion     = 0x2e
	serviceTag      = 0x2f
	vendorExt       = 0xfd
	crc             = 0xfe
)

const (
	headerId      = "TlvInfo\x00"
	headerVersion = 0x01
	// id, version and the big endian total length of all records
	HeaderLength = len(headerId) + 1 + 2
	// maximum total length of all records
	MaxLength = 2048
)

// DecodeFile reads and decodes the TlvInfo eeprom at path
func DecodeFile(root *sysfs.Root, path string) (*onlp.OnieInfo, error) {
	header, err := root.ReadBytes(path, 0, HeaderLength)
	if err != nil {
		return nil, err
	}
	length, err := parseHeader(header)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	b, err := root.ReadBytes(path, 0, HeaderLength+length)
	if err != nil {
		return nil, err
	}
	return Decode(b)
}

func parseHeader(b []byte) (int, error) {
	if len(b) < HeaderLength {
		return 0, fmt.Errorf("tlvinfo header too short (%d bytes): %w", len(b), onlp.ErrParam)
	}
	if !bytes.Equal(b[:len(headerId)], []byte(headerId)) {
		return 0, fmt.Errorf("missing tlvinfo id: %w", onlp.ErrParam)
	}
	if b[len(headerId)] != headerVersion {
		return 0, fmt.Errorf("unsupported tlvinfo version %d: %w", b[len(headerId)], onlp.ErrParam)
	}
	length := int(binary.BigEndian.Uint16(b[len(headerId)+1:]))
	if length > MaxLength {
		return 0, fmt.Errorf("tlvinfo length %d exceeds %d: %w", length, MaxLength, onlp.ErrParam)
	}
	return length, nil
}

// Decode parses a TlvInfo eeprom image and verifies its crc record
func Decode(b []byte) (*onlp.OnieInfo, error) {
	length, err := parseHeader(b)
	if err != nil {
		return nil, err
	}
	if len(b) < HeaderLength+length {
		return nil, fmt.Errorf("tlvinfo truncated, want %d bytes, got %d: %w", HeaderLength+length, len(b), onlp.ErrParam)
	}

	info := &onlp.OnieInfo{}
	crcFound := false
	data := b[HeaderLength : HeaderLength+length]
	for i := 0; i < len(data); {
		if i+2 > len(data) {
			return nil, fmt.Errorf("tlv at offset %d truncated: %w", i, onlp.ErrParam)
		}
		t, l := data[i], int(data[i+1])
		if i+2+l > len(data) {
			return nil, fmt.Errorf("tlv 0x%02x at offset %d exceeds data: %w", t, i, onlp.ErrParam)
		}
		v := data[i+2 : i+2+l]

		if t == crc {
			if l != 4 {
				return nil, fmt.Errorf("crc tlv has length %d: %w", l, onlp.ErrParam)
			}
			// covers everything up to and including the crc type and length
			end := HeaderLength + i + 2
			computed := crc32.ChecksumIEEE(b[:end])
			stored := binary.BigEndian.Uint32(v)
			if computed != stored {
				return nil, fmt.Errorf("tlvinfo crc mismatch, stored 0x%08x computed 0x%08x: %w", stored, computed, onlp.ErrInternal)
			}
			info.Crc = stored
			crcFound = true
		} else {
			decodeRecord(info, t, v)
		}
		i += 2 + l
	}

	if !crcFound {
		return nil, fmt.Errorf("tlvinfo has no crc record: %w", onlp.ErrInternal)
	}
	return info, nil
}

func decodeRecord(info *onlp.OnieInfo, t byte, v []byte) {
	text := strings.TrimRight(string(v), "\x00")
	switch t {
	case productName:
		info.ProductName = text
	case partNumber:
		info.PartNumber = text
	case serialNumber:
		info.SerialNumber = text
	case macBase:
		if len(v) == 6 {
			info.MacBase = append(net.HardwareAddr{}, v...)
		}
	case manufactureDate:
		info.ManufactureDate = text
	case deviceVersion:
		if len(v) > 0 {
			info.DeviceVersion = v[0]
		}
	case labelRevision:
		info.LabelRevision = text
	case platformName:
		info.PlatformName = text
	case onieVersion:
		info.OnieVersion = text
	case numMacs:
		if len(v) == 2 {
			info.MacRange = binary.BigEndian.Uint16(v)
		}
	case manufacturer:
		info.Manufacturer = text
	case countryCode:
		info.CountryCode = text
	case vendor:
		info.Vendor = text
	case diagVersion:
		info.DiagVersion = text
	case serviceTag:
		info.ServiceTag = text
	case vendorExt:
		info.VendorExtensions = append(info.VendorExtensions, append([]byte{}, v...))
	}
}

// Encode builds a TlvInfo image from info, used to provision fixtures
func Encode(info *onlp.OnieInfo) []byte {
	var data []byte
	add := func(t byte, v []byte) {
		if len(v) == 0 {
			return
		}
		data = append(data, t, byte(len(v)))
		data = append(data, v...)
	}
	add(productName, []byte(info.ProductName))
	add(partNumber, []byte(info.PartNumber))
	add(serialNumber, []byte(info.SerialNumber))
	add(macBase, info.MacBase)
	add(manufactureDate, []byte(info.ManufactureDate))
	add(deviceVersion, []byte{info.DeviceVersion})
	add(labelRevision, []byte(info.LabelRevision))
	add(platformName, []byte(info.PlatformName))
	add(onieVersion, []byte(info.OnieVersion))
	if info.MacRange > 0 {
		add(numMacs, binary.BigEndian.AppendUint16(nil, info.MacRange))
	}
	add(manufacturer, []byte(info.Manufacturer))
	add(countryCode, []byte(info.CountryCode))
	add(vendor, []byte(info.Vendor))
	add(diagVersion, []byte(info.DiagVersion))
	add(serviceTag, []byte(info.ServiceTag))
	for _, ext := range info.VendorExtensions {
		add(vendorExt, ext)
	}

	b := append([]byte(headerId), headerVersion)
	b = binary.BigEndian.AppendUint16(b, uint16(len(data)+6))
	b = append(b, data...)
	b = append(b, crc, 4)
	return binary.BigEndian.AppendUint32(b, crc32.ChecksumIEEE(b))
}
