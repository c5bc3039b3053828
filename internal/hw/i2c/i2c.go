package i2c

import (
	"fmt"

	"github.com/platinasystems/i2c"
)

// maximum payload of a single smbus block transfer
const blockMax = 32

// Bus performs SMBus transfers on /dev/i2c-<bus>
type Bus interface {
	ReadByte(bus int, addr int, reg uint8) (uint8, error)
	WriteByte(bus int, addr int, reg uint8, value uint8) error
	ReadWord(bus int, addr int, reg uint8) (uint16, error)
	WriteWord(bus int, addr int, reg uint8, value uint16) error
	ReadBlock(bus int, addr int, reg uint8, size int) ([]byte, error)
	WriteBlock(bus int, addr int, reg uint8, data []byte) error
}

type transferFunc func(bus int, addr int, rw i2c.RW, reg uint8, size i2c.SMBusSize, data *i2c.SMBusData) error

// SMBus talks to the kernel i2c-dev driver. The slave address is always forced,
// since most devices on these boards are bound to a kernel driver.
type SMBus struct {
	transfer transferFunc
}

func NewSMBus() *SMBus {
	return &SMBus{transfer: devTransfer}
}

func (s *SMBus) do(bus int, addr int, rw i2c.RW, reg uint8, size i2c.SMBusSize, data *i2c.SMBusData) error {
	if s.transfer == nil {
		return devTransfer(bus, addr, rw, reg, size, data)
	}
	return s.transfer(bus, addr, rw, reg, size, data)
}

func devTransfer(bus int, addr int, rw i2c.RW, reg uint8, size i2c.SMBusSize, data *i2c.SMBusData) error {
	i2c.Lock.Lock()
	defer i2c.Lock.Unlock()

	var b i2c.Bus
	if err := b.Open(bus); err != nil {
		return fmt.Errorf("open i2c bus %d: %w", bus, err)
	}
	defer b.Close()

	if err := b.ForceSlaveAddress(addr); err != nil {
		return fmt.Errorf("set slave address 0x%02x on bus %d: %w", addr, bus, err)
	}

	if err := b.Do(rw, reg, size, data); err != nil {
		return fmt.Errorf("i2c transfer bus %d addr 0x%02x reg 0x%02x: %w", bus, addr, reg, err)
	}
	return nil
}

func (s *SMBus) ReadByte(bus int, addr int, reg uint8) (uint8, error) {
	var data i2c.SMBusData
	if err := s.do(bus, addr, i2c.Read, reg, i2c.ByteData, &data); err != nil {
		return 0, err
	}
	return data[0], nil
}

func (s *SMBus) WriteByte(bus int, addr int, reg uint8, value uint8) error {
	var data i2c.SMBusData
	data[0] = value
	return s.do(bus, addr, i2c.Write, reg, i2c.ByteData, &data)
}

func (s *SMBus) ReadWord(bus int, addr int, reg uint8) (uint16, error) {
	var data i2c.SMBusData
	if err := s.do(bus, addr, i2c.Read, reg, i2c.WordData, &data); err != nil {
		return 0, err
	}
	return uint16(data[0]) | uint16(data[1])<<8, nil
}

func (s *SMBus) WriteWord(bus int, addr int, reg uint8, value uint16) error {
	var data i2c.SMBusData
	data[0] = uint8(value)
	data[1] = uint8(value >> 8)
	return s.do(bus, addr, i2c.Write, reg, i2c.WordData, &data)
}

// ReadBlock reads size bytes starting at reg, split into i2c block transfers
func (s *SMBus) ReadBlock(bus int, addr int, reg uint8, size int) ([]byte, error) {
	if size <= 0 {
		return nil, fmt.Errorf("invalid block size %d", size)
	}
	result := make([]byte, 0, size)
	for offset := 0; offset < size; offset += blockMax {
		n := min(blockMax, size-offset)
		var data i2c.SMBusData
		data[0] = uint8(n)
		if err := s.do(bus, addr, i2c.Read, reg+uint8(offset), i2c.I2CBlockData, &data); err != nil {
			return nil, err
		}
		result = append(result, data[1:1+n]...)
	}
	return result, nil
}

func (s *SMBus) WriteBlock(bus int, addr int, reg uint8, payload []byte) error {
	for offset := 0; offset < len(payload); offset += blockMax {
		n := min(blockMax, len(payload)-offset)
		var data i2c.SMBusData
		data[0] = uint8(n)
		copy(data[1:], payload[offset:offset+n])
		if err := s.do(bus, addr, i2c.Write, reg+uint8(offset), i2c.I2CBlockData, &data); err != nil {
			return err
		}
	}
	return nil
}
