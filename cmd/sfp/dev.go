package sfp

import (
	"encoding/hex"
	"fmt"

	"github.com/spf13/cobra"
	"github.com/ufispace/onlp2go/internal/onlp"
	"github.com/ufispace/onlp2go/internal/ui"
	"github.com/ufispace/onlp2go/internal/util"
)

var (
	word bool
	size int
)

type devArgs struct {
	port    int
	devAddr uint8
	addr    uint8
}

func parseDevArgs(args []string) (devArgs, error) {
	var result devArgs
	var err error
	if result.port, err = parsePort(args[0]); err != nil {
		return result, err
	}
	if result.devAddr, err = parseUint8("device address", args[1]); err != nil {
		return result, err
	}
	if result.addr, err = parseUint8("address", args[2]); err != nil {
		return result, err
	}
	return result, nil
}

var readCmd = &cobra.Command{
	Use:   "read <port> <devaddr> <addr>",
	Short: "Read from an i2c device of a transceiver, e.g. read 3 0x50 0x14",
	Args:  cobra.ExactArgs(3),
	RunE: func(cmd *cobra.Command, args []string) error {
		dev, err := parseDevArgs(args)
		if err != nil {
			return err
		}
		driver, err := getDriver()
		if err != nil {
			return err
		}

		switch {
		case word:
			value, err := driver.DevReadWord(dev.port, dev.devAddr, dev.addr)
			if err != nil {
				return err
			}
			ui.Printfln("0x%04x", value)
		case size > 1:
			data, err := driver.DevRead(dev.port, dev.devAddr, dev.addr, size)
			if err != nil {
				return err
			}
			ui.Printf("%s", hex.Dump(data))
		default:
			value, err := driver.DevReadByte(dev.port, dev.devAddr, dev.addr)
			if err != nil {
				return err
			}
			ui.Printfln("0x%02x", value)
		}
		return nil
	},
}

var writeCmd = &cobra.Command{
	Use:   "write <port> <devaddr> <addr> <value>",
	Short: "Write to an i2c device of a transceiver, e.g. write 3 0x50 0x7f 0x01",
	Args:  cobra.ExactArgs(4),
	RunE: func(cmd *cobra.Command, args []string) error {
		dev, err := parseDevArgs(args)
		if err != nil {
			return err
		}
		value, err := util.ParseInt(args[3])
		if err != nil {
			return fmt.Errorf("invalid value '%s': %w", args[3], onlp.ErrParam)
		}
		driver, err := getDriver()
		if err != nil {
			return err
		}

		if word {
			if value < 0 || value > 0xffff {
				return fmt.Errorf("value 0x%x exceeds a word: %w", value, onlp.ErrParam)
			}
			return driver.DevWriteWord(dev.port, dev.devAddr, dev.addr, uint16(value))
		}
		if value < 0 || value > 0xff {
			return fmt.Errorf("value 0x%x exceeds a byte: %w", value, onlp.ErrParam)
		}
		return driver.DevWriteByte(dev.port, dev.devAddr, dev.addr, uint8(value))
	},
}

func init() {
	readCmd.Flags().BoolVar(&word, "word", false, "Read a 16 bit word")
	readCmd.Flags().IntVar(&size, "size", 1, "Number of bytes to read")
	writeCmd.Flags().BoolVar(&word, "word", false, "Write a 16 bit word")
	Command.AddCommand(readCmd)
	Command.AddCommand(writeCmd)
}
