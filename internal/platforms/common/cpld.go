package common

import (
	"fmt"

	"github.com/ufispace/onlp2go/internal/hw/ioport"
	"github.com/ufispace/onlp2go/internal/onlp"
)

const (
	// io port of the cpu cpld version register
	CpuCpldVersionPort = 0x600
	// io port of the mainboard cpld board type and revision register
	BoardRevisionPort = 0x700
)

// CpldVersion splits a cpld version register into release and version
type CpldVersion struct {
	Major int
	Minor int
}

func NewCpldVersion(value int) CpldVersion {
	return CpldVersion{
		Major: (value >> 6) & 0x01,
		Minor: value & 0x3F,
	}
}

func (v CpldVersion) String() string {
	return fmt.Sprintf("%d.%02d", v.Major, v.Minor)
}

// BoardRevision is the hardware and build revision of a mainboard
type BoardRevision struct {
	Hw    int
	Build int
}

// NewBoardRevision decodes the board type revision register
func NewBoardRevision(value int) BoardRevision {
	return BoardRevision{
		Hw:    (value >> 2) & 0x03,
		Build: (value & 0x03) | ((value >> 5) & 0x04),
	}
}

// ReadBoardRevision reads the board revision from the io port register
func ReadBoardRevision(port ioport.Port) (BoardRevision, error) {
	value, err := port.ReadByte(BoardRevisionPort)
	if err != nil {
		return BoardRevision{}, fmt.Errorf("read board revision: %w", wrapInternal(err))
	}
	return NewBoardRevision(int(value)), nil
}

func wrapInternal(err error) error {
	return fmt.Errorf("%w: %v", onlp.ErrInternal, err)
}
