package common

import (
	"fmt"

	"github.com/ufispace/onlp2go/internal/onlp"
)

// Board is the platform driver of boards without revision detection or
// board initialization
type Board struct {
	PlatformName string
}

func (b *Board) Name() (string, error) {
	return b.PlatformName, nil
}

func (b *Board) ManageFans() error {
	return fmt.Errorf("manage fans: %w", onlp.ErrUnsupported)
}

func (b *Board) ManageLeds() error {
	return fmt.Errorf("manage leds: %w", onlp.ErrUnsupported)
}

func (b *Board) BaseConfig() error {
	return nil
}
