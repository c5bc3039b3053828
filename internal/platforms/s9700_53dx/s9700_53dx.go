package s9700_53dx

import (
	"fmt"

	"github.com/ufispace/onlp2go/internal/onlp"
	"github.com/ufispace/onlp2go/internal/platform"
	"github.com/ufispace/onlp2go/internal/platforms/common"
	"github.com/ufispace/onlp2go/internal/ui"
)

const Name = "x86-64-ufispace-s9700-53dx"

type revision struct {
	hw    int
	build int
}

// revisionSuffix maps the board revision register to the platform revision
var revisionSuffix = map[revision]string{
	{hw: 0, build: 0}: "r0",
	{hw: 1, build: 0}: "r1",
	{hw: 1, build: 1}: "r2",
	{hw: 1, build: 2}: "r3",
	{hw: 2, build: 1}: "r4",
	{hw: 2, build: 2}: "r5",
	{hw: 2, build: 3}: "r6",
	{hw: 3, build: 0}: "r7",
	{hw: 3, build: 1}: "r8",
	{hw: 3, build: 2}: "r9",
}

// newer revisions are compatible with the latest known one
const latestRevision = "r9"

type board struct {
	common.Board
	env *platform.Env
}

// Name detects the platform revision from the mainboard cpld
func (b *board) Name() (string, error) {
	rev, err := common.ReadBoardRevision(b.env.IoPort)
	if err != nil {
		ui.Error("Unable to read MB CPLD1 board type revision: %v", err)
		return fmt.Sprintf("%s-rx", Name), err
	}
	suffix, ok := revisionSuffix[revision{hw: rev.Hw, build: rev.Build}]
	if !ok {
		suffix = latestRevision
	}
	return fmt.Sprintf("%s-%s", Name, suffix), nil
}

// New creates the drivers of a s9700-53dx
func New(env *platform.Env) *onlp.Platform {
	return &onlp.Platform{
		Name:    Name,
		Version: 1,
		Led:     &leds{env: env},
		Board:   &board{env: env},
	}
}
