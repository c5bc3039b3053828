package sysfs

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/ufispace/onlp2go/internal/onlp"
	"github.com/ufispace/onlp2go/internal/util"
)

// Root resolves absolute host paths below an optional prefix,
// so drivers can run against a fixture tree.
type Root struct {
	prefix string
}

func NewRoot(prefix string) *Root {
	return &Root{prefix: prefix}
}

// Path maps an absolute host path to the file that is actually accessed
func (r *Root) Path(path string) string {
	if len(r.prefix) <= 0 {
		return path
	}
	return filepath.Join(r.prefix, path)
}

func (r *Root) Exists(path string) bool {
	_, err := os.Stat(r.Path(path))
	return err == nil
}

func (r *Root) ReadInt(path string) (int, error) {
	value, err := util.ReadIntFromFile(r.Path(path))
	return value, wrap(path, err)
}

// ReadHex reads a register value with strtol base 0 semantics
func (r *Root) ReadHex(path string) (int, error) {
	value, err := util.ReadHexFromFile(r.Path(path))
	return value, wrap(path, err)
}

func (r *Root) ReadString(path string) (string, error) {
	value, err := util.ReadStringFromFile(r.Path(path))
	return value, wrap(path, err)
}

func (r *Root) ReadBytes(path string, offset int64, n int) ([]byte, error) {
	value, err := util.ReadBytesFromFile(r.Path(path), offset, n)
	return value, wrap(path, err)
}

func (r *Root) WriteInt(path string, value int) error {
	return wrap(path, util.WriteIntToFile(value, r.Path(path)))
}

func (r *Root) WriteHex(path string, value int) error {
	return wrap(path, util.WriteHexToFile(value, r.Path(path)))
}

func (r *Root) WriteString(path string, value string) error {
	return wrap(path, util.WriteStringToFile(value, r.Path(path)))
}

// WriteFileAtomic replaces a regular file, e.g. a flag below /etc
func (r *Root) WriteFileAtomic(path string, value string) error {
	return wrap(path, util.WriteStringToFileAtomic(value, r.Path(path)))
}

// wrap classifies file errors: a missing file is ErrMissing, everything else ErrInternal
func wrap(path string, err error) error {
	if err == nil {
		return nil
	}
	if errors.Is(err, os.ErrNotExist) {
		return fmt.Errorf("%s: %w", path, errors.Join(onlp.ErrMissing, err))
	}
	return fmt.Errorf("%s: %w", path, errors.Join(onlp.ErrInternal, err))
}
