package util

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"syscall"

	"github.com/natefinch/atomic"
)

// CheckFilePermissionsForExecution checks whether the given filePath owner, group and permissions
// are safe to use this file for execution by onlp2go.
func CheckFilePermissionsForExecution(filePath string) (bool, error) {
	var file = filePath

	file, err := filepath.EvalSymlinks(file)
	if err != nil {
		return false, err
	}

	info, err := os.Stat(file)
	if os.IsNotExist(err) {
		return false, errors.New("file not found")
	}

	stat := info.Sys().(*syscall.Stat_t)
	if stat.Uid != 0 {
		return false, errors.New("owner is not root")
	}

	if stat.Gid != 0 {
		mode := info.Mode()
		groupWrite := mode & (os.FileMode(0o020))
		if groupWrite != 0 {
			return false, errors.New("group is not root but has write permission")
		}
	}

	otherWrite := info.Mode() & (os.FileMode(0o002))
	if otherWrite != 0 {
		return false, errors.New("others have write permission")
	}

	return true, nil
}

// ParseInt parses text the way strtol(text, NULL, 0) does:
// a "0x" prefix selects hex, a leading "0" selects octal, otherwise decimal.
func ParseInt(text string) (int64, error) {
	text = strings.TrimSpace(strings.TrimRight(text, "\x00"))
	if len(text) <= 0 {
		return 0, errors.New("empty value")
	}
	return strconv.ParseInt(text, 0, 64)
}

func ReadIntFromFile(path string) (value int, err error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return -1, err
	}
	text := string(data)
	if len(text) <= 0 {
		return -1, fmt.Errorf("file is empty: %s", path)
	}
	text = strings.TrimSpace(text)
	value, err = strconv.Atoi(text)
	return value, err
}

// ReadHexFromFile reads a CPLD style register value, e.g. "0x1f"
func ReadHexFromFile(path string) (int, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return -1, err
	}
	if len(data) <= 0 {
		return -1, fmt.Errorf("file is empty: %s", path)
	}
	value, err := ParseInt(string(data))
	if err != nil {
		return -1, fmt.Errorf("unable to parse %s: %w", path, err)
	}
	return int(value), nil
}

func ReadStringFromFile(path string) (string, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return "", err
	}
	return strings.TrimSpace(string(data)), nil
}

// ReadBytesFromFile reads exactly n bytes starting at offset
func ReadBytesFromFile(path string, offset int64, n int) ([]byte, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer func(f *os.File) {
		_ = f.Close()
	}(f)

	buf := make([]byte, n)
	read, err := f.ReadAt(buf, offset)
	if err != nil && !(errors.Is(err, io.EOF) && read == n) {
		return nil, fmt.Errorf("short read of %s (%d/%d bytes): %w", path, read, n, err)
	}
	return buf, nil
}

// WriteIntToFile write a single integer to a file path
func WriteIntToFile(value int, path string) error {
	return WriteStringToFile(fmt.Sprintf("%d", value), path)
}

// WriteHexToFile writes the value in "%x" format, as CPLD attributes expect
func WriteHexToFile(value int, path string) error {
	return WriteStringToFile(fmt.Sprintf("%x", value), path)
}

func WriteStringToFile(value string, path string) error {
	evaluatedPath, err := resolvePath(path)
	if len(evaluatedPath) > 0 && err == nil {
		path = evaluatedPath
	}
	f, err := os.OpenFile(path, os.O_WRONLY|os.O_TRUNC, 0644)
	if err != nil {
		return err
	}
	_, err = f.WriteString(value)
	if closeErr := f.Close(); err == nil {
		err = closeErr
	}
	return err
}

func resolvePath(path string) (string, error) {
	return filepath.EvalSymlinks(path)
}

// WriteStringToFileAtomic replaces a regular file, creating parent directories if needed.
// Must not be used on sysfs attributes.
func WriteStringToFileAtomic(value string, path string) error {
	evaluatedPath, err := resolvePath(path)
	if len(evaluatedPath) > 0 && err == nil {
		path = evaluatedPath
	}
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return err
	}
	return atomic.WriteFile(path, strings.NewReader(value))
}
