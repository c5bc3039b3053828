package util

import (
	"os"
	"path/filepath"
	"strings"
)

// GetDeviceName reads the name attribute of a sysfs device, falling back
// to the last path element
func GetDeviceName(devicePath string) string {
	content, _ := os.ReadFile(filepath.Join(devicePath, "name"))
	name := strings.TrimSpace(string(content))
	if len(name) <= 0 {
		_, name = filepath.Split(devicePath)
	}
	return name
}
