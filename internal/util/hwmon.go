package util

import (
	"fmt"
	"path"
)

const (
	HwmonClassPath = "/sys/class/hwmon"
	I2cDevicesPath = "/sys/bus/i2c/devices"
)

// HwmonPath returns the path of an attribute of /sys/class/hwmon/hwmon<index>
func HwmonPath(index int, attribute string) string {
	return path.Join(HwmonClassPath, fmt.Sprintf("hwmon%d", index), attribute)
}

// HwmonDevicePath returns the path of an attribute below the device link of a hwmon node
func HwmonDevicePath(index int, attribute string) string {
	return path.Join(HwmonClassPath, fmt.Sprintf("hwmon%d", index), "device", attribute)
}

// TempInput returns the name of the temperature input file for the given channel
func TempInput(channel int) string {
	return fmt.Sprintf("temp%d_input", channel)
}

// I2cDevicePath returns the sysfs path of an attribute of an i2c client, e.g. 1-0030/cpld_version
func I2cDevicePath(bus int, addr int, attribute string) string {
	return path.Join(I2cDevicesPath, fmt.Sprintf("%d-%04x", bus, addr), attribute)
}
