package hwmon

import (
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"strconv"
	"strings"

	"github.com/md14454/gosensors"
	"github.com/ufispace/onlp2go/internal/util"
)

const (
	BusTypeIsa  = 1
	BusTypePci  = 2
	BusTypeAcpi = 5
)

var hwmonIndexPattern = regexp.MustCompile(`hwmon(\d+)$`)

// Channel is a single input of a chip, e.g. temp2_input
type Channel struct {
	Label string
	Input string
	Value float64
	Min   float64
	Max   float64
}

// Chip is a hwmon device as detected by libsensors. Index is the N of
// /sys/class/hwmon/hwmonN, -1 if the path has no such suffix.
type Chip struct {
	Name  string
	Index int
	Path  string
	Temps []Channel
	Fans  []Channel
}

// GetChips lists all hwmon chips with at least one temperature or fan input
func GetChips() []Chip {
	gosensors.Init()
	defer gosensors.Cleanup()
	chips := gosensors.GetDetectedChips()

	var list []Chip
	for _, chip := range chips {
		temps := getTemps(chip)
		fans := getFans(chip)
		if len(temps) <= 0 && len(fans) <= 0 {
			continue
		}
		list = append(list, Chip{
			Name:  computeIdentifier(chip),
			Index: hwmonIndex(chip.Path),
			Path:  chip.Path,
			Temps: temps,
			Fans:  fans,
		})
	}
	return list
}

func getTemps(chip gosensors.Chip) []Channel {
	var result []Channel
	for _, feature := range chip.GetFeatures() {
		if feature.Type != gosensors.FeatureTypeTemp {
			continue
		}
		channel, ok := readChannel(chip.Path, feature.GetSubFeatures(),
			gosensors.SubFeatureTypeTempInput, gosensors.SubFeatureTypeTempMin, gosensors.SubFeatureTypeTempMax)
		if ok {
			result = append(result, channel)
		}
	}
	return result
}

func getFans(chip gosensors.Chip) []Channel {
	var result []Channel
	for _, feature := range chip.GetFeatures() {
		if feature.Type != gosensors.FeatureTypeFan {
			continue
		}
		channel, ok := readChannel(chip.Path, feature.GetSubFeatures(),
			gosensors.SubFeatureTypeFanInput, gosensors.SubFeatureTypeFanMin, gosensors.SubFeatureTypeFanMax)
		if ok {
			result = append(result, channel)
		}
	}
	return result
}

func readChannel(devicePath string, subfeatures []gosensors.SubFeature, input, min, max gosensors.SubFeatureType) (Channel, bool) {
	inputSubFeature, ok := findSubFeature(subfeatures, input)
	if !ok {
		return Channel{}, false
	}

	channel := Channel{
		Label: getLabel(devicePath, inputSubFeature.Name),
		Input: filepath.Join(devicePath, inputSubFeature.Name),
		Value: inputSubFeature.GetValue(),
		Min:   -1,
		Max:   -1,
	}
	if sub, ok := findSubFeature(subfeatures, min); ok {
		channel.Min = sub.GetValue()
	}
	if sub, ok := findSubFeature(subfeatures, max); ok {
		channel.Max = sub.GetValue()
	}
	return channel, true
}

func findSubFeature(subfeatures []gosensors.SubFeature, t gosensors.SubFeatureType) (gosensors.SubFeature, bool) {
	for _, a := range subfeatures {
		if a.Type == t {
			return a, true
		}
	}
	return gosensors.SubFeature{}, false
}

// getLabel read the label of a in/output of a device
func getLabel(devicePath string, input string) string {
	labelPath := strings.TrimSuffix(filepath.Join(devicePath, input), "input") + "label"

	content, _ := os.ReadFile(labelPath)
	label := strings.TrimSpace(string(content))
	if len(label) <= 0 {
		label = input
	}
	return label
}

func hwmonIndex(devicePath string) int {
	match := hwmonIndexPattern.FindStringSubmatch(devicePath)
	if match == nil {
		return -1
	}
	index, err := strconv.Atoi(match[1])
	if err != nil {
		return -1
	}
	return index
}

func computeIdentifier(chip gosensors.Chip) (name string) {
	name = chip.Prefix

	devicePath := chip.Path
	if len(name) <= 0 {
		name = util.GetDeviceName(devicePath)
	}

	identifier := name
	switch chip.Bus.Type {
	case BusTypeIsa:
		identifier = fmt.Sprintf("%s-isa-%d%03x", identifier, chip.Bus.Nr, chip.Addr)
	case BusTypePci:
		identifier = fmt.Sprintf("%s-pci-%d%03x", identifier, chip.Bus.Nr, chip.Addr)
	case BusTypeAcpi:
		identifier = fmt.Sprintf("%s-acpi-%d", identifier, chip.Bus.Nr)
	}

	return identifier
}
