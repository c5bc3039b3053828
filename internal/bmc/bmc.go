package bmc

import (
	"encoding/csv"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/ufispace/onlp2go/internal/onlp"
	"github.com/ufispace/onlp2go/internal/ui"
	"github.com/ufispace/onlp2go/internal/util"
)

const (
	DefaultIpmitool = "ipmitool"
	DefaultTimeout  = 10 * time.Second

	// number of trailing ascii bytes holding the ucd build date
	ucdDateLength = 6
)

type ThresholdStatus string

const (
	ThresholdStatusOK        ThresholdStatus = "ok"
	ThresholdStatusLNR       ThresholdStatus = "lnr"
	ThresholdStatusLCR       ThresholdStatus = "lcr"
	ThresholdStatusLNC       ThresholdStatus = "lnc"
	ThresholdStatusUNC       ThresholdStatus = "unc"
	ThresholdStatusUCR       ThresholdStatus = "ucr"
	ThresholdStatusUNR       ThresholdStatus = "unr"
	ThresholdStatusNoReading ThresholdStatus = "ns"
)

var thresholdStatuses = []ThresholdStatus{
	ThresholdStatusOK,
	ThresholdStatusLNR,
	ThresholdStatusLCR,
	ThresholdStatusLNC,
	ThresholdStatusUNC,
	ThresholdStatusUCR,
	ThresholdStatusUNR,
	ThresholdStatusNoReading,
}

// Reading is a single sdr record
type Reading struct {
	Name   string
	Value  float64
	Unit   string
	Status ThresholdStatus
}

type McInfo struct {
	Major int
	Minor int
	Aux   int
}

func (m McInfo) String() string {
	return fmt.Sprintf("%d.%d.%d", m.Major, m.Minor, m.Aux)
}

// Client queries the board management controller through ipmitool.
// Every call runs the tool, nothing is cached.
type Client struct {
	Executable string
	Timeout    time.Duration
	Runner     util.Runner
}

func NewClient(executable string, timeout time.Duration, runner util.Runner) *Client {
	if len(executable) <= 0 {
		executable = DefaultIpmitool
	}
	if timeout <= 0 {
		timeout = DefaultTimeout
	}
	if runner == nil {
		runner = util.SafeCmdExecution
	}
	return &Client{
		Executable: executable,
		Timeout:    timeout,
		Runner:     runner,
	}
}

func (c *Client) run(args ...string) (string, error) {
	output, err := c.Runner(c.Executable, args, c.Timeout)
	if err != nil {
		ui.Debug("ipmitool %s failed: %v", strings.Join(args, " "), err)
		return "", fmt.Errorf("ipmitool %s: %w", strings.Join(args, " "), wrapInternal(err))
	}
	return output, nil
}

func wrapInternal(err error) error {
	return fmt.Errorf("%w: %v", onlp.ErrInternal, err)
}

// Read returns the full sdr record of a sensor
func (c *Client) Read(name string) (Reading, error) {
	output, err := c.run("-c", "sdr", "get", name)
	if err != nil {
		return Reading{}, err
	}
	return parseReading(name, output)
}

// Sensor returns the current value of a sensor. Discrete sensors report
// their state as a hex value.
func (c *Client) Sensor(name string) (float64, error) {
	reading, err := c.Read(name)
	if err != nil {
		return 0, err
	}
	return reading.Value, nil
}

func parseReading(name string, output string) (Reading, error) {
	r := csv.NewReader(strings.NewReader(util.LastLine(output)))
	r.FieldsPerRecord = -1
	record, err := r.Read()
	if err != nil {
		return Reading{}, fmt.Errorf("parse sdr record of %s: %w", name, wrapInternal(err))
	}
	if len(record) < 2 {
		return Reading{}, fmt.Errorf("sdr record of %s has %d fields: %w", name, len(record), onlp.ErrInternal)
	}

	reading := Reading{Name: strings.TrimSpace(record[0])}
	if len(record) > 2 {
		reading.Unit = strings.TrimSpace(record[2])
	}
	if len(record) > 3 {
		reading.Status = ParseThresholdStatus(record[3])
	}

	value := strings.TrimSpace(record[1])
	switch strings.ToLower(value) {
	case "", "na", "ns":
		return reading, fmt.Errorf("sensor %s has no reading: %w", name, onlp.ErrMissing)
	}
	if strings.HasPrefix(strings.ToLower(value), "0x") {
		v, err := util.ParseInt(value)
		if err != nil {
			return reading, fmt.Errorf("parse value '%s' of %s: %w", value, name, wrapInternal(err))
		}
		reading.Value = float64(v)
		return reading, nil
	}
	v, err := strconv.ParseFloat(value, 64)
	if err != nil {
		return reading, fmt.Errorf("parse value '%s' of %s: %w", value, name, wrapInternal(err))
	}
	reading.Value = v
	return reading, nil
}

// ParseThresholdStatus maps the status column of an sdr record, unknown values are ok
func ParseThresholdStatus(text string) ThresholdStatus {
	status := ThresholdStatus(strings.ToLower(strings.TrimSpace(text)))
	for _, s := range thresholdStatuses {
		if s == status {
			return s
		}
	}
	return ThresholdStatusOK
}

// ThresholdStatus returns the threshold state of a sensor
func (c *Client) ThresholdStatus(name string) (ThresholdStatus, error) {
	reading, err := c.Read(name)
	if err != nil && reading.Status == "" {
		return "", err
	}
	return reading.Status, nil
}

// McInfo returns the firmware revision of the controller
func (c *Client) McInfo() (McInfo, error) {
	output, err := c.run("mc", "info")
	if err != nil {
		return McInfo{}, err
	}
	return parseMcInfo(output)
}

func parseMcInfo(output string) (McInfo, error) {
	var result McInfo
	foundRevision := false
	lines := strings.Split(output, "\n")
	for i, line := range lines {
		key, value, ok := strings.Cut(line, ":")
		key = strings.TrimSpace(key)
		switch {
		case ok && key == "Firmware Revision":
			major, minor, _ := strings.Cut(strings.TrimSpace(value), ".")
			var err error
			if result.Major, err = strconv.Atoi(strings.TrimSpace(major)); err != nil {
				return result, fmt.Errorf("parse firmware revision '%s': %w", value, onlp.ErrInternal)
			}
			if result.Minor, err = strconv.Atoi(strings.TrimSpace(minor)); err != nil {
				return result, fmt.Errorf("parse firmware revision '%s': %w", value, onlp.ErrInternal)
			}
			foundRevision = true
		case key == "Aux Firmware Rev Info":
			if i+1 < len(lines) {
				aux, err := util.ParseInt(lines[i+1])
				if err != nil {
					return result, fmt.Errorf("parse aux firmware revision '%s': %w", lines[i+1], onlp.ErrInternal)
				}
				result.Aux = int(aux)
			}
		}
	}
	if !foundRevision {
		return result, fmt.Errorf("no firmware revision in mc info: %w", onlp.ErrInternal)
	}
	return result, nil
}

// Raw sends a raw request and returns the response bytes
func (c *Client) Raw(netfn uint8, cmd uint8, data ...uint8) ([]byte, error) {
	args := []string{"raw", fmt.Sprintf("0x%02x", netfn), fmt.Sprintf("0x%02x", cmd)}
	for _, d := range data {
		args = append(args, fmt.Sprintf("0x%02x", d))
	}
	output, err := c.run(args...)
	if err != nil {
		return nil, err
	}
	return parseRaw(output)
}

func parseRaw(output string) ([]byte, error) {
	var result []byte
	for _, field := range strings.Fields(output) {
		b, err := strconv.ParseUint(field, 16, 8)
		if err != nil {
			return nil, fmt.Errorf("parse raw response byte '%s': %w", field, onlp.ErrInternal)
		}
		result = append(result, uint8(b))
	}
	return result, nil
}

// UcdVersion returns version and build date of the power sequencer firmware
func (c *Client) UcdVersion() (version string, date string, err error) {
	response, err := c.Raw(0x3c, 0x08)
	if err != nil {
		return "", "", err
	}
	return splitUcd(response)
}

func splitUcd(response []byte) (version string, date string, err error) {
	if len(response) == 0 {
		return "", "", fmt.Errorf("empty ucd version response: %w", onlp.ErrInternal)
	}
	if len(response) > ucdDateLength {
		split := len(response) - ucdDateLength
		return string(response[:split]), string(response[split:]), nil
	}
	return string(response), "", nil
}
