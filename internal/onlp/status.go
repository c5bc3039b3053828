package onlp

import "strings"

type Status uint32

const (
	StatusPresent     Status = 1 << 0
	StatusFailed      Status = 1 << 1
	StatusOperational Status = 1 << 2
	StatusUnplugged   Status = 1 << 3
)

var statusNames = []struct {
	flag Status
	name string
}{
	{StatusPresent, "PRESENT"},
	{StatusFailed, "FAILED"},
	{StatusOperational, "OPERATIONAL"},
	{StatusUnplugged, "UNPLUGGED"},
}

func (s Status) Has(flag Status) bool {
	return s&flag == flag
}

func (s *Status) Set(flag Status) {
	*s |= flag
}

func (s *Status) Clear(flag Status) {
	*s &^= flag
}

func (s Status) String() string {
	if s == 0 {
		return "-"
	}
	var parts []string
	for _, n := range statusNames {
		if s.Has(n.flag) {
			parts = append(parts, n.name)
		}
	}
	return strings.Join(parts, "|")
}

func (s Status) MarshalText() ([]byte, error) {
	return []byte(s.String()), nil
}

func (s *Status) UnmarshalText(text []byte) error {
	*s = 0
	for _, part := range strings.Split(string(text), "|") {
		for _, n := range statusNames {
			if n.name == part {
				s.Set(n.flag)
			}
		}
	}
	return nil
}
