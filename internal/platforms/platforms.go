package platforms

import (
	"fmt"
	"sort"
	"strings"

	"github.com/ufispace/onlp2go/internal/onlp"
	"github.com/ufispace/onlp2go/internal/platform"
	"github.com/ufispace/onlp2go/internal/platforms/s9180_32x"
	"github.com/ufispace/onlp2go/internal/platforms/s9501_28smt"
	"github.com/ufispace/onlp2go/internal/platforms/s9600_72xc"
	"github.com/ufispace/onlp2go/internal/platforms/s9700_23d"
	"github.com/ufispace/onlp2go/internal/platforms/s9700_53dx"
	"github.com/ufispace/onlp2go/internal/platforms/s9701_78dc"
	"github.com/ufispace/onlp2go/internal/platforms/s9999_99x"
)

type factory func(env *platform.Env) *onlp.Platform

var registry = map[string]factory{
	s9180_32x.Name:   s9180_32x.New,
	s9501_28smt.Name: s9501_28smt.New,
	s9600_72xc.Name:  s9600_72xc.New,
	s9700_23d.Name:   s9700_23d.New,
	s9700_53dx.Name:  s9700_53dx.New,
	s9701_78dc.Name:  s9701_78dc.New,
	s9999_99x.Name:   s9999_99x.New,
}

// Names returns the names of all supported boards
func Names() []string {
	var result []string
	for name := range registry {
		result = append(result, name)
	}
	sort.Strings(result)
	return result
}

// normalize accepts the module style spelling, e.g. x86_64_ufispace_s9180_32x_r0
func normalize(name string) string {
	return strings.ToLower(strings.ReplaceAll(strings.TrimSpace(name), "_", "-"))
}

// Lookup returns the registered board whose name is a prefix of name,
// so revision suffixes like "-r0" are accepted.
func Lookup(name string) (string, error) {
	normalized := normalize(name)
	var match string
	for candidate := range registry {
		if strings.HasPrefix(normalized, candidate) && len(candidate) > len(match) {
			match = candidate
		}
	}
	if len(match) <= 0 {
		return "", fmt.Errorf("unsupported platform '%s', known platforms: %s: %w",
			name, strings.Join(Names(), ", "), onlp.ErrUnsupported)
	}
	return match, nil
}

// Load creates the drivers of the board matching name
func Load(name string, env *platform.Env) (*onlp.Platform, error) {
	match, err := Lookup(name)
	if err != nil {
		return nil, err
	}
	return registry[match](env), nil
}
