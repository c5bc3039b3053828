package platform

import (
	"errors"
	"fmt"

	"github.com/ufispace/onlp2go/internal/onlp"
	"github.com/ufispace/onlp2go/internal/ui"
)

// Detect returns the platform name of the host. The name written by the
// installer to /etc/onl/platform wins over the configured fallback.
func Detect(env *Env, fallback string) (string, error) {
	name, err := env.Sysfs.ReadString(PlatformFile)
	if err == nil && len(name) > 0 {
		return name, nil
	}
	if err != nil && !errors.Is(err, onlp.ErrMissing) {
		ui.Warning("Unable to read %s: %v", PlatformFile, err)
	}
	if len(fallback) > 0 {
		ui.Debug("Using configured platform %s", fallback)
		return fallback, nil
	}
	return "", fmt.Errorf("platform unknown, %s is missing and no platform is configured: %w", PlatformFile, onlp.ErrMissing)
}
