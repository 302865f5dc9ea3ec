package service

import (
	"strconv"

	"github.com/muesli/termenv"
)

// OverrideDarkModeProbe - fixed preference from config; nil when override is not a bool,
// which leaves the theme unset for the viewer to decide.
func OverrideDarkModeProbe(override string) DarkModeProbe {
	dark, err := strconv.ParseBool(override)
	if err != nil {
		return nil
	}

	return func() bool { return dark }
}

// SystemDarkModeProbe - uses override when it parses as a bool, otherwise asks the
// terminal for its background color. Only meaningful when a terminal is attached.
func SystemDarkModeProbe(override string) DarkModeProbe {
	if probe := OverrideDarkModeProbe(override); probe != nil {
		return probe
	}

	return termenv.HasDarkBackground
}
