package entity

// Theme is the visual theme of the page or terminal.
type Theme string

const (
	// ThemeUnset means nothing was chosen yet; the viewer's own preference applies.
	ThemeUnset Theme = ""
	ThemeDark  Theme = "dark"
	ThemeLight Theme = "light"
)

// ParseTheme - maps a stored value to a Theme; ok is false for anything unrecognised.
func ParseTheme(value string) (Theme, bool) {
	switch Theme(value) {
	case ThemeDark:
		return ThemeDark, true
	case ThemeLight:
		return ThemeLight, true
	default:
		return "", false
	}
}

// Toggle - returns the opposite theme; an unset theme toggles to dark.
func (that Theme) Toggle() Theme {
	if that == ThemeDark {
		return ThemeLight
	}
	return ThemeDark
}

func (that Theme) IsDark() bool {
	return that == ThemeDark
}
