package model

// Well-known setting keys and their defaults.
const (
	SettingCurrency = "currency"
	SettingTheme    = "theme"

	DefaultCurrency = "$"
	DefaultTheme    = "dark"
)

// Setting is a single user preference. Values are stored as strings;
// callers own any further interpretation.
type Setting struct {
	Key   string
	Value string
}
