// Package theme holds the light/dark preference and its on-disk state file.
package theme

// Preference is the colour scheme of the whole interface.
type Preference string

const (
	Light Preference = "light"
	Dark  Preference = "dark"
)

// Parse reads a stored preference. Anything other than "dark" is light.
func Parse(s string) Preference {
	if Preference(s) == Dark {
		return Dark
	}
	return Light
}

// Toggle returns the other preference.
func (p Preference) Toggle() Preference {
	if p == Dark {
		return Light
	}
	return Dark
}

// IsDark reports whether p is the dark scheme.
func (p Preference) IsDark() bool { return p == Dark }

func (p Preference) String() string { return string(Parse(string(p))) }
