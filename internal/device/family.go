package device

import "strings"

// Family recognises devices by codename substrings of their model label.
type Family struct {
	Name      string
	Codenames []string
}

// Pixel is the supported family.
var Pixel = Family{
	Name:      "Pixel",
	Codenames: []string{"pixel", "oriole", "raven", "panther", "cheetah"},
}

// Member reports whether label contains one of the codenames, ignoring case.
func (f Family) Member(label string) bool {
	l := strings.ToLower(label)
	for _, c := range f.Codenames {
		if c != "" && strings.Contains(l, strings.ToLower(c)) {
			return true
		}
	}
	return false
}
