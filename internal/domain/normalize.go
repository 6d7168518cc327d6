package domain

import (
	"fmt"
	"strings"
)

// DefaultDetailColor is used when a detail form leaves the color empty.
const DefaultDetailColor = "#4a90e2"

// NormalizeName trims surrounding whitespace and compresses inner runs of
// spaces into one. Case is preserved.
func NormalizeName(name string) string {
	return strings.Join(strings.Fields(name), " ")
}

// NormalizeColor converts "#RGB", "#RRGGBB" and their forms without "#"
// into lower-case "#rrggbb". An empty input yields DefaultDetailColor.
func NormalizeColor(color string) (string, error) {
	c := strings.ToLower(strings.TrimSpace(color))
	if c == "" {
		return DefaultDetailColor, nil
	}
	c = strings.TrimPrefix(c, "#")

	for _, r := range c {
		if !isHexDigit(r) {
			return "", fmt.Errorf("color %q: not a hex color", color)
		}
	}

	switch len(c) {
	case 3:
		return "#" + string([]byte{c[0], c[0], c[1], c[1], c[2], c[2]}), nil
	case 6:
		return "#" + c, nil
	default:
		return "", fmt.Errorf("color %q: expected 3 or 6 hex digits", color)
	}
}

func isHexDigit(r rune) bool {
	return (r >= '0' && r <= '9') || (r >= 'a' && r <= 'f')
}
