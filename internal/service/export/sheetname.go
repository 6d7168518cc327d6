package export

import (
	"fmt"
	"strings"
	"unicode/utf8"
)

const maxSheetName = 31

var sheetNameReplacer = strings.NewReplacer(
	":", "_", `\`, "_", "/", "_", "?", "_",
	"*", "_", "[", "(", "]", ")",
)

// sheetNames hands out workbook-unique sheet names that satisfy the
// spreadsheet rules: at most 31 characters, none of :\/?*[] and no
// leading or trailing apostrophe. Uniqueness is case-insensitive.
type sheetNames struct {
	used map[string]bool
}

func newSheetNames(reserved ...string) *sheetNames {
	n := &sheetNames{used: make(map[string]bool)}
	for _, r := range reserved {
		n.used[strings.ToLower(r)] = true
	}
	return n
}

func (n *sheetNames) next(name, fallback string) string {
	base := clip(sheetNameReplacer.Replace(strings.TrimSpace(name)), maxSheetName)
	if base == "" {
		base = clip(fallback, maxSheetName)
	}

	candidate := base
	for i := 2; n.used[strings.ToLower(candidate)]; i++ {
		suffix := fmt.Sprintf(" (%d)", i)
		candidate = clip(base, maxSheetName-len(suffix)) + suffix
	}
	n.used[strings.ToLower(candidate)] = true
	return candidate
}

// clip truncates s to n runes and drops the apostrophes the cut may have
// exposed at either end.
func clip(s string, n int) string {
	return strings.Trim(truncate(strings.Trim(s, "'"), n), "'")
}

func truncate(s string, n int) string {
	if utf8.RuneCountInString(s) <= n {
		return s
	}
	return string([]rune(s)[:n])
}
