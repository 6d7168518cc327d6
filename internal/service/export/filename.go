package export

import "time"

// Filename is "<prefix>-YYYY-MM-DD.xlsx" for the local date of t.
func Filename(prefix string, t time.Time) string {
	return prefix + "-" + t.Format(time.DateOnly) + ".xlsx"
}
