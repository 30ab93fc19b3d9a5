package county

import (
	"strings"

	"golang.org/x/text/cases"
)

var folder = cases.Fold()

// CleanName normalizes a county name for matching across datasets: Unicode
// case folding, then spaces and periods removed. "St. Marys" and "st marys"
// both come out as "stmarys".
func CleanName(name string) string {
	s := folder.String(strings.TrimSpace(name))
	s = strings.ReplaceAll(s, " ", "")
	s = strings.ReplaceAll(s, ".", "")
	return s
}
