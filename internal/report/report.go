package report

import (
	"fmt"
	"log"
	"strings"
)

// Warning records a recoverable data-quality problem: a malformed input row or
// a county that could not be matched to a boundary for its year. Warnings are
// collected and logged but never abort the batch.
type Warning struct {
	Stage    string // "counties", "districts", "build"
	Row      int    // 1-based source row, 0 when not row-scoped
	District string
	Year     int
	County   string
	Msg      string
}

func (w Warning) String() string {
	var b strings.Builder
	b.WriteString(w.Stage)
	if w.Row > 0 {
		fmt.Fprintf(&b, " row %d", w.Row)
	}
	if w.District != "" {
		fmt.Fprintf(&b, " district=%s", w.District)
	}
	if w.Year != 0 {
		fmt.Fprintf(&b, " year=%d", w.Year)
	}
	if w.County != "" {
		fmt.Fprintf(&b, " county=%s", w.County)
	}
	b.WriteString(": ")
	b.WriteString(w.Msg)
	return b.String()
}

// LogWarnings writes each warning to the standard logger with a stage tag.
func LogWarnings(warnings []Warning) {
	for _, w := range warnings {
		log.Printf("[%s] warning: %s", w.Stage, w.String())
	}
}

// LogLoad logs how many records a loader produced.
func LogLoad(stage string, count, skipped int) {
	if skipped > 0 {
		log.Printf("[%s] loaded %d records (%d skipped)", stage, count, skipped)
	} else {
		log.Printf("[%s] loaded %d records", stage, count)
	}
}

// LogBuild logs the outcome of a composition build.
func LogBuild(compositions, warnings int) {
	log.Printf("[build] %d compositions, %d warnings", compositions, warnings)
}
