package district

import (
	"bufio"
	"encoding/csv"
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/agrc/lookback/internal/config"
	"github.com/agrc/lookback/internal/county"
	"github.com/agrc/lookback/internal/report"
)

// LoadCSV reads district assignments. Column names come from the column map.
// A missing file or missing required column is fatal; malformed rows are
// skipped with a warning carrying the 1-based row number.
func LoadCSV(path string, cm config.ColumnMap) ([]Assignment, []report.Warning, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, nil, fmt.Errorf("open assignments %s: %w", path, err)
	}
	defer f.Close()

	r := csv.NewReader(bufio.NewReader(f))
	r.FieldsPerRecord = -1

	records, err := r.ReadAll()
	if err != nil {
		return nil, nil, fmt.Errorf("parse assignments %s: %w", path, err)
	}
	if len(records) == 0 {
		return nil, nil, errors.New("csv has no header row")
	}

	header := records[0]
	// Handle BOM on first header cell
	if len(header) > 0 {
		header[0] = strings.TrimPrefix(header[0], "\uFEFF")
	}

	col := map[string]int{}
	for i, h := range header {
		col[strings.TrimSpace(h)] = i
	}

	for _, name := range []string{cm.CountyID, cm.DistrictID, cm.Year} {
		if _, ok := col[name]; !ok {
			return nil, nil, fmt.Errorf("missing required column: %s", name)
		}
	}

	var out []Assignment
	var warnings []report.Warning

	// A header with no data rows is a valid, empty table.
	if len(records) == 1 {
		warnings = append(warnings, report.Warning{
			Stage: "districts",
			Msg:   "csv has no data rows",
		})
		return nil, warnings, nil
	}

	for rowIdx := 1; rowIdx < len(records); rowIdx++ {
		rec := records[rowIdx]
		get := func(name string) string {
			i := col[name]
			if i >= len(rec) {
				return ""
			}
			return strings.TrimSpace(rec[i])
		}

		warn := func(format string, args ...interface{}) {
			warnings = append(warnings, report.Warning{
				Stage: "districts",
				Row:   rowIdx + 1,
				Msg:   fmt.Sprintf(format, args...),
			})
		}

		cid := get(cm.CountyID)
		if cid == "" {
			warn("%s is blank", cm.CountyID)
			continue
		}

		did := get(cm.DistrictID)
		if did == "" {
			warn("%s is blank", cm.DistrictID)
			continue
		}

		yearStr := get(cm.Year)
		year, err := strconv.Atoi(yearStr)
		if err != nil || year <= 0 {
			warn("%s %q is not a year", cm.Year, yearStr)
			continue
		}

		out = append(out, Assignment{
			CountyID:   county.CleanName(cid),
			DistrictID: did,
			Year:       year,
		})
	}

	return out, warnings, nil
}
