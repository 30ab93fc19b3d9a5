package export

import (
	"encoding/csv"
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/agrc/lookback/internal/composition"
)

// WriteCSV writes one row per district-year with the member counties
// semicolon-joined in sorted order.
func WriteCSV(path string, comps []composition.Composition) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create %s: %w", path, err)
	}
	defer f.Close()

	w := csv.NewWriter(f)
	if err := w.Write([]string{"district_id", "year", "county_count", "counties"}); err != nil {
		return err
	}

	for _, c := range comps {
		record := []string{
			c.DistrictID,
			strconv.Itoa(c.Year),
			strconv.Itoa(len(c.Counties)),
			strings.Join(c.Counties, ";"),
		}
		if err := w.Write(record); err != nil {
			return err
		}
	}

	w.Flush()
	if err := w.Error(); err != nil {
		return fmt.Errorf("write %s: %w", path, err)
	}
	return nil
}
