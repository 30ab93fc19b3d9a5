package composition

import (
	"sort"

	"github.com/agrc/lookback/internal/county"
	"github.com/agrc/lookback/internal/district"
)

// NotApplicable marks a timeline slot with no active boundary or district,
// e.g. years before the county was assigned to any district.
const NotApplicable = "n/a"

// ChangeEntry is one row of a county's change timeline: in this year either
// the county's shape changed, its district changed, or both.
type ChangeEntry struct {
	Year        int
	CountyID    string
	BoundaryKey string
	DistrictID  string
}

// Timeline builds the change history of one county: every year in which a
// boundary version begins or a district assignment is observed, with the
// boundary version and district in force that year. District membership
// carries forward until a later observation supersedes it; the boundary must
// actually be valid for the year or the entry shows n/a.
func Timeline(set county.Set, assignments []district.Assignment, countyID string) []ChangeEntry {
	id := county.CleanName(countyID)

	// Assignment observations for this county, oldest first.
	var obs []district.Assignment
	for _, a := range assignments {
		if county.CleanName(a.CountyID) == id {
			obs = append(obs, a)
		}
	}
	// Tie-break same-year observations by district so conflicting source
	// rows resolve the same way on every run.
	sort.Slice(obs, func(i, j int) bool {
		if obs[i].Year != obs[j].Year {
			return obs[i].Year < obs[j].Year
		}
		return obs[i].DistrictID < obs[j].DistrictID
	})

	years := map[int]bool{}
	for _, b := range set.Versions(id) {
		years[b.FromYear] = true
	}
	for _, a := range obs {
		years[a.Year] = true
	}

	sorted := make([]int, 0, len(years))
	for y := range years {
		sorted = append(sorted, y)
	}
	sort.Ints(sorted)

	var entries []ChangeEntry
	for _, year := range sorted {
		e := ChangeEntry{
			Year:        year,
			CountyID:    id,
			BoundaryKey: NotApplicable,
			DistrictID:  NotApplicable,
		}

		if b, err := set.Resolve(id, year); err == nil {
			e.BoundaryKey = b.Key()
		}

		for _, a := range obs {
			if a.Year > year {
				break
			}
			e.DistrictID = a.DistrictID
		}

		entries = append(entries, e)
	}

	return entries
}
