package composition

import (
	"sort"

	"github.com/paulmach/orb"

	"github.com/agrc/lookback/internal/county"
	"github.com/agrc/lookback/internal/district"
	"github.com/agrc/lookback/internal/geometry"
	"github.com/agrc/lookback/internal/report"
)

// Composition is the set of counties making up one judicial district in one
// year, with optionally the dissolved geometry of those counties.
type Composition struct {
	DistrictID string
	Year       int
	Counties   []string
	Geometry   orb.Geometry
}

// Options control the build.
type Options struct {
	// Union dissolves each composition's county geometries into one
	// (multi)polygon. Off means Geometry stays nil.
	Union bool
}

type groupKey struct {
	district string
	year     int
}

// Build produces exactly one Composition per (district, year) pair present in
// the assignments. A county with no boundary valid for its year, or with more
// than one, is excluded from that composition and reported as a warning with
// full row context; the batch never aborts on data-quality problems. Output
// order is district then year, so identical inputs give identical output
// regardless of assignment order.
func Build(set county.Set, assignments []district.Assignment, opts Options) ([]Composition, []report.Warning) {
	groups := map[groupKey]map[string]bool{}
	for _, a := range assignments {
		key := groupKey{district: a.DistrictID, year: a.Year}
		if groups[key] == nil {
			groups[key] = map[string]bool{}
		}
		groups[key][county.CleanName(a.CountyID)] = true
	}

	keys := make([]groupKey, 0, len(groups))
	for k := range groups {
		keys = append(keys, k)
	}
	sort.Slice(keys, func(i, j int) bool {
		if keys[i].district != keys[j].district {
			return keys[i].district < keys[j].district
		}
		return keys[i].year < keys[j].year
	})

	var out []Composition
	var warnings []report.Warning

	for _, key := range keys {
		ids := make([]string, 0, len(groups[key]))
		for id := range groups[key] {
			ids = append(ids, id)
		}
		sort.Strings(ids)

		comp := Composition{DistrictID: key.district, Year: key.year}
		var geoms []orb.Geometry

		for _, id := range ids {
			b, err := set.Resolve(id, key.year)
			if err != nil {
				warnings = append(warnings, report.Warning{
					Stage:    "build",
					District: key.district,
					Year:     key.year,
					County:   id,
					Msg:      err.Error(),
				})
				continue
			}
			comp.Counties = append(comp.Counties, id)
			if b.Geometry != nil {
				geoms = append(geoms, b.Geometry)
			}
		}

		if opts.Union && len(geoms) > 0 {
			merged, err := geometry.Union(geoms)
			if err != nil {
				warnings = append(warnings, report.Warning{
					Stage:    "build",
					District: key.district,
					Year:     key.year,
					Msg:      "union failed: " + err.Error(),
				})
			} else {
				comp.Geometry = merged
			}
		}

		out = append(out, comp)
	}

	return out, warnings
}
