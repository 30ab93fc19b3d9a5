package county

import (
	"fmt"
	"strconv"
	"strings"

	shp "github.com/jonas-p/go-shp"
	"github.com/paulmach/orb"

	"github.com/agrc/lookback/internal/config"
	"github.com/agrc/lookback/internal/report"
)

// LoadShapefile reads historic county boundaries from a shapefile. Attribute
// names come from the field map so datasets with different schemas can be
// loaded without renaming columns in a GIS first. Features with unusable
// attributes produce warnings and are skipped; a missing or unreadable file
// is fatal.
func LoadShapefile(path string, fm config.FieldMap) (Set, []report.Warning, error) {
	r, err := shp.Open(path)
	if err != nil {
		return Set{}, nil, fmt.Errorf("open shapefile %s: %w", path, err)
	}
	defer r.Close()

	col := map[string]int{}
	for i, f := range r.Fields() {
		col[strings.ToUpper(strings.TrimSpace(f.String()))] = i
	}

	required := map[string]string{
		"id":        fm.ID,
		"from_year": fm.FromYear,
	}
	for key, name := range required {
		if _, ok := col[strings.ToUpper(name)]; !ok {
			return Set{}, nil, fmt.Errorf("shapefile missing %s field %q", key, name)
		}
	}

	attr := func(row int, name string) string {
		i, ok := col[strings.ToUpper(name)]
		if !ok {
			return ""
		}
		return strings.TrimSpace(r.ReadAttribute(row, i))
	}

	var boundaries []Boundary
	var warnings []report.Warning

	for r.Next() {
		row, shape := r.Shape()

		geom, err := polygonGeometry(shape)
		if err != nil {
			warnings = append(warnings, report.Warning{
				Stage: "counties",
				Row:   row + 1,
				Msg:   err.Error(),
			})
			continue
		}

		id := attr(row, fm.ID)
		if id == "" {
			warnings = append(warnings, report.Warning{
				Stage: "counties",
				Row:   row + 1,
				Msg:   fmt.Sprintf("blank %s attribute", fm.ID),
			})
			continue
		}

		from, err := parseYear(attr(row, fm.FromYear))
		if err != nil || from == 0 {
			warnings = append(warnings, report.Warning{
				Stage:  "counties",
				Row:    row + 1,
				County: id,
				Msg:    fmt.Sprintf("bad %s attribute %q", fm.FromYear, attr(row, fm.FromYear)),
			})
			continue
		}

		// Open-ended validity is a blank end attribute.
		to, err := parseYear(attr(row, fm.ToYear))
		if err != nil {
			warnings = append(warnings, report.Warning{
				Stage:  "counties",
				Row:    row + 1,
				County: id,
				Msg:    fmt.Sprintf("bad %s attribute %q", fm.ToYear, attr(row, fm.ToYear)),
			})
			continue
		}

		version := 1
		if v := attr(row, fm.Version); v != "" {
			version, err = strconv.Atoi(v)
			if err != nil {
				warnings = append(warnings, report.Warning{
					Stage:  "counties",
					Row:    row + 1,
					County: id,
					Msg:    fmt.Sprintf("bad %s attribute %q", fm.Version, v),
				})
				continue
			}
		}

		boundaries = append(boundaries, Boundary{
			ID:       id,
			Name:     attr(row, fm.Name),
			Version:  version,
			Geometry: geom,
			FromYear: from,
			ToYear:   to,
		})
	}
	if err := r.Err(); err != nil {
		return Set{}, warnings, fmt.Errorf("read shapefile %s: %w", path, err)
	}

	return NewSet(boundaries), warnings, nil
}

// parseYear accepts a bare year ("1896") or a date whose first four digits
// are the year ("1896-01-04"). Blank means open-ended and returns 0.
func parseYear(s string) (int, error) {
	if s == "" {
		return 0, nil
	}
	if y, err := strconv.Atoi(s); err == nil {
		return y, nil
	}
	if len(s) >= 4 {
		if y, err := strconv.Atoi(s[:4]); err == nil {
			return y, nil
		}
	}
	return 0, fmt.Errorf("unparseable year %q", s)
}

// polygonGeometry converts a shapefile polygon record to an orb geometry.
// Shapefile outer rings wind clockwise and holes counter-clockwise; a CW ring
// starts a new polygon and each CCW ring is a hole of the polygon before it.
func polygonGeometry(shape shp.Shape) (orb.Geometry, error) {
	poly, ok := shape.(*shp.Polygon)
	if !ok {
		return nil, fmt.Errorf("unsupported shape type %T", shape)
	}

	var multi orb.MultiPolygon
	for p := 0; p < len(poly.Parts); p++ {
		start := int(poly.Parts[p])
		end := len(poly.Points)
		if p+1 < len(poly.Parts) {
			end = int(poly.Parts[p+1])
		}

		ring := make(orb.Ring, 0, end-start)
		for _, pt := range poly.Points[start:end] {
			ring = append(ring, orb.Point{pt.X, pt.Y})
		}
		if len(ring) < 4 {
			return nil, fmt.Errorf("ring %d has %d points", p, len(ring))
		}

		if ring.Orientation() == orb.CW || len(multi) == 0 {
			multi = append(multi, orb.Polygon{ring})
		} else {
			multi[len(multi)-1] = append(multi[len(multi)-1], ring)
		}
	}
	if len(multi) == 0 {
		return nil, fmt.Errorf("polygon record has no rings")
	}
	if len(multi) == 1 {
		return multi[0], nil
	}
	return multi, nil
}
