package export

import (
	"encoding/json"
	"fmt"
	"os"
	"strings"

	"github.com/paulmach/orb"
	"github.com/paulmach/orb/geojson"

	"github.com/agrc/lookback/internal/composition"
)

// WriteGeoJSON writes a FeatureCollection with one feature per district-year.
// Compositions without a merged geometry get an empty multipolygon so the
// attribute record is still present downstream.
func WriteGeoJSON(path string, comps []composition.Composition) error {
	fc := geojson.NewFeatureCollection()

	for _, c := range comps {
		geom := c.Geometry
		if geom == nil {
			geom = orb.MultiPolygon{}
		}
		feature := geojson.NewFeature(geom)
		feature.Properties = geojson.Properties{
			"district_id":  c.DistrictID,
			"year":         c.Year,
			"county_count": len(c.Counties),
			"counties":     strings.Join(c.Counties, ";"),
		}
		fc.Append(feature)
	}

	data, err := json.Marshal(fc)
	if err != nil {
		return fmt.Errorf("encode geojson: %w", err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("write %s: %w", path, err)
	}
	return nil
}
