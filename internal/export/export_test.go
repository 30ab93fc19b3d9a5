package export

import (
	"encoding/csv"
	"encoding/json"
	"os"
	"path/filepath"
	"reflect"
	"testing"

	"github.com/paulmach/orb"
	"github.com/paulmach/orb/geojson"

	"github.com/agrc/lookback/internal/composition"
)

func sampleCompositions() []composition.Composition {
	return []composition.Composition{
		{
			DistrictID: "1",
			Year:       1896,
			Counties:   []string{"beaver", "iron"},
			Geometry: orb.Polygon{orb.Ring{
				{0, 0}, {10, 0}, {10, 10}, {0, 10}, {0, 0},
			}},
		},
		{DistrictID: "2", Year: 1896, Counties: []string{"juab"}},
	}
}

func TestWriteCSV(t *testing.T) {
	path := filepath.Join(t.TempDir(), "out.csv")
	if err := WriteCSV(path, sampleCompositions()); err != nil {
		t.Fatalf("WriteCSV failed: %v", err)
	}

	f, err := os.Open(path)
	if err != nil {
		t.Fatalf("open output: %v", err)
	}
	defer f.Close()

	records, err := csv.NewReader(f).ReadAll()
	if err != nil {
		t.Fatalf("read output: %v", err)
	}

	want := [][]string{
		{"district_id", "year", "county_count", "counties"},
		{"1", "1896", "2", "beaver;iron"},
		{"2", "1896", "1", "juab"},
	}
	if !reflect.DeepEqual(records, want) {
		t.Errorf("csv mismatch:\ngot  %v\nwant %v", records, want)
	}
}

func TestWriteGeoJSON(t *testing.T) {
	path := filepath.Join(t.TempDir(), "out.geojson")
	if err := WriteGeoJSON(path, sampleCompositions()); err != nil {
		t.Fatalf("WriteGeoJSON failed: %v", err)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read output: %v", err)
	}

	var fc geojson.FeatureCollection
	if err := json.Unmarshal(data, &fc); err != nil {
		t.Fatalf("decode feature collection: %v", err)
	}
	if len(fc.Features) != 2 {
		t.Fatalf("expected 2 features, got %d", len(fc.Features))
	}

	props := fc.Features[0].Properties
	if props.MustString("district_id") != "1" {
		t.Errorf("district_id = %v", props["district_id"])
	}
	if props.MustString("counties") != "beaver;iron" {
		t.Errorf("counties = %v", props["counties"])
	}
	if fc.Features[0].Geometry == nil {
		t.Error("expected geometry on first feature")
	}
}
