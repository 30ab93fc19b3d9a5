package district

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/agrc/lookback/internal/config"
)

func writeCSV(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "districts.csv")
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("write csv: %v", err)
	}
	return path
}

func TestLoadCSV(t *testing.T) {
	path := writeCSV(t, "county_id,district_id,year\nBeaver,1,1896\nIron,1,1896\nBeaver,2,1900\n")

	assignments, warnings, err := LoadCSV(path, config.Default().Districts)
	if err != nil {
		t.Fatalf("LoadCSV failed: %v", err)
	}
	if len(warnings) != 0 {
		t.Errorf("expected no warnings, got %v", warnings)
	}
	if len(assignments) != 3 {
		t.Fatalf("expected 3 assignments, got %d", len(assignments))
	}

	// County IDs come out normalized.
	if assignments[0].CountyID != "beaver" {
		t.Errorf("expected normalized county id, got %q", assignments[0].CountyID)
	}
	if assignments[0].DistrictID != "1" || assignments[0].Year != 1896 {
		t.Errorf("unexpected first assignment: %+v", assignments[0])
	}
}

func TestLoadCSVHandlesBOM(t *testing.T) {
	path := writeCSV(t, "\uFEFFcounty_id,district_id,year\nBeaver,1,1896\n")

	assignments, _, err := LoadCSV(path, config.Default().Districts)
	if err != nil {
		t.Fatalf("LoadCSV failed: %v", err)
	}
	if len(assignments) != 1 {
		t.Errorf("expected 1 assignment, got %d", len(assignments))
	}
}

// Malformed rows are skipped with row-numbered warnings, never aborting the
// load.
func TestLoadCSVMalformedRows(t *testing.T) {
	path := writeCSV(t, "county_id,district_id,year\nBeaver,1,1896\n,1,1896\nIron,,1896\nIron,1,not-a-year\n")

	assignments, warnings, err := LoadCSV(path, config.Default().Districts)
	if err != nil {
		t.Fatalf("LoadCSV failed: %v", err)
	}
	if len(assignments) != 1 {
		t.Errorf("expected 1 good assignment, got %d", len(assignments))
	}
	if len(warnings) != 3 {
		t.Fatalf("expected 3 warnings, got %d: %v", len(warnings), warnings)
	}
	// Row numbers are 1-based including the header.
	if warnings[0].Row != 3 || warnings[1].Row != 4 || warnings[2].Row != 5 {
		t.Errorf("unexpected warning rows: %+v", warnings)
	}
}

// A header with no data rows loads as an empty table with a warning rather
// than failing the run.
func TestLoadCSVHeaderOnly(t *testing.T) {
	path := writeCSV(t, "county_id,district_id,year\n")

	assignments, warnings, err := LoadCSV(path, config.Default().Districts)
	if err != nil {
		t.Fatalf("LoadCSV failed: %v", err)
	}
	if len(assignments) != 0 {
		t.Errorf("expected 0 assignments, got %d", len(assignments))
	}
	if len(warnings) != 1 {
		t.Fatalf("expected 1 warning, got %d", len(warnings))
	}
}

func TestLoadCSVEmptyFile(t *testing.T) {
	path := writeCSV(t, "")

	if _, _, err := LoadCSV(path, config.Default().Districts); err == nil {
		t.Fatal("expected error for file with no header")
	}
}

func TestLoadCSVMissingColumn(t *testing.T) {
	path := writeCSV(t, "county_id,year\nBeaver,1896\n")

	_, _, err := LoadCSV(path, config.Default().Districts)
	if err == nil {
		t.Fatal("expected error for missing district_id column")
	}
}

func TestLoadCSVMissingFile(t *testing.T) {
	_, _, err := LoadCSV(filepath.Join(t.TempDir(), "nope.csv"), config.Default().Districts)
	if err == nil {
		t.Fatal("expected error for missing file")
	}
}

func TestLoadCSVCustomColumns(t *testing.T) {
	path := writeCSV(t, "CountyName,NewDistrict,Year\nBeaver,1,1896\n")

	cm := config.ColumnMap{CountyID: "CountyName", DistrictID: "NewDistrict", Year: "Year"}
	assignments, _, err := LoadCSV(path, cm)
	if err != nil {
		t.Fatalf("LoadCSV failed: %v", err)
	}
	if len(assignments) != 1 {
		t.Errorf("expected 1 assignment, got %d", len(assignments))
	}
}
