package config

import (
	"fmt"
	"os"
	"sort"
	"strings"

	"github.com/goccy/go-yaml"
)

// FieldMap names the shapefile attributes that carry each boundary property.
// Historical county datasets disagree on attribute naming, so the profile can
// override the defaults (which match the UGRC historical counties layer).
type FieldMap struct {
	ID       string `yaml:"id"`
	Name     string `yaml:"name"`
	Version  string `yaml:"version"`
	FromYear string `yaml:"from_year"`
	ToYear   string `yaml:"to_year"`
}

// ColumnMap names the CSV columns that carry each assignment property.
type ColumnMap struct {
	CountyID   string `yaml:"county_id"`
	DistrictID string `yaml:"district_id"`
	Year       string `yaml:"year"`
}

// Config is the run profile for a lookback batch.
type Config struct {
	Counties  FieldMap  `yaml:"counties"`
	Districts ColumnMap `yaml:"districts"`

	// Union controls whether district-year geometries are dissolved into a
	// single (multi)polygon. Disabled runs still emit county ID membership.
	Union bool `yaml:"union"`
}

// Default returns the profile used when no config file is given.
func Default() Config {
	return Config{
		Counties: FieldMap{
			ID:       "ID",
			Name:     "NAME",
			Version:  "VERSION",
			FromYear: "START_YEAR",
			ToYear:   "END_YEAR",
		},
		Districts: ColumnMap{
			CountyID:   "county_id",
			DistrictID: "district_id",
			Year:       "year",
		},
		Union: true,
	}
}

// Load reads a YAML profile, applying defaults for anything left blank.
func Load(path string) (Config, error) {
	cfg := Default()

	data, err := os.ReadFile(path)
	if err != nil {
		return cfg, fmt.Errorf("read config %s: %w", path, err)
	}
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return cfg, fmt.Errorf("parse config %s: %w", path, err)
	}

	cfg.applyDefaults()
	return cfg, nil
}

func (c *Config) applyDefaults() {
	def := Default()
	if c.Counties.ID == "" {
		c.Counties.ID = def.Counties.ID
	}
	if c.Counties.Name == "" {
		c.Counties.Name = def.Counties.Name
	}
	if c.Counties.Version == "" {
		c.Counties.Version = def.Counties.Version
	}
	if c.Counties.FromYear == "" {
		c.Counties.FromYear = def.Counties.FromYear
	}
	if c.Counties.ToYear == "" {
		c.Counties.ToYear = def.Counties.ToYear
	}
	if c.Districts.CountyID == "" {
		c.Districts.CountyID = def.Districts.CountyID
	}
	if c.Districts.DistrictID == "" {
		c.Districts.DistrictID = def.Districts.DistrictID
	}
	if c.Districts.Year == "" {
		c.Districts.Year = def.Districts.Year
	}
}

// Validate checks the profile for duplicate column or attribute assignments.
func (c Config) Validate() error {
	if err := distinct("columns", map[string]string{
		"county_id":   c.Districts.CountyID,
		"district_id": c.Districts.DistrictID,
		"year":        c.Districts.Year,
	}); err != nil {
		return err
	}

	// Shapefile attributes are matched case-insensitively by the loader, so
	// the duplicate check folds case too.
	return distinct("fields", map[string]string{
		"id":        strings.ToUpper(c.Counties.ID),
		"name":      strings.ToUpper(c.Counties.Name),
		"version":   strings.ToUpper(c.Counties.Version),
		"from_year": strings.ToUpper(c.Counties.FromYear),
		"to_year":   strings.ToUpper(c.Counties.ToYear),
	})
}

func distinct(kind string, mapped map[string]string) error {
	seen := map[string]string{}
	keys := make([]string, 0, len(mapped))
	for key := range mapped {
		keys = append(keys, key)
	}
	sort.Strings(keys)

	for _, key := range keys {
		name := mapped[key]
		if prev, dup := seen[name]; dup {
			return fmt.Errorf("%s %s and %s both mapped to %q", kind, prev, key, name)
		}
		seen[name] = key
	}
	return nil
}
