package sink

import "github.com/google/uuid"

type CompositionRow struct {
	ID              uuid.UUID `gorm:"type:uuid;primaryKey;column:id"`
	DistrictID      string    `gorm:"column:district_id"`
	Year            int       `gorm:"column:year"`
	CountyCount     int       `gorm:"column:county_count"`
	Counties        string    `gorm:"column:counties"`
	GeometryGeoJSON string    `gorm:"column:geometry_geojson"`
}

func (CompositionRow) TableName() string { return "lookback.compositions" }

type CompositionCounty struct {
	ID            string    `gorm:"primaryKey;column:id"`
	CompositionID uuid.UUID `gorm:"type:uuid;column:composition_id"`
	CountyID      string    `gorm:"column:county_id"`
}

func (CompositionCounty) TableName() string { return "lookback.composition_counties" }
