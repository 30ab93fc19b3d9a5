package sink

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	_ "github.com/jackc/pgx/v5/stdlib"
	"github.com/paulmach/orb/geojson"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/agrc/lookback/internal/composition"
)

type Config struct {
	DatabaseURL string
	Namespace   string // UUID namespace, stable forever
	Wipe        bool   // truncate lookback tables before loading
	AdvisoryKey int64  // optional pg advisory lock key, 0 = disabled
}

// Run loads compositions into Postgres. Row IDs are deterministic over the
// namespace, so repeat runs upsert in place; Wipe additionally truncates the
// lookback tables first inside the same transaction.
func Run(cfg Config, comps []composition.Composition) error {
	if len(comps) == 0 {
		return errors.New("refusing to run: no compositions to load")
	}

	ns, err := uuid.Parse(cfg.Namespace)
	if err != nil {
		return fmt.Errorf("invalid namespace uuid: %w", err)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Minute)
	defer cancel()

	sqlDB, err := sql.Open("pgx", cfg.DatabaseURL)
	if err != nil {
		return fmt.Errorf("connect: %w", err)
	}
	if err := sqlDB.PingContext(ctx); err != nil {
		sqlDB.Close()
		return fmt.Errorf("ping: %w", err)
	}

	db, err := gorm.Open(postgres.New(postgres.Config{Conn: sqlDB}), &gorm.Config{})
	if err != nil {
		return err
	}

	if err := db.Exec(`CREATE SCHEMA IF NOT EXISTS "lookback"`).Error; err != nil {
		return fmt.Errorf("ensure schema: %w", err)
	}
	if err := db.AutoMigrate(&CompositionRow{}, &CompositionCounty{}); err != nil {
		return fmt.Errorf("migrate: %w", err)
	}

	rows, countyRows, err := buildRows(ns, comps)
	if err != nil {
		return err
	}

	return db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		// Optional advisory lock to avoid concurrent runs
		if cfg.AdvisoryKey != 0 {
			if err := tx.Exec(`SELECT pg_advisory_xact_lock(?)`, cfg.AdvisoryKey).Error; err != nil {
				return fmt.Errorf("advisory lock: %w", err)
			}
		}

		if cfg.Wipe {
			if err := wipeLookback(tx); err != nil {
				return err
			}
		}

		if err := tx.Clauses(clause.OnConflict{
			Columns: []clause.Column{{Name: "id"}},
			DoUpdates: clause.AssignmentColumns([]string{
				"district_id", "year", "county_count", "counties", "geometry_geojson",
			}),
		}).Create(&rows).Error; err != nil {
			return fmt.Errorf("insert compositions: %w", err)
		}

		if len(countyRows) > 0 {
			if err := tx.Clauses(clause.OnConflict{
				Columns:   []clause.Column{{Name: "id"}},
				DoNothing: true,
			}).Create(&countyRows).Error; err != nil {
				return fmt.Errorf("insert composition counties: %w", err)
			}
		}

		return nil
	})
}

func buildRows(ns uuid.UUID, comps []composition.Composition) ([]CompositionRow, []CompositionCounty, error) {
	var rows []CompositionRow
	var countyRows []CompositionCounty

	for _, c := range comps {
		id := CompositionID(ns, c.DistrictID, c.Year)

		var geom string
		if c.Geometry != nil {
			data, err := json.Marshal(geojson.NewGeometry(c.Geometry))
			if err != nil {
				return nil, nil, fmt.Errorf("encode geometry %s/%d: %w", c.DistrictID, c.Year, err)
			}
			geom = string(data)
		}

		rows = append(rows, CompositionRow{
			ID:              id,
			DistrictID:      c.DistrictID,
			Year:            c.Year,
			CountyCount:     len(c.Counties),
			Counties:        strings.Join(c.Counties, ";"),
			GeometryGeoJSON: geom,
		})

		for _, county := range c.Counties {
			countyRows = append(countyRows, CompositionCounty{
				ID:            CountyRowID(ns, id, county),
				CompositionID: id,
				CountyID:      county,
			})
		}
	}

	return rows, countyRows, nil
}

func wipeLookback(tx *gorm.DB) error {
	sql := `
		TRUNCATE TABLE
			lookback.composition_counties,
			lookback.compositions
		CASCADE;
	`
	return tx.Exec(sql).Error
}
