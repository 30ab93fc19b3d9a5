package sink

import (
	"context"
	"fmt"

	"github.com/lib/pq"
	"gorm.io/gorm"
)

// DistrictSummary is one loaded district's row counts, used to sanity-check a
// load against the source assignments.
type DistrictSummary struct {
	DistrictID string
	Years      int
	Counties   int
}

// Verify queries the loaded tables for the given districts (all districts
// when the list is empty) and returns per-district year and county-row
// counts.
func Verify(ctx context.Context, db *gorm.DB, districtIDs []string) ([]DistrictSummary, error) {
	query := `
		SELECT
			c.district_id,
			COUNT(DISTINCT c.year) AS years,
			COUNT(cc.id) AS counties
		FROM lookback.compositions c
		LEFT JOIN lookback.composition_counties cc ON cc.composition_id = c.id
		WHERE ($1 = 0 OR c.district_id = ANY($2))
		GROUP BY c.district_id
		ORDER BY c.district_id
	`

	rows, err := db.WithContext(ctx).Raw(query, len(districtIDs), pq.Array(districtIDs)).Rows()
	if err != nil {
		return nil, fmt.Errorf("verify query failed: %w", err)
	}
	defer rows.Close()

	var out []DistrictSummary
	for rows.Next() {
		var s DistrictSummary
		if err := rows.Scan(&s.DistrictID, &s.Years, &s.Counties); err != nil {
			return nil, fmt.Errorf("scan district summary: %w", err)
		}
		out = append(out, s)
	}

	return out, rows.Err()
}
