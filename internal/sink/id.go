package sink

import (
	"fmt"

	"github.com/google/uuid"
)

func v5(ns uuid.UUID, name string) uuid.UUID {
	return uuid.NewSHA1(ns, []byte(name))
}

// CompositionID is deterministic over (district, year) so reloads upsert the
// same rows instead of duplicating them.
func CompositionID(ns uuid.UUID, districtID string, year int) uuid.UUID {
	return v5(ns, fmt.Sprintf("composition:%s:%d", districtID, year))
}

func CountyRowID(ns uuid.UUID, compositionID uuid.UUID, countyID string) string {
	return v5(ns, fmt.Sprintf("county:%s:%s", compositionID.String(), countyID)).String()
}
