package county

import (
	"errors"
	"fmt"
	"sort"

	"github.com/paulmach/orb"
)

var (
	// ErrNoBoundary means no boundary version of the county covers the year.
	ErrNoBoundary = errors.New("no boundary valid for year")
	// ErrAmbiguous means more than one boundary version covers the year.
	ErrAmbiguous = errors.New("multiple boundaries valid for year")
)

// Boundary is one version of a county's shape with its validity period.
// ToYear == 0 means the version is still current. Immutable once loaded.
type Boundary struct {
	ID       string
	Name     string
	Version  int
	Geometry orb.Geometry
	FromYear int
	ToYear   int
}

// Key returns the county version key, e.g. "beaver_S2".
func (b Boundary) Key() string {
	return fmt.Sprintf("%s_S%d", b.ID, b.Version)
}

// ValidIn reports whether the boundary covers the given year. Both endpoints
// are inclusive.
func (b Boundary) ValidIn(year int) bool {
	if year < b.FromYear {
		return false
	}
	return b.ToYear == 0 || year <= b.ToYear
}

// Set indexes county boundaries by normalized county ID.
type Set struct {
	byID map[string][]Boundary
}

// NewSet builds a set from a slice of boundaries. Versions of each county are
// kept sorted by FromYear so resolution and timelines are deterministic.
func NewSet(boundaries []Boundary) Set {
	byID := make(map[string][]Boundary)
	for _, b := range boundaries {
		id := CleanName(b.ID)
		b.ID = id
		byID[id] = append(byID[id], b)
	}
	for id := range byID {
		vs := byID[id]
		sort.Slice(vs, func(i, j int) bool {
			if vs[i].FromYear != vs[j].FromYear {
				return vs[i].FromYear < vs[j].FromYear
			}
			return vs[i].Version < vs[j].Version
		})
		byID[id] = vs
	}
	return Set{byID: byID}
}

// Len returns the number of distinct counties in the set.
func (s Set) Len() int { return len(s.byID) }

// Versions returns all boundary versions for a county, oldest first.
func (s Set) Versions(countyID string) []Boundary {
	return s.byID[CleanName(countyID)]
}

// Resolve finds the single boundary valid for the county in the given year.
// Zero matches return ErrNoBoundary, more than one returns ErrAmbiguous;
// either way the caller reports a data-quality warning rather than dropping
// the row silently.
func (s Set) Resolve(countyID string, year int) (Boundary, error) {
	var found []Boundary
	for _, b := range s.byID[CleanName(countyID)] {
		if b.ValidIn(year) {
			found = append(found, b)
		}
	}
	switch len(found) {
	case 0:
		return Boundary{}, fmt.Errorf("%s in %d: %w", countyID, year, ErrNoBoundary)
	case 1:
		return found[0], nil
	default:
		return Boundary{}, fmt.Errorf("%s in %d (%d matches): %w", countyID, year, len(found), ErrAmbiguous)
	}
}
