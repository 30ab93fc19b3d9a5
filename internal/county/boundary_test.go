package county

import (
	"errors"
	"testing"
)

func testSet() Set {
	return NewSet([]Boundary{
		{ID: "Beaver", Version: 1, FromYear: 1850, ToYear: 1895},
		{ID: "Beaver", Version: 2, FromYear: 1896, ToYear: 1915},
		{ID: "Beaver", Version: 3, FromYear: 1916, ToYear: 0},
		{ID: "Iron", Version: 1, FromYear: 1850, ToYear: 0},
	})
}

func TestResolvePicksVersionForYear(t *testing.T) {
	s := testSet()

	b, err := s.Resolve("beaver", 1900)
	if err != nil {
		t.Fatalf("Resolve failed: %v", err)
	}
	if b.Version != 2 {
		t.Errorf("expected version 2 for 1900, got %d", b.Version)
	}
	if b.Key() != "beaver_S2" {
		t.Errorf("expected key beaver_S2, got %s", b.Key())
	}
}

// Resolution normalizes the lookup ID the same way loading normalizes
// boundary IDs, so "St. Marys" and "stmarys" hit the same county.
func TestResolveNormalizesID(t *testing.T) {
	s := NewSet([]Boundary{
		{ID: "St. Marys", Version: 1, FromYear: 1850, ToYear: 0},
	})

	if _, err := s.Resolve("ST MARYS", 1900); err != nil {
		t.Errorf("normalized lookup failed: %v", err)
	}
}

func TestResolveOpenEnded(t *testing.T) {
	s := testSet()

	b, err := s.Resolve("beaver", 2020)
	if err != nil {
		t.Fatalf("Resolve failed: %v", err)
	}
	if b.Version != 3 {
		t.Errorf("expected open-ended version 3, got %d", b.Version)
	}
}

func TestResolveNoBoundary(t *testing.T) {
	s := testSet()

	_, err := s.Resolve("beaver", 1840)
	if !errors.Is(err, ErrNoBoundary) {
		t.Errorf("expected ErrNoBoundary, got %v", err)
	}

	_, err = s.Resolve("nosuch", 1900)
	if !errors.Is(err, ErrNoBoundary) {
		t.Errorf("expected ErrNoBoundary for unknown county, got %v", err)
	}
}

// Overlapping validity periods violate the exactly-one invariant and must be
// surfaced, not resolved arbitrarily.
func TestResolveAmbiguous(t *testing.T) {
	s := NewSet([]Boundary{
		{ID: "overlap", Version: 1, FromYear: 1850, ToYear: 1900},
		{ID: "overlap", Version: 2, FromYear: 1895, ToYear: 0},
	})

	_, err := s.Resolve("overlap", 1898)
	if !errors.Is(err, ErrAmbiguous) {
		t.Errorf("expected ErrAmbiguous, got %v", err)
	}
}

func TestValidInEndpointsInclusive(t *testing.T) {
	b := Boundary{FromYear: 1850, ToYear: 1895}

	for year, want := range map[int]bool{
		1849: false,
		1850: true,
		1895: true,
		1896: false,
	} {
		if got := b.ValidIn(year); got != want {
			t.Errorf("ValidIn(%d) = %v, want %v", year, got, want)
		}
	}
}
