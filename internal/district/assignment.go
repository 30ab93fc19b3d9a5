package district

// Assignment is one observed (county, district, year) row from the source
// table. Insertion order is irrelevant; duplicates are tolerated and collapse
// during composition.
type Assignment struct {
	CountyID   string
	DistrictID string
	Year       int
}
