// internal/structuring/roster/roster.go
package roster

// Roster is the set of known client names the entity extractor matches
// against. Matching is exact and case-sensitive, so names are stored in their
// display form.
type Roster []string

// Default returns the built-in client roster used when no override is
// available from the record store.
func Default() Roster {
	return Roster{
		"Apex Energy Partners",
		"Northgate Health Systems",
		"Bluebonnet Transit Alliance",
		"Summit Education Group",
		"Lakeside Municipal League",
	}
}

// Contains reports whether name is on the roster.
func (r Roster) Contains(name string) bool {
	for _, n := range r {
		if n == name {
			return true
		}
	}
	return false
}
