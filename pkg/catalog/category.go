package catalog

// Category is a category record sourced from the remote record store.
// Like users, categories are read-only.
type Category struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

// CategoryName is one of the fixed category display names offered at
// the presentation boundary.
type CategoryName string

// The closed category enumeration. CategoryNone is the "no category
// chosen" placeholder and is rejected by create validation.
const (
	CategoryNone       CategoryName = "select"
	CategorySports     CategoryName = "sports"
	CategoryGames      CategoryName = "games"
	CategoryRelaxation CategoryName = "relaxation"
)

// categoryIDs is the fixed, total display-name to identifier mapping.
var categoryIDs = map[CategoryName]int{
	CategoryNone:       0,
	CategorySports:     1,
	CategoryGames:      2,
	CategoryRelaxation: 3,
}

// CategoryID returns the fixed identifier for a category display name.
// Unrecognized names and the CategoryNone placeholder both map to 0.
func CategoryID(name CategoryName) int {
	return categoryIDs[name]
}

// KnownCategory reports whether name is a selectable category, i.e. a
// member of the enumeration other than the CategoryNone placeholder.
func KnownCategory(name CategoryName) bool {
	id, ok := categoryIDs[name]
	return ok && id != 0
}
