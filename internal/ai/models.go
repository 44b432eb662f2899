package ai

// InterpretedIntent captures the structured output of intent classification.
type InterpretedIntent struct {
	// Category is the main venue category (one of the values in Categories).
	Category string `json:"category"`

	// Subcategory is a more specific refinement if applicable,
	// e.g. "italian" for restaurant.
	Subcategory string `json:"subcategory,omitempty"`

	// Keywords are extra search terms pulled from the request,
	// e.g. "dog-friendly", "outdoor seating".
	Keywords []string `json:"keywords"`
}

// Categories the classifier may produce, aligned with the venue discovery
// category maps.
var Categories = []string{
	"restaurant", "cafe", "bar", "park", "beach", "museum", "library",
	"gym", "shopping", "entertainment", "cinema", "theater", "food",
	"outdoors", "other",
}

// Keyword returns the best single keyword hint for venue search: the
// subcategory when present, otherwise the first extracted keyword.
func (i InterpretedIntent) Keyword() string {
	if i.Subcategory != "" {
		return i.Subcategory
	}
	if len(i.Keywords) > 0 {
		return i.Keywords[0]
	}
	return ""
}
