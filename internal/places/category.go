package places

import "strings"

// categoryToGoogleType maps classifier categories to Google Places types.
var categoryToGoogleType = map[string]string{
	"restaurant":    "restaurant",
	"cafe":          "cafe",
	"coffee":        "cafe",
	"bar":           "bar",
	"pub":           "bar",
	"park":          "park",
	"beach":         "natural_feature",
	"museum":        "museum",
	"library":       "library",
	"gym":           "gym",
	"shopping":      "shopping_mall",
	"entertainment": "movie_theater",
	"cinema":        "movie_theater",
	"theater":       "movie_theater",
	"food":          "restaurant",
	"outdoors":      "park",
}

// GooglePlaceType returns the Google Places type for a classifier category,
// defaulting to restaurant.
func GooglePlaceType(category string) string {
	if t, ok := categoryToGoogleType[strings.ToLower(category)]; ok {
		return t
	}
	return "restaurant"
}

// categoryToFoursquareID maps classifier categories to Foursquare v3 category IDs.
var categoryToFoursquareID = map[string]string{
	"restaurant":    "13065",
	"cafe":          "13032",
	"coffee":        "13032",
	"bar":           "13003",
	"pub":           "13003",
	"park":          "16032",
	"beach":         "16003",
	"museum":        "10027",
	"library":       "12051",
	"gym":           "18021",
	"shopping":      "17000",
	"entertainment": "10000",
	"cinema":        "10024",
	"theater":       "10025",
	"food":          "13000",
	"outdoors":      "16000",
}

// FoursquareCategoryID returns the Foursquare category ID for a classifier
// category, defaulting to the broad Food category.
func FoursquareCategoryID(category string) string {
	if id, ok := categoryToFoursquareID[strings.ToLower(category)]; ok {
		return id
	}
	return categoryToFoursquareID["food"]
}

// formatPlaceType turns "movie_theater" into "Movie Theater" for display.
func formatPlaceType(t string) string {
	if t == "" {
		return "Place"
	}
	words := strings.Split(t, "_")
	for i, w := range words {
		if w == "" {
			continue
		}
		words[i] = strings.ToUpper(w[:1]) + w[1:]
	}
	return strings.Join(words, " ")
}
