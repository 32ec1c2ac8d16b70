// Package chinook maps fetched catalog metadata onto the Chinook sample
// database schema and renders it as batched SQL INSERT statements.
package chinook

import "strings"

// FallbackGenre is used when a free-text genre label matches nothing in the
// mapping table.
const FallbackGenre = "Rock"

// genreMapping translates free-text genre labels to Chinook genre names.
// The first entry whose key is a substring of the lowercased input wins,
// so table order defines precedence.
var genreMapping = []struct {
	key  string
	name string
}{
	{"rock", "Rock"},
	{"metal", "Metal"},
	{"hard rock", "Rock"},
	{"punk", "Alternative & Punk"},
	{"alternative", "Alternative"},
	{"indie", "Alternative"},
	{"pop", "Pop"},
	{"hip hop", "Hip Hop/Rap"},
	{"rap", "Hip Hop/Rap"},
	{"trap", "Hip Hop/Rap"},
	{"r&b", "R&B/Soul"},
	{"soul", "R&B/Soul"},
	{"jazz", "Jazz"},
	{"blues", "Blues"},
	{"country", "Country"},
	{"folk", "Folk"},
	{"classical", "Classical"},
	{"edm", "Electronica/Dance"},
	{"electronic", "Electronica/Dance"},
	{"dance", "Electronica/Dance"},
	{"techno", "Electronica/Dance"},
	{"house", "Electronica/Dance"},
	{"latin", "Latin"},
	{"reggae", "Reggae"},
	{"reggaeton", "Latin"},
	{"world", "World"},
}

// genreIDs maps Chinook genre names to their GenreId values.
var genreIDs = map[string]int{
	"Rock":               1,
	"Jazz":               2,
	"Metal":              3,
	"Alternative & Punk": 4,
	"Rock And Roll":      5,
	"Blues":              6,
	"Latin":              7,
	"Reggae":             8,
	"Pop":                9,
	"Soundtrack":         10,
	"Bossa Nova":         11,
	"Easy Listening":     12,
	"Heavy Metal":        13,
	"R&B/Soul":           14,
	"Electronica/Dance":  15,
	"World":              16,
	"Hip Hop/Rap":        17,
	"Science Fiction":    18,
	"TV Shows":           19,
	"Sci Fi & Fantasy":   20,
	"Drama":              21,
	"Comedy":             22,
	"Alternative":        23,
	"Classical":          24,
	"Opera":              25,
}

// GenreMapper translates free-text genre labels from the catalog API into
// Chinook genre names and IDs.
type GenreMapper struct{}

// NewGenreMapper creates a GenreMapper.
func NewGenreMapper() *GenreMapper {
	return &GenreMapper{}
}

// ToCatalogGenre maps a free-text genre label to a Chinook genre name.
// Matching is substring-based and case-insensitive; labels that match
// nothing fall back to FallbackGenre.
func (m *GenreMapper) ToCatalogGenre(genre string) string {
	lower := strings.ToLower(genre)
	for _, entry := range genreMapping {
		if strings.Contains(lower, entry.key) {
			return entry.name
		}
	}
	return FallbackGenre
}

// GenreID returns the Chinook GenreId for a genre name. Unknown names
// resolve to the fallback genre's ID.
func (m *GenreMapper) GenreID(name string) int {
	if id, ok := genreIDs[name]; ok {
		return id
	}
	return genreIDs[FallbackGenre]
}
