package chinook

import (
	"fmt"
	"math/rand/v2"
	"strings"
	"time"

	"github.com/google/uuid"
)

// DefaultBatchSize is the default maximum number of rows per INSERT statement.
const DefaultBatchSize = 1000

// Media types from the Chinook MediaType table, weighted toward the formats
// most common in recent imports.
var (
	mediaTypeIDs     = []int{1, 2, 4, 5} // MPEG, Protected AAC, Purchased AAC, AAC
	mediaTypeWeights = []int{10, 20, 40, 30}
)

// Track pricing. Most tracks get the base price; a small fraction are
// offered at the premium tier instead.
const (
	basePrice     = "0.99"
	premiumPrice  = "1.29"
	premiumChance = 0.2
)

// Generator renders fetched albums as batched Chinook INSERT statements.
// The media type, byte size, and unit price columns are synthetic filler
// drawn from the generator's random source, so output is not reproducible
// across runs.
type Generator struct {
	mapper  *GenreMapper
	maxRows int
	rng     *rand.Rand
	now     func() time.Time
}

// NewGenerator creates a Generator emitting batches of at most maxRows rows.
// A maxRows below 1 falls back to DefaultBatchSize.
func NewGenerator(mapper *GenreMapper, maxRows int) *Generator {
	if maxRows < 1 {
		maxRows = DefaultBatchSize
	}
	return &Generator{
		mapper:  mapper,
		maxRows: maxRows,
		rng:     rand.New(rand.NewPCG(rand.Uint64(), rand.Uint64())),
		now:     time.Now,
	}
}

type artistRow struct {
	id   int
	name string
}

type albumRow struct {
	id       int
	title    string
	artistID int
	year     int
}

type trackRow struct {
	id          int
	name        string
	albumID     int
	mediaTypeID int
	genreID     int
	composer    string
	ms          int
	bytes       int
	price       string
}

// Generate builds the complete SQL text for albums, assigning sequential IDs
// starting one past each supplied maximum. Artists are deduplicated by
// escaped name within the run; every album and track row references an ID
// assigned earlier in the same text, so the file applies cleanly in order.
// No I/O happens here; the caller writes the returned text.
func (g *Generator) Generate(albums []Album, maxArtistID, maxAlbumID, maxTrackID int) string {
	nextArtistID := maxArtistID + 1
	nextAlbumID := maxAlbumID + 1
	nextTrackID := maxTrackID + 1

	parts := []string{g.header()}

	// Artists first, deduplicated in input order.
	artistIDs := make(map[string]int)
	var artists []artistRow
	for _, album := range albums {
		name := EscapeString(album.Artist)
		if _, ok := artistIDs[name]; ok {
			continue
		}
		artistIDs[name] = nextArtistID
		artists = append(artists, artistRow{id: nextArtistID, name: name})
		nextArtistID++
	}
	if len(artists) > 0 {
		parts = append(parts, g.artistSQL(artists))
	}

	// Albums in input order, linked to their artist's assigned ID.
	type trackSource struct {
		albumID int
		genre   string
		tracks  []Track
	}
	var albumRows []albumRow
	var sources []trackSource
	for _, album := range albums {
		artistID, ok := artistIDs[EscapeString(album.Artist)]
		if !ok {
			continue
		}
		albumRows = append(albumRows, albumRow{
			id:       nextAlbumID,
			title:    EscapeString(album.Title),
			artistID: artistID,
			year:     album.ReleaseYear,
		})
		sources = append(sources, trackSource{albumID: nextAlbumID, genre: album.Genre, tracks: album.Tracks})
		nextAlbumID++
	}
	if len(albumRows) > 0 {
		parts = append(parts, g.albumSQL(albumRows))
	}

	// Tracks, album by album.
	var trackRows []trackRow
	for _, src := range sources {
		genreID := g.mapper.GenreID(src.genre)
		for _, t := range src.tracks {
			trackRows = append(trackRows, trackRow{
				id:          nextTrackID,
				name:        EscapeString(t.Name),
				albumID:     src.albumID,
				mediaTypeID: g.pickMediaType(),
				genreID:     genreID,
				composer:    EscapeString(t.Composer),
				ms:          t.DurationMs,
				bytes:       t.DurationMs * g.intBetween(35, 45),
				price:       g.pickPrice(),
			})
			nextTrackID++
		}
	}
	if len(trackRows) > 0 {
		parts = append(parts, g.trackSQL(trackRows))
	}

	return strings.Join(parts, "\n")
}

// EscapeString doubles single quotes so a value can be embedded in a SQL
// string literal.
func EscapeString(s string) string {
	return strings.ReplaceAll(s, "'", "''")
}

func (g *Generator) header() string {
	return strings.Join([]string{
		"/*******************************************************************************",
		"   Chinook Database - Album Import",
		"   Description: Adds new albums, artists, and tracks from the Spotify API.",
		fmt.Sprintf("   Date Generated: %s", g.now().Format("2006-01-02 15:04:05")),
		fmt.Sprintf("   Run: %s", uuid.NewString()),
		"********************************************************************************/",
		"",
	}, "\n")
}

func (g *Generator) artistSQL(rows []artistRow) string {
	var parts []string
	batches := chunk(rows, g.maxRows)
	for i, batch := range batches {
		parts = append(parts,
			fmt.Sprintf("-- Artist insert batch %d of %d", i+1, len(batches)),
			"INSERT INTO Artist (ArtistId, Name) VALUES")

		values := make([]string, len(batch))
		for j, r := range batch {
			values[j] = fmt.Sprintf("    (%d, '%s')", r.id, r.name)
		}
		parts = append(parts, strings.Join(values, ",\n")+";", "")
	}
	return strings.Join(parts, "\n")
}

func (g *Generator) albumSQL(rows []albumRow) string {
	var parts []string
	batches := chunk(rows, g.maxRows)
	for i, batch := range batches {
		parts = append(parts,
			fmt.Sprintf("-- Album insert batch %d of %d", i+1, len(batches)),
			"INSERT INTO Album (AlbumId, Title, ArtistId, ReleaseYear) VALUES")

		values := make([]string, len(batch))
		for j, r := range batch {
			values[j] = fmt.Sprintf("    (%d, '%s', %d, %d)", r.id, r.title, r.artistID, r.year)
		}
		parts = append(parts, strings.Join(values, ",\n")+";", "")
	}
	return strings.Join(parts, "\n")
}

func (g *Generator) trackSQL(rows []trackRow) string {
	var parts []string
	batches := chunk(rows, g.maxRows)
	for i, batch := range batches {
		parts = append(parts,
			fmt.Sprintf("-- Track insert batch %d of %d", i+1, len(batches)),
			"INSERT INTO Track (TrackId, Name, AlbumId, MediaTypeId, GenreId, Composer, Milliseconds, Bytes, UnitPrice) VALUES")

		values := make([]string, len(batch))
		for j, r := range batch {
			values[j] = fmt.Sprintf("    (%d, '%s', %d, %d, %d, '%s', %d, %d, %s)",
				r.id, r.name, r.albumID, r.mediaTypeID, r.genreID, r.composer, r.ms, r.bytes, r.price)
		}
		parts = append(parts, strings.Join(values, ",\n")+";", "")
	}
	return strings.Join(parts, "\n")
}

// chunk splits rows into groups of at most size, preserving order.
func chunk[T any](rows []T, size int) [][]T {
	var chunks [][]T
	for size < len(rows) {
		chunks = append(chunks, rows[:size])
		rows = rows[size:]
	}
	return append(chunks, rows)
}

// pickMediaType draws a MediaTypeId from the weighted table.
func (g *Generator) pickMediaType() int {
	total := 0
	for _, w := range mediaTypeWeights {
		total += w
	}
	n := g.rng.IntN(total)
	for i, w := range mediaTypeWeights {
		if n < w {
			return mediaTypeIDs[i]
		}
		n -= w
	}
	return mediaTypeIDs[len(mediaTypeIDs)-1]
}

// intBetween returns a uniform random integer in [lo, hi].
func (g *Generator) intBetween(lo, hi int) int {
	return lo + g.rng.IntN(hi-lo+1)
}

func (g *Generator) pickPrice() string {
	if g.rng.Float64() < premiumChance {
		return premiumPrice
	}
	return basePrice
}
