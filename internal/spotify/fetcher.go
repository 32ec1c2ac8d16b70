package spotify

import (
	"context"
	"fmt"
	"os"
	"sort"
	"strconv"
	"strings"
	"time"

	"github.com/zmb3/spotify/v2"

	"chinook-seeder/internal/chinook"
)

// unknownGenre marks albums whose artist carries no genre tags. The genre
// mapper resolves it to the fallback catalog genre at SQL time.
const unknownGenre = "Unknown"

// Fetcher collects Chinook album records from the Spotify catalog.
type Fetcher struct {
	client *Client
	mapper *chinook.GenreMapper
	now    func() time.Time
}

// NewFetcher creates a Fetcher on top of an authenticated client.
func NewFetcher(client *Client, mapper *chinook.GenreMapper) *Fetcher {
	return &Fetcher{
		client: client,
		mapper: mapper,
		now:    time.Now,
	}
}

// FetchYearRange collects up to perYear albums for every year from startYear
// through endYear inclusive. Years beyond the current year are silently
// excluded; the caller is expected to have warned about them already.
// Progress is logged to stdout during fetch.
func (f *Fetcher) FetchYearRange(ctx context.Context, startYear, endYear, perYear int) ([]chinook.Album, error) {
	if currentYear := f.now().Year(); endYear > currentYear {
		endYear = currentYear
	}

	var albums []chinook.Album
	for year := startYear; year <= endYear; year++ {
		fmt.Printf("Fetching albums for %d...\n", year)

		yearAlbums, err := f.fetchYear(ctx, year, perYear)
		if err != nil {
			return nil, err
		}
		albums = append(albums, yearAlbums...)

		fmt.Printf("Added %d albums for %d\n", len(yearAlbums), year)
	}
	return albums, nil
}

// fetchYear searches one year and verifies each candidate against its detail
// payload. Search hits whose actual release year differs are discarded; the
// search index is not always year-accurate. Rejections are not backfilled
// from further search pages, so a year can yield fewer than max albums.
func (f *Fetcher) fetchYear(ctx context.Context, year, max int) ([]chinook.Album, error) {
	results, err := f.client.SearchAlbumsByYear(ctx, year, max)
	if err != nil {
		return nil, err
	}

	var albums []chinook.Album
	for _, item := range results {
		if len(albums) >= max {
			break
		}

		detail, err := f.client.Album(ctx, item.ID)
		if err != nil {
			return nil, err
		}
		if releaseYear(detail.ReleaseDate) != year {
			continue
		}
		// Skip malformed albums rather than failing the run.
		if detail.Name == "" || len(detail.Artists) == 0 {
			continue
		}

		album, err := f.convertAlbum(ctx, detail, year)
		if err != nil {
			return nil, err
		}
		albums = append(albums, album)
	}
	return albums, nil
}

// convertAlbum extracts a Chinook album record from a detail payload,
// resolving the genre from the primary artist's first genre tag. The
// composer of every track defaults to the artist name.
func (f *Fetcher) convertAlbum(ctx context.Context, detail *spotify.FullAlbum, year int) (chinook.Album, error) {
	primary := detail.Artists[0]

	artist, err := f.client.Artist(ctx, primary.ID)
	if err != nil {
		return chinook.Album{}, err
	}

	genre := unknownGenre
	if len(artist.Genres) > 0 {
		genre = f.mapper.ToCatalogGenre(artist.Genres[0])
	}

	tracks := make([]chinook.Track, 0, len(detail.Tracks.Tracks))
	for _, t := range detail.Tracks.Tracks {
		tracks = append(tracks, chinook.Track{
			Name:       t.Name,
			DurationMs: int(t.Duration),
			Composer:   primary.Name,
		})
	}

	return chinook.Album{
		Artist:      primary.Name,
		Title:       detail.Name,
		ReleaseYear: year,
		Genre:       genre,
		Tracks:      tracks,
	}, nil
}

// TopAlbums returns a year's search results ranked by Spotify popularity,
// most popular first. Albums whose detail fetch fails are skipped with a
// warning rather than aborting the listing.
func (f *Fetcher) TopAlbums(ctx context.Context, year, limit int) ([]*spotify.FullAlbum, error) {
	results, err := f.client.SearchAlbumsByYear(ctx, year, limit)
	if err != nil {
		return nil, err
	}

	albums := make([]*spotify.FullAlbum, 0, len(results))
	for _, item := range results {
		detail, err := f.client.Album(ctx, item.ID)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Skipping %q: %v\n", item.Name, err)
			continue
		}
		albums = append(albums, detail)
	}

	sort.SliceStable(albums, func(i, j int) bool {
		return albums[i].Popularity > albums[j].Popularity
	})
	return albums, nil
}

// releaseYear parses the leading year from a release date, which may be
// "2006", "2006-01", or "2006-01-02" depending on the album's precision.
func releaseYear(date string) int {
	year, _, _ := strings.Cut(date, "-")
	n, err := strconv.Atoi(year)
	if err != nil {
		return 0
	}
	return n
}
