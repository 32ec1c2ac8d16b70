package spotify

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"chinook-seeder/internal/chinook"
)

// fetcherFixtures maps API paths to canned JSON responses for a small
// catalog: one good album, one with a mismatched release year, and one
// malformed album with no artists.
var fetcherFixtures = map[string]string{
	"/v1/search": `{"albums":{"items":[
		{"id":"alb1","name":"First Album","release_date":"2015-03-01","artists":[{"id":"art1","name":"The O'Neills"}]},
		{"id":"alb2","name":"Wrong Year","release_date":"2015-01-01","artists":[{"id":"art2","name":"Other"}]},
		{"id":"alb3","name":"No Artists","release_date":"2015-01-01","artists":[]}
	]}}`,
	"/v1/albums/alb1": `{"id":"alb1","name":"First Album","release_date":"2015-03-01",
		"artists":[{"id":"art1","name":"The O'Neills"}],
		"tracks":{"items":[
			{"id":"t1","name":"Opener","duration_ms":201000},
			{"id":"t2","name":"Closer","duration_ms":180000}
		]}}`,
	"/v1/albums/alb2": `{"id":"alb2","name":"Wrong Year","release_date":"2014-11-20",
		"artists":[{"id":"art2","name":"Other"}],
		"tracks":{"items":[{"id":"t3","name":"Only","duration_ms":120000}]}}`,
	"/v1/albums/alb3": `{"id":"alb3","name":"No Artists","release_date":"2015-01-01",
		"artists":[],"tracks":{"items":[]}}`,
	"/v1/artists/art1": `{"id":"art1","name":"The O'Neills","genres":["irish hard rock","celtic"]}`,
	"/v1/artists/art2": `{"id":"art2","name":"Other","genres":[]}`,
}

func newTestFetcher(t *testing.T, fixtures map[string]string, searchCount *atomic.Int32) *Fetcher {
	t.Helper()

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path == "/v1/search" && searchCount != nil {
			searchCount.Add(1)
		}
		body, ok := fixtures[r.URL.Path]
		if !ok {
			t.Errorf("unexpected request path %s", r.URL.Path)
			w.WriteHeader(http.StatusNotFound)
			return
		}
		w.Header().Set("Content-Type", "application/json")
		fmt.Fprint(w, body)
	}))
	t.Cleanup(server.Close)

	client, _ := newTestClient(server)
	fetcher := NewFetcher(client, chinook.NewGenreMapper())
	fetcher.now = func() time.Time { return time.Date(2015, 6, 1, 0, 0, 0, 0, time.UTC) }
	return fetcher
}

func TestFetchYearRange(t *testing.T) {
	fetcher := newTestFetcher(t, fetcherFixtures, nil)

	albums, err := fetcher.FetchYearRange(context.Background(), 2015, 2015, 10)
	if err != nil {
		t.Fatalf("FetchYearRange() error = %v", err)
	}

	// alb2's detail says 2014 and alb3 has no artists; only alb1 survives.
	if len(albums) != 1 {
		t.Fatalf("got %d albums, want 1", len(albums))
	}

	album := albums[0]
	if album.Artist != "The O'Neills" {
		t.Errorf("Artist = %q, want %q", album.Artist, "The O'Neills")
	}
	if album.Title != "First Album" {
		t.Errorf("Title = %q, want %q", album.Title, "First Album")
	}
	if album.ReleaseYear != 2015 {
		t.Errorf("ReleaseYear = %d, want 2015", album.ReleaseYear)
	}
	if album.Genre != "Rock" {
		t.Errorf("Genre = %q, want %q (mapped from %q)", album.Genre, "Rock", "irish hard rock")
	}

	if len(album.Tracks) != 2 {
		t.Fatalf("got %d tracks, want 2", len(album.Tracks))
	}
	want := []chinook.Track{
		{Name: "Opener", DurationMs: 201000, Composer: "The O'Neills"},
		{Name: "Closer", DurationMs: 180000, Composer: "The O'Neills"},
	}
	for i, tr := range album.Tracks {
		if tr != want[i] {
			t.Errorf("track %d = %+v, want %+v", i, tr, want[i])
		}
	}
}

func TestFetchYearRange_TruncatesFutureYears(t *testing.T) {
	var searchCount atomic.Int32
	fetcher := newTestFetcher(t, fetcherFixtures, &searchCount)

	// The fetcher's clock says 2015; 2016 and 2017 must not be searched.
	if _, err := fetcher.FetchYearRange(context.Background(), 2015, 2017, 10); err != nil {
		t.Fatalf("FetchYearRange() error = %v", err)
	}
	if count := searchCount.Load(); count != 1 {
		t.Errorf("expected 1 search request, got %d", count)
	}
}

func TestFetchYearRange_StopsAtPerYearCount(t *testing.T) {
	fixtures := map[string]string{
		"/v1/search": `{"albums":{"items":[
			{"id":"a1","name":"A1","release_date":"2015-01-01","artists":[{"id":"ar","name":"Artist"}]},
			{"id":"a2","name":"A2","release_date":"2015-02-01","artists":[{"id":"ar","name":"Artist"}]},
			{"id":"a3","name":"A3","release_date":"2015-03-01","artists":[{"id":"ar","name":"Artist"}]}
		]}}`,
		"/v1/albums/a1": `{"id":"a1","name":"A1","release_date":"2015-01-01",
			"artists":[{"id":"ar","name":"Artist"}],"tracks":{"items":[]}}`,
		"/v1/albums/a2": `{"id":"a2","name":"A2","release_date":"2015-02-01",
			"artists":[{"id":"ar","name":"Artist"}],"tracks":{"items":[]}}`,
		// a3's detail is deliberately absent; the fetcher must stop
		// before requesting it.
		"/v1/artists/ar": `{"id":"ar","name":"Artist","genres":["pop"]}`,
	}
	fetcher := newTestFetcher(t, fixtures, nil)

	albums, err := fetcher.FetchYearRange(context.Background(), 2015, 2015, 2)
	if err != nil {
		t.Fatalf("FetchYearRange() error = %v", err)
	}
	if len(albums) != 2 {
		t.Fatalf("got %d albums, want 2", len(albums))
	}
	if albums[0].Title != "A1" || albums[1].Title != "A2" {
		t.Errorf("unexpected albums: %q, %q", albums[0].Title, albums[1].Title)
	}
}

func TestFetchYearRange_NoGenreTags(t *testing.T) {
	fixtures := map[string]string{
		"/v1/search": `{"albums":{"items":[
			{"id":"a1","name":"A1","release_date":"2015-01-01","artists":[{"id":"ar","name":"Untagged"}]}
		]}}`,
		"/v1/albums/a1": `{"id":"a1","name":"A1","release_date":"2015-01-01",
			"artists":[{"id":"ar","name":"Untagged"}],"tracks":{"items":[]}}`,
		"/v1/artists/ar": `{"id":"ar","name":"Untagged","genres":[]}`,
	}
	fetcher := newTestFetcher(t, fixtures, nil)

	albums, err := fetcher.FetchYearRange(context.Background(), 2015, 2015, 5)
	if err != nil {
		t.Fatalf("FetchYearRange() error = %v", err)
	}
	if len(albums) != 1 {
		t.Fatalf("got %d albums, want 1", len(albums))
	}
	if albums[0].Genre != "Unknown" {
		t.Errorf("Genre = %q, want %q", albums[0].Genre, "Unknown")
	}
}

func TestTopAlbums(t *testing.T) {
	fixtures := map[string]string{
		"/v1/search": `{"albums":{"items":[
			{"id":"a1","name":"Modest","release_date":"2015-01-01","artists":[{"id":"ar","name":"Artist"}]},
			{"id":"a2","name":"Hit","release_date":"2015-02-01","artists":[{"id":"ar","name":"Artist"}]}
		]}}`,
		"/v1/albums/a1": `{"id":"a1","name":"Modest","release_date":"2015-01-01","popularity":10,
			"artists":[{"id":"ar","name":"Artist"}],"tracks":{"items":[]}}`,
		"/v1/albums/a2": `{"id":"a2","name":"Hit","release_date":"2015-02-01","popularity":90,
			"artists":[{"id":"ar","name":"Artist"}],"tracks":{"items":[]}}`,
	}
	fetcher := newTestFetcher(t, fixtures, nil)

	albums, err := fetcher.TopAlbums(context.Background(), 2015, 10)
	if err != nil {
		t.Fatalf("TopAlbums() error = %v", err)
	}
	if len(albums) != 2 {
		t.Fatalf("got %d albums, want 2", len(albums))
	}
	if albums[0].Name != "Hit" || albums[1].Name != "Modest" {
		t.Errorf("albums not sorted by popularity: %q, %q", albums[0].Name, albums[1].Name)
	}
}

func TestReleaseYear(t *testing.T) {
	tests := []struct {
		date string
		want int
	}{
		{"2015-03-01", 2015},
		{"2015-03", 2015},
		{"2015", 2015},
		{"", 0},
		{"not-a-date", 0},
	}

	for _, tt := range tests {
		if got := releaseYear(tt.date); got != tt.want {
			t.Errorf("releaseYear(%q) = %d, want %d", tt.date, got, tt.want)
		}
	}
}
