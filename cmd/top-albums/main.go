// Command top-albums prints a year's albums ranked by Spotify popularity.
package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"strings"

	"chinook-seeder/internal/chinook"
	"chinook-seeder/internal/config"
	"chinook-seeder/internal/spotify"
)

func main() {
	year := flag.Int("year", 0, "Year to rank albums for (required)")
	count := flag.Int("count", 20, "Number of albums to list")
	flag.Parse()

	if *year == 0 {
		flag.Usage()
		os.Exit(2)
	}

	if err := run(*year, *count); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func run(year, count int) error {
	cfg, err := config.Load()
	if err != nil {
		return err
	}

	ctx := context.Background()
	client := spotify.NewClient(cfg.ClientID, cfg.ClientSecret)
	if err := client.Authenticate(ctx); err != nil {
		return err
	}

	fetcher := spotify.NewFetcher(client, chinook.NewGenreMapper())
	albums, err := fetcher.TopAlbums(ctx, year, count)
	if err != nil {
		return err
	}

	fmt.Printf("Top albums of %d:\n", year)
	for i, album := range albums {
		artists := make([]string, len(album.Artists))
		for j, a := range album.Artists {
			artists[j] = a.Name
		}
		fmt.Printf("%d. %q by %s (popularity %d)\n",
			i+1, album.Name, strings.Join(artists, ", "), int(album.Popularity))
	}
	return nil
}
