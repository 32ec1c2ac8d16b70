// Command seed-albums fetches album metadata from the Spotify Web API and
// emits batched SQL INSERT statements for seeding a Chinook database.
package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"chinook-seeder/internal/chinook"
	"chinook-seeder/internal/config"
	"chinook-seeder/internal/spotify"
)

const defaultAlbumsPerYear = 20

type options struct {
	startYear int
	endYear   int
	count     int
	output    string
	maxRows   int
	database  string
}

func main() {
	opts, err := parseFlags(os.Args[1:])
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(2)
	}

	if err := run(opts); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func parseFlags(args []string) (options, error) {
	fs := flag.NewFlagSet("seed-albums", flag.ContinueOnError)
	fs.SetOutput(os.Stderr)

	var opts options
	fs.IntVar(&opts.startYear, "start-year", 0, "Start year for album search (required)")
	fs.IntVar(&opts.endYear, "end-year", 0, "End year for album search (required)")
	fs.IntVar(&opts.count, "count", defaultAlbumsPerYear, "Number of albums per year")
	fs.StringVar(&opts.output, "output", "add_albums.sql", "Output SQL file name")
	fs.IntVar(&opts.maxRows, "max-rows", chinook.DefaultBatchSize, "Maximum rows per INSERT statement")
	fs.StringVar(&opts.database, "db", "", "Chinook database for starting IDs (overrides CHINOOK_DB)")

	fs.Usage = func() {
		fmt.Fprintf(fs.Output(), "Usage: %s -start-year <year> -end-year <year> [options]\n\n", os.Args[0])
		fmt.Fprintln(fs.Output(), "Environment: SPOTIFY_CLIENT_ID and SPOTIFY_CLIENT_SECRET are required; CHINOOK_DB is optional.")
		fs.PrintDefaults()
	}

	if err := fs.Parse(args); err != nil {
		return options{}, err
	}
	if opts.startYear == 0 || opts.endYear == 0 {
		fs.Usage()
		return options{}, fmt.Errorf("both -start-year and -end-year are required")
	}
	return opts, nil
}

func run(opts options) error {
	if err := validate(opts); err != nil {
		return err
	}

	cfg, err := config.Load()
	if err != nil {
		return err
	}
	if opts.database != "" {
		cfg.DatabaseURL = opts.database
	}

	ctx := context.Background()

	ids, err := startingIDs(ctx, cfg)
	if err != nil {
		return err
	}
	fmt.Printf("Using starting IDs - Artist: %d, Album: %d, Track: %d\n",
		ids.Artist+1, ids.Album+1, ids.Track+1)

	client := spotify.NewClient(cfg.ClientID, cfg.ClientSecret)
	if err := client.Authenticate(ctx); err != nil {
		return err
	}

	mapper := chinook.NewGenreMapper()
	fetcher := spotify.NewFetcher(client, mapper)

	fmt.Printf("Searching for %d albums per year from %d to %d...\n",
		opts.count, opts.startYear, opts.endYear)
	albums, err := fetcher.FetchYearRange(ctx, opts.startYear, opts.endYear, opts.count)
	if err != nil {
		return err
	}
	fmt.Printf("Found %d albums to add\n", len(albums))

	generator := chinook.NewGenerator(mapper, opts.maxRows)
	sqlText := generator.Generate(albums, ids.Artist, ids.Album, ids.Track)

	if err := os.WriteFile(opts.output, []byte(sqlText), 0o644); err != nil {
		return fmt.Errorf("writing %s: %w", opts.output, err)
	}

	abs, err := filepath.Abs(opts.output)
	if err != nil {
		abs = opts.output
	}
	fmt.Printf("SQL file generated: %s\n", abs)
	return nil
}

// validate rejects bad arguments before any fetching begins. A future end
// year is only a warning; the fetcher truncates the range itself.
func validate(opts options) error {
	if opts.startYear > opts.endYear {
		return fmt.Errorf("start year must be less than or equal to end year")
	}
	if opts.count < 1 {
		return fmt.Errorf("album count must be at least 1")
	}
	if opts.maxRows < 1 {
		return fmt.Errorf("maximum rows per INSERT must be at least 1")
	}
	if currentYear := time.Now().Year(); opts.endYear > currentYear {
		fmt.Fprintf(os.Stderr, "Warning: end year %d is in the future; only fetching albums up to %d\n",
			opts.endYear, currentYear)
	}
	return nil
}

// startingIDs reads the current maximum IDs from the configured database,
// or prompts for them when no database is configured.
func startingIDs(ctx context.Context, cfg config.Config) (chinook.StartingIDs, error) {
	if cfg.DatabaseURL != "" {
		return chinook.QueryStartingIDs(ctx, cfg.DatabaseURL)
	}
	return chinook.ReadStartingIDs(os.Stdin, os.Stdout)
}
