package chinook

import (
	"bufio"
	"context"
	"database/sql"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/jackc/pgx/v5/pgxpool"
	_ "github.com/mattn/go-sqlite3"
)

// StartingIDs holds the current maximum IDs in the target database.
// Newly generated rows start one past each.
type StartingIDs struct {
	Artist int
	Album  int
	Track  int
}

// maxIDQuery reads the three maxima in one round trip. COALESCE makes empty
// tables count as 0. Works on both the Postgres and SQLite Chinook schemas.
const maxIDQuery = `SELECT
    COALESCE((SELECT MAX(ArtistId) FROM Artist), 0),
    COALESCE((SELECT MAX(AlbumId) FROM Album), 0),
    COALESCE((SELECT MAX(TrackId) FROM Track), 0)`

// QueryStartingIDs reads the current maximum IDs from an existing Chinook
// database. A postgres:// or postgresql:// URL is queried through pgx;
// anything else is treated as an SQLite file path.
func QueryStartingIDs(ctx context.Context, databaseURL string) (StartingIDs, error) {
	if strings.HasPrefix(databaseURL, "postgres://") || strings.HasPrefix(databaseURL, "postgresql://") {
		return queryPostgresIDs(ctx, databaseURL)
	}
	return querySQLiteIDs(ctx, databaseURL)
}

func queryPostgresIDs(ctx context.Context, databaseURL string) (StartingIDs, error) {
	pool, err := pgxpool.New(ctx, databaseURL)
	if err != nil {
		return StartingIDs{}, fmt.Errorf("connecting to database: %w", err)
	}
	defer pool.Close()

	var ids StartingIDs
	if err := pool.QueryRow(ctx, maxIDQuery).Scan(&ids.Artist, &ids.Album, &ids.Track); err != nil {
		return StartingIDs{}, fmt.Errorf("querying max IDs: %w", err)
	}
	return ids, nil
}

func querySQLiteIDs(ctx context.Context, path string) (StartingIDs, error) {
	db, err := sql.Open("sqlite3", path)
	if err != nil {
		return StartingIDs{}, fmt.Errorf("opening database: %w", err)
	}
	defer db.Close()

	var ids StartingIDs
	if err := db.QueryRowContext(ctx, maxIDQuery).Scan(&ids.Artist, &ids.Album, &ids.Track); err != nil {
		return StartingIDs{}, fmt.Errorf("querying max IDs: %w", err)
	}
	return ids, nil
}

// ReadStartingIDs interactively prompts on w for the three current maximum
// IDs and reads them from r, one integer per line.
func ReadStartingIDs(r io.Reader, w io.Writer) (StartingIDs, error) {
	fmt.Fprintln(w, "Please enter the current maximum IDs from your database:")
	fmt.Fprintln(w, "Run this SQL query to get them:")
	fmt.Fprintln(w, "SELECT")
	fmt.Fprintln(w, "    (SELECT MAX(ArtistId) FROM Artist) AS MaxArtistId,")
	fmt.Fprintln(w, "    (SELECT MAX(AlbumId) FROM Album) AS MaxAlbumId,")
	fmt.Fprintln(w, "    (SELECT MAX(TrackId) FROM Track) AS MaxTrackId;")
	fmt.Fprintln(w)

	scanner := bufio.NewScanner(r)
	readInt := func(prompt string) (int, error) {
		fmt.Fprint(w, prompt)
		if !scanner.Scan() {
			if err := scanner.Err(); err != nil {
				return 0, err
			}
			return 0, io.ErrUnexpectedEOF
		}
		text := strings.TrimSpace(scanner.Text())
		n, err := strconv.Atoi(text)
		if err != nil {
			return 0, fmt.Errorf("invalid ID %q: expected an integer", text)
		}
		return n, nil
	}

	var ids StartingIDs
	var err error
	if ids.Artist, err = readInt("Enter current max ArtistId: "); err != nil {
		return StartingIDs{}, err
	}
	if ids.Album, err = readInt("Enter current max AlbumId: "); err != nil {
		return StartingIDs{}, err
	}
	if ids.Track, err = readInt("Enter current max TrackId: "); err != nil {
		return StartingIDs{}, err
	}
	return ids, nil
}
