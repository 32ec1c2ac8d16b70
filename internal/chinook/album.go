package chinook

// Track is a single track pending insertion.
type Track struct {
	Name       string
	DurationMs int
	Composer   string
}

// Album is a fetched album with its tracks. Artist is the primary artist's
// name; Genre is the Chinook genre name resolved during fetching, or
// "Unknown" when the artist carried no genre tags.
type Album struct {
	Artist      string
	Title       string
	ReleaseYear int
	Genre       string
	Tracks      []Track
}
