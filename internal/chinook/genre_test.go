package chinook

import "testing"

func TestToCatalogGenre(t *testing.T) {
	tests := []struct {
		name  string
		genre string
		want  string
	}{
		{"exact match", "rock", "Rock"},
		{"substring match", "garage rock revival", "Rock"},
		{"hard rock hits rock first", "hard rock", "Rock"},
		{"case insensitive", "Melodic Techno", "Electronica/Dance"},
		{"hip hop", "hip hop", "Hip Hop/Rap"},
		{"trap", "atlanta trap", "Hip Hop/Rap"},
		{"punk", "post-punk", "Alternative & Punk"},
		{"indie", "indie folk", "Alternative"}, // indie precedes folk in the table
		{"reggaeton matches reggae first", "reggaeton", "Reggae"},
		{"unknown falls back", "zorblax", "Rock"},
		{"empty falls back", "", "Rock"},
	}

	mapper := NewGenreMapper()
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := mapper.ToCatalogGenre(tt.genre); got != tt.want {
				t.Errorf("ToCatalogGenre(%q) = %q, want %q", tt.genre, got, tt.want)
			}
		})
	}
}

func TestGenreID(t *testing.T) {
	tests := []struct {
		name  string
		genre string
		want  int
	}{
		{"rock", "Rock", 1},
		{"hip hop", "Hip Hop/Rap", 17},
		{"opera", "Opera", 25},
		{"unknown defaults to rock", "Unknown", 1},
		{"empty defaults to rock", "", 1},
	}

	mapper := NewGenreMapper()
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := mapper.GenreID(tt.genre); got != tt.want {
				t.Errorf("GenreID(%q) = %d, want %d", tt.genre, got, tt.want)
			}
		})
	}
}
