package chinook

import (
	"errors"
	"io"
	"strings"
	"testing"
)

func TestReadStartingIDs(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		want    StartingIDs
		wantErr bool
	}{
		{
			name:  "plain integers",
			input: "275\n347\n3503\n",
			want:  StartingIDs{Artist: 275, Album: 347, Track: 3503},
		},
		{
			name:  "surrounding whitespace",
			input: "  10 \n\t20\n30\n",
			want:  StartingIDs{Artist: 10, Album: 20, Track: 30},
		},
		{
			name:  "zero for empty tables",
			input: "0\n0\n0\n",
			want:  StartingIDs{},
		},
		{
			name:    "non-numeric input",
			input:   "abc\n20\n30\n",
			wantErr: true,
		},
		{
			name:    "missing line",
			input:   "10\n20\n",
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var out strings.Builder
			ids, err := ReadStartingIDs(strings.NewReader(tt.input), &out)

			if tt.wantErr {
				if err == nil {
					t.Fatal("expected an error")
				}
				return
			}
			if err != nil {
				t.Fatalf("ReadStartingIDs() error = %v", err)
			}
			if ids != tt.want {
				t.Errorf("ReadStartingIDs() = %+v, want %+v", ids, tt.want)
			}
			if !strings.Contains(out.String(), "MAX(ArtistId)") {
				t.Error("prompt should include the helper query")
			}
		})
	}
}

func TestReadStartingIDs_EOF(t *testing.T) {
	_, err := ReadStartingIDs(strings.NewReader(""), io.Discard)
	if !errors.Is(err, io.ErrUnexpectedEOF) {
		t.Errorf("expected io.ErrUnexpectedEOF, got %v", err)
	}
}
