package units

import (
	"errors"
	"math"
	"testing"
)

func TestFormat(t *testing.T) {
	tests := []struct {
		name  string
		bytes int64
		want  string
	}{
		{"zero", 0, "0 bytes."},
		{"small", 512, "512 bytes."},
		{"just under kb", 1023, "1023 bytes."},
		{"exact kb", 1024, "1 KB"},
		{"one and a half kb", 1536, "1.5 KB"},
		{"exact mb", 1 << 20, "1 MB"},
		{"fractional mb", 5*(1<<20) + 256*(1<<10), "5.25 MB"},
		{"exact gb", 1 << 30, "1 GB"},
		{"exact tb", 1 << 40, "1 TB"},
		{"multiple tb", 3 * (1 << 40), "3 TB"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Format(tt.bytes); got != tt.want {
				t.Errorf("Format(%d) = %q, want %q", tt.bytes, got, tt.want)
			}
		})
	}
}

func TestParse(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  int64
	}{
		{"kb", "1.5 KB", 1536},
		{"bytes with period", "512 bytes.", 512},
		{"zero", "0 bytes.", 0},
		{"mb", "2 MB", 2 << 20},
		{"gb", "1 GB", 1 << 30},
		{"tb", "1 TB", 1 << 40},
		{"unknown suffix treated as bytes", "100 blobs", 100},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := Parse(tt.input)
			if err != nil {
				t.Fatalf("Parse(%q) returned error: %v", tt.input, err)
			}
			if got != tt.want {
				t.Errorf("Parse(%q) = %d, want %d", tt.input, got, tt.want)
			}
		})
	}
}

func TestParseRejectsMalformedInput(t *testing.T) {
	for _, input := range []string{"", "1536", "abc KB", "1.5KB"} {
		if _, err := Parse(input); !errors.Is(err, ErrMalformedSize) {
			t.Errorf("Parse(%q) error = %v, want ErrMalformedSize", input, err)
		}
	}
}

// TestRoundTrip verifies Parse(Format(v)) recovers v within the rounding
// error introduced by the two-decimal format, across all five unit tiers.
func TestRoundTrip(t *testing.T) {
	cases := []int64{
		0, 1, 512, 1023, 1024, 1536, 4097,
		1 << 20, 3<<20 + 12345,
		1 << 30, 7<<30 + 987654,
		1 << 40, 2<<40 + 5<<30,
	}

	for _, v := range cases {
		formatted := Format(v)
		back, err := Parse(formatted)
		if err != nil {
			t.Fatalf("Parse(Format(%d)) = Parse(%q) error: %v", v, formatted, err)
		}

		// Two decimal digits of the active unit bound the error.
		bound := int64(1)
		switch {
		case v >= TB:
			bound = TB / 100
		case v >= GB:
			bound = GB / 100
		case v >= MB:
			bound = MB / 100
		case v >= KB:
			bound = KB / 100
		}
		if diff := int64(math.Abs(float64(back - v))); diff > bound {
			t.Errorf("round trip %d -> %q -> %d: off by %d (bound %d)", v, formatted, back, diff, bound)
		}
	}
}
