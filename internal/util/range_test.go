package util

import (
	"testing"

	"github.com/mrsinham/markforge/internal/rng"
)

func TestParseCountRange(t *testing.T) {
	tests := []struct {
		input   string
		want    CountRange
		wantErr bool
	}{
		{"50", CountRange{50, 50}, false},
		{"0", CountRange{0, 0}, false},
		{"20-80", CountRange{20, 80}, false},
		{"3-3", CountRange{3, 3}, false},
		{"80-20", CountRange{}, true},
		{"", CountRange{}, true},
		{"abc", CountRange{}, true},
		{"-5", CountRange{}, true},
		{"1-2-3", CountRange{}, true},
		{"1.5", CountRange{}, true},
	}

	for _, tt := range tests {
		got, err := ParseCountRange(tt.input)
		if tt.wantErr {
			if err == nil {
				t.Errorf("ParseCountRange(%q) expected error, got %v", tt.input, got)
			}
			continue
		}
		if err != nil {
			t.Errorf("ParseCountRange(%q) failed: %v", tt.input, err)
			continue
		}
		if got != tt.want {
			t.Errorf("ParseCountRange(%q) = %v, want %v", tt.input, got, tt.want)
		}
	}
}

func TestCountRangeSample(t *testing.T) {
	rs := rng.New(42)

	r := CountRange{Min: 2, Max: 5}
	for i := 0; i < 200; i++ {
		n, err := r.Sample(rs)
		if err != nil {
			t.Fatalf("Sample failed: %v", err)
		}
		if n < 2 || n > 5 {
			t.Fatalf("Sample() = %d, want [2, 5]", n)
		}
	}
}

func TestCountRangeSample_FixedConsumesNothing(t *testing.T) {
	a := rng.New(7)
	b := rng.New(7)

	if n, err := Fixed(9).Sample(a); err != nil || n != 9 {
		t.Fatalf("Fixed(9).Sample() = %d, %v", n, err)
	}

	// Stream a must be in the same state as the untouched stream b.
	if a.Uint64() != b.Uint64() {
		t.Error("fixed count sampling consumed randomness")
	}
}

func TestCountRangeString(t *testing.T) {
	if got := Fixed(7).String(); got != "7" {
		t.Errorf("Fixed(7).String() = %q, want \"7\"", got)
	}
	if got := (CountRange{2, 5}).String(); got != "2-5" {
		t.Errorf("CountRange{2,5}.String() = %q, want \"2-5\"", got)
	}
}
