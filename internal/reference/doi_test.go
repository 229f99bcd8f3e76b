package reference

import "testing"

func TestNormalizeDOI(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want string
	}{
		{"bare", "10.1000/xyz123", "10.1000/xyz123"},
		{"https resolver", "https://doi.org/10.1000/xyz123", "10.1000/xyz123"},
		{"http resolver", "http://doi.org/10.1000/xyz123", "10.1000/xyz123"},
		{"dx resolver", "https://dx.doi.org/10.1000/xyz123", "10.1000/xyz123"},
		{"no scheme", "doi.org/10.1000/xyz123", "10.1000/xyz123"},
		{"doi prefix", "doi:10.1000/xyz123", "10.1000/xyz123"},
		{"uppercase prefix", "DOI:10.1000/XYZ123", "10.1000/xyz123"},
		{"mixed case suffix", "10.1000/XYZ123", "10.1000/xyz123"},
		{"whitespace", "  10.1000/xyz123  ", "10.1000/xyz123"},
		{"empty", "", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := NormalizeDOI(tt.in); got != tt.want {
				t.Errorf("NormalizeDOI(%q) = %q, want %q", tt.in, got, tt.want)
			}
		})
	}
}
