package match

import "testing"

func TestEqualNames(t *testing.T) {
	cases := []struct {
		a, b string
		want bool
	}{
		{"Dana", "Dana", true},
		{"  Dana  ", "Dana", true},
		{"Dana   Lev", "Dana Lev", true},
		{"\tDana \t Lev ", " Dana Lev", true},
		{"dana", "Dana", false},
		{"Dana", "Lev", false},
		{"", "   ", true},
	}
	for _, tc := range cases {
		if got := EqualNames(tc.a, tc.b); got != tc.want {
			t.Fatalf("EqualNames(%q, %q) = %v, want %v", tc.a, tc.b, got, tc.want)
		}
	}
}

func TestEqualUnordered(t *testing.T) {
	cases := []struct {
		a, b []string
		want bool
	}{
		{[]string{"a", "b"}, []string{"b", "a"}, true},
		{[]string{"a", "a", "b"}, []string{"a", "b", "a"}, true},
		{[]string{"a", "a"}, []string{"a", "b"}, false},
		{[]string{"a"}, []string{"a", "a"}, false},
		{nil, nil, true},
		{nil, []string{"a"}, false},
		{[]string{"A"}, []string{"a"}, false},
	}
	for _, tc := range cases {
		if got := EqualUnordered(tc.a, tc.b); got != tc.want {
			t.Fatalf("EqualUnordered(%v, %v) = %v, want %v", tc.a, tc.b, got, tc.want)
		}
		// Symmetry.
		if got := EqualUnordered(tc.b, tc.a); got != tc.want {
			t.Fatalf("EqualUnordered(%v, %v) = %v, want %v", tc.b, tc.a, got, tc.want)
		}
	}
}
