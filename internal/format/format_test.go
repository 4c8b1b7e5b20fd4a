package format

import "testing"

func TestFormatKey(t *testing.T) {
	cases := []struct {
		name string
		in   string
		want string
	}{
		{name: "camel case key", in: "bFactor", want: "B Factor"},
		{name: "single word", in: "name", want: "Name"},
		{name: "already capitalized", in: "Resolution", want: "Resolution"},
		{name: "multiple humps", in: "depositionDateRaw", want: "Deposition Date Raw"},
		{name: "leading uppercase run", in: "pdbId", want: "Pdb Id"},
		{name: "empty", in: "", want: ""},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if got := FormatKey(tc.in); got != tc.want {
				t.Fatalf("FormatKey(%q) = %q, want %q", tc.in, got, tc.want)
			}
		})
	}
}

func TestFormatKey_IdempotentOnFormattedStrings(t *testing.T) {
	// Keys with no internal uppercase after the first rune survive a
	// second pass unchanged.
	for _, in := range []string{"Name", "Organism", "Method"} {
		once := FormatKey(in)
		if twice := FormatKey(once); twice != once {
			t.Fatalf("FormatKey not idempotent for %q: %q then %q", in, once, twice)
		}
	}
}
