package core

import "testing"

func TestSuggestFindsCloseTypo(t *testing.T) {
	names := DefaultCatalog().Names()

	cases := []struct {
		in   string
		want string
	}{
		{"ruler", "rulers"},
		{"Rulerz", "rulers"},
		{"tothpicks", "toothpicks"},
		{"baloons", "balloons"},
		{"zip tie", "zip ties"},
	}
	for _, tc := range cases {
		got, ok := Suggest(tc.in, names)
		if !ok {
			t.Fatalf("Suggest(%q): no match, want %q", tc.in, tc.want)
		}
		if got != tc.want {
			t.Fatalf("Suggest(%q) = %q, want %q", tc.in, got, tc.want)
		}
	}
}

func TestSuggestRejectsFarInput(t *testing.T) {
	names := DefaultCatalog().Names()
	for _, in := range []string{"xylophone", "qqqqqq", ""} {
		if got, ok := Suggest(in, names); ok {
			t.Fatalf("Suggest(%q) unexpectedly matched %q", in, got)
		}
	}
}

func TestSuggestTieBreaksByOrder(t *testing.T) {
	universe := []string{"cart", "card"}
	// Equidistant from both; the first name in the universe wins.
	got, ok := Suggest("carz", universe)
	if !ok || got != "cart" {
		t.Fatalf("Suggest(carz) = %q (ok=%v), want cart", got, ok)
	}
}

func TestSuggestIsDeterministic(t *testing.T) {
	names := DefaultCatalog().Names()
	first, ok := Suggest("bubble wrp", names)
	if !ok {
		t.Fatal("expected a match")
	}
	for i := 0; i < 10; i++ {
		got, ok := Suggest("bubble wrp", names)
		if !ok || got != first {
			t.Fatalf("run %d: got %q, want %q", i, got, first)
		}
	}
}
