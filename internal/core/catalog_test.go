package core

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
)

func TestDefaultCatalogLookup(t *testing.T) {
	c := DefaultCatalog()
	if c.Len() != 40 {
		t.Fatalf("expected 40 entries, got %d", c.Len())
	}

	cases := []struct {
		name  string
		cents int64
	}{
		{"rulers", 100},
		{"Rulers", 100}, // case-insensitive
		{"TOOTHPICKS", 10},
		{"sharpies / markers (coloured variety)", 150},
	}
	for _, tc := range cases {
		got, err := c.PriceOf(tc.name)
		if err != nil {
			t.Fatalf("PriceOf(%q): %v", tc.name, err)
		}
		if got != tc.cents {
			t.Fatalf("PriceOf(%q) = %d, want %d", tc.name, got, tc.cents)
		}
	}

	if _, err := c.PriceOf("plutonium"); !errors.Is(err, ErrUnknownItem) {
		t.Fatalf("expected ErrUnknownItem, got %v", err)
	}
	if c.Has("plutonium") || !c.Has("balloons") {
		t.Fatal("Has gave wrong answers")
	}
}

func TestCatalogNamesOrderStable(t *testing.T) {
	c := DefaultCatalog()
	names := c.Names()
	if names[0] != "rulers" || names[len(names)-1] != "index cards / old greeting cards" {
		t.Fatalf("unexpected ordering: first=%q last=%q", names[0], names[len(names)-1])
	}
}

func TestNewCatalogNormalisesAndDedupes(t *testing.T) {
	c := NewCatalog([]CatalogEntry{
		{Name: " Rulers ", PriceCents: 100},
		{Name: "rulers", PriceCents: 999}, // duplicate, ignored
		{Name: "", PriceCents: 50},        // blank, ignored
	})
	if c.Len() != 1 {
		t.Fatalf("expected 1 entry, got %d", c.Len())
	}
	cents, err := c.PriceOf("rulers")
	if err != nil || cents != 100 {
		t.Fatalf("PriceOf(rulers) = %d, %v", cents, err)
	}
}

func TestLoadCatalogFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "catalog.txt")
	content := "# bake sale price list\nCupcakes;1.25\nLemonade;0,50\n\n"
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatal(err)
	}

	c, err := LoadCatalogFile(path)
	if err != nil {
		t.Fatalf("LoadCatalogFile: %v", err)
	}
	if c.Len() != 2 {
		t.Fatalf("expected 2 entries, got %d", c.Len())
	}
	if cents, _ := c.PriceOf("cupcakes"); cents != 125 {
		t.Fatalf("cupcakes = %d, want 125", cents)
	}
	if cents, _ := c.PriceOf("lemonade"); cents != 50 {
		t.Fatalf("lemonade = %d, want 50", cents)
	}

	bad := filepath.Join(dir, "bad.txt")
	if err := os.WriteFile(bad, []byte("no separator here\n"), 0644); err != nil {
		t.Fatal(err)
	}
	if _, err := LoadCatalogFile(bad); err == nil {
		t.Fatal("expected error for malformed line")
	}
}
