package core

import (
	"bufio"
	"fmt"
	"os"
	"strings"
)

// CatalogEntry is one purchasable item. Names are stored lowercase; all
// lookups are case-insensitive.
type CatalogEntry struct {
	Name       string
	PriceCents int64
}

// Catalog is the fixed price list. Entry order is stable (insertion
// order) so listings and fuzzy tie-breaking stay reproducible. It is
// built once at startup and never mutated.
type Catalog struct {
	entries []CatalogEntry
	byName  map[string]int64
}

// NewCatalog builds a catalog from entries, normalising names to
// lowercase. Later duplicates of a name are ignored.
func NewCatalog(entries []CatalogEntry) *Catalog {
	c := &Catalog{byName: make(map[string]int64, len(entries))}
	for _, e := range entries {
		name := strings.ToLower(strings.TrimSpace(e.Name))
		if name == "" {
			continue
		}
		if _, ok := c.byName[name]; ok {
			continue
		}
		c.entries = append(c.entries, CatalogEntry{Name: name, PriceCents: e.PriceCents})
		c.byName[name] = e.PriceCents
	}
	return c
}

// DefaultCatalog returns the store's fixed price list.
func DefaultCatalog() *Catalog {
	return NewCatalog(defaultEntries)
}

// LoadCatalogFile reads "name;price" lines (price in dollars, "#" starts
// a comment) and builds a catalog from them. Used to override the
// built-in price list for a different sale.
func LoadCatalogFile(path string) (*Catalog, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open catalog file: %w", err)
	}
	defer f.Close()

	var entries []CatalogEntry
	sc := bufio.NewScanner(f)
	lineNo := 0
	for sc.Scan() {
		lineNo++
		line := strings.TrimSpace(sc.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		name, price, ok := strings.Cut(line, ";")
		if !ok {
			return nil, fmt.Errorf("catalog line %d: missing ';' separator", lineNo)
		}
		cents, err := ParseDecimalToCents(price)
		if err != nil {
			return nil, fmt.Errorf("catalog line %d (%s): %w", lineNo, strings.TrimSpace(name), err)
		}
		entries = append(entries, CatalogEntry{Name: name, PriceCents: cents})
	}
	if err := sc.Err(); err != nil {
		return nil, fmt.Errorf("read catalog file: %w", err)
	}
	if len(entries) == 0 {
		return nil, fmt.Errorf("catalog file %s has no entries", path)
	}
	return NewCatalog(entries), nil
}

// PriceOf returns the unit price for an item name, case-insensitively.
func (c *Catalog) PriceOf(name string) (int64, error) {
	cents, ok := c.byName[strings.ToLower(strings.TrimSpace(name))]
	if !ok {
		return 0, fmt.Errorf("%w: %s", ErrUnknownItem, name)
	}
	return cents, nil
}

// Has reports whether the name is an exact (case-insensitive) catalog item.
func (c *Catalog) Has(name string) bool {
	_, ok := c.byName[strings.ToLower(strings.TrimSpace(name))]
	return ok
}

// Names returns all item names in insertion order.
func (c *Catalog) Names() []string {
	names := make([]string, len(c.entries))
	for i, e := range c.entries {
		names[i] = e.Name
	}
	return names
}

// Len returns the number of catalog entries.
func (c *Catalog) Len() int {
	return len(c.entries)
}

// The junior design store price list.
var defaultEntries = []CatalogEntry{
	{"Rulers", 100},
	{"Sharpies / markers (coloured variety)", 150},
	{"Popsicle sticks", 25},
	{"Wooden skewers", 25},
	{"Toothpicks", 10},
	{"Drinking straws", 15},
	{"String & twine", 50},
	{"Plastic bags / trash bags / cellophane bags", 20},
	{"Bubble wrap", 30},
	{"Newspaper / magazines", 10},
	{"Tarp / plastic tablecloths", 150},
	{"Aluminum foil (20cm x 30cm)", 40},
	{"Cling wrap / parchment paper (20x30cm)", 40},
	{"Cardboard sheets", 50},
	{"Construction paper (colorful)", 20},
	{"Shelf liner", 60},
	{"Foam sheets", 75},
	{"Binder clips / clothespins", 25},
	{"Rubber bands", 10},
	{"Twist ties", 10},
	{"Zip ties", 15},
	{"Pipe cleaners", 20},
	{"Paper clips", 10},
	{"Thumb tacks", 15},
	{"Foam packing material", 20},
	{"Cotton pads", 20},
	{"Sponge pieces", 50},
	{"Towels / old rags", 100},
	{"Plastic cups (small and regular size)", 20},
	{"Balloons", 15},
	{"Labels", 10},
	{"Ziplock bags", 20},
	{"Syringes", 50},
	{"Pasta shells", 10},
	{"Plastic cutlery", 15},
	{"Decorative tape", 75},
	{"Jute rolls 20x30cm", 100},
	{"Wrapping tissue", 30},
	{"Velcro strips", 50},
	{"Index cards / old greeting cards", 15},
}
