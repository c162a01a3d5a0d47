// Package palette holds bead color catalogs and resolves raw colors to
// their nearest catalog entry. Catalogs ship embedded as JSON and are
// parsed lazily; additional palettes (for example extracted from a source
// image) can be registered at runtime under their own id.
package palette

import (
	"embed"
	"encoding/json"
	"fmt"
	"sort"
	"strconv"
	"strings"
	"sync"
)

//go:embed colordata/*.json
var catalogFS embed.FS

// Entry is one bead color of a catalog: the short code printed on the
// chart, a human-readable name, and the reference display color. Entry
// equality is by Code.
type Entry struct {
	Code    string
	Name    string
	R, G, B uint8
}

// Palette is an ordered bead color catalog. Entry order is the order of
// the source data and is meaningful: the resolver breaks distance ties
// toward the earliest entry.
type Palette struct {
	ID      string
	Name    string
	Entries []Entry
}

// catalogJSON is the on-disk shape of an embedded catalog.
type catalogJSON struct {
	ID     string `json:"id"`
	Name   string `json:"name"`
	Colors []struct {
		Code string `json:"code"`
		Name string `json:"name"`
		Hex  string `json:"hex"`
	} `json:"colors"`
}

var (
	registryMu sync.RWMutex
	registry   = make(map[string]*Palette)
)

// Load returns the palette registered under id, parsing an embedded
// catalog on first use. Parsed palettes are cached, so repeated loads
// are cheap.
func Load(id string) (*Palette, error) {
	registryMu.RLock()
	p, ok := registry[id]
	registryMu.RUnlock()
	if ok {
		return p, nil
	}

	data, err := catalogFS.ReadFile("colordata/" + id + ".json")
	if err != nil {
		return nil, fmt.Errorf("unknown palette %q: %w", id, err)
	}
	p, err = parseCatalog(data)
	if err != nil {
		return nil, fmt.Errorf("palette %q: %w", id, err)
	}
	if p.ID != id {
		return nil, fmt.Errorf("palette %q: catalog declares id %q", id, p.ID)
	}

	registryMu.Lock()
	// Another goroutine may have parsed the same catalog; keep the first.
	if existing, ok := registry[id]; ok {
		p = existing
	} else {
		registry[id] = p
	}
	registryMu.Unlock()
	return p, nil
}

// Register adds a palette under its ID, replacing any palette previously
// registered under the same id. Used for runtime palettes such as the
// adaptive extraction results.
func Register(p *Palette) error {
	if err := validate(p); err != nil {
		return err
	}
	registryMu.Lock()
	registry[p.ID] = p
	registryMu.Unlock()
	return nil
}

// IDs returns the ids of every loadable palette, embedded and registered,
// sorted lexically.
func IDs() []string {
	seen := make(map[string]bool)

	entries, _ := catalogFS.ReadDir("colordata")
	for _, e := range entries {
		name := e.Name()
		if strings.HasSuffix(name, ".json") {
			seen[strings.TrimSuffix(name, ".json")] = true
		}
	}

	registryMu.RLock()
	for id := range registry {
		seen[id] = true
	}
	registryMu.RUnlock()

	ids := make([]string, 0, len(seen))
	for id := range seen {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	return ids
}

func parseCatalog(data []byte) (*Palette, error) {
	var raw catalogJSON
	if err := json.Unmarshal(data, &raw); err != nil {
		return nil, fmt.Errorf("error unmarshalling catalog: %w", err)
	}

	p := &Palette{
		ID:      raw.ID,
		Name:    raw.Name,
		Entries: make([]Entry, 0, len(raw.Colors)),
	}
	for _, c := range raw.Colors {
		r, g, b, err := parseHexColor(c.Hex)
		if err != nil {
			return nil, fmt.Errorf("color %q: %w", c.Code, err)
		}
		p.Entries = append(p.Entries, Entry{
			Code: c.Code,
			Name: c.Name,
			R:    r,
			G:    g,
			B:    b,
		})
	}
	if err := validate(p); err != nil {
		return nil, err
	}
	return p, nil
}

func validate(p *Palette) error {
	if p.ID == "" {
		return fmt.Errorf("palette has no id")
	}
	if len(p.Entries) == 0 {
		return fmt.Errorf("palette %q has no colors", p.ID)
	}
	seen := make(map[string]bool, len(p.Entries))
	for _, e := range p.Entries {
		if e.Code == "" {
			return fmt.Errorf("palette %q has an entry with an empty code", p.ID)
		}
		if seen[e.Code] {
			return fmt.Errorf("palette %q has duplicate code %q", p.ID, e.Code)
		}
		seen[e.Code] = true
	}
	return nil
}

// parseHexColor parses a "#RRGGBB" color string.
func parseHexColor(hex string) (r, g, b uint8, err error) {
	hex = strings.TrimPrefix(hex, "#")
	if len(hex) != 6 {
		return 0, 0, 0, fmt.Errorf("invalid hex color %q", hex)
	}
	val, err := strconv.ParseUint(hex, 16, 32)
	if err != nil {
		return 0, 0, 0, fmt.Errorf("error parsing color %q: %w", hex, err)
	}
	return uint8(val >> 16), uint8(val >> 8), uint8(val), nil
}
