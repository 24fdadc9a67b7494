// Package countries provides the two reference lookups the cross-checker
// leans on: the country → valid-area-code table (counties.json) and a
// callsign → country resolver driven by longest-prefix matching. The
// counties table is a hard requirement of a run; callsign resolution is
// allowed to fail per contact and the engine degrades to denying credit.
package countries

import (
	"encoding/json"
	"fmt"
	"os"
	"sort"
	"strings"
)

// ErrUnknownCallsign is returned when no prefix in the table matches a
// callsign.
type ErrUnknownCallsign struct{ Call string }

func (e ErrUnknownCallsign) Error() string {
	return fmt.Sprintf("no country prefix matches callsign %s", e.Call)
}

// Counties maps a country name to the set of its valid area codes.
type Counties map[string]map[string]bool

// LoadCounties reads the counties reference table. The on-disk format is
// the classic counties.json shape: {"Country": ["AB", "CD", ...], ...}.
// A missing or malformed table is fatal to the run.
func LoadCounties(path string) (Counties, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading counties table: %w", err)
	}
	var raw map[string][]string
	if err := json.Unmarshal(data, &raw); err != nil {
		return nil, fmt.Errorf("parsing counties table %s: %w", path, err)
	}
	c := make(Counties, len(raw))
	for country, areas := range raw {
		set := make(map[string]bool, len(areas))
		for _, a := range areas {
			set[strings.ToUpper(a)] = true
		}
		c[country] = set
	}
	return c, nil
}

// ValidArea reports whether area is a valid code for country. Unknown
// countries have no valid areas.
func (c Counties) ValidArea(country, area string) bool {
	set, ok := c[country]
	if !ok {
		return false
	}
	return set[strings.ToUpper(area)]
}

// Resolver maps callsigns to country names by longest matching prefix.
type Resolver struct {
	prefixes map[string]string
	maxLen   int
}

// Default prefix allocations for the contest's usual entrants. A prefixes
// file extends or overrides these.
var defaultPrefixes = map[string]string{
	"ES":  "Estonia",
	"LY":  "Lithuania",
	"YL":  "Latvia",
	"OH":  "Finland",
	"OF":  "Finland",
	"OG":  "Finland",
	"OI":  "Finland",
	"SA":  "Sweden",
	"SB":  "Sweden",
	"SC":  "Sweden",
	"SD":  "Sweden",
	"SE":  "Sweden",
	"SF":  "Sweden",
	"SG":  "Sweden",
	"SH":  "Sweden",
	"SI":  "Sweden",
	"SJ":  "Sweden",
	"SK":  "Sweden",
	"SL":  "Sweden",
	"SM":  "Sweden",
	"7S":  "Sweden",
	"8S":  "Sweden",
	"LA":  "Norway",
	"LB":  "Norway",
	"LC":  "Norway",
	"LJ":  "Norway",
	"LN":  "Norway",
	"OZ":  "Denmark",
	"OU":  "Denmark",
	"OV":  "Denmark",
	"5P":  "Denmark",
	"5Q":  "Denmark",
	"OY":  "Faroe Islands",
	"OX":  "Greenland",
	"TF":  "Iceland",
	"JW":  "Svalbard",
	"JX":  "Jan Mayen",
	"OJ0": "Market Reef",
	"OH0": "Aland Islands",
}

// NewResolver builds a resolver from the default allocations.
func NewResolver() *Resolver {
	r := &Resolver{prefixes: make(map[string]string, len(defaultPrefixes))}
	for p, c := range defaultPrefixes {
		r.add(p, c)
	}
	return r
}

// LoadResolver builds a resolver from the defaults plus a prefixes file of
// the shape {"LY": "Lithuania", ...}. An empty path yields the defaults.
func LoadResolver(path string) (*Resolver, error) {
	r := NewResolver()
	if path == "" {
		return r, nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading prefixes table: %w", err)
	}
	var raw map[string]string
	if err := json.Unmarshal(data, &raw); err != nil {
		return nil, fmt.Errorf("parsing prefixes table %s: %w", path, err)
	}
	for p, c := range raw {
		r.add(p, c)
	}
	return r, nil
}

func (r *Resolver) add(prefix, country string) {
	prefix = strings.ToUpper(prefix)
	r.prefixes[prefix] = country
	if len(prefix) > r.maxLen {
		r.maxLen = len(prefix)
	}
}

// CountryOf resolves a callsign to its country by the longest matching
// prefix. Portable suffixes (LY2EN/P) are stripped before matching.
func (r *Resolver) CountryOf(call string) (string, error) {
	call = strings.ToUpper(strings.TrimSpace(call))
	if i := strings.IndexByte(call, '/'); i > 0 {
		call = call[:i]
	}
	if call == "" {
		return "", ErrUnknownCallsign{Call: call}
	}
	n := r.maxLen
	if n > len(call) {
		n = len(call)
	}
	for l := n; l > 0; l-- {
		if country, ok := r.prefixes[call[:l]]; ok {
			return country, nil
		}
	}
	return "", ErrUnknownCallsign{Call: call}
}

// Prefixes returns the known prefixes in sorted order, for diagnostics.
func (r *Resolver) Prefixes() []string {
	out := make([]string, 0, len(r.prefixes))
	for p := range r.prefixes {
		out = append(out, p)
	}
	sort.Strings(out)
	return out
}
