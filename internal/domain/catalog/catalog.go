// Package catalog holds the read-only table of talent domains every scoring
// and recommendation step reads from.
package catalog

import (
	"fmt"
	"strings"
)

// ID identifies a talent domain.
type ID string

// Canonical domain identifiers.
const (
	ArtisticCreativity    ID = "artistic_creativity"
	MusicalRhythm         ID = "musical_rhythm"
	ScientificDiscovery   ID = "scientific_discovery"
	SportsMovement        ID = "sports_movement"
	SocialLeadership      ID = "social_leadership"
	LanguageCommunication ID = "language_communication"
	LogicalMathematics    ID = "logical_mathematics"
	TechnologyInnovation  ID = "technology_innovation"
)

// Domain describes a single talent domain.
type Domain struct {
	ID          ID
	Name        string
	Description string
	// Keywords are matched against game categories and free-text interests.
	Keywords   []string
	Indicators []string
	// Activities are ordered by relevance; TopActivities takes a prefix.
	Activities []string
	Careers    []string
}

// TopActivities returns up to n activities in catalog order.
func (d Domain) TopActivities(n int) []string {
	if n <= 0 {
		return nil
	}
	if n > len(d.Activities) {
		n = len(d.Activities)
	}
	out := make([]string, n)
	copy(out, d.Activities[:n])
	return out
}

// MatchesKeyword reports whether text contains any of the domain keywords,
// case-insensitively.
func (d Domain) MatchesKeyword(text string) bool {
	lower := strings.ToLower(text)
	for _, kw := range d.Keywords {
		if strings.Contains(lower, kw) {
			return true
		}
	}
	return false
}

// MatchesVocabulary reports whether text relates to the domain's activity or
// indicator vocabulary. Either the text names one of the domain keywords or
// an activity/indicator mentions the text.
func (d Domain) MatchesVocabulary(text string) bool {
	lower := strings.ToLower(strings.TrimSpace(text))
	if lower == "" {
		return false
	}
	if d.MatchesKeyword(lower) {
		return true
	}
	for _, group := range [][]string{d.Activities, d.Indicators} {
		for _, entry := range group {
			if strings.Contains(strings.ToLower(entry), lower) {
				return true
			}
		}
	}
	return false
}

// Catalog is an immutable ordered set of domains. The zero value is empty;
// construct with New or Default.
type Catalog struct {
	order []ID
	byID  map[ID]Domain
}

// New validates the domains and builds a catalog. Order is preserved and is
// the canonical iteration order for scoring and tie-breaking.
func New(domains ...Domain) (*Catalog, error) {
	if len(domains) == 0 {
		return nil, fmt.Errorf("%w: no domains", ErrInvalidCatalog)
	}
	c := &Catalog{
		order: make([]ID, 0, len(domains)),
		byID:  make(map[ID]Domain, len(domains)),
	}
	for _, d := range domains {
		if d.ID == "" {
			return nil, fmt.Errorf("%w: empty domain id", ErrInvalidCatalog)
		}
		if _, dup := c.byID[d.ID]; dup {
			return nil, fmt.Errorf("%w: duplicate domain %q", ErrInvalidCatalog, d.ID)
		}
		if len(d.Keywords) == 0 {
			return nil, fmt.Errorf("%w: domain %q has no keywords", ErrInvalidCatalog, d.ID)
		}
		c.order = append(c.order, d.ID)
		c.byID[d.ID] = normalize(d)
	}
	return c, nil
}

// normalize deep-copies slices and lowercases keywords so callers cannot
// mutate the catalog through the values they passed in.
func normalize(d Domain) Domain {
	kws := make([]string, len(d.Keywords))
	for i, kw := range d.Keywords {
		kws[i] = strings.ToLower(kw)
	}
	d.Keywords = kws
	d.Indicators = append([]string(nil), d.Indicators...)
	d.Activities = append([]string(nil), d.Activities...)
	d.Careers = append([]string(nil), d.Careers...)
	return d
}

// IDs returns domain identifiers in canonical order.
func (c *Catalog) IDs() []ID {
	out := make([]ID, len(c.order))
	copy(out, c.order)
	return out
}

// Domains returns every domain in canonical order.
func (c *Catalog) Domains() []Domain {
	out := make([]Domain, 0, len(c.order))
	for _, id := range c.order {
		out = append(out, c.Get(id))
	}
	return out
}

// Len returns the number of domains.
func (c *Catalog) Len() int { return len(c.order) }

// Lookup returns the domain for id and whether it exists.
func (c *Catalog) Lookup(id ID) (Domain, bool) {
	d, ok := c.byID[id]
	if !ok {
		return Domain{}, false
	}
	return normalize(d), true
}

// Get returns the domain for id or the zero Domain.
func (c *Catalog) Get(id ID) Domain {
	d, _ := c.Lookup(id)
	return d
}

// Has reports whether id is a catalog domain.
func (c *Catalog) Has(id ID) bool {
	_, ok := c.byID[id]
	return ok
}

// Name returns the display name for id, falling back to the raw id.
func (c *Catalog) Name(id ID) string {
	if d, ok := c.byID[id]; ok && d.Name != "" {
		return d.Name
	}
	return string(id)
}
