// Package scoring turns a feature summary into per-domain scores. Rule and
// model scores are computed independently and blended by Hybrid.
package scoring

import (
	"math"

	"github.com/okian/talentscope/internal/domain/catalog"
)

// Set maps every catalog domain to a score in [0,1].
type Set map[catalog.ID]float64

// Get returns the score for id, or 0 when absent.
func (s Set) Get(id catalog.ID) float64 { return s[id] }

func newSet(c *catalog.Catalog) Set {
	s := make(Set, c.Len())
	for _, id := range c.IDs() {
		s[id] = 0
	}
	return s
}

// clamp bounds v to [0,1]. NaN maps to 0.
func clamp(v float64) float64 {
	switch {
	case math.IsNaN(v), v < 0:
		return 0
	case v > 1:
		return 1
	default:
		return v
	}
}
