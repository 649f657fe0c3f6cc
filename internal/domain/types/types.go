// Package types contains common types used across the application
package types

import (
	"sort"

	"github.com/okian/talentscope/internal/domain/catalog"
)

// Entry represents a ranked domain score
type Entry struct {
	Rank   int        `json:"rank" yaml:"rank"`
	Domain catalog.ID `json:"domain" yaml:"domain"`
	Score  float64    `json:"score" yaml:"score"`
}

// Rank orders scores descending. Ties keep the order of ids, so passing the
// catalog order makes ranking deterministic. Ids missing from scores rank
// with 0. Ranks start at 1.
func Rank(ids []catalog.ID, scores map[catalog.ID]float64) []Entry {
	entries := make([]Entry, len(ids))
	for i, id := range ids {
		entries[i] = Entry{Domain: id, Score: scores[id]}
	}
	sort.SliceStable(entries, func(i, j int) bool {
		return entries[i].Score > entries[j].Score
	})
	for i := range entries {
		entries[i].Rank = i + 1
	}
	return entries
}
