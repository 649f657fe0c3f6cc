package repository

import (
	"context"
	"fmt"
	"sort"
	"sync"
	"time"

	"github.com/okian/talentscope/internal/domain/catalog"
	"github.com/okian/talentscope/internal/domain/model"
	"github.com/okian/talentscope/internal/domain/passion"
	"github.com/okian/talentscope/internal/domain/types"
	"github.com/okian/talentscope/pkg/metrics"
)

const (
	defaultDifficulty       = "beginner"
	defaultSessionMinutes   = 30
	defaultInsightRetention = 100
)

type childRecord struct {
	analysis    *passion.Analysis
	insights    []model.PassionInsight
	assessments []model.TalentAssessment
}

// MemoryStore is an in-memory Store. All methods are safe for concurrent use.
type MemoryStore struct {
	catalog      *catalog.Catalog
	insightLimit int
	historyLimit int

	mu       sync.RWMutex
	children map[string]*childRecord
	// domainOwner maps an active domain record id to its child.
	domainOwner map[string]string
}

// NewMemoryStore constructs an empty store.
func NewMemoryStore(c *catalog.Catalog, opts ...Option) *MemoryStore {
	s := &MemoryStore{
		catalog:      c,
		insightLimit: defaultInsightRetention,
		children:     make(map[string]*childRecord),
		domainOwner:  make(map[string]string),
	}
	for _, opt := range opts {
		opt(s)
	}
	metrics.UpdateStoredChildren(0)
	return s
}

func (s *MemoryStore) record(childID string) *childRecord {
	r, ok := s.children[childID]
	if !ok {
		r = &childRecord{}
		s.children[childID] = r
		metrics.UpdateStoredChildren(len(s.children))
	}
	return r
}

// SaveAnalysis implements Store.SaveAnalysis.
func (s *MemoryStore) SaveAnalysis(_ context.Context, a passion.Analysis) error { //nolint:gocritic // hugeParam: stored by value
	if a.ChildID == "" {
		return ErrMissingChildID
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	r := s.record(a.ChildID)

	verified := make(map[catalog.ID]bool)
	if r.analysis != nil {
		for _, d := range r.analysis.Domains {
			verified[d.Domain] = d.IsVerified
			delete(s.domainOwner, d.ID)
		}
	}

	stored := a
	stored.Domains = make([]model.PassionDomain, len(a.Domains))
	copy(stored.Domains, a.Domains)
	for i := range stored.Domains {
		d := &stored.Domains[i]
		if verified[d.Domain] {
			d.IsVerified = true
		}
		s.domainOwner[d.ID] = a.ChildID
	}
	stored.Insights = append([]model.PassionInsight(nil), a.Insights...)
	r.analysis = &stored

	// Newest first.
	insights := make([]model.PassionInsight, 0, len(a.Insights)+len(r.insights))
	for i := len(a.Insights) - 1; i >= 0; i-- {
		insights = append(insights, a.Insights[i])
	}
	insights = append(insights, r.insights...)
	if s.insightLimit > 0 && len(insights) > s.insightLimit {
		insights = insights[:s.insightLimit]
	}
	r.insights = insights

	return nil
}

func (s *MemoryStore) analysis(childID string) (*passion.Analysis, error) {
	r, ok := s.children[childID]
	if !ok || r.analysis == nil {
		return nil, fmt.Errorf("analysis for %q: %w", childID, ErrNotFound)
	}
	return r.analysis, nil
}

// Analysis implements Store.Analysis.
func (s *MemoryStore) Analysis(_ context.Context, childID string) (passion.Analysis, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	a, err := s.analysis(childID)
	if err != nil {
		return passion.Analysis{}, err
	}
	out := *a
	out.Domains = append([]model.PassionDomain(nil), a.Domains...)
	return out, nil
}

// Domains implements Store.Domains.
func (s *MemoryStore) Domains(_ context.Context, childID string) ([]model.PassionDomain, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	a, err := s.analysis(childID)
	if err != nil {
		return nil, err
	}
	out := make([]model.PassionDomain, 0, len(a.Domains))
	for _, d := range a.Domains {
		if d.IsActive {
			out = append(out, d)
		}
	}
	return out, nil
}

// Insights implements Store.Insights.
func (s *MemoryStore) Insights(_ context.Context, childID string) ([]model.PassionInsight, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	r, ok := s.children[childID]
	if !ok {
		return nil, fmt.Errorf("insights for %q: %w", childID, ErrNotFound)
	}
	return append([]model.PassionInsight(nil), r.insights...), nil
}

// Verify implements Store.Verify.
func (s *MemoryStore) Verify(_ context.Context, domainID string, verified bool) (model.PassionDomain, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	childID, ok := s.domainOwner[domainID]
	if !ok {
		return model.PassionDomain{}, fmt.Errorf("verify %q: %w", domainID, ErrDomainNotFound)
	}
	a := s.children[childID].analysis
	for i := range a.Domains {
		if a.Domains[i].ID == domainID {
			a.Domains[i].IsVerified = verified
			return a.Domains[i], nil
		}
	}
	return model.PassionDomain{}, fmt.Errorf("verify %q: %w", domainID, ErrDomainNotFound)
}

// Summary implements Store.Summary.
func (s *MemoryStore) Summary(_ context.Context, childID string) (Summary, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	r, ok := s.children[childID]
	if !ok {
		return Summary{}, fmt.Errorf("summary for %q: %w", childID, ErrNotFound)
	}

	sum := Summary{ChildID: childID, TopDomains: []types.Entry{}}

	n := len(r.insights)
	if n > RecentInsightsLimit {
		n = RecentInsightsLimit
	}
	sum.RecentInsights = append([]model.PassionInsight{}, r.insights[:n]...)

	if r.analysis == nil {
		return sum, nil
	}

	var (
		ids    []catalog.ID
		scores = make(map[catalog.ID]float64)
		last   time.Time
	)
	for _, d := range r.analysis.Domains {
		if !d.IsActive {
			continue
		}
		sum.TotalDomainsDetected++
		if d.ConfidenceScore > HighConfidenceThreshold {
			sum.HighConfidenceDomains++
		}
		if d.IsVerified {
			sum.VerifiedDomains++
		}
		ids = append(ids, d.Domain)
		scores[d.Domain] = d.ConfidenceScore
		if d.DetectedAt.After(last) {
			last = d.DetectedAt
		}
	}

	top := types.Rank(ids, scores)
	if len(top) > TopDomainsLimit {
		top = top[:TopDomainsLimit]
	}
	sum.TopDomains = top
	if !last.IsZero() {
		sum.LastAnalysis = &last
	}
	return sum, nil
}

// Recommendations implements Store.Recommendations.
func (s *MemoryStore) Recommendations(_ context.Context, childID string) ([]Recommendation, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	a, err := s.analysis(childID)
	if err != nil {
		return nil, err
	}

	out := []Recommendation{}
	for _, d := range a.Domains {
		if !d.IsActive || d.ConfidenceScore <= RecommendThreshold {
			continue
		}
		name := s.catalog.Name(d.Domain)
		out = append(out, Recommendation{
			Domain:            d.Domain,
			Confidence:        d.ConfidenceScore,
			Activities:        append([]string{}, d.RecommendedActivities...),
			DifficultyLevel:   defaultDifficulty,
			EstimatedDuration: defaultSessionMinutes,
			Description:       fmt.Sprintf("Activities to explore %s interests", name),
			WhyRecommended:    fmt.Sprintf("Based on strong patterns in %s activities", name),
		})
	}
	sort.SliceStable(out, func(i, j int) bool { return out[i].Confidence > out[j].Confidence })
	return out, nil
}

// SaveAssessment implements Store.SaveAssessment.
func (s *MemoryStore) SaveAssessment(_ context.Context, a model.TalentAssessment) error { //nolint:gocritic // hugeParam: stored by value
	if a.ChildID == "" {
		return ErrMissingChildID
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	r := s.record(a.ChildID)
	history := make([]model.TalentAssessment, 0, len(r.assessments)+1)
	history = append(history, a)
	history = append(history, r.assessments...)
	if s.historyLimit > 0 && len(history) > s.historyLimit {
		history = history[:s.historyLimit]
	}
	r.assessments = history
	return nil
}

// Assessments implements Store.Assessments.
func (s *MemoryStore) Assessments(_ context.Context, childID string) ([]model.TalentAssessment, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	r, ok := s.children[childID]
	if !ok || len(r.assessments) == 0 {
		return nil, fmt.Errorf("assessments for %q: %w", childID, ErrNotFound)
	}
	return append([]model.TalentAssessment(nil), r.assessments...), nil
}

// Count implements Store.Count.
func (s *MemoryStore) Count(context.Context) int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.children)
}
