package repository

// Option applies a configuration option to the MemoryStore.
type Option func(*MemoryStore)

// WithInsightLimit caps how many insights are retained per child, newest
// kept. Zero keeps all of them.
func WithInsightLimit(n int) Option {
	return func(s *MemoryStore) {
		if n >= 0 {
			s.insightLimit = n
		}
	}
}

// WithHistoryLimit caps how many talent assessments are retained per child,
// newest kept. Zero keeps all of them.
func WithHistoryLimit(n int) Option {
	return func(s *MemoryStore) {
		if n >= 0 {
			s.historyLimit = n
		}
	}
}
