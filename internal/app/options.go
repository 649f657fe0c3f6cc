package service

import (
	"time"

	"github.com/okian/talentscope/internal/domain/catalog"
	"github.com/okian/talentscope/internal/domain/scoring"
	"github.com/okian/talentscope/pkg/logger"
)

// Option applies a configuration option to the Service.
type Option func(*Service)

// WithCatalog replaces the default domain catalog.
func WithCatalog(c *catalog.Catalog) Option {
	return func(s *Service) {
		if c != nil {
			s.catalog = c
		}
	}
}

// WithWeights sets the hybrid blend weights. They are validated by Start.
func WithWeights(w scoring.Weights) Option {
	return func(s *Service) {
		s.weights = w
	}
}

// WithModelDir sets the directory predictor model files are loaded from.
func WithModelDir(dir string) Option {
	return func(s *Service) {
		s.modelDir = dir
	}
}

// WithModelVersion pins the version reported for loaded predictors.
func WithModelVersion(v string) Option {
	return func(s *Service) {
		s.modelVersion = v
	}
}

// WithWatchModels enables hot reload of the model directory.
func WithWatchModels(watch bool) Option {
	return func(s *Service) {
		s.watchModels = watch
	}
}

// WithReloadDebounce sets how long the model watcher waits for a burst of
// file events to settle.
func WithReloadDebounce(d time.Duration) Option {
	return func(s *Service) {
		if d > 0 {
			s.reloadDebounce = d
		}
	}
}

// WithMaxRecommendations caps the next activities of a session analysis.
func WithMaxRecommendations(n int) Option {
	return func(s *Service) {
		if n > 0 {
			s.maxRecommendations = n
		}
	}
}

// WithResponseWindow sets how many of the most recent responses an
// assessment reads.
func WithResponseWindow(n int) Option {
	return func(s *Service) {
		if n > 0 {
			s.responseWindow = n
		}
	}
}

// WithWorkerCount sets the number of worker goroutines.
func WithWorkerCount(count int) Option {
	return func(s *Service) {
		if count > 0 {
			s.workerCount = count
		}
	}
}

// WithQueueSize sets the maximum size of the job queue.
func WithQueueSize(size int) Option {
	return func(s *Service) {
		if size > 0 {
			s.queueSize = size
		}
	}
}

// WithDedupeSize sets the size of the deduplication cache.
func WithDedupeSize(size int) Option {
	return func(s *Service) {
		if size > 0 {
			s.dedupeSize = size
		}
	}
}

// WithLogger sets a custom logger for the service.
func WithLogger(l logger.Logger) Option {
	return func(s *Service) {
		if l != nil {
			s.logger = l
		}
	}
}

// WithClock sets the time source used for analysis timestamps and ages.
func WithClock(now func() time.Time) Option {
	return func(s *Service) {
		if now != nil {
			s.now = now
		}
	}
}
