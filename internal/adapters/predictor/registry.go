package predictor

import (
	"context"
	"sync"
	"sync/atomic"

	"github.com/okian/talentscope/internal/domain/catalog"
	"github.com/okian/talentscope/internal/domain/scoring"
	"github.com/okian/talentscope/pkg/logger"
	"github.com/okian/talentscope/pkg/metrics"
)

// Reload results for metrics.
const (
	reloadSuccess = "success"
	reloadError   = "error"
)

// Option configures a Registry.
type Option func(*Registry)

// WithDir sets the model directory.
func WithDir(dir string) Option {
	return func(r *Registry) { r.dir = dir }
}

// WithVersion pins the version stamped on loaded sets.
func WithVersion(v string) Option {
	return func(r *Registry) { r.version = v }
}

// WithLogger sets the registry logger.
func WithLogger(l logger.Logger) Option {
	return func(r *Registry) {
		if l != nil {
			r.log = l
		}
	}
}

// Registry publishes the current predictor set. Readers never lock; a
// reload builds a new set and swaps the pointer.
type Registry struct {
	catalog *catalog.Catalog
	dir     string
	version string
	log     logger.Logger

	current atomic.Pointer[scoring.PredictorSet]
	// reloadMu serializes loads so an older scan never overwrites a newer one.
	reloadMu sync.Mutex
}

// NewRegistry creates a Registry holding an empty set.
func NewRegistry(c *catalog.Catalog, opts ...Option) *Registry {
	r := &Registry{catalog: c, log: logger.Nop()}
	for _, opt := range opts {
		opt(r)
	}
	r.current.Store(scoring.NewPredictorSet(r.version, nil))
	return r
}

// Current returns the published set.
func (r *Registry) Current() *scoring.PredictorSet {
	return r.current.Load()
}

// Dir returns the watched model directory.
func (r *Registry) Dir() string { return r.dir }

// Publish replaces the current set.
func (r *Registry) Publish(set *scoring.PredictorSet) {
	if set == nil {
		set = scoring.NewPredictorSet(r.version, nil)
	}
	r.current.Store(set)
	metrics.UpdatePredictorsLoaded(set.Len())
}

// Load scans the model directory and publishes the result. On error the
// previous set stays active.
func (r *Registry) Load(ctx context.Context) error {
	r.reloadMu.Lock()
	defer r.reloadMu.Unlock()

	set, skipped, err := LoadDir(r.catalog, r.dir, r.version)
	if err != nil {
		metrics.RecordPredictorReload(reloadError)
		r.log.Error(ctx, "predictor load failed", logger.String("dir", r.dir), logger.Error(err))
		return err
	}
	for _, sk := range skipped {
		if sk.Invalid() {
			r.log.Warn(ctx, "skipping invalid model file", logger.String("file", sk.File), logger.Error(sk.Err))
			continue
		}
		r.log.Warn(ctx, "skipping model for unknown domain", logger.String("file", sk.File))
	}

	r.Publish(set)
	metrics.RecordPredictorReload(reloadSuccess)
	r.log.Info(ctx, "predictors loaded",
		logger.String("dir", r.dir),
		logger.String("version", set.Version()),
		logger.Int("count", set.Len()))
	return nil
}
