// Package service wires the analysis engine to its supporting infrastructure:
// the predictor registry, the job queue and worker pool, duplicate
// suppression, and the result store.
package service

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"runtime"
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/okian/talentscope/internal/adapters/batch"
	jobqueue "github.com/okian/talentscope/internal/adapters/mq/queue"
	workerpool "github.com/okian/talentscope/internal/adapters/mq/worker"
	"github.com/okian/talentscope/internal/adapters/predictor"
	"github.com/okian/talentscope/internal/adapters/repository"
	"github.com/okian/talentscope/internal/domain/catalog"
	"github.com/okian/talentscope/internal/domain/dedupe"
	"github.com/okian/talentscope/internal/domain/model"
	"github.com/okian/talentscope/internal/domain/passion"
	"github.com/okian/talentscope/internal/domain/scoring"
	"github.com/okian/talentscope/internal/domain/talent"
	"github.com/okian/talentscope/pkg/logger"
	"github.com/okian/talentscope/pkg/metrics"
)

// Defaults.
const (
	DefaultResponseWindow     = 20
	DefaultQueueSize          = 1024
	DefaultDedupeSize         = 50000
	DefaultMaxRecommendations = 5

	enqueueRetryDelay = 5 * time.Millisecond
	shutdownTimeout   = 30 * time.Second
)

// ErrUnknownJobKind is returned for jobs whose kind has no pipeline.
var ErrUnknownJobKind = errors.New("unknown job kind")

// Stats is a point-in-time view of the service.
type Stats struct {
	Started          bool   `json:"started"`
	Workers          int    `json:"workers"`
	QueueLength      int    `json:"queue_length"`
	QueueCapacity    int    `json:"queue_capacity"`
	DedupeSize       int64  `json:"dedupe_size"`
	StoredChildren   int    `json:"stored_children"`
	PredictorsLoaded int    `json:"predictors_loaded"`
	ModelVersion     string `json:"model_version,omitempty"`
}

type batchRun struct {
	wg      sync.WaitGroup
	mu      sync.Mutex
	results []batch.Result
	slots   map[string]int
}

func (r *batchRun) set(j model.Job, res batch.Result) { //nolint:gocritic // hugeParam: Job is passed by value for channel semantics
	r.mu.Lock()
	defer r.mu.Unlock()
	if i, ok := r.slots[j.ID]; ok {
		r.results[i] = res
	}
}

// Service runs session and response analyses synchronously or in batches.
type Service struct {
	mu sync.RWMutex

	// Configuration
	catalog            *catalog.Catalog
	weights            scoring.Weights
	modelDir           string
	modelVersion       string
	watchModels        bool
	reloadDebounce     time.Duration
	maxRecommendations int
	responseWindow     int
	workerCount        int
	queueSize          int
	dedupeSize         int
	now                func() time.Time

	// Core components
	registry *predictor.Registry
	watcher  *predictor.Watcher
	passion  *passion.Analyzer
	talent   *talent.Analyzer
	store    repository.Store
	deduper  dedupe.Deduper
	queue    *jobqueue.InMemoryQueue
	pool     *workerpool.Pool

	batches sync.Map // batch id -> *batchRun

	// State
	started bool
	cancel  context.CancelFunc

	logger logger.Logger
}

// New constructs a new Service with default configuration.
func New(opts ...Option) *Service {
	s := &Service{
		catalog:            catalog.Default(),
		weights:            scoring.DefaultWeights(),
		maxRecommendations: DefaultMaxRecommendations,
		responseWindow:     DefaultResponseWindow,
		workerCount:        runtime.NumCPU(),
		queueSize:          DefaultQueueSize,
		dedupeSize:         DefaultDedupeSize,
		now:                time.Now,
	}

	for _, opt := range opts {
		opt(s)
	}

	return s
}

// Start builds the engine, loads predictors and starts the worker pool.
func (s *Service) Start(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.started {
		return nil
	}
	if s.logger == nil {
		s.logger = logger.Nop()
	}

	s.logger.Info(ctx, "starting talentscope service...")

	s.registry = predictor.NewRegistry(s.catalog,
		predictor.WithDir(s.modelDir),
		predictor.WithVersion(s.modelVersion),
		predictor.WithLogger(s.logger.Named("predictors")),
	)
	if s.modelDir != "" {
		if err := s.registry.Load(ctx); err != nil {
			return fmt.Errorf("%w: %w", ErrStart, err)
		}
	}

	hybrid, err := scoring.NewHybrid(s.catalog,
		scoring.WithWeights(s.weights),
		scoring.WithPredictors(s.registry),
		scoring.WithLogger(s.logger.Named("scoring")),
	)
	if err != nil {
		return fmt.Errorf("%w: %w", ErrStart, err)
	}

	s.passion = passion.NewAnalyzer(s.catalog, hybrid,
		passion.WithClock(s.now),
		passion.WithLogger(s.logger.Named("passion")),
		passion.WithModelVersion(s.modelVersion),
		passion.WithMaxRecommendations(s.maxRecommendations),
	)
	s.talent = talent.NewAnalyzer(s.catalog,
		talent.WithClock(s.now),
		talent.WithLogger(s.logger.Named("talent")),
	)
	s.store = repository.NewMemoryStore(s.catalog)
	s.deduper = dedupe.NewInMemoryDeduper(dedupe.WithMaxSize(s.dedupeSize))
	s.queue = jobqueue.NewInMemoryQueue(jobqueue.WithCapacity(s.queueSize))

	runCtx, cancel := context.WithCancel(context.WithoutCancel(ctx))
	s.cancel = cancel

	if s.modelDir != "" && s.watchModels {
		watcherOpts := []predictor.WatcherOption{predictor.WithWatcherLogger(s.logger.Named("watcher"))}
		if s.reloadDebounce > 0 {
			watcherOpts = append(watcherOpts, predictor.WithDebounce(s.reloadDebounce))
		}
		s.watcher = predictor.NewWatcher(s.registry, watcherOpts...)
		if err := s.watcher.Start(runCtx); err != nil {
			cancel()
			return fmt.Errorf("%w: watch models: %w", ErrStart, err)
		}
	}

	s.pool = workerpool.NewPool(s.workerCount, s.queue,
		workerpool.ProcessorFunc(s.process),
		workerpool.WithLogger(s.logger.Named("worker")),
	)
	s.pool.Start(runCtx)

	s.started = true
	s.logger.Info(ctx, "talentscope service started",
		logger.Int("workers", s.pool.Size()),
		logger.Int("queueSize", s.queueSize),
		logger.Int("dedupeSize", s.dedupeSize),
		logger.Int("predictors", s.registry.Current().Len()),
	)

	return nil
}

// Stop drains queued jobs and shuts the service down.
func (s *Service) Stop() {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.started {
		return
	}

	ctx := context.Background()
	s.logger.Info(ctx, "stopping talentscope service...")

	if s.watcher != nil {
		s.watcher.Stop()
		s.watcher = nil
	}

	shutdownCtx, cancel := context.WithTimeout(ctx, shutdownTimeout)
	defer cancel()
	if err := s.pool.Shutdown(shutdownCtx); err != nil {
		s.logger.Warn(ctx, "worker pool shutdown", logger.Error(err))
	}

	s.cancel()
	s.started = false
	s.logger.Info(ctx, "talentscope service stopped")
}

func (s *Service) ready() error {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if !s.started {
		return ErrNotStarted
	}
	return nil
}

// AnalyzeSessions detects passion domains for a child and stores the result.
func (s *Service) AnalyzeSessions(ctx context.Context, childID string, sessions []model.Session, games []model.Game, interests []string) (passion.Analysis, error) {
	if err := s.ready(); err != nil {
		return passion.Analysis{}, err
	}
	return s.analyzeSessions(ctx, childID, sessions, games, interests)
}

// analyzeSessions skips the started check so workers can drain the queue
// while Stop holds the lock.
func (s *Service) analyzeSessions(ctx context.Context, childID string, sessions []model.Session, games []model.Game, interests []string) (passion.Analysis, error) {
	start := time.Now()
	a := s.passion.AnalyzeSessions(ctx, childID, sessions, games, interests)
	metrics.RecordAnalysisLatency(metrics.PipelineSessions, float64(time.Since(start).Milliseconds()))
	metrics.RecordAnalysisProcessed(metrics.PipelineSessions)

	if childID == "" && len(sessions) == 0 {
		s.logger.Debug(ctx, "empty analysis without child id not stored")
		return a, nil
	}
	if err := s.store.SaveAnalysis(ctx, a); err != nil {
		return a, fmt.Errorf("save analysis for %q: %w", childID, err)
	}
	return a, nil
}

// AnalyzeResponses assesses the most recent responses of a child and stores
// the result.
func (s *Service) AnalyzeResponses(ctx context.Context, responses []model.QuestionResponse, profile model.ChildProfile) (model.TalentAssessment, error) {
	if err := s.ready(); err != nil {
		return model.TalentAssessment{}, err
	}
	return s.analyzeResponses(ctx, responses, profile)
}

func (s *Service) analyzeResponses(ctx context.Context, responses []model.QuestionResponse, profile model.ChildProfile) (model.TalentAssessment, error) {
	start := time.Now()
	a := s.talent.AnalyzeResponses(ctx, RecentResponses(responses, s.responseWindow), profile)
	metrics.RecordAnalysisLatency(metrics.PipelineResponses, float64(time.Since(start).Milliseconds()))
	metrics.RecordAnalysisProcessed(metrics.PipelineResponses)

	if a.ChildID == "" && len(responses) == 0 {
		s.logger.Debug(ctx, "default assessment without child id not stored")
		return a, nil
	}
	if err := s.store.SaveAssessment(ctx, a); err != nil {
		return a, fmt.Errorf("save assessment for %q: %w", a.ChildID, err)
	}
	return a, nil
}

// RecentResponses returns the last n responses by creation time, oldest
// first. The input is not modified.
func RecentResponses(responses []model.QuestionResponse, n int) []model.QuestionResponse {
	out := append([]model.QuestionResponse(nil), responses...)
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].CreatedAt.Before(out[j].CreatedAt)
	})
	if n > 0 && len(out) > n {
		out = out[len(out)-n:]
	}
	return out
}

// RunBatch fans a batch out to the worker pool, one job per child and
// pipeline, and waits for every job. Jobs whose content was already
// processed are reported as duplicates and skipped.
func (s *Service) RunBatch(ctx context.Context, b *batch.Batch) (*batch.Report, error) {
	if err := s.ready(); err != nil {
		return nil, err
	}
	if err := ctx.Err(); err != nil {
		return nil, fmt.Errorf("run batch: %w", err)
	}
	if b == nil {
		b = &batch.Batch{}
	}

	batchID := uuid.NewString()
	report := &batch.Report{
		BatchID:      batchID,
		ModelVersion: s.registry.Current().Version(),
		StartedAt:    s.now(),
	}
	started := time.Now()

	jobs, err := Jobs(batchID, b)
	if err != nil {
		return nil, err
	}

	run := &batchRun{
		results: make([]batch.Result, len(jobs)),
		slots:   make(map[string]int, len(jobs)),
	}
	for i, j := range jobs {
		run.slots[j.ID] = i
		run.results[i] = batch.Result{JobID: j.ID, ChildID: j.ChildID, Kind: j.Kind}
	}
	s.batches.Store(batchID, run)

	s.logger.Info(ctx, "running batch",
		logger.String("batch_id", batchID),
		logger.Int("children", len(b.Children)),
		logger.Int("jobs", len(jobs)))

	for i := range jobs {
		j := jobs[i]
		if s.deduper.SeenAndRecord(ctx, j.Key) {
			metrics.RecordDuplicateJob()
			s.logger.Debug(ctx, "duplicate job detected, skipping",
				logger.String("job_id", j.ID),
				logger.String("child_id", j.ChildID))
			run.set(j, batch.Result{JobID: j.ID, ChildID: j.ChildID, Kind: j.Kind, Duplicate: true})
			continue
		}

		run.wg.Add(1)
		if err := s.enqueue(ctx, j); err != nil {
			run.wg.Done()
			s.deduper.Unrecord(ctx, j.Key)
			run.set(j, batch.Result{JobID: j.ID, ChildID: j.ChildID, Kind: j.Kind, Error: err.Error()})
		}
	}

	done := make(chan struct{})
	go func() {
		run.wg.Wait()
		s.batches.Delete(batchID)
		close(done)
	}()

	select {
	case <-done:
	case <-ctx.Done():
		return nil, fmt.Errorf("batch %s: %w", batchID, ctx.Err())
	}

	report.Results = run.results
	report.Duration = time.Since(started)
	s.logger.Info(ctx, "batch finished",
		logger.String("batch_id", batchID),
		logger.Int("jobs", len(jobs)),
		logger.Any("duration", report.Duration))
	return report, nil
}

func (s *Service) enqueue(ctx context.Context, j model.Job) error { //nolint:gocritic // hugeParam: Job is passed by value for channel semantics
	for {
		err := s.queue.Enqueue(ctx, j)
		if !errors.Is(err, jobqueue.ErrQueueFull) {
			return err
		}
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-time.After(enqueueRetryDelay):
		}
	}
}

// process runs one queued job and reports it to its batch. A failed job is
// unrecorded from the deduper so it can be retried.
func (s *Service) process(ctx context.Context, j model.Job) error { //nolint:gocritic // hugeParam: Job is passed by value for channel semantics
	res := batch.Result{JobID: j.ID, ChildID: j.ChildID, Kind: j.Kind}

	var err error
	switch j.Kind {
	case model.JobSessions:
		var a passion.Analysis
		a, err = s.analyzeSessions(ctx, j.ChildID, j.Sessions, j.Games, j.Interests)
		res.Analysis = &a
	case model.JobResponses:
		var a model.TalentAssessment
		a, err = s.analyzeResponses(ctx, j.Responses, j.Profile)
		res.Assessment = &a
	default:
		err = fmt.Errorf("%w: %q", ErrUnknownJobKind, j.Kind)
	}
	if err != nil {
		res.Error = err.Error()
		s.deduper.Unrecord(ctx, j.Key)
	}

	if v, ok := s.batches.Load(j.BatchID); ok {
		run := v.(*batchRun) //nolint:forcetypeassert // only *batchRun is stored
		run.set(j, res)
		run.wg.Done()
	}
	return err
}

// Jobs expands a batch into analysis jobs: a sessions job for every child
// with sessions and a responses job for every child with responses.
func Jobs(batchID string, b *batch.Batch) ([]model.Job, error) {
	var jobs []model.Job
	for i := range b.Children {
		c := &b.Children[i]
		if len(c.Sessions) > 0 {
			j := model.Job{
				ID:        uuid.NewString(),
				BatchID:   batchID,
				Kind:      model.JobSessions,
				ChildID:   c.ChildID,
				Sessions:  c.Sessions,
				Games:     b.Games,
				Interests: c.Interests,
			}
			key, err := jobKey(j, struct {
				Sessions  []model.Session `json:"sessions"`
				Games     []model.Game    `json:"games"`
				Interests []string        `json:"interests"`
			}{c.Sessions, referencedGames(c.Sessions, b.Games), c.Interests})
			if err != nil {
				return nil, err
			}
			j.Key = key
			jobs = append(jobs, j)
		}
		if len(c.Responses) > 0 {
			j := model.Job{
				ID:        uuid.NewString(),
				BatchID:   batchID,
				Kind:      model.JobResponses,
				ChildID:   c.ChildID,
				Responses: c.Responses,
				Profile:   c.ChildProfile(),
			}
			key, err := jobKey(j, struct {
				Responses []model.QuestionResponse `json:"responses"`
				Profile   model.ChildProfile       `json:"profile"`
			}{j.Responses, j.Profile})
			if err != nil {
				return nil, err
			}
			j.Key = key
			jobs = append(jobs, j)
		}
	}
	return jobs, nil
}

// referencedGames returns the games the sessions play, sorted by id, so
// metadata changes to them change the job key.
func referencedGames(sessions []model.Session, games []model.Game) []model.Game {
	used := make(map[string]struct{}, len(sessions))
	for i := range sessions {
		used[sessions[i].GameID] = struct{}{}
	}
	out := make([]model.Game, 0, len(used))
	for _, g := range games {
		if _, ok := used[g.ID]; ok {
			out = append(out, g)
		}
	}
	sort.SliceStable(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out
}

func jobKey(j model.Job, payload any) (string, error) { //nolint:gocritic // hugeParam: read-only
	raw, err := json.Marshal(payload)
	if err != nil {
		return "", fmt.Errorf("job key for %q: %w", j.ChildID, err)
	}
	return dedupe.Key(string(j.Kind), j.ChildID, raw), nil
}

// ReloadModels rescans the model directory.
func (s *Service) ReloadModels(ctx context.Context) error {
	if err := s.ready(); err != nil {
		return err
	}
	return s.registry.Load(ctx)
}

// Predictors returns the active predictor set.
func (s *Service) Predictors() *scoring.PredictorSet {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.registry == nil {
		return nil
	}
	return s.registry.Current()
}

// Store returns the result store. It is nil before Start.
func (s *Service) Store() repository.Store {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.store
}

// Catalog returns the domain catalog.
func (s *Service) Catalog() *catalog.Catalog { return s.catalog }

// Stats returns service statistics for monitoring.
func (s *Service) Stats(ctx context.Context) Stats {
	s.mu.RLock()
	defer s.mu.RUnlock()

	st := Stats{Started: s.started, Workers: s.workerCount, QueueCapacity: s.queueSize}
	if !s.started {
		return st
	}

	set := s.registry.Current()
	st.Workers = s.pool.Size()
	st.QueueLength = s.queue.Len()
	st.DedupeSize = s.deduper.Size()
	st.StoredChildren = s.store.Count(ctx)
	st.PredictorsLoaded = set.Len()
	st.ModelVersion = set.Version()
	return st
}
