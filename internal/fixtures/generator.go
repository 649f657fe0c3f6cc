// Package fixtures generates synthetic analysis batches for demos and load
// runs. Each child leans toward one catalog domain so the engine has a
// signal to find.
package fixtures

import (
	"context"
	"encoding/binary"
	"fmt"
	"math/rand/v2"
	"strconv"
	"time"

	"github.com/google/uuid"
	"github.com/okian/talentscope/internal/adapters/batch"
	"github.com/okian/talentscope/internal/domain/catalog"
	"github.com/okian/talentscope/internal/domain/model"
	"github.com/okian/talentscope/pkg/logger"
)

const (
	defaultChildren  = 10
	defaultSessions  = 12
	defaultResponses = 10

	// favoredShare is the probability a session or response targets the
	// child's favored domain.
	favoredShare = 0.6

	minAgeYears   = 3
	ageSpanYears  = 10
	maxDuration   = 900.0
	minDuration   = 60.0
	sessionSpread = 30 * 24 * time.Hour
)

var statuses = []model.SessionStatus{ //nolint:gochecknoglobals // fixed weights for status draws
	model.SessionCompleted, model.SessionCompleted, model.SessionCompleted,
	model.SessionAbandoned, model.SessionActive, model.SessionError,
}

// Generator builds batches.
type Generator struct {
	catalog   *catalog.Catalog
	children  int
	sessions  int
	responses int
	seed      uint64
	now       time.Time
	logger    logger.Logger
}

// New returns a Generator over the catalog.
func New(c *catalog.Catalog, opts ...Option) *Generator {
	g := &Generator{
		catalog:   c,
		children:  defaultChildren,
		sessions:  defaultSessions,
		responses: defaultResponses,
		seed:      uint64(time.Now().UnixNano()),
		now:       time.Now().UTC(),
		logger:    logger.Nop(),
	}
	for _, opt := range opts {
		opt(g)
	}
	return g
}

// Games returns one game per catalog domain, categorized by the domain's
// first keyword.
func (g *Generator) Games() []model.Game {
	domains := g.catalog.Domains()
	games := make([]model.Game, 0, len(domains))
	for _, d := range domains {
		category := string(d.ID)
		if len(d.Keywords) > 0 {
			category = d.Keywords[0]
		}
		games = append(games, model.Game{
			ID:       "game-" + string(d.ID),
			Category: category,
			Name:     d.Name + " Challenge",
		})
	}
	return games
}

// Batch generates a batch. It stops early with ctx's error when ctx ends.
func (g *Generator) Batch(ctx context.Context) (*batch.Batch, error) {
	var seed [32]byte
	binary.LittleEndian.PutUint64(seed[:], g.seed)
	src := rand.NewChaCha8(seed)
	rng := rand.New(src)

	g.logger.Debug(ctx, "generating batch",
		logger.Int("children", g.children),
		logger.Int("sessions", g.sessions),
		logger.Int("responses", g.responses),
	)

	ids := g.catalog.IDs()
	if len(ids) == 0 {
		return &batch.Batch{}, nil
	}

	b := &batch.Batch{
		Games:    g.Games(),
		Children: make([]batch.Child, 0, g.children),
	}
	for i := 0; i < g.children; i++ {
		if err := ctx.Err(); err != nil {
			return nil, fmt.Errorf("generate child %d: %w", i, err)
		}
		childUUID, err := uuid.NewRandomFromReader(src)
		if err != nil {
			return nil, fmt.Errorf("generate child id: %w", err)
		}
		favored := ids[rng.IntN(len(ids))]
		b.Children = append(b.Children, g.child(rng, childUUID.String(), favored, ids))
	}
	return b, nil
}

func (g *Generator) child(rng *rand.Rand, childID string, favored catalog.ID, ids []catalog.ID) batch.Child {
	pick := func() catalog.ID {
		if rng.Float64() < favoredShare {
			return favored
		}
		return ids[rng.IntN(len(ids))]
	}

	d := g.catalog.Get(favored)
	age := minAgeYears + rng.IntN(ageSpanYears)
	c := batch.Child{
		ChildID: childID,
		Profile: &model.ChildProfile{
			ChildID:          childID,
			DateOfBirth:      g.now.AddDate(-age, -rng.IntN(12), 0).Truncate(24 * time.Hour),
			InitialInterests: append([]string(nil), d.Keywords[:min(2, len(d.Keywords))]...),
		},
		Sessions:  make([]model.Session, 0, g.sessions),
		Responses: make([]model.QuestionResponse, 0, g.responses),
	}
	if len(d.Keywords) > 0 {
		c.Interests = []string{d.Keywords[0]}
	}

	for j := 0; j < g.sessions; j++ {
		c.Sessions = append(c.Sessions, g.session(rng, childID, j, pick(), favored))
	}
	for j := 0; j < g.responses; j++ {
		c.Responses = append(c.Responses, g.response(rng, childID, j, pick(), favored))
	}
	return c
}

func (g *Generator) session(rng *rand.Rand, childID string, n int, target, favored catalog.ID) model.Session {
	// The favored domain plays better and more happily.
	skill := 0.3 + 0.4*rng.Float64()
	if target == favored {
		skill = 0.65 + 0.35*rng.Float64()
	}

	started := g.now.Add(-time.Duration(rng.Int64N(int64(sessionSpread))))
	duration := minDuration + rng.Float64()*(maxDuration-minDuration)
	s := model.Session{
		ID:              childID + "-s" + strconv.Itoa(n),
		ChildID:         childID,
		GameID:          "game-" + string(target),
		Status:          statuses[rng.IntN(len(statuses))],
		DurationSeconds: model.Float(duration),
		Score:           model.Float(skill),
		Accuracy:        model.Float(min(1, skill+0.1*rng.Float64())),
		SpeedMetrics: &model.SpeedMetrics{ResponseTimes: []float64{
			1 + 4*rng.Float64(), 1 + 4*rng.Float64(), 1 + 4*rng.Float64(),
		}},
		EmotionalReactions: map[string]float64{"positive": skill},
		StartedAt:          started,
	}
	if s.Completed() {
		s.CompletedAt = started.Add(time.Duration(duration * float64(time.Second)))
	}
	return s
}

func (g *Generator) response(rng *rand.Rand, childID string, n int, target, favored catalog.ID) model.QuestionResponse {
	score := 0.2 + 0.5*rng.Float64()
	if target == favored {
		score = 0.6 + 0.4*rng.Float64()
	}
	return model.QuestionResponse{
		ID:              childID + "-r" + strconv.Itoa(n),
		ChildID:         childID,
		QuestionID:      "q-" + string(target) + "-" + strconv.Itoa(n),
		Answer:          "option-" + strconv.Itoa(rng.IntN(4)),
		ResponseTime:    model.Float(2 + 20*rng.Float64()),
		ConfidenceLevel: model.Float(float64(1 + rng.IntN(10))),
		Score:           model.Float(score),
		TalentIndicator: target,
		CreatedAt:       g.now.Add(-time.Duration(n) * time.Hour),
	}
}
