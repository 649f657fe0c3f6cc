package service_test

import (
	"context"
	"errors"
	"testing"
	"time"

	service "github.com/okian/talentscope/internal/app"
	"github.com/okian/talentscope/internal/domain/catalog"
	"github.com/okian/talentscope/internal/domain/model"
	"github.com/okian/talentscope/internal/domain/scoring"
	"github.com/okian/talentscope/pkg/logger"
	. "github.com/smartystreets/goconvey/convey"
)

func init() {
	if err := logger.Init(); err != nil {
		panic(err)
	}
}

var fixedNow = time.Date(2026, 6, 1, 12, 0, 0, 0, time.UTC)

func clock() time.Time { return fixedNow }

func musicSessions(childID string, n int) []model.Session {
	out := make([]model.Session, n)
	for i := range out {
		out[i] = model.Session{
			ID:                 childID + "-s",
			ChildID:            childID,
			GameID:             "g-music",
			Status:             model.SessionCompleted,
			DurationSeconds:    model.Float(1800),
			Score:              model.Float(0.9),
			Accuracy:           model.Float(0.9),
			EmotionalReactions: map[string]float64{"positive": 0.8},
		}
	}
	return out
}

var games = []model.Game{{ID: "g-music", Category: "music", Name: "Beat Box"}}

func newService(opts ...service.Option) *service.Service {
	base := []service.Option{
		service.WithLogger(logger.Nop()),
		service.WithClock(clock),
		service.WithWorkerCount(2),
	}
	return service.New(append(base, opts...)...)
}

func TestService_Lifecycle(t *testing.T) {
	Convey("Given a new service", t, func() {
		ctx := context.Background()
		svc := newService()
		defer svc.Stop()

		Convey("Then analyses are refused before Start", func() {
			_, err := svc.AnalyzeSessions(ctx, "c1", nil, nil, nil)
			So(errors.Is(err, service.ErrNotStarted), ShouldBeTrue)
			_, err = svc.AnalyzeResponses(ctx, nil, model.ChildProfile{ChildID: "c1"})
			So(errors.Is(err, service.ErrNotStarted), ShouldBeTrue)
			_, err = svc.RunBatch(ctx, nil)
			So(errors.Is(err, service.ErrNotStarted), ShouldBeTrue)
			So(errors.Is(svc.ReloadModels(ctx), service.ErrNotStarted), ShouldBeTrue)
			So(svc.Store(), ShouldBeNil)
			So(svc.Predictors(), ShouldBeNil)
		})

		Convey("Then stats report the configuration only", func() {
			st := svc.Stats(ctx)
			So(st.Started, ShouldBeFalse)
			So(st.Workers, ShouldEqual, 2)
			So(st.QueueCapacity, ShouldEqual, service.DefaultQueueSize)
		})

		Convey("When starting the service", func() {
			So(svc.Start(ctx), ShouldBeNil)

			Convey("Then it is marked as started", func() {
				st := svc.Stats(ctx)
				So(st.Started, ShouldBeTrue)
				So(st.Workers, ShouldEqual, 2)
				So(st.PredictorsLoaded, ShouldEqual, 0)
			})

			Convey("Then starting again is a no-op", func() {
				So(svc.Start(ctx), ShouldBeNil)
			})

			Convey("And stopping it", func() {
				svc.Stop()

				Convey("Then it is marked as stopped", func() {
					So(svc.Stats(ctx).Started, ShouldBeFalse)
				})

				Convey("Then it can be started again", func() {
					So(svc.Start(ctx), ShouldBeNil)
					So(svc.Stats(ctx).Started, ShouldBeTrue)
				})
			})
		})
	})

	Convey("Given a service with default options", t, func() {
		svc := service.New()
		defer svc.Stop()

		Convey("Then it starts and stops", func() {
			So(svc.Start(context.Background()), ShouldBeNil)
			So(svc.Stats(context.Background()).Started, ShouldBeTrue)
		})
	})

	Convey("Given weights that do not sum to one", t, func() {
		svc := newService(service.WithWeights(scoring.Weights{Rule: 0.5, Model: 0.2}))
		err := svc.Start(context.Background())

		Convey("Then Start fails", func() {
			So(errors.Is(err, service.ErrStart), ShouldBeTrue)
			So(errors.Is(err, scoring.ErrInvalidWeights), ShouldBeTrue)
		})
	})
}

func TestService_AnalyzeSessions(t *testing.T) {
	Convey("Given a started service without predictors", t, func() {
		ctx := context.Background()
		svc := newService()
		So(svc.Start(ctx), ShouldBeNil)
		defer svc.Stop()

		Convey("When a child plays three long, successful music sessions", func() {
			a, err := svc.AnalyzeSessions(ctx, "c1", musicSessions("c1", 3), games, nil)
			So(err, ShouldBeNil)

			Convey("Then music scores the full rule weight", func() {
				So(a.Scores[catalog.MusicalRhythm], ShouldAlmostEqual, 0.6, 1e-9)
				So(a.Domains, ShouldHaveLength, 8)
				So(a.Domains[1].Domain, ShouldEqual, catalog.MusicalRhythm)
				So(a.Domains[1].StrengthLevel, ShouldEqual, model.StrengthHigh)
				So(a.AnalyzedAt, ShouldEqual, fixedNow)
			})

			Convey("Then the result is stored", func() {
				stored, err := svc.Store().Analysis(ctx, "c1")
				So(err, ShouldBeNil)
				So(stored.Domains, ShouldHaveLength, 8)
				So(svc.Stats(ctx).StoredChildren, ShouldEqual, 1)
			})

			Convey("Then engagement and completion insights are produced", func() {
				types := []model.InsightType{}
				for _, in := range a.Insights {
					types = append(types, in.Type)
				}
				So(types, ShouldResemble, []model.InsightType{model.InsightPattern, model.InsightMilestone})
			})
		})

		Convey("When a child has no sessions", func() {
			a, err := svc.AnalyzeSessions(ctx, "c2", nil, games, nil)

			Convey("Then an empty analysis is stored", func() {
				So(err, ShouldBeNil)
				So(a.Domains, ShouldBeEmpty)
				So(a.OverallConfidence, ShouldEqual, 0)
			})
		})

		Convey("When neither sessions nor a child id are given", func() {
			a, err := svc.AnalyzeSessions(ctx, "", nil, games, nil)

			Convey("Then the empty analysis is returned without error", func() {
				So(err, ShouldBeNil)
				So(a.Domains, ShouldBeEmpty)
				So(svc.Stats(ctx).StoredChildren, ShouldEqual, 0)
			})
		})

		Convey("When the child id is missing", func() {
			_, err := svc.AnalyzeSessions(ctx, "", musicSessions("", 1), games, nil)

			Convey("Then saving fails", func() {
				So(err, ShouldNotBeNil)
			})
		})
	})
}

func TestService_AnalyzeResponses(t *testing.T) {
	Convey("Given a started service with a response window of 20", t, func() {
		ctx := context.Background()
		svc := newService(service.WithResponseWindow(20))
		So(svc.Start(ctx), ShouldBeNil)
		defer svc.Stop()

		// Five old science answers followed by twenty recent logic answers,
		// delivered newest first.
		var responses []model.QuestionResponse
		for i := 24; i >= 0; i-- {
			indicator := catalog.LogicalMathematics
			if i < 5 {
				indicator = catalog.ScientificDiscovery
			}
			responses = append(responses, model.QuestionResponse{
				ID:              "r",
				ChildID:         "c1",
				Score:           model.Float(0.9),
				ConfidenceLevel: model.Float(8),
				TalentIndicator: indicator,
				CreatedAt:       fixedNow.Add(time.Duration(i-25) * time.Hour),
			})
		}

		a, err := svc.AnalyzeResponses(ctx, responses, model.ChildProfile{ChildID: "c1"})
		So(err, ShouldBeNil)

		Convey("Then only the most recent twenty are assessed", func() {
			So(a.ResponsePatterns.ResponseCount, ShouldEqual, 20)
			So(a.TalentDomains[catalog.ScientificDiscovery], ShouldEqual, 0)
			So(*a.PrimaryTalent, ShouldEqual, catalog.LogicalMathematics)
		})

		Convey("Then the assessment is kept in history", func() {
			history, err := svc.Store().Assessments(ctx, "c1")
			So(err, ShouldBeNil)
			So(history, ShouldHaveLength, 1)
			So(history[0].ID, ShouldEqual, a.ID)
		})

		Convey("When there are no responses and no child id", func() {
			empty, err := svc.AnalyzeResponses(ctx, nil, model.ChildProfile{})

			Convey("Then the default assessment is returned without error", func() {
				So(err, ShouldBeNil)
				So(empty.ChildID, ShouldBeEmpty)
				So(empty.ResponsePatterns.ResponseCount, ShouldEqual, 0)
				So(svc.Stats(ctx).StoredChildren, ShouldEqual, 1)
			})
		})
	})
}

func TestRecentResponses(t *testing.T) {
	Convey("Given unordered responses", t, func() {
		in := []model.QuestionResponse{
			{ID: "b", CreatedAt: fixedNow.Add(2 * time.Hour)},
			{ID: "a", CreatedAt: fixedNow.Add(1 * time.Hour)},
			{ID: "c", CreatedAt: fixedNow.Add(3 * time.Hour)},
		}

		Convey("Then the window keeps the newest, oldest first", func() {
			out := service.RecentResponses(in, 2)
			So(out, ShouldHaveLength, 2)
			So(out[0].ID, ShouldEqual, "b")
			So(out[1].ID, ShouldEqual, "c")
		})

		Convey("Then the input order is untouched", func() {
			_ = service.RecentResponses(in, 2)
			So(in[0].ID, ShouldEqual, "b")
		})

		Convey("Then a non-positive window keeps everything", func() {
			So(service.RecentResponses(in, 0), ShouldHaveLength, 3)
		})
	})
}
