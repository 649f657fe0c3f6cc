package repository_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/okian/talentscope/internal/adapters/repository"
	"github.com/okian/talentscope/internal/domain/catalog"
	"github.com/okian/talentscope/internal/domain/model"
	"github.com/okian/talentscope/internal/domain/passion"
	. "github.com/smartystreets/goconvey/convey"
)

var detectedAt = time.Date(2026, 3, 1, 10, 0, 0, 0, time.UTC)

func domain(id string, d catalog.ID, confidence float64) model.PassionDomain {
	return model.PassionDomain{
		ID:                    id,
		ChildID:               "child-1",
		Domain:                d,
		ConfidenceScore:       confidence,
		DetectionMethod:       model.DetectionHybrid,
		RecommendedActivities: []string{"a", "b", "c"},
		IsActive:              true,
		DetectedAt:            detectedAt,
	}
}

func insight(id string) model.PassionInsight {
	return model.PassionInsight{ID: id, ChildID: "child-1", Type: model.InsightPattern}
}

func analysis() passion.Analysis {
	return passion.Analysis{
		ChildID: "child-1",
		Domains: []model.PassionDomain{
			domain("d-art", catalog.ArtisticCreativity, 0.5),
			domain("d-music", catalog.MusicalRhythm, 0.9),
			domain("d-logic", catalog.LogicalMathematics, 0.75),
			domain("d-lang", catalog.LanguageCommunication, 0.65),
		},
		Insights:   []model.PassionInsight{insight("i-1"), insight("i-2")},
		AnalyzedAt: detectedAt,
	}
}

func TestMemoryStore_Analysis(t *testing.T) {
	Convey("Given an empty store", t, func() {
		ctx := context.Background()
		store := repository.NewMemoryStore(catalog.Default())

		Convey("Then unknown children are not found", func() {
			_, err := store.Analysis(ctx, "nobody")
			So(errors.Is(err, repository.ErrNotFound), ShouldBeTrue)
			_, err = store.Summary(ctx, "nobody")
			So(errors.Is(err, repository.ErrNotFound), ShouldBeTrue)
			_, err = store.Recommendations(ctx, "nobody")
			So(errors.Is(err, repository.ErrNotFound), ShouldBeTrue)
			So(store.Count(ctx), ShouldEqual, 0)
		})

		Convey("Then an analysis without a child id is rejected", func() {
			err := store.SaveAnalysis(ctx, passion.Analysis{})
			So(errors.Is(err, repository.ErrMissingChildID), ShouldBeTrue)
		})

		Convey("When an analysis is saved", func() {
			So(store.SaveAnalysis(ctx, analysis()), ShouldBeNil)

			Convey("Then it can be read back", func() {
				got, err := store.Analysis(ctx, "child-1")
				So(err, ShouldBeNil)
				So(got.Domains, ShouldHaveLength, 4)
				So(store.Count(ctx), ShouldEqual, 1)
			})

			Convey("Then insights are returned newest first", func() {
				got, err := store.Insights(ctx, "child-1")
				So(err, ShouldBeNil)
				So(got[0].ID, ShouldEqual, "i-2")
				So(got[1].ID, ShouldEqual, "i-1")
			})

			Convey("Then mutating the returned copy does not change the store", func() {
				got, _ := store.Analysis(ctx, "child-1")
				got.Domains[0].IsVerified = true
				again, _ := store.Analysis(ctx, "child-1")
				So(again.Domains[0].IsVerified, ShouldBeFalse)
			})

			Convey("And a domain is verified", func() {
				d, err := store.Verify(ctx, "d-music", true)
				So(err, ShouldBeNil)
				So(d.IsVerified, ShouldBeTrue)

				Convey("Then the summary counts it", func() {
					sum, err := store.Summary(ctx, "child-1")
					So(err, ShouldBeNil)
					So(sum.VerifiedDomains, ShouldEqual, 1)
				})

				Convey("Then verification survives a re-analysis of the same domain", func() {
					next := analysis()
					next.Domains = []model.PassionDomain{domain("d-music-2", catalog.MusicalRhythm, 0.8)}
					So(store.SaveAnalysis(ctx, next), ShouldBeNil)

					domains, err := store.Domains(ctx, "child-1")
					So(err, ShouldBeNil)
					So(domains, ShouldHaveLength, 1)
					So(domains[0].IsVerified, ShouldBeTrue)

					_, err = store.Verify(ctx, "d-music", false)
					So(errors.Is(err, repository.ErrDomainNotFound), ShouldBeTrue)
				})

				Convey("Then it can be unverified", func() {
					d, err := store.Verify(ctx, "d-music", false)
					So(err, ShouldBeNil)
					So(d.IsVerified, ShouldBeFalse)
				})
			})

			Convey("Then verifying an unknown record fails", func() {
				_, err := store.Verify(ctx, "missing", true)
				So(errors.Is(err, repository.ErrDomainNotFound), ShouldBeTrue)
			})
		})
	})
}

func TestMemoryStore_Summary(t *testing.T) {
	Convey("Given a stored analysis", t, func() {
		ctx := context.Background()
		store := repository.NewMemoryStore(catalog.Default())
		a := analysis()
		inactive := domain("d-sport", catalog.SportsMovement, 0.99)
		inactive.IsActive = false
		a.Domains = append(a.Domains, inactive)
		So(store.SaveAnalysis(ctx, a), ShouldBeNil)

		sum, err := store.Summary(ctx, "child-1")
		So(err, ShouldBeNil)

		Convey("Then counts cover active domains only", func() {
			So(sum.TotalDomainsDetected, ShouldEqual, 4)
			So(sum.HighConfidenceDomains, ShouldEqual, 2)
			So(sum.VerifiedDomains, ShouldEqual, 0)
		})

		Convey("Then the top three are ranked by confidence", func() {
			So(sum.TopDomains, ShouldHaveLength, 3)
			So(sum.TopDomains[0].Domain, ShouldEqual, catalog.MusicalRhythm)
			So(sum.TopDomains[0].Rank, ShouldEqual, 1)
			So(sum.TopDomains[1].Domain, ShouldEqual, catalog.LogicalMathematics)
			So(sum.TopDomains[2].Domain, ShouldEqual, catalog.LanguageCommunication)
		})

		Convey("Then the last analysis time is the latest detection", func() {
			So(sum.LastAnalysis, ShouldNotBeNil)
			So(sum.LastAnalysis.Equal(detectedAt), ShouldBeTrue)
		})

		Convey("Then recent insights are capped", func() {
			for i := 0; i < 3; i++ {
				So(store.SaveAnalysis(ctx, analysis()), ShouldBeNil)
			}
			sum, err := store.Summary(ctx, "child-1")
			So(err, ShouldBeNil)
			So(sum.RecentInsights, ShouldHaveLength, repository.RecentInsightsLimit)
		})
	})
}

func TestMemoryStore_Recommendations(t *testing.T) {
	Convey("Given a stored analysis", t, func() {
		ctx := context.Background()
		store := repository.NewMemoryStore(catalog.Default())
		So(store.SaveAnalysis(ctx, analysis()), ShouldBeNil)

		recs, err := store.Recommendations(ctx, "child-1")
		So(err, ShouldBeNil)

		Convey("Then only domains above 0.6 are recommended, strongest first", func() {
			So(recs, ShouldHaveLength, 3)
			So(recs[0].Domain, ShouldEqual, catalog.MusicalRhythm)
			So(recs[1].Domain, ShouldEqual, catalog.LogicalMathematics)
			So(recs[2].Domain, ShouldEqual, catalog.LanguageCommunication)
		})

		Convey("Then each recommendation carries defaults and readable text", func() {
			So(recs[0].DifficultyLevel, ShouldEqual, "beginner")
			So(recs[0].EstimatedDuration, ShouldEqual, 30)
			So(recs[0].Activities, ShouldResemble, []string{"a", "b", "c"})
			So(recs[0].Description, ShouldEqual, "Activities to explore Musical Rhythm interests")
			So(recs[0].WhyRecommended, ShouldEqual, "Based on strong patterns in Musical Rhythm activities")
		})
	})
}

func TestMemoryStore_Assessments(t *testing.T) {
	Convey("Given a store with a history limit of 2", t, func() {
		ctx := context.Background()
		store := repository.NewMemoryStore(catalog.Default(), repository.WithHistoryLimit(2))

		Convey("When three assessments are saved", func() {
			for _, id := range []string{"a-1", "a-2", "a-3"} {
				So(store.SaveAssessment(ctx, model.TalentAssessment{ID: id, ChildID: "child-1"}), ShouldBeNil)
			}

			Convey("Then the newest two are kept, newest first", func() {
				history, err := store.Assessments(ctx, "child-1")
				So(err, ShouldBeNil)
				So(history, ShouldHaveLength, 2)
				So(history[0].ID, ShouldEqual, "a-3")
				So(history[1].ID, ShouldEqual, "a-2")
			})

			Convey("Then the child is counted but has no session analysis", func() {
				So(store.Count(ctx), ShouldEqual, 1)
				_, err := store.Analysis(ctx, "child-1")
				So(errors.Is(err, repository.ErrNotFound), ShouldBeTrue)

				sum, err := store.Summary(ctx, "child-1")
				So(err, ShouldBeNil)
				So(sum.TotalDomainsDetected, ShouldEqual, 0)
				So(sum.TopDomains, ShouldBeEmpty)
			})
		})

		Convey("Then an assessment without a child id is rejected", func() {
			err := store.SaveAssessment(ctx, model.TalentAssessment{})
			So(errors.Is(err, repository.ErrMissingChildID), ShouldBeTrue)
		})

		Convey("Then an unknown child has no history", func() {
			_, err := store.Assessments(ctx, "nobody")
			So(errors.Is(err, repository.ErrNotFound), ShouldBeTrue)
		})
	})
}

func TestMemoryStore_InsightLimit(t *testing.T) {
	Convey("Given a store that keeps three insights", t, func() {
		ctx := context.Background()
		store := repository.NewMemoryStore(catalog.Default(), repository.WithInsightLimit(3))
		So(store.SaveAnalysis(ctx, analysis()), ShouldBeNil)
		So(store.SaveAnalysis(ctx, analysis()), ShouldBeNil)

		Convey("Then older insights are dropped", func() {
			got, err := store.Insights(ctx, "child-1")
			So(err, ShouldBeNil)
			So(got, ShouldHaveLength, 3)
		})
	})
}
