package talent_test

import (
	"context"
	"testing"
	"time"

	"github.com/okian/talentscope/internal/domain/catalog"
	"github.com/okian/talentscope/internal/domain/model"
	"github.com/okian/talentscope/internal/domain/talent"
	. "github.com/smartystreets/goconvey/convey"
)

var now = time.Date(2025, time.June, 1, 9, 0, 0, 0, time.UTC)

func bornYearsAgo(years int) time.Time {
	return now.AddDate(-years, 0, -1)
}

func responses(domain catalog.ID, scores ...float64) []model.QuestionResponse {
	out := make([]model.QuestionResponse, 0, len(scores))
	for _, s := range scores {
		out = append(out, model.QuestionResponse{
			ChildID:         "child-1",
			Score:           model.Float(s),
			TalentIndicator: domain,
		})
	}
	return out
}

func newAnalyzer() *talent.Analyzer {
	return talent.NewAnalyzer(catalog.Default(), talent.WithClock(func() time.Time { return now }))
}

func TestAnalyzeResponses_Default(t *testing.T) {
	Convey("Given no responses", t, func() {
		profile := model.ChildProfile{
			ChildID:            "child-1",
			DateOfBirth:        bornYearsAgo(4),
			InitialInterests:   []string{"drawing"},
			FavoriteActivities: []string{"swings"},
		}
		got := newAnalyzer().AnalyzeResponses(context.Background(), nil, profile)

		Convey("Then every domain scores 0.3", func() {
			So(len(got.TalentDomains), ShouldEqual, catalog.Default().Len())
			for _, v := range got.TalentDomains {
				So(v, ShouldEqual, 0.3)
			}
		})

		Convey("Then confidence is exactly 0.2 and there is no primary", func() {
			So(got.ConfidenceScore, ShouldEqual, 0.2)
			So(got.PrimaryTalent, ShouldBeNil)
			So(got.SecondaryTalents, ShouldBeEmpty)
		})

		Convey("Then patterns are unknown", func() {
			So(got.BehavioralPatterns.ResponseSpeed, ShouldEqual, model.PatternUnknown)
			So(got.BehavioralPatterns.ConfidenceLevel, ShouldEqual, model.PatternUnknown)
			So(got.ResponsePatterns.LearningCurve, ShouldEqual, model.PatternUnknown)
		})

		Convey("Then interests come only from the profile", func() {
			So(got.InterestIndicators.Strong, ShouldResemble, []string{"drawing"})
			So(got.InterestIndicators.Moderate, ShouldResemble, []string{"swings"})
			So(got.InterestIndicators.Potential, ShouldBeEmpty)
		})

		Convey("Then recommendations are the young age band and the stage is exploration", func() {
			So(got.RecommendedActivities, ShouldResemble, []string{"Sensory play", "Picture books", "Simple puzzles"})
			So(got.DevelopmentPath.Stage, ShouldEqual, model.StageExploration)
			So(len(got.DevelopmentPath.NextSteps), ShouldEqual, 1)
			So(got.ChildID, ShouldEqual, "child-1")
			So(got.AssessedAt, ShouldEqual, now)
		})
	})
}

func TestAnalyzeResponses_LogicalMathematics(t *testing.T) {
	Convey("Given ten perfect logical mathematics responses at confidence 8", t, func() {
		rs := responses(catalog.LogicalMathematics, 1, 1, 1, 1, 1, 1, 1, 1, 1, 1)
		for i := range rs {
			rs[i].ConfidenceLevel = model.Float(8)
			rs[i].ResponseTime = model.Float(12)
		}
		profile := model.ChildProfile{ChildID: "child-1", DateOfBirth: bornYearsAgo(7)}
		got := newAnalyzer().AnalyzeResponses(context.Background(), rs, profile)

		Convey("Then logical mathematics is the primary talent", func() {
			So(got.TalentDomains[catalog.LogicalMathematics], ShouldEqual, 1.0)
			So(got.PrimaryTalent, ShouldNotBeNil)
			So(*got.PrimaryTalent, ShouldEqual, catalog.LogicalMathematics)
			So(got.SecondaryTalents, ShouldBeEmpty)
		})

		Convey("Then confidence combines count, consistency and self-report", func() {
			So(got.ConfidenceScore, ShouldBeGreaterThanOrEqualTo, 0.8)
			So(got.ConfidenceScore, ShouldAlmostEqual, 0.91625, 1e-9)
		})

		Convey("Then behavior is normal speed with high confidence", func() {
			So(got.BehavioralPatterns.ResponseSpeed, ShouldEqual, model.SpeedNormal)
			So(got.BehavioralPatterns.ConfidenceLevel, ShouldEqual, model.ConfidenceHigh)
			So(got.BehavioralPatterns.AvgConfidenceLevel, ShouldEqual, 8)
		})

		Convey("Then the learning curve is stable", func() {
			So(got.ResponsePatterns.LearningCurve, ShouldEqual, model.CurveStable)
			So(got.ResponsePatterns.ResponseCount, ShouldEqual, 10)
		})

		Convey("Then the development path is skill building for a seven year old", func() {
			p := got.DevelopmentPath
			So(p.Stage, ShouldEqual, model.StageDevelopment)
			So(p.Focus, ShouldEqual, "skill building")
			So(p.PrimaryTalent, ShouldEqual, "Logical Mathematics")
			So(p.Careers, ShouldResemble, catalog.Default().Get(catalog.LogicalMathematics).Careers)
			So(p.NextSteps, ShouldResemble, []string{"Puzzle solving", "Counting games", "Pattern recognition games"})
		})

		Convey("Then strong interests carry the top two activities", func() {
			So(got.InterestIndicators.Strong, ShouldResemble, []string{"Puzzle solving", "Counting games"})
		})
	})
}

func TestAnalyzeResponses_Ranking(t *testing.T) {
	Convey("Given responses across several domains", t, func() {
		var rs []model.QuestionResponse
		rs = append(rs, responses(catalog.MusicalRhythm, 0.9, 0.8)...)
		rs = append(rs, responses(catalog.ArtisticCreativity, 0.6)...)
		rs = append(rs, responses(catalog.SportsMovement, 0.45)...)
		rs = append(rs, responses(catalog.SocialLeadership, 0.45)...)
		rs = append(rs, responses(catalog.ScientificDiscovery, 0.42)...)
		rs = append(rs, responses(catalog.TechnologyInnovation, 0.35)...)
		rs = append(rs, responses("astronomy", 1)...)
		rs = append(rs, model.QuestionResponse{TalentIndicator: catalog.LanguageCommunication})

		got := newAnalyzer().AnalyzeResponses(context.Background(), rs, model.ChildProfile{DateOfBirth: bornYearsAgo(10)})

		Convey("Then unknown indicators and unscored responses are ignored", func() {
			So(got.TalentDomains, ShouldNotContainKey, catalog.ID("astronomy"))
			So(got.TalentDomains[catalog.LanguageCommunication], ShouldEqual, 0)
			So(got.ChildID, ShouldEqual, "child-1")
		})

		Convey("Then the primary is the top domain and three secondaries follow", func() {
			So(*got.PrimaryTalent, ShouldEqual, catalog.MusicalRhythm)
			So(got.SecondaryTalents, ShouldResemble, []catalog.ID{
				catalog.ArtisticCreativity,
				catalog.SportsMovement,
				catalog.SocialLeadership,
			})
		})

		Convey("Then recommendations are unique and include the older age band", func() {
			seen := map[string]bool{}
			for _, a := range got.RecommendedActivities {
				So(seen[a], ShouldBeFalse)
				seen[a] = true
			}
			c := catalog.Default()
			So(got.RecommendedActivities[:3], ShouldResemble, c.Get(catalog.MusicalRhythm).TopActivities(3))
			So(got.RecommendedActivities, ShouldContain, c.Get(catalog.ArtisticCreativity).TopActivities(1)[0])
			So(got.RecommendedActivities, ShouldContain, c.Get(catalog.SportsMovement).TopActivities(1)[0])
			So(got.RecommendedActivities, ShouldNotContain, c.Get(catalog.SocialLeadership).TopActivities(1)[0])
			So(got.RecommendedActivities, ShouldContain, "Science kits")
			So(len(got.RecommendedActivities), ShouldEqual, 3+2+2+3)
		})

		Convey("Then interest indicators follow the score bands", func() {
			c := catalog.Default()
			So(got.InterestIndicators.Strong, ShouldResemble, c.Get(catalog.MusicalRhythm).TopActivities(2))
			So(got.InterestIndicators.Moderate, ShouldResemble, c.Get(catalog.ArtisticCreativity).TopActivities(1))
			So(got.InterestIndicators.Potential, ShouldContain, c.Get(catalog.TechnologyInnovation).TopActivities(1)[0])
		})

		Convey("Then a ten year old is in refinement", func() {
			So(got.DevelopmentPath.Stage, ShouldEqual, model.StageRefinement)
			So(got.DevelopmentPath.Focus, ShouldEqual, "advanced techniques")
		})
	})

	Convey("Given no domain above 0.5", t, func() {
		got := newAnalyzer().AnalyzeResponses(context.Background(),
			responses(catalog.MusicalRhythm, 0.5, 0.5), model.ChildProfile{DateOfBirth: bornYearsAgo(5)})

		Convey("Then there is no primary and the path is exploration", func() {
			So(got.PrimaryTalent, ShouldBeNil)
			So(got.DevelopmentPath.Stage, ShouldEqual, model.StageExploration)
			So(got.RecommendedActivities, ShouldResemble, []string{"Arts and crafts", "Outdoor exploration", "Building blocks"})
		})
	})
}

func TestAnalyzeResponses_InterestFallback(t *testing.T) {
	Convey("Given a profile interest matching an unanswered domain", t, func() {
		profile := model.ChildProfile{
			DateOfBirth:      bornYearsAgo(5),
			InitialInterests: []string{"Rhythm games"},
		}
		got := newAnalyzer().AnalyzeResponses(context.Background(), responses(catalog.LogicalMathematics, 0.2), profile)

		Convey("Then the domain falls back to 0.6", func() {
			So(got.TalentDomains[catalog.MusicalRhythm], ShouldEqual, 0.6)
			So(got.TalentDomains[catalog.SportsMovement], ShouldEqual, 0)
			So(*got.PrimaryTalent, ShouldEqual, catalog.MusicalRhythm)
		})

		Convey("Then a five year old is in discovery", func() {
			So(got.DevelopmentPath.Stage, ShouldEqual, model.StageDiscovery)
			So(got.DevelopmentPath.Focus, ShouldEqual, "exploration and play")
		})
	})

	Convey("Given a profile interest for an answered domain", t, func() {
		profile := model.ChildProfile{InitialInterests: []string{"music"}}
		got := newAnalyzer().AnalyzeResponses(context.Background(), responses(catalog.MusicalRhythm, 0.1), profile)

		Convey("Then the response average wins", func() {
			So(got.TalentDomains[catalog.MusicalRhythm], ShouldEqual, 0.1)
		})
	})
}

func TestAnalyzeResponses_Patterns(t *testing.T) {
	ctx := context.Background()
	profile := model.ChildProfile{DateOfBirth: bornYearsAgo(8)}

	Convey("Given a rising score history", t, func() {
		got := newAnalyzer().AnalyzeResponses(ctx,
			responses(catalog.MusicalRhythm, 0.5, 0.5, 0.5, 0.5, 0.5, 0.9, 0.9, 0.9, 0.9, 0.9), profile)
		So(got.ResponsePatterns.LearningCurve, ShouldEqual, model.CurveImproving)
		So(got.ResponsePatterns.EarlyAverage, ShouldAlmostEqual, 0.5, 1e-9)
		So(got.ResponsePatterns.RecentAverage, ShouldAlmostEqual, 0.9, 1e-9)
	})

	Convey("Given a falling score history", t, func() {
		got := newAnalyzer().AnalyzeResponses(ctx,
			responses(catalog.MusicalRhythm, 0.9, 0.9, 0.9, 0.9, 0.9, 0.5, 0.5, 0.5, 0.5, 0.5), profile)
		So(got.ResponsePatterns.LearningCurve, ShouldEqual, model.CurveDeclining)
	})

	Convey("Given a flat score history", t, func() {
		got := newAnalyzer().AnalyzeResponses(ctx,
			responses(catalog.MusicalRhythm, 0.7, 0.7, 0.72, 0.7, 0.7, 0.71, 0.7, 0.7, 0.69, 0.7), profile)
		So(got.ResponsePatterns.LearningCurve, ShouldEqual, model.CurveStable)
	})

	Convey("Given fewer than five responses", t, func() {
		got := newAnalyzer().AnalyzeResponses(ctx, responses(catalog.MusicalRhythm, 0.7, 0.7), profile)
		So(got.ResponsePatterns.LearningCurve, ShouldEqual, model.CurveInsufficientData)
		So(got.ResponsePatterns.ResponseCount, ShouldEqual, 2)
	})

	Convey("Given response times and confidence levels", t, func() {
		rs := responses(catalog.MusicalRhythm, 0.7, 0.7)
		Convey("When answers are quick and unsure", func() {
			rs[0].ResponseTime, rs[1].ResponseTime = model.Float(4), model.Float(6)
			rs[0].ConfidenceLevel, rs[1].ConfidenceLevel = model.Float(2), model.Float(3)
			got := newAnalyzer().AnalyzeResponses(ctx, rs, profile)
			So(got.BehavioralPatterns.ResponseSpeed, ShouldEqual, model.SpeedFast)
			So(got.BehavioralPatterns.AvgResponseTime, ShouldEqual, 5)
			So(got.BehavioralPatterns.ConfidenceLevel, ShouldEqual, model.ConfidenceLow)
		})

		Convey("When answers are slow without confidence reports", func() {
			rs[0].ResponseTime, rs[1].ResponseTime = model.Float(40), model.Float(50)
			got := newAnalyzer().AnalyzeResponses(ctx, rs, profile)
			So(got.BehavioralPatterns.ResponseSpeed, ShouldEqual, model.SpeedSlow)
			So(got.BehavioralPatterns.ConfidenceLevel, ShouldEqual, model.ConfidenceModerate)
			So(got.BehavioralPatterns.AvgConfidenceLevel, ShouldEqual, 5)
		})

		Convey("When no response times are reported", func() {
			got := newAnalyzer().AnalyzeResponses(ctx, rs, profile)
			So(got.BehavioralPatterns.ResponseSpeed, ShouldEqual, model.PatternUnknown)
		})
	})

	Convey("Given any response set", t, func() {
		got := newAnalyzer().AnalyzeResponses(ctx, responses(catalog.MusicalRhythm, 3, -1), profile)

		Convey("Then every score stays within [0,1]", func() {
			for _, v := range got.TalentDomains {
				So(v, ShouldBeBetweenOrEqual, 0, 1)
			}
			So(got.ConfidenceScore, ShouldBeBetweenOrEqual, 0, 1)
		})
	})
}
