package talent

import (
	"github.com/okian/talentscope/internal/domain/catalog"
	"github.com/okian/talentscope/internal/domain/model"
)

const (
	strongInterestFloor    = 0.7
	moderateInterestFloor  = 0.5
	potentialInterestFloor = 0.3
	strongActivities       = 2
	primaryActivities      = 3
	secondaryActivities    = 2
	maxSecondaryRecs       = 2
	nextStepActivities     = 3
	youngAge               = 5
	middleAge              = 8
	discoveryAge           = 6
	developmentAge         = 9
)

// Generic activities by age band.
var (
	youngActivities  = []string{"Sensory play", "Picture books", "Simple puzzles"}
	middleActivities = []string{"Arts and crafts", "Outdoor exploration", "Building blocks"}
	olderActivities  = []string{"Science kits", "Creative writing", "Team games"}
)

func ageBandActivities(age int) []string {
	switch {
	case age < youngAge:
		return youngActivities
	case age < middleAge:
		return middleActivities
	default:
		return olderActivities
	}
}

func (a *Analyzer) interestIndicators(scores map[catalog.ID]float64, profile model.ChildProfile) model.InterestIndicators {
	out := model.InterestIndicators{
		Strong:    appendUnique(nil, profile.InitialInterests...),
		Moderate:  appendUnique(nil, profile.FavoriteActivities...),
		Potential: []string{},
	}
	for _, d := range a.catalog.Domains() {
		s := scores[d.ID]
		switch {
		case s > strongInterestFloor:
			out.Strong = appendUnique(out.Strong, d.TopActivities(strongActivities)...)
		case s > moderateInterestFloor:
			out.Moderate = appendUnique(out.Moderate, d.TopActivities(1)...)
		case s > potentialInterestFloor:
			out.Potential = appendUnique(out.Potential, d.TopActivities(1)...)
		}
	}
	return out
}

func (a *Analyzer) recommendations(primary *catalog.ID, secondary []catalog.ID, age int) []string {
	out := make([]string, 0)
	if primary != nil {
		out = appendUnique(out, a.catalog.Get(*primary).TopActivities(primaryActivities)...)
	}
	for i, id := range secondary {
		if i == maxSecondaryRecs {
			break
		}
		out = appendUnique(out, a.catalog.Get(id).TopActivities(secondaryActivities)...)
	}
	return appendUnique(out, ageBandActivities(age)...)
}

func (a *Analyzer) developmentPath(primary *catalog.ID, age int) model.DevelopmentPath {
	if primary == nil {
		return explorationPath()
	}
	d := a.catalog.Get(*primary)
	p := model.DevelopmentPath{
		PrimaryTalent: d.Name,
		Careers:       append([]string(nil), d.Careers...),
		NextSteps:     d.TopActivities(nextStepActivities),
	}
	switch {
	case age < discoveryAge:
		p.Stage, p.Focus = model.StageDiscovery, "exploration and play"
	case age < developmentAge:
		p.Stage, p.Focus = model.StageDevelopment, "skill building"
	default:
		p.Stage, p.Focus = model.StageRefinement, "advanced techniques"
	}
	return p
}

func explorationPath() model.DevelopmentPath {
	return model.DevelopmentPath{
		Stage:     model.StageExploration,
		Focus:     "broad exploration",
		NextSteps: []string{"Try activities from several different domains"},
	}
}

// appendUnique appends the values of add not already in dst, keeping
// first-seen order.
func appendUnique(dst []string, add ...string) []string {
	if dst == nil {
		dst = make([]string, 0, len(add))
	}
	seen := make(map[string]struct{}, len(dst)+len(add))
	for _, v := range dst {
		seen[v] = struct{}{}
	}
	for _, v := range add {
		if _, dup := seen[v]; dup {
			continue
		}
		seen[v] = struct{}{}
		dst = append(dst, v)
	}
	return dst
}
