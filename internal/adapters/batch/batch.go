// Package batch reads analysis batches from YAML or JSON and writes reports
// back out.
package batch

import (
	"time"

	"github.com/okian/talentscope/internal/domain/model"
	"github.com/okian/talentscope/internal/domain/passion"
)

// Batch is a set of children to analyze. Games are shared by every child.
type Batch struct {
	Games    []model.Game `json:"games" yaml:"games"`
	Children []Child      `json:"children" yaml:"children"`
}

// Child carries everything known about one child.
type Child struct {
	ChildID   string                   `json:"child_id" yaml:"child_id"`
	Profile   *model.ChildProfile      `json:"profile,omitempty" yaml:"profile,omitempty"`
	Interests []string                 `json:"interests,omitempty" yaml:"interests,omitempty"`
	Sessions  []model.Session          `json:"sessions,omitempty" yaml:"sessions,omitempty"`
	Responses []model.QuestionResponse `json:"responses,omitempty" yaml:"responses,omitempty"`
}

// ChildProfile returns the child's profile, falling back to one holding only
// the child id.
func (c *Child) ChildProfile() model.ChildProfile {
	if c.Profile == nil {
		return model.ChildProfile{ChildID: c.ChildID}
	}
	p := *c.Profile
	if p.ChildID == "" {
		p.ChildID = c.ChildID
	}
	return p
}

// Result is the outcome of one job in a batch run.
type Result struct {
	JobID      string                  `json:"job_id" yaml:"job_id"`
	ChildID    string                  `json:"child_id" yaml:"child_id"`
	Kind       model.JobKind           `json:"kind" yaml:"kind"`
	Analysis   *passion.Analysis       `json:"analysis,omitempty" yaml:"analysis,omitempty"`
	Assessment *model.TalentAssessment `json:"assessment,omitempty" yaml:"assessment,omitempty"`
	Duplicate  bool                    `json:"duplicate,omitempty" yaml:"duplicate,omitempty"`
	Error      string                  `json:"error,omitempty" yaml:"error,omitempty"`
}

// Report is what a batch run writes out.
type Report struct {
	BatchID      string        `json:"batch_id" yaml:"batch_id"`
	ModelVersion string        `json:"model_version,omitempty" yaml:"model_version,omitempty"`
	StartedAt    time.Time     `json:"started_at" yaml:"started_at"`
	Duration     time.Duration `json:"duration_ns" yaml:"duration_ns"`
	Results      []Result      `json:"results" yaml:"results"`
}
