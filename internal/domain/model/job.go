package model

// JobKind selects the analysis pipeline a Job runs through.
type JobKind string

// Job kinds.
const (
	JobSessions  JobKind = "sessions"
	JobResponses JobKind = "responses"
)

// Job is one child's analysis request flowing through the queue. Sessions,
// Games and Interests feed session jobs; Responses and Profile feed response
// jobs.
type Job struct {
	ID      string  `json:"id"`
	BatchID string  `json:"batch_id"`
	Kind    JobKind `json:"kind"`
	ChildID string  `json:"child_id"`
	// Key identifies the job's content for duplicate suppression.
	Key string `json:"key"`

	Sessions  []Session          `json:"sessions,omitempty"`
	Games     []Game             `json:"games,omitempty"`
	Interests []string           `json:"interests,omitempty"`
	Responses []QuestionResponse `json:"responses,omitempty"`
	Profile   ChildProfile       `json:"profile"`
}
