package store

import (
	"context"
	"time"
)

// QueryOpts configures event queries with filtering and pagination.
type QueryOpts struct {
	Limit  int       // max results (0 = unlimited)
	After  int64     // sequence > After
	Before int64     // sequence < Before
	From   time.Time // timestamp >= From
	To     time.Time // timestamp <= To
}

// SnapshotVersion is the layout version written into every snapshot.
const SnapshotVersion = 1

// SnapshotData captures the full learner state at a point in time.
// Catalog text is never stored; objectives carry only their mutable state.
type SnapshotData struct {
	Version         int                           `json:"version"`
	ContentVersion  string                        `json:"contentVersion"`
	Objectives      []ObjectiveData               `json:"objectives"`
	QuestionResults map[string]QuestionResultData `json:"questionResults"`
	MissionResults  map[string]MissionResultData  `json:"missionResults"`
	EthicsAccepted  bool                          `json:"ethicsAccepted"`
	DyslexiaMode    bool                          `json:"dyslexiaMode"`
	ReduceMotion    bool                          `json:"reduceMotion"`
	Streak          int                           `json:"streak"`
	TotalIntel      int                           `json:"totalIntel"`
	Rank            string                        `json:"rank"`

	// Revision orders snapshots taken by one process. Zero means
	// unordered. Not persisted.
	Revision uint64 `json:"-"`
}

// ObjectiveData is the persisted state of one objective.
type ObjectiveData struct {
	ID            string     `json:"id"`
	Status        string     `json:"status"`
	Mastery       float64    `json:"mastery"`
	NextDue       *time.Time `json:"nextDue,omitempty"`
	Misconception bool       `json:"misconception,omitempty"`
}

// QuestionResultData is the latest answer to one question.
type QuestionResultData struct {
	QuestionID string    `json:"questionId"`
	Correct    bool      `json:"correct"`
	Confidence int       `json:"confidence"`
	Timestamp  time.Time `json:"timestamp"`
}

// MissionResultData is the latest result of one mission.
type MissionResultData struct {
	MissionID string    `json:"missionId"`
	Score     int       `json:"score"`
	Completed bool      `json:"completed"`
	Timestamp time.Time `json:"timestamp"`
}

// Snapshot represents a point-in-time capture of learner state.
type Snapshot struct {
	ID        int
	Sequence  int64
	Timestamp time.Time
	Data      SnapshotData
}

// SnapshotRepo manages learner state snapshots.
type SnapshotRepo interface {
	// Save stores a new snapshot.
	Save(ctx context.Context, snap *Snapshot) error

	// Latest returns the most recently saved snapshot, or nil if none exist.
	Latest(ctx context.Context) (*Snapshot, error)

	// Prune deletes all but the N most recent snapshots.
	Prune(ctx context.Context, keep int) error
}

// Answer sources.
const (
	SourcePlacement = "placement"
	SourceDrill     = "drill"
	SourceAcademy   = "academy"
)

// AnswerEventData captures one answered question.
type AnswerEventData struct {
	SessionID   string
	Source      string
	QuestionID  string
	ObjectiveID string
	Domain      string
	Correct     bool
	Confidence  int
	TimeMs      int
}

// AnswerEventRecord is an answer event read back from the log.
type AnswerEventRecord struct {
	AnswerEventData
	Sequence  int64
	Timestamp time.Time
}

// Session kinds and actions.
const (
	SessionPlacement = "placement"
	SessionDrill     = "drill"

	ActionStart = "start"
	ActionEnd   = "end"
)

// SessionEventData captures a session start or end.
type SessionEventData struct {
	SessionID       string
	Kind            string
	Action          string
	QuestionsServed int
	CorrectAnswers  int
	DurationSecs    int
}

// SessionSummaryRecord is a finished session as shown in history.
type SessionSummaryRecord struct {
	SessionID       string
	Kind            string
	Timestamp       time.Time
	QuestionsServed int
	CorrectAnswers  int
	DurationSecs    int
}

// MasteryEventData captures an objective status transition.
type MasteryEventData struct {
	SessionID   string
	ObjectiveID string
	FromState   string
	ToState     string
	Trigger     string
	Mastery     float64
}

// MasteryEventRecord is a mastery transition read back from the log.
type MasteryEventRecord struct {
	MasteryEventData
	Sequence  int64
	Timestamp time.Time
}

// DiagnosisEventData captures the classification of a wrong answer.
type DiagnosisEventData struct {
	SessionID      string
	QuestionID     string
	ObjectiveID    string
	Category       string
	Confidence     float64
	ClassifierName string
}

// MissionEventData captures a completed mission.
type MissionEventData struct {
	MissionID   string
	MissionType string
	Score       int
	Grade       string
	Intel       int
}

// MissionEventRecord is a mission result read back from the log.
type MissionEventRecord struct {
	MissionEventData
	Sequence  int64
	Timestamp time.Time
}

// ExplanationEventData captures an alternative explanation being shown.
type ExplanationEventData struct {
	QuestionID string
	Mode       string
	Generated  bool
}

// LLMRequestEventData captures the data for a single LLM request event.
type LLMRequestEventData struct {
	Provider     string
	Model        string
	Purpose      string
	InputTokens  int
	OutputTokens int
	LatencyMs    int64
	Success      bool
	ErrorMessage string
}

// LLMRequestEventRecord is an LLM request read back from the log.
type LLMRequestEventRecord struct {
	LLMRequestEventData
	Sequence  int64
	Timestamp time.Time
}

// EventRepo provides append and query access to domain events.
type EventRepo interface {
	AppendAnswerEvent(ctx context.Context, data AnswerEventData) error
	AppendSessionEvent(ctx context.Context, data SessionEventData) error
	AppendMasteryEvent(ctx context.Context, data MasteryEventData) error
	AppendDiagnosisEvent(ctx context.Context, data DiagnosisEventData) error
	AppendMissionEvent(ctx context.Context, data MissionEventData) error
	AppendExplanationEvent(ctx context.Context, data ExplanationEventData) error
	AppendLLMRequest(ctx context.Context, data LLMRequestEventData) error

	QueryAnswerEvents(ctx context.Context, opts QueryOpts) ([]AnswerEventRecord, error)
	QuerySessionSummaries(ctx context.Context, opts QueryOpts) ([]SessionSummaryRecord, error)
	QueryMasteryEvents(ctx context.Context, opts QueryOpts) ([]MasteryEventRecord, error)
	QueryMissionEvents(ctx context.Context, opts QueryOpts) ([]MissionEventRecord, error)
	QueryLLMRequests(ctx context.Context, opts QueryOpts) ([]LLMRequestEventRecord, error)

	// ObjectiveAccuracy returns the share of correct answers logged for
	// an objective, and how many answers that is based on.
	ObjectiveAccuracy(ctx context.Context, objectiveID string) (float64, int, error)
}

// PlacementHistoryKeep is how many placement runs are retained.
const PlacementHistoryKeep = 10

// PlacementRun is one completed placement quiz with its full response
// list and the profiles computed from it.
type PlacementRun struct {
	ID                int
	RunID             string
	TakenAt           time.Time
	Responses         []PlacementResponseData
	Profiles          []DomainProfileData
	RecommendedDomain string
}

// PlacementResponseData is one answered placement question.
type PlacementResponseData struct {
	QuestionID string `json:"questionId"`
	Correct    bool   `json:"correct"`
	Confidence int    `json:"confidence"`
}

// DomainProfileData is a stored per-domain placement profile.
type DomainProfileData struct {
	Domain     string  `json:"domain"`
	Correct    int     `json:"correct"`
	Total      int     `json:"total"`
	Confidence float64 `json:"confidence"`
	Mastery    float64 `json:"mastery"`
}

// PlacementRepo manages the placement history.
type PlacementRepo interface {
	Save(ctx context.Context, run *PlacementRun) error

	// Recent returns up to limit runs, newest first.
	Recent(ctx context.Context, limit int) ([]PlacementRun, error)

	// Prune deletes all but the N most recent runs.
	Prune(ctx context.Context, keep int) error
}
