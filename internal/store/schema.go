package store

import (
	"entgo.io/ent/dialect/sql/schema"
	"entgo.io/ent/schema/field"
)

// Table names.
const (
	snapshotsTable         = "snapshots"
	answerEventsTable      = "answer_events"
	sessionEventsTable     = "session_events"
	masteryEventsTable     = "mastery_events"
	diagnosisEventsTable   = "diagnosis_events"
	missionEventsTable     = "mission_events"
	explanationEventsTable = "explanation_events"
	llmRequestEventsTable  = "llm_request_events"
	placementRunsTable     = "placement_runs"
)

// eventColumns returns the columns every event table starts with: the
// primary key, the global sequence number and the UTC timestamp.
func eventColumns(extra ...*schema.Column) []*schema.Column {
	return append([]*schema.Column{
		{Name: "id", Type: field.TypeInt, Increment: true},
		{Name: "sequence", Type: field.TypeInt64, Unique: true},
		{Name: "timestamp", Type: field.TypeTime},
	}, extra...)
}

// eventTable builds an event table indexed on sequence and timestamp.
func eventTable(name string, extra ...*schema.Column) *schema.Table {
	cols := eventColumns(extra...)
	return &schema.Table{
		Name:       name,
		Columns:    cols,
		PrimaryKey: []*schema.Column{cols[0]},
		Indexes: []*schema.Index{
			{Name: name + "_sequence", Columns: []*schema.Column{cols[1]}},
			{Name: name + "_timestamp", Columns: []*schema.Column{cols[2]}},
		},
	}
}

var (
	// SnapshotsColumns holds the columns for the "snapshots" table.
	SnapshotsColumns = []*schema.Column{
		{Name: "id", Type: field.TypeInt, Increment: true},
		{Name: "sequence", Type: field.TypeInt64},
		{Name: "timestamp", Type: field.TypeTime},
		{Name: "data", Type: field.TypeJSON},
	}
	// SnapshotsTable holds the schema information for the "snapshots" table.
	SnapshotsTable = &schema.Table{
		Name:       snapshotsTable,
		Columns:    SnapshotsColumns,
		PrimaryKey: []*schema.Column{SnapshotsColumns[0]},
		Indexes: []*schema.Index{
			{Name: "snapshot_timestamp", Columns: []*schema.Column{SnapshotsColumns[2]}},
			{Name: "snapshot_sequence", Columns: []*schema.Column{SnapshotsColumns[1]}},
		},
	}

	// AnswerEventsTable records every answered question.
	AnswerEventsTable = eventTable(answerEventsTable,
		&schema.Column{Name: "session_id", Type: field.TypeString, Default: ""},
		&schema.Column{Name: "source", Type: field.TypeString},
		&schema.Column{Name: "question_id", Type: field.TypeString},
		&schema.Column{Name: "objective_id", Type: field.TypeString},
		&schema.Column{Name: "domain", Type: field.TypeString},
		&schema.Column{Name: "correct", Type: field.TypeBool},
		&schema.Column{Name: "confidence", Type: field.TypeInt},
		&schema.Column{Name: "time_ms", Type: field.TypeInt, Default: 0},
	)

	// SessionEventsTable records placement and drill session boundaries.
	SessionEventsTable = eventTable(sessionEventsTable,
		&schema.Column{Name: "session_id", Type: field.TypeString},
		&schema.Column{Name: "kind", Type: field.TypeString},
		&schema.Column{Name: "action", Type: field.TypeString},
		&schema.Column{Name: "questions_served", Type: field.TypeInt, Default: 0},
		&schema.Column{Name: "correct_answers", Type: field.TypeInt, Default: 0},
		&schema.Column{Name: "duration_secs", Type: field.TypeInt, Default: 0},
	)

	// MasteryEventsTable records objective status transitions.
	MasteryEventsTable = eventTable(masteryEventsTable,
		&schema.Column{Name: "session_id", Type: field.TypeString, Default: ""},
		&schema.Column{Name: "objective_id", Type: field.TypeString},
		&schema.Column{Name: "from_state", Type: field.TypeString},
		&schema.Column{Name: "to_state", Type: field.TypeString},
		&schema.Column{Name: "trigger", Type: field.TypeString},
		&schema.Column{Name: "mastery", Type: field.TypeFloat64, Default: 0},
	)

	// DiagnosisEventsTable records the classification of wrong answers.
	DiagnosisEventsTable = eventTable(diagnosisEventsTable,
		&schema.Column{Name: "session_id", Type: field.TypeString, Default: ""},
		&schema.Column{Name: "question_id", Type: field.TypeString},
		&schema.Column{Name: "objective_id", Type: field.TypeString},
		&schema.Column{Name: "category", Type: field.TypeString},
		&schema.Column{Name: "confidence", Type: field.TypeFloat64},
		&schema.Column{Name: "classifier_name", Type: field.TypeString},
	)

	// MissionEventsTable records completed missions.
	MissionEventsTable = eventTable(missionEventsTable,
		&schema.Column{Name: "mission_id", Type: field.TypeString},
		&schema.Column{Name: "mission_type", Type: field.TypeString},
		&schema.Column{Name: "score", Type: field.TypeInt},
		&schema.Column{Name: "grade", Type: field.TypeString, Default: ""},
		&schema.Column{Name: "intel", Type: field.TypeInt, Default: 0},
	)

	// ExplanationEventsTable records alternative explanations shown.
	ExplanationEventsTable = eventTable(explanationEventsTable,
		&schema.Column{Name: "question_id", Type: field.TypeString},
		&schema.Column{Name: "mode", Type: field.TypeString},
		&schema.Column{Name: "generated", Type: field.TypeBool, Default: false},
	)

	// LLMRequestEventsTable records every LLM API call for cost tracking
	// and debugging.
	LLMRequestEventsTable = eventTable(llmRequestEventsTable,
		&schema.Column{Name: "provider", Type: field.TypeString},
		&schema.Column{Name: "model", Type: field.TypeString},
		&schema.Column{Name: "purpose", Type: field.TypeString},
		&schema.Column{Name: "input_tokens", Type: field.TypeInt, Default: 0},
		&schema.Column{Name: "output_tokens", Type: field.TypeInt, Default: 0},
		&schema.Column{Name: "latency_ms", Type: field.TypeInt64, Default: 0},
		&schema.Column{Name: "success", Type: field.TypeBool},
		&schema.Column{Name: "error_message", Type: field.TypeString, Default: ""},
	)

	// PlacementRunsColumns holds the columns for the "placement_runs" table.
	PlacementRunsColumns = []*schema.Column{
		{Name: "id", Type: field.TypeInt, Increment: true},
		{Name: "run_id", Type: field.TypeString, Unique: true},
		{Name: "taken_at", Type: field.TypeTime},
		{Name: "responses", Type: field.TypeJSON},
		{Name: "profiles", Type: field.TypeJSON},
		{Name: "recommended_domain", Type: field.TypeString, Default: ""},
	}
	// PlacementRunsTable holds the schema information for the "placement_runs" table.
	PlacementRunsTable = &schema.Table{
		Name:       placementRunsTable,
		Columns:    PlacementRunsColumns,
		PrimaryKey: []*schema.Column{PlacementRunsColumns[0]},
		Indexes: []*schema.Index{
			{Name: "placementrun_taken_at", Columns: []*schema.Column{PlacementRunsColumns[2]}},
		},
	}

	// Tables holds all the tables in the schema.
	Tables = []*schema.Table{
		SnapshotsTable,
		AnswerEventsTable,
		SessionEventsTable,
		MasteryEventsTable,
		DiagnosisEventsTable,
		MissionEventsTable,
		ExplanationEventsTable,
		LLMRequestEventsTable,
		PlacementRunsTable,
	}
)
