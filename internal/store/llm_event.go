package store

import (
	"context"
	"fmt"

	entsql "entgo.io/ent/dialect/sql"
)

func (r *eventRepo) AppendLLMRequest(ctx context.Context, data LLMRequestEventData) error {
	err := r.insertEvent(ctx, llmRequestEventsTable,
		[]string{"provider", "model", "purpose", "input_tokens", "output_tokens", "latency_ms", "success", "error_message"},
		data.Provider, data.Model, data.Purpose, data.InputTokens, data.OutputTokens,
		data.LatencyMs, data.Success, data.ErrorMessage,
	)
	if err != nil {
		return fmt.Errorf("save LLM request event: %w", err)
	}
	return nil
}

func (r *eventRepo) QueryLLMRequests(ctx context.Context, opts QueryOpts) ([]LLMRequestEventRecord, error) {
	sel := selectEvents(llmRequestEventsTable, opts,
		"provider", "model", "purpose", "input_tokens", "output_tokens", "latency_ms", "success", "error_message")

	var records []LLMRequestEventRecord
	err := queryRows(ctx, r.drv, sel, func(rows *entsql.Rows) error {
		var e LLMRequestEventRecord
		if err := rows.Scan(&e.Sequence, &e.Timestamp, &e.Provider, &e.Model, &e.Purpose,
			&e.InputTokens, &e.OutputTokens, &e.LatencyMs, &e.Success, &e.ErrorMessage); err != nil {
			return err
		}
		records = append(records, e)
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("query LLM requests: %w", err)
	}
	return records, nil
}
