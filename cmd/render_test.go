package cmd

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/lauralie13/Spy-Academy/internal/store"
)

func TestFormatDue(t *testing.T) {
	now := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	assert.Equal(t, "unscheduled", formatDue(time.Time{}, now))
	assert.Equal(t, "now", formatDue(now.Add(-time.Hour), now))
	assert.Equal(t, "in 12h", formatDue(now.Add(12*time.Hour), now))
	assert.Equal(t, "in 3d", formatDue(now.Add(72*time.Hour), now))
}

func TestTruncate(t *testing.T) {
	assert.Equal(t, "short", truncate("short", 10))
	assert.Equal(t, "abcd…", truncate("abcdefgh", 5))
}

func TestUsageByModel(t *testing.T) {
	rec := func(model string, in, out int) store.LLMRequestEventRecord {
		return store.LLMRequestEventRecord{LLMRequestEventData: store.LLMRequestEventData{
			Model: model, InputTokens: in, OutputTokens: out,
		}}
	}
	usage := usageByModel([]store.LLMRequestEventRecord{
		rec("a", 10, 1),
		rec("b", 5, 5),
		rec("b", 5, 5),
	})
	assert.Len(t, usage, 2)
	assert.Equal(t, "b", usage[0].model)
	assert.Equal(t, 2, usage[0].calls)
	assert.Equal(t, 10, usage[0].inputTokens)
	assert.Equal(t, "a", usage[1].model)
}
