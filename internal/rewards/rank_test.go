package rewards

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestRankFor(t *testing.T) {
	tests := []struct {
		intel int
		want  Rank
	}{
		{0, RankCadet},
		{999, RankCadet},
		{1000, RankAgent},
		{4999, RankAgent},
		{5000, RankAnalyst},
		{9999, RankAnalyst},
		{10000, RankOperator},
		{250000, RankOperator},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, RankFor(tt.intel), "intel %d", tt.intel)
	}
}

func TestParseRank(t *testing.T) {
	assert.Equal(t, RankAnalyst, ParseRank("Analyst"))
	assert.Equal(t, RankCadet, ParseRank("General"))
	assert.Equal(t, RankCadet, ParseRank(""))
}

func TestRankNext(t *testing.T) {
	next, ok := RankCadet.Next()
	assert.True(t, ok)
	assert.Equal(t, RankAgent, next)

	_, ok = RankOperator.Next()
	assert.False(t, ok)
}

func TestProgress(t *testing.T) {
	assert.InDelta(t, 0.0, Progress(0), 1e-9)
	assert.InDelta(t, 0.5, Progress(500), 1e-9)
	assert.InDelta(t, 0.25, Progress(2000), 1e-9)
	assert.InDelta(t, 1.0, Progress(12000), 1e-9)
}
