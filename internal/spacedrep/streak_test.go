package spacedrep

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestConsecutiveCorrect(t *testing.T) {
	base := time.Date(2025, 3, 10, 9, 0, 0, 0, time.UTC)
	at := func(i int) time.Time { return base.Add(time.Duration(i) * time.Minute) }

	tests := []struct {
		name    string
		answers []Answer
		want    int
	}{
		{"empty", nil, 0},
		{"latest wrong", []Answer{{true, at(0)}, {false, at(1)}}, 0},
		{"run after a miss", []Answer{
			{true, at(0)}, {true, at(1)}, {false, at(2)}, {true, at(3)}, {true, at(4)},
		}, 2},
		{"all correct", []Answer{{true, at(0)}, {true, at(1)}, {true, at(2)}}, 3},
		{"input order ignored", []Answer{
			{true, at(4)}, {false, at(2)}, {true, at(3)}, {true, at(0)},
		}, 2},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, ConsecutiveCorrect(tt.answers))
		})
	}
}

func TestConsecutiveCorrect_DoesNotMutateInput(t *testing.T) {
	base := time.Date(2025, 3, 10, 9, 0, 0, 0, time.UTC)
	in := []Answer{{true, base}, {false, base.Add(time.Minute)}}
	ConsecutiveCorrect(in)
	assert.True(t, in[0].Correct)
	assert.Equal(t, base, in[0].At)
}
