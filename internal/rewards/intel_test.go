package rewards

import "testing"

func TestQuestionIntel(t *testing.T) {
	tests := []struct {
		correct    bool
		confidence int
		want       int
	}{
		{true, 0, 10},
		{true, 44, 14},
		{true, 45, 15},
		{true, 80, 18},
		{true, 100, 20},
		{false, 100, 5},
		{false, 0, 5},
	}
	for _, tt := range tests {
		if got := QuestionIntel(tt.correct, tt.confidence); got != tt.want {
			t.Errorf("QuestionIntel(%v, %d) = %d, want %d", tt.correct, tt.confidence, got, tt.want)
		}
	}
}

func TestMissionIntel(t *testing.T) {
	tests := []struct {
		score float64
		want  int
	}{
		{100, 200},
		{0, 0},
		{72.4, 145},
		{72.2, 144},
	}
	for _, tt := range tests {
		if got := MissionIntel(tt.score); got != tt.want {
			t.Errorf("MissionIntel(%v) = %d, want %d", tt.score, got, tt.want)
		}
	}
}

func TestNextStreakMilestone(t *testing.T) {
	tests := []struct {
		current int
		want    int
	}{
		{0, 5},
		{5, 10},
		{19, 20},
		{20, 25},
		{27, 30},
	}
	for _, tt := range tests {
		if got := NextStreakMilestone(tt.current); got != tt.want {
			t.Errorf("NextStreakMilestone(%d) = %d, want %d", tt.current, got, tt.want)
		}
	}
}

func TestIsStreakMilestone(t *testing.T) {
	if IsStreakMilestone(0) {
		t.Error("0 should not be a milestone")
	}
	if !IsStreakMilestone(10) {
		t.Error("10 should be a milestone")
	}
	if IsStreakMilestone(7) {
		t.Error("7 should not be a milestone")
	}
}
