package scoring

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lauralie13/Spy-Academy/internal/catalog"
)

const authLog = `Mar 10 02:11:01 relay sshd[811]: Failed password for root from 203.0.113.7 port 50122 ssh2
Mar 10 02:11:03 relay sshd[811]: Failed password for root from 203.0.113.7 port 50124 ssh2
Mar 10 02:12:44 relay sshd[902]: Accepted publickey for alice from 198.51.100.4 port 40100 ssh2
Mar 10 02:14:22 relay sshd[915]: failed password for bob from 192.0.2.55 port 41000 ssh2`

func TestCountWords(t *testing.T) {
	assert.Equal(t, 0, CountWords("   "))
	assert.Equal(t, 4, CountWords("blocked  203.0.113.7\n after lockout"))
}

func TestFailedLoginsByIP(t *testing.T) {
	counts := FailedLoginsByIP(authLog)
	assert.Equal(t, map[string]int{"203.0.113.7": 2, "192.0.2.55": 1}, counts)

	ip, n := NoisiestIP(authLog)
	assert.Equal(t, "203.0.113.7", ip)
	assert.Equal(t, 2, n)

	ip, n = NoisiestIP("nothing here")
	assert.Equal(t, "", ip)
	assert.Equal(t, 0, n)
}

func TestEvaluateLogHunt(t *testing.T) {
	tasks := catalog.LogHuntTasks{
		LogText:           authLog,
		Answer:            2,
		MitigationOptions: []string{"ignore", "lockout"},
		MitigationIndex:   1,
		MinWords:          4,
		MaxWords:          10,
	}
	s := EvaluateLogHunt(tasks, LogHuntAttempt{Count: 2, Mitigation: 1, Report: "root brute forced from 203.0.113.7"})
	assert.Equal(t, 100, s.Total)

	s = EvaluateLogHunt(tasks, LogHuntAttempt{Count: 3, Mitigation: -1, Report: ""})
	assert.Equal(t, 0, s.Total)
	assert.Equal(t, GradeF, s.Grade)
}

func TestEvaluateZoneBuilder(t *testing.T) {
	tasks := catalog.ZoneBuilderTasks{
		Zones: catalog.DefaultZones,
		Assets: []catalog.ZoneAsset{
			{Name: "web", CorrectZone: "DMZ"},
			{Name: "db", CorrectZone: "Restricted"},
			{Name: "hr", CorrectZone: "Internal"},
			{Name: "blog", CorrectZone: "Public"},
		},
	}
	s := EvaluateZoneBuilder(tasks, map[string]string{"web": "DMZ", "db": "Restricted", "hr": "Internal", "blog": "DMZ"})
	assert.Equal(t, MissionScore{30, 30, 15, 75, GradeC}, s)

	s = EvaluateZoneBuilder(catalog.ZoneBuilderTasks{}, nil)
	assert.Equal(t, 0, s.Total)
}

func TestEvaluateDialogue(t *testing.T) {
	tasks := catalog.DialogueTasks{
		PassScore: 3,
		Steps: []catalog.DialogueStep{
			{Options: []catalog.DialogueOption{{Score: 0, Note: "bad"}, {Score: 2, Note: "good"}}},
			{Options: []catalog.DialogueOption{{Score: 2}, {Score: 0}}},
			{Options: []catalog.DialogueOption{{Score: 1}, {Score: 0}}},
		},
	}

	out := EvaluateDialogue(tasks, []int{1, 0, 0})
	assert.Equal(t, 5, out.Points)
	assert.Equal(t, 5, out.MaxPoints)
	assert.True(t, out.Passed)
	assert.Equal(t, 100, out.Score)
	assert.Equal(t, []string{"good"}, out.Detail)

	out = EvaluateDialogue(tasks, []int{0, 0, 1})
	assert.Equal(t, 2, out.Points)
	assert.False(t, out.Passed)
	assert.Equal(t, 40, out.Score)

	out = EvaluateDialogue(tasks, []int{7})
	assert.Equal(t, 0, out.Points)
}

func TestEvaluateDetector(t *testing.T) {
	tasks := catalog.DetectorTasks{
		DatasetCSV:     "user,posts,likes,follows\nnova,12,9,40\nbot_1,85,0,2\nbot_2,64,1,1\nquill,30,4,18\nbot_3,120,0,0",
		ThresholdField: "posts",
	}

	out, err := EvaluateDetector(tasks, 20)
	require.NoError(t, err)
	assert.Equal(t, []string{"bot_1", "bot_2", "bot_3"}, out.Detail)
	assert.True(t, out.Passed)
	assert.Equal(t, 100, out.Score)

	out, err = EvaluateDetector(tasks, 100)
	require.NoError(t, err)
	assert.Equal(t, []string{"bot_3"}, out.Detail)
	assert.False(t, out.Passed)
	assert.Equal(t, 50, out.Score)

	_, err = EvaluateDetector(catalog.DetectorTasks{DatasetCSV: "user,posts\n\"broken,1"}, 1)
	assert.Error(t, err)
}

func TestEvaluatePhishing(t *testing.T) {
	tasks := catalog.PhishingTasks{Questions: []catalog.PhishingQuestion{
		{Prompt: "SPF pass?", Answer: "no"},
		{Prompt: "Verify?", Answer: "yes"},
	}}

	out := EvaluatePhishing(tasks, []string{" No", "YES"})
	assert.True(t, out.Passed)
	assert.Equal(t, 100, out.Score)

	out = EvaluatePhishing(tasks, []string{"no"})
	assert.False(t, out.Passed)
	assert.Equal(t, 50, out.Score)

	out = EvaluatePhishing(catalog.PhishingTasks{}, nil)
	assert.False(t, out.Passed)
	assert.Equal(t, 0, out.Score)
}
