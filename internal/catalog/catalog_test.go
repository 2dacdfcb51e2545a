package catalog

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lauralie13/Spy-Academy/internal/mastery"
)

func loadDefault(t *testing.T) *Catalog {
	t.Helper()
	c, err := Default()
	require.NoError(t, err)
	return c
}

func TestDefault_Loads(t *testing.T) {
	c := loadDefault(t)

	assert.Equal(t, "v1.0.0", c.Version())
	assert.Len(t, c.Objectives(), 8)
	assert.Len(t, c.Questions(), 17)
	assert.Len(t, c.Missions(), 5)
	assert.Len(t, c.Lessons(), 4)
}

func TestDefault_EveryObjectiveHasQuestions(t *testing.T) {
	c := loadDefault(t)
	for _, o := range c.Objectives() {
		assert.NotEmpty(t, c.QuestionsForObjective(o.ID), "objective %s", o.ID)
		assert.Equal(t, mastery.StatusUnseen, o.Status)
		assert.True(t, o.NextDue.IsZero())
	}
}

func TestDomains_FirstAppearanceOrder(t *testing.T) {
	c := loadDefault(t)
	assert.Equal(t, []string{
		"Network Security",
		"Threats & Attacks",
		"Identity & Access",
		"Security Operations",
	}, c.Domains())

	for _, d := range c.Domains() {
		for _, q := range c.QuestionsInDomain(d) {
			assert.Equal(t, d, q.Domain)
		}
	}
}

func TestLookups(t *testing.T) {
	c := loadDefault(t)

	q, ok := c.Question("q-net-1")
	require.True(t, ok)
	assert.Equal(t, "22", q.CorrectOption())
	assert.True(t, q.IsCorrect(1))
	assert.False(t, q.IsCorrect(0))

	text, ok := q.Explanation(ModeCLI)
	assert.True(t, ok)
	assert.Contains(t, text, "ss -tlnp")
	_, ok = q.Explanation(ModeTable)
	assert.False(t, ok)

	_, ok = c.Question("nope")
	assert.False(t, ok)
	_, ok = c.Objective("nope")
	assert.False(t, ok)
	_, ok = c.Mission("nope")
	assert.False(t, ok)

	assert.Len(t, c.LessonsForObjective("ops-logs"), 1)
	assert.Empty(t, c.LessonsForObjective("ops-incident"))
}

func TestMissionTasksDecoded(t *testing.T) {
	c := loadDefault(t)

	m, ok := c.Mission("m-loghunt-1")
	require.True(t, ok)
	lh, ok := m.Tasks.(LogHuntTasks)
	require.True(t, ok, "tasks type %T", m.Tasks)
	assert.Equal(t, 5, lh.Answer)
	assert.Equal(t, 40, lh.MinWords)
	assert.Equal(t, 120, lh.MaxWords)

	m, _ = c.Mission("m-zones-1")
	zb, ok := m.Tasks.(ZoneBuilderTasks)
	require.True(t, ok)
	assert.Equal(t, DefaultZones, zb.Zones)
	assert.Len(t, zb.Assets, 5)

	m, _ = c.Mission("m-dialogue-1")
	d, ok := m.Tasks.(DialogueTasks)
	require.True(t, ok)
	assert.Equal(t, 5, d.MaxPoints())
	assert.Equal(t, 3, d.PassScore)

	m, _ = c.Mission("m-detector-1")
	_, ok = m.Tasks.(DetectorTasks)
	assert.True(t, ok)

	m, _ = c.Mission("m-phish-1")
	p, ok := m.Tasks.(PhishingTasks)
	require.True(t, ok)
	assert.Len(t, p.Questions, 3)
}

func TestAvailableMissions(t *testing.T) {
	c := loadDefault(t)

	ids := func(ms []Mission) []string {
		var out []string
		for _, m := range ms {
			out = append(out, m.ID)
		}
		return out
	}

	assert.Equal(t, []string{"m-loghunt-1"}, ids(c.AvailableMissions(nil)))
	assert.Equal(t, []string{"m-loghunt-1", "m-zones-1"},
		ids(c.AvailableMissions(map[string]bool{"m-loghunt-1": true})))
	assert.False(t, c.IsUnlocked("m-detector-1", map[string]bool{"m-loghunt-1": true}))
}

func TestNew_ValidationErrors(t *testing.T) {
	objectives := []Objective{
		{ID: "a", Domain: "D", Title: "A"},
		{ID: "a", Domain: "D", Title: "dup"},
	}
	questions := []Question{
		{ID: "q1", ObjectiveID: "missing", Domain: "D", Stem: "?", Options: []string{"x", "y"}, AnswerIndex: 5},
	}
	missions := []Mission{
		{ID: "m1", Type: MissionZoneBuilder, Objectives: []string{"ghost"}, Unlocks: []string{"m9"},
			Tasks: ZoneBuilderTasks{Zones: DefaultZones, Assets: []ZoneAsset{{Name: "db", CorrectZone: "Moon"}}}},
	}
	lessons := []Lesson{{ID: "l1", ObjectiveID: "ghost", Title: "t"}}

	_, err := New(Manifest{Version: "banana"}, objectives, questions, missions, lessons)
	require.Error(t, err)
	msg := err.Error()
	for _, want := range []string{
		"not a semantic version",
		`duplicate objective ID: "a"`,
		`nonexistent objective "missing"`,
		"answerIndex 5 out of range",
		`unlocks nonexistent mission "m9"`,
		`unknown zone "Moon"`,
		`lesson "l1" references nonexistent objective`,
	} {
		assert.Contains(t, msg, want)
	}
}

func TestNew_DefaultsVersion(t *testing.T) {
	c, err := New(Manifest{}, []Objective{{ID: "a", Domain: "D", Title: "A"}}, nil, nil, nil)
	require.NoError(t, err)
	assert.Equal(t, DefaultVersion, c.Version())

	c, err = New(Manifest{Version: "2.3.1"}, nil, nil, nil, nil)
	require.NoError(t, err)
	assert.Equal(t, "v2.3.1", c.Version())
}
