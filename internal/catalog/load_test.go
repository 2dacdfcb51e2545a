package catalog

import (
	"testing"
	"testing/fstest"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lauralie13/Spy-Academy/internal/mastery"
)

const yamlObjectives = `
- id: obj-a
  domain: Crypto
  title: Hashing
  status: learning
  mastery: 140
  nextDue: "2025-01-02T03:04:05Z"
- id: obj-b
  domain: Crypto
  title: Signatures
  status: rusty
  weight: 0
`

const yamlQuestions = `
- id: q-a
  objectiveId: obj-a
  domain: Crypto
  stem: Which is a hash function?
  options: [AES, SHA-256]
  answerIndex: 1
  difficulty: 2
`

func TestLoad_YAMLWithCoercion(t *testing.T) {
	fsys := fstest.MapFS{
		"manifest.yaml":   {Data: []byte("version: 3.1.0\nname: crypto\n")},
		"objectives.yaml": {Data: []byte(yamlObjectives)},
		"questions.yml":   {Data: []byte(yamlQuestions)},
		"missions.json": {Data: []byte(`[{"id":"m1","title":"Mystery","type":"hologram","tasks":{"beam":true}}]`)},
	}

	c, err := Load(fsys)
	require.NoError(t, err)
	assert.Equal(t, "v3.1.0", c.Version())

	a, ok := c.Objective("obj-a")
	require.True(t, ok)
	assert.Equal(t, mastery.StatusLearning, a.Status)
	assert.Equal(t, 100.0, a.Mastery, "mastery is clamped")
	assert.Equal(t, time.Date(2025, 1, 2, 3, 4, 5, 0, time.UTC), a.NextDue.UTC())
	assert.Equal(t, 1.0, a.Weight)

	b, _ := c.Objective("obj-b")
	assert.Equal(t, mastery.StatusUnseen, b.Status, "unknown status coerced")
	assert.Equal(t, 1.0, b.Weight, "non-positive weight defaults to 1")

	m, ok := c.Mission("m1")
	require.True(t, ok)
	raw, ok := m.Tasks.(RawTasks)
	require.True(t, ok, "unknown mission types keep raw payloads")
	assert.Equal(t, MissionType("hologram"), raw.MissionType())
	assert.JSONEq(t, `{"beam":true}`, string(raw.Raw))
}

func TestLoad_SchemaViolation(t *testing.T) {
	fsys := fstest.MapFS{
		"objectives.json": {Data: []byte(`[{"id":"a","domain":"D"}]`)},
		"questions.json":  {Data: []byte(`[]`)},
	}
	_, err := Load(fsys)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "validate objectives.json")
}

func TestLoad_BadAltExplanationMode(t *testing.T) {
	fsys := fstest.MapFS{
		"objectives.json": {Data: []byte(`[{"id":"a","domain":"D","title":"A"}]`)},
		"questions.json": {Data: []byte(`[{"id":"q","objectiveId":"a","domain":"D","stem":"?","options":["x","y"],"answerIndex":0,
			"altExplanations":[{"mode":"interpretive-dance","text":"..."}]}]`)},
	}
	_, err := Load(fsys)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "questions.json")
}

func TestLoad_MissingRequiredDocument(t *testing.T) {
	fsys := fstest.MapFS{
		"objectives.json": {Data: []byte(`[]`)},
	}
	_, err := Load(fsys)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "no questions document")
}

func TestLoad_InvalidYAML(t *testing.T) {
	fsys := fstest.MapFS{
		"objectives.yaml": {Data: []byte("- id: [unterminated")},
	}
	_, err := Load(fsys)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "convert objectives.yaml")
}

func TestLoad_UnparsableNextDueIsUnset(t *testing.T) {
	fsys := fstest.MapFS{
		"objectives.json": {Data: []byte(`[{"id":"a","domain":"D","title":"A","nextDue":"tomorrow-ish"}]`)},
		"questions.json":  {Data: []byte(`[]`)},
	}
	c, err := Load(fsys)
	require.NoError(t, err)
	o, _ := c.Objective("a")
	assert.True(t, o.NextDue.IsZero())
}
