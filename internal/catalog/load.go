package catalog

import (
	"bytes"
	"embed"
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path"
	"time"

	"github.com/santhosh-tekuri/jsonschema/v6"
	"gopkg.in/yaml.v3"

	"github.com/lauralie13/Spy-Academy/internal/mastery"
)

//go:embed content/*.json
var embedded embed.FS

// Default loads the content pack compiled into the binary.
func Default() (*Catalog, error) {
	sub, err := fs.Sub(embedded, "content")
	if err != nil {
		return nil, fmt.Errorf("open embedded content: %w", err)
	}
	return Load(sub)
}

// LoadDir loads a content pack from a directory on disk.
func LoadDir(dir string) (*Catalog, error) {
	return Load(os.DirFS(dir))
}

// Load reads, schema-validates, decodes and structurally validates a
// content pack. Each document may be JSON or YAML; objectives and
// questions are required, the rest are optional.
func Load(fsys fs.FS) (*Catalog, error) {
	var manifest Manifest
	found, err := decodeDocument(fsys, docManifest, &manifest)
	if err != nil {
		return nil, err
	}
	if !found {
		manifest = Manifest{Name: "unnamed", Version: DefaultVersion}
	}

	var rawObjs []rawObjective
	if found, err := decodeDocument(fsys, docObjectives, &rawObjs); err != nil {
		return nil, err
	} else if !found {
		return nil, fmt.Errorf("content pack has no %s document", docObjectives)
	}

	var questions []Question
	if found, err := decodeDocument(fsys, docQuestions, &questions); err != nil {
		return nil, err
	} else if !found {
		return nil, fmt.Errorf("content pack has no %s document", docQuestions)
	}

	var rawMissions []rawMission
	if _, err := decodeDocument(fsys, docMissions, &rawMissions); err != nil {
		return nil, err
	}

	var lessons []Lesson
	if _, err := decodeDocument(fsys, docLessons, &lessons); err != nil {
		return nil, err
	}

	objectives := make([]Objective, len(rawObjs))
	for i, r := range rawObjs {
		objectives[i] = r.toObjective()
	}

	missions := make([]Mission, 0, len(rawMissions))
	for _, r := range rawMissions {
		m, err := r.toMission()
		if err != nil {
			return nil, fmt.Errorf("mission %q: %w", r.ID, err)
		}
		missions = append(missions, m)
	}

	return New(manifest, objectives, questions, missions, lessons)
}

// decodeDocument finds name.{json,yaml,yml}, validates it against the
// document schema and decodes it into target.
func decodeDocument(fsys fs.FS, name string, target any) (bool, error) {
	raw, file, err := readDocument(fsys, name)
	if err != nil {
		return false, err
	}
	if raw == nil {
		return false, nil
	}

	doc, err := jsonschema.UnmarshalJSON(bytes.NewReader(raw))
	if err != nil {
		return true, fmt.Errorf("parse %s: %w", file, err)
	}
	if err := validateDocument(name, doc); err != nil {
		return true, fmt.Errorf("validate %s: %w", file, err)
	}
	if err := json.Unmarshal(raw, target); err != nil {
		return true, fmt.Errorf("decode %s: %w", file, err)
	}
	return true, nil
}

// readDocument returns the document as JSON bytes. YAML documents are
// converted so schema validation and decoding share one path.
func readDocument(fsys fs.FS, name string) ([]byte, string, error) {
	for _, ext := range []string{".json", ".yaml", ".yml"} {
		file := name + ext
		data, err := fs.ReadFile(fsys, file)
		if errors.Is(err, fs.ErrNotExist) {
			continue
		}
		if err != nil {
			return nil, file, fmt.Errorf("read %s: %w", file, err)
		}
		if path.Ext(file) == ".json" {
			return data, file, nil
		}
		converted, err := yamlToJSON(data)
		if err != nil {
			return nil, file, fmt.Errorf("convert %s: %w", file, err)
		}
		return converted, file, nil
	}
	return nil, "", nil
}

func yamlToJSON(data []byte) ([]byte, error) {
	var v any
	if err := yaml.Unmarshal(data, &v); err != nil {
		return nil, err
	}
	return json.Marshal(v)
}

type rawObjective struct {
	ID            string   `json:"id"`
	Domain        string   `json:"domain"`
	Title         string   `json:"title"`
	Weight        float64  `json:"weight"`
	Status        string   `json:"status"`
	NextDue       *string  `json:"nextDue"`
	Mastery       *float64 `json:"mastery"`
	Misconception bool     `json:"misconception"`
}

// toObjective coerces loosely-typed content into an Objective: unknown
// statuses become unseen, a missing or unparsable nextDue is unset and
// mastery is clamped.
func (r rawObjective) toObjective() Objective {
	o := Objective{
		ID:            r.ID,
		Domain:        r.Domain,
		Title:         r.Title,
		Weight:        r.Weight,
		Status:        mastery.ParseStatus(r.Status),
		Misconception: r.Misconception,
	}
	if o.Weight <= 0 {
		o.Weight = 1
	}
	if r.Mastery != nil {
		o.Mastery = mastery.Clamp(*r.Mastery)
	}
	if r.NextDue != nil && *r.NextDue != "" {
		if t, err := time.Parse(time.RFC3339, *r.NextDue); err == nil {
			o.NextDue = t
		}
	}
	return o
}

type rawMission struct {
	ID         string          `json:"id"`
	Title      string          `json:"title"`
	Type       string          `json:"type"`
	Objectives []string        `json:"objectives"`
	Lore       string          `json:"lore"`
	Tasks      json.RawMessage `json:"tasks"`
	Unlocks    []string        `json:"unlocks"`
}

func (r rawMission) toMission() (Mission, error) {
	mt := MissionType(r.Type)
	tasks, err := decodeTasks(mt, r.Tasks)
	if err != nil {
		return Mission{}, err
	}
	return Mission{
		ID:         r.ID,
		Title:      r.Title,
		Type:       mt,
		Objectives: r.Objectives,
		Lore:       r.Lore,
		Tasks:      tasks,
		Unlocks:    r.Unlocks,
	}, nil
}
