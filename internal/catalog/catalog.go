// Package catalog holds the immutable learning content: objectives,
// questions, missions and lessons. A Catalog is read-only after New and
// safe to share between goroutines.
package catalog

// Catalog indexes a validated content pack.
type Catalog struct {
	manifest   Manifest
	objectives []Objective
	questions  []Question
	missions   []Mission
	lessons    []Lesson

	objByID       map[string]int
	questionByID  map[string]int
	missionByID   map[string]int
	lessonByID    map[string]int
	byObjective   map[string][]int // objective ID -> question indices
	byDomain      map[string][]int // domain -> question indices
	domains       []string
	lockedBy      map[string][]string // mission ID -> missions that unlock it
	lessonsForObj map[string][]int
}

// New validates the content and builds a Catalog.
func New(m Manifest, objectives []Objective, questions []Question, missions []Mission, lessons []Lesson) (*Catalog, error) {
	if m.Version == "" {
		m.Version = DefaultVersion
	}
	m.Version = canonicalVersion(m.Version)

	if err := validate(m, objectives, questions, missions, lessons); err != nil {
		return nil, err
	}

	c := &Catalog{
		manifest:      m,
		objectives:    objectives,
		questions:     questions,
		missions:      missions,
		lessons:       lessons,
		objByID:       make(map[string]int, len(objectives)),
		questionByID:  make(map[string]int, len(questions)),
		missionByID:   make(map[string]int, len(missions)),
		lessonByID:    make(map[string]int, len(lessons)),
		byObjective:   make(map[string][]int),
		byDomain:      make(map[string][]int),
		lockedBy:      make(map[string][]string),
		lessonsForObj: make(map[string][]int),
	}

	for i, o := range objectives {
		c.objByID[o.ID] = i
	}
	for i, q := range questions {
		c.questionByID[q.ID] = i
		c.byObjective[q.ObjectiveID] = append(c.byObjective[q.ObjectiveID], i)
		if _, seen := c.byDomain[q.Domain]; !seen {
			c.domains = append(c.domains, q.Domain)
		}
		c.byDomain[q.Domain] = append(c.byDomain[q.Domain], i)
	}
	for i, ms := range missions {
		c.missionByID[ms.ID] = i
		for _, next := range ms.Unlocks {
			c.lockedBy[next] = append(c.lockedBy[next], ms.ID)
		}
	}
	for i, l := range lessons {
		c.lessonByID[l.ID] = i
		if l.ObjectiveID != "" {
			c.lessonsForObj[l.ObjectiveID] = append(c.lessonsForObj[l.ObjectiveID], i)
		}
	}
	return c, nil
}

// Manifest returns the content pack manifest.
func (c *Catalog) Manifest() Manifest { return c.manifest }

// Version returns the canonical content version, e.g. "v1.2.0".
func (c *Catalog) Version() string { return c.manifest.Version }

// Objectives returns a copy of all objectives in catalog order, carrying
// their content-supplied initial state.
func (c *Catalog) Objectives() []Objective {
	out := make([]Objective, len(c.objectives))
	copy(out, c.objectives)
	return out
}

// Objective returns the objective with the given ID.
func (c *Catalog) Objective(id string) (Objective, bool) {
	i, ok := c.objByID[id]
	if !ok {
		return Objective{}, false
	}
	return c.objectives[i], true
}

// Questions returns all questions in catalog order.
func (c *Catalog) Questions() []Question {
	out := make([]Question, len(c.questions))
	copy(out, c.questions)
	return out
}

// Question returns the question with the given ID.
func (c *Catalog) Question(id string) (Question, bool) {
	i, ok := c.questionByID[id]
	if !ok {
		return Question{}, false
	}
	return c.questions[i], true
}

// QuestionsForObjective returns the questions that test an objective.
func (c *Catalog) QuestionsForObjective(objectiveID string) []Question {
	return c.pick(c.byObjective[objectiveID])
}

// QuestionsInDomain returns the questions of one domain.
func (c *Catalog) QuestionsInDomain(domain string) []Question {
	return c.pick(c.byDomain[domain])
}

// Domains returns the distinct question domains in order of first
// appearance.
func (c *Catalog) Domains() []string {
	out := make([]string, len(c.domains))
	copy(out, c.domains)
	return out
}

func (c *Catalog) pick(idx []int) []Question {
	out := make([]Question, len(idx))
	for i, j := range idx {
		out[i] = c.questions[j]
	}
	return out
}

// Missions returns all missions in catalog order.
func (c *Catalog) Missions() []Mission {
	out := make([]Mission, len(c.missions))
	copy(out, c.missions)
	return out
}

// Mission returns the mission with the given ID.
func (c *Catalog) Mission(id string) (Mission, bool) {
	i, ok := c.missionByID[id]
	if !ok {
		return Mission{}, false
	}
	return c.missions[i], true
}

// IsUnlocked reports whether a mission is playable given the set of
// completed mission IDs. A mission nobody unlocks is always available;
// otherwise completing any one of its unlockers opens it.
func (c *Catalog) IsUnlocked(missionID string, completed map[string]bool) bool {
	lockers := c.lockedBy[missionID]
	if len(lockers) == 0 {
		return true
	}
	for _, id := range lockers {
		if completed[id] {
			return true
		}
	}
	return false
}

// AvailableMissions returns the unlocked missions in catalog order.
func (c *Catalog) AvailableMissions(completed map[string]bool) []Mission {
	var out []Mission
	for _, m := range c.missions {
		if c.IsUnlocked(m.ID, completed) {
			out = append(out, m)
		}
	}
	return out
}

// Lessons returns all lessons in catalog order.
func (c *Catalog) Lessons() []Lesson {
	out := make([]Lesson, len(c.lessons))
	copy(out, c.lessons)
	return out
}

// Lesson returns the lesson with the given ID.
func (c *Catalog) Lesson(id string) (Lesson, bool) {
	i, ok := c.lessonByID[id]
	if !ok {
		return Lesson{}, false
	}
	return c.lessons[i], true
}

// LessonsForObjective returns the lessons attached to an objective.
func (c *Catalog) LessonsForObjective(objectiveID string) []Lesson {
	idx := c.lessonsForObj[objectiveID]
	out := make([]Lesson, len(idx))
	for i, j := range idx {
		out[i] = c.lessons[j]
	}
	return out
}
