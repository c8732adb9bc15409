package content

// Question is one quiz question. Responses runs parallel to Options.
type Question struct {
	ID        int      `yaml:"id"`
	Text      string   `yaml:"text"`
	Options   []string `yaml:"options"`
	Responses []string `yaml:"responses"`
}

// Response returns the reaction line for option i, or "" if none.
func (q Question) Response(i int) string {
	if i < 0 || i >= len(q.Responses) {
		return ""
	}
	return q.Responses[i]
}

// Copy is the text shown on one screen. Body is markdown.
type Copy struct {
	Step     int    `yaml:"step"`
	Title    string `yaml:"title"`
	Subtitle string `yaml:"subtitle"`
	Body     string `yaml:"body"`
	Action   string `yaml:"action"`
	Decline  string `yaml:"decline"`
	Media    string `yaml:"media"`
}

// Catalog is the immutable content for one funnel: questions, labels and copy.
type Catalog struct {
	Version        string     `yaml:"version"`
	Classification string     `yaml:"classification"`
	ProfileLabels  []string   `yaml:"profile_labels"`
	Questions      []Question `yaml:"questions"`
	Screens        []Copy     `yaml:"screens"`
	Bonus          Copy       `yaml:"bonus"`

	byStep map[int]Copy
}

// Question returns the question at index i.
func (c *Catalog) Question(i int) (Question, bool) {
	if i < 0 || i >= len(c.Questions) {
		return Question{}, false
	}
	return c.Questions[i], true
}

// Copy returns the copy for step, or a zero Copy with only Step set.
func (c *Catalog) Copy(step int) Copy {
	if cp, ok := c.byStep[step]; ok {
		return cp
	}
	return Copy{Step: step}
}

func (c *Catalog) index() {
	c.byStep = make(map[int]Copy, len(c.Screens))
	for _, s := range c.Screens {
		c.byStep[s.Step] = s
	}
}
