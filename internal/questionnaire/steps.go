package questionnaire

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// Step is one entry of the canonical onboarding table. Index is the position
// in the full table and exists for progress display and the developer
// jump-to-step affordance; sequencing never hardcodes it.
type Step struct {
	Slug  string
	Title string
	Route string
	Index int
	Info  bool // marketing/informational interstitial, toggleable
}

// steps is the single authoritative ordering. Historical flow variants
// disagreed on step count and placement; this table is the one that wins.
var steps = []Step{
	{Slug: "gender", Title: "About you", Route: "/onboarding/gender"},
	{Slug: "workout", Title: "Workouts per week", Route: "/onboarding/workout"},
	{Slug: "info-sustainable", Title: "Sustainable habits", Route: "/onboarding/info-sustainable", Info: true},
	{Slug: "measurements", Title: "Height and weight", Route: "/onboarding/measurements"},
	{Slug: "age", Title: "Your age", Route: "/onboarding/age"},
	{Slug: "weight-goal", Title: "Goal weight", Route: "/onboarding/weight-goal"},
	{Slug: "overall-goal", Title: "Overall goal", Route: "/onboarding/overall-goal"},
	{Slug: "info-progress", Title: "Progress preview", Route: "/onboarding/info-progress", Info: true},
	{Slug: "goal-speed", Title: "Weekly pace", Route: "/onboarding/goal-speed"},
	{Slug: "info-comparison", Title: "Plan comparison", Route: "/onboarding/info-comparison", Info: true},
	{Slug: "diet", Title: "Diet type", Route: "/onboarding/diet"},
	{Slug: "cuisine", Title: "Cuisine preferences", Route: "/onboarding/cuisine"},
	{Slug: "avoid", Title: "Foods to avoid", Route: "/onboarding/avoid"},
	{Slug: "motivation", Title: "Motivation", Route: "/onboarding/motivation"},
	{Slug: "info-personalising", Title: "Personalising", Route: "/onboarding/info-personalising", Info: true},
	{Slug: "meals", Title: "Meal preferences", Route: "/onboarding/meals"},
	{Slug: "fasting", Title: "Fasting", Route: "/onboarding/fasting"},
	{Slug: "loading", Title: "Creating your plan", Route: "/onboarding/loading"},
	{Slug: "results", Title: "Your targets", Route: "/onboarding/results"},
	{Slug: "account", Title: "Create your account", Route: "/onboarding/account"},
	{Slug: "payment", Title: "Payment", Route: "/onboarding/payment"},
}

func init() {
	for i := range steps {
		steps[i].Index = i + 1
	}
}

// StepsConfig toggles parts of the table without changing its order. The
// zero value disables nothing.
type StepsConfig struct {
	IncludeInfoSteps bool     `yaml:"include_info_steps"`
	IncludePayment   bool     `yaml:"include_payment"`
	Disabled         []string `yaml:"disabled"`
}

func DefaultStepsConfig() StepsConfig {
	return StepsConfig{IncludeInfoSteps: false, IncludePayment: false}
}

// LoadStepsConfig reads a yaml override. A missing file yields the default
// configuration, not an error.
func LoadStepsConfig(path string) (StepsConfig, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return DefaultStepsConfig(), nil
		}
		return StepsConfig{}, fmt.Errorf("read steps config: %w", err)
	}
	var cfg StepsConfig
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return StepsConfig{}, fmt.Errorf("parse steps config: %w", err)
	}
	return cfg, nil
}

// Sequencer resolves next/back over the active subset of the canonical
// table. Resolution is purely positional; answers never influence it.
type Sequencer struct {
	active []Step
}

func NewSequencer(cfg StepsConfig) *Sequencer {
	disabled := make(map[string]bool, len(cfg.Disabled))
	for _, slug := range cfg.Disabled {
		disabled[slug] = true
	}
	active := make([]Step, 0, len(steps))
	for _, st := range steps {
		if st.Info && !cfg.IncludeInfoSteps {
			continue
		}
		if st.Slug == "payment" && !cfg.IncludePayment {
			continue
		}
		if disabled[st.Slug] {
			continue
		}
		active = append(active, st)
	}
	return &Sequencer{active: active}
}

// Active returns the steps currently in the flow, in order.
func (s *Sequencer) Active() []Step {
	return append([]Step(nil), s.active...)
}

func (s *Sequencer) First() Step {
	return s.active[0]
}

// Find looks a step up by slug within the active table.
func (s *Sequencer) Find(slug string) (Step, bool) {
	for _, st := range s.active {
		if st.Slug == slug {
			return st, true
		}
	}
	return Step{}, false
}

// StepAt looks a step up by its full-table index, for developer navigation.
// Disabled steps resolve too; navigation to them is the caller's choice.
func (s *Sequencer) StepAt(index int) (Step, bool) {
	if index < 1 || index > len(steps) {
		return Step{}, false
	}
	return steps[index-1], true
}

// Next returns the step after slug. The last step has no next.
func (s *Sequencer) Next(slug string) (Step, bool) {
	for i, st := range s.active {
		if st.Slug == slug && i+1 < len(s.active) {
			return s.active[i+1], true
		}
	}
	return Step{}, false
}

// Back returns the step before slug. The first step has no back.
func (s *Sequencer) Back(slug string) (Step, bool) {
	for i, st := range s.active {
		if st.Slug == slug && i > 0 {
			return s.active[i-1], true
		}
	}
	return Step{}, false
}

// Progress reports position within the active flow for slug, 1-based, and
// the active flow length. Unknown slugs report position 0.
func (s *Sequencer) Progress(slug string) (int, int) {
	for i, st := range s.active {
		if st.Slug == slug {
			return i + 1, len(s.active)
		}
	}
	return 0, len(s.active)
}
