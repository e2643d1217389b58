package questionnaire

// InitialStep is where a fresh questionnaire starts.
const InitialStep = 1

// Store holds the partial answers and the current step cursor. It is pure
// in-memory state: no I/O, no validation. Per-step validation belongs to the
// layer driving the flow.
type Store struct {
	answers Answers
	step    int
}

func NewStore() *Store {
	return &Store{step: InitialStep}
}

// Update merges the set fields of in over the accumulated answers. Previously
// set fields that in does not carry are preserved.
func (s *Store) Update(in Answers) {
	s.answers.merge(in)
}

// Reset clears all answers and returns the cursor to the initial step.
func (s *Store) Reset() {
	s.answers = Answers{}
	s.step = InitialStep
}

// SetStep assigns the cursor unconditionally. Used by forward navigation and
// by the developer jump-to-step affordance alike.
func (s *Store) SetStep(n int) {
	s.step = n
}

func (s *Store) Step() int {
	return s.step
}

// Answers returns a copy of the accumulated answers.
func (s *Store) Answers() Answers {
	out := s.answers
	out.CuisinePreferences = append([]string(nil), s.answers.CuisinePreferences...)
	out.FoodsToAvoid = append([]string(nil), s.answers.FoodsToAvoid...)
	out.MealPreferences = append([]string(nil), s.answers.MealPreferences...)
	return out
}

// Load replaces the whole state at once, used when a draft is restored from
// the persisted store between invocations.
func (s *Store) Load(a Answers, step int) {
	s.answers = a
	if step < InitialStep {
		step = InitialStep
	}
	s.step = step
}
