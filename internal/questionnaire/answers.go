package questionnaire

// Answers is the partial record accumulated across onboarding steps. Every
// field stays unset until the step that collects it has been visited, so
// scalars are pointers and set-valued fields are slices. The same type doubles
// as the update payload for Store.Update.
//
// The JSON field names match the questionnaire snapshot embedded in the
// signup request and persisted while verification is pending.
type Answers struct {
	Gender             *string  `json:"gender,omitempty"`
	WorkoutFrequency   *int     `json:"workoutFrequency,omitempty"`
	Height             *float64 `json:"height,omitempty"`
	Weight             *float64 `json:"weight,omitempty"`
	HeightUnit         *string  `json:"heightUnit,omitempty"`
	WeightUnit         *string  `json:"weightUnit,omitempty"`
	Age                *int     `json:"age,omitempty"`
	WeightGoal         *float64 `json:"weightGoal,omitempty"`
	OverallGoal        *string  `json:"overallGoal,omitempty"`
	WeeklyWeightLoss   *float64 `json:"weeklyWeightLoss,omitempty"`
	SpecificDiet       *string  `json:"specificDiet,omitempty"`
	CuisinePreferences []string `json:"cuisinePreferences,omitempty"`
	OtherNotes         *string  `json:"otherNotes,omitempty"`
	FoodsToAvoid       []string `json:"foodsToAvoid,omitempty"`
	Motivation         *string  `json:"motivation,omitempty"`
	MotivationOther    *string  `json:"motivationOther,omitempty"`
	MealPreferences    []string `json:"mealPreferences,omitempty"`
	Fasting            *bool    `json:"fasting,omitempty"`
	Email              *string  `json:"email,omitempty"`
}

// merge applies every set field of in over a, last write wins. Fields absent
// from in are left untouched.
func (a *Answers) merge(in Answers) {
	if in.Gender != nil {
		a.Gender = in.Gender
	}
	if in.WorkoutFrequency != nil {
		a.WorkoutFrequency = in.WorkoutFrequency
	}
	if in.Height != nil {
		a.Height = in.Height
	}
	if in.Weight != nil {
		a.Weight = in.Weight
	}
	if in.HeightUnit != nil {
		a.HeightUnit = in.HeightUnit
	}
	if in.WeightUnit != nil {
		a.WeightUnit = in.WeightUnit
	}
	if in.Age != nil {
		a.Age = in.Age
	}
	if in.WeightGoal != nil {
		a.WeightGoal = in.WeightGoal
	}
	if in.OverallGoal != nil {
		a.OverallGoal = in.OverallGoal
	}
	if in.WeeklyWeightLoss != nil {
		a.WeeklyWeightLoss = in.WeeklyWeightLoss
	}
	if in.SpecificDiet != nil {
		a.SpecificDiet = in.SpecificDiet
	}
	if in.CuisinePreferences != nil {
		a.CuisinePreferences = append([]string(nil), in.CuisinePreferences...)
	}
	if in.OtherNotes != nil {
		a.OtherNotes = in.OtherNotes
	}
	if in.FoodsToAvoid != nil {
		a.FoodsToAvoid = append([]string(nil), in.FoodsToAvoid...)
	}
	if in.Motivation != nil {
		a.Motivation = in.Motivation
	}
	if in.MotivationOther != nil {
		a.MotivationOther = in.MotivationOther
	}
	if in.MealPreferences != nil {
		a.MealPreferences = append([]string(nil), in.MealPreferences...)
	}
	if in.Fasting != nil {
		a.Fasting = in.Fasting
	}
	if in.Email != nil {
		a.Email = in.Email
	}
}

// String returns a pointer to s, for building update payloads.
func String(s string) *string { return &s }

// Int returns a pointer to n.
func Int(n int) *int { return &n }

// Float returns a pointer to f.
func Float(f float64) *float64 { return &f }

// Bool returns a pointer to b.
func Bool(b bool) *bool { return &b }
