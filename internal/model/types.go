package model

// MealType is the closed set of meal buckets a day is organised into.
type MealType string

const (
	MealBreakfast MealType = "breakfast"
	MealLunch     MealType = "lunch"
	MealDinner    MealType = "dinner"
	MealSnack     MealType = "snack"
)

// ValidMealType reports whether s is one of the four known buckets.
func ValidMealType(s string) bool {
	switch MealType(s) {
	case MealBreakfast, MealLunch, MealDinner, MealSnack:
		return true
	}
	return false
}

type Meal struct {
	ID           string
	Name         string
	MealType     MealType
	Calories     float64
	ProteinG     float64
	CarbsG       float64
	FatG         float64
	PrepTimeMin  int
	Servings     float64
	DietaryTags  []string
	Ingredients  []string
	Instructions []string
}

// DailyPlan is one day of the weekly plan. Meals is populated lazily by a
// separate per-day fetch and may be empty on a freshly refreshed week.
type DailyPlan struct {
	DailyPlanID    int64
	Day            int // 1-7 position within the week
	DayOfWeek      int // 1=Monday .. 7=Sunday
	DayName        string
	Date           string
	TargetCalories float64
	Calories       float64
	ProteinG       float64
	CarbsG         float64
	FatG           float64
	MealCount      int
	Meals          []Meal
}

type MacroTargets struct {
	Calories float64
	ProteinG float64
	CarbsG   float64
	FatG     float64
}

// WeeklyPlan always carries exactly 7 days. Placeholder marks the
// deterministic fallback week served when real data cannot be obtained.
type WeeklyPlan struct {
	WeeklyPlanID  int64
	WeekStartDate string
	Targets       MacroTargets
	Days          []DailyPlan
	Placeholder   bool
}

// CalculatedTargets is the server-computed nutrition profile. It is cached in
// memory after one successful calculation and never persisted.
type CalculatedTargets struct {
	Calories      float64
	ProteinG      float64
	CarbsG        float64
	FatG          float64
	TDEE          float64
	ActivityLevel string
	Goal          string
	Diet          string
	CurrentWeight float64
	GoalWeight    float64
	TotalChangeKg float64
	WeeklyChange  float64
}

// Session is the authenticated identity of the current user. A non-empty
// token implies authenticated; there is no separate flag to drift out of sync.
type Session struct {
	AccessToken  string
	RefreshToken string
}

func (s Session) IsAuthenticated() bool {
	return s.AccessToken != ""
}
