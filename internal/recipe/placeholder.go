package recipe

import (
	"fmt"
	"time"

	"github.com/jakewoolfenden16/nutriwise-cli/internal/model"
)

var dayNames = []string{"Monday", "Tuesday", "Wednesday", "Thursday", "Friday", "Saturday", "Sunday"}

// dayName maps a 1-7 day-of-week index to its display name. Out-of-range
// indexes come back empty; callers treat that as malformed data.
func dayName(dayOfWeek int) string {
	if dayOfWeek < 1 || dayOfWeek > 7 {
		return ""
	}
	return dayNames[dayOfWeek-1]
}

// formatDate renders an ISO date as a short display date ("2 Jan").
// Unparseable input passes through unchanged.
func formatDate(iso string) string {
	t, err := time.Parse("2006-01-02", iso)
	if err != nil {
		return iso
	}
	return fmt.Sprintf("%d %s", t.Day(), t.Format("Jan"))
}

// PlaceholderWeek is the deterministic 7-day fallback plan shown whenever
// real data cannot be obtained. Same start date, same week.
func PlaceholderWeek(start time.Time) model.WeeklyPlan {
	days := make([]model.DailyPlan, 0, 7)
	for i := 0; i < 7; i++ {
		day := i + 1
		date := start.AddDate(0, 0, i)
		days = append(days, model.DailyPlan{
			Day:            day,
			DayOfWeek:      day,
			DayName:        dayNames[i],
			Date:           fmt.Sprintf("%d %s", date.Day(), date.Format("Jan")),
			TargetCalories: 2100,
			Calories:       2100,
			ProteinG:       150,
			CarbsG:         210,
			FatG:           78,
			MealCount:      4,
			Meals: []model.Meal{
				{
					ID:          fmt.Sprintf("b%d1", day),
					Name:        "Greek Yogurt and Berries",
					MealType:    model.MealBreakfast,
					Calories:    400,
					ProteinG:    26,
					CarbsG:      53,
					FatG:        8,
					PrepTimeMin: 5,
					Servings:    1,
				},
				{
					ID:          fmt.Sprintf("l%d1", day),
					Name:        "Grilled Chicken Salad",
					MealType:    model.MealLunch,
					Calories:    450,
					ProteinG:    45,
					CarbsG:      30,
					FatG:        18,
					PrepTimeMin: 15,
					Servings:    1,
				},
				{
					ID:          fmt.Sprintf("d%d1", day),
					Name:        "Salmon with Quinoa",
					MealType:    model.MealDinner,
					Calories:    580,
					ProteinG:    50,
					CarbsG:      55,
					FatG:        22,
					PrepTimeMin: 25,
					Servings:    1,
				},
				{
					ID:          fmt.Sprintf("s%d1", day),
					Name:        "Protein Smoothie",
					MealType:    model.MealSnack,
					Calories:    220,
					ProteinG:    20,
					CarbsG:      28,
					FatG:        4,
					PrepTimeMin: 5,
					Servings:    1,
				},
			},
		})
	}
	return model.WeeklyPlan{
		WeekStartDate: start.Format("2006-01-02"),
		Targets:       model.MacroTargets{Calories: 2100, ProteinG: 150, CarbsG: 210, FatG: 78},
		Days:          days,
		Placeholder:   true,
	}
}
