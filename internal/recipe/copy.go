package recipe

import (
	"fmt"
	"math"
	"strings"

	"github.com/jakewoolfenden16/nutriwise-cli/internal/questionnaire"
)

// Headline builds the personalised results headline from the answers.
func Headline(a questionnaire.Answers) string {
	goal := ""
	if a.OverallGoal != nil {
		goal = *a.OverallGoal
	}
	unit := "kg"
	if a.WeightUnit != nil && *a.WeightUnit != "" {
		unit = *a.WeightUnit
	}

	if goal == "lose" && a.WeeklyWeightLoss != nil && *a.WeeklyWeightLoss > 0 &&
		a.Weight != nil && a.WeightGoal != nil {
		difference := math.Abs(*a.Weight - *a.WeightGoal)
		if difference > 0 {
			weeks := int(math.Round(difference / *a.WeeklyWeightLoss))
			return fmt.Sprintf("Because you want to lose %.1f%s in %d weeks, here's the nutrition profile that will get you there.",
				difference, unit, weeks)
		}
	}
	if goal == "build" {
		return "Ready to build muscle? Here's your personalised nutrition plan."
	}
	if goal == "maintain" {
		return "Perfect! Here's your plan for lean gains and maintaining your current weight."
	}
	return "Here's your personalised nutrition plan, designed just for you."
}

// ContextualTips picks up to three tips that reference what the user
// actually answered, padded with general tips when too few apply.
func ContextualTips(a questionnaire.Answers) []string {
	tips := make([]string, 0, 3)

	if a.OverallGoal != nil && *a.OverallGoal == "build" {
		tips = append(tips, "Focus on hitting your protein target daily to build lean muscle.")
	}
	if a.Fasting != nil && *a.Fasting {
		tips = append(tips, "We've distributed your calories across fewer meals for optimal balance.")
	}
	if a.WorkoutFrequency != nil && *a.WorkoutFrequency >= 4 {
		tips = append(tips, "Your higher training volume means extra carbs for recovery.")
	}
	if a.SpecificDiet != nil && *a.SpecificDiet != "" && *a.SpecificDiet != "none" {
		tips = append(tips, fmt.Sprintf("We've tailored your plan around your %s preferences.", *a.SpecificDiet))
	}
	if len(a.CuisinePreferences) > 0 {
		tips = append(tips, fmt.Sprintf("Your meal suggestions will focus on %s flavors you love.", a.CuisinePreferences[0]))
	}
	if a.Motivation != nil && strings.Contains(strings.ToLower(*a.Motivation), "energy") {
		tips = append(tips, "These macros will help boost your daily energy levels.")
	}

	if len(tips) < 2 {
		tips = append(tips,
			"Track your progress weekly to see meaningful trends.",
			"Stay hydrated with 8 glasses of water daily.")
	}
	if len(tips) > 3 {
		tips = tips[:3]
	}
	return tips
}
