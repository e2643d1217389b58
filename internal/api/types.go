package api

import (
	"encoding/json"

	"github.com/jakewoolfenden16/nutriwise-cli/internal/model"
)

// CalculateTargetsRequest carries the raw questionnaire fields the backend
// needs to compute nutrition targets. Anonymous; no account required.
type CalculateTargetsRequest struct {
	Gender                   string  `json:"gender"`
	Height                   float64 `json:"height"`
	Age                      int     `json:"age"`
	Weight                   float64 `json:"weight"`
	WorkoutsPerWeek          int     `json:"workouts_per_week"`
	Goal                     string  `json:"goal"`
	Diet                     string  `json:"diet"`
	AdditionalConsiderations string  `json:"additional_considerations,omitempty"`
	WeightGoal               float64 `json:"weight_goal"`
	PlannedWeeklyWeightLoss  float64 `json:"planned_weekly_weight_loss"`
}

type CalculateTargetsResponse struct {
	Success bool `json:"success"`
	Data    struct {
		NutritionalTargets struct {
			Calories     float64 `json:"calories"`
			ProteinGrams float64 `json:"protein_grams"`
			CarbsGrams   float64 `json:"carbs_grams"`
			FatGrams     float64 `json:"fat_grams"`
		} `json:"nutritional_targets"`
		UserMetrics struct {
			TDEE          float64 `json:"tdee"`
			ActivityLevel string  `json:"activity_level"`
			Goal          string  `json:"goal"`
			Diet          string  `json:"diet"`
		} `json:"user_metrics"`
		WeightGoalInfo struct {
			CurrentWeight         float64 `json:"current_weight"`
			GoalWeight            float64 `json:"goal_weight"`
			TotalWeightChangeKg   float64 `json:"total_weight_change_kg"`
			PlannedWeeklyChangeKg float64 `json:"planned_weekly_change_kg"`
		} `json:"weight_goal_info"`
	} `json:"data"`
}

// Targets flattens the response into the client-side model.
func (r CalculateTargetsResponse) Targets() model.CalculatedTargets {
	d := r.Data
	return model.CalculatedTargets{
		Calories:      d.NutritionalTargets.Calories,
		ProteinG:      d.NutritionalTargets.ProteinGrams,
		CarbsG:        d.NutritionalTargets.CarbsGrams,
		FatG:          d.NutritionalTargets.FatGrams,
		TDEE:          d.UserMetrics.TDEE,
		ActivityLevel: d.UserMetrics.ActivityLevel,
		Goal:          d.UserMetrics.Goal,
		Diet:          d.UserMetrics.Diet,
		CurrentWeight: d.WeightGoalInfo.CurrentWeight,
		GoalWeight:    d.WeightGoalInfo.GoalWeight,
		TotalChangeKg: d.WeightGoalInfo.TotalWeightChangeKg,
		WeeklyChange:  d.WeightGoalInfo.PlannedWeeklyChangeKg,
	}
}

// SignupRequest creates a pending account. QuestionnaireData is the optional
// embedded snapshot the backend keeps alongside the unverified account; the
// caller supplies it pre-encoded so this package stays payload-agnostic.
type SignupRequest struct {
	Email             string          `json:"email"`
	Password          string          `json:"password"`
	Name              string          `json:"name"`
	QuestionnaireData json.RawMessage `json:"questionnaire_data,omitempty"`
}

type SignupResponse struct {
	Message string `json:"message"`
}

type TokenResponse struct {
	AccessToken string `json:"access_token"`
	TokenType   string `json:"token_type"`
}

type ProfileRequest struct {
	Gender                  string  `json:"gender"`
	Height                  float64 `json:"height"`
	Weight                  float64 `json:"weight"`
	Age                     int     `json:"age"`
	WorkoutsPerWeek         int     `json:"workouts_per_week"`
	Goal                    string  `json:"goal"`
	WeightGoal              float64 `json:"weight_goal"`
	PlannedWeeklyWeightLoss float64 `json:"planned_weekly_weight_loss,omitempty"`
}

type ProfileResponse struct {
	Status  string `json:"status"`
	Message string `json:"message"`
	Profile struct {
		ID                      string  `json:"id"`
		Gender                  string  `json:"gender"`
		Height                  float64 `json:"height"`
		Weight                  float64 `json:"weight"`
		Age                     int     `json:"age"`
		WorkoutsPerWeek         int     `json:"workouts_per_week"`
		Goal                    string  `json:"goal"`
		WeightGoal              float64 `json:"weight_goal"`
		PlannedWeeklyWeightLoss float64 `json:"planned_weekly_weight_loss"`
		UpdatedAt               string  `json:"updated_at"`
	} `json:"profile"`
}

type WeeklyTargets struct {
	Calories float64 `json:"calories"`
	Protein  float64 `json:"protein"`
	Carbs    float64 `json:"carbs"`
	Fat      float64 `json:"fat"`
}

type WeeklyPlanGenerated struct {
	Status        string        `json:"status"`
	WeeklyPlanID  int64         `json:"weekly_plan_id"`
	WeekStartDate string        `json:"week_start_date"`
	DaysGenerated int           `json:"days_generated"`
	WeeklyTargets WeeklyTargets `json:"weekly_targets"`
	Message       string        `json:"message"`
}

type WeeklyPlanCurrent struct {
	WeeklyPlanID  int64  `json:"weekly_plan_id"`
	WeekStartDate string `json:"week_start_date"`
	Status        string `json:"status"`
	CreatedAt     string `json:"created_at"`
}

type MealPreview struct {
	ID       int64  `json:"id"`
	MealType string `json:"meal_type"`
	RecipeID int64  `json:"recipe_id"`
}

type DailyPlanOverview struct {
	ID                  int64         `json:"id"`
	Date                string        `json:"date"`
	DayOfWeek           int           `json:"day_of_week"`
	DailyTargetCalories float64       `json:"daily_target_calories"`
	TotalCalories       float64       `json:"total_calories"`
	TotalProtein        float64       `json:"total_protein"`
	TotalCarbs          float64       `json:"total_carbs"`
	TotalFat            float64       `json:"total_fat"`
	MealCount           int           `json:"meal_count"`
	MealsPreview        []MealPreview `json:"meals_preview"`
}

type WeeklyPlanDetail struct {
	WeeklyPlan struct {
		ID                   int64   `json:"id"`
		UserID               string  `json:"user_id"`
		WeekStartDate        string  `json:"week_start_date"`
		Status               string  `json:"status"`
		WeeklyTargetCalories float64 `json:"weekly_target_calories"`
		WeeklyTargetProtein  float64 `json:"weekly_target_protein"`
		WeeklyTargetCarbs    float64 `json:"weekly_target_carbs"`
		WeeklyTargetFat      float64 `json:"weekly_target_fat"`
		CreatedAt            string  `json:"created_at"`
	} `json:"weekly_plan"`
	DailyPlans []DailyPlanOverview `json:"daily_plans"`
	TotalDays  int                 `json:"total_days"`
}

type MealDetail struct {
	ID             int64   `json:"id"`
	MealType       string  `json:"meal_type"`
	Servings       float64 `json:"servings"`
	ActualCalories float64 `json:"actual_calories"`
	ActualProtein  float64 `json:"actual_protein"`
	ActualCarbs    float64 `json:"actual_carbs"`
	ActualFat      float64 `json:"actual_fat"`
	MealOrder      int     `json:"meal_order"`
	Recipes        struct {
		ID            int64    `json:"id"`
		Name          string   `json:"name"`
		Calories      float64  `json:"calories"`
		Protein       float64  `json:"protein"`
		Carbohydrates float64  `json:"carbohydrates"`
		Fat           float64  `json:"fat"`
		PrepTimeMin   int      `json:"prep_time_minutes"`
		DietaryTags   []string `json:"dietary_tags"`
		Ingredients   []string `json:"ingredients"`
		Instructions  []string `json:"instructions"`
	} `json:"recipes"`
}

type DailyPlanMealsResponse struct {
	DailyPlan struct {
		ID                  int64   `json:"id"`
		Date                string  `json:"date"`
		DayOfWeek           int     `json:"day_of_week"`
		DailyTargetCalories float64 `json:"daily_target_calories"`
		TotalCalories       float64 `json:"total_calories"`
		TotalProtein        float64 `json:"total_protein"`
		TotalCarbs          float64 `json:"total_carbs"`
		TotalFat            float64 `json:"total_fat"`
	} `json:"daily_plan"`
	Meals     []MealDetail `json:"meals"`
	MealCount int          `json:"meal_count"`
}
