// Package recipe resolves what plan the user has right now. The UI layer is
// never left without renderable content: every failure path produces the
// deterministic placeholder week instead of an empty screen.
package recipe

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"strconv"
	"time"

	"github.com/rs/zerolog"

	"github.com/jakewoolfenden16/nutriwise-cli/internal/account"
	"github.com/jakewoolfenden16/nutriwise-cli/internal/api"
	"github.com/jakewoolfenden16/nutriwise-cli/internal/model"
	"github.com/jakewoolfenden16/nutriwise-cli/internal/store"
)

type Gateway struct {
	api      *api.Client
	store    *store.Store
	log      zerolog.Logger
	testMode bool
	now      func() time.Time

	week  model.WeeklyPlan
	eaten map[string]struct{}
}

func New(apiClient *api.Client, st *store.Store, log zerolog.Logger) *Gateway {
	return &Gateway{
		api:   apiClient,
		store: st,
		log:   log,
		now:   time.Now,
		eaten: make(map[string]struct{}),
	}
}

// SetTestMode skips the session check so the gateway can hit a local backend
// without logging in.
func (g *Gateway) SetTestMode(on bool) {
	g.testMode = on
}

// Week returns the most recently loaded weekly plan, which may be the
// placeholder. Before any refresh it is the placeholder for today.
func (g *Gateway) Week() model.WeeklyPlan {
	if len(g.week.Days) == 0 {
		return PlaceholderWeek(g.now())
	}
	return g.week
}

// RefreshWeeklyPlan resolves the user's current weekly plan and replaces the
// in-memory week wholesale. The returned plan always has 7 days. A non-nil
// error reports why real data could not be obtained while the returned plan
// already carries the placeholder; the pending-onboarding and signed-out
// short circuits are not errors.
//
// When no plan exists yet and allowGenerate is set, exactly one generation
// is attempted and its id used; with allowGenerate unset the no-plan error
// propagates untouched.
func (g *Gateway) RefreshWeeklyPlan(ctx context.Context, allowGenerate bool) (model.WeeklyPlan, error) {
	pending, err := g.store.HasPendingQuestionnaire()
	if err != nil {
		return g.fallback(), err
	}
	if pending {
		// Onboarding is unfinished: the profile does not exist server-side,
		// so remote lookups are pointless. No network calls.
		g.log.Debug().Msg("pending questionnaire present, serving placeholder plan")
		return g.fallback(), nil
	}

	token, ok, err := g.store.SessionToken()
	if err != nil {
		return g.fallback(), err
	}
	if (!ok || account.TokenExpired(token, g.now())) && !g.testMode {
		g.log.Debug().Msg("no usable session, serving placeholder plan")
		return g.fallback(), nil
	}

	planID, err := g.resolvePlanID(ctx, token, allowGenerate)
	if err != nil {
		g.log.Warn().Err(err).Msg("resolving current weekly plan failed, serving placeholder")
		return g.fallback(), err
	}

	detail, err := g.api.WeeklyPlanByID(ctx, token, planID)
	if err != nil {
		g.log.Warn().Err(err).Int64("weekly_plan_id", planID).Msg("fetching weekly plan failed, serving placeholder")
		return g.fallback(), err
	}

	week, err := TransformWeek(detail)
	if err != nil {
		g.log.Warn().Err(err).Int64("weekly_plan_id", planID).Msg("weekly plan response malformed, serving placeholder")
		return g.fallback(), err
	}
	g.week = week
	return week, nil
}

func (g *Gateway) resolvePlanID(ctx context.Context, token string, allowGenerate bool) (int64, error) {
	current, err := g.api.CurrentWeeklyPlan(ctx, token)
	if err == nil {
		return current.WeeklyPlanID, nil
	}
	if !errors.Is(err, api.ErrNoActivePlan) || !allowGenerate {
		return 0, err
	}
	generated, err := g.api.GenerateWeeklyPlan(ctx, token)
	if err != nil {
		return 0, err
	}
	return generated.WeeklyPlanID, nil
}

// fallback replaces the in-memory week with the placeholder. Eaten marks are
// never touched by a refresh, fallback or not.
func (g *Gateway) fallback() model.WeeklyPlan {
	week := PlaceholderWeek(g.now())
	g.week = week
	return week
}

// TransformWeek turns the server-side detail into the client model. The
// server indexes daily records 1-7 by day-of-week; anything else is
// malformed and rejected so the caller can fall back.
func TransformWeek(detail api.WeeklyPlanDetail) (model.WeeklyPlan, error) {
	if len(detail.DailyPlans) != 7 {
		return model.WeeklyPlan{}, fmt.Errorf("weekly plan has %d days, want 7", len(detail.DailyPlans))
	}
	overviews := append([]api.DailyPlanOverview(nil), detail.DailyPlans...)
	sort.SliceStable(overviews, func(i, j int) bool {
		return overviews[i].DayOfWeek < overviews[j].DayOfWeek
	})

	days := make([]model.DailyPlan, 0, 7)
	for i, o := range overviews {
		name := dayName(o.DayOfWeek)
		if name == "" {
			return model.WeeklyPlan{}, fmt.Errorf("daily plan %d has day_of_week %d", o.ID, o.DayOfWeek)
		}
		days = append(days, model.DailyPlan{
			DailyPlanID:    o.ID,
			Day:            i + 1,
			DayOfWeek:      o.DayOfWeek,
			DayName:        name,
			Date:           formatDate(o.Date),
			TargetCalories: o.DailyTargetCalories,
			Calories:       o.TotalCalories,
			ProteinG:       o.TotalProtein,
			CarbsG:         o.TotalCarbs,
			FatG:           o.TotalFat,
			MealCount:      o.MealCount,
		})
	}
	return model.WeeklyPlan{
		WeeklyPlanID:  detail.WeeklyPlan.ID,
		WeekStartDate: detail.WeeklyPlan.WeekStartDate,
		Targets: model.MacroTargets{
			Calories: detail.WeeklyPlan.WeeklyTargetCalories,
			ProteinG: detail.WeeklyPlan.WeeklyTargetProtein,
			CarbsG:   detail.WeeklyPlan.WeeklyTargetCarbs,
			FatG:     detail.WeeklyPlan.WeeklyTargetFat,
		},
		Days: days,
	}, nil
}

// DayMeals fetches per-meal detail for one day and attaches it to the loaded
// week. Meal detail is deliberately lazy; the weekly refresh never fetches it.
func (g *Gateway) DayMeals(ctx context.Context, dailyPlanID int64) ([]model.Meal, error) {
	token, ok, err := g.store.SessionToken()
	if err != nil {
		return nil, err
	}
	if !ok && !g.testMode {
		return nil, errors.New("not signed in")
	}
	resp, err := g.api.DailyPlanMeals(ctx, token, dailyPlanID)
	if err != nil {
		return nil, err
	}

	meals := make([]model.Meal, 0, len(resp.Meals))
	for _, m := range resp.Meals {
		mealType := model.MealType(m.MealType)
		if !model.ValidMealType(m.MealType) {
			mealType = model.MealSnack
		}
		meals = append(meals, model.Meal{
			ID:           strconv.FormatInt(m.ID, 10),
			Name:         m.Recipes.Name,
			MealType:     mealType,
			Calories:     m.ActualCalories,
			ProteinG:     m.ActualProtein,
			CarbsG:       m.ActualCarbs,
			FatG:         m.ActualFat,
			PrepTimeMin:  m.Recipes.PrepTimeMin,
			Servings:     m.Servings,
			DietaryTags:  m.Recipes.DietaryTags,
			Ingredients:  m.Recipes.Ingredients,
			Instructions: m.Recipes.Instructions,
		})
	}

	for i := range g.week.Days {
		if g.week.Days[i].DailyPlanID == dailyPlanID {
			g.week.Days[i].Meals = meals
			break
		}
	}
	return meals, nil
}

// MarkMealEaten records a meal id as consumed. Pure set insert: no I/O, and
// no check that the id belongs to the loaded week (soft invariant only).
func (g *Gateway) MarkMealEaten(mealID string) {
	g.eaten[mealID] = struct{}{}
}

// UnmarkMealEaten removes the mark; unmarking an unmarked id is a no-op.
func (g *Gateway) UnmarkMealEaten(mealID string) {
	delete(g.eaten, mealID)
}

func (g *Gateway) IsMealEaten(mealID string) bool {
	_, ok := g.eaten[mealID]
	return ok
}

// EatenMeals returns the marked ids in stable order.
func (g *Gateway) EatenMeals() []string {
	ids := make([]string, 0, len(g.eaten))
	for id := range g.eaten {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	return ids
}

// LoadEatenMeals seeds the set, used to restore persisted marks at startup.
func (g *Gateway) LoadEatenMeals(ids []string) {
	g.eaten = make(map[string]struct{}, len(ids))
	for _, id := range ids {
		g.eaten[id] = struct{}{}
	}
}
