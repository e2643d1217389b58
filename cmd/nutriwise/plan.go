package nutriwise

import (
	"fmt"
	"io"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/jakewoolfenden16/nutriwise-cli/internal/model"
	"github.com/jakewoolfenden16/nutriwise-cli/internal/plangen"
	"github.com/jakewoolfenden16/nutriwise-cli/internal/recipe"
)

var planCmd = &cobra.Command{
	Use:   "plan",
	Short: "Generate and browse your weekly meal plan",
}

var planGenerateCmd = &cobra.Command{
	Use:   "generate",
	Short: "Generate a fresh 7-day plan from your profile",
	RunE: func(cmd *cobra.Command, args []string) error {
		return withApp(func(env *appEnv) error {
			token, err := sessionToken(env)
			if err != nil {
				return err
			}
			gen := plangen.Generator{API: env.api, Token: token, Log: env.log}
			stderr := cmd.ErrOrStderr()
			detail, err := gen.Run(cmd.Context(), func(u plangen.Update) {
				fmt.Fprintf(stderr, "\r%3.0f%% %-40s", u.Progress, u.Message)
			})
			fmt.Fprintln(stderr)
			if err != nil {
				return fmt.Errorf("plan generation failed: %w\nIf your profile is missing, finish signup first ('nutriwise account status')", err)
			}
			week, err := recipe.TransformWeek(detail)
			if err != nil {
				return err
			}
			renderWeek(cmd.OutOrStdout(), week)
			return nil
		})
	},
}

var showGenerate bool

var planShowCmd = &cobra.Command{
	Use:   "show",
	Short: "Show the current weekly plan",
	RunE: func(cmd *cobra.Command, args []string) error {
		return withApp(func(env *appEnv) error {
			g := recipe.New(env.api, env.store, env.log)
			g.SetTestMode(testModeEnabled())
			week, err := g.RefreshWeeklyPlan(cmd.Context(), showGenerate)
			if err != nil {
				fmt.Fprintf(cmd.ErrOrStderr(), "Note: showing placeholder plan (%v)\n", err)
			}
			renderWeek(cmd.OutOrStdout(), week)
			return nil
		})
	},
}

var (
	dayEat   []string
	dayUneat []string
)

var planDayCmd = &cobra.Command{
	Use:   "day <1-7>",
	Short: "Show one day's meals, optionally marking meals eaten",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		n, err := strconv.Atoi(args[0])
		if err != nil || n < 1 || n > 7 {
			return fmt.Errorf("day must be 1-7, got %q", args[0])
		}
		return withApp(func(env *appEnv) error {
			g := recipe.New(env.api, env.store, env.log)
			g.SetTestMode(testModeEnabled())
			week, err := g.RefreshWeeklyPlan(cmd.Context(), false)
			if err != nil {
				fmt.Fprintf(cmd.ErrOrStderr(), "Note: showing placeholder plan (%v)\n", err)
			}
			day := week.Days[n-1]

			meals := day.Meals
			if !week.Placeholder {
				meals, err = g.DayMeals(cmd.Context(), day.DailyPlanID)
				if err != nil {
					return err
				}
			}

			eaten, err := env.store.EatenMealIDs(week.WeeklyPlanID)
			if err != nil {
				return err
			}
			g.LoadEatenMeals(eaten)
			for _, id := range dayEat {
				g.MarkMealEaten(id)
				if err := env.store.MarkMealEaten(week.WeeklyPlanID, id); err != nil {
					return err
				}
			}
			for _, id := range dayUneat {
				g.UnmarkMealEaten(id)
				if err := env.store.UnmarkMealEaten(id); err != nil {
					return err
				}
			}

			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "%s %s  (%.0f kcal target)\n", day.DayName, day.Date, day.TargetCalories)
			var consumed float64
			for _, m := range meals {
				mark := " "
				if g.IsMealEaten(m.ID) {
					mark = "x"
					consumed += m.Calories
				}
				fmt.Fprintf(out, "  [%s] %-9s %-30s %4.0f kcal  %2.0fP/%2.0fC/%2.0fF  (%s)\n",
					mark, m.MealType, m.Name, m.Calories, m.ProteinG, m.CarbsG, m.FatG, m.ID)
			}
			fmt.Fprintf(out, "Eaten: %.0f / %.0f kcal\n", consumed, day.Calories)
			return nil
		})
	},
}

var legacyGenerate bool

var planLegacyCmd = &cobra.Command{
	Use:    "legacy",
	Short:  "Fetch the pre-weekly single-day plan (raw JSON)",
	Hidden: true,
	RunE: func(cmd *cobra.Command, args []string) error {
		return withApp(func(env *appEnv) error {
			token, err := sessionToken(env)
			if err != nil {
				return err
			}
			fetch := env.api.CurrentMealPlan
			if legacyGenerate {
				fetch = env.api.GenerateMealPlan
			}
			raw, err := fetch(cmd.Context(), token)
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), string(raw))
			return nil
		})
	},
}

func renderWeek(out io.Writer, week model.WeeklyPlan) {
	if week.Placeholder {
		fmt.Fprintln(out, "Sample plan (generate your own with 'nutriwise plan generate')")
	} else {
		fmt.Fprintf(out, "Week of %s\n", week.WeekStartDate)
	}
	fmt.Fprintf(out, "Weekly targets: %.0f kcal, %.0fP/%.0fC/%.0fF\n\n", week.Targets.Calories, week.Targets.ProteinG, week.Targets.CarbsG, week.Targets.FatG)
	for _, d := range week.Days {
		fmt.Fprintf(out, "%d. %-9s %-7s %4.0f kcal  %3.0fP/%3.0fC/%3.0fF  %d meals\n",
			d.Day, d.DayName, d.Date, d.Calories, d.ProteinG, d.CarbsG, d.FatG, d.MealCount)
	}
}

func init() {
	planShowCmd.Flags().BoolVar(&showGenerate, "generate", false, "Generate a plan if none exists yet")
	planDayCmd.Flags().StringSliceVar(&dayEat, "eat", nil, "Meal ids to mark eaten")
	planDayCmd.Flags().StringSliceVar(&dayUneat, "uneat", nil, "Meal ids to unmark")
	planLegacyCmd.Flags().BoolVar(&legacyGenerate, "generate", false, "Generate instead of fetching the current plan")

	planCmd.AddCommand(planGenerateCmd, planShowCmd, planDayCmd, planLegacyCmd)
	rootCmd.AddCommand(planCmd)
}
