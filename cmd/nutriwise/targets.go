package nutriwise

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/jakewoolfenden16/nutriwise-cli/internal/account"
	"github.com/jakewoolfenden16/nutriwise-cli/internal/api"
	"github.com/jakewoolfenden16/nutriwise-cli/internal/questionnaire"
	"github.com/jakewoolfenden16/nutriwise-cli/internal/recipe"
)

var targetsCmd = &cobra.Command{
	Use:   "targets",
	Short: "Calculate your nutrition targets from the questionnaire",
	Long:  "Computes calories and macros from your answers. Anonymous; no account needed.",
	RunE: func(cmd *cobra.Command, args []string) error {
		return withApp(func(env *appEnv) error {
			qs, err := loadDraft(env)
			if err != nil {
				return err
			}
			req, err := targetsRequest(qs.Answers())
			if err != nil {
				return err
			}
			resp, err := env.api.CalculateTargets(cmd.Context(), req)
			if err != nil {
				return err
			}
			t := resp.Targets()

			out := cmd.OutOrStdout()
			fmt.Fprintln(out, recipe.Headline(qs.Answers()))
			fmt.Fprintln(out)
			fmt.Fprintf(out, "Calories: %.0f kcal/day\n", t.Calories)
			fmt.Fprintf(out, "Protein:  %.0fg\n", t.ProteinG)
			fmt.Fprintf(out, "Carbs:    %.0fg\n", t.CarbsG)
			fmt.Fprintf(out, "Fat:      %.0fg\n", t.FatG)
			if t.TDEE > 0 {
				fmt.Fprintf(out, "TDEE:     %.0f kcal (%s)\n", t.TDEE, t.ActivityLevel)
			}
			fmt.Fprintln(out)
			for _, tip := range recipe.ContextualTips(qs.Answers()) {
				fmt.Fprintf(out, "- %s\n", tip)
			}
			return nil
		})
	},
}

// targetsRequest maps the draft onto the calculation payload, naming every
// answer still missing so the user knows which steps to finish.
func targetsRequest(a questionnaire.Answers) (api.CalculateTargetsRequest, error) {
	var missing []string
	need := func(ok bool, name string) {
		if !ok {
			missing = append(missing, name)
		}
	}
	need(a.Gender != nil, "gender")
	need(a.Height != nil, "height")
	need(a.Weight != nil, "weight")
	need(a.Age != nil, "age")
	need(a.WorkoutFrequency != nil, "workouts")
	need(a.SpecificDiet != nil, "diet")
	need(a.WeightGoal != nil, "goal-weight")
	if len(missing) > 0 {
		return api.CalculateTargetsRequest{}, fmt.Errorf("questionnaire incomplete, still need: %s", strings.Join(missing, ", "))
	}

	req := api.CalculateTargetsRequest{
		Gender:          *a.Gender,
		Height:          *a.Height,
		Age:             *a.Age,
		Weight:          *a.Weight,
		WorkoutsPerWeek: *a.WorkoutFrequency,
		Goal:            account.ProfilePayload(a).Goal,
		Diet:            *a.SpecificDiet,
		WeightGoal:      *a.WeightGoal,
	}
	if a.WeeklyWeightLoss != nil {
		req.PlannedWeeklyWeightLoss = *a.WeeklyWeightLoss
	}
	if a.OtherNotes != nil {
		req.AdditionalConsiderations = *a.OtherNotes
	}
	return req, nil
}

func init() {
	rootCmd.AddCommand(targetsCmd)
}
