package nutriwise

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"github.com/jakewoolfenden16/nutriwise-cli/internal/questionnaire"
)

var onboardCmd = &cobra.Command{
	Use:   "onboard",
	Short: "Walk through the meal-plan questionnaire",
}

var onboardStartCmd = &cobra.Command{
	Use:   "start",
	Short: "Start the questionnaire from the beginning",
	RunE: func(cmd *cobra.Command, args []string) error {
		return withApp(func(env *appEnv) error {
			seq, err := loadSequencer()
			if err != nil {
				return err
			}
			qs := questionnaire.NewStore()
			qs.SetStep(seq.First().Index)
			if err := saveDraft(env, qs); err != nil {
				return err
			}
			printStep(cmd, seq, seq.First())
			return nil
		})
	},
}

var onboardStatusCmd = &cobra.Command{
	Use:   "status",
	Short: "Show the current step and collected answers",
	RunE: func(cmd *cobra.Command, args []string) error {
		return withApp(func(env *appEnv) error {
			seq, err := loadSequencer()
			if err != nil {
				return err
			}
			qs, err := loadDraft(env)
			if err != nil {
				return err
			}
			printStep(cmd, seq, currentStep(seq, qs.Step()))
			printAnswers(cmd, qs.Answers())
			return nil
		})
	},
}

var (
	setGender          string
	setWorkouts        int
	setHeight          float64
	setWeight          float64
	setHeightUnit      string
	setWeightUnit      string
	setAge             int
	setGoalWeight      float64
	setGoal            string
	setPace            float64
	setDiet            string
	setCuisines        []string
	setNotes           string
	setAvoid           []string
	setMotivation      string
	setMotivationOther string
	setMeals           []string
	setFasting         bool
	setEmail           string
)

var onboardSetCmd = &cobra.Command{
	Use:   "set",
	Short: "Record answers for one or more questionnaire fields",
	RunE: func(cmd *cobra.Command, args []string) error {
		update := answersFromFlags(cmd)
		return withApp(func(env *appEnv) error {
			qs, err := loadDraft(env)
			if err != nil {
				return err
			}
			qs.Update(update)
			if err := saveDraft(env, qs); err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), "Saved")
			return nil
		})
	},
}

var onboardNextCmd = &cobra.Command{
	Use:   "next",
	Short: "Advance to the next step",
	RunE: func(cmd *cobra.Command, args []string) error {
		return withApp(func(env *appEnv) error {
			seq, err := loadSequencer()
			if err != nil {
				return err
			}
			qs, err := loadDraft(env)
			if err != nil {
				return err
			}
			cur := currentStep(seq, qs.Step())
			if missing, ok := missingAnswer(cur.Slug, qs.Answers()); ok {
				return fmt.Errorf("answer %s before moving on (%s)", missing, setHint(cur.Slug))
			}
			next, ok := seq.Next(cur.Slug)
			if !ok {
				fmt.Fprintln(cmd.OutOrStdout(), "Questionnaire complete. Run 'nutriwise targets' to see your targets, then 'nutriwise account signup'.")
				return nil
			}
			qs.SetStep(next.Index)
			if err := saveDraft(env, qs); err != nil {
				return err
			}
			printStep(cmd, seq, next)
			return nil
		})
	},
}

var onboardBackCmd = &cobra.Command{
	Use:   "back",
	Short: "Return to the previous step",
	RunE: func(cmd *cobra.Command, args []string) error {
		return withApp(func(env *appEnv) error {
			seq, err := loadSequencer()
			if err != nil {
				return err
			}
			qs, err := loadDraft(env)
			if err != nil {
				return err
			}
			cur := currentStep(seq, qs.Step())
			prev, ok := seq.Back(cur.Slug)
			if !ok {
				fmt.Fprintln(cmd.OutOrStdout(), "Already at the first step")
				return nil
			}
			qs.SetStep(prev.Index)
			if err := saveDraft(env, qs); err != nil {
				return err
			}
			printStep(cmd, seq, prev)
			return nil
		})
	},
}

var onboardGotoCmd = &cobra.Command{
	Use:   "goto <step>",
	Short: "Jump to a step by slug or index (development aid)",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return withApp(func(env *appEnv) error {
			seq, err := loadSequencer()
			if err != nil {
				return err
			}
			var target questionnaire.Step
			if n, err := strconv.Atoi(args[0]); err == nil {
				st, ok := seq.StepAt(n)
				if !ok {
					return fmt.Errorf("no step with index %d", n)
				}
				target = st
			} else {
				st, ok := seq.Find(args[0])
				if !ok {
					return fmt.Errorf("no active step %q", args[0])
				}
				target = st
			}
			qs, err := loadDraft(env)
			if err != nil {
				return err
			}
			qs.SetStep(target.Index)
			if err := saveDraft(env, qs); err != nil {
				return err
			}
			printStep(cmd, seq, target)
			return nil
		})
	},
}

var onboardResetCmd = &cobra.Command{
	Use:   "reset",
	Short: "Discard all answers and start over",
	RunE: func(cmd *cobra.Command, args []string) error {
		return withApp(func(env *appEnv) error {
			if err := env.store.ClearOnboardingDraft(); err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), "Questionnaire reset")
			return nil
		})
	},
}

func init() {
	f := onboardSetCmd.Flags()
	f.StringVar(&setGender, "gender", "", "Gender (male, female, other)")
	f.IntVar(&setWorkouts, "workouts", 0, "Workouts per week")
	f.Float64Var(&setHeight, "height", 0, "Height")
	f.Float64Var(&setWeight, "weight", 0, "Current weight")
	f.StringVar(&setHeightUnit, "height-unit", "", "Height unit (cm, in)")
	f.StringVar(&setWeightUnit, "weight-unit", "", "Weight unit (kg, lbs)")
	f.IntVar(&setAge, "age", 0, "Age in years")
	f.Float64Var(&setGoalWeight, "goal-weight", 0, "Goal weight")
	f.StringVar(&setGoal, "goal", "", "Overall goal (lose, build, maintain)")
	f.Float64Var(&setPace, "pace", 0, "Planned weekly weight loss")
	f.StringVar(&setDiet, "diet", "", "Diet type (none, vegetarian, vegan, keto, ...)")
	f.StringSliceVar(&setCuisines, "cuisines", nil, "Preferred cuisines")
	f.StringVar(&setNotes, "notes", "", "Anything else we should know")
	f.StringSliceVar(&setAvoid, "avoid", nil, "Foods to avoid")
	f.StringVar(&setMotivation, "motivation", "", "What motivates you")
	f.StringVar(&setMotivationOther, "motivation-other", "", "Motivation detail when 'other'")
	f.StringSliceVar(&setMeals, "meals", nil, "Meal slots to plan (breakfast, lunch, dinner, snack)")
	f.BoolVar(&setFasting, "fasting", false, "Whether you practice intermittent fasting")
	f.StringVar(&setEmail, "email", "", "Email address for the account step")

	onboardCmd.AddCommand(onboardStartCmd, onboardStatusCmd, onboardSetCmd, onboardNextCmd, onboardBackCmd, onboardGotoCmd, onboardResetCmd)
	rootCmd.AddCommand(onboardCmd)
}

// answersFromFlags builds the update payload from the flags the user actually
// passed, so an untouched flag never clobbers an earlier answer.
func answersFromFlags(cmd *cobra.Command) questionnaire.Answers {
	var a questionnaire.Answers
	flags := cmd.Flags()
	if flags.Changed("gender") {
		a.Gender = questionnaire.String(setGender)
	}
	if flags.Changed("workouts") {
		a.WorkoutFrequency = questionnaire.Int(setWorkouts)
	}
	if flags.Changed("height") {
		a.Height = questionnaire.Float(setHeight)
	}
	if flags.Changed("weight") {
		a.Weight = questionnaire.Float(setWeight)
	}
	if flags.Changed("height-unit") {
		a.HeightUnit = questionnaire.String(setHeightUnit)
	}
	if flags.Changed("weight-unit") {
		a.WeightUnit = questionnaire.String(setWeightUnit)
	}
	if flags.Changed("age") {
		a.Age = questionnaire.Int(setAge)
	}
	if flags.Changed("goal-weight") {
		a.WeightGoal = questionnaire.Float(setGoalWeight)
	}
	if flags.Changed("goal") {
		a.OverallGoal = questionnaire.String(setGoal)
	}
	if flags.Changed("pace") {
		a.WeeklyWeightLoss = questionnaire.Float(setPace)
	}
	if flags.Changed("diet") {
		a.SpecificDiet = questionnaire.String(setDiet)
	}
	if flags.Changed("cuisines") {
		a.CuisinePreferences = setCuisines
	}
	if flags.Changed("notes") {
		a.OtherNotes = questionnaire.String(setNotes)
	}
	if flags.Changed("avoid") {
		a.FoodsToAvoid = setAvoid
	}
	if flags.Changed("motivation") {
		a.Motivation = questionnaire.String(setMotivation)
	}
	if flags.Changed("motivation-other") {
		a.MotivationOther = questionnaire.String(setMotivationOther)
	}
	if flags.Changed("meals") {
		a.MealPreferences = setMeals
	}
	if flags.Changed("fasting") {
		a.Fasting = questionnaire.Bool(setFasting)
	}
	if flags.Changed("email") {
		a.Email = questionnaire.String(setEmail)
	}
	return a
}

// missingAnswer names the required field still unset for a step. Info and
// terminal steps collect nothing; set-valued steps are optional.
func missingAnswer(slug string, a questionnaire.Answers) (string, bool) {
	switch slug {
	case "gender":
		if a.Gender == nil {
			return "your gender", true
		}
	case "workout":
		if a.WorkoutFrequency == nil {
			return "workouts per week", true
		}
	case "measurements":
		if a.Height == nil || a.Weight == nil {
			return "your height and weight", true
		}
	case "age":
		if a.Age == nil {
			return "your age", true
		}
	case "weight-goal":
		if a.WeightGoal == nil {
			return "your goal weight", true
		}
	case "overall-goal":
		if a.OverallGoal == nil {
			return "your overall goal", true
		}
	case "goal-speed":
		if a.OverallGoal != nil && *a.OverallGoal == "lose" && a.WeeklyWeightLoss == nil {
			return "your weekly pace", true
		}
	case "diet":
		if a.SpecificDiet == nil {
			return "your diet type", true
		}
	case "motivation":
		if a.Motivation == nil {
			return "your motivation", true
		}
	case "fasting":
		if a.Fasting == nil {
			return "whether you fast", true
		}
	}
	return "", false
}

func setHint(slug string) string {
	hints := map[string]string{
		"gender":       "nutriwise onboard set --gender male",
		"workout":      "nutriwise onboard set --workouts 3",
		"measurements": "nutriwise onboard set --height 178 --weight 82",
		"age":          "nutriwise onboard set --age 30",
		"weight-goal":  "nutriwise onboard set --goal-weight 76",
		"overall-goal": "nutriwise onboard set --goal lose",
		"goal-speed":   "nutriwise onboard set --pace 0.5",
		"diet":         "nutriwise onboard set --diet none",
		"motivation":   "nutriwise onboard set --motivation energy",
		"fasting":      "nutriwise onboard set --fasting=false",
	}
	if h, ok := hints[slug]; ok {
		return h
	}
	return "nutriwise onboard set --help"
}

func printStep(cmd *cobra.Command, seq *questionnaire.Sequencer, st questionnaire.Step) {
	pos, total := seq.Progress(st.Slug)
	fmt.Fprintf(cmd.OutOrStdout(), "Step %d/%d: %s\n", pos, total, st.Title)
	if _, required := missingAnswer(st.Slug, questionnaire.Answers{}); required {
		fmt.Fprintf(cmd.OutOrStdout(), "  e.g. %s\n", setHint(st.Slug))
	}
}

func printAnswers(cmd *cobra.Command, a questionnaire.Answers) {
	out := cmd.OutOrStdout()
	line := func(label, value string) {
		if value != "" {
			fmt.Fprintf(out, "  %-12s %s\n", label, value)
		}
	}
	if a.Gender != nil {
		line("gender", *a.Gender)
	}
	if a.WorkoutFrequency != nil {
		line("workouts", strconv.Itoa(*a.WorkoutFrequency))
	}
	if a.Height != nil {
		unit := "cm"
		if a.HeightUnit != nil && *a.HeightUnit != "" {
			unit = *a.HeightUnit
		}
		line("height", fmt.Sprintf("%.1f %s", *a.Height, unit))
	}
	if a.Weight != nil {
		unit := "kg"
		if a.WeightUnit != nil && *a.WeightUnit != "" {
			unit = *a.WeightUnit
		}
		line("weight", fmt.Sprintf("%.1f %s", *a.Weight, unit))
	}
	if a.Age != nil {
		line("age", strconv.Itoa(*a.Age))
	}
	if a.WeightGoal != nil {
		line("goal weight", fmt.Sprintf("%.1f", *a.WeightGoal))
	}
	if a.OverallGoal != nil {
		line("goal", *a.OverallGoal)
	}
	if a.WeeklyWeightLoss != nil {
		line("pace", fmt.Sprintf("%.2f/week", *a.WeeklyWeightLoss))
	}
	if a.SpecificDiet != nil {
		line("diet", *a.SpecificDiet)
	}
	if len(a.CuisinePreferences) > 0 {
		line("cuisines", strings.Join(a.CuisinePreferences, ", "))
	}
	if len(a.FoodsToAvoid) > 0 {
		line("avoiding", strings.Join(a.FoodsToAvoid, ", "))
	}
	if a.Motivation != nil {
		line("motivation", *a.Motivation)
	}
	if len(a.MealPreferences) > 0 {
		line("meals", strings.Join(a.MealPreferences, ", "))
	}
	if a.Fasting != nil {
		line("fasting", strconv.FormatBool(*a.Fasting))
	}
	if a.Email != nil {
		line("email", *a.Email)
	}
}
