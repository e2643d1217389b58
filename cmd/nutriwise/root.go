package nutriwise

import (
	"fmt"
	"os"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
)

var (
	dbPath  string
	apiBase string
)

var rootCmd = &cobra.Command{
	Use:   "nutriwise",
	Short: "nutriwise builds your personalised weekly meal plan from your terminal",
	Long:  "nutriwise walks you through a nutrition questionnaire, creates your account and profile, and generates a 7-day meal plan tailored to your goals.",
}

func Execute() {
	_ = godotenv.Load()
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().StringVar(&dbPath, "db", "", "Path to local state database")
	rootCmd.PersistentFlags().StringVar(&apiBase, "api-base", "", "Backend base URL (defaults to $NUTRIWISE_API_BASE_URL)")
}
