package nutriwise

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/jakewoolfenden16/nutriwise-cli/internal/account"
	"github.com/jakewoolfenden16/nutriwise-cli/internal/questionnaire"
)

var accountCmd = &cobra.Command{
	Use:   "account",
	Short: "Create and manage your account",
}

var (
	accountEmail    string
	accountPassword string
	accountName     string
)

var accountSignupCmd = &cobra.Command{
	Use:   "signup",
	Short: "Create an account from your questionnaire answers",
	RunE: func(cmd *cobra.Command, args []string) error {
		if accountEmail == "" || accountPassword == "" {
			return errors.New("--email and --password are required")
		}
		return withApp(func(env *appEnv) error {
			qs, err := loadDraft(env)
			if err != nil {
				return err
			}
			qs.Update(questionnaire.Answers{Email: questionnaire.String(accountEmail)})
			if err := saveDraft(env, qs); err != nil {
				return err
			}

			orch := account.New(env.api, env.store, env.log)
			creds := account.SignupCredentials{Email: accountEmail, Password: accountPassword, Name: accountName}
			if err := orch.Signup(cmd.Context(), creds, qs.Answers()); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Account created. Check %s for a verification link, then run:\n  nutriwise account verify <redirect-url>\n", accountEmail)
			return nil
		})
	},
}

var accountLoginCmd = &cobra.Command{
	Use:   "login",
	Short: "Sign in to an existing account",
	RunE: func(cmd *cobra.Command, args []string) error {
		if accountEmail == "" || accountPassword == "" {
			return errors.New("--email and --password are required")
		}
		return withApp(func(env *appEnv) error {
			orch := account.New(env.api, env.store, env.log)
			if err := orch.Login(cmd.Context(), accountEmail, accountPassword); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Signed in as %s\n", accountEmail)
			return nil
		})
	},
}

var accountVerifyCmd = &cobra.Command{
	Use:   "verify <redirect-url>",
	Short: "Complete email verification with the link you were redirected to",
	Long:  "Paste the full URL the verification email redirected you to. The tokens live in its fragment; on a confirmed signup your profile is created from the saved questionnaire.",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return withApp(func(env *appEnv) error {
			cb, err := account.ParseVerificationCallback(args[0])
			if err != nil {
				return err
			}
			orch := account.New(env.api, env.store, env.log)
			if err := orch.Restore(); err != nil {
				return err
			}
			err = orch.HandleVerificationCallback(cmd.Context(), cb)
			if errors.Is(err, account.ErrAwaitingVerification) {
				fmt.Fprintln(cmd.OutOrStdout(), "Not verified yet. Open the link from your email and try again.")
				return nil
			}
			if err != nil {
				if orch.IsAuthenticated() {
					fmt.Fprintln(cmd.OutOrStdout(), "Email verified, but profile creation failed. Retry with 'nutriwise account retry-profile'.")
				}
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), "Email verified and profile created. Run 'nutriwise plan generate' to build your first plan.")
			return nil
		})
	},
}

var accountRetryProfileCmd = &cobra.Command{
	Use:   "retry-profile",
	Short: "Retry profile creation after a failed verification",
	RunE: func(cmd *cobra.Command, args []string) error {
		return withApp(func(env *appEnv) error {
			orch := account.New(env.api, env.store, env.log)
			if err := orch.Restore(); err != nil {
				return err
			}
			if err := orch.RetryProfileCreation(cmd.Context()); err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), "Profile created")
			return nil
		})
	},
}

var accountLogoutCmd = &cobra.Command{
	Use:   "logout",
	Short: "Sign out and clear the stored session",
	RunE: func(cmd *cobra.Command, args []string) error {
		return withApp(func(env *appEnv) error {
			orch := account.New(env.api, env.store, env.log)
			if err := orch.Logout(); err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), "Signed out")
			return nil
		})
	},
}

var accountStatusCmd = &cobra.Command{
	Use:   "status",
	Short: "Show the account and session state",
	RunE: func(cmd *cobra.Command, args []string) error {
		return withApp(func(env *appEnv) error {
			orch := account.New(env.api, env.store, env.log)
			if err := orch.Restore(); err != nil {
				return err
			}
			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "State: %s\n", orch.State())
			pending, err := env.store.HasPendingQuestionnaire()
			if err != nil {
				return err
			}
			if pending {
				fmt.Fprintln(out, "A questionnaire snapshot is waiting for email verification")
			}
			ready, err := env.store.ProfileReady()
			if err != nil {
				return err
			}
			if ready {
				fmt.Fprintln(out, "Profile: ready")
			}
			return nil
		})
	},
}

func init() {
	for _, c := range []*cobra.Command{accountSignupCmd, accountLoginCmd} {
		c.Flags().StringVar(&accountEmail, "email", "", "Email address")
		c.Flags().StringVar(&accountPassword, "password", "", "Password")
	}
	accountSignupCmd.Flags().StringVar(&accountName, "name", "", "Display name")

	accountCmd.AddCommand(accountSignupCmd, accountLoginCmd, accountVerifyCmd, accountRetryProfileCmd, accountLogoutCmd, accountStatusCmd)
	rootCmd.AddCommand(accountCmd)
}
