package nutriwise

import (
	"database/sql"
	"errors"
	"os"
	"time"

	"github.com/rs/zerolog"

	"github.com/jakewoolfenden16/nutriwise-cli/internal/account"
	"github.com/jakewoolfenden16/nutriwise-cli/internal/api"
	"github.com/jakewoolfenden16/nutriwise-cli/internal/app"
	"github.com/jakewoolfenden16/nutriwise-cli/internal/db"
	"github.com/jakewoolfenden16/nutriwise-cli/internal/questionnaire"
	"github.com/jakewoolfenden16/nutriwise-cli/internal/store"
)

type appEnv struct {
	db    *sql.DB
	store *store.Store
	api   *api.Client
	log   zerolog.Logger
}

func withApp(run func(*appEnv) error) error {
	path, err := resolveDBPath()
	if err != nil {
		return err
	}
	if err := app.EnsureDBDir(path); err != nil {
		return err
	}
	sqldb, err := db.Open(path)
	if err != nil {
		return err
	}
	defer sqldb.Close()

	if err := db.ApplyMigrations(sqldb); err != nil {
		return err
	}
	env := &appEnv{
		db:    sqldb,
		store: store.New(sqldb),
		api:   &api.Client{BaseURL: resolveAPIBase()},
		log:   newLogger(),
	}
	return run(env)
}

func resolveDBPath() (string, error) {
	if dbPath != "" {
		return dbPath, nil
	}
	if v := os.Getenv("NUTRIWISE_STATE_PATH"); v != "" {
		return v, nil
	}
	return app.DefaultDBPath()
}

func resolveAPIBase() string {
	if apiBase != "" {
		return apiBase
	}
	return os.Getenv("NUTRIWISE_API_BASE_URL")
}

func newLogger() zerolog.Logger {
	level := zerolog.WarnLevel
	if v := os.Getenv("NUTRIWISE_LOG"); v != "" {
		if parsed, err := zerolog.ParseLevel(v); err == nil {
			level = parsed
		}
	}
	return zerolog.New(zerolog.ConsoleWriter{Out: os.Stderr}).Level(level).With().Timestamp().Logger()
}

// testModeEnabled lets the client talk to a local backend without a real
// session, mirroring the backend's own test fixture mode.
func testModeEnabled() bool {
	return os.Getenv("NUTRIWISE_TEST_MODE") == "true"
}

func loadSequencer() (*questionnaire.Sequencer, error) {
	path := os.Getenv("NUTRIWISE_STEPS_CONFIG")
	if path == "" {
		p, err := app.DefaultStepsConfigPath()
		if err != nil {
			return nil, err
		}
		path = p
	}
	cfg, err := questionnaire.LoadStepsConfig(path)
	if err != nil {
		return nil, err
	}
	return questionnaire.NewSequencer(cfg), nil
}

func loadDraft(env *appEnv) (*questionnaire.Store, error) {
	answers, step, err := env.store.OnboardingDraft()
	if err != nil {
		return nil, err
	}
	qs := questionnaire.NewStore()
	qs.Load(answers, step)
	return qs, nil
}

func saveDraft(env *appEnv, qs *questionnaire.Store) error {
	return env.store.SaveOnboardingDraft(qs.Answers(), qs.Step())
}

// currentStep resolves the draft cursor against the active flow. A cursor
// parked on a step the config has since disabled snaps forward to the next
// active step.
func currentStep(seq *questionnaire.Sequencer, cursor int) questionnaire.Step {
	st, ok := seq.StepAt(cursor)
	if !ok {
		return seq.First()
	}
	if _, active := seq.Find(st.Slug); active {
		return st
	}
	for _, a := range seq.Active() {
		if a.Index >= cursor {
			return a
		}
	}
	active := seq.Active()
	return active[len(active)-1]
}

// sessionToken returns a usable bearer token or an actionable error. Test
// mode tolerates a missing or expired token.
func sessionToken(env *appEnv) (string, error) {
	token, ok, err := env.store.SessionToken()
	if err != nil {
		return "", err
	}
	if testModeEnabled() {
		return token, nil
	}
	if !ok {
		return "", errors.New("not signed in (run 'nutriwise account login' or 'nutriwise account signup')")
	}
	if account.TokenExpired(token, time.Now()) {
		return "", errors.New("session expired, sign in again with 'nutriwise account login'")
	}
	return token, nil
}
