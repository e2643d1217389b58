// Package account drives signup, email verification, profile creation and
// session lifecycle against the identity backend.
package account

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/rs/zerolog"

	"github.com/jakewoolfenden16/nutriwise-cli/internal/api"
	"github.com/jakewoolfenden16/nutriwise-cli/internal/model"
	"github.com/jakewoolfenden16/nutriwise-cli/internal/questionnaire"
	"github.com/jakewoolfenden16/nutriwise-cli/internal/store"
)

// State is the orchestrator's position in the account lifecycle. Whether the
// user is authenticated is derived from the session token alone, never from
// the state value, so the two cannot drift apart.
type State int

const (
	Anonymous State = iota
	PendingVerification
	ProfilePending
	ProfileReady
	Authenticated
)

func (s State) String() string {
	switch s {
	case Anonymous:
		return "anonymous"
	case PendingVerification:
		return "pending verification"
	case ProfilePending:
		return "profile pending"
	case ProfileReady:
		return "profile ready"
	case Authenticated:
		return "authenticated"
	}
	return "unknown"
}

// ErrAwaitingVerification tells the caller the user has signed up but not
// yet clicked the emailed confirmation link; keep waiting.
var ErrAwaitingVerification = errors.New("awaiting email verification")

type SignupCredentials struct {
	Email    string
	Password string
	Name     string
}

type Orchestrator struct {
	api     *api.Client
	store   *store.Store
	log     zerolog.Logger
	state   State
	session model.Session
}

func New(apiClient *api.Client, st *store.Store, log zerolog.Logger) *Orchestrator {
	return &Orchestrator{api: apiClient, store: st, log: log, state: Anonymous}
}

func (o *Orchestrator) State() State { return o.state }

func (o *Orchestrator) Session() model.Session { return o.session }

func (o *Orchestrator) IsAuthenticated() bool { return o.session.IsAuthenticated() }

// Restore recovers the session from the persisted store after a process
// restart, including the restart forced by the external verification
// redirect. Expired tokens degrade to the unauthenticated path.
func (o *Orchestrator) Restore() error {
	token, ok, err := o.store.SessionToken()
	if err != nil {
		return err
	}
	if ok && !TokenExpired(token, time.Now()) {
		refresh, _, err := o.store.RefreshToken()
		if err != nil {
			return err
		}
		o.session = model.Session{AccessToken: token, RefreshToken: refresh}
		// Backfill the marker for sessions persisted before it existed.
		if ready, err := o.store.ProfileReady(); err == nil && !ready {
			_ = o.store.SetProfileReady()
		}
		o.state = Authenticated
		return nil
	}
	if ok {
		o.log.Debug().Msg("stored session token is expired, treating as signed out")
	}

	pending, err := o.store.HasPendingQuestionnaire()
	if err != nil {
		return err
	}
	if pending {
		o.state = PendingVerification
	} else {
		o.state = Anonymous
	}
	return nil
}

// Signup creates a pending account and snapshots the questionnaire so the
// profile can be created once the email is verified. No token is issued at
// this point. On failure nothing transitions and nothing is persisted.
func (o *Orchestrator) Signup(ctx context.Context, creds SignupCredentials, answers questionnaire.Answers) error {
	snapshot, err := json.Marshal(answers)
	if err != nil {
		return fmt.Errorf("encode questionnaire snapshot: %w", err)
	}
	if _, err := o.api.Signup(ctx, api.SignupRequest{
		Email:             creds.Email,
		Password:          creds.Password,
		Name:              creds.Name,
		QuestionnaireData: snapshot,
	}); err != nil {
		return err
	}
	if err := o.store.SetPendingQuestionnaire(answers); err != nil {
		return err
	}
	o.state = PendingVerification
	o.log.Info().Str("email", creds.Email).Msg("account created, verification email sent")
	return nil
}

// Login exchanges credentials for a bearer token and persists it.
func (o *Orchestrator) Login(ctx context.Context, email, password string) error {
	tok, err := o.api.Login(ctx, email, password)
	if err != nil {
		return err
	}
	if err := o.store.SetSessionToken(tok.AccessToken); err != nil {
		return err
	}
	if err := o.store.SetProfileReady(); err != nil {
		return err
	}
	o.session = model.Session{AccessToken: tok.AccessToken}
	o.state = Authenticated
	return nil
}

// HandleVerificationCallback consumes the parsed redirect fragment. On a
// confirmed signup it persists the session and creates the profile from the
// pending questionnaire, deleting the snapshot only after the profile call
// succeeds; a failed profile call keeps the snapshot so the caller can retry
// while the session stays valid. Without a confirmation marker or an
// existing session it reports ErrAwaitingVerification.
func (o *Orchestrator) HandleVerificationCallback(ctx context.Context, cb VerificationCallback) error {
	if cb.ErrorDescription != "" {
		return fmt.Errorf("verification failed: %s", cb.ErrorDescription)
	}
	if !cb.SignupConfirmed() {
		if o.IsAuthenticated() {
			return nil
		}
		o.state = PendingVerification
		return ErrAwaitingVerification
	}

	if err := o.store.SetSessionToken(cb.AccessToken); err != nil {
		return err
	}
	if cb.RefreshToken != "" {
		if err := o.store.SetRefreshToken(cb.RefreshToken); err != nil {
			return err
		}
	}
	o.session = model.Session{AccessToken: cb.AccessToken, RefreshToken: cb.RefreshToken}
	o.state = ProfilePending

	answers, ok, err := o.store.PendingQuestionnaire()
	if err != nil {
		return err
	}
	if !ok {
		// Nothing pending: the profile already exists or the snapshot was
		// abandoned. Either way the session is usable.
		if err := o.store.SetProfileReady(); err != nil {
			return err
		}
		o.state = ProfileReady
		return nil
	}
	return o.createProfileFromPending(ctx, answers)
}

// RetryProfileCreation re-attempts the profile call after a recoverable
// failure, using the snapshot still held in the store.
func (o *Orchestrator) RetryProfileCreation(ctx context.Context) error {
	if !o.IsAuthenticated() {
		return errors.New("not signed in")
	}
	answers, ok, err := o.store.PendingQuestionnaire()
	if err != nil {
		return err
	}
	if !ok {
		return errors.New("no pending questionnaire to submit")
	}
	return o.createProfileFromPending(ctx, answers)
}

func (o *Orchestrator) createProfileFromPending(ctx context.Context, answers questionnaire.Answers) error {
	payload := ProfilePayload(answers)
	if _, err := o.api.CreateProfile(ctx, o.session.AccessToken, payload); err != nil {
		// Snapshot stays in place: profile creation is retryable and the
		// session remains valid.
		o.log.Warn().Err(err).Msg("profile creation failed, keeping pending questionnaire")
		return err
	}
	if err := o.store.DeletePendingQuestionnaire(); err != nil {
		return err
	}
	if err := o.store.SetProfileReady(); err != nil {
		return err
	}
	o.state = ProfileReady
	o.log.Info().Msg("profile created")
	return nil
}

// Logout clears the session and every authentication-related persisted key.
func (o *Orchestrator) Logout() error {
	if err := o.store.ClearSession(); err != nil {
		return err
	}
	o.session = model.Session{}
	o.state = Anonymous
	return nil
}

// ProfilePayload maps questionnaire answers onto the profile request. Values
// pass through as collected; the goal falls back to a comparison of current
// and goal weight when the user never picked one.
func ProfilePayload(a questionnaire.Answers) api.ProfileRequest {
	req := api.ProfileRequest{}
	if a.Gender != nil {
		req.Gender = *a.Gender
	}
	if a.Height != nil {
		req.Height = *a.Height
	}
	if a.Weight != nil {
		req.Weight = *a.Weight
	}
	if a.Age != nil {
		req.Age = *a.Age
	}
	if a.WorkoutFrequency != nil {
		req.WorkoutsPerWeek = *a.WorkoutFrequency
	}
	if a.WeightGoal != nil {
		req.WeightGoal = *a.WeightGoal
	}
	if a.WeeklyWeightLoss != nil {
		req.PlannedWeeklyWeightLoss = *a.WeeklyWeightLoss
	}
	req.Goal = goalFor(a)
	return req
}

func goalFor(a questionnaire.Answers) string {
	if a.OverallGoal != nil {
		switch *a.OverallGoal {
		case "lose", "build", "maintain":
			return *a.OverallGoal
		}
	}
	if a.Weight != nil && a.WeightGoal != nil {
		switch {
		case *a.WeightGoal < *a.Weight:
			return "lose"
		case *a.WeightGoal > *a.Weight:
			return "build"
		}
	}
	return "maintain"
}
