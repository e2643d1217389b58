// Package store persists the small set of cross-flow state this client owns:
// the session tokens, the pending questionnaire snapshot written at signup,
// the profile-ready marker, and the onboarding draft. Keys are written by
// independent flows (login, verification, logout) with no coordination, so
// every reader treats a missing or unreadable value as "not set" rather than
// an error.
package store

import (
	"database/sql"
	"encoding/json"
	"fmt"
	"strconv"
	"strings"

	"github.com/jakewoolfenden16/nutriwise-cli/internal/questionnaire"
)

const (
	keySessionToken     = "session_token"
	keyRefreshToken     = "refresh_token"
	keyPendingAnswers   = "pending_questionnaire"
	keyProfileReady     = "profile_ready"
	keyOnboardingDraft  = "onboarding_draft"
	keyOnboardingCursor = "onboarding_step"
)

type Store struct {
	db *sql.DB
}

func New(db *sql.DB) *Store {
	return &Store{db: db}
}

func (s *Store) set(key, value string) error {
	_, err := s.db.Exec(`
INSERT INTO app_state(key, value, updated_at)
VALUES(?, ?, CURRENT_TIMESTAMP)
ON CONFLICT(key) DO UPDATE SET value=excluded.value, updated_at=excluded.updated_at
`, key, value)
	if err != nil {
		return fmt.Errorf("set state %q: %w", key, err)
	}
	return nil
}

func (s *Store) get(key string) (string, bool, error) {
	var value string
	err := s.db.QueryRow(`SELECT value FROM app_state WHERE key = ?`, key).Scan(&value)
	if err == sql.ErrNoRows {
		return "", false, nil
	}
	if err != nil {
		return "", false, fmt.Errorf("get state %q: %w", key, err)
	}
	return value, true, nil
}

func (s *Store) delete(key string) error {
	if _, err := s.db.Exec(`DELETE FROM app_state WHERE key = ?`, key); err != nil {
		return fmt.Errorf("delete state %q: %w", key, err)
	}
	return nil
}

func (s *Store) SessionToken() (string, bool, error) {
	v, ok, err := s.get(keySessionToken)
	if err != nil || !ok || strings.TrimSpace(v) == "" {
		return "", false, err
	}
	return v, true, nil
}

func (s *Store) SetSessionToken(token string) error {
	return s.set(keySessionToken, token)
}

func (s *Store) RefreshToken() (string, bool, error) {
	v, ok, err := s.get(keyRefreshToken)
	if err != nil || !ok || strings.TrimSpace(v) == "" {
		return "", false, err
	}
	return v, true, nil
}

func (s *Store) SetRefreshToken(token string) error {
	return s.set(keyRefreshToken, token)
}

func (s *Store) ProfileReady() (bool, error) {
	v, ok, err := s.get(keyProfileReady)
	if err != nil {
		return false, err
	}
	return ok && v == "true", nil
}

func (s *Store) SetProfileReady() error {
	return s.set(keyProfileReady, "true")
}

// ClearSession removes every authentication-related key. Used by logout.
func (s *Store) ClearSession() error {
	for _, key := range []string{keySessionToken, keyRefreshToken, keyProfileReady} {
		if err := s.delete(key); err != nil {
			return err
		}
	}
	return nil
}

// PendingQuestionnaire returns the snapshot written at signup, if any. A
// blob that fails to decode counts as absent: a half-written value must read
// as "not ready", not as an error.
func (s *Store) PendingQuestionnaire() (questionnaire.Answers, bool, error) {
	v, ok, err := s.get(keyPendingAnswers)
	if err != nil || !ok {
		return questionnaire.Answers{}, false, err
	}
	var a questionnaire.Answers
	if err := json.Unmarshal([]byte(v), &a); err != nil {
		return questionnaire.Answers{}, false, nil
	}
	return a, true, nil
}

// HasPendingQuestionnaire reports presence without decoding.
func (s *Store) HasPendingQuestionnaire() (bool, error) {
	_, ok, err := s.get(keyPendingAnswers)
	return ok, err
}

func (s *Store) SetPendingQuestionnaire(a questionnaire.Answers) error {
	blob, err := json.Marshal(a)
	if err != nil {
		return fmt.Errorf("encode pending questionnaire: %w", err)
	}
	return s.set(keyPendingAnswers, string(blob))
}

func (s *Store) DeletePendingQuestionnaire() error {
	return s.delete(keyPendingAnswers)
}

// OnboardingDraft restores the saved answer draft and step cursor. Absent or
// unreadable drafts come back as a fresh questionnaire.
func (s *Store) OnboardingDraft() (questionnaire.Answers, int, error) {
	var a questionnaire.Answers
	step := questionnaire.InitialStep

	if v, ok, err := s.get(keyOnboardingDraft); err != nil {
		return a, step, err
	} else if ok {
		if err := json.Unmarshal([]byte(v), &a); err != nil {
			a = questionnaire.Answers{}
		}
	}
	if v, ok, err := s.get(keyOnboardingCursor); err != nil {
		return a, step, err
	} else if ok {
		if n, err := strconv.Atoi(v); err == nil && n >= questionnaire.InitialStep {
			step = n
		}
	}
	return a, step, nil
}

func (s *Store) SaveOnboardingDraft(a questionnaire.Answers, step int) error {
	blob, err := json.Marshal(a)
	if err != nil {
		return fmt.Errorf("encode onboarding draft: %w", err)
	}
	if err := s.set(keyOnboardingDraft, string(blob)); err != nil {
		return err
	}
	return s.set(keyOnboardingCursor, strconv.Itoa(step))
}

func (s *Store) ClearOnboardingDraft() error {
	if err := s.delete(keyOnboardingDraft); err != nil {
		return err
	}
	return s.delete(keyOnboardingCursor)
}
