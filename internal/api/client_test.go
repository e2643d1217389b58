package api

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
)

func TestLoginSendsPasswordGrantForm(t *testing.T) {
	t.Parallel()
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/token" {
			t.Errorf("path = %s, want /token", r.URL.Path)
		}
		if ct := r.Header.Get("Content-Type"); ct != "application/x-www-form-urlencoded" {
			t.Errorf("content type = %s", ct)
		}
		if err := r.ParseForm(); err != nil {
			t.Errorf("parse form: %v", err)
		}
		if got := r.PostForm.Get("username"); got != "user@example.com" {
			t.Errorf("username = %q, want the email", got)
		}
		if got := r.PostForm.Get("password"); got != "hunter2" {
			t.Errorf("password = %q", got)
		}
		json.NewEncoder(w).Encode(TokenResponse{AccessToken: "tok", TokenType: "bearer"})
	}))
	defer srv.Close()

	c := &Client{BaseURL: srv.URL}
	tok, err := c.Login(context.Background(), "user@example.com", "hunter2")
	if err != nil {
		t.Fatalf("login: %v", err)
	}
	if tok.AccessToken != "tok" {
		t.Fatalf("token = %+v", tok)
	}
}

func TestBearerTokenAttached(t *testing.T) {
	t.Parallel()
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if got := r.Header.Get("Authorization"); got != "Bearer tok-abc" {
			t.Errorf("authorization = %q", got)
		}
		json.NewEncoder(w).Encode(WeeklyPlanCurrent{WeeklyPlanID: 7})
	}))
	defer srv.Close()

	c := &Client{BaseURL: srv.URL}
	current, err := c.CurrentWeeklyPlan(context.Background(), "tok-abc")
	if err != nil {
		t.Fatalf("current: %v", err)
	}
	if current.WeeklyPlanID != 7 {
		t.Fatalf("plan id = %d", current.WeeklyPlanID)
	}
}

func TestGenerateWeeklyPlanSendsIdempotencyKey(t *testing.T) {
	t.Parallel()
	var keys []string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		keys = append(keys, r.Header.Get("Idempotency-Key"))
		json.NewEncoder(w).Encode(WeeklyPlanGenerated{Status: "ok", WeeklyPlanID: 1})
	}))
	defer srv.Close()

	c := &Client{BaseURL: srv.URL}
	for i := 0; i < 2; i++ {
		if _, err := c.GenerateWeeklyPlan(context.Background(), "tok"); err != nil {
			t.Fatalf("generate %d: %v", i, err)
		}
	}
	if len(keys) != 2 || keys[0] == "" || keys[1] == "" {
		t.Fatalf("idempotency keys missing: %v", keys)
	}
	if keys[0] == keys[1] {
		t.Fatalf("separate calls reused idempotency key %q", keys[0])
	}
}

func TestCurrentWeeklyPlanNotFound(t *testing.T) {
	t.Parallel()
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
		json.NewEncoder(w).Encode(map[string]string{"detail": "No active weekly plan found"})
	}))
	defer srv.Close()

	c := &Client{BaseURL: srv.URL}
	_, err := c.CurrentWeeklyPlan(context.Background(), "tok")
	if !errors.Is(err, ErrNoActivePlan) {
		t.Fatalf("err = %v, want ErrNoActivePlan", err)
	}
}

func TestServerErrorIsNotNoActivePlan(t *testing.T) {
	t.Parallel()
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
		json.NewEncoder(w).Encode(map[string]string{"detail": "boom"})
	}))
	defer srv.Close()

	c := &Client{BaseURL: srv.URL}
	_, err := c.CurrentWeeklyPlan(context.Background(), "tok")
	if err == nil || errors.Is(err, ErrNoActivePlan) {
		t.Fatalf("err = %v, want plain error", err)
	}
	var apiErr *Error
	if !errors.As(err, &apiErr) || apiErr.StatusCode != http.StatusInternalServerError {
		t.Fatalf("err = %v, want *Error with status 500", err)
	}
}

func TestNormalizeErrorBody(t *testing.T) {
	t.Parallel()
	cases := []struct {
		name string
		body string
		want string
	}{
		{"bare json string", `"rate limited"`, "rate limited"},
		{"detail string", `{"detail":"email already registered"}`, "email already registered"},
		{
			"validation array",
			`{"detail":[{"loc":["body","email"],"msg":"invalid email"},{"loc":["body","age"],"msg":"must be positive"}]}`,
			"body.email: invalid email, body.age: must be positive",
		},
		{"message field", `{"message":"try again later"}`, "try again later"},
		{"raw fallback", `<html>bad gateway</html>`, "<html>bad gateway</html>"},
		{"empty body", ``, ""},
	}
	for _, tc := range cases {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()
			if got := normalizeErrorBody([]byte(tc.body)); got != tc.want {
				t.Fatalf("normalize(%q) = %q, want %q", tc.body, got, tc.want)
			}
		})
	}
}

func TestErrorMessageFallsBackToOp(t *testing.T) {
	t.Parallel()
	e := &Error{Op: "signup", StatusCode: 502}
	if got := e.Error(); got != "signup failed (status 502)" {
		t.Fatalf("error string = %q", got)
	}
}
