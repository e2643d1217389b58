package plangen

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/rs/zerolog"

	"github.com/jakewoolfenden16/nutriwise-cli/internal/api"
)

func weeklyDetail(planID int64) api.WeeklyPlanDetail {
	var detail api.WeeklyPlanDetail
	detail.WeeklyPlan.ID = planID
	detail.TotalDays = 7
	return detail
}

func planServer(t *testing.T, generateDelay time.Duration, generateStatus int) *httptest.Server {
	t.Helper()
	mux := http.NewServeMux()
	mux.HandleFunc("/plans/generate_weekly_plan", func(w http.ResponseWriter, r *http.Request) {
		time.Sleep(generateDelay)
		if generateStatus != http.StatusOK {
			w.WriteHeader(generateStatus)
			json.NewEncoder(w).Encode(map[string]string{"detail": "profile not found"})
			return
		}
		json.NewEncoder(w).Encode(api.WeeklyPlanGenerated{Status: "ok", WeeklyPlanID: 42})
	})
	mux.HandleFunc("/plans/weekly/42", func(w http.ResponseWriter, r *http.Request) {
		json.NewEncoder(w).Encode(weeklyDetail(42))
	})
	srv := httptest.NewServer(mux)
	t.Cleanup(srv.Close)
	return srv
}

func TestRunProgressIsMonotonicAndFinishesAtHundred(t *testing.T) {
	t.Parallel()
	srv := planServer(t, 60*time.Millisecond, http.StatusOK)

	gen := Generator{
		API:          &api.Client{BaseURL: srv.URL},
		Token:        "tok",
		Log:          zerolog.Nop(),
		TickInterval: time.Millisecond,
		NominalSpan:  20 * time.Millisecond,
	}

	var updates []Update
	detail, err := gen.Run(context.Background(), func(u Update) {
		updates = append(updates, u)
	})
	if err != nil {
		t.Fatalf("run: %v", err)
	}
	if detail.WeeklyPlan.ID != 42 {
		t.Fatalf("plan id = %d, want 42", detail.WeeklyPlan.ID)
	}
	if len(updates) < 2 {
		t.Fatalf("expected progress updates, got %d", len(updates))
	}

	hundreds := 0
	for i, u := range updates {
		if i > 0 && u.Progress < updates[i-1].Progress {
			t.Fatalf("progress went backwards at %d: %v -> %v", i, updates[i-1].Progress, u.Progress)
		}
		if u.Progress == 100 {
			hundreds++
			if u.Message != "Complete!" {
				t.Fatalf("completion message = %q", u.Message)
			}
		} else if u.Progress > progressCap {
			t.Fatalf("simulated progress exceeded cap: %v", u.Progress)
		}
	}
	if hundreds != 1 {
		t.Fatalf("progress hit 100 %d times, want exactly once", hundreds)
	}
	if updates[len(updates)-1].Progress != 100 {
		t.Fatalf("final update = %+v, want 100", updates[len(updates)-1])
	}
}

func TestRunHoldsAtCapUntilBackendFinishes(t *testing.T) {
	t.Parallel()
	// The simulated span is far shorter than the backend delay, so the clock
	// must sit at the cap until the real completion arrives.
	srv := planServer(t, 80*time.Millisecond, http.StatusOK)

	gen := Generator{
		API:          &api.Client{BaseURL: srv.URL},
		Token:        "tok",
		Log:          zerolog.Nop(),
		TickInterval: time.Millisecond,
		NominalSpan:  5 * time.Millisecond,
	}

	var updates []Update
	if _, err := gen.Run(context.Background(), func(u Update) {
		updates = append(updates, u)
	}); err != nil {
		t.Fatalf("run: %v", err)
	}

	if len(updates) < 2 {
		t.Fatalf("expected updates, got %d", len(updates))
	}
	beforeLast := updates[len(updates)-2]
	if beforeLast.Progress != progressCap {
		t.Fatalf("progress before completion = %v, want cap %v", beforeLast.Progress, progressCap)
	}
	if beforeLast.Message != "Almost there - your plan is ready!" {
		t.Fatalf("cap message = %q", beforeLast.Message)
	}
}

func TestRunSurfacesGenerationFailure(t *testing.T) {
	t.Parallel()
	srv := planServer(t, 0, http.StatusBadRequest)

	gen := Generator{
		API:          &api.Client{BaseURL: srv.URL},
		Token:        "tok",
		Log:          zerolog.Nop(),
		TickInterval: time.Millisecond,
		NominalSpan:  10 * time.Millisecond,
	}

	var sawHundred bool
	_, err := gen.Run(context.Background(), func(u Update) {
		if u.Progress == 100 {
			sawHundred = true
		}
	})
	if err == nil {
		t.Fatalf("expected generation failure")
	}
	if sawHundred {
		t.Fatalf("failed generation must never report completion")
	}
}

func TestRunFallsBackToCurrentPlanWhenIDMissing(t *testing.T) {
	t.Parallel()
	mux := http.NewServeMux()
	mux.HandleFunc("/plans/generate_weekly_plan", func(w http.ResponseWriter, r *http.Request) {
		// Older backend: generation succeeds without returning an id.
		json.NewEncoder(w).Encode(api.WeeklyPlanGenerated{Status: "ok"})
	})
	mux.HandleFunc("/plans/weekly/current", func(w http.ResponseWriter, r *http.Request) {
		json.NewEncoder(w).Encode(api.WeeklyPlanCurrent{WeeklyPlanID: 9})
	})
	mux.HandleFunc("/plans/weekly/9", func(w http.ResponseWriter, r *http.Request) {
		json.NewEncoder(w).Encode(weeklyDetail(9))
	})
	srv := httptest.NewServer(mux)
	t.Cleanup(srv.Close)

	gen := Generator{
		API:          &api.Client{BaseURL: srv.URL},
		Token:        "tok",
		Log:          zerolog.Nop(),
		TickInterval: time.Millisecond,
		NominalSpan:  10 * time.Millisecond,
	}
	detail, err := gen.Run(context.Background(), nil)
	if err != nil {
		t.Fatalf("run: %v", err)
	}
	if detail.WeeklyPlan.ID != 9 {
		t.Fatalf("plan id = %d, want 9", detail.WeeklyPlan.ID)
	}
}

func TestRunStopsOnContextCancel(t *testing.T) {
	t.Parallel()
	srv := planServer(t, time.Second, http.StatusOK)

	gen := Generator{
		API:          &api.Client{BaseURL: srv.URL},
		Token:        "tok",
		Log:          zerolog.Nop(),
		TickInterval: time.Millisecond,
		NominalSpan:  10 * time.Millisecond,
	}
	ctx, cancel := context.WithTimeout(context.Background(), 20*time.Millisecond)
	defer cancel()

	_, err := gen.Run(ctx, nil)
	if err == nil {
		t.Fatalf("expected cancellation error")
	}
}

func TestMessageThresholds(t *testing.T) {
	t.Parallel()
	cases := []struct {
		progress float64
		want     string
	}{
		{0, "Starting your personalised plan..."},
		{19, "Starting your personalised plan..."},
		{20, "Crunching the numbers..."},
		{45, "Analysing your goals..."},
		{60, "Personalising your macros..."},
		{85, "Building your meal plan..."},
		{95, "Almost there - your plan is ready!"},
	}
	for _, tc := range cases {
		if got := messageFor(tc.progress); got != tc.want {
			t.Fatalf("messageFor(%v) = %q, want %q", tc.progress, got, tc.want)
		}
	}
}
