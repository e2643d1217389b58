// Package plangen turns an authenticated, profiled user into a ready weekly
// plan. The backend's generation time is unknown in advance, so a simulated
// progress clock runs alongside the real call: it climbs on a fixed schedule
// but never past its cap, and only the real completion pushes it to 100.
package plangen

import (
	"context"
	"errors"
	"time"

	"github.com/rs/zerolog"

	"github.com/jakewoolfenden16/nutriwise-cli/internal/api"
)

const (
	defaultTickInterval = 50 * time.Millisecond
	defaultNominalSpan  = 5 * time.Second

	// progressCap bounds the simulated clock; the remaining distance to 100
	// belongs to the real completion signal alone.
	progressCap = 95.0
)

var statusMessages = []struct {
	threshold float64
	text      string
}{
	{0, "Starting your personalised plan..."},
	{20, "Crunching the numbers..."},
	{40, "Analysing your goals..."},
	{60, "Personalising your macros..."},
	{80, "Building your meal plan..."},
	{90, "Almost there - your plan is ready!"},
}

const doneMessage = "Complete!"

func messageFor(progress float64) string {
	text := statusMessages[0].text
	for _, m := range statusMessages {
		if progress >= m.threshold {
			text = m.text
		}
	}
	return text
}

// Update is one progress emission. Progress is 0-100, non-decreasing across
// a single Run, and reaches exactly 100 only after the backend finished.
type Update struct {
	Progress float64
	Message  string
}

type Generator struct {
	API   *api.Client
	Token string
	Log   zerolog.Logger

	// TickInterval and NominalSpan shape the simulated clock; zero values
	// take the defaults. Tests shrink them.
	TickInterval time.Duration
	NominalSpan  time.Duration
}

// Run issues the generation call and drives the simulated clock until the
// real result arrives, then fetches the canonical plan. onUpdate is invoked
// sequentially from Run's goroutine; a nil onUpdate is allowed. A generation
// failure stops the clock and surfaces the normalized error so the caller
// can send the user back to account creation.
func (g *Generator) Run(ctx context.Context, onUpdate func(Update)) (api.WeeklyPlanDetail, error) {
	interval := g.TickInterval
	if interval <= 0 {
		interval = defaultTickInterval
	}
	span := g.NominalSpan
	if span <= 0 {
		span = defaultNominalSpan
	}
	emit := func(progress float64, message string) {
		if onUpdate != nil {
			onUpdate(Update{Progress: progress, Message: message})
		}
	}

	type generated struct {
		resp api.WeeklyPlanGenerated
		err  error
	}
	realCh := make(chan generated, 1)
	go func() {
		resp, err := g.API.GenerateWeeklyPlan(ctx, g.Token)
		realCh <- generated{resp: resp, err: err}
	}()

	increment := 100 * interval.Seconds() / span.Seconds()
	progress := 0.0
	emit(progress, messageFor(progress))

	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return api.WeeklyPlanDetail{}, ctx.Err()
		case r := <-realCh:
			if r.err != nil {
				g.Log.Warn().Err(r.err).Msg("weekly plan generation failed")
				return api.WeeklyPlanDetail{}, r.err
			}
			// The real completion wins over the simulated clock: jump
			// straight to 100, then fetch the canonical plan.
			emit(100, doneMessage)
			return g.fetchPlan(ctx, r.resp)
		case <-ticker.C:
			next := progress + increment
			if next > progressCap {
				next = progressCap
			}
			if next > progress {
				progress = next
				emit(progress, messageFor(progress))
			}
		}
	}
}

func (g *Generator) fetchPlan(ctx context.Context, resp api.WeeklyPlanGenerated) (api.WeeklyPlanDetail, error) {
	planID := resp.WeeklyPlanID
	if planID == 0 {
		current, err := g.API.CurrentWeeklyPlan(ctx, g.Token)
		if err != nil {
			return api.WeeklyPlanDetail{}, err
		}
		planID = current.WeeklyPlanID
	}
	if planID == 0 {
		return api.WeeklyPlanDetail{}, errors.New("generation succeeded but no plan id was returned")
	}
	return g.API.WeeklyPlanByID(ctx, g.Token, planID)
}
