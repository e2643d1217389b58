// Package api is the client for the nutriwise backend. Every operation takes
// a context, returns the decoded response, and flattens non-success bodies
// into a single normalized error message.
package api

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/google/uuid"
)

const defaultBaseURL = "https://api.nutriwise.app"

type Client struct {
	BaseURL    string
	HTTPClient *http.Client
}

func (c *Client) baseURL() string {
	base := strings.TrimRight(strings.TrimSpace(c.BaseURL), "/")
	if base == "" {
		base = defaultBaseURL
	}
	return base
}

func (c *Client) httpClient() *http.Client {
	if c.HTTPClient != nil {
		return c.HTTPClient
	}
	return &http.Client{Timeout: 30 * time.Second}
}

// request executes one call and returns the body for 2xx responses. Non-2xx
// responses come back as *Error with the normalized message; op names the
// operation for wrapped transport errors.
func (c *Client) request(ctx context.Context, op, method, path, token string, body io.Reader, headers map[string]string) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, method, c.baseURL()+path, body)
	if err != nil {
		return nil, fmt.Errorf("create %s request: %w", op, err)
	}
	if body != nil && headers["Content-Type"] == "" {
		req.Header.Set("Content-Type", "application/json")
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	for k, v := range headers {
		req.Header.Set(k, v)
	}

	resp, err := c.httpClient().Do(req)
	if err != nil {
		return nil, fmt.Errorf("execute %s request: %w", op, err)
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("read %s response: %w", op, err)
	}
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, &Error{Op: op, StatusCode: resp.StatusCode, Message: normalizeErrorBody(respBody)}
	}
	return respBody, nil
}

func (c *Client) postJSON(ctx context.Context, op, path, token string, payload any, out any, headers map[string]string) error {
	var body io.Reader
	if payload != nil {
		encoded, err := json.Marshal(payload)
		if err != nil {
			return fmt.Errorf("marshal %s payload: %w", op, err)
		}
		body = bytes.NewReader(encoded)
	}
	respBody, err := c.request(ctx, op, http.MethodPost, path, token, body, headers)
	if err != nil {
		return err
	}
	if out == nil {
		return nil
	}
	if err := json.Unmarshal(respBody, out); err != nil {
		return fmt.Errorf("decode %s response: %w", op, err)
	}
	return nil
}

func (c *Client) getJSON(ctx context.Context, op, path, token string, out any) error {
	respBody, err := c.request(ctx, op, http.MethodGet, path, token, nil, nil)
	if err != nil {
		return err
	}
	if err := json.Unmarshal(respBody, out); err != nil {
		return fmt.Errorf("decode %s response: %w", op, err)
	}
	return nil
}

// CalculateTargets computes nutrition targets from raw questionnaire fields.
// No authentication.
func (c *Client) CalculateTargets(ctx context.Context, req CalculateTargetsRequest) (CalculateTargetsResponse, error) {
	var out CalculateTargetsResponse
	if err := c.postJSON(ctx, "calculate targets", "/public/calculate-targets", "", req, &out, nil); err != nil {
		return CalculateTargetsResponse{}, err
	}
	return out, nil
}

// Signup creates a pending account. No token is issued; the user must
// confirm their email first.
func (c *Client) Signup(ctx context.Context, req SignupRequest) (SignupResponse, error) {
	var out SignupResponse
	if err := c.postJSON(ctx, "signup", "/signup", "", req, &out, nil); err != nil {
		return SignupResponse{}, err
	}
	return out, nil
}

// Login exchanges credentials for a bearer token. The backend expects the
// OAuth2 password-grant form encoding with the email in the username field.
func (c *Client) Login(ctx context.Context, email, password string) (TokenResponse, error) {
	form := url.Values{}
	form.Set("username", email)
	form.Set("password", password)

	respBody, err := c.request(ctx, "login", http.MethodPost, "/token", "",
		strings.NewReader(form.Encode()),
		map[string]string{"Content-Type": "application/x-www-form-urlencoded"})
	if err != nil {
		return TokenResponse{}, err
	}
	var out TokenResponse
	if err := json.Unmarshal(respBody, &out); err != nil {
		return TokenResponse{}, fmt.Errorf("decode login response: %w", err)
	}
	return out, nil
}

// CreateProfile persists the user's physical stats and goal.
func (c *Client) CreateProfile(ctx context.Context, token string, req ProfileRequest) (ProfileResponse, error) {
	var out ProfileResponse
	if err := c.postJSON(ctx, "create profile", "/profile", token, req, &out, nil); err != nil {
		return ProfileResponse{}, err
	}
	return out, nil
}

// GenerateWeeklyPlan asks the backend to build a 7-day plan from the stored
// profile. No body; an idempotency key guards against a retried generate
// forking two plans.
func (c *Client) GenerateWeeklyPlan(ctx context.Context, token string) (WeeklyPlanGenerated, error) {
	var out WeeklyPlanGenerated
	headers := map[string]string{"Idempotency-Key": uuid.NewString()}
	if err := c.postJSON(ctx, "generate weekly plan", "/plans/generate_weekly_plan", token, nil, &out, headers); err != nil {
		return WeeklyPlanGenerated{}, err
	}
	return out, nil
}

// CurrentWeeklyPlan returns the id of the active weekly plan, or an error
// wrapping ErrNoActivePlan when none exists yet.
func (c *Client) CurrentWeeklyPlan(ctx context.Context, token string) (WeeklyPlanCurrent, error) {
	var out WeeklyPlanCurrent
	err := c.getJSON(ctx, "current weekly plan", "/plans/weekly/current", token, &out)
	if err != nil {
		var apiErr *Error
		if errors.As(err, &apiErr) && apiErr.StatusCode == http.StatusNotFound {
			return WeeklyPlanCurrent{}, fmt.Errorf("%w: %s", ErrNoActivePlan, apiErr.Message)
		}
		return WeeklyPlanCurrent{}, err
	}
	return out, nil
}

// WeeklyPlanByID fetches the full weekly plan with all daily overviews.
func (c *Client) WeeklyPlanByID(ctx context.Context, token string, weeklyPlanID int64) (WeeklyPlanDetail, error) {
	var out WeeklyPlanDetail
	path := fmt.Sprintf("/plans/weekly/%d", weeklyPlanID)
	if err := c.getJSON(ctx, "weekly plan detail", path, token, &out); err != nil {
		return WeeklyPlanDetail{}, err
	}
	return out, nil
}

// DailyPlanMeals fetches the meals of one day, used for lazy per-day detail.
func (c *Client) DailyPlanMeals(ctx context.Context, token string, dailyPlanID int64) (DailyPlanMealsResponse, error) {
	var out DailyPlanMealsResponse
	path := fmt.Sprintf("/plans/daily/%d/meals", dailyPlanID)
	if err := c.getJSON(ctx, "daily plan meals", path, token, &out); err != nil {
		return DailyPlanMealsResponse{}, err
	}
	return out, nil
}

// GenerateMealPlan is the legacy single-day generation endpoint. The backend
// derives everything from user metadata; the response shape predates the
// weekly plan model, so it is passed through raw.
func (c *Client) GenerateMealPlan(ctx context.Context, token string) (json.RawMessage, error) {
	respBody, err := c.request(ctx, "generate meal plan", http.MethodPost, "/plans/generate_meal_plan", token, nil, nil)
	if err != nil {
		return nil, err
	}
	return json.RawMessage(respBody), nil
}

// CurrentMealPlan is the legacy single-day fetch counterpart.
func (c *Client) CurrentMealPlan(ctx context.Context, token string) (json.RawMessage, error) {
	respBody, err := c.request(ctx, "current meal plan", http.MethodGet, "/plans/current", token, nil, nil)
	if err != nil {
		return nil, err
	}
	return json.RawMessage(respBody), nil
}
