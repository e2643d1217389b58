package api

import (
	"encoding/json"
	"errors"
	"fmt"
	"strings"
)

// ErrNoActivePlan is returned by CurrentWeeklyPlan when the backend reports
// that no weekly plan exists yet for this user.
var ErrNoActivePlan = errors.New("no active weekly plan")

// Error is a non-success backend response with its message already
// normalized to a single human-readable string.
type Error struct {
	Op         string
	StatusCode int
	Message    string
}

func (e *Error) Error() string {
	if e.Message != "" {
		return e.Message
	}
	return fmt.Sprintf("%s failed (status %d)", e.Op, e.StatusCode)
}

// normalizeErrorBody flattens the backend's inconsistently shaped error
// bodies to one string. In order: a bare JSON string, a detail field (string,
// or a validation array of {loc, msg} entries joined), a message field, else
// the raw body.
func normalizeErrorBody(body []byte) string {
	trimmed := strings.TrimSpace(string(body))
	if trimmed == "" {
		return ""
	}

	var asString string
	if err := json.Unmarshal(body, &asString); err == nil {
		return asString
	}

	var envelope struct {
		Detail  json.RawMessage `json:"detail"`
		Message string          `json:"message"`
	}
	if err := json.Unmarshal(body, &envelope); err != nil {
		return trimmed
	}

	if len(envelope.Detail) > 0 {
		var detailString string
		if err := json.Unmarshal(envelope.Detail, &detailString); err == nil {
			return detailString
		}
		var validation []struct {
			Loc []any  `json:"loc"`
			Msg string `json:"msg"`
		}
		if err := json.Unmarshal(envelope.Detail, &validation); err == nil && len(validation) > 0 {
			parts := make([]string, 0, len(validation))
			for _, v := range validation {
				locs := make([]string, 0, len(v.Loc))
				for _, l := range v.Loc {
					locs = append(locs, fmt.Sprint(l))
				}
				parts = append(parts, fmt.Sprintf("%s: %s", strings.Join(locs, "."), v.Msg))
			}
			return strings.Join(parts, ", ")
		}
		return string(envelope.Detail)
	}

	if envelope.Message != "" {
		return envelope.Message
	}
	return trimmed
}
