package account

import (
	"fmt"
	"net/url"
	"strings"
)

// VerificationCallback is the parsed form of the URL fragment the identity
// backend appends when it redirects back after the user clicks the emailed
// confirmation link. The fragment is the only protocol surface this client
// parses itself, so it is modelled once here and dispatched as a value.
type VerificationCallback struct {
	AccessToken      string
	RefreshToken     string
	Type             string
	ErrorDescription string
}

// callbackTypeSignup is the marker the backend sets on a successful signup
// confirmation.
const callbackTypeSignup = "signup"

// SignupConfirmed reports whether this callback completes email verification
// with a usable session.
func (cb VerificationCallback) SignupConfirmed() bool {
	return cb.Type == callbackTypeSignup && cb.AccessToken != ""
}

// ParseVerificationCallback extracts the callback from a redirect URL or a
// bare fragment. Accepts the full URL the user landed on, "#k=v&..." or just
// "k=v&...".
func ParseVerificationCallback(raw string) (VerificationCallback, error) {
	fragment := strings.TrimSpace(raw)
	if i := strings.Index(fragment, "#"); i >= 0 {
		fragment = fragment[i+1:]
	}
	values, err := url.ParseQuery(fragment)
	if err != nil {
		return VerificationCallback{}, fmt.Errorf("parse verification fragment: %w", err)
	}
	return VerificationCallback{
		AccessToken:      values.Get("access_token"),
		RefreshToken:     values.Get("refresh_token"),
		Type:             values.Get("type"),
		ErrorDescription: values.Get("error_description"),
	}, nil
}
