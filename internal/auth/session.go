package auth

import (
	"context"
	"errors"
	"fmt"
	"net/http"

	"github.com/google/uuid"
)

// Resetter clears one piece of state derived from a browser session
type Resetter interface {
	ResetSession(w http.ResponseWriter, r *http.Request, sid string) error
}

// ResetterFunc adapts a function to Resetter
type ResetterFunc func(w http.ResponseWriter, r *http.Request, sid string) error

func (f ResetterFunc) ResetSession(w http.ResponseWriter, r *http.Request, sid string) error {
	return f(w, r, sid)
}

// Session is the lifecycle of everything the console derives from one
// browser session. Init runs on the first request, Reset on logout.
type Session struct {
	creds     *CredentialStore
	resetters []Resetter
}

// NewSession creates a new session container
func NewSession(creds *CredentialStore, resetters ...Resetter) *Session {
	return &Session{creds: creds, resetters: resetters}
}

// Credentials returns the credential store backing the session
func (s *Session) Credentials() *CredentialStore {
	return s.creds
}

// Init makes sure the browser session has an id and returns it
func (s *Session) Init(w http.ResponseWriter, r *http.Request) (string, error) {
	if sid := s.creds.SID(r); sid != "" {
		return sid, nil
	}
	sid := uuid.NewString()
	if err := s.creds.SetSID(w, r, sid); err != nil {
		return "", fmt.Errorf("failed to start session: %w", err)
	}
	return sid, nil
}

// Reset clears the credential and every registered piece of derived state,
// then issues a new session id. All resetters run even if one fails.
func (s *Session) Reset(w http.ResponseWriter, r *http.Request) error {
	sid := s.creds.SID(r)

	var errs []error
	for _, rs := range s.resetters {
		if err := rs.ResetSession(w, r, sid); err != nil {
			errs = append(errs, err)
		}
	}
	if err := s.creds.rotate(w, r, uuid.NewString()); err != nil {
		errs = append(errs, fmt.Errorf("failed to clear credential: %w", err))
	}
	return errors.Join(errs...)
}

type credentialKey struct{}

// WithCredential attaches a credential to ctx
func WithCredential(ctx context.Context, cred Credential) context.Context {
	return context.WithValue(ctx, credentialKey{}, cred)
}

// FromContext returns the credential attached to ctx
func FromContext(ctx context.Context) (Credential, bool) {
	cred, ok := ctx.Value(credentialKey{}).(Credential)
	return cred, ok
}
