package auth

import (
	"net/http"
	"time"

	"github.com/gorilla/sessions"
)

// SessionName is the cookie holding the credential, sid and CSRF token
const SessionName = "session"

const (
	keyToken     = "token"
	keyUsername  = "username"
	keyIssuedAt  = "issued_at"
	keyExpiresAt = "expires_at"
	keySID       = "sid"
)

// CredentialStore keeps the operator credential in the session cookie
type CredentialStore struct {
	store sessions.Store
}

// NewCredentialStore creates a new credential store
func NewCredentialStore(store sessions.Store) *CredentialStore {
	return &CredentialStore{store: store}
}

// session returns the request's cookie session. A cookie that fails to
// decode still yields the registry's fresh session, so writes made earlier
// in the same request stay visible.
func (s *CredentialStore) session(r *http.Request) *sessions.Session {
	session, _ := s.store.Get(r, SessionName)
	if session == nil {
		session = sessions.NewSession(s.store, SessionName)
		session.IsNew = true
	}
	return session
}

// Load reads the credential; ok is false when none is stored
func (s *CredentialStore) Load(r *http.Request) (Credential, bool) {
	session := s.session(r)

	token, _ := session.Values[keyToken].(string)
	if token == "" {
		return Credential{}, false
	}
	username, _ := session.Values[keyUsername].(string)

	cred := Credential{Token: token, Username: username}
	if iat, ok := session.Values[keyIssuedAt].(int64); ok && iat > 0 {
		cred.IssuedAt = time.Unix(iat, 0)
	}
	if exp, ok := session.Values[keyExpiresAt].(int64); ok && exp > 0 {
		cred.ExpiresAt = time.Unix(exp, 0)
	}
	return cred, true
}

// Save writes the credential
func (s *CredentialStore) Save(w http.ResponseWriter, r *http.Request, cred Credential) error {
	session := s.session(r)
	session.Values[keyToken] = cred.Token
	session.Values[keyUsername] = cred.Username
	session.Values[keyIssuedAt] = unixOrZero(cred.IssuedAt)
	session.Values[keyExpiresAt] = unixOrZero(cred.ExpiresAt)
	return session.Save(r, w)
}

// rotate clears the credential and replaces the sid in a single write
func (s *CredentialStore) rotate(w http.ResponseWriter, r *http.Request, sid string) error {
	session := s.session(r)
	clearCredential(session)
	session.Values[keySID] = sid
	return session.Save(r, w)
}

func clearCredential(session *sessions.Session) {
	delete(session.Values, keyToken)
	delete(session.Values, keyUsername)
	delete(session.Values, keyIssuedAt)
	delete(session.Values, keyExpiresAt)
}

// SID returns the browser session id, if one was issued
func (s *CredentialStore) SID(r *http.Request) string {
	sid, _ := s.session(r).Values[keySID].(string)
	return sid
}

// SetSID stores the browser session id
func (s *CredentialStore) SetSID(w http.ResponseWriter, r *http.Request, sid string) error {
	session := s.session(r)
	session.Values[keySID] = sid
	return session.Save(r, w)
}

func unixOrZero(t time.Time) int64 {
	if t.IsZero() {
		return 0
	}
	return t.Unix()
}
