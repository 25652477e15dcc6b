package auth

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gorilla/sessions"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSessionInitIssuesSIDOnce(t *testing.T) {
	session := NewSession(NewCredentialStore(sessions.NewCookieStore([]byte("test-secret-key"))))

	rr := httptest.NewRecorder()
	sid, err := session.Init(rr, httptest.NewRequest(http.MethodGet, "/", nil))
	require.NoError(t, err)
	assert.NotEmpty(t, sid)

	rr2 := httptest.NewRecorder()
	again, err := session.Init(rr2, nextRequest(rr))
	require.NoError(t, err)
	assert.Equal(t, sid, again)
	assert.Empty(t, rr2.Result().Cookies())
}

func TestSessionReset(t *testing.T) {
	creds := NewCredentialStore(sessions.NewCookieStore([]byte("test-secret-key")))

	var resetSIDs []string
	session := NewSession(creds,
		ResetterFunc(func(w http.ResponseWriter, r *http.Request, sid string) error {
			resetSIDs = append(resetSIDs, "nav:"+sid)
			return nil
		}),
		ResetterFunc(func(w http.ResponseWriter, r *http.Request, sid string) error {
			resetSIDs = append(resetSIDs, "drafts:"+sid)
			return nil
		}),
	)

	rr := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	sid, err := session.Init(rr, req)
	require.NoError(t, err)
	require.NoError(t, creds.Save(rr, req, Credential{Token: "tok", Username: "Amy"}))

	req = nextRequest(rr)
	rr = httptest.NewRecorder()
	require.NoError(t, session.Reset(rr, req))

	assert.Equal(t, []string{"nav:" + sid, "drafts:" + sid}, resetSIDs)

	req = nextRequest(rr)
	_, ok := creds.Load(req)
	assert.False(t, ok)
	assert.NotEmpty(t, creds.SID(req))
	assert.NotEqual(t, sid, creds.SID(req))
}

func TestSessionResetRunsAllResetters(t *testing.T) {
	creds := NewCredentialStore(sessions.NewCookieStore([]byte("test-secret-key")))
	boom := errors.New("boom")

	called := false
	session := NewSession(creds,
		ResetterFunc(func(http.ResponseWriter, *http.Request, string) error { return boom }),
		ResetterFunc(func(http.ResponseWriter, *http.Request, string) error {
			called = true
			return nil
		}),
	)

	err := session.Reset(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/", nil))
	assert.ErrorIs(t, err, boom)
	assert.True(t, called)
}
