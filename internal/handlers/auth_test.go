package handlers

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/boxboard/apiserver/types"
)

func decodeBody(rec *httptest.ResponseRecorder, v any) error {
	return json.NewDecoder(rec.Body).Decode(v)
}

func TestTokenRoundTrip(t *testing.T) {
	secret := []byte(testSecret)

	token, err := IssueToken("mario@example.com", types.RoleCoordinator, secret, time.Hour)
	require.NoError(t, err)

	subject, err := ParseTokenSubject(token, secret)
	require.NoError(t, err)
	assert.Equal(t, "mario@example.com", subject)
}

func TestTokenWrongSecretRejected(t *testing.T) {
	token, err := IssueToken("mario@example.com", types.RoleOperator, []byte(testSecret), time.Hour)
	require.NoError(t, err)

	_, err = ParseTokenSubject(token, []byte("other-secret"))
	assert.Error(t, err)
}

func TestTokenZeroTTLFallsBackToDefault(t *testing.T) {
	// An unset or unparsable TOKEN_TTL_MINUTES reaches IssueToken as
	// zero; the token must still be usable, not born expired.
	token, err := IssueToken("mario@example.com", types.RoleOperator, []byte(testSecret), 0)
	require.NoError(t, err)

	subject, err := ParseTokenSubject(token, []byte(testSecret))
	require.NoError(t, err)
	assert.Equal(t, "mario@example.com", subject)
}

func TestTokenExpiredRejected(t *testing.T) {
	token, err := IssueToken("mario@example.com", types.RoleOperator, []byte(testSecret), -time.Minute)
	require.NoError(t, err)

	_, err = ParseTokenSubject(token, []byte(testSecret))
	assert.Error(t, err)
}

func TestLoginSuccess(t *testing.T) {
	env := newTestEnv(t)
	env.seedUser(t, "Mario", "mario@example.com", types.RoleCoordinator, "segretissima")

	token := env.login(t, "mario@example.com", "segretissima")

	rec := env.do(http.MethodGet, "/me", token, "")
	require.Equal(t, http.StatusOK, rec.Code)

	var me types.User
	require.NoError(t, decodeBody(rec, &me))
	assert.Equal(t, "mario@example.com", me.Email)
	assert.Equal(t, types.RoleCoordinator, me.Role)
}

func TestLoginBadCredentials(t *testing.T) {
	env := newTestEnv(t)
	env.seedUser(t, "Mario", "mario@example.com", types.RoleOperator, "segretissima")

	cases := []struct {
		name string
		form string
	}{
		{"wrong password", "username=mario@example.com&password=sbagliata"},
		{"unknown user", "username=nessuno@example.com&password=segretissima"},
		{"missing password", "username=mario@example.com"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			rec := httptest.NewRecorder()
			env.router.ServeHTTP(rec, formRequest("/login", tc.form))
			assert.Equal(t, http.StatusBadRequest, rec.Code)
		})
	}
}

func TestRequestWithoutTokenUnauthorized(t *testing.T) {
	env := newTestEnv(t)

	rec := env.do(http.MethodGet, "/me", "", "")
	assert.Equal(t, http.StatusUnauthorized, rec.Code)

	rec = env.do(http.MethodGet, "/utenti", "garbage-token", "")
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestChangePassword(t *testing.T) {
	env := newTestEnv(t)
	env.seedUser(t, "Mario", "mario@example.com", types.RoleOperator, "vecchia")
	token := env.login(t, "mario@example.com", "vecchia")

	rec := env.do(http.MethodPost, "/me/change-password", token,
		`{"vecchia_password":"vecchia","nuova_password":"nuova"}`)
	require.Equal(t, http.StatusNoContent, rec.Code, rec.Body.String())

	// Old password no longer works, the new one does.
	rec2 := httptest.NewRecorder()
	env.router.ServeHTTP(rec2, formRequest("/login", "username=mario@example.com&password=vecchia"))
	assert.Equal(t, http.StatusBadRequest, rec2.Code)

	env.login(t, "mario@example.com", "nuova")
}

func TestChangePasswordWrongOldPassword(t *testing.T) {
	env := newTestEnv(t)
	env.seedUser(t, "Mario", "mario@example.com", types.RoleOperator, "vecchia")
	token := env.login(t, "mario@example.com", "vecchia")

	rec := env.do(http.MethodPost, "/me/change-password", token,
		`{"vecchia_password":"sbagliata","nuova_password":"nuova"}`)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestUpdateMeChangesNameOnly(t *testing.T) {
	env := newTestEnv(t)
	env.seedUser(t, "Mario", "mario@example.com", types.RoleOperator, "pw")
	token := env.login(t, "mario@example.com", "pw")

	rec := env.do(http.MethodPut, "/me", token, `{"nome":"Mario Bianchi","ruolo":"Coordinatore"}`)
	require.Equal(t, http.StatusOK, rec.Code)

	var me types.User
	require.NoError(t, decodeBody(rec, &me))
	assert.Equal(t, "Mario Bianchi", me.Name)
	assert.Equal(t, types.RoleOperator, me.Role, "role must not change through /me")
}
