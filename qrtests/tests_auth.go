package qrtests

import (
	"net/http"

	"github.com/novatok/qrhub-contract-tests/framework"
	"github.com/novatok/qrhub-contract-tests/framework/apitest"
	"github.com/novatok/qrhub-contract-tests/framework/harness"
	"github.com/novatok/qrhub-contract-tests/servicedef"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func DoSignupTests(t *apitest.T) {
	c := requireContext(t)
	id := signUp(t, c.fixtures.NewEmail())
	c.state.Authenticate(id)
}

// signUp registers a new identity and returns it without making it current.
func signUp(t *apitest.T, email string) Identity {
	c := requireContext(t)
	resp := callAs(t, "", "POST", "/auth/signup", servicedef.Credentials{
		Email:    email,
		Password: c.config.SignupPassword,
	})
	id := requireAuthResponse(t, resp, email)
	id.Fresh = true
	return id
}

func DoLoginTests(t *apitest.T) {
	c := requireContext(t)
	resp := callAs(t, "", "POST", "/auth/login", servicedef.Credentials{
		Email:    c.config.LoginEmail,
		Password: c.config.LoginPassword,
	})
	id := requireAuthResponse(t, resp, c.config.LoginEmail)
	c.state.Authenticate(id)
}

func requireAuthResponse(t *apitest.T, resp *harness.Response, email string) Identity {
	requireStatus(t, resp, http.StatusOK, http.StatusCreated)
	body := requireJSON(t, resp)
	requireKeys(t, body, "auth response", "user", "session.access_token")

	var auth servicedef.AuthResponse
	requireDecode(t, resp, &auth)
	if auth.User == nil || auth.Session == nil {
		t.Fatal(framework.NewFault(framework.FaultSchema, "auth response has a null user or session: %s", string(resp.Body)))
	}
	require.NotEmpty(t, auth.Session.AccessToken, "session.access_token")
	if auth.User.Email != "" {
		assert.Equal(t, email, auth.User.Email, "user.email should echo the submitted address")
	}
	return Identity{Email: email, UserID: auth.User.ID, Token: auth.Session.AccessToken}
}

func DoSessionTests(t *apitest.T) {
	c := requireContext(t)
	session, _ := c.state.Session()

	resp := call(t, "GET", "/auth/session", nil)
	requireStatus(t, resp, http.StatusOK)
	body := requireJSON(t, resp)
	requireKeys(t, body, "session response", "user")

	var result servicedef.SessionResponse
	requireDecode(t, resp, &result)
	require.NotNil(t, result.User, "session should have a user while authenticated")
	if result.User.Email != "" {
		assert.Equal(t, session.Email, result.User.Email, "session belongs to a different user")
	}
}

func DoLogoutTests(t *apitest.T) {
	c := requireContext(t)
	resp := call(t, "POST", "/auth/logout", nil)
	requireStatus(t, resp, http.StatusOK)

	var result servicedef.SuccessResponse
	requireDecode(t, resp, &result)
	assert.True(t, result.Success, "logout should report success")
	c.state.Logout()
}
