package handlers

import (
	"encoding/json"
	"net/http"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRegisterAndSignIn(t *testing.T) {
	e, _ := newTestAPI(t)

	token, userID := registerUser(t, e, "alice")
	require.NotEmpty(t, token)
	require.NotZero(t, userID)

	rec := doJSON(t, e, "POST", "/api/v1/auth/signin", "", echo.Map{
		"email":    "alice@example.com",
		"password": "password123",
	})
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

	var resp map[string]json.RawMessage
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Contains(t, resp, "token")
	assert.Contains(t, resp, "user")
	// The password hash must never leak in responses.
	assert.NotContains(t, rec.Body.String(), "password")
}

func TestRegisterRejectsDuplicates(t *testing.T) {
	e, _ := newTestAPI(t)
	registerUser(t, e, "alice")

	rec := doJSON(t, e, "POST", "/api/v1/auth/register", "", echo.Map{
		"username": "alice",
		"email":    "other@example.com",
		"password": "password123",
	})
	assert.Equal(t, http.StatusConflict, rec.Code)

	rec = doJSON(t, e, "POST", "/api/v1/auth/register", "", echo.Map{
		"username": "alice2",
		"email":    "alice@example.com",
		"password": "password123",
	})
	assert.Equal(t, http.StatusConflict, rec.Code)
}

func TestRegisterValidatesPayload(t *testing.T) {
	e, _ := newTestAPI(t)

	rec := doJSON(t, e, "POST", "/api/v1/auth/register", "", echo.Map{
		"username": "al",
		"email":    "not-an-email",
		"password": "short",
	})
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestSignInRejectsWrongPassword(t *testing.T) {
	e, _ := newTestAPI(t)
	registerUser(t, e, "alice")

	rec := doJSON(t, e, "POST", "/api/v1/auth/signin", "", echo.Map{
		"email":    "alice@example.com",
		"password": "wrongpassword",
	})
	assert.Equal(t, http.StatusUnauthorized, rec.Code)

	rec = doJSON(t, e, "POST", "/api/v1/auth/signin", "", echo.Map{
		"email":    "ghost@example.com",
		"password": "password123",
	})
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestFirebaseLoginUnavailableWithoutClient(t *testing.T) {
	e, _ := newTestAPI(t)

	rec := doJSON(t, e, "POST", "/api/v1/auth/firebase-login", "", echo.Map{
		"idToken": "whatever",
	})
	assert.Equal(t, http.StatusServiceUnavailable, rec.Code)
}

func TestProtectedRoutesRequireToken(t *testing.T) {
	e, _ := newTestAPI(t)

	rec := doJSON(t, e, "GET", "/api/v1/profile", "", nil)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}
