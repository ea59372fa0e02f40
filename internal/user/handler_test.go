package user_test

import (
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/RolAlek/personal-blog/internal/database"
	"github.com/RolAlek/personal-blog/internal/testutil"
	"github.com/RolAlek/personal-blog/internal/user"
)

func TestUpdateMe(t *testing.T) {
	r := testutil.Setup(t)
	alice := testutil.CreateUser(t, "alice", false)
	testutil.CreateUser(t, "bob", false)
	token := testutil.Token(t, alice)

	w := testutil.Do(r, http.MethodPatch, "/api/profile", "", map[string]string{"username": "x", "email": "x@example.com"})
	assert.Equal(t, http.StatusUnauthorized, w.Code)

	w = testutil.Do(r, http.MethodPatch, "/api/profile", token, map[string]string{"username": "bob", "email": "bob@example.com"})
	require.Equal(t, http.StatusBadRequest, w.Code)
	var failed struct {
		Fields map[string]string `json:"fields"`
	}
	testutil.Decode(t, w, &failed)
	assert.Contains(t, failed.Fields, "username")
	assert.Contains(t, failed.Fields, "email")

	// garder son propre nom n'est pas un conflit
	w = testutil.Do(r, http.MethodPatch, "/api/profile", token, map[string]string{
		"username":  "alice",
		"email":     "alice@example.org",
		"firstname": "Alice",
	})
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	var stored user.User
	require.NoError(t, database.DB.First(&stored, "id = ?", alice.ID).Error)
	assert.Equal(t, "alice@example.org", stored.Email)
	assert.Equal(t, "Alice", stored.Firstname)
}

func TestPublicProfileHidesPrivateFields(t *testing.T) {
	r := testutil.Setup(t)
	testutil.CreateUser(t, "alice", true)

	w := testutil.Do(r, http.MethodGet, "/api/users/alice", "", nil)
	require.Equal(t, http.StatusOK, w.Code)
	body := w.Body.String()
	assert.NotContains(t, body, "alice@example.com")
	assert.NotContains(t, body, "is_admin")
	assert.NotContains(t, body, "password")

	w = testutil.Do(r, http.MethodGet, "/api/users/nobody", "", nil)
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestProfileDatabaseFailure(t *testing.T) {
	r := testutil.Setup(t)
	token := testutil.Token(t, testutil.CreateUser(t, "alice", false))
	testutil.CloseDB(t)

	w := testutil.Do(r, http.MethodGet, "/api/profile", token, nil)
	assert.Equal(t, http.StatusInternalServerError, w.Code)

	w = testutil.Do(r, http.MethodPatch, "/api/profile", token, map[string]string{"username": "alice", "email": "alice@example.com"})
	assert.Equal(t, http.StatusInternalServerError, w.Code)
}
