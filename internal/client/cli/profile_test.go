package cli

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/dmitrijs2005/gochat/internal/client/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestProfile(t *testing.T) {
	out := captureOutput(t)
	created := time.Date(2024, 5, 1, 0, 0, 0, 0, time.UTC)
	a := newTestApp(loggedIn(&models.UserProfile{
		UserID: 3, Username: "ada", Email: "ada@example.org",
		FirstName: "Ada", LastName: "Lovelace", CreatedAt: &created,
	}), &fakeTransport{})

	require.NoError(t, a.Profile(context.Background()))

	got := out.String()
	assert.Contains(t, got, "ID:        3")
	assert.Contains(t, got, "Name:      Ada Lovelace")
	assert.Contains(t, got, "Member since 2024-05-01")
	assert.NotContains(t, got, "Avatar")
}

func TestProfile_NotLoggedIn(t *testing.T) {
	out := captureOutput(t)
	a := newTestApp(&fakeSession{}, &fakeTransport{})

	require.NoError(t, a.Profile(context.Background()))
	assert.Equal(t, "Not logged in", out.String())
}

func TestUpdateProfile(t *testing.T) {
	out := captureOutput(t)
	stubInputs(t, "", "Augusta", "", "http://img/a.png")

	s := loggedIn(&models.UserProfile{Username: "ada"})
	a := newTestApp(s, &fakeTransport{})

	require.NoError(t, a.UpdateProfile(context.Background()))

	require.NotNil(t, s.lastUpdate.FirstName)
	assert.Equal(t, "Augusta", *s.lastUpdate.FirstName)
	assert.Nil(t, s.lastUpdate.LastName)
	require.NotNil(t, s.lastUpdate.AvatarURL)
	assert.Equal(t, "http://img/a.png", *s.lastUpdate.AvatarURL)
	assert.Contains(t, out.String(), "Profile updated")
}

func TestUpdateProfile_NothingToUpdate(t *testing.T) {
	out := captureOutput(t)
	stubInputs(t, "", "", "", "")

	s := loggedIn(&models.UserProfile{Username: "ada"})
	a := newTestApp(s, &fakeTransport{})

	require.NoError(t, a.UpdateProfile(context.Background()))
	assert.NotContains(t, s.Calls(), "update")
	assert.Contains(t, out.String(), "Nothing to update")
}

func TestUpdateProfile_Failure(t *testing.T) {
	out := captureOutput(t)
	stubInputs(t, "", "X", "", "")

	s := loggedIn(&models.UserProfile{Username: "ada"})
	s.updateErr = errors.New("boom")
	a := newTestApp(s, &fakeTransport{})

	require.Error(t, a.UpdateProfile(context.Background()))
	assert.Contains(t, out.String(), "Update failed: boom")
}
