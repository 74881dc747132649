package cli

import (
	"context"
	"fmt"
	"os"
	"strings"

	"github.com/dmitrijs2005/gochat/internal/client/models"
)

// Profile prints the profile of the current user.
func (a *App) Profile(_ context.Context) error {
	s := a.session.Session()
	if !s.IsAuthenticated {
		printlnFn("Not logged in")
		return nil
	}
	u := s.User
	printlnFn(fmt.Sprintf("ID:        %d", u.UserID))
	printlnFn(fmt.Sprintf("Username:  %s", u.Username))
	printlnFn(fmt.Sprintf("Email:     %s", u.Email))
	printlnFn(fmt.Sprintf("Name:      %s", strings.TrimSpace(u.FirstName+" "+u.LastName)))
	if u.AvatarURL != "" {
		printlnFn(fmt.Sprintf("Avatar:    %s", u.AvatarURL))
	}
	if u.CreatedAt != nil {
		printlnFn(fmt.Sprintf("Member since %s", u.CreatedAt.Format("2006-01-02")))
	}
	return nil
}

// UpdateProfile prompts for the editable fields; an empty answer keeps the
// current value.
func (a *App) UpdateProfile(ctx context.Context) error {
	if !a.isLoggedIn() {
		printlnFn("Not logged in")
		return nil
	}

	var req models.UpdateProfileRequest
	fields := []struct {
		prompt string
		dst    **string
	}{
		{"First name (empty keeps current)", &req.FirstName},
		{"Last name (empty keeps current)", &req.LastName},
		{"Avatar URL (empty keeps current)", &req.AvatarURL},
	}
	changed := false
	for _, f := range fields {
		v, err := getSimpleText(a.reader, f.prompt, os.Stdout)
		if err != nil {
			return err
		}
		if v != "" {
			*f.dst = &v
			changed = true
		}
	}
	if !changed {
		printlnFn("Nothing to update")
		return nil
	}

	if err := a.session.UpdateProfile(ctx, req); err != nil {
		printlnFn("Update failed:", describe(err))
		return err
	}
	printlnFn("Profile updated")
	return nil
}
