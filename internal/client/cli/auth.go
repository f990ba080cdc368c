package cli

import (
	"context"
	"fmt"
	"os"

	"github.com/clipstream/clipstream/internal/client/models"
)

// getSimpleText and getPassword are indirections used to facilitate testing.
// They point to interactive input helpers and can be swapped in tests.
var getSimpleText = GetSimpleText
var getPassword = GetPassword

// Login prompts the user for a username and password and authenticates via
// the session store. On success the session (and its token) is persisted
// and any existing feed state is dropped, since the viewer identity changed.
func (a *App) Login(ctx context.Context) error {
	username, err := getSimpleText(a.reader, "Enter username", os.Stdout)
	if err != nil {
		return err
	}

	password, err := getPassword(os.Stdout)
	if err != nil {
		return err
	}

	sess, err := a.sessions.Login(ctx, models.Credentials{Username: username, Password: string(password)})
	if err != nil {
		printlnFn("Login failed:", err.Error())
		return err
	}

	a.resetPagers()
	printlnFn(fmt.Sprintf("Logged in as %s", sess.Username))
	return nil
}

// Signup prompts for the new account's profile and registers it. The role
// answer selects between a plain viewer and a creator account; anything but
// "creator" falls back to viewer.
func (a *App) Signup(ctx context.Context) error {
	email, err := getSimpleText(a.reader, "Enter email", os.Stdout)
	if err != nil {
		return err
	}
	password, err := getPassword(os.Stdout)
	if err != nil {
		return err
	}
	username, err := getSimpleText(a.reader, "Enter username", os.Stdout)
	if err != nil {
		return err
	}
	firstName, err := getSimpleText(a.reader, "Enter first name", os.Stdout)
	if err != nil {
		return err
	}
	lastName, err := getSimpleText(a.reader, "Enter last name", os.Stdout)
	if err != nil {
		return err
	}
	role, err := getSimpleText(a.reader, "Account role (viewer/creator)", os.Stdout)
	if err != nil {
		return err
	}
	if role != models.RoleCreator {
		role = models.RoleViewer
	}

	sess, err := a.sessions.Signup(ctx, models.SignupProfile{
		Email:     email,
		Password:  string(password),
		Username:  username,
		FirstName: firstName,
		LastName:  lastName,
		Role:      role,
	})
	if err != nil {
		printlnFn("Signup failed:", err.Error())
		return err
	}

	a.resetPagers()
	printlnFn(fmt.Sprintf("Welcome, %s!", sess.Username))
	return nil
}

// Logout clears the persisted session and drops all feed state.
func (a *App) Logout(ctx context.Context) error {
	if err := a.sessions.Logout(ctx); err != nil {
		printlnFn("Logout failed:", err.Error())
		return err
	}
	a.resetPagers()
	printlnFn("Logged out")
	return nil
}

// Whoami prints the current session, including the token's expiry when the
// token happens to be a decodable JWT.
func (a *App) Whoami(ctx context.Context) error {
	sess := a.sessions.Current()
	if sess == nil {
		printlnFn("Not logged in")
		return nil
	}
	printlnFn(fmt.Sprintf("%s <%s> role=%s id=%s", sess.Username, sess.Email, sess.Role, sess.ID))
	if exp, ok := a.sessions.TokenExpiry(); ok {
		printlnFn("Token expires:", exp.Format("2006-01-02 15:04:05 MST"))
	}
	return nil
}
