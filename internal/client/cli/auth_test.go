package cli

import (
	"bufio"
	"context"
	"errors"
	"io"
	"testing"
	"time"

	"github.com/clipstream/clipstream/internal/client/models"
)

func stubInputs(t *testing.T, answers []string, password []byte) func() {
	t.Helper()
	origST, origGP := getSimpleText, getPassword
	i := 0
	getSimpleText = func(_ *bufio.Reader, _ string, _ io.Writer) (string, error) {
		if i >= len(answers) {
			return "", errors.New("no more stub answers")
		}
		a := answers[i]
		i++
		return a, nil
	}
	getPassword = func(_ io.Writer) ([]byte, error) { return password, nil }
	return func() {
		getSimpleText = origST
		getPassword = origGP
	}
}

func silencePrintln(t *testing.T) {
	t.Helper()
	orig := printlnFn
	printlnFn = func(...any) (int, error) { return 0, nil }
	t.Cleanup(func() { printlnFn = orig })
}

type fakeSessions struct {
	current *models.Session

	loginCreds  models.Credentials
	loginErr    error
	signupIn    models.SignupProfile
	signupErr   error
	logoutCount int
	logoutErr   error
	expiry      time.Time
	hasExpiry   bool
}

func (f *fakeSessions) Restore(context.Context) *models.Session { return f.current }
func (f *fakeSessions) Login(_ context.Context, creds models.Credentials) (*models.Session, error) {
	f.loginCreds = creds
	if f.loginErr != nil {
		return nil, f.loginErr
	}
	f.current = &models.Session{ID: "u1", Username: creds.Username, Role: models.RoleViewer}
	return f.current, nil
}
func (f *fakeSessions) Signup(_ context.Context, p models.SignupProfile) (*models.Session, error) {
	f.signupIn = p
	if f.signupErr != nil {
		return nil, f.signupErr
	}
	f.current = &models.Session{ID: "u1", Username: p.Username, Role: p.Role}
	return f.current, nil
}
func (f *fakeSessions) Logout(context.Context) error {
	f.logoutCount++
	if f.logoutErr != nil {
		return f.logoutErr
	}
	f.current = nil
	return nil
}
func (f *fakeSessions) Current() *models.Session       { return f.current }
func (f *fakeSessions) TokenExpiry() (time.Time, bool) { return f.expiry, f.hasExpiry }

func TestLogin_Success(t *testing.T) {
	silencePrintln(t)
	restore := stubInputs(t, []string{"alice"}, []byte("secret"))
	defer restore()

	f := &fakeSessions{}
	a := &App{sessions: f}
	a.feedPager = nil

	if err := a.Login(context.Background()); err != nil {
		t.Fatalf("Login err: %v", err)
	}
	if f.loginCreds.Username != "alice" || f.loginCreds.Password != "secret" {
		t.Fatalf("credentials mismatch: %+v", f.loginCreds)
	}
	if !a.isLoggedIn() {
		t.Fatalf("expected logged-in state")
	}
}

func TestLogin_ErrorPropagates(t *testing.T) {
	silencePrintln(t)
	restore := stubInputs(t, []string{"alice"}, []byte("bad"))
	defer restore()

	f := &fakeSessions{loginErr: errors.New("invalid credentials")}
	a := &App{sessions: f}

	if err := a.Login(context.Background()); err == nil {
		t.Fatalf("want login error")
	}
	if a.isLoggedIn() {
		t.Fatalf("must stay logged out")
	}
}

func TestSignup_UnknownRoleFallsBackToViewer(t *testing.T) {
	silencePrintln(t)
	restore := stubInputs(t, []string{"bob@example.org", "bob", "Bob", "Builder", "admin"}, []byte("pw"))
	defer restore()

	f := &fakeSessions{}
	a := &App{sessions: f}

	if err := a.Signup(context.Background()); err != nil {
		t.Fatalf("Signup err: %v", err)
	}
	if f.signupIn.Role != models.RoleViewer {
		t.Fatalf("role not normalized: %q", f.signupIn.Role)
	}
	if f.signupIn.Email != "bob@example.org" || f.signupIn.Username != "bob" {
		t.Fatalf("profile mismatch: %+v", f.signupIn)
	}
}

func TestSignup_CreatorRoleKept(t *testing.T) {
	silencePrintln(t)
	restore := stubInputs(t, []string{"c@example.org", "cc", "C", "C", "creator"}, []byte("pw"))
	defer restore()

	f := &fakeSessions{}
	a := &App{sessions: f}

	if err := a.Signup(context.Background()); err != nil {
		t.Fatalf("Signup err: %v", err)
	}
	if f.signupIn.Role != models.RoleCreator {
		t.Fatalf("creator role lost: %q", f.signupIn.Role)
	}
}

func TestLogout(t *testing.T) {
	silencePrintln(t)
	f := &fakeSessions{current: &models.Session{ID: "u1"}}
	a := &App{sessions: f}

	if err := a.Logout(context.Background()); err != nil {
		t.Fatalf("Logout err: %v", err)
	}
	if f.logoutCount != 1 {
		t.Fatalf("Logout not delegated")
	}
	if a.isLoggedIn() {
		t.Fatalf("still logged in")
	}
}

func TestLogout_ErrorPropagates(t *testing.T) {
	silencePrintln(t)
	f := &fakeSessions{logoutErr: errors.New("clean-fail")}
	a := &App{sessions: f}
	if err := a.Logout(context.Background()); err == nil {
		t.Fatalf("want error from Logout")
	}
}
