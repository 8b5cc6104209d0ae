package cli

import (
	"context"
	"fmt"

	"github.com/dmitrijs2005/vacstats/internal/client/models"
)

// getSimpleText and getPassword are indirections used to facilitate testing.
// They point to interactive input helpers and can be swapped in tests.
var getSimpleText = GetSimpleText
var getPassword = GetPassword

// Login prompts for credentials and authenticates. A failed attempt is
// reported inline and the user stays where they are; only success moves to
// the dashboard.
func (a *App) Login(ctx context.Context) error {
	email, err := getSimpleText(a.reader, "Enter email", a.out)
	if err != nil {
		return err
	}

	password, err := getPassword(a.out)
	if err != nil {
		return err
	}

	creds := models.Credentials{Email: email, Password: password}
	if err := a.auth.Login(ctx, creds); err != nil {
		fmt.Fprintf(a.out, "Login failed: %s\n", err.Error())
		return nil
	}

	if u := a.auth.CurrentUser(); u != nil {
		fmt.Fprintf(a.out, "Welcome, %s!\n", u.DisplayName())
	}
	return nil
}

// Logout clears the session. It never fails from the user's point of view.
func (a *App) Logout(ctx context.Context) error {
	if err := a.auth.Logout(ctx); err != nil {
		return err
	}
	fmt.Fprintln(a.out, "Logged out.")
	return nil
}
