package cli

import (
	"context"
	"errors"
	"fmt"

	"github.com/dmitrijs2005/finkeeper/internal/client/client"
)

// getSimpleText and getPassword are indirections used to facilitate testing.
// They point to interactive input helpers and can be swapped in tests.
var getSimpleText = GetSimpleText
var getPassword = GetPassword

// Register prompts the user for an email and password and attempts to create
// a new account via the AuthService.
//
// On success it prints "Success!" and returns nil. Any I/O or service error
// is returned unchanged.
func (a *App) Register(ctx context.Context) error {
	userName, err := getSimpleText(a.reader, "Enter email", a.out)
	if err != nil {
		return err
	}

	password, err := getPassword(a.out)
	if err != nil {
		return err
	}

	if err := a.authService.Register(ctx, userName, password); err != nil {
		return err
	}

	fmt.Fprintln(a.out, "Success!")
	return nil
}

// Login prompts the user for credentials and authenticates online.
//
// On success the session is stored, the mode becomes online, the syncer is
// woken for anything queued while signed out, and the server's data is
// pulled. An unreachable server switches the app to offline mode and the
// error is returned.
func (a *App) Login(ctx context.Context) error {
	userName, err := getSimpleText(a.reader, "Enter email", a.out)
	if err != nil {
		return err
	}

	password, err := getPassword(a.out)
	if err != nil {
		return err
	}

	if err := a.authService.Login(ctx, userName, password); err != nil {
		if errors.Is(err, client.ErrUnavailable) {
			a.setMode(ModeOffline)
		}
		a.logger.Warn(ctx, "login unsuccessful", "error", err)
		return err
	}

	a.logger.Info(ctx, "login successful", "user", userName)
	a.setUser(userName)
	a.setMode(ModeOnline)

	if a.syncer != nil {
		a.syncer.Notify()
	}

	// Local edits win: Pull leaves records with queued changes alone.
	if err := a.Pull(ctx); err != nil {
		a.logger.Warn(ctx, "initial pull failed", "error", err)
	}

	fmt.Fprintln(a.out, "Logged in as", userName)
	return nil
}

// Logout forgets the stored session. Local data and queued changes are kept
// and go out after the next login.
func (a *App) Logout(ctx context.Context) error {
	if err := a.authService.Logout(ctx); err != nil {
		return err
	}
	a.setUser("")
	fmt.Fprintln(a.out, "Logged out")
	return nil
}
