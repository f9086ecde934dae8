package cli

import (
	"context"
	"errors"
	"fmt"

	"github.com/dmitrijs2005/loopin/internal/availability"
	"github.com/dmitrijs2005/loopin/internal/client/client"
	"github.com/dmitrijs2005/loopin/internal/username"
)

const minPasswordLength = 6

var errPickAvailable = errors.New("pick an available username first")

func verdictText(v availability.Verdict) string {
	switch v {
	case availability.VerdictTooShort:
		return "too short"
	case availability.VerdictTaken:
		return "taken"
	case availability.VerdictAvailable:
		return "available"
	default:
		return "unknown — try again"
	}
}

// Register asks for an email, then a username checked live for
// availability, then a password, and creates the account.
func (a *App) Register(ctx context.Context) error {
	email, err := getSimpleText(a.reader, "Enter email", a.out)
	if err != nil {
		return err
	}

	checker := availability.New(a.lookup,
		availability.WithQuietPeriod(a.config.QuietPeriod),
		availability.WithLookupTimeout(a.config.LookupTimeout),
		availability.WithLogger(a.logger),
		availability.WithOnChange(a.showAvailability),
	)
	defer checker.Close()

	for {
		name, err := a.chooseUsername(ctx, checker)
		if err != nil {
			return err
		}

		password, err := a.choosePassword()
		if err != nil {
			return err
		}

		canonical, err := a.auth.Register(ctx, email, password, name)
		if errors.Is(err, client.ErrConflict) {
			fmt.Fprintln(a.out, "That email or username was registered meanwhile, pick another username")
			checker.Edit("")
			continue
		}
		if err != nil {
			return err
		}

		fmt.Fprintf(a.out, "Account %s created. Type 'login' to sign in.\n", canonical)
		return nil
	}
}

// chooseUsername feeds every typed line to the checker and prints the
// verdict. An empty line submits, which is refused unless the current
// candidate is available.
func (a *App) chooseUsername(ctx context.Context, checker *availability.Checker) (string, error) {
	fmt.Fprintln(a.out, "Choose a username (a-z, 0-9, _; at least 3). Empty line submits.")
	for {
		line, err := getSimpleText(a.reader, "Username", a.out)
		if err != nil {
			return "", err
		}

		if line == "" {
			if checker.CanSubmit() {
				return checker.Candidate(), nil
			}
			fmt.Fprintln(a.out, errPickAvailable.Error())
			continue
		}

		checker.Edit(line)
		snap, err := checker.Await(ctx)
		if err != nil {
			return "", err
		}
		if snap.State == availability.StateResolved {
			fmt.Fprintf(a.out, "%q: %s\n", snap.Candidate, verdictText(snap.Verdict))
		}
	}
}

// showAvailability prints the transitions Edit reports on the caller's
// goroutine. Lookup results are printed by chooseUsername after Await.
func (a *App) showAvailability(s availability.Snapshot) {
	if s.Candidate == "" {
		return
	}
	switch s.State {
	case availability.StateTyping:
		fmt.Fprintf(a.out, "%q: checking…\n", s.Candidate)
	case availability.StateInvalid:
		fmt.Fprintf(a.out, "%q: %s\n", s.Candidate, verdictText(s.Verdict))
	}
}

func (a *App) choosePassword() (string, error) {
	for {
		password, err := getPassword("Enter password", a.out)
		if err != nil {
			return "", err
		}
		if len(password) >= minPasswordLength {
			return password, nil
		}
		fmt.Fprintf(a.out, "Password must be at least %d characters\n", minPasswordLength)
	}
}

func (a *App) Login(ctx context.Context) error {
	email, err := getSimpleText(a.reader, "Enter email", a.out)
	if err != nil {
		return err
	}
	password, err := getPassword("Enter password", a.out)
	if err != nil {
		return err
	}

	s, err := a.auth.Login(ctx, email, password)
	if err != nil {
		return err
	}
	fmt.Fprintf(a.out, "Logged in as %s\n", s.Display())
	return nil
}

func (a *App) Logout(ctx context.Context) error {
	if !a.isLoggedIn() {
		return client.ErrNotLoggedIn
	}
	if err := a.auth.Logout(ctx); err != nil {
		return err
	}
	fmt.Fprintln(a.out, "Logged out")
	return nil
}

func (a *App) WhoAmI(_ context.Context) error {
	s := a.auth.Session()
	if s == nil {
		fmt.Fprintf(a.out, "%s (not logged in, %s)\n", username.FormatIdentity(""), a.mode())
		return nil
	}
	fmt.Fprintf(a.out, "%s <%s> (%s)\n", s.Display(), s.Email, a.mode())
	return nil
}
