package cli

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/drawlabs/luckyadmin/internal/api"
	"github.com/drawlabs/luckyadmin/internal/session"
)

// Login prompts for an email and password and authenticates against the
// admin API.
//
// Rejected or malformed credentials are reported and the method returns
// nil so the REPL keeps running; only input errors propagate. The password
// bytes are wiped before returning.
func (a *App) Login(ctx context.Context) error {
	email, err := getSimpleText(a.reader, "Email", a.out)
	if err != nil {
		return err
	}

	password, err := getPassword(a.out)
	if err != nil {
		return err
	}
	defer wipeBytes(password)

	res := a.session.Login(ctx, email, string(password))
	if res.OK {
		return nil
	}
	fmt.Fprintln(a.out, res.Message)
	fields := make([]string, 0, len(res.FieldErrors))
	for f := range res.FieldErrors {
		fields = append(fields, f)
	}
	sort.Strings(fields)
	for _, f := range fields {
		fmt.Fprintf(a.out, "  %s: %s\n", f, res.FieldErrors[f])
	}
	return nil
}

// Logout ends the session and clears the stored token.
func (a *App) Logout(ctx context.Context) error {
	a.session.Logout(ctx, true)
	return nil
}

// Status checks the stored session against the server and reports the
// result. An expired session is announced by the session manager itself,
// so only other failures are printed here.
func (a *App) Status(ctx context.Context) error {
	err := a.session.Check(ctx)
	switch {
	case err == nil:
		fmt.Fprintln(a.out, "Session valid.")
	case errors.Is(err, session.ErrNoSession):
		fmt.Fprintln(a.out, "No active session.")
	case errors.Is(err, api.ErrUnauthorized):
	default:
		fmt.Fprintln(a.out, "Could not verify the session:", err)
	}
	return nil
}

// WhoAmI prints the identity claims carried by the current token.
func (a *App) WhoAmI(ctx context.Context) error {
	claims, err := a.session.Claims()
	if err != nil {
		fmt.Fprintln(a.out, "Could not read the session token:", err)
		return nil
	}
	fmt.Fprintln(a.out, "Email:", claims.Email)
	if claims.Subject != "" {
		fmt.Fprintln(a.out, "Subject:", claims.Subject)
	}
	if len(claims.Roles) > 0 {
		fmt.Fprintln(a.out, "Roles:", strings.Join(claims.Roles, ", "))
	}
	if !claims.ExpiresAt.IsZero() {
		fmt.Fprintln(a.out, "Expires:", claims.ExpiresAt.UTC().Format(time.RFC3339))
	}
	return nil
}
