package cli

import (
	"context"
	"errors"
	"io"
	"sort"

	"github.com/dmitrijs2005/mediacatalog/internal/client/models"
	"github.com/dmitrijs2005/mediacatalog/internal/client/notify"
	"github.com/dmitrijs2005/mediacatalog/internal/client/services"
	"github.com/dmitrijs2005/mediacatalog/internal/client/validate"
	"github.com/dmitrijs2005/mediacatalog/internal/common"
)

// getSimpleText and getPassword are indirections used to facilitate testing.
// They point to interactive input helpers and can be swapped in tests.
var getSimpleText = GetSimpleText
var getPassword = GetPassword

// SignIn prompts for credentials and submits them once. On success the
// catalog home is shown, the way a browser would navigate after login.
func (a *App) SignIn(ctx context.Context) error {
	if a.session.IsAuthenticated() {
		printlnFn("Already signed in")
		return nil
	}

	email, err := getSimpleText(a.reader, "Enter email", a.out)
	if err != nil {
		return err
	}
	password, err := getPassword("Enter password", a.out)
	if err != nil {
		return err
	}
	defer common.WipeByteArray(password)

	out, err := a.session.SignIn(ctx, models.Credentials{Email: email, Password: string(password)})
	if err != nil {
		a.reportFormError(err)
		return err
	}

	a.notifyOutcome(out, "Signed in")
	if !out.OK() {
		return nil
	}
	return a.Home(ctx)
}

// SignUp prompts for a new account. Success does not sign in.
func (a *App) SignUp(ctx context.Context) error {
	if a.session.IsAuthenticated() {
		printlnFn("Already signed in")
		return nil
	}

	email, err := getSimpleText(a.reader, "Enter email", a.out)
	if err != nil {
		return err
	}
	password, err := getPassword("Enter password", a.out)
	if err != nil {
		return err
	}
	defer common.WipeByteArray(password)
	repeat, err := getPassword("Repeat password", a.out)
	if err != nil {
		return err
	}
	defer common.WipeByteArray(repeat)

	out, err := a.session.SignUp(ctx, models.Registration{
		Email:          email,
		Password:       string(password),
		RepeatPassword: string(repeat),
	})
	if err != nil {
		a.reportFormError(err)
		return err
	}

	a.notifyOutcome(out, "Account created")
	if out.OK() {
		printlnFn("Now sign in with 'signin'")
	}
	return nil
}

// SignOut forgets the local session.
func (a *App) SignOut(ctx context.Context) error {
	if err := a.session.SignOut(ctx); err != nil {
		a.logger.Error(ctx, "sign out", "error", err)
		a.notifier.Notify(notify.Error, "Sign-out failed")
		return err
	}
	a.notifier.Notify(notify.Info, "Signed out")
	return nil
}

func (a *App) notifyOutcome(out services.Outcome, fallback string) {
	msg := out.Message
	if msg == "" {
		msg = fallback
	}
	if out.OK() {
		a.notifier.Notify(notify.Success, msg)
		return
	}
	a.notifier.Notify(notify.Error, msg)
}

// reportFormError prints per-field validation messages inline or explains
// why the request was not sent.
func (a *App) reportFormError(err error) {
	var fe validate.Errors
	switch {
	case errors.As(err, &fe):
		printFieldErrors(a.out, fe)
	case errors.Is(err, services.ErrAuthInFlight):
		printlnFn("A request is already in progress")
	case errors.Is(err, services.ErrAlreadyAuthenticated):
		printlnFn("Already signed in")
	default:
		a.notifier.Notify(notify.Error, err.Error())
	}
}

func printFieldErrors(w io.Writer, fe validate.Errors) {
	fields := make([]string, 0, len(fe))
	for f := range fe {
		fields = append(fields, f)
	}
	sort.Strings(fields)
	for _, f := range fields {
		_, _ = io.WriteString(w, "  "+f+": "+fe[f]+"\n")
	}
}
