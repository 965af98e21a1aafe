package cli

import (
	"context"
	"errors"
	"fmt"

	"github.com/dmitrijs2005/jobtrack/internal/client/api"
	"github.com/dmitrijs2005/jobtrack/internal/client/session"
)

func parseModule(args []string, fallback api.OTPModule) (api.OTPModule, error) {
	if len(args) == 0 {
		return fallback, nil
	}
	switch api.OTPModule(args[0]) {
	case api.ModuleRegister, api.ModuleLogin, api.ModuleForgetPassword, api.ModuleResetPassword:
		return api.OTPModule(args[0]), nil
	default:
		return "", fmt.Errorf("unknown module %q", args[0])
	}
}

// Login starts the login flow. Success here never authenticates the
// session; the backend always asks for an OTP next.
func (a *App) Login(ctx context.Context) error {
	email, err := GetSimpleText(a.reader, "Enter email", a.out)
	if err != nil {
		return err
	}
	password, err := GetPassword("Enter password", a.out)
	if err != nil {
		return err
	}

	a.busy()
	result, err := a.session.Login(ctx, email, password)
	if err != nil {
		fmt.Fprintf(a.out, "Login failed: %s\n", err)
		return err
	}
	fmt.Fprintln(a.out, result.Message)
	fmt.Fprintln(a.out, "Run: verify login")
	return nil
}

func (a *App) Register(ctx context.Context) error {
	email, err := GetSimpleText(a.reader, "Enter email", a.out)
	if err != nil {
		return err
	}
	firstName, err := GetSimpleText(a.reader, "Enter first name", a.out)
	if err != nil {
		return err
	}
	lastName, err := GetSimpleText(a.reader, "Enter last name", a.out)
	if err != nil {
		return err
	}
	password, err := GetPassword("Enter password", a.out)
	if err != nil {
		return err
	}

	a.busy()
	result, err := a.session.Register(ctx, email, password, firstName, lastName)
	if err != nil {
		fmt.Fprintf(a.out, "Registration failed: %s\n", err)
		return err
	}
	fmt.Fprintln(a.out, result.Message)
	fmt.Fprintln(a.out, "Run: verify register")
	return nil
}

// Verify completes an OTP challenge: "verify [register|login|...]".
func (a *App) Verify(ctx context.Context, args []string) error {
	module, err := parseModule(args, api.ModuleRegister)
	if err != nil {
		fmt.Fprintln(a.out, err)
		return err
	}
	email, err := GetSimpleText(a.reader, "Enter email", a.out)
	if err != nil {
		return err
	}
	code, err := GetSimpleText(a.reader, "Enter OTP code", a.out)
	if err != nil {
		return err
	}

	a.busy()
	result, err := a.session.VerifyOTP(ctx, email, code, module)
	if err != nil {
		if errors.Is(err, session.ErrVerificationInFlight) {
			return err
		}
		fmt.Fprintf(a.out, "Verification failed: %s\n", err)
		return err
	}
	fmt.Fprintf(a.out, "Welcome, %s!\n", result.Profile.DisplayName())
	return nil
}

func (a *App) Resend(ctx context.Context, args []string) error {
	module, err := parseModule(args, api.ModuleRegister)
	if err != nil {
		fmt.Fprintln(a.out, err)
		return err
	}
	email, err := GetSimpleText(a.reader, "Enter email", a.out)
	if err != nil {
		return err
	}

	a.busy()
	status, err := a.session.ResendOTP(ctx, email, module)
	if err != nil {
		fmt.Fprintf(a.out, "Resend failed: %s\n", err)
		return err
	}
	fmt.Fprintf(a.out, "%s (attempts remaining: %d)\n", status.Message, status.AttemptsRemaining)
	return nil
}

func (a *App) Forgot(ctx context.Context) error {
	email, err := GetSimpleText(a.reader, "Enter email", a.out)
	if err != nil {
		return err
	}

	a.busy()
	status, err := a.session.ForgotPassword(ctx, email)
	if err != nil {
		fmt.Fprintf(a.out, "Request failed: %s\n", err)
		return err
	}
	fmt.Fprintf(a.out, "%s (attempts remaining: %d)\n", status.Message, status.AttemptsRemaining)
	fmt.Fprintln(a.out, "Run: reset")
	return nil
}

// Reset completes the password reset. Success logs the session out:
// the user must authenticate again with the new password.
func (a *App) Reset(ctx context.Context) error {
	email, err := GetSimpleText(a.reader, "Enter email", a.out)
	if err != nil {
		return err
	}
	code, err := GetSimpleText(a.reader, "Enter OTP code", a.out)
	if err != nil {
		return err
	}
	password, err := GetPassword("Enter new password", a.out)
	if err != nil {
		return err
	}

	a.busy()
	msg, err := a.session.ResetPassword(ctx, email, code, password)
	if err != nil {
		fmt.Fprintf(a.out, "Reset failed: %s\n", err)
		return err
	}
	fmt.Fprintln(a.out, msg)
	fmt.Fprintln(a.out, "Please log in with your new password.")
	return nil
}

func (a *App) Logout(ctx context.Context) error {
	a.session.Logout(ctx)
	fmt.Fprintln(a.out, "Logged out.")
	return nil
}
