package cli

import (
	"context"
	"os"

	"github.com/QodeSites/myQodeApp-sub000/internal/client/authflow"
)

// Login walks the multi-step sign-in flow interactively. The user can type
// "exit" at the username prompt to abort, and an empty line at any later
// prompt steps back. In dev mode, typing "dev" at the username prompt opens
// the bypass branch.
//
// On success the session context is bootstrapped so the first REPL command
// already sees the resolved account.
func (a *App) Login(ctx context.Context) error {
	if a.isLoggedIn() {
		printlnFn("Already logged in. Use 'logout' first to switch users.")
		return nil
	}

	flow := authflow.New(a.gw, a.creds, a.config.DevMode, a.log)
	defer flow.Close()

	showErr := func() {
		if msg := flow.Err(); msg != "" {
			printlnFn(msg)
		}
	}

	for !flow.Done() {
		switch flow.Step() {

		case authflow.StepUsername:
			if flow.RequirePasswordSetup() {
				printlnFn("First-time sign-in: sending a verification code to " + flow.Email())
				if err := flow.SendOTP(ctx); err != nil {
					return err
				}
				if msg := flow.Err(); msg != "" {
					printlnFn(msg)
					ans, err := getSimpleText(a.reader,
						"Press Enter to retry sending, or type 'exit' to abort", os.Stdout)
					if err != nil {
						return err
					}
					if ans == "exit" {
						return nil
					}
				}
				continue
			}
			prompt := "Enter username or email ('exit' to abort)"
			if a.config.DevMode {
				prompt = "Enter username or email ('exit' to abort, 'dev' for bypass)"
			}
			name, err := getSimpleText(a.reader, prompt, os.Stdout)
			if err != nil {
				return err
			}
			if name == "exit" {
				return nil
			}
			if a.config.DevMode && name == "dev" {
				if err := flow.EnterDevBypass(); err != nil {
					printlnFn("Dev bypass is not available:", err.Error())
				}
				continue
			}
			if err := flow.SubmitUsername(ctx, name); err != nil {
				return err
			}
			showErr()

		case authflow.StepPassword:
			pw, err := getPassword(os.Stdout, "Enter password (empty to go back): ")
			if err != nil {
				return err
			}
			if len(pw) == 0 {
				flow.Back()
				continue
			}
			err = flow.SubmitPassword(ctx, string(pw))
			wipe(pw)
			if err != nil {
				return err
			}
			showErr()

		case authflow.StepOTP:
			code, err := getSimpleText(a.reader,
				"Enter the 6-digit code sent to "+flow.Email()+" ('resend' to send again, empty to go back)",
				os.Stdout)
			if err != nil {
				return err
			}
			if code == "" {
				flow.Back()
				continue
			}
			if code == "resend" {
				if err := flow.SendOTP(ctx); err != nil {
					return err
				}
				if flow.Err() == "" {
					printlnFn("Code re-sent.")
				}
				showErr()
				continue
			}
			if err := flow.SubmitOTP(ctx, code); err != nil {
				return err
			}
			showErr()

		case authflow.StepPasswordSetup:
			pw, err := getPassword(os.Stdout, "Choose a new password (empty to go back): ")
			if err != nil {
				return err
			}
			if len(pw) == 0 {
				flow.Back()
				continue
			}
			confirm, err := getPassword(os.Stdout, "Confirm the new password: ")
			if err != nil {
				wipe(pw)
				return err
			}
			err = flow.SubmitNewPassword(ctx, string(pw), string(confirm))
			wipe(pw)
			wipe(confirm)
			if err != nil {
				return err
			}
			showErr()

		case authflow.StepDevBypass:
			email, err := getSimpleText(a.reader,
				"Dev bypass: enter the email to sign in as (empty to go back)", os.Stdout)
			if err != nil {
				return err
			}
			if email == "" {
				flow.Back()
				continue
			}
			if err := flow.SubmitDevBypass(ctx, email); err != nil {
				return err
			}
			showErr()
		}
	}

	printlnFn("Login successful.")

	if err := a.session.Bootstrap(ctx); err != nil {
		a.log.Warn(ctx, "loading account data after login failed", "error", err)
		return nil
	}
	if st := a.session.Snapshot(); st.Active != nil {
		printlnFn("Active account:", st.Active.DisplayName, "("+st.Active.ClientCode+")")
	}
	return nil
}
