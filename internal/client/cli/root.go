package cli

import (
	"bufio"
	"context"
	"errors"
	"os"

	"github.com/QodeSites/myQodeApp-sub000/internal/client/gateway"
	"github.com/QodeSites/myQodeApp-sub000/internal/client/models"
)

// getStatus renders the prompt decoration: the active account's code, or a
// hint about the signed-in state.
func (a *App) getStatus() string {
	if !a.isLoggedIn() {
		return "(not logged in)"
	}
	st := a.session.Snapshot()
	if st.Active != nil {
		return "(" + st.Active.ClientCode + ")"
	}
	return "(logged in)"
}

// Root is the interactive entry point. It resumes a stored session when a
// token survives from a previous run, falls back to the login flow
// otherwise, and then hands control to the REPL until the user exits.
func (a *App) Root(ctx context.Context) {
	printlnFn("Welcome to the investor portal CLI (type 'help' for commands)")

	a.session.OnActiveChange(func(prev, next *models.Account) {
		if prev == nil || next == nil {
			return
		}
		printlnFn("Active account changed to", next.DisplayName, "("+next.ClientCode+")")
	})

	a.resumeOrLogin(ctx)

	scanner := bufio.NewScanner(os.Stdin)
	runREPL(ctx, a, a.getStatus, scanner)
}

// resumeOrLogin restores the previous session when a stored access token is
// still accepted by the backend; a rejected token falls through to a fresh
// login.
func (a *App) resumeOrLogin(ctx context.Context) {
	if a.isLoggedIn() {
		if err := a.session.Bootstrap(ctx); err == nil {
			st := a.session.Snapshot()
			if !st.Unauthorized {
				if st.Active != nil {
					printlnFn("Resumed session as", st.Active.DisplayName, "("+st.Active.ClientCode+")")
				} else {
					printlnFn("Resumed session.")
				}
				return
			}
		} else if !errors.Is(err, gateway.ErrUnauthorized) {
			// offline start: keep the stored session, commands will retry
			printlnFn("Could not reach the server; stored session kept.")
			return
		}
		printlnFn("Stored session expired, please log in again.")
	}

	_ = a.Login(ctx)
}
