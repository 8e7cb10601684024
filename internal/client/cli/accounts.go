package cli

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/QodeSites/myQodeApp-sub000/internal/client/session"
)

// Accounts lists every account the signed-in user can act for, marking the
// active one.
func (a *App) Accounts(ctx context.Context) error {
	if !a.isLoggedIn() {
		printlnFn("Not logged in. Use 'login' first.")
		return nil
	}

	st := a.session.Snapshot()
	if st.Loading {
		printlnFn("Account data is still loading, try again in a moment.")
		return nil
	}
	if len(st.Accounts) == 0 {
		printlnFn("No accounts are linked to this login.")
		return nil
	}

	for _, acc := range st.Accounts {
		marker := " "
		if st.Active != nil && st.Active.SameIdentity(acc.ClientCode, acc.ClientID) {
			marker = "*"
		}
		line := fmt.Sprintf("%s %-12s %s", marker, acc.ClientCode, acc.DisplayName)
		if acc.Relation != "" {
			line += " (" + acc.Relation + ")"
		}
		if acc.IsHeadOfFamily {
			line += " [head of family]"
		}
		printlnFn(line)
	}
	return nil
}

// Switch makes another held account the active one. Unknown codes are
// reported and leave the selection untouched.
func (a *App) Switch(ctx context.Context, clientCode string) error {
	if !a.isLoggedIn() {
		printlnFn("Not logged in. Use 'login' first.")
		return nil
	}

	st := a.session.Snapshot()
	found := false
	for _, acc := range st.Accounts {
		if acc.ClientCode == clientCode {
			found = true
			break
		}
	}
	if !found {
		printlnFn("No account with code", clientCode, "— see 'accounts' for the list.")
		return nil
	}

	a.session.SetSelectedClient(ctx, clientCode)

	if st := a.session.Snapshot(); st.Active != nil {
		printlnFn("Active account:", st.Active.DisplayName, "("+st.Active.ClientCode+")")
	}
	return nil
}

// Refresh re-fetches the account list from the server and re-resolves the
// active account.
func (a *App) Refresh(ctx context.Context) error {
	if !a.isLoggedIn() {
		printlnFn("Not logged in. Use 'login' first.")
		return nil
	}

	if err := a.session.Refresh(ctx); err != nil {
		if errors.Is(err, session.ErrRefreshInFlight) {
			printlnFn("A refresh is already running.")
			return nil
		}
		printlnFn("Refresh failed:", err.Error())
		return nil
	}

	st := a.session.Snapshot()
	if st.Unauthorized {
		printlnFn("Session expired, please log in again.")
		return nil
	}
	printlnFn(fmt.Sprintf("Refreshed: %d account(s).", len(st.Accounts)))
	return nil
}

// Status shows the signed-in state, the active account, and when the access
// token expires. The expiry is read from the token without verifying the
// signature; verification is the server's job.
func (a *App) Status(ctx context.Context) error {
	if !a.isLoggedIn() {
		printlnFn("Not logged in.")
		return nil
	}

	st := a.session.Snapshot()
	if st.Active != nil {
		printlnFn("Active account:", st.Active.DisplayName, "("+st.Active.ClientCode+")")
		if st.Active.HolderName != "" {
			printlnFn("Holder:", st.Active.HolderName)
		}
		printlnFn("Account type:", st.Active.AccountType)
	} else {
		printlnFn("No active account.")
	}
	if st.IsHeadOfFamily {
		printlnFn("Family view: head of family.")
	}

	if exp, ok := tokenExpiry(a.creds.Access(ctx)); ok {
		printlnFn("Session expires:", exp.Format("2006-01-02 15:04:05 MST"))
	}
	return nil
}

// Logout revokes the refresh token on the server (best effort), wipes the
// stored credentials, and tears down the session state.
func (a *App) Logout(ctx context.Context) error {
	if !a.isLoggedIn() {
		printlnFn("Not logged in.")
		return nil
	}

	if refresh := a.creds.Refresh(ctx); refresh != "" {
		if err := a.gw.Logout(ctx, refresh); err != nil {
			// local cleanup proceeds regardless
			a.log.Warn(ctx, "server-side logout failed", "error", err)
		}
	}

	a.creds.Clear(ctx)
	a.session.ClearAllClientData(ctx)

	printlnFn("Logged out.")
	return nil
}

// tokenExpiry extracts the exp claim from a JWT without verifying it.
func tokenExpiry(token string) (time.Time, bool) {
	if token == "" {
		return time.Time{}, false
	}
	claims := jwt.MapClaims{}
	if _, _, err := jwt.NewParser().ParseUnverified(token, claims); err != nil {
		return time.Time{}, false
	}
	exp, err := claims.GetExpirationTime()
	if err != nil || exp == nil {
		return time.Time{}, false
	}
	return exp.Time, true
}
