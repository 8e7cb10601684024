package gateway

import (
	"context"

	"github.com/QodeSites/myQodeApp-sub000/internal/client/models"
)

// PasswordStatus is the backend's answer to a username check.
type PasswordStatus struct {
	// RequirePasswordSetup is true for first-time users who must set a
	// password through the OTP flow before they can log in.
	RequirePasswordSetup bool
	// Email is where the setup OTP will be delivered, when the backend
	// knows a better address than the submitted username.
	Email string
}

// LoginResult is the outcome of any credential-issuing call.
type LoginResult struct {
	AccessToken  string
	RefreshToken string
	ClientType   string
}

// Gateway is the API surface of the portal backend consumed by the session
// core. Implementations must honor context cancellation and timeouts.
type Gateway interface {
	// CheckPasswordStatus reports whether username must complete
	// first-time password setup before logging in.
	CheckPasswordStatus(ctx context.Context, username string) (PasswordStatus, error)

	// Login exchanges a username and password for a credential pair.
	Login(ctx context.Context, username, password string) (LoginResult, error)

	// DevBypassLogin issues a credential for an arbitrary identity.
	// The backend only honors it in non-production environments.
	DevBypassLogin(ctx context.Context, username string) (LoginResult, error)

	// SendSetupOTP delivers a 6-digit setup code to email.
	SendSetupOTP(ctx context.Context, email string) error

	// VerifySetupOTP checks the code entered by the user.
	VerifySetupOTP(ctx context.Context, username, otp string) error

	// CompletePasswordSetup sets the first password after a verified OTP
	// and issues a credential pair.
	CompletePasswordSetup(ctx context.Context, username, otp, newPassword, confirmPassword string) (LoginResult, error)

	// AccountData fetches a fresh account universe for the token's identity.
	AccountData(ctx context.Context, accessToken string) (models.AccountUniverse, error)

	// Logout revokes the refresh token server-side. Best-effort: callers
	// ignore the error.
	Logout(ctx context.Context, refreshToken string) error

	// Close releases transport resources.
	Close() error
}
