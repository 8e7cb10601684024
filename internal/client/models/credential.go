package models

// Credential is the token pair issued by the backend on a successful login.
// It is owned exclusively by the credential store: written on login success,
// replaced on token refresh, destroyed on logout or server-declared 401.
type Credential struct {
	AccessToken  string
	RefreshToken string
}
