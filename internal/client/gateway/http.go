package gateway

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/QodeSites/myQodeApp-sub000/internal/client/models"
	"github.com/google/uuid"
)

// HTTPGateway talks JSON over HTTP to the portal backend. The access token is
// supplied per call by the credential owner; the gateway itself holds no
// session state.
type HTTPGateway struct {
	baseURL string
	client  *http.Client
}

func NewHTTPGateway(baseURL string, timeout time.Duration) *HTTPGateway {
	return &HTTPGateway{
		baseURL: strings.TrimRight(baseURL, "/"),
		client:  &http.Client{Timeout: timeout},
	}
}

func (g *HTTPGateway) Close() error {
	g.client.CloseIdleConnections()
	return nil
}

// do performs one JSON round trip. Transport failures map to ErrUnavailable,
// 401/403 to ErrUnauthorized, other non-2xx statuses to *APIError carrying
// the server's message.
func (g *HTTPGateway) do(ctx context.Context, method, path, token string, reqBody, respBody any) error {
	var body io.Reader
	if reqBody != nil {
		b, err := json.Marshal(reqBody)
		if err != nil {
			return fmt.Errorf("encode request: %w", err)
		}
		body = bytes.NewReader(b)
	}

	req, err := http.NewRequestWithContext(ctx, method, g.baseURL+path, body)
	if err != nil {
		return fmt.Errorf("build request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("X-Request-Id", uuid.NewString())
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	resp, err := g.client.Do(req)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrUnavailable, err)
	}
	defer resp.Body.Close()

	switch {
	case resp.StatusCode == http.StatusUnauthorized || resp.StatusCode == http.StatusForbidden:
		return ErrUnauthorized
	case resp.StatusCode >= 400:
		var e struct {
			Error   string `json:"error"`
			Message string `json:"message"`
		}
		_ = json.NewDecoder(resp.Body).Decode(&e)
		msg := e.Error
		if msg == "" {
			msg = e.Message
		}
		if msg == "" {
			msg = resp.Status
		}
		return &APIError{Message: msg}
	}

	if respBody == nil {
		_, _ = io.Copy(io.Discard, resp.Body)
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(respBody); err != nil {
		return fmt.Errorf("decode response: %w", err)
	}
	return nil
}

func msgOr(msg, fallback string) string {
	if msg != "" {
		return msg
	}
	return fallback
}

func (g *HTTPGateway) CheckPasswordStatus(ctx context.Context, username string) (PasswordStatus, error) {
	req := struct {
		Username string `json:"username"`
	}{Username: username}

	var resp struct {
		RequirePasswordSetup bool   `json:"requirePasswordSetup"`
		Email                string `json:"email"`
		Error                string `json:"error"`
	}
	if err := g.do(ctx, http.MethodPost, "/api/auth/check-password-status", "", req, &resp); err != nil {
		return PasswordStatus{}, err
	}
	if resp.Error != "" {
		return PasswordStatus{}, &APIError{Message: resp.Error}
	}
	return PasswordStatus{RequirePasswordSetup: resp.RequirePasswordSetup, Email: resp.Email}, nil
}

func (g *HTTPGateway) Login(ctx context.Context, username, password string) (LoginResult, error) {
	req := struct {
		Username string `json:"username"`
		Password string `json:"password"`
	}{Username: username, Password: password}

	var resp struct {
		Success      bool   `json:"success"`
		AccessToken  string `json:"accessToken"`
		RefreshToken string `json:"refreshToken"`
		ClientType   string `json:"clientType"`
		Error        string `json:"error"`
	}
	if err := g.do(ctx, http.MethodPost, "/api/auth/login", "", req, &resp); err != nil {
		return LoginResult{}, err
	}
	if !resp.Success || resp.AccessToken == "" {
		return LoginResult{}, &APIError{Message: msgOr(resp.Error, "login failed")}
	}
	return LoginResult{AccessToken: resp.AccessToken, RefreshToken: resp.RefreshToken, ClientType: resp.ClientType}, nil
}

func (g *HTTPGateway) DevBypassLogin(ctx context.Context, username string) (LoginResult, error) {
	req := struct {
		Username string `json:"username"`
	}{Username: username}

	var resp struct {
		AccessToken  string `json:"accessToken"`
		RefreshToken string `json:"refreshToken"`
		ClientType   string `json:"clientType"`
		Error        string `json:"error"`
	}
	if err := g.do(ctx, http.MethodPost, "/api/auth/dev-bypass-login", "", req, &resp); err != nil {
		return LoginResult{}, err
	}
	if resp.Error != "" || resp.AccessToken == "" {
		return LoginResult{}, &APIError{Message: msgOr(resp.Error, "bypass login failed")}
	}
	return LoginResult{AccessToken: resp.AccessToken, RefreshToken: resp.RefreshToken, ClientType: resp.ClientType}, nil
}

func (g *HTTPGateway) SendSetupOTP(ctx context.Context, email string) error {
	req := struct {
		Email string `json:"email"`
	}{Email: email}

	var resp struct {
		OK    bool   `json:"ok"`
		Error string `json:"error"`
	}
	if err := g.do(ctx, http.MethodPost, "/api/auth/send-setup-otp", "", req, &resp); err != nil {
		return err
	}
	if !resp.OK {
		return &APIError{Message: msgOr(resp.Error, "could not send the verification code")}
	}
	return nil
}

func (g *HTTPGateway) VerifySetupOTP(ctx context.Context, username, otp string) error {
	req := struct {
		Username string `json:"username"`
		OTP      string `json:"otp"`
	}{Username: username, OTP: otp}

	var resp struct {
		OK    bool   `json:"ok"`
		Error string `json:"error"`
	}
	if err := g.do(ctx, http.MethodPost, "/api/auth/verify-setup-otp", "", req, &resp); err != nil {
		return err
	}
	if !resp.OK {
		return &APIError{Message: msgOr(resp.Error, "invalid code")}
	}
	return nil
}

func (g *HTTPGateway) CompletePasswordSetup(ctx context.Context, username, otp, newPassword, confirmPassword string) (LoginResult, error) {
	req := struct {
		Username        string `json:"username"`
		OTP             string `json:"otp"`
		NewPassword     string `json:"newPassword"`
		ConfirmPassword string `json:"confirmPassword"`
	}{Username: username, OTP: otp, NewPassword: newPassword, ConfirmPassword: confirmPassword}

	var resp struct {
		AccessToken  string `json:"accessToken"`
		RefreshToken string `json:"refreshToken"`
		ClientType   string `json:"clientType"`
		Error        string `json:"error"`
	}
	if err := g.do(ctx, http.MethodPost, "/api/auth/complete-password-setup", "", req, &resp); err != nil {
		return LoginResult{}, err
	}
	if resp.Error != "" || resp.AccessToken == "" {
		return LoginResult{}, &APIError{Message: msgOr(resp.Error, "password setup failed")}
	}
	return LoginResult{AccessToken: resp.AccessToken, RefreshToken: resp.RefreshToken, ClientType: resp.ClientType}, nil
}

func (g *HTTPGateway) AccountData(ctx context.Context, accessToken string) (models.AccountUniverse, error) {
	var resp struct {
		Success        bool             `json:"success"`
		IsHeadOfFamily bool             `json:"isHeadOfFamily"`
		Family         []models.Account `json:"family"`
		Clients        []models.Account `json:"clients"`
		Error          string           `json:"error"`
	}
	if err := g.do(ctx, http.MethodGet, "/api/account-data", accessToken, nil, &resp); err != nil {
		return models.AccountUniverse{}, err
	}
	if !resp.Success {
		return models.AccountUniverse{}, &APIError{Message: msgOr(resp.Error, "account data unavailable")}
	}

	accounts := resp.Clients
	if resp.IsHeadOfFamily {
		accounts = resp.Family
	}
	return models.AccountUniverse{Accounts: accounts, IsHeadOfFamily: resp.IsHeadOfFamily}, nil
}

func (g *HTTPGateway) Logout(ctx context.Context, refreshToken string) error {
	req := struct {
		RefreshToken string `json:"refreshToken,omitempty"`
	}{RefreshToken: refreshToken}

	return g.do(ctx, http.MethodPost, "/api/auth/logout", "", req, nil)
}
