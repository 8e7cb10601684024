// Package gateway defines the contract with the portal backend and its HTTP
// implementation.
//
// # Overview
//
// The package provides:
//  1. A transport-agnostic API contract (see the Gateway interface) covering
//     the session surface of the backend: password-status check, login,
//     OTP send/verify, first-time password setup, account-data fetch,
//     logout, and the non-production bypass login.
//  2. Typed response structs (PasswordStatus, LoginResult) decoded once at
//     the boundary, so callers never touch raw JSON.
//  3. A concrete HTTP/JSON implementation (see HTTPGateway) that tags every
//     request with an X-Request-Id and maps failures to sentinel errors.
//
// # Error Handling
//
// Conditions callers branch on are sentinel errors matched with errors.Is:
// ErrUnavailable (transport failure, server unreachable) and ErrUnauthorized
// (server declared the session invalid). Business-rule rejections carry the
// server's message as *APIError. Transport failures are not retried here.
package gateway
