// Package cli provides the interactive portal command-line client.
//
// It wires configuration, the local store, the backend gateway, and an
// interactive REPL around the session core. Typical flow: resume a stored
// session or walk the login steps, then operate on the resolved account.
//
// Key commands:
//   - login                — walk the multi-step sign-in flow
//   - accounts             — list linked accounts, mark the active one
//   - switch <clientCode>  — change the active account
//   - refresh              — re-fetch and re-resolve the account list
//   - status               — show the active account and session expiry
//   - logout               — revoke, clear credentials, tear down session
//
// The REPL is started via App.Run(ctx), which blocks until the user exits.
package cli
