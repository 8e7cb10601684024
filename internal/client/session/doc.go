// Package session holds the process-wide account session: the account
// resolution engine and the long-lived context every screen consumes.
//
// # Resolution
//
// Resolve deterministically picks the single active account from a freshly
// fetched universe:
//
//  1. a stored prior selection whose (clientCode, clientId) pair still
//     exists in the universe wins over everything else;
//  2. otherwise, in a family universe, the account flagged head-of-family;
//  3. otherwise the first account in server order.
//
// An empty universe resolves to no account and clears the stored selection.
//
// # Context
//
// Context publishes {accounts, active, isHeadOfFamily, loading,
// unauthorized}. Bootstrap runs the fetch-and-resolve pipeline exactly once
// per sign-in; Refresh re-runs it on demand behind an explicit in-flight
// guard; SetSelectedClient switches within the held universe without a
// fetch. A 401 from the backend during bootstrap or refresh is the single
// event that forcibly ends the session: it clears the credential store, the
// persisted selection, and the published state.
package session
