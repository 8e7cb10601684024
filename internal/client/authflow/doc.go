// Package authflow implements the multi-step login state machine.
//
// A Flow walks one user from a username to a stored credential through the
// smallest number of steps: returning users go username → password,
// first-time users go username → OTP verification → password setup, and
// non-production builds additionally expose a bypass branch for internal
// testing.
//
// The machine is pure orchestration over two injected collaborators, the
// backend gateway and the credential store. It owns three invariants:
//
//   - one submission in flight per step: overlapping submissions are
//     rejected with ErrBusy instead of producing duplicate backend calls;
//   - no silent advancement: every gateway failure becomes the step's
//     user-facing message and leaves the step unchanged;
//   - no writes after teardown: once Close is called, results of in-flight
//     calls are discarded and the credential store is never touched.
//
// Step transitions happen only through explicit Submit*/Back calls, never
// as a side effect of rendering.
package authflow
