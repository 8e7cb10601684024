package authflow

import (
	"context"
	"errors"
	"strings"
	"sync"

	"github.com/QodeSites/myQodeApp-sub000/internal/client/gateway"
	"github.com/QodeSites/myQodeApp-sub000/internal/logging"
)

// Step identifies the screen the login flow is currently on.
type Step int

const (
	StepUsername Step = iota
	StepPassword
	StepOTP
	StepPasswordSetup
	StepDevBypass
)

func (s Step) String() string {
	switch s {
	case StepUsername:
		return "username"
	case StepPassword:
		return "password"
	case StepOTP:
		return "otp"
	case StepPasswordSetup:
		return "password-setup"
	case StepDevBypass:
		return "dev-bypass"
	default:
		return "unknown"
	}
}

var (
	// ErrBusy means another submission for this flow is still in flight.
	ErrBusy = errors.New("another submission is in flight")

	// ErrClosed means the flow was torn down or already finished.
	ErrClosed = errors.New("login flow is closed")

	// ErrWrongStep means the requested action does not belong to the
	// current step.
	ErrWrongStep = errors.New("action not valid for the current step")

	// ErrDevBypassDisabled means the bypass branch was requested in a
	// production build.
	ErrDevBypassDisabled = errors.New("bypass login is disabled in this build")
)

// CredentialSink is the part of the credential store the flow writes on a
// successful login. Writes are fire-and-forget; storage trouble must never
// fail a login that the backend accepted.
type CredentialSink interface {
	SetAccess(ctx context.Context, token string)
	SetRefresh(ctx context.Context, token string)
}

// Flow is the login state machine. All methods are safe for concurrent use;
// at most one gateway call is in flight at a time.
type Flow struct {
	gw      gateway.Gateway
	creds   CredentialSink
	log     logging.Logger
	devMode bool

	mu           sync.Mutex
	step         Step
	busy         bool
	closed       bool
	done         bool
	errMsg       string
	username     string
	email        string
	otp          string
	requireSetup bool
	clientType   string
}

// New creates a flow positioned at the username step. devMode is evaluated
// once here and never re-read mid-flow.
func New(gw gateway.Gateway, creds CredentialSink, devMode bool, log logging.Logger) *Flow {
	return &Flow{
		gw:      gw,
		creds:   creds,
		log:     log.With("component", "authflow"),
		devMode: devMode,
		step:    StepUsername,
	}
}

// Step returns the current step.
func (f *Flow) Step() Step {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.step
}

// Busy reports whether a gateway call is in flight. Interactive controls
// must stay disabled while true.
func (f *Flow) Busy() bool {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.busy
}

// Done reports whether a credential was written and the flow terminated.
func (f *Flow) Done() bool {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.done
}

// Err returns the current step's user-facing error message, if any.
func (f *Flow) Err() string {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.errMsg
}

// RequirePasswordSetup reports whether the submitted username belongs to a
// first-time user who must set a password via OTP.
func (f *Flow) RequirePasswordSetup() bool {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.requireSetup
}

// Username returns the identifier accepted at the username step.
func (f *Flow) Username() string {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.username
}

// Email returns the address the setup OTP is delivered to.
func (f *Flow) Email() string {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.email
}

// ClientType returns the account classification reported by the backend on
// a successful login.
func (f *Flow) ClientType() string {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.clientType
}

// Close tears the flow down. Any in-flight call's result is discarded on
// arrival: no state change, no credential write.
func (f *Flow) Close() {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.closed = true
}

// begin acquires the in-flight slot for an action valid on the given steps.
// It clears the previous error message, so exactly one message is visible
// per flow at a time.
func (f *Flow) begin(steps ...Step) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.closed || f.done {
		return ErrClosed
	}
	if f.busy {
		return ErrBusy
	}
	ok := false
	for _, s := range steps {
		if f.step == s {
			ok = true
			break
		}
	}
	if !ok {
		return ErrWrongStep
	}
	f.busy = true
	f.errMsg = ""
	return nil
}

// finish releases the in-flight slot and applies fn, unless the flow was
// closed while the call was in flight.
func (f *Flow) finish(fn func()) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.busy = false
	if f.closed {
		return
	}
	fn()
}

// fail releases the in-flight slot and records a validation message without
// a gateway round trip.
func (f *Flow) fail(msg string) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.busy = false
	if f.closed {
		return
	}
	f.errMsg = msg
}

// SubmitUsername checks the identifier with the backend. Returning users
// advance to the password step; first-time users stay here with the
// password-setup flag raised so the next action sends an OTP.
func (f *Flow) SubmitUsername(ctx context.Context, username string) error {
	if err := f.begin(StepUsername); err != nil {
		return err
	}
	username = strings.TrimSpace(username)
	if username == "" {
		f.fail("username is required")
		return nil
	}

	status, err := f.gw.CheckPasswordStatus(ctx, username)
	f.finish(func() {
		if err != nil {
			f.errMsg = userMessage(err)
			return
		}
		f.username = username
		if status.RequirePasswordSetup {
			f.requireSetup = true
			f.email = status.Email
			if f.email == "" {
				f.email = username
			}
		} else {
			f.step = StepPassword
		}
	})
	return nil
}

// SendOTP delivers (or re-delivers) the setup code. The first successful
// send moves the flow from the flagged username step to the OTP step; a
// resend keeps the step unchanged.
func (f *Flow) SendOTP(ctx context.Context) error {
	if err := f.begin(StepUsername, StepOTP); err != nil {
		return err
	}

	f.mu.Lock()
	if f.step == StepUsername && !f.requireSetup {
		f.busy = false
		f.mu.Unlock()
		return ErrWrongStep
	}
	from := f.step
	email := f.email
	f.mu.Unlock()

	err := f.gw.SendSetupOTP(ctx, email)
	f.finish(func() {
		if err != nil {
			f.errMsg = userMessage(err)
			return
		}
		if from == StepUsername {
			f.step = StepOTP
		}
	})
	return nil
}

// SubmitOTP verifies the 6-digit code. Non-numeric characters are discarded
// at entry; a short code never reaches the backend.
func (f *Flow) SubmitOTP(ctx context.Context, code string) error {
	if err := f.begin(StepOTP); err != nil {
		return err
	}
	code = NormalizeOTP(code)
	if len(code) != otpLength {
		f.fail("enter the 6-digit code")
		return nil
	}

	f.mu.Lock()
	username := f.username
	f.mu.Unlock()

	err := f.gw.VerifySetupOTP(ctx, username, code)
	f.finish(func() {
		if err != nil {
			f.errMsg = userMessage(err)
			return
		}
		f.otp = code
		f.step = StepPasswordSetup
	})
	return nil
}

// SubmitPassword logs a returning user in. Success writes the credential
// and terminates the flow.
func (f *Flow) SubmitPassword(ctx context.Context, password string) error {
	if err := f.begin(StepPassword); err != nil {
		return err
	}
	if password == "" {
		f.fail("password is required")
		return nil
	}

	f.mu.Lock()
	username := f.username
	f.mu.Unlock()

	res, err := f.gw.Login(ctx, username, password)
	f.finish(func() {
		if err != nil {
			f.errMsg = userMessage(err)
			return
		}
		f.complete(ctx, res)
	})
	return nil
}

// SubmitNewPassword finishes first-time setup. The password policy is
// checked locally before anything reaches the backend; success writes the
// credential and terminates the flow.
func (f *Flow) SubmitNewPassword(ctx context.Context, newPassword, confirmPassword string) error {
	if err := f.begin(StepPasswordSetup); err != nil {
		return err
	}
	if err := ValidatePasswordPair(newPassword, confirmPassword, !f.devMode); err != nil {
		f.fail(err.Error())
		return nil
	}

	f.mu.Lock()
	username := f.username
	otp := f.otp
	f.mu.Unlock()

	res, err := f.gw.CompletePasswordSetup(ctx, username, otp, newPassword, confirmPassword)
	f.finish(func() {
		if err != nil {
			f.errMsg = userMessage(err)
			return
		}
		f.complete(ctx, res)
	})
	return nil
}

// EnterDevBypass moves from the username step to the bypass branch. The
// branch does not exist in production builds.
func (f *Flow) EnterDevBypass() error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if !f.devMode {
		return ErrDevBypassDisabled
	}
	if f.closed || f.done {
		return ErrClosed
	}
	if f.busy {
		return ErrBusy
	}
	if f.step != StepUsername {
		return ErrWrongStep
	}
	f.step = StepDevBypass
	f.errMsg = ""
	return nil
}

// SubmitDevBypass logs in as an arbitrary identity through the bypass
// endpoint. Success writes the credential and terminates the flow.
func (f *Flow) SubmitDevBypass(ctx context.Context, email string) error {
	if !f.devMode {
		return ErrDevBypassDisabled
	}
	if err := f.begin(StepDevBypass); err != nil {
		return err
	}
	email = strings.TrimSpace(email)
	if email == "" {
		f.fail("email is required")
		return nil
	}

	res, err := f.gw.DevBypassLogin(ctx, email)
	f.finish(func() {
		if err != nil {
			f.errMsg = userMessage(err)
			return
		}
		f.username = email
		f.complete(ctx, res)
	})
	return nil
}

// complete writes the credential and terminates the machine. Caller holds
// the lock via finish.
func (f *Flow) complete(ctx context.Context, res gateway.LoginResult) {
	f.creds.SetAccess(ctx, res.AccessToken)
	if res.RefreshToken != "" {
		f.creds.SetRefresh(ctx, res.RefreshToken)
	}
	f.clientType = res.ClientType
	f.done = true
	f.log.Info(ctx, "login complete", "clientType", res.ClientType)
}

// Back navigates one step backwards, clearing exactly the fields the step
// owned. It never touches the credential store and is ignored while a call
// is in flight.
func (f *Flow) Back() {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.busy || f.closed || f.done {
		return
	}
	switch f.step {
	case StepPassword:
		// the flow never retains the password itself
		f.step = StepUsername
	case StepOTP:
		f.step = StepUsername
		f.requireSetup = false
		f.email = ""
		f.otp = ""
	case StepPasswordSetup:
		// password fields live in the UI; re-entry requires a fresh verify
		f.step = StepOTP
		f.otp = ""
	case StepDevBypass:
		f.step = StepUsername
		f.email = ""
	}
	f.errMsg = ""
}

// userMessage converts a gateway failure into the step's error message.
// Business rejections and transport failures are deliberately surfaced the
// same way; only the wording differs.
func userMessage(err error) string {
	var apiErr *gateway.APIError
	switch {
	case errors.As(err, &apiErr):
		return apiErr.Message
	case errors.Is(err, gateway.ErrUnavailable):
		return "cannot reach the server, please try again"
	case errors.Is(err, gateway.ErrUnauthorized):
		return "not authorized"
	default:
		return "something went wrong, please try again"
	}
}
