package session

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"github.com/QodeSites/myQodeApp-sub000/internal/client/gateway"
	"github.com/QodeSites/myQodeApp-sub000/internal/client/models"
	"github.com/QodeSites/myQodeApp-sub000/internal/client/repositories/credentials"
	"github.com/QodeSites/myQodeApp-sub000/internal/client/repositories/selection"
	"github.com/QodeSites/myQodeApp-sub000/internal/logging"
)

// ErrRefreshInFlight is returned when Refresh is called while another
// refresh is still running. The pipeline never interleaves.
var ErrRefreshInFlight = errors.New("refresh already in flight")

// State is a consistent snapshot of the published session view.
type State struct {
	Accounts       []models.Account
	Active         *models.Account
	IsHeadOfFamily bool
	Loading        bool
	Unauthorized   bool
}

// Context is the long-lived holder of the current account session. It is
// constructed once after login (or at startup when a token is stored) and
// passed by reference to every consumer.
type Context struct {
	gw    gateway.Gateway
	creds *credentials.Store
	sel   selection.Repository
	log   logging.Logger

	mu             sync.Mutex
	accounts       []models.Account
	active         *models.Account
	isHead         bool
	loading        bool
	unauthorized   bool
	bootstrapped   bool
	refreshing     bool
	closed         bool
	onActiveChange func(prev, next *models.Account)
}

func NewContext(gw gateway.Gateway, creds *credentials.Store, sel selection.Repository, log logging.Logger) *Context {
	return &Context{
		gw:      gw,
		creds:   creds,
		sel:     sel,
		log:     log.With("component", "session"),
		loading: true,
	}
}

// OnActiveChange registers a hook invoked whenever the active account
// changes identity, including resolution picking a different account after
// a server-side remap. Downstream consumers use it to re-fetch data keyed
// by the new clientCode.
func (c *Context) OnActiveChange(fn func(prev, next *models.Account)) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.onActiveChange = fn
}

// Snapshot returns a copy of the published state. Reads are eventually
// consistent with an in-flight refresh.
func (c *Context) Snapshot() State {
	c.mu.Lock()
	defer c.mu.Unlock()

	st := State{
		Accounts:       append([]models.Account(nil), c.accounts...),
		IsHeadOfFamily: c.isHead,
		Loading:        c.loading,
		Unauthorized:   c.unauthorized,
	}
	if c.active != nil {
		cp := *c.active
		st.Active = &cp
	}
	return st
}

// Bootstrap runs the fetch-and-resolve pipeline once. Subsequent calls are
// no-ops until ClearAllClientData starts a new sign-in.
func (c *Context) Bootstrap(ctx context.Context) error {
	c.mu.Lock()
	if c.bootstrapped || c.closed {
		c.mu.Unlock()
		return nil
	}
	c.bootstrapped = true
	c.mu.Unlock()

	return c.Refresh(ctx)
}

// Refresh re-runs the full fetch-and-resolve pipeline: fetch a fresh
// universe, resolve the active account against the stored selection,
// persist the choice, publish. The pipeline runs to completion atomically
// with respect to other callers; a concurrent call fails fast with
// ErrRefreshInFlight.
func (c *Context) Refresh(ctx context.Context) error {
	c.mu.Lock()
	if c.closed {
		c.mu.Unlock()
		return nil
	}
	if c.refreshing {
		c.mu.Unlock()
		return ErrRefreshInFlight
	}
	c.refreshing = true
	c.mu.Unlock()

	defer func() {
		c.mu.Lock()
		c.refreshing = false
		c.mu.Unlock()
	}()

	token := c.creds.Access(ctx)
	universe, err := c.gw.AccountData(ctx, token)
	if err != nil {
		if errors.Is(err, gateway.ErrUnauthorized) {
			c.teardownUnauthorized(ctx)
			return err
		}
		c.mu.Lock()
		if !c.closed {
			c.loading = false
		}
		c.mu.Unlock()
		return fmt.Errorf("account data fetch: %w", err)
	}

	// the holder may have been torn down while the fetch was in flight;
	// a discarded result must not touch the stores either
	c.mu.Lock()
	if c.closed {
		c.mu.Unlock()
		return nil
	}
	c.mu.Unlock()

	if len(universe.Accounts) == 0 {
		if err := c.sel.Clear(ctx); err != nil {
			c.log.Warn(ctx, "clearing stored selection failed", "error", err)
		}
		c.publish(ctx, universe, nil, ReasonNone)
		return nil
	}

	prior, err := c.sel.Load(ctx)
	if err != nil {
		c.log.Warn(ctx, "stored selection unavailable", "error", err)
		prior = nil
	}

	res := Resolve(universe, prior)
	if err := c.sel.Save(ctx, models.SelectionFromAccount(*res.Account)); err != nil {
		c.log.Warn(ctx, "persisting selection failed", "error", err)
	}

	c.publish(ctx, universe, res.Account, res.Reason)
	return nil
}

// publish installs a freshly resolved universe as the published state and
// fires the active-change hook when the identity moved. Results arriving
// after Close are discarded.
func (c *Context) publish(ctx context.Context, u models.AccountUniverse, active *models.Account, reason Reason) {
	c.mu.Lock()
	if c.closed {
		c.mu.Unlock()
		return
	}
	prev := c.active
	c.accounts = u.Accounts
	c.isHead = u.IsHeadOfFamily
	c.active = active
	c.loading = false
	c.unauthorized = false
	hook := c.onActiveChange
	c.mu.Unlock()

	if active != nil {
		c.log.Info(ctx, "active account resolved", "clientCode", active.ClientCode, "reason", reason.String())
	} else {
		c.log.Info(ctx, "no accounts available")
	}
	if hook != nil && !sameAccount(prev, active) {
		hook(prev, active)
	}
}

// SetSelectedClient switches the active account to the one with the given
// clientCode within the currently held universe. An unknown code is a
// no-op; no fetch happens.
func (c *Context) SetSelectedClient(ctx context.Context, clientCode string) {
	c.mu.Lock()
	if c.closed {
		c.mu.Unlock()
		return
	}
	var next *models.Account
	for i := range c.accounts {
		if c.accounts[i].ClientCode == clientCode {
			next = &c.accounts[i]
			break
		}
	}
	if next == nil {
		c.mu.Unlock()
		return
	}
	prev := c.active
	c.active = next
	hook := c.onActiveChange
	c.mu.Unlock()

	if err := c.sel.Save(ctx, models.SelectionFromAccount(*next)); err != nil {
		c.log.Warn(ctx, "persisting selection failed", "error", err)
	}
	if hook != nil && !sameAccount(prev, next) {
		hook(prev, next)
	}
}

// teardownUnauthorized is the single place a server-declared 401 ends the
// session: credentials, persisted selection, and published state all go.
func (c *Context) teardownUnauthorized(ctx context.Context) {
	c.log.Warn(ctx, "session rejected by server, clearing state")
	c.creds.Clear(ctx)
	if err := c.sel.Clear(ctx); err != nil {
		c.log.Warn(ctx, "clearing stored selection failed", "error", err)
	}

	c.mu.Lock()
	defer c.mu.Unlock()
	if c.closed {
		return
	}
	c.accounts = nil
	c.active = nil
	c.isHead = false
	c.loading = false
	c.unauthorized = true
	c.bootstrapped = false
}

// ClearAllClientData is the logout teardown: in-memory state and persisted
// selection are cleared, and the next Bootstrap will run again. It does not
// touch the credential store; logout owns that ordering.
func (c *Context) ClearAllClientData(ctx context.Context) {
	if err := c.sel.Clear(ctx); err != nil {
		c.log.Warn(ctx, "clearing stored selection failed", "error", err)
	}

	c.mu.Lock()
	defer c.mu.Unlock()
	c.accounts = nil
	c.active = nil
	c.isHead = false
	c.unauthorized = false
	c.loading = false
	c.bootstrapped = false
}

// Close tears the context down; results of in-flight calls are discarded.
func (c *Context) Close() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.closed = true
}

func sameAccount(a, b *models.Account) bool {
	if a == nil || b == nil {
		return a == b
	}
	return a.SameIdentity(b.ClientCode, b.ClientID)
}
